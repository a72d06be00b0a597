package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// keymap caches the server's keycode-to-keysym table. It is rebuilt on
// MappingNotify so rebound keyboards keep working.
type keymap struct {
	min               xproto.Keycode
	keysymsPerKeycode int
	keysyms           []xproto.Keysym
}

func (wm *WM) loadKeymap() error {
	setup := xproto.Setup(wm.conn)
	min, max := setup.MinKeycode, setup.MaxKeycode
	reply, err := xproto.GetKeyboardMapping(wm.conn, min, byte(max-min+1)).Reply()
	if err != nil {
		return fmt.Errorf("failed to get keyboard mapping: %w", err)
	}
	wm.keymap = &keymap{
		min:               min,
		keysymsPerKeycode: int(reply.KeysymsPerKeycode),
		keysyms:           reply.Keysyms,
	}
	return nil
}

// keysymForKeycode returns the unshifted keysym of a keycode.
func (k *keymap) keysymForKeycode(code xproto.Keycode) uint32 {
	if k == nil || code < k.min {
		return 0
	}
	idx := int(code-k.min) * k.keysymsPerKeycode
	if idx >= len(k.keysyms) {
		return 0
	}
	return uint32(k.keysyms[idx])
}

// keycodeForKeysym returns the first keycode producing a keysym.
func (k *keymap) keycodeForKeysym(sym uint32) (xproto.Keycode, bool) {
	if k == nil {
		return 0, false
	}
	for i := 0; i*k.keysymsPerKeycode < len(k.keysyms); i++ {
		chunk := k.keysyms[i*k.keysymsPerKeycode:]
		limit := k.keysymsPerKeycode
		if limit > len(chunk) {
			limit = len(chunk)
		}
		for j := 0; j < limit; j++ {
			if uint32(chunk[j]) == sym {
				return k.min + xproto.Keycode(i), true
			}
		}
	}
	return 0, false
}

// lockMaskCombos are the modifier combinations grabbed alongside every
// binding so NumLock and CapsLock states do not mask it.
var lockMaskCombos = []uint16{
	0,
	xproto.ModMaskLock,
	xproto.ModMask2,
	xproto.ModMaskLock | xproto.ModMask2,
}

// grabKeys releases all previous grabs and grabs every configured binding.
func (wm *WM) grabKeys() {
	xproto.UngrabKey(wm.conn, xproto.GrabAny, wm.root, xproto.ModMaskAny)

	for action, binding := range wm.keybindings {
		keycode, ok := wm.keymap.keycodeForKeysym(binding.Keysym)
		if !ok {
			wm.log.Warn().
				Str("action", action).
				Uint32("keysym", binding.Keysym).
				Msg("Could not find keycode for binding")
			continue
		}
		for _, extra := range lockMaskCombos {
			xproto.GrabKey(wm.conn, false, wm.root, binding.Modifiers|extra, keycode,
				xproto.GrabModeAsync, xproto.GrabModeAsync)
		}
		wm.log.Debug().
			Str("action", action).
			Uint8("keycode", uint8(keycode)).
			Uint16("modifiers", binding.Modifiers).
			Msg("Grabbed key")
	}
	wm.conn.Sync()
}

// handleKeyPress strips lock modifiers from the event state and dispatches
// the matching action, if any.
func (wm *WM) handleKeyPress(e xproto.KeyPressEvent) {
	cleanState := e.State &^ (xproto.ModMask2 | xproto.ModMaskLock)
	keysym := wm.keymap.keysymForKeycode(e.Detail)

	for action, binding := range wm.keybindings {
		if binding.Keysym == keysym && binding.Modifiers == cleanState {
			if err := wm.executeAction(action); err != nil {
				wm.log.Warn().Err(err).Str("action", action).Msg("Action failed")
			}
			return
		}
	}
}
