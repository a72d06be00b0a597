package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
)

// StrutPartial is the space a dock reserves at the screen edges, with the
// extended start/end coordinates from _NET_WM_STRUT_PARTIAL.
type StrutPartial struct {
	Left   uint32
	Right  uint32
	Top    uint32
	Bottom uint32

	LeftStartY   uint32
	LeftEndY     uint32
	RightStartY  uint32
	RightEndY    uint32
	TopStartX    uint32
	TopEndX      uint32
	BottomStartX uint32
	BottomEndX   uint32
}

func getProperty(conn *xgb.Conn, win xproto.Window, prop, typ xproto.Atom, length uint32) (*xproto.GetPropertyReply, error) {
	return xproto.GetProperty(conn, false, win, prop, typ, 0, length).Reply()
}

// propCardinals decodes a 32-bit property value list.
func propCardinals(reply *xproto.GetPropertyReply) []uint32 {
	if reply == nil || reply.Format != 32 {
		return nil
	}
	data := reply.Value
	out := make([]uint32, 0, len(data)/4)
	for i := 0; i+4 <= len(data); i += 4 {
		out = append(out, uint32(data[i])|uint32(data[i+1])<<8|uint32(data[i+2])<<16|uint32(data[i+3])<<24)
	}
	return out
}

// WindowTitle returns _NET_WM_NAME, falling back to WM_NAME, falling back to
// the hex window id.
func WindowTitle(conn *xgb.Conn, atoms *Atoms, win xproto.Window) string {
	if reply, err := getProperty(conn, win, atoms.NetWmName, atoms.Utf8String, 1024); err == nil && len(reply.Value) > 0 {
		return string(reply.Value)
	}
	if reply, err := getProperty(conn, win, xproto.AtomWmName, xproto.AtomString, 1024); err == nil && len(reply.Value) > 0 {
		return string(reply.Value)
	}
	return fmt.Sprintf("0x%x", win)
}

func windowTypes(conn *xgb.Conn, atoms *Atoms, win xproto.Window) []uint32 {
	reply, err := getProperty(conn, win, atoms.NetWmWindowType, xproto.AtomAtom, 1024)
	if err != nil {
		return nil
	}
	return propCardinals(reply)
}

// ShouldFloat reports whether _NET_WM_WINDOW_TYPE marks the window as a
// dialog, splash, toolbar, utility, menu, popup/dropdown menu, tooltip or
// notification.
func ShouldFloat(conn *xgb.Conn, atoms *Atoms, win xproto.Window) bool {
	floating := map[xproto.Atom]bool{
		atoms.NetWmWindowTypeDialog:       true,
		atoms.NetWmWindowTypeSplash:       true,
		atoms.NetWmWindowTypeToolbar:      true,
		atoms.NetWmWindowTypeUtility:      true,
		atoms.NetWmWindowTypeMenu:         true,
		atoms.NetWmWindowTypePopupMenu:    true,
		atoms.NetWmWindowTypeDropdownMenu: true,
		atoms.NetWmWindowTypeTooltip:      true,
		atoms.NetWmWindowTypeNotification: true,
	}
	for _, t := range windowTypes(conn, atoms, win) {
		if floating[xproto.Atom(t)] {
			return true
		}
	}
	return false
}

// IsDockWindow reports whether the window is a dock (panel/status bar).
func IsDockWindow(conn *xgb.Conn, atoms *Atoms, win xproto.Window) bool {
	for _, t := range windowTypes(conn, atoms, win) {
		if xproto.Atom(t) == atoms.NetWmWindowTypeDock {
			return true
		}
	}
	return false
}

// ReadStruts reads _NET_WM_STRUT_PARTIAL, falling back to _NET_WM_STRUT.
// Returns a zero strut when neither is set.
func ReadStruts(conn *xgb.Conn, atoms *Atoms, win xproto.Window) StrutPartial {
	if reply, err := getProperty(conn, win, atoms.NetWmStrutPartial, xproto.AtomCardinal, 12); err == nil {
		if v := propCardinals(reply); len(v) >= 12 {
			return StrutPartial{
				Left: v[0], Right: v[1], Top: v[2], Bottom: v[3],
				LeftStartY: v[4], LeftEndY: v[5],
				RightStartY: v[6], RightEndY: v[7],
				TopStartX: v[8], TopEndX: v[9],
				BottomStartX: v[10], BottomEndX: v[11],
			}
		}
	}
	if reply, err := getProperty(conn, win, atoms.NetWmStrut, xproto.AtomCardinal, 4); err == nil {
		if v := propCardinals(reply); len(v) >= 4 {
			return StrutPartial{Left: v[0], Right: v[1], Top: v[2], Bottom: v[3]}
		}
	}
	return StrutPartial{}
}

// urgencyHint is bit 8 of the WM_HINTS flags field.
const urgencyHint = 1 << 8

// IsWindowUrgent reports whether the window demands attention, via EWMH
// _NET_WM_STATE_DEMANDS_ATTENTION or the legacy WM_HINTS urgency flag.
func IsWindowUrgent(conn *xgb.Conn, atoms *Atoms, win xproto.Window) bool {
	if reply, err := getProperty(conn, win, atoms.NetWmState, xproto.AtomAtom, 1024); err == nil {
		for _, s := range propCardinals(reply) {
			if xproto.Atom(s) == atoms.NetWmStateDemandsAttention {
				return true
			}
		}
	}
	if reply, err := getProperty(conn, win, xproto.AtomWmHints, xproto.AtomWmHints, 9); err == nil {
		if v := propCardinals(reply); len(v) > 0 && v[0]&urgencyHint != 0 {
			return true
		}
	}
	return false
}

// SupportsDeleteProtocol reports whether WM_PROTOCOLS lists WM_DELETE_WINDOW.
func SupportsDeleteProtocol(conn *xgb.Conn, atoms *Atoms, win xproto.Window) bool {
	reply, err := getProperty(conn, win, atoms.WmProtocols, xproto.AtomAtom, 32)
	if err != nil {
		return false
	}
	for _, p := range propCardinals(reply) {
		if xproto.Atom(p) == atoms.WmDeleteWindow {
			return true
		}
	}
	return false
}

// SendDeleteWindow asks the client to close itself via WM_DELETE_WINDOW.
func SendDeleteWindow(conn *xgb.Conn, atoms *Atoms, win xproto.Window) error {
	ev := xproto.ClientMessageEvent{
		Format: 32,
		Window: win,
		Type:   atoms.WmProtocols,
		Data: xproto.ClientMessageDataUnionData32New([]uint32{
			uint32(atoms.WmDeleteWindow), 0, 0, 0, 0,
		}),
	}
	return xproto.SendEventChecked(conn, false, win, xproto.EventMaskNoEvent, string(ev.Bytes())).Check()
}
