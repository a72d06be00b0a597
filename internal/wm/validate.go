package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"
)

// Validate enumerates state-invariant violations; empty means healthy. It
// never mutates anything.
func (wm *WM) Validate() []string {
	violations := []string{}

	ws := wm.ws()

	// The focused window, if any, must be tiled or floating on the active
	// workspace.
	if w := wm.focusedWindow; w != 0 {
		_, tiled := ws.Layout.FindWindow(w)
		if !tiled && !ws.IsFloating(w) {
			violations = append(violations,
				fmt.Sprintf("focused window 0x%x is not in layout or floating", w))
		}
	}

	// Tree-structural invariants per workspace: root, parent linkage, split
	// children, ratio bounds, focused frame, tab indexes.
	for _, monID := range wm.monitors.All() {
		mon := wm.monitors.Get(monID)
		for wsIdx, w := range mon.Workspaces.All() {
			for _, v := range w.Layout.CheckInvariants() {
				violations = append(violations,
					fmt.Sprintf("monitor %s workspace %d: %s", mon.Name, wsIdx+1, v))
			}
		}
	}

	// Hidden tiled windows must still be referenced by some frame.
	for w := range wm.hidden {
		if _, _, owner, found := wm.findWindowGlobal(w); !found || owner == nil {
			violations = append(violations,
				fmt.Sprintf("hidden window 0x%x is not in any layout", w))
		} else if _, tiled := owner.Layout.FindWindow(w); !tiled {
			violations = append(violations,
				fmt.Sprintf("hidden window 0x%x is not tiled in its workspace", w))
		}
	}
	for w := range wm.hiddenFloats {
		if _, _, owner, found := wm.findWindowGlobal(w); !found || owner == nil || !owner.IsFloating(w) {
			violations = append(violations,
				fmt.Sprintf("hidden floating window 0x%x is not floating in any workspace", w))
		}
	}

	// Tab bar decorations must correspond to live frames.
	for key := range wm.tabBars.windows {
		mon := wm.monitors.Get(key.Monitor)
		if mon == nil {
			violations = append(violations,
				fmt.Sprintf("tab bar for unknown monitor %d", key.Monitor))
			continue
		}
		w := mon.Workspaces.Get(key.Workspace)
		if w == nil || w.Layout.Get(key.Frame) == nil {
			violations = append(violations,
				fmt.Sprintf("tab bar for non-existent frame %v", key.Frame))
		}
	}

	// No window may appear twice across workspaces, or both tiled and
	// floating.
	seen := map[xproto.Window]string{}
	for _, monID := range wm.monitors.All() {
		mon := wm.monitors.Get(monID)
		for wsIdx, w := range mon.Workspaces.All() {
			where := fmt.Sprintf("%s/ws%d", mon.Name, wsIdx+1)
			for _, win := range w.Layout.AllWindows() {
				if prev, dup := seen[win]; dup {
					violations = append(violations,
						fmt.Sprintf("window 0x%x appears in both %s and %s (tiled)", win, prev, where))
				}
				seen[win] = where + " (tiled)"
			}
			for _, f := range w.Floating {
				if prev, dup := seen[f.Window]; dup {
					violations = append(violations,
						fmt.Sprintf("window 0x%x appears in both %s and %s (floating)", f.Window, prev, where))
				}
				seen[f.Window] = where + " (floating)"
			}
		}
	}

	return violations
}
