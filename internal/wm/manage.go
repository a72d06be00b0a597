package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/adereth/ttwm/internal/geometry"
)

// manageWindow adopts a window presenting itself for mapping. Docks reserve
// struts and stay out of the layout; transient window types float; anything
// else becomes a tab in the focused frame.
func (wm *WM) manageWindow(win xproto.Window) {
	if _, _, _, found := wm.findWindowGlobal(win); found {
		return
	}
	if _, isDock := wm.docks[win]; isDock {
		return
	}

	if IsDockWindow(wm.conn, wm.atoms, win) {
		struts := ReadStruts(wm.conn, wm.atoms, win)
		wm.docks[win] = struts
		wm.log.Info().
			Uint32("window", uint32(win)).
			Uint32("top", struts.Top).Uint32("bottom", struts.Bottom).
			Msg("Managing dock window")

		xproto.ChangeWindowAttributes(wm.conn, win, xproto.CwEventMask,
			[]uint32{xproto.EventMaskPropertyChange})
		xproto.MapWindow(wm.conn, win)
		wm.updateClientList()
		wm.applyLayout()
		return
	}

	wm.log.Info().Uint32("window", uint32(win)).Msg("Managing window")

	ws := wm.ws()
	floating := ShouldFloat(wm.conn, wm.atoms, win)
	if floating {
		mon := wm.monitors.Focused().Geometry
		w, h := mon.Width/2, mon.Height/2
		ws.Floating = append(ws.Floating, FloatingWindow{
			Window: win,
			X:      mon.X + int(mon.Width-w)/2,
			Y:      mon.Y + int(mon.Height-h)/2,
			Width:  w,
			Height: h,
		})
	} else {
		ws.Layout.AddWindow(win)
	}

	xproto.ChangeWindowAttributes(wm.conn, win, xproto.CwEventMask,
		[]uint32{xproto.EventMaskEnterWindow | xproto.EventMaskFocusChange | xproto.EventMaskPropertyChange})
	xproto.ChangeWindowAttributes(wm.conn, win, xproto.CwBorderPixel,
		[]uint32{wm.colors.BorderFocused})
	xproto.MapWindow(wm.conn, win)

	if frameID, ok := ws.Layout.FindWindow(win); ok {
		wm.tracer.WindowManaged(uint32(win), frameID.String())
	} else {
		wm.tracer.WindowManaged(uint32(win), "floating")
	}

	if IsWindowUrgent(wm.conn, wm.atoms, win) {
		wm.urgent.Add(win)
	}

	wm.applyLayout()
	wm.updateClientList()
	wm.focusWindow(win)
}

// unmanageWindow retires a window from every set it may appear in and picks
// the next focus target.
func (wm *WM) unmanageWindow(win xproto.Window) {
	wm.cancelDragFor(win)

	delete(wm.hidden, win)
	delete(wm.hiddenFloats, win)
	delete(wm.tagged, win)
	wm.urgent.Remove(win)
	wm.tabBars.DropIcon(win)

	if _, isDock := wm.docks[win]; isDock {
		delete(wm.docks, win)
		wm.log.Info().Uint32("window", uint32(win)).Msg("Unmanaging dock window")
		wm.updateClientList()
		wm.applyLayout()
		return
	}

	monID, _, ws, found := wm.findWindowGlobal(win)
	if !found {
		return
	}
	wm.log.Info().Uint32("window", uint32(win)).Msg("Unmanaging window")

	if ws.Fullscreen == win {
		ws.Fullscreen = 0
	}
	if ws.LastFocused == win {
		ws.LastFocused = 0
	}
	if _, removed := ws.Layout.RemoveWindow(win); removed {
		wm.tracer.WindowUnmanaged(uint32(win), "client_destroyed")
		if ws.Layout.RemoveEmptyFrames() {
			wm.log.Debug().Msg("Cleaned up empty frames")
		}
	} else if ws.RemoveFloating(win) {
		wm.tracer.WindowUnmanaged(uint32(win), "client_destroyed")
	}

	wm.updateClientList()

	if wm.focusedWindow == win {
		wm.focusedWindow = 0
		if next := wm.nextFocusTarget(monID); next != 0 {
			wm.focusWindow(next)
		} else {
			wm.updateActiveWindow()
		}
	}

	wm.applyLayout()
}

// nextFocusTarget picks a replacement focus after the focused window went
// away: the focused frame's active tab, then any window in the focused
// frame, then any window in the workspace.
func (wm *WM) nextFocusTarget(monID MonitorID) xproto.Window {
	mon := wm.monitors.Get(monID)
	if mon == nil {
		return 0
	}
	ws := mon.Workspaces.Current()
	if f := ws.Layout.FocusedFrame(); f != nil {
		if w := f.FocusedWindow(); w != 0 {
			return w
		}
		if len(f.Windows) > 0 {
			return f.Windows[0]
		}
	}
	if windows := ws.Layout.AllWindows(); len(windows) > 0 {
		return windows[0]
	}
	if len(ws.Floating) > 0 {
		return ws.Floating[0].Window
	}
	return 0
}

// focusWindow gives a window the input focus, raises it, recolours borders,
// and mirrors the change into the layout and _NET_ACTIVE_WINDOW.
func (wm *WM) focusWindow(win xproto.Window) {
	old := wm.focusedWindow
	if old != 0 && old != win {
		xproto.ChangeWindowAttributes(wm.conn, old, xproto.CwBorderPixel,
			[]uint32{wm.colors.BorderUnfocused})
	}

	xproto.SetInputFocus(wm.conn, xproto.InputFocusPointerRoot, win, xproto.TimeCurrentTime)
	wm.raiseWindow(win)
	xproto.ChangeWindowAttributes(wm.conn, win, xproto.CwBorderPixel,
		[]uint32{wm.colors.BorderFocused})

	wm.focusedWindow = win
	if old != win {
		wm.tracer.FocusChanged(uint32(old), uint32(win))
	}

	// A window the user focuses stops demanding attention.
	if wm.urgent.Contains(win) {
		wm.urgent.Remove(win)
	}

	ws := wm.ws()
	ws.LastFocused = win
	if frameID, ok := ws.Layout.FindWindow(win); ok {
		ws.Layout.Focused = frameID
		// Keep the decoration visible above the raised client.
		key := tabBarKey{Monitor: wm.monitors.FocusedID(), Workspace: wm.workspaces().CurrentIndex(), Frame: frameID}
		if bar, ok := wm.tabBars.BarWindow(key); ok {
			wm.raiseWindow(bar)
		}
	}

	wm.updateActiveWindow()
	wm.conn.Sync()
}

// closeWindow closes a client gracefully when it supports WM_DELETE_WINDOW,
// otherwise kills it.
func (wm *WM) closeWindow(win xproto.Window) error {
	if SupportsDeleteProtocol(wm.conn, wm.atoms, win) {
		wm.log.Info().Uint32("window", uint32(win)).Msg("Sending WM_DELETE_WINDOW")
		return SendDeleteWindow(wm.conn, wm.atoms, win)
	}
	wm.log.Info().Uint32("window", uint32(win)).Msg("Killing client")
	return xproto.KillClientChecked(wm.conn, uint32(win)).Check()
}

func (wm *WM) raiseWindow(win xproto.Window) {
	xproto.ConfigureWindow(wm.conn, win, xproto.ConfigWindowStackMode,
		[]uint32{xproto.StackModeAbove})
}

func (wm *WM) configureWindow(win xproto.Window, r geometry.Rect, borderWidth uint32) {
	xproto.ConfigureWindow(wm.conn, win,
		xproto.ConfigWindowX|xproto.ConfigWindowY|
			xproto.ConfigWindowWidth|xproto.ConfigWindowHeight|
			xproto.ConfigWindowBorderWidth,
		[]uint32{uint32(int32(r.X)), uint32(int32(r.Y)), r.Width, r.Height, borderWidth})
}
