package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/adereth/ttwm/internal/geometry"
	"github.com/adereth/ttwm/internal/layout"
)

// applyLayout reconfigures every monitor's visible workspace: tiled clients,
// tab bars, empty-frame placeholders, floating windows and the fullscreen
// slot.
func (wm *WM) applyLayout() {
	for _, monID := range wm.monitors.All() {
		wm.applyMonitorLayout(monID)
	}
	wm.conn.Sync()
}

// frameRegions splits a frame's rectangle into the tab bar region and the
// client region, honouring the frame's tab orientation.
func (wm *WM) frameRegions(frame *layout.Frame, rect geometry.Rect) (geometry.Rect, geometry.Rect) {
	if frame.VerticalTabs {
		barWidth := wm.cfg.Appearance.VerticalTabWidth
		bar := geometry.Rect{X: rect.X, Y: rect.Y, Width: barWidth, Height: rect.Height}
		client := geometry.Rect{
			X:      rect.X + int(barWidth),
			Y:      rect.Y,
			Width:  geometry.SatSub(rect.Width, barWidth),
			Height: rect.Height,
		}
		return bar, client
	}
	barHeight := wm.cfg.Appearance.TabBarHeight
	bar := geometry.Rect{X: rect.X, Y: rect.Y, Width: rect.Width, Height: barHeight}
	client := geometry.Rect{
		X:      rect.X,
		Y:      rect.Y + int(barHeight),
		Width:  rect.Width,
		Height: geometry.SatSub(rect.Height, barHeight),
	}
	return bar, client
}

func (wm *WM) applyMonitorLayout(monID MonitorID) {
	mon := wm.monitors.Get(monID)
	if mon == nil {
		return
	}
	wsIdx := mon.Workspaces.CurrentIndex()
	ws := mon.Workspaces.Current()

	if ws.Fullscreen != 0 {
		wm.applyFullscreen(monID, mon, wsIdx, ws)
		return
	}

	usable := wm.usableScreenFor(monID)
	gap := wm.cfg.Appearance.Gap
	border := wm.cfg.Appearance.BorderWidth
	geoms := ws.Layout.CalculateGeometries(usable, gap)

	valid := map[layout.NodeID]bool{}
	for _, g := range geoms {
		valid[g.ID] = true
		frame := ws.Layout.Get(g.ID).Frame
		key := tabBarKey{Monitor: monID, Workspace: wsIdx, Frame: g.ID}
		barRect, clientRect := wm.frameRegions(frame, g.Rect)

		for i, win := range frame.Windows {
			if i == frame.Focused {
				inner := geometry.Rect{
					X:      clientRect.X,
					Y:      clientRect.Y,
					Width:  geometry.SatSub(clientRect.Width, border*2),
					Height: geometry.SatSub(clientRect.Height, border*2),
				}
				wm.configureWindow(win, inner, border)
				xproto.MapWindow(wm.conn, win)
				delete(wm.hidden, win)
			} else {
				wm.hidden[win] = true
				xproto.UnmapWindow(wm.conn, win)
			}
		}

		if frame.IsEmpty() {
			wm.ensureEmptyFrameWindow(key, clientRect)
		} else if placeholder, ok := wm.tabBars.emptyFrames[key]; ok {
			xproto.DestroyWindow(wm.conn, placeholder)
			delete(wm.tabBars.emptyFrames, key)
		}

		bar := wm.ensureTabBar(key, barRect)
		xproto.MapWindow(wm.conn, bar)
		wm.raiseWindow(bar)
		wm.drawTabBar(ws, g.ID, bar, barRect, frame.VerticalTabs)
	}

	wm.tabBars.CleanupStale(wm.conn, monID, wsIdx, valid)

	for i := range ws.Floating {
		f := &ws.Floating[i]
		inner := geometry.Rect{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height}
		wm.configureWindow(f.Window, inner, border)
		xproto.MapWindow(wm.conn, f.Window)
		wm.raiseWindow(f.Window)
		delete(wm.hiddenFloats, f.Window)
	}
}

// applyFullscreen maps only the fullscreen window at the full monitor
// geometry and hides everything else on the workspace.
func (wm *WM) applyFullscreen(monID MonitorID, mon *Monitor, wsIdx int, ws *Workspace) {
	for _, win := range ws.Layout.AllWindows() {
		if win == ws.Fullscreen {
			continue
		}
		wm.hidden[win] = true
		xproto.UnmapWindow(wm.conn, win)
	}
	for _, f := range ws.Floating {
		if f.Window == ws.Fullscreen {
			continue
		}
		wm.hiddenFloats[f.Window] = true
		xproto.UnmapWindow(wm.conn, f.Window)
	}
	wm.unmapBarsFor(monID, wsIdx)

	wm.configureWindow(ws.Fullscreen, mon.Geometry, 0)
	xproto.MapWindow(wm.conn, ws.Fullscreen)
	wm.raiseWindow(ws.Fullscreen)
	delete(wm.hidden, ws.Fullscreen)
	delete(wm.hiddenFloats, ws.Fullscreen)
}

func (wm *WM) unmapBarsFor(monID MonitorID, wsIdx int) {
	for key, win := range wm.tabBars.windows {
		if key.Monitor == monID && key.Workspace == wsIdx {
			xproto.UnmapWindow(wm.conn, win)
		}
	}
	for key, win := range wm.tabBars.emptyFrames {
		if key.Monitor == monID && key.Workspace == wsIdx {
			xproto.UnmapWindow(wm.conn, win)
		}
	}
}

// ensureTabBar creates or repositions the decoration window for a frame.
func (wm *WM) ensureTabBar(key tabBarKey, rect geometry.Rect) xproto.Window {
	if win, ok := wm.tabBars.windows[key]; ok {
		xproto.ConfigureWindow(wm.conn, win,
			xproto.ConfigWindowX|xproto.ConfigWindowY|
				xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
			[]uint32{uint32(int32(rect.X)), uint32(int32(rect.Y)), rect.Width, rect.Height})
		return win
	}

	win, err := xproto.NewWindowId(wm.conn)
	if err != nil {
		return 0
	}
	xproto.CreateWindow(wm.conn, wm.screen.RootDepth, win, wm.root,
		int16(rect.X), int16(rect.Y), uint16(rect.Width), uint16(rect.Height), 0,
		xproto.WindowClassInputOutput, wm.screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{
			wm.colors.TabBarBg,
			xproto.EventMaskExposure | xproto.EventMaskButtonPress | xproto.EventMaskButtonRelease,
		})
	wm.tabBars.windows[key] = win
	return win
}

// ensureEmptyFrameWindow keeps a plain placeholder window over an empty
// frame's client area so the frame can be clicked and removed.
func (wm *WM) ensureEmptyFrameWindow(key tabBarKey, rect geometry.Rect) {
	if win, ok := wm.tabBars.emptyFrames[key]; ok {
		xproto.ConfigureWindow(wm.conn, win,
			xproto.ConfigWindowX|xproto.ConfigWindowY|
				xproto.ConfigWindowWidth|xproto.ConfigWindowHeight,
			[]uint32{uint32(int32(rect.X)), uint32(int32(rect.Y)), rect.Width, rect.Height})
		xproto.MapWindow(wm.conn, win)
		return
	}

	win, err := xproto.NewWindowId(wm.conn)
	if err != nil {
		return
	}
	xproto.CreateWindow(wm.conn, wm.screen.RootDepth, win, wm.root,
		int16(rect.X), int16(rect.Y), uint16(rect.Width), uint16(rect.Height), 0,
		xproto.WindowClassInputOutput, wm.screen.RootVisual,
		xproto.CwBackPixel|xproto.CwEventMask,
		[]uint32{
			wm.colors.TabUnfocusedBg,
			xproto.EventMaskButtonPress,
		})
	xproto.MapWindow(wm.conn, win)
	wm.tabBars.emptyFrames[key] = win
}

// performWorkspaceSwitch hides the previous workspace's windows and brings
// the (already selected) current one up, restoring its focus memory.
func (wm *WM) performWorkspaceSwitch(oldIdx int) {
	mon := wm.monitors.Focused()
	monID := wm.monitors.FocusedID()
	old := mon.Workspaces.Get(oldIdx)
	if old != nil {
		for _, win := range old.Layout.AllWindows() {
			wm.hidden[win] = true
			xproto.UnmapWindow(wm.conn, win)
		}
		for _, f := range old.Floating {
			wm.hiddenFloats[f.Window] = true
			xproto.UnmapWindow(wm.conn, f.Window)
		}
		for key, win := range wm.tabBars.windows {
			if key.Monitor == monID && key.Workspace == oldIdx {
				xproto.UnmapWindow(wm.conn, win)
			}
		}
		for key, win := range wm.tabBars.emptyFrames {
			if key.Monitor == monID && key.Workspace == oldIdx {
				xproto.UnmapWindow(wm.conn, win)
			}
		}
	}

	wm.applyLayout()
	wm.updateCurrentDesktop()

	ws := wm.ws()
	target := ws.LastFocused
	if target == 0 || !ws.ContainsWindow(target) {
		target = wm.nextFocusTarget(monID)
	}
	if target != 0 {
		wm.suppressEnterFocus = true
		wm.focusWindow(target)
	} else {
		wm.focusedWindow = 0
		wm.updateActiveWindow()
	}

	wm.log.Info().Int("workspace", ws.ID).Msg("Switched workspace")
}
