package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/randr"
	"github.com/BurntSushi/xgb/xproto"

	"github.com/adereth/ttwm/internal/geometry"
	"github.com/adereth/ttwm/internal/layout"
)

// resizeEdge names the edge or corner of a floating window under the
// pointer during a resize drag.
type resizeEdge int

const (
	edgeTop resizeEdge = iota
	edgeBottom
	edgeLeft
	edgeRight
	edgeTopLeft
	edgeTopRight
	edgeBottomLeft
	edgeBottomRight
)

// floatMinSize is the smallest a floating window can be resized to.
const floatMinSize = 100

// floatEdgeSize is how close to a floating window's border a press counts
// as a resize rather than a move.
const floatEdgeSize = 8

// dragState is the tagged drag variant held by the dispatcher; at most one
// drag is active at a time.
type dragState interface {
	dragSubject() xproto.Window
}

// tabDrag reorders or moves a tab; the drop target is computed at release.
type tabDrag struct {
	window      xproto.Window
	sourceFrame layout.NodeID
	sourceIndex int
}

// gapResize adjusts a split ratio as the pointer moves along its axis.
type gapResize struct {
	split     layout.NodeID
	direction geometry.SplitDirection
	start     int
	total     uint32
}

// floatMove translates a floating window by the pointer delta.
type floatMove struct {
	window         xproto.Window
	startX, startY int
	winX, winY     int
}

// floatResize adjusts one or both axes of a floating window.
type floatResize struct {
	window         xproto.Window
	edge           resizeEdge
	startX, startY int
	origX, origY   int
	origW, origH   uint32
}

func (d *tabDrag) dragSubject() xproto.Window     { return d.window }
func (d *gapResize) dragSubject() xproto.Window   { return 0 }
func (d *floatMove) dragSubject() xproto.Window   { return d.window }
func (d *floatResize) dragSubject() xproto.Window { return d.window }

// cancelDragFor drops the active drag if its subject window went away.
func (wm *WM) cancelDragFor(win xproto.Window) {
	if wm.drag != nil && wm.drag.dragSubject() == win {
		xproto.UngrabPointer(wm.conn, xproto.TimeCurrentTime)
		wm.drag = nil
		wm.log.Info().Msg("Cancelled drag, dragged window was destroyed")
	}
}

func (wm *WM) grabPointer(cursor xproto.Cursor) {
	xproto.GrabPointer(wm.conn, false, wm.root,
		xproto.EventMaskButtonRelease|xproto.EventMaskPointerMotion,
		xproto.GrabModeAsync, xproto.GrabModeAsync,
		xproto.WindowNone, cursor, xproto.TimeCurrentTime)
}

// handleEvent dispatches one X11 event. Errors are logged per event; the
// loop never aborts.
func (wm *WM) handleEvent(ev xgb.Event) {
	switch e := ev.(type) {
	case xproto.MapRequestEvent:
		wm.tracer.X11Event("MapRequest", uint32(e.Window), "")
		wm.manageWindow(e.Window)

	case xproto.UnmapNotifyEvent:
		wm.tracer.X11Event("UnmapNotify", uint32(e.Window), "")
		// Skip windows we unmapped ourselves (hidden tabs, workspace
		// switches) and synthetic events addressed to the client.
		if e.Event == wm.root && !wm.hidden[e.Window] && !wm.hiddenFloats[e.Window] {
			wm.unmanageWindow(e.Window)
		}

	case xproto.DestroyNotifyEvent:
		wm.tracer.X11Event("DestroyNotify", uint32(e.Window), "")
		wm.unmanageWindow(e.Window)

	case xproto.ConfigureRequestEvent:
		wm.tracer.X11Event("ConfigureRequest", uint32(e.Window), "")
		wm.handleConfigureRequest(e)

	case xproto.EnterNotifyEvent:
		wm.tracer.X11Event("EnterNotify", uint32(e.Event), "")
		wm.handleEnterNotify(e)

	case xproto.KeyPressEvent:
		wm.tracer.X11Event("KeyPress", 0, fmt.Sprintf("keycode=%d", e.Detail))
		wm.handleKeyPress(e)

	case xproto.ExposeEvent:
		wm.tracer.X11Event("Expose", uint32(e.Window), "")
		wm.handleExpose(e)

	case xproto.PropertyNotifyEvent:
		wm.tracer.X11Event("PropertyNotify", uint32(e.Window), fmt.Sprintf("atom=%d", e.Atom))
		wm.handlePropertyNotify(e)

	case xproto.ButtonPressEvent:
		wm.tracer.X11Event("ButtonPress", uint32(e.Event), fmt.Sprintf("button=%d", e.Detail))
		wm.handleButtonPress(e)

	case xproto.ButtonReleaseEvent:
		wm.tracer.X11Event("ButtonRelease", uint32(e.Event), fmt.Sprintf("button=%d", e.Detail))
		wm.handleButtonRelease(e)

	case xproto.MotionNotifyEvent:
		wm.handleMotion(e)

	case xproto.ClientMessageEvent:
		wm.handleClientMessage(e)

	case xproto.MappingNotifyEvent:
		wm.tracer.X11Event("MappingNotify", 0, fmt.Sprintf("request=%d", e.Request))
		if e.Request != xproto.MappingPointer {
			wm.log.Info().Msg("Keyboard mapping changed, re-grabbing keys")
			if err := wm.loadKeymap(); err != nil {
				wm.log.Warn().Err(err).Msg("Failed to reload keyboard mapping")
			}
			wm.grabKeys()
		}

	case randr.ScreenChangeNotifyEvent:
		wm.tracer.X11Event("ScreenChangeNotify", 0, "")
		wm.log.Info().Msg("Monitor configuration changed")
		if err := wm.monitors.Refresh(wm.conn, wm.root, wm.screen); err != nil {
			wm.log.Warn().Err(err).Msg("Failed to refresh monitors")
		}
		wm.applyLayout()
	}
}

func (wm *WM) handleConfigureRequest(e xproto.ConfigureRequestEvent) {
	if _, _, _, managed := wm.findWindowGlobal(e.Window); managed {
		// The layout owns managed geometry; reassert it.
		wm.applyLayout()
		return
	}
	var mask uint16
	var values []uint32
	if e.ValueMask&xproto.ConfigWindowX != 0 {
		mask |= xproto.ConfigWindowX
		values = append(values, uint32(int32(e.X)))
	}
	if e.ValueMask&xproto.ConfigWindowY != 0 {
		mask |= xproto.ConfigWindowY
		values = append(values, uint32(int32(e.Y)))
	}
	if e.ValueMask&xproto.ConfigWindowWidth != 0 {
		mask |= xproto.ConfigWindowWidth
		values = append(values, uint32(e.Width))
	}
	if e.ValueMask&xproto.ConfigWindowHeight != 0 {
		mask |= xproto.ConfigWindowHeight
		values = append(values, uint32(e.Height))
	}
	if e.ValueMask&xproto.ConfigWindowBorderWidth != 0 {
		mask |= xproto.ConfigWindowBorderWidth
		values = append(values, uint32(e.BorderWidth))
	}
	if mask != 0 {
		xproto.ConfigureWindow(wm.conn, e.Window, mask, values)
		wm.conn.Sync()
	}
}

func (wm *WM) handleEnterNotify(e xproto.EnterNotifyEvent) {
	if !wm.suppressEnterFocus {
		ws := wm.ws()
		if _, tiled := ws.Layout.FindWindow(e.Event); tiled || ws.IsFloating(e.Event) {
			wm.focusWindow(e.Event)
		} else if monID, ok := wm.monitors.MonitorAt(int(e.RootX), int(e.RootY)); ok && monID != wm.monitors.FocusedID() {
			wm.monitors.SetFocused(monID)
		}
	}
	wm.suppressEnterFocus = false

	if wm.drag == nil {
		wm.updateHoverCursor(int(e.RootX), int(e.RootY))
	}
}

// updateHoverCursor shows a resize cursor while the pointer rests over a
// split gutter.
func (wm *WM) updateHoverCursor(x, y int) {
	cursor := wm.cursorDefault
	if hit, ok := wm.ws().Layout.FindSplitAtGap(wm.usableScreen(), wm.cfg.Appearance.Gap, x, y); ok {
		if hit.Direction == geometry.Horizontal {
			cursor = wm.cursorResizeH
		} else {
			cursor = wm.cursorResizeV
		}
	}
	if cursor != 0 {
		xproto.ChangeWindowAttributes(wm.conn, wm.root, xproto.CwCursor, []uint32{uint32(cursor)})
	}
}

func (wm *WM) handleExpose(e xproto.ExposeEvent) {
	for key, bar := range wm.tabBars.windows {
		if bar != e.Window {
			continue
		}
		mon := wm.monitors.Get(key.Monitor)
		if mon == nil || mon.Workspaces.CurrentIndex() != key.Workspace {
			return
		}
		wm.redrawFrameBar(key.Monitor, key.Workspace, mon.Workspaces.Current(), key.Frame)
		return
	}
}

func (wm *WM) handlePropertyNotify(e xproto.PropertyNotifyEvent) {
	switch e.Atom {
	case wm.atoms.NetWmIcon:
		wm.tabBars.InvalidateIcon(e.Window)
		wm.redrawTabsForWindow(e.Window)

	case wm.atoms.NetWmName, xproto.AtomWmName:
		wm.redrawTabsForWindow(e.Window)

	case wm.atoms.NetWmState, xproto.AtomWmHints:
		wasUrgent := wm.urgent.Contains(e.Window)
		isUrgent := IsWindowUrgent(wm.conn, wm.atoms, e.Window)
		if isUrgent && !wasUrgent && e.Window != wm.focusedWindow {
			wm.urgent.Add(e.Window)
			wm.log.Info().Uint32("window", uint32(e.Window)).Msg("Window is now urgent")
			wm.redrawTabsForWindow(e.Window)
		} else if !isUrgent && wasUrgent {
			wm.urgent.Remove(e.Window)
			wm.log.Info().Uint32("window", uint32(e.Window)).Msg("Window is no longer urgent")
			wm.redrawTabsForWindow(e.Window)
		}

	case wm.atoms.NetWmStrut, wm.atoms.NetWmStrutPartial:
		if _, isDock := wm.docks[e.Window]; isDock {
			struts := ReadStruts(wm.conn, wm.atoms, e.Window)
			wm.log.Info().
				Uint32("window", uint32(e.Window)).
				Uint32("top", struts.Top).Uint32("bottom", struts.Bottom).
				Msg("Dock struts changed")
			wm.docks[e.Window] = struts
			wm.applyLayout()
		}
	}
}

// tryGapResize starts a split-gutter resize drag for left presses on the
// root window that land in a gap.
func (wm *WM) tryGapResize(e *xproto.ButtonPressEvent) bool {
	if e.Event != wm.root || e.Detail != 1 {
		return false
	}
	hit, ok := wm.ws().Layout.FindSplitAtGap(wm.usableScreen(), wm.cfg.Appearance.Gap, int(e.RootX), int(e.RootY))
	if !ok {
		return false
	}
	cursor := wm.cursorResizeH
	if hit.Direction == geometry.Vertical {
		cursor = wm.cursorResizeV
	}
	wm.grabPointer(cursor)
	wm.drag = &gapResize{split: hit.Split, direction: hit.Direction, start: hit.Start, total: hit.Total}
	wm.log.Info().Str("direction", hit.Direction.String()).Msg("Started gap resize")
	return true
}

// tryEmptyFrameClick focuses an empty frame when its area is clicked on the
// root window.
func (wm *WM) tryEmptyFrameClick(e *xproto.ButtonPressEvent) bool {
	if e.Event != wm.root || e.Detail != 1 {
		return false
	}
	ws := wm.ws()
	for _, g := range ws.Layout.CalculateGeometries(wm.usableScreen(), wm.cfg.Appearance.Gap) {
		frame := ws.Layout.Get(g.ID).Frame
		if frame.IsEmpty() && g.Rect.Contains(int(e.RootX), int(e.RootY)) {
			ws.Layout.Focused = g.ID
			wm.applyLayout()
			return true
		}
	}
	return false
}

// tryFloatClick begins a float move or resize for a left press on a
// floating window; presses near an edge resize, interior presses move.
func (wm *WM) tryFloatClick(e *xproto.ButtonPressEvent) bool {
	if e.Detail != 1 {
		return false
	}
	ws := wm.ws()
	float := ws.FindFloating(e.Event)
	if float == nil {
		return false
	}

	localX, localY := int(e.EventX), int(e.EventY)
	w, h := int(float.Width), int(float.Height)

	atLeft := localX < floatEdgeSize
	atRight := localX >= w-floatEdgeSize
	atTop := localY < floatEdgeSize
	atBottom := localY >= h-floatEdgeSize

	var edge resizeEdge
	hasEdge := true
	switch {
	case atTop && atLeft:
		edge = edgeTopLeft
	case atTop && atRight:
		edge = edgeTopRight
	case atBottom && atLeft:
		edge = edgeBottomLeft
	case atBottom && atRight:
		edge = edgeBottomRight
	case atTop:
		edge = edgeTop
	case atBottom:
		edge = edgeBottom
	case atLeft:
		edge = edgeLeft
	case atRight:
		edge = edgeRight
	default:
		hasEdge = false
	}

	wm.focusWindow(e.Event)

	if hasEdge {
		cursor := wm.cursorResizeH
		if edge == edgeTop || edge == edgeBottom {
			cursor = wm.cursorResizeV
		}
		wm.grabPointer(cursor)
		wm.drag = &floatResize{
			window: e.Event,
			edge:   edge,
			startX: int(e.RootX), startY: int(e.RootY),
			origX: float.X, origY: float.Y,
			origW: float.Width, origH: float.Height,
		}
		wm.log.Info().Uint32("window", uint32(e.Event)).Msg("Started float resize")
	} else {
		wm.grabPointer(xproto.CursorNone)
		wm.drag = &floatMove{
			window: e.Event,
			startX: int(e.RootX), startY: int(e.RootY),
			winX: float.X, winY: float.Y,
		}
		wm.log.Info().Uint32("window", uint32(e.Event)).Msg("Started float move")
	}
	return true
}

// handleTabClick selects, drags, or (middle-click on an empty frame)
// removes via a press on a frame's tab bar.
func (wm *WM) handleTabClick(e *xproto.ButtonPressEvent, frameID layout.NodeID) {
	monID := wm.monitors.FocusedID()
	wsIdx := wm.workspaces().CurrentIndex()
	ws := wm.ws()

	n := ws.Layout.Get(frameID)
	if n == nil || n.Frame == nil {
		return
	}
	frame := n.Frame

	if e.Detail == 2 {
		if frame.IsEmpty() {
			wm.removeEmptyFrame(monID, wsIdx, ws, frameID)
		}
		return
	}
	if e.Detail != 1 {
		return
	}

	if frame.IsEmpty() {
		ws.Layout.Focused = frameID
		wm.applyLayout()
		return
	}

	var clicked int
	var ok bool
	if frame.VerticalTabs {
		clicked, ok = HitVerticalTab(wm.cfg.Appearance.VerticalTabWidth, len(frame.Windows), int(e.EventY))
	} else {
		clicked, ok = HitTab(wm.calculateTabLayout(ws, frameID), int(e.EventX))
	}
	if !ok {
		return
	}

	window := frame.Windows[clicked]
	ws.Layout.Focused = frameID
	if w, ok := ws.Layout.FocusTab(clicked); ok {
		wm.applyLayout()
		wm.focusWindow(w)
	}

	wm.grabPointer(xproto.CursorNone)
	wm.drag = &tabDrag{window: window, sourceFrame: frameID, sourceIndex: clicked}
	wm.log.Info().
		Int("tab", clicked+1).
		Uint32("window", uint32(window)).
		Msg("Started tab drag")
}

func (wm *WM) removeEmptyFrame(monID MonitorID, wsIdx int, ws *Workspace, frameID layout.NodeID) {
	wm.tabBars.destroyBar(wm.conn, tabBarKey{Monitor: monID, Workspace: wsIdx, Frame: frameID})
	if ws.Layout.RemoveFrameByID(frameID) {
		wm.tracer.FrameRemoved(frameID.String())
	}
	wm.applyLayout()
	wm.log.Info().Msg("Removed empty frame")
}

func (wm *WM) handleButtonPress(e xproto.ButtonPressEvent) {
	if wm.tryGapResize(&e) {
		return
	}
	if wm.tryEmptyFrameClick(&e) {
		return
	}
	if wm.tryFloatClick(&e) {
		return
	}

	monID := wm.monitors.FocusedID()
	wsIdx := wm.workspaces().CurrentIndex()
	ws := wm.ws()

	for key, placeholder := range wm.tabBars.emptyFrames {
		if key.Monitor != monID || key.Workspace != wsIdx || placeholder != e.Event {
			continue
		}
		switch e.Detail {
		case 2:
			wm.removeEmptyFrame(monID, wsIdx, ws, key.Frame)
		case 1:
			ws.Layout.Focused = key.Frame
			wm.applyLayout()
		}
		return
	}

	for key, bar := range wm.tabBars.windows {
		if key.Monitor == monID && key.Workspace == wsIdx && bar == e.Event {
			wm.handleTabClick(&e, key.Frame)
			return
		}
	}
}

// findDropTarget resolves where a tab drag ends: a tab bar position takes
// priority over a frame's content area.
func (wm *WM) findDropTarget(rootX, rootY int) (layout.NodeID, int, bool, bool) {
	monID := wm.monitors.FocusedID()
	wsIdx := wm.workspaces().CurrentIndex()
	ws := wm.ws()

	for key, bar := range wm.tabBars.windows {
		if key.Monitor != monID || key.Workspace != wsIdx {
			continue
		}
		geom, err := xproto.GetGeometry(wm.conn, xproto.Drawable(bar)).Reply()
		if err != nil {
			continue
		}
		coords, err := xproto.TranslateCoordinates(wm.conn, bar, wm.root, 0, 0).Reply()
		if err != nil {
			continue
		}
		barX, barY := int(coords.DstX), int(coords.DstY)
		if rootX < barX || rootX >= barX+int(geom.Width) || rootY < barY || rootY >= barY+int(geom.Height) {
			continue
		}

		n := ws.Layout.Get(key.Frame)
		if n == nil || n.Frame == nil {
			continue
		}
		frame := n.Frame
		if frame.VerticalTabs {
			if idx, ok := HitVerticalTab(wm.cfg.Appearance.VerticalTabWidth, len(frame.Windows), rootY-barY); ok {
				return key.Frame, idx, true, true
			}
		} else {
			if idx, ok := HitTab(wm.calculateTabLayout(ws, key.Frame), rootX-barX); ok {
				return key.Frame, idx, true, true
			}
		}
		return key.Frame, 0, false, true
	}

	for _, g := range ws.Layout.CalculateGeometries(wm.usableScreen(), wm.cfg.Appearance.Gap) {
		if g.Rect.Contains(rootX, rootY) {
			return g.ID, 0, false, true
		}
	}
	return layout.NodeID{}, 0, false, false
}

func (wm *WM) handleButtonRelease(e xproto.ButtonReleaseEvent) {
	if e.Detail != 1 {
		return
	}
	xproto.UngrabPointer(wm.conn, xproto.TimeCurrentTime)
	wm.conn.Sync()

	drag := wm.drag
	wm.drag = nil
	if drag == nil {
		return
	}

	switch d := drag.(type) {
	case *tabDrag:
		target, targetIdx, haveIdx, found := wm.findDropTarget(int(e.RootX), int(e.RootY))
		if !found {
			wm.log.Info().Msg("Drag cancelled, released outside any frame")
			return
		}
		ws := wm.ws()
		if target == d.sourceFrame {
			if haveIdx && targetIdx != d.sourceIndex {
				ws.Layout.ReorderTab(target, d.sourceIndex, targetIdx)
				wm.log.Info().Int("from", d.sourceIndex+1).Int("to", targetIdx+1).Msg("Reordered tab")
			}
		} else {
			ws.Layout.MoveWindowToFrame(d.window, d.sourceFrame, target)
			ws.Layout.Focused = target
			wm.tracer.WindowMoved(uint32(d.window), d.sourceFrame.String(), target.String())
			wm.log.Info().Uint32("window", uint32(d.window)).Msg("Moved window to different frame")
		}
		wm.applyLayout()
		wm.suppressEnterFocus = true
		wm.focusWindow(d.window)

	case *gapResize:
		wm.log.Info().Msg("Gap resize completed")

	case *floatMove:
		wm.log.Info().Uint32("window", uint32(d.window)).Msg("Float move completed")

	case *floatResize:
		wm.log.Info().Uint32("window", uint32(d.window)).Msg("Float resize completed")
	}
}

func (wm *WM) handleMotion(e xproto.MotionNotifyEvent) {
	switch d := wm.drag.(type) {
	case *gapResize:
		var pos int
		if d.direction == geometry.Horizontal {
			pos = int(e.RootX)
		} else {
			pos = int(e.RootY)
		}
		if d.total == 0 {
			return
		}
		oldRatio := float32(0)
		if n := wm.ws().Layout.Get(d.split); n != nil && n.Split != nil {
			oldRatio = n.Split.Ratio
		}
		ratio := float32(pos-d.start) / float32(d.total)
		if wm.ws().Layout.SetSplitRatio(d.split, ratio) {
			if n := wm.ws().Layout.Get(d.split); n != nil && n.Split != nil && n.Split.Ratio != oldRatio {
				wm.tracer.SplitResized(d.split.String(), oldRatio, n.Split.Ratio)
			}
			wm.applyLayout()
		}

	case *floatMove:
		dx := int(e.RootX) - d.startX
		dy := int(e.RootY) - d.startY
		if float := wm.ws().FindFloating(d.window); float != nil {
			float.X = d.winX + dx
			float.Y = d.winY + dy
			wm.applyFloatingGeometry(float)
		}

	case *floatResize:
		dx := int(e.RootX) - d.startX
		dy := int(e.RootY) - d.startY
		newX, newY, newW, newH := resizeFloatGeometry(d, dx, dy)
		if float := wm.ws().FindFloating(d.window); float != nil {
			float.X, float.Y = newX, newY
			float.Width, float.Height = newW, newH
			wm.applyFloatingGeometry(float)
		}

	case *tabDrag:
		// Drop target is computed at release; nothing to do per motion.

	default:
		wm.updateHoverCursor(int(e.RootX), int(e.RootY))
	}
}

// resizeFloatGeometry applies per-edge semantics with the minimum size.
func resizeFloatGeometry(d *floatResize, dx, dy int) (int, int, uint32, uint32) {
	x, y, w, h := d.origX, d.origY, int(d.origW), int(d.origH)

	switch d.edge {
	case edgeLeft, edgeTopLeft, edgeBottomLeft:
		maxDx := w - floatMinSize
		if maxDx < 0 {
			maxDx = 0
		}
		if dx > maxDx {
			dx = maxDx
		}
		x = d.origX + dx
		w = int(d.origW) - dx
	case edgeRight, edgeTopRight, edgeBottomRight:
		w = int(d.origW) + dx
	}
	switch d.edge {
	case edgeTop, edgeTopLeft, edgeTopRight:
		maxDy := h - floatMinSize
		if maxDy < 0 {
			maxDy = 0
		}
		if dy > maxDy {
			dy = maxDy
		}
		y = d.origY + dy
		h = int(d.origH) - dy
	case edgeBottom, edgeBottomLeft, edgeBottomRight:
		h = int(d.origH) + dy
	}

	if w < floatMinSize {
		w = floatMinSize
	}
	if h < floatMinSize {
		h = floatMinSize
	}
	return x, y, uint32(w), uint32(h)
}

func (wm *WM) applyFloatingGeometry(f *FloatingWindow) {
	wm.configureWindow(f.Window,
		geometry.Rect{X: f.X, Y: f.Y, Width: f.Width, Height: f.Height},
		wm.cfg.Appearance.BorderWidth)
	wm.conn.Sync()
}

// handleClientMessage services EWMH requests from clients and pagers.
func (wm *WM) handleClientMessage(e xproto.ClientMessageEvent) {
	wm.tracer.X11Event("ClientMessage", uint32(e.Window), fmt.Sprintf("type=%d", e.Type))

	switch e.Type {
	case wm.atoms.NetActiveWindow:
		wm.log.Info().Uint32("window", uint32(e.Window)).Msg("ClientMessage: _NET_ACTIVE_WINDOW")
		wm.activateWindow(e.Window)

	case wm.atoms.NetCloseWindow:
		wm.log.Info().Uint32("window", uint32(e.Window)).Msg("ClientMessage: _NET_CLOSE_WINDOW")
		if err := wm.closeWindow(e.Window); err != nil {
			wm.log.Warn().Err(err).Msg("Close request failed")
		}

	case wm.atoms.NetCurrentDesktop:
		data := e.Data.Data32
		if len(data) == 0 {
			return
		}
		desktop := int(data[0])
		wm.log.Info().Int("desktop", desktop).Msg("ClientMessage: _NET_CURRENT_DESKTOP")
		if old, ok := wm.workspaces().SwitchTo(desktop); ok {
			wm.performWorkspaceSwitch(old)
		}

	case wm.atoms.NetWmDesktop:
		data := e.Data.Data32
		if len(data) == 0 {
			return
		}
		desktop := int(data[0])
		wm.log.Info().
			Uint32("window", uint32(e.Window)).
			Int("desktop", desktop).
			Msg("ClientMessage: _NET_WM_DESKTOP")
		if err := wm.moveWindowToWorkspace(e.Window, desktop); err != nil {
			wm.log.Warn().Err(err).Msg("Move to workspace failed")
		}

	case wm.atoms.NetWmState:
		data := e.Data.Data32
		if len(data) < 3 {
			return
		}
		action, state1, state2 := data[0], xproto.Atom(data[1]), xproto.Atom(data[2])
		if state1 != wm.atoms.NetWmStateFullscreen && state2 != wm.atoms.NetWmStateFullscreen {
			return
		}
		isFullscreen := wm.ws().Fullscreen == e.Window
		var want bool
		switch action {
		case 0:
			want = false
		case 1:
			want = true
		case 2:
			want = !isFullscreen
		default:
			want = isFullscreen
		}
		if want != isFullscreen {
			if err := wm.toggleFullscreen(e.Window); err != nil {
				wm.log.Warn().Err(err).Msg("Fullscreen toggle failed")
			}
		}
	}
}

// activateWindow focuses a window, switching to its workspace first when it
// lives elsewhere.
func (wm *WM) activateWindow(win xproto.Window) {
	if wm.ws().ContainsWindow(win) {
		wm.suppressEnterFocus = true
		wm.focusWindow(win)
		return
	}
	monID, wsIdx, _, found := wm.findWindowGlobal(win)
	if !found {
		return
	}
	wm.monitors.SetFocused(monID)
	if old, ok := wm.workspaces().SwitchTo(wsIdx); ok {
		wm.performWorkspaceSwitch(old)
	}
	wm.suppressEnterFocus = true
	wm.focusWindow(win)
}
