package wm

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/adereth/ttwm/internal/geometry"
	"github.com/adereth/ttwm/internal/layout"
)

// resizeStep is the ratio delta of one keyboard-driven resize.
const resizeStep float32 = 0.05

// executeAction dispatches a named action from a keybinding. Numbered
// actions (focus_tab_N, workspace_N, move_to_workspace_N) carry their
// parameter in the name.
func (wm *WM) executeAction(action string) error {
	switch action {
	case "spawn_terminal":
		wm.spawnTerminal()
		return nil
	case "close_window":
		return wm.closeFocusedWindow()
	case "quit":
		wm.log.Info().Msg("Quitting window manager")
		wm.running = false
		return nil
	case "split_horizontal":
		return wm.splitFocused(geometry.Horizontal)
	case "split_vertical":
		return wm.splitFocused(geometry.Vertical)
	case "cycle_tab_forward":
		return wm.cycleTab(true)
	case "cycle_tab_backward":
		return wm.cycleTab(false)
	case "focus_next":
		return wm.cycleFocus(true)
	case "focus_prev":
		return wm.cycleFocus(false)
	case "focus_frame_next":
		return wm.focusNextFrame(true)
	case "focus_frame_prev":
		return wm.focusNextFrame(false)
	case "focus_frame_left":
		return wm.focusFrameDirection(geometry.Left)
	case "focus_frame_right":
		return wm.focusFrameDirection(geometry.Right)
	case "focus_frame_up":
		return wm.focusFrameDirection(geometry.Up)
	case "focus_frame_down":
		return wm.focusFrameDirection(geometry.Down)
	case "move_window_left":
		return wm.moveWindow(false)
	case "move_window_right":
		return wm.moveWindow(true)
	case "resize_shrink":
		return wm.resizeSplit(-resizeStep)
	case "resize_grow":
		return wm.resizeSplit(resizeStep)
	case "toggle_float":
		return wm.toggleFloat(0)
	case "toggle_fullscreen":
		return wm.toggleFullscreen(0)
	case "focus_urgent":
		return wm.focusUrgent()
	case "toggle_tag":
		return wm.toggleTag(0)
	case "move_tagged":
		return wm.moveTaggedToFocusedFrame()
	case "untag_all":
		wm.untagAll()
		return nil
	case "workspace_next":
		wm.performWorkspaceSwitch(wm.workspaces().Next())
		return nil
	case "workspace_prev":
		wm.performWorkspaceSwitch(wm.workspaces().Prev())
		return nil
	}

	if n, ok := numberedAction(action, "focus_tab_"); ok {
		return wm.focusTab(n)
	}
	if n, ok := numberedAction(action, "workspace_"); ok {
		return wm.switchWorkspace(n - 1)
	}
	if n, ok := numberedAction(action, "move_to_workspace_"); ok {
		return wm.moveWindowToWorkspace(wm.focusedWindow, n-1)
	}

	return fmt.Errorf("unknown action %q", action)
}

func numberedAction(action, prefix string) (int, bool) {
	if !strings.HasPrefix(action, prefix) {
		return 0, false
	}
	n, err := strconv.Atoi(strings.TrimPrefix(action, prefix))
	if err != nil {
		return 0, false
	}
	return n, true
}

func (wm *WM) spawnTerminal() {
	terminal := wm.cfg.General.Terminal
	wm.log.Info().Str("terminal", terminal).Msg("Spawning terminal")
	if err := spawnCommand(terminal); err != nil {
		wm.log.Error().Err(err).Str("command", terminal).Msg("Failed to spawn terminal")
		if terminal != "xterm" {
			if err := spawnCommand("xterm"); err != nil {
				wm.log.Error().Err(err).Msg("Failed to spawn xterm fallback")
			}
		}
	}
}

func (wm *WM) closeFocusedWindow() error {
	if wm.focusedWindow == 0 {
		return nil
	}
	return wm.closeWindow(wm.focusedWindow)
}

// splitFocused divides the focused frame; the new empty frame is focused.
func (wm *WM) splitFocused(dir geometry.SplitDirection) error {
	ws := wm.ws()
	oldFrame := ws.Layout.Focused
	newFrame := ws.Layout.SplitFocused(dir)
	wm.tracer.FrameSplit(oldFrame.String(), newFrame.String(), dir.String())
	wm.applyLayout()
	wm.log.Info().Str("direction", dir.String()).Msg("Split frame")
	return nil
}

// cycleTab switches the focused frame's active tab.
func (wm *WM) cycleTab(forward bool) error {
	ws := wm.ws()
	var oldTab int
	if f := ws.Layout.FocusedFrame(); f != nil {
		oldTab = f.Focused
	}
	win, ok := ws.Layout.CycleTab(forward)
	if !ok {
		return nil
	}
	if f := ws.Layout.FocusedFrame(); f != nil && f.Focused != oldTab {
		wm.tracer.TabSwitched(ws.Layout.Focused.String(), oldTab, f.Focused)
	}
	wm.applyLayout()
	wm.focusWindow(win)
	return nil
}

// focusTab jumps to tab n (1-based).
func (wm *WM) focusTab(n int) error {
	ws := wm.ws()
	var oldTab int
	if f := ws.Layout.FocusedFrame(); f != nil {
		oldTab = f.Focused
	}
	win, ok := ws.Layout.FocusTab(n - 1)
	if !ok {
		return nil
	}
	if f := ws.Layout.FocusedFrame(); f != nil && f.Focused != oldTab {
		wm.tracer.TabSwitched(ws.Layout.Focused.String(), oldTab, f.Focused)
	}
	wm.applyLayout()
	wm.focusWindow(win)
	return nil
}

// cycleFocus walks all windows of the workspace in traversal order.
func (wm *WM) cycleFocus(forward bool) error {
	windows := wm.ws().Layout.AllWindows()
	if len(windows) == 0 {
		return nil
	}
	cur := 0
	for i, w := range windows {
		if w == wm.focusedWindow {
			cur = i
			break
		}
	}
	var next int
	if forward {
		next = (cur + 1) % len(windows)
	} else {
		next = (cur - 1 + len(windows)) % len(windows)
	}
	win := windows[next]
	if frameID, ok := wm.ws().Layout.FindWindow(win); ok {
		wm.ws().Layout.Focused = frameID
	}
	wm.applyLayout()
	wm.suppressEnterFocus = true
	wm.focusWindow(win)
	return nil
}

// frameInDirection finds the nearest frame whose centre lies in the given
// direction from the focused frame's centre.
func (wm *WM) frameInDirection(dir geometry.Direction) (layout.NodeID, bool) {
	ws := wm.ws()
	geoms := ws.Layout.CalculateGeometries(wm.usableScreen(), wm.cfg.Appearance.Gap)

	var focusedRect geometry.Rect
	found := false
	for _, g := range geoms {
		if g.ID == ws.Layout.Focused {
			focusedRect = g.Rect
			found = true
			break
		}
	}
	if !found {
		return layout.NodeID{}, false
	}
	fcx, fcy := focusedRect.CenterX(), focusedRect.CenterY()

	var bestID layout.NodeID
	bestDist := 0
	haveBest := false
	for _, g := range geoms {
		if g.ID == ws.Layout.Focused {
			continue
		}
		cx, cy := g.Rect.CenterX(), g.Rect.CenterY()
		inDirection := false
		switch dir {
		case geometry.Left:
			inDirection = cx < fcx
		case geometry.Right:
			inDirection = cx > fcx
		case geometry.Up:
			inDirection = cy < fcy
		case geometry.Down:
			inDirection = cy > fcy
		}
		if !inDirection {
			continue
		}
		var primary, secondary int
		switch dir {
		case geometry.Left, geometry.Right:
			primary, secondary = abs(fcx-cx), abs(fcy-cy)
		default:
			primary, secondary = abs(fcy-cy), abs(fcx-cx)
		}
		dist := primary + secondary/2
		if !haveBest || dist < bestDist {
			haveBest = true
			bestID = g.ID
			bestDist = dist
		}
	}
	return bestID, haveBest
}

// focusFrameDirection focuses the spatially nearest frame in a direction,
// spilling over to the nearest monitor when the workspace has none.
func (wm *WM) focusFrameDirection(dir geometry.Direction) error {
	if frameID, ok := wm.frameInDirection(dir); ok {
		ws := wm.ws()
		ws.Layout.Focused = frameID
		if f := ws.Layout.FocusedFrame(); f != nil {
			if win := f.FocusedWindow(); win != 0 {
				wm.suppressEnterFocus = true
				wm.focusWindow(win)
			}
		}
		wm.applyLayout()
		return nil
	}
	if monID, ok := wm.monitors.InDirection(dir); ok {
		return wm.focusMonitor(monID)
	}
	return nil
}

// focusNextFrame cycles frames in traversal order.
func (wm *WM) focusNextFrame(forward bool) error {
	ws := wm.ws()
	if !ws.Layout.FocusNextFrame(forward) {
		return nil
	}
	if f := ws.Layout.FocusedFrame(); f != nil {
		if win := f.FocusedWindow(); win != 0 {
			wm.suppressEnterFocus = true
			wm.focusWindow(win)
		}
	}
	wm.applyLayout()
	return nil
}

// moveWindow moves the focused window to the adjacent frame, collapsing the
// source frame when it ends up empty.
func (wm *WM) moveWindow(forward bool) error {
	ws := wm.ws()
	fromFrame := ws.Layout.Focused
	win, ok := ws.Layout.MoveWindowToAdjacent(forward)
	if !ok {
		return fmt.Errorf("no adjacent frame to move into")
	}
	wm.tracer.WindowMoved(uint32(win), fromFrame.String(), ws.Layout.Focused.String())
	if ws.Layout.RemoveEmptyFrames() {
		wm.tracer.FrameRemoved(fromFrame.String())
	}
	wm.applyLayout()
	wm.suppressEnterFocus = true
	wm.focusWindow(win)
	return nil
}

// resizeSplit adjusts the focused frame's enclosing split by delta.
func (wm *WM) resizeSplit(delta float32) error {
	ws := wm.ws()
	splitID := ws.Layout.Parent(ws.Layout.Focused)
	var oldRatio float32
	if n := ws.Layout.Get(splitID); n != nil && n.Split != nil {
		oldRatio = n.Split.Ratio
	}
	if !ws.Layout.ResizeFocusedSplit(delta) {
		return fmt.Errorf("focused frame has no enclosing split")
	}
	wm.tracer.SplitResized(splitID.String(), oldRatio, ws.Layout.Get(splitID).Split.Ratio)
	wm.applyLayout()
	return nil
}

// toggleFloat moves a window between the tiled layout and the floating
// list. The initial float geometry centres the window at half monitor size.
func (wm *WM) toggleFloat(win xproto.Window) error {
	if win == 0 {
		win = wm.focusedWindow
	}
	if win == 0 {
		return fmt.Errorf("no window to toggle")
	}
	ws := wm.ws()

	if ws.IsFloating(win) {
		ws.RemoveFloating(win)
		ws.Layout.AddWindow(win)
		wm.log.Info().Uint32("window", uint32(win)).Msg("Window tiled")
	} else {
		if _, ok := ws.Layout.FindWindow(win); !ok {
			return fmt.Errorf("window 0x%x is not on this workspace", win)
		}
		ws.Layout.RemoveWindow(win)
		ws.Layout.RemoveEmptyFrames()
		mon := wm.monitors.Focused().Geometry
		w, h := mon.Width/2, mon.Height/2
		ws.Floating = append(ws.Floating, FloatingWindow{
			Window: win,
			X:      mon.X + int(mon.Width-w)/2,
			Y:      mon.Y + int(mon.Height-h)/2,
			Width:  w,
			Height: h,
		})
		wm.log.Info().Uint32("window", uint32(win)).Msg("Window floating")
	}
	wm.applyLayout()
	wm.suppressEnterFocus = true
	wm.focusWindow(win)
	return nil
}

// toggleFullscreen switches a window in or out of the workspace's single
// fullscreen slot.
func (wm *WM) toggleFullscreen(win xproto.Window) error {
	if win == 0 {
		win = wm.focusedWindow
	}
	if win == 0 {
		return fmt.Errorf("no window to toggle")
	}
	ws := wm.ws()

	if ws.Fullscreen == win {
		ws.Fullscreen = 0
		wm.changeProp32(win, wm.atoms.NetWmState, xproto.AtomAtom)
		wm.log.Info().Uint32("window", uint32(win)).Msg("Left fullscreen")
	} else {
		if !ws.ContainsWindow(win) {
			return fmt.Errorf("window 0x%x is not on this workspace", win)
		}
		ws.Fullscreen = win
		wm.changeProp32(win, wm.atoms.NetWmState, xproto.AtomAtom, uint32(wm.atoms.NetWmStateFullscreen))
		wm.log.Info().Uint32("window", uint32(win)).Msg("Entered fullscreen")
	}
	wm.applyLayout()
	wm.suppressEnterFocus = true
	wm.focusWindow(win)
	return nil
}

// focusUrgent jumps to the oldest attention-requesting window, switching
// workspace when needed.
func (wm *WM) focusUrgent() error {
	win := wm.urgent.First()
	if win == 0 {
		return nil
	}
	wm.activateWindow(win)
	return nil
}

func (wm *WM) tagWindow(win xproto.Window) error {
	if win == 0 {
		win = wm.focusedWindow
	}
	if win == 0 {
		return fmt.Errorf("no window specified and no focused window")
	}
	wm.tagged[win] = true
	wm.log.Info().Uint32("window", uint32(win)).Msg("Tagged window")
	wm.applyLayout()
	return nil
}

func (wm *WM) untagWindow(win xproto.Window) error {
	if win == 0 {
		win = wm.focusedWindow
	}
	if win == 0 {
		return fmt.Errorf("no window specified and no focused window")
	}
	delete(wm.tagged, win)
	wm.log.Info().Uint32("window", uint32(win)).Msg("Untagged window")
	wm.applyLayout()
	return nil
}

func (wm *WM) toggleTag(win xproto.Window) error {
	if win == 0 {
		win = wm.focusedWindow
	}
	if win == 0 {
		return fmt.Errorf("no window specified and no focused window")
	}
	if wm.tagged[win] {
		return wm.untagWindow(win)
	}
	return wm.tagWindow(win)
}

func (wm *WM) untagAll() {
	wm.tagged = map[xproto.Window]bool{}
	wm.applyLayout()
}

// moveTaggedToFocusedFrame gathers every tagged window into the focused
// frame, pulling them out of whatever workspace, frame, or floating list
// they were in, and clears the tag set.
func (wm *WM) moveTaggedToFocusedFrame() error {
	dstWs := wm.ws()
	dst := dstWs.Layout.Focused
	if dstWs.Layout.Get(dst) == nil {
		return fmt.Errorf("focused frame does not exist")
	}

	for win := range wm.tagged {
		_, _, srcWs, found := wm.findWindowGlobal(win)
		if !found {
			continue
		}
		if srcWs == dstWs {
			if frameID, ok := srcWs.Layout.FindWindow(win); ok {
				if frameID == dst {
					continue
				}
				srcWs.Layout.MoveWindowToFrame(win, frameID, dst)
				wm.tracer.WindowMoved(uint32(win), frameID.String(), dst.String())
				continue
			}
		}
		if srcWs.RemoveFloating(win) {
			delete(wm.hiddenFloats, win)
		} else if frameID, ok := srcWs.Layout.FindWindow(win); ok {
			srcWs.Layout.RemoveWindow(win)
			srcWs.Layout.RemoveEmptyFrames()
			wm.tracer.WindowMoved(uint32(win), frameID.String(), dst.String())
		}
		if srcWs.Fullscreen == win {
			srcWs.Fullscreen = 0
		}
		if n := dstWs.Layout.Get(dst); n != nil && n.Frame != nil {
			n.Frame.AddWindow(win)
		}
	}

	wm.tagged = map[xproto.Window]bool{}
	wm.applyLayout()
	wm.log.Info().Msg("Moved tagged windows into focused frame")
	return nil
}

// switchWorkspace activates workspace index (0-based) on the focused
// monitor.
func (wm *WM) switchWorkspace(index int) error {
	if index < 0 || index >= NumWorkspaces {
		return fmt.Errorf("invalid workspace %d", index)
	}
	if old, ok := wm.workspaces().SwitchTo(index); ok {
		wm.performWorkspaceSwitch(old)
	}
	return nil
}

// moveWindowToWorkspace sends a window to another workspace on the focused
// monitor. The window disappears from view unless that workspace is
// current.
func (wm *WM) moveWindowToWorkspace(win xproto.Window, index int) error {
	if win == 0 {
		return fmt.Errorf("no window specified and no focused window")
	}
	if index < 0 || index >= NumWorkspaces {
		return fmt.Errorf("invalid workspace %d", index)
	}
	monID, srcIdx, srcWs, found := wm.findWindowGlobal(win)
	if !found {
		return fmt.Errorf("window 0x%x is not managed", win)
	}
	if srcIdx == index && monID == wm.monitors.FocusedID() {
		return nil
	}

	dstWs := wm.monitors.Focused().Workspaces.Get(index)

	if float := srcWs.FindFloating(win); float != nil {
		moved := *float
		srcWs.RemoveFloating(win)
		dstWs.Floating = append(dstWs.Floating, moved)
	} else {
		if frameID, ok := srcWs.Layout.FindWindow(win); ok {
			srcWs.Layout.RemoveWindow(win)
			srcWs.Layout.RemoveEmptyFrames()
			wm.tracer.WindowMoved(uint32(win), frameID.String(), fmt.Sprintf("workspace-%d", index+1))
		}
		dstWs.Layout.AddWindow(win)
	}
	if srcWs.Fullscreen == win {
		srcWs.Fullscreen = 0
	}
	if srcWs.LastFocused == win {
		srcWs.LastFocused = 0
	}
	dstWs.LastFocused = win

	wm.changeProp32(win, wm.atoms.NetWmDesktop, xproto.AtomCardinal, uint32(index))

	if wm.focusedWindow == win {
		wm.focusedWindow = 0
		if next := wm.nextFocusTarget(wm.monitors.FocusedID()); next != 0 {
			wm.suppressEnterFocus = true
			wm.focusWindow(next)
		} else {
			wm.updateActiveWindow()
		}
	}

	// Hide it unless its destination is the visible workspace.
	if wm.monitors.Focused().Workspaces.CurrentIndex() != index {
		wm.hidden[win] = true
		if dstWs.IsFloating(win) {
			delete(wm.hidden, win)
			wm.hiddenFloats[win] = true
		}
		xproto.UnmapWindow(wm.conn, win)
	}

	wm.applyLayout()
	wm.log.Info().
		Uint32("window", uint32(win)).
		Int("workspace", index+1).
		Msg("Moved window to workspace")
	return nil
}

// moveWindowToMonitor sends a window to another monitor's current
// workspace: tiled windows join its focused frame, floating windows are
// recentred on the target.
func (wm *WM) moveWindowToMonitor(win xproto.Window, target MonitorID) error {
	if win == 0 {
		win = wm.focusedWindow
	}
	if win == 0 {
		return fmt.Errorf("no window specified and no focused window")
	}
	targetMon := wm.monitors.Get(target)
	if targetMon == nil {
		return fmt.Errorf("monitor does not exist")
	}
	srcMonID, _, srcWs, found := wm.findWindowGlobal(win)
	if !found {
		return fmt.Errorf("window 0x%x is not managed", win)
	}
	if srcMonID == target {
		return nil
	}
	dstWs := targetMon.Workspaces.Current()

	if float := srcWs.FindFloating(win); float != nil {
		moved := *float
		srcWs.RemoveFloating(win)
		geom := targetMon.Geometry
		moved.X = geom.X + (int(geom.Width)-int(moved.Width))/2
		moved.Y = geom.Y + (int(geom.Height)-int(moved.Height))/2
		dstWs.Floating = append(dstWs.Floating, moved)
	} else {
		if frameID, ok := srcWs.Layout.FindWindow(win); ok {
			srcWs.Layout.RemoveWindow(win)
			srcWs.Layout.RemoveEmptyFrames()
			wm.tracer.WindowMoved(uint32(win), frameID.String(), targetMon.Name)
		}
		dstWs.Layout.AddWindow(win)
	}
	if srcWs.Fullscreen == win {
		srcWs.Fullscreen = 0
	}
	if srcWs.LastFocused == win {
		srcWs.LastFocused = 0
	}
	dstWs.LastFocused = win

	wm.applyLayout()
	wm.suppressEnterFocus = true
	wm.focusWindow(win)
	wm.log.Info().
		Uint32("window", uint32(win)).
		Str("monitor", targetMon.Name).
		Msg("Moved window to monitor")
	return nil
}

// resolveMonitorTarget maps "left"/"right" or an output name to a monitor.
func (wm *WM) resolveMonitorTarget(target string) (MonitorID, error) {
	switch target {
	case "left":
		if id, ok := wm.monitors.InDirection(geometry.Left); ok {
			return id, nil
		}
		return 0, fmt.Errorf("no monitor left of the focused monitor")
	case "right":
		if id, ok := wm.monitors.InDirection(geometry.Right); ok {
			return id, nil
		}
		return 0, fmt.Errorf("no monitor right of the focused monitor")
	default:
		if id, ok := wm.monitors.FindByName(target); ok {
			return id, nil
		}
		return 0, fmt.Errorf("monitor %q not found", target)
	}
}

// focusMonitor moves monitor focus and refocuses that monitor's workspace.
func (wm *WM) focusMonitor(id MonitorID) error {
	if !wm.monitors.SetFocused(id) {
		return fmt.Errorf("monitor does not exist")
	}
	ws := wm.ws()
	target := ws.LastFocused
	if target == 0 || !ws.ContainsWindow(target) {
		target = wm.nextFocusTarget(id)
	}
	if target != 0 {
		wm.suppressEnterFocus = true
		wm.focusWindow(target)
	} else {
		wm.focusedWindow = 0
		wm.updateActiveWindow()
	}
	wm.updateCurrentDesktop()
	wm.log.Info().Str("monitor", wm.monitors.Focused().Name).Msg("Focused monitor")
	return nil
}

// findFrameByNameGlobal searches every monitor and workspace for a named
// frame.
func (wm *WM) findFrameByNameGlobal(name string) (MonitorID, int, layout.NodeID, bool) {
	for _, monID := range wm.monitors.All() {
		for wsIdx, ws := range wm.monitors.Get(monID).Workspaces.All() {
			if id, ok := ws.Layout.FindFrameByName(name); ok {
				return monID, wsIdx, id, true
			}
		}
	}
	return 0, 0, layout.NodeID{}, false
}
