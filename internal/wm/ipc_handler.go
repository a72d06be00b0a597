package wm

import (
	"fmt"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/adereth/ttwm/internal/geometry"
	"github.com/adereth/ttwm/internal/ipc"
)

func errResp(code string, err error) ipc.Response {
	return ipc.Errorf(code, err.Error())
}

// HandleCommand services one IPC request synchronously and returns its
// response. Every command maps 1:1 to a command-engine action or query.
func (wm *WM) HandleCommand(req *ipc.Request) ipc.Response {
	wm.log.Debug().Str("command", req.Command).Msg("Handling IPC command")
	resp := wm.dispatchCommand(req)

	result := "success"
	switch resp.Status {
	case "ok":
		result = "ok"
	case "error":
		result = "error"
	}
	wm.tracer.IPC(req.Command, result)
	return resp
}

func (wm *WM) dispatchCommand(req *ipc.Request) ipc.Response {
	switch req.Command {
	case "get_state":
		state := wm.snapshotState()
		return ipc.Response{Status: "state", State: &state}

	case "get_layout":
		ws := wm.ws()
		geoms := ws.Layout.CalculateGeometries(wm.usableScreen(), wm.cfg.Appearance.Gap)
		snap := ws.Layout.Snapshot(geoms)
		return ipc.Response{Status: "layout", Layout: &snap}

	case "get_windows":
		return ipc.Response{Status: "windows", Windows: wm.windowInfoList()}

	case "get_focused":
		info := ipc.FocusedInfo{}
		if wm.focusedWindow != 0 {
			w := uint32(wm.focusedWindow)
			info.Window = &w
		}
		return ipc.Response{Status: "focused", Focused: &info}

	case "validate_state":
		violations := wm.Validate()
		return ipc.Response{Status: "validation", Validation: &ipc.ValidationResult{
			Valid:      len(violations) == 0,
			Violations: violations,
		}}

	case "get_event_log":
		var entries []ipc.EventLogEntry
		if req.Count != nil {
			entries = wm.tracer.Last(*req.Count)
		} else {
			entries = wm.tracer.All()
		}
		return ipc.Response{Status: "event_log", EventLog: &ipc.EventLog{Entries: entries}}

	case "focus_window":
		if req.Window == nil {
			return ipc.Errorf("no_window", "focus_window requires a window")
		}
		wm.activateWindow(xproto.Window(*req.Window))
		return ipc.Ok()

	case "focus_tab":
		if req.Index == nil {
			return ipc.Errorf("focus_tab_failed", "focus_tab requires an index")
		}
		if err := wm.focusTab(*req.Index); err != nil {
			return errResp("focus_tab_failed", err)
		}
		return ipc.Ok()

	case "focus_frame":
		dir, err := geometry.ParseDirection(req.Direction)
		if err != nil {
			return errResp("invalid_direction", err)
		}
		if err := wm.focusFrameDirection(dir); err != nil {
			return errResp("focus_frame_failed", err)
		}
		return ipc.Ok()

	case "split":
		dir, err := geometry.ParseSplitDirection(req.Direction)
		if err != nil {
			return errResp("invalid_direction", err)
		}
		if err := wm.splitFocused(dir); err != nil {
			return errResp("split_failed", err)
		}
		return ipc.Ok()

	case "move_window":
		forward := true
		if req.Forward != nil {
			forward = *req.Forward
		}
		if err := wm.moveWindow(forward); err != nil {
			return errResp("move_failed", err)
		}
		return ipc.Ok()

	case "resize_split":
		if req.Delta == nil {
			return ipc.Errorf("resize_failed", "resize_split requires a delta")
		}
		if err := wm.resizeSplit(*req.Delta); err != nil {
			return errResp("resize_failed", err)
		}
		return ipc.Ok()

	case "close_window":
		if err := wm.closeFocusedWindow(); err != nil {
			return errResp("close_failed", err)
		}
		return ipc.Ok()

	case "cycle_tab":
		forward := true
		if req.Forward != nil {
			forward = *req.Forward
		}
		if err := wm.cycleTab(forward); err != nil {
			return errResp("cycle_tab_failed", err)
		}
		return ipc.Ok()

	case "tag_window":
		if err := wm.tagWindow(reqWindow(req)); err != nil {
			return errResp("no_window", err)
		}
		return ipc.Ok()

	case "untag_window":
		if err := wm.untagWindow(reqWindow(req)); err != nil {
			return errResp("no_window", err)
		}
		return ipc.Ok()

	case "toggle_tag":
		if err := wm.toggleTag(reqWindow(req)); err != nil {
			return errResp("no_window", err)
		}
		return ipc.Ok()

	case "move_tagged":
		if err := wm.moveTaggedToFocusedFrame(); err != nil {
			return errResp("move_tagged_failed", err)
		}
		return ipc.Ok()

	case "untag_all":
		wm.untagAll()
		return ipc.Ok()

	case "get_tagged":
		windows := make([]uint32, 0, len(wm.tagged))
		for w := range wm.tagged {
			windows = append(windows, uint32(w))
		}
		return ipc.Response{Status: "tagged", Tagged: &ipc.WindowList{Windows: windows}}

	case "toggle_float":
		if err := wm.toggleFloat(reqWindow(req)); err != nil {
			return errResp("toggle_float_failed", err)
		}
		return ipc.Ok()

	case "get_floating":
		return ipc.Response{Status: "floating", Floating: &ipc.WindowList{Windows: wm.ws().FloatingIDs()}}

	case "toggle_fullscreen":
		if err := wm.toggleFullscreen(reqWindow(req)); err != nil {
			return errResp("toggle_fullscreen_failed", err)
		}
		return ipc.Ok()

	case "get_fullscreen":
		info := ipc.FullscreenInfo{}
		if fs := wm.ws().Fullscreen; fs != 0 {
			w := uint32(fs)
			info.Window = &w
		}
		return ipc.Response{Status: "fullscreen", Fullscreen: &info}

	case "get_urgent":
		urgent := wm.urgent.Windows()
		windows := make([]uint32, 0, len(urgent))
		for _, w := range urgent {
			windows = append(windows, uint32(w))
		}
		return ipc.Response{Status: "urgent", Urgent: &ipc.WindowList{Windows: windows}}

	case "focus_urgent":
		if err := wm.focusUrgent(); err != nil {
			return errResp("focus_urgent_failed", err)
		}
		return ipc.Ok()

	case "switch_workspace":
		if req.Index == nil {
			return ipc.Errorf("invalid_workspace", "switch_workspace requires an index")
		}
		if err := wm.switchWorkspace(*req.Index); err != nil {
			return errResp("invalid_workspace", err)
		}
		return ipc.Ok()

	case "workspace_next":
		wm.performWorkspaceSwitch(wm.workspaces().Next())
		return ipc.Ok()

	case "workspace_prev":
		wm.performWorkspaceSwitch(wm.workspaces().Prev())
		return ipc.Ok()

	case "get_current_workspace":
		return ipc.Response{Status: "workspace", Workspace: &ipc.WorkspaceInfo{
			Index: wm.workspaces().CurrentIndex(),
			Total: NumWorkspaces,
		}}

	case "move_to_workspace":
		if req.Workspace == nil {
			return ipc.Errorf("invalid_workspace", "move_to_workspace requires a workspace")
		}
		win := reqWindow(req)
		if win == 0 {
			win = wm.focusedWindow
		}
		if win == 0 {
			return ipc.Errorf("no_window", "no window specified and no focused window")
		}
		if err := wm.moveWindowToWorkspace(win, *req.Workspace); err != nil {
			return errResp("move_to_workspace_failed", err)
		}
		return ipc.Ok()

	case "get_monitors":
		return ipc.Response{Status: "monitors", Monitors: wm.monitorInfoList()}

	case "get_current_monitor":
		mon := wm.monitors.Focused()
		info := wm.monitorInfo(wm.monitors.FocusedID(), mon)
		return ipc.Response{Status: "monitor", Monitor: &info}

	case "focus_monitor":
		id, err := wm.resolveMonitorTarget(req.Target)
		if err != nil {
			return errResp("monitor_not_found", err)
		}
		if err := wm.focusMonitor(id); err != nil {
			return errResp("focus_monitor_failed", err)
		}
		return ipc.Ok()

	case "move_to_monitor":
		target, err := wm.resolveMonitorTarget(req.Target)
		if err != nil {
			return errResp("monitor_not_found", err)
		}
		if err := wm.moveWindowToMonitor(reqWindow(req), target); err != nil {
			return errResp("move_to_monitor_failed", err)
		}
		return ipc.Ok()

	case "set_frame_name":
		return wm.handleSetFrameName(req)

	case "get_frame_by_name":
		if req.Name == nil || *req.Name == "" {
			return ipc.Errorf("frame_not_found", "get_frame_by_name requires a name")
		}
		monID, wsIdx, frameID, ok := wm.findFrameByNameGlobal(*req.Name)
		if !ok {
			return ipc.Errorf("frame_not_found", fmt.Sprintf("no frame found with name %q", *req.Name))
		}
		mon := wm.monitors.Get(monID)
		ws := mon.Workspaces.Get(wsIdx)
		count := 0
		if n := ws.Layout.Get(frameID); n != nil && n.Frame != nil {
			count = len(n.Frame.Windows)
		}
		return ipc.Response{Status: "frame", Frame: &ipc.FrameInfo{
			ID:          frameID.String(),
			Name:        ws.Layout.FrameName(frameID),
			Monitor:     mon.Name,
			Workspace:   wsIdx + 1,
			WindowCount: count,
		}}

	case "screenshot":
		if req.Path == "" {
			return ipc.Errorf("screenshot_failed", "screenshot requires a path")
		}
		if err := wm.captureScreenshot(req.Path); err != nil {
			return errResp("screenshot_failed", err)
		}
		return ipc.Response{Status: "screenshot", Screenshot: &ipc.ScreenshotInfo{Path: req.Path}}

	case "quit":
		wm.log.Info().Msg("Quit requested via IPC")
		wm.running = false
		return ipc.Ok()
	}

	return ipc.Errorf("parse_error", fmt.Sprintf("unknown command %q", req.Command))
}

func reqWindow(req *ipc.Request) xproto.Window {
	if req.Window == nil {
		return 0
	}
	return xproto.Window(*req.Window)
}

func (wm *WM) handleSetFrameName(req *ipc.Request) ipc.Response {
	ws := wm.ws()
	focused := ws.Layout.Focused

	name := ""
	if req.Name != nil {
		name = *req.Name
	}
	if name != "" {
		if _, _, existing, ok := wm.findFrameByNameGlobal(name); ok && existing != focused {
			return ipc.Errorf("name_taken", fmt.Sprintf("frame name %q is already in use", name))
		}
	}
	if !ws.Layout.SetFrameName(focused, name) {
		return ipc.Errorf("set_frame_name_failed", "failed to set frame name")
	}
	return ipc.Ok()
}

// snapshotState builds the get_state payload from the active workspace.
func (wm *WM) snapshotState() ipc.StateSnapshot {
	ws := wm.ws()
	geoms := ws.Layout.CalculateGeometries(wm.usableScreen(), wm.cfg.Appearance.Gap)

	snap := ipc.StateSnapshot{
		FocusedFrame: ws.Layout.Focused.String(),
		WindowCount:  len(ws.Layout.AllWindows()) + len(ws.Floating),
		FrameCount:   len(ws.Layout.AllFrames()),
		Layout:       ws.Layout.Snapshot(geoms),
		Windows:      wm.windowInfoList(),
	}
	if wm.focusedWindow != 0 {
		w := uint32(wm.focusedWindow)
		snap.FocusedWindow = &w
	}
	return snap
}

// windowInfoList describes every window of the active workspace, tiled
// first.
func (wm *WM) windowInfoList() []ipc.WindowInfo {
	ws := wm.ws()
	windows := make([]ipc.WindowInfo, 0)

	for _, frameID := range ws.Layout.AllFrames() {
		frame := ws.Layout.Get(frameID).Frame
		isFocusedFrame := frameID == ws.Layout.Focused
		for tabIdx, win := range frame.Windows {
			isFocusedTab := tabIdx == frame.Focused
			windows = append(windows, ipc.WindowInfo{
				ID:         uint32(win),
				Title:      WindowTitle(wm.conn, wm.atoms, win),
				Frame:      frameID.String(),
				TabIndex:   tabIdx,
				IsFocused:  isFocusedFrame && isFocusedTab && wm.focusedWindow == win,
				IsVisible:  isFocusedTab,
				IsTagged:   wm.tagged[win],
				IsFloating: false,
				IsUrgent:   wm.urgent.Contains(win),
			})
		}
	}

	for _, f := range ws.Floating {
		windows = append(windows, ipc.WindowInfo{
			ID:         uint32(f.Window),
			Title:      WindowTitle(wm.conn, wm.atoms, f.Window),
			Frame:      "floating",
			TabIndex:   0,
			IsFocused:  wm.focusedWindow == f.Window,
			IsVisible:  true,
			IsTagged:   wm.tagged[f.Window],
			IsFloating: true,
			IsUrgent:   wm.urgent.Contains(f.Window),
		})
	}

	return windows
}

func (wm *WM) monitorInfo(id MonitorID, mon *Monitor) ipc.MonitorInfo {
	return ipc.MonitorInfo{
		Name:             mon.Name,
		X:                mon.Geometry.X,
		Y:                mon.Geometry.Y,
		Width:            mon.Geometry.Width,
		Height:           mon.Geometry.Height,
		IsPrimary:        mon.Primary,
		IsFocused:        id == wm.monitors.FocusedID(),
		CurrentWorkspace: mon.Workspaces.CurrentIndex(),
	}
}

func (wm *WM) monitorInfoList() []ipc.MonitorInfo {
	out := make([]ipc.MonitorInfo, 0, wm.monitors.Count())
	for _, id := range wm.monitors.All() {
		out = append(out, wm.monitorInfo(id, wm.monitors.Get(id)))
	}
	return out
}
