package wm

import (
	"github.com/BurntSushi/xgb/xproto"

	"github.com/adereth/ttwm/internal/layout"
)

// NumWorkspaces is the number of virtual desktops per monitor.
const NumWorkspaces = 9

// FloatingWindow is one entry of a workspace's floating list.
type FloatingWindow struct {
	Window xproto.Window
	X      int
	Y      int
	Width  uint32
	Height uint32
}

// Workspace is one virtual desktop: a layout tree of tiled windows plus a
// floating list, an optional fullscreen slot, and focus memory for
// re-entering the workspace.
type Workspace struct {
	// ID is the 1-based user-facing number.
	ID int
	// Layout holds the tiled windows.
	Layout *layout.Tree
	// Floating windows, drawn above tiled windows in list order.
	Floating []FloatingWindow
	// Fullscreen, when non-zero, covers the whole monitor and hides
	// everything else.
	Fullscreen xproto.Window
	// LastFocused is restored when the workspace becomes current again.
	LastFocused xproto.Window
}

// NewWorkspace creates an empty workspace with the given 1-based id.
func NewWorkspace(id int) *Workspace {
	return &Workspace{ID: id, Layout: layout.New()}
}

// IsFloating reports whether a window is on the floating list.
func (w *Workspace) IsFloating(win xproto.Window) bool {
	return w.FindFloating(win) != nil
}

// FindFloating returns the floating entry for a window, or nil.
func (w *Workspace) FindFloating(win xproto.Window) *FloatingWindow {
	for i := range w.Floating {
		if w.Floating[i].Window == win {
			return &w.Floating[i]
		}
	}
	return nil
}

// RemoveFloating drops a window from the floating list.
func (w *Workspace) RemoveFloating(win xproto.Window) bool {
	for i := range w.Floating {
		if w.Floating[i].Window == win {
			w.Floating = append(w.Floating[:i], w.Floating[i+1:]...)
			return true
		}
	}
	return false
}

// FloatingIDs returns the floating window ids in stacking order.
func (w *Workspace) FloatingIDs() []uint32 {
	out := make([]uint32, 0, len(w.Floating))
	for _, f := range w.Floating {
		out = append(out, uint32(f.Window))
	}
	return out
}

// ContainsWindow reports whether the window is tiled or floating here.
func (w *Workspace) ContainsWindow(win xproto.Window) bool {
	if _, ok := w.Layout.FindWindow(win); ok {
		return true
	}
	return w.IsFloating(win)
}

// WorkspaceManager owns one monitor's nine workspaces and the index of the
// current one.
type WorkspaceManager struct {
	workspaces [NumWorkspaces]*Workspace
	current    int
}

// NewWorkspaceManager creates nine empty workspaces.
func NewWorkspaceManager() *WorkspaceManager {
	m := &WorkspaceManager{}
	for i := range m.workspaces {
		m.workspaces[i] = NewWorkspace(i + 1)
	}
	return m
}

// Current returns the active workspace.
func (m *WorkspaceManager) Current() *Workspace {
	return m.workspaces[m.current]
}

// CurrentIndex returns the 0-based active workspace index.
func (m *WorkspaceManager) CurrentIndex() int {
	return m.current
}

// Get returns workspace i (0-based), or nil when out of range.
func (m *WorkspaceManager) Get(i int) *Workspace {
	if i < 0 || i >= NumWorkspaces {
		return nil
	}
	return m.workspaces[i]
}

// All returns the workspaces in index order.
func (m *WorkspaceManager) All() []*Workspace {
	return m.workspaces[:]
}

// SwitchTo activates workspace target (0-based). Returns the previous index
// and true on an actual switch; false when target is invalid or current.
func (m *WorkspaceManager) SwitchTo(target int) (int, bool) {
	if target < 0 || target >= NumWorkspaces || target == m.current {
		return 0, false
	}
	old := m.current
	m.current = target
	return old, true
}

// Next cycles forward, wrapping. Returns the previous index.
func (m *WorkspaceManager) Next() int {
	old := m.current
	m.current = (m.current + 1) % NumWorkspaces
	return old
}

// Prev cycles backward, wrapping. Returns the previous index.
func (m *WorkspaceManager) Prev() int {
	old := m.current
	m.current = (m.current - 1 + NumWorkspaces) % NumWorkspaces
	return old
}
