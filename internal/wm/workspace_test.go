package wm

import "testing"

func TestWorkspaceManagerSwitching(t *testing.T) {
	m := NewWorkspaceManager()
	if m.CurrentIndex() != 0 {
		t.Fatalf("should start on workspace 0")
	}

	old, ok := m.SwitchTo(3)
	if !ok || old != 0 {
		t.Errorf("switch failed: %d %v", old, ok)
	}
	if m.CurrentIndex() != 3 {
		t.Errorf("not on workspace 3")
	}

	if _, ok := m.SwitchTo(3); ok {
		t.Errorf("switching to the current workspace is a no-op")
	}
	if _, ok := m.SwitchTo(9); ok {
		t.Errorf("out-of-range workspace must be rejected")
	}
	if _, ok := m.SwitchTo(-1); ok {
		t.Errorf("negative workspace must be rejected")
	}
}

func TestWorkspaceCycling(t *testing.T) {
	m := NewWorkspaceManager()
	m.Prev()
	if m.CurrentIndex() != NumWorkspaces-1 {
		t.Errorf("prev from 0 should wrap to %d", NumWorkspaces-1)
	}
	m.Next()
	if m.CurrentIndex() != 0 {
		t.Errorf("next should wrap back to 0")
	}
}

func TestWorkspaceIDsAreOneBased(t *testing.T) {
	m := NewWorkspaceManager()
	for i := 0; i < NumWorkspaces; i++ {
		if m.Get(i).ID != i+1 {
			t.Errorf("workspace %d has id %d", i, m.Get(i).ID)
		}
	}
	if m.Get(NumWorkspaces) != nil {
		t.Errorf("out-of-range lookup should be nil")
	}
}

func TestFloatingListOps(t *testing.T) {
	ws := NewWorkspace(1)
	ws.Floating = append(ws.Floating, FloatingWindow{Window: 10, X: 5, Y: 5, Width: 300, Height: 200})
	ws.Floating = append(ws.Floating, FloatingWindow{Window: 20, X: 9, Y: 9, Width: 300, Height: 200})

	if !ws.IsFloating(10) || ws.IsFloating(30) {
		t.Errorf("IsFloating wrong")
	}
	if f := ws.FindFloating(20); f == nil || f.X != 9 {
		t.Errorf("FindFloating wrong")
	}

	f := ws.FindFloating(10)
	f.X = 42
	if ws.Floating[0].X != 42 {
		t.Errorf("FindFloating must return a mutable entry")
	}

	if !ws.RemoveFloating(10) || ws.RemoveFloating(10) {
		t.Errorf("RemoveFloating wrong")
	}
	if ids := ws.FloatingIDs(); len(ids) != 1 || ids[0] != 20 {
		t.Errorf("FloatingIDs wrong: %v", ids)
	}
}

func TestContainsWindow(t *testing.T) {
	ws := NewWorkspace(1)
	ws.Layout.AddWindow(1)
	ws.Floating = append(ws.Floating, FloatingWindow{Window: 2})

	if !ws.ContainsWindow(1) || !ws.ContainsWindow(2) {
		t.Errorf("tiled and floating windows are both contained")
	}
	if ws.ContainsWindow(3) {
		t.Errorf("unknown window must not be contained")
	}
}
