package wm

import (
	"testing"

	"github.com/adereth/ttwm/internal/config"
)

func TestStartupApplySingleFrame(t *testing.T) {
	m := NewStartupManager()
	workspaces := NewWorkspaceManager()

	cfg := &config.Startup{Workspace: map[string]config.WorkspaceStartup{
		"1": {Layout: &config.StartupNode{
			Type: "frame",
			Name: "main",
			Apps: []string{"alacritty"},
		}},
	}}

	spawns := m.Apply(cfg, workspaces)
	if len(spawns) != 1 {
		t.Fatalf("expected 1 spawn, got %d", len(spawns))
	}
	if spawns[0].Command != "alacritty" || spawns[0].WorkspaceIdx != 0 || spawns[0].FrameName != "main" {
		t.Errorf("spawn wrong: %+v", spawns[0])
	}
	ws := workspaces.Get(0)
	if _, ok := ws.Layout.FindFrameByName("main"); !ok {
		t.Errorf("named frame not materialised")
	}
}

func TestStartupApplySplitLayout(t *testing.T) {
	m := NewStartupManager()
	workspaces := NewWorkspaceManager()

	cfg := &config.Startup{Workspace: map[string]config.WorkspaceStartup{
		"2": {Layout: &config.StartupNode{
			Type:      "split",
			Direction: "horizontal",
			Ratio:     0.6,
			First:     &config.StartupNode{Type: "frame", Name: "left", Apps: []string{"code"}},
			Second:    &config.StartupNode{Type: "frame", Name: "right", Apps: []string{"firefox"}},
		}},
	}}

	spawns := m.Apply(cfg, workspaces)
	if len(spawns) != 2 {
		t.Fatalf("expected 2 spawns, got %d", len(spawns))
	}
	ws := workspaces.Get(1)
	if got := len(ws.Layout.AllFrames()); got != 2 {
		t.Errorf("expected 2 frames, got %d", got)
	}
	if root := ws.Layout.Get(ws.Layout.Root); root.Split == nil || root.Split.Ratio != 0.6 {
		t.Errorf("split layout wrong")
	}
}

func TestStartupApplyInvalidWorkspaceSkipped(t *testing.T) {
	m := NewStartupManager()
	workspaces := NewWorkspaceManager()

	cfg := &config.Startup{Workspace: map[string]config.WorkspaceStartup{
		"10":  {Layout: &config.StartupNode{Type: "frame"}},
		"0":   {Layout: &config.StartupNode{Type: "frame"}},
		"nan": {Layout: &config.StartupNode{Type: "frame"}},
	}}

	if spawns := m.Apply(cfg, workspaces); len(spawns) != 0 {
		t.Errorf("invalid workspaces must be skipped, got %v", spawns)
	}
}

func TestStartupApplyNoApps(t *testing.T) {
	m := NewStartupManager()
	workspaces := NewWorkspaceManager()

	cfg := &config.Startup{Workspace: map[string]config.WorkspaceStartup{
		"1": {Layout: &config.StartupNode{Type: "frame", Name: "empty"}},
	}}

	if spawns := m.Apply(cfg, workspaces); len(spawns) != 0 {
		t.Errorf("no apps, no spawns")
	}
	if got := len(workspaces.Get(0).Layout.AllFrames()); got != 1 {
		t.Errorf("layout still applied, got %d frames", got)
	}
}

func TestStartupSpecDefaultsRatio(t *testing.T) {
	spec := startupSpec(&config.StartupNode{
		Type:      "split",
		Direction: "vertical",
		First:     &config.StartupNode{Type: "frame"},
		Second:    &config.StartupNode{Type: "frame"},
	})
	if spec.Split == nil || spec.Split.Ratio != 0.5 {
		t.Errorf("missing ratio defaults to 0.5")
	}
}

func TestSpawnAllMarksComplete(t *testing.T) {
	m := NewStartupManager()
	if m.IsComplete() {
		t.Errorf("fresh manager is not complete")
	}
	m.SpawnAll(nil)
	if !m.IsComplete() {
		t.Errorf("SpawnAll marks startup complete")
	}
}

func TestExpandTilde(t *testing.T) {
	t.Setenv("HOME", "/home/user")
	if got := expandTilde("ls ~/projects"); got != "ls /home/user/projects" {
		t.Errorf("tilde not expanded: %q", got)
	}
	if got := expandTilde("echo hi"); got != "echo hi" {
		t.Errorf("plain command changed: %q", got)
	}
}
