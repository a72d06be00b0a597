package wm

import (
	"testing"

	"github.com/adereth/ttwm/internal/geometry"
)

func dualHead() *MonitorSet {
	return WithMockMonitors([]MockMonitor{
		{Name: "DP-1", Geometry: geometry.NewRect(0, 0, 1920, 1080), Primary: true},
		{Name: "HDMI-1", Geometry: geometry.NewRect(1920, 0, 1920, 1080)},
	})
}

func TestMockMonitorsFocusPrimary(t *testing.T) {
	s := dualHead()
	if s.Count() != 2 {
		t.Fatalf("expected 2 monitors")
	}
	if s.Focused().Name != "DP-1" {
		t.Errorf("primary should start focused")
	}
	if id := s.Primary(); s.Get(id).Name != "DP-1" {
		t.Errorf("primary lookup wrong")
	}
}

func TestMonitorNavigationLeftRight(t *testing.T) {
	s := dualHead()
	dp1, _ := s.FindByName("DP-1")
	hdmi1, _ := s.FindByName("HDMI-1")

	if right, ok := s.InDirection(geometry.Right); !ok || right != hdmi1 {
		t.Errorf("right navigation wrong")
	}
	if _, ok := s.InDirection(geometry.Left); ok {
		t.Errorf("nothing is left of DP-1")
	}

	s.SetFocused(hdmi1)
	if left, ok := s.InDirection(geometry.Left); !ok || left != dp1 {
		t.Errorf("left navigation wrong")
	}
	if _, ok := s.InDirection(geometry.Right); ok {
		t.Errorf("nothing is right of HDMI-1")
	}
}

func TestMonitorNavigationUpDown(t *testing.T) {
	s := WithMockMonitors([]MockMonitor{
		{Name: "TOP", Geometry: geometry.NewRect(0, 0, 1920, 1080), Primary: true},
		{Name: "BOTTOM", Geometry: geometry.NewRect(0, 1080, 1920, 1080)},
	})
	bottom, _ := s.FindByName("BOTTOM")

	if down, ok := s.InDirection(geometry.Down); !ok || down != bottom {
		t.Errorf("down navigation wrong")
	}
	if _, ok := s.InDirection(geometry.Up); ok {
		t.Errorf("nothing is above TOP")
	}
}

func TestThreeMonitorNearestWins(t *testing.T) {
	s := WithMockMonitors([]MockMonitor{
		{Name: "LEFT", Geometry: geometry.NewRect(0, 0, 1920, 1080)},
		{Name: "CENTER", Geometry: geometry.NewRect(1920, 0, 2560, 1440), Primary: true},
		{Name: "RIGHT", Geometry: geometry.NewRect(4480, 0, 1920, 1080)},
	})
	left, _ := s.FindByName("LEFT")
	right, _ := s.FindByName("RIGHT")

	if got, ok := s.InDirection(geometry.Left); !ok || got != left {
		t.Errorf("left from center wrong")
	}
	if got, ok := s.InDirection(geometry.Right); !ok || got != right {
		t.Errorf("right from center wrong")
	}
}

func TestMonitorAtPoint(t *testing.T) {
	s := dualHead()
	dp1, _ := s.FindByName("DP-1")
	hdmi1, _ := s.FindByName("HDMI-1")

	if id, ok := s.MonitorAt(100, 100); !ok || id != dp1 {
		t.Errorf("point in DP-1 wrong")
	}
	if id, ok := s.MonitorAt(1919, 1079); !ok || id != dp1 {
		t.Errorf("edge point in DP-1 wrong")
	}
	if id, ok := s.MonitorAt(1920, 0); !ok || id != hdmi1 {
		t.Errorf("point in HDMI-1 wrong")
	}
	if _, ok := s.MonitorAt(-100, 100); ok {
		t.Errorf("point outside all monitors")
	}
}

func TestPerMonitorWorkspacesIndependent(t *testing.T) {
	s := dualHead()
	dp1, _ := s.FindByName("DP-1")
	hdmi1, _ := s.FindByName("HDMI-1")

	s.Get(dp1).Workspaces.SwitchTo(3)
	s.Get(hdmi1).Workspaces.SwitchTo(5)

	if s.Get(dp1).Workspaces.CurrentIndex() != 3 {
		t.Errorf("DP-1 workspace wrong")
	}
	if s.Get(hdmi1).Workspaces.CurrentIndex() != 5 {
		t.Errorf("HDMI-1 workspace wrong")
	}
}

func TestSetFocusedRejectsUnknown(t *testing.T) {
	s := dualHead()
	before := s.FocusedID()
	if s.SetFocused(MonitorID(9999)) {
		t.Errorf("unknown id accepted")
	}
	if s.FocusedID() != before {
		t.Errorf("focus changed on failure")
	}
}

func TestNoPrimaryFallsBackToFirst(t *testing.T) {
	s := WithMockMonitors([]MockMonitor{
		{Name: "A", Geometry: geometry.NewRect(0, 0, 800, 600)},
		{Name: "B", Geometry: geometry.NewRect(800, 0, 800, 600)},
	})
	if s.Focused() == nil || s.Focused().Name != "A" {
		t.Errorf("first monitor should be focused without a primary")
	}
}
