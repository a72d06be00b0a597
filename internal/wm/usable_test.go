package wm

import (
	"testing"

	"github.com/adereth/ttwm/internal/geometry"
)

func TestUsableScreenOuterGapOnly(t *testing.T) {
	mon := geometry.NewRect(0, 0, 1280, 800)
	got := UsableScreen(mon, 1280, 800, nil, 8)
	want := geometry.NewRect(8, 8, 1264, 784)
	if got != want {
		t.Errorf("got %+v, want %+v", got, want)
	}
}

func TestUsableScreenTopStrut(t *testing.T) {
	mon := geometry.NewRect(0, 0, 1920, 1080)
	struts := []StrutPartial{{Top: 30}}
	got := UsableScreen(mon, 1920, 1080, struts, 0)
	if got.Y != 30 || got.Height != 1050 {
		t.Errorf("top strut not applied: %+v", got)
	}
}

func TestUsableScreenBottomStrut(t *testing.T) {
	mon := geometry.NewRect(0, 0, 1920, 1080)
	struts := []StrutPartial{{Bottom: 40}}
	got := UsableScreen(mon, 1920, 1080, struts, 0)
	if got.Height != 1040 {
		t.Errorf("bottom strut not applied: %+v", got)
	}
}

func TestStrutOnOtherMonitorIgnored(t *testing.T) {
	// A bar spanning only the left monitor must not shrink the right one.
	right := geometry.NewRect(1920, 0, 1920, 1080)
	struts := []StrutPartial{{Top: 30, TopStartX: 0, TopEndX: 1919}}
	got := UsableScreen(right, 3840, 1080, struts, 0)
	if got.Y != 0 || got.Height != 1080 {
		t.Errorf("foreign strut applied: %+v", got)
	}
}

func TestStrutBandOverlappingMonitorApplies(t *testing.T) {
	left := geometry.NewRect(0, 0, 1920, 1080)
	struts := []StrutPartial{{Top: 30, TopStartX: 0, TopEndX: 1919}}
	got := UsableScreen(left, 3840, 1080, struts, 0)
	if got.Y != 30 {
		t.Errorf("band strut not applied: %+v", got)
	}
}

func TestUsableScreenNeverNegative(t *testing.T) {
	mon := geometry.NewRect(0, 0, 100, 100)
	struts := []StrutPartial{{Top: 90, Bottom: 90}}
	got := UsableScreen(mon, 100, 100, struts, 8)
	if int32(got.Width) < 0 || int32(got.Height) < 0 {
		t.Errorf("dimensions must saturate: %+v", got)
	}
	if got.Height != 0 {
		t.Errorf("over-constrained screen collapses to zero height, got %d", got.Height)
	}
}
