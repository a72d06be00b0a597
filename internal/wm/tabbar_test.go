package wm

import "testing"

func TestComputeTabLayoutClamps(t *testing.T) {
	tabs := ComputeTabLayout([]int{0, 60, 5000})
	if len(tabs) != 3 {
		t.Fatalf("expected 3 tabs")
	}
	if tabs[0].Width != TabMinWidth {
		t.Errorf("tiny title should clamp to min width, got %d", tabs[0].Width)
	}
	if tabs[2].Width != TabMaxWidth {
		t.Errorf("huge title should clamp to max width, got %d", tabs[2].Width)
	}
	if tabs[0].X != 0 {
		t.Errorf("first tab starts at 0")
	}
	for i := 1; i < len(tabs); i++ {
		want := tabs[i-1].X + int(tabs[i-1].Width)
		if tabs[i].X != want {
			t.Errorf("tab %d should pack at %d, got %d", i, want, tabs[i].X)
		}
	}
}

func TestComputeTabLayoutContentBased(t *testing.T) {
	tabs := ComputeTabLayout([]int{100})
	want := uint32(TabPadding + IconSize + TabIconGap + 100)
	if tabs[0].Width != want {
		t.Errorf("content-based width wrong: got %d, want %d", tabs[0].Width, want)
	}
}

func TestHitTab(t *testing.T) {
	tabs := ComputeTabLayout([]int{10, 10, 10})
	if i, ok := HitTab(tabs, 0); !ok || i != 0 {
		t.Errorf("left edge should hit tab 0")
	}
	if i, ok := HitTab(tabs, int(tabs[1].X)+1); !ok || i != 1 {
		t.Errorf("interior point should hit tab 1")
	}
	last := tabs[2]
	if _, ok := HitTab(tabs, last.X+int(last.Width)); ok {
		t.Errorf("point past the last tab misses")
	}
	if _, ok := HitTab(tabs, -1); ok {
		t.Errorf("negative point misses")
	}
}

func TestHitVerticalTab(t *testing.T) {
	if i, ok := HitVerticalTab(28, 3, 0); !ok || i != 0 {
		t.Errorf("top cell wrong")
	}
	if i, ok := HitVerticalTab(28, 3, 60); !ok || i != 2 {
		t.Errorf("third cell wrong: %d", i)
	}
	if _, ok := HitVerticalTab(28, 3, 84); ok {
		t.Errorf("past the last cell misses")
	}
	if _, ok := HitVerticalTab(28, 3, -1); ok {
		t.Errorf("negative point misses")
	}
	if _, ok := HitVerticalTab(0, 3, 10); ok {
		t.Errorf("zero cell size cannot hit")
	}
}
