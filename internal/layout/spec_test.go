package layout

import (
	"testing"

	"github.com/adereth/ttwm/internal/geometry"
)

func TestReplaceFromSpecSingleFrame(t *testing.T) {
	tr := New()
	tr.AddWindow(1)

	pending := tr.ReplaceFromSpec(&NodeSpec{
		Frame: &FrameSpec{Name: "main", Apps: []string{"alacritty"}},
	})

	if len(tr.AllFrames()) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(tr.AllFrames()))
	}
	if tr.FrameName(tr.Root) != "main" {
		t.Errorf("frame name lost")
	}
	if len(pending) != 1 || len(pending[0].Apps) != 1 || pending[0].Apps[0] != "alacritty" {
		t.Errorf("pending apps wrong: %+v", pending)
	}
	if pending[0].ID != tr.Root {
		t.Errorf("pending app should target the created frame")
	}
}

func TestReplaceFromSpecSplitLayout(t *testing.T) {
	tr := New()
	pending := tr.ReplaceFromSpec(&NodeSpec{
		Split: &SplitSpec{
			Direction: geometry.Horizontal,
			Ratio:     0.6,
			First:     &NodeSpec{Frame: &FrameSpec{Name: "left", Apps: []string{"code"}}},
			Second:    &NodeSpec{Frame: &FrameSpec{Name: "right", VerticalTabs: true, Apps: []string{"firefox"}}},
		},
	})

	if len(tr.AllFrames()) != 2 {
		t.Fatalf("expected 2 frames, got %d", len(tr.AllFrames()))
	}
	root := tr.Get(tr.Root)
	if root.Split == nil || root.Split.Ratio != 0.6 {
		t.Fatalf("root should be a 0.6 split")
	}
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending spawns, got %d", len(pending))
	}
	if _, ok := tr.FindFrameByName("right"); !ok {
		t.Errorf("named frame missing")
	}
	if f := tr.Get(tr.Focused); f.Frame == nil {
		t.Errorf("focused must be a frame")
	}
	if v := tr.CheckInvariants(); len(v) != 0 {
		t.Errorf("violations: %v", v)
	}
}

func TestReplaceFromSpecNilResets(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	tr.SplitFocused(geometry.Vertical)

	if pending := tr.ReplaceFromSpec(nil); pending != nil {
		t.Errorf("nil spec should produce no spawns")
	}
	if len(tr.AllFrames()) != 1 || !tr.Get(tr.Root).Frame.IsEmpty() {
		t.Errorf("nil spec should reset to a single empty frame")
	}
}
