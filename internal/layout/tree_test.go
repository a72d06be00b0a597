package layout

import (
	"testing"

	"github.com/BurntSushi/xgb/xproto"

	"github.com/adereth/ttwm/internal/geometry"
)

func TestNewTreeHasSingleEmptyRootFrame(t *testing.T) {
	tr := New()
	frames := tr.AllFrames()
	if len(frames) != 1 {
		t.Fatalf("expected 1 frame, got %d", len(frames))
	}
	if frames[0] != tr.Root {
		t.Errorf("root should be the only frame")
	}
	if tr.Focused != tr.Root {
		t.Errorf("root should be focused")
	}
	if !tr.Get(tr.Root).Frame.IsEmpty() {
		t.Errorf("root frame should be empty")
	}
	if v := tr.CheckInvariants(); len(v) != 0 {
		t.Errorf("new tree has violations: %v", v)
	}
}

func TestAddWindowFocusesNewTab(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	tr.AddWindow(2)
	tr.AddWindow(3)

	f := tr.FocusedFrame()
	if len(f.Windows) != 3 {
		t.Fatalf("expected 3 windows, got %d", len(f.Windows))
	}
	if f.Focused != 2 {
		t.Errorf("expected focused tab 2, got %d", f.Focused)
	}
	if f.FocusedWindow() != 3 {
		t.Errorf("expected focused window 3, got %d", f.FocusedWindow())
	}
}

func TestRemoveWindowClampsFocus(t *testing.T) {
	tr := New()
	for w := xproto.Window(1); w <= 3; w++ {
		tr.AddWindow(w)
	}
	if _, ok := tr.RemoveWindow(3); !ok {
		t.Fatal("remove failed")
	}
	f := tr.FocusedFrame()
	if f.Focused != 1 {
		t.Errorf("expected focus clamped to 1, got %d", f.Focused)
	}

	tr.RemoveWindow(1)
	tr.RemoveWindow(2)
	if !f.IsEmpty() {
		t.Errorf("frame should be empty")
	}
	if f.Focused != 0 {
		t.Errorf("empty frame focus should be 0, got %d", f.Focused)
	}
	// The frame is never collapsed by window removal.
	if len(tr.AllFrames()) != 1 {
		t.Errorf("root frame must survive removal of its last window")
	}
}

func TestSplitFocused(t *testing.T) {
	tr := New()
	tr.AddWindow(10)
	oldFocused := tr.Focused

	newFrame := tr.SplitFocused(geometry.Horizontal)

	if tr.Focused != newFrame {
		t.Errorf("new empty frame should be focused")
	}
	if !tr.FocusedFrame().IsEmpty() {
		t.Errorf("new frame should be empty")
	}
	root := tr.Get(tr.Root)
	if root.Split == nil {
		t.Fatal("root should be a split")
	}
	if root.Split.Direction != geometry.Horizontal {
		t.Errorf("wrong split direction")
	}
	if root.Split.Ratio != 0.5 {
		t.Errorf("expected ratio 0.5, got %f", root.Split.Ratio)
	}
	if root.Split.First != oldFocused || root.Split.Second != newFrame {
		t.Errorf("split children wrong: %v %v", root.Split.First, root.Split.Second)
	}
	if len(tr.AllFrames()) != 2 {
		t.Errorf("expected 2 frames")
	}
	if v := tr.CheckInvariants(); len(v) != 0 {
		t.Errorf("violations after split: %v", v)
	}
}

func TestNestedSplitsKeepParentLinks(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	tr.SplitFocused(geometry.Horizontal)
	tr.AddWindow(2)
	tr.SplitFocused(geometry.Vertical)
	tr.AddWindow(3)

	if len(tr.AllFrames()) != 3 {
		t.Fatalf("expected 3 frames, got %d", len(tr.AllFrames()))
	}
	if v := tr.CheckInvariants(); len(v) != 0 {
		t.Errorf("violations: %v", v)
	}
}

func TestFocusTabClampsIndex(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	tr.AddWindow(2)

	if w, ok := tr.FocusTab(99); !ok || w != 2 {
		t.Errorf("out-of-range index should clamp to last tab, got %d %v", w, ok)
	}
	if w, ok := tr.FocusTab(-5); !ok || w != 1 {
		t.Errorf("negative index should clamp to first tab, got %d %v", w, ok)
	}
	if w, ok := tr.FocusTab(1); !ok || w != 2 {
		t.Errorf("expected window 2, got %d %v", w, ok)
	}
}

func TestFocusTabOnEmptyFrame(t *testing.T) {
	tr := New()
	if _, ok := tr.FocusTab(0); ok {
		t.Errorf("focusing a tab in an empty frame should report false")
	}
}

func TestCycleTabWraps(t *testing.T) {
	tr := New()
	for w := xproto.Window(1); w <= 3; w++ {
		tr.AddWindow(w)
	}
	// Focused is tab 2 (window 3); forward wraps to tab 0.
	if w, _ := tr.CycleTab(true); w != 1 {
		t.Errorf("expected wrap to window 1, got %d", w)
	}
	if w, _ := tr.CycleTab(false); w != 3 {
		t.Errorf("expected wrap back to window 3, got %d", w)
	}
}

func TestReorderTab(t *testing.T) {
	tr := New()
	for w := xproto.Window(1); w <= 3; w++ {
		tr.AddWindow(w)
	}
	f := tr.FocusedFrame()
	f.Focused = 0

	// [1,2,3] focused=1 -> drop window 1 at the last position -> [2,3,1]
	if !tr.ReorderTab(tr.Focused, 0, 2) {
		t.Fatal("reorder failed")
	}
	want := []xproto.Window{2, 3, 1}
	for i, w := range want {
		if f.Windows[i] != w {
			t.Fatalf("after reorder got %v, want %v", f.Windows, want)
		}
	}
	if f.Focused != 2 {
		t.Errorf("focused tab should follow the moved window, got %d", f.Focused)
	}
}

func TestMoveWindowToFrameLeavesEmptySource(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	src := tr.Focused
	dst := tr.SplitFocused(geometry.Horizontal)

	if !tr.MoveWindowToFrame(1, src, dst) {
		t.Fatal("move failed")
	}
	if !tr.Get(src).Frame.IsEmpty() {
		t.Errorf("source frame should be empty")
	}
	if tr.Get(dst).Frame.FocusedWindow() != 1 {
		t.Errorf("destination should focus the moved window")
	}
	// Empty source is legal and is not collapsed by the move itself.
	if len(tr.AllFrames()) != 2 {
		t.Errorf("move must not collapse the source frame")
	}
}

func TestMoveWindowToAdjacent(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	first := tr.Focused
	tr.SplitFocused(geometry.Horizontal)
	second := tr.Focused
	tr.AddWindow(2)
	tr.AddWindow(3)

	w, ok := tr.MoveWindowToAdjacent(true)
	if !ok || w != 3 {
		t.Fatalf("expected to move window 3, got %d %v", w, ok)
	}
	if tr.Focused != first {
		t.Errorf("focus should follow into the adjacent frame")
	}
	if got := tr.Get(first).Frame.Windows; len(got) != 2 || got[1] != 3 {
		t.Errorf("first frame windows wrong: %v", got)
	}
	if got := tr.Get(second).Frame.Windows; len(got) != 1 || got[0] != 2 {
		t.Errorf("second frame windows wrong: %v", got)
	}
}

func TestSingleFrameNavigationIsNoOp(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	if tr.FocusNextFrame(true) {
		t.Errorf("single-frame focus navigation should return false")
	}
	if _, ok := tr.MoveWindowToAdjacent(true); ok {
		t.Errorf("single-frame move should return false")
	}
}

func TestSetSplitRatioClamps(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	tr.SplitFocused(geometry.Horizontal)
	split := tr.Root

	if !tr.SetSplitRatio(split, 0.0) {
		t.Fatal("set ratio failed")
	}
	if r := tr.Get(split).Split.Ratio; r != MinRatio {
		t.Errorf("expected clamp to %f, got %f", MinRatio, r)
	}
	tr.SetSplitRatio(split, 1.0)
	if r := tr.Get(split).Split.Ratio; r != MaxRatio {
		t.Errorf("expected clamp to %f, got %f", MaxRatio, r)
	}
}

func TestResizeFocusedSplitRepeatedClamps(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	tr.SplitFocused(geometry.Horizontal)

	for i := 0; i < 50; i++ {
		tr.ResizeFocusedSplit(-0.05)
	}
	if r := tr.Get(tr.Root).Split.Ratio; r != MinRatio {
		t.Errorf("repeated shrink should pin at %f, got %f", MinRatio, r)
	}
	for i := 0; i < 50; i++ {
		tr.ResizeFocusedSplit(0.05)
	}
	if r := tr.Get(tr.Root).Split.Ratio; r != MaxRatio {
		t.Errorf("repeated grow should pin at %f, got %f", MaxRatio, r)
	}
	if v := tr.CheckInvariants(); len(v) != 0 {
		t.Errorf("violations: %v", v)
	}
}

func TestResizeWithoutSplitFails(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	if tr.ResizeFocusedSplit(0.05) {
		t.Errorf("resize without an enclosing split should return false")
	}
}

func TestCalculateGeometriesSplitRule(t *testing.T) {
	screen := geometry.NewRect(0, 0, 1000, 800)
	tr := New()
	tr.AddWindow(1)
	tr.SplitFocused(geometry.Horizontal)

	geoms := tr.CalculateGeometries(screen, 8)
	if len(geoms) != 2 {
		t.Fatalf("expected 2 geometries, got %d", len(geoms))
	}
	first, second := geoms[0].Rect, geoms[1].Rect

	// ratio 0.5, gap 8: first = 500-4 = 496, second = 1000-496-8 = 496.
	if first.Width != 496 || second.Width != 496 {
		t.Errorf("widths wrong: %d %d", first.Width, second.Width)
	}
	if second.X != first.X+int(first.Width)+8 {
		t.Errorf("second child should start after the gap")
	}
	if first.Height != 800 || second.Height != 800 {
		t.Errorf("heights should span the screen")
	}
}

func TestCalculateGeometriesContainedAndDisjoint(t *testing.T) {
	screen := geometry.NewRect(10, 20, 1200, 700)
	tr := New()
	tr.AddWindow(1)
	tr.SplitFocused(geometry.Horizontal)
	tr.AddWindow(2)
	tr.SplitFocused(geometry.Vertical)
	tr.AddWindow(3)

	geoms := tr.CalculateGeometries(screen, 6)
	if len(geoms) != len(tr.AllFrames()) {
		t.Fatalf("one rectangle per frame, got %d for %d frames", len(geoms), len(tr.AllFrames()))
	}
	for i, g := range geoms {
		r := g.Rect
		if r.X < screen.X || r.Y < screen.Y ||
			r.X+int(r.Width) > screen.X+int(screen.Width) ||
			r.Y+int(r.Height) > screen.Y+int(screen.Height) {
			t.Errorf("rect %d escapes the screen: %+v", i, r)
		}
		for j := i + 1; j < len(geoms); j++ {
			o := geoms[j].Rect
			if rectsOverlap(r, o) {
				t.Errorf("rects %d and %d overlap: %+v %+v", i, j, r, o)
			}
		}
	}
}

func rectsOverlap(a, b geometry.Rect) bool {
	return a.X < b.X+int(b.Width) && b.X < a.X+int(a.Width) &&
		a.Y < b.Y+int(b.Height) && b.Y < a.Y+int(a.Height)
}

func TestCalculateGeometriesTinyScreenSaturates(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	tr.SplitFocused(geometry.Horizontal)
	geoms := tr.CalculateGeometries(geometry.NewRect(0, 0, 4, 4), 8)
	for _, g := range geoms {
		if int32(g.Rect.Width) < 0 || int32(g.Rect.Height) < 0 {
			t.Errorf("sizes must saturate at zero: %+v", g.Rect)
		}
	}
}

func TestFindSplitAtGap(t *testing.T) {
	screen := geometry.NewRect(0, 0, 1000, 800)
	tr := New()
	tr.AddWindow(1)
	tr.SplitFocused(geometry.Horizontal)

	// The gutter spans x in [496, 504).
	hit, ok := tr.FindSplitAtGap(screen, 8, 500, 400)
	if !ok {
		t.Fatal("expected a gutter hit")
	}
	if hit.Split != tr.Root {
		t.Errorf("expected root split")
	}
	if hit.Direction != geometry.Horizontal {
		t.Errorf("wrong direction")
	}
	if hit.Start != 0 || hit.Total != 1000 {
		t.Errorf("axis bounds wrong: %d %d", hit.Start, hit.Total)
	}

	if _, ok := tr.FindSplitAtGap(screen, 8, 100, 400); ok {
		t.Errorf("point inside a frame should not hit a gutter")
	}
}

func TestRemoveFrameByIDCollapsesParent(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	first := tr.Focused
	second := tr.SplitFocused(geometry.Horizontal)

	if !tr.RemoveFrameByID(second) {
		t.Fatal("remove failed")
	}
	if tr.Root != first {
		t.Errorf("sibling should take the root slot")
	}
	if !tr.Parent(first).IsZero() {
		t.Errorf("new root should have no parent")
	}
	if tr.Focused != first {
		t.Errorf("focus should move to the sibling")
	}
	if tr.Get(second) != nil {
		t.Errorf("stale id should fail lookups")
	}
	if v := tr.CheckInvariants(); len(v) != 0 {
		t.Errorf("violations: %v", v)
	}
}

func TestRemoveRootFrameResets(t *testing.T) {
	tr := New()
	if !tr.RemoveFrameByID(tr.Root) {
		t.Fatal("removing the empty root should succeed")
	}
	if len(tr.AllFrames()) != 1 {
		t.Errorf("tree should still hold a single empty frame")
	}
	if tr.RemoveFrameByID(tr.Root) != true {
		t.Errorf("root reset should be repeatable")
	}

	tr.AddWindow(1)
	if tr.RemoveFrameByID(tr.Root) {
		t.Errorf("non-empty root must not be removable")
	}
}

func TestGenerationalIDsDoNotAlias(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	second := tr.SplitFocused(geometry.Horizontal)
	tr.RemoveFrameByID(second)

	// Allocate again; the slot may be reused but the old id must stay dead.
	tr.SplitFocused(geometry.Vertical)
	if tr.Get(second) != nil {
		t.Errorf("freed id must not resolve after slot reuse")
	}
}

func TestRemoveEmptyFramesSkipsRootAndFocused(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	src := tr.Focused
	tr.SplitFocused(geometry.Horizontal)
	dst := tr.Focused

	// Move the window into the new frame; source becomes empty.
	tr.MoveWindowToFrame(1, src, dst)
	tr.Focused = dst

	if !tr.RemoveEmptyFrames() {
		t.Fatal("expected the empty source frame to be removed")
	}
	if len(tr.AllFrames()) != 1 {
		t.Errorf("expected a single frame, got %d", len(tr.AllFrames()))
	}
	// The focused empty frame is left alone.
	tr.SplitFocused(geometry.Horizontal)
	if tr.RemoveEmptyFrames() {
		t.Errorf("focused empty frame must not be collapsed")
	}
}

func TestFrameNames(t *testing.T) {
	tr := New()
	if !tr.SetFrameName(tr.Root, "main") {
		t.Fatal("set name failed")
	}
	if tr.FrameName(tr.Root) != "main" {
		t.Errorf("name not stored")
	}
	id, ok := tr.FindFrameByName("main")
	if !ok || id != tr.Root {
		t.Errorf("lookup by name failed")
	}
	tr.SetFrameName(tr.Root, "")
	if _, ok := tr.FindFrameByName("main"); ok {
		t.Errorf("cleared name should not resolve")
	}
	if _, ok := tr.FindFrameByName(""); ok {
		t.Errorf("empty name must never match")
	}
}

func TestSnapshotRoundTrip(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	tr.SetFrameName(tr.Focused, "left")
	tr.SplitFocused(geometry.Horizontal)
	tr.AddWindow(2)
	tr.AddWindow(3)
	tr.SplitFocused(geometry.Vertical)
	tr.SetSplitRatio(tr.Root, 0.3)

	snap := tr.Snapshot(nil)
	rebuilt, err := FromSnapshot(snap)
	if err != nil {
		t.Fatalf("rebuild failed: %v", err)
	}
	if !StructurallyEqual(tr, rebuilt) {
		t.Errorf("round trip changed the tree structure")
	}
	if v := rebuilt.CheckInvariants(); len(v) != 0 {
		t.Errorf("rebuilt tree has violations: %v", v)
	}
}

func TestSnapshotIncludesGeometries(t *testing.T) {
	tr := New()
	tr.AddWindow(7)
	geoms := tr.CalculateGeometries(geometry.NewRect(0, 0, 640, 480), 0)
	snap := tr.Snapshot(geoms)
	if snap.Root.Geometry == nil {
		t.Fatal("frame snapshot should carry its geometry")
	}
	if snap.Root.Geometry.Width != 640 || snap.Root.Geometry.Height != 480 {
		t.Errorf("geometry wrong: %+v", snap.Root.Geometry)
	}
	if snap.Root.Type != "frame" || len(snap.Root.Windows) != 1 || snap.Root.Windows[0] != 7 {
		t.Errorf("frame snapshot wrong: %+v", snap.Root)
	}
}

func TestDuplicateWindowDetected(t *testing.T) {
	tr := New()
	tr.AddWindow(1)
	tr.SplitFocused(geometry.Horizontal)
	// Bypass the public API to corrupt the tree.
	tr.FocusedFrame().Windows = append(tr.FocusedFrame().Windows, 1)
	if v := tr.CheckInvariants(); len(v) == 0 {
		t.Errorf("duplicate window should be reported")
	}
}
