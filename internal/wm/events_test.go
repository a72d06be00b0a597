package wm

import "testing"

func TestResizeFloatRightEdge(t *testing.T) {
	d := &floatResize{edge: edgeRight, origX: 10, origY: 20, origW: 300, origH: 200}
	x, y, w, h := resizeFloatGeometry(d, 50, 999)
	if x != 10 || y != 20 {
		t.Errorf("right edge must not move the origin")
	}
	if w != 350 || h != 200 {
		t.Errorf("right edge adjusts width only: %dx%d", w, h)
	}
}

func TestResizeFloatLeftEdgeMovesOrigin(t *testing.T) {
	d := &floatResize{edge: edgeLeft, origX: 100, origY: 0, origW: 300, origH: 200}
	x, _, w, _ := resizeFloatGeometry(d, 40, 0)
	if x != 140 || w != 260 {
		t.Errorf("left edge drag wrong: x=%d w=%d", x, w)
	}
}

func TestResizeFloatCornerAdjustsBothAxes(t *testing.T) {
	d := &floatResize{edge: edgeBottomRight, origX: 0, origY: 0, origW: 300, origH: 200}
	_, _, w, h := resizeFloatGeometry(d, 25, 35)
	if w != 325 || h != 235 {
		t.Errorf("corner drag wrong: %dx%d", w, h)
	}
}

func TestResizeFloatMinimumSize(t *testing.T) {
	d := &floatResize{edge: edgeBottomRight, origX: 0, origY: 0, origW: 300, origH: 200}
	_, _, w, h := resizeFloatGeometry(d, -500, -500)
	if w != floatMinSize || h != floatMinSize {
		t.Errorf("minimum size not enforced: %dx%d", w, h)
	}

	// Dragging the left edge far right stops at the minimum width.
	d = &floatResize{edge: edgeLeft, origX: 0, origY: 0, origW: 300, origH: 200}
	x, _, w, _ := resizeFloatGeometry(d, 5000, 0)
	if w != floatMinSize {
		t.Errorf("left drag must clamp width: %d", w)
	}
	if x != int(300)-floatMinSize {
		t.Errorf("origin clamps with the width: %d", x)
	}
}

func TestResizeFloatTopEdge(t *testing.T) {
	d := &floatResize{edge: edgeTop, origX: 0, origY: 50, origW: 300, origH: 200}
	_, y, _, h := resizeFloatGeometry(d, 0, -30)
	if y != 20 || h != 230 {
		t.Errorf("top edge drag wrong: y=%d h=%d", y, h)
	}
}
