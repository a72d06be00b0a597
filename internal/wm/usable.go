package wm

import (
	"github.com/adereth/ttwm/internal/geometry"
)

// UsableScreen shrinks a monitor's geometry by dock struts and the outer
// gap. Struts are expressed in root coordinates; a strut only affects
// monitors it actually overlaps along the relevant edge band.
func UsableScreen(mon geometry.Rect, screenW, screenH uint32, struts []StrutPartial, outerGap uint32) geometry.Rect {
	x := mon.X
	y := mon.Y
	right := mon.X + int(mon.Width)
	bottom := mon.Y + int(mon.Height)

	for _, s := range struts {
		if s.Top > 0 && bandOverlaps(s.TopStartX, s.TopEndX, mon.X, right) && y < int(s.Top) {
			y = int(s.Top)
		}
		if s.Bottom > 0 && bandOverlaps(s.BottomStartX, s.BottomEndX, mon.X, right) {
			edge := int(screenH) - int(s.Bottom)
			if bottom > edge {
				bottom = edge
			}
		}
		if s.Left > 0 && bandOverlaps(s.LeftStartY, s.LeftEndY, mon.Y, bottom) && x < int(s.Left) {
			x = int(s.Left)
		}
		if s.Right > 0 && bandOverlaps(s.RightStartY, s.RightEndY, mon.Y, bottom) {
			edge := int(screenW) - int(s.Right)
			if right > edge {
				right = edge
			}
		}
	}

	x += int(outerGap)
	y += int(outerGap)
	right -= int(outerGap)
	bottom -= int(outerGap)

	var w, h uint32
	if right > x {
		w = uint32(right - x)
	}
	if bottom > y {
		h = uint32(bottom - y)
	}
	return geometry.Rect{X: x, Y: y, Width: w, Height: h}
}

// bandOverlaps reports whether the strut band [start, end] overlaps the
// monitor extent [lo, hi). A zero band means the whole screen edge.
func bandOverlaps(start, end uint32, lo, hi int) bool {
	if start == 0 && end == 0 {
		return true
	}
	return int(end) >= lo && int(start) < hi
}
