package geometry

import "testing"

func TestRectCenter(t *testing.T) {
	r := NewRect(0, 0, 100, 100)
	if r.CenterX() != 50 || r.CenterY() != 50 {
		t.Errorf("center wrong: %d,%d", r.CenterX(), r.CenterY())
	}
	r = NewRect(10, 20, 100, 200)
	if r.CenterX() != 60 || r.CenterY() != 120 {
		t.Errorf("offset center wrong: %d,%d", r.CenterX(), r.CenterY())
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 100, 50)
	if !r.Contains(10, 10) {
		t.Errorf("top-left corner is inside")
	}
	if r.Contains(110, 10) || r.Contains(10, 60) {
		t.Errorf("right/bottom edges are exclusive")
	}
	if r.Contains(9, 10) {
		t.Errorf("left of the rect is outside")
	}
}

func TestSatSub(t *testing.T) {
	if SatSub(10, 3) != 7 {
		t.Errorf("plain subtraction wrong")
	}
	if SatSub(3, 10) != 0 {
		t.Errorf("must saturate at zero")
	}
	if SatSub(5, 5) != 0 {
		t.Errorf("equal operands give zero")
	}
}

func TestParseSplitDirection(t *testing.T) {
	for _, s := range []string{"horizontal", "h"} {
		if d, err := ParseSplitDirection(s); err != nil || d != Horizontal {
			t.Errorf("ParseSplitDirection(%q) wrong", s)
		}
	}
	for _, s := range []string{"vertical", "v"} {
		if d, err := ParseSplitDirection(s); err != nil || d != Vertical {
			t.Errorf("ParseSplitDirection(%q) wrong", s)
		}
	}
	if _, err := ParseSplitDirection("diagonal"); err == nil {
		t.Errorf("invalid direction must fail")
	}
}

func TestParseDirection(t *testing.T) {
	cases := map[string]Direction{
		"left": Left, "l": Left,
		"right": Right, "r": Right,
		"up": Up, "u": Up,
		"down": Down, "d": Down,
	}
	for s, want := range cases {
		if d, err := ParseDirection(s); err != nil || d != want {
			t.Errorf("ParseDirection(%q) = %v, %v", s, d, err)
		}
	}
	if _, err := ParseDirection("sideways"); err == nil {
		t.Errorf("invalid direction must fail")
	}
}

func TestDirectionStrings(t *testing.T) {
	if Horizontal.String() != "horizontal" || Vertical.String() != "vertical" {
		t.Errorf("split direction strings wrong")
	}
	if Left.String() != "left" || Down.String() != "down" {
		t.Errorf("direction strings wrong")
	}
}
