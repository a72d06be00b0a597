package wm

import "testing"

func newTestRenderer(t *testing.T) *FontRenderer {
	t.Helper()
	r, err := NewFontRenderer("", 12)
	if err != nil {
		t.Fatalf("embedded font must load: %v", err)
	}
	return r
}

func TestMeasureTextMonotonic(t *testing.T) {
	r := newTestRenderer(t)
	if r.MeasureText("") != 0 {
		t.Errorf("empty text has zero width")
	}
	short := r.MeasureText("ab")
	long := r.MeasureText("abcdef")
	if short <= 0 || long <= short {
		t.Errorf("longer text must measure wider: %d vs %d", short, long)
	}
}

func TestTruncateToWidth(t *testing.T) {
	r := newTestRenderer(t)
	title := "a very long window title that will not fit"
	full := r.MeasureText(title)

	if got := r.TruncateToWidth(title, full); got != title {
		t.Errorf("text that fits is returned unchanged")
	}

	truncated := r.TruncateToWidth(title, full/2)
	if truncated == title {
		t.Errorf("text should have been truncated")
	}
	if len(truncated) > 0 && truncated[len(truncated)-3:] != "..." {
		t.Errorf("truncated text ends with ellipsis: %q", truncated)
	}
	if r.MeasureText(truncated) > full/2 {
		t.Errorf("truncated text still too wide")
	}

	if r.TruncateToWidth(title, 0) != "" {
		t.Errorf("zero width leaves nothing")
	}
}

func TestRenderTextDimensions(t *testing.T) {
	r := newTestRenderer(t)
	pixels, w, h := r.RenderText("hello", 0xffffff, 0x2e2e2e)
	if w != r.MeasureText("hello") {
		t.Errorf("render width should match measurement")
	}
	if h != r.Height() {
		t.Errorf("render height should be the line height")
	}
	if len(pixels) != w*h*4 {
		t.Errorf("pixel buffer size wrong")
	}

	if pixels, w, h := r.RenderText("", 0, 0); pixels != nil || w != 0 || h != 0 {
		t.Errorf("empty text renders nothing")
	}
}

func TestRenderTextContainsForeground(t *testing.T) {
	r := newTestRenderer(t)
	pixels, w, h := r.RenderText("X", 0xffffff, 0x000000)
	lit := false
	for i := 0; i < w*h; i++ {
		if pixels[i*4] > 0x80 && pixels[i*4+1] > 0x80 && pixels[i*4+2] > 0x80 {
			lit = true
			break
		}
	}
	if !lit {
		t.Errorf("glyph should produce bright foreground pixels")
	}
}
