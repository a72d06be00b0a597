package wm

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"

	"github.com/adereth/ttwm/internal/logger"
)

// FontRenderer rasterises anti-aliased tab-bar text into the BGRA buffers
// PutImage uploads. The face comes from a configured TTF/OTF path, falling
// back to the embedded Go Mono face.
type FontRenderer struct {
	face   font.Face
	height int
	ascent int
}

// NewFontRenderer loads the configured font. fontPath may be empty or a
// generic name like "monospace", both of which select the embedded face.
func NewFontRenderer(fontPath string, size uint32) (*FontRenderer, error) {
	log := logger.WithComponent("font")

	data := gomono.TTF
	if fontPath != "" && fontPath != "monospace" {
		if fileData, err := os.ReadFile(fontPath); err == nil {
			data = fileData
			log.Info().Str("path", fontPath).Msg("Loaded font")
		} else {
			log.Warn().Str("path", fontPath).Err(err).Msg("Font not readable, using embedded Go Mono")
		}
	}

	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(size),
		DPI:     96,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create font face: %w", err)
	}

	metrics := face.Metrics()
	return &FontRenderer{
		face:   face,
		height: metrics.Height.Ceil(),
		ascent: metrics.Ascent.Ceil(),
	}, nil
}

// Height returns the line height in pixels.
func (r *FontRenderer) Height() int {
	return r.height
}

// MeasureText returns the advance width of text in pixels.
func (r *FontRenderer) MeasureText(text string) int {
	return font.MeasureString(r.face, text).Ceil()
}

// TruncateToWidth shortens text to fit maxWidth pixels, appending "..." when
// anything was cut.
func (r *FontRenderer) TruncateToWidth(text string, maxWidth int) string {
	if text == "" || maxWidth <= 0 {
		return ""
	}
	if r.MeasureText(text) <= maxWidth {
		return text
	}
	const ellipsis = "..."
	avail := maxWidth - r.MeasureText(ellipsis)
	if avail <= 0 {
		return ""
	}
	runes := []rune(text)
	kept := 0
	for kept < len(runes) {
		if r.MeasureText(string(runes[:kept+1])) > avail {
			break
		}
		kept++
	}
	return string(runes[:kept]) + ellipsis
}

// RenderText rasterises text over a solid background and returns BGRA pixel
// data plus its dimensions. Colours are 0xRRGGBB.
func (r *FontRenderer) RenderText(text string, fg, bg uint32) ([]byte, int, int) {
	if text == "" {
		return nil, 0, 0
	}
	width := r.MeasureText(text)
	height := r.height
	if width == 0 || height == 0 {
		return nil, 0, 0
	}

	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	draw.Draw(img, img.Bounds(), image.NewUniform(pixelToColor(bg)), image.Point{}, draw.Src)

	drawer := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(pixelToColor(fg)),
		Face: r.face,
		Dot:  fixed.P(0, r.ascent),
	}
	drawer.DrawString(text)

	out := make([]byte, width*height*4)
	for i := 0; i < width*height; i++ {
		out[i*4] = img.Pix[i*4+2]   // B
		out[i*4+1] = img.Pix[i*4+1] // G
		out[i*4+2] = img.Pix[i*4]   // R
		out[i*4+3] = 0xff
	}
	return out, width, height
}

func pixelToColor(pixel uint32) color.NRGBA {
	return color.NRGBA{
		R: byte(pixel >> 16),
		G: byte(pixel >> 8),
		B: byte(pixel),
		A: 0xff,
	}
}
