package wm

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"os"

	"github.com/BurntSushi/xgb/xproto"
)

// captureScreenshot grabs the root window contents and writes them as PNG.
func (wm *WM) captureScreenshot(path string) error {
	geom, err := xproto.GetGeometry(wm.conn, xproto.Drawable(wm.root)).Reply()
	if err != nil {
		return fmt.Errorf("failed to query root geometry: %w", err)
	}

	reply, err := xproto.GetImage(wm.conn, xproto.ImageFormatZPixmap,
		xproto.Drawable(wm.root), 0, 0, geom.Width, geom.Height, ^uint32(0)).Reply()
	if err != nil {
		return fmt.Errorf("failed to capture root image: %w", err)
	}
	if reply.Depth != 24 && reply.Depth != 32 {
		return fmt.Errorf("unsupported color depth: %d", reply.Depth)
	}

	img := convertZPixmap(reply.Data, int(geom.Width), int(geom.Height), reply.Depth)

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create screenshot file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode screenshot: %w", err)
	}
	wm.log.Info().Str("path", path).Msg("Screenshot saved")
	return nil
}

// convertZPixmap turns the server's BGRA/BGR data into an RGBA image.
func convertZPixmap(data []byte, width, height int, depth byte) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	// 24-bit ZPixmap data is still padded to 32-bit units.
	const bytesPerPixel = 4
	stride := width * bytesPerPixel

	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			offset := y*stride + x*bytesPerPixel
			if offset+2 >= len(data) {
				continue
			}
			b := data[offset]
			g := data[offset+1]
			r := data[offset+2]
			a := byte(255)
			if depth == 32 && offset+3 < len(data) {
				a = data[offset+3]
				if a == 0 {
					a = 255
				}
			}
			img.SetRGBA(x, y, color.RGBA{R: r, G: g, B: b, A: a})
		}
	}
	return img
}
