package wm

import (
	"image"

	"github.com/BurntSushi/xgb"
	"github.com/BurntSushi/xgb/xproto"
	xdraw "golang.org/x/image/draw"
)

// IconSize is the square icon cell in the tab bar, in pixels.
const IconSize = 20

// CachedIcon is a rendered window icon: IconSize×IconSize BGRA pixels.
type CachedIcon struct {
	Pixels []byte
}

// FetchIcon reads _NET_WM_ICON, picks the largest candidate by pixel count,
// and scales it to targetSize with nearest-neighbour. Returns nil when the
// window carries no icon.
func FetchIcon(conn *xgb.Conn, atoms *Atoms, win xproto.Window, targetSize uint32) *CachedIcon {
	reply, err := getProperty(conn, win, atoms.NetWmIcon, xproto.AtomCardinal, (1<<32-1)/4)
	if err != nil {
		return nil
	}
	data := propCardinals(reply)
	if len(data) < 3 {
		return nil
	}

	var bestPixels []uint32
	var bestW, bestH uint32

	for idx := 0; idx+2 < len(data); {
		width, height := data[idx], data[idx+1]
		count := int(width) * int(height)
		if width == 0 || height == 0 || idx+2+count > len(data) {
			break
		}
		pixels := data[idx+2 : idx+2+count]

		if bestPixels == nil || count > int(bestW)*int(bestH) {
			bestPixels, bestW, bestH = pixels, width, height
		}

		idx += 2 + count
	}

	if bestPixels == nil {
		return nil
	}
	return &CachedIcon{Pixels: ScaleIcon(bestPixels, bestW, bestH, targetSize)}
}

// ScaleIcon converts _NET_WM_ICON ARGB data to BGRA at the target square
// size using nearest-neighbour scaling.
func ScaleIcon(src []uint32, srcW, srcH, dstSize uint32) []byte {
	srcImg := image.NewNRGBA(image.Rect(0, 0, int(srcW), int(srcH)))
	for y := uint32(0); y < srcH; y++ {
		for x := uint32(0); x < srcW; x++ {
			pixel := src[y*srcW+x]
			i := srcImg.PixOffset(int(x), int(y))
			srcImg.Pix[i] = byte(pixel >> 16)   // R
			srcImg.Pix[i+1] = byte(pixel >> 8)  // G
			srcImg.Pix[i+2] = byte(pixel)       // B
			srcImg.Pix[i+3] = byte(pixel >> 24) // A
		}
	}

	dstImg := image.NewNRGBA(image.Rect(0, 0, int(dstSize), int(dstSize)))
	xdraw.NearestNeighbor.Scale(dstImg, dstImg.Bounds(), srcImg, srcImg.Bounds(), xdraw.Src, nil)

	out := make([]byte, dstSize*dstSize*4)
	for i := 0; i < len(out); i += 4 {
		out[i] = dstImg.Pix[i+2]   // B
		out[i+1] = dstImg.Pix[i+1] // G
		out[i+2] = dstImg.Pix[i]   // R
		out[i+3] = dstImg.Pix[i+3] // A
	}
	return out
}

// DefaultIcon generates the fallback icon for windows without _NET_WM_ICON:
// a window outline with a title bar, in BGRA.
func DefaultIcon() *CachedIcon {
	const size = IconSize
	pixels := make([]byte, size*size*4)

	border := [4]byte{0x88, 0x88, 0x88, 0xff}
	titleBar := [4]byte{0xaa, 0xaa, 0xaa, 0xff}
	background := [4]byte{0x3a, 0x3a, 0x3a, 0xff}
	transparent := [4]byte{}

	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			var px [4]byte
			switch {
			case x < 2 || x >= 18 || y < 2 || y >= 18:
				px = transparent
			case x == 2 || x == 17 || y == 2 || y == 17:
				px = border
			case y >= 3 && y <= 5:
				px = titleBar
			default:
				px = background
			}
			copy(pixels[(y*size+x)*4:], px[:])
		}
	}
	return &CachedIcon{Pixels: pixels}
}

// BlendIconWithBackground alpha-blends BGRA icon pixels over a solid colour,
// producing the BGRX data PutImage expects.
func BlendIconWithBackground(iconBGRA []byte, bg uint32, size uint32) []byte {
	bgR := float32((bg >> 16) & 0xff)
	bgG := float32((bg >> 8) & 0xff)
	bgB := float32(bg & 0xff)

	count := int(size * size)
	out := make([]byte, count*4)
	for i := 0; i < count; i++ {
		src := i * 4
		if src+3 >= len(iconBGRA) {
			break
		}
		b := float32(iconBGRA[src])
		g := float32(iconBGRA[src+1])
		r := float32(iconBGRA[src+2])
		a := float32(iconBGRA[src+3]) / 255.0
		inv := 1.0 - a

		out[src] = byte(b*a + bgB*inv)
		out[src+1] = byte(g*a + bgG*inv)
		out[src+2] = byte(r*a + bgR*inv)
	}
	return out
}
