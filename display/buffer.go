package display

import (
	"image"

	"github.com/BeatGlow/inkboard/pixel"
)

// bufferSize is the packed frame size of a w x h panel.
func bufferSize(w, h int) int {
	return (w + 7) / 8 * h
}

// packImage converts img to a packed w x h frame. With Rotate90 and Rotate270
// the image is expected in portrait orientation (h x w).
func packImage(img image.Image, w, h int, rotation Rotation) []byte {
	if m, ok := img.(*pixel.MonoImage); ok && rotation%4 == NoRotation && m.Rect == image.Rect(0, 0, w, h) {
		return append([]byte(nil), m.Pix...)
	}

	var (
		out    = pixel.NewMonoImage(w, h)
		origin = img.Bounds().Min
	)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			var sx, sy int
			switch rotation % 4 {
			case Rotate90:
				sx, sy = y, w-1-x
			case Rotate180:
				sx, sy = w-1-x, h-1-y
			case Rotate270:
				sx, sy = h-1-y, x
			default:
				sx, sy = x, y
			}
			out.Set(x, y, img.At(origin.X+sx, origin.Y+sy))
		}
	}
	return out.Pix
}

// unpack turns a packed frame back into an image.
func unpack(buf []byte, w, h int) *pixel.MonoImage {
	img := pixel.NewMonoImage(w, h)
	copy(img.Pix, buf)
	return img
}
