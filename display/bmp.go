package display

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"os"
	"path/filepath"

	"golang.org/x/image/bmp"
)

var monoPalette = color.Palette{color.Black, color.White}

// SaveBMP writes img to path as a two color bitmap. The file is replaced
// atomically.
func SaveBMP(path string, img image.Image) (err error) {
	p := image.NewPaletted(img.Bounds(), monoPalette)
	draw.Draw(p, p.Rect, img, img.Bounds().Min, draw.Src)

	f, err := os.CreateTemp(filepath.Dir(path), ".screenshot-*.bmp")
	if err != nil {
		return fmt.Errorf("display: screenshot: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if err = bmp.Encode(f, p); err != nil {
		_ = f.Close()
		return fmt.Errorf("display: screenshot: %w", err)
	}
	if err = f.Close(); err != nil {
		return fmt.Errorf("display: screenshot: %w", err)
	}
	if err = os.Rename(f.Name(), path); err != nil {
		return fmt.Errorf("display: screenshot: %w", err)
	}
	return nil
}
