package render

import (
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/disintegration/imaging"

	"github.com/BeatGlow/inkboard/draw"
)

// ErrNoWallpaper is returned when the wallpaper directory holds no images.
var ErrNoWallpaper = errors.New("render: no wallpaper found")

var wallpaperExt = []string{".png", ".jpg", ".jpeg", ".gif", ".bmp", ".tif", ".tiff"}

var bilevel = color.Palette{color.Black, color.White}

// PickWallpaper returns the image of the day from dir. Images are taken in
// name order, one per day of the year.
func PickWallpaper(dir string, now time.Time) (string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", err
	}
	var names []string
	for _, entry := range entries {
		if !entry.IsDir() && slices.Contains(wallpaperExt, strings.ToLower(filepath.Ext(entry.Name()))) {
			names = append(names, entry.Name())
		}
	}
	if len(names) == 0 {
		return "", ErrNoWallpaper
	}
	slices.Sort(names)
	return filepath.Join(dir, names[(now.YearDay()-1)%len(names)]), nil
}

// DrawWallpaper fills dst with the image at path, cropped to the aspect
// ratio of dst and dithered to black and white.
func DrawWallpaper(dst draw.Image, path string) error {
	src, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return err
	}
	b := dst.Bounds()
	gray := imaging.Grayscale(imaging.Fill(src, b.Dx(), b.Dy(), imaging.Center, imaging.Lanczos))

	dithered := image.NewPaletted(b, bilevel)
	draw.FloydSteinberg.Draw(dithered, b, gray, image.Point{})
	draw.Draw(dst, b, dithered, b.Min, draw.Src)
	return nil
}
