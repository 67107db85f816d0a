package render

import (
	"image"
	"math"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/BeatGlow/inkboard/draw"
	"github.com/BeatGlow/inkboard/pixel"
)

// Weather icon keys.
const (
	IconSun     = "sun"
	IconCloud   = "cloud"
	IconRain    = "rain"
	IconSnow    = "snow"
	IconThunder = "thunder"
)

// iconBase is the size the vector icon offsets were designed for.
const iconBase = 40.0

type iconFunc func(dst draw.Image, x, y, size float64)

var icons = map[string]iconFunc{
	IconSun:     drawSun,
	IconCloud:   drawCloud,
	IconRain:    drawRain,
	IconSnow:    drawSnow,
	IconThunder: drawThunder,
}

// IconFor maps an OpenWeather main condition to an icon key. Unknown
// conditions map to IconCloud.
func IconFor(condition string) string {
	switch strings.ToLower(strings.TrimSpace(condition)) {
	case "clear", "sunny":
		return IconSun
	case "rain", "drizzle", "shower rain":
		return IconRain
	case "snow", "sleet":
		return IconSnow
	case "thunderstorm", "thunder", "squall", "tornado":
		return IconThunder
	default:
		// clouds, mist, fog, haze, smoke, dust, sand, ash
		return IconCloud
	}
}

// DrawWeatherIcon draws the icon centered on (x, y). If iconsDir holds
// <key>.png it is fitted to size and pasted; otherwise the vector glyph is
// drawn. Unknown keys draw a cloud. The return value reports whether the
// bitmap was used.
func DrawWeatherIcon(dst draw.Image, x, y int, key string, size int, iconsDir string) bool {
	if iconsDir != "" && pasteIcon(dst, x, y, filepath.Join(iconsDir, key+".png"), size) {
		return true
	}
	f, ok := icons[key]
	if !ok {
		f = drawCloud
	}
	f(dst, float64(x), float64(y), float64(size))
	return false
}

func pasteIcon(dst draw.Image, x, y int, path string, size int) bool {
	src, err := imaging.Open(path)
	if err != nil {
		return false
	}
	src = imaging.Fit(src, size, size, imaging.Lanczos)

	var (
		b = src.Bounds()
		r = image.Rect(0, 0, b.Dx(), b.Dy()).Add(image.Pt(x-b.Dx()/2, y-b.Dy()/2))
	)
	// Transparent areas keep the background, the destination thresholds the rest.
	draw.Draw(dst, r, src, b.Min, draw.Over)
	return true
}

func pt(x, y float64) image.Point {
	return image.Pt(int(math.Round(x)), int(math.Round(y)))
}

// stroke is the line width of scaled icons, at least one pixel.
func stroke(s float64) int {
	return max(1, int(2*s))
}

func drawSun(dst draw.Image, x, y, size float64) {
	r := float64(int(size) / 3)
	draw.Ellipse(dst, draw.Around(x, y, r), 2, pixel.Black)

	var (
		inner = r + size*0.125
		outer = r + size*0.25
	)
	for deg := 0; deg < 360; deg += 45 {
		sin, cos := math.Sincos(float64(deg) * math.Pi / 180)
		draw.ThickLine(dst,
			pt(x+cos*inner, y+sin*inner),
			pt(x+cos*outer, y+sin*outer),
			2, pixel.Black)
	}
}

// bubble is a white ellipse with a black outline.
func bubble(dst draw.Image, b draw.Bounds, width int) {
	draw.FilledEllipse(dst, b, pixel.White)
	draw.Ellipse(dst, b, width, pixel.Black)
}

func drawCloud(dst draw.Image, x, y, size float64) {
	var (
		s = size / iconBase
		w = stroke(s)
	)
	y += 5 * s

	bubble(dst, draw.Bounds{X0: x - 20*s, Y0: y - 5*s, X1: x, Y1: y + 15*s}, w)
	bubble(dst, draw.Bounds{X0: x, Y0: y - 5*s, X1: x + 20*s, Y1: y + 15*s}, w)
	bubble(dst, draw.Bounds{X0: x - 10*s, Y0: y - 15*s, X1: x + 10*s, Y1: y + 5*s}, w)

	// Hide the inner outlines where the bubbles overlap.
	lo, hi := pt(x-10*s, y), pt(x+10*s, y+10*s)
	draw.Box(dst, image.Rectangle{Min: lo, Max: hi.Add(image.Pt(1, 1))}, pixel.White)
}

func drawRain(dst draw.Image, x, y, size float64) {
	drawCloud(dst, x, y, size)

	var (
		s      = size / iconBase
		w      = stroke(s)
		top    = y + 15*s + 5*s
		bottom = top + 10*s
		offset = 8 * s
	)
	for _, dx := range []float64{-offset, 0, offset} {
		draw.ThickLine(dst, pt(x+dx, top), pt(x+dx, bottom), w, pixel.Black)
	}
}

func drawSnow(dst draw.Image, x, y, size float64) {
	drawCloud(dst, x, y, size)

	var (
		s    = size / iconBase
		base = y + 15*s
		d    = 4 * s // flake diameter
	)
	for _, flake := range [][2]float64{{-12, 5}, {-2, 8}, {8, 5}} {
		x0, y0 := x+flake[0]*s, base+flake[1]*s
		draw.FilledEllipse(dst, draw.Bounds{X0: x0, Y0: y0, X1: x0 + d, Y1: y0 + d}, pixel.Black)
	}
}

func drawThunder(dst draw.Image, x, y, size float64) {
	drawCloud(dst, x, y, size)

	var (
		s    = size / iconBase
		base = y + 10*s
	)
	draw.Polyline(dst, []image.Point{
		pt(x+2*s, base),
		pt(x-5*s, base+10*s),
		pt(x, base+10*s),
		pt(x-3*s, base+20*s),
	}, stroke(s), pixel.Black)
}
