package draw

import (
	"image"
	"image/color"
	"math"
)

// Bounds is a floating point bounding box. Both corners are inclusive, so
// Bounds{0, 0, 10, 10} covers an 11x11 pixel area.
type Bounds struct {
	X0, Y0, X1, Y1 float64
}

// Around returns the bounding box of a circle with radius r centered at (x, y).
func Around(x, y, r float64) Bounds {
	return Bounds{X0: x - r, Y0: y - r, X1: x + r, Y1: y + r}
}

func (b Bounds) center() (cx, cy float64) {
	return (b.X0 + b.X1) / 2, (b.Y0 + b.Y1) / 2
}

// radii include half a pixel so that the inclusive corners are painted.
func (b Bounds) radii() (rx, ry float64) {
	return math.Abs(b.X1-b.X0)/2 + 0.5, math.Abs(b.Y1-b.Y0)/2 + 0.5
}

func (b Bounds) pixels(clip image.Rectangle) image.Rectangle {
	r := image.Rect(
		int(math.Floor(math.Min(b.X0, b.X1))),
		int(math.Floor(math.Min(b.Y0, b.Y1))),
		int(math.Ceil(math.Max(b.X0, b.X1)))+1,
		int(math.Ceil(math.Max(b.Y0, b.Y1)))+1,
	)
	return r.Intersect(clip)
}

func inEllipse(dx, dy, rx, ry float64) bool {
	if rx <= 0 || ry <= 0 {
		return false
	}
	nx, ny := dx/rx, dy/ry
	return nx*nx+ny*ny <= 1
}

// Ellipse draws an ellipse outline of the given stroke width inside b.
func Ellipse(dst Image, b Bounds, width int, c color.Color) {
	if width < 1 {
		width = 1
	}
	var (
		cx, cy = b.center()
		rx, ry = b.radii()
		w      = float64(width)
	)
	fillRegion(dst, b, c, func(dx, dy float64) bool {
		return inEllipse(dx, dy, rx, ry) && !inEllipse(dx, dy, rx-w, ry-w)
	}, cx, cy)
}

// FilledEllipse draws a filled ellipse inside b.
func FilledEllipse(dst Image, b Bounds, c color.Color) {
	var (
		cx, cy = b.center()
		rx, ry = b.radii()
	)
	fillRegion(dst, b, c, func(dx, dy float64) bool {
		return inEllipse(dx, dy, rx, ry)
	}, cx, cy)
}

// Circle draws a circle outline.
func Circle(dst Image, center image.Point, radius, width int, c color.Color) {
	Ellipse(dst, Around(float64(center.X), float64(center.Y), float64(radius)), width, c)
}

// FilledCircle draws a filled circle.
func FilledCircle(dst Image, center image.Point, radius int, c color.Color) {
	FilledEllipse(dst, Around(float64(center.X), float64(center.Y), float64(radius)), c)
}

// Pie draws a filled pie slice of the ellipse inside b, sweeping clockwise
// from start to end degrees. A sweep of 360 degrees or more fills the ellipse.
func Pie(dst Image, b Bounds, start, end float64, c color.Color) {
	sweep := end - start
	if sweep <= 0 {
		return
	}
	if sweep >= 360 {
		FilledEllipse(dst, b, c)
		return
	}
	var (
		cx, cy = b.center()
		rx, ry = b.radii()
	)
	fillRegion(dst, b, c, func(dx, dy float64) bool {
		if !inEllipse(dx, dy, rx, ry) {
			return false
		}
		if dx == 0 && dy == 0 {
			return true
		}
		angle := math.Atan2(dy, dx) * 180 / math.Pi
		return math.Mod(angle-start+720, 360) <= sweep
	}, cx, cy)
}

func fillRegion(dst Image, b Bounds, c color.Color, inside func(dx, dy float64) bool, cx, cy float64) {
	r := b.pixels(dst.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if inside(float64(x)-cx, float64(y)-cy) {
				dst.Set(x, y, c)
			}
		}
	}
}
