package render

import (
	"fmt"
	"image"
	"math"
	"strconv"
	"strings"

	"github.com/BeatGlow/inkboard/draw"
	"github.com/BeatGlow/inkboard/pixel"
)

// DrawProgressRing draws a ring centered on (x, y) that is filled clockwise
// from 12 o'clock. See ParsePercent for accepted percent values.
func DrawProgressRing(dst draw.Image, x, y, radius int, percent any, thickness int) {
	var (
		center = image.Pt(x, y)
		bounds = draw.Around(float64(x), float64(y), float64(radius))
		p      = ParsePercent(percent)
	)
	draw.Circle(dst, center, radius, 1, pixel.Black)

	if p > 0 {
		draw.Pie(dst, bounds, -90, -90+360*p/100, pixel.Black)
	}

	inner := radius - thickness
	draw.FilledCircle(dst, center, inner, pixel.White)
	draw.Circle(dst, center, inner, 1, pixel.Black)
}

// ParsePercent converts numbers and numeric strings to float64. Anything else,
// including NaN, is 0.
func ParsePercent(v any) float64 {
	var p float64
	switch v := v.(type) {
	case int:
		p = float64(v)
	case int8:
		p = float64(v)
	case int16:
		p = float64(v)
	case int32:
		p = float64(v)
	case int64:
		p = float64(v)
	case uint:
		p = float64(v)
	case uint8:
		p = float64(v)
	case uint16:
		p = float64(v)
	case uint32:
		p = float64(v)
	case uint64:
		p = float64(v)
	case float32:
		p = float64(v)
	case float64:
		p = v
	case string:
		p = parseFloat(v)
	case fmt.Stringer:
		p = parseFloat(v.String())
	}
	if math.IsNaN(p) || math.IsInf(p, 0) {
		return 0
	}
	return p
}

func parseFloat(s string) float64 {
	p, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0
	}
	return p
}
