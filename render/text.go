package render

import (
	"image"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/math/fixed"

	"github.com/BeatGlow/inkboard/draw"
	"github.com/BeatGlow/inkboard/pixel"
)

// Ellipsis is appended to truncated text.
const Ellipsis = "..."

// centerOffset is added to half the text height when centering vertically.
const centerOffset = 3

var ink = image.NewUniform(pixel.Black)

// DrawText draws text with the top of its line box at (x, y).
func DrawText(dst draw.Image, x, y int, text string, face font.Face) {
	drawAt(dst, fixed.P(x, y+face.Metrics().Ascent.Ceil()), text, face)
}

func drawAt(dst draw.Image, dot fixed.Point26_6, text string, face font.Face) {
	d := &font.Drawer{
		Dst:  dst,
		Src:  ink,
		Face: face,
		Dot:  dot,
	}
	d.DrawString(text)
}

// TextWidth is the advance width of text in pixels.
func TextWidth(text string, face font.Face) int {
	return font.MeasureString(face, text).Ceil()
}

// TextSize returns the size of the inked area of text. If the glyph bounds are
// empty, the advance width and line height are used instead.
func TextSize(text string, face font.Face) image.Point {
	b, _ := font.BoundString(face, text)
	if w, h := (b.Max.X - b.Min.X).Ceil(), (b.Max.Y - b.Min.Y).Ceil(); w > 0 && h > 0 {
		return image.Pt(w, h)
	}
	m := face.Metrics()
	return image.Pt(TextWidth(text, face), (m.Ascent + m.Descent).Ceil())
}

// DrawCenteredText draws text horizontally centered on x. With alignYCenter
// the text is centered slightly above y, otherwise its top is at y.
func DrawCenteredText(dst draw.Image, x, y int, text string, face font.Face, alignYCenter bool) {
	b, _ := font.BoundString(face, text)
	w, h := (b.Max.X - b.Min.X).Ceil(), (b.Max.Y - b.Min.Y).Ceil()
	if w <= 0 || h <= 0 {
		drawCenteredMetrics(dst, x, y, text, face, alignYCenter)
		return
	}

	top := y
	if alignYCenter {
		top = y - (h/2 + centerOffset)
	}
	left := x - w/2

	// Shift the dot so the ink box starts at (left, top).
	dot := fixed.Point26_6{
		X: fixed.I(left) - b.Min.X,
		Y: fixed.I(top) - b.Min.Y,
	}
	if !alignYCenter {
		dot.Y = fixed.I(top + face.Metrics().Ascent.Ceil())
	}
	drawAt(dst, dot, text, face)
}

// drawCenteredMetrics positions text using advance width and face metrics.
func drawCenteredMetrics(dst draw.Image, x, y int, text string, face font.Face, alignYCenter bool) {
	size := TextSize(text, face)
	top := y
	if alignYCenter {
		top = y - (size.Y/2 + centerOffset)
	}
	DrawText(dst, x-size.X/2, top, text, face)
}

// DrawTruncatedText draws text at (x, y) shortened with an ellipsis so that it
// fits maxWidth. Nothing is drawn if not even one character fits.
func DrawTruncatedText(dst draw.Image, x, y int, text string, face font.Face, maxWidth int) {
	if fitted, ok := Truncate(text, face, maxWidth); ok {
		DrawText(dst, x, y, fitted, face)
	}
}

// Truncate returns text, or its longest prefix followed by Ellipsis, fitting
// in maxWidth pixels.
func Truncate(text string, face font.Face, maxWidth int) (string, bool) {
	if TextWidth(text, face) <= maxWidth {
		return text, true
	}
	var (
		runes = []rune(text)
		tail  = TextWidth(Ellipsis, face)
	)
	for i := len(runes); i > 0; i-- {
		prefix := string(runes[:i])
		if TextWidth(prefix, face)+tail <= maxWidth {
			return prefix + Ellipsis, true
		}
	}
	return "", false
}

// WrapText breaks text into lines no wider than maxWidth. Lines break at a
// space where possible and between any two runes otherwise, so text without
// spaces wraps too. Newlines in text start a new line.
func WrapText(text string, face font.Face, maxWidth int) []string {
	var lines []string
	for _, paragraph := range strings.Split(text, "\n") {
		lines = append(lines, wrapLine([]rune(strings.TrimSpace(paragraph)), face, maxWidth)...)
	}
	return lines
}

func wrapLine(runes []rune, face font.Face, maxWidth int) (lines []string) {
	if len(runes) == 0 {
		return []string{""}
	}
	for len(runes) > 0 {
		n := len(runes)
		for n > 1 && TextWidth(string(runes[:n]), face) > maxWidth {
			n--
		}
		if n < len(runes) {
			for i := n; i > 0; i-- {
				if runes[i] == ' ' {
					n = i
					break
				}
			}
		}
		lines = append(lines, strings.TrimRight(string(runes[:n]), " "))
		runes = runes[n:]
		for len(runes) > 0 && runes[0] == ' ' {
			runes = runes[1:]
		}
	}
	return
}
