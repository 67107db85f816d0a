package pixel

import (
	"image"
	"image/color"

	"github.com/BeatGlow/inkboard/draw"
)

type Image interface {
	draw.Image

	// Clear the image to blank paper.
	Clear()

	// Fill the image with a single color.
	Fill(color.Color)
}

// Buffer holds the pixel values.
type Buffer struct {
	// Rect is the image bounding box.
	Rect image.Rectangle

	// Pix are the image pixels.
	Pix []byte

	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
}

func (p *Buffer) Bounds() image.Rectangle {
	return p.Rect
}

func makeBuffer(w, h, stride, size int) Buffer {
	return Buffer{
		Rect:   image.Rect(0, 0, w, h),
		Pix:    make([]byte, size),
		Stride: stride,
	}
}

// MonoImage is a 1-bit per pixel monochrome image.
//
// Rows are packed MSB first, which is the native frame buffer layout of
// Waveshare e-paper controllers; Pix can be sent to the panel unchanged.
type MonoImage struct {
	Buffer
}

// NewMonoImage returns a blank (white) image.
func NewMonoImage(w, h int) *MonoImage {
	stride := ((w + 7) & ^7) / 8 // round up to whole bytes
	p := &MonoImage{
		Buffer: makeBuffer(w, h, stride, stride*h),
	}
	p.Clear()
	return p
}

func (p *MonoImage) ColorModel() color.Model {
	return MonoModel
}

func (p *MonoImage) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)/8
}

func (p *MonoImage) bit(x int) byte {
	return 0x80 >> uint((x-p.Rect.Min.X)%8)
}

func (p *MonoImage) At(x, y int) color.Color {
	if !(image.Point{x, y}).In(p.Rect) {
		return color.Transparent
	}
	return Mono{On: p.Pix[p.PixOffset(x, y)]&p.bit(x) != 0}
}

func (p *MonoImage) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}).In(p.Rect) {
		return
	}
	p.SetMono(x, y, monoModel(c).(Mono))
}

// SetMono sets a pixel without color conversion.
func (p *MonoImage) SetMono(x, y int, c Mono) {
	if !(image.Point{x, y}).In(p.Rect) {
		return
	}
	index := p.PixOffset(x, y)
	if c.On {
		p.Pix[index] |= p.bit(x)
	} else {
		p.Pix[index] &^= p.bit(x)
	}
}

// Clear resets the image to white.
func (p *MonoImage) Clear() {
	p.Fill(White)
}

func (p *MonoImage) Fill(c color.Color) {
	var value byte
	if monoModel(c).(Mono).On {
		value = 0xff
	}
	for i := range p.Pix {
		p.Pix[i] = value
	}
}

// Count returns the number of pixels matching c inside r.
func (p *MonoImage) Count(r image.Rectangle, c color.Color) (n int) {
	want := monoModel(c).(Mono)
	r = r.Intersect(p.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if p.At(x, y) == want {
				n++
			}
		}
	}
	return
}

// Interface checks.
var (
	_ Image = (*MonoImage)(nil)
)
