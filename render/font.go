package render

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"

	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
)

// Font sizes in pixels.
const (
	SizeXS        = 18
	SizeS         = 24
	SizeM         = 28
	SizeTime      = 32
	SizeDateBig   = 40
	SizeDateSmall = 24
	SizeL         = 48
	SizeXL        = 64
)

// Fonts is the set of faces used by the dashboard.
type Fonts struct {
	XS        font.Face
	S         font.Face
	M         font.Face
	Time      font.Face
	DateBig   font.Face
	DateSmall font.Face
	L         font.Face
	XL        font.Face
}

// FallbackFonts uses the built-in 7x13 bitmap face for every size.
func FallbackFonts() *Fonts {
	f := basicfont.Face7x13
	return &Fonts{XS: f, S: f, M: f, Time: f, DateBig: f, DateSmall: f, L: f, XL: f}
}

// LoadFonts loads all faces from a TrueType font or collection. If the file
// can't be used, a warning is logged and FallbackFonts is returned.
func LoadFonts(path string, logger *slog.Logger) *Fonts {
	fonts, err := loadFonts(path)
	if err != nil {
		if logger != nil {
			logger.Warn("using fallback font", slog.String("path", path), slog.Any("error", err))
		}
		return FallbackFonts()
	}
	return fonts
}

func loadFonts(path string) (*Fonts, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	newFace, err := faceMaker(data)
	if err != nil {
		return nil, fmt.Errorf("render: parse %s: %w", path, err)
	}
	return &Fonts{
		XS:        newFace(SizeXS),
		S:         newFace(SizeS),
		M:         newFace(SizeM),
		Time:      newFace(SizeTime),
		DateBig:   newFace(SizeDateBig),
		DateSmall: newFace(SizeDateSmall),
		L:         newFace(SizeL),
		XL:        newFace(SizeXL),
	}, nil
}

// faceMaker returns a face constructor for a single font or the first font
// of a collection. Sizes are in pixels (72 DPI).
func faceMaker(data []byte) (func(size float64) font.Face, error) {
	if !bytes.HasPrefix(data, []byte("ttcf")) {
		f, err := truetype.Parse(data)
		if err != nil {
			return nil, err
		}
		return func(size float64) font.Face {
			return truetype.NewFace(f, &truetype.Options{
				Size:    size,
				DPI:     72,
				Hinting: font.HintingFull,
			})
		}, nil
	}

	// truetype can't read collections.
	c, err := opentype.ParseCollection(data)
	if err != nil {
		return nil, err
	}
	f, err := c.Font(0)
	if err != nil {
		return nil, err
	}
	return func(size float64) font.Face {
		face, err := opentype.NewFace(f, &opentype.FaceOptions{
			Size:    size,
			DPI:     72,
			Hinting: font.HintingFull,
		})
		if err != nil {
			return basicfont.Face7x13
		}
		return face
	}, nil
}
