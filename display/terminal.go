package display

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"

	"golang.org/x/term"

	"github.com/BeatGlow/inkboard/pixel"
)

// defaultColumns is used when the output is not a terminal.
const defaultColumns = 100

// TerminalDisplay previews frames as Unicode half blocks, scaled to fit the
// terminal width.
type TerminalDisplay struct {
	w       io.Writer
	width   int
	height  int
	columns func() int
}

// Terminal returns a preview display writing to w.
func Terminal(w io.Writer, width, height int) *TerminalDisplay {
	return &TerminalDisplay{
		w:       w,
		width:   width,
		height:  height,
		columns: terminalColumns(w),
	}
}

func terminalColumns(w io.Writer) func() int {
	return func() int {
		if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
			if cols, _, err := term.GetSize(int(f.Fd())); err == nil && cols > 0 {
				return cols
			}
		}
		return defaultColumns
	}
}

func (d *TerminalDisplay) String() string {
	return fmt.Sprintf("terminal preview %dx%d", d.width, d.height)
}

func (d *TerminalDisplay) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

func (d *TerminalDisplay) Init() error { return nil }

func (d *TerminalDisplay) Clear() error {
	_, err := io.WriteString(d.w, "\x1b[2J\x1b[H")
	return err
}

func (d *TerminalDisplay) Buffer(img image.Image) []byte {
	return packImage(img, d.width, d.height, NoRotation)
}

func (d *TerminalDisplay) Sleep() error { return nil }

func (d *TerminalDisplay) Close() error { return nil }

// Display draws the frame. Every character covers a scale x 2*scale block of
// pixels and is dark if any pixel in its half is black.
func (d *TerminalDisplay) Display(buf []byte) error {
	if len(buf) != bufferSize(d.width, d.height) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSize, len(buf), bufferSize(d.width, d.height))
	}

	var (
		img   = unpack(buf, d.width, d.height)
		scale = max(1, (d.width+d.columns()-1)/d.columns())
		out   = bufio.NewWriter(d.w)
	)
	for y := 0; y < d.height; y += 2 * scale {
		for x := 0; x < d.width; x += scale {
			var (
				top    = dark(img, image.Rect(x, y, x+scale, y+scale))
				bottom = dark(img, image.Rect(x, y+scale, x+scale, y+2*scale))
			)
			switch {
			case top && bottom:
				out.WriteRune('█')
			case top:
				out.WriteRune('▀')
			case bottom:
				out.WriteRune('▄')
			default:
				out.WriteByte(' ')
			}
		}
		out.WriteByte('\n')
	}
	return out.Flush()
}

func dark(img *pixel.MonoImage, r image.Rectangle) bool {
	r = r.Intersect(img.Rect)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			if img.At(x, y) == pixel.Black {
				return true
			}
		}
	}
	return false
}
