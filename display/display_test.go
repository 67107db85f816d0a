package display

import (
	"bytes"
	"errors"
	"image"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"golang.org/x/image/bmp"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpiotest"

	"github.com/BeatGlow/inkboard/pixel"
)

type command struct {
	cmnd byte
	data []byte
}

// testConn records everything sent to the controller.
type testConn struct {
	commands []command
	resets   []gpio.Level
	closed   bool
}

func (c *testConn) String() string { return "test" }

func (c *testConn) Close() error {
	c.closed = true
	return nil
}

func (c *testConn) Reset(level gpio.Level) error {
	c.resets = append(c.resets, level)
	return nil
}

func (c *testConn) Command(cmnd byte, data ...byte) error {
	c.commands = append(c.commands, command{cmnd, append([]byte(nil), data...)})
	return nil
}

func (c *testConn) Data(data ...byte) error {
	last := &c.commands[len(c.commands)-1]
	last.data = append(last.data, data...)
	return nil
}

// sent returns the commands without busy polling.
func (c *testConn) sent() (out []command) {
	for _, cmd := range c.commands {
		if cmd.cmnd != epd7in5v2GetStatus {
			out = append(out, cmd)
		}
	}
	return
}

func testEPD(t *testing.T, busy gpio.Level) (*epd7in5v2, *testConn) {
	t.Helper()
	c := new(testConn)
	d, err := EPD7in5V2(c, &Config{
		Busy:        &gpiotest.Pin{N: "BUSY", L: busy},
		BusyTimeout: 10 * time.Millisecond,
	})
	if err != nil {
		t.Fatal(err)
	}
	epd := d.(*epd7in5v2)
	epd.sleep = func(time.Duration) {}
	return epd, c
}

func TestEPD7in5V2Init(t *testing.T) {
	d, c := testEPD(t, gpio.High)
	if b := d.Bounds(); b.Dx() != 800 || b.Dy() != 480 {
		t.Fatalf("expected 800x480, got %s", b)
	}
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}

	if want := []gpio.Level{gpio.High, gpio.Low, gpio.High}; !slices.Equal(c.resets, want) {
		t.Errorf("expected reset sequence %v, got %v", want, c.resets)
	}

	sent := c.sent()
	if len(sent) == 0 || sent[0].cmnd != epd7in5v2BoosterSoftStart {
		t.Fatalf("expected booster soft start first, got %+v", sent)
	}
	var resolution []byte
	for _, cmd := range sent {
		if cmd.cmnd == epd7in5v2ResolutionSetting {
			resolution = cmd.data
		}
	}
	if want := []byte{0x03, 0x20, 0x01, 0xe0}; !bytes.Equal(resolution, want) {
		t.Errorf("expected resolution %x, got %x", want, resolution)
	}
}

func TestEPD7in5V2Display(t *testing.T) {
	d, c := testEPD(t, gpio.High)

	img := pixel.NewMonoImage(800, 480)
	img.Set(0, 0, pixel.Black)
	buf := d.Buffer(img)
	if len(buf) != 800/8*480 {
		t.Fatalf("expected %d bytes, got %d", 800/8*480, len(buf))
	}
	if buf[0] != 0x7f {
		t.Errorf("expected first byte 0x7f, got %#02x", buf[0])
	}

	if err := d.Display(buf); err != nil {
		t.Fatal(err)
	}
	sent := c.sent()
	if len(sent) != 3 {
		t.Fatalf("expected 3 commands, got %d", len(sent))
	}
	if sent[0].cmnd != epd7in5v2DataStartOld || sent[0].data[0] != 0x80 {
		t.Errorf("expected inverted old frame, got %#02x %#02x", sent[0].cmnd, sent[0].data[0])
	}
	if sent[1].cmnd != epd7in5v2DataStartNew || !bytes.Equal(sent[1].data, buf) {
		t.Error("expected new frame data")
	}
	if sent[2].cmnd != epd7in5v2DisplayRefresh {
		t.Errorf("expected refresh, got %#02x", sent[2].cmnd)
	}

	if err := d.Display(buf[:10]); !errors.Is(err, ErrBufferSize) {
		t.Errorf("expected ErrBufferSize, got %v", err)
	}
}

func TestEPD7in5V2Sleep(t *testing.T) {
	d, c := testEPD(t, gpio.High)
	if err := d.Sleep(); err != nil {
		t.Fatal(err)
	}
	sent := c.sent()
	if last := sent[len(sent)-1]; last.cmnd != epd7in5v2DeepSleep || last.data[0] != epd7in5v2DeepSleepCheckCode {
		t.Errorf("expected deep sleep last, got %+v", last)
	}
	// Already asleep.
	n := len(c.commands)
	if err := d.Sleep(); err != nil {
		t.Fatal(err)
	}
	if len(c.commands) != n {
		t.Error("expected no commands when already asleep")
	}
	if err := d.Close(); err != nil || !c.closed {
		t.Error("expected connection to be closed")
	}
}

func TestEPD7in5V2BusyTimeout(t *testing.T) {
	d, _ := testEPD(t, gpio.Low)
	if err := d.Init(); !errors.Is(err, ErrBusyTimeout) {
		t.Errorf("expected ErrBusyTimeout, got %v", err)
	}
}

func TestEPD7in5V2Config(t *testing.T) {
	if _, err := EPD7in5V2(new(testConn), &Config{}); !errors.Is(err, ErrBusyPin) {
		t.Errorf("expected ErrBusyPin, got %v", err)
	}
	if _, err := EPD7in5V2(new(testConn), &Config{Width: 798, Busy: &gpiotest.Pin{N: "BUSY"}}); err == nil {
		t.Error("expected error for width not a multiple of 8")
	}
}

func TestBufferRotation(t *testing.T) {
	tests := []struct {
		Rotation Rotation
		Size     image.Point // source image size
		Src      image.Point // black source pixel
		Want     image.Point // expected panel pixel
	}{
		{NoRotation, image.Pt(16, 8), image.Pt(1, 2), image.Pt(1, 2)},
		{Rotate180, image.Pt(16, 8), image.Pt(0, 0), image.Pt(15, 7)},
		{Rotate90, image.Pt(8, 16), image.Pt(0, 0), image.Pt(15, 0)},
		{Rotate270, image.Pt(8, 16), image.Pt(0, 0), image.Pt(0, 7)},
	}
	for _, test := range tests {
		t.Run(test.Rotation.String(), func(it *testing.T) {
			src := image.NewGray(image.Rectangle{Max: test.Size})
			for i := range src.Pix {
				src.Pix[i] = 0xff
			}
			src.Pix[src.PixOffset(test.Src.X, test.Src.Y)] = 0

			out := unpack(packImage(src, 16, 8, test.Rotation), 16, 8)
			if n := out.Count(out.Rect, pixel.Black); n != 1 {
				it.Fatalf("expected one black pixel, got %d", n)
			}
			if c := out.At(test.Want.X, test.Want.Y); c != pixel.Black {
				it.Errorf("expected %s to be black", test.Want)
			}
		})
	}
}

func TestBoundsRotation(t *testing.T) {
	tests := []struct {
		Rotation Rotation
		Width    int
		Height   int
	}{
		{NoRotation, 800, 480},
		{Rotate90, 480, 800},
		{Rotate180, 800, 480},
		{Rotate270, 480, 800},
	}
	for _, test := range tests {
		t.Run(test.Rotation.String(), func(it *testing.T) {
			d, err := EPD7in5V2(new(testConn), &Config{
				Busy:     &gpiotest.Pin{N: "BUSY", L: gpio.High},
				Rotation: test.Rotation,
			})
			if err != nil {
				it.Fatal(err)
			}
			b := d.Bounds()
			if b.Dx() != test.Width || b.Dy() != test.Height {
				it.Fatalf("expected %dx%d, got %s", test.Width, test.Height, b)
			}

			// A frame drawn at Bounds covers the whole panel.
			img := pixel.NewMonoImage(b.Dx(), b.Dy())
			img.Fill(pixel.Black)
			out := unpack(d.Buffer(img), 800, 480)
			if n := out.Count(out.Rect, pixel.Black); n != 800*480 {
				it.Errorf("expected %d black pixels, got %d", 800*480, n)
			}
		})
	}
}

func TestParseRotation(t *testing.T) {
	for s, want := range map[string]Rotation{"": NoRotation, "cw": Rotate90, "flip": Rotate180, "270": Rotate270} {
		if r, err := ParseRotation(s); err != nil || r != want {
			t.Errorf("ParseRotation(%q): expected %s, got %s (%v)", s, want, r, err)
		}
	}
	if _, err := ParseRotation("45"); err == nil {
		t.Error("expected error")
	}
}

func TestMock(t *testing.T) {
	d := Mock(16, 2, nil)
	if err := d.Init(); err != nil {
		t.Fatal(err)
	}
	img := pixel.NewMonoImage(16, 2)
	img.Set(8, 1, pixel.Black)
	if err := d.Display(d.Buffer(img)); err != nil {
		t.Fatal(err)
	}
	if want := []byte{0xff, 0xff, 0xff, 0x7f}; !bytes.Equal(d.Last(), want) {
		t.Errorf("expected %x, got %x", want, d.Last())
	}
	if d.Frames() != 1 {
		t.Errorf("expected 1 frame, got %d", d.Frames())
	}
	if err := d.Display([]byte{0}); !errors.Is(err, ErrBufferSize) {
		t.Errorf("expected ErrBufferSize, got %v", err)
	}
	if err := d.Sleep(); err != nil || !d.Asleep() {
		t.Error("expected display to be asleep")
	}
	if err := d.Clear(); err != nil || d.Last() != nil {
		t.Error("expected clear to drop the last frame")
	}
}

func TestTerminal(t *testing.T) {
	var out strings.Builder
	d := Terminal(&out, 4, 4)

	img := pixel.NewMonoImage(4, 4)
	img.Set(0, 0, pixel.Black) // top half of the first cell
	img.Set(1, 1, pixel.Black) // bottom half of the second cell
	img.Set(2, 0, pixel.Black)
	img.Set(2, 1, pixel.Black) // both halves of the third cell
	if err := d.Display(d.Buffer(img)); err != nil {
		t.Fatal(err)
	}
	if want := "▀▄█ \n    \n"; out.String() != want {
		t.Errorf("expected %q, got %q", want, out.String())
	}
}

func TestTerminalScales(t *testing.T) {
	var out strings.Builder
	d := Terminal(&out, 800, 480)
	if err := d.Display(d.Buffer(pixel.NewMonoImage(800, 480))); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSuffix(out.String(), "\n"), "\n")
	// 800 pixels over 100 columns is 8 pixels per column, 16 pixel rows per line.
	if len(lines) != 30 {
		t.Errorf("expected 30 lines, got %d", len(lines))
	}
	if n := len([]rune(lines[0])); n != defaultColumns {
		t.Errorf("expected %d columns, got %d", defaultColumns, n)
	}
}

func TestSaveBMP(t *testing.T) {
	path := filepath.Join(t.TempDir(), "screenshot.bmp")
	img := pixel.NewMonoImage(32, 8)
	img.Set(3, 4, pixel.Black)
	if err := SaveBMP(path, img); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	decoded, err := bmp.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := decoded.Bounds(); b.Dx() != 32 || b.Dy() != 8 {
		t.Fatalf("expected 32x8, got %s", b)
	}
	if r, _, _, _ := decoded.At(3, 4).RGBA(); r != 0 {
		t.Error("expected (3,4) to be black")
	}
	if r, _, _, _ := decoded.At(4, 4).RGBA(); r != 0xffff {
		t.Error("expected (4,4) to be white")
	}
}
