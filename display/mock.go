package display

import (
	"fmt"
	"image"
	"io"
	"log/slog"
	"sync"
)

// MockDisplay is a Display without hardware. It logs every operation and
// keeps the last frame.
type MockDisplay struct {
	mu     sync.Mutex
	width  int
	height int
	logger *slog.Logger
	last   []byte
	frames int
	asleep bool
}

// Mock returns a MockDisplay of the given size. A nil logger discards output.
func Mock(width, height int, logger *slog.Logger) *MockDisplay {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &MockDisplay{
		width:  width,
		height: height,
		logger: logger.With(slog.String("display", "mock")),
	}
}

func (d *MockDisplay) String() string {
	return fmt.Sprintf("mock display %dx%d", d.width, d.height)
}

func (d *MockDisplay) Bounds() image.Rectangle {
	return image.Rect(0, 0, d.width, d.height)
}

func (d *MockDisplay) Init() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.asleep = false
	d.logger.Debug("init")
	return nil
}

func (d *MockDisplay) Clear() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = nil
	d.logger.Debug("clear")
	return nil
}

func (d *MockDisplay) Display(buf []byte) error {
	if len(buf) != bufferSize(d.width, d.height) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSize, len(buf), bufferSize(d.width, d.height))
	}
	d.mu.Lock()
	defer d.mu.Unlock()
	d.last = append(d.last[:0], buf...)
	d.frames++
	d.logger.Info("display frame", slog.Int("frame", d.frames), slog.Int("bytes", len(buf)))
	return nil
}

func (d *MockDisplay) Buffer(img image.Image) []byte {
	return packImage(img, d.width, d.height, NoRotation)
}

func (d *MockDisplay) Sleep() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.asleep = true
	d.logger.Debug("sleep")
	return nil
}

func (d *MockDisplay) Close() error {
	d.logger.Debug("close")
	return nil
}

// Frames is the number of frames displayed so far.
func (d *MockDisplay) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

// Asleep reports whether Sleep was called after the last Init.
func (d *MockDisplay) Asleep() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.asleep
}

// Last returns a copy of the last frame, nil after Clear.
func (d *MockDisplay) Last() []byte {
	d.mu.Lock()
	defer d.mu.Unlock()
	if d.last == nil {
		return nil
	}
	return append([]byte(nil), d.last...)
}
