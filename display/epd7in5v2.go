package display

import (
	"fmt"
	"image"
	"time"

	"periph.io/x/conn/v3/gpio"
)

const (
	epd7in5v2DefaultWidth  = 800
	epd7in5v2DefaultHeight = 480
	epd7in5v2BusyTimeout   = 30 * time.Second
)

const (
	epd7in5v2PanelSetting        = 0x00
	epd7in5v2PowerSetting        = 0x01
	epd7in5v2PowerOff            = 0x02
	epd7in5v2PowerOn             = 0x04
	epd7in5v2BoosterSoftStart    = 0x06
	epd7in5v2DeepSleep           = 0x07
	epd7in5v2DataStartOld        = 0x10
	epd7in5v2DisplayRefresh      = 0x12
	epd7in5v2DataStartNew        = 0x13
	epd7in5v2DualSPI             = 0x15
	epd7in5v2VCOMDataInterval    = 0x50
	epd7in5v2TCONSetting         = 0x60
	epd7in5v2ResolutionSetting   = 0x61
	epd7in5v2GetStatus           = 0x71
	epd7in5v2DeepSleepCheckCode  = 0xA5
	epd7in5v2VCOMBorderFloating  = 0xF7
	epd7in5v2VCOMBorderWhiteData = 0x10
)

type epd7in5v2 struct {
	c           Conn
	busy        gpio.PinIn
	busyTimeout time.Duration
	width       int
	height      int
	rotation    Rotation
	sleep       func(time.Duration)
	asleep      bool
}

// EPD7in5V2 is a driver for the Waveshare 7.5" V2 (800x480) black and white
// e-paper panel. The panel is not touched until Init is called.
func EPD7in5V2(conn Conn, config *Config) (Display, error) {
	if config.Busy == nil || config.Busy == gpio.INVALID {
		return nil, ErrBusyPin
	}
	if config.Width == 0 {
		config.Width = epd7in5v2DefaultWidth
	}
	if config.Height == 0 {
		config.Height = epd7in5v2DefaultHeight
	}
	if config.BusyTimeout == 0 {
		config.BusyTimeout = epd7in5v2BusyTimeout
	}
	if config.Width%8 != 0 {
		return nil, fmt.Errorf("display: EPD 7.5\" width %d is not a multiple of 8", config.Width)
	}

	if err := config.Busy.In(gpio.PullNoChange, gpio.NoEdge); err != nil {
		return nil, err
	}

	return &epd7in5v2{
		c:           conn,
		busy:        config.Busy,
		busyTimeout: config.BusyTimeout,
		width:       config.Width,
		height:      config.Height,
		rotation:    config.Rotation,
		sleep:       time.Sleep,
	}, nil
}

func (d *epd7in5v2) String() string {
	return fmt.Sprintf("Waveshare EPD 7.5\" V2 %dx%d", d.width, d.height)
}

// Bounds is the drawing area; quarter turns draw in portrait.
func (d *epd7in5v2) Bounds() image.Rectangle {
	if d.rotation%2 == 1 {
		return image.Rect(0, 0, d.height, d.width)
	}
	return image.Rect(0, 0, d.width, d.height)
}

func (d *epd7in5v2) reset() (err error) {
	for _, step := range []struct {
		level gpio.Level
		delay time.Duration
	}{
		{gpio.High, 20 * time.Millisecond},
		{gpio.Low, 2 * time.Millisecond},
		{gpio.High, 20 * time.Millisecond},
	} {
		if err = d.c.Reset(step.level); err != nil {
			return
		}
		d.sleep(step.delay)
	}
	return
}

// waitBusy polls the controller status until the busy pin goes high.
func (d *epd7in5v2) waitBusy() error {
	deadline := time.Now().Add(d.busyTimeout)
	for {
		if err := d.c.Command(epd7in5v2GetStatus); err != nil {
			return err
		}
		if d.busy.Read() == gpio.High {
			d.sleep(20 * time.Millisecond)
			return nil
		}
		if time.Now().After(deadline) {
			return ErrBusyTimeout
		}
		d.sleep(20 * time.Millisecond)
	}
}

func (d *epd7in5v2) Init() (err error) {
	if err = d.reset(); err != nil {
		return
	}

	if err = d.c.Command(epd7in5v2BoosterSoftStart, 0x17, 0x17, 0x28, 0x17); err != nil {
		return
	}
	// VGH=20V, VGL=-20V, VDH=15V, VDL=-15V
	if err = d.c.Command(epd7in5v2PowerSetting, 0x07, 0x07, 0x28, 0x17); err != nil {
		return
	}
	if err = d.c.Command(epd7in5v2PowerOn); err != nil {
		return
	}
	d.sleep(100 * time.Millisecond)
	if err = d.waitBusy(); err != nil {
		return
	}

	if err = d.commands(
		[]byte{epd7in5v2PanelSetting, 0x1F}, // KW mode, LUT from OTP
		[]byte{epd7in5v2ResolutionSetting,
			byte(d.width >> 8), byte(d.width),
			byte(d.height >> 8), byte(d.height)},
		[]byte{epd7in5v2DualSPI, 0x00},
		[]byte{epd7in5v2VCOMDataInterval, epd7in5v2VCOMBorderWhiteData, 0x07},
		[]byte{epd7in5v2TCONSetting, 0x22},
	); err != nil {
		return
	}

	d.asleep = false
	return
}

func (d *epd7in5v2) commands(commands ...[]byte) (err error) {
	for _, command := range commands {
		if err = d.c.Command(command[0], command[1:]...); err != nil {
			return
		}
	}
	return
}

func (d *epd7in5v2) refresh() error {
	if err := d.c.Command(epd7in5v2DisplayRefresh); err != nil {
		return err
	}
	d.sleep(100 * time.Millisecond)
	return d.waitBusy()
}

func (d *epd7in5v2) Clear() (err error) {
	var (
		size  = bufferSize(d.width, d.height)
		white = make([]byte, size)
	)
	for i := range white {
		white[i] = 0xff
	}
	if err = d.c.Command(epd7in5v2DataStartOld, white...); err != nil {
		return
	}
	if err = d.c.Command(epd7in5v2DataStartNew, make([]byte, size)...); err != nil {
		return
	}
	return d.refresh()
}

func (d *epd7in5v2) Display(buf []byte) (err error) {
	if len(buf) != bufferSize(d.width, d.height) {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSize, len(buf), bufferSize(d.width, d.height))
	}

	// The old data RAM holds the inverted frame.
	old := make([]byte, len(buf))
	for i, b := range buf {
		old[i] = ^b
	}
	if err = d.c.Command(epd7in5v2DataStartOld, old...); err != nil {
		return
	}
	if err = d.c.Command(epd7in5v2DataStartNew, buf...); err != nil {
		return
	}
	return d.refresh()
}

func (d *epd7in5v2) Buffer(img image.Image) []byte {
	return packImage(img, d.width, d.height, d.rotation)
}

func (d *epd7in5v2) Sleep() (err error) {
	if d.asleep {
		return
	}
	if err = d.c.Command(epd7in5v2VCOMDataInterval, epd7in5v2VCOMBorderFloating); err != nil {
		return
	}
	if err = d.c.Command(epd7in5v2PowerOff); err != nil {
		return
	}
	if err = d.waitBusy(); err != nil {
		return
	}
	if err = d.c.Command(epd7in5v2DeepSleep, epd7in5v2DeepSleepCheckCode); err != nil {
		return
	}
	d.sleep(2 * time.Second)
	d.asleep = true
	return
}

func (d *epd7in5v2) Close() error {
	return d.c.Close()
}
