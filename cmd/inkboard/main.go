package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/host/v3"

	"github.com/BeatGlow/inkboard/config"
	"github.com/BeatGlow/inkboard/display"
	"github.com/BeatGlow/inkboard/layout"
	"github.com/BeatGlow/inkboard/provider"
	"github.com/BeatGlow/inkboard/render"
)

func main() {
	driverFlag := flag.String("driver", "", "Display driver: epd7in5v2, mock or terminal (default: $DISPLAY_DRIVER)")
	widthFlag := flag.Int("width", 800, "Display width")
	heightFlag := flag.Int("height", 480, "Display height")
	spiPortFlag := flag.String("spi-port", "", "SPI port (default: use first available)")
	resetPinFlag := flag.String("reset", "GPIO17", "Reset GPIO pin")
	dcPinFlag := flag.String("dc", "GPIO25", "Data/Command GPIO pin (DC)")
	busyPinFlag := flag.String("busy", "GPIO24", "Busy GPIO pin")
	csPinFlag := flag.String("cs", "", "Chip select GPIO pin, if not driven by the SPI controller")
	rotateFlag := flag.String("rotate", "", "Display rotation")
	flag.Parse()

	cfg, err := config.FromEnv()
	if err != nil {
		fatal(err)
	}
	cfg.DisplayDriver = driverName(*driverFlag, cfg.DisplayDriver)

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	slog.SetDefault(logger)
	logger.Info("starting dashboard", slog.Any("config", cfg))

	rotation, err := display.ParseRotation(*rotateFlag)
	if err != nil {
		fatal(err)
	}

	var output display.Display
	switch cfg.DisplayDriver {
	case "epd7in5v2":
		if _, err = host.Init(); err != nil {
			fatal(err)
		}
		var conn display.Conn
		if conn, err = display.OpenSPI(&display.SPIConfig{
			Port:      *spiPortFlag,
			Mode:      display.DefaultSPIConfig.Mode,
			Speed:     display.DefaultSPIConfig.Speed,
			BatchSize: display.DefaultSPIConfig.BatchSize,
			Reset:     pin(*resetPinFlag),
			DC:        pin(*dcPinFlag),
			CS:        pin(*csPinFlag),
		}); err != nil {
			fatal(err)
		}
		if output, err = display.EPD7in5V2(conn, &display.Config{
			Width:    *widthFlag,
			Height:   *heightFlag,
			Rotation: rotation,
			Busy:     gpioreg.ByName(*busyPinFlag),
		}); err != nil {
			_ = conn.Close()
			fatal(err)
		}
	case "mock":
		output = display.Mock(*widthFlag, *heightFlag, logger)
	case "terminal":
		output = display.Terminal(os.Stdout, *widthFlag, *heightFlag)
	default:
		fatal(fmt.Errorf("unsupported display driver %q", cfg.DisplayDriver))
	}
	logger.Info("using display", slog.String("display", output.String()), slog.String("rotation", rotation.String()))

	var (
		fonts  = render.LoadFonts(cfg.FontPath, logger)
		client = provider.New(cfg, provider.WithLogger(logger))
		d      = newDashboard(cfg, output, layout.New(cfg, fonts, layout.WithLogger(logger)), client, logger)
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err = d.run(ctx)
	stop()

	if cerr := output.Close(); cerr != nil && err == nil {
		err = cerr
	}
	if err != nil {
		logger.Error("dashboard failed", slog.Any("error", err))
		os.Exit(1)
	}
}

// pin looks up a GPIO by name. An empty name is no pin.
func pin(name string) gpio.PinIO {
	if name == "" {
		return nil
	}
	if p := gpioreg.ByName(name); p != nil {
		return p
	}
	return gpio.INVALID
}

func fatal(err error) {
	fmt.Fprintln(os.Stderr, "fatal: "+err.Error())
	os.Exit(1)
}

// driverName picks the -driver flag over the configured driver. Names are
// case insensitive.
func driverName(fromFlag, configured string) string {
	if name := strings.ToLower(strings.TrimSpace(fromFlag)); name != "" {
		return name
	}
	return configured
}
