package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/BeatGlow/inkboard/config"
	"github.com/BeatGlow/inkboard/display"
	"github.com/BeatGlow/inkboard/layout"
	"github.com/BeatGlow/inkboard/provider"
	"github.com/BeatGlow/inkboard/schedule"
)

// dashboard drives one panel: fetch, render, show, wait.
type dashboard struct {
	cfg      *config.Config
	output   display.Display
	layout   *layout.Layout
	provider *provider.Client
	quiet    schedule.QuietHours
	logger   *slog.Logger
	now      func() time.Time
	sleep    func(context.Context, time.Duration) error
}

func newDashboard(cfg *config.Config, output display.Display, l *layout.Layout, p *provider.Client, logger *slog.Logger) *dashboard {
	return &dashboard{
		cfg:      cfg,
		output:   output,
		layout:   l,
		provider: p,
		quiet:    schedule.FromConfig(cfg),
		logger:   logger,
		now:      time.Now,
		sleep:    schedule.Sleep,
	}
}

// run refreshes until ctx is cancelled, then blanks the panel and puts it to
// sleep. Cancellation is not an error.
func (d *dashboard) run(ctx context.Context) (err error) {
	if err = d.output.Init(); err != nil {
		return fmt.Errorf("init %s: %w", d.output, err)
	}
	if err = d.output.Clear(); err != nil {
		return fmt.Errorf("clear %s: %w", d.output, err)
	}

	for {
		if err = d.cycle(ctx); err != nil {
			break
		}
	}
	if !errors.Is(err, context.Canceled) {
		return err
	}

	d.logger.Info("exiting")
	return d.shutdown()
}

// cycle runs a single refresh, or waits out the quiet hours.
func (d *dashboard) cycle(ctx context.Context) error {
	now := d.now()
	if quiet, wait := d.quiet.Check(now); quiet {
		d.logger.Info("in quiet hours",
			slog.String("window", d.quiet.String()),
			slog.Duration("sleep", wait))
		return d.sleep(ctx, wait)
	}

	d.logger.Info("refreshing", slog.Time("time", now))
	var (
		bounds = d.output.Bounds()
		data   = d.provider.Fetch(ctx, d.cfg.DisplayMode, now)
		mode   = d.layout.ModeAt(now, data)
		img    = d.layout.CreateImageAt(now, bounds.Dx(), bounds.Dy(), data)
	)
	if err := ctx.Err(); err != nil {
		return err
	}

	if d.cfg.ScreenshotMode {
		if err := display.SaveBMP(d.cfg.ScreenshotPath, img); err != nil {
			d.logger.Warn("screenshot failed", slog.Any("error", err))
		} else {
			d.logger.Info("saved screenshot", slog.String("path", d.cfg.ScreenshotPath))
		}
	}

	if err := d.output.Display(d.output.Buffer(img)); err != nil {
		return fmt.Errorf("display %s: %w", d.output, err)
	}
	d.logger.Debug("frame shown", slog.String("mode", mode.String()))

	return d.sleep(ctx, d.cfg.RefreshFor(mode.DisplayMode()))
}

func (d *dashboard) shutdown() (err error) {
	if err = d.output.Init(); err != nil {
		return
	}
	if err = d.output.Clear(); err != nil {
		return
	}
	return d.output.Sleep()
}
