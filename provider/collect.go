package provider

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/BeatGlow/inkboard/config"
	"github.com/BeatGlow/inkboard/schedule"
)

// Fetch gathers the data of one display mode. The dashboard needs every
// source, quote and poetry modes only their own; unknown modes are treated as
// the dashboard. The year-end summary is fetched in every mode since it
// replaces any screen on the year-end date.
func (c *Client) Fetch(ctx context.Context, mode config.DisplayMode, now time.Time) *DashboardData {
	switch mode {
	case config.DisplayQuote, config.DisplayPoetry, config.DisplayWallpaper:
	default:
		return c.Collect(ctx, now)
	}

	data := &DashboardData{
		WeekProgress: WeekProgress(now),
		IsYearEnd:    schedule.IsYearEnd(now, c.cfg.YearEndDate),
	}
	c.fetchYearSummary(ctx, now, data)

	switch mode {
	case config.DisplayQuote:
		q, err := c.Quote(ctx)
		if err != nil {
			c.report(err)
		}
		data.Quote = &q
	case config.DisplayPoetry:
		p, err := c.Poem(ctx)
		if err != nil {
			c.report(err)
		}
		data.Poem = &p
	}
	return data
}

// Collect fetches every source in turn. Failed sources are logged and replaced
// by their placeholder, so the result is always complete.
func (c *Client) Collect(ctx context.Context, now time.Time) *DashboardData {
	data := &DashboardData{
		WeekProgress: WeekProgress(now),
		IsYearEnd:    schedule.IsYearEnd(now, c.cfg.YearEndDate),
	}

	var err error
	if data.Weather, err = c.Weather(ctx); err != nil {
		c.report(err)
		data.Weather = FailedWeather
	}
	if data.Commits, err = c.Commits(ctx, now); err != nil {
		c.report(err)
		data.Commits = 0
	}
	if data.VPSUsage, err = c.VPSUsage(ctx); err != nil {
		c.report(err)
		data.VPSUsage = 0
	}
	if data.BTC, err = c.BTC(ctx); err != nil {
		c.report(err)
		data.BTC = FailedBTC
	}
	if data.Douban, err = c.Douban(ctx, now); err != nil {
		c.report(err)
		data.Douban = nil
	}
	c.fetchYearSummary(ctx, now, data)
	return data
}

func (c *Client) fetchYearSummary(ctx context.Context, now time.Time, data *DashboardData) {
	if !data.IsYearEnd {
		return
	}
	summary, err := c.YearSummary(ctx, now)
	if err != nil {
		c.report(err)
		return
	}
	data.YearSummary = summary
}

func (c *Client) report(err error) {
	var (
		provider = "unknown"
		pe       *Error
	)
	if errors.As(err, &pe) {
		provider = pe.Provider
	}
	if errors.Is(err, ErrNotConfigured) {
		c.logger.Debug("provider skipped", slog.String("provider", provider))
		return
	}
	c.logger.Warn("provider failed", slog.String("provider", provider), slog.Any("error", err))
}
