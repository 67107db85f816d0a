// Package config loads the dashboard settings from the environment.
//
// A Config is built once at startup by [Load] and passed to every component
// that needs it; nothing reads the environment after that.
package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// ErrInvalid is wrapped by every validation error returned from Load.
var ErrInvalid = errors.New("config: invalid value")

// StatsMode is the aggregation period of the GitHub commit counter.
type StatsMode string

// Supported stats modes.
const (
	StatsDay   StatsMode = "day"
	StatsMonth StatsMode = "month"
	StatsYear  StatsMode = "year"
)

// FooterPolicy selects what occupies the last footer slot.
type FooterPolicy string

// Supported footer policies.
const (
	FooterAuto   FooterPolicy = "auto"   // Douban when configured and active, VPS otherwise
	FooterDouban FooterPolicy = "douban" // Douban whenever stats are available
	FooterVPS    FooterPolicy = "vps"    // always VPS
)

// DisplayMode is the screen shown on ordinary days.
type DisplayMode string

// Supported display modes.
const (
	DisplayDashboard DisplayMode = "dashboard"
	DisplayQuote     DisplayMode = "quote"
	DisplayPoetry    DisplayMode = "poetry"
	DisplayWallpaper DisplayMode = "wallpaper"
)

// ParseDisplayMode is case insensitive. Unknown modes are DisplayDashboard.
func ParseDisplayMode(s string) DisplayMode {
	switch mode := DisplayMode(strings.ToLower(strings.TrimSpace(s))); mode {
	case DisplayQuote, DisplayPoetry, DisplayWallpaper:
		return mode
	default:
		return DisplayDashboard
	}
}

// MonthDay is a calendar date without a year.
type MonthDay struct {
	Month time.Month
	Day   int
}

func (md MonthDay) String() string {
	return fmt.Sprintf("%02d-%02d", int(md.Month), md.Day)
}

// Matches reports whether t falls on md.
func (md MonthDay) Matches(t time.Time) bool {
	return t.Month() == md.Month && t.Day() == md.Day
}

// ParseMonthDay parses a MM-DD date.
func ParseMonthDay(s string) (MonthDay, error) {
	t, err := time.Parse("01-02", strings.TrimSpace(s))
	if err != nil {
		return MonthDay{}, fmt.Errorf("%w: date %q is not MM-DD", ErrInvalid, s)
	}
	return MonthDay{Month: t.Month(), Day: t.Day()}, nil
}

// Config is the complete dashboard configuration.
type Config struct {
	// DisplayMode is the screen shown when no holiday or year-end summary
	// takes precedence.
	DisplayMode DisplayMode

	// RefreshInterval is the delay between two dashboard refreshes.
	RefreshInterval time.Duration

	// Refresh intervals of the other display modes.
	QuoteRefreshInterval     time.Duration
	PoetryRefreshInterval    time.Duration
	WallpaperRefreshInterval time.Duration

	// ScreenshotMode saves every rendered frame to ScreenshotPath.
	ScreenshotMode bool
	ScreenshotPath string

	// QuietStartHour and QuietEndHour bound the daily window (0-23) without refreshes.
	QuietStartHour int
	QuietEndHour   int

	OpenWeatherAPIKey string
	CityName          string

	VPSAPIKey string
	VPSVeid   string

	GitHubUsername  string
	GitHubToken     string
	GitHubStatsMode StatsMode

	DoubanID       string
	FooterLastSlot FooterPolicy

	// YearEndDate is the day the year-in-review screen replaces the dashboard.
	YearEndDate MonthDay

	ListGoals    []string
	ListMust     []string
	ListOptional []string

	FontPath string
	IconsDir string

	// WallpaperDir holds the images of the wallpaper mode.
	WallpaperDir string

	// ProviderTimeout bounds every outgoing provider request.
	ProviderTimeout time.Duration

	LogLevel      slog.Level
	DisplayDriver string
}

// Default list contents, shown when the LIST_* variables are unset.
var (
	DefaultGoals = []string{
		"1. English Practice (Daily)",
		"2. Daily Gym Workout Routine",
	}
	DefaultMust     = []string{"Finish Python Code", "Email the Manager", "Buy Milk and Bread"}
	DefaultOptional = []string{"Read 'The Great Gatsby'", "Clean the Living Room", "Sleep Early"}
)

// FromEnv loads the configuration from the process environment.
func FromEnv() (*Config, error) {
	return Load(os.Getenv)
}

// Load builds a Config from getenv, applying defaults for unset variables.
func Load(getenv func(string) string) (*Config, error) {
	e := env{getenv: getenv}

	cfg := &Config{
		DisplayMode:              ParseDisplayMode(e.string("DISPLAY_MODE", string(DisplayDashboard))),
		RefreshInterval:          e.seconds("REFRESH_INTERVAL", 600),
		QuoteRefreshInterval:     e.seconds("REFRESH_INTERVAL_QUOTE", 3600),
		PoetryRefreshInterval:    e.seconds("REFRESH_INTERVAL_POETRY", 3600),
		WallpaperRefreshInterval: e.seconds("REFRESH_INTERVAL_WALLPAPER", 3600),
		ScreenshotMode:           e.bool("SCREENSHOT_MODE"),
		ScreenshotPath:           e.string("SCREENSHOT_PATH", "screenshot.bmp"),
		QuietStartHour:           e.hour("QUIET_START_HOUR", 1),
		QuietEndHour:             e.hour("QUIET_END_HOUR", 6),
		OpenWeatherAPIKey:        e.string("OPENWEATHER_API_KEY", ""),
		CityName:                 e.string("CITY_NAME", "Beijing"),
		VPSAPIKey:                e.string("VPS_API_KEY", ""),
		VPSVeid:                  e.string("VPS_VEID", "1550095"),
		GitHubUsername:           e.string("GITHUB_USERNAME", ""),
		GitHubToken:              e.string("GITHUB_TOKEN", ""),
		DoubanID:                 e.string("DOUBAN_ID", ""),
		ListGoals:                e.list("LIST_GOALS", DefaultGoals),
		ListMust:                 e.list("LIST_MUST", DefaultMust),
		ListOptional:             e.list("LIST_OPTIONAL", DefaultOptional),
		FontPath:                 e.string("FONT_PATH", "resources/Font.ttc"),
		IconsDir:                 e.string("ICONS_DIR", "resources/icons"),
		WallpaperDir:             e.string("WALLPAPER_DIR", "resources/wallpapers"),
		ProviderTimeout:          e.seconds("PROVIDER_TIMEOUT", 10),
		DisplayDriver:            strings.ToLower(e.string("DISPLAY_DRIVER", "epd7in5v2")),
	}

	switch mode := StatsMode(strings.ToLower(e.string("GITHUB_STATS_MODE", string(StatsDay)))); mode {
	case StatsDay, StatsMonth, StatsYear:
		cfg.GitHubStatsMode = mode
	default:
		e.fail(fmt.Errorf("%w: GITHUB_STATS_MODE %q", ErrInvalid, mode))
	}

	switch policy := FooterPolicy(strings.ToLower(e.string("FOOTER_LAST_SLOT", string(FooterAuto)))); policy {
	case FooterAuto, FooterDouban, FooterVPS:
		cfg.FooterLastSlot = policy
	default:
		e.fail(fmt.Errorf("%w: FOOTER_LAST_SLOT %q", ErrInvalid, policy))
	}

	var err error
	if cfg.YearEndDate, err = ParseMonthDay(e.string("YEAR_END_DATE", "12-31")); err != nil {
		e.fail(fmt.Errorf("YEAR_END_DATE: %w", err))
	}

	if err = cfg.LogLevel.UnmarshalText([]byte(e.string("LOG_LEVEL", "info"))); err != nil {
		e.fail(fmt.Errorf("%w: LOG_LEVEL: %v", ErrInvalid, err))
	}

	for _, interval := range []struct {
		key string
		d   time.Duration
	}{
		{"REFRESH_INTERVAL", cfg.RefreshInterval},
		{"REFRESH_INTERVAL_QUOTE", cfg.QuoteRefreshInterval},
		{"REFRESH_INTERVAL_POETRY", cfg.PoetryRefreshInterval},
		{"REFRESH_INTERVAL_WALLPAPER", cfg.WallpaperRefreshInterval},
	} {
		if interval.d <= 0 {
			e.fail(fmt.Errorf("%w: %s must be positive", ErrInvalid, interval.key))
		}
	}
	if cfg.ProviderTimeout <= 0 {
		e.fail(fmt.Errorf("%w: PROVIDER_TIMEOUT must be positive", ErrInvalid))
	}

	if e.err != nil {
		return nil, e.err
	}
	return cfg, nil
}

// RefreshFor returns the refresh interval of mode. Screens without an
// interval of their own, like the holiday and year-end screens, use the
// dashboard interval.
func (c *Config) RefreshFor(mode DisplayMode) time.Duration {
	switch mode {
	case DisplayQuote:
		return c.QuoteRefreshInterval
	case DisplayPoetry:
		return c.PoetryRefreshInterval
	case DisplayWallpaper:
		return c.WallpaperRefreshInterval
	default:
		return c.RefreshInterval
	}
}

// LogValue implements slog.LogValuer, secrets are reported as set or unset only.
func (c *Config) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("mode", string(c.DisplayMode)),
		slog.Duration("refresh", c.RefreshInterval),
		slog.String("quiet", fmt.Sprintf("%02d:00-%02d:00", c.QuietStartHour, c.QuietEndHour)),
		slog.String("city", c.CityName),
		slog.Bool("weather_key", c.OpenWeatherAPIKey != ""),
		slog.Bool("vps_key", c.VPSAPIKey != ""),
		slog.String("github", c.GitHubUsername),
		slog.String("github_mode", string(c.GitHubStatsMode)),
		slog.String("douban", c.DoubanID),
		slog.String("footer_last", string(c.FooterLastSlot)),
		slog.String("year_end", c.YearEndDate.String()),
		slog.String("driver", c.DisplayDriver),
		slog.Bool("screenshot", c.ScreenshotMode),
	)
}

// env collects the first parse error so Load can report it after reading everything.
type env struct {
	getenv func(string) string
	err    error
}

func (e *env) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}

func (e *env) string(key, fallback string) string {
	if v := strings.TrimSpace(e.getenv(key)); v != "" {
		return v
	}
	return fallback
}

func (e *env) bool(key string) bool {
	return strings.EqualFold(strings.TrimSpace(e.getenv(key)), "true")
}

func (e *env) int(key string, fallback int) int {
	v := strings.TrimSpace(e.getenv(key))
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(fmt.Errorf("%w: %s=%q is not a number", ErrInvalid, key, v))
		return fallback
	}
	return n
}

func (e *env) seconds(key string, fallback int) time.Duration {
	return time.Duration(e.int(key, fallback)) * time.Second
}

func (e *env) hour(key string, fallback int) int {
	h := e.int(key, fallback)
	if h < 0 || h > 23 {
		e.fail(fmt.Errorf("%w: %s=%d is not an hour (0-23)", ErrInvalid, key, h))
		return fallback
	}
	return h
}

// list splits a ';' separated variable, dropping empty entries.
func (e *env) list(key string, fallback []string) []string {
	v := strings.TrimSpace(e.getenv(key))
	if v == "" {
		return append([]string(nil), fallback...)
	}
	var out []string
	for _, item := range strings.Split(v, ";") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
