package layout

import (
	"github.com/BeatGlow/inkboard/config"
	"github.com/BeatGlow/inkboard/holiday"
	"github.com/BeatGlow/inkboard/provider"
)

// Mode selects which screen is rendered.
type Mode int

// Screens. A holiday takes precedence over the year-end summary, and both
// take precedence over the configured display mode.
const (
	ModeDashboard Mode = iota
	ModeHoliday
	ModeYearEnd
	ModeQuote
	ModePoetry
	ModeWallpaper
)

func (m Mode) String() string {
	switch m {
	case ModeDashboard:
		return "dashboard"
	case ModeHoliday:
		return "holiday"
	case ModeYearEnd:
		return "year-end"
	case ModeQuote:
		return "quote"
	case ModePoetry:
		return "poetry"
	case ModeWallpaper:
		return "wallpaper"
	default:
		return "unknown"
	}
}

// DisplayMode is the setting whose refresh interval applies to m. The
// holiday and year-end screens refresh like the dashboard.
func (m Mode) DisplayMode() config.DisplayMode {
	switch m {
	case ModeQuote:
		return config.DisplayQuote
	case ModePoetry:
		return config.DisplayPoetry
	case ModeWallpaper:
		return config.DisplayWallpaper
	default:
		return config.DisplayDashboard
	}
}

// ConfiguredMode is the screen of a display mode setting. Unknown settings
// show the dashboard.
func ConfiguredMode(m config.DisplayMode) Mode {
	switch m {
	case config.DisplayQuote:
		return ModeQuote
	case config.DisplayPoetry:
		return ModePoetry
	case config.DisplayWallpaper:
		return ModeWallpaper
	default:
		return ModeDashboard
	}
}

// ResolveMode picks the screen: a holiday wins over the year-end summary,
// which needs both the flag and a summary; the dashboard is the default.
func ResolveMode(h *holiday.Holiday, data *provider.DashboardData) Mode {
	switch {
	case h != nil:
		return ModeHoliday
	case data != nil && data.IsYearEnd && data.YearSummary != nil:
		return ModeYearEnd
	default:
		return ModeDashboard
	}
}
