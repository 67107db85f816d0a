// Package layout composes the dashboard frames.
package layout

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/font"

	"github.com/BeatGlow/inkboard/config"
	"github.com/BeatGlow/inkboard/draw"
	"github.com/BeatGlow/inkboard/holiday"
	"github.com/BeatGlow/inkboard/pixel"
	"github.com/BeatGlow/inkboard/provider"
	"github.com/BeatGlow/inkboard/render"
)

// Vertical layout of the dashboard, designed for a 480 pixel high panel.
const (
	topY          = 15
	lineTopY      = 110
	listHeaderY   = 125
	listStartY    = 165
	lineHeight    = 40
	lineBottomY   = 365
	footerCenterY = 410
	footerLabelY  = 445
)

const (
	// MaxListLines is the number of rows per list column.
	MaxListLines = 5

	margin = 20

	weatherIconOffsetX = -35
	weatherIconSize    = 20

	ringRadius    = 32
	ringThickness = 6

	frameRadius = 16

	maxTextLines = 5
	textSpacing  = 12
)

type column struct {
	Title    string
	X        int
	MaxWidth int
}

var columns = [3]column{
	{"Goals", 40, 260},
	{"Must Do", 320, 220},
	{"Optional", 560, 220},
}

// Layout renders frames. It is safe for concurrent use.
type Layout struct {
	cfg      *config.Config
	fonts    *render.Fonts
	holidays *holiday.Table
	now      func() time.Time
	logger   *slog.Logger
}

// Option configures a Layout.
type Option func(*Layout)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(l *Layout) { l.now = now }
}

// WithHolidays replaces the built-in holiday table.
func WithHolidays(t *holiday.Table) Option {
	return func(l *Layout) { l.holidays = t }
}

// WithLogger sets the logger for problems that degrade a frame.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Layout) {
		if logger != nil {
			l.logger = logger
		}
	}
}

// New returns a Layout drawing with fonts.
func New(cfg *config.Config, fonts *render.Fonts, opts ...Option) *Layout {
	if fonts == nil {
		fonts = render.FallbackFonts()
	}
	l := &Layout{
		cfg:      cfg,
		fonts:    fonts,
		holidays: holiday.Default(),
		now:      time.Now,
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Mode returns the screen CreateImage would render for data right now.
func (l *Layout) Mode(data *provider.DashboardData) Mode {
	return l.ModeAt(l.now(), data)
}

// ModeAt returns the screen CreateImageAt renders for data at now.
func (l *Layout) ModeAt(now time.Time, data *provider.DashboardData) Mode {
	mode, _ := l.resolve(now, data)
	return mode
}

func (l *Layout) resolve(now time.Time, data *provider.DashboardData) (Mode, *holiday.Holiday) {
	var today *holiday.Holiday
	if h, ok := l.holidays.Lookup(now); ok {
		today = &h
	}
	mode := ResolveMode(today, data)
	if mode == ModeDashboard {
		mode = ConfiguredMode(l.cfg.DisplayMode)
	}
	return mode, today
}

// CreateImage renders one frame of exactly width x height pixels.
func (l *Layout) CreateImage(width, height int, data *provider.DashboardData) *pixel.MonoImage {
	return l.CreateImageAt(l.now(), width, height, data)
}

// CreateImageAt is CreateImage at the given time. Callers that fetched data
// for now should render with the same instant.
func (l *Layout) CreateImageAt(now time.Time, width, height int, data *provider.DashboardData) *pixel.MonoImage {
	var (
		img       = pixel.NewMonoImage(width, height)
		mode, day = l.resolve(now, data)
	)
	switch mode {
	case ModeHoliday:
		l.drawHoliday(img, *day)
	case ModeYearEnd:
		l.drawYearEnd(img, now, data.YearSummary)
	case ModeQuote:
		q := provider.FallbackQuote
		if data != nil && data.Quote != nil {
			q = *data.Quote
		}
		l.drawQuote(img, q)
	case ModePoetry:
		p := provider.FallbackPoem
		if data != nil && data.Poem != nil {
			p = *data.Poem
		}
		l.drawPoem(img, p)
	case ModeWallpaper:
		l.drawWallpaper(img, now)
	default:
		if data == nil {
			data = &provider.DashboardData{Weather: provider.FailedWeather, BTC: provider.FailedBTC}
		}
		l.drawHeader(img, now, data.Weather)
		l.drawLists(img)
		l.drawFooter(img, BuildFooterItems(l.cfg, data, now))
	}
	return img
}

func (l *Layout) drawHeader(img *pixel.MonoImage, now time.Time, weather provider.Weather) {
	var (
		f     = l.fonts
		width = img.Bounds().Dx()
	)

	// Clock and date on the left.
	render.DrawText(img, columns[0].X, topY, now.Format("15:04"), f.Time)
	dateY := topY + 40
	day := now.Format("02")
	render.DrawText(img, columns[0].X, dateY, day, f.DateBig)
	render.DrawText(img, columns[0].X+render.TextWidth(day, f.DateBig)+10, dateY+(render.SizeDateBig-render.SizeDateSmall)/2,
		now.Format("Jan Mon"), f.DateSmall)

	// Weather on the right.
	cx := width - 140
	render.DrawWeatherIcon(img, cx+weatherIconOffsetX, topY+25, render.IconFor(weather.Icon), weatherIconSize, l.cfg.IconsDir)
	render.DrawText(img, cx-15, topY+8, weather.Temp+"°C", f.M)
	render.DrawCenteredText(img, cx, topY+55, weather.Desc, f.S, false)

	draw.HorizontalLine(img, margin, lineTopY, width-2*margin, pixel.Black)
}

func (l *Layout) drawLists(img *pixel.MonoImage) {
	lists := [3][]string{l.cfg.ListGoals, l.cfg.ListMust, l.cfg.ListOptional}
	for i, col := range columns {
		render.DrawText(img, col.X, listHeaderY, col.Title, l.fonts.M)
		for row, item := range LimitListItems(lists[i], MaxListLines) {
			render.DrawTruncatedText(img, col.X, listStartY+row*lineHeight, item, l.fonts.S, col.MaxWidth)
		}
	}
	draw.HorizontalLine(img, margin, lineBottomY, img.Bounds().Dx()-2*margin, pixel.Black)
}

func (l *Layout) drawFooter(img *pixel.MonoImage, items []FooterItem) {
	if len(items) == 0 {
		return
	}
	var (
		f    = l.fonts
		slot = float64(img.Bounds().Dx()-2*margin) / float64(len(items))
	)
	for i, item := range items {
		cx := int(margin + float64(i)*slot + slot/2)
		render.DrawCenteredText(img, cx, footerLabelY, item.Label, f.S, false)

		switch item.Kind {
		case KindRing:
			render.DrawProgressRing(img, cx, footerCenterY, ringRadius, item.Value, ringThickness)
			render.DrawCenteredText(img, cx, footerCenterY, fmt.Sprintf("%v%%", item.Value), f.XS, true)
		case KindSmallText:
			render.DrawCenteredText(img, cx, footerCenterY, fmt.Sprint(item.Value), f.M, true)
		default:
			render.DrawCenteredText(img, cx, footerCenterY, fmt.Sprint(item.Value), f.L, true)
		}
	}
}

func (l *Layout) drawYearEnd(img *pixel.MonoImage, now time.Time, summary *provider.YearSummary) {
	var (
		f       = l.fonts
		b       = img.Bounds()
		cx, cy  = b.Dx() / 2, b.Dy() / 2
		average = strconv.FormatFloat(summary.Avg, 'f', 1, 64)
	)
	render.DrawCenteredText(img, cx, 50, fmt.Sprintf("%d Year in Review", now.Year()), f.L, false)
	render.DrawCenteredText(img, cx, cy-60, strconv.Itoa(summary.Total), f.XL, true)
	render.DrawCenteredText(img, cx, cy, "Total Contributions", f.M, true)
	render.DrawCenteredText(img, cx, cy+80, fmt.Sprintf("Max Day: %d   |   Daily Avg: %s", summary.Max, average), f.S, true)
	render.DrawCenteredText(img, cx, b.Dy()-40, "See you in next year!", f.S, true)
}

func (l *Layout) drawHoliday(img *pixel.MonoImage, h holiday.Holiday) {
	var (
		f      = l.fonts
		b      = img.Bounds()
		cx     = b.Dx() / 2
		titleY = b.Dy() * 2 / 5
	)
	draw.RoundedRectangle(img, b.Inset(margin), frameRadius, pixel.Black)
	if h.Icon != "" {
		render.DrawWeatherIcon(img, cx, titleY-90, h.Icon, 80, l.cfg.IconsDir)
	}
	render.DrawCenteredText(img, cx, titleY, h.Title, f.L, true)
	if message, ok := render.Truncate(h.Message, f.M, b.Dx()-4*margin); ok && message != "" {
		render.DrawCenteredText(img, cx, titleY+70, message, f.M, true)
	}
}

func (l *Layout) drawQuote(img *pixel.MonoImage, q provider.Quote) {
	var footer string
	if q.Author != "" {
		footer = "- " + q.Author
	}
	l.drawTextScreen(img, q.Text, footer)
}

func (l *Layout) drawPoem(img *pixel.MonoImage, p provider.Poem) {
	var origin []string
	if p.Title != "" {
		origin = append(origin, "《"+p.Title+"》")
	}
	if p.Author != "" {
		origin = append(origin, p.Author)
	}
	l.drawTextScreen(img, p.Content, strings.Join(origin, " "))
}

// drawTextScreen centers body, wrapped in the large face, with footer below
// it in the medium face.
func (l *Layout) drawTextScreen(img *pixel.MonoImage, body, footer string) {
	var (
		f        = l.fonts
		b        = img.Bounds()
		cx       = b.Dx() / 2
		maxWidth = b.Dx() - 8*margin
		lines    = limitLines(render.WrapText(body, f.L, maxWidth), maxTextLines, f.L, maxWidth)
		lineH    = f.L.Metrics().Height.Ceil() + textSpacing
		blockH   = len(lines) * lineH
		top      = (b.Dy() - blockH) / 2
	)
	if footer != "" {
		top -= lineH / 2
	}
	for i, line := range lines {
		render.DrawCenteredText(img, cx, top+i*lineH, line, f.L, false)
	}
	if footer != "" {
		if fitted, ok := render.Truncate(footer, f.M, maxWidth); ok {
			render.DrawCenteredText(img, cx, top+blockH+textSpacing, fitted, f.M, false)
		}
	}
}

func (l *Layout) drawWallpaper(img *pixel.MonoImage, now time.Time) {
	path, err := render.PickWallpaper(l.cfg.WallpaperDir, now)
	if err == nil {
		err = render.DrawWallpaper(img, path)
	}
	if err != nil {
		l.logger.Warn("wallpaper unavailable", slog.String("dir", l.cfg.WallpaperDir), slog.Any("error", err))
		b := img.Bounds()
		render.DrawCenteredText(img, b.Dx()/2, b.Dy()/2, "No wallpaper", l.fonts.M, true)
	}
}

// limitLines keeps at most limit lines, marking the last kept one with an
// ellipsis when lines were dropped.
func limitLines(lines []string, limit int, face font.Face, maxWidth int) []string {
	if len(lines) <= limit {
		return lines
	}
	out := append([]string(nil), lines[:limit]...)
	out[limit-1], _ = render.Truncate(out[limit-1]+render.Ellipsis, face, maxWidth)
	return out
}

// LimitListItems returns at most limit items; longer lists end with "...".
func LimitListItems(list []string, limit int) []string {
	if len(list) <= limit {
		return list
	}
	if limit <= 0 {
		return nil
	}
	out := make([]string, 0, limit)
	out = append(out, list[:limit-1]...)
	return append(out, render.Ellipsis)
}
