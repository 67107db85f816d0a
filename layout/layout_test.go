package layout

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/BeatGlow/inkboard/config"
	"github.com/BeatGlow/inkboard/holiday"
	"github.com/BeatGlow/inkboard/pixel"
	"github.com/BeatGlow/inkboard/provider"
	"github.com/BeatGlow/inkboard/render"
)

func testConfig(t *testing.T, env map[string]string) *config.Config {
	t.Helper()
	cfg, err := config.Load(func(key string) string { return env[key] })
	if err != nil {
		t.Fatal(err)
	}
	return cfg
}

func testData() *provider.DashboardData {
	return &provider.DashboardData{
		Weather:      provider.NoKeyWeather,
		Commits:      7,
		VPSUsage:     42,
		BTC:          provider.BTC{USD: "50,000", Change24h: 2.5},
		WeekProgress: 35,
	}
}

func TestResolveMode(t *testing.T) {
	var (
		xmas    = &holiday.Holiday{Title: "Merry Christmas"}
		summary = &provider.YearSummary{Total: 100, Max: 9, Avg: 0.3}
	)
	tests := []struct {
		Name    string
		Holiday *holiday.Holiday
		Data    *provider.DashboardData
		Want    Mode
	}{
		{"dashboard", nil, &provider.DashboardData{}, ModeDashboard},
		{"nil data", nil, nil, ModeDashboard},
		{"holiday", xmas, &provider.DashboardData{}, ModeHoliday},
		{"holiday wins", xmas, &provider.DashboardData{IsYearEnd: true, YearSummary: summary}, ModeHoliday},
		{"year end", nil, &provider.DashboardData{IsYearEnd: true, YearSummary: summary}, ModeYearEnd},
		{"year end without summary", nil, &provider.DashboardData{IsYearEnd: true}, ModeDashboard},
		{"summary without year end", nil, &provider.DashboardData{YearSummary: summary}, ModeDashboard},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			if got := ResolveMode(test.Holiday, test.Data); got != test.Want {
				it.Errorf("expected %s, got %s", test.Want, got)
			}
		})
	}
}

func TestLimitListItems(t *testing.T) {
	tests := []struct {
		List  []string
		Limit int
		Want  []string
	}{
		{[]string{"a", "b"}, 5, []string{"a", "b"}},
		{[]string{"a", "b", "c", "d", "e"}, 5, []string{"a", "b", "c", "d", "e"}},
		{[]string{"a", "b", "c", "d", "e", "f"}, 5, []string{"a", "b", "c", "d", "..."}},
		{[]string{"a", "b"}, 1, []string{"..."}},
		{nil, 5, nil},
	}
	for _, test := range tests {
		if got := LimitListItems(test.List, test.Limit); !reflect.DeepEqual(got, test.Want) {
			t.Errorf("LimitListItems(%q, %d): expected %q, got %q", test.List, test.Limit, test.Want, got)
		}
	}
}

func TestKindString(t *testing.T) {
	for kind, want := range map[Kind]string{KindRing: "ring", KindText: "text", KindSmallText: "text_small"} {
		if s := kind.String(); s != want {
			t.Errorf("expected %q, got %q", want, s)
		}
	}
}

func TestBuildFooterItems(t *testing.T) {
	now := time.Date(2025, time.June, 1, 12, 0, 0, 0, time.UTC)

	t.Run("vps without douban", func(it *testing.T) {
		items := BuildFooterItems(testConfig(it, nil), testData(), now)
		want := []FooterItem{
			{Label: "Weekly", Value: 35, Kind: KindRing},
			{Label: "Commits (Day)", Value: "7", Kind: KindText},
			{Label: "BTC (2.5%)", Value: "$50,000", Kind: KindText},
			{Label: "VPS Data", Value: 42, Kind: KindRing},
		}
		if !reflect.DeepEqual(items, want) {
			it.Errorf("expected %+v, got %+v", want, items)
		}
	})

	t.Run("commit labels", func(it *testing.T) {
		for mode, want := range map[string]string{"day": "Commits (Day)", "month": "Commits (Mo)", "year": "Commits (2025)"} {
			cfg := testConfig(it, map[string]string{"GITHUB_STATS_MODE": mode})
			if label := BuildFooterItems(cfg, testData(), now)[1].Label; label != want {
				it.Errorf("%s: expected %q, got %q", mode, want, label)
			}
		}
	})

	tests := []struct {
		Name   string
		Env    map[string]string
		Douban *provider.DoubanStats
		Want   FooterItem
	}{
		{
			"auto with activity",
			map[string]string{"DOUBAN_ID": "reader"},
			&provider.DoubanStats{Book: 3, Movie: 2, Music: 1},
			FooterItem{Label: "Douban (Year)", Value: "B:3 M:2", Kind: KindSmallText},
		},
		{
			"auto without activity",
			map[string]string{"DOUBAN_ID": "reader"},
			&provider.DoubanStats{Music: 4},
			FooterItem{Label: "VPS Data", Value: 42, Kind: KindRing},
		},
		{
			"auto without id",
			nil,
			&provider.DoubanStats{Book: 3},
			FooterItem{Label: "VPS Data", Value: 42, Kind: KindRing},
		},
		{
			"always vps",
			map[string]string{"DOUBAN_ID": "reader", "FOOTER_LAST_SLOT": "vps"},
			&provider.DoubanStats{Book: 3},
			FooterItem{Label: "VPS Data", Value: 42, Kind: KindRing},
		},
		{
			"douban without activity",
			map[string]string{"DOUBAN_ID": "reader", "FOOTER_LAST_SLOT": "douban"},
			&provider.DoubanStats{},
			FooterItem{Label: "Douban (Year)", Value: "B:0 M:0", Kind: KindSmallText},
		},
		{
			"douban unavailable",
			map[string]string{"DOUBAN_ID": "reader", "FOOTER_LAST_SLOT": "douban"},
			nil,
			FooterItem{Label: "VPS Data", Value: 42, Kind: KindRing},
		},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			data := testData()
			data.Douban = test.Douban
			items := BuildFooterItems(testConfig(it, test.Env), data, now)
			if len(items) != 4 {
				it.Fatalf("expected 4 items, got %d", len(items))
			}
			if last := items[3]; !reflect.DeepEqual(last, test.Want) {
				it.Errorf("expected %+v, got %+v", test.Want, last)
			}
		})
	}
}

// rowIsWhite checks the row between the outer margins.
func rowIsWhite(img *pixel.MonoImage, y int) bool {
	for x := img.Rect.Min.X + 2*margin; x < img.Rect.Max.X-2*margin; x++ {
		if img.At(x, y) == pixel.Black {
			return false
		}
	}
	return true
}

func TestCreateImage(t *testing.T) {
	var (
		cfg     = testConfig(t, map[string]string{"ICONS_DIR": t.TempDir()})
		fonts   = render.FallbackFonts()
		summary = &provider.YearSummary{Total: 1234, Max: 30, Avg: 3.4}
		workday = time.Date(2025, time.June, 3, 9, 30, 0, 0, time.UTC)
		xmas    = time.Date(2025, time.December, 25, 9, 30, 0, 0, time.UTC)
		newYear = time.Date(2025, time.December, 31, 9, 30, 0, 0, time.UTC)
	)

	tests := []struct {
		Name      string
		Now       time.Time
		YearEnd   bool
		Mode      Mode
		Separator bool // dashboard list separator drawn
	}{
		{"dashboard", workday, false, ModeDashboard, true},
		{"holiday", xmas, true, ModeHoliday, false},
		{"year end", newYear, true, ModeYearEnd, false},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			l := New(cfg, fonts, WithClock(func() time.Time { return test.Now }))
			data := testData()
			data.IsYearEnd = test.YearEnd
			data.YearSummary = summary

			if mode := l.Mode(data); mode != test.Mode {
				it.Fatalf("expected %s, got %s", test.Mode, mode)
			}

			for _, size := range [][2]int{{800, 480}, {640, 384}} {
				img := l.CreateImage(size[0], size[1], data)
				if b := img.Bounds(); b.Dx() != size[0] || b.Dy() != size[1] {
					it.Fatalf("expected %dx%d image, got %s", size[0], size[1], b)
				}
				if img.Count(img.Rect, pixel.Black) == 0 {
					it.Errorf("expected something to be drawn on %dx%d", size[0], size[1])
				}
			}

			img := l.CreateImage(800, 480, data)
			if drawn := !rowIsWhite(img, lineBottomY); drawn != test.Separator {
				it.Errorf("expected list separator drawn=%t", test.Separator)
			}
			if framed := img.At(400, margin) == pixel.Black; framed != (test.Mode == ModeHoliday) {
				it.Errorf("expected holiday frame drawn=%t", test.Mode == ModeHoliday)
			}
		})
	}
}

func TestCreateImageNilData(t *testing.T) {
	l := New(testConfig(t, nil), nil, WithHolidays(&holiday.Table{}))
	img := l.CreateImage(800, 480, nil)
	if b := img.Bounds(); b.Dx() != 800 || b.Dy() != 480 {
		t.Fatalf("expected 800x480 image, got %s", b)
	}
}

func TestModeMapping(t *testing.T) {
	tests := []struct {
		Setting config.DisplayMode
		Mode    Mode
		Name    string
	}{
		{config.DisplayDashboard, ModeDashboard, "dashboard"},
		{config.DisplayQuote, ModeQuote, "quote"},
		{config.DisplayPoetry, ModePoetry, "poetry"},
		{config.DisplayWallpaper, ModeWallpaper, "wallpaper"},
		{"unknown_mode", ModeDashboard, "dashboard"},
	}
	for _, test := range tests {
		t.Run(string(test.Setting), func(it *testing.T) {
			mode := ConfiguredMode(test.Setting)
			if mode != test.Mode {
				it.Fatalf("expected %s, got %s", test.Mode, mode)
			}
			if mode.String() != test.Name {
				it.Errorf("expected name %q, got %q", test.Name, mode.String())
			}
		})
	}

	// The holiday and year-end screens refresh like the dashboard.
	for _, mode := range []Mode{ModeDashboard, ModeHoliday, ModeYearEnd} {
		if got := mode.DisplayMode(); got != config.DisplayDashboard {
			t.Errorf("%s: expected dashboard refresh, got %q", mode, got)
		}
	}
	if got := ModeQuote.DisplayMode(); got != config.DisplayQuote {
		t.Errorf("expected quote refresh, got %q", got)
	}
}

func TestConfiguredModePrecedence(t *testing.T) {
	var (
		cfg     = testConfig(t, map[string]string{"DISPLAY_MODE": "quote"})
		summary = &provider.YearSummary{Total: 1, Max: 1, Avg: 1}
		workday = time.Date(2025, time.June, 3, 9, 30, 0, 0, time.UTC)
		xmas    = time.Date(2025, time.December, 25, 9, 30, 0, 0, time.UTC)
		newYear = time.Date(2025, time.December, 31, 9, 30, 0, 0, time.UTC)
		l       = New(cfg, render.FallbackFonts())
	)
	tests := []struct {
		Name string
		Now  time.Time
		Data *provider.DashboardData
		Want Mode
	}{
		{"configured", workday, &provider.DashboardData{}, ModeQuote},
		{"nil data", workday, nil, ModeQuote},
		{"holiday wins", xmas, &provider.DashboardData{}, ModeHoliday},
		{"year end wins", newYear, &provider.DashboardData{IsYearEnd: true, YearSummary: summary}, ModeYearEnd},
		{"year end without summary", newYear, &provider.DashboardData{IsYearEnd: true}, ModeQuote},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			if got := l.ModeAt(test.Now, test.Data); got != test.Want {
				it.Errorf("expected %s, got %s", test.Want, got)
			}
		})
	}
}

func TestCreateImageAtUsesGivenTime(t *testing.T) {
	var (
		workday = time.Date(2025, time.June, 3, 23, 59, 59, 0, time.UTC)
		xmas    = time.Date(2025, time.December, 25, 0, 0, 0, 0, time.UTC)
		l       = New(testConfig(t, nil), nil, WithClock(func() time.Time { return workday }))
	)
	if mode := l.Mode(testData()); mode != ModeDashboard {
		t.Fatalf("expected dashboard from the clock, got %s", mode)
	}
	if mode := l.ModeAt(xmas, testData()); mode != ModeHoliday {
		t.Fatalf("expected holiday at the given time, got %s", mode)
	}
	img := l.CreateImageAt(xmas, 800, 480, testData())
	if img.At(400, margin) != pixel.Black {
		t.Error("expected holiday frame")
	}
	if !rowIsWhite(img, lineBottomY) {
		t.Error("expected no dashboard lists")
	}
}

func TestCreateImageTextScreens(t *testing.T) {
	var (
		workday = time.Date(2025, time.June, 3, 9, 30, 0, 0, time.UTC)
		long    = "The quick brown fox jumps over the lazy dog. "
	)
	tests := []struct {
		Name string
		Mode string
		Data *provider.DashboardData
	}{
		{"quote", "quote", &provider.DashboardData{Quote: &provider.Quote{Text: "Talk is cheap.", Author: "Linus Torvalds"}}},
		{"long quote", "quote", &provider.DashboardData{Quote: &provider.Quote{Text: long + long + long + long + long + long + long + long}}},
		{"quote fallback", "quote", nil},
		{"poetry", "poetry", &provider.DashboardData{Poem: &provider.Poem{Content: "one\ntwo", Title: "title", Author: "author"}}},
		{"poetry fallback", "poetry", &provider.DashboardData{}},
	}
	for _, test := range tests {
		t.Run(test.Name, func(it *testing.T) {
			cfg := testConfig(it, map[string]string{"DISPLAY_MODE": test.Mode})
			l := New(cfg, nil, WithClock(func() time.Time { return workday }))
			img := l.CreateImage(800, 480, test.Data)
			if img.Count(img.Rect, pixel.Black) == 0 {
				it.Error("expected text to be drawn")
			}
			if !rowIsWhite(img, lineTopY) || !rowIsWhite(img, lineBottomY) {
				it.Error("expected no dashboard separators")
			}
			// Text stays inside the side margins.
			if n := img.Count(image.Rect(0, 0, 4*margin, 480), pixel.Black); n != 0 {
				it.Errorf("expected empty left margin, got %d black pixels", n)
			}
		})
	}
}

func TestLimitLines(t *testing.T) {
	face := render.FallbackFonts().M // 7 pixels per character
	if got := limitLines([]string{"a", "b"}, 2, face, 100); !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Errorf("expected lines unchanged, got %q", got)
	}
	lines := []string{"aaa", "bbb", "ccc"}
	if got, want := limitLines(lines, 2, face, 100), []string{"aaa", "bbb..."}; !reflect.DeepEqual(got, want) {
		t.Errorf("expected %q, got %q", want, got)
	}
	if lines[1] != "bbb" {
		t.Error("expected input to be left alone")
	}
}

func writeWallpaper(t *testing.T, path string, c color.Color) {
	t.Helper()
	i := image.NewGray(image.Rect(0, 0, 16, 10))
	for y := 0; y < 10; y++ {
		for x := 0; x < 16; x++ {
			i.Set(x, y, c)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err = png.Encode(f, i); err != nil {
		t.Fatal(err)
	}
}

func TestCreateImageWallpaper(t *testing.T) {
	var (
		dir     = t.TempDir()
		workday = time.Date(2025, time.June, 3, 9, 30, 0, 0, time.UTC)
	)
	writeWallpaper(t, filepath.Join(dir, "night.png"), color.Black)

	cfg := testConfig(t, map[string]string{"DISPLAY_MODE": "wallpaper", "WALLPAPER_DIR": dir})
	l := New(cfg, nil, WithClock(func() time.Time { return workday }))
	img := l.CreateImage(800, 480, &provider.DashboardData{})
	if n := img.Count(img.Rect, pixel.Black); n != 800*480 {
		t.Errorf("expected the wallpaper to cover the frame, got %d black pixels", n)
	}

	cfg = testConfig(t, map[string]string{"DISPLAY_MODE": "wallpaper", "WALLPAPER_DIR": t.TempDir()})
	l = New(cfg, nil, WithClock(func() time.Time { return workday }))
	img = l.CreateImage(800, 480, &provider.DashboardData{})
	if n := img.Count(img.Rect, pixel.Black); n == 0 || n > 800*480/10 {
		t.Errorf("expected a short notice without wallpaper, got %d black pixels", n)
	}
}
