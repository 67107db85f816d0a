package provider

// Weather is the current condition in the configured city.
type Weather struct {
	Temp string // degrees Celsius, one decimal
	Desc string
	Icon string // OpenWeather main condition
}

// Placeholder values.
var (
	// NoKeyWeather is shown when no OpenWeather key is configured.
	NoKeyWeather = Weather{Temp: "13.9", Desc: "Sunny", Icon: "Clear"}

	// FailedWeather is shown when the weather request fails.
	FailedWeather = Weather{Temp: "--", Desc: "NetErr", Icon: ""}

	// FailedBTC is shown when the price request fails.
	FailedBTC = BTC{USD: "---"}

	// FallbackQuote is shown when the quote request fails.
	FallbackQuote = Quote{Text: "Stay hungry, stay foolish.", Author: "Steve Jobs"}

	// FallbackPoem is shown when the poetry request fails.
	FallbackPoem = Poem{Content: "床前明月光，疑是地上霜。\n举头望明月，低头思故乡。", Title: "静夜思", Author: "李白"}
)

// BTC is the bitcoin price.
type BTC struct {
	USD       string // formatted with thousands separators
	Change24h float64
}

// DoubanStats counts items marked as done this year.
type DoubanStats struct {
	Book  int
	Movie int
	Music int
}

// Active reports whether any book or movie was finished.
func (s *DoubanStats) Active() bool {
	return s != nil && (s.Book > 0 || s.Movie > 0)
}

// YearSummary is the GitHub contribution summary of the current year.
type YearSummary struct {
	Total int
	Max   int     // busiest single day
	Avg   float64 // per elapsed day, one decimal
}

// Quote is a saying and who said it.
type Quote struct {
	Text   string
	Author string // may be empty
}

// Poem is a classical Chinese poem or an excerpt of one.
type Poem struct {
	Content string // lines separated by '\n'
	Title   string
	Author  string
}

// DashboardData is everything one frame shows. It is built once per refresh
// and not modified afterwards.
type DashboardData struct {
	Weather      Weather
	Commits      int
	VPSUsage     int // percent
	BTC          BTC
	WeekProgress int // percent
	Douban       *DoubanStats
	IsYearEnd    bool
	YearSummary  *YearSummary

	// Quote and Poem are only fetched in their display modes.
	Quote *Quote
	Poem  *Poem
}
