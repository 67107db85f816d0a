package layout

import (
	"fmt"
	"strconv"
	"time"

	"github.com/BeatGlow/inkboard/config"
	"github.com/BeatGlow/inkboard/provider"
)

// Kind is how a footer item is drawn.
type Kind int

const (
	KindRing      Kind = iota // progress ring with the value as percentage
	KindText                  // large text
	KindSmallText             // medium text, for longer values
)

func (k Kind) String() string {
	switch k {
	case KindRing:
		return "ring"
	case KindText:
		return "text"
	case KindSmallText:
		return "text_small"
	default:
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
}

// FooterItem is one footer slot.
type FooterItem struct {
	Label string
	Value any
	Kind  Kind
}

// CommitsLabel names the commit counter after the stats period.
func CommitsLabel(mode config.StatsMode, now time.Time) string {
	switch mode {
	case config.StatsYear:
		return fmt.Sprintf("Commits (%d)", now.Year())
	case config.StatsMonth:
		return "Commits (Mo)"
	default:
		return "Commits (Day)"
	}
}

// BuildFooterItems returns the footer slots from left to right. The last slot
// shows Douban stats or VPS usage depending on FOOTER_LAST_SLOT.
func BuildFooterItems(cfg *config.Config, data *provider.DashboardData, now time.Time) []FooterItem {
	items := []FooterItem{
		{Label: "Weekly", Value: data.WeekProgress, Kind: KindRing},
		{Label: CommitsLabel(cfg.GitHubStatsMode, now), Value: strconv.Itoa(data.Commits), Kind: KindText},
		{Label: fmt.Sprintf("BTC (%.1f%%)", data.BTC.Change24h), Value: "$" + data.BTC.USD, Kind: KindText},
	}

	if showDouban(cfg, data.Douban) {
		items = append(items, FooterItem{
			Label: "Douban (Year)",
			Value: fmt.Sprintf("B:%d M:%d", data.Douban.Book, data.Douban.Movie),
			Kind:  KindSmallText,
		})
	} else {
		items = append(items, FooterItem{Label: "VPS Data", Value: data.VPSUsage, Kind: KindRing})
	}
	return items
}

func showDouban(cfg *config.Config, stats *provider.DoubanStats) bool {
	switch cfg.FooterLastSlot {
	case config.FooterVPS:
		return false
	case config.FooterDouban:
		return stats != nil
	default:
		return cfg.DoubanID != "" && stats.Active()
	}
}
