// Package schedule decides when the dashboard refreshes.
package schedule

import (
	"context"
	"fmt"
	"time"

	"github.com/BeatGlow/inkboard/config"
)

// QuietHours is a daily window, in whole hours, during which the panel is
// left alone. End is exclusive; a window with Start == End is never active.
type QuietHours struct {
	Start int
	End   int
}

// FromConfig returns the quiet window of cfg.
func FromConfig(cfg *config.Config) QuietHours {
	return QuietHours{Start: cfg.QuietStartHour, End: cfg.QuietEndHour}
}

func (q QuietHours) String() string {
	return fmt.Sprintf("%02d:00-%02d:00", q.Start, q.End)
}

// Contains reports whether hour h (0-23) is inside the window.
func (q QuietHours) Contains(h int) bool {
	switch {
	case q.Start < q.End:
		return q.Start <= h && h < q.End
	case q.Start > q.End:
		// Window wraps around midnight.
		return h >= q.Start || h < q.End
	default:
		return false
	}
}

// Check reports whether now is inside the window and, if so, how long to
// sleep until it ends. The duration is zero outside the window.
func (q QuietHours) Check(now time.Time) (bool, time.Duration) {
	if !q.Contains(now.Hour()) {
		return false, 0
	}
	end := time.Date(now.Year(), now.Month(), now.Day(), q.End, 0, 0, 0, now.Location())
	if !end.After(now) {
		end = end.AddDate(0, 0, 1)
	}
	return true, end.Sub(now)
}

// IsYearEnd reports whether now falls on the year-end summary date.
func IsYearEnd(now time.Time, date config.MonthDay) bool {
	return date.Matches(now)
}

// Sleep pauses for d or until ctx is done, whichever comes first.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
