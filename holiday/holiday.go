// Package holiday looks up fixed-date holidays.
package holiday

import (
	_ "embed"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/BeatGlow/inkboard/config"
)

//go:embed holidays.yaml
var defaultTable []byte

// ErrDuplicate is returned by Parse when two entries share a date.
var ErrDuplicate = errors.New("holiday: duplicate date")

// Holiday is shown full screen on its date.
type Holiday struct {
	Title   string
	Message string
	Icon    string // optional icon key
}

// entry mirrors the YAML schema.
type entry struct {
	Date    string `yaml:"date"`
	Title   string `yaml:"title"`
	Message string `yaml:"message"`
	Icon    string `yaml:"icon"`
}

type document struct {
	Holidays []entry `yaml:"holidays"`
}

// Table maps calendar dates to holidays. The zero value has no holidays.
type Table struct {
	days map[config.MonthDay]Holiday
}

// Parse reads a YAML holiday table.
func Parse(data []byte) (*Table, error) {
	var doc document
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("holiday: %w", err)
	}

	t := &Table{days: make(map[config.MonthDay]Holiday, len(doc.Holidays))}
	for i, e := range doc.Holidays {
		date, err := config.ParseMonthDay(e.Date)
		if err != nil {
			return nil, fmt.Errorf("holiday: entry %d: %w", i, err)
		}
		if e.Title == "" {
			return nil, fmt.Errorf("holiday: entry %d (%s): missing title", i, date)
		}
		if _, dup := t.days[date]; dup {
			return nil, fmt.Errorf("%w %s", ErrDuplicate, date)
		}
		t.days[date] = Holiday{Title: e.Title, Message: e.Message, Icon: e.Icon}
	}
	return t, nil
}

// Default returns the built-in holiday table.
func Default() *Table {
	t, err := Parse(defaultTable)
	if err != nil {
		panic(err)
	}
	return t
}

// Lookup returns the holiday on the date of now, if any.
func (t *Table) Lookup(now time.Time) (Holiday, bool) {
	if t == nil {
		return Holiday{}, false
	}
	h, ok := t.days[config.MonthDay{Month: now.Month(), Day: now.Day()}]
	return h, ok
}

// Len returns the number of holidays in the table.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.days)
}
