// Package calendar answers working-day questions against a per-year holiday table.
package calendar

import (
	"fmt"
	"os"
	"sort"
	"time"

	"gopkg.in/yaml.v3"
)

const DateLayout = "2006-01-02"

// Holiday is a single non-working date.
type Holiday struct {
	Date time.Time
	Name string
}

// Calendar holds a fixed holiday set. A nil *Calendar has no holidays.
type Calendar struct {
	holidays map[string]Holiday
}

func New(holidays ...Holiday) *Calendar {
	c := &Calendar{holidays: make(map[string]Holiday, len(holidays))}
	for _, h := range holidays {
		c.holidays[key(h.Date)] = h
	}
	return c
}

type holidayFile struct {
	Years map[int][]struct {
		Date string `yaml:"date"`
		Name string `yaml:"name"`
	} `yaml:"years"`
}

// Parse reads a YAML holiday table keyed by year.
func Parse(data []byte) (*Calendar, error) {
	var f holidayFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse holiday table: %w", err)
	}

	var holidays []Holiday
	for year, entries := range f.Years {
		for _, e := range entries {
			d, err := time.ParseInLocation(DateLayout, e.Date, time.Local)
			if err != nil {
				return nil, fmt.Errorf("invalid holiday date %q: %w", e.Date, err)
			}
			if d.Year() != year {
				return nil, fmt.Errorf("holiday %s listed under year %d", e.Date, year)
			}
			holidays = append(holidays, Holiday{Date: d, Name: e.Name})
		}
	}
	return New(holidays...), nil
}

// LoadFile reads the holiday table from path.
func LoadFile(path string) (*Calendar, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read holiday table: %w", err)
	}
	return Parse(data)
}

func (c *Calendar) IsHoliday(date time.Time) bool {
	if c == nil {
		return false
	}
	_, ok := c.holidays[key(date)]
	return ok
}

func (c *Calendar) IsWorkingDay(date time.Time) bool {
	if IsWeekend(date) {
		return false
	}
	return !c.IsHoliday(date)
}

// BusinessDays counts working days in [start, end]. It returns 0 when start is after end.
func (c *Calendar) BusinessDays(start, end time.Time) int {
	last := ordinal(end)
	count := 0
	for d := DateOf(start); ordinal(d) <= last; d = d.AddDate(0, 0, 1) {
		if c.IsWorkingDay(d) {
			count++
		}
	}
	return count
}

// Holidays returns the holidays of a year ordered by date.
func (c *Calendar) Holidays(year int) []Holiday {
	if c == nil {
		return nil
	}
	var out []Holiday
	for _, h := range c.holidays {
		if h.Date.Year() == year {
			out = append(out, h)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// Len reports the number of holidays across all years.
func (c *Calendar) Len() int {
	if c == nil {
		return 0
	}
	return len(c.holidays)
}

func IsWeekend(date time.Time) bool {
	wd := date.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// RangesOverlap is the inclusive interval test s1 <= e2 && e1 >= s2.
func RangesOverlap(s1, e1, s2, e2 time.Time) bool {
	return ordinal(s1) <= ordinal(e2) && ordinal(e1) >= ordinal(s2)
}

// Compare orders a and b by calendar date alone, ignoring time of day and
// location. It returns -1, 0 or +1.
func Compare(a, b time.Time) int {
	oa, ob := ordinal(a), ordinal(b)
	switch {
	case oa < ob:
		return -1
	case oa > ob:
		return 1
	}
	return 0
}

// DateOf truncates t to midnight in its own location.
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func DaysInMonth(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

func ordinal(t time.Time) int {
	y, m, d := t.Date()
	return y*10000 + int(m)*100 + d
}

func key(t time.Time) string {
	return t.Format(DateLayout)
}
