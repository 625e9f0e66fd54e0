package calendar

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.Local)
}

func TestIsWorkingDay(t *testing.T) {
	cal := New(Holiday{Date: day(2025, time.January, 1), Name: "New Year's Day"})

	cases := []struct {
		name string
		date time.Time
		want bool
	}{
		{"holiday on a wednesday", day(2025, time.January, 1), false},
		{"plain thursday", day(2025, time.January, 2), true},
		{"saturday", day(2025, time.January, 4), false},
		{"sunday", day(2025, time.January, 5), false},
		{"monday", day(2025, time.January, 6), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, cal.IsWorkingDay(c.date))
		})
	}
}

func TestIsWorkingDayIgnoresTimeOfDay(t *testing.T) {
	cal := New(Holiday{Date: day(2025, time.May, 1)})
	assert.False(t, cal.IsWorkingDay(time.Date(2025, time.May, 1, 15, 30, 0, 0, time.Local)))
}

func TestBusinessDays(t *testing.T) {
	cal := New(
		Holiday{Date: day(2025, time.April, 23)},
		Holiday{Date: day(2025, time.May, 1)},
	)

	cases := []struct {
		name       string
		start, end time.Time
		want       int
	}{
		{"end before start", day(2025, time.March, 10), day(2025, time.March, 7), 0},
		{"single working day", day(2025, time.March, 10), day(2025, time.March, 10), 1},
		{"single weekend day", day(2025, time.March, 8), day(2025, time.March, 8), 0},
		{"full week without holiday", day(2025, time.March, 10), day(2025, time.March, 16), 5},
		{"monday to friday", day(2025, time.March, 3), day(2025, time.March, 7), 5},
		{"week with a holiday", day(2025, time.April, 21), day(2025, time.April, 25), 4},
		{"two weeks", day(2025, time.March, 3), day(2025, time.March, 14), 10},
		{"weekend only", day(2025, time.March, 15), day(2025, time.March, 16), 0},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, cal.BusinessDays(c.start, c.end))
		})
	}
}

func TestBusinessDaysEveryFullWeek(t *testing.T) {
	var cal *Calendar
	start := day(2025, time.January, 1)
	for i := 0; i < 365; i++ {
		s := start.AddDate(0, 0, i)
		assert.Equal(t, 5, cal.BusinessDays(s, s.AddDate(0, 0, 6)), "week starting %s", s.Format(DateLayout))
	}
}

func TestRangesOverlap(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 time.Time
		want           bool
	}{
		{"disjoint", day(2025, 3, 1), day(2025, 3, 5), day(2025, 3, 6), day(2025, 3, 9), false},
		{"touching end", day(2025, 3, 1), day(2025, 3, 5), day(2025, 3, 5), day(2025, 3, 9), true},
		{"contained", day(2025, 3, 1), day(2025, 3, 10), day(2025, 3, 3), day(2025, 3, 4), true},
		{"reverse disjoint", day(2025, 3, 6), day(2025, 3, 9), day(2025, 3, 1), day(2025, 3, 5), false},
		{"identical", day(2025, 3, 1), day(2025, 3, 1), day(2025, 3, 1), day(2025, 3, 1), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			assert.Equal(t, c.want, RangesOverlap(c.s1, c.e1, c.s2, c.e2))
		})
	}
}

func TestParse(t *testing.T) {
	data := []byte(`
years:
  2025:
    - date: "2025-01-01"
      name: New Year's Day
    - date: "2025-04-23"
      name: National Sovereignty and Children's Day
  2026:
    - date: "2026-01-01"
      name: New Year's Day
`)
	cal, err := Parse(data)
	require.NoError(t, err)

	assert.Equal(t, 3, cal.Len())
	assert.True(t, cal.IsHoliday(day(2025, time.April, 23)))
	assert.False(t, cal.IsHoliday(day(2025, time.April, 24)))

	h := cal.Holidays(2025)
	require.Len(t, h, 2)
	assert.Equal(t, "New Year's Day", h[0].Name)
}

func TestParseRejectsMisfiledYear(t *testing.T) {
	_, err := Parse([]byte("years:\n  2025:\n    - date: \"2026-01-01\"\n"))
	assert.Error(t, err)
}

func TestParseRejectsBadDate(t *testing.T) {
	_, err := Parse([]byte("years:\n  2025:\n    - date: \"01/01/2025\"\n"))
	assert.Error(t, err)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "holidays.yaml")
	require.NoError(t, os.WriteFile(path, []byte("years:\n  2025:\n    - date: \"2025-05-19\"\n      name: Youth Day\n"), 0o600))

	cal, err := LoadFile(path)
	require.NoError(t, err)
	assert.False(t, cal.IsWorkingDay(day(2025, time.May, 19)))

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestDaysInMonth(t *testing.T) {
	assert.Equal(t, 28, DaysInMonth(2025, time.February))
	assert.Equal(t, 29, DaysInMonth(2024, time.February))
	assert.Equal(t, 31, DaysInMonth(2025, time.December))
	assert.Equal(t, 30, DaysInMonth(2025, time.April))
}

func TestCompareIgnoresLocationAndTime(t *testing.T) {
	utcMidnight := time.Date(2025, time.March, 5, 0, 0, 0, 0, time.UTC)
	istanbul := time.FixedZone("TRT", 3*60*60)
	localLate := time.Date(2025, time.March, 5, 23, 30, 0, 0, istanbul)

	assert.Equal(t, 0, Compare(utcMidnight, localLate))
	assert.Equal(t, -1, Compare(utcMidnight, localLate.AddDate(0, 0, 1)))
	assert.Equal(t, 1, Compare(localLate, utcMidnight.AddDate(0, 0, -1)))
	assert.True(t, RangesOverlap(utcMidnight, utcMidnight, localLate, localLate))
}
