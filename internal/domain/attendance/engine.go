package attendance

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// ShiftPolicy is the reference shift used to classify a day.
// Start and End are offsets from local midnight.
type ShiftPolicy struct {
	Start               time.Duration
	End                 time.Duration
	Grace               time.Duration
	StandardWorkMinutes int
	HalfDayMinutes      int
}

// DefaultShiftPolicy is the 09:00-18:00 day with 15 minutes of grace.
func DefaultShiftPolicy() ShiftPolicy {
	return ShiftPolicy{
		Start:               9 * time.Hour,
		End:                 18 * time.Hour,
		Grace:               15 * time.Minute,
		StandardWorkMinutes: 480,
		HalfDayMinutes:      240,
	}
}

// ParseClock parses "HH:MM" into an offset from midnight.
func ParseClock(s string) (time.Duration, error) {
	h, m, ok := strings.Cut(strings.TrimSpace(s), ":")
	if !ok {
		return 0, fmt.Errorf("invalid clock time %q: want HH:MM", s)
	}
	hour, err := strconv.Atoi(h)
	if err != nil || hour < 0 || hour > 23 {
		return 0, fmt.Errorf("invalid hour in %q", s)
	}
	minute, err := strconv.Atoi(m)
	if err != nil || minute < 0 || minute > 59 {
		return 0, fmt.Errorf("invalid minute in %q", s)
	}
	return time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute, nil
}

// Recompute derives the duration metrics and status of a record from its
// four timestamps. A record with only one clock timestamp is still open: it
// has no work metrics and its status is PRESENT.
func Recompute(a *Attendance, p ShiftPolicy) {
	a.BreakMinutes = nil
	if a.BreakStart != nil && a.BreakEnd != nil {
		bm := minutes(a.BreakEnd.Sub(*a.BreakStart))
		a.BreakMinutes = &bm
	}

	if a.ClockIn == nil && a.ClockOut == nil {
		a.TotalWorkMinutes = nil
		a.OvertimeMinutes = nil
		a.Status = StatusAbsent
		return
	}
	if a.ClockIn == nil || a.ClockOut == nil {
		a.TotalWorkMinutes = nil
		a.OvertimeMinutes = nil
		a.Status = StatusPresent
		return
	}

	total := minutes(a.ClockOut.Sub(*a.ClockIn))
	if a.BreakMinutes != nil {
		total -= *a.BreakMinutes
	}
	total = max(total, 0)
	a.TotalWorkMinutes = &total

	a.OvertimeMinutes = nil
	if total > p.StandardWorkMinutes {
		ot := total - p.StandardWorkMinutes
		a.OvertimeMinutes = &ot
	}

	a.Status = deriveStatus(a, p)
}

func deriveStatus(a *Attendance, p ShiftPolicy) Status {
	switch {
	case *a.TotalWorkMinutes < p.HalfDayMinutes:
		return StatusHalfDay
	case a.OvertimeMinutes != nil && *a.OvertimeMinutes > 0:
		return StatusOvertime
	case a.ClockIn.After(shiftMark(a.Date, p.Start+p.Grace, a.ClockIn.Location())):
		return StatusLate
	case a.ClockOut.Before(shiftMark(a.Date, p.End-p.Grace, a.ClockOut.Location())):
		return StatusEarlyLeave
	default:
		return StatusPresent
	}
}

// shiftMark is the wall-clock instant in loc offset from midnight of the
// record's day.
func shiftMark(day time.Time, offset time.Duration, loc *time.Location) time.Time {
	y, m, d := day.Date()
	h := int(offset / time.Hour)
	mi := int((offset % time.Hour) / time.Minute)
	return time.Date(y, m, d, h, mi, 0, 0, loc)
}

// minutes floors d to whole minutes.
func minutes(d time.Duration) int {
	return int(d / time.Minute)
}
