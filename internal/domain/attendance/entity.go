package attendance

import (
	"time"
)

type Status string

const (
	StatusPresent    Status = "PRESENT"
	StatusAbsent     Status = "ABSENT"
	StatusLate       Status = "LATE"
	StatusEarlyLeave Status = "EARLY_LEAVE"
	StatusHalfDay    Status = "HALF_DAY"
	StatusOvertime   Status = "OVERTIME"
)

// Attendance is the single record of one staff member's working day.
// TotalWorkMinutes, BreakMinutes, OvertimeMinutes and Status are derived
// by Recompute and must not be assigned elsewhere.
type Attendance struct {
	ID      string
	StaffID string
	Date    time.Time

	ClockIn    *time.Time
	ClockOut   *time.Time
	BreakStart *time.Time
	BreakEnd   *time.Time

	TotalWorkMinutes *int
	BreakMinutes     *int
	OvertimeMinutes  *int
	Status           Status

	ClockInLocation  *string
	ClockInOrigin    *string
	ClockOutLocation *string
	ClockOutOrigin   *string

	Approved   bool
	ApprovedBy *string
	ApprovedAt *time.Time
	Notes      *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (a Attendance) HasClockedOut() bool {
	return a.ClockOut != nil
}

func (a Attendance) OnBreak() bool {
	return a.BreakStart != nil && a.BreakEnd == nil
}

// CountsAsPresent reports whether the day is counted as worked in monthly reports.
func (a Attendance) CountsAsPresent() bool {
	return a.Status == StatusPresent || a.Status == StatusOvertime
}
