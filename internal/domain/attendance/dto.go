package attendance

import (
	"strings"
	"time"

	"github.com/aburakt/staffy/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// UnknownLocation is recorded when a clock event carries no location.
const UnknownLocation = "Unknown"

// ClockEventRequest is shared by clock-in and clock-out.
type ClockEventRequest struct {
	StaffID  string  `json:"-"`
	Location string  `json:"location"`
	Origin   string  `json:"-"`
	Notes    *string `json:"notes,omitempty"`
}

func (r *ClockEventRequest) Validate() error {
	var errs validator.ValidationErrors
	if validator.IsEmpty(r.StaffID) {
		errs = append(errs, validator.ValidationError{Field: "staff_id", Message: "staff_id is required"})
	}
	if len(r.Location) > 255 {
		errs = append(errs, validator.ValidationError{Field: "location", Message: "location must be at most 255 characters"})
	}
	if len(errs) > 0 {
		return errs
	}
	return nil
}

// LocationOrDefault returns the trimmed location or UnknownLocation.
func (r *ClockEventRequest) LocationOrDefault() string {
	if loc := strings.TrimSpace(r.Location); loc != "" {
		return loc
	}
	return UnknownLocation
}

// UpdateAttendanceRequest replaces all four timestamps and the notes of a record.
type UpdateAttendanceRequest struct {
	ID         string     `json:"-"`
	ClockIn    *time.Time `json:"clock_in"`
	ClockOut   *time.Time `json:"clock_out"`
	BreakStart *time.Time `json:"break_start"`
	BreakEnd   *time.Time `json:"break_end"`
	Notes      *string    `json:"notes"`
}

func (r *UpdateAttendanceRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs = append(errs, validator.ValidationError{Field: "id", Message: "id is required"})
	}
	if r.ClockIn == nil && r.ClockOut != nil {
		errs = append(errs, validator.ValidationError{Field: "clock_in", Message: "clock_in is required when clock_out is set"})
	}
	if r.ClockIn != nil && r.ClockOut != nil && r.ClockOut.Before(*r.ClockIn) {
		errs = append(errs, validator.ValidationError{Field: "clock_out", Message: "clock_out must not be before clock_in"})
	}
	if r.BreakEnd != nil && r.BreakStart == nil {
		errs = append(errs, validator.ValidationError{Field: "break_start", Message: "break_start is required when break_end is set"})
	}
	if r.BreakStart != nil && r.ClockIn == nil {
		errs = append(errs, validator.ValidationError{Field: "break_start", Message: "break_start requires clock_in"})
	}
	if r.BreakStart != nil && r.BreakEnd != nil && r.BreakEnd.Before(*r.BreakStart) {
		errs = append(errs, validator.ValidationError{Field: "break_end", Message: "break_end must not be before break_start"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

// MonthlyReport aggregates one staff member's records for a calendar month.
// AbsentDays and WorkingDays count calendar days, not business days.
type MonthlyReport struct {
	StaffID              string
	Year                 int
	Month                time.Month
	TotalWorkMinutes     int
	TotalOvertimeMinutes int
	TotalWorkHours       decimal.Decimal
	TotalOvertimeHours   decimal.Decimal
	PresentDays          int
	AbsentDays           int
	LateDays             int
	WorkingDays          int
	Records              []Attendance
}

type AttendanceResponse struct {
	ID               string     `json:"id"`
	StaffID          string     `json:"staff_id"`
	Date             string     `json:"date"`
	ClockIn          *time.Time `json:"clock_in"`
	ClockOut         *time.Time `json:"clock_out"`
	BreakStart       *time.Time `json:"break_start"`
	BreakEnd         *time.Time `json:"break_end"`
	TotalWorkMinutes *int       `json:"total_work_minutes"`
	BreakMinutes     *int       `json:"break_minutes"`
	OvertimeMinutes  *int       `json:"overtime_minutes"`
	Status           Status     `json:"status"`
	ClockInLocation  *string    `json:"clock_in_location"`
	ClockInOrigin    *string    `json:"clock_in_origin"`
	ClockOutLocation *string    `json:"clock_out_location"`
	ClockOutOrigin   *string    `json:"clock_out_origin"`
	Approved         bool       `json:"approved"`
	ApprovedBy       *string    `json:"approved_by"`
	ApprovedAt       *time.Time `json:"approved_at"`
	Notes            *string    `json:"notes"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func NewAttendanceResponse(a Attendance) AttendanceResponse {
	return AttendanceResponse{
		ID:               a.ID,
		StaffID:          a.StaffID,
		Date:             a.Date.Format("2006-01-02"),
		ClockIn:          a.ClockIn,
		ClockOut:         a.ClockOut,
		BreakStart:       a.BreakStart,
		BreakEnd:         a.BreakEnd,
		TotalWorkMinutes: a.TotalWorkMinutes,
		BreakMinutes:     a.BreakMinutes,
		OvertimeMinutes:  a.OvertimeMinutes,
		Status:           a.Status,
		ClockInLocation:  a.ClockInLocation,
		ClockInOrigin:    a.ClockInOrigin,
		ClockOutLocation: a.ClockOutLocation,
		ClockOutOrigin:   a.ClockOutOrigin,
		Approved:         a.Approved,
		ApprovedBy:       a.ApprovedBy,
		ApprovedAt:       a.ApprovedAt,
		Notes:            a.Notes,
		CreatedAt:        a.CreatedAt,
		UpdatedAt:        a.UpdatedAt,
	}
}

func NewAttendanceResponses(records []Attendance) []AttendanceResponse {
	out := make([]AttendanceResponse, 0, len(records))
	for _, a := range records {
		out = append(out, NewAttendanceResponse(a))
	}
	return out
}

type MonthlyReportResponse struct {
	StaffID              string               `json:"staff_id"`
	Year                 int                  `json:"year"`
	Month                int                  `json:"month"`
	TotalWorkMinutes     int                  `json:"total_work_minutes"`
	TotalOvertimeMinutes int                  `json:"total_overtime_minutes"`
	TotalWorkHours       decimal.Decimal      `json:"total_work_hours"`
	TotalOvertimeHours   decimal.Decimal      `json:"total_overtime_hours"`
	PresentDays          int                  `json:"present_days"`
	AbsentDays           int                  `json:"absent_days"`
	LateDays             int                  `json:"late_days"`
	WorkingDays          int                  `json:"working_days"`
	Records              []AttendanceResponse `json:"records"`
}

func NewMonthlyReportResponse(r MonthlyReport) MonthlyReportResponse {
	return MonthlyReportResponse{
		StaffID:              r.StaffID,
		Year:                 r.Year,
		Month:                int(r.Month),
		TotalWorkMinutes:     r.TotalWorkMinutes,
		TotalOvertimeMinutes: r.TotalOvertimeMinutes,
		TotalWorkHours:       r.TotalWorkHours,
		TotalOvertimeHours:   r.TotalOvertimeHours,
		PresentDays:          r.PresentDays,
		AbsentDays:           r.AbsentDays,
		LateDays:             r.LateDays,
		WorkingDays:          r.WorkingDays,
		Records:              NewAttendanceResponses(r.Records),
	}
}
