package attendance

import "github.com/aburakt/staffy/internal/pkg/apperror"

// Attendance domain errors
var (
	ErrAlreadyClockedIn  = apperror.New(apperror.KindConflict, "ALREADY_CLOCKED_IN", "already clocked in today")
	ErrAlreadyClockedOut = apperror.New(apperror.KindConflict, "ALREADY_CLOCKED_OUT", "already clocked out today")
	ErrNotClockedIn      = apperror.New(apperror.KindState, "NOT_CLOCKED_IN", "not clocked in today")

	ErrBreakAlreadyStarted = apperror.New(apperror.KindConflict, "BREAK_ALREADY_STARTED", "break already started")
	ErrBreakNotStarted     = apperror.New(apperror.KindState, "BREAK_NOT_STARTED", "break has not been started")
	ErrBreakAlreadyEnded   = apperror.New(apperror.KindConflict, "BREAK_ALREADY_ENDED", "break already ended")

	ErrAttendanceNotFound = apperror.New(apperror.KindNotFound, "ATTENDANCE_NOT_FOUND", "attendance record not found")
)
