package staff

import "github.com/aburakt/staffy/internal/pkg/apperror"

var (
	ErrStaffNotFound    = apperror.New(apperror.KindNotFound, "STAFF_NOT_FOUND", "staff not found")
	ErrEmailExists      = apperror.New(apperror.KindConflict, "EMAIL_EXISTS", "email is already registered")
	ErrHireDateInFuture = apperror.Validation("hire_date", "hire date cannot be in the future")
)
