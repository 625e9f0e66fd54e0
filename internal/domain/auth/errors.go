package auth

import "github.com/aburakt/staffy/internal/pkg/apperror"

var (
	ErrInvalidCredentials    = apperror.New(apperror.KindUnauthorized, "INVALID_CREDENTIALS", "invalid email or password")
	ErrInvalidToken          = apperror.New(apperror.KindUnauthorized, "INVALID_TOKEN", "invalid or missing access token")
	ErrInactiveStaff         = apperror.New(apperror.KindForbidden, "STAFF_INACTIVE", "staff account is inactive")
	ErrManagerAccessRequired = apperror.New(apperror.KindForbidden, "MANAGER_ACCESS_REQUIRED", "manager access required")
)

var ErrStaffAccessDenied = apperror.New(apperror.KindForbidden, "STAFF_ACCESS_DENIED", "access to another staff member's records requires manager role")
