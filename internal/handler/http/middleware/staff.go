package middleware

import (
	"net/http"

	"github.com/aburakt/staffy/internal/domain/auth"
	"github.com/aburakt/staffy/internal/domain/staff"
	"github.com/aburakt/staffy/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/jwtauth/v5"
)

// RequireSelfOrManager lets employees reach only routes whose {staffId}
// is their own. Managers reach every staff member.
func RequireSelfOrManager(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, auth.ErrInvalidToken)
			return
		}

		if role, _ := claims["role"].(string); staff.Role(role) == staff.RoleManager {
			next.ServeHTTP(w, r)
			return
		}

		staffID, _ := claims["staff_id"].(string)
		if staffID == "" || staffID != chi.URLParam(r, "staffId") {
			response.HandleError(w, auth.ErrStaffAccessDenied)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// ClaimString reads a string claim from the verified token, or "".
func ClaimString(r *http.Request, name string) string {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return ""
	}
	v, _ := claims[name].(string)
	return v
}
