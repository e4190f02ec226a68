package middleware

import (
	"net/http"

	"github.com/go-chi/jwtauth/v5"

	"github.com/karyaprima/hrops-backend-go/internal/domain/user"
	"github.com/karyaprima/hrops-backend-go/internal/handler/http/response"
)

func roleFromRequest(r *http.Request) (user.Role, bool) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return "", false
	}
	roleStr, ok := claims["role"].(string)
	if !ok {
		return "", false
	}
	return user.Role(roleStr), true
}

// RequireAdmin requires the admin role
func RequireAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromRequest(r)
		if !ok || role != user.RoleAdmin {
			response.HandleError(w, user.ErrAdminPrivilegeRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// RequireApprover requires a role that may approve attendance requests:
// admin, manager, or foreman.
func RequireApprover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		role, ok := roleFromRequest(r)
		if !ok || !user.ApproverRole(role) {
			response.HandleError(w, user.ErrApproverRoleRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
