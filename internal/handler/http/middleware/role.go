package middleware

import (
	"log/slog"
	"net/http"

	"github.com/retail-erp/workforce-backend-go/internal/domain/user"
	"github.com/retail-erp/workforce-backend-go/internal/handler/http/response"
)

// RequirePermission gates a route on a capability of the caller's role.
// Unknown roles hold no capabilities.
func RequirePermission(permission user.Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := user.ClaimsFromContext(r.Context())
			if err != nil {
				response.HandleError(w, err)
				return
			}

			if !user.HasPermission(claims.Role, permission) {
				slog.Debug("permission denied",
					"user_id", claims.UserID,
					"role", claims.Role,
					"permission", permission,
				)
				response.Forbidden(w, "Role '"+string(claims.Role)+"' lacks permission '"+string(permission)+"'")
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
