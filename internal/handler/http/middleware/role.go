package middleware

import (
	"net/http"

	"github.com/banrai-ops/farm-backend-go/internal/domain/user"
	"github.com/banrai-ops/farm-backend-go/internal/handler/http/response"
	"github.com/go-chi/jwtauth/v5"
)

// RequireBossOrAdmin requires boss or admin role
func RequireBossOrAdmin(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, claims, err := jwtauth.FromContext(r.Context())
		if err != nil {
			response.HandleError(w, user.ErrBossAccessRequired)
			return
		}

		roleStr, ok := claims["role"].(string)
		if !ok {
			response.HandleError(w, user.ErrBossAccessRequired)
			return
		}

		role := user.Role(roleStr)
		if role != user.RoleBoss && role != user.RoleAdmin {
			response.HandleError(w, user.ErrBossAccessRequired)
			return
		}

		next.ServeHTTP(w, r)
	})
}
