package http

import (
	"net/http"
	"strconv"

	"github.com/banrai-ops/farm-backend-go/internal/domain/user"
	"github.com/go-chi/jwtauth/v5"
)

// currentUserID pulls the authenticated user's id out of the verified
// JWT claims. user_id is encoded as a string claim.
func currentUserID(r *http.Request) (int64, error) {
	_, claims, err := jwtauth.FromContext(r.Context())
	if err != nil {
		return 0, user.ErrInvalidToken
	}

	idStr, ok := claims["user_id"].(string)
	if !ok {
		return 0, user.ErrInvalidToken
	}

	id, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil {
		return 0, user.ErrInvalidToken
	}

	return id, nil
}
