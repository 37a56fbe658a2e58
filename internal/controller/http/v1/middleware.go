package v1

import (
	"context"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"github.com/kurochkinivan/excel_analytics/internal/domain"
)

type TokenVerifier interface {
	Verify(token string) (uuid.UUID, error)
}

type UserProvider interface {
	ByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
}

type userKey struct{}

// Authenticator resolves the Bearer token into the authenticated user and
// stores it in the request context. Every protected route sits behind it.
func Authenticator(verifier TokenVerifier, users UserProvider) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
			if !ok || token == "" {
				writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "not authorized, no token"})
				return
			}

			userID, err := verifier.Verify(token)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "not authorized, token failed or expired"})
				return
			}

			user, err := users.ByID(r.Context(), userID)
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, messageResponse{Message: "user not found"})
				return
			}

			ctx := context.WithValue(r.Context(), userKey{}, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func AdminOnly(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if user == nil || !user.IsAdministrator() {
			writeJSON(w, http.StatusForbidden, messageResponse{Message: "admin access only"})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func UserFromContext(ctx context.Context) *domain.User {
	user, _ := ctx.Value(userKey{}).(*domain.User)
	return user
}
