package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/recipebox-dev/recipebox/internal/domain"
	"github.com/recipebox-dev/recipebox/internal/service"
	"github.com/recipebox-dev/recipebox/internal/utils"
)

// Key to store the user in the request context
type key int

const userKey key = 0

type Auth struct {
	auth service.AuthService
}

func NewAuth(auth service.AuthService) *Auth {
	return &Auth{auth: auth}
}

// RequireUser resolves the bearer token from the Authorization header
// ("Token <key>") and stores the account in the request context.
// Missing or invalid credentials end the request with 401.
func (m *Auth) RequireUser(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenKey, ok := bearerToken(r)
		if !ok {
			http.Error(w, "Authentication credentials were not provided", http.StatusUnauthorized)
			return
		}

		user, err := m.auth.ResolveToken(tokenKey)
		if err != nil {
			utils.WriteErrorAndStatusCode(w, err)
			return
		}

		ctx := context.WithValue(r.Context(), userKey, &user)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func bearerToken(r *http.Request) (string, bool) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", false
	}
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Token") {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

// GetUserFromContext retrieves the authenticated account, nil when the
// request did not pass RequireUser.
func GetUserFromContext(r *http.Request) *domain.User {
	user, ok := r.Context().Value(userKey).(*domain.User)
	if !ok {
		return nil
	}
	return user
}
