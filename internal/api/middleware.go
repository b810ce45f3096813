package api

import (
	"context"
	"net/http"
	"strings"

	"serwer-tabel/internal/auth"
	"serwer-tabel/internal/models"
)

type contextKey string

const userContextKey = contextKey("user")

// AuthMiddleware accepts "Bearer <jwt>" or HTTP Basic credentials. With Basic
// auth the username may itself be an access token, in which case the
// password is ignored; otherwise username and password are checked against
// the index.
func (s *Server) AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			s.unauthorized(w, "Authorization header required")
			return
		}

		var claims *auth.AppClaims
		if tokenString, ok := strings.CutPrefix(authHeader, "Bearer "); ok {
			c, err := auth.VerifyJWT(strings.TrimSpace(tokenString), s.config.JWT.Secret)
			if err != nil {
				s.unauthorized(w, "Invalid or expired token")
				return
			}
			claims = c
		} else if username, password, ok := r.BasicAuth(); ok {
			c, err := s.basicAuth(r.Context(), username, password)
			if err != nil {
				s.writeError(w, r, err)
				return
			}
			if c == nil {
				s.unauthorized(w, "Invalid username or password")
				return
			}
			claims = c
		} else {
			s.unauthorized(w, "Invalid Authorization header format")
			return
		}

		ctx := context.WithValue(r.Context(), userContextKey, claims)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (s *Server) basicAuth(ctx context.Context, usernameOrToken, password string) (*auth.AppClaims, error) {
	if c, err := auth.VerifyJWT(usernameOrToken, s.config.JWT.Secret); err == nil {
		return c, nil
	}
	user, err := s.store.GetUserByUsername(ctx, usernameOrToken)
	if err != nil {
		return nil, err
	}
	if user == nil || !auth.CheckPasswordHash(password, user.PasswordHash) {
		return nil, nil
	}
	return &auth.AppClaims{UserID: user.ID, Username: user.Username}, nil
}

func (s *Server) unauthorized(w http.ResponseWriter, reason string) {
	w.Header().Set("WWW-Authenticate", `Basic realm="serwer-tabel"`)
	writeErrorStatus(w, http.StatusUnauthorized, statusUnauthorized, reason)
}

func GetUserFromContext(ctx context.Context) *auth.AppClaims {
	if claims, ok := ctx.Value(userContextKey).(*auth.AppClaims); ok {
		return claims
	}
	return nil
}

// currentUser is the authenticated caller in the shape the file service
// expects.
func currentUser(ctx context.Context) *models.User {
	claims := GetUserFromContext(ctx)
	if claims == nil {
		return nil
	}
	return &models.User{ID: claims.UserID, Username: claims.Username}
}
