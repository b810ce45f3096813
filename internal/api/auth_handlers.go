package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"serwer-tabel/internal/auth"
	"serwer-tabel/internal/database"
	"serwer-tabel/internal/models"

	"github.com/google/uuid"
)

type LoginRequest struct {
	Username string `json:"username" example:"admin"`
	Password string `json:"password" example:"password123"`
}

type TokenResponse struct {
	AccessToken  string `json:"access_token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9.eyJ1c2VyX2lkIjoxLCJ1c2VybmFtZSI6ImFkbWluIiwiZXhwIjoxNjE2NDI2NzY2fQ...."`
	RefreshToken string `json:"refresh_token" example:"V1StGXR8_Z5jdHi6B-myT78q_Z5jdHi6B-myT78q"`
}

var errInvalidRefreshToken = errors.New("invalid or expired refresh token")

func (s *Server) newSession(r *http.Request, q database.Querier, user *models.User) (*TokenResponse, error) {
	accessToken, err := auth.GenerateJWT(user, s.config.JWT.Secret, s.config.JWT.AccessTTL)
	if err != nil {
		return nil, err
	}

	refreshTTL := s.config.JWT.RefreshTTL
	if refreshTTL <= 0 {
		refreshTTL = 24 * time.Hour
	}
	refreshToken := auth.NewRefreshToken()

	err = q.CreateSession(r.Context(), database.CreateSessionParams{
		ID:           uuid.New(),
		UserID:       user.ID,
		RefreshToken: refreshToken,
		UserAgent:    r.UserAgent(),
		ClientIP:     r.RemoteAddr,
		ExpiresAt:    time.Now().Add(refreshTTL),
	})
	if err != nil {
		return nil, err
	}

	return &TokenResponse{AccessToken: accessToken, RefreshToken: refreshToken}, nil
}

// @Summary      Logs a user in
// @Description  Authenticates a user and returns a short-lived access token and a long-lived refresh token.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        loginRequest   body      LoginRequest  true  "Login Credentials"
// @Success      200            {object}  TokenResponse
// @Failure      400            {object}  ErrorResponse
// @Failure      401            {object}  ErrorResponse
// @Failure      500            {object}  ErrorResponse
// @Router       /auth/login [post]
func (s *Server) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	s.limitBody(w, r)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, "Invalid request body")
		return
	}

	user, err := s.store.GetUserByUsername(r.Context(), req.Username)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if user == nil || !auth.CheckPasswordHash(req.Password, user.PasswordHash) {
		writeErrorStatus(w, http.StatusUnauthorized, statusUnauthorized, "Invalid username or password")
		return
	}

	tokens, err := s.newSession(r, s.store, user)
	if err != nil {
		s.log.Error(r.Context(), "failed to create session", "user_id", user.ID, "error", err)
		writeErrorStatus(w, http.StatusInternalServerError, statusInternalError, "Failed to process login session")
		return
	}

	writeJSON(w, http.StatusOK, tokens)
}

type RefreshTokenRequest struct {
	RefreshToken string `json:"refresh_token" example:"V1StGXR8_Z5jdHi6B-myT78q_Z5jdHi6B-myT78q"`
}

// @Summary      Refresh access token
// @Description  Provides a new short-lived access token and a new refresh token in exchange for a valid, non-expired refresh token. Implements refresh token rotation.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        refreshTokenRequest   body      RefreshTokenRequest  true  "Refresh Token"
// @Success      200                   {object}  TokenResponse
// @Failure      400                   {object}  ErrorResponse
// @Failure      401                   {object}  ErrorResponse
// @Failure      500                   {object}  ErrorResponse
// @Router       /auth/refresh [post]
func (s *Server) RefreshTokenHandler(w http.ResponseWriter, r *http.Request) {
	var req RefreshTokenRequest
	s.limitBody(w, r)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, "Invalid request body")
		return
	}
	if req.RefreshToken == "" {
		writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, "Refresh token is required")
		return
	}

	var tokens *TokenResponse
	txErr := s.store.ExecTx(r.Context(), func(q database.Querier) error {
		user, err := q.GetUserByRefreshToken(r.Context(), req.RefreshToken)
		if err != nil {
			return err
		}
		if user == nil {
			return errInvalidRefreshToken
		}

		if err := q.DeleteSessionByRefreshToken(r.Context(), req.RefreshToken); err != nil {
			return err
		}

		tokens, err = s.newSession(r, q, user)
		return err
	})

	if txErr != nil {
		if errors.Is(txErr, errInvalidRefreshToken) {
			writeErrorStatus(w, http.StatusUnauthorized, statusUnauthorized, txErr.Error())
		} else {
			s.log.Error(r.Context(), "refresh token transaction failed", "error", txErr)
			writeErrorStatus(w, http.StatusInternalServerError, statusInternalError, "Failed to refresh token")
		}
		return
	}

	writeJSON(w, http.StatusOK, tokens)
}

type AccessTokenResponse struct {
	Token string `json:"token" example:"eyJhbGciOiJIUzI1NiIsInR5cCI6IkpXVCJ9..."`
}

// @Summary      Get an access token
// @Description  Issues an access token for the caller. Accepts HTTP Basic credentials, so scripts can trade a username and password for a token without a session.
// @Tags         auth
// @Produce      json
// @Security     BasicAuth
// @Security     BearerAuth
// @Success      200  {object}  AccessTokenResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /token [get]
func (s *Server) TokenHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r.Context())
	token, err := auth.GenerateJWT(user, s.config.JWT.Secret, s.config.JWT.AccessTTL)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, AccessTokenResponse{Token: token})
}
