package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"serwer-tabel/internal/auth"
	"serwer-tabel/internal/database"
)

type RegisterRequest struct {
	Username string `json:"username" example:"alice"`
	Password string `json:"password" example:"password123"`
}

type RegisterResponse struct {
	Username string `json:"username" example:"alice"`
}

const maxUsernameLength = 100

// @Summary      Register a user
// @Description  Creates an account. Usernames are unique.
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        registerRequest  body      RegisterRequest  true  "New account"
// @Success      201              {object}  RegisterResponse
// @Failure      400              {object}  ErrorResponse
// @Failure      500              {object}  ErrorResponse
// @Router       /users [post]
func (s *Server) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	s.limitBody(w, r)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, "Invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, "username and password are required")
		return
	}
	if len(req.Username) > maxUsernameLength {
		writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, "username is too long")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, err.Error())
			return
		}
		s.writeError(w, r, err)
		return
	}

	user, err := s.store.CreateUser(r.Context(), req.Username, hash)
	if err != nil {
		if errors.Is(err, database.ErrUserExists) {
			writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, err.Error())
			return
		}
		s.writeError(w, r, err)
		return
	}

	s.log.Info(r.Context(), "user registered", "user_id", user.ID, "username", user.Username)
	writeJSON(w, http.StatusCreated, RegisterResponse{Username: user.Username})
}

// @Summary      Get current user info
// @Description  Retrieves information about the currently authenticated user from their JWT token.
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  auth.AppClaims
// @Failure      401  {object}  ErrorResponse
// @Router       /me [get]
func (s *Server) GetCurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())
	if claims == nil {
		writeErrorStatus(w, http.StatusUnauthorized, statusUnauthorized, "Could not retrieve user from token")
		return
	}

	writeJSON(w, http.StatusOK, claims)
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" example:"password123"`
	NewPassword string `json:"new_password" example:"nowe-haslo-456"`
}

// @Summary      Change password
// @Description  Replaces the caller's password and ends all of their sessions, so refresh tokens issued before the change stop working.
// @Tags         users
// @Accept       json
// @Security     BasicAuth
// @Security     BearerAuth
// @Param        changePasswordRequest  body  ChangePasswordRequest  true  "Old and new password"
// @Success      204  {null}    nil  "No Content"
// @Failure      400  {object}  ErrorResponse
// @Failure      401  {object}  ErrorResponse
// @Failure      500  {object}  ErrorResponse
// @Router       /me/password [post]
func (s *Server) ChangePasswordHandler(w http.ResponseWriter, r *http.Request) {
	claims := GetUserFromContext(r.Context())

	var req ChangePasswordRequest
	s.limitBody(w, r)
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, "Invalid request body")
		return
	}
	if req.NewPassword == "" {
		writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, "new_password is required")
		return
	}

	user, err := s.store.GetUserByID(r.Context(), claims.UserID)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	if user == nil || !auth.CheckPasswordHash(req.OldPassword, user.PasswordHash) {
		writeErrorStatus(w, http.StatusUnauthorized, statusUnauthorized, "Invalid password")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		if errors.Is(err, auth.ErrPasswordTooLong) {
			writeErrorStatus(w, http.StatusBadRequest, statusBadRequest, err.Error())
			return
		}
		s.writeError(w, r, err)
		return
	}

	err = s.store.ExecTx(r.Context(), func(q database.Querier) error {
		if err := q.UpdateUserPassword(r.Context(), user.ID, hash); err != nil {
			return err
		}
		return q.DeleteAllSessionsForUser(r.Context(), user.ID)
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.log.Info(r.Context(), "password changed", "user_id", user.ID)
	w.WriteHeader(http.StatusNoContent)
}
