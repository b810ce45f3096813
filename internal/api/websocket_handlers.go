package api

import (
	"net/http"

	"serwer-tabel/internal/auth"
	"serwer-tabel/internal/websocket"
)

// @Summary      Event stream
// @Description  Upgrades to a websocket that pushes file_uploaded and file_deleted events. Private-file events reach only the owner; public-file events reach every client.
// @Tags         events
// @Param        token  query  string  true  "Access token"
// @Success      101
// @Failure      401  {object}  ErrorResponse
// @Router       /ws [get]
func (s *Server) ServeWsHandler(w http.ResponseWriter, r *http.Request) {
	tokenString := r.URL.Query().Get("token")
	if tokenString == "" {
		s.log.Warn(r.Context(), "WS connection attempt without token")
		writeErrorStatus(w, http.StatusUnauthorized, statusUnauthorized, "token query parameter required")
		return
	}

	claims, err := auth.VerifyJWT(tokenString, s.config.JWT.Secret)
	if err != nil {
		s.log.Warn(r.Context(), "WS connection attempt with invalid token", "error", err)
		writeErrorStatus(w, http.StatusUnauthorized, statusUnauthorized, "Invalid or expired token")
		return
	}

	conn, err := websocket.Upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Error(r.Context(), "WebSocket upgrade error", "error", err)
		return
	}

	client := websocket.NewClient(s.wsHub, conn, claims.UserID)
	s.wsHub.Register <- client

	go client.ReadPump()
	go client.WritePump()
}
