package api

import (
	"net/http"

	"serwer-tabel/internal/config"
	"serwer-tabel/internal/database"
	"serwer-tabel/internal/files"
	"serwer-tabel/internal/logging"
	"serwer-tabel/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"
)

type Server struct {
	config *config.Config
	store  database.Store
	files  *files.Service
	wsHub  *websocket.Hub
	log    logging.Logger
}

func NewServer(cfg *config.Config, store database.Store, svc *files.Service, wsHub *websocket.Hub, log logging.Logger) *Server {
	return &Server{
		config: cfg,
		store:  store,
		files:  svc,
		wsHub:  wsHub,
		log:    log,
	}
}

// Routes builds the full HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(MetricsMiddleware)

	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("/swagger/doc.json"),
	))

	r.Get("/ws", s.ServeWsHandler)

	r.Get("/", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("Serwer tabel działa! Dokumentacja dostępna pod /swagger/index.html"))
	})

	r.Get("/health", s.HealthCheckHandler)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/users", s.RegisterHandler)
		r.Post("/auth/login", s.LoginHandler)
		r.Post("/auth/refresh", s.RefreshTokenHandler)

		r.Group(func(r chi.Router) {
			r.Use(s.AuthMiddleware)
			r.Get("/token", s.TokenHandler)
			r.Get("/me", s.GetCurrentUserHandler)
			r.Post("/me/password", s.ChangePasswordHandler)
			r.Get("/sessions", s.ListSessionsHandler)
			r.Delete("/sessions/{sessionId}", s.DeleteSessionHandler)
			r.Post("/sessions/terminate_all", s.TerminateAllSessionsHandler)
			r.Get("/events", s.GetEventsHandler)

			r.Post("/files", s.UploadFileHandler)
			r.Get("/files", s.ListFilesHandler)
			r.Get("/files/{filename}/view", s.ViewFileHandler)
			r.Post("/files/{filename}/view", s.ViewFileHandler)
			r.Get("/files/{filename}/download", s.DownloadFileHandler)
			r.Delete("/files/{filename}", s.DeleteFileHandler)
		})
	})

	return r
}

type HealthResponse struct {
	Status   string `json:"status" example:"ok"`
	Database string `json:"database" example:"ok"`
	Clients  int    `json:"websocket_clients" example:"2"`
}

// @Summary      Health check
// @Description  Reports whether the metadata index is reachable.
// @Tags         ops
// @Produce      json
// @Success      200  {object}  HealthResponse
// @Failure      503  {object}  HealthResponse
// @Router       /health [get]
func (s *Server) HealthCheckHandler(w http.ResponseWriter, r *http.Request) {
	resp := HealthResponse{Status: "ok", Database: "ok"}
	if s.wsHub != nil {
		resp.Clients = s.wsHub.ClientCount()
	}
	status := http.StatusOK
	if err := s.store.Ping(r.Context()); err != nil {
		s.log.Error(r.Context(), "health check failed", "error", err)
		resp.Status, resp.Database = "degraded", "unreachable"
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, resp)
}
