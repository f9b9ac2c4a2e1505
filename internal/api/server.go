package api

import (
	"net/http"
	"time"

	"photo-gallery/internal/config"
	"photo-gallery/internal/gallery"
	"photo-gallery/internal/session"
	"photo-gallery/internal/websocket"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "photo-gallery/docs"
)

type Server struct {
	config   *config.Config
	gallery  *gallery.Service
	sessions *session.Manager
	wsHub    *websocket.Hub
	now      func() time.Time
}

func NewServer(cfg *config.Config, svc *gallery.Service, sessions *session.Manager, wsHub *websocket.Hub) *Server {
	return &Server{
		config:   cfg,
		gallery:  svc,
		sessions: sessions,
		wsHub:    wsHub,
		now:      time.Now,
	}
}

// Routes builds the HTTP handler for the whole API.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(MetricsMiddleware)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.Server.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization"},
		ExposedHeaders:   []string{"Content-Range", "X-Content-Range"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusNotFound, "Not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		respondError(w, http.StatusMethodNotAllowed, "Method not allowed")
	})

	r.Get("/", s.RootRedirectHandler)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", s.HealthCheckHandler)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.RegisterHandler)
			r.Post("/login", s.LoginHandler)
			r.Get("/logout", s.withIdentity(s.LogoutHandler))
			r.Get("/me", s.withIdentity(s.GetCurrentUserHandler))
		})

		r.Route("/photos", func(r chi.Router) {
			r.Get("/", s.withIdentity(s.ListPhotosHandler))
			r.Post("/upload", s.withIdentity(s.UploadPhotoHandler))
			r.Get("/{photoId}", s.withIdentity(s.GetPhotoHandler))
			r.Delete("/{photoId}", s.withIdentity(s.DeletePhotoHandler))
		})

		r.Get("/ws", s.withIdentity(s.ServeWsHandler))
	})

	return r
}
