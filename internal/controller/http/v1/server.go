package v1

import (
	"context"
	"net"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/kurochkinivan/excel_analytics/internal/config"
)

type Server struct {
	httpServer *http.Server
}

func NewServer(cfg config.HTTP, h *Handler, verifier TokenVerifier, users UserProvider) *Server {
	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	authenticate := Authenticator(verifier, users)

	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/auth/register", h.Register)
		r.Post("/auth/login", h.Login)

		r.Group(func(r chi.Router) {
			r.Use(authenticate)

			r.Get("/auth/me", h.Me)

			r.Route("/datasets", func(r chi.Router) {
				r.Post("/upload", h.Upload)
				r.Get("/history", h.History)
				r.Delete("/history", h.ClearHistory)
				r.Get("/{id}/rows", h.Rows)
				r.Get("/{id}/summary", h.Summary)
				r.Get("/{id}/report", h.Report)
				r.Delete("/{id}", h.Delete)
			})

			r.Route("/admin", func(r chi.Router) {
				r.Use(AdminOnly)

				r.Get("/users", h.ListUsers)
				r.Post("/users/{id}/promote", h.PromoteUser)
				r.Delete("/users/{id}", h.DeleteUser)
			})
		})
	})

	return &Server{
		httpServer: &http.Server{
			Addr:         net.JoinHostPort(cfg.Host, cfg.Port),
			ReadTimeout:  cfg.ReadTimeout,
			WriteTimeout: cfg.WriteTimeout,
			IdleTimeout:  cfg.IdleTimeout,
			Handler:      r,
		},
	}
}

func (s *Server) ListenAndServe() error {
	return s.httpServer.ListenAndServe()
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.httpServer.Shutdown(ctx)
}
