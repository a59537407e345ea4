package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

func (h *Handler) Init() *chi.Mux {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)
	router.Use(h.withTraceID, h.withLogging)

	// routes without authorization
	router.Group(func(r chi.Router) {
		r.Get("/health", h.health)
		r.Get("/env.js", h.getEnvJS)
		r.Get("/api/env", h.getEnv)
		r.Get("/api/version", h.getVersion)
		r.Post("/api/admin/token", h.issueAdminToken)

		assets := http.FileServer(http.Dir(h.cfg.World().AssetsDir()))
		r.Handle("/assets/*", http.StripPrefix("/assets/", assets))
	})

	// routes with authorization
	router.Group(func(r chi.Router) {
		r.Use(h.auth)
		r.Post("/api/upload", h.upload)
	})

	router.MethodNotAllowed(CheckHTTPMethod(router))

	return router
}
