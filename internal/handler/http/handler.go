package http

import (
	"github.com/MKhiriev/world-server/internal/config"
	"github.com/MKhiriev/world-server/internal/logger"
)

// Handler serves the HTTP API. It only reads from cfg, which is immutable,
// so a single Handler is safe for concurrent requests.
type Handler struct {
	cfg    *config.Config
	tokens TokenService

	logger *logger.Logger
}

func NewHandler(cfg *config.Config, tokens TokenService, logger *logger.Logger) *Handler {
	logger.Info().Msg("http handler created")
	return &Handler{
		cfg:    cfg,
		tokens: tokens,
		logger: logger,
	}
}
