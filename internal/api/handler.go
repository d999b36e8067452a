// Package api provides the HTTP handlers for the data mesh catalog REST API.
package api

import (
	"log/slog"

	"datamesh/internal/service/catalog"
)

// Version reported by the health endpoint.
const Version = "2.0.0"

// Handler serves the catalog REST API.
type Handler struct {
	catalog *catalog.Service
	logger  *slog.Logger
}

// NewHandler creates a Handler backed by the given catalog service.
func NewHandler(svc *catalog.Service, logger *slog.Logger) *Handler {
	return &Handler{
		catalog: svc,
		logger:  logger.With("component", "api"),
	}
}
