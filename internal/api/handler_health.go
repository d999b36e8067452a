package api

import (
	"net/http"
	"time"
)

// HealthCheck is the health endpoint response.
type HealthCheck struct {
	Status              string    `json:"status"`
	Timestamp           time.Time `json:"timestamp"`
	Version             string    `json:"version"`
	TotalProducts       int       `json:"total_products"`
	TotalLineageEntries int       `json:"total_lineage_entries"`
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	products, entries := h.catalog.Counts()
	writeJSON(w, http.StatusOK, HealthCheck{
		Status:              "healthy",
		Timestamp:           time.Now().UTC(),
		Version:             Version,
		TotalProducts:       products,
		TotalLineageEntries: entries,
	})
}
