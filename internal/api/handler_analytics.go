package api

import "net/http"

// DomainAnalytics handles GET /analytics/domains.
func (h *Handler) DomainAnalytics(w http.ResponseWriter, r *http.Request) {
	counts, err := h.catalog.DomainAnalytics(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, counts)
}

// LineageAnalytics handles GET /analytics/lineage-stats.
func (h *Handler) LineageAnalytics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.catalog.LineageAnalytics(r.Context())
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
