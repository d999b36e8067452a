package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"datamesh/internal/domain"
)

// RegisterLineage handles POST /register_lineage.
func (h *Handler) RegisterLineage(w http.ResponseWriter, r *http.Request) {
	entry := domain.NewLineageEntry()
	if err := decodeBody(r, &entry); err != nil {
		h.writeDomainError(w, err)
		return
	}

	created, err := h.catalog.RegisterLineage(r.Context(), entry)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Lineage registered successfully",
		Data:    created,
	})
}

// ListLineage handles GET /lineage.
func (h *Handler) ListLineage(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	q := r.URL.Query()
	filter := domain.LineageFilter{
		Source:      q.Get("source"),
		Target:      q.Get("target"),
		LineageType: domain.LineageType(q.Get("lineage_type")),
		Page:        page,
	}

	entries, _, err := h.catalog.ListLineage(r.Context(), filter)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// UpstreamLineage handles GET /lineage/upstream/{product_name}.
func (h *Handler) UpstreamLineage(w http.ResponseWriter, r *http.Request) {
	entries, err := h.catalog.UpstreamOf(r.Context(), chi.URLParam(r, "product_name"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}

// DownstreamLineage handles GET /lineage/downstream/{product_name}.
func (h *Handler) DownstreamLineage(w http.ResponseWriter, r *http.Request) {
	entries, err := h.catalog.DownstreamOf(r.Context(), chi.URLParam(r, "product_name"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, entries)
}
