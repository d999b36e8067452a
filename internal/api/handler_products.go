package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"datamesh/internal/domain"
)

// RegisterProduct handles POST /register_product.
func (h *Handler) RegisterProduct(w http.ResponseWriter, r *http.Request) {
	product := domain.NewDataProduct()
	if err := decodeBody(r, &product); err != nil {
		h.writeDomainError(w, err)
		return
	}

	created, err := h.catalog.RegisterProduct(r.Context(), product)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Product registered successfully",
		Data:    created,
	})
}

// ListProducts handles GET /products.
func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	q := r.URL.Query()
	filter := domain.ProductFilter{
		Domain: q.Get("domain"),
		Status: domain.ProductStatus(q.Get("status")),
		Tag:    q.Get("tag"),
		Page:   page,
	}

	products, _, err := h.catalog.ListProducts(r.Context(), filter)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, products)
}

// GetProduct handles GET /product/{name}.
func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.catalog.GetProduct(r.Context(), chi.URLParam(r, "name"))
	if err != nil {
		h.writeDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// UpdateProduct handles PUT /product/{name}.
func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var upd domain.DataProductUpdate
	if err := decodeBody(r, &upd); err != nil {
		h.writeDomainError(w, err)
		return
	}

	updated, err := h.catalog.UpdateProduct(r.Context(), chi.URLParam(r, "name"), upd)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Product updated successfully",
		Data:    updated,
	})
}

// DeleteProduct handles DELETE /product/{name}.
func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.catalog.DeleteProduct(r.Context(), chi.URLParam(r, "name")); err != nil {
		h.writeDomainError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, APIResponse{
		Success: true,
		Message: "Product deleted successfully",
	})
}
