package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// Routes mounts all catalog endpoints. Read endpoints are public; mutating
// endpoints are wrapped by the auth middleware.
func Routes(h *Handler, auth func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()

	r.Get("/health", h.Health)

	// Data product management
	r.Get("/products", h.ListProducts)
	r.Get("/product/{name}", h.GetProduct)
	r.With(auth).Post("/register_product", h.RegisterProduct)
	r.With(auth).Put("/product/{name}", h.UpdateProduct)
	r.With(auth).Delete("/product/{name}", h.DeleteProduct)

	// Lineage management
	r.Get("/lineage", h.ListLineage)
	r.Get("/lineage/upstream/{product_name}", h.UpstreamLineage)
	r.Get("/lineage/downstream/{product_name}", h.DownstreamLineage)
	r.With(auth).Post("/register_lineage", h.RegisterLineage)

	// Analytics
	r.Get("/analytics/domains", h.DomainAnalytics)
	r.Get("/analytics/lineage-stats", h.LineageAnalytics)

	// Domain-facing sample data
	r.Get("/sales/orders", h.SalesOrders)
	r.Get("/marketing/campaigns", h.MarketingCampaigns)

	return r
}
