package api

import "net/http"

// SalesOrder is a record from the sales domain feed.
type SalesOrder struct {
	OrderID    int     `json:"order_id"`
	CustomerID int     `json:"customer_id"`
	Amount     float64 `json:"amount"`
	OrderDate  string  `json:"order_date"`
}

// MarketingCampaign is a record from the marketing domain feed.
type MarketingCampaign struct {
	CampaignID string `json:"campaign_id"`
	Name       string `json:"name"`
	Budget     int    `json:"budget"`
	StartDate  string `json:"start_date"`
	Active     bool   `json:"active"`
}

// Sample records standing in for the real domain systems. A production
// deployment would proxy these routes to the owning domain's API.
var (
	sampleOrders = []SalesOrder{
		{OrderID: 1, CustomerID: 101, Amount: 250.0, OrderDate: "2023-07-01"},
		{OrderID: 2, CustomerID: 102, Amount: 99.0, OrderDate: "2023-07-02"},
		{OrderID: 3, CustomerID: 103, Amount: 175.0, OrderDate: "2023-07-03"},
	}

	sampleCampaigns = []MarketingCampaign{
		{CampaignID: "A1", Name: "Summer Sale", Budget: 10000, StartDate: "2023-06-01", Active: true},
		{CampaignID: "B2", Name: "Back to School", Budget: 8000, StartDate: "2023-08-01", Active: false},
		{CampaignID: "C3", Name: "Holiday Special", Budget: 15000, StartDate: "2023-11-01", Active: true},
	}
)

// SalesOrders handles GET /sales/orders.
func (h *Handler) SalesOrders(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	orders := sampleOrders
	if len(orders) > page.EffectiveLimit() {
		orders = orders[:page.EffectiveLimit()]
	}
	writeJSON(w, http.StatusOK, orders)
}

// MarketingCampaigns handles GET /marketing/campaigns.
func (h *Handler) MarketingCampaigns(w http.ResponseWriter, r *http.Request) {
	page, err := pageFromQuery(r)
	if err != nil {
		h.writeDomainError(w, err)
		return
	}

	campaigns := sampleCampaigns
	if r.URL.Query().Get("active_only") == "true" {
		active := make([]MarketingCampaign, 0, len(campaigns))
		for _, c := range campaigns {
			if c.Active {
				active = append(active, c)
			}
		}
		campaigns = active
	}
	if len(campaigns) > page.EffectiveLimit() {
		campaigns = campaigns[:page.EffectiveLimit()]
	}
	writeJSON(w, http.StatusOK, campaigns)
}
