package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"datamesh/internal/api"
	"datamesh/internal/domain"
)

// APIError is a non-2xx response from the catalog API.
type APIError struct {
	HTTPStatus int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s (HTTP %d)", e.Message, e.HTTPStatus)
}

// Client is a thin HTTP client for the catalog API.
type Client struct {
	BaseURL string
	Token   string
	HTTP    *http.Client
}

// NewClient creates a Client for the given host.
func NewClient(baseURL, token string) *Client {
	return &Client{
		BaseURL: baseURL,
		Token:   token,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

// ListOptions are the shared query parameters of the list endpoints.
type ListOptions struct {
	Limit  int
	Offset int
	Params map[string]string
}

func (o ListOptions) query() string {
	q := url.Values{}
	if o.Limit > 0 {
		q.Set("limit", strconv.Itoa(o.Limit))
	}
	if o.Offset > 0 {
		q.Set("offset", strconv.Itoa(o.Offset))
	}
	for k, v := range o.Params {
		if v != "" {
			q.Set(k, v)
		}
	}
	if len(q) == 0 {
		return ""
	}
	return "?" + q.Encode()
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return fmt.Errorf("encode request: %w", err)
		}
	}

	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if c.Token != "" {
		req.Header.Set("Authorization", "Bearer "+c.Token)
	}

	resp, err := c.HTTP.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var envelope struct {
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&envelope)
		if envelope.Message == "" {
			envelope.Message = http.StatusText(resp.StatusCode)
		}
		return &APIError{HTTPStatus: resp.StatusCode, Message: envelope.Message}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

// Health fetches the service health summary.
func (c *Client) Health(ctx context.Context) (*api.HealthCheck, error) {
	var health api.HealthCheck
	if err := c.do(ctx, http.MethodGet, "/health", nil, &health); err != nil {
		return nil, err
	}
	return &health, nil
}

// RegisterProduct registers a new data product.
func (c *Client) RegisterProduct(ctx context.Context, p domain.DataProduct) (*domain.DataProduct, error) {
	return c.productEnvelope(ctx, http.MethodPost, "/register_product", p)
}

// ListProducts lists products matching the options.
func (c *Client) ListProducts(ctx context.Context, opts ListOptions) ([]domain.DataProduct, error) {
	var products []domain.DataProduct
	if err := c.do(ctx, http.MethodGet, "/products"+opts.query(), nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct fetches a single product by name.
func (c *Client) GetProduct(ctx context.Context, name string) (*domain.DataProduct, error) {
	var p domain.DataProduct
	if err := c.do(ctx, http.MethodGet, "/product/"+url.PathEscape(name), nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// UpdateProduct applies a partial update to a product.
func (c *Client) UpdateProduct(ctx context.Context, name string, upd domain.DataProductUpdate) (*domain.DataProduct, error) {
	return c.productEnvelope(ctx, http.MethodPut, "/product/"+url.PathEscape(name), upd)
}

// DeleteProduct removes a product and its lineage.
func (c *Client) DeleteProduct(ctx context.Context, name string) error {
	return c.do(ctx, http.MethodDelete, "/product/"+url.PathEscape(name), nil, nil)
}

// RegisterLineage registers a lineage entry.
func (c *Client) RegisterLineage(ctx context.Context, e domain.LineageEntry) (*domain.LineageEntry, error) {
	var resp struct {
		Data domain.LineageEntry `json:"data"`
	}
	if err := c.do(ctx, http.MethodPost, "/register_lineage", e, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}

// ListLineage lists lineage entries matching the options.
func (c *Client) ListLineage(ctx context.Context, opts ListOptions) ([]domain.LineageEntry, error) {
	var entries []domain.LineageEntry
	if err := c.do(ctx, http.MethodGet, "/lineage"+opts.query(), nil, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// Upstream fetches the direct upstream dependencies of a product.
func (c *Client) Upstream(ctx context.Context, product string) ([]domain.LineageEntry, error) {
	var entries []domain.LineageEntry
	err := c.do(ctx, http.MethodGet, "/lineage/upstream/"+url.PathEscape(product), nil, &entries)
	return entries, err
}

// Downstream fetches the direct downstream dependents of a product.
func (c *Client) Downstream(ctx context.Context, product string) ([]domain.LineageEntry, error) {
	var entries []domain.LineageEntry
	err := c.do(ctx, http.MethodGet, "/lineage/downstream/"+url.PathEscape(product), nil, &entries)
	return entries, err
}

// DomainAnalytics fetches the products-per-domain breakdown.
func (c *Client) DomainAnalytics(ctx context.Context) (map[string]int, error) {
	var counts map[string]int
	if err := c.do(ctx, http.MethodGet, "/analytics/domains", nil, &counts); err != nil {
		return nil, err
	}
	return counts, nil
}

// LineageStats fetches the lineage relationship statistics.
func (c *Client) LineageStats(ctx context.Context) (*domain.LineageStats, error) {
	var stats domain.LineageStats
	if err := c.do(ctx, http.MethodGet, "/analytics/lineage-stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}

func (c *Client) productEnvelope(ctx context.Context, method, path string, body interface{}) (*domain.DataProduct, error) {
	var resp struct {
		Data domain.DataProduct `json:"data"`
	}
	if err := c.do(ctx, method, path, body, &resp); err != nil {
		return nil, err
	}
	return &resp.Data, nil
}
