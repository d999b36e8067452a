package cli

import (
	"context"
	"io"
	"log/slog"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datamesh/internal/app"
	"datamesh/internal/config"
	"datamesh/internal/domain"
)

const testToken = "cli-test-key"

var ctx = context.Background()

// newTestAPI starts a real catalog server over a temp directory and returns
// an authenticated client for it.
func newTestAPI(t *testing.T) *Client {
	t.Helper()

	cfg := &config.Config{
		DataDir:            t.TempDir(),
		MaxProducts:        1000,
		MaxLineageEntries:  10000,
		APIKey:             testToken,
		RateLimitRPS:       1000,
		RateLimitBurst:     1000,
		CORSAllowedOrigins: []string{"*"},
	}
	a, err := app.New(ctx, app.Deps{Cfg: cfg, Logger: slog.New(slog.NewTextHandler(io.Discard, nil))})
	require.NoError(t, err)

	srv := httptest.NewServer(a.Router())
	t.Cleanup(func() {
		srv.Close()
		_ = a.Close(context.Background())
	})

	return NewClient(srv.URL, testToken)
}

func registerVia(t *testing.T, client *Client, name, dom string) {
	t.Helper()
	p := domain.NewDataProduct()
	p.Name = name
	p.Domain = dom
	p.Owner = "team"
	p.Description = "a product"
	p.Schema = map[string]string{"id": "int"}
	_, err := client.RegisterProduct(ctx, p)
	require.NoError(t, err)
}

func TestClient_Products(t *testing.T) {
	client := newTestAPI(t)

	t.Run("register_and_get", func(t *testing.T) {
		registerVia(t, client, "orders", "sales")

		p, err := client.GetProduct(ctx, "orders")
		require.NoError(t, err)
		assert.Equal(t, "orders", p.Name)
		assert.Equal(t, domain.StatusActive, p.Status)
	})

	t.Run("list_with_filters", func(t *testing.T) {
		registerVia(t, client, "leads", "marketing")

		products, err := client.ListProducts(ctx, ListOptions{Params: map[string]string{"domain": "sales"}})
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "orders", products[0].Name)
	})

	t.Run("update", func(t *testing.T) {
		status := domain.StatusDeprecated
		p, err := client.UpdateProduct(ctx, "orders", domain.DataProductUpdate{Status: &status})
		require.NoError(t, err)
		assert.Equal(t, domain.StatusDeprecated, p.Status)
	})

	t.Run("delete", func(t *testing.T) {
		require.NoError(t, client.DeleteProduct(ctx, "leads"))

		_, err := client.GetProduct(ctx, "leads")
		var apiErr *APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, 404, apiErr.HTTPStatus)
	})
}

func TestClient_Lineage(t *testing.T) {
	client := newTestAPI(t)
	registerVia(t, client, "orders", "sales")
	registerVia(t, client, "orders_summary", "analytics")

	e := domain.NewLineageEntry()
	e.Source = "orders"
	e.Target = "orders_summary"
	e.Transformation = "daily aggregation"
	e.LineageType = domain.LineageAggregated

	created, err := client.RegisterLineage(ctx, e)
	require.NoError(t, err)
	assert.Equal(t, domain.LineageAggregated, created.LineageType)

	up, err := client.Upstream(ctx, "orders_summary")
	require.NoError(t, err)
	require.Len(t, up, 1)
	assert.Equal(t, "orders", up[0].Source)

	down, err := client.Downstream(ctx, "orders")
	require.NoError(t, err)
	assert.Len(t, down, 1)

	entries, err := client.ListLineage(ctx, ListOptions{Params: map[string]string{"lineage_type": "aggregated"}})
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestClient_AnalyticsAndHealth(t *testing.T) {
	client := newTestAPI(t)
	registerVia(t, client, "orders", "sales")

	counts, err := client.DomainAnalytics(ctx)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{"sales": 1}, counts)

	stats, err := client.LineageStats(ctx)
	require.NoError(t, err)
	assert.Zero(t, stats.TotalEntries)

	health, err := client.Health(ctx)
	require.NoError(t, err)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, 1, health.TotalProducts)
}

func TestClient_AuthFailure(t *testing.T) {
	client := newTestAPI(t)
	client.Token = "wrong-token"

	p := domain.NewDataProduct()
	p.Name = "orders"
	p.Domain = "sales"
	p.Owner = "team"
	p.Description = "d"
	p.Schema = map[string]string{"id": "int"}

	_, err := client.RegisterProduct(ctx, p)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 401, apiErr.HTTPStatus)
	assert.Contains(t, apiErr.Message, "Invalid API key")
}
