package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datamesh/internal/domain"
)

// === POST /register_product ===

func TestHandler_RegisterProduct(t *testing.T) {
	t.Run("happy_path", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(t, http.MethodPost, "/register_product", map[string]interface{}{
			"name":        "orders",
			"domain":      "sales",
			"owner":       "sales-team",
			"description": "raw orders",
			"schema":      map[string]string{"id": "int"},
			"tags":        []string{" Core ", ""},
		})

		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse[APIResponse](t, rec)
		assert.True(t, resp.Success)
		assert.Equal(t, "Product registered successfully", resp.Message)

		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "orders", data["name"])
		assert.Equal(t, "active", data["status"])
		assert.Equal(t, "1.0.0", data["version"])
		assert.Equal(t, []interface{}{"core"}, data["tags"])
		assert.NotEmpty(t, data["created_at"])
	})

	t.Run("duplicate_is_conflict", func(t *testing.T) {
		s := newTestServer(t)
		registerTestProduct(t, s, "orders", "sales")

		rec := s.do(t, http.MethodPost, "/register_product", map[string]interface{}{
			"name":        "orders",
			"domain":      "sales",
			"owner":       "team",
			"description": "dup",
			"schema":      map[string]string{"id": "int"},
		})
		assert.Equal(t, http.StatusConflict, rec.Code)
		resp := decodeResponse[APIResponse](t, rec)
		assert.False(t, resp.Success)
	})

	t.Run("invalid_name_is_unprocessable", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(t, http.MethodPost, "/register_product", map[string]interface{}{
			"name":        "bad name!",
			"domain":      "sales",
			"owner":       "team",
			"description": "nope",
			"schema":      map[string]string{"id": "int"},
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})

	t.Run("malformed_body_is_unprocessable", func(t *testing.T) {
		s := newTestServer(t)
		req := s.do(t, http.MethodPost, "/register_product", "not an object")
		assert.Equal(t, http.StatusUnprocessableEntity, req.Code)
	})
}

// === GET /products ===

func TestHandler_ListProducts(t *testing.T) {
	seed := func(t *testing.T) *testServer {
		t.Helper()
		s := newTestServer(t)
		registerTestProduct(t, s, "orders", "sales")
		registerTestProduct(t, s, "leads", "marketing")
		registerTestProduct(t, s, "orders_summary", "sales")
		return s
	}

	t.Run("all_in_registration_order", func(t *testing.T) {
		s := seed(t)
		rec := s.do(t, http.MethodGet, "/products", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		products := decodeResponse[[]domain.DataProduct](t, rec)
		require.Len(t, products, 3)
		assert.Equal(t, "orders", products[0].Name)
		assert.Equal(t, "leads", products[1].Name)
	})

	t.Run("domain_filter", func(t *testing.T) {
		s := seed(t)
		rec := s.do(t, http.MethodGet, "/products?domain=SALES", nil)
		products := decodeResponse[[]domain.DataProduct](t, rec)
		assert.Len(t, products, 2)
	})

	t.Run("pagination", func(t *testing.T) {
		s := seed(t)
		rec := s.do(t, http.MethodGet, "/products?limit=1&offset=1", nil)
		products := decodeResponse[[]domain.DataProduct](t, rec)
		require.Len(t, products, 1)
		assert.Equal(t, "leads", products[0].Name)
	})

	t.Run("limit_out_of_range", func(t *testing.T) {
		s := seed(t)
		assert.Equal(t, http.StatusUnprocessableEntity, s.do(t, http.MethodGet, "/products?limit=0", nil).Code)
		assert.Equal(t, http.StatusUnprocessableEntity, s.do(t, http.MethodGet, "/products?limit=1001", nil).Code)
		assert.Equal(t, http.StatusUnprocessableEntity, s.do(t, http.MethodGet, "/products?offset=-1", nil).Code)
	})
}

// === GET /product/{name} ===

func TestHandler_GetProduct(t *testing.T) {
	s := newTestServer(t)
	registerTestProduct(t, s, "orders", "sales")

	t.Run("found", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/product/orders", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		product := decodeResponse[domain.DataProduct](t, rec)
		assert.Equal(t, "orders", product.Name)
	})

	t.Run("not_found", func(t *testing.T) {
		rec := s.do(t, http.MethodGet, "/product/ghost", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

// === PUT /product/{name} ===

func TestHandler_UpdateProduct(t *testing.T) {
	t.Run("partial_update", func(t *testing.T) {
		s := newTestServer(t)
		registerTestProduct(t, s, "orders", "sales")

		rec := s.do(t, http.MethodPut, "/product/orders", map[string]interface{}{
			"status": "deprecated",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		resp := decodeResponse[APIResponse](t, rec)
		assert.Equal(t, "Product updated successfully", resp.Message)
		data := resp.Data.(map[string]interface{})
		assert.Equal(t, "deprecated", data["status"])
		assert.Equal(t, "a product", data["description"])
	})

	t.Run("not_found", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(t, http.MethodPut, "/product/ghost", map[string]interface{}{
			"status": "deprecated",
		})
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})

	t.Run("invalid_status", func(t *testing.T) {
		s := newTestServer(t)
		registerTestProduct(t, s, "orders", "sales")
		rec := s.do(t, http.MethodPut, "/product/orders", map[string]interface{}{
			"status": "retired",
		})
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	})
}

// === DELETE /product/{name} ===

func TestHandler_DeleteProduct(t *testing.T) {
	t.Run("cascades_to_lineage", func(t *testing.T) {
		s := newTestServer(t)
		registerTestProduct(t, s, "orders", "sales")
		registerTestProduct(t, s, "orders_summary", "sales")
		registerTestLineage(t, s, "orders", "orders_summary")

		rec := s.do(t, http.MethodDelete, "/product/orders", nil)
		require.Equal(t, http.StatusOK, rec.Code)
		resp := decodeResponse[APIResponse](t, rec)
		assert.Equal(t, "Product deleted successfully", resp.Message)
		assert.Nil(t, resp.Data)

		entries := decodeResponse[[]domain.LineageEntry](t, s.do(t, http.MethodGet, "/lineage", nil))
		assert.Empty(t, entries)
	})

	t.Run("not_found", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(t, http.MethodDelete, "/product/ghost", nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
