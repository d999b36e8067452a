package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"datamesh/internal/domain"
	"datamesh/internal/service/catalog"
)

// nullStore satisfies the catalog store with empty collections and no-op saves.
type nullStore struct{}

func (nullStore) LoadProducts() (map[string]domain.DataProduct, error) {
	return map[string]domain.DataProduct{}, nil
}
func (nullStore) LoadLineage() ([]domain.LineageEntry, error) { return []domain.LineageEntry{}, nil }
func (nullStore) SaveProducts(map[string]domain.DataProduct) error { return nil }
func (nullStore) SaveLineage([]domain.LineageEntry) error          { return nil }

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// passthroughAuth stands in for the real auth middleware in handler tests.
func passthroughAuth(next http.Handler) http.Handler { return next }

type testServer struct {
	svc    *catalog.Service
	router http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	svc := catalog.New(nullStore{}, discardLogger(), 0, 0)
	t.Cleanup(func() { _ = svc.Close(context.Background()) })
	return &testServer{
		svc:    svc,
		router: Routes(NewHandler(svc, discardLogger()), passthroughAuth),
	}
}

func (s *testServer) do(t *testing.T, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	s.router.ServeHTTP(rec, req)
	return rec
}

func decodeResponse[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v))
	return v
}

func registerTestProduct(t *testing.T, s *testServer, name, dom string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/register_product", map[string]interface{}{
		"name":        name,
		"domain":      dom,
		"owner":       "team",
		"description": "a product",
		"schema":      map[string]string{"id": "int"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}

func registerTestLineage(t *testing.T, s *testServer, source, target string) {
	t.Helper()
	rec := s.do(t, http.MethodPost, "/register_lineage", map[string]interface{}{
		"source":         source,
		"target":         target,
		"transformation": "transform",
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
}
