package api

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"datamesh/internal/domain"
)

func TestHandler_DomainAnalytics(t *testing.T) {
	s := newTestServer(t)
	registerTestProduct(t, s, "orders", "sales")
	registerTestProduct(t, s, "refunds", "sales")
	registerTestProduct(t, s, "leads", "marketing")

	rec := s.do(t, http.MethodGet, "/analytics/domains", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	counts := decodeResponse[map[string]int](t, rec)
	assert.Equal(t, map[string]int{"sales": 2, "marketing": 1}, counts)
}

func TestHandler_LineageAnalytics(t *testing.T) {
	t.Run("empty_catalog", func(t *testing.T) {
		s := newTestServer(t)
		rec := s.do(t, http.MethodGet, "/analytics/lineage-stats", nil)
		require.Equal(t, http.StatusOK, rec.Code)

		stats := decodeResponse[domain.LineageStats](t, rec)
		assert.Zero(t, stats.TotalEntries)
		assert.Equal(t, map[domain.LineageType]int{
			domain.LineageDirect:     0,
			domain.LineageDerived:    0,
			domain.LineageAggregated: 0,
		}, stats.ByType)
	})

	t.Run("with_entries", func(t *testing.T) {
		s := newTestServer(t)
		registerTestProduct(t, s, "a", "d")
		registerTestProduct(t, s, "b", "d")
		registerTestLineage(t, s, "a", "b")

		rec := s.do(t, http.MethodGet, "/analytics/lineage-stats", nil)
		stats := decodeResponse[domain.LineageStats](t, rec)
		assert.Equal(t, 1, stats.TotalEntries)
		assert.Equal(t, 1, stats.UniqueSources)
		assert.Equal(t, 1, stats.UniqueTargets)
		assert.Equal(t, 1, stats.ByType[domain.LineageDirect])
	})
}

func TestHandler_Health(t *testing.T) {
	s := newTestServer(t)
	registerTestProduct(t, s, "orders", "sales")

	rec := s.do(t, http.MethodGet, "/health", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	health := decodeResponse[HealthCheck](t, rec)
	assert.Equal(t, "healthy", health.Status)
	assert.Equal(t, Version, health.Version)
	assert.Equal(t, 1, health.TotalProducts)
	assert.Zero(t, health.TotalLineageEntries)
	assert.False(t, health.Timestamp.IsZero())
}
