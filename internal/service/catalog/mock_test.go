package catalog

import (
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"datamesh/internal/domain"
)

// errTest is a sentinel error for test scenarios.
var errTest = fmt.Errorf("test error")

// mockStore is a function-field store double. Unset load functions return
// empty collections; saves are recorded for inspection.
type mockStore struct {
	LoadProductsFn func() (map[string]domain.DataProduct, error)
	LoadLineageFn  func() ([]domain.LineageEntry, error)
	SaveProductsFn func(map[string]domain.DataProduct) error
	SaveLineageFn  func([]domain.LineageEntry) error

	mu            sync.Mutex
	savedProducts []map[string]domain.DataProduct
	savedLineage  [][]domain.LineageEntry
}

func (m *mockStore) LoadProducts() (map[string]domain.DataProduct, error) {
	if m.LoadProductsFn != nil {
		return m.LoadProductsFn()
	}
	return map[string]domain.DataProduct{}, nil
}

func (m *mockStore) LoadLineage() ([]domain.LineageEntry, error) {
	if m.LoadLineageFn != nil {
		return m.LoadLineageFn()
	}
	return []domain.LineageEntry{}, nil
}

func (m *mockStore) SaveProducts(products map[string]domain.DataProduct) error {
	m.mu.Lock()
	m.savedProducts = append(m.savedProducts, products)
	m.mu.Unlock()
	if m.SaveProductsFn != nil {
		return m.SaveProductsFn(products)
	}
	return nil
}

func (m *mockStore) SaveLineage(entries []domain.LineageEntry) error {
	m.mu.Lock()
	m.savedLineage = append(m.savedLineage, entries)
	m.mu.Unlock()
	if m.SaveLineageFn != nil {
		return m.SaveLineageFn(entries)
	}
	return nil
}

func (m *mockStore) productSaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.savedProducts)
}

func (m *mockStore) lineageSaves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.savedLineage)
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func newTestService(store domain.CatalogStore) *Service {
	return New(store, discardLogger(), 0, 0)
}

func testProduct(name, dom string) domain.DataProduct {
	p := domain.NewDataProduct()
	p.Name = name
	p.Domain = dom
	p.Owner = "team"
	p.Description = "a product"
	p.Schema = map[string]string{"id": "int"}
	return p
}

func testEntry(source, target string) domain.LineageEntry {
	e := domain.NewLineageEntry()
	e.Source = source
	e.Target = target
	e.Transformation = "transform"
	return e
}

// frozenClock returns a clock function that advances one second per call.
func frozenClock(start time.Time) func() time.Time {
	t := start
	return func() time.Time {
		t = t.Add(time.Second)
		return t
	}
}
