// Package catalog implements the authoritative in-memory catalog engine:
// the data product map, the lineage log, and their snapshot persistence.
package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"datamesh/internal/domain"
)

// Default collection bounds, overridable via configuration.
const (
	DefaultMaxProducts       = 1000
	DefaultMaxLineageEntries = 10000
)

// Checkpoint cadence: a full snapshot is written after every Nth successful
// registration. Durability between checkpoints relies on the shutdown flush.
const (
	productCheckpointEvery = 10
	lineageCheckpointEvery = 50
)

// ErrClosed is returned for mutations attempted after Close.
var ErrClosed = errors.New("catalog: engine is closed")

// Service owns the live catalog state for the process lifetime. Reads may run
// concurrently; mutations and snapshot copies on the same collection are
// serialized by that collection's lock. Lock order is always products before
// lineage.
type Service struct {
	store  domain.CatalogStore
	logger *slog.Logger

	maxProducts int
	maxLineage  int

	closed atomic.Bool
	now    func() time.Time

	productsMu sync.RWMutex
	products   map[string]domain.DataProduct
	order      []string // product names in insertion order

	lineageMu sync.RWMutex
	lineage   []domain.LineageEntry
}

// New creates the engine and loads both collections from the store. Load
// failures are soft: they are logged and the affected collection starts empty.
func New(store domain.CatalogStore, logger *slog.Logger, maxProducts, maxLineage int) *Service {
	if maxProducts <= 0 {
		maxProducts = DefaultMaxProducts
	}
	if maxLineage <= 0 {
		maxLineage = DefaultMaxLineageEntries
	}

	products, err := store.LoadProducts()
	if err != nil {
		logger.Error("product load failed, starting with empty catalog", "error", err)
		products = map[string]domain.DataProduct{}
	}
	lineage, err := store.LoadLineage()
	if err != nil {
		logger.Error("lineage load failed, starting with empty lineage", "error", err)
		lineage = []domain.LineageEntry{}
	}

	s := &Service{
		store:       store,
		logger:      logger,
		maxProducts: maxProducts,
		maxLineage:  maxLineage,
		now:         time.Now,
		products:    products,
		order:       orderByCreation(products),
		lineage:     lineage,
	}
	logger.Info("catalog loaded", "products", len(products), "lineage_entries", len(lineage))
	return s
}

// orderByCreation reconstructs a stable listing order for products loaded
// from disk: creation time, then name as a tiebreaker.
func orderByCreation(products map[string]domain.DataProduct) []string {
	names := make([]string, 0, len(products))
	for name := range products {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		a, b := products[names[i]], products[names[j]]
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.Before(b.CreatedAt)
		}
		return names[i] < names[j]
	})
	return names
}

// RegisterProduct validates, normalizes, and inserts a new product. Every
// productCheckpointEvery-th insertion triggers an asynchronous snapshot of
// the full product map.
func (s *Service) RegisterProduct(ctx context.Context, p domain.DataProduct) (*domain.DataProduct, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	p.Normalize()
	if err := p.Validate(); err != nil {
		return nil, err
	}

	s.productsMu.Lock()
	if len(s.products) >= s.maxProducts {
		s.productsMu.Unlock()
		return nil, domain.ErrCapacity("maximum number of products (%d) reached", s.maxProducts)
	}
	if _, exists := s.products[p.Name]; exists {
		s.productsMu.Unlock()
		return nil, domain.ErrConflict("product %q already exists", p.Name)
	}
	now := s.now().UTC()
	p.CreatedAt = now
	p.UpdatedAt = now
	s.products[p.Name] = p
	s.order = append(s.order, p.Name)

	var snapshot map[string]domain.DataProduct
	if len(s.products)%productCheckpointEvery == 0 {
		snapshot = s.copyProductsLocked()
	}
	s.productsMu.Unlock()

	s.logger.Info("registered product", "name", p.Name, "domain", p.Domain)
	if snapshot != nil {
		go s.checkpointProducts(snapshot)
	}
	return &p, nil
}

// GetProduct returns the product with the given name.
func (s *Service) GetProduct(ctx context.Context, name string) (*domain.DataProduct, error) {
	s.productsMu.RLock()
	defer s.productsMu.RUnlock()

	p, ok := s.products[name]
	if !ok {
		return nil, domain.ErrNotFound("product %q not found", name)
	}
	return &p, nil
}

// ListProducts returns the filtered, insertion-ordered page of products and
// the total number of products matching the filter before pagination.
func (s *Service) ListProducts(ctx context.Context, filter domain.ProductFilter) ([]domain.DataProduct, int, error) {
	s.productsMu.RLock()
	defer s.productsMu.RUnlock()

	matched := make([]domain.DataProduct, 0, len(s.order))
	for _, name := range s.order {
		p := s.products[name]
		if filter.Matches(&p) {
			matched = append(matched, p)
		}
	}
	start, end := filter.Page.Slice(len(matched))
	return matched[start:end], len(matched), nil
}

// UpdateProduct applies a partial update: only fields present in upd are
// overwritten. UpdatedAt is refreshed on every successful call, CreatedAt
// never changes.
func (s *Service) UpdateProduct(ctx context.Context, name string, upd domain.DataProductUpdate) (*domain.DataProduct, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	upd.Normalize()
	if err := upd.Validate(); err != nil {
		return nil, err
	}

	s.productsMu.Lock()
	defer s.productsMu.Unlock()

	p, ok := s.products[name]
	if !ok {
		return nil, domain.ErrNotFound("product %q not found", name)
	}
	if upd.Description != nil {
		p.Description = *upd.Description
	}
	if upd.Status != nil {
		p.Status = *upd.Status
	}
	if upd.Tags != nil {
		p.Tags = *upd.Tags
	}
	if upd.Schema != nil {
		p.Schema = *upd.Schema
	}
	p.UpdatedAt = s.now().UTC()
	s.products[name] = p

	s.logger.Info("updated product", "name", name)
	return &p, nil
}

// DeleteProduct removes the product and every lineage entry that references
// it as source or target. The compound mutation holds both locks so no reader
// can observe the product gone while stale lineage remains.
func (s *Service) DeleteProduct(ctx context.Context, name string) error {
	if s.closed.Load() {
		return ErrClosed
	}

	s.productsMu.Lock()
	defer s.productsMu.Unlock()

	if _, ok := s.products[name]; !ok {
		return domain.ErrNotFound("product %q not found", name)
	}

	s.lineageMu.Lock()
	defer s.lineageMu.Unlock()

	delete(s.products, name)
	for i, n := range s.order {
		if n == name {
			s.order = append(s.order[:i], s.order[i+1:]...)
			break
		}
	}

	kept := make([]domain.LineageEntry, 0, len(s.lineage))
	for _, e := range s.lineage {
		if e.Source != name && e.Target != name {
			kept = append(kept, e)
		}
	}
	removed := len(s.lineage) - len(kept)
	s.lineage = kept

	s.logger.Info("deleted product", "name", name, "lineage_entries_removed", removed)
	return nil
}

// Counts returns the current product and lineage entry counts.
func (s *Service) Counts() (products, lineageEntries int) {
	s.productsMu.RLock()
	products = len(s.products)
	s.productsMu.RUnlock()

	s.lineageMu.RLock()
	lineageEntries = len(s.lineage)
	s.lineageMu.RUnlock()
	return products, lineageEntries
}

// Flush writes both collections to the store synchronously. Failures are
// logged and returned, but in-memory state stays authoritative either way.
func (s *Service) Flush(ctx context.Context) error {
	s.productsMu.RLock()
	products := s.copyProductsLocked()
	s.productsMu.RUnlock()

	s.lineageMu.RLock()
	lineage := s.copyLineageLocked()
	s.lineageMu.RUnlock()

	var firstErr error
	if err := s.store.SaveProducts(products); err != nil {
		s.logger.Error("product flush failed", "error", err)
		firstErr = err
	}
	if err := s.store.SaveLineage(lineage); err != nil {
		s.logger.Error("lineage flush failed", "error", err)
		if firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Close rejects all further mutations and performs the final unconditional
// flush of both collections.
func (s *Service) Close(ctx context.Context) error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	s.logger.Info("closing catalog engine")
	return s.Flush(ctx)
}

// copyProductsLocked snapshots the product map. Callers must hold productsMu.
func (s *Service) copyProductsLocked() map[string]domain.DataProduct {
	snapshot := make(map[string]domain.DataProduct, len(s.products))
	for name, p := range s.products {
		snapshot[name] = p
	}
	return snapshot
}

// copyLineageLocked snapshots the lineage log. Callers must hold lineageMu.
func (s *Service) copyLineageLocked() []domain.LineageEntry {
	snapshot := make([]domain.LineageEntry, len(s.lineage))
	copy(snapshot, s.lineage)
	return snapshot
}

// checkpointProducts writes a product snapshot. Best-effort: failures are
// logged, never surfaced to the mutation that triggered the checkpoint.
func (s *Service) checkpointProducts(snapshot map[string]domain.DataProduct) {
	if err := s.store.SaveProducts(snapshot); err != nil {
		s.logger.Warn("product checkpoint failed", "error", err)
	}
}

// checkpointLineage writes a lineage snapshot with the same contract.
func (s *Service) checkpointLineage(snapshot []domain.LineageEntry) {
	if err := s.store.SaveLineage(snapshot); err != nil {
		s.logger.Warn("lineage checkpoint failed", "error", err)
	}
}
