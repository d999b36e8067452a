package catalog

import (
	"context"

	"datamesh/internal/domain"
)

// RegisterLineage validates the entry and appends it to the lineage log.
// Both endpoints must name currently-existing products. The products read
// lock is held across the check and the append so a concurrent delete cannot
// let a dangling reference slip in.
func (s *Service) RegisterLineage(ctx context.Context, e domain.LineageEntry) (*domain.LineageEntry, error) {
	if s.closed.Load() {
		return nil, ErrClosed
	}
	e.Normalize()
	if err := e.Validate(); err != nil {
		return nil, err
	}

	s.productsMu.RLock()
	defer s.productsMu.RUnlock()

	s.lineageMu.Lock()
	if len(s.lineage) >= s.maxLineage {
		s.lineageMu.Unlock()
		return nil, domain.ErrCapacity("maximum number of lineage entries (%d) reached", s.maxLineage)
	}
	if _, ok := s.products[e.Source]; !ok {
		s.lineageMu.Unlock()
		return nil, domain.ErrInvalidReference("source product %q not found", e.Source)
	}
	if _, ok := s.products[e.Target]; !ok {
		s.lineageMu.Unlock()
		return nil, domain.ErrInvalidReference("target product %q not found", e.Target)
	}
	e.Timestamp = s.now().UTC()
	s.lineage = append(s.lineage, e)

	var snapshot []domain.LineageEntry
	if len(s.lineage)%lineageCheckpointEvery == 0 {
		snapshot = s.copyLineageLocked()
	}
	s.lineageMu.Unlock()

	s.logger.Info("registered lineage", "source", e.Source, "target", e.Target, "type", e.LineageType)
	if snapshot != nil {
		go s.checkpointLineage(snapshot)
	}
	return &e, nil
}

// ListLineage returns the filtered page of lineage entries in insertion order
// and the total matching count before pagination.
func (s *Service) ListLineage(ctx context.Context, filter domain.LineageFilter) ([]domain.LineageEntry, int, error) {
	s.lineageMu.RLock()
	defer s.lineageMu.RUnlock()

	matched := make([]domain.LineageEntry, 0, len(s.lineage))
	for i := range s.lineage {
		if filter.Matches(&s.lineage[i]) {
			matched = append(matched, s.lineage[i])
		}
	}
	start, end := filter.Page.Slice(len(matched))
	return matched[start:end], len(matched), nil
}

// UpstreamOf returns every entry whose target is the named product, in
// insertion order. One hop only; the graph is not traversed transitively.
func (s *Service) UpstreamOf(ctx context.Context, productName string) ([]domain.LineageEntry, error) {
	return s.edgesOf(productName, func(e *domain.LineageEntry) bool { return e.Target == productName })
}

// DownstreamOf returns every entry whose source is the named product.
func (s *Service) DownstreamOf(ctx context.Context, productName string) ([]domain.LineageEntry, error) {
	return s.edgesOf(productName, func(e *domain.LineageEntry) bool { return e.Source == productName })
}

func (s *Service) edgesOf(productName string, match func(*domain.LineageEntry) bool) ([]domain.LineageEntry, error) {
	s.productsMu.RLock()
	defer s.productsMu.RUnlock()

	if _, ok := s.products[productName]; !ok {
		return nil, domain.ErrNotFound("product %q not found", productName)
	}

	s.lineageMu.RLock()
	defer s.lineageMu.RUnlock()

	edges := make([]domain.LineageEntry, 0)
	for i := range s.lineage {
		if match(&s.lineage[i]) {
			edges = append(edges, s.lineage[i])
		}
	}
	return edges, nil
}
