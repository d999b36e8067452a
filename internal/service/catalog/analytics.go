package catalog

import (
	"context"

	"datamesh/internal/domain"
)

// DomainAnalytics returns the number of products per domain, computed by a
// full scan of the live set. No caching.
func (s *Service) DomainAnalytics(ctx context.Context) (map[string]int, error) {
	s.productsMu.RLock()
	defer s.productsMu.RUnlock()

	counts := make(map[string]int)
	for _, p := range s.products {
		counts[p.Domain]++
	}
	return counts, nil
}

// LineageAnalytics summarizes the lineage log: totals, distinct endpoint
// counts, and a per-type breakdown that always carries all three types.
func (s *Service) LineageAnalytics(ctx context.Context) (*domain.LineageStats, error) {
	s.lineageMu.RLock()
	defer s.lineageMu.RUnlock()

	byType := make(map[domain.LineageType]int, len(domain.LineageTypes))
	for _, lt := range domain.LineageTypes {
		byType[lt] = 0
	}

	sources := make(map[string]struct{})
	targets := make(map[string]struct{})
	for i := range s.lineage {
		e := &s.lineage[i]
		sources[e.Source] = struct{}{}
		targets[e.Target] = struct{}{}
		byType[e.LineageType]++
	}

	return &domain.LineageStats{
		TotalEntries:  len(s.lineage),
		UniqueSources: len(sources),
		UniqueTargets: len(targets),
		ByType:        byType,
	}, nil
}
