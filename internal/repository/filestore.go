// Package repository provides file-backed persistence for the catalog
// collections. Each collection mirrors to one JSON file under the data
// directory: products.json (object keyed by product name) and lineage.json
// (array in insertion order). Timestamps encode as RFC 3339 UTC strings.
package repository

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"datamesh/internal/domain"
)

const (
	productsFile = "products.json"
	lineageFile  = "lineage.json"
)

// FileStore implements domain.CatalogStore on top of two JSON files.
// Saves replace the whole file via a temp-file rename, so the last
// successful write always wins as the durable snapshot.
type FileStore struct {
	dir    string
	logger *slog.Logger

	// mu serializes snapshot writes; concurrent checkpoints on the same
	// collection must not interleave their temp files.
	mu sync.Mutex
}

// NewFileStore creates the data directory if needed and returns a store.
func NewFileStore(dir string, logger *slog.Logger) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create data dir %s: %w", dir, err)
	}
	return &FileStore{dir: dir, logger: logger}, nil
}

// LoadProducts reads the products file. An absent file yields an empty map
// and no error. A file that cannot be decoded, or that contains a record
// failing validation, yields an empty map and the decode error — never a
// partially-loaded collection.
func (s *FileStore) LoadProducts() (map[string]domain.DataProduct, error) {
	empty := map[string]domain.DataProduct{}

	raw, err := os.ReadFile(filepath.Join(s.dir, productsFile))
	if errors.Is(err, fs.ErrNotExist) {
		return empty, nil
	}
	if err != nil {
		return empty, fmt.Errorf("read products: %w", err)
	}

	var decoded map[string]domain.DataProduct
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return empty, fmt.Errorf("decode products: %w", err)
	}
	for name, p := range decoded {
		p.Normalize()
		if err := p.Validate(); err != nil {
			return empty, fmt.Errorf("product %q: %w", name, err)
		}
		decoded[name] = p
	}
	if decoded == nil {
		decoded = empty
	}
	s.logger.Info("loaded products from disk", "count", len(decoded))
	return decoded, nil
}

// LoadLineage reads the lineage file with the same soft-failure contract as
// LoadProducts: absent means empty, undecodable means empty plus an error.
func (s *FileStore) LoadLineage() ([]domain.LineageEntry, error) {
	raw, err := os.ReadFile(filepath.Join(s.dir, lineageFile))
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.LineageEntry{}, nil
	}
	if err != nil {
		return []domain.LineageEntry{}, fmt.Errorf("read lineage: %w", err)
	}

	var decoded []domain.LineageEntry
	if err := json.Unmarshal(raw, &decoded); err != nil {
		return []domain.LineageEntry{}, fmt.Errorf("decode lineage: %w", err)
	}
	for i := range decoded {
		decoded[i].Normalize()
		if err := decoded[i].Validate(); err != nil {
			return []domain.LineageEntry{}, fmt.Errorf("lineage entry %d: %w", i, err)
		}
	}
	s.logger.Info("loaded lineage from disk", "count", len(decoded))
	return decoded, nil
}

// SaveProducts serializes the full product map, overwriting prior content.
func (s *FileStore) SaveProducts(products map[string]domain.DataProduct) error {
	if products == nil {
		products = map[string]domain.DataProduct{}
	}
	if err := s.writeJSON(productsFile, products); err != nil {
		return fmt.Errorf("save products: %w", err)
	}
	s.logger.Info("saved products to disk", "count", len(products))
	return nil
}

// SaveLineage serializes the full lineage sequence, overwriting prior content.
func (s *FileStore) SaveLineage(entries []domain.LineageEntry) error {
	if entries == nil {
		entries = []domain.LineageEntry{}
	}
	if err := s.writeJSON(lineageFile, entries); err != nil {
		return fmt.Errorf("save lineage: %w", err)
	}
	s.logger.Info("saved lineage to disk", "count", len(entries))
	return nil
}

// writeJSON marshals v and replaces the named file atomically.
func (s *FileStore) writeJSON(name string, v interface{}) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}

	path := filepath.Join(s.dir, name)
	tmp, err := os.CreateTemp(s.dir, name+".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Compile-time check that FileStore implements the store port.
var _ domain.CatalogStore = (*FileStore)(nil)
