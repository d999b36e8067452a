package domain

// CatalogStore mirrors the live catalog collections to durable storage.
// Implementations hold serialized snapshots only, never live references.
//
// Load operations distinguish "absent" (empty result, nil error) from
// "corrupt" (empty result, non-nil error); callers degrade to empty
// collections either way and surface corruption only through logs.
type CatalogStore interface {
	LoadProducts() (map[string]DataProduct, error)
	LoadLineage() ([]LineageEntry, error)
	SaveProducts(products map[string]DataProduct) error
	SaveLineage(entries []LineageEntry) error
}
