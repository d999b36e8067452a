package domain

import (
	"strings"
	"time"
)

// ProductStatus is the lifecycle status of a data product.
type ProductStatus string

const (
	StatusActive     ProductStatus = "active"
	StatusDeprecated ProductStatus = "deprecated"
	StatusInactive   ProductStatus = "inactive"
)

// MaxProductTags is the maximum number of tags a product may carry.
const MaxProductTags = 10

// DataProduct represents one registered dataset: a named, owned, versioned
// schema declaration. Name is the primary key of the catalog.
type DataProduct struct {
	Name        string            `json:"name" validate:"required,min=1,max=100,product_name"`
	Domain      string            `json:"domain" validate:"required,min=1,max=50"`
	Owner       string            `json:"owner" validate:"required,min=1,max=100"`
	Description string            `json:"description" validate:"required,min=1,max=500"`
	Schema      map[string]string `json:"schema" validate:"required,min=1"`
	Status      ProductStatus     `json:"status" validate:"required,oneof=active deprecated inactive"`
	Version     string            `json:"version" validate:"required,semver_core"`
	Tags        []string          `json:"tags" validate:"max=10"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// NewDataProduct returns a product with the documented defaults applied.
// Decoding a request body into the result keeps absent fields at their defaults.
func NewDataProduct() DataProduct {
	return DataProduct{
		Status:  StatusActive,
		Version: "1.0.0",
	}
}

// Normalize applies field normalization: defaults for status/version and
// trimmed, lowercased tags with empty entries dropped. Comparisons downstream
// assume this has run.
func (p *DataProduct) Normalize() {
	if p.Status == "" {
		p.Status = StatusActive
	}
	if p.Version == "" {
		p.Version = "1.0.0"
	}
	p.Tags = NormalizeTags(p.Tags)
}

// Validate checks every field constraint. It assumes Normalize has run.
func (p *DataProduct) Validate() error {
	if err := validateStruct(p); err != nil {
		return err
	}
	for field, typ := range p.Schema {
		if field == "" || typ == "" {
			return ErrValidation("schema fields must have non-empty names and types")
		}
	}
	return nil
}

// HasTag reports whether the product carries the given tag. The match is
// case-insensitive against the normalized tag set.
func (p *DataProduct) HasTag(tag string) bool {
	tag = strings.ToLower(strings.TrimSpace(tag))
	for _, t := range p.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// NormalizeTags trims and lowercases tags, dropping entries that are empty
// after trimming. Order is preserved.
func NormalizeTags(tags []string) []string {
	if tags == nil {
		return nil
	}
	out := make([]string, 0, len(tags))
	for _, t := range tags {
		t = strings.ToLower(strings.TrimSpace(t))
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// DataProductUpdate is a partial update: only non-nil fields are applied.
type DataProductUpdate struct {
	Description *string            `json:"description" validate:"omitempty,min=1,max=500"`
	Status      *ProductStatus     `json:"status" validate:"omitempty,oneof=active deprecated inactive"`
	Tags        *[]string          `json:"tags" validate:"omitempty,max=10"`
	Schema      *map[string]string `json:"schema" validate:"omitempty,min=1"`
}

// Normalize re-normalizes tags when they are part of the update.
func (u *DataProductUpdate) Normalize() {
	if u.Tags != nil {
		normalized := NormalizeTags(*u.Tags)
		u.Tags = &normalized
	}
}

// Validate checks the constraints of every field present in the update.
func (u *DataProductUpdate) Validate() error {
	if err := validateStruct(u); err != nil {
		return err
	}
	if u.Schema != nil {
		for field, typ := range *u.Schema {
			if field == "" || typ == "" {
				return ErrValidation("schema fields must have non-empty names and types")
			}
		}
	}
	return nil
}

// ProductFilter selects products for listing. Empty fields match everything;
// set fields compose conjunctively.
type ProductFilter struct {
	Domain string        // case-insensitive exact match
	Status ProductStatus // exact enum match
	Tag    string        // case-insensitive containment in the tag set
	Page   Page
}

// Matches reports whether the product passes every set filter field.
func (f *ProductFilter) Matches(p *DataProduct) bool {
	if f.Domain != "" && !strings.EqualFold(p.Domain, f.Domain) {
		return false
	}
	if f.Status != "" && p.Status != f.Status {
		return false
	}
	if f.Tag != "" && !p.HasTag(f.Tag) {
		return false
	}
	return true
}
