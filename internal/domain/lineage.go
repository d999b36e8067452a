package domain

import (
	"strings"
	"time"
)

// LineageType classifies how a target product was derived from its source.
type LineageType string

const (
	LineageDirect     LineageType = "direct"
	LineageDerived    LineageType = "derived"
	LineageAggregated LineageType = "aggregated"
)

// LineageTypes lists every lineage type in a stable order.
var LineageTypes = []LineageType{LineageDirect, LineageDerived, LineageAggregated}

// LineageEntry is one directed transformation edge between two products.
// Entries are append-only; they are removed only when a referenced product is
// deleted.
type LineageEntry struct {
	Source         string                 `json:"source" validate:"required,min=1,max=100"`
	Target         string                 `json:"target" validate:"required,min=1,max=100"`
	Transformation string                 `json:"transformation" validate:"required,min=1,max=1000"`
	LineageType    LineageType            `json:"lineage_type" validate:"required,oneof=direct derived aggregated"`
	Confidence     float64                `json:"confidence" validate:"gte=0,lte=1"`
	Metadata       map[string]interface{} `json:"metadata"`
	Timestamp      time.Time              `json:"timestamp"`
}

// NewLineageEntry returns an entry with the documented defaults applied.
// Decoding a request body into the result keeps absent fields at their defaults.
func NewLineageEntry() LineageEntry {
	return LineageEntry{
		LineageType: LineageDirect,
		Confidence:  1.0,
		Metadata:    map[string]interface{}{},
	}
}

// Normalize trims the endpoint names and applies defaults.
func (e *LineageEntry) Normalize() {
	e.Source = strings.TrimSpace(e.Source)
	e.Target = strings.TrimSpace(e.Target)
	if e.LineageType == "" {
		e.LineageType = LineageDirect
	}
	if e.Metadata == nil {
		e.Metadata = map[string]interface{}{}
	}
}

// Validate checks every field constraint. It assumes Normalize has run.
func (e *LineageEntry) Validate() error {
	return validateStruct(e)
}

// LineageFilter selects lineage entries for listing. Set fields are exact
// matches and compose conjunctively.
type LineageFilter struct {
	Source      string
	Target      string
	LineageType LineageType
	Page        Page
}

// Matches reports whether the entry passes every set filter field.
func (f *LineageFilter) Matches(e *LineageEntry) bool {
	if f.Source != "" && e.Source != f.Source {
		return false
	}
	if f.Target != "" && e.Target != f.Target {
		return false
	}
	if f.LineageType != "" && e.LineageType != f.LineageType {
		return false
	}
	return true
}

// LineageStats summarizes the lineage graph. ByType always carries all three
// lineage types, including zero counts.
type LineageStats struct {
	TotalEntries  int                 `json:"total_entries"`
	UniqueSources int                 `json:"unique_sources"`
	UniqueTargets int                 `json:"unique_targets"`
	ByType        map[LineageType]int `json:"lineage_types"`
}
