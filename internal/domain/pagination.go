package domain

// DefaultPageLimit is the page size when none is specified.
const DefaultPageLimit = 100

// MaxPageLimit is the maximum allowed page size.
const MaxPageLimit = 1000

// Page holds offset pagination parameters for list operations. Filtering is
// always applied before pagination; an out-of-range offset yields an empty
// page, never an error.
type Page struct {
	Limit  int
	Offset int
}

// EffectiveLimit returns the page size clamped to [1, MaxPageLimit], with
// DefaultPageLimit substituted when unset.
func (p Page) EffectiveLimit() int {
	if p.Limit <= 0 {
		return DefaultPageLimit
	}
	if p.Limit > MaxPageLimit {
		return MaxPageLimit
	}
	return p.Limit
}

// EffectiveOffset returns the offset floored at zero.
func (p Page) EffectiveOffset() int {
	if p.Offset < 0 {
		return 0
	}
	return p.Offset
}

// Slice applies the page window [offset, offset+limit) to n items and returns
// the bounds of the resulting sub-range.
func (p Page) Slice(n int) (start, end int) {
	start = p.EffectiveOffset()
	if start > n {
		start = n
	}
	end = start + p.EffectiveLimit()
	if end > n {
		end = n
	}
	return start, end
}
