package domain

import (
	"github.com/shopspring/decimal"
)

// SortKey selects the comparator applied to a filtered product set.
type SortKey string

// Supported sort keys. The zero value leaves the gateway order untouched.
const (
	SortNone      SortKey = ""
	SortPriceAsc  SortKey = "price_asc"
	SortPriceDesc SortKey = "price_desc"
	SortNameAsc   SortKey = "name_asc"
	SortNameDesc  SortKey = "name_desc"
	SortNewest    SortKey = "newest"
)

// ParseSortKey maps a raw query value to a SortKey. Unrecognized values
// degrade to SortNone rather than failing.
func ParseSortKey(raw string) SortKey {
	switch SortKey(raw) {
	case SortPriceAsc, SortPriceDesc, SortNameAsc, SortNameDesc, SortNewest:
		return SortKey(raw)
	default:
		return SortNone
	}
}

// DefaultPageSize is the number of products shown per catalog page.
const DefaultPageSize = 12

// FilterState is the declarative description of a catalog view. The URL query
// string is its source of truth; in-memory copies are caches of it.
type FilterState struct {
	Search      string
	Category    string
	MinPrice    *decimal.Decimal
	MaxPrice    *decimal.Decimal
	InStockOnly bool
	Sort        SortKey
	Page        int
	PageSize    int
}

// DefaultFilterState returns the state of an unfiltered first page.
func DefaultFilterState() FilterState {
	return FilterState{Page: 1, PageSize: DefaultPageSize}
}

// HasActiveFilters reports whether any predicate or sort is in effect.
func (s FilterState) HasActiveFilters() bool {
	return s.Search != "" ||
		s.Category != "" ||
		s.MinPrice != nil ||
		s.MaxPrice != nil ||
		s.InStockOnly ||
		s.Sort != SortNone
}

// Equal compares two states field by field. Price bounds compare by value.
func (s FilterState) Equal(other FilterState) bool {
	return s.Search == other.Search &&
		s.Category == other.Category &&
		decimalPtrEqual(s.MinPrice, other.MinPrice) &&
		decimalPtrEqual(s.MaxPrice, other.MaxPrice) &&
		s.InStockOnly == other.InStockOnly &&
		s.Sort == other.Sort &&
		s.Page == other.Page &&
		s.PageSize == other.PageSize
}

func decimalPtrEqual(a, b *decimal.Decimal) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.Equal(*b)
}

// FilteredView is the derived page of products matching a FilterState. It is
// recomputed in full on every state change and never stored.
type FilteredView struct {
	Items       []Product `json:"items"`
	TotalCount  int       `json:"total_count"`
	TotalPages  int       `json:"total_pages"`
	Page        int       `json:"page"`
	PageSize    int       `json:"page_size"`
	PageClamped bool      `json:"page_clamped,omitempty"`
}
