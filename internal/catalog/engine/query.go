package engine

import (
	"net/url"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/KativuCraig/manymor-frontend/internal/catalog/domain"
)

// Query parameter names shared with the browsing client. The query string is
// the single source of truth for filter state, which keeps catalog views
// shareable and bookmarkable.
const (
	ParamSearch   = "search"
	ParamCategory = "category"
	ParamMinPrice = "min_price"
	ParamMaxPrice = "max_price"
	ParamInStock  = "in_stock"
	ParamSort     = "sort"
	ParamPage     = "page"
)

// ParseFilterQuery decodes query parameters into a FilterState. Parsing is
// total: malformed or out-of-range values degrade to "filter absent" and a
// page below 1 is coerced to 1.
func ParseFilterQuery(query url.Values) domain.FilterState {
	state := domain.DefaultFilterState()

	state.Search = strings.TrimSpace(query.Get(ParamSearch))
	state.Category = query.Get(ParamCategory)
	state.MinPrice = parsePrice(query.Get(ParamMinPrice))
	state.MaxPrice = parsePrice(query.Get(ParamMaxPrice))
	state.InStockOnly = query.Get(ParamInStock) == "true"
	state.Sort = domain.ParseSortKey(query.Get(ParamSort))

	if page, err := strconv.Atoi(query.Get(ParamPage)); err == nil && page > 1 {
		state.Page = page
	}

	return state
}

// EncodeFilterQuery serializes a FilterState back to query parameters,
// omitting defaults. Round trip with ParseFilterQuery is idempotent.
func EncodeFilterQuery(state domain.FilterState) url.Values {
	query := url.Values{}

	if state.Search != "" {
		query.Set(ParamSearch, state.Search)
	}
	if state.Category != "" {
		query.Set(ParamCategory, state.Category)
	}
	if state.MinPrice != nil {
		query.Set(ParamMinPrice, state.MinPrice.String())
	}
	if state.MaxPrice != nil {
		query.Set(ParamMaxPrice, state.MaxPrice.String())
	}
	if state.InStockOnly {
		query.Set(ParamInStock, "true")
	}
	if state.Sort != domain.SortNone {
		query.Set(ParamSort, string(state.Sort))
	}
	if state.Page > 1 {
		query.Set(ParamPage, strconv.Itoa(state.Page))
	}

	return query
}

// Merge applies a partial set of query parameter changes to a base state.
// Changing any filter other than the page itself resets the page to 1; an
// empty value clears the corresponding filter. The caller replaces the URL
// with the merged state rather than pushing it, so history stays clean.
func Merge(base domain.FilterState, changes url.Values) domain.FilterState {
	merged := base

	filterChanged := false
	for param := range changes {
		switch param {
		case ParamSearch:
			merged.Search = strings.TrimSpace(changes.Get(param))
			filterChanged = true
		case ParamCategory:
			merged.Category = changes.Get(param)
			filterChanged = true
		case ParamMinPrice:
			merged.MinPrice = parsePrice(changes.Get(param))
			filterChanged = true
		case ParamMaxPrice:
			merged.MaxPrice = parsePrice(changes.Get(param))
			filterChanged = true
		case ParamInStock:
			merged.InStockOnly = changes.Get(param) == "true"
			filterChanged = true
		case ParamSort:
			merged.Sort = domain.ParseSortKey(changes.Get(param))
			filterChanged = true
		}
	}

	if filterChanged {
		merged.Page = 1
	}
	if changes.Has(ParamPage) {
		merged.Page = 1
		if page, err := strconv.Atoi(changes.Get(ParamPage)); err == nil && page > 1 {
			merged.Page = page
		}
	}

	return merged
}

// Clear returns the default state, used when the client drops every filter.
func Clear() domain.FilterState {
	return domain.DefaultFilterState()
}

// parsePrice decodes a price bound. Unparseable or negative values are
// treated as an absent bound, not an error.
func parsePrice(raw string) *decimal.Decimal {
	if raw == "" {
		return nil
	}
	price, err := decimal.NewFromString(raw)
	if err != nil || price.IsNegative() {
		return nil
	}
	return &price
}
