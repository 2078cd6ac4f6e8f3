// Package engine derives deterministic catalog views from a declarative
// filter state: predicate filtering, stable sorting and pagination over the
// in-memory product set fetched from the API gateway.
package engine

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/KativuCraig/manymor-frontend/internal/catalog/domain"
)

var sortLabels = map[domain.SortKey]string{
	domain.SortPriceAsc:  "Price: Low to High",
	domain.SortPriceDesc: "Price: High to Low",
	domain.SortNameAsc:   "Name: A to Z",
	domain.SortNameDesc:  "Name: Z to A",
	domain.SortNewest:    "Newest First",
}

// Apply filters, sorts and paginates products according to state. The input
// slice is never mutated. Predicates run in a fixed order: text search,
// category, price lower bound, price upper bound, stock. When the requested
// page falls outside the recomputed page count the view is clamped back to
// page 1 and flagged, so the caller can re-synchronize the URL.
func Apply(products []domain.Product, state domain.FilterState) domain.FilteredView {
	if state.PageSize <= 0 {
		state.PageSize = domain.DefaultPageSize
	}
	if state.Page < 1 {
		state.Page = 1
	}

	filtered := filter(products, state)
	sortProducts(filtered, state.Sort)

	totalCount := len(filtered)
	totalPages := (totalCount + state.PageSize - 1) / state.PageSize

	page := state.Page
	clamped := false
	if totalPages > 0 && page > totalPages {
		page = 1
		clamped = true
	}
	if totalPages == 0 {
		page = 1
	}

	start := (page - 1) * state.PageSize
	end := start + state.PageSize
	if end > totalCount {
		end = totalCount
	}

	items := []domain.Product{}
	if start < totalCount {
		items = filtered[start:end]
	}

	return domain.FilteredView{
		Items:       items,
		TotalCount:  totalCount,
		TotalPages:  totalPages,
		Page:        page,
		PageSize:    state.PageSize,
		PageClamped: clamped,
	}
}

func filter(products []domain.Product, state domain.FilterState) []domain.Product {
	search := strings.ToLower(state.Search)

	filtered := make([]domain.Product, 0, len(products))
	for _, product := range products {
		if search != "" && !matchesSearch(product, search) {
			continue
		}
		if state.Category != "" && strconv.FormatUint(uint64(product.CategoryID), 10) != state.Category {
			continue
		}
		if state.MinPrice != nil && product.Price.LessThan(*state.MinPrice) {
			continue
		}
		if state.MaxPrice != nil && product.Price.GreaterThan(*state.MaxPrice) {
			continue
		}
		if state.InStockOnly && product.StockQuantity <= 0 {
			continue
		}
		filtered = append(filtered, product)
	}
	return filtered
}

// matchesSearch does a case-insensitive substring match across name,
// description and category name. The query is already lowercased.
func matchesSearch(product domain.Product, query string) bool {
	return strings.Contains(strings.ToLower(product.Name), query) ||
		strings.Contains(strings.ToLower(product.Description), query) ||
		strings.Contains(strings.ToLower(product.CategoryName), query)
}

func sortProducts(products []domain.Product, key domain.SortKey) {
	switch key {
	case domain.SortPriceAsc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.LessThan(products[j].Price)
		})
	case domain.SortPriceDesc:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].Price.GreaterThan(products[j].Price)
		})
	case domain.SortNameAsc:
		collator := newNameCollator()
		sort.SliceStable(products, func(i, j int) bool {
			return collator.CompareString(products[i].Name, products[j].Name) < 0
		})
	case domain.SortNameDesc:
		collator := newNameCollator()
		sort.SliceStable(products, func(i, j int) bool {
			return collator.CompareString(products[i].Name, products[j].Name) > 0
		})
	case domain.SortNewest:
		sort.SliceStable(products, func(i, j int) bool {
			return products[i].CreatedAt.After(products[j].CreatedAt)
		})
	}
}

// newNameCollator builds a locale-aware comparator for product names.
// Collators are stateful, so each sort gets its own.
func newNameCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase)
}

// ActiveFilterLabels renders the human-readable chips shown for each active
// filter, resolving category ids to display names against the category list.
func ActiveFilterLabels(state domain.FilterState, categories []domain.Category) []string {
	labels := []string{}

	if state.Search != "" {
		labels = append(labels, fmt.Sprintf("Search: %q", state.Search))
	}
	if state.Category != "" {
		for _, category := range categories {
			if strconv.FormatUint(uint64(category.ID), 10) == state.Category {
				labels = append(labels, "Category: "+category.Name)
				break
			}
		}
	}
	if state.MinPrice != nil {
		labels = append(labels, "Min Price: $"+state.MinPrice.String())
	}
	if state.MaxPrice != nil {
		labels = append(labels, "Max Price: $"+state.MaxPrice.String())
	}
	if state.InStockOnly {
		labels = append(labels, "In Stock Only")
	}
	if state.Sort != domain.SortNone {
		labels = append(labels, "Sorted: "+sortLabels[state.Sort])
	}

	return labels
}

// CountByCategory reports how many products belong to the given category,
// used for the per-category counters in the filter sidebar.
func CountByCategory(products []domain.Product, categoryID uint) int {
	count := 0
	for _, product := range products {
		if product.CategoryID == categoryID {
			count++
		}
	}
	return count
}
