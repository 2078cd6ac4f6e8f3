package query

import (
	"context"
	"fmt"

	"github.com/KativuCraig/manymor-frontend/internal/catalog/domain"
	"github.com/KativuCraig/manymor-frontend/internal/catalog/engine"
)

// BrowseCatalogQuery represents the query to browse the filtered catalog
type BrowseCatalogQuery struct {
	Filter domain.FilterState
}

// BrowseCatalogResult bundles everything a catalog screen renders: the page
// slice, the category list, the active filter chips and the canonical query
// string the client should replace its URL with.
type BrowseCatalogResult struct {
	View           domain.FilteredView
	Categories     []domain.Category
	ActiveFilters  []string
	Filter         domain.FilterState
	CanonicalQuery string
}

// BrowseCatalogHandler handles browse catalog queries
type BrowseCatalogHandler struct {
	source domain.CatalogSource
}

// NewBrowseCatalogHandler creates a new browse catalog handler
func NewBrowseCatalogHandler(source domain.CatalogSource) *BrowseCatalogHandler {
	return &BrowseCatalogHandler{source: source}
}

// Handle executes the browse catalog query. The full product set is fetched
// from the gateway and filtered client-side, so the view is correct even when
// the gateway ignores filter parameters.
func (h *BrowseCatalogHandler) Handle(ctx context.Context, query BrowseCatalogQuery) (*BrowseCatalogResult, error) {
	products, err := h.source.Products(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}

	categories, err := h.source.Categories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load categories: %w", err)
	}

	view := engine.Apply(products, query.Filter)

	// The effective state carries the possibly clamped page so that the
	// serialized query stays consistent with what is displayed.
	effective := query.Filter
	effective.Page = view.Page

	return &BrowseCatalogResult{
		View:           view,
		Categories:     categories,
		ActiveFilters:  engine.ActiveFilterLabels(effective, categories),
		Filter:         effective,
		CanonicalQuery: engine.EncodeFilterQuery(effective).Encode(),
	}, nil
}
