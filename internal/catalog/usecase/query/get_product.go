package query

import (
	"context"
	"fmt"

	"github.com/KativuCraig/manymor-frontend/internal/catalog/domain"
)

// GetProductQuery represents the query to get a single product
type GetProductQuery struct {
	ID uint
}

// GetProductHandler handles get product queries
type GetProductHandler struct {
	source domain.CatalogSource
}

// NewGetProductHandler creates a new get product handler
func NewGetProductHandler(source domain.CatalogSource) *GetProductHandler {
	return &GetProductHandler{source: source}
}

// Handle executes the get product query
func (h *GetProductHandler) Handle(ctx context.Context, query GetProductQuery) (*domain.Product, error) {
	if query.ID == 0 {
		return nil, fmt.Errorf("id is required")
	}

	product, err := h.source.Product(ctx, query.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to load product %d: %w", query.ID, err)
	}

	return product, nil
}
