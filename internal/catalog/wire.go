//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"

	cataloghttp "github.com/KativuCraig/manymor-frontend/internal/catalog/delivery/http"
	"github.com/KativuCraig/manymor-frontend/internal/catalog/domain"
	"github.com/KativuCraig/manymor-frontend/internal/catalog/usecase/query"
)

// Query Handlers Providers
func ProvideBrowseCatalogHandler(source domain.CatalogSource) *query.BrowseCatalogHandler {
	return query.NewBrowseCatalogHandler(source)
}

func ProvideGetProductHandler(source domain.CatalogSource) *query.GetProductHandler {
	return query.NewGetProductHandler(source)
}

// Wire sets
var QueryHandlerSet = wire.NewSet(
	ProvideBrowseCatalogHandler,
	ProvideGetProductHandler,
)

// InitializeHandler initializes catalog handler with all dependencies
func InitializeHandler(source domain.CatalogSource) (*cataloghttp.CatalogHandler, error) {
	wire.Build(
		QueryHandlerSet,
		cataloghttp.NewCatalogHandlerWithDI,
	)
	return nil, nil
}
