package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/KativuCraig/manymor-frontend/internal/catalog/domain"
	"github.com/KativuCraig/manymor-frontend/internal/catalog/engine"
	"github.com/KativuCraig/manymor-frontend/internal/catalog/usecase/query"
	"github.com/KativuCraig/manymor-frontend/internal/gateway"
	"github.com/KativuCraig/manymor-frontend/internal/web"
	"github.com/KativuCraig/manymor-frontend/pkg/logger"
)

// CatalogHandler serves the derived catalog views. The request query string
// is the source of truth for filter state; the response carries the canonical
// serialization the client replaces its URL with.
type CatalogHandler struct {
	browseHandler *query.BrowseCatalogHandler
	getHandler    *query.GetProductHandler
}

// NewCatalogHandler creates a catalog handler (manual DI)
func NewCatalogHandler(source domain.CatalogSource) *CatalogHandler {
	return &CatalogHandler{
		browseHandler: query.NewBrowseCatalogHandler(source),
		getHandler:    query.NewGetProductHandler(source),
	}
}

// NewCatalogHandlerWithDI creates a catalog handler using dependency injection
func NewCatalogHandlerWithDI(browseHandler *query.BrowseCatalogHandler, getHandler *query.GetProductHandler) *CatalogHandler {
	return &CatalogHandler{
		browseHandler: browseHandler,
		getHandler:    getHandler,
	}
}

// RegisterRoutes registers the catalog routes on the router.
func (h *CatalogHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/catalog", h.BrowseCatalog).Methods(http.MethodGet)
	router.HandleFunc("/api/catalog/products/{id:[0-9]+}", h.GetProduct).Methods(http.MethodGet)
}

type browseResponse struct {
	Items          []domain.Product  `json:"items"`
	TotalCount     int               `json:"total_count"`
	TotalPages     int               `json:"total_pages"`
	Page           int               `json:"page"`
	PageSize       int               `json:"page_size"`
	PageClamped    bool              `json:"page_clamped,omitempty"`
	Categories     []domain.Category `json:"categories"`
	ActiveFilters  []string          `json:"active_filters"`
	CanonicalQuery string            `json:"canonical_query"`
}

// BrowseCatalog handles GET /api/catalog
func (h *CatalogHandler) BrowseCatalog(w http.ResponseWriter, r *http.Request) {
	state := engine.ParseFilterQuery(r.URL.Query())

	result, err := h.browseHandler.Handle(r.Context(), query.BrowseCatalogQuery{Filter: state})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to load catalog")
		web.RespondError(w, http.StatusBadGateway, "Failed to load products")
		return
	}

	web.RespondJSON(w, http.StatusOK, web.Response{
		Success: true,
		Data: browseResponse{
			Items:          result.View.Items,
			TotalCount:     result.View.TotalCount,
			TotalPages:     result.View.TotalPages,
			Page:           result.View.Page,
			PageSize:       result.View.PageSize,
			PageClamped:    result.View.PageClamped,
			Categories:     result.Categories,
			ActiveFilters:  result.ActiveFilters,
			CanonicalQuery: result.CanonicalQuery,
		},
	})
}

// GetProduct handles GET /api/catalog/products/{id}
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	id, err := strconv.ParseUint(vars["id"], 10, 32)
	if err != nil {
		web.RespondError(w, http.StatusBadRequest, "Invalid product ID")
		return
	}

	product, err := h.getHandler.Handle(r.Context(), query.GetProductQuery{ID: uint(id)})
	if err != nil {
		if errors.Is(err, gateway.ErrNotFound) {
			web.RespondError(w, http.StatusNotFound, "Product not found")
			return
		}
		logger.Error(r.Context()).Err(err).Uint64("product_id", id).Msg("Failed to load product")
		web.RespondError(w, http.StatusBadGateway, "Failed to load product")
		return
	}

	web.RespondJSON(w, http.StatusOK, web.Response{
		Success: true,
		Data:    product,
	})
}
