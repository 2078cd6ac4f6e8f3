package domain

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// ProductImage is a single image attached to a product.
type ProductImage struct {
	ID  uint   `json:"id"`
	URL string `json:"image"`
}

// ActivePromotion describes the promotion badge shown on a discounted product.
type ActivePromotion struct {
	ID         uint   `json:"id"`
	Name       string `json:"name"`
	BadgeText  string `json:"badge_text"`
	BadgeColor string `json:"badge_color"`
}

// Product represents a catalog product as served by the API gateway. The
// catalog holds products read-only for the duration of a view; the gateway
// owns the data.
type Product struct {
	ID                 uint             `json:"id"`
	Name               string           `json:"name"`
	Description        string           `json:"description"`
	Price              decimal.Decimal  `json:"price"`
	StockQuantity      int              `json:"stock_quantity"`
	IsActive           bool             `json:"is_active"`
	CategoryID         uint             `json:"category"`
	CategoryName       string           `json:"category_name"`
	Images             []ProductImage   `json:"images"`
	CreatedAt          time.Time        `json:"created_at"`
	HasPromotion       bool             `json:"has_promotion"`
	ActivePromotion    *ActivePromotion `json:"active_promotion,omitempty"`
	PromotionalPrice   *decimal.Decimal `json:"promotional_price,omitempty"`
	DiscountPercentage *decimal.Decimal `json:"discount_percentage,omitempty"`
}

// InStock reports whether the product has stock available.
func (p *Product) InStock() bool {
	return p.StockQuantity > 0
}

// DisplayPrice returns the promotional price when a promotion is active,
// otherwise the regular unit price.
func (p *Product) DisplayPrice() decimal.Decimal {
	if p.HasPromotion && p.PromotionalPrice != nil {
		return *p.PromotionalPrice
	}
	return p.Price
}

// Category is a node in the category tree.
type Category struct {
	ID       uint       `json:"id"`
	Name     string     `json:"name"`
	ParentID *uint      `json:"parent"`
	Children []Category `json:"children,omitempty"`
}

// CatalogSource provides the product and category sets the catalog derives
// its views from.
type CatalogSource interface {
	Products(ctx context.Context) ([]Product, error)
	Categories(ctx context.Context) ([]Category, error)
	Product(ctx context.Context, id uint) (*Product, error)
}
