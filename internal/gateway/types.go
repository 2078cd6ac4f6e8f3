package gateway

import (
	"time"

	"github.com/shopspring/decimal"

	catalog "github.com/KativuCraig/manymor-frontend/internal/catalog/domain"
)

// Order statuses as reported by the gateway.
const (
	OrderPlaced     = "PLACED"
	OrderPacked     = "PACKED"
	OrderDispatched = "DISPATCHED"
	OrderInTransit  = "IN_TRANSIT"
	OrderDelivered  = "DELIVERED"
)

// CartItem is a product with its quantity in the cart.
type CartItem struct {
	ID       uint            `json:"id"`
	Product  catalog.Product `json:"product"`
	Quantity int             `json:"quantity"`
}

// Cart is the current user's shopping cart.
type Cart struct {
	ID    uint            `json:"id"`
	Items []CartItem      `json:"items"`
	Total decimal.Decimal `json:"total"`
}

// OrderItem is a purchased line item with the price at purchase time.
type OrderItem struct {
	ID        uint            `json:"id"`
	Product   catalog.Product `json:"product"`
	Quantity  int             `json:"quantity"`
	UnitPrice decimal.Decimal `json:"unit_price"`
}

// Order is a placed order with its fulfilment and payment status.
type Order struct {
	ID            uint            `json:"id"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	Items         []OrderItem     `json:"items"`
	CreatedAt     time.Time       `json:"created_at"`
}

// Delivery is the tracking record of an order.
type Delivery struct {
	ID                uint      `json:"id"`
	OrderID           uint      `json:"order"`
	Status            string    `json:"status"`
	EstimatedDelivery *string   `json:"estimated_delivery"` // YYYY-MM-DD
	UpdatedAt         time.Time `json:"updated_at"`
}

// CheckoutRequest is the order submission payload.
type CheckoutRequest struct {
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method"`
	Notes           string `json:"notes,omitempty"`
}

// CheckoutResponse carries the placed order plus the external payment page
// the client must redirect to.
type CheckoutResponse struct {
	Order           Order  `json:"order"`
	RedirectURL     string `json:"redirect_url"`
	ClientReference string `json:"client_reference"`
}

// paymentStatusCheck mirrors the payment-status endpoint response shape.
type paymentStatusCheck struct {
	Order struct {
		ID            uint   `json:"id"`
		PaymentStatus string `json:"payment_status"`
	} `json:"order"`
}

// User is the authenticated account.
type User struct {
	ID         uint      `json:"id"`
	Email      string    `json:"email"`
	Phone      string    `json:"phone"`
	Role       string    `json:"role"` // ADMIN or CUSTOMER
	FirstName  string    `json:"first_name,omitempty"`
	LastName   string    `json:"last_name,omitempty"`
	DateJoined time.Time `json:"date_joined"`
	IsActive   bool      `json:"is_active"`
}

// UserProfile is the editable profile record.
type UserProfile struct {
	ID          uint   `json:"id"`
	Email       string `json:"email"`
	FirstName   string `json:"first_name"`
	LastName    string `json:"last_name"`
	PhoneNumber string `json:"phone_number"`
	Role        string `json:"role"`
}

// Address is a saved shipping address.
type Address struct {
	ID          uint   `json:"id"`
	Label       string `json:"label"`
	City        string `json:"city"`
	AddressLine string `json:"address_line"`
	IsDefault   bool   `json:"is_default"`
}

// AuthResponse carries the issued token pair alongside the user.
type AuthResponse struct {
	User    User   `json:"user"`
	Access  string `json:"access"`
	Refresh string `json:"refresh"`
}

// AdminSummary is the back-office dashboard headline numbers.
type AdminSummary struct {
	TotalOrders    int             `json:"total_orders"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalCustomers int             `json:"total_customers"`
	TotalProducts  int             `json:"total_products"`
	ActiveProducts int             `json:"active_products,omitempty"`
	LowStockCount  int             `json:"low_stock_count"`
	RecentOrders   int             `json:"recent_orders"`
	PendingOrders  int             `json:"pending_orders"`
}

// DailySales is one day of the sales time series.
type DailySales struct {
	Date   string          `json:"date"`
	Sales  decimal.Decimal `json:"sales"`
	Orders int             `json:"orders"`
}

// SalesByStatus aggregates orders by status.
type SalesByStatus struct {
	Status  string          `json:"status"`
	Count   int             `json:"count"`
	Revenue decimal.Decimal `json:"revenue"`
}

// TopProduct is a best-seller entry.
type TopProduct struct {
	ID           uint            `json:"id"`
	Name         string          `json:"name"`
	TotalSold    int             `json:"total_sold"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	Product      catalog.Product `json:"product"`
}

// AdminSales is the sales analytics response.
type AdminSales struct {
	DailySales    []DailySales    `json:"daily_sales"`
	SalesByStatus []SalesByStatus `json:"sales_by_status"`
	TopProducts   []TopProduct    `json:"top_products"`
}

// StockAlertProduct is a product at or below its stock threshold.
type StockAlertProduct struct {
	ID               uint                   `json:"id"`
	Name             string                 `json:"name"`
	CategoryName     string                 `json:"category_name"`
	CurrentStock     int                    `json:"current_stock"`
	Price            decimal.Decimal        `json:"price"`
	Images           []catalog.ProductImage `json:"images"`
	MinimumThreshold int                    `json:"minimum_threshold"`
}

// StockAlerts groups the low-stock and out-of-stock products.
type StockAlerts struct {
	LowStock   []StockAlertProduct `json:"low_stock"`
	OutOfStock []StockAlertProduct `json:"out_of_stock"`
}
