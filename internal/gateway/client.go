// Package gateway is the REST client for the platform API gateway. Every
// remote data set the storefront renders is consumed through it.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	catalog "github.com/KativuCraig/manymor-frontend/internal/catalog/domain"
	payment "github.com/KativuCraig/manymor-frontend/internal/payment/domain"
	"github.com/KativuCraig/manymor-frontend/pkg/logger"
)

// ErrNotFound is returned when the gateway reports a missing resource.
var ErrNotFound = errors.New("not found")

// TokenProvider supplies the bearer token attached to authenticated requests.
type TokenProvider interface {
	AccessToken(ctx context.Context) (string, bool)
}

// Client talks JSON over HTTPS to the API gateway.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  TokenProvider // optional
}

// NewClient creates a gateway client. tokens may be nil for anonymous use.
func NewClient(baseURL string, timeout time.Duration, tokens TokenProvider) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		http: &http.Client{
			Timeout:   timeout,
			Transport: otelhttp.NewTransport(http.DefaultTransport),
		},
		tokens: tokens,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	endpoint := c.baseURL + path
	if len(query) > 0 {
		endpoint += "?" + query.Encode()
	}

	var payload *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		payload = bytes.NewReader(data)
	} else {
		payload = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, endpoint, payload)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.tokens != nil {
		if token, ok := c.tokens.AccessToken(ctx); ok {
			req.Header.Set("Authorization", "Bearer "+token)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("gateway request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return fmt.Errorf("%s %s: %w", method, path, ErrNotFound)
	}
	if resp.StatusCode >= http.StatusBadRequest {
		var apiErr struct {
			Error   string `json:"error"`
			Message string `json:"message"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&apiErr)
		message := apiErr.Error
		if message == "" {
			message = apiErr.Message
		}
		logger.Warn(ctx).
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Str("error", message).
			Msg("Gateway returned an error")
		return fmt.Errorf("gateway returned status %d: %s", resp.StatusCode, message)
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// Products fetches the full product listing. Filtering happens client-side,
// so the unfiltered set is always correct input.
func (c *Client) Products(ctx context.Context) ([]catalog.Product, error) {
	var products []catalog.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/", nil, nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

// Categories fetches the category tree.
func (c *Client) Categories(ctx context.Context) ([]catalog.Category, error) {
	var categories []catalog.Category
	if err := c.do(ctx, http.MethodGet, "/api/categories/", nil, nil, &categories); err != nil {
		return nil, err
	}
	return categories, nil
}

// Product fetches a single product by id.
func (c *Client) Product(ctx context.Context, id uint) (*catalog.Product, error) {
	var product catalog.Product
	path := fmt.Sprintf("/api/products/%d/", id)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// Cart fetches the current user's cart.
func (c *Client) Cart(ctx context.Context) (*Cart, error) {
	var cart Cart
	if err := c.do(ctx, http.MethodGet, "/api/cart/", nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddToCart adds quantity of a product to the cart.
func (c *Client) AddToCart(ctx context.Context, productID uint, quantity int) (*Cart, error) {
	body := map[string]any{"product_id": productID, "quantity": quantity}
	var cart Cart
	if err := c.do(ctx, http.MethodPost, "/api/cart/add/", nil, body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// UpdateCartItem changes the quantity of a cart line.
func (c *Client) UpdateCartItem(ctx context.Context, itemID uint, quantity int) (*Cart, error) {
	body := map[string]any{"quantity": quantity}
	var cart Cart
	path := fmt.Sprintf("/api/cart/update/%d/", itemID)
	if err := c.do(ctx, http.MethodPut, path, nil, body, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// RemoveCartItem deletes a cart line.
func (c *Client) RemoveCartItem(ctx context.Context, itemID uint) (*Cart, error) {
	var cart Cart
	path := fmt.Sprintf("/api/cart/remove/%d/", itemID)
	if err := c.do(ctx, http.MethodDelete, path, nil, nil, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// Checkout submits the cart as an order. The response carries the external
// payment page URL the client is redirected to.
func (c *Client) Checkout(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	var resp CheckoutResponse
	if err := c.do(ctx, http.MethodPost, "/api/orders/checkout/", nil, req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Orders fetches the current user's orders.
func (c *Client) Orders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/api/orders/", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// Order fetches a single order by id.
func (c *Client) Order(ctx context.Context, orderID uint) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/api/orders/%d/", orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder cancels an order still in PLACED status.
func (c *Client) CancelOrder(ctx context.Context, orderID uint) (*Order, error) {
	var order Order
	path := fmt.Sprintf("/api/orders/%d/cancel/", orderID)
	if err := c.do(ctx, http.MethodPut, path, nil, struct{}{}, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// PaymentStatus reports the gateway-side payment status of an order.
func (c *Client) PaymentStatus(ctx context.Context, orderID uint) (payment.Status, error) {
	var check paymentStatusCheck
	path := fmt.Sprintf("/api/orders/%d/payment-status/", orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &check); err != nil {
		return payment.StatusUnknown, err
	}
	return payment.ParseStatus(check.Order.PaymentStatus), nil
}

// Delivery fetches the delivery tracking record of an order.
func (c *Client) Delivery(ctx context.Context, orderID uint) (*Delivery, error) {
	var delivery Delivery
	path := fmt.Sprintf("/api/delivery/%d/", orderID)
	if err := c.do(ctx, http.MethodGet, path, nil, nil, &delivery); err != nil {
		return nil, err
	}
	return &delivery, nil
}

// UpdateDeliveryStatus updates the delivery status of an order (admin only).
func (c *Client) UpdateDeliveryStatus(ctx context.Context, orderID uint, status, notes string) (*Delivery, error) {
	body := map[string]any{"status": status, "notes": notes}
	var delivery Delivery
	path := fmt.Sprintf("/api/delivery/%d/update_status/", orderID)
	if err := c.do(ctx, http.MethodPut, path, nil, body, &delivery); err != nil {
		return nil, err
	}
	return &delivery, nil
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, email, password string) (*AuthResponse, error) {
	body := map[string]any{"email": email, "password": password}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/login/", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Register creates a new account.
func (c *Client) Register(ctx context.Context, email, password, phone string) (*AuthResponse, error) {
	body := map[string]any{"email": email, "password": password, "phone": phone}
	var resp AuthResponse
	if err := c.do(ctx, http.MethodPost, "/api/auth/register/", nil, body, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CurrentUser fetches the authenticated user.
func (c *Client) CurrentUser(ctx context.Context) (*User, error) {
	var user User
	if err := c.do(ctx, http.MethodGet, "/api/auth/me/", nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// Profile fetches the editable profile.
func (c *Client) Profile(ctx context.Context) (*UserProfile, error) {
	var profile UserProfile
	if err := c.do(ctx, http.MethodGet, "/api/auth/profile/", nil, nil, &profile); err != nil {
		return nil, err
	}
	return &profile, nil
}

// UpdateProfile updates the editable profile.
func (c *Client) UpdateProfile(ctx context.Context, profile UserProfile) (*UserProfile, error) {
	var updated UserProfile
	if err := c.do(ctx, http.MethodPut, "/api/auth/profile/", nil, profile, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// Addresses fetches the saved shipping addresses.
func (c *Client) Addresses(ctx context.Context) ([]Address, error) {
	var addresses []Address
	if err := c.do(ctx, http.MethodGet, "/api/auth/addresses/", nil, nil, &addresses); err != nil {
		return nil, err
	}
	return addresses, nil
}

// CreateAddress saves a new shipping address.
func (c *Client) CreateAddress(ctx context.Context, address Address) (*Address, error) {
	var created Address
	if err := c.do(ctx, http.MethodPost, "/api/auth/addresses/", nil, address, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// DeleteAddress removes a saved shipping address.
func (c *Client) DeleteAddress(ctx context.Context, id uint) error {
	path := fmt.Sprintf("/api/auth/addresses/%d/", id)
	return c.do(ctx, http.MethodDelete, path, nil, nil, nil)
}

// AdminSummary fetches the back-office dashboard headline numbers.
func (c *Client) AdminSummary(ctx context.Context) (*AdminSummary, error) {
	var summary AdminSummary
	if err := c.do(ctx, http.MethodGet, "/api/admin/summary/", nil, nil, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}

// AdminOrders fetches every order across all users (admin only).
func (c *Client) AdminOrders(ctx context.Context) ([]Order, error) {
	var orders []Order
	if err := c.do(ctx, http.MethodGet, "/api/admin/orders/", nil, nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// AdminSales fetches sales analytics for the last days.
func (c *Client) AdminSales(ctx context.Context, days int) (*AdminSales, error) {
	query := url.Values{}
	query.Set("days", strconv.Itoa(days))
	var sales AdminSales
	if err := c.do(ctx, http.MethodGet, "/api/admin/sales/", query, nil, &sales); err != nil {
		return nil, err
	}
	return &sales, nil
}

// StockAlerts fetches products at or below the stock threshold.
func (c *Client) StockAlerts(ctx context.Context, threshold int) (*StockAlerts, error) {
	query := url.Values{}
	query.Set("threshold", strconv.Itoa(threshold))
	var alerts StockAlerts
	if err := c.do(ctx, http.MethodGet, "/api/admin/stock-alerts/", query, nil, &alerts); err != nil {
		return nil, err
	}
	return &alerts, nil
}

// Customers fetches all users (admin only).
func (c *Client) Customers(ctx context.Context) ([]User, error) {
	var users []User
	if err := c.do(ctx, http.MethodGet, "/api/auth/users/", nil, nil, &users); err != nil {
		return nil, err
	}
	return users, nil
}

// UpdateUserRole changes a user's role (admin only).
func (c *Client) UpdateUserRole(ctx context.Context, userID uint, role string) (*User, error) {
	body := map[string]any{"role": role}
	var user User
	path := fmt.Sprintf("/api/admin/users/%d/role/", userID)
	if err := c.do(ctx, http.MethodPut, path, nil, body, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
