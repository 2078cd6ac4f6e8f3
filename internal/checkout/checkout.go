// Package checkout submits the cart as an order and records the pending-order
// marker the payment poller later reconciles.
package checkout

import (
	"context"
	"fmt"
	"strconv"

	"github.com/google/uuid"

	"github.com/KativuCraig/manymor-frontend/internal/gateway"
	payment "github.com/KativuCraig/manymor-frontend/internal/payment/domain"
	"github.com/KativuCraig/manymor-frontend/pkg/kvstore"
	"github.com/KativuCraig/manymor-frontend/pkg/logger"
)

// Gateway is the slice of the gateway client the checkout flow uses.
type Gateway interface {
	Checkout(ctx context.Context, req gateway.CheckoutRequest) (*gateway.CheckoutResponse, error)
}

// PlaceOrderCommand represents the command to place an order
type PlaceOrderCommand struct {
	ShippingAddress string
	PaymentMethod   string
	Notes           string
}

// PlaceOrderResult carries the order id and the external payment page the
// client is redirected to.
type PlaceOrderResult struct {
	OrderID         uint   `json:"order_id"`
	RedirectURL     string `json:"redirect_url"`
	ClientReference string `json:"client_reference"`
}

// PlaceOrderHandler handles place order commands. It is the single writer of
// the pending-order marker.
type PlaceOrderHandler struct {
	gw    Gateway
	store kvstore.Store
}

// NewPlaceOrderHandler creates a new place order handler
func NewPlaceOrderHandler(gw Gateway, store kvstore.Store) *PlaceOrderHandler {
	return &PlaceOrderHandler{gw: gw, store: store}
}

// Handle executes the place order command.
func (h *PlaceOrderHandler) Handle(ctx context.Context, cmd PlaceOrderCommand) (*PlaceOrderResult, error) {
	if cmd.ShippingAddress == "" {
		return nil, fmt.Errorf("shipping_address is required")
	}
	if cmd.PaymentMethod == "" {
		return nil, fmt.Errorf("payment_method is required")
	}

	resp, err := h.gw.Checkout(ctx, gateway.CheckoutRequest{
		ShippingAddress: cmd.ShippingAddress,
		PaymentMethod:   cmd.PaymentMethod,
		Notes:           cmd.Notes,
	})
	if err != nil {
		return nil, fmt.Errorf("checkout failed: %w", err)
	}

	reference := resp.ClientReference
	if reference == "" {
		reference = uuid.NewString()
	}

	orderID := strconv.FormatUint(uint64(resp.Order.ID), 10)
	if err := h.store.Set(ctx, payment.PendingOrderKey, orderID); err != nil {
		return nil, fmt.Errorf("failed to persist pending order marker: %w", err)
	}
	if err := h.store.Set(ctx, payment.ClientReferenceKey, reference); err != nil {
		return nil, fmt.Errorf("failed to persist client reference: %w", err)
	}

	logger.Info(ctx).
		Uint("order_id", resp.Order.ID).
		Str("client_reference", reference).
		Msg("Order placed, awaiting payment confirmation")

	return &PlaceOrderResult{
		OrderID:         resp.Order.ID,
		RedirectURL:     resp.RedirectURL,
		ClientReference: reference,
	}, nil
}
