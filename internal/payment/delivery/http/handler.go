package http

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sync"

	"github.com/gorilla/mux"

	"github.com/KativuCraig/manymor-frontend/internal/checkout"
	"github.com/KativuCraig/manymor-frontend/internal/payment/domain"
	"github.com/KativuCraig/manymor-frontend/internal/payment/poller"
	"github.com/KativuCraig/manymor-frontend/internal/web"
	"github.com/KativuCraig/manymor-frontend/pkg/logger"
)

// NavigationLog records the route transitions the poller schedules so the
// rendering layer can follow them. It implements domain.Navigator.
type NavigationLog struct {
	mu   sync.Mutex
	next string
}

// NewNavigationLog creates an empty navigation log.
func NewNavigationLog() *NavigationLog {
	return &NavigationLog{}
}

// ToOrder records a transition to the order confirmation view.
func (n *NavigationLog) ToOrder(orderID uint) {
	n.set(fmt.Sprintf("/order-confirmation/%d", orderID))
}

// ToCart records a transition back to the cart.
func (n *NavigationLog) ToCart() {
	n.set("/cart")
}

func (n *NavigationLog) set(route string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.next = route
}

// Next returns the pending route transition, if any.
func (n *NavigationLog) Next() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.next
}

// PaymentHandler drives the checkout submission and the payment confirmation
// flow over HTTP.
type PaymentHandler struct {
	placeOrderHandler *checkout.PlaceOrderHandler
	poller            *poller.Poller
	routes            *NavigationLog

	mu     sync.Mutex
	cancel context.CancelFunc
}

// NewPaymentHandler creates a payment handler.
func NewPaymentHandler(placeOrderHandler *checkout.PlaceOrderHandler, p *poller.Poller, routes *NavigationLog) *PaymentHandler {
	return &PaymentHandler{
		placeOrderHandler: placeOrderHandler,
		poller:            p,
		routes:            routes,
	}
}

// RegisterRoutes registers the checkout and payment routes on the router.
func (h *PaymentHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/checkout", h.Checkout).Methods(http.MethodPost)
	router.HandleFunc("/api/payment/return", h.PaymentReturn).Methods(http.MethodGet)
	router.HandleFunc("/api/payment/return", h.Teardown).Methods(http.MethodDelete)
	router.HandleFunc("/api/payment/status", h.PollStatus).Methods(http.MethodGet)
}

// Checkout handles POST /api/checkout
func (h *PaymentHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ShippingAddress string `json:"shipping_address"`
		PaymentMethod   string `json:"payment_method"`
		Notes           string `json:"notes"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		web.RespondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.ShippingAddress == "" {
		web.RespondError(w, http.StatusBadRequest, "Shipping address is required")
		return
	}
	if req.PaymentMethod == "" {
		web.RespondError(w, http.StatusBadRequest, "Payment method is required")
		return
	}

	result, err := h.placeOrderHandler.Handle(r.Context(), checkout.PlaceOrderCommand{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Checkout failed")
		web.RespondError(w, http.StatusBadGateway, "Failed to place order")
		return
	}

	web.RespondJSON(w, http.StatusOK, web.Response{
		Success: true,
		Message: "Order placed",
		Data:    result,
	})
}

type pollSnapshot struct {
	State     domain.PollState `json:"state"`
	NextRoute string           `json:"next_route,omitempty"`
}

// PaymentReturn handles GET /api/payment/return. The first request after the
// gateway redirect starts the polling loop; subsequent requests attach to the
// active loop and read its state.
func (h *PaymentHandler) PaymentReturn(w http.ResponseWriter, r *http.Request) {
	h.mu.Lock()
	ctx, cancel := context.WithCancel(context.Background())
	if err := h.poller.Start(ctx); err != nil {
		// A loop is already active for this marker; do not double-query.
		cancel()
	} else {
		if h.cancel != nil {
			h.cancel()
		}
		h.cancel = cancel
	}
	h.mu.Unlock()

	h.respondSnapshot(w)
}

// PollStatus handles GET /api/payment/status
func (h *PaymentHandler) PollStatus(w http.ResponseWriter, _ *http.Request) {
	h.respondSnapshot(w)
}

// Teardown handles DELETE /api/payment/return. It stops the polling loop
// synchronously; no timer fires afterwards.
func (h *PaymentHandler) Teardown(w http.ResponseWriter, r *http.Request) {
	h.Close()
	logger.Info(r.Context()).Msg("Payment polling torn down")
	web.RespondJSON(w, http.StatusOK, web.Response{
		Success: true,
		Message: "Polling stopped",
	})
}

// Close cancels the active polling loop, if any.
func (h *PaymentHandler) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.cancel != nil {
		h.cancel()
		h.cancel = nil
	}
}

func (h *PaymentHandler) respondSnapshot(w http.ResponseWriter) {
	web.RespondJSON(w, http.StatusOK, web.Response{
		Success: true,
		Data: pollSnapshot{
			State:     h.poller.State(),
			NextRoute: h.routes.Next(),
		},
	})
}
