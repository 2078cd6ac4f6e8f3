package checkout

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/KativuCraig/manymor-frontend/internal/gateway"
	payment "github.com/KativuCraig/manymor-frontend/internal/payment/domain"
	"github.com/KativuCraig/manymor-frontend/pkg/kvstore"
)

type stubGateway struct {
	resp *gateway.CheckoutResponse
	err  error
	got  gateway.CheckoutRequest
}

func (s *stubGateway) Checkout(_ context.Context, req gateway.CheckoutRequest) (*gateway.CheckoutResponse, error) {
	s.got = req
	return s.resp, s.err
}

func TestPlaceOrderWritesMarker(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	gw := &stubGateway{resp: &gateway.CheckoutResponse{
		Order:           gateway.Order{ID: 42, Status: gateway.OrderPlaced},
		RedirectURL:     "https://pay.example/session/1",
		ClientReference: "ref-42",
	}}

	handler := NewPlaceOrderHandler(gw, store)
	result, err := handler.Handle(ctx, PlaceOrderCommand{
		ShippingAddress: "12 Main St",
		PaymentMethod:   "card",
		Notes:           "ring the bell",
	})
	require.NoError(t, err)
	require.Equal(t, uint(42), result.OrderID)
	require.Equal(t, "https://pay.example/session/1", result.RedirectURL)
	require.Equal(t, "ref-42", result.ClientReference)
	require.Equal(t, "ring the bell", gw.got.Notes)

	orderID, err := store.Get(ctx, payment.PendingOrderKey)
	require.NoError(t, err)
	require.Equal(t, "42", orderID)

	reference, err := store.Get(ctx, payment.ClientReferenceKey)
	require.NoError(t, err)
	require.Equal(t, "ref-42", reference)
}

func TestPlaceOrderGeneratesReference(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	gw := &stubGateway{resp: &gateway.CheckoutResponse{
		Order: gateway.Order{ID: 7},
	}}

	result, err := NewPlaceOrderHandler(gw, store).Handle(ctx, PlaceOrderCommand{
		ShippingAddress: "12 Main St",
		PaymentMethod:   "card",
	})
	require.NoError(t, err)
	require.NotEmpty(t, result.ClientReference)

	reference, err := store.Get(ctx, payment.ClientReferenceKey)
	require.NoError(t, err)
	require.Equal(t, result.ClientReference, reference)
}

func TestPlaceOrderValidation(t *testing.T) {
	store := kvstore.NewMemoryStore()
	handler := NewPlaceOrderHandler(&stubGateway{}, store)

	_, err := handler.Handle(context.Background(), PlaceOrderCommand{PaymentMethod: "card"})
	require.Error(t, err)

	_, err = handler.Handle(context.Background(), PlaceOrderCommand{ShippingAddress: "12 Main St"})
	require.Error(t, err)

	_, markerErr := store.Get(context.Background(), payment.PendingOrderKey)
	require.ErrorIs(t, markerErr, kvstore.ErrKeyNotFound, "no marker without a placed order")
}

func TestPlaceOrderGatewayFailure(t *testing.T) {
	store := kvstore.NewMemoryStore()
	gw := &stubGateway{err: errors.New("gateway down")}

	_, err := NewPlaceOrderHandler(gw, store).Handle(context.Background(), PlaceOrderCommand{
		ShippingAddress: "12 Main St",
		PaymentMethod:   "card",
	})
	require.Error(t, err)

	_, markerErr := store.Get(context.Background(), payment.PendingOrderKey)
	require.ErrorIs(t, markerErr, kvstore.ErrKeyNotFound)
}
