//go:build wireinject
// +build wireinject

package payment

import (
	"github.com/google/wire"

	"github.com/KativuCraig/manymor-frontend/internal/checkout"
	paymenthttp "github.com/KativuCraig/manymor-frontend/internal/payment/delivery/http"
	"github.com/KativuCraig/manymor-frontend/internal/payment/domain"
	"github.com/KativuCraig/manymor-frontend/internal/payment/poller"
	"github.com/KativuCraig/manymor-frontend/pkg/kvstore"
)

// ProvideNavigationLog provides the shared route transition log
func ProvideNavigationLog() *paymenthttp.NavigationLog {
	return paymenthttp.NewNavigationLog()
}

// ProvideNavigator provides the poller's navigator
func ProvideNavigator(log *paymenthttp.NavigationLog) domain.Navigator {
	return log
}

// ProvideClock provides the production wall clock
func ProvideClock() poller.Clock {
	return poller.SystemClock{}
}

// ProvidePoller provides the payment status poller
func ProvidePoller(source domain.StatusSource, store kvstore.Store, nav domain.Navigator, publisher poller.OutcomePublisher, clock poller.Clock, cfg poller.Config) *poller.Poller {
	return poller.NewPoller(source, store, nav, publisher, clock, cfg)
}

// ProvidePlaceOrderHandler provides the checkout command handler
func ProvidePlaceOrderHandler(gw checkout.Gateway, store kvstore.Store) *checkout.PlaceOrderHandler {
	return checkout.NewPlaceOrderHandler(gw, store)
}

// Wire sets
var PollerSet = wire.NewSet(
	ProvideNavigationLog,
	ProvideNavigator,
	ProvideClock,
	ProvidePoller,
)

var CommandHandlerSet = wire.NewSet(
	ProvidePlaceOrderHandler,
)

var AllHandlersSet = wire.NewSet(
	PollerSet,
	CommandHandlerSet,
)

// InitializeHandler initializes payment handler with all dependencies
func InitializeHandler(deps HandlerDeps) (*paymenthttp.PaymentHandler, error) {
	wire.Build(
		wire.FieldsOf(new(HandlerDeps), "Source", "Gateway", "Store", "Publisher", "Config"),
		AllHandlersSet,
		paymenthttp.NewPaymentHandler,
	)
	return nil, nil
}
