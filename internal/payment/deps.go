// Package payment wires the payment confirmation flow: the checkout command,
// the status poller and their HTTP delivery.
package payment

import (
	"github.com/KativuCraig/manymor-frontend/internal/checkout"
	"github.com/KativuCraig/manymor-frontend/internal/payment/domain"
	"github.com/KativuCraig/manymor-frontend/internal/payment/poller"
	"github.com/KativuCraig/manymor-frontend/pkg/kvstore"
)

// HandlerDeps carries the external dependencies of the payment handler.
// Publisher may be nil when event publishing is disabled.
type HandlerDeps struct {
	Source    domain.StatusSource
	Gateway   checkout.Gateway
	Store     kvstore.Store
	Publisher poller.OutcomePublisher
	Config    poller.Config
}
