package domain

import (
	"context"
)

// Status is the gateway-reported payment status of an order.
type Status string

// Payment statuses. PENDING and INITIATED are in-flight; the rest are
// terminal.
const (
	StatusPending   Status = "PENDING"
	StatusInitiated Status = "INITIATED"
	StatusPaid      Status = "PAID"
	StatusFailed    Status = "FAILED"
	StatusCancelled Status = "CANCELLED"
	StatusUnknown   Status = "UNKNOWN"
)

// ParseStatus maps a raw gateway value to a Status. Unrecognized values map
// to StatusUnknown.
func ParseStatus(raw string) Status {
	switch Status(raw) {
	case StatusPending, StatusInitiated, StatusPaid, StatusFailed, StatusCancelled:
		return Status(raw)
	default:
		return StatusUnknown
	}
}

// InFlight reports whether the payment is still being processed.
func (s Status) InFlight() bool {
	return s == StatusPending || s == StatusInitiated
}

// Terminal reports whether polling must stop at this status.
func (s Status) Terminal() bool {
	return !s.InFlight()
}

// Keys of the client-persisted pending-order marker. The checkout flow is the
// single writer; the poller reads and clears it.
const (
	PendingOrderKey    = "pendingOrderId"
	ClientReferenceKey = "clientReference"
)

// Action is the follow-up affordance surfaced alongside a terminal state.
type Action string

const (
	ActionNone         Action = ""
	ActionViewOrder    Action = "view_order"
	ActionRetry        Action = "retry"
	ActionCheckHistory Action = "check_history"
)

// PollState is the immutable snapshot of the payment confirmation flow that
// the rendering layer consumes.
type PollState struct {
	OrderID       uint   `json:"order_id,omitempty"`
	Status        Status `json:"status"`
	Attempts      int    `json:"attempts"`
	MaxAttempts   int    `json:"max_attempts"`
	Checking      bool   `json:"checking"`
	MarkerMissing bool   `json:"marker_missing,omitempty"`
	Message       string `json:"message,omitempty"`
	Action        Action `json:"action,omitempty"`
}

// StatusSource reports the current payment status of an order.
type StatusSource interface {
	PaymentStatus(ctx context.Context, orderID uint) (Status, error)
}

// Navigator receives the route transitions the poller schedules once a
// terminal state is reached.
type Navigator interface {
	ToOrder(orderID uint)
	ToCart()
}
