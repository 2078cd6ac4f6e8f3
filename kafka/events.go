package kafka

import "time"

// Topics
const (
	TopicPaymentOutcome = "storefront.payment.outcome"
)

// Event types
const (
	EventTypePaymentOutcome = "payment.outcome"
)

// PaymentOutcomeEvent is emitted when the payment confirmation flow reaches a
// terminal state, for downstream order analytics.
type PaymentOutcomeEvent struct {
	EventID         string    `json:"event_id"`
	EventType       string    `json:"event_type"`
	OrderID         uint      `json:"order_id"`
	ClientReference string    `json:"client_reference,omitempty"`
	Status          string    `json:"status"`
	Attempts        int       `json:"attempts"`
	Timestamp       time.Time `json:"timestamp"`
}
