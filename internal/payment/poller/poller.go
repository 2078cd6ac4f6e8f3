// Package poller reconciles an externally-processed payment with the client's
// order view: it re-queries the gateway on a flat interval until a terminal
// status is reached or the attempt budget is exhausted.
package poller

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/KativuCraig/manymor-frontend/internal/payment/domain"
	"github.com/KativuCraig/manymor-frontend/kafka"
	"github.com/KativuCraig/manymor-frontend/pkg/kvstore"
	"github.com/KativuCraig/manymor-frontend/pkg/logger"
)

// ErrAlreadyRunning is returned when Start is called while a polling loop is
// active. Duplicate mounts must not double-query the gateway.
var ErrAlreadyRunning = errors.New("payment poller already running")

var (
	pollAttempts = promauto.NewCounter(prometheus.CounterOpts{
		Name: "storefront_payment_poll_attempts_total",
		Help: "Total number of payment status queries issued by the poller",
	})
	pollOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "storefront_payment_poll_outcomes_total",
		Help: "Terminal payment poll outcomes by status",
	}, []string{"status"})
)

// Clock abstracts timer scheduling so tests can drive the poll loop
// deterministically.
type Clock interface {
	After(d time.Duration) <-chan time.Time
}

// SystemClock is the wall-clock Clock used in production.
type SystemClock struct{}

// After waits for the duration to elapse.
func (SystemClock) After(d time.Duration) <-chan time.Time {
	return time.After(d)
}

// OutcomePublisher publishes the terminal outcome of a payment confirmation.
type OutcomePublisher interface {
	PublishPaymentOutcome(ctx context.Context, event kafka.PaymentOutcomeEvent) error
}

// Config bounds the polling loop. The defaults mirror the gateway's short
// processing window: 20 attempts every 3 seconds, one minute in total.
type Config struct {
	Interval           time.Duration // delay between status queries
	MaxAttempts        int           // total request budget, immediate query included
	SuccessDelay       time.Duration // pause before navigating after PAID
	MissingMarkerDelay time.Duration // pause before redirecting when no marker exists
}

// DefaultConfig returns the production polling configuration.
func DefaultConfig() Config {
	return Config{
		Interval:           3 * time.Second,
		MaxAttempts:        20,
		SuccessDelay:       2 * time.Second,
		MissingMarkerDelay: 3 * time.Second,
	}
}

func (c Config) withDefaults() Config {
	defaults := DefaultConfig()
	if c.Interval <= 0 {
		c.Interval = defaults.Interval
	}
	if c.MaxAttempts <= 0 {
		c.MaxAttempts = defaults.MaxAttempts
	}
	if c.SuccessDelay <= 0 {
		c.SuccessDelay = defaults.SuccessDelay
	}
	if c.MissingMarkerDelay <= 0 {
		c.MissingMarkerDelay = defaults.MissingMarkerDelay
	}
	return c
}

// Poller drives the payment confirmation flow for the pending order marker.
// Requests are serialized: the next query fires only after the interval
// elapses, never concurrently with an outstanding one.
type Poller struct {
	source    domain.StatusSource
	store     kvstore.Store
	nav       domain.Navigator
	publisher OutcomePublisher // optional
	clock     Clock
	cfg       Config

	running atomic.Bool
	mu      sync.Mutex
	state   domain.PollState
}

// NewPoller creates a poller. publisher may be nil when event publishing is
// disabled.
func NewPoller(source domain.StatusSource, store kvstore.Store, nav domain.Navigator, publisher OutcomePublisher, clock Clock, cfg Config) *Poller {
	if clock == nil {
		clock = SystemClock{}
	}
	return &Poller{
		source:    source,
		store:     store,
		nav:       nav,
		publisher: publisher,
		clock:     clock,
		cfg:       cfg.withDefaults(),
	}
}

// Start reads the pending-order marker and launches the polling loop in the
// background. Without a marker no request is issued: the state becomes an
// error-terminal display and a redirect back to the cart is scheduled.
// Cancelling ctx tears the loop down; no timer fires afterwards. A second
// Start while a loop is active returns ErrAlreadyRunning.
func (p *Poller) Start(ctx context.Context) error {
	if !p.running.CompareAndSwap(false, true) {
		return ErrAlreadyRunning
	}

	raw, err := p.store.Get(ctx, domain.PendingOrderKey)
	if err == nil {
		if orderID, parseErr := strconv.ParseUint(raw, 10, 32); parseErr == nil {
			p.setState(domain.PollState{
				OrderID:     uint(orderID),
				Status:      domain.StatusPending,
				MaxAttempts: p.cfg.MaxAttempts,
				Checking:    true,
			})

			logger.Info(ctx).
				Uint64("order_id", orderID).
				Int("max_attempts", p.cfg.MaxAttempts).
				Dur("interval", p.cfg.Interval).
				Msg("Payment status polling started")

			go p.run(ctx, uint(orderID))
			return nil
		}
	}

	p.setState(domain.PollState{
		Status:        domain.StatusPending,
		MaxAttempts:   p.cfg.MaxAttempts,
		MarkerMissing: true,
		Message:       "No pending order found. Please complete checkout first.",
		Action:        domain.ActionRetry,
	})

	logger.Warn(ctx).Msg("No pending order marker, scheduling redirect to cart")

	go func() {
		defer p.running.Store(false)
		select {
		case <-ctx.Done():
		case <-p.clock.After(p.cfg.MissingMarkerDelay):
			p.nav.ToCart()
		}
	}()
	return nil
}

// State returns a snapshot of the current poll state.
func (p *Poller) State() domain.PollState {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}

// Running reports whether a polling loop is active.
func (p *Poller) Running() bool {
	return p.running.Load()
}

func (p *Poller) setState(state domain.PollState) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.state = state
}

func (p *Poller) run(ctx context.Context, orderID uint) {
	defer p.running.Store(false)

	for {
		if done := p.poll(ctx, orderID); done {
			return
		}

		select {
		case <-ctx.Done():
			return
		case <-p.clock.After(p.cfg.Interval):
		}
	}
}

// poll issues one status query and applies the transition rules. It returns
// true once polling must stop.
func (p *Poller) poll(ctx context.Context, orderID uint) bool {
	if ctx.Err() != nil {
		return true
	}

	status, err := p.source.PaymentStatus(ctx, orderID)
	if ctx.Err() != nil {
		// Torn down mid-request; the response no longer matters.
		return true
	}

	pollAttempts.Inc()

	p.mu.Lock()
	p.state.Attempts++
	attempts := p.state.Attempts

	if err != nil {
		// Transport errors are swallowed without a state transition unless
		// this attempt exhausts the budget.
		if attempts < p.cfg.MaxAttempts {
			p.mu.Unlock()
			logger.Warn(ctx).
				Err(err).
				Uint("order_id", orderID).
				Int("attempt", attempts).
				Msg("Payment status check failed")
			return false
		}
		p.state.Status = domain.StatusUnknown
		p.state.Checking = false
		p.state.Message = "Unable to verify payment status. Please check your order history or contact support."
		p.state.Action = domain.ActionCheckHistory
		p.mu.Unlock()

		p.publishOutcome(ctx, orderID, domain.StatusUnknown, attempts)
		return true
	}

	p.state.Status = status

	switch {
	case status == domain.StatusPaid:
		p.state.Checking = false
		p.state.Message = "Payment completed successfully."
		p.state.Action = domain.ActionViewOrder
		p.mu.Unlock()

		logger.Info(ctx).Uint("order_id", orderID).Int("attempts", attempts).Msg("Payment confirmed")
		p.clearMarkerAndPublish(ctx, orderID, status, attempts)

		// Let the success message register before moving the user on.
		select {
		case <-ctx.Done():
		case <-p.clock.After(p.cfg.SuccessDelay):
			p.nav.ToOrder(orderID)
		}
		return true

	case status == domain.StatusFailed || status == domain.StatusCancelled:
		p.state.Checking = false
		p.state.Message = "Payment was not completed. Please try again."
		p.state.Action = domain.ActionRetry
		p.mu.Unlock()

		logger.Warn(ctx).Uint("order_id", orderID).Str("status", string(status)).Msg("Payment failed or cancelled")
		p.publishOutcome(ctx, orderID, status, attempts)
		return true

	case status.Terminal():
		p.state.Checking = false
		p.state.Message = "Unable to verify payment status. Please check your order history or contact support."
		p.state.Action = domain.ActionCheckHistory
		p.mu.Unlock()

		p.publishOutcome(ctx, orderID, status, attempts)
		return true

	default:
		// Still in flight.
		if attempts >= p.cfg.MaxAttempts {
			p.state.Status = domain.StatusUnknown
			p.state.Checking = false
			p.state.Message = "Payment verification is taking longer than expected. Please check your order history."
			p.state.Action = domain.ActionCheckHistory
			p.mu.Unlock()

			logger.Warn(ctx).Uint("order_id", orderID).Int("attempts", attempts).Msg("Payment poll attempts exhausted")
			p.publishOutcome(ctx, orderID, domain.StatusUnknown, attempts)
			return true
		}
		p.mu.Unlock()
		return false
	}
}

// clearMarkerAndPublish removes the pending-order marker (the poller is its
// single reader-and-clearer) and publishes the PAID outcome.
func (p *Poller) clearMarkerAndPublish(ctx context.Context, orderID uint, status domain.Status, attempts int) {
	reference, _ := p.store.Get(ctx, domain.ClientReferenceKey)

	if err := p.store.Delete(ctx, domain.PendingOrderKey); err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to clear pending order marker")
	}
	if err := p.store.Delete(ctx, domain.ClientReferenceKey); err != nil {
		logger.Warn(ctx).Err(err).Msg("Failed to clear client reference")
	}

	p.publishOutcomeEvent(ctx, orderID, reference, status, attempts)
}

func (p *Poller) publishOutcome(ctx context.Context, orderID uint, status domain.Status, attempts int) {
	reference, _ := p.store.Get(ctx, domain.ClientReferenceKey)
	p.publishOutcomeEvent(ctx, orderID, reference, status, attempts)
}

func (p *Poller) publishOutcomeEvent(ctx context.Context, orderID uint, reference string, status domain.Status, attempts int) {
	pollOutcomes.WithLabelValues(string(status)).Inc()

	if p.publisher == nil {
		return
	}

	event := kafka.PaymentOutcomeEvent{
		OrderID:         orderID,
		ClientReference: reference,
		Status:          string(status),
		Attempts:        attempts,
	}
	if err := p.publisher.PublishPaymentOutcome(ctx, event); err != nil {
		logger.Warn(ctx).Err(err).Uint("order_id", orderID).Msg("Failed to publish payment outcome event")
	}
}
