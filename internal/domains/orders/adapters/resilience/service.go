// Package resilience guards order placement with a circuit breaker and the
// failure-absorbing fallback path. The breaker wraps the whole PlaceOrder
// operation as a single unit, not individual inventory calls: a trip anywhere
// inside validation or commit routes execution to the fallback instead of
// surfacing the error.
package resilience

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/sony/gobreaker/v2"

	"github.com/goshop/orderflow/internal/domains/orders/application"
	"github.com/goshop/orderflow/internal/domains/orders/application/types"
	"github.com/goshop/orderflow/internal/domains/orders/domain"
	"github.com/goshop/orderflow/internal/domains/orders/ports"
)

const breakerName = "order-placement"

// Config carries the breaker tuning knobs.
type Config struct {
	// FailureRatio trips the breaker when the failure rate over the current
	// window reaches it, provided MinRequests samples were observed.
	FailureRatio float64
	// MinRequests is the minimum sample size before the ratio is evaluated.
	MinRequests uint32
	// OpenTimeout is the cooldown before an open breaker lets trial calls
	// through again.
	OpenTimeout time.Duration
	// HalfOpenMaxCalls bounds the trial calls allowed in half-open state.
	HalfOpenMaxCalls uint32
	// Interval is the cyclic period over which closed-state counts roll over.
	Interval time.Duration
}

// DefaultConfig mirrors the production breaker tuning.
func DefaultConfig() Config {
	return Config{
		FailureRatio:     0.5,
		MinRequests:      5,
		OpenTimeout:      10 * time.Second,
		HalfOpenMaxCalls: 1,
		Interval:         60 * time.Second,
	}
}

// Service decorates the orders service with the placement circuit breaker.
// The breaker state is shared across every concurrent PlaceOrder invocation.
type Service struct {
	inner   ports.Service
	repo    ports.Repository
	breaker *gobreaker.CircuitBreaker[*domain.Order]
	logger  *slog.Logger
	now     func() time.Time
}

type Option func(*Service)

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// New wraps the core orders service. The repository is needed directly so the
// fallback can persist FAILED orders even when the inner service was never
// invoked.
func New(inner ports.Service, repo ports.Repository, cfg Config, opts ...Option) *Service {
	s := &Service{inner: inner, repo: repo, now: time.Now}
	for _, opt := range opts {
		if opt != nil {
			opt(s)
		}
	}
	settings := gobreaker.Settings{
		Name:        breakerName,
		MaxRequests: cfg.HalfOpenMaxCalls,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < cfg.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= cfg.FailureRatio
		},
	}
	if s.logger != nil {
		settings.OnStateChange = func(name string, from, to gobreaker.State) {
			s.logger.Warn("placement breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()))
		}
	}
	s.breaker = gobreaker.NewCircuitBreaker[*domain.Order](settings)
	return s
}

// PlaceOrder runs the guarded placement workflow. Every classified failure,
// and every short-circuited call while the breaker is open, is absorbed into
// a persisted FAILED order returned as a successful result. Only unclassified
// faults propagate as errors.
func (s *Service) PlaceOrder(ctx context.Context, input types.PlaceOrderInput) (*domain.Order, error) {
	order, err := s.breaker.Execute(func() (*domain.Order, error) {
		return s.inner.PlaceOrder(ctx, input)
	})
	if err == nil {
		return order, nil
	}
	if !absorbable(err) {
		return nil, err
	}
	return s.placeFallback(ctx, input, err)
}

// GetOrderByID is a read path and is not guarded.
func (s *Service) GetOrderByID(ctx context.Context, id int64) (*domain.Order, error) {
	return s.inner.GetOrderByID(ctx, id)
}

// ListOrders is a read path and is not guarded.
func (s *Service) ListOrders(ctx context.Context) ([]*domain.Order, error) {
	return s.inner.ListOrders(ctx)
}

// State exposes the current breaker state for health reporting.
func (s *Service) State() gobreaker.State {
	return s.breaker.State()
}

func absorbable(err error) bool {
	return application.IsPlacementFailure(err) ||
		errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests)
}

// placeFallback persists a FAILED order carrying the original request lines
// without a price snapshot. It runs on a cancellation-free context so a
// caller timeout mid-commit still leaves a durable record of the failure.
func (s *Service) placeFallback(ctx context.Context, input types.PlaceOrderInput, cause error) (*domain.Order, error) {
	lines := make([]domain.OrderLine, 0, len(input.Items))
	for _, item := range input.Items {
		lines = append(lines, domain.OrderLine{ProductID: item.ProductID, Quantity: item.Quantity})
	}
	order, err := domain.NewFailedOrder(input.UserID, lines, s.now())
	if err != nil {
		return nil, err
	}
	saved, err := s.repo.Save(context.WithoutCancel(ctx), order)
	if err != nil {
		return nil, err
	}
	if s.logger != nil {
		s.logger.LogAttrs(ctx, slog.LevelWarn, "order placement fell back to FAILED",
			slog.Int64("order.id", saved.ID),
			slog.Int64("order.user_id", input.UserID),
			slog.String("cause", cause.Error()))
	}
	return saved, nil
}

var _ ports.Service = (*Service)(nil)
