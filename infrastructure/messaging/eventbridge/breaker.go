package eventbridge

import (
	"context"
	"time"

	"reflections/application/ports"
	"reflections/domain/events"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

// BreakerConfig controls when the publisher stops calling the bus
type BreakerConfig struct {
	Name             string
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	FailureThreshold float64
	MinRequests      uint32
}

// DefaultBreakerConfig returns the settings used for the event bus
func DefaultBreakerConfig(name string) BreakerConfig {
	return BreakerConfig{
		Name:             name,
		MaxRequests:      1,
		Interval:         30 * time.Second,
		Timeout:          60 * time.Second,
		FailureThreshold: 0.8,
		MinRequests:      5,
	}
}

// BreakerPublisher guards an EventBus with a circuit breaker. While the
// breaker is open, events are dropped with a warning instead of waiting
// on a failing bus.
type BreakerPublisher struct {
	next    ports.EventBus
	breaker *gobreaker.CircuitBreaker
	logger  *zap.Logger
}

var _ ports.EventBus = (*BreakerPublisher)(nil)

// NewBreakerPublisher wraps next with a circuit breaker
func NewBreakerPublisher(next ports.EventBus, config BreakerConfig, logger *zap.Logger) *BreakerPublisher {
	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        config.Name,
		MaxRequests: config.MaxRequests,
		Interval:    config.Interval,
		Timeout:     config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < config.MinRequests {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= config.FailureThreshold
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Event bus circuit breaker changed state",
				zap.String("breaker", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})

	return &BreakerPublisher{next: next, breaker: breaker, logger: logger}
}

// Publish sends one event through the breaker
func (p *BreakerPublisher) Publish(ctx context.Context, event events.DomainEvent) error {
	return p.PublishBatch(ctx, []events.DomainEvent{event})
}

// PublishBatch sends events through the breaker
func (p *BreakerPublisher) PublishBatch(ctx context.Context, domainEvents []events.DomainEvent) error {
	_, err := p.breaker.Execute(func() (interface{}, error) {
		return nil, p.next.PublishBatch(ctx, domainEvents)
	})
	if err == gobreaker.ErrOpenState || err == gobreaker.ErrTooManyRequests {
		p.logger.Warn("Event bus unavailable, dropping events",
			zap.Int("count", len(domainEvents)),
			zap.Error(err),
		)
	}
	return err
}

// State reports the breaker state, for readiness and tests
func (p *BreakerPublisher) State() gobreaker.State {
	return p.breaker.State()
}
