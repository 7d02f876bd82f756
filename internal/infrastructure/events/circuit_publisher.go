package events

import (
	"context"
	"errors"
	"fmt"

	"github.com/riskibarqy/premier-league/internal/platform/resilience"
	"github.com/riskibarqy/premier-league/internal/usecase"
)

// CircuitPublisher stops calling the wrapped publisher after repeated
// failures, so a broker outage costs one fast error per write instead of a
// network timeout.
type CircuitPublisher struct {
	next    usecase.EventPublisher
	breaker *resilience.CircuitBreaker
}

// WithCircuitBreaker wraps next in a breaker built from cfg. A disabled cfg
// returns next unchanged.
func WithCircuitBreaker(next usecase.EventPublisher, cfg resilience.CircuitBreakerConfig) usecase.EventPublisher {
	if !cfg.Enabled {
		return next
	}
	return &CircuitPublisher{
		next:    next,
		breaker: resilience.NewCircuitBreaker(cfg),
	}
}

func (p *CircuitPublisher) PublishPlayerEvent(ctx context.Context, event usecase.PlayerEvent) error {
	err := p.breaker.Do(func() error {
		return p.next.PublishPlayerEvent(ctx, event)
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("publish %s: %w", event.Type, err)
	}
	return err
}

func (p *CircuitPublisher) State() resilience.CircuitState {
	return p.breaker.State()
}
