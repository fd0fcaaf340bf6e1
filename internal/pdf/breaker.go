package pdf

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/sony/gobreaker/v2"

	"resumecanvas/internal/errors"
)

// BreakerConfig configures the circuit breaker around a Renderer.
type BreakerConfig struct {
	Enabled          bool
	MaxRequests      uint32
	Interval         time.Duration
	Timeout          time.Duration
	MinRequests      uint32
	FailureThreshold float64
}

// BreakerRenderer wraps a Renderer with circuit breaker protection. When the
// breaker is open, renders fail immediately with RENDER_UNAVAILABLE.
type BreakerRenderer struct {
	inner Renderer
	cb    *gobreaker.CircuitBreaker[[]byte]
}

// WithBreaker wraps inner according to cfg. A disabled config returns inner
// unchanged.
func WithBreaker(inner Renderer, cfg BreakerConfig, logger *errors.Logger) Renderer {
	if !cfg.Enabled {
		return inner
	}

	settings := gobreaker.Settings{
		Name:        "pdf-renderer",
		MaxRequests: cfg.MaxRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= cfg.MinRequests &&
				failureRatio >= cfg.FailureThreshold
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.Info("Circuit breaker state changed",
				"name", name,
				"from", from.String(),
				"to", to.String())
		},
	}

	return &BreakerRenderer{
		inner: inner,
		cb:    gobreaker.NewCircuitBreaker[[]byte](settings),
	}
}

func (b *BreakerRenderer) RenderHTMLToPDF(ctx context.Context, html string, opts Options) ([]byte, error) {
	out, err := b.cb.Execute(func() ([]byte, error) {
		return b.inner.RenderHTMLToPDF(ctx, html, opts)
	})
	if stderrors.Is(err, gobreaker.ErrOpenState) || stderrors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, errors.NewRenderError(errors.ErrCodeRenderUnavailable,
			"pdf renderer circuit open", err)
	}
	return out, err
}

// Stats reports the breaker state for the service stats endpoint.
func (b *BreakerRenderer) Stats() map[string]any {
	return map[string]any{
		"name":    b.cb.Name(),
		"state":   b.cb.State().String(),
		"counts":  b.cb.Counts(),
		"enabled": true,
	}
}

// Healthy reports whether the breaker is closed.
func (b *BreakerRenderer) Healthy() bool {
	return b.cb.State() == gobreaker.StateClosed
}
