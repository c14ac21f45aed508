// Package resilience implementa o acesso resiliente ao store: tentativas limitadas com
// backoff exponencial e conversão de falha final em valor de fallback.
package resilience

import (
	"context"
	"errors"
	"time"

	"github.com/prefeitura-rio/app-recomendacao/internal/config"
	"github.com/prefeitura-rio/app-recomendacao/internal/logger"
	"github.com/prefeitura-rio/app-recomendacao/internal/metrics"
)

// ErrNoAttempts é retornado quando o accessor não executou nenhuma tentativa
var ErrNoAttempts = errors.New("nenhuma tentativa executada")

// Accessor guarda a política de tentativas compartilhada pelos componentes do motor.
// Não mantém estado entre chamadas; pode ser usado concorrentemente.
type Accessor struct {
	maxRetries int
	backoff    Backoff
	log        *logger.Logger
}

// NewAccessor cria um accessor a partir da configuração
func NewAccessor(cfg config.ResilienceConfig, log *logger.Logger) *Accessor {
	if log == nil {
		log = logger.NewNop()
	}
	maxRetries := cfg.MaxRetries
	if maxRetries < 1 {
		maxRetries = 1
	}
	return &Accessor{
		maxRetries: maxRetries,
		backoff:    Backoff{Base: cfg.BaseDelay, Max: cfg.MaxDelay},
		log:        log.With("component", "resilience"),
	}
}

// MaxRetries retorna o número total de tentativas por operação
func (a *Accessor) MaxRetries() int {
	return a.maxRetries
}

// Backoff retorna o cronograma de espera usado pelo accessor
func (a *Accessor) Backoff() Backoff {
	return a.backoff
}

// Do executa op até maxRetries vezes, esperando conforme o backoff entre as tentativas.
// Retorna o último erro se todas falharem. Se ctx terminar durante uma espera, retorna
// o erro da última tentativa sem novas execuções.
func Do[T any](ctx context.Context, a *Accessor, label string, op func(context.Context) (T, error)) (T, error) {
	var zero T
	lastErr := ErrNoAttempts

	for attempt := 0; attempt < a.maxRetries; attempt++ {
		result, err := op(ctx)
		if err == nil {
			return result, nil
		}
		lastErr = err
		metrics.StoreAttemptFailures.WithLabelValues(label).Inc()

		if attempt == a.maxRetries-1 {
			a.log.Warn("store operation failed",
				"label", label,
				"attempt", attempt+1,
				"max_retries", a.maxRetries,
				"error", err,
			)
			break
		}

		delay := a.backoff.Delay(attempt)
		a.log.Warn("store operation failed, retrying",
			"label", label,
			"attempt", attempt+1,
			"max_retries", a.maxRetries,
			"delay", delay,
			"error", err,
		)

		if !wait(ctx, delay) {
			a.log.Warn("retry aborted, context done",
				"label", label,
				"attempt", attempt+1,
				"error", ctx.Err(),
			)
			break
		}
	}

	return zero, lastErr
}

// Execute é como Do mas nunca retorna erro: após esgotar as tentativas registra a falha
// e devolve fallback.
func Execute[T any](ctx context.Context, a *Accessor, label string, op func(context.Context) (T, error), fallback T) T {
	result, err := Do(ctx, a, label, op)
	if err != nil {
		metrics.StoreFallbacks.WithLabelValues(label).Inc()
		a.log.Error("store operation exhausted retries, using fallback",
			"label", label,
			"max_retries", a.maxRetries,
			"error", err,
		)
		return fallback
	}
	return result
}

func wait(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-timer.C:
		return true
	}
}
