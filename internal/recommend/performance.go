package recommend

import (
	"context"
	"fmt"

	"github.com/prefeitura-rio/app-recomendacao/internal/metrics"
	"github.com/prefeitura-rio/app-recomendacao/internal/models"
)

// recordPerformance registra a execução em segundo plano. Falhas são apenas logadas.
func (e *Engine) recordPerformance(rec models.PerformanceRecord) {
	metrics.RequestDuration.WithLabelValues(string(rec.Strategy)).Observe(float64(rec.DurationMs) / 1000)
	metrics.ResultsTotal.WithLabelValues(string(rec.Strategy)).Add(float64(rec.ResultCount))

	if e.perf == nil {
		return
	}

	e.pending.Add(1)
	go func() {
		defer e.pending.Done()
		defer func() {
			if r := recover(); r != nil {
				metrics.PerformanceWriteFailures.Inc()
				e.log.Warn("performance record write panicked", "panic", fmt.Sprint(r), "strategy", rec.Strategy)
			}
		}()

		ctx, cancel := context.WithTimeout(context.Background(), e.cfg.PerformanceWrite)
		defer cancel()

		if err := e.perf.SavePerformance(ctx, rec); err != nil {
			metrics.PerformanceWriteFailures.Inc()
			e.log.Warn("performance record discarded", "error", err, "strategy", rec.Strategy)
		}
	}()
}

// Wait bloqueia até que as escritas de performance em andamento terminem ou ctx expire
func (e *Engine) Wait(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		e.pending.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
