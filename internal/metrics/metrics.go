// Package metrics concentra os coletores Prometheus do serviço.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// StoreAttemptFailures conta tentativas de leitura que falharam, por operação
	StoreAttemptFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_store_attempt_failures_total",
			Help: "Total de tentativas de acesso ao store que falharam",
		},
		[]string{"label"},
	)

	// StoreFallbacks conta operações que esgotaram as tentativas e usaram o valor de fallback
	StoreFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_store_fallbacks_total",
			Help: "Total de operações que esgotaram as tentativas e retornaram o fallback",
		},
		[]string{"label"},
	)

	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "recommend_request_duration_seconds",
			Help:    "Duração de uma geração de recomendações",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"strategy"},
	)

	ResultsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_results_total",
			Help: "Total de itens recomendados, por estratégia",
		},
		[]string{"strategy"},
	)

	PerformanceWriteFailures = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "recommend_performance_write_failures_total",
			Help: "Total de registros de performance descartados por falha na escrita",
		},
	)

	TrendingCacheLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "recommend_trending_cache_lookups_total",
			Help: "Consultas ao cache de trending, por resultado (hit, miss, error)",
		},
		[]string{"result"},
	)
)
