package recommend

import (
	"context"
	"sync"
	"time"

	"github.com/prefeitura-rio/app-recomendacao/internal/logger"
	"github.com/prefeitura-rio/app-recomendacao/internal/models"
	"github.com/prefeitura-rio/app-recomendacao/internal/resilience"
	"github.com/prefeitura-rio/app-recomendacao/internal/utils"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"
)

// Engine gera recomendações personalizadas. É seguro para uso concorrente: todo o estado
// de uma recomendação vive na própria chamada.
type Engine struct {
	store    Store
	perf     PerformanceWriter
	accessor *resilience.Accessor
	cfg      *Config
	log      *logger.Logger
	tracer   trace.Tracer
	now      func() time.Time

	pending sync.WaitGroup
}

// Option customiza o Engine
type Option func(*Engine)

// WithClock substitui o relógio usado para recência
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine cria o motor. perf pode ser nil para desabilitar os registros de performance.
func NewEngine(store Store, perf PerformanceWriter, cfg *Config, log *logger.Logger, opts ...Option) *Engine {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if log == nil {
		log = logger.NewNop()
	}

	e := &Engine{
		store:    store,
		perf:     perf,
		accessor: resilience.NewAccessor(cfg.Resilience, log),
		cfg:      cfg,
		log:      log.With("component", "recommend"),
		tracer:   otel.Tracer("recommend"),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Recommend retorna até limit conteúdos para o usuário. Nunca falha: no pior caso a lista é vazia.
func (e *Engine) Recommend(ctx context.Context, userID int64, preferredThemes []string, limit int) []models.Content {
	return e.RecommendDetailed(ctx, userID, preferredThemes, limit).Items
}

// RecommendDetailed é como Recommend mas informa também a estratégia e a duração
func (e *Engine) RecommendDetailed(ctx context.Context, userID int64, preferredThemes []string, limit int) models.RecommendationResult {
	start := time.Now()

	if userID <= 0 || limit <= 0 {
		return models.RecommendationResult{Items: []models.Content{}, Strategy: models.StrategyEmpty}
	}
	if e.cfg.MaxLimit > 0 && limit > e.cfg.MaxLimit {
		limit = e.cfg.MaxLimit
	}
	preferred := utils.DedupeThemes(preferredThemes)

	ctx, span := e.tracer.Start(ctx, "recommend.Recommend", trace.WithAttributes(
		attribute.Int64("user.id", userID),
		attribute.Int("recommend.limit", limit),
		attribute.StringSlice("recommend.preferred_themes", preferred),
	))
	defer span.End()

	reqLog := e.log.FromContext(ctx).With("user_id", userID)

	var (
		items    []models.Content
		strategy models.Strategy
	)

	signals := e.collectSignals(ctx, userID)
	if signals.Empty() {
		items, strategy = e.coldStart(ctx, preferred, limit)
	} else {
		items, strategy = e.personalized(ctx, userID, signals, preferred, limit)
	}

	items = enforceInvariants(items, signals, limit)
	if len(items) == 0 {
		strategy = models.StrategyEmpty
	}

	duration := time.Since(start)
	span.SetAttributes(
		attribute.String("recommend.strategy", string(strategy)),
		attribute.Int("recommend.count", len(items)),
	)
	reqLog.Debug("recommendations generated",
		"strategy", strategy,
		"count", len(items),
		"latency_ms", duration.Milliseconds(),
	)

	e.recordPerformance(models.PerformanceRecord{
		Strategy:    strategy,
		ResultCount: len(items),
		DurationMs:  duration.Milliseconds(),
		UserID:      userID,
		Timestamp:   e.now(),
	})

	return models.RecommendationResult{
		Items:      items,
		Strategy:   strategy,
		DurationMs: duration.Milliseconds(),
	}
}

// personalized percorre afinidade, geradores, ranking e suplementação
func (e *Engine) personalized(ctx context.Context, userID int64, signals Signals, preferred []string, limit int) ([]models.Content, models.Strategy) {
	aff := e.computeAffinity(ctx, signals, preferred)
	scorer := NewScorer(e.cfg.Bonuses(), aff, e.now())

	contentBased, collaborative := e.generateCandidates(ctx, userID, aff, signals, scorer, limit)

	_, span := e.tracer.Start(ctx, "recommend.rank")
	ranked := Rank(scorer.Merge(contentBased, collaborative, signals), limit)
	span.SetAttributes(attribute.Int("rank.count", len(ranked)))
	span.End()

	items := contentsOf(ranked)
	var added []models.Content
	if len(items) < limit {
		added = e.supplement(ctx, items, signals, limit)
		items = append(items, added...)
	}

	return items, selectStrategy(ranked, len(added))
}

// generateCandidates executa os dois geradores em paralelo. Cada um falha isoladamente para vazio.
func (e *Engine) generateCandidates(ctx context.Context, userID int64, aff Affinity, signals Signals, scorer *Scorer, limit int) ([]Candidate, []models.Content) {
	ctx, span := e.tracer.Start(ctx, "recommend.generate_candidates")
	defer span.End()

	var (
		contentBased  []Candidate
		collaborative []models.Content
	)

	var g errgroup.Group
	g.Go(e.isolated(ctx, "content_based", func() {
		contentBased = e.contentBased(ctx, aff, signals, scorer, limit)
	}))
	g.Go(e.isolated(ctx, "collaborative", func() {
		collaborative = e.collaborative(ctx, userID, signals)
	}))
	_ = g.Wait()

	span.SetAttributes(
		attribute.Int("candidates.content_based", len(contentBased)),
		attribute.Int("candidates.collaborative", len(collaborative)),
	)
	return contentBased, collaborative
}

// isolated executa fn numa goroutine do errgroup. Um panic é registrado e o estágio fica
// com o valor zero do seu resultado, sem afetar os demais.
func (e *Engine) isolated(ctx context.Context, stage string, fn func()) func() error {
	return func() error {
		defer func() {
			if r := recover(); r != nil {
				e.log.FromContext(ctx).Error("recommendation stage panicked, using empty result",
					"stage", stage,
					"panic", r,
				)
			}
		}()
		fn()
		return nil
	}
}

// selectStrategy nomeia a estratégia terminal de uma recomendação personalizada
func selectStrategy(ranked []Candidate, supplemented int) models.Strategy {
	var sources Source
	for _, c := range ranked {
		sources |= c.Sources
	}

	switch {
	case len(ranked) == 0 && supplemented == 0:
		return models.StrategyEmpty
	case len(ranked) == 0:
		return models.StrategyPopularRecent
	case supplemented > 0:
		return models.StrategyMixed
	case sources == SourceContentBased|SourceCollaborative:
		return models.StrategyMixed
	case sources&SourceCollaborative != 0:
		return models.StrategyCollaborative
	default:
		return models.StrategyContentBased
	}
}

// enforceInvariants remove itens do histórico e duplicados e trunca em limit
func enforceInvariants(items []models.Content, signals Signals, limit int) []models.Content {
	out := make([]models.Content, 0, len(items))
	seen := make(map[int64]struct{}, len(items))
	for _, c := range items {
		if len(out) >= limit {
			break
		}
		if signals.Seen(c.ID) {
			continue
		}
		if _, dup := seen[c.ID]; dup {
			continue
		}
		seen[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}
