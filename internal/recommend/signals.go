package recommend

import (
	"context"

	"github.com/prefeitura-rio/app-recomendacao/internal/models"
	"github.com/prefeitura-rio/app-recomendacao/internal/resilience"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/sync/errgroup"
)

// Signals é o engajamento recente de um usuário
type Signals struct {
	Reads     []models.ReadSignal
	Likes     []models.LikeSignal
	Bookmarks []models.BookmarkSignal

	history map[int64]struct{}
	order   []int64
}

// NewSignals monta o conjunto de sinais e o histórico de ids. Curtidas não positivas são ignoradas.
func NewSignals(reads []models.ReadSignal, likes []models.LikeSignal, bookmarks []models.BookmarkSignal) Signals {
	s := Signals{
		Reads:     reads,
		Bookmarks: bookmarks,
		history:   make(map[int64]struct{}),
	}
	for _, l := range likes {
		if l.IsPositive {
			s.Likes = append(s.Likes, l)
		}
	}

	for _, r := range s.Reads {
		s.add(r.PostID)
	}
	for _, l := range s.Likes {
		s.add(l.PostID)
	}
	for _, b := range s.Bookmarks {
		s.add(b.PostID)
	}
	return s
}

func (s *Signals) add(id int64) {
	if _, ok := s.history[id]; ok {
		return
	}
	s.history[id] = struct{}{}
	s.order = append(s.order, id)
}

// Empty indica ausência total de histórico
func (s Signals) Empty() bool {
	return len(s.order) == 0
}

// Seen indica se o post está no histórico do usuário
func (s Signals) Seen(id int64) bool {
	_, ok := s.history[id]
	return ok
}

// HistoryIDs retorna os ids do histórico sem repetição: leituras, curtidas e favoritos, nessa ordem
func (s Signals) HistoryIDs() []int64 {
	out := make([]int64, len(s.order))
	copy(out, s.order)
	return out
}

// collectSignals busca os três tipos de sinal em paralelo. Cada busca falha de forma isolada
// para uma lista vazia.
func (e *Engine) collectSignals(ctx context.Context, userID int64) Signals {
	ctx, span := e.tracer.Start(ctx, "recommend.collect_signals")
	defer span.End()

	var (
		reads     []models.ReadSignal
		likes     []models.LikeSignal
		bookmarks []models.BookmarkSignal
		limit     = e.cfg.SignalCap
	)

	var g errgroup.Group
	g.Go(e.isolated(ctx, "reading_history", func() {
		reads = resilience.Execute(ctx, e.accessor, "reading_history",
			func(ctx context.Context) ([]models.ReadSignal, error) {
				return e.store.ReadingHistory(ctx, userID, limit)
			}, []models.ReadSignal{})
	}))
	g.Go(e.isolated(ctx, "positive_likes", func() {
		likes = resilience.Execute(ctx, e.accessor, "positive_likes",
			func(ctx context.Context) ([]models.LikeSignal, error) {
				return e.store.PositiveLikes(ctx, userID, limit)
			}, []models.LikeSignal{})
	}))
	g.Go(e.isolated(ctx, "bookmarks", func() {
		bookmarks = resilience.Execute(ctx, e.accessor, "bookmarks",
			func(ctx context.Context) ([]models.BookmarkSignal, error) {
				return e.store.Bookmarks(ctx, userID, limit)
			}, []models.BookmarkSignal{})
	}))
	_ = g.Wait()

	signals := NewSignals(capped(reads, limit), capped(likes, limit), capped(bookmarks, limit))
	span.SetAttributes(
		attribute.Int("signals.reads", len(signals.Reads)),
		attribute.Int("signals.likes", len(signals.Likes)),
		attribute.Int("signals.bookmarks", len(signals.Bookmarks)),
	)
	return signals
}

func capped[T any](items []T, limit int) []T {
	if limit > 0 && len(items) > limit {
		return items[:limit]
	}
	return items
}
