package recommend

import (
	"context"
	"math"
	"sort"

	"github.com/prefeitura-rio/app-recomendacao/internal/models"
	"github.com/prefeitura-rio/app-recomendacao/internal/resilience"
	"go.opentelemetry.io/otel/attribute"
)

// coldStart atende usuários sem nenhum sinal: trending (filtrado pelos temas preferidos e
// completado sem filtro), depois os mais recentes, depois vazio.
func (e *Engine) coldStart(ctx context.Context, preferred []string, limit int) ([]models.Content, models.Strategy) {
	ctx, span := e.tracer.Start(ctx, "recommend.cold_start")
	defer span.End()

	trending, err := resilience.Do(ctx, e.accessor, "trending_content",
		func(ctx context.Context) ([]models.Content, error) {
			return e.store.TrendingContent(ctx, preferred, limit)
		})
	if err == nil {
		items := capped(trending, limit)
		if len(preferred) > 0 && len(items) < limit {
			items = e.topUpTrending(ctx, items, limit)
		}
		if len(items) == 0 {
			return []models.Content{}, models.StrategyEmpty
		}
		span.SetAttributes(attribute.String("fallback.tier", "trending"))
		return items, models.StrategyTrending
	}

	e.log.FromContext(ctx).Warn("trending query failed, falling back to recent content", "error", err)
	recent := resilience.Execute(ctx, e.accessor, "recent_content",
		func(ctx context.Context) ([]models.Content, error) {
			return e.store.RecentContent(ctx, nil, limit)
		}, []models.Content{})
	recent = capped(recent, limit)
	if len(recent) == 0 {
		span.SetAttributes(attribute.String("fallback.tier", "empty"))
		return []models.Content{}, models.StrategyEmpty
	}
	span.SetAttributes(attribute.String("fallback.tier", "recent"))
	return recent, models.StrategyRecent
}

// topUpTrending completa o trending filtrado por tema com trending sem filtro e reordena
// tudo por curtidas desc e mais recentes primeiro.
func (e *Engine) topUpTrending(ctx context.Context, items []models.Content, limit int) []models.Content {
	selected := make(map[int64]struct{}, len(items))
	for _, c := range items {
		selected[c.ID] = struct{}{}
	}

	extra := resilience.Execute(ctx, e.accessor, "trending_content_topup",
		func(ctx context.Context) ([]models.Content, error) {
			return e.store.TrendingContent(ctx, nil, limit+len(items))
		}, []models.Content{})

	out := append([]models.Content{}, items...)
	for _, c := range extra {
		if len(out) >= limit {
			break
		}
		if _, ok := selected[c.ID]; ok {
			continue
		}
		selected[c.ID] = struct{}{}
		out = append(out, c)
	}
	SortTrending(out)
	return out
}

// SortTrending ordena por curtidas desc, mais recentes e id desc
func SortTrending(items []models.Content) {
	sort.SliceStable(items, func(i, j int) bool {
		a, b := items[i], items[j]
		if a.LikesCount != b.LikesCount {
			return a.LikesCount > b.LikesCount
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}

// supplement completa uma lista ranqueada curta com ~60% populares e ~40% recentes,
// excluindo o que já foi selecionado e o histórico. Retorna apenas os itens adicionados.
func (e *Engine) supplement(ctx context.Context, selected []models.Content, signals Signals, limit int) []models.Content {
	need := limit - len(selected)
	if need <= 0 {
		return nil
	}

	ctx, span := e.tracer.Start(ctx, "recommend.supplement")
	defer span.End()

	excluded := make(map[int64]struct{}, len(selected)+len(signals.order))
	exclude := func(id int64) {
		excluded[id] = struct{}{}
	}
	isExcluded := func(id int64) bool {
		_, ok := excluded[id]
		return ok
	}
	for _, c := range selected {
		exclude(c.ID)
	}
	for _, id := range signals.HistoryIDs() {
		exclude(id)
	}

	popularN, recentN := splitSupplement(need, e.cfg.PopularShare)
	span.SetAttributes(
		attribute.Int("supplement.need", need),
		attribute.Int("supplement.popular", popularN),
		attribute.Int("supplement.recent", recentN),
	)

	added := make([]models.Content, 0, need)
	var leftovers []models.Content

	if popularN > 0 {
		popular := resilience.Execute(ctx, e.accessor, "supplement_popular",
			func(ctx context.Context) ([]models.Content, error) {
				return e.store.TrendingContent(ctx, nil, need+len(excluded))
			}, []models.Content{})
		for _, c := range popular {
			if isExcluded(c.ID) {
				continue
			}
			exclude(c.ID)
			if len(added) < popularN {
				added = append(added, c)
			} else {
				leftovers = append(leftovers, c)
			}
		}
	}

	if remaining := need - len(added); remaining > 0 {
		added = append(added, e.fetchRecent(ctx, excluded, remaining)...)
	}

	for _, c := range leftovers {
		if len(added) >= need {
			break
		}
		added = append(added, c)
	}

	return capped(added, need)
}

func (e *Engine) fetchRecent(ctx context.Context, excluded map[int64]struct{}, n int) []models.Content {
	ids := make([]int64, 0, len(excluded))
	for id := range excluded {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	recent := resilience.Execute(ctx, e.accessor, "supplement_recent",
		func(ctx context.Context) ([]models.Content, error) {
			return e.store.RecentContent(ctx, ids, n)
		}, []models.Content{})

	out := make([]models.Content, 0, n)
	for _, c := range recent {
		if len(out) >= n {
			break
		}
		if _, ok := excluded[c.ID]; ok {
			continue
		}
		excluded[c.ID] = struct{}{}
		out = append(out, c)
	}
	return out
}

// splitSupplement divide need em populares (arredondado para cima) e recentes
func splitSupplement(need int, popularShare float64) (popular, recent int) {
	if need <= 0 {
		return 0, 0
	}
	popular = int(math.Ceil(float64(need)*popularShare - 1e-9))
	if popular > need {
		popular = need
	}
	if popular < 0 {
		popular = 0
	}
	return popular, need - popular
}
