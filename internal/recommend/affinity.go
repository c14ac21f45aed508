package recommend

import (
	"context"
	"sort"
	"time"

	"github.com/prefeitura-rio/app-recomendacao/internal/models"
	"github.com/prefeitura-rio/app-recomendacao/internal/resilience"
	"github.com/prefeitura-rio/app-recomendacao/internal/utils"
	"go.opentelemetry.io/otel/attribute"
)

// ThemeWeight é o peso acumulado de um tema no histórico
type ThemeWeight struct {
	Theme  string
	Weight float64
}

// Affinity é a preferência de temas de um usuário
type Affinity struct {
	// Preferred são os temas informados pelo chamador, normalizados
	Preferred []string
	// Derived são os temas mais pesados do histórico
	Derived []string
	// Weights contém todos os temas do histórico, do mais pesado para o mais leve
	Weights []ThemeWeight
}

// Combined retorna os temas preferidos seguidos dos derivados, sem repetição
func (a Affinity) Combined() []string {
	out := make([]string, 0, len(a.Preferred)+len(a.Derived))
	seen := make(map[string]struct{}, cap(out))
	for _, list := range [][]string{a.Preferred, a.Derived} {
		for _, t := range list {
			if _, ok := seen[t]; ok {
				continue
			}
			seen[t] = struct{}{}
			out = append(out, t)
		}
	}
	return out
}

// ComputeAffinity deriva os temas do histórico. Cada post contribui com
// Base + RecentRead (lido dentro da janela) + Like + Bookmark para o seu tema;
// posts sem tema resolvível não contribuem.
func ComputeAffinity(signals Signals, history []models.Content, preferred []string, w Weights, topN int, now time.Time) Affinity {
	recentlyRead := make(map[int64]bool)
	for _, r := range signals.Reads {
		if now.Sub(r.LastReadAt) <= w.RecentReadWindow {
			recentlyRead[r.PostID] = true
		}
	}
	liked := make(map[int64]bool, len(signals.Likes))
	for _, l := range signals.Likes {
		liked[l.PostID] = true
	}
	bookmarked := make(map[int64]bool, len(signals.Bookmarks))
	for _, b := range signals.Bookmarks {
		bookmarked[b.PostID] = true
	}

	themeWeights := make(map[string]float64)
	seen := make(map[int64]struct{}, len(history))
	for _, item := range history {
		if _, dup := seen[item.ID]; dup {
			continue
		}
		seen[item.ID] = struct{}{}

		theme, ok := item.Theme()
		if !ok {
			continue
		}

		weight := w.Base
		if recentlyRead[item.ID] {
			weight += w.RecentRead
		}
		if liked[item.ID] {
			weight += w.Like
		}
		if bookmarked[item.ID] {
			weight += w.Bookmark
		}
		themeWeights[theme] += weight
	}

	weights := make([]ThemeWeight, 0, len(themeWeights))
	for theme, weight := range themeWeights {
		weights = append(weights, ThemeWeight{Theme: theme, Weight: weight})
	}
	sort.Slice(weights, func(i, j int) bool {
		if weights[i].Weight != weights[j].Weight {
			return weights[i].Weight > weights[j].Weight
		}
		return weights[i].Theme < weights[j].Theme
	})

	if topN < 0 {
		topN = 0
	}
	derived := make([]string, 0, topN)
	for i := 0; i < len(weights) && i < topN; i++ {
		derived = append(derived, weights[i].Theme)
	}

	return Affinity{
		Preferred: utils.DedupeThemes(preferred),
		Derived:   derived,
		Weights:   weights,
	}
}

// computeAffinity busca os posts do histórico uma única vez e calcula a afinidade
func (e *Engine) computeAffinity(ctx context.Context, signals Signals, preferred []string) Affinity {
	ctx, span := e.tracer.Start(ctx, "recommend.compute_affinity")
	defer span.End()

	ids := capped(signals.HistoryIDs(), e.cfg.HistoryContentCap)
	history := resilience.Execute(ctx, e.accessor, "history_content",
		func(ctx context.Context) ([]models.Content, error) {
			return e.store.ContentByIDs(ctx, ids)
		}, []models.Content{})

	aff := ComputeAffinity(signals, history, preferred, e.cfg.Weights(), e.cfg.TopThemes, e.now())
	span.SetAttributes(
		attribute.StringSlice("affinity.preferred", aff.Preferred),
		attribute.StringSlice("affinity.derived", aff.Derived),
	)
	return aff
}
