package recommend

import (
	"context"

	"github.com/prefeitura-rio/app-recomendacao/internal/models"
	"github.com/prefeitura-rio/app-recomendacao/internal/resilience"
)

// contentBased busca conteúdo dos temas combinados, fora do histórico, com sobra de
// OverFetchFactor vezes o limite, e devolve os limit melhores.
func (e *Engine) contentBased(ctx context.Context, aff Affinity, signals Signals, scorer *Scorer, limit int) []Candidate {
	themes := aff.Combined()
	if len(themes) == 0 {
		return nil
	}

	ctx, span := e.tracer.Start(ctx, "recommend.content_based")
	defer span.End()

	exclude := signals.HistoryIDs()
	fetched := resilience.Execute(ctx, e.accessor, "content_by_theme",
		func(ctx context.Context) ([]models.Content, error) {
			return e.store.ContentByTheme(ctx, themes, exclude, limit*e.cfg.OverFetchFactor)
		}, []models.Content{})

	candidates := make([]Candidate, 0, len(fetched))
	for _, item := range fetched {
		if signals.Seen(item.ID) {
			continue
		}
		candidates = append(candidates, Candidate{
			Content: item,
			Score:   scorer.Score(item),
			Sources: SourceContentBased,
		})
	}
	return Rank(candidates, limit)
}
