package recommend

import (
	"context"

	"github.com/prefeitura-rio/app-recomendacao/internal/models"
	"github.com/prefeitura-rio/app-recomendacao/internal/resilience"
	"go.opentelemetry.io/otel/attribute"
)

// collaborative encontra usuários com curtidas em comum e retorna o conteúdo que eles
// curtiram fora do histórico. Nenhum par encontrado é um resultado vazio válido.
func (e *Engine) collaborative(ctx context.Context, userID int64, signals Signals) []models.Content {
	history := signals.HistoryIDs()
	if len(history) == 0 {
		return nil
	}

	ctx, span := e.tracer.Start(ctx, "recommend.collaborative")
	defer span.End()

	peers := resilience.Execute(ctx, e.accessor, "peers_by_shared_likes",
		func(ctx context.Context) ([]int64, error) {
			return e.store.PeersBySharedLikes(ctx, userID, history, e.cfg.MinSharedLikes, e.cfg.PeerCap)
		}, []int64{})
	peers = capped(peers, e.cfg.PeerCap)
	span.SetAttributes(attribute.Int("collaborative.peers", len(peers)))
	if len(peers) == 0 {
		return nil
	}

	ids := resilience.Execute(ctx, e.accessor, "content_liked_by_peers",
		func(ctx context.Context) ([]int64, error) {
			return e.store.ContentLikedByUsers(ctx, peers, history, e.cfg.PeerContentCap)
		}, []int64{})

	filtered := make([]int64, 0, len(ids))
	for _, id := range ids {
		if !signals.Seen(id) {
			filtered = append(filtered, id)
		}
	}
	filtered = capped(filtered, e.cfg.PeerContentCap)
	if len(filtered) == 0 {
		return nil
	}

	items := resilience.Execute(ctx, e.accessor, "collaborative_content",
		func(ctx context.Context) ([]models.Content, error) {
			return e.store.ContentByIDs(ctx, filtered)
		}, []models.Content{})
	span.SetAttributes(attribute.Int("collaborative.items", len(items)))
	return items
}
