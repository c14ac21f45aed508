package recommend

import (
	"context"

	"github.com/prefeitura-rio/app-recomendacao/internal/models"
)

// Store são as consultas de leitura usadas pelo motor
type Store interface {
	ReadingHistory(ctx context.Context, userID int64, limit int) ([]models.ReadSignal, error)
	PositiveLikes(ctx context.Context, userID int64, limit int) ([]models.LikeSignal, error)
	Bookmarks(ctx context.Context, userID int64, limit int) ([]models.BookmarkSignal, error)

	ContentByIDs(ctx context.Context, ids []int64) ([]models.Content, error)

	// PeersBySharedLikes retorna usuários com pelo menos minShared curtidas positivas em postIDs
	PeersBySharedLikes(ctx context.Context, userID int64, postIDs []int64, minShared, limit int) ([]int64, error)
	// ContentLikedByUsers retorna ids curtidos pelos usuários, exceto exclude
	ContentLikedByUsers(ctx context.Context, userIDs []int64, exclude []int64, limit int) ([]int64, error)

	ContentByTheme(ctx context.Context, themes []string, exclude []int64, limit int) ([]models.Content, error)
	// TrendingContent ordena por curtidas desc e depois pelos mais recentes
	TrendingContent(ctx context.Context, themes []string, limit int) ([]models.Content, error)
	RecentContent(ctx context.Context, exclude []int64, limit int) ([]models.Content, error)
}

// PerformanceWriter persiste registros de performance
type PerformanceWriter interface {
	SavePerformance(ctx context.Context, rec models.PerformanceRecord) error
}
