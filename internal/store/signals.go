package store

import (
	"context"

	"github.com/prefeitura-rio/app-recomendacao/internal/models"
)

// ReadingHistory retorna os registros de leitura mais recentes do usuário
func (s *Store) ReadingHistory(ctx context.Context, userID int64, limit int) ([]models.ReadSignal, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	var rows []ReadingProgressRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("last_read_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]models.ReadSignal, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.ReadSignal{
			UserID:     r.UserID,
			PostID:     r.PostID,
			LastReadAt: r.LastReadAt,
			Progress:   r.Progress,
		})
	}
	return out, nil
}

// PositiveLikes retorna as curtidas positivas mais recentes do usuário
func (s *Store) PositiveLikes(ctx context.Context, userID int64, limit int) ([]models.LikeSignal, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	var rows []ReactionRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ? AND is_positive = ?", userID, true).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]models.LikeSignal, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.LikeSignal{UserID: r.UserID, PostID: r.PostID, IsPositive: r.IsPositive})
	}
	return out, nil
}

// Bookmarks retorna os posts salvos mais recentemente pelo usuário
func (s *Store) Bookmarks(ctx context.Context, userID int64, limit int) ([]models.BookmarkSignal, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	var rows []BookmarkRecord
	if err := s.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]models.BookmarkSignal, 0, len(rows))
	for _, r := range rows {
		out = append(out, models.BookmarkSignal{UserID: r.UserID, PostID: r.PostID, CreatedAt: r.CreatedAt})
	}
	return out, nil
}
