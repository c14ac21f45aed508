package store

import (
	"context"
)

// LikeCount é o contador armazenado de um post comparado com a contagem real
type LikeCount struct {
	PostID int64
	Stored int
	Actual int
}

// Drifted indica se o contador armazenado diverge das reações
func (l LikeCount) Drifted() bool {
	return l.Stored != l.Actual
}

// CountPosts retorna o total de posts (incluindo não publicados)
func (s *Store) CountPosts(ctx context.Context) (int64, error) {
	var total int64
	err := s.db.WithContext(ctx).Model(&PostRecord{}).Count(&total).Error
	return total, err
}

// LikeCountsAfter retorna, em ordem de id, até limit posts com id > afterID e a
// contagem real de curtidas positivas de cada um.
func (s *Store) LikeCountsAfter(ctx context.Context, afterID int64, limit int) ([]LikeCount, error) {
	if limit <= 0 {
		return nil, ErrInvalidBatch
	}

	var posts []PostRecord
	if err := s.db.WithContext(ctx).
		Select("id", "likes_count").
		Where("id > ?", afterID).
		Order("id ASC").
		Limit(limit).
		Find(&posts).Error; err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return []LikeCount{}, nil
	}

	ids := make([]int64, 0, len(posts))
	for _, p := range posts {
		ids = append(ids, p.ID)
	}

	var rows []struct {
		PostID int64
		Total  int
	}
	if err := s.db.WithContext(ctx).
		Model(&ReactionRecord{}).
		Select("post_id, COUNT(*) AS total").
		Where("post_id IN ? AND is_positive = ?", ids, true).
		Group("post_id").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	actual := make(map[int64]int, len(rows))
	for _, r := range rows {
		actual[r.PostID] = r.Total
	}

	out := make([]LikeCount, 0, len(posts))
	for _, p := range posts {
		out = append(out, LikeCount{PostID: p.ID, Stored: p.LikesCount, Actual: actual[p.ID]})
	}
	return out, nil
}

// SetLikesCount grava o contador de curtidas de um post
func (s *Store) SetLikesCount(ctx context.Context, postID int64, count int) error {
	return s.db.WithContext(ctx).
		Model(&PostRecord{}).
		Where("id = ?", postID).
		UpdateColumn("likes_count", count).Error
}
