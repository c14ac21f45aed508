package store

import (
	"context"
)

// PeersBySharedLikes retorna usuários que curtiram positivamente pelo menos minShared dos
// posts informados. Os pares com mais curtidas em comum vêm primeiro.
func (s *Store) PeersBySharedLikes(ctx context.Context, userID int64, postIDs []int64, minShared, limit int) ([]int64, error) {
	if userID <= 0 {
		return nil, ErrInvalidUserID
	}
	if len(postIDs) == 0 {
		return []int64{}, nil
	}

	var peers []int64
	if err := s.db.WithContext(ctx).
		Model(&ReactionRecord{}).
		Select("user_id").
		Where("post_id IN ? AND is_positive = ? AND user_id <> ?", postIDs, true, userID).
		Group("user_id").
		Having("COUNT(DISTINCT post_id) >= ?", minShared).
		Order("COUNT(DISTINCT post_id) DESC").
		Order("user_id ASC").
		Limit(limit).
		Pluck("user_id", &peers).Error; err != nil {
		return nil, err
	}
	return peers, nil
}

// ContentLikedByUsers retorna ids de posts curtidos pelos usuários informados, exceto os
// ids em exclude. Os mais curtidos pelo grupo vêm primeiro.
func (s *Store) ContentLikedByUsers(ctx context.Context, userIDs []int64, exclude []int64, limit int) ([]int64, error) {
	if len(userIDs) == 0 {
		return []int64{}, nil
	}

	q := s.db.WithContext(ctx).
		Model(&ReactionRecord{}).
		Select("post_id").
		Where("user_id IN ? AND is_positive = ?", userIDs, true)
	q = excludeIDs(q, "post_id", exclude)

	var ids []int64
	if err := q.
		Group("post_id").
		Order("COUNT(*) DESC").
		Order("post_id DESC").
		Limit(limit).
		Pluck("post_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}
