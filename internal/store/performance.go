package store

import (
	"context"

	"github.com/prefeitura-rio/app-recomendacao/internal/models"
)

// SavePerformance insere um registro de performance. Somente inserção.
func (s *Store) SavePerformance(ctx context.Context, rec models.PerformanceRecord) error {
	row := PerformanceRecordRow{
		Strategy:    string(rec.Strategy),
		ResultCount: rec.ResultCount,
		DurationMs:  rec.DurationMs,
		UserID:      rec.UserID,
		CreatedAt:   rec.Timestamp,
	}
	return s.db.WithContext(ctx).Create(&row).Error
}
