package store

import (
	"context"
	"fmt"
	"strings"

	"github.com/prefeitura-rio/app-recomendacao/internal/models"
	"github.com/prefeitura-rio/app-recomendacao/internal/utils"
)

// ContentByIDs retorna os posts publicados com os ids informados, ordenados por id
func (s *Store) ContentByIDs(ctx context.Context, ids []int64) ([]models.Content, error) {
	if len(ids) == 0 {
		return []models.Content{}, nil
	}
	var rows []PostRecord
	if err := s.published(ctx).
		Where("id IN ?", ids).
		Order("id ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toContents(rows), nil
}

// ContentByTheme retorna posts cujo tema principal ou tema do metadata contém algum dos temas,
// exceto os ids em exclude. Ordem: mais recentes primeiro.
func (s *Store) ContentByTheme(ctx context.Context, themes []string, exclude []int64, limit int) ([]models.Content, error) {
	clause, args := s.themeClause(themes)
	if clause == "" {
		return []models.Content{}, nil
	}

	q := s.published(ctx).Where(clause, args...)
	q = excludeIDs(q, "id", exclude)

	var rows []PostRecord
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toContents(rows), nil
}

// TrendingContent retorna os posts mais curtidos (likes desc, mais recentes primeiro),
// opcionalmente filtrados por tema.
func (s *Store) TrendingContent(ctx context.Context, themes []string, limit int) ([]models.Content, error) {
	q := s.published(ctx)
	if clause, args := s.themeClause(themes); clause != "" {
		q = q.Where(clause, args...)
	}

	var rows []PostRecord
	if err := q.
		Order("likes_count DESC").
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toContents(rows), nil
}

// RecentContent retorna os posts mais recentes, exceto os ids em exclude
func (s *Store) RecentContent(ctx context.Context, exclude []int64, limit int) ([]models.Content, error) {
	q := excludeIDs(s.published(ctx), "id", exclude)

	var rows []PostRecord
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return toContents(rows), nil
}

// themeClause monta o filtro de casamento aproximado de temas. Retorna "" quando
// nenhum tema é utilizável.
func (s *Store) themeClause(themes []string) (string, []interface{}) {
	metaExpr := s.metadataThemeExpr()

	parts := make([]string, 0, len(themes))
	args := make([]interface{}, 0, 2*len(themes))
	for _, theme := range utils.DedupeThemes(themes) {
		pattern := "%" + escapeLike(theme) + "%"
		parts = append(parts, fmt.Sprintf(
			`(LOWER(theme_category) LIKE ? ESCAPE '\' OR LOWER(%s) LIKE ? ESCAPE '\')`, metaExpr))
		args = append(args, pattern, pattern)
	}
	if len(parts) == 0 {
		return "", nil
	}
	return "(" + strings.Join(parts, " OR ") + ")", args
}

func (s *Store) metadataThemeExpr() string {
	switch s.db.Dialector.Name() {
	case "postgres":
		return "metadata->>'theme'"
	default:
		return "json_extract(metadata, '$.theme')"
	}
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
