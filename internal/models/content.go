package models

import (
	"time"

	"github.com/prefeitura-rio/app-recomendacao/internal/utils"
)

// Content representa um post (conto) candidato a recomendação.
// É imutável durante o cálculo de uma recomendação.
type Content struct {
	ID       int64  `json:"id"`
	Title    string `json:"title"`
	Slug     string `json:"slug,omitempty"`
	Summary  string `json:"summary,omitempty"`
	AuthorID int64  `json:"author_id"`

	// ThemeCategory é o tema principal; pode ser nulo
	ThemeCategory *string `json:"theme_category,omitempty"`
	// MetadataTheme é o tema auxiliar guardado no campo metadata do post
	MetadataTheme *string `json:"metadata_theme,omitempty"`

	LikesCount int       `json:"likes_count"`
	CreatedAt  time.Time `json:"created_at"`
}

// Theme resolve o tema do conteúdo: primeiro o tema principal, depois o tema do metadata.
// Retorna false quando nenhum dos dois está preenchido.
func (c Content) Theme() (string, bool) {
	if c.ThemeCategory != nil {
		if t := utils.NormalizeTheme(*c.ThemeCategory); t != "" {
			return t, true
		}
	}
	if c.MetadataTheme != nil {
		if t := utils.NormalizeTheme(*c.MetadataTheme); t != "" {
			return t, true
		}
	}
	return "", false
}

// MatchesTheme verifica o casamento aproximado no tema principal ou no tema do metadata
func (c Content) MatchesTheme(theme string) bool {
	if c.ThemeCategory != nil && utils.ThemeMatches(*c.ThemeCategory, theme) {
		return true
	}
	if c.MetadataTheme != nil && utils.ThemeMatches(*c.MetadataTheme, theme) {
		return true
	}
	return false
}

// MatchesAny verifica se o conteúdo casa com pelo menos um dos temas
func (c Content) MatchesAny(themes []string) bool {
	for _, t := range themes {
		if c.MatchesTheme(t) {
			return true
		}
	}
	return false
}

// DaysSince retorna a idade do conteúdo em dias (fracionário) relativa a now
func (c Content) DaysSince(now time.Time) float64 {
	return now.Sub(c.CreatedAt).Hours() / 24
}
