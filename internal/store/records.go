package store

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/prefeitura-rio/app-recomendacao/internal/models"
	"github.com/prefeitura-rio/app-recomendacao/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// StatusPublished é o único status elegível para recomendação
const StatusPublished = "published"

// PostRecord é a linha da tabela posts
type PostRecord struct {
	ID            int64          `gorm:"primaryKey;autoIncrement"`
	Title         string         `gorm:"size:255;not null"`
	Slug          string         `gorm:"size:255;uniqueIndex"`
	Summary       string         `gorm:"type:text"`
	AuthorID      int64          `gorm:"index"`
	ThemeCategory *string        `gorm:"size:100;index"`
	Metadata      datatypes.JSON `gorm:"column:metadata"`
	LikesCount    int            `gorm:"not null;default:0;index"`
	Status        string         `gorm:"size:20;not null;default:published;index"`
	CreatedAt     time.Time      `gorm:"index"`
	UpdatedAt     time.Time
	DeletedAt     gorm.DeletedAt `gorm:"index"`
}

func (PostRecord) TableName() string { return "posts" }

// BeforeCreate preenche o slug quando não informado
func (p *PostRecord) BeforeCreate(_ *gorm.DB) error {
	if p.Slug != "" {
		return nil
	}
	id := uuid.NewString()
	p.Slug = utils.GenerateSlug(p.Title, id)
	if p.Slug == "" {
		p.Slug = id
	}
	return nil
}

// PostMetadata é o conteúdo conhecido da coluna metadata
type PostMetadata struct {
	Theme string   `json:"theme,omitempty"`
	Tags  []string `json:"tags,omitempty"`
}

// EncodeMetadata serializa a metadata para a coluna JSON
func EncodeMetadata(m PostMetadata) datatypes.JSON {
	b, err := json.Marshal(m)
	if err != nil {
		return nil
	}
	return datatypes.JSON(b)
}

// MetadataTheme extrai a tag de tema da metadata, se houver
func (p PostRecord) MetadataTheme() *string {
	if len(p.Metadata) == 0 {
		return nil
	}
	var m PostMetadata
	if err := json.Unmarshal(p.Metadata, &m); err != nil {
		return nil
	}
	if utils.NormalizeTheme(m.Theme) == "" {
		return nil
	}
	theme := m.Theme
	return &theme
}

// ToContent converte o registro para o tipo de domínio
func (p PostRecord) ToContent() models.Content {
	return models.Content{
		ID:            p.ID,
		Title:         p.Title,
		Slug:          p.Slug,
		Summary:       p.Summary,
		AuthorID:      p.AuthorID,
		ThemeCategory: p.ThemeCategory,
		MetadataTheme: p.MetadataTheme(),
		LikesCount:    p.LikesCount,
		CreatedAt:     p.CreatedAt,
	}
}

func toContents(records []PostRecord) []models.Content {
	out := make([]models.Content, 0, len(records))
	for _, r := range records {
		out = append(out, r.ToContent())
	}
	return out
}

// ReadingProgressRecord registra o progresso de leitura de um usuário em um post
type ReadingProgressRecord struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	UserID     int64     `gorm:"not null;uniqueIndex:idx_reading_user_post;index:idx_reading_user_last,priority:1"`
	PostID     int64     `gorm:"not null;uniqueIndex:idx_reading_user_post"`
	Progress   float64   `gorm:"not null;default:0"`
	LastReadAt time.Time `gorm:"not null;index:idx_reading_user_last,priority:2"`
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

func (ReadingProgressRecord) TableName() string { return "reading_progress" }

// ReactionRecord é uma reação (curtida positiva ou negativa) de um usuário a um post
type ReactionRecord struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	UserID     int64     `gorm:"not null;uniqueIndex:idx_reaction_user_post"`
	PostID     int64     `gorm:"not null;uniqueIndex:idx_reaction_user_post;index"`
	IsPositive bool      `gorm:"not null"`
	CreatedAt  time.Time `gorm:"index"`
}

func (ReactionRecord) TableName() string { return "reactions" }

// BookmarkRecord é um post salvo pelo usuário
type BookmarkRecord struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	UserID    int64     `gorm:"not null;uniqueIndex:idx_bookmark_user_post"`
	PostID    int64     `gorm:"not null;uniqueIndex:idx_bookmark_user_post"`
	CreatedAt time.Time `gorm:"index"`
}

func (BookmarkRecord) TableName() string { return "bookmarks" }

// PerformanceRecordRow persiste um models.PerformanceRecord
type PerformanceRecordRow struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Strategy    string    `gorm:"size:50;not null;index"`
	ResultCount int       `gorm:"not null"`
	DurationMs  int64     `gorm:"not null"`
	UserID      int64     `gorm:"index"`
	CreatedAt   time.Time `gorm:"index"`
}

func (PerformanceRecordRow) TableName() string { return "recommendation_performance" }

// AllModels lista os modelos gerenciados pelas migrações
func AllModels() []interface{} {
	return []interface{}{
		&PostRecord{},
		&ReadingProgressRecord{},
		&ReactionRecord{},
		&BookmarkRecord{},
		&PerformanceRecordRow{},
	}
}
