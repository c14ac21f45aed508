package store

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"gorm.io/gorm"
)

// SeedData é o formato JSON aceito por `migrate seed`
type SeedData struct {
	Posts     []SeedPost     `json:"posts"`
	Reads     []SeedRead     `json:"reads"`
	Reactions []SeedReaction `json:"reactions"`
	Bookmarks []SeedBookmark `json:"bookmarks"`
}

type SeedPost struct {
	ID       int64    `json:"id"`
	Title    string   `json:"title"`
	Summary  string   `json:"summary,omitempty"`
	AuthorID int64    `json:"author_id"`
	Theme    *string  `json:"theme,omitempty"`
	MetaTag  string   `json:"metadata_theme,omitempty"`
	Tags     []string `json:"tags,omitempty"`
	Status   string   `json:"status,omitempty"`
	// AgeDays é a idade do post no momento do seed
	AgeDays int `json:"age_days"`
}

type SeedRead struct {
	UserID   int64   `json:"user_id"`
	PostID   int64   `json:"post_id"`
	Progress float64 `json:"progress"`
	AgeDays  int     `json:"age_days"`
}

type SeedReaction struct {
	UserID   int64 `json:"user_id"`
	PostID   int64 `json:"post_id"`
	Positive bool  `json:"positive"`
}

type SeedBookmark struct {
	UserID int64 `json:"user_id"`
	PostID int64 `json:"post_id"`
}

// SeedStats contabiliza as linhas inseridas
type SeedStats struct {
	Posts     int `json:"posts"`
	Reads     int `json:"reads"`
	Reactions int `json:"reactions"`
	Bookmarks int `json:"bookmarks"`
}

// DecodeSeed lê um SeedData em JSON
func DecodeSeed(r io.Reader) (*SeedData, error) {
	var data SeedData
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&data); err != nil {
		return nil, fmt.Errorf("erro ao ler seed: %w", err)
	}
	return &data, nil
}

// Seed insere os dados de demonstração em uma única transação. O likes_count dos
// posts é derivado das reações positivas do próprio seed.
func (s *Store) Seed(ctx context.Context, data *SeedData, now time.Time) (SeedStats, error) {
	var stats SeedStats
	if s.db == nil {
		return stats, ErrNilDB
	}
	if data == nil {
		return stats, nil
	}

	likes := make(map[int64]int)
	for _, r := range data.Reactions {
		if r.Positive {
			likes[r.PostID]++
		}
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range data.Posts {
			status := p.Status
			if status == "" {
				status = StatusPublished
			}
			rec := PostRecord{
				ID:            p.ID,
				Title:         p.Title,
				Summary:       p.Summary,
				AuthorID:      p.AuthorID,
				ThemeCategory: p.Theme,
				LikesCount:    likes[p.ID],
				Status:        status,
				CreatedAt:     now.AddDate(0, 0, -p.AgeDays),
			}
			if p.MetaTag != "" || len(p.Tags) > 0 {
				rec.Metadata = EncodeMetadata(PostMetadata{Theme: p.MetaTag, Tags: p.Tags})
			}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("post %d: %w", p.ID, err)
			}
			stats.Posts++
		}

		for _, r := range data.Reads {
			rec := ReadingProgressRecord{
				UserID:     r.UserID,
				PostID:     r.PostID,
				Progress:   r.Progress,
				LastReadAt: now.AddDate(0, 0, -r.AgeDays),
			}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("leitura %d/%d: %w", r.UserID, r.PostID, err)
			}
			stats.Reads++
		}

		for _, r := range data.Reactions {
			rec := ReactionRecord{UserID: r.UserID, PostID: r.PostID, IsPositive: r.Positive, CreatedAt: now}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("reação %d/%d: %w", r.UserID, r.PostID, err)
			}
			stats.Reactions++
		}

		for _, b := range data.Bookmarks {
			rec := BookmarkRecord{UserID: b.UserID, PostID: b.PostID, CreatedAt: now}
			if err := tx.Create(&rec).Error; err != nil {
				return fmt.Errorf("bookmark %d/%d: %w", b.UserID, b.PostID, err)
			}
			stats.Bookmarks++
		}
		return nil
	})
	if err != nil {
		return SeedStats{}, err
	}

	s.log.Info("seed applied",
		"posts", stats.Posts,
		"reads", stats.Reads,
		"reactions", stats.Reactions,
		"bookmarks", stats.Bookmarks,
	)
	return stats, nil
}

// TableStatus informa, por tabela gerenciada, se ela existe no banco
func (s *Store) TableStatus(ctx context.Context) (map[string]bool, error) {
	if s.db == nil {
		return nil, ErrNilDB
	}
	migrator := s.db.WithContext(ctx).Migrator()
	out := make(map[string]bool)
	for _, m := range AllModels() {
		stmt := &gorm.Statement{DB: s.db}
		if err := stmt.Parse(m); err != nil {
			return nil, err
		}
		out[stmt.Schema.Table] = migrator.HasTable(m)
	}
	return out, nil
}
