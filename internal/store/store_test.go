package store

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/prefeitura-rio/app-recomendacao/internal/logger"
	"github.com/prefeitura-rio/app-recomendacao/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

var baseTime = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func newTestStore(t *testing.T) *Store {
	t.Helper()

	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", name)
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = sqlDB.Close() })

	s := New(db, logger.NewNop())
	if err := s.AutoMigrate(context.Background()); err != nil {
		t.Fatalf("AutoMigrate: %v", err)
	}
	return s
}

func strPtr(s string) *string { return &s }

type postSeed struct {
	id       int64
	theme    *string
	metaTag  string
	likes    int
	ageHours int
	status   string
}

func seedPosts(t *testing.T, s *Store, posts ...postSeed) {
	t.Helper()
	for _, p := range posts {
		status := p.status
		if status == "" {
			status = StatusPublished
		}
		rec := PostRecord{
			ID:            p.id,
			Title:         fmt.Sprintf("Conto %d", p.id),
			Slug:          fmt.Sprintf("conto-%d", p.id),
			AuthorID:      1,
			ThemeCategory: p.theme,
			LikesCount:    p.likes,
			Status:        status,
			CreatedAt:     baseTime.Add(-time.Duration(p.ageHours) * time.Hour),
		}
		if p.metaTag != "" {
			rec.Metadata = EncodeMetadata(PostMetadata{Theme: p.metaTag})
		}
		if err := s.db.Create(&rec).Error; err != nil {
			t.Fatalf("seed post %d: %v", p.id, err)
		}
	}
}

func seedLike(t *testing.T, s *Store, userID, postID int64, positive bool) {
	t.Helper()
	rec := ReactionRecord{UserID: userID, PostID: postID, IsPositive: positive, CreatedAt: baseTime}
	if err := s.db.Create(&rec).Error; err != nil {
		t.Fatalf("seed reaction: %v", err)
	}
}

func ids(items []models.Content) []int64 {
	out := make([]int64, 0, len(items))
	for _, c := range items {
		out = append(out, c.ID)
	}
	return out
}

func equalIDs(a, b []int64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestSignals(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	for i, postID := range []int64{10, 11, 12} {
		rec := ReadingProgressRecord{UserID: 7, PostID: postID, Progress: 0.5, LastReadAt: baseTime.Add(time.Duration(i) * time.Hour)}
		if err := s.db.Create(&rec).Error; err != nil {
			t.Fatalf("seed reading: %v", err)
		}
	}
	seedLike(t, s, 7, 10, true)
	seedLike(t, s, 7, 13, false)
	seedLike(t, s, 8, 11, true)
	if err := s.db.Create(&BookmarkRecord{UserID: 7, PostID: 12, CreatedAt: baseTime}).Error; err != nil {
		t.Fatalf("seed bookmark: %v", err)
	}

	reads, err := s.ReadingHistory(ctx, 7, 2)
	if err != nil {
		t.Fatalf("ReadingHistory: %v", err)
	}
	if len(reads) != 2 || reads[0].PostID != 12 || reads[1].PostID != 11 {
		t.Errorf("expected most recent reads [12 11], got %+v", reads)
	}

	likes, err := s.PositiveLikes(ctx, 7, 15)
	if err != nil {
		t.Fatalf("PositiveLikes: %v", err)
	}
	if len(likes) != 1 || likes[0].PostID != 10 || !likes[0].IsPositive {
		t.Errorf("expected only the positive like on 10, got %+v", likes)
	}

	bookmarks, err := s.Bookmarks(ctx, 7, 15)
	if err != nil {
		t.Fatalf("Bookmarks: %v", err)
	}
	if len(bookmarks) != 1 || bookmarks[0].PostID != 12 {
		t.Errorf("expected bookmark on 12, got %+v", bookmarks)
	}

	if _, err := s.ReadingHistory(ctx, 0, 15); err != ErrInvalidUserID {
		t.Errorf("expected ErrInvalidUserID, got %v", err)
	}
}

func TestContentByIDsSkipsUnpublished(t *testing.T) {
	s := newTestStore(t)
	seedPosts(t, s,
		postSeed{id: 1, theme: strPtr("ghost-story")},
		postSeed{id: 2, theme: strPtr("romance"), status: "draft"},
		postSeed{id: 3, metaTag: "Gothic"},
	)

	got, err := s.ContentByIDs(context.Background(), []int64{3, 2, 1})
	if err != nil {
		t.Fatalf("ContentByIDs: %v", err)
	}
	if !equalIDs(ids(got), []int64{1, 3}) {
		t.Fatalf("expected [1 3], got %v", ids(got))
	}
	if got[1].MetadataTheme == nil || *got[1].MetadataTheme != "Gothic" {
		t.Errorf("expected metadata theme Gothic, got %v", got[1].MetadataTheme)
	}
	if theme, ok := got[1].Theme(); !ok || theme != "gothic" {
		t.Errorf("expected resolved theme gothic, got %q (%v)", theme, ok)
	}

	empty, err := s.ContentByIDs(context.Background(), nil)
	if err != nil || len(empty) != 0 {
		t.Errorf("expected empty result for no ids, got %v (%v)", empty, err)
	}
}

func TestContentByTheme(t *testing.T) {
	s := newTestStore(t)
	seedPosts(t, s,
		postSeed{id: 1, theme: strPtr("Ghost-Story"), ageHours: 5},
		postSeed{id: 2, theme: strPtr("victorian ghost-story"), ageHours: 1},
		postSeed{id: 3, metaTag: "ghost-story", ageHours: 3},
		postSeed{id: 4, theme: strPtr("romance"), ageHours: 0},
		postSeed{id: 5, theme: strPtr("ghost_story"), ageHours: 0},
		postSeed{id: 6, theme: strPtr("ghost-story"), ageHours: 2, status: "draft"},
	)
	ctx := context.Background()

	tests := []struct {
		name    string
		themes  []string
		exclude []int64
		limit   int
		want    []int64
	}{
		{"primário e metadata", []string{"ghost-story"}, nil, 10, []int64{2, 3, 1}},
		{"com exclusão", []string{"ghost-story"}, []int64{2}, 10, []int64{3, 1}},
		{"limite", []string{"ghost-story"}, nil, 2, []int64{2, 3}},
		{"underscore é literal", []string{"ghost_story"}, nil, 10, []int64{5}},
		{"vários temas", []string{"romance", "ghost-story"}, []int64{1}, 10, []int64{4, 2, 3}},
		{"sem temas", nil, nil, 10, []int64{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := s.ContentByTheme(ctx, tt.themes, tt.exclude, tt.limit)
			if err != nil {
				t.Fatalf("ContentByTheme: %v", err)
			}
			if !equalIDs(ids(got), tt.want) {
				t.Errorf("expected %v, got %v", tt.want, ids(got))
			}
		})
	}
}

func TestTrendingAndRecent(t *testing.T) {
	s := newTestStore(t)
	seedPosts(t, s,
		postSeed{id: 1, theme: strPtr("horror"), likes: 50, ageHours: 48},
		postSeed{id: 2, theme: strPtr("horror"), likes: 50, ageHours: 2},
		postSeed{id: 3, theme: strPtr("romance"), likes: 80, ageHours: 24},
		postSeed{id: 4, theme: strPtr("romance"), likes: 1, ageHours: 0},
	)
	ctx := context.Background()

	trending, err := s.TrendingContent(ctx, nil, 3)
	if err != nil {
		t.Fatalf("TrendingContent: %v", err)
	}
	if !equalIDs(ids(trending), []int64{3, 2, 1}) {
		t.Errorf("expected trending [3 2 1], got %v", ids(trending))
	}

	horror, err := s.TrendingContent(ctx, []string{"Horror"}, 10)
	if err != nil {
		t.Fatalf("TrendingContent themed: %v", err)
	}
	if !equalIDs(ids(horror), []int64{2, 1}) {
		t.Errorf("expected themed trending [2 1], got %v", ids(horror))
	}

	recent, err := s.RecentContent(ctx, []int64{4}, 2)
	if err != nil {
		t.Fatalf("RecentContent: %v", err)
	}
	if !equalIDs(ids(recent), []int64{2, 3}) {
		t.Errorf("expected recent [2 3], got %v", ids(recent))
	}
}

func TestPeersAndLikedContent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	// usuário 7 curtiu 1, 2, 3
	for _, p := range []int64{1, 2, 3} {
		seedLike(t, s, 7, p, true)
	}
	// 20 compartilha 3 curtidas, 21 compartilha 2, 22 só 1, 23 tem 2 negativas
	for _, p := range []int64{1, 2, 3, 40, 41} {
		seedLike(t, s, 20, p, true)
	}
	for _, p := range []int64{1, 2, 41, 42} {
		seedLike(t, s, 21, p, true)
	}
	seedLike(t, s, 22, 1, true)
	seedLike(t, s, 22, 43, true)
	seedLike(t, s, 23, 1, false)
	seedLike(t, s, 23, 2, false)

	peers, err := s.PeersBySharedLikes(ctx, 7, []int64{1, 2, 3}, 2, 10)
	if err != nil {
		t.Fatalf("PeersBySharedLikes: %v", err)
	}
	if !equalIDs(peers, []int64{20, 21}) {
		t.Errorf("expected peers [20 21], got %v", peers)
	}

	liked, err := s.ContentLikedByUsers(ctx, peers, []int64{1, 2, 3}, 10)
	if err != nil {
		t.Fatalf("ContentLikedByUsers: %v", err)
	}
	if !equalIDs(liked, []int64{41, 42, 40}) {
		t.Errorf("expected liked [41 42 40], got %v", liked)
	}

	none, err := s.PeersBySharedLikes(ctx, 7, nil, 2, 10)
	if err != nil || len(none) != 0 {
		t.Errorf("expected no peers without history, got %v (%v)", none, err)
	}
}

func TestSavePerformance(t *testing.T) {
	s := newTestStore(t)
	rec := models.PerformanceRecord{
		Strategy:    models.StrategyContentBased,
		ResultCount: 5,
		DurationMs:  12,
		UserID:      7,
		Timestamp:   baseTime,
	}
	if err := s.SavePerformance(context.Background(), rec); err != nil {
		t.Fatalf("SavePerformance: %v", err)
	}

	var rows []PerformanceRecordRow
	if err := s.db.Find(&rows).Error; err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(rows) != 1 || rows[0].Strategy != "content_based" || rows[0].ResultCount != 5 {
		t.Errorf("unexpected rows: %+v", rows)
	}
}

func TestLikeCountsAfter(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	seedPosts(t, s,
		postSeed{id: 1, likes: 2},
		postSeed{id: 2, likes: 0},
		postSeed{id: 3, likes: 9},
	)
	seedLike(t, s, 10, 1, true)
	seedLike(t, s, 11, 1, true)
	seedLike(t, s, 10, 2, true)
	seedLike(t, s, 11, 2, false)

	counts, err := s.LikeCountsAfter(ctx, 0, 10)
	if err != nil {
		t.Fatalf("LikeCountsAfter: %v", err)
	}
	want := []LikeCount{
		{PostID: 1, Stored: 2, Actual: 2},
		{PostID: 2, Stored: 0, Actual: 1},
		{PostID: 3, Stored: 9, Actual: 0},
	}
	if len(counts) != len(want) {
		t.Fatalf("expected %d counts, got %+v", len(want), counts)
	}
	for i := range want {
		if counts[i] != want[i] {
			t.Errorf("counts[%d] = %+v, want %+v", i, counts[i], want[i])
		}
	}

	if err := s.SetLikesCount(ctx, 2, 1); err != nil {
		t.Fatalf("SetLikesCount: %v", err)
	}
	next, err := s.LikeCountsAfter(ctx, 1, 1)
	if err != nil {
		t.Fatalf("LikeCountsAfter page: %v", err)
	}
	if len(next) != 1 || next[0].Drifted() {
		t.Errorf("expected post 2 reconciled, got %+v", next)
	}

	if _, err := s.LikeCountsAfter(ctx, 0, 0); err != ErrInvalidBatch {
		t.Errorf("expected ErrInvalidBatch, got %v", err)
	}
}

func TestPostSlugGenerated(t *testing.T) {
	s := newTestStore(t)

	first := PostRecord{Title: "A Casa Assombrada", Status: StatusPublished, CreatedAt: baseTime}
	second := PostRecord{Title: "A Casa Assombrada", Status: StatusPublished, CreatedAt: baseTime}
	explicit := PostRecord{Title: "Neblina", Slug: "neblina", Status: StatusPublished, CreatedAt: baseTime}
	for _, rec := range []*PostRecord{&first, &second, &explicit} {
		if err := s.db.Create(rec).Error; err != nil {
			t.Fatalf("create: %v", err)
		}
	}

	if !strings.HasPrefix(first.Slug, "a-casa-assombrada-") {
		t.Errorf("slug = %q", first.Slug)
	}
	if first.Slug == second.Slug {
		t.Errorf("títulos iguais geraram o mesmo slug: %q", first.Slug)
	}
	if explicit.Slug != "neblina" {
		t.Errorf("slug explícito foi sobrescrito: %q", explicit.Slug)
	}
}

func TestSeedAndTableStatus(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	status, err := s.TableStatus(ctx)
	if err != nil {
		t.Fatalf("TableStatus: %v", err)
	}
	for _, table := range []string{"posts", "reading_progress", "reactions", "bookmarks", "recommendation_performance"} {
		if !status[table] {
			t.Errorf("tabela %s deveria existir", table)
		}
	}

	data, err := DecodeSeed(strings.NewReader(`{
		"posts": [
			{"id": 1, "title": "A Casa Assombrada", "author_id": 2, "theme": "ghost-story", "age_days": 1},
			{"id": 2, "title": "Neblina", "author_id": 2, "metadata_theme": "ghost-story", "age_days": 3},
			{"id": 3, "title": "Rascunho", "author_id": 2, "status": "draft", "age_days": 0}
		],
		"reads": [{"user_id": 7, "post_id": 1, "progress": 1, "age_days": 0}],
		"reactions": [
			{"user_id": 7, "post_id": 2, "positive": true},
			{"user_id": 8, "post_id": 2, "positive": true},
			{"user_id": 9, "post_id": 2, "positive": false}
		],
		"bookmarks": [{"user_id": 7, "post_id": 3}]
	}`))
	if err != nil {
		t.Fatalf("DecodeSeed: %v", err)
	}

	stats, err := s.Seed(ctx, data, baseTime)
	if err != nil {
		t.Fatalf("Seed: %v", err)
	}
	if stats != (SeedStats{Posts: 3, Reads: 1, Reactions: 3, Bookmarks: 1}) {
		t.Errorf("stats = %+v", stats)
	}

	got, err := s.ContentByTheme(ctx, []string{"ghost-story"}, nil, 10)
	if err != nil {
		t.Fatalf("ContentByTheme: %v", err)
	}
	if !equalIDs(ids(got), []int64{1, 2}) {
		t.Errorf("ids = %v, want [1 2]", ids(got))
	}
	for _, c := range got {
		if c.ID == 2 && c.LikesCount != 2 {
			t.Errorf("likes_count do post 2 = %d, want 2", c.LikesCount)
		}
	}

	// Seed repetido falha e não deixa inserções parciais
	if _, err := s.Seed(ctx, data, baseTime); err == nil {
		t.Fatal("esperava erro de chave duplicada")
	}
	total, err := s.CountPosts(ctx)
	if err != nil {
		t.Fatalf("CountPosts: %v", err)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
}

func TestDecodeSeedRejectsUnknownFields(t *testing.T) {
	if _, err := DecodeSeed(strings.NewReader(`{"postz": []}`)); err == nil {
		t.Error("esperava erro para campo desconhecido")
	}
}
