package recommend

import (
	"context"
	"errors"
	"sort"
	"sync"
	"time"

	"github.com/prefeitura-rio/app-recomendacao/internal/models"
)

var errUnavailable = errors.New("store indisponível")

// fakeStore reproduz em memória a semântica das consultas do store relacional
type fakeStore struct {
	mu sync.Mutex

	posts     []models.Content
	reads     map[int64][]models.ReadSignal
	likes     map[int64][]int64 // usuário -> posts curtidos positivamente
	bookmarks map[int64][]models.BookmarkSignal

	fail   map[string]bool
	panics map[string]bool
	calls  map[string]int
}

func newFakeStore(posts ...models.Content) *fakeStore {
	return &fakeStore{
		posts:     posts,
		reads:     make(map[int64][]models.ReadSignal),
		likes:     make(map[int64][]int64),
		bookmarks: make(map[int64][]models.BookmarkSignal),
		fail:      make(map[string]bool),
		panics:    make(map[string]bool),
		calls:     make(map[string]int),
	}
}

func (f *fakeStore) record(op string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls[op]++
	if f.panics[op] {
		panic("fake store: " + op)
	}
	if f.fail[op] {
		return errUnavailable
	}
	return nil
}

func (f *fakeStore) callCount(op string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls[op]
}

func (f *fakeStore) ReadingHistory(_ context.Context, userID int64, limit int) ([]models.ReadSignal, error) {
	if err := f.record("ReadingHistory"); err != nil {
		return nil, err
	}
	return capped(f.reads[userID], limit), nil
}

func (f *fakeStore) PositiveLikes(_ context.Context, userID int64, limit int) ([]models.LikeSignal, error) {
	if err := f.record("PositiveLikes"); err != nil {
		return nil, err
	}
	out := make([]models.LikeSignal, 0)
	for _, id := range f.likes[userID] {
		out = append(out, models.LikeSignal{UserID: userID, PostID: id, IsPositive: true})
	}
	return capped(out, limit), nil
}

func (f *fakeStore) Bookmarks(_ context.Context, userID int64, limit int) ([]models.BookmarkSignal, error) {
	if err := f.record("Bookmarks"); err != nil {
		return nil, err
	}
	return capped(f.bookmarks[userID], limit), nil
}

func (f *fakeStore) ContentByIDs(_ context.Context, ids []int64) ([]models.Content, error) {
	if err := f.record("ContentByIDs"); err != nil {
		return nil, err
	}
	want := toSet(ids)
	out := make([]models.Content, 0)
	for _, p := range f.posts {
		if _, ok := want[p.ID]; ok {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (f *fakeStore) PeersBySharedLikes(_ context.Context, userID int64, postIDs []int64, minShared, limit int) ([]int64, error) {
	if err := f.record("PeersBySharedLikes"); err != nil {
		return nil, err
	}
	history := toSet(postIDs)
	type peer struct {
		id     int64
		shared int
	}
	var peers []peer
	for uid, liked := range f.likes {
		if uid == userID {
			continue
		}
		shared := 0
		for _, id := range liked {
			if _, ok := history[id]; ok {
				shared++
			}
		}
		if shared >= minShared {
			peers = append(peers, peer{uid, shared})
		}
	}
	sort.Slice(peers, func(i, j int) bool {
		if peers[i].shared != peers[j].shared {
			return peers[i].shared > peers[j].shared
		}
		return peers[i].id < peers[j].id
	})
	out := make([]int64, 0, len(peers))
	for _, p := range peers {
		out = append(out, p.id)
	}
	return capped(out, limit), nil
}

func (f *fakeStore) ContentLikedByUsers(_ context.Context, userIDs []int64, exclude []int64, limit int) ([]int64, error) {
	if err := f.record("ContentLikedByUsers"); err != nil {
		return nil, err
	}
	excluded := toSet(exclude)
	counts := make(map[int64]int)
	for _, uid := range userIDs {
		for _, id := range f.likes[uid] {
			if _, ok := excluded[id]; !ok {
				counts[id]++
			}
		}
	}
	out := make([]int64, 0, len(counts))
	for id := range counts {
		out = append(out, id)
	}
	sort.Slice(out, func(i, j int) bool {
		if counts[out[i]] != counts[out[j]] {
			return counts[out[i]] > counts[out[j]]
		}
		return out[i] > out[j]
	})
	return capped(out, limit), nil
}

func (f *fakeStore) ContentByTheme(_ context.Context, themes []string, exclude []int64, limit int) ([]models.Content, error) {
	if err := f.record("ContentByTheme"); err != nil {
		return nil, err
	}
	excluded := toSet(exclude)
	out := make([]models.Content, 0)
	for _, p := range f.posts {
		if _, ok := excluded[p.ID]; ok {
			continue
		}
		if p.MatchesAny(themes) {
			out = append(out, p)
		}
	}
	sortRecent(out)
	return capped(out, limit), nil
}

func (f *fakeStore) TrendingContent(_ context.Context, themes []string, limit int) ([]models.Content, error) {
	if err := f.record("TrendingContent"); err != nil {
		return nil, err
	}
	out := make([]models.Content, 0)
	for _, p := range f.posts {
		if len(themes) == 0 || p.MatchesAny(themes) {
			out = append(out, p)
		}
	}
	SortTrending(out)
	return capped(out, limit), nil
}

func (f *fakeStore) RecentContent(_ context.Context, exclude []int64, limit int) ([]models.Content, error) {
	if err := f.record("RecentContent"); err != nil {
		return nil, err
	}
	excluded := toSet(exclude)
	out := make([]models.Content, 0)
	for _, p := range f.posts {
		if _, ok := excluded[p.ID]; !ok {
			out = append(out, p)
		}
	}
	sortRecent(out)
	return capped(out, limit), nil
}

func sortRecent(items []models.Content) {
	sort.Slice(items, func(i, j int) bool {
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.After(items[j].CreatedAt)
		}
		return items[i].ID > items[j].ID
	})
}

func toSet(ids []int64) map[int64]struct{} {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

// fakePerf captura os registros de performance
type fakePerf struct {
	mu      sync.Mutex
	records []models.PerformanceRecord
	err     error
	panics  bool
}

func (p *fakePerf) SavePerformance(_ context.Context, rec models.PerformanceRecord) error {
	if p.panics {
		panic("falha inesperada")
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.records = append(p.records, rec)
	return nil
}

func (p *fakePerf) all() []models.PerformanceRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.PerformanceRecord{}, p.records...)
}

var testNow = time.Date(2026, 5, 20, 12, 0, 0, 0, time.UTC)

func post(id int64, theme string, likes int, ageDays float64) models.Content {
	c := models.Content{
		ID:         id,
		Title:      "conto",
		AuthorID:   1,
		LikesCount: likes,
		CreatedAt:  testNow.Add(-time.Duration(ageDays * float64(24*time.Hour))),
	}
	if theme != "" {
		t := theme
		c.ThemeCategory = &t
	}
	return c
}

func testConfig() *Config {
	cfg := DefaultConfig()
	cfg.Resilience.BaseDelay = time.Millisecond
	cfg.Resilience.MaxDelay = 2 * time.Millisecond
	return cfg
}

func newTestEngine(store Store, perf PerformanceWriter) *Engine {
	return NewEngine(store, perf, testConfig(), nil, WithClock(func() time.Time { return testNow }))
}

func idsOf(items []models.Content) []int64 {
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
