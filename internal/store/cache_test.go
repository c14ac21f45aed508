package store

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prefeitura-rio/app-recomendacao/internal/logger"
	"github.com/prefeitura-rio/app-recomendacao/internal/models"
)

func TestTrendingKey(t *testing.T) {
	a := TrendingKey([]string{"Horror", "gothic"}, 5)
	b := TrendingKey([]string{" horror", "Gothic", "horror"}, 5)
	if a != b {
		t.Errorf("expected equivalent theme lists to share a key: %s != %s", a, b)
	}
	if a == TrendingKey([]string{"horror", "gothic"}, 6) {
		t.Error("expected different limits to produce different keys")
	}
	if TrendingKey(nil, 5) == TrendingKey([]string{"horror"}, 5) {
		t.Error("expected themed and unthemed keys to differ")
	}
}

func TestMemoryTrendingCacheExpiry(t *testing.T) {
	c := NewMemoryTrendingCache(time.Minute, 10)
	now := baseTime
	c.now = func() time.Time { return now }
	ctx := context.Background()

	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Fatalf("expected miss on empty cache, got %v", err)
	}

	items := []models.Content{{ID: 1}, {ID: 2}}
	if err := c.Set(ctx, "k", items); err != nil {
		t.Fatalf("Set: %v", err)
	}
	items[0].ID = 99

	got, err := c.Get(ctx, "k")
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if len(got) != 2 || got[0].ID != 1 {
		t.Errorf("expected cached copy [1 2], got %+v", got)
	}

	now = now.Add(2 * time.Minute)
	if _, err := c.Get(ctx, "k"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected miss after ttl, got %v", err)
	}
}

func TestMemoryTrendingCacheEviction(t *testing.T) {
	c := NewMemoryTrendingCache(time.Hour, 2)
	now := baseTime
	c.now = func() time.Time { return now }
	ctx := context.Background()

	_ = c.Set(ctx, "a", nil)
	now = now.Add(time.Second)
	_ = c.Set(ctx, "b", nil)
	now = now.Add(time.Second)
	_ = c.Set(ctx, "c", nil)

	if c.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", c.Len())
	}
	if _, err := c.Get(ctx, "a"); !errors.Is(err, ErrCacheMiss) {
		t.Errorf("expected oldest entry evicted, got %v", err)
	}
	if _, err := c.Get(ctx, "c"); err != nil {
		t.Errorf("expected newest entry present, got %v", err)
	}
}

type failingCache struct{}

func (failingCache) Get(context.Context, string) ([]models.Content, error) {
	return nil, errors.New("redis fora do ar")
}

func (failingCache) Set(context.Context, string, []models.Content) error {
	return errors.New("redis fora do ar")
}

func TestCachedStoreServesFromCache(t *testing.T) {
	s := newTestStore(t)
	seedPosts(t, s,
		postSeed{id: 1, likes: 10},
		postSeed{id: 2, likes: 5},
	)
	cached := NewCachedStore(s, NewMemoryTrendingCache(time.Minute, 10), logger.NewNop())
	ctx := context.Background()

	first, err := cached.TrendingContent(ctx, nil, 5)
	if err != nil {
		t.Fatalf("TrendingContent: %v", err)
	}
	if !equalIDs(ids(first), []int64{1, 2}) {
		t.Fatalf("expected [1 2], got %v", ids(first))
	}

	seedPosts(t, s, postSeed{id: 3, likes: 100})

	second, err := cached.TrendingContent(ctx, nil, 5)
	if err != nil {
		t.Fatalf("TrendingContent: %v", err)
	}
	if !equalIDs(ids(second), []int64{1, 2}) {
		t.Errorf("expected cached result [1 2], got %v", ids(second))
	}

	// consultas não cacheadas continuam indo ao banco
	recent, err := cached.RecentContent(ctx, nil, 5)
	if err != nil || len(recent) != 3 {
		t.Errorf("expected 3 recent posts, got %v (%v)", ids(recent), err)
	}
}

func TestCachedStoreDegradesOnCacheFailure(t *testing.T) {
	s := newTestStore(t)
	seedPosts(t, s, postSeed{id: 1, likes: 10})
	cached := NewCachedStore(s, failingCache{}, logger.NewNop())

	got, err := cached.TrendingContent(context.Background(), nil, 5)
	if err != nil {
		t.Fatalf("expected direct read when cache fails, got %v", err)
	}
	if !equalIDs(ids(got), []int64{1}) {
		t.Errorf("expected [1], got %v", ids(got))
	}
}
