package store

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/prefeitura-rio/app-recomendacao/internal/logger"
	"github.com/prefeitura-rio/app-recomendacao/internal/metrics"
	"github.com/prefeitura-rio/app-recomendacao/internal/models"
	"github.com/prefeitura-rio/app-recomendacao/internal/utils"
	"github.com/redis/go-redis/v9"
)

// TrendingCache guarda resultados de TrendingContent. Get retorna ErrCacheMiss quando a chave
// não existe ou expirou.
type TrendingCache interface {
	Get(ctx context.Context, key string) ([]models.Content, error)
	Set(ctx context.Context, key string, items []models.Content) error
}

// TrendingKey gera a chave de cache para uma consulta de trending
func TrendingKey(themes []string, limit int) string {
	normalized := utils.DedupeThemes(themes)
	keyData := fmt.Sprintf("%s|%d", strings.Join(normalized, ","), limit)
	hash := sha256.Sum256([]byte(keyData))
	return "recommend:trending:" + hex.EncodeToString(hash[:16])
}

// MemoryTrendingCache armazena resultados de trending em memória
type MemoryTrendingCache struct {
	data    map[string]*cachedTrending
	mu      sync.RWMutex
	ttl     time.Duration
	maxSize int
	now     func() time.Time
}

type cachedTrending struct {
	Items     []models.Content
	Timestamp time.Time
}

// NewMemoryTrendingCache cria um cache em memória
func NewMemoryTrendingCache(ttl time.Duration, maxSize int) *MemoryTrendingCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if maxSize <= 0 {
		maxSize = 500
	}
	return &MemoryTrendingCache{
		data:    make(map[string]*cachedTrending),
		ttl:     ttl,
		maxSize: maxSize,
		now:     time.Now,
	}
}

// Get busca um resultado no cache
func (c *MemoryTrendingCache) Get(_ context.Context, key string) ([]models.Content, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	if cached, ok := c.data[key]; ok {
		if c.now().Sub(cached.Timestamp) < c.ttl {
			return cloneContents(cached.Items), nil
		}
	}
	return nil, ErrCacheMiss
}

// Set armazena um resultado no cache
func (c *MemoryTrendingCache) Set(_ context.Context, key string, items []models.Content) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	// Limpa entradas expiradas se cache está cheio
	if len(c.data) >= c.maxSize {
		c.cleanup()
	}

	c.data[key] = &cachedTrending{
		Items:     cloneContents(items),
		Timestamp: c.now(),
	}
	return nil
}

// Len retorna o número de entradas (inclusive expiradas)
func (c *MemoryTrendingCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.data)
}

// cleanup remove entradas expiradas
func (c *MemoryTrendingCache) cleanup() {
	now := c.now()
	for key, cached := range c.data {
		if now.Sub(cached.Timestamp) > c.ttl {
			delete(c.data, key)
		}
	}

	// Se ainda está cheio, remove a mais antiga
	if len(c.data) >= c.maxSize {
		oldest := now
		oldestKey := ""
		for key, cached := range c.data {
			if cached.Timestamp.Before(oldest) {
				oldest = cached.Timestamp
				oldestKey = key
			}
		}
		if oldestKey != "" {
			delete(c.data, oldestKey)
		}
	}
}

func cloneContents(items []models.Content) []models.Content {
	if items == nil {
		return []models.Content{}
	}
	out := make([]models.Content, len(items))
	copy(out, items)
	return out
}

// RedisTrendingCache armazena resultados de trending no Redis como JSON
type RedisTrendingCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisClient cria o cliente e valida a conexão
func NewRedisClient(ctx context.Context, addr, password string, db int) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:        addr,
		Password:    password,
		DB:          db,
		DialTimeout: 2 * time.Second,
		ReadTimeout: 500 * time.Millisecond,
	})

	pingCtx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("erro ao conectar ao redis: %w", err)
	}
	return client, nil
}

// NewRedisTrendingCache cria um cache sobre um cliente Redis existente
func NewRedisTrendingCache(client *redis.Client, ttl time.Duration) *RedisTrendingCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &RedisTrendingCache{client: client, ttl: ttl}
}

func (c *RedisTrendingCache) Get(ctx context.Context, key string) ([]models.Content, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, err
	}

	var items []models.Content
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("cache de trending corrompido: %w", err)
	}
	return items, nil
}

func (c *RedisTrendingCache) Set(ctx context.Context, key string, items []models.Content) error {
	if items == nil {
		items = []models.Content{}
	}
	raw, err := json.Marshal(items)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, key, raw, c.ttl).Err()
}

// CachedStore decora o Store com cache de TrendingContent. As demais consultas
// são delegadas diretamente.
type CachedStore struct {
	*Store
	cache TrendingCache
	log   *logger.Logger
}

// NewCachedStore cria o decorator
func NewCachedStore(s *Store, cache TrendingCache, log *logger.Logger) *CachedStore {
	if log == nil {
		log = logger.NewNop()
	}
	return &CachedStore{Store: s, cache: cache, log: log.With("component", "trending_cache")}
}

// TrendingContent consulta o cache antes do banco. Falhas do cache não afetam o resultado.
func (c *CachedStore) TrendingContent(ctx context.Context, themes []string, limit int) ([]models.Content, error) {
	key := TrendingKey(themes, limit)

	items, err := c.cache.Get(ctx, key)
	switch {
	case err == nil:
		metrics.TrendingCacheLookups.WithLabelValues("hit").Inc()
		return items, nil
	case errors.Is(err, ErrCacheMiss):
		metrics.TrendingCacheLookups.WithLabelValues("miss").Inc()
	default:
		metrics.TrendingCacheLookups.WithLabelValues("error").Inc()
		c.log.Warn("trending cache read failed", "error", err)
	}

	items, err = c.Store.TrendingContent(ctx, themes, limit)
	if err != nil {
		return nil, err
	}

	if err := c.cache.Set(ctx, key, items); err != nil {
		c.log.Warn("trending cache write failed", "error", err)
	}
	return items, nil
}
