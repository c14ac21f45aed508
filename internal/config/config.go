// Package config gerencia configurações da aplicação via variáveis de ambiente.
//
// # Variáveis de Ambiente
//
// ## Servidor
//   - SERVER_PORT: Porta HTTP (default: 8080)
//   - GIN_MODE: debug/release/test (default: release)
//   - LOG_MODE: development/production (default: development)
//   - LOG_LEVEL: debug/info/warn/error (default: info)
//
// ## Banco de dados (PostgreSQL)
//   - DB_HOST, DB_PORT, DB_USER, DB_PASSWORD, DB_NAME, DB_SSLMODE
//   - DB_DSN: DSN completo, sobrescreve as variáveis acima
//   - DB_MAX_OPEN_CONNS (default: 20), DB_MAX_IDLE_CONNS (default: 5)
//
// ## Cache de trending
//   - REDIS_ADDR: Endereço do Redis. Se vazio usa cache em memória
//   - REDIS_PASSWORD, REDIS_DB
//   - CACHE_TRENDING_TTL_SECONDS: TTL do cache de trending (default: 60, 0 desabilita)
//
// ## Tracing
//   - TRACING_ENABLED: Habilita OpenTelemetry (default: false)
//   - TRACING_ENDPOINT: Endpoint OTLP gRPC (default: localhost:4317)
//
// ## Recomendação
//   - RECOMMEND_DEFAULT_LIMIT: Quantidade padrão de itens (default: 5)
//   - RECOMMEND_MAX_LIMIT: Quantidade máxima de itens (default: 50)
//   - RECOMMEND_REQUEST_TIMEOUT_MS: Timeout do pipeline por requisição (default: 5000)
//   - RECOMMEND_SIGNAL_CAP: Máximo de sinais por tipo (default: 15)
//   - RECOMMEND_HISTORY_CONTENT_CAP: Máximo de posts históricos lidos (default: 25)
//   - RECOMMEND_TOP_THEMES: Temas derivados mantidos (default: 5)
//   - RECOMMEND_RECENT_READ_DAYS: Janela de leitura recente (default: 7)
//   - RECOMMEND_WEIGHT_RECENT_READ / _LIKE / _BOOKMARK: Incrementos de afinidade (1.0 / 2.0 / 1.5)
//   - RECOMMEND_BONUS_PREFERRED / _DERIVED / _COLLABORATIVE: Bônus de score (20 / 15 / 25)
//   - RECOMMEND_RECENCY_MAX_BONUS: Bônus máximo de recência (default: 10)
//   - RECOMMEND_RECENCY_WINDOW_DAYS: Janela do bônus de recência (default: 7)
//   - RECOMMEND_POPULARITY_CAP: Teto do bônus de popularidade (default: 10)
//   - RECOMMEND_MIN_SHARED_LIKES: Curtidas em comum para considerar um par (default: 2)
//   - RECOMMEND_PEER_CAP / RECOMMEND_PEER_CONTENT_CAP: Limites da filtragem colaborativa (10 / 10)
//   - RECOMMEND_POPULAR_SHARE: Fração popular na suplementação (default: 0.6)
//
// ## Resiliência
//   - RESILIENCE_MAX_RETRIES: Tentativas por operação (default: 3)
//   - RESILIENCE_BASE_DELAY_MS: Atraso inicial do backoff (default: 100)
//   - RESILIENCE_MAX_DELAY_MS: Teto do backoff (default: 2000)
package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort string
	GinMode    string
	LogMode    string
	LogLevel   string

	Database DatabaseConfig
	Cache    CacheConfig

	// Tracing configuration
	TracingEnabled  bool
	TracingEndpoint string

	Recommend  RecommendConfig
	Resilience ResilienceConfig
}

// DatabaseConfig contém a configuração de conexão com o PostgreSQL
type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Name         string
	SSLMode      string
	DSN          string
	MaxOpenConns int
	MaxIdleConns int
}

// GetDSN retorna o DSN explícito ou monta um a partir dos campos
func (d DatabaseConfig) GetDSN() string {
	if d.DSN != "" {
		return d.DSN
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// CacheConfig controla o cache de resultados de trending
type CacheConfig struct {
	RedisAddr     string
	RedisPassword string
	RedisDB       int
	TrendingTTL   time.Duration
}

// RecommendConfig contém os parâmetros heurísticos do motor de recomendação.
// Nenhum destes valores tem derivação formal; são ajustáveis por ambiente.
type RecommendConfig struct {
	DefaultLimit   int
	MaxLimit       int
	RequestTimeout time.Duration

	SignalCap         int
	HistoryContentCap int
	TopThemes         int
	RecentReadWindow  time.Duration

	WeightBase       float64
	WeightRecentRead float64
	WeightLike       float64
	WeightBookmark   float64

	BonusPreferred     float64
	BonusDerived       float64
	BonusCollaborative float64

	RecencyMaxBonus float64
	RecencyWindow   time.Duration
	PopularityCap   float64

	OverFetchFactor  int
	MinSharedLikes   int
	PeerCap          int
	PeerContentCap   int
	PopularShare     float64
	PerformanceWrite time.Duration
}

// ResilienceConfig controla retry com backoff exponencial
type ResilienceConfig struct {
	MaxRetries int
	BaseDelay  time.Duration
	MaxDelay   time.Duration
}

func LoadConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{
		ServerPort: getEnv("SERVER_PORT", "8080"),
		GinMode:    getEnv("GIN_MODE", "release"),
		LogMode:    getEnv("LOG_MODE", "development"),
		LogLevel:   getEnv("LOG_LEVEL", "info"),

		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Name:         getEnv("DB_NAME", "contos"),
			SSLMode:      getEnv("DB_SSLMODE", "disable"),
			DSN:          getEnv("DB_DSN", ""),
			MaxOpenConns: getEnvInt("DB_MAX_OPEN_CONNS", 20),
			MaxIdleConns: getEnvInt("DB_MAX_IDLE_CONNS", 5),
		},

		Cache: CacheConfig{
			RedisAddr:     strings.TrimSpace(getEnv("REDIS_ADDR", "")),
			RedisPassword: getEnv("REDIS_PASSWORD", ""),
			RedisDB:       getEnvInt("REDIS_DB", 0),
			TrendingTTL:   time.Duration(getEnvInt("CACHE_TRENDING_TTL_SECONDS", 60)) * time.Second,
		},

		// Tracing configuration
		TracingEnabled:  getEnvBool("TRACING_ENABLED", false),
		TracingEndpoint: getEnv("TRACING_ENDPOINT", "localhost:4317"),

		Recommend:  loadRecommendConfig(),
		Resilience: loadResilienceConfig(),
	}

	if cfg.Recommend.DefaultLimit < 1 || cfg.Recommend.MaxLimit < cfg.Recommend.DefaultLimit {
		log.Fatalf("RECOMMEND_DEFAULT_LIMIT (%d) deve ser >= 1 e <= RECOMMEND_MAX_LIMIT (%d)",
			cfg.Recommend.DefaultLimit, cfg.Recommend.MaxLimit)
	}
	if cfg.Recommend.PopularShare < 0 || cfg.Recommend.PopularShare > 1 {
		log.Fatalf("RECOMMEND_POPULAR_SHARE deve estar entre 0 e 1, recebido %.2f", cfg.Recommend.PopularShare)
	}

	return cfg
}

// DefaultRecommendConfig retorna os valores padrão do motor, os mesmos usados quando nenhuma variável está definida
func DefaultRecommendConfig() RecommendConfig {
	return RecommendConfig{
		DefaultLimit:   5,
		MaxLimit:       50,
		RequestTimeout: 5 * time.Second,

		SignalCap:         15,
		HistoryContentCap: 25,
		TopThemes:         5,
		RecentReadWindow:  7 * 24 * time.Hour,

		WeightBase:       1.0,
		WeightRecentRead: 1.0,
		WeightLike:       2.0,
		WeightBookmark:   1.5,

		BonusPreferred:     20,
		BonusDerived:       15,
		BonusCollaborative: 25,

		RecencyMaxBonus: 10,
		RecencyWindow:   7 * 24 * time.Hour,
		PopularityCap:   10,

		OverFetchFactor:  3,
		MinSharedLikes:   2,
		PeerCap:          10,
		PeerContentCap:   10,
		PopularShare:     0.6,
		PerformanceWrite: 2 * time.Second,
	}
}

// DefaultResilienceConfig retorna o schedule padrão: 100ms, 200ms, 400ms... limitado a 2s
func DefaultResilienceConfig() ResilienceConfig {
	return ResilienceConfig{
		MaxRetries: 3,
		BaseDelay:  100 * time.Millisecond,
		MaxDelay:   2 * time.Second,
	}
}

func loadRecommendConfig() RecommendConfig {
	d := DefaultRecommendConfig()
	return RecommendConfig{
		DefaultLimit:   getEnvInt("RECOMMEND_DEFAULT_LIMIT", d.DefaultLimit),
		MaxLimit:       getEnvInt("RECOMMEND_MAX_LIMIT", d.MaxLimit),
		RequestTimeout: getEnvMillis("RECOMMEND_REQUEST_TIMEOUT_MS", d.RequestTimeout),

		SignalCap:         getEnvInt("RECOMMEND_SIGNAL_CAP", d.SignalCap),
		HistoryContentCap: getEnvInt("RECOMMEND_HISTORY_CONTENT_CAP", d.HistoryContentCap),
		TopThemes:         getEnvInt("RECOMMEND_TOP_THEMES", d.TopThemes),
		RecentReadWindow:  getEnvDays("RECOMMEND_RECENT_READ_DAYS", d.RecentReadWindow),

		WeightBase:       getEnvFloat("RECOMMEND_WEIGHT_BASE", d.WeightBase),
		WeightRecentRead: getEnvFloat("RECOMMEND_WEIGHT_RECENT_READ", d.WeightRecentRead),
		WeightLike:       getEnvFloat("RECOMMEND_WEIGHT_LIKE", d.WeightLike),
		WeightBookmark:   getEnvFloat("RECOMMEND_WEIGHT_BOOKMARK", d.WeightBookmark),

		BonusPreferred:     getEnvFloat("RECOMMEND_BONUS_PREFERRED", d.BonusPreferred),
		BonusDerived:       getEnvFloat("RECOMMEND_BONUS_DERIVED", d.BonusDerived),
		BonusCollaborative: getEnvFloat("RECOMMEND_BONUS_COLLABORATIVE", d.BonusCollaborative),

		RecencyMaxBonus: getEnvFloat("RECOMMEND_RECENCY_MAX_BONUS", d.RecencyMaxBonus),
		RecencyWindow:   getEnvDays("RECOMMEND_RECENCY_WINDOW_DAYS", d.RecencyWindow),
		PopularityCap:   getEnvFloat("RECOMMEND_POPULARITY_CAP", d.PopularityCap),

		OverFetchFactor:  getEnvInt("RECOMMEND_OVERFETCH_FACTOR", d.OverFetchFactor),
		MinSharedLikes:   getEnvInt("RECOMMEND_MIN_SHARED_LIKES", d.MinSharedLikes),
		PeerCap:          getEnvInt("RECOMMEND_PEER_CAP", d.PeerCap),
		PeerContentCap:   getEnvInt("RECOMMEND_PEER_CONTENT_CAP", d.PeerContentCap),
		PopularShare:     getEnvFloat("RECOMMEND_POPULAR_SHARE", d.PopularShare),
		PerformanceWrite: getEnvMillis("RECOMMEND_PERFORMANCE_WRITE_TIMEOUT_MS", d.PerformanceWrite),
	}
}

func loadResilienceConfig() ResilienceConfig {
	d := DefaultResilienceConfig()
	return ResilienceConfig{
		MaxRetries: getEnvInt("RESILIENCE_MAX_RETRIES", d.MaxRetries),
		BaseDelay:  getEnvMillis("RESILIENCE_BASE_DELAY_MS", d.BaseDelay),
		MaxDelay:   getEnvMillis("RESILIENCE_MAX_DELAY_MS", d.MaxDelay),
	}
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if value, exists := os.LookupEnv(key); exists {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultValue
}

func getEnvMillis(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if ms, err := strconv.Atoi(value); err == nil && ms >= 0 {
			return time.Duration(ms) * time.Millisecond
		}
	}
	return defaultValue
}

func getEnvDays(key string, defaultValue time.Duration) time.Duration {
	if value, exists := os.LookupEnv(key); exists {
		if days, err := strconv.ParseFloat(value, 64); err == nil && days >= 0 {
			return time.Duration(days * float64(24*time.Hour))
		}
	}
	return defaultValue
}
