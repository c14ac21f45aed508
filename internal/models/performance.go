package models

import "time"

// Strategy identifica qual estratégia terminal produziu a recomendação
type Strategy string

const (
	StrategyTrending      Strategy = "trending_fallback"
	StrategyRecent        Strategy = "recent_fallback"
	StrategyContentBased  Strategy = "content_based"
	StrategyCollaborative Strategy = "collaborative"
	StrategyMixed         Strategy = "mixed_recommendations"
	StrategyPopularRecent Strategy = "popular_recent_fallback"
	StrategyEmpty         Strategy = "empty"
)

// PerformanceRecord registra uma chamada ao motor. Somente inserção; o motor nunca lê estes registros.
type PerformanceRecord struct {
	Strategy    Strategy  `json:"strategy"`
	ResultCount int       `json:"result_count"`
	DurationMs  int64     `json:"duration_ms"`
	UserID      int64     `json:"user_id"`
	Timestamp   time.Time `json:"timestamp"`
}
