package recommend

import (
	"errors"
	"time"

	"github.com/prefeitura-rio/app-recomendacao/internal/config"
)

// Config agrupa os parâmetros do motor e da política de tentativas
type Config struct {
	config.RecommendConfig
	Resilience config.ResilienceConfig
}

// DefaultConfig retorna a configuração padrão
func DefaultConfig() *Config {
	return &Config{
		RecommendConfig: config.DefaultRecommendConfig(),
		Resilience:      config.DefaultResilienceConfig(),
	}
}

// NewConfig extrai a configuração do motor da configuração da aplicação
func NewConfig(app *config.Config) *Config {
	if app == nil {
		return DefaultConfig()
	}
	return &Config{RecommendConfig: app.Recommend, Resilience: app.Resilience}
}

// Validate verifica os parâmetros estruturais. Pesos e bônus são livres.
func (c *Config) Validate() error {
	switch {
	case c.MaxLimit < 1:
		return errors.New("max limit must be at least 1")
	case c.SignalCap < 1:
		return errors.New("signal cap must be at least 1")
	case c.HistoryContentCap < 1:
		return errors.New("history content cap must be at least 1")
	case c.OverFetchFactor < 1:
		return errors.New("over-fetch factor must be at least 1")
	case c.MinSharedLikes < 1:
		return errors.New("min shared likes must be at least 1")
	case c.PopularShare < 0 || c.PopularShare > 1:
		return errors.New("popular share must be between 0 and 1")
	}
	return nil
}

// Weights são os incrementos de afinidade por item do histórico
type Weights struct {
	Base             float64
	RecentRead       float64
	Like             float64
	Bookmark         float64
	RecentReadWindow time.Duration
}

// Weights retorna os pesos de afinidade configurados
func (c *Config) Weights() Weights {
	return Weights{
		Base:             c.WeightBase,
		RecentRead:       c.WeightRecentRead,
		Like:             c.WeightLike,
		Bookmark:         c.WeightBookmark,
		RecentReadWindow: c.RecentReadWindow,
	}
}

// Bonuses são as parcelas do score de um candidato
type Bonuses struct {
	Preferred     float64
	Derived       float64
	Collaborative float64
	RecencyMax    float64
	RecencyWindow time.Duration
	PopularityCap float64
}

// Bonuses retorna os bônus de score configurados
func (c *Config) Bonuses() Bonuses {
	return Bonuses{
		Preferred:     c.BonusPreferred,
		Derived:       c.BonusDerived,
		Collaborative: c.BonusCollaborative,
		RecencyMax:    c.RecencyMaxBonus,
		RecencyWindow: c.RecencyWindow,
		PopularityCap: c.PopularityCap,
	}
}
