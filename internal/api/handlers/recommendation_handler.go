package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prefeitura-rio/app-recomendacao/internal/config"
	"github.com/prefeitura-rio/app-recomendacao/internal/logger"
	middlewares "github.com/prefeitura-rio/app-recomendacao/internal/middleware"
	"github.com/prefeitura-rio/app-recomendacao/internal/models"
)

// Recommender gera recomendações para um usuário
type Recommender interface {
	RecommendDetailed(ctx context.Context, userID int64, preferredThemes []string, limit int) models.RecommendationResult
}

// RecommendationHandler expõe o motor de recomendação
type RecommendationHandler struct {
	engine Recommender
	cfg    config.RecommendConfig
	log    *logger.Logger
}

// NewRecommendationHandler cria um novo handler de recomendações
func NewRecommendationHandler(engine Recommender, cfg config.RecommendConfig, log *logger.Logger) *RecommendationHandler {
	if log == nil {
		log = logger.NewNop()
	}
	return &RecommendationHandler{engine: engine, cfg: cfg, log: log.With("component", "recommendation_handler")}
}

// GetRecommendations godoc
// @Summary Recomendações personalizadas de contos
// @Description Retorna até `limit` contos para o leitor, combinando afinidade por temas, filtragem colaborativa e conteúdo popular/recente. Nunca recomenda contos já lidos, curtidos ou salvos pelo leitor. Falhas do banco degradam o resultado mas não geram erro.
// @Tags recommendations
// @Accept json
// @Produce json
// @Param user_id query int false "ID do leitor (obrigatório se não houver usuário autenticado)"
// @Param themes query string false "Temas preferidos, separados por vírgula"
// @Param limit query int false "Quantidade de itens (default: 5, máximo: 50)"
// @Success 200 {object} models.RecommendationResponse
// @Failure 400 {object} map[string]interface{} "Parâmetros inválidos"
// @Failure 403 {object} map[string]interface{} "user_id diferente do usuário autenticado"
// @Router /api/v1/recommendations [get]
func (h *RecommendationHandler) GetRecommendations(c *gin.Context) {
	var req models.RecommendationRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Parâmetros inválidos: " + err.Error()})
		return
	}

	if authID, ok := middlewares.GetUserID(c); ok {
		if req.UserID != 0 && req.UserID != authID {
			c.JSON(http.StatusForbidden, gin.H{"error": models.ErrUserMismatch.Error()})
			return
		}
		req.UserID = authID
	}

	if err := req.Validate(h.cfg.DefaultLimit, h.cfg.MaxLimit); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx := c.Request.Context()
	if h.cfg.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.cfg.RequestTimeout)
		defer cancel()
	}

	result := h.engine.RecommendDetailed(ctx, req.UserID, req.ParsedThemes, req.Limit)
	if ctx.Err() != nil {
		h.log.FromContext(ctx).Warn("recommendation deadline exceeded, returning partial result",
			"user_id", req.UserID,
			"count", len(result.Items),
		)
	}

	c.JSON(http.StatusOK, models.NewRecommendationResponse(&req, result))
}
