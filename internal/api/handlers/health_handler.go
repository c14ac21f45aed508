package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger verifica uma dependência externa
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingFunc adapta uma função para Pinger
type PingFunc func(ctx context.Context) error

func (f PingFunc) Ping(ctx context.Context) error { return f(ctx) }

// HealthHandler gerencia os endpoints de health check
type HealthHandler struct {
	database Pinger
	cache    Pinger
}

// NewHealthHandler cria um novo handler de health check. cache pode ser nil quando o
// serviço usa cache em memória.
func NewHealthHandler(database Pinger, cache Pinger) *HealthHandler {
	return &HealthHandler{
		database: database,
		cache:    cache,
	}
}

// HealthResponse representa a resposta do health check
type HealthResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Error     string            `json:"error,omitempty"`
	Timestamp int64             `json:"timestamp"`
}

// Liveness godoc
// @Summary Liveness probe endpoint
// @Description Verifica se a aplicação está viva (sem checagem de dependências externas)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Router /liveness [get]
func (h *HealthHandler) Liveness(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{
		Status:    "alive",
		Timestamp: time.Now().Unix(),
	})
}

// Readiness godoc
// @Summary Readiness probe endpoint
// @Description Verifica se a aplicação está pronta para receber tráfego (valida o PostgreSQL)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /readiness [get]
func (h *HealthHandler) Readiness(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "ready",
		Checks:    make(map[string]string),
		Timestamp: time.Now().Unix(),
	}

	// O banco é obrigatório; sem ele o motor só devolveria listas vazias
	if err := h.database.Ping(ctx); err != nil {
		response.Checks["database"] = "failed"
		response.Status = "not_ready"
		response.Error = "Database not available"
	} else {
		response.Checks["database"] = "ok"
	}

	statusCode := http.StatusOK
	if response.Status == "not_ready" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}

// Health godoc
// @Summary Comprehensive health check endpoint
// @Description Verifica a saúde completa da aplicação (para monitoramento externo de uptime)
// @Tags health
// @Produce json
// @Success 200 {object} HealthResponse
// @Failure 503 {object} HealthResponse
// @Router /health [get]
func (h *HealthHandler) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	response := HealthResponse{
		Status:    "healthy",
		Checks:    make(map[string]string),
		Timestamp: time.Now().Unix(),
	}

	if err := h.database.Ping(ctx); err != nil {
		response.Checks["database"] = "failed"
		response.Status = "unhealthy"
		response.Error = "Database connectivity check failed"
	} else {
		response.Checks["database"] = "ok"
	}

	// Redis é opcional: falha degrada para leitura direta do trending
	if h.cache != nil {
		if err := h.cache.Ping(ctx); err != nil {
			response.Checks["cache"] = "degraded"
		} else {
			response.Checks["cache"] = "ok"
		}
	}

	statusCode := http.StatusOK
	if response.Status == "unhealthy" {
		statusCode = http.StatusServiceUnavailable
	}

	c.JSON(statusCode, response)
}
