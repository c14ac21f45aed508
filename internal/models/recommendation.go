package models

import (
	"errors"

	"github.com/go-playground/validator/v10"
	"github.com/prefeitura-rio/app-recomendacao/internal/utils"
)

const (
	MaxThemes      = 10
	MaxThemeLength = 64
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// RecommendationRequest representa os parâmetros de uma requisição de recomendação
// @Description Parâmetros para recomendações personalizadas de contos.
type RecommendationRequest struct {
	// ID do usuário (obrigatório quando não vier do contexto autenticado)
	UserID int64 `form:"user_id" json:"user_id" validate:"gt=0" example:"42"`
	// Temas preferidos (comma-separated). Têm prioridade sobre os temas derivados do histórico.
	Themes string `form:"themes" json:"themes,omitempty" example:"ghost-story,gothic"`
	// Quantidade de itens (default: 5)
	Limit int `form:"limit" json:"limit,omitempty" validate:"gte=0" example:"5" minimum:"1" maximum:"50"`

	// Interno (preenchido por Validate, não exposto na API)
	ParsedThemes []string `form:"-" json:"-" swaggerignore:"true" validate:"max=10,dive,max=64"`
}

// Validate valida a requisição e aplica defaults.
// Limit zero vira defaultLimit; acima de maxLimit é truncado.
func (r *RecommendationRequest) Validate(defaultLimit, maxLimit int) error {
	r.ParsedThemes = utils.ParseThemes(r.Themes)

	if err := validate.Struct(r); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) || len(verrs) == 0 {
			return err
		}
		return translateValidationError(verrs[0])
	}

	if r.Limit == 0 {
		r.Limit = defaultLimit
	}
	if maxLimit > 0 && r.Limit > maxLimit {
		r.Limit = maxLimit
	}
	return nil
}

func translateValidationError(fe validator.FieldError) error {
	switch fe.StructField() {
	case "UserID":
		return ErrUserIDRequired
	case "Limit":
		return ErrInvalidLimit
	case "ParsedThemes":
		if fe.Tag() == "max" && fe.Kind().String() == "slice" {
			return ErrTooManyThemes
		}
		return ErrThemeTooLong
	}
	return ErrThemeTooLong
}

// IsValidationError indica se o erro é um erro de validação de entrada
func IsValidationError(err error) bool {
	return errors.Is(err, ErrUserIDRequired) ||
		errors.Is(err, ErrInvalidLimit) ||
		errors.Is(err, ErrTooManyThemes) ||
		errors.Is(err, ErrThemeTooLong)
}

// RecommendationResult é o resultado interno do motor
type RecommendationResult struct {
	Items      []Content
	Strategy   Strategy
	DurationMs int64
}

// RecommendationResponse representa a resposta da API de recomendações
type RecommendationResponse struct {
	Results  []Content   `json:"results"`
	Count    int         `json:"count"`
	Strategy Strategy    `json:"strategy"`
	Timing   TimingMeta  `json:"timing"`
	Request  RequestMeta `json:"request"`
}

// TimingMeta contém métricas de tempo
type TimingMeta struct {
	TotalMs int64 `json:"total_ms"`
}

// RequestMeta ecoa os parâmetros efetivamente usados
type RequestMeta struct {
	UserID int64    `json:"user_id"`
	Themes []string `json:"themes,omitempty"`
	Limit  int      `json:"limit"`
}

// NewRecommendationResponse monta a resposta a partir do resultado do motor
func NewRecommendationResponse(req *RecommendationRequest, result RecommendationResult) RecommendationResponse {
	items := result.Items
	if items == nil {
		items = []Content{}
	}
	return RecommendationResponse{
		Results:  items,
		Count:    len(items),
		Strategy: result.Strategy,
		Timing:   TimingMeta{TotalMs: result.DurationMs},
		Request: RequestMeta{
			UserID: req.UserID,
			Themes: req.ParsedThemes,
			Limit:  req.Limit,
		},
	}
}
