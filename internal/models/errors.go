package models

import "errors"

var (
	ErrUserIDRequired = errors.New("user_id é obrigatório e deve ser maior que zero")
	ErrInvalidLimit   = errors.New("limit inválido (use um inteiro maior que zero)")
	ErrTooManyThemes  = errors.New("quantidade de temas acima do permitido")
	ErrThemeTooLong   = errors.New("tema excede o tamanho máximo permitido")
	// ErrUserMismatch indica user_id diferente do usuário autenticado
	ErrUserMismatch = errors.New("user_id não corresponde ao usuário autenticado")
)
