package store

import "errors"

var (
	ErrNilDB         = errors.New("conexão com o banco não inicializada")
	ErrInvalidUserID = errors.New("user id inválido")
	ErrCacheMiss     = errors.New("cache: chave não encontrada")
	ErrInvalidBatch  = errors.New("tamanho de lote inválido")
)
