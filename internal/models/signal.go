package models

import "time"

// SignalKind classifica um sinal de engajamento
type SignalKind string

const (
	SignalRead     SignalKind = "read"
	SignalLike     SignalKind = "like"
	SignalBookmark SignalKind = "bookmark"
)

// ReadSignal é o progresso de leitura de um usuário em um post
type ReadSignal struct {
	UserID     int64     `json:"user_id"`
	PostID     int64     `json:"post_id"`
	LastReadAt time.Time `json:"last_read_at"`
	// Progress vai de 0 a 1
	Progress float64 `json:"progress"`
}

// LikeSignal é uma reação do usuário a um post
type LikeSignal struct {
	UserID     int64 `json:"user_id"`
	PostID     int64 `json:"post_id"`
	IsPositive bool  `json:"is_positive"`
}

// BookmarkSignal é um post salvo pelo usuário
type BookmarkSignal struct {
	UserID    int64     `json:"user_id"`
	PostID    int64     `json:"post_id"`
	CreatedAt time.Time `json:"created_at"`
}
