// Package store implementa as consultas de engajamento e conteúdo sobre PostgreSQL (gorm).
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/prefeitura-rio/app-recomendacao/internal/config"
	"github.com/prefeitura-rio/app-recomendacao/internal/logger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLogger "gorm.io/gorm/logger"
)

// Store lê sinais e conteúdos do banco relacional. Seguro para uso concorrente.
type Store struct {
	db  *gorm.DB
	log *logger.Logger
}

// New cria um Store sobre uma conexão já aberta
func New(db *gorm.DB, baseLog *logger.Logger) *Store {
	if baseLog == nil {
		baseLog = logger.NewNop()
	}
	return &Store{db: db, log: baseLog.With("component", "store")}
}

// Open abre a conexão com o PostgreSQL e configura o pool
func Open(cfg config.DatabaseConfig, log *logger.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.GetDSN()), &gorm.Config{
		Logger: gormLogger.Default.LogMode(gormLogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("erro ao conectar ao banco: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("erro ao obter pool de conexões: %w", err)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	if log != nil {
		log.Info("database connected", "host", cfg.Host, "db", cfg.Name)
	}
	return db, nil
}

// DB expõe a conexão para ferramentas de manutenção
func (s *Store) DB() *gorm.DB {
	return s.db
}

// Ping verifica a conexão com o banco
func (s *Store) Ping(ctx context.Context) error {
	if s.db == nil {
		return ErrNilDB
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

// AutoMigrate cria ou atualiza as tabelas usadas pelo serviço
func (s *Store) AutoMigrate(ctx context.Context) error {
	if s.db == nil {
		return ErrNilDB
	}
	if err := s.db.WithContext(ctx).AutoMigrate(AllModels()...); err != nil {
		return fmt.Errorf("erro ao migrar tabelas: %w", err)
	}
	return nil
}

// Close fecha o pool de conexões
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// published restringe a consulta a posts publicados (o soft delete já é aplicado pelo gorm)
func (s *Store) published(ctx context.Context) *gorm.DB {
	return s.db.WithContext(ctx).Model(&PostRecord{}).Where("status = ?", StatusPublished)
}

func excludeIDs(q *gorm.DB, column string, ids []int64) *gorm.DB {
	if len(ids) == 0 {
		return q
	}
	return q.Where(column+" NOT IN ?", ids)
}
