package main

import (
	"context"
	"flag"
	"log"
	"os/signal"
	"syscall"

	"github.com/prefeitura-rio/app-recomendacao/internal/config"
	"github.com/prefeitura-rio/app-recomendacao/internal/logger"
	"github.com/prefeitura-rio/app-recomendacao/internal/store"
)

func main() {
	batchSize := flag.Int("batch", 500, "Posts por batch")
	workers := flag.Int("workers", 3, "Workers paralelos")
	dryRun := flag.Bool("dry-run", false, "Simular sem alterar")

	flag.Parse()

	cfg := config.LoadConfig()

	appLog, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		log.Fatalf("Erro ao criar logger: %v", err)
	}
	defer appLog.Sync()

	db, err := store.Open(cfg.Database, appLog)
	if err != nil {
		appLog.Fatal("failed to open database", "error", err)
	}
	st := store.New(db, appLog)
	defer st.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	recounter := NewRecounter(&RecountConfig{
		BatchSize: *batchSize,
		Workers:   *workers,
		DryRun:    *dryRun,
	}, st, appLog)

	if err := recounter.Run(ctx); err != nil {
		appLog.Fatal("recount failed", "error", err)
	}
}
