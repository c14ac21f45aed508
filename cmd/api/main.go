package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	_ "github.com/prefeitura-rio/app-recomendacao/docs"
	"github.com/prefeitura-rio/app-recomendacao/internal/api/handlers"
	"github.com/prefeitura-rio/app-recomendacao/internal/api/routes"
	"github.com/prefeitura-rio/app-recomendacao/internal/config"
	"github.com/prefeitura-rio/app-recomendacao/internal/logger"
	"github.com/prefeitura-rio/app-recomendacao/internal/observability"
	"github.com/prefeitura-rio/app-recomendacao/internal/recommend"
	"github.com/prefeitura-rio/app-recomendacao/internal/store"
)

// @title           Recomendação de Contos API
// @version         1.0
// @description     API de recomendações personalizadas de contos, combinando afinidade por temas, filtragem colaborativa e fallbacks por popularidade
// @termsOfService  http://swagger.io/terms/

// @contact.name   Prefeitura do Rio de Janeiro
// @contact.url    https://prefeitura.rio
// @contact.email  contato@prefeitura.rio

// @license.name  Apache 2.0
// @license.url   http://www.apache.org/licenses/LICENSE-2.0.html

// @host      services.staging.app.dados.rio/app-recomendacao

const trendingMemoryCacheSize = 256

func main() {
	cfg := config.LoadConfig()

	log, err := logger.New(cfg.LogMode, cfg.LogLevel)
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	gin.SetMode(cfg.GinMode)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	tracer := observability.InitTracer(ctx, cfg, log)
	defer tracer.Shutdown(context.Background())

	db, err := store.Open(cfg.Database, log)
	if err != nil {
		log.Fatal("failed to open database", "error", err)
	}
	st := store.New(db, log)
	defer st.Close()

	// Redis é opcional; sem ele o trending fica em cache local
	var (
		cache       store.TrendingCache
		cachePinger handlers.Pinger
	)
	if cfg.Cache.RedisAddr != "" {
		rdb, err := store.NewRedisClient(ctx, cfg.Cache.RedisAddr, cfg.Cache.RedisPassword, cfg.Cache.RedisDB)
		if err != nil {
			log.Warn("redis unavailable, using in-memory trending cache", "error", err, "addr", cfg.Cache.RedisAddr)
		} else {
			defer rdb.Close()
			cache = store.NewRedisTrendingCache(rdb, cfg.Cache.TrendingTTL)
			cachePinger = handlers.PingFunc(func(ctx context.Context) error { return rdb.Ping(ctx).Err() })
		}
	}
	if cache == nil {
		cache = store.NewMemoryTrendingCache(cfg.Cache.TrendingTTL, trendingMemoryCacheSize)
	}

	var recStore recommend.Store = st
	if cfg.Cache.TrendingTTL > 0 {
		recStore = store.NewCachedStore(st, cache, log)
	}

	engineCfg := recommend.NewConfig(cfg)
	if err := engineCfg.Validate(); err != nil {
		log.Fatal("invalid recommendation config", "error", err)
	}
	engine := recommend.NewEngine(recStore, st, engineCfg, log)

	r := routes.SetupRouter(cfg, routes.Dependencies{
		Engine:   engine,
		Database: st,
		Cache:    cachePinger,
		Logger:   log,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.ServerPort,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info("server started", "port", cfg.ServerPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()
	log.Info("shutting down server")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("server shutdown failed", "error", err)
	}
	if err := engine.Wait(shutdownCtx); err != nil {
		log.Warn("pending performance writes dropped", "error", err)
	}

	log.Info("server stopped")
}
