package main

import (
	"context"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/prefeitura-rio/app-recomendacao/internal/logger"
	"github.com/prefeitura-rio/app-recomendacao/internal/store"
)

// CounterStore são as operações usadas na reconciliação
type CounterStore interface {
	CountPosts(ctx context.Context) (int64, error)
	LikeCountsAfter(ctx context.Context, afterID int64, limit int) ([]store.LikeCount, error)
	SetLikesCount(ctx context.Context, postID int64, count int) error
}

type RecountConfig struct {
	BatchSize int
	Workers   int
	DryRun    bool
}

type RecountStats struct {
	Total     int64
	Checked   int64
	Updated   int64
	Unchanged int64
	Errors    int64
	StartTime time.Time
}

type Recounter struct {
	config *RecountConfig
	store  CounterStore
	log    *logger.Logger
	stats  *RecountStats
}

func NewRecounter(cfg *RecountConfig, st CounterStore, log *logger.Logger) *Recounter {
	if cfg.BatchSize <= 0 {
		cfg.BatchSize = 500
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}
	if log == nil {
		log = logger.NewNop()
	}
	return &Recounter{
		config: cfg,
		store:  st,
		log:    log.With("component", "recount"),
		stats:  &RecountStats{StartTime: time.Now()},
	}
}

// Run percorre todos os posts em ordem de id e corrige os contadores divergentes
func (r *Recounter) Run(ctx context.Context) error {
	r.log.Info("starting recount",
		"batch_size", r.config.BatchSize,
		"workers", r.config.Workers,
		"dry_run", r.config.DryRun,
	)

	total, err := r.store.CountPosts(ctx)
	if err != nil {
		return fmt.Errorf("erro ao contar posts: %w", err)
	}
	atomic.StoreInt64(&r.stats.Total, total)

	var wg sync.WaitGroup
	countChan := make(chan store.LikeCount, r.config.Workers*2)

	for i := 0; i < r.config.Workers; i++ {
		wg.Add(1)
		go func(workerID int) {
			defer wg.Done()
			for lc := range countChan {
				if err := r.process(ctx, lc); err != nil {
					r.log.Error("recount failed", "worker", workerID, "post_id", lc.PostID, "error", err)
					atomic.AddInt64(&r.stats.Errors, 1)
				}
			}
		}(i)
	}

	var afterID int64
	var fetchErr error
	for {
		batch, err := r.store.LikeCountsAfter(ctx, afterID, r.config.BatchSize)
		if err != nil {
			fetchErr = fmt.Errorf("erro ao buscar contadores: %w", err)
			break
		}
		if len(batch) == 0 {
			break
		}

		for _, lc := range batch {
			atomic.AddInt64(&r.stats.Checked, 1)
			if !lc.Drifted() {
				atomic.AddInt64(&r.stats.Unchanged, 1)
				continue
			}
			countChan <- lc
		}
		afterID = batch[len(batch)-1].PostID

		r.log.Info("recount progress",
			"checked", atomic.LoadInt64(&r.stats.Checked),
			"total", total,
			"updated", atomic.LoadInt64(&r.stats.Updated),
			"errors", atomic.LoadInt64(&r.stats.Errors),
		)

		if len(batch) < r.config.BatchSize {
			break
		}
	}

	close(countChan)
	wg.Wait()

	r.printStats()
	return fetchErr
}

func (r *Recounter) process(ctx context.Context, lc store.LikeCount) error {
	if r.config.DryRun {
		r.log.Info("[DRY-RUN] would update likes_count",
			"post_id", lc.PostID,
			"stored", lc.Stored,
			"actual", lc.Actual,
		)
		atomic.AddInt64(&r.stats.Updated, 1)
		return nil
	}

	if err := r.store.SetLikesCount(ctx, lc.PostID, lc.Actual); err != nil {
		return err
	}
	atomic.AddInt64(&r.stats.Updated, 1)
	return nil
}

// Stats retorna uma cópia das estatísticas correntes
func (r *Recounter) Stats() RecountStats {
	return RecountStats{
		Total:     atomic.LoadInt64(&r.stats.Total),
		Checked:   atomic.LoadInt64(&r.stats.Checked),
		Updated:   atomic.LoadInt64(&r.stats.Updated),
		Unchanged: atomic.LoadInt64(&r.stats.Unchanged),
		Errors:    atomic.LoadInt64(&r.stats.Errors),
		StartTime: r.stats.StartTime,
	}
}

func (r *Recounter) printStats() {
	s := r.Stats()
	r.log.Info("recount finished",
		"total", s.Total,
		"checked", s.Checked,
		"updated", s.Updated,
		"unchanged", s.Unchanged,
		"errors", s.Errors,
		"duration", time.Since(s.StartTime).String(),
		"dry_run", r.config.DryRun,
	)
}
