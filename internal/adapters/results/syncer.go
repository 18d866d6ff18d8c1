package results

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"

	"github.com/stevillis/megasena/internal/adapters/repository"
	"github.com/stevillis/megasena/internal/domain/model"
	"github.com/stevillis/megasena/pkg/logger"
	"github.com/stevillis/megasena/pkg/metrics"
)

// Default syncer configuration constants.
const (
	defaultWorkerCount = 4
	defaultQueueSize   = 64
)

// Fetcher fetches official draws. *Client satisfies it.
type Fetcher interface {
	Fetch(ctx context.Context, contest int) (model.Draw, error)
	Latest(ctx context.Context) (model.Draw, error)
}

// Store is where backfilled draws land.
type Store interface {
	Put(ctx context.Context, draw model.Draw) error
	MaxContest(ctx context.Context) (int, error)
}

// Syncer backfills a contest range through a bounded worker pool fed by a
// buffered contest queue. Per-contest failures are counted, not fatal.
type Syncer struct {
	fetcher   Fetcher
	store     Store
	workers   int
	queueSize int

	logger logger.Logger
}

// NewSyncer creates a syncer with configuration options.
func NewSyncer(fetcher Fetcher, store Store, opts ...SyncerOption) *Syncer {
	if fetcher == nil {
		panic("results: nil fetcher")
	}
	if store == nil {
		panic("results: nil store")
	}

	s := &Syncer{
		fetcher:   fetcher,
		store:     store,
		workers:   defaultWorkerCount,
		queueSize: defaultQueueSize,
		logger:    logger.Get().Named("syncer"),
	}

	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Sync backfills contests in [from, to]. A non-positive to resolves to the
// latest upstream contest; a non-positive from resolves to one past the
// highest stored contest. The report counts stored and failed contests.
func (s *Syncer) Sync(ctx context.Context, from, to int) (model.SyncReport, error) {
	if to <= 0 {
		latest, err := s.fetcher.Latest(ctx)
		if err != nil {
			return model.SyncReport{}, fmt.Errorf("resolve latest contest: %w", err)
		}
		to = latest.Contest
	}
	if from <= 0 {
		max, err := s.store.MaxContest(ctx)
		if err != nil {
			return model.SyncReport{}, fmt.Errorf("resolve sync start: %w", err)
		}
		from = max + 1
	}

	report := model.SyncReport{From: from, To: to}
	if from > to {
		return report, nil
	}

	contests := make(chan int, s.queueSize)
	var (
		added  atomic.Int64
		failed atomic.Int64
		wg     sync.WaitGroup
	)

	for i := 0; i < s.workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for contest := range contests {
				if ctx.Err() != nil {
					// Drain the queue without counting once cancelled.
					continue
				}

				stored, err := s.syncOne(ctx, contest)
				if err != nil {
					failed.Add(1)
					metrics.RecordErrorByComponent("results", "contest_sync")
					s.logger.Warn(ctx, "contest sync failed",
						logger.Int("contest", contest),
						logger.Error(err),
					)
					continue
				}
				if stored {
					added.Add(1)
					metrics.RecordDrawSynced()
				}
			}
		}()
	}

feed:
	for contest := from; contest <= to; contest++ {
		select {
		case contests <- contest:
			metrics.UpdateSyncQueueDepth(len(contests))
		case <-ctx.Done():
			break feed
		}
	}
	close(contests)
	wg.Wait()
	metrics.UpdateSyncQueueDepth(0)

	report.Added = int(added.Load())
	report.Failed = int(failed.Load())

	if err := ctx.Err(); err != nil {
		return report, fmt.Errorf("sync cancelled: %w", err)
	}

	s.logger.Info(ctx, "sync finished",
		logger.Int("from", report.From),
		logger.Int("to", report.To),
		logger.Int("added", report.Added),
		logger.Int("failed", report.Failed),
	)
	return report, nil
}

// syncOne fetches and stores a single contest. Contests that are already
// stored count as neither added nor failed.
func (s *Syncer) syncOne(ctx context.Context, contest int) (bool, error) {
	draw, err := s.fetcher.Fetch(ctx, contest)
	if err != nil {
		return false, err
	}

	err = s.store.Put(ctx, draw)
	if errors.Is(err, repository.ErrDuplicateContest) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("store contest %d: %w", contest, err)
	}
	return true, nil
}
