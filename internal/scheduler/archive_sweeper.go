package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/muralboard/mural/internal/board"
	"github.com/muralboard/mural/internal/domain"
	"github.com/muralboard/mural/internal/logger"
	redisstore "github.com/muralboard/mural/internal/store/redis"
)

const (
	// DefaultHoldTTL bounds how long a client-requested hold can suppress
	// sweeps. A crashed client must not wedge the sweeper forever.
	DefaultHoldTTL = 5 * time.Minute
)

// ArchiveSweeper periodically un-archives reminders whose deadline has
// cycled back into relevance. The predicate lives in domain.SweepUnarchive;
// this type owns the timer, the hold gate, and the write-back.
type ArchiveSweeper struct {
	board    *board.Board
	store    *redisstore.Store
	logger   logger.Logger
	interval time.Duration
	holdTTL  time.Duration
	now      func() time.Time
	stopCh   chan struct{}

	mu        sync.Mutex
	holdUntil time.Time
}

// NewArchiveSweeper creates a new archive sweeper. store may be nil
// (memory-only board).
func NewArchiveSweeper(
	b *board.Board,
	store *redisstore.Store,
	log logger.Logger,
	interval time.Duration,
	holdTTL time.Duration,
	now func() time.Time,
) *ArchiveSweeper {
	if holdTTL <= 0 {
		holdTTL = DefaultHoldTTL
	}

	return &ArchiveSweeper{
		board:    b,
		store:    store,
		logger:   log,
		interval: interval,
		holdTTL:  holdTTL,
		now:      now,
		stopCh:   make(chan struct{}),
	}
}

// Start begins the periodic sweep.
func (as *ArchiveSweeper) Start(ctx context.Context) error {
	// Run immediately on start
	as.Sweep(ctx)

	ticker := time.NewTicker(as.interval)
	go func() {
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				as.Sweep(ctx)
			case <-as.stopCh:
				return
			case <-ctx.Done():
				return
			}
		}
	}()

	return nil
}

// Stop stops the sweeper.
func (as *ArchiveSweeper) Stop() {
	close(as.stopCh)
}

// Hold suppresses sweeps until Release or until the hold TTL expires.
// The client calls this while a blocking edit dialog is open, so the
// sweep never mutates state mid-edit.
func (as *ArchiveSweeper) Hold() {
	as.mu.Lock()
	defer as.mu.Unlock()

	as.holdUntil = as.now().Add(as.holdTTL)
}

// Release lifts a hold.
func (as *ArchiveSweeper) Release() {
	as.mu.Lock()
	defer as.mu.Unlock()

	as.holdUntil = time.Time{}
}

// Held reports whether sweeps are currently suppressed.
func (as *ArchiveSweeper) Held() bool {
	as.mu.Lock()
	defer as.mu.Unlock()

	return as.now().Before(as.holdUntil)
}

// Sweep runs one pass of the unarchive predicate over the board.
// Stateless by design: every pass re-evaluates the full collection.
func (as *ArchiveSweeper) Sweep(ctx context.Context) {
	if as.Held() {
		as.logger.Debug("sweep skipped, hold active")
		return
	}

	now := as.now()
	ids := domain.SweepUnarchive(as.board.All(), domain.DateOf(now))
	if len(ids) == 0 {
		as.logger.Debug("nothing to unarchive")
		return
	}

	for _, id := range ids {
		r, ok := as.board.Get(id)
		if !ok {
			continue
		}
		r.Archived = false
		r.UpdatedAt = now
		as.board.Put(r)

		if as.store != nil {
			if err := as.store.SaveReminder(ctx, r); err != nil {
				as.logger.Warn("failed to persist unarchived reminder",
					logger.String("reminder_id", id),
					logger.Error(err))
			}
		}

		as.logger.Info("unarchived reminder with due deadline",
			logger.String("reminder_id", id),
			logger.String("title", r.Title))
	}
}
