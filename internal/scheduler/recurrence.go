package scheduler

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/muralboard/mural/internal/board"
	"github.com/muralboard/mural/internal/domain"
	"github.com/muralboard/mural/internal/logger"
	redisstore "github.com/muralboard/mural/internal/store/redis"
)

// RecurrenceScheduler spawns occurrences from recurring templates.
// It runs once at startup, then on a fixed interval, and additionally
// right after midnight so a day change is picked up promptly even with a
// long interval. Generation is idempotent, so overlapping triggers are
// harmless.
type RecurrenceScheduler struct {
	board         *board.Board
	store         *redisstore.Store
	logger        logger.Logger
	cron          *cron.Cron
	interval      time.Duration
	now           func() time.Time
	manualTrigger chan struct{}
	stopCh        chan struct{}
}

// NewRecurrenceScheduler creates a new recurrence scheduler. store may be
// nil (memory-only board); now must not be nil.
func NewRecurrenceScheduler(
	b *board.Board,
	store *redisstore.Store,
	log logger.Logger,
	interval time.Duration,
	now func() time.Time,
	manualTrigger chan struct{},
) *RecurrenceScheduler {
	return &RecurrenceScheduler{
		board:         b,
		store:         store,
		logger:        log,
		cron:          cron.New(cron.WithSeconds()),
		interval:      interval,
		now:           now,
		manualTrigger: manualTrigger,
		stopCh:        make(chan struct{}),
	}
}

// Start runs one generation pass immediately, then schedules the periodic
// and midnight passes.
func (rs *RecurrenceScheduler) Start(ctx context.Context) error {
	if err := rs.Generate(ctx); err != nil {
		return fmt.Errorf("initial recurrence generation failed: %w", err)
	}

	seconds := int(rs.interval.Seconds())
	if seconds <= 0 {
		seconds = 60
	}
	if _, err := rs.cron.AddFunc(fmt.Sprintf("@every %ds", seconds), func() {
		if err := rs.Generate(ctx); err != nil {
			rs.logger.Error("recurrence generation failed", logger.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule recurrence interval: %w", err)
	}

	// Just past midnight, so the new day's occurrences appear right away.
	if _, err := rs.cron.AddFunc("5 0 0 * * *", func() {
		if err := rs.Generate(ctx); err != nil {
			rs.logger.Error("midnight recurrence generation failed", logger.Error(err))
		}
	}); err != nil {
		return fmt.Errorf("failed to schedule midnight generation: %w", err)
	}

	rs.cron.Start()

	if rs.manualTrigger != nil {
		go func() {
			for {
				select {
				case <-rs.manualTrigger:
					rs.logger.Info("manual recurrence generation triggered")
					if err := rs.Generate(ctx); err != nil {
						rs.logger.Error("recurrence generation failed", logger.Error(err))
					}
				case <-rs.stopCh:
					return
				case <-ctx.Done():
					return
				}
			}
		}()
	}

	return nil
}

// Stop stops the scheduler and waits for a running job to finish.
func (rs *RecurrenceScheduler) Stop() {
	close(rs.stopCh)
	<-rs.cron.Stop().Done()
}

// Generate runs one generation pass: compute today's occurrences, merge
// them into the board, persist best effort.
func (rs *RecurrenceScheduler) Generate(ctx context.Context) error {
	today := domain.DateOf(rs.now())

	created := domain.GenerateOccurrences(rs.board.All(), today)
	if len(created) == 0 {
		rs.logger.Debug("no occurrences to generate")
		return nil
	}

	added := rs.board.Merge(created)
	rs.logger.Info("generated recurring occurrences",
		logger.Int("created", added),
		logger.String("day", today.String()))

	if rs.store != nil {
		if err := rs.store.SaveRemindersMany(ctx, created); err != nil {
			rs.logger.Warn("failed to persist generated occurrences",
				logger.Error(err))
			// Don't fail - the board is the primary source
		}
		if err := rs.store.SaveOrder(ctx, rs.board.Order()); err != nil {
			rs.logger.Warn("failed to persist board order", logger.Error(err))
		}
	}

	return nil
}
