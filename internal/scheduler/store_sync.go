package scheduler

import (
	"context"

	"github.com/muralboard/mural/internal/board"
	"github.com/muralboard/mural/internal/logger"
	redisstore "github.com/muralboard/mural/internal/store/redis"
)

// StoreSyncer hydrates the board from Redis on startup.
type StoreSyncer struct {
	store  *redisstore.Store
	board  *board.Board
	logger logger.Logger
}

// NewStoreSyncer creates a new store syncer
func NewStoreSyncer(
	store *redisstore.Store,
	b *board.Board,
	log logger.Logger,
) *StoreSyncer {
	return &StoreSyncer{
		store:  store,
		board:  b,
		logger: log,
	}
}

// Sync loads the persisted board into memory. Corrupted records are
// skipped with a warning; the board starts with whatever loads cleanly.
func (ss *StoreSyncer) Sync(ctx context.Context) error {
	ss.logger.Info("syncing board from redis to memory")

	reminders, skippedReminders, err := ss.store.GetAllReminders(ctx)
	if err != nil {
		return err
	}

	categories, skippedCategories, err := ss.store.GetAllCategories(ctx)
	if err != nil {
		return err
	}

	order, err := ss.store.GetOrder(ctx)
	if err != nil {
		ss.logger.Warn("failed to load board order, falling back to storage order",
			logger.Error(err))
		order = nil
	}

	name, err := ss.store.GetName(ctx)
	if err != nil {
		ss.logger.Warn("failed to load project name", logger.Error(err))
		name = ""
	}

	if skippedReminders > 0 || skippedCategories > 0 {
		ss.logger.Warn("skipped corrupted records during sync",
			logger.Int("reminders", skippedReminders),
			logger.Int("categories", skippedCategories))
	}

	ss.board.Hydrate(reminders, categories, order, name)

	ss.logger.Info("synced board from redis",
		logger.Int("reminders", len(reminders)),
		logger.Int("categories", len(categories)))

	return nil
}
