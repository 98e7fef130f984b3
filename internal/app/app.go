package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/muralboard/mural/internal/board"
	"github.com/muralboard/mural/internal/config"
	"github.com/muralboard/mural/internal/httpserver"
	"github.com/muralboard/mural/internal/httpserver/deps"
	"github.com/muralboard/mural/internal/logger"
	"github.com/muralboard/mural/internal/redis"
	"github.com/muralboard/mural/internal/scheduler"
	redisstore "github.com/muralboard/mural/internal/store/redis"
	"github.com/muralboard/mural/internal/transfer"
	"github.com/muralboard/mural/internal/version"
)

type App struct {
	cfg         *config.Config
	logger      logger.Logger
	server      *httpserver.Server
	redisClient *goredis.Client
	board       *board.Board
	recurrence  *scheduler.RecurrenceScheduler
	sweeper     *scheduler.ArchiveSweeper
}

func New() *App {
	cfg := config.Load()

	loggerClient := logger.New(cfg.LogLevel, cfg.PrettyLog)

	// Initialize Redis early - fail fast if unavailable
	loggerClient.Infof("Connecting to Redis at %s", cfg.RedisAddr)
	redisClient, err := redis.New(redis.ConnectOptions{
		Addr:           cfg.RedisAddr,
		User:           cfg.RedisUser,
		Password:       cfg.RedisPassword,
		DB:             cfg.RedisDB,
		DialTimeout:    cfg.RedisDialTimeout,
		ReadTimeout:    cfg.RedisReadTimeout,
		WriteTimeout:   cfg.RedisWriteTimeout,
		PoolSize:       cfg.RedisPoolSize,
		ConnectTimeout: cfg.RedisConnectTimeout,
		RetryInterval:  cfg.RedisRetryInterval,
		MaxWait:        cfg.RedisMaxWait,
		PingTimeout:    cfg.RedisPingTimeout,
	}, loggerClient)
	if err != nil {
		loggerClient.Errorf("Failed to connect to Redis: %v", err)
		os.Exit(1)
	}
	loggerClient.Info("Redis initialized successfully")

	// In-memory board, source of truth while running
	b := board.New()

	// Redis persistence layer
	store := redisstore.NewStore(redisClient)

	// Load the persisted board into memory on startup
	syncer := scheduler.NewStoreSyncer(store, b, loggerClient)
	if err := syncer.Sync(context.Background()); err != nil {
		loggerClient.Warn("failed to sync board from redis on startup, starting empty",
			logger.Error(err))
	}

	// Seed an empty board from the configured YAML file, if any
	if cfg.SeedFile != "" && b.Count() == 0 {
		seedBoard(cfg.SeedFile, b, store, loggerClient)
	}

	// Manual recurrence trigger, used by the import endpoint
	recurrenceTrigger := make(chan struct{}, 1)

	recurrence := scheduler.NewRecurrenceScheduler(
		b,
		store,
		loggerClient,
		cfg.RecurrenceInterval,
		time.Now,
		recurrenceTrigger,
	)

	sweeper := scheduler.NewArchiveSweeper(
		b,
		store,
		loggerClient,
		cfg.SweepInterval,
		cfg.SweepHoldTTL,
		time.Now,
	)

	// Dependencies passed to routes (extend as needed).
	d := deps.Deps{
		Logger:            loggerClient,
		StartTime:         time.Now(),
		Version:           version.Version,
		Commit:            version.Commit,
		BuildDate:         version.BuildDate,
		GoVersion:         version.GoVersion,
		TimeNow:           time.Now,
		AllowedHosts:      cfg.AllowedHosts,
		AllowedCIDRS:      cfg.AllowedCIDRS,
		AllowedOrigins:    cfg.AllowedOrigins,
		TrustProxy:        cfg.TrustProxy,
		RedisClient:       redisClient,
		Board:             b,
		Store:             store,
		Sweeper:           sweeper,
		RecurrenceTrigger: recurrenceTrigger,
		RateLimitBurst:    cfg.RateLimitBurst,
		RateLimitPerMin:   cfg.RateLimitPerIPMin,
		RateLimitMaxEntry: cfg.RateLimitMaxEntry,
	}

	server := httpserver.New(cfg, loggerClient, d)

	return &App{
		cfg:         cfg,
		logger:      loggerClient,
		server:      server,
		redisClient: redisClient,
		board:       b,
		recurrence:  recurrence,
		sweeper:     sweeper,
	}
}

// seedBoard fills an empty board from a YAML file and persists the result.
// A bad seed file only logs a warning; the server still starts.
func seedBoard(path string, b *board.Board, store *redisstore.Store, log logger.Logger) {
	bundle, err := transfer.NewLoader(path).Load(time.Now())
	if err != nil {
		log.Warn("failed to load seed file, skipping",
			logger.String("file", path),
			logger.Error(err))
		return
	}

	order := make([]string, 0, len(bundle.Reminders))
	for _, rem := range bundle.Reminders {
		order = append(order, rem.ID)
	}
	b.Hydrate(bundle.Reminders, bundle.Categories, order, bundle.ProjectName)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := store.SaveRemindersMany(ctx, bundle.Reminders); err != nil {
		log.Warn("failed to persist seeded reminders", logger.Error(err))
	}
	if err := store.SaveCategoriesMany(ctx, bundle.Categories); err != nil {
		log.Warn("failed to persist seeded categories", logger.Error(err))
	}
	if err := store.SaveOrder(ctx, order); err != nil {
		log.Warn("failed to persist seeded order", logger.Error(err))
	}
	if bundle.ProjectName != "" {
		if err := store.SaveName(ctx, bundle.ProjectName); err != nil {
			log.Warn("failed to persist seeded board name", logger.Error(err))
		}
	}

	log.Info("board seeded from file",
		logger.String("file", path),
		logger.Int("reminders", len(bundle.Reminders)),
		logger.Int("categories", len(bundle.Categories)))
}

func (a *App) Run() error {
	a.logger.Infof("🚀 Starting Mural v%s on %s", version.Version, a.cfg.ListenPort)
	a.logger.Infof("Mural %s (commit=%s, built=%s, go=%s)",
		version.Version, version.Commit, version.BuildDate, version.GoVersion)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Start recurrence generation (runs one pass immediately)
	if err := a.recurrence.Start(ctx); err != nil {
		return fmt.Errorf("failed to start recurrence scheduler: %w", err)
	}
	a.logger.Info("recurrence scheduler started",
		logger.Duration("interval", a.cfg.RecurrenceInterval))

	// Start the archive-cycle sweeper
	if err := a.sweeper.Start(ctx); err != nil {
		return fmt.Errorf("failed to start archive sweeper: %w", err)
	}
	a.logger.Info("archive sweeper started",
		logger.Duration("interval", a.cfg.SweepInterval))

	errCh := make(chan error, 1)
	go func() {
		if err := a.server.Start(); err != nil {
			errCh <- fmt.Errorf("http server error: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("⏳ Shutting down gracefully...")
	case err := <-errCh:
		return err
	}

	a.recurrence.Stop()
	a.sweeper.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.ShutdownTimeout)
	defer cancel()
	if err := a.server.Stop(shutdownCtx); err != nil {
		return fmt.Errorf("failed to stop server: %w", err)
	}

	if a.redisClient != nil {
		if err := a.redisClient.Close(); err != nil {
			a.logger.Warnf("failed to close redis: %v", err)
		} else {
			a.logger.Info("✅ Redis closed cleanly")
		}
	}

	a.logger.Info("✅ Mural stopped cleanly")
	return nil
}
