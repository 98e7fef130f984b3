package deps

import (
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/muralboard/mural/internal/board"
	"github.com/muralboard/mural/internal/logger"
	"github.com/muralboard/mural/internal/scheduler"
	redisstore "github.com/muralboard/mural/internal/store/redis"
)

type Deps struct {
	Logger            logger.Logger
	StartTime         time.Time
	Version           string
	Commit            string
	BuildDate         string
	GoVersion         string
	TimeNow           func() time.Time           // for testing, defaults to time.Now
	AllowedHosts      []string                   // Host headers allowed to access the server
	AllowedCIDRS      []string                   // IPs allowed to access healthz/readyz endpoints
	AllowedOrigins    []string                   // CORS origins for the web client
	TrustProxy        bool                       // true if running behind a trusted reverse proxy
	RedisClient       *redis.Client              // Redis client connection
	Board             *board.Board               // In-memory board, source of truth while running
	Store             *redisstore.Store          // Redis persistence, nil in tests
	Sweeper           *scheduler.ArchiveSweeper  // Archive-cycle sweeper, exposes hold/release
	RecurrenceTrigger chan struct{}              // Channel to trigger a manual recurrence pass
	RateLimitBurst    int
	RateLimitPerMin   int
	RateLimitMaxEntry int
}
