package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	SeedFile           string        // optional YAML board seed, applied only to an empty board
	SweepInterval      time.Duration // interval for the archive-cycle sweep (default: 1m)
	SweepHoldTTL       time.Duration // max lifetime of a client-requested sweep hold (default: 5m)
	RecurrenceInterval time.Duration // interval for recurrence generation passes (default: 5m)

	// Redis
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDialTimeout    time.Duration // ex: 5s
	RedisReadTimeout    time.Duration // ex: 3s
	RedisWriteTimeout   time.Duration // ex: 3s
	RedisPoolSize       int           // connection pool size
	RedisConnectTimeout time.Duration // total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // initial wait between retries, grows exponentially
	RedisMaxWait        time.Duration // max wait between retries
	RedisPingTimeout    time.Duration // timeout for each ping attempt

	AllowedHosts   []string // optional, restrict access to specific Host headers
	AllowedCIDRS   []string // optional, restrict access to specific IPs/CIDRs
	AllowedOrigins []string // optional, CORS origins for the web client
	TrustProxy     bool     // true => trust X-Forwarded-For headers

	RateLimitBurst    int // token bucket burst for mutating routes
	RateLimitPerIPMin int // tokens refilled per IP per minute
	RateLimitMaxEntry int // max tracked client IPs
}

func Load() *Config {
	cfg := &Config{
		// Server settings
		ListenPort:      getenv("MURAL_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("MURAL_SHUTDOWN_TIMEOUT", 5*time.Second),

		// Logging
		LogLevel:  getenv("MURAL_LOG_LEVEL", "info"),
		PrettyLog: mustBool("MURAL_PRETTY_LOG", true),

		// Board behavior
		SeedFile:           getenv("MURAL_SEED_FILE", ""), // Optional, empty = no seeding
		SweepInterval:      mustDuration("MURAL_SWEEP_INTERVAL", time.Minute),
		SweepHoldTTL:       mustDuration("MURAL_SWEEP_HOLD_TTL", 5*time.Minute),
		RecurrenceInterval: mustDuration("MURAL_RECURRENCE_INTERVAL", 5*time.Minute),

		// Redis settings
		RedisAddr:           requireEnv("MURAL_REDIS_ADDR"),
		RedisUser:           getenv("MURAL_REDIS_USERNAME", ""),
		RedisPassword:       getenv("MURAL_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("MURAL_REDIS_DB", 0),
		RedisDialTimeout:    mustDuration("MURAL_REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisReadTimeout:    mustDuration("MURAL_REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWriteTimeout:   mustDuration("MURAL_REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisPoolSize:       getenvInt("MURAL_REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("MURAL_REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("MURAL_REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisMaxWait:        mustDuration("MURAL_REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("MURAL_REDIS_PING_TIMEOUT", 5*time.Second),

		// Access restrictions
		AllowedHosts:   splitAndTrim(getenv("MURAL_ALLOWED_HOSTS", "")),
		AllowedCIDRS:   splitAndTrim(getenv("MURAL_ALLOWED_CIDRS", "")),
		AllowedOrigins: splitAndTrim(getenv("MURAL_ALLOWED_ORIGINS", "")),
		TrustProxy:     mustBool("MURAL_TRUST_PROXY", false),

		// Rate limiting (mutating routes)
		RateLimitBurst:    getenvInt("MURAL_RATE_LIMIT_BURST", 30),
		RateLimitPerIPMin: getenvInt("MURAL_RATE_LIMIT_PER_MIN", 120),
		RateLimitMaxEntry: getenvInt("MURAL_RATE_LIMIT_MAX_ENTRIES", 1024),
	}

	return cfg
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func requireEnv(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic(fmt.Sprintf("❌ FATAL: Required environment variable %s is not set", key))
	}
	return v
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
