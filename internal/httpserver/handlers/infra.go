package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/muralboard/mural/internal/httpserver/deps"
)

type componentStatus struct {
	OK            bool   `json:"ok"`
	RemindersHeld *int   `json:"reminders_held,omitempty"`
	LastSync      string `json:"last_sync,omitempty"`
	Mode          string `json:"mode,omitempty"`
	Impact        string `json:"impact,omitempty"`
	Error         string `json:"error,omitempty"`
}

type infraResponse struct {
	Mode       string                     `json:"mode"`
	Components map[string]componentStatus `json:"components"`
}

// Infra reports the health of the board's moving parts: the in-memory
// board, Redis persistence, and the archive sweeper.
func Infra(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		count := d.Board.Count()
		lastSync := d.Board.LastSync()
		lastSyncStr := "never"
		if !lastSync.IsZero() {
			lastSyncStr = lastSync.Format("2006-01-02 15:04:05")
		}

		components := map[string]componentStatus{
			"board": {
				OK:            true,
				RemindersHeld: &count,
				LastSync:      lastSyncStr,
			},
			"redis":   checkRedis(d),
			"sweeper": checkSweeper(d),
		}

		writeJSON(w, http.StatusOK, infraResponse{
			Mode:       determineMode(components),
			Components: components,
		})
	}
}

func determineMode(components map[string]componentStatus) string {
	// Redis down means the board survives only in memory.
	if redis, exists := components["redis"]; exists && !redis.OK {
		return "degraded"
	}
	return "nominal"
}

func checkRedis(d deps.Deps) componentStatus {
	if d.RedisClient == nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "persistence-disabled",
			Error:  "client not initialized",
		}
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	if err := d.RedisClient.Ping(ctx).Err(); err != nil {
		return componentStatus{
			OK:     false,
			Mode:   "degraded",
			Impact: "persistence-disabled",
			Error:  "timeout",
		}
	}

	return componentStatus{
		OK:     true,
		Mode:   "optimal",
		Impact: "persistence-enabled",
		Error:  "none",
	}
}

func checkSweeper(d deps.Deps) componentStatus {
	if d.Sweeper == nil {
		return componentStatus{
			OK:     false,
			Impact: "archive-cycle-disabled",
			Error:  "not running",
		}
	}
	mode := "running"
	if d.Sweeper.Held() {
		mode = "held"
	}
	return componentStatus{OK: true, Mode: mode}
}
