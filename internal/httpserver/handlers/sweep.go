package handlers

import (
	"net/http"

	"github.com/muralboard/mural/internal/httpserver/deps"
)

type sweepStateResponse struct {
	Held bool `json:"held"`
}

// HoldSweep pauses the archive-cycle sweeper while the client has a card
// open for editing. The hold expires on its own if never released.
func HoldSweep(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Sweeper == nil {
			writeError(w, http.StatusServiceUnavailable, "sweeper not running")
			return
		}
		d.Sweeper.Hold()
		writeJSON(w, http.StatusOK, sweepStateResponse{Held: true})
	}
}

func ReleaseSweep(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if d.Sweeper == nil {
			writeError(w, http.StatusServiceUnavailable, "sweeper not running")
			return
		}
		d.Sweeper.Release()
		writeJSON(w, http.StatusOK, sweepStateResponse{Held: false})
	}
}
