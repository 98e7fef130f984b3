package handlers

import (
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/muralboard/mural/internal/httpserver/deps"
	"github.com/muralboard/mural/internal/logger"
	"github.com/muralboard/mural/internal/utils"
)

type boardResponse struct {
	Name       string    `json:"name"`
	Reminders  int       `json:"reminders"`
	Categories int       `json:"categories"`
	LastSync   time.Time `json:"lastSync,omitempty"`
}

func GetBoard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, boardResponse{
			Name:       d.Board.Name(),
			Reminders:  d.Board.Count(),
			Categories: len(d.Board.Categories()),
			LastSync:   d.Board.LastSync(),
		})
	}
}

type renameBoardRequest struct {
	Name string `json:"name"`
}

func RenameBoard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		var req renameBoardRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		d.Board.SetName(req.Name)
		if d.Store != nil {
			if err := d.Store.SaveName(r.Context(), req.Name); err != nil {
				d.Logger.Warn("failed to persist board name", logger.Error(err))
			}
		}

		writeJSON(w, http.StatusOK, renameBoardRequest{Name: req.Name})
	}
}
