package handlers

import (
	"io"
	"net/http"

	"github.com/muralboard/mural/internal/httpserver/deps"
	"github.com/muralboard/mural/internal/logger"
	"github.com/muralboard/mural/internal/transfer"
)

// maxImportBytes caps the import body. Boards are small; anything larger
// is almost certainly not a board file.
const maxImportBytes = 8 << 20

// ExportBoard serializes the whole board as a downloadable backup file.
func ExportBoard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bundle := &transfer.Bundle{
			ProjectName: d.Board.Name(),
			Reminders:   d.Board.All(),
			Categories:  d.Board.Categories(),
		}

		data, err := transfer.Encode(bundle)
		if err != nil {
			d.Logger.Error("failed to encode export", logger.Error(err))
			writeError(w, http.StatusInternalServerError, "failed to encode board")
			return
		}

		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Content-Disposition", `attachment; filename="mural-export.json"`)
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(data)
	}
}

type importResponse struct {
	Reminders  int `json:"reminders"`
	Categories int `json:"categories"`
}

// ImportBoard replaces the whole board with the uploaded file. Import is
// all-or-nothing: a malformed file changes nothing and returns 400.
func ImportBoard(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		body := http.MaxBytesReader(w, r.Body, maxImportBytes)
		data, err := io.ReadAll(body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "failed to read body")
			return
		}

		bundle, err := transfer.Decode(data)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		order := make([]string, 0, len(bundle.Reminders))
		for _, rem := range bundle.Reminders {
			order = append(order, rem.ID)
		}

		name := bundle.ProjectName
		if name == "" {
			name = d.Board.Name()
		}
		d.Board.Hydrate(bundle.Reminders, bundle.Categories, order, name)

		if d.Store != nil {
			ctx := r.Context()
			if err := d.Store.ReplaceAllReminders(ctx, bundle.Reminders); err != nil {
				d.Logger.Warn("failed to persist imported reminders", logger.Error(err))
			}
			if err := d.Store.ReplaceAllCategories(ctx, bundle.Categories); err != nil {
				d.Logger.Warn("failed to persist imported categories", logger.Error(err))
			}
			if err := d.Store.SaveOrder(ctx, order); err != nil {
				d.Logger.Warn("failed to persist imported order", logger.Error(err))
			}
			if err := d.Store.SaveName(ctx, name); err != nil {
				d.Logger.Warn("failed to persist imported board name", logger.Error(err))
			}
		}

		// Imported templates may be due today; nudge the recurrence pass.
		if d.RecurrenceTrigger != nil {
			select {
			case d.RecurrenceTrigger <- struct{}{}:
			default:
			}
		}

		d.Logger.Info("board imported",
			logger.Int("reminders", len(bundle.Reminders)),
			logger.Int("categories", len(bundle.Categories)))

		writeJSON(w, http.StatusOK, importResponse{
			Reminders:  len(bundle.Reminders),
			Categories: len(bundle.Categories),
		})
	}
}
