package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/muralboard/mural/internal/domain"
	"github.com/muralboard/mural/internal/httpserver/deps"
	"github.com/muralboard/mural/internal/logger"
	"github.com/muralboard/mural/internal/utils"
)

func ListCategories(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, d.Board.Categories())
	}
}

type categoryRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

func CreateCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		var req categoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if strings.TrimSpace(req.Name) == "" {
			writeError(w, http.StatusBadRequest, "name is required")
			return
		}

		c := &domain.Category{
			ID:    uuid.NewString(),
			Name:  req.Name,
			Color: req.Color,
		}
		d.Board.PutCategory(c)
		persistCategory(d, r, c)

		writeJSON(w, http.StatusCreated, c)
	}
}

type categoryPatch struct {
	Name  *string `json:"name"`
	Color *string `json:"color"`
}

func UpdateCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		c, ok := d.Board.GetCategory(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}

		var patch categoryPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}

		if patch.Name != nil {
			if strings.TrimSpace(*patch.Name) == "" {
				writeError(w, http.StatusBadRequest, "name cannot be empty")
				return
			}
			c.Name = *patch.Name
		}
		if patch.Color != nil {
			c.Color = *patch.Color
		}

		d.Board.PutCategory(c)
		persistCategory(d, r, c)

		writeJSON(w, http.StatusOK, c)
	}
}

// DeleteCategory removes a category and detaches it from every reminder
// that referenced it. Reminders themselves are never deleted.
func DeleteCategory(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		detached, ok := d.Board.DeleteCategory(id)
		if !ok {
			writeError(w, http.StatusNotFound, "category not found")
			return
		}

		if d.Store != nil {
			if err := d.Store.DeleteCategory(r.Context(), id); err != nil {
				d.Logger.Warn("failed to delete persisted category",
					logger.String("id", id),
					logger.Error(err))
			}
			// Detached reminders changed too, keep them in sync.
			for _, remID := range detached {
				if rem, ok := d.Board.Get(remID); ok {
					persistReminder(d, r, rem)
				}
			}
		}

		d.Logger.Info("category deleted",
			logger.String("id", id),
			logger.Int("detached_reminders", len(detached)))

		w.WriteHeader(http.StatusNoContent)
	}
}

func persistCategory(d deps.Deps, r *http.Request, c *domain.Category) {
	if d.Store == nil {
		return
	}
	if err := d.Store.SaveCategory(r.Context(), c); err != nil {
		d.Logger.Warn("failed to persist category",
			logger.String("id", c.ID),
			logger.Error(err))
	}
}
