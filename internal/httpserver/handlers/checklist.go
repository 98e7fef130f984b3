package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/muralboard/mural/internal/domain"
	"github.com/muralboard/mural/internal/httpserver/deps"
	"github.com/muralboard/mural/internal/utils"
)

type checklistItemRequest struct {
	Text string `json:"text"`
}

// AddChecklistItem appends a new unchecked item to a reminder's checklist.
func AddChecklistItem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		rem, ok := d.Board.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "reminder not found")
			return
		}

		var req checklistItemRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}

		item := domain.ChecklistItem{
			ID:   uuid.NewString(),
			Text: req.Text,
		}
		rem.Checklist = append(rem.Checklist, item)
		rem.UpdatedAt = d.TimeNow()
		d.Board.Put(rem)
		persistReminder(d, r, rem)

		writeJSON(w, http.StatusCreated, item)
	}
}

type checklistItemPatch struct {
	Text *string `json:"text"`
	Done *bool   `json:"done"`
}

// UpdateChecklistItem edits an item's text or toggles done. Checking an item
// stamps CompletedAt; unchecking clears it.
func UpdateChecklistItem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		rem, ok := d.Board.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "reminder not found")
			return
		}

		itemID := chi.URLParam(r, "itemID")
		idx := -1
		for i := range rem.Checklist {
			if rem.Checklist[i].ID == itemID {
				idx = i
				break
			}
		}
		if idx < 0 {
			writeError(w, http.StatusNotFound, "checklist item not found")
			return
		}

		var patch checklistItemPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}

		item := &rem.Checklist[idx]
		if patch.Text != nil {
			if strings.TrimSpace(*patch.Text) == "" {
				writeError(w, http.StatusBadRequest, "text cannot be empty")
				return
			}
			item.Text = *patch.Text
		}
		if patch.Done != nil && item.Done != *patch.Done {
			item.Done = *patch.Done
			if item.Done {
				now := d.TimeNow()
				item.CompletedAt = &now
			} else {
				item.CompletedAt = nil
			}
		}

		rem.UpdatedAt = d.TimeNow()
		d.Board.Put(rem)
		persistReminder(d, r, rem)

		writeJSON(w, http.StatusOK, *item)
	}
}

type checklistOrderRequest struct {
	Order []string `json:"order"`
}

// ReorderChecklist rearranges a reminder's checklist. The body must be a
// permutation of the current item ids.
func ReorderChecklist(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		rem, ok := d.Board.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "reminder not found")
			return
		}

		var req checklistOrderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if len(req.Order) != len(rem.Checklist) {
			writeError(w, http.StatusBadRequest, "order must list every checklist item exactly once")
			return
		}

		byID := make(map[string]domain.ChecklistItem, len(rem.Checklist))
		for _, item := range rem.Checklist {
			byID[item.ID] = item
		}
		reordered := make([]domain.ChecklistItem, 0, len(req.Order))
		for _, id := range req.Order {
			item, ok := byID[id]
			if !ok {
				writeError(w, http.StatusBadRequest, "unknown checklist item: "+id)
				return
			}
			delete(byID, id)
			reordered = append(reordered, item)
		}

		rem.Checklist = reordered
		rem.UpdatedAt = d.TimeNow()
		d.Board.Put(rem)
		persistReminder(d, r, rem)

		writeJSON(w, http.StatusOK, rem.Checklist)
	}
}

func DeleteChecklistItem(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rem, ok := d.Board.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "reminder not found")
			return
		}

		itemID := chi.URLParam(r, "itemID")
		kept := rem.Checklist[:0]
		found := false
		for _, item := range rem.Checklist {
			if item.ID == itemID {
				found = true
				continue
			}
			kept = append(kept, item)
		}
		if !found {
			writeError(w, http.StatusNotFound, "checklist item not found")
			return
		}

		rem.Checklist = kept
		rem.UpdatedAt = d.TimeNow()
		d.Board.Put(rem)
		persistReminder(d, r, rem)

		w.WriteHeader(http.StatusNoContent)
	}
}
