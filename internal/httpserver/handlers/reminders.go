package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/muralboard/mural/internal/domain"
	"github.com/muralboard/mural/internal/httpserver/deps"
	"github.com/muralboard/mural/internal/logger"
	"github.com/muralboard/mural/internal/utils"
)

// reminderView is a reminder plus its status, computed at response time so
// a card can cross the overdue boundary without anything being written.
type reminderView struct {
	*domain.Reminder
	Status domain.StatusKind `json:"status"`
}

func viewOf(r *domain.Reminder, today domain.Date) reminderView {
	return reminderView{Reminder: r, Status: r.Status(today)}
}

// persistReminder writes one reminder to Redis, best effort. The in-memory
// board is the source of truth while running; a failed write only costs
// durability across restarts.
func persistReminder(d deps.Deps, r *http.Request, rem *domain.Reminder) {
	if d.Store == nil {
		return
	}
	if err := d.Store.SaveReminder(r.Context(), rem); err != nil {
		d.Logger.Warn("failed to persist reminder",
			logger.String("id", rem.ID),
			logger.Error(err))
	}
}

func persistOrder(d deps.Deps, r *http.Request) {
	if d.Store == nil {
		return
	}
	if err := d.Store.SaveOrder(r.Context(), d.Board.Order()); err != nil {
		d.Logger.Warn("failed to persist board order", logger.Error(err))
	}
}

// ListReminders returns the board's reminders in board order, with optional
// filters: ?status=, ?archived=, ?category=, ?favorite=, ?pinned=, ?q=.
func ListReminders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()

		var statusFilter domain.StatusKind
		if s := q.Get("status"); s != "" {
			kind, ok := domain.ParseStatusKind(s)
			if !ok {
				writeError(w, http.StatusBadRequest, "unknown status: "+s)
				return
			}
			statusFilter = kind
		}

		var archived, favorite, pinned *bool
		for _, f := range []struct {
			name string
			dst  **bool
		}{
			{"archived", &archived},
			{"favorite", &favorite},
			{"pinned", &pinned},
		} {
			if v := q.Get(f.name); v != "" {
				b, err := strconv.ParseBool(v)
				if err != nil {
					writeError(w, http.StatusBadRequest, "invalid "+f.name+" filter")
					return
				}
				*f.dst = &b
			}
		}

		category := q.Get("category")
		search := strings.ToLower(strings.TrimSpace(q.Get("q")))
		today := domain.DateOf(d.TimeNow())

		out := make([]reminderView, 0, d.Board.Count())
		for _, rem := range d.Board.All() {
			if archived != nil && rem.Archived != *archived {
				continue
			}
			if favorite != nil && rem.Favorite != *favorite {
				continue
			}
			if pinned != nil && rem.Pinned != *pinned {
				continue
			}
			if category != "" && rem.CategoryID != category {
				continue
			}
			v := viewOf(rem, today)
			if statusFilter != "" && v.Status != statusFilter {
				continue
			}
			if search != "" && !matchesSearch(rem, search) {
				continue
			}
			out = append(out, v)
		}

		writeJSON(w, http.StatusOK, out)
	}
}

func matchesSearch(rem *domain.Reminder, search string) bool {
	if strings.Contains(strings.ToLower(rem.Title), search) ||
		strings.Contains(strings.ToLower(rem.Description), search) ||
		strings.Contains(strings.ToLower(rem.Notes), search) {
		return true
	}
	for _, tag := range rem.Hashtags() {
		if strings.Contains(strings.ToLower(tag), search) {
			return true
		}
	}
	return false
}

type createReminderRequest struct {
	Title             string                 `json:"title"`
	Description       string                 `json:"description"`
	Deadline          *domain.Date           `json:"deadline"`
	Color             string                 `json:"color"`
	Notes             string                 `json:"notes"`
	CategoryID        string                 `json:"categoryId"`
	Checklist         []domain.ChecklistItem `json:"checklist"`
	RecurrenceDays    []int                  `json:"recurrenceDays"`
	ChecklistTemplate bool                   `json:"checklistTemplate"`
	Pinned            bool                   `json:"pinned"`
	Favorite          bool                   `json:"favorite"`
}

func CreateReminder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		var req createReminderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if strings.TrimSpace(req.Title) == "" {
			writeError(w, http.StatusBadRequest, "title is required")
			return
		}
		if req.CategoryID != "" {
			if _, ok := d.Board.GetCategory(req.CategoryID); !ok {
				writeError(w, http.StatusBadRequest, "unknown category: "+req.CategoryID)
				return
			}
		}

		now := d.TimeNow()
		rem := &domain.Reminder{
			ID:                uuid.NewString(),
			Title:             req.Title,
			Description:       req.Description,
			Deadline:          req.Deadline,
			Color:             req.Color,
			Notes:             req.Notes,
			CategoryID:        req.CategoryID,
			RecurrenceDays:    req.RecurrenceDays,
			ChecklistTemplate: req.ChecklistTemplate,
			Pinned:            req.Pinned,
			Favorite:          req.Favorite,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
		for _, item := range req.Checklist {
			if item.ID == "" {
				item.ID = uuid.NewString()
			}
			rem.Checklist = append(rem.Checklist, item)
		}

		d.Board.Put(rem)
		persistReminder(d, r, rem)
		persistOrder(d, r)

		writeJSON(w, http.StatusCreated, viewOf(rem, domain.DateOf(now)))
	}
}

func GetReminder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rem, ok := d.Board.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "reminder not found")
			return
		}
		writeJSON(w, http.StatusOK, viewOf(rem, domain.DateOf(d.TimeNow())))
	}
}

// reminderPatch uses pointers so absent fields are left untouched. Deadline
// is raw JSON to tell "absent" apart from an explicit null that clears it.
type reminderPatch struct {
	Title             *string                 `json:"title"`
	Description       *string                 `json:"description"`
	Deadline          json.RawMessage         `json:"deadline"`
	Color             *string                 `json:"color"`
	Notes             *string                 `json:"notes"`
	CategoryID        *string                 `json:"categoryId"`
	Checklist         *[]domain.ChecklistItem `json:"checklist"`
	Snippets          *[]domain.Snippet       `json:"snippets"`
	RecurrenceDays    *[]int                  `json:"recurrenceDays"`
	ChecklistTemplate *bool                   `json:"checklistTemplate"`
	Archived          *bool                   `json:"archived"`
	Pinned            *bool                   `json:"pinned"`
	Favorite          *bool                   `json:"favorite"`
}

func UpdateReminder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		rem, ok := d.Board.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "reminder not found")
			return
		}

		var patch reminderPatch
		if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}

		if patch.Title != nil {
			if strings.TrimSpace(*patch.Title) == "" {
				writeError(w, http.StatusBadRequest, "title cannot be empty")
				return
			}
			rem.Title = *patch.Title
		}
		if patch.Description != nil {
			rem.Description = *patch.Description
		}
		if len(patch.Deadline) > 0 {
			if string(patch.Deadline) == "null" {
				rem.Deadline = nil
			} else {
				var day domain.Date
				if err := json.Unmarshal(patch.Deadline, &day); err != nil {
					writeError(w, http.StatusBadRequest, "invalid deadline")
					return
				}
				rem.Deadline = &day
			}
		}
		if patch.Color != nil {
			rem.Color = *patch.Color
		}
		if patch.Notes != nil {
			rem.Notes = *patch.Notes
		}
		if patch.CategoryID != nil {
			if *patch.CategoryID != "" {
				if _, ok := d.Board.GetCategory(*patch.CategoryID); !ok {
					writeError(w, http.StatusBadRequest, "unknown category: "+*patch.CategoryID)
					return
				}
			}
			rem.CategoryID = *patch.CategoryID
		}
		if patch.Checklist != nil {
			items := *patch.Checklist
			for i := range items {
				if items[i].ID == "" {
					items[i].ID = uuid.NewString()
				}
			}
			rem.Checklist = items
		}
		if patch.Snippets != nil {
			snippets := *patch.Snippets
			for i := range snippets {
				if snippets[i].ID == "" {
					snippets[i].ID = uuid.NewString()
				}
			}
			rem.Snippets = snippets
		}
		if patch.RecurrenceDays != nil {
			rem.RecurrenceDays = *patch.RecurrenceDays
		}
		if patch.ChecklistTemplate != nil {
			rem.ChecklistTemplate = *patch.ChecklistTemplate
		}
		if patch.Archived != nil {
			rem.Archived = *patch.Archived
		}
		if patch.Pinned != nil {
			rem.Pinned = *patch.Pinned
		}
		if patch.Favorite != nil {
			rem.Favorite = *patch.Favorite
		}

		rem.UpdatedAt = d.TimeNow()
		d.Board.Put(rem)
		persistReminder(d, r, rem)

		writeJSON(w, http.StatusOK, viewOf(rem, domain.DateOf(d.TimeNow())))
	}
}

func DeleteReminder(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id := chi.URLParam(r, "id")
		if !d.Board.Delete(id) {
			writeError(w, http.StatusNotFound, "reminder not found")
			return
		}
		if d.Store != nil {
			if err := d.Store.DeleteReminder(r.Context(), id); err != nil {
				d.Logger.Warn("failed to delete persisted reminder",
					logger.String("id", id),
					logger.Error(err))
			}
		}
		persistOrder(d, r)
		w.WriteHeader(http.StatusNoContent)
	}
}

type reorderRequest struct {
	Order []string `json:"order"`
}

// ReorderReminders replaces the board order. The body must be a permutation
// of the current ids.
func ReorderReminders(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		var req reorderRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if err := d.Board.Reorder(req.Order); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		persistOrder(d, r)
		writeJSON(w, http.StatusOK, reorderRequest{Order: d.Board.Order()})
	}
}

// setFlag builds a handler that flips one boolean flag on a reminder.
func setFlag(d deps.Deps, apply func(*domain.Reminder)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rem, ok := d.Board.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "reminder not found")
			return
		}
		apply(rem)
		rem.UpdatedAt = d.TimeNow()
		d.Board.Put(rem)
		persistReminder(d, r, rem)
		writeJSON(w, http.StatusOK, viewOf(rem, domain.DateOf(d.TimeNow())))
	}
}

func ArchiveReminder(d deps.Deps) http.HandlerFunc {
	return setFlag(d, func(r *domain.Reminder) { r.Archived = true })
}

func UnarchiveReminder(d deps.Deps) http.HandlerFunc {
	return setFlag(d, func(r *domain.Reminder) { r.Archived = false })
}

func FavoriteReminder(d deps.Deps) http.HandlerFunc {
	return setFlag(d, func(r *domain.Reminder) { r.Favorite = true })
}

func UnfavoriteReminder(d deps.Deps) http.HandlerFunc {
	return setFlag(d, func(r *domain.Reminder) { r.Favorite = false })
}

func PinReminder(d deps.Deps) http.HandlerFunc {
	return setFlag(d, func(r *domain.Reminder) { r.Pinned = true })
}

func UnpinReminder(d deps.Deps) http.HandlerFunc {
	return setFlag(d, func(r *domain.Reminder) { r.Pinned = false })
}
