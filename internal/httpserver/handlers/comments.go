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

type commentRequest struct {
	Text string `json:"text"`
}

func AddComment(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		rem, ok := d.Board.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "reminder not found")
			return
		}

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, "text is required")
			return
		}

		comment := domain.Comment{
			ID:   uuid.NewString(),
			Text: req.Text,
			Date: d.TimeNow(),
		}
		rem.Comments = append(rem.Comments, comment)
		rem.UpdatedAt = d.TimeNow()
		d.Board.Put(rem)
		persistReminder(d, r, rem)

		writeJSON(w, http.StatusCreated, comment)
	}
}

// UpdateComment rewrites a comment's text and marks it edited. The original
// date is kept.
func UpdateComment(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		defer utils.Close(r.Body)

		rem, ok := d.Board.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "reminder not found")
			return
		}

		commentID := chi.URLParam(r, "commentID")
		idx := -1
		for i := range rem.Comments {
			if rem.Comments[i].ID == commentID {
				idx = i
				break
			}
		}
		if idx < 0 {
			writeError(w, http.StatusNotFound, "comment not found")
			return
		}

		var req commentRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid json body")
			return
		}
		if strings.TrimSpace(req.Text) == "" {
			writeError(w, http.StatusBadRequest, "text cannot be empty")
			return
		}

		comment := &rem.Comments[idx]
		comment.Text = req.Text
		comment.Edited = true

		rem.UpdatedAt = d.TimeNow()
		d.Board.Put(rem)
		persistReminder(d, r, rem)

		writeJSON(w, http.StatusOK, *comment)
	}
}

func DeleteComment(d deps.Deps) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rem, ok := d.Board.Get(chi.URLParam(r, "id"))
		if !ok {
			writeError(w, http.StatusNotFound, "reminder not found")
			return
		}

		commentID := chi.URLParam(r, "commentID")
		kept := rem.Comments[:0]
		found := false
		for _, c := range rem.Comments {
			if c.ID == commentID {
				found = true
				continue
			}
			kept = append(kept, c)
		}
		if !found {
			writeError(w, http.StatusNotFound, "comment not found")
			return
		}

		rem.Comments = kept
		rem.UpdatedAt = d.TimeNow()
		d.Board.Put(rem)
		persistReminder(d, r, rem)

		w.WriteHeader(http.StatusNoContent)
	}
}
