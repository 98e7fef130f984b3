package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/muralboard/mural/internal/httpserver/deps"
	"github.com/muralboard/mural/internal/httpserver/handlers"
)

func init() { Register(registerTransfer) }

func registerTransfer(r chi.Router, d deps.Deps) {
	r.With(guarded(d)...).Get("/api/export", handlers.ExportBoard(d))
	r.With(mutating(d)...).Post("/api/import", handlers.ImportBoard(d))
}
