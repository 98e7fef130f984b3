package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/muralboard/mural/internal/httpserver/deps"
	"github.com/muralboard/mural/internal/httpserver/handlers"
)

func init() { Register(registerBoard) }

func registerBoard(r chi.Router, d deps.Deps) {
	r.With(guarded(d)...).Get("/api/board", handlers.GetBoard(d))
	r.With(mutating(d)...).Patch("/api/board", handlers.RenameBoard(d))
}
