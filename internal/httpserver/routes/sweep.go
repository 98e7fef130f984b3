package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/muralboard/mural/internal/httpserver/deps"
	"github.com/muralboard/mural/internal/httpserver/handlers"
)

func init() { Register(registerSweep) }

func registerSweep(r chi.Router, d deps.Deps) {
	sub := r.With(guarded(d)...)
	sub.Post("/api/sweep/hold", handlers.HoldSweep(d))
	sub.Post("/api/sweep/release", handlers.ReleaseSweep(d))
}
