package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/muralboard/mural/internal/httpserver/deps"
	"github.com/muralboard/mural/internal/httpserver/handlers"
)

func init() { Register(registerInfra) }

func registerInfra(r chi.Router, d deps.Deps) {
	r.With(guarded(d)...).Get("/api/infra", handlers.Infra(d))
}
