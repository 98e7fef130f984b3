package routes

import (
	"github.com/go-chi/chi/v5"

	"github.com/muralboard/mural/internal/httpserver/deps"
	"github.com/muralboard/mural/internal/httpserver/handlers"
)

func init() { Register(registerReminders) }

func registerReminders(r chi.Router, d deps.Deps) {
	read := r.With(guarded(d)...)
	read.Get("/api/reminders", handlers.ListReminders(d))
	read.Get("/api/reminders/{id}", handlers.GetReminder(d))

	write := r.With(mutating(d)...)
	write.Post("/api/reminders", handlers.CreateReminder(d))
	write.Patch("/api/reminders/{id}", handlers.UpdateReminder(d))
	write.Delete("/api/reminders/{id}", handlers.DeleteReminder(d))
	write.Post("/api/reminders/order", handlers.ReorderReminders(d))

	write.Post("/api/reminders/{id}/archive", handlers.ArchiveReminder(d))
	write.Post("/api/reminders/{id}/unarchive", handlers.UnarchiveReminder(d))
	write.Post("/api/reminders/{id}/favorite", handlers.FavoriteReminder(d))
	write.Post("/api/reminders/{id}/unfavorite", handlers.UnfavoriteReminder(d))
	write.Post("/api/reminders/{id}/pin", handlers.PinReminder(d))
	write.Post("/api/reminders/{id}/unpin", handlers.UnpinReminder(d))

	write.Post("/api/reminders/{id}/checklist", handlers.AddChecklistItem(d))
	write.Post("/api/reminders/{id}/checklist/order", handlers.ReorderChecklist(d))
	write.Patch("/api/reminders/{id}/checklist/{itemID}", handlers.UpdateChecklistItem(d))
	write.Delete("/api/reminders/{id}/checklist/{itemID}", handlers.DeleteChecklistItem(d))

	write.Post("/api/reminders/{id}/comments", handlers.AddComment(d))
	write.Patch("/api/reminders/{id}/comments/{commentID}", handlers.UpdateComment(d))
	write.Delete("/api/reminders/{id}/comments/{commentID}", handlers.DeleteComment(d))
}
