package api

import (
	"net/http"

	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/api/handlers"
	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/console"
	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/repository"
	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/server"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
)

// NewRouter wires the operator-facing HTTP surface: plain-text export
// reports, user deletion, the live session list and the current event.
func NewRouter(repos *repository.Repositories, registry *server.Registry, con *console.Console) http.Handler {
	r := chi.NewRouter()

	r.Use(chiMiddleware.Logger)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.RequestID)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	exportHandler := handlers.NewExportHandler(repos)
	userHandler := handlers.NewUserHandler(repos.Users)
	sessionHandler := handlers.NewSessionHandler(registry)
	eventHandler := handlers.NewEventHandler(con)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/export", func(r chi.Router) {
			r.Get("/users", exportHandler.Users)
			r.Get("/attendance", exportHandler.Attendance)
			r.Get("/attendance/date/{date}", exportHandler.AttendanceByDate)
			r.Get("/attendance/event/{name}", exportHandler.AttendanceByEvent)
		})

		r.Delete("/users/{id}", userHandler.Delete)

		r.Get("/sessions", sessionHandler.List)

		r.Route("/event", func(r chi.Router) {
			r.Get("/", eventHandler.Get)
			r.Put("/", eventHandler.Set)
		})
	})

	return r
}
