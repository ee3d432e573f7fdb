package handlers

import (
	"log"
	"net/http"

	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/export"
	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/repository"
	"github.com/go-chi/chi/v5"
)

type ExportHandler struct {
	repos *repository.Repositories
}

func NewExportHandler(repos *repository.Repositories) *ExportHandler {
	return &ExportHandler{repos: repos}
}

func (h *ExportHandler) Users(w http.ResponseWriter, r *http.Request) {
	users, err := h.repos.Users.All(r.Context())
	if err != nil {
		log.Printf("ERROR [export.Users]: %v", err)
		http.Error(w, "Failed to query users", http.StatusInternalServerError)
		return
	}
	writeReport(w, export.Users(users))
}

func (h *ExportHandler) Attendance(w http.ResponseWriter, r *http.Request) {
	entries, err := h.repos.Attendance.All(r.Context())
	if err != nil {
		log.Printf("ERROR [export.Attendance]: %v", err)
		http.Error(w, "Failed to query attendance", http.StatusInternalServerError)
		return
	}
	writeReport(w, export.Attendance(entries))
}

func (h *ExportHandler) AttendanceByDate(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "date")
	date, err := export.ParseDate(raw)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	entries, err := h.repos.Attendance.ByDate(r.Context(), date)
	if err != nil {
		log.Printf("ERROR [export.AttendanceByDate] date=%s: %v", raw, err)
		http.Error(w, "Failed to query attendance", http.StatusInternalServerError)
		return
	}
	writeReport(w, export.AttendanceByDate(entries))
}

func (h *ExportHandler) AttendanceByEvent(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")

	entries, err := h.repos.Attendance.ByEvent(r.Context(), name)
	if err != nil {
		log.Printf("ERROR [export.AttendanceByEvent] event=%s: %v", name, err)
		http.Error(w, "Failed to query attendance", http.StatusInternalServerError)
		return
	}
	writeReport(w, export.AttendanceByEvent(entries))
}

func writeReport(w http.ResponseWriter, report string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(report))
}
