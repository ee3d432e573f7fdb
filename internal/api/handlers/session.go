package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/console"
	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/server"
)

type SessionHandler struct {
	registry *server.Registry
}

func NewSessionHandler(registry *server.Registry) *SessionHandler {
	return &SessionHandler{registry: registry}
}

type SessionsResponse struct {
	Sessions []server.SessionInfo `json:"sessions"`
}

func (h *SessionHandler) List(w http.ResponseWriter, r *http.Request) {
	resp := SessionsResponse{Sessions: h.registry.Snapshot()}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(resp)
}

type EventHandler struct {
	console *console.Console
}

func NewEventHandler(con *console.Console) *EventHandler {
	return &EventHandler{console: con}
}

type EventPayload struct {
	Name     string `json:"name"`
	Location string `json:"location"`
}

func (h *EventHandler) Get(w http.ResponseWriter, r *http.Request) {
	name, location := h.console.CurrentEvent()

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(EventPayload{Name: name, Location: location})
}

func (h *EventHandler) Set(w http.ResponseWriter, r *http.Request) {
	var payload EventPayload
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		http.Error(w, "Invalid event payload", http.StatusBadRequest)
		return
	}

	h.console.SetEvent(payload.Name, payload.Location)
	w.WriteHeader(http.StatusNoContent)
}
