package handlers

import (
	"log"
	"net/http"
	"strconv"

	"github.com/Chewycide/wireless-fingerprint-attendance-system/internal/repository"
	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	users repository.UserRepository
}

func NewUserHandler(users repository.UserRepository) *UserHandler {
	return &UserHandler{users: users}
}

// Delete removes a user; the cascade takes the info and attendance rows
// with it. Deleting an unknown id still answers 204.
func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		http.Error(w, "Invalid user id", http.StatusBadRequest)
		return
	}

	if err := h.users.Delete(r.Context(), uint(id)); err != nil {
		log.Printf("ERROR [user.Delete] id=%s: %v", raw, err)
		http.Error(w, "Failed to delete user", http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
