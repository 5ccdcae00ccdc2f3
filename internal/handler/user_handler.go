package handlers

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"raceplanner/internal/database"
	"raceplanner/internal/logger"
	"raceplanner/internal/models"
	"raceplanner/internal/service"
)

func (h *Handlers) writeUserError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, service.ErrForbidden):
		WriteMessage(w, "You can only change your own account", http.StatusForbidden)
	case errors.Is(err, service.ErrValidation):
		WriteMessage(w, err.Error(), http.StatusBadRequest)
	case errors.Is(err, database.ErrDuplicateKey):
		WriteMessage(w, "Username or email is already taken", http.StatusConflict)
	case errors.Is(err, database.ErrNotFound):
		WriteMessage(w, "User not found", http.StatusNotFound)
	default:
		logger.FromContext(r.Context()).WithError(err).Error("user operation failed")
		WriteMessage(w, "Internal server error", http.StatusInternalServerError)
	}
}

func (h *Handlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	current, ok := service.UserFromContext(r.Context())
	if !ok {
		WriteMessage(w, "You are not authenticated", http.StatusUnauthorized)
		return
	}

	var req models.UpdateUserRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&req); err != nil {
		WriteMessage(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if err := h.Validate.Struct(req); err != nil {
		WriteMessage(w, "Invalid user data: "+err.Error(), http.StatusBadRequest)
		return
	}

	if err := h.UserService.UpdateUser(r.Context(), current, req); err != nil {
		h.writeUserError(w, r, err)
		return
	}

	user, err := h.UserService.GetUser(r.Context(), current.ID)
	if err != nil {
		h.writeUserError(w, r, err)
		return
	}

	writeSuccess(w, user, http.StatusOK)
}

func (h *Handlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	current, ok := service.UserFromContext(r.Context())
	if !ok {
		WriteMessage(w, "You are not authenticated", http.StatusUnauthorized)
		return
	}

	if err := h.UserService.DeleteUser(r.Context(), current, mux.Vars(r)["id"]); err != nil {
		h.writeUserError(w, r, err)
		return
	}

	h.clearSessionCookie(w)
	WriteMessage(w, "User deleted!", http.StatusOK)
}
