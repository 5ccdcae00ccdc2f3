package handlers

import (
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"raceplanner/internal/service"
)

const inputDateLayout = "2006-01-02"

// ByIDWithCars answers a list holding the event and its cars, or an empty list.
func (h *Handlers) ByIDWithCars(w http.ResponseWriter, r *http.Request) {
	events, err := h.EventService.ByIDWithCars(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	writeSuccess(w, events, http.StatusOK)
}

// ByUser answers the calendar entries of the current user around ?inputDate=YYYY-MM-DD.
func (h *Handlers) ByUser(w http.ResponseWriter, r *http.Request) {
	user, ok := service.UserFromContext(r.Context())
	if !ok {
		WriteMessage(w, "You are not authenticated", http.StatusUnauthorized)
		return
	}

	raw := r.URL.Query().Get("inputDate")
	if raw == "" {
		WriteMessage(w, "inputDate is required", http.StatusBadRequest)
		return
	}
	inputDate, err := time.Parse(inputDateLayout, raw)
	if err != nil {
		WriteMessage(w, "inputDate must be formatted as YYYY-MM-DD", http.StatusBadRequest)
		return
	}

	events, err := h.EventService.ByUser(r.Context(), user.ID, inputDate)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	writeSuccess(w, events, http.StatusOK)
}

// NewEvent creates or updates an event together with its car list and answers the event id.
func (h *Handlers) NewEvent(w http.ResponseWriter, r *http.Request) {
	fields, ok := requestFields(w, r)
	if !ok {
		return
	}

	user, _ := service.UserFromContext(r.Context())
	id, err := h.EventService.NewEvent(r.Context(), user, fields)
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	writeSuccess(w, id, http.StatusOK)
}
