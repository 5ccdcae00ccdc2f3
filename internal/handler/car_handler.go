package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// CarsToRace lists the cars that have not yet shared an event with the car in the path.
func (h *Handlers) CarsToRace(w http.ResponseWriter, r *http.Request) {
	cars, err := h.CarService.CarsToRace(r.Context(), mux.Vars(r)["id"])
	if err != nil {
		h.writeFailure(w, r, err)
		return
	}

	writeSuccess(w, cars, http.StatusOK)
}
