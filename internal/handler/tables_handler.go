package handlers

import (
	"net/http"

	"raceplanner/internal/logger"
)

type StatusResponse struct {
	Message string `json:"message"`
	Tables  int    `json:"tables"`
}

// Status reports liveness and the number of tables in the public schema.
func (h *Handlers) Status(w http.ResponseWriter, r *http.Request) {
	count, err := h.TablesService.CountTables(r.Context())
	if err != nil {
		logger.FromContext(r.Context()).WithError(err).Error("status check failed")
		WriteMessage(w, "Database is unavailable", http.StatusServiceUnavailable)
		return
	}

	writeSuccess(w, StatusResponse{Message: "Server is running", Tables: count}, http.StatusOK)
}
