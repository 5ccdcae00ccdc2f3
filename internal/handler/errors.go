package handlers

import (
	"errors"
	"net/http"

	"github.com/goccy/go-json"

	"raceplanner/internal/database"
	"raceplanner/internal/logger"
	"raceplanner/internal/repository"
	"raceplanner/internal/schema"
	"raceplanner/internal/service"
)

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// DataResponse carries a failure message with status 200, the shape the UI expects from data endpoints.
type DataResponse struct {
	Data string `json:"data"`
}

func writeJSON(w http.ResponseWriter, data interface{}, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

func writeSuccess(w http.ResponseWriter, data interface{}, statusCode int) {
	writeJSON(w, data, statusCode)
}

func WriteError(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, ErrorResponse{Error: message}, statusCode)
}

func WriteMessage(w http.ResponseWriter, message string, statusCode int) {
	writeJSON(w, MessageResponse{Message: message}, statusCode)
}

// StatusFor maps an error to the HTTP status used in strict mode.
func StatusFor(err error) int {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, repository.ErrUnknownColumn),
		errors.Is(err, repository.ErrInvalidValue),
		errors.Is(err, schema.ErrInvalidDocument),
		errors.Is(err, database.ErrInvalidInput),
		errors.Is(err, database.ErrCheckViolation):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthenticated), errors.Is(err, service.ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, service.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, database.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, database.ErrDuplicateKey), errors.Is(err, database.ErrForeignKeyViolation):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// writeFailure reports a failed data operation. By default it answers 200 with {"data": message};
// with strict HTTP errors enabled it answers the mapped status with {"error": message}.
func (h *Handlers) writeFailure(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)
	logger.FromContext(r.Context()).WithError(err).WithField("status", status).Error("request failed")

	if h.Cfg != nil && h.Cfg.StrictHTTPErrors {
		WriteError(w, err.Error(), status)
		return
	}
	writeJSON(w, DataResponse{Data: err.Error()}, http.StatusOK)
}
