package handlers

import (
	"net/http"

	"github.com/gorilla/mux"
)

// SchemaValidator decodes the request body and checks it against the JSON schema schemaID.
// Invalid bodies are answered with 400 {"message": ...}; valid ones are passed on already decoded.
func (h *Handlers) SchemaValidator(schemaID string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			fields, err := decodeFields(w, r)
			if err != nil {
				WriteMessage(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
				return
			}

			if err := h.Schemas.Validate(map[string]interface{}(fields), schemaID); err != nil {
				WriteMessage(w, err.Error(), http.StatusBadRequest)
				return
			}

			next.ServeHTTP(w, r.WithContext(withFields(r.Context(), fields)))
		})
	}
}

// UUIDParam rejects requests whose route variable name is not a UUID.
func (h *Handlers) UUIDParam(name string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if err := h.Validate.Var(mux.Vars(r)[name], "required,uuid"); err != nil {
				WriteMessage(w, "Invalid "+name+": must be a UUID", http.StatusBadRequest)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
