package handlers

import (
	"context"
	"net/http"

	"github.com/goccy/go-json"
	"github.com/gorilla/mux"

	"raceplanner/internal/repository"
)

const maxBodyBytes = 1 << 20

// Validators holds an optional middleware per endpoint operation. A nil slot lets requests through unchecked.
type Validators struct {
	All     func(http.Handler) http.Handler
	FindBy  func(http.Handler) http.Handler
	FindAll func(http.Handler) http.Handler
	Create  func(http.Handler) http.Handler
	Update  func(http.Handler) http.Handler
	Remove  func(http.Handler) http.Handler
	Upsert  func(http.Handler) http.Handler
}

func guard(v func(http.Handler) http.Handler, h http.HandlerFunc) http.Handler {
	if v == nil {
		return h
	}
	return v(h)
}

// MountEndpoint registers the generic REST routes for store on router:
//
//	GET    /              list every row
//	GET    /single/{id}   first row where key = id (key defaults to id), or null
//	GET    /all/{id}      every row where key = id
//	POST   /              create, answers the new id
//	PUT    /{id}          update, answers the id
//	DELETE /{id}          remove, answers {}
//	POST   /upsert/       update when the body has an id, create otherwise
func MountEndpoint[T any](h *Handlers, router *mux.Router, store repository.Store[T], v Validators) {
	list := func(w http.ResponseWriter, r *http.Request) {
		rows, err := store.All(r.Context())
		if err != nil {
			h.writeFailure(w, r, err)
			return
		}
		writeSuccess(w, rows, http.StatusOK)
	}

	single := func(w http.ResponseWriter, r *http.Request) {
		row, err := store.FindBy(r.Context(), mux.Vars(r)["id"], r.URL.Query().Get("key"))
		if err != nil {
			h.writeFailure(w, r, err)
			return
		}
		writeSuccess(w, row, http.StatusOK)
	}

	all := func(w http.ResponseWriter, r *http.Request) {
		rows, err := store.FindAll(r.Context(), mux.Vars(r)["id"], r.URL.Query().Get("key"))
		if err != nil {
			h.writeFailure(w, r, err)
			return
		}
		writeSuccess(w, rows, http.StatusOK)
	}

	create := func(w http.ResponseWriter, r *http.Request) {
		fields, ok := requestFields(w, r)
		if !ok {
			return
		}
		id, err := store.Create(r.Context(), fields)
		if err != nil {
			h.writeFailure(w, r, err)
			return
		}
		writeSuccess(w, id, http.StatusOK)
	}

	update := func(w http.ResponseWriter, r *http.Request) {
		fields, ok := requestFields(w, r)
		if !ok {
			return
		}
		id, err := store.Update(r.Context(), mux.Vars(r)["id"], fields)
		if err != nil {
			h.writeFailure(w, r, err)
			return
		}
		writeSuccess(w, id, http.StatusOK)
	}

	remove := func(w http.ResponseWriter, r *http.Request) {
		if err := store.Remove(r.Context(), mux.Vars(r)["id"]); err != nil {
			h.writeFailure(w, r, err)
			return
		}
		writeSuccess(w, struct{}{}, http.StatusOK)
	}

	upsert := func(w http.ResponseWriter, r *http.Request) {
		fields, ok := requestFields(w, r)
		if !ok {
			return
		}
		id, err := store.Upsert(r.Context(), fields)
		if err != nil {
			h.writeFailure(w, r, err)
			return
		}
		writeSuccess(w, id, http.StatusOK)
	}

	router.Handle("", guard(v.All, list)).Methods(http.MethodGet)
	router.Handle("/", guard(v.All, list)).Methods(http.MethodGet)
	router.Handle("/single/{id}", guard(v.FindBy, single)).Methods(http.MethodGet)
	router.Handle("/all/{id}", guard(v.FindAll, all)).Methods(http.MethodGet)
	router.Handle("/upsert/", guard(v.Upsert, upsert)).Methods(http.MethodPost)
	router.Handle("/upsert", guard(v.Upsert, upsert)).Methods(http.MethodPost)
	router.Handle("", guard(v.Create, create)).Methods(http.MethodPost)
	router.Handle("/", guard(v.Create, create)).Methods(http.MethodPost)
	router.Handle("/{id}", guard(v.Update, update)).Methods(http.MethodPut)
	router.Handle("/{id}", guard(v.Remove, remove)).Methods(http.MethodDelete)
}

type contextKeyFieldsType struct{}

var contextKeyFields = &contextKeyFieldsType{}

func withFields(ctx context.Context, fields repository.Fields) context.Context {
	return context.WithValue(ctx, contextKeyFields, fields)
}

func decodeFields(w http.ResponseWriter, r *http.Request) (repository.Fields, error) {
	var fields repository.Fields
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes)).Decode(&fields); err != nil {
		return nil, err
	}
	if fields == nil {
		fields = repository.Fields{}
	}
	return fields, nil
}

// requestFields returns the body decoded by a validator, or decodes it. A malformed body answers 400.
func requestFields(w http.ResponseWriter, r *http.Request) (repository.Fields, bool) {
	if fields, ok := r.Context().Value(contextKeyFields).(repository.Fields); ok {
		return fields, true
	}

	fields, err := decodeFields(w, r)
	if err != nil {
		WriteMessage(w, "Invalid request body: "+err.Error(), http.StatusBadRequest)
		return nil, false
	}
	return fields, true
}
