package handlers

import (
	"net/http"

	"github.com/gorilla/mux"

	"raceplanner/internal/models"
	"raceplanner/internal/schema"
)

// Router builds the /api routes. auth rejects anonymous requests; optionalAuth only attaches a known user.
func (h *Handlers) Router(auth, optionalAuth func(http.Handler) http.Handler) *mux.Router {
	r := mux.NewRouter()
	api := r.PathPrefix("/api").Subrouter()

	api.HandleFunc("/status", h.Status).Methods(http.MethodGet)
	api.HandleFunc("/login", h.Login).Methods(http.MethodPost)
	api.HandleFunc("/sign-up", h.SignUp).Methods(http.MethodPost)
	api.Handle("/whoami", optionalAuth(http.HandlerFunc(h.WhoAmI))).Methods(http.MethodGet)

	private := api.NewRoute().Subrouter()
	private.Use(auth)

	private.HandleFunc("/logout", h.Logout).Methods(http.MethodGet, http.MethodPost)
	private.HandleFunc("/user/update", h.UpdateUser).Methods(http.MethodPost)
	private.Handle("/user/{id}", h.UUIDParam("id")(http.HandlerFunc(h.DeleteUser))).Methods(http.MethodDelete)

	cars := private.PathPrefix("/cars").Subrouter()
	cars.Handle("/carsToRace/{id}", h.UUIDParam("id")(http.HandlerFunc(h.CarsToRace))).Methods(http.MethodGet)
	MountEndpoint[models.Car](h, cars, h.CarService, Validators{
		Create: h.SchemaValidator(schema.CarCreate),
		Update: h.SchemaValidator(schema.Car),
		Upsert: h.SchemaValidator(schema.Car),
		Remove: h.UUIDParam("id"),
	})

	events := private.PathPrefix("/events").Subrouter()
	events.Handle("/byIdWithCars/{id}", h.UUIDParam("id")(http.HandlerFunc(h.ByIDWithCars))).Methods(http.MethodGet)
	events.HandleFunc("/byUser", h.ByUser).Methods(http.MethodGet)
	events.Handle("/new-event", h.SchemaValidator(schema.NewEvent)(http.HandlerFunc(h.NewEvent))).Methods(http.MethodPost)
	MountEndpoint[models.Event](h, events, h.EventService, Validators{
		Create: h.SchemaValidator(schema.EventCreate),
		Update: h.SchemaValidator(schema.Event),
		Upsert: h.SchemaValidator(schema.Event),
		Remove: h.UUIDParam("id"),
	})

	races := private.PathPrefix("/races").Subrouter()
	MountEndpoint[models.Race](h, races, h.RaceStore, Validators{
		Create: h.SchemaValidator(schema.RaceCreate),
		Update: h.SchemaValidator(schema.Race),
		Upsert: h.SchemaValidator(schema.Race),
		Remove: h.UUIDParam("id"),
	})

	return r
}
