package handlers

import (
	"github.com/go-playground/validator/v10"

	"raceplanner/internal/config"
	"raceplanner/internal/models"
	"raceplanner/internal/repository"
	"raceplanner/internal/schema"
	"raceplanner/internal/service"
)

type Handlers struct {
	UserService   service.UserService
	AuthService   service.AuthService
	CarService    service.CarService
	EventService  service.EventService
	RaceStore     repository.Store[models.Race]
	TablesService service.TablesService
	Schemas       *schema.Validator
	Cfg           *config.Config
	Validate      *validator.Validate
}

func NewHandlers(service *service.Service, schemas *schema.Validator, config *config.Config) *Handlers {
	return &Handlers{
		UserService:   service.User,
		AuthService:   service.Auth,
		CarService:    service.Cars,
		EventService:  service.Events,
		RaceStore:     service.Races,
		TablesService: service.Tables,
		Schemas:       schemas,
		Cfg:           config,
		Validate:      validator.New(),
	}
}
