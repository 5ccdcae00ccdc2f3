package service

import (
	"raceplanner/internal/config"
	"raceplanner/internal/models"
	"raceplanner/internal/repository"
	"raceplanner/internal/storage"
)

type Service struct {
	User   UserService
	Auth   AuthService
	Cars   CarService
	Events EventService
	Races  repository.Store[models.Race]
	Tables TablesService
}

func NewService(rep *repository.Repository, cfg *config.Config, sessions storage.SessionStore) *Service {
	return &Service{
		User:   NewUserService(rep.Users),
		Auth:   NewAuthService(rep.Users, sessions, cfg),
		Cars:   NewCarService(rep.Cars),
		Events: NewEventService(rep.Events),
		Races:  rep.Races,
		Tables: NewTablesService(rep.Tables),
	}
}
