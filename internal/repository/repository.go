package repository

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"

	"raceplanner/internal/models"
)

// Store is the generic CRUD surface mounted by the REST endpoint factory.
type Store[T any] interface {
	All(ctx context.Context) ([]T, error)
	FindBy(ctx context.Context, value any, key string) (*T, error)
	FindAll(ctx context.Context, value any, key string) ([]T, error)
	Create(ctx context.Context, fields Fields) (string, error)
	Update(ctx context.Context, id string, fields Fields) (string, error)
	Upsert(ctx context.Context, fields Fields) (string, error)
	Remove(ctx context.Context, id string) error
}

var (
	_ Store[models.Car]   = (*TableRepository[models.Car])(nil)
	_ Store[models.Event] = (*TableRepository[models.Event])(nil)
	_ Store[models.Race]  = (*TableRepository[models.Race])(nil)
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User, password string) error
	GetUserByID(ctx context.Context, userID string) (*models.User, error)
	GetUserByUsername(ctx context.Context, username string) (*models.User, error)
	VerifyPassword(ctx context.Context, username, password string) (*models.User, error)
	UpdateUser(ctx context.Context, userID string, fields Fields) error
	DeleteUser(ctx context.Context, userID string) error
}

type CarRepository interface {
	Store[models.Car]
	CarsToRace(ctx context.Context, carID string) ([]models.CarRef, error)
}

type EventRepository interface {
	Store[models.Event]
	WithCars(ctx context.Context, eventID string) ([]models.EventWithCars, error)
	Calendar(ctx context.Context, userID string, from, to time.Time) ([]models.CalendarEvent, error)
	SaveWithCars(ctx context.Context, fields Fields, cars []string) (string, error)
}

type TablesRepository interface {
	CountTablesDB(ctx context.Context) (int, error)
}

type Repository struct {
	Users  UserRepository
	Cars   CarRepository
	Events EventRepository
	Races  Store[models.Race]
	Tables TablesRepository
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{
		Users:  NewUserRepository(db),
		Cars:   NewCarRepository(db),
		Events: NewEventRepository(db),
		Races:  NewTableRepository[models.Race](db, RacesTable),
		Tables: NewTablesRepository(db),
	}
}
