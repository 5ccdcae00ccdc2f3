package test

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"raceplanner/internal/models"
	"raceplanner/internal/repository"
	"raceplanner/internal/service"
)

// MockStore is a testify mock for any generic table store.
type MockStore[T any] struct {
	mock.Mock
}

func (m *MockStore[T]) All(ctx context.Context) ([]T, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockStore[T]) FindBy(ctx context.Context, value any, key string) (*T, error) {
	args := m.Called(ctx, value, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*T), args.Error(1)
}

func (m *MockStore[T]) FindAll(ctx context.Context, value any, key string) ([]T, error) {
	args := m.Called(ctx, value, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]T), args.Error(1)
}

func (m *MockStore[T]) Create(ctx context.Context, fields repository.Fields) (string, error) {
	args := m.Called(ctx, fields)
	return args.String(0), args.Error(1)
}

func (m *MockStore[T]) Update(ctx context.Context, id string, fields repository.Fields) (string, error) {
	args := m.Called(ctx, id, fields)
	return args.String(0), args.Error(1)
}

func (m *MockStore[T]) Upsert(ctx context.Context, fields repository.Fields) (string, error) {
	args := m.Called(ctx, fields)
	return args.String(0), args.Error(1)
}

func (m *MockStore[T]) Remove(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

type MockCarService struct {
	MockStore[models.Car]
}

func (m *MockCarService) CarsToRace(ctx context.Context, carID string) ([]models.CarRef, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CarRef), args.Error(1)
}

type MockEventService struct {
	MockStore[models.Event]
}

func (m *MockEventService) ByIDWithCars(ctx context.Context, eventID string) ([]models.EventWithCars, error) {
	args := m.Called(ctx, eventID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.EventWithCars), args.Error(1)
}

func (m *MockEventService) ByUser(ctx context.Context, userID string, inputDate time.Time) ([]models.CalendarEvent, error) {
	args := m.Called(ctx, userID, inputDate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.CalendarEvent), args.Error(1)
}

func (m *MockEventService) NewEvent(ctx context.Context, current *models.User, payload repository.Fields) (string, error) {
	args := m.Called(ctx, current, payload)
	return args.String(0), args.Error(1)
}

type MockUserService struct {
	mock.Mock
}

func (m *MockUserService) GetUser(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserService) UpdateUser(ctx context.Context, current *models.User, req models.UpdateUserRequest) error {
	args := m.Called(ctx, current, req)
	return args.Error(0)
}

func (m *MockUserService) DeleteUser(ctx context.Context, current *models.User, userID string) error {
	args := m.Called(ctx, current, userID)
	return args.Error(0)
}

type MockAuthService struct {
	mock.Mock
}

func (m *MockAuthService) Register(ctx context.Context, req models.SignUpRequest) (*models.User, string, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Login(ctx context.Context, username, password string) (*models.User, string, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, "", args.Error(2)
	}
	return args.Get(0).(*models.User), args.String(1), args.Error(2)
}

func (m *MockAuthService) Logout(ctx context.Context, claims *service.Claims) error {
	args := m.Called(ctx, claims)
	return args.Error(0)
}

func (m *MockAuthService) Authenticate(ctx context.Context, tokenString string) (*models.User, *service.Claims, error) {
	args := m.Called(ctx, tokenString)
	if args.Get(0) == nil {
		return nil, nil, args.Error(2)
	}
	return args.Get(0).(*models.User), args.Get(1).(*service.Claims), args.Error(2)
}

func (m *MockAuthService) ValidateToken(tokenString string) (*service.Claims, error) {
	args := m.Called(tokenString)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Claims), args.Error(1)
}

type MockTablesService struct {
	mock.Mock
}

func (m *MockTablesService) CountTables(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}
