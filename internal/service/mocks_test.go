package service

import (
	"context"
	"time"

	"github.com/stretchr/testify/mock"

	"raceplanner/internal/models"
	"raceplanner/internal/repository"
)

type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) CreateUser(ctx context.Context, user *models.User, password string) error {
	args := m.Called(ctx, user, password)
	return args.Error(0)
}

func (m *MockUserRepository) GetUserByID(ctx context.Context, userID string) (*models.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetUserByUsername(ctx context.Context, username string) (*models.User, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) VerifyPassword(ctx context.Context, username, password string) (*models.User, error) {
	args := m.Called(ctx, username, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, userID string, fields repository.Fields) error {
	args := m.Called(ctx, userID, fields)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

type MockSessionStore struct {
	mock.Mock
}

func (m *MockSessionStore) Revoke(ctx context.Context, tokenID string, ttl time.Duration) error {
	args := m.Called(ctx, tokenID, ttl)
	return args.Error(0)
}

func (m *MockSessionStore) IsRevoked(ctx context.Context, tokenID string) (bool, error) {
	args := m.Called(ctx, tokenID)
	return args.Bool(0), args.Error(1)
}

func (m *MockSessionStore) Ping(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func (m *MockSessionStore) Close() error {
	return m.Called().Error(0)
}

type MockEventRepository struct {
	mock.Mock
}

func (m *MockEventRepository) All(ctx context.Context) ([]models.Event, error) {
	args := m.Called(ctx)
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventRepository) FindBy(ctx context.Context, value any, key string) (*models.Event, error) {
	args := m.Called(ctx, value, key)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Event), args.Error(1)
}

func (m *MockEventRepository) FindAll(ctx context.Context, value any, key string) ([]models.Event, error) {
	args := m.Called(ctx, value, key)
	return args.Get(0).([]models.Event), args.Error(1)
}

func (m *MockEventRepository) Create(ctx context.Context, fields repository.Fields) (string, error) {
	args := m.Called(ctx, fields)
	return args.String(0), args.Error(1)
}

func (m *MockEventRepository) Update(ctx context.Context, id string, fields repository.Fields) (string, error) {
	args := m.Called(ctx, id, fields)
	return args.String(0), args.Error(1)
}

func (m *MockEventRepository) Upsert(ctx context.Context, fields repository.Fields) (string, error) {
	args := m.Called(ctx, fields)
	return args.String(0), args.Error(1)
}

func (m *MockEventRepository) Remove(ctx context.Context, id string) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockEventRepository) WithCars(ctx context.Context, eventID string) ([]models.EventWithCars, error) {
	args := m.Called(ctx, eventID)
	return args.Get(0).([]models.EventWithCars), args.Error(1)
}

func (m *MockEventRepository) Calendar(ctx context.Context, userID string, from, to time.Time) ([]models.CalendarEvent, error) {
	args := m.Called(ctx, userID, from, to)
	return args.Get(0).([]models.CalendarEvent), args.Error(1)
}

func (m *MockEventRepository) SaveWithCars(ctx context.Context, fields repository.Fields, cars []string) (string, error) {
	args := m.Called(ctx, fields, cars)
	return args.String(0), args.Error(1)
}
