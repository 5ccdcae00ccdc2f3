package service

import (
	"context"
	"fmt"

	"raceplanner/internal/models"
	"raceplanner/internal/repository"
)

type CarService interface {
	repository.Store[models.Car]
	CarsToRace(ctx context.Context, carID string) ([]models.CarRef, error)
}

type carService struct {
	repository.CarRepository
}

func NewCarService(carRepo repository.CarRepository) CarService {
	return &carService{CarRepository: carRepo}
}

func (s *carService) CarsToRace(ctx context.Context, carID string) ([]models.CarRef, error) {
	if carID == "" {
		return nil, fmt.Errorf("%w: car id is required", ErrValidation)
	}
	return s.CarRepository.CarsToRace(ctx, carID)
}
