package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"raceplanner/internal/database"
	"raceplanner/internal/models"
)

type carRepository struct {
	*TableRepository[models.Car]
	db *sqlx.DB
}

func NewCarRepository(db *sqlx.DB) CarRepository {
	return &carRepository{
		TableRepository: NewTableRepository[models.Car](db, CarsTable),
		db:              db,
	}
}

// CarsToRace lists the cars that have never shared an event with carID, excluding carID itself.
func (r *carRepository) CarsToRace(ctx context.Context, carID string) ([]models.CarRef, error) {
	cars := make([]models.CarRef, 0)

	query := `
		SELECT id, name
		FROM cars
		WHERE id <> $1
		AND id NOT IN (
			SELECT r2.car_id
			FROM races r1
			JOIN races r2 ON r1.event_id = r2.event_id AND r2.car_id <> r1.car_id
			WHERE r1.car_id = $1
		)
		ORDER BY name ASC
	`

	if err := r.db.SelectContext(ctx, &cars, query, carID); err != nil {
		return nil, fmt.Errorf("failed to list opponents for car %s: %w", carID, database.MapError(err))
	}

	return cars, nil
}
