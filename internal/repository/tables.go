package repository

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

var (
	UsersTable = Table{
		Name:    "users",
		Columns: []string{"username", "email", "password", "full_name"},
	}
	CarsTable = Table{
		Name: "cars",
		Columns: []string{
			"name", "class", "user_id", "hp", "nm", "kg",
			"0_100", "0_200", "0_250", "0_300", "0_350", "0_400", "0_500",
		},
	}
	EventsTable = Table{
		Name:    "events",
		Columns: []string{"date", "status", "platform", "user_id", "user_comment", "comment"},
	}
	RacesTable = Table{
		Name:    "races",
		Columns: []string{"event_id", "car_id"},
	}
)

type tablesRepository struct {
	db *sqlx.DB
}

func NewTablesRepository(db *sqlx.DB) TablesRepository {
	return &tablesRepository{db: db}
}

func (r *tablesRepository) CountTablesDB(ctx context.Context) (int, error) {
	var count int

	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*)
		FROM information_schema.tables
		WHERE table_schema = 'public'
	`)
	if err != nil {
		return 0, fmt.Errorf("failed to count database tables: %w", err)
	}

	return count, nil
}
