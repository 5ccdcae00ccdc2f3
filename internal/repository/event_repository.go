package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"raceplanner/internal/database"
	"raceplanner/internal/models"
)

type eventRepository struct {
	*TableRepository[models.Event]
	db *sqlx.DB
}

func NewEventRepository(db *sqlx.DB) EventRepository {
	return &eventRepository{
		TableRepository: NewTableRepository[models.Event](db, EventsTable),
		db:              db,
	}
}

// WithCars returns the event with its deduplicated car list, as a slice of zero or one element.
func (r *eventRepository) WithCars(ctx context.Context, eventID string) ([]models.EventWithCars, error) {
	events := make([]models.EventWithCars, 0, 1)

	query := `
		SELECT e.*,
			COALESCE(
				json_agg(DISTINCT jsonb_build_object('id', c.id, 'name', c.name)) FILTER (WHERE c.id IS NOT NULL),
				'[]'
			) AS cars
		FROM events e
		LEFT JOIN races r ON r.event_id = e.id
		LEFT JOIN cars c ON c.id = r.car_id
		WHERE e.id = $1
		GROUP BY e.id
	`

	if err := r.db.SelectContext(ctx, &events, query, eventID); err != nil {
		return nil, fmt.Errorf("failed to get event %s with cars: %w", eventID, database.MapError(err))
	}

	return events, nil
}

// Calendar lists the user's events dated within [from, to] with their "A vs B" race titles.
func (r *eventRepository) Calendar(ctx context.Context, userID string, from, to time.Time) ([]models.CalendarEvent, error) {
	events := make([]models.CalendarEvent, 0)

	query := `
		SELECT e.id AS event_id,
			to_char(e.date, 'YYYY-MM-DD') AS event_date,
			e.status AS event_status,
			e.platform AS event_type,
			COALESCE(string_agg(c.name, ' vs ' ORDER BY c.name), '') AS race_title
		FROM events e
		LEFT JOIN races r ON r.event_id = e.id
		LEFT JOIN cars c ON c.id = r.car_id
		WHERE e.user_id = $1 AND e.date BETWEEN $2 AND $3
		GROUP BY e.id
		ORDER BY e.date ASC
	`

	if err := r.db.SelectContext(ctx, &events, query, userID, from, to); err != nil {
		return nil, fmt.Errorf("failed to list calendar events: %w", database.MapError(err))
	}

	return events, nil
}

// SaveWithCars creates or updates an event and replaces its races with one row per car, in order.
// Everything runs in one transaction.
func (r *eventRepository) SaveWithCars(ctx context.Context, fields Fields, cars []string) (string, error) {
	id, payload, err := splitID(fields)
	if err != nil {
		return "", err
	}

	var eventID string
	err = database.ExecTx(ctx, r.db, func(tx *sqlx.Tx) error {
		var err error
		if id == "" {
			eventID, err = insertRow(ctx, tx, EventsTable, payload)
		} else {
			eventID, err = updateRow(ctx, tx, EventsTable, id, payload)
		}
		if err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `DELETE FROM races WHERE event_id = $1`, eventID); err != nil {
			return fmt.Errorf("failed to clear races of event %s: %w", eventID, database.MapError(err))
		}

		for _, carID := range cars {
			if _, err := insertRow(ctx, tx, RacesTable, Fields{"event_id": eventID, "car_id": carID}); err != nil {
				return err
			}
		}

		return nil
	})
	if err != nil {
		return "", err
	}

	return eventID, nil
}
