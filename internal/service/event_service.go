package service

import (
	"context"
	"fmt"
	"time"

	"raceplanner/internal/models"
	"raceplanner/internal/repository"
)

// CalendarWindowMonths is how far the calendar view reaches on each side of the reference date.
const CalendarWindowMonths = 1

type EventService interface {
	repository.Store[models.Event]
	ByIDWithCars(ctx context.Context, eventID string) ([]models.EventWithCars, error)
	ByUser(ctx context.Context, userID string, inputDate time.Time) ([]models.CalendarEvent, error)
	NewEvent(ctx context.Context, current *models.User, payload repository.Fields) (string, error)
}

type eventService struct {
	repository.EventRepository
}

func NewEventService(eventRepo repository.EventRepository) EventService {
	return &eventService{EventRepository: eventRepo}
}

func (s *eventService) ByIDWithCars(ctx context.Context, eventID string) ([]models.EventWithCars, error) {
	if eventID == "" {
		return nil, fmt.Errorf("%w: event id is required", ErrValidation)
	}
	return s.WithCars(ctx, eventID)
}

// ByUser lists the user's events dated from one month before to one month after inputDate, both days inclusive.
func (s *eventService) ByUser(ctx context.Context, userID string, inputDate time.Time) ([]models.CalendarEvent, error) {
	day := time.Date(inputDate.Year(), inputDate.Month(), inputDate.Day(), 0, 0, 0, 0, inputDate.Location())
	from := addMonths(day, -CalendarWindowMonths)
	to := addMonths(day, CalendarWindowMonths).AddDate(0, 0, 1).Add(-time.Microsecond)

	return s.Calendar(ctx, userID, from, to)
}

// addMonths shifts day by months, clamping to the last day of the target month (Mar 31 - 1 month = Feb 28).
func addMonths(day time.Time, months int) time.Time {
	first := time.Date(day.Year(), day.Month()+time.Month(months), 1, 0, 0, 0, 0, day.Location())
	last := first.AddDate(0, 1, -1).Day()

	d := day.Day()
	if d > last {
		d = last
	}
	return time.Date(first.Year(), first.Month(), d, 0, 0, 0, 0, day.Location())
}

// NewEvent saves the event columns of payload and replaces its races with payload["cars"].
// user_id defaults to the current user.
func (s *eventService) NewEvent(ctx context.Context, current *models.User, payload repository.Fields) (string, error) {
	fields := payload.Clone()

	cars, err := carIDs(fields["cars"])
	if err != nil {
		return "", err
	}
	delete(fields, "cars")

	if userID, _ := fields["user_id"].(string); userID == "" && current != nil {
		fields["user_id"] = current.ID
	}

	return s.SaveWithCars(ctx, fields, cars)
}

func carIDs(raw any) ([]string, error) {
	switch v := raw.(type) {
	case nil:
		return []string{}, nil
	case []string:
		return v, nil
	case []any:
		ids := make([]string, 0, len(v))
		for _, item := range v {
			id, ok := item.(string)
			if !ok || id == "" {
				return nil, fmt.Errorf("%w: cars must be a list of car ids", ErrValidation)
			}
			ids = append(ids, id)
		}
		return ids, nil
	default:
		return nil, fmt.Errorf("%w: cars must be a list of car ids", ErrValidation)
	}
}
