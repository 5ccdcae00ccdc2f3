package models

import (
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

const (
	StatusNew      = "new"
	StatusRaced    = "raced"
	StatusRecorded = "recorded"
	StatusEdited   = "edited"
	StatusDone     = "done"
)

const (
	PlatformYoutube       = "youtube"
	PlatformYoutubeShorts = "youtube-shorts"
	PlatformTiktok        = "tiktok"
	PlatformInstagram     = "instagram"
)

type User struct {
	ID        string    `json:"id" db:"id"`
	Username  string    `json:"username" db:"username"`
	Email     string    `json:"email" db:"email"`
	Password  string    `json:"-" db:"password"`
	FullName  *string   `json:"full_name" db:"full_name"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Car struct {
	ID     string  `json:"id" db:"id"`
	Name   string  `json:"name" db:"name"`
	Class  *string `json:"class" db:"class"`
	UserID string  `json:"user_id" db:"user_id"`
	HP     *int    `json:"hp" db:"hp"`
	NM     *int    `json:"nm" db:"nm"`
	KG     *int    `json:"kg" db:"kg"`

	// Acceleration times in seconds, keyed by target speed in km/h.
	Acc0100 *float64 `json:"0_100" db:"0_100"`
	Acc0200 *float64 `json:"0_200" db:"0_200"`
	Acc0250 *float64 `json:"0_250" db:"0_250"`
	Acc0300 *float64 `json:"0_300" db:"0_300"`
	Acc0350 *float64 `json:"0_350" db:"0_350"`
	Acc0400 *float64 `json:"0_400" db:"0_400"`
	Acc0500 *float64 `json:"0_500" db:"0_500"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

type Event struct {
	ID          string    `json:"id" db:"id"`
	Date        time.Time `json:"date" db:"date"`
	Status      string    `json:"status" db:"status"`
	Platform    string    `json:"platform" db:"platform"`
	UserID      string    `json:"user_id" db:"user_id"`
	UserComment bool      `json:"user_comment" db:"user_comment"`
	Comment     *string   `json:"comment" db:"comment"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

type Race struct {
	ID        string    `json:"id" db:"id"`
	EventID   string    `json:"event_id" db:"event_id"`
	CarID     string    `json:"car_id" db:"car_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// CarRef is the short form of a car used in race listings.
type CarRef struct {
	ID   string `json:"id" db:"id"`
	Name string `json:"name" db:"name"`
}

// CarRefs scans a JSON array column such as the result of json_agg.
type CarRefs []CarRef

func (c *CarRefs) Scan(src interface{}) error {
	var data []byte
	switch v := src.(type) {
	case nil:
		*c = CarRefs{}
		return nil
	case []byte:
		data = v
	case string:
		data = []byte(v)
	default:
		return fmt.Errorf("unsupported type %T for car list", src)
	}

	refs := CarRefs{}
	if err := json.Unmarshal(data, &refs); err != nil {
		return fmt.Errorf("failed to decode car list: %w", err)
	}
	*c = refs
	return nil
}

type EventWithCars struct {
	Event
	Cars CarRefs `json:"cars" db:"cars"`
}

// CalendarEvent is one row of the calendar window view.
type CalendarEvent struct {
	EventID     string `json:"event_id" db:"event_id"`
	EventDate   string `json:"event_date" db:"event_date"`
	EventStatus string `json:"event_status" db:"event_status"`
	EventType   string `json:"event_type" db:"event_type"`
	RaceTitle   string `json:"race_title" db:"race_title"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type SignUpRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=255"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=6"`
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
}

type UpdateUserRequest struct {
	ID       string  `json:"id" validate:"required,uuid"`
	Username *string `json:"username" validate:"omitempty,min=3,max=255"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6"`
	FullName *string `json:"full_name" validate:"omitempty,max=255"`
}
