package models

import (
	"time"

	"github.com/google/uuid"
)

// EventType distinguishes mutually exclusive 1:1 bookings from group polls.
type EventType string

const (
	EventTypeOneToOne EventType = "one_to_one"
	EventTypeGroup    EventType = "group"
)

// EventStatus is the lifecycle state of an event.
type EventStatus string

const (
	EventStatusPending   EventStatus = "pending"
	EventStatusActive    EventStatus = "active"
	EventStatusCompleted EventStatus = "completed"
	EventStatusCancelled EventStatus = "cancelled"
)

// Valid reports whether s is a known lifecycle status.
func (s EventStatus) Valid() bool {
	switch s {
	case EventStatusPending, EventStatusActive, EventStatusCompleted, EventStatusCancelled:
		return true
	}
	return false
}

// Event is a schedulable activity with proposed date/time options.
// Dates and Participants are populated only by tree loads.
type Event struct {
	ID                 string        `json:"id"`
	CreatorID          uuid.UUID     `json:"creator_id"`
	Type               EventType     `json:"type"`
	Name               string        `json:"name"`
	Detail             string        `json:"detail"`
	Location           string        `json:"location"`
	Status             EventStatus   `json:"status"`
	IsAnonymousAllowed bool          `json:"is_anonymous_allowed"`
	CanMultipleVote    bool          `json:"can_multiple_vote"`
	Deleted            bool          `json:"-"`
	ShareURL           string        `json:"share_url"`
	CreatedAt          time.Time     `json:"created_at"`
	UpdatedAt          time.Time     `json:"updated_at"`
	Dates              []EventDate   `json:"event_dates,omitempty"`
	Participants       []Participant `json:"event_participants,omitempty"`
}

// EventDate is one proposed calendar date of an event.
type EventDate struct {
	ID      uuid.UUID  `json:"id"`
	EventID string     `json:"event_id"`
	Date    time.Time  `json:"date"`
	Slots   []TimeSlot `json:"event_time_slots"`
}

// TimeSlot is a start/end time option on an event date.
// Times are local wall-clock values in "HH:MM" form.
type TimeSlot struct {
	ID          uuid.UUID `json:"id"`
	EventDateID uuid.UUID `json:"event_date_id"`
	StartTime   string    `json:"start_time"`
	EndTime     string    `json:"end_time"`
}
