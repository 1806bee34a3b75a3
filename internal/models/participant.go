package models

import (
	"time"

	"github.com/google/uuid"
)

// AnonymousName is the display name stored for anonymous submissions.
const AnonymousName = "Anonymous"

// Participant is a person (registered or ad hoc) who expressed availability
// for an event. Email is nil for anonymous submissions without one.
type Participant struct {
	ID           uuid.UUID                 `json:"id"`
	EventID      string                    `json:"event_id"`
	UserID       *uuid.UUID                `json:"user_id,omitempty"`
	Name         string                    `json:"participant_name"`
	Email        *string                   `json:"participant_email,omitempty"`
	IsAnonymous  bool                      `json:"is_anonymous"`
	Status       string                    `json:"status"`
	CreatedAt    time.Time                 `json:"created_at"`
	Availability []ParticipantAvailability `json:"participant_availability"`
}

// DisplayName masks anonymous participants.
func (p *Participant) DisplayName() string {
	if p.IsAnonymous {
		return AnonymousName
	}
	if p.Name == "" {
		return "Unknown"
	}
	return p.Name
}

// ParticipantAvailability is one participant's boolean vote on one time slot.
type ParticipantAvailability struct {
	ID            uuid.UUID `json:"id"`
	ParticipantID uuid.UUID `json:"participant_id"`
	TimeSlotID    uuid.UUID `json:"time_slot_id"`
	Vote          bool      `json:"vote"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// EventVote is an append-only audit row recording that someone voted.
// It is never read back by decision logic.
type EventVote struct {
	ID          uuid.UUID `json:"id"`
	EventID     string    `json:"event_id"`
	VoterEmail  *string   `json:"voter_email,omitempty"`
	IsAnonymous bool      `json:"is_anonymous"`
	VotedAt     time.Time `json:"voted_at"`
}
