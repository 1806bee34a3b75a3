// Package participants implements availability submission: validation,
// 1:1 exclusivity, duplicate detection, and the transactional replace of a
// participant's votes.
package participants

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/eventra/backend/internal/availability"
	"github.com/eventra/backend/internal/models"
)

var (
	// ErrClosed means the event is completed and rejects all submissions.
	ErrClosed = errors.New("this poll has ended and is no longer accepting responses")
	// ErrSlotTaken means a selected slot is already booked on a 1:1 event.
	ErrSlotTaken = errors.New("one or more selected time slots are already taken")
	// ErrNotFound means no matching participant exists.
	ErrNotFound = errors.New("participant not found")
	// ErrValidation wraps input validation failures.
	ErrValidation = errors.New("invalid submission")
)

// Submission is one participant's availability payload.
type Submission struct {
	Name        string
	Email       string
	IsAnonymous bool
	TimeSlotIDs []uuid.UUID
	// Votes optionally overrides the vote flag per slot; absent IDs default
	// to true.
	Votes map[uuid.UUID]bool
}

// VoteFor returns the effective vote flag for a selected slot.
func (s Submission) VoteFor(slotID uuid.UUID) bool {
	if s.Votes == nil {
		return true
	}
	v, ok := s.Votes[slotID]
	if !ok {
		return true
	}
	return v
}

// Duplicate describes an existing participant that already submitted with
// the same email. It is a confirmation path, not a hard error: the caller
// asks the user whether to overwrite.
type Duplicate struct {
	ParticipantID uuid.UUID
	Name          string
	Email         string
}

// Evaluate runs the submission rules against a loaded event tree. It returns
// a non-nil Duplicate when the email already submitted, or an error
// (ErrClosed, ErrSlotTaken, or an ErrValidation wrap) when the submission
// must be rejected. A nil, nil return means the submission may proceed.
func Evaluate(ev *models.Event, sub Submission) (*Duplicate, error) {
	if ev.Status == models.EventStatusCompleted {
		return nil, ErrClosed
	}

	if !sub.IsAnonymous && (strings.TrimSpace(sub.Name) == "" || strings.TrimSpace(sub.Email) == "") {
		return nil, fmt.Errorf("%w: name and email are required", ErrValidation)
	}
	if len(sub.TimeSlotIDs) == 0 {
		return nil, fmt.Errorf("%w: at least one time slot must be selected", ErrValidation)
	}

	known := make(map[uuid.UUID]bool)
	for _, d := range ev.Dates {
		for _, s := range d.Slots {
			known[s.ID] = true
		}
	}
	voted := 0
	for _, id := range sub.TimeSlotIDs {
		if !known[id] {
			return nil, fmt.Errorf("%w: time slot %s does not belong to this event", ErrValidation, id)
		}
		if sub.VoteFor(id) {
			voted++
		}
	}
	if !ev.CanMultipleVote && voted > 1 {
		return nil, fmt.Errorf("%w: this event allows voting for a single time slot", ErrValidation)
	}

	if ev.Type == models.EventTypeOneToOne {
		taken := availability.TakenSlots(ev)
		for _, id := range sub.TimeSlotIDs {
			if sub.VoteFor(id) && taken[id] {
				return nil, ErrSlotTaken
			}
		}
	}

	// Without an email there is nothing to deduplicate against.
	if sub.Email == "" || sub.IsAnonymous {
		return nil, nil
	}
	for i := range ev.Participants {
		p := &ev.Participants[i]
		if p.IsAnonymous || p.Email == nil {
			continue
		}
		if strings.EqualFold(*p.Email, sub.Email) {
			return &Duplicate{ParticipantID: p.ID, Name: p.Name, Email: *p.Email}, nil
		}
	}
	return nil, nil
}
