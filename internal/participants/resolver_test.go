package participants

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventra/backend/internal/models"
)

func strPtr(s string) *string { return &s }

func testEvent(t models.EventType) (*models.Event, []uuid.UUID) {
	slotIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	ev := &models.Event{
		ID:              "eventra-abc12345-xq2kd",
		Type:            t,
		Status:          models.EventStatusActive,
		CanMultipleVote: true,
		Dates: []models.EventDate{
			{ID: uuid.New(), Date: time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC), Slots: []models.TimeSlot{
				{ID: slotIDs[0], StartTime: "09:00", EndTime: "10:00"},
				{ID: slotIDs[1], StartTime: "11:00", EndTime: "12:00"},
			}},
			{ID: uuid.New(), Date: time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC), Slots: []models.TimeSlot{
				{ID: slotIDs[2], StartTime: "09:00", EndTime: "10:00"},
			}},
		},
	}
	return ev, slotIDs
}

func existingParticipant(ev *models.Event, name, email string, slots ...uuid.UUID) models.Participant {
	p := models.Participant{
		ID:      uuid.New(),
		EventID: ev.ID,
		Name:    name,
		Email:   strPtr(email),
	}
	for _, s := range slots {
		p.Availability = append(p.Availability, models.ParticipantAvailability{
			ID: uuid.New(), ParticipantID: p.ID, TimeSlotID: s, Vote: true,
		})
	}
	ev.Participants = append(ev.Participants, p)
	return p
}

func TestEvaluate_HappyPath(t *testing.T) {
	ev, slots := testEvent(models.EventTypeGroup)

	dup, err := Evaluate(ev, Submission{
		Name:        "Alice",
		Email:       "alice@example.com",
		TimeSlotIDs: []uuid.UUID{slots[0], slots[2]},
	})
	require.NoError(t, err)
	assert.Nil(t, dup)
}

func TestEvaluate_CompletedEventRejectsAll(t *testing.T) {
	ev, slots := testEvent(models.EventTypeGroup)
	ev.Status = models.EventStatusCompleted

	_, err := Evaluate(ev, Submission{
		Name:        "Alice",
		Email:       "alice@example.com",
		TimeSlotIDs: []uuid.UUID{slots[0]},
	})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestEvaluate_NonAnonymousRequiresIdentity(t *testing.T) {
	ev, slots := testEvent(models.EventTypeGroup)

	_, err := Evaluate(ev, Submission{TimeSlotIDs: []uuid.UUID{slots[0]}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = Evaluate(ev, Submission{Name: "Alice", TimeSlotIDs: []uuid.UUID{slots[0]}})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEvaluate_AnonymousNeedsNoIdentity(t *testing.T) {
	ev, slots := testEvent(models.EventTypeGroup)

	dup, err := Evaluate(ev, Submission{
		IsAnonymous: true,
		TimeSlotIDs: []uuid.UUID{slots[1]},
	})
	require.NoError(t, err)
	assert.Nil(t, dup)
}

func TestEvaluate_RequiresAtLeastOneSlot(t *testing.T) {
	ev, _ := testEvent(models.EventTypeGroup)

	_, err := Evaluate(ev, Submission{Name: "Alice", Email: "alice@example.com"})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEvaluate_UnknownSlotRejected(t *testing.T) {
	ev, _ := testEvent(models.EventTypeGroup)

	_, err := Evaluate(ev, Submission{
		Name:        "Alice",
		Email:       "alice@example.com",
		TimeSlotIDs: []uuid.UUID{uuid.New()},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEvaluate_SingleVoteEventRejectsMultipleVotes(t *testing.T) {
	ev, slots := testEvent(models.EventTypeGroup)
	ev.CanMultipleVote = false

	_, err := Evaluate(ev, Submission{
		Name:        "Alice",
		Email:       "alice@example.com",
		TimeSlotIDs: []uuid.UUID{slots[0], slots[1]},
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestEvaluate_SingleVoteEventAllowsVoteFalseExtras(t *testing.T) {
	ev, slots := testEvent(models.EventTypeGroup)
	ev.CanMultipleVote = false

	dup, err := Evaluate(ev, Submission{
		Name:        "Alice",
		Email:       "alice@example.com",
		TimeSlotIDs: []uuid.UUID{slots[0], slots[1]},
		Votes:       map[uuid.UUID]bool{slots[1]: false},
	})
	require.NoError(t, err)
	assert.Nil(t, dup)
}

func TestEvaluate_OneToOneTakenSlot(t *testing.T) {
	ev, slots := testEvent(models.EventTypeOneToOne)
	existingParticipant(ev, "First", "first@example.com", slots[0])

	_, err := Evaluate(ev, Submission{
		Name:        "Second",
		Email:       "second@example.com",
		TimeSlotIDs: []uuid.UUID{slots[0]},
	})
	assert.ErrorIs(t, err, ErrSlotTaken)
}

func TestEvaluate_OneToOneFreeSlotAccepted(t *testing.T) {
	ev, slots := testEvent(models.EventTypeOneToOne)
	existingParticipant(ev, "First", "first@example.com", slots[0])

	dup, err := Evaluate(ev, Submission{
		Name:        "Second",
		Email:       "second@example.com",
		TimeSlotIDs: []uuid.UUID{slots[1]},
	})
	require.NoError(t, err)
	assert.Nil(t, dup)
}

func TestEvaluate_DuplicateEmailReturnsExisting(t *testing.T) {
	ev, slots := testEvent(models.EventTypeGroup)
	existing := existingParticipant(ev, "Alice", "alice@example.com", slots[0])

	dup, err := Evaluate(ev, Submission{
		Name:        "Alice Again",
		Email:       "ALICE@Example.com",
		TimeSlotIDs: []uuid.UUID{slots[1]},
	})
	require.NoError(t, err)
	require.NotNil(t, dup)
	assert.Equal(t, existing.ID, dup.ParticipantID)
	assert.Equal(t, "Alice", dup.Name)
	assert.Equal(t, "alice@example.com", dup.Email)
}

func TestEvaluate_AnonymousNeverDuplicates(t *testing.T) {
	ev, slots := testEvent(models.EventTypeGroup)
	existingParticipant(ev, "Alice", "alice@example.com", slots[0])

	dup, err := Evaluate(ev, Submission{
		IsAnonymous: true,
		Email:       "alice@example.com",
		TimeSlotIDs: []uuid.UUID{slots[1]},
	})
	require.NoError(t, err)
	assert.Nil(t, dup)
}

func TestVoteFor_DefaultsTrue(t *testing.T) {
	id := uuid.New()
	assert.True(t, Submission{}.VoteFor(id))
	assert.True(t, Submission{Votes: map[uuid.UUID]bool{}}.VoteFor(id))
	assert.False(t, Submission{Votes: map[uuid.UUID]bool{id: false}}.VoteFor(id))
}
