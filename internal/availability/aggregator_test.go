package availability

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventra/backend/internal/models"
)

func strPtr(s string) *string { return &s }

func buildEvent(t models.EventType) (*models.Event, []uuid.UUID) {
	slotIDs := []uuid.UUID{uuid.New(), uuid.New(), uuid.New()}
	dateA := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	dateB := time.Date(2026, 10, 2, 0, 0, 0, 0, time.UTC)
	ev := &models.Event{
		ID:     "eventra-abc12345-xq2kd",
		Type:   t,
		Status: models.EventStatusActive,
		Dates: []models.EventDate{
			{ID: uuid.New(), Date: dateA, Slots: []models.TimeSlot{
				{ID: slotIDs[0], StartTime: "09:00", EndTime: "10:00"},
				{ID: slotIDs[1], StartTime: "11:00", EndTime: "12:00"},
			}},
			{ID: uuid.New(), Date: dateB, Slots: []models.TimeSlot{
				{ID: slotIDs[2], StartTime: "09:00", EndTime: "10:00"},
			}},
		},
	}
	return ev, slotIDs
}

func addVoter(ev *models.Event, name string, email *string, anonymous bool, slots ...uuid.UUID) {
	p := models.Participant{
		ID:          uuid.New(),
		EventID:     ev.ID,
		Name:        name,
		Email:       email,
		IsAnonymous: anonymous,
	}
	if anonymous {
		p.Name = models.AnonymousName
	}
	for _, s := range slots {
		p.Availability = append(p.Availability, models.ParticipantAvailability{
			ID:            uuid.New(),
			ParticipantID: p.ID,
			TimeSlotID:    s,
			Vote:          true,
		})
	}
	ev.Participants = append(ev.Participants, p)
}

func TestTally_CountsAndNames(t *testing.T) {
	ev, slots := buildEvent(models.EventTypeGroup)
	addVoter(ev, "Alice", strPtr("alice@example.com"), false, slots[0], slots[2])
	addVoter(ev, "Bob", strPtr("bob@example.com"), false, slots[0])

	tallies := Tally(ev)
	require.Len(t, tallies, 3)

	assert.Equal(t, slots[0], tallies[0].TimeSlotID)
	assert.Equal(t, 2, tallies[0].VoteCount)
	assert.ElementsMatch(t, []string{"Alice", "Bob"}, tallies[0].Participants)

	assert.Equal(t, 0, tallies[1].VoteCount)
	assert.Empty(t, tallies[1].Participants)

	assert.Equal(t, 1, tallies[2].VoteCount)
	assert.Equal(t, []string{"Alice"}, tallies[2].Participants)
}

func TestTally_AnonymousVotersAreMasked(t *testing.T) {
	ev, slots := buildEvent(models.EventTypeGroup)
	addVoter(ev, "", nil, true, slots[1])

	tallies := Tally(ev)
	require.Len(t, tallies, 3)
	assert.Equal(t, []string{"Anonymous"}, tallies[1].Participants)
}

func TestTally_SkipsVoteFalseRows(t *testing.T) {
	ev, slots := buildEvent(models.EventTypeGroup)
	p := models.Participant{ID: uuid.New(), Name: "Carol", Email: strPtr("carol@example.com")}
	p.Availability = []models.ParticipantAvailability{
		{ID: uuid.New(), ParticipantID: p.ID, TimeSlotID: slots[0], Vote: false},
		{ID: uuid.New(), ParticipantID: p.ID, TimeSlotID: slots[1], Vote: true},
	}
	ev.Participants = append(ev.Participants, p)

	tallies := Tally(ev)
	assert.Equal(t, 0, tallies[0].VoteCount)
	assert.Equal(t, 1, tallies[1].VoteCount)
}

func TestTally_OrderIndependentOfParticipantOrder(t *testing.T) {
	ev, slots := buildEvent(models.EventTypeGroup)
	// Voters arrive in reverse slot order; tallies still follow schedule order.
	addVoter(ev, "Late", strPtr("late@example.com"), false, slots[2])
	addVoter(ev, "Early", strPtr("early@example.com"), false, slots[0])

	tallies := Tally(ev)
	require.Len(t, tallies, 3)
	assert.Equal(t, slots[0], tallies[0].TimeSlotID)
	assert.Equal(t, slots[1], tallies[1].TimeSlotID)
	assert.Equal(t, slots[2], tallies[2].TimeSlotID)
}

func TestPick_GroupStrictMajority(t *testing.T) {
	ev, slots := buildEvent(models.EventTypeGroup)
	addVoter(ev, "A", strPtr("a@example.com"), false, slots[1])
	addVoter(ev, "B", strPtr("b@example.com"), false, slots[1])
	addVoter(ev, "C", strPtr("c@example.com"), false, slots[0])

	winner := Pick(ev)
	require.NotNil(t, winner)
	assert.Equal(t, slots[1], winner.TimeSlotID)
	assert.Equal(t, 2, winner.VoteCount)
}

func TestPick_TieGoesToEarliestSlot(t *testing.T) {
	ev, slots := buildEvent(models.EventTypeGroup)
	addVoter(ev, "A", strPtr("a@example.com"), false, slots[0])
	addVoter(ev, "B", strPtr("b@example.com"), false, slots[2])

	winner := Pick(ev)
	require.NotNil(t, winner)
	assert.Equal(t, slots[0], winner.TimeSlotID)
}

func TestPick_NoVotesReturnsNil(t *testing.T) {
	ev, _ := buildEvent(models.EventTypeGroup)
	assert.Nil(t, Pick(ev))
}

func TestPick_OneToOneFirstBookedSlot(t *testing.T) {
	ev, slots := buildEvent(models.EventTypeOneToOne)
	addVoter(ev, "Booker", strPtr("booker@example.com"), false, slots[1])

	winner := Pick(ev)
	require.NotNil(t, winner)
	assert.Equal(t, slots[1], winner.TimeSlotID)
	assert.Equal(t, 1, winner.VoteCount)
}

func TestTakenSlots(t *testing.T) {
	ev, slots := buildEvent(models.EventTypeOneToOne)
	addVoter(ev, "A", strPtr("a@example.com"), false, slots[0])

	taken := TakenSlots(ev)
	assert.True(t, taken[slots[0]])
	assert.False(t, taken[slots[1]])
	assert.False(t, taken[slots[2]])
}
