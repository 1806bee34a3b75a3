package mailer

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/eventra/backend/internal/models"
)

func TestFormatSlot(t *testing.T) {
	date := time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, "Monday, October 5, 2026 at 09:00 - 10:00", FormatSlot(date, "09:00", "10:00"))
}

func TestFormatSlotList_ScheduleOrder(t *testing.T) {
	s1, s2, s3 := uuid.New(), uuid.New(), uuid.New()
	ev := &models.Event{
		Dates: []models.EventDate{
			{Date: time.Date(2026, 10, 5, 0, 0, 0, 0, time.UTC), Slots: []models.TimeSlot{
				{ID: s1, StartTime: "09:00", EndTime: "10:00"},
				{ID: s2, StartTime: "11:00", EndTime: "12:00"},
			}},
			{Date: time.Date(2026, 10, 6, 0, 0, 0, 0, time.UTC), Slots: []models.TimeSlot{
				{ID: s3, StartTime: "09:00", EndTime: "10:00"},
			}},
		},
	}

	// Selection order does not matter; output follows the schedule.
	got := FormatSlotList(ev, []uuid.UUID{s3, s1})
	assert.Equal(t, "Monday, October 5, 2026 at 09:00 - 10:00; Tuesday, October 6, 2026 at 09:00 - 10:00", got)

	assert.Empty(t, FormatSlotList(ev, []uuid.UUID{uuid.New()}))
}

func TestVoteConfirmationEmail_EscapesContent(t *testing.T) {
	body := VoteConfirmationEmail("Team <Sync>", "Alice & Bob", "Monday, October 5, 2026 at 09:00 - 10:00")
	assert.Contains(t, body, "Team &lt;Sync&gt;")
	assert.Contains(t, body, "Alice &amp; Bob")
	assert.Contains(t, body, "Thanks for voting")
}

func TestEventCompletionEmail_OptionalSections(t *testing.T) {
	full := EventCompletionEmail("Offsite", "Alice", "Monday, October 5, 2026 at 09:00 - 10:00", "HQ", "Bring a laptop")
	assert.Contains(t, full, "Final Date")
	assert.Contains(t, full, "HQ")
	assert.Contains(t, full, "Bring a laptop")
	assert.Contains(t, full, "The Eventra Team")

	bare := EventCompletionEmail("Offsite", "Alice", "", "", "")
	assert.NotContains(t, bare, "Final Date")
	assert.NotContains(t, bare, "Location")
	assert.NotContains(t, bare, "Event Details")
}
