package events

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eventra/backend/internal/models"
)

var testNow = time.Date(2026, 9, 1, 12, 0, 0, 0, time.UTC)

func futureDate(days int) time.Time {
	return testNow.AddDate(0, 0, days)
}

func TestValidateSchedule_HappyPath(t *testing.T) {
	dates := []DateInput{
		{Date: futureDate(1), Slots: []SlotInput{
			{StartTime: "09:00", EndTime: "10:00"},
			{StartTime: "10:00", EndTime: "11:00"},
		}},
	}
	assert.NoError(t, ValidateSchedule(models.EventTypeGroup, dates, testNow))
}

func TestValidateSchedule_NoDates(t *testing.T) {
	assert.Error(t, ValidateSchedule(models.EventTypeGroup, nil, testNow))
}

func TestValidateSchedule_PastDateRejected(t *testing.T) {
	dates := []DateInput{
		{Date: futureDate(-1), Slots: []SlotInput{{StartTime: "09:00", EndTime: "10:00"}}},
	}
	err := ValidateSchedule(models.EventTypeGroup, dates, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "past date")
}

func TestValidateSchedule_TodayAllowed(t *testing.T) {
	dates := []DateInput{
		{Date: testNow, Slots: []SlotInput{{StartTime: "09:00", EndTime: "10:00"}}},
	}
	assert.NoError(t, ValidateSchedule(models.EventTypeGroup, dates, testNow))
}

func TestValidateSchedule_DateWithoutSlots(t *testing.T) {
	dates := []DateInput{{Date: futureDate(1)}}
	assert.Error(t, ValidateSchedule(models.EventTypeGroup, dates, testNow))
}

func TestValidateSchedule_EndBeforeStart(t *testing.T) {
	dates := []DateInput{
		{Date: futureDate(1), Slots: []SlotInput{{StartTime: "10:00", EndTime: "09:00"}}},
	}
	assert.Error(t, ValidateSchedule(models.EventTypeGroup, dates, testNow))
}

func TestValidateSchedule_OverlapRejected(t *testing.T) {
	dates := []DateInput{
		{Date: futureDate(1), Slots: []SlotInput{
			{StartTime: "09:00", EndTime: "10:30"},
			{StartTime: "10:00", EndTime: "11:00"},
		}},
	}
	err := ValidateSchedule(models.EventTypeGroup, dates, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "conflict")
}

func TestValidateSchedule_TouchingSlotsAllowedForGroup(t *testing.T) {
	dates := []DateInput{
		{Date: futureDate(1), Slots: []SlotInput{
			{StartTime: "09:00", EndTime: "10:00"},
			{StartTime: "10:00", EndTime: "11:00"},
		}},
	}
	assert.NoError(t, ValidateSchedule(models.EventTypeGroup, dates, testNow))
}

func TestValidateSchedule_OverlapCheckedRegardlessOfInputOrder(t *testing.T) {
	dates := []DateInput{
		{Date: futureDate(1), Slots: []SlotInput{
			{StartTime: "10:00", EndTime: "11:00"},
			{StartTime: "09:00", EndTime: "10:30"},
		}},
	}
	assert.Error(t, ValidateSchedule(models.EventTypeGroup, dates, testNow))
}

func TestValidateSchedule_OneToOneGap(t *testing.T) {
	// 29 minute gap fails, 30 minute gap passes.
	tooClose := []DateInput{
		{Date: futureDate(1), Slots: []SlotInput{
			{StartTime: "09:00", EndTime: "10:00"},
			{StartTime: "10:29", EndTime: "11:00"},
		}},
	}
	err := ValidateSchedule(models.EventTypeOneToOne, tooClose, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "30 minutes apart")

	spaced := []DateInput{
		{Date: futureDate(1), Slots: []SlotInput{
			{StartTime: "09:00", EndTime: "10:00"},
			{StartTime: "10:30", EndTime: "11:00"},
		}},
	}
	assert.NoError(t, ValidateSchedule(models.EventTypeOneToOne, spaced, testNow))
}

func TestValidateSchedule_OneToOneSlotCap(t *testing.T) {
	var dates []DateInput
	// 11 slots spread over 11 days, one per date, so spacing rules don't fire.
	for i := 0; i < 11; i++ {
		dates = append(dates, DateInput{
			Date:  futureDate(i + 1),
			Slots: []SlotInput{{StartTime: "09:00", EndTime: "10:00"}},
		})
	}
	err := ValidateSchedule(models.EventTypeOneToOne, dates, testNow)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "maximum of 10")

	assert.NoError(t, ValidateSchedule(models.EventTypeOneToOne, dates[:10], testNow))
}

func TestValidateSchedule_InvalidTimeFormat(t *testing.T) {
	dates := []DateInput{
		{Date: futureDate(1), Slots: []SlotInput{{StartTime: "9am", EndTime: "10:00"}}},
	}
	assert.Error(t, ValidateSchedule(models.EventTypeGroup, dates, testNow))
}

func TestValidateSchedule_GroupHasNoSlotCap(t *testing.T) {
	var dates []DateInput
	for i := 0; i < 11; i++ {
		dates = append(dates, DateInput{
			Date:  futureDate(i + 1),
			Slots: []SlotInput{{StartTime: "09:00", EndTime: "10:00"}},
		})
	}
	assert.NoError(t, ValidateSchedule(models.EventTypeGroup, dates, testNow))
}
