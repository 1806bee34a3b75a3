package events

import (
	"fmt"
	"sort"
	"time"

	"github.com/eventra/backend/internal/models"
)

const (
	// minOneToOneGapMinutes is the required spacing between consecutive
	// slots on the same date for 1:1 events.
	minOneToOneGapMinutes = 30
	// maxOneToOneSlots caps the total slot count for 1:1 events.
	maxOneToOneSlots = 10
)

// SlotInput is one proposed start/end time in "HH:MM" form.
type SlotInput struct {
	StartTime string
	EndTime   string
}

// DateInput is one proposed date with its time slots.
type DateInput struct {
	Date  time.Time
	Slots []SlotInput
}

// ValidateSchedule checks a proposed event schedule: no past dates, no
// overlapping slots within a date, end after start, and for 1:1 events a
// minimum gap between slots plus a total slot cap.
func ValidateSchedule(eventType models.EventType, dates []DateInput, now time.Time) error {
	if len(dates) == 0 {
		return fmt.Errorf("at least one date is required")
	}
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	totalSlots := 0
	for _, d := range dates {
		day := time.Date(d.Date.Year(), d.Date.Month(), d.Date.Day(), 0, 0, 0, 0, now.Location())
		if day.Before(today) {
			return fmt.Errorf("cannot create event for past date: %s", d.Date.Format("January 2, 2006"))
		}
		if len(d.Slots) == 0 {
			return fmt.Errorf("date %s has no time slots", d.Date.Format("January 2, 2006"))
		}
		totalSlots += len(d.Slots)

		ranges := make([]slotRange, 0, len(d.Slots))
		for _, s := range d.Slots {
			r, err := parseSlotRange(s)
			if err != nil {
				return err
			}
			ranges = append(ranges, r)
		}
		sort.Slice(ranges, func(i, j int) bool { return ranges[i].start < ranges[j].start })

		for i := 0; i < len(ranges)-1; i++ {
			cur, next := ranges[i], ranges[i+1]
			if cur.end > next.start {
				return fmt.Errorf("time conflict detected on %s: %s-%s overlaps with %s-%s",
					d.Date.Format("January 2, 2006"),
					cur.raw.StartTime, cur.raw.EndTime, next.raw.StartTime, next.raw.EndTime)
			}
			if eventType == models.EventTypeOneToOne && next.start-cur.end < minOneToOneGapMinutes {
				return fmt.Errorf("time slots must be at least %d minutes apart for 1:1 events", minOneToOneGapMinutes)
			}
		}
	}

	if eventType == models.EventTypeOneToOne && totalSlots > maxOneToOneSlots {
		return fmt.Errorf("1:1 events can have a maximum of %d time slots", maxOneToOneSlots)
	}
	return nil
}

type slotRange struct {
	start, end int // minutes since midnight
	raw        SlotInput
}

func parseSlotRange(s SlotInput) (slotRange, error) {
	start, err := parseMinutes(s.StartTime)
	if err != nil {
		return slotRange{}, fmt.Errorf("invalid start time %q", s.StartTime)
	}
	end, err := parseMinutes(s.EndTime)
	if err != nil {
		return slotRange{}, fmt.Errorf("invalid end time %q", s.EndTime)
	}
	if end <= start {
		return slotRange{}, fmt.Errorf("end time %s must be after start time %s", s.EndTime, s.StartTime)
	}
	return slotRange{start: start, end: end, raw: s}, nil
}

func parseMinutes(hhmm string) (int, error) {
	t, err := time.Parse("15:04", hhmm)
	if err != nil {
		return 0, err
	}
	return t.Hour()*60 + t.Minute(), nil
}
