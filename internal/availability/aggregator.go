// Package availability reduces an event's participant votes into per-slot
// tallies and picks the winning slot. All functions are pure: they read the
// loaded event tree and never touch storage.
package availability

import (
	"time"

	"github.com/google/uuid"

	"github.com/eventra/backend/internal/models"
)

// SlotTally is the aggregated result for one time slot.
type SlotTally struct {
	TimeSlotID   uuid.UUID `json:"time_slot_id"`
	Date         time.Time `json:"date"`
	StartTime    string    `json:"start_time"`
	EndTime      string    `json:"end_time"`
	VoteCount    int       `json:"vote_count"`
	Participants []string  `json:"participants"`
}

// MostVoted identifies the winning slot of an event.
type MostVoted struct {
	TimeSlotID uuid.UUID `json:"time_slot_id"`
	Date       time.Time `json:"date"`
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	VoteCount  int       `json:"vote_count"`
}

// Tally computes, for every time slot of the event, the number of vote=true
// availability rows referencing it and the display names of the voters.
// Anonymous participants are rendered as "Anonymous" with no identity leaked.
// Slots are emitted in (date, start time) order regardless of how the
// participant rows were loaded.
func Tally(ev *models.Event) []SlotTally {
	counts := make(map[uuid.UUID]int)
	names := make(map[uuid.UUID][]string)
	for _, p := range ev.Participants {
		for _, a := range p.Availability {
			if !a.Vote {
				continue
			}
			counts[a.TimeSlotID]++
			names[a.TimeSlotID] = append(names[a.TimeSlotID], p.DisplayName())
		}
	}

	var tallies []SlotTally
	for _, d := range ev.Dates {
		for _, s := range d.Slots {
			tallies = append(tallies, SlotTally{
				TimeSlotID:   s.ID,
				Date:         d.Date,
				StartTime:    s.StartTime,
				EndTime:      s.EndTime,
				VoteCount:    counts[s.ID],
				Participants: names[s.ID],
			})
		}
	}
	return tallies
}

// Pick selects the winning slot. For group events it is the slot with the
// strictly greatest vote count; ties go to the earliest date, then the
// earliest start time, which is the iteration order of the loaded tree. For
// 1:1 events slots are binary taken/available, so the first booked slot in
// that same order wins. Returns nil when nothing has been voted or booked.
func Pick(ev *models.Event) *MostVoted {
	tallies := Tally(ev)
	var best *MostVoted
	for i := range tallies {
		t := tallies[i]
		if t.VoteCount == 0 {
			continue
		}
		if ev.Type == models.EventTypeOneToOne {
			// First booked slot in (date, start time) order.
			return &MostVoted{TimeSlotID: t.TimeSlotID, Date: t.Date, StartTime: t.StartTime, EndTime: t.EndTime, VoteCount: t.VoteCount}
		}
		if best == nil || t.VoteCount > best.VoteCount {
			best = &MostVoted{TimeSlotID: t.TimeSlotID, Date: t.Date, StartTime: t.StartTime, EndTime: t.EndTime, VoteCount: t.VoteCount}
		}
	}
	return best
}

// TakenSlots returns the set of time slot IDs already voted for by any
// participant. Used for 1:1 exclusivity checks.
func TakenSlots(ev *models.Event) map[uuid.UUID]bool {
	taken := make(map[uuid.UUID]bool)
	for _, p := range ev.Participants {
		for _, a := range p.Availability {
			if a.Vote {
				taken[a.TimeSlotID] = true
			}
		}
	}
	return taken
}
