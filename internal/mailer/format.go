package mailer

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/eventra/backend/internal/models"
)

// FormatSlot renders one slot as "Monday, January 2, 2006 at 09:00 - 10:00".
func FormatSlot(date time.Time, startTime, endTime string) string {
	return fmt.Sprintf("%s at %s - %s", date.Format("Monday, January 2, 2006"), startTime, endTime)
}

// FormatSlotList renders the selected slots of an event in schedule order,
// joined with "; ". Unknown slot IDs are skipped.
func FormatSlotList(ev *models.Event, slotIDs []uuid.UUID) string {
	selected := make(map[uuid.UUID]bool, len(slotIDs))
	for _, id := range slotIDs {
		selected[id] = true
	}
	var parts []string
	for _, d := range ev.Dates {
		for _, s := range d.Slots {
			if selected[s.ID] {
				parts = append(parts, FormatSlot(d.Date, s.StartTime, s.EndTime))
			}
		}
	}
	return strings.Join(parts, "; ")
}
