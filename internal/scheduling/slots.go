package scheduling

import (
	"fmt"
	"sort"
)

// SlotStatus marks a slot as free or taken.
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
)

// Slot is one discrete bookable time unit derived from a mechanic's shift.
type Slot struct {
	Time         string     `json:"time"`
	MechanicID   string     `json:"mechanicId"`
	MechanicName string     `json:"mechanicName"`
	Status       SlotStatus `json:"status"`
}

// Shift is one working interval used as input to slot generation.
type Shift struct {
	MechanicID   string
	MechanicName string
	Start        string // HH:MM
	End          string // HH:MM
}

// Booking is an existing non-canceled appointment start used to mark slots as
// taken. MechanicID is empty when the appointment has no assigned mechanic.
type Booking struct {
	MechanicID string
	Time       string // HH:MM
}

// BuildSlots walks each shift from start to end in fixed stepMinutes
// increments and emits one candidate slot per increment that fits fully
// inside the shift. A slot is booked when an appointment starts at exactly
// that time and is either assigned to the slot's mechanic or unassigned.
// Partial-window overlaps with longer services are not considered. The result
// is sorted ascending by time across all mechanics, ties by mechanic name.
func BuildSlots(shifts []Shift, bookings []Booking, stepMinutes int) []Slot {
	if stepMinutes <= 0 {
		return nil
	}

	slots := []Slot{}
	for _, sh := range shifts {
		start, err := clockToMinutes(sh.Start)
		if err != nil {
			continue
		}
		end, err := clockToMinutes(sh.End)
		if err != nil {
			continue
		}
		for t := start; t+stepMinutes <= end; t += stepMinutes {
			slot := Slot{
				Time:         minutesToClock(t),
				MechanicID:   sh.MechanicID,
				MechanicName: sh.MechanicName,
				Status:       SlotAvailable,
			}
			for _, b := range bookings {
				if b.Time == slot.Time && (b.MechanicID == "" || b.MechanicID == sh.MechanicID) {
					slot.Status = SlotBooked
					break
				}
			}
			slots = append(slots, slot)
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		if slots[i].Time != slots[j].Time {
			return slots[i].Time < slots[j].Time
		}
		return slots[i].MechanicName < slots[j].MechanicName
	})
	return slots
}

func clockToMinutes(clock string) (int, error) {
	var h, m int
	if _, err := fmt.Sscanf(clock, "%d:%d", &h, &m); err != nil {
		return 0, err
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return 0, fmt.Errorf("clock out of range: %s", clock)
	}
	return h*60 + m, nil
}

func minutesToClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
