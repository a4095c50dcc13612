package scheduling

import "testing"

func TestBuildSlots_NoShifts(t *testing.T) {
	slots := BuildSlots(nil, nil, 60)
	if len(slots) != 0 {
		t.Fatalf("expected no slots without shifts, got %d", len(slots))
	}
}

func TestBuildSlots_WalksShiftInFixedSteps(t *testing.T) {
	shifts := []Shift{
		{MechanicID: "m1", MechanicName: "Alice", Start: "09:00", End: "12:00"},
	}

	slots := BuildSlots(shifts, nil, 60)
	if len(slots) != 3 {
		t.Fatalf("expected 3 slots, got %d", len(slots))
	}
	for i, want := range []string{"09:00", "10:00", "11:00"} {
		if slots[i].Time != want {
			t.Fatalf("slot %d: expected %s, got %s", i, want, slots[i].Time)
		}
		if slots[i].Status != SlotAvailable {
			t.Fatalf("slot %d: expected available, got %s", i, slots[i].Status)
		}
	}
}

func TestBuildSlots_LastSlotMustFitInsideShift(t *testing.T) {
	shifts := []Shift{
		{MechanicID: "m1", MechanicName: "Alice", Start: "09:00", End: "10:30"},
	}

	slots := BuildSlots(shifts, nil, 60)
	// 09:30-10:30 would fit but 10:00-11:00 would not; only 09:00 is emitted
	// because the walk steps from the shift start.
	if len(slots) != 1 {
		t.Fatalf("expected 1 slot, got %d", len(slots))
	}
	if slots[0].Time != "09:00" {
		t.Fatalf("expected 09:00, got %s", slots[0].Time)
	}
}

func TestBuildSlots_MarksBookedOnExactStartMatch(t *testing.T) {
	shifts := []Shift{
		{MechanicID: "m1", MechanicName: "Alice", Start: "09:00", End: "12:00"},
	}
	bookings := []Booking{
		{MechanicID: "m1", Time: "10:00"},
		{MechanicID: "m2", Time: "11:00"}, // different mechanic, no effect
	}

	slots := BuildSlots(shifts, bookings, 60)
	byTime := map[string]SlotStatus{}
	for _, s := range slots {
		byTime[s.Time] = s.Status
	}

	if byTime["10:00"] != SlotBooked {
		t.Fatal("expected 10:00 to be booked")
	}
	if byTime["09:00"] != SlotAvailable || byTime["11:00"] != SlotAvailable {
		t.Fatal("expected 09:00 and 11:00 to stay available")
	}
}

func TestBuildSlots_UnassignedBookingBlocksAllMechanics(t *testing.T) {
	shifts := []Shift{
		{MechanicID: "m1", MechanicName: "Alice", Start: "09:00", End: "11:00"},
		{MechanicID: "m2", MechanicName: "Bob", Start: "09:00", End: "11:00"},
	}
	bookings := []Booking{
		{MechanicID: "", Time: "09:00"},
	}

	slots := BuildSlots(shifts, bookings, 60)
	for _, s := range slots {
		if s.Time == "09:00" && s.Status != SlotBooked {
			t.Fatalf("expected 09:00 booked for mechanic %s", s.MechanicID)
		}
		if s.Time == "10:00" && s.Status != SlotAvailable {
			t.Fatalf("expected 10:00 available for mechanic %s", s.MechanicID)
		}
	}
}

func TestBuildSlots_SortedByTimeAcrossMechanics(t *testing.T) {
	shifts := []Shift{
		{MechanicID: "m2", MechanicName: "Bob", Start: "10:00", End: "12:00"},
		{MechanicID: "m1", MechanicName: "Alice", Start: "09:00", End: "11:00"},
	}

	slots := BuildSlots(shifts, nil, 60)
	want := []struct {
		time string
		name string
	}{
		{"09:00", "Alice"},
		{"10:00", "Alice"},
		{"10:00", "Bob"},
		{"11:00", "Bob"},
	}
	if len(slots) != len(want) {
		t.Fatalf("expected %d slots, got %d", len(want), len(slots))
	}
	for i, w := range want {
		if slots[i].Time != w.time || slots[i].MechanicName != w.name {
			t.Fatalf("slot %d: expected %s/%s, got %s/%s",
				i, w.time, w.name, slots[i].Time, slots[i].MechanicName)
		}
	}
}
