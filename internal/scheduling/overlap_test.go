package scheduling

import "testing"

func TestOverlaps(t *testing.T) {
	cases := []struct {
		name           string
		s1, e1, s2, e2 string
		want           bool
	}{
		{"identical windows", "09:00", "12:00", "09:00", "12:00", true},
		{"partial overlap", "09:00", "12:00", "11:00", "13:00", true},
		{"containment", "09:00", "17:00", "10:00", "11:00", true},
		{"contained by", "10:00", "11:00", "09:00", "17:00", true},
		{"touching endpoints", "09:00", "12:00", "12:00", "14:00", false},
		{"touching reversed", "12:00", "14:00", "09:00", "12:00", false},
		{"disjoint", "09:00", "10:00", "13:00", "14:00", false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Overlaps(tc.s1, tc.e1, tc.s2, tc.e2); got != tc.want {
				t.Fatalf("Overlaps(%s-%s, %s-%s) = %v, want %v",
					tc.s1, tc.e1, tc.s2, tc.e2, got, tc.want)
			}
		})
	}
}

func TestConflictsAny(t *testing.T) {
	entries := []Window{
		{ID: "a", Start: "09:00", End: "12:00"},
		{ID: "b", Start: "13:00", End: "17:00"},
	}

	if !ConflictsAny("11:00", "13:00", entries, "") {
		t.Fatal("expected conflict with 09:00-12:00")
	}
	if ConflictsAny("12:00", "13:00", entries, "") {
		t.Fatal("expected no conflict in the 12:00-13:00 gap")
	}
}

func TestConflictsAny_ExcludesSelf(t *testing.T) {
	entries := []Window{
		{ID: "a", Start: "09:00", End: "12:00"},
	}

	// Updating entry "a" in place must not conflict with itself.
	if ConflictsAny("09:00", "12:00", entries, "a") {
		t.Fatal("expected entry to be excluded from its own update check")
	}
	if !ConflictsAny("09:00", "12:00", entries, "other") {
		t.Fatal("expected conflict when exclusion does not match")
	}
}
