package scheduling

// Overlaps reports whether the half-open windows [s1,e1) and [s2,e2) overlap.
// Times are zero-padded HH:MM strings, so lexicographic comparison matches
// chronological comparison. Windows that merely touch (e1 == s2) do not
// overlap.
func Overlaps(s1, e1, s2, e2 string) bool {
	return s1 < e2 && s2 < e1
}

// ConflictsAny reports whether the candidate window [start,end) overlaps any
// of the given windows, skipping the entry whose ID equals excludeID. The
// exclusion is used when validating an update against the entry itself.
func ConflictsAny(start, end string, entries []Window, excludeID string) bool {
	for _, w := range entries {
		if excludeID != "" && w.ID == excludeID {
			continue
		}
		if Overlaps(start, end, w.Start, w.End) {
			return true
		}
	}
	return false
}

// Window is one existing working interval considered during conflict checks.
type Window struct {
	ID    string
	Start string
	End   string
}
