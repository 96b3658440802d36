package wsync

import "strings"

// SideRecord is a single line of a per-folder side map (CVS/Notify or
// CVS/Baserev): a record keyed by a child file name, with the remainder of
// the line preserved opaquely. Neither side map participates in dirty
// propagation or requires a batch scope (spec §4.7); they're read/written
// directly under the op lock.
type SideRecord struct {
	// Name is the child file name the record is keyed by.
	Name string
	// Tail is everything following the name, including the separating
	// "/", preserved verbatim.
	Tail string
}

// DecodeSideRecord parses a single side-map line ("/<name>/<...>" or
// "<name>/<...>", matching however the respective file actually stores
// it) into a SideRecord.
func DecodeSideRecord(line string) (SideRecord, error) {
	trimmed := strings.TrimPrefix(line, "/")
	index := strings.IndexByte(trimmed, '/')
	if index == -1 {
		if trimmed == "" {
			return SideRecord{}, &MalformedSyncRecord{Reason: "empty side record"}
		}
		return SideRecord{Name: trimmed}, nil
	}
	return SideRecord{Name: trimmed[:index], Tail: trimmed[index:]}, nil
}

// Encode renders a SideRecord back to its line form.
func (s SideRecord) Encode() string {
	return "/" + s.Name + s.Tail
}

// UpsertSideRecordByName replaces the record named record.Name in lines if
// present, or appends it otherwise. This is a silent replace-on-upsert, not
// a merge: spec.md §9 Open Question (a) flags this as the behavior
// inherited from the system this was modeled on, and it's pinned here
// deliberately rather than changed.
func UpsertSideRecordByName(lines []string, record SideRecord) []string {
	for i, line := range lines {
		existing, err := DecodeSideRecord(line)
		if err == nil && existing.Name == record.Name {
			updated := append([]string(nil), lines...)
			updated[i] = record.Encode()
			return updated
		}
	}
	return append(append([]string(nil), lines...), record.Encode())
}

// RemoveSideRecordByName removes the record named name from lines, if
// present.
func RemoveSideRecordByName(lines []string, name string) []string {
	out := make([]string, 0, len(lines))
	for _, line := range lines {
		existing, err := DecodeSideRecord(line)
		if err == nil && existing.Name == name {
			continue
		}
		out = append(out, line)
	}
	return out
}

// FindSideRecordByName looks up the record named name, if present.
func FindSideRecordByName(lines []string, name string) (SideRecord, bool) {
	for _, line := range lines {
		existing, err := DecodeSideRecord(line)
		if err == nil && existing.Name == name {
			return existing, true
		}
	}
	return SideRecord{}, false
}
