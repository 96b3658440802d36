package wsync

import "testing"

// TestDecodeSideRecordRoundTrip tests decode/encode inversion for side map
// lines, including name-only records with no tail.
func TestDecodeSideRecordRoundTrip(t *testing.T) {
	tests := []string{
		"/file.go/T/Mon Jan  1 00:00:00 2026//",
		"/file.go",
	}
	for i, original := range tests {
		record, err := DecodeSideRecord(original)
		if err != nil {
			t.Fatalf("test index %d: unexpected error: %v", i, err)
		}
		if got := record.Encode(); got != original {
			t.Errorf("test index %d: round trip mismatch: %q != %q", i, got, original)
		}
	}
}

// TestDecodeSideRecordRejectsEmpty tests that an empty record is rejected.
func TestDecodeSideRecordRejectsEmpty(t *testing.T) {
	if _, err := DecodeSideRecord("/"); err == nil {
		t.Error("expected an error for an empty side record")
	}
}

// TestSetNotifyInfoReplacesExisting tests that upserting a record for a name
// already present replaces it silently rather than appending a second
// record or merging fields, pinning the Open Question (a) decision.
func TestSetNotifyInfoReplacesExisting(t *testing.T) {
	lines := []string{
		"/a.go/T/old-tail",
		"/b.go/T/other-tail",
	}

	updated := UpsertSideRecordByName(lines, SideRecord{Name: "a.go", Tail: "/T/new-tail"})

	if len(updated) != 2 {
		t.Fatalf("expected replace-in-place to leave the line count unchanged, got %d lines: %v", len(updated), updated)
	}
	record, ok := FindSideRecordByName(updated, "a.go")
	if !ok {
		t.Fatal("expected to find a.go's record")
	}
	if record.Tail != "/T/new-tail" {
		t.Errorf("expected a.go's tail to be replaced, got %q", record.Tail)
	}

	other, ok := FindSideRecordByName(updated, "b.go")
	if !ok || other.Tail != "/T/other-tail" {
		t.Errorf("expected b.go's record to be untouched, got %+v (present=%v)", other, ok)
	}
}

// TestUpsertSideRecordByNameAppendsNew tests that upserting a name not
// already present appends a new record.
func TestUpsertSideRecordByNameAppendsNew(t *testing.T) {
	lines := []string{"/a.go/T/tail"}
	updated := UpsertSideRecordByName(lines, SideRecord{Name: "b.go", Tail: "/T/tail2"})
	if len(updated) != 2 {
		t.Fatalf("expected a new record to be appended, got %v", updated)
	}
	if _, ok := FindSideRecordByName(updated, "b.go"); !ok {
		t.Error("expected to find newly appended b.go record")
	}
}

// TestRemoveSideRecordByName tests that removal drops only the named
// record.
func TestRemoveSideRecordByName(t *testing.T) {
	lines := []string{"/a.go/T/tail", "/b.go/T/tail2"}
	updated := RemoveSideRecordByName(lines, "a.go")
	if len(updated) != 1 {
		t.Fatalf("expected one record to remain, got %v", updated)
	}
	if _, ok := FindSideRecordByName(updated, "a.go"); ok {
		t.Error("expected a.go to be removed")
	}
	if _, ok := FindSideRecordByName(updated, "b.go"); !ok {
		t.Error("expected b.go to remain")
	}
}
