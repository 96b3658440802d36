package wsync

import (
	"reflect"
	"testing"
)

// TestDecodeEncodeRoundTrip tests that DecodeResourceSync and
// EncodeResourceSync are exact inverses for well-formed records, including
// ones carrying extra fields this implementation doesn't interpret.
func TestDecodeEncodeRoundTrip(t *testing.T) {
	tests := []string{
		"/file.go/1.3/Mon Jan  1 00:00:00 2026//",
		"/file.go/1.3/Mon Jan  1 00:00:00 2026/-kb/",
		"/file.go/1.3/Mon Jan  1 00:00:00 2026//TMYBRANCH",
		"/added.go/0/Mon Jan  1 00:00:00 2026//",
		"/removed.go/-1.3/Mon Jan  1 00:00:00 2026//",
		"/weird.go/1.1/ts//tag/extra1/extra2",
	}

	for i, original := range tests {
		record, err := DecodeResourceSync(original)
		if err != nil {
			t.Fatalf("test index %d: unexpected decode error: %v", i, err)
		}
		if encoded := EncodeResourceSync(record); encoded != original {
			t.Errorf("test index %d: round trip mismatch: %q != %q", i, encoded, original)
		}
	}
}

// TestDecodeResourceSyncInvalid tests that malformed records are rejected.
func TestDecodeResourceSyncInvalid(t *testing.T) {
	tests := []string{
		"",
		"no-leading-slash/1.1/ts//",
		"//1.1/ts//",
		"/name/1.1/ts",
	}

	for i, invalid := range tests {
		if _, err := DecodeResourceSync(invalid); err == nil {
			t.Errorf("test index %d: expected decode error for %q", i, invalid)
		}
	}
}

// TestResourceSyncClassification tests IsAddition, IsDeletion, and IsFolder.
func TestResourceSyncClassification(t *testing.T) {
	addition := ResourceSync{Name: "a", Revision: SentinelAddedRevision}
	if !addition.IsAddition() {
		t.Error("expected addition record to report IsAddition")
	}
	if addition.IsDeletion() || addition.IsFolder() {
		t.Error("addition record misclassified as deletion or folder")
	}

	deleted := ResourceSync{Name: "a", Revision: "-1.3"}
	if !deleted.IsDeletion() {
		t.Error("expected deleted record to report IsDeletion")
	}

	folder := ResourceSync{Name: "sub", Revision: ""}
	if !folder.IsFolder() {
		t.Error("expected empty-revision record to report IsFolder")
	}
}

// TestConvertToFromDeletion tests that the deletion-marker conversions are
// inverses and idempotent.
func TestConvertToFromDeletion(t *testing.T) {
	original := ResourceSync{Name: "a", Revision: "1.3"}

	deleted := original.ConvertToDeletion()
	if !deleted.IsDeletion() {
		t.Fatal("expected ConvertToDeletion to mark the record deleted")
	}
	if !reflect.DeepEqual(deleted.ConvertToDeletion(), deleted) {
		t.Error("expected ConvertToDeletion to be idempotent")
	}

	restored := deleted.ConvertFromDeletion()
	if !reflect.DeepEqual(restored, original) {
		t.Errorf("expected restore to recover original: %+v != %+v", restored, original)
	}
	if !reflect.DeepEqual(restored.ConvertFromDeletion(), restored) {
		t.Error("expected ConvertFromDeletion to be idempotent")
	}
}

// TestSentinelMalformedRecord tests that the malformed-record substitute is
// itself a valid addition-form record.
func TestSentinelMalformedRecord(t *testing.T) {
	sentinel := SentinelMalformedRecord("broken.go")
	if sentinel.Name != "broken.go" {
		t.Errorf("unexpected name: %q", sentinel.Name)
	}
	if !sentinel.IsAddition() {
		t.Error("expected sentinel record to be an addition")
	}
}
