package encoding

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

type testDocument struct {
	Name  string   `yaml:"name"`
	Items []string `yaml:"items"`
}

// TestMarshalAndSaveLoadAndUnmarshalYAMLRoundTrip tests that a saved YAML
// document reads back identically.
func TestMarshalAndSaveLoadAndUnmarshalYAMLRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yml")

	original := &testDocument{Name: "proj", Items: []string{"a", "b"}}
	if err := MarshalAndSaveYAML(path, original); err != nil {
		t.Fatalf("unexpected error saving: %v", err)
	}

	var loaded testDocument
	if err := LoadAndUnmarshalYAML(path, &loaded); err != nil {
		t.Fatalf("unexpected error loading: %v", err)
	}
	if !reflect.DeepEqual(loaded, *original) {
		t.Errorf("round trip mismatch: %+v != %+v", loaded, *original)
	}
}

// TestLoadAndUnmarshalYAMLMissingFileReportsNotExist tests that a missing
// file surfaces as an os.IsNotExist error rather than a generic failure.
func TestLoadAndUnmarshalYAMLMissingFileReportsNotExist(t *testing.T) {
	path := filepath.Join(t.TempDir(), "missing.yml")

	var loaded testDocument
	err := LoadAndUnmarshalYAML(path, &loaded)
	if err == nil {
		t.Fatal("expected an error for a missing file")
	}
	if !os.IsNotExist(err) {
		t.Errorf("expected an os.IsNotExist error, got %v", err)
	}
}

// TestLoadAndUnmarshalYAMLRejectsUnknownFields tests that strict unmarshal
// rejects unrecognized YAML keys.
func TestLoadAndUnmarshalYAMLRejectsUnknownFields(t *testing.T) {
	path := filepath.Join(t.TempDir(), "doc.yml")
	if err := os.WriteFile(path, []byte("name: proj\nunknownField: true\n"), 0644); err != nil {
		t.Fatalf("unable to write test fixture: %v", err)
	}

	var loaded testDocument
	if err := LoadAndUnmarshalYAML(path, &loaded); err == nil {
		t.Error("expected strict unmarshal to reject an unknown field")
	}
}
