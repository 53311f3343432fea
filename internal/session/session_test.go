package session

import (
	"os"
	"path/filepath"
	"testing"
)

func TestSaveLoadRoundTrip(t *testing.T) {
	s := New()
	s.Record("INIT_HEAP 0x1000 4 128 1")
	s.Record("MALLOC 8")

	path := filepath.Join(t.TempDir(), "session.json")
	if err := s.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(loaded.Commands) != 2 || loaded.Commands[1] != "MALLOC 8" {
		t.Fatalf("loaded commands = %v", loaded.Commands)
	}
	if loaded.FormatVersion != FormatVersion {
		t.Fatalf("FormatVersion = %q, want %q", loaded.FormatVersion, FormatVersion)
	}
}

func TestLoadRejectsIncompatibleFormatVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	data := []byte(`{"format_version": "2.0.0", "commands": ["MALLOC 8"]}`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writeFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected Load to reject an incompatible future format_version")
	}
}

func TestLoadRejectsMalformedVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	data := []byte(`{"format_version": "not-a-version", "commands": []}`)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		t.Fatalf("writeFile: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected Load to reject a malformed format_version")
	}
}
