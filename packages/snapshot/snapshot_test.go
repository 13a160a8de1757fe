package snapshot

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/abdul-hamid-achik/structeq/packages/recursive"
)

func TestManager_Compare_NewSnapshot(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "user.json")

	manager := NewManager(true) // Update mode enabled

	result := manager.Compare(file, "user", map[string]any{
		"id":   1,
		"name": "John",
	})

	if !result.Passed {
		t.Errorf("expected passed to be true, got false: %s", result.Message)
	}
	if !result.IsNew {
		t.Error("expected IsNew to be true")
	}

	snapshotPath := filepath.Join(tmpDir, SnapshotDir, "user.snap.json")
	if _, err := os.Stat(snapshotPath); os.IsNotExist(err) {
		t.Error("expected snapshot file to be created")
	}
}

func TestManager_Compare_ExistingSnapshot_Match(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "user.json")

	data := map[string]any{"id": 1, "name": "John", "tags": []string{"a"}}
	result := NewManager(true).Compare(file, "user", data)
	if !result.Passed || !result.IsNew {
		t.Fatal("failed to create initial snapshot")
	}

	// A fresh manager reads the snapshot back from disk.
	result = NewManager(false).Compare(file, "user", data)
	if !result.Passed {
		t.Errorf("expected match, got: %s", result.Message)
	}
	if len(result.Differences) != 0 {
		t.Errorf("expected no differences, got %v", result.Differences)
	}
}

func TestManager_Compare_ExistingSnapshot_Mismatch(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "user.json")

	NewManager(true).Compare(file, "user", map[string]any{"id": 1, "name": "John"})

	result := NewManager(false).Compare(file, "user", map[string]any{"id": 1, "name": "Jane"})
	if result.Passed {
		t.Fatal("expected mismatch")
	}
	if len(result.Differences) != 1 {
		t.Fatalf("expected 1 difference, got %d", len(result.Differences))
	}
	if got := result.Differences[0].Path.String(); got != "name" {
		t.Errorf("expected difference at name, got %s", got)
	}
	if result.Differences[0].Actual != "Jane" || result.Differences[0].Other != "John" {
		t.Errorf("unexpected difference values: %v", result.Differences[0])
	}
	if !strings.Contains(result.Message, "1 difference(s)") {
		t.Errorf("unexpected message: %s", result.Message)
	}
}

func TestManager_Compare_IgnoredFields(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "order.yaml")

	NewManager(true).Compare(file, "order", map[string]any{"id": "a1", "total": 10})

	cfg := recursive.MustConfiguration(recursive.IgnoringFields("id"))
	result := NewManager(false, WithComparison(cfg)).Compare(file, "order", map[string]any{"id": "b2", "total": 10})
	if !result.Passed {
		t.Errorf("expected ignored id to match, got: %s %v", result.Message, result.Differences)
	}
}

func TestManager_Compare_UpdateExisting(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "user.json")

	manager := NewManager(true)
	manager.Compare(file, "user", map[string]any{"name": "John"})

	result := manager.Compare(file, "user", map[string]any{"name": "Jane"})
	if !result.Passed {
		t.Errorf("expected update to pass, got: %s", result.Message)
	}
	if !result.WasUpdated {
		t.Error("expected WasUpdated to be true")
	}
	if len(result.Differences) != 1 {
		t.Errorf("expected the replaced difference to be reported, got %v", result.Differences)
	}

	result = NewManager(false).Compare(file, "user", map[string]any{"name": "Jane"})
	if !result.Passed {
		t.Errorf("expected updated snapshot to match, got: %s", result.Message)
	}
}

func TestManager_Compare_NoSnapshotNoUpdateMode(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "user.json")

	result := NewManager(false).Compare(file, "user", map[string]any{"id": 1})
	if result.Passed {
		t.Error("expected missing snapshot to fail")
	}
	if !strings.Contains(result.Message, "does not exist") {
		t.Errorf("unexpected message: %s", result.Message)
	}
}

func TestManager_Compare_Unencodable(t *testing.T) {
	result := NewManager(true).Compare(filepath.Join(t.TempDir(), "f.json"), "fn", func() {})
	if result.Passed {
		t.Error("expected a function value to be rejected")
	}
	if !strings.Contains(result.Message, "cannot be stored") {
		t.Errorf("unexpected message: %s", result.Message)
	}
}

func TestManager_Compare_CorruptSnapshot(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "user.json")
	if err := os.MkdirAll(filepath.Join(tmpDir, SnapshotDir), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(tmpDir, SnapshotDir, "user.snap.json"), []byte("{"), 0644); err != nil {
		t.Fatal(err)
	}

	result := NewManager(false).Compare(file, "user", 1)
	if result.Passed || !strings.Contains(result.Message, "failed to load snapshots") {
		t.Errorf("expected load failure, got: %+v", result)
	}
}

func TestManager_Names(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "user.json")

	manager := NewManager(true, WithDir("golden"))
	manager.Compare(file, "b", 1)
	manager.Compare(file, "a", 2)

	if _, err := os.Stat(filepath.Join(tmpDir, "golden", "user.snap.json")); err != nil {
		t.Fatalf("expected snapshot in custom dir: %v", err)
	}

	names, err := NewManager(false, WithDir("golden")).Names(file)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Join(names, ",") != "a,b" {
		t.Errorf("expected [a b], got %v", names)
	}
}

func TestGenerateKey(t *testing.T) {
	if got := generateKey("user", 1); got != "user" {
		t.Errorf("expected named key, got %s", got)
	}

	first := generateKey("", map[string]any{"a": 1.0})
	second := generateKey("", map[string]any{"a": 1.0})
	if first != second {
		t.Errorf("expected stable anonymous keys, got %s and %s", first, second)
	}
	if !strings.HasPrefix(first, "anon_") || len(first) != len("anon_")+16 {
		t.Errorf("unexpected anonymous key %s", first)
	}
}
