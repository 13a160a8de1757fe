// Package snapshot stores documents as golden snapshots and compares later
// versions against them with the recursive comparator.
package snapshot

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/abdul-hamid-achik/structeq/packages/recursive"
)

const (
	// SnapshotDir is the directory name for storing snapshots
	SnapshotDir = "__snapshots__"
	// SnapshotExt is the file extension for snapshot files
	SnapshotExt = ".snap.json"
)

// Manager handles snapshot storage and comparison.
type Manager struct {
	dir           string
	updateMode    bool
	comparison    *recursive.Configuration
	snapshotsRead map[string]map[string]any // file -> {name -> value}
}

type Option func(*Manager)

// WithDir overrides the directory, relative to the compared file, that holds
// snapshot files.
func WithDir(dir string) Option {
	return func(m *Manager) {
		if dir != "" {
			m.dir = dir
		}
	}
}

// WithComparison sets the comparator configuration used to match snapshots.
func WithComparison(cfg *recursive.Configuration) Option {
	return func(m *Manager) {
		m.comparison = cfg
	}
}

// NewManager creates a new snapshot manager.
func NewManager(updateMode bool, opts ...Option) *Manager {
	m := &Manager{
		dir:           SnapshotDir,
		updateMode:    updateMode,
		snapshotsRead: make(map[string]map[string]any),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// SnapshotResult represents the result of a snapshot comparison.
type SnapshotResult struct {
	Name        string
	Passed      bool
	Message     string
	Expected    any
	Actual      any
	Differences []recursive.Difference
	IsNew       bool
	WasUpdated  bool
}

// Compare compares an actual value against a stored snapshot.
// If updateMode is true and there's a mismatch, the snapshot is updated.
// The name parameter is optional; if empty, a hash of the value is used.
func (m *Manager) Compare(file string, name string, actual any) *SnapshotResult {
	result := &SnapshotResult{}

	normalized, err := normalize(actual)
	if err != nil {
		result.Actual = actual
		result.Message = fmt.Sprintf("value cannot be stored as a snapshot: %v", err)
		return result
	}
	result.Actual = normalized

	snapshotFile := m.FilePath(file)
	key := generateKey(name, normalized)
	result.Name = key

	snapshots, err := m.loadSnapshots(snapshotFile)
	if err != nil {
		result.Message = fmt.Sprintf("failed to load snapshots: %v", err)
		return result
	}

	expected, exists := snapshots[key]
	if !exists {
		if !m.updateMode {
			result.Message = "snapshot does not exist (run with --update to create)"
			return result
		}

		snapshots[key] = normalized
		if err := m.saveSnapshots(snapshotFile, snapshots); err != nil {
			result.Message = fmt.Sprintf("failed to save snapshot: %v", err)
			return result
		}
		result.Passed = true
		result.IsNew = true
		result.Expected = normalized
		result.Message = "new snapshot created"
		return result
	}

	result.Expected = expected

	diffs, err := recursive.Compare(normalized, expected, m.comparison)
	if err != nil {
		result.Message = fmt.Sprintf("failed to compare snapshot: %v", err)
		return result
	}
	if len(diffs) == 0 {
		result.Passed = true
		return result
	}
	result.Differences = diffs

	if m.updateMode {
		snapshots[key] = normalized
		if err := m.saveSnapshots(snapshotFile, snapshots); err != nil {
			result.Message = fmt.Sprintf("failed to update snapshot: %v", err)
			return result
		}
		result.Passed = true
		result.WasUpdated = true
		result.Message = "snapshot updated"
		return result
	}

	result.Message = fmt.Sprintf("snapshot mismatch: %d difference(s)", len(diffs))
	return result
}

// Names lists the snapshot keys stored for a file in sorted order.
func (m *Manager) Names(file string) ([]string, error) {
	snapshots, err := m.loadSnapshots(m.FilePath(file))
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(snapshots))
	for name := range snapshots {
		names = append(names, name)
	}
	sort.Strings(names)
	return names, nil
}

// FilePath returns the path to the snapshot file for a compared file.
func (m *Manager) FilePath(file string) string {
	dir := filepath.Dir(file)
	base := filepath.Base(file)
	ext := filepath.Ext(base)
	name := strings.TrimSuffix(base, ext)

	return filepath.Join(dir, m.dir, name+SnapshotExt)
}

// generateKey generates a unique key for a snapshot.
func generateKey(name string, value any) string {
	if name != "" {
		return name
	}
	data, _ := json.Marshal(value)
	hash := sha256.Sum256(data)
	return "anon_" + hex.EncodeToString(hash[:8])
}

// loadSnapshots loads snapshots from a file.
func (m *Manager) loadSnapshots(path string) (map[string]any, error) {
	if cached, ok := m.snapshotsRead[path]; ok {
		return cached, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return make(map[string]any), nil
		}
		return nil, err
	}

	var snapshots map[string]any
	if err := json.Unmarshal(data, &snapshots); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if snapshots == nil {
		snapshots = make(map[string]any)
	}

	m.snapshotsRead[path] = snapshots
	return snapshots, nil
}

// saveSnapshots saves snapshots to a file.
func (m *Manager) saveSnapshots(path string, snapshots map[string]any) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(snapshots, "", "  ")
	if err != nil {
		return err
	}

	m.snapshotsRead[path] = snapshots

	return os.WriteFile(path, data, 0644)
}

// normalize round-trips a value through JSON so it has the same shape as a
// snapshot read back from disk.
func normalize(v any) (any, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var out any
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, err
	}
	return out, nil
}
