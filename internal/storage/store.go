// Package storage persists upgrade plans between invocations.
//
// Three JSON documents live in the state directory: pending.json (a detected
// upgrade, written before any rendering), prepared.json (the rendered plan,
// consumed once by a later run) and releases.json (the last fetched feed).
// Every write is atomic. There is no locking between processes: two runs
// started at the same moment can race on these files.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/valksor/go-upnote/internal/log"
)

const (
	pendingFileName  = "pending.json"
	preparedFileName = "prepared.json"
	releasesFileName = "releases.json"
)

var (
	// ErrNoPlan is returned when the requested record does not exist.
	ErrNoPlan = errors.New("storage: no plan")

	// ErrCorrupt is returned when a record exists but cannot be used.
	ErrCorrupt = errors.New("storage: corrupt record")
)

// Store reads and writes plan records in a directory.
type Store struct {
	dir string
}

// NewStore creates a store rooted at dir. The directory is created on first write.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

// Dir returns the state directory.
func (s *Store) Dir() string {
	return s.dir
}

// PendingPath returns the path to pending.json.
func (s *Store) PendingPath() string {
	return filepath.Join(s.dir, pendingFileName)
}

// PreparedPath returns the path to prepared.json.
func (s *Store) PreparedPath() string {
	return filepath.Join(s.dir, preparedFileName)
}

// ReleasesPath returns the path to releases.json.
func (s *Store) ReleasesPath() string {
	return filepath.Join(s.dir, releasesFileName)
}

// SavePending writes plan as the pending record.
func (s *Store) SavePending(plan *Plan) error {
	plan.State = StatePending

	return s.writeJSON(s.PendingPath(), plan)
}

// SavePrepared writes plan as the prepared record.
func (s *Store) SavePrepared(plan *Plan) error {
	if plan.State != StatePrepared {
		return fmt.Errorf("save prepared plan: state is %q", plan.State)
	}

	return s.writeJSON(s.PreparedPath(), plan)
}

// LoadPending reads the pending record.
func (s *Store) LoadPending() (*Plan, error) {
	return s.loadPlan(s.PendingPath(), StatePending)
}

// LoadPrepared reads the prepared record. It returns ErrNoPlan when there is
// none and ErrCorrupt when the file cannot be parsed or is not tagged prepared.
func (s *Store) LoadPrepared() (*Plan, error) {
	return s.loadPlan(s.PreparedPath(), StatePrepared)
}

// ClearPending removes the pending record.
func (s *Store) ClearPending() error {
	return removeIfExists(s.PendingPath())
}

// ClearPrepared removes the prepared record.
func (s *Store) ClearPrepared() error {
	return removeIfExists(s.PreparedPath())
}

// SaveSnapshot writes the last fetched feed.
func (s *Store) SaveSnapshot(snap *Snapshot) error {
	return s.writeJSON(s.ReleasesPath(), snap)
}

// LoadSnapshot reads the last fetched feed.
func (s *Store) LoadSnapshot() (*Snapshot, error) {
	var snap Snapshot
	if err := readJSON(s.ReleasesPath(), &snap); err != nil {
		return nil, err
	}

	return &snap, nil
}

// Reset removes every record.
func (s *Store) Reset() error {
	return errors.Join(
		removeIfExists(s.PendingPath()),
		removeIfExists(s.PreparedPath()),
		removeIfExists(s.ReleasesPath()),
	)
}

func (s *Store) loadPlan(path string, want State) (*Plan, error) {
	var plan Plan
	if err := readJSON(path, &plan); err != nil {
		return nil, err
	}

	if plan.State != want {
		return nil, fmt.Errorf("%w: %s: state %q, want %q", ErrCorrupt, filepath.Base(path), plan.State, want)
	}

	return &plan, nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return ErrNoPlan
		}

		return fmt.Errorf("read %s: %w", filepath.Base(path), err)
	}

	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("%w: %s: %w", ErrCorrupt, filepath.Base(path), err)
	}

	return nil
}

// writeJSON uses the atomic write pattern: write to a temp file in the same
// directory, then rename over the target.
func (s *Store) writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal %s: %w", filepath.Base(path), err)
	}

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(s.dir, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)

		return fmt.Errorf("write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)

		return fmt.Errorf("close %s: %w", filepath.Base(path), err)
	}

	// Atomic rename is guaranteed to be atomic on POSIX systems
	if err := os.Rename(tmpPath, path); err != nil {
		log.Debug("rename failed, removing temp file", "path", tmpPath, log.Err(err))
		if removeErr := os.Remove(tmpPath); removeErr != nil {
			log.Warn("failed to clean up temp file after rename error", "path", tmpPath, log.Err(removeErr))
		}

		return fmt.Errorf("save %s: %w", filepath.Base(path), err)
	}

	return nil
}

func removeIfExists(path string) error {
	err := os.Remove(path)
	if os.IsNotExist(err) {
		return nil
	}

	return err
}
