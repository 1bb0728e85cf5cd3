// Package store persists progress wheel snapshots between runs.
//
// Snapshots are YAML documents kept in a gdata object property, one property
// per wheel id. A store opened without a gdata manager keeps snapshots in
// memory only, so hosts on platforms without storage keep working.
package store

import (
	"fmt"
	"sync"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/go-drift/progresswheel/pkg/errors"
	"github.com/go-drift/progresswheel/pkg/wheel"
)

const snapshotObject = "wheel"

// SnapshotStore saves and loads wheel snapshots.
type SnapshotStore struct {
	manager *gdata.Manager // nil keeps snapshots in memory only

	mu     sync.Mutex
	memory map[string]wheel.Snapshot
}

// Open opens the gdata storage of appName.
func Open(appName string) (*SnapshotStore, error) {
	m, err := gdata.Open(gdata.Config{AppName: appName})
	if err != nil {
		return nil, storageError("store.Open", fmt.Errorf("open %s: %w", appName, err))
	}
	return New(m), nil
}

// New wraps an existing manager. A nil manager gives a memory-only store.
func New(m *gdata.Manager) *SnapshotStore {
	return &SnapshotStore{manager: m, memory: make(map[string]wheel.Snapshot)}
}

// Persistent reports whether snapshots outlive the process.
func (s *SnapshotStore) Persistent() bool {
	return s.manager != nil
}

// Save stores snap under id.
func (s *SnapshotStore) Save(id string, snap wheel.Snapshot) error {
	if id == "" {
		return storageError("store.Save", fmt.Errorf("empty snapshot id"))
	}
	if s.manager == nil {
		s.mu.Lock()
		s.memory[id] = snap
		s.mu.Unlock()
		return nil
	}

	data, err := yaml.Marshal(snap)
	if err != nil {
		return storageError("store.Save", fmt.Errorf("failed to marshal snapshot: %w", err))
	}
	if err := s.manager.SaveObjectProp(snapshotObject, id, data); err != nil {
		return storageError("store.Save", fmt.Errorf("failed to save snapshot %q: %w", id, err))
	}
	return nil
}

// Load returns the snapshot stored under id. The boolean is false when no
// snapshot exists.
func (s *SnapshotStore) Load(id string) (wheel.Snapshot, bool, error) {
	if s.manager == nil {
		s.mu.Lock()
		defer s.mu.Unlock()
		snap, ok := s.memory[id]
		return snap, ok, nil
	}

	if id == "" || !s.manager.ObjectPropExists(snapshotObject, id) {
		return wheel.Snapshot{}, false, nil
	}
	data, err := s.manager.LoadObjectProp(snapshotObject, id)
	if err != nil {
		return wheel.Snapshot{}, false, storageError("store.Load", fmt.Errorf("failed to load snapshot %q: %w", id, err))
	}
	var snap wheel.Snapshot
	if err := yaml.Unmarshal(data, &snap); err != nil {
		return wheel.Snapshot{}, false, storageError("store.Load", fmt.Errorf("failed to unmarshal snapshot %q: %w", id, err))
	}
	return snap, true, nil
}

// SaveEngine stores e's current snapshot under id.
func (s *SnapshotStore) SaveEngine(id string, e *wheel.Engine) error {
	return s.Save(id, e.Snapshot())
}

// RestoreEngine restores e from the snapshot under id, if there is one.
func (s *SnapshotStore) RestoreEngine(id string, e *wheel.Engine) (bool, error) {
	snap, ok, err := s.Load(id)
	if err != nil || !ok {
		return false, err
	}
	e.Restore(snap)
	return true, nil
}

func storageError(op string, err error) *errors.WheelError {
	return &errors.WheelError{Op: op, Kind: errors.KindStorage, Err: err}
}
