package undo

import (
	"encoding/json"
	"fmt"
)

// Snapshot is a point-in-time view of a tracker's history.
type Snapshot[T any] struct {
	ID      string `json:"id"`
	Cursor  int    `json:"cursor"`
	Entries []T    `json:"entries"`
	HasUndo bool   `json:"has_undo"`
	HasRedo bool   `json:"has_redo"`
}

// Snapshot captures the history without subscribing to it.
func (t *Tracker[T]) Snapshot() Snapshot[T] {
	cursor := t.cursor.Peek()
	entries := make([]T, len(t.entries))
	for i, entry := range t.entries {
		entries[i] = t.copyValue(entry)
	}
	return Snapshot[T]{
		ID:      t.cfg.id,
		Cursor:  cursor,
		Entries: entries,
		HasUndo: cursor > 0,
		HasRedo: cursor < len(entries)-1,
	}
}

// ToJSON encodes the snapshot.
func (s Snapshot[T]) ToJSON() ([]byte, error) {
	data, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("undo: encode snapshot: %w", err)
	}
	return data, nil
}

// SnapshotFromJSON decodes data produced by Snapshot.ToJSON.
func SnapshotFromJSON[T any](data []byte) (Snapshot[T], error) {
	var s Snapshot[T]
	if err := json.Unmarshal(data, &s); err != nil {
		return Snapshot[T]{}, fmt.Errorf("undo: decode snapshot: %w", err)
	}
	if len(s.Entries) > 0 && (s.Cursor < 0 || s.Cursor >= len(s.Entries)) {
		return Snapshot[T]{}, fmt.Errorf("undo: decode snapshot: cursor %d out of range [0,%d)", s.Cursor, len(s.Entries))
	}
	return s, nil
}
