package library

import (
	"errors"
	"time"

	jsoniter "github.com/json-iterator/go"
)

var (
	// ErrInvalidSnapshotJSON is returned when snapshot JSON data is malformed or invalid.
	ErrInvalidSnapshotJSON = errors.New("snapshot json is not valid")

	// ErrMarshalingSnapshotFailed is returned when a snapshot can't be serialized.
	ErrMarshalingSnapshotFailed = errors.New("marshaling snapshot failed")
)

// Snapshot is a read-only copy of all three collections.
// Collaborators like statistics or exports work on snapshots and never touch the engine.
type Snapshot struct {
	Books   []Book         `json:"books"`
	Members []Member       `json:"members"`
	History []HistoryEntry `json:"history"`
	TakenAt time.Time      `json:"takenAt"`
}

// Snapshot copies the current state.
func (l *Library) Snapshot() Snapshot {
	return Snapshot{
		Books:   l.Books(),
		Members: l.Members(),
		History: l.History(),
		TakenAt: l.now(),
	}
}

// RestoreSnapshot replaces all collections with the content of s.
func (l *Library) RestoreSnapshot(s Snapshot) {
	l.Restore(s.Books, s.Members, s.History)
}

// BookByID indexes the snapshot's books by ID.
func (s Snapshot) BookByID() map[BookIDString]Book {
	books := make(map[BookIDString]Book, len(s.Books))
	for _, b := range s.Books {
		books[b.ID] = b
	}

	return books
}

// MarshalSnapshotJSON serializes a snapshot.
func MarshalSnapshotJSON(s Snapshot) ([]byte, error) {
	data, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(s, "", "  ")
	if err != nil {
		return nil, errors.Join(ErrMarshalingSnapshotFailed, err)
	}

	return data, nil
}

// UnmarshalSnapshotJSON deserializes a snapshot written by MarshalSnapshotJSON.
func UnmarshalSnapshotJSON(data []byte) (Snapshot, error) {
	if !jsoniter.ConfigFastest.Valid(data) {
		return Snapshot{}, ErrInvalidSnapshotJSON
	}

	var s Snapshot
	if err := jsoniter.ConfigCompatibleWithStandardLibrary.Unmarshal(data, &s); err != nil {
		return Snapshot{}, errors.Join(ErrInvalidSnapshotJSON, err)
	}

	return s, nil
}
