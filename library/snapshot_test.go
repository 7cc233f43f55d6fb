package library_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/library"
)

func Test_Snapshot_JSONRoundTrip_RestoresIdenticalState(t *testing.T) {
	// arrange
	lib := newLibrary(t)
	givenDuneAndAda(t, lib)
	lib.AddBook("222", "Emma", "Austen", 1815, "Classic")
	require.NoError(t, lib.Borrow("111", "M1"))

	snapshot := lib.Snapshot()

	// act
	data, err := library.MarshalSnapshotJSON(snapshot)
	require.NoError(t, err)

	restoredSnapshot, err := library.UnmarshalSnapshotJSON(data)
	require.NoError(t, err)

	restored := newLibrary(t)
	restored.RestoreSnapshot(restoredSnapshot)

	// assert
	assert.Equal(t, lib.Books(), restored.Books())
	assert.Equal(t, lib.Members(), restored.Members())
	assert.Equal(t, lib.History(), restored.History())
	assert.True(t, snapshot.TakenAt.Equal(restoredSnapshot.TakenAt))
}

func Test_Snapshot_IsDetachedFromEngine(t *testing.T) {
	// arrange
	lib := newLibrary(t)
	givenDuneAndAda(t, lib)
	snapshot := lib.Snapshot()

	// act
	require.NoError(t, lib.Borrow("111", "M1"))

	// assert
	assert.Equal(t, library.StatusAvailable, snapshot.BookByID()["111"].Status)
	assert.Empty(t, snapshot.History)
}

func Test_UnmarshalSnapshotJSON_Error_WhenInvalid(t *testing.T) {
	_, err := library.UnmarshalSnapshotJSON([]byte("{not json"))

	assert.ErrorIs(t, err, library.ErrInvalidSnapshotJSON)
}
