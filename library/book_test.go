package library_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/library"
)

func Test_Book_Borrow_Success_WhenAvailable(t *testing.T) {
	// arrange
	book := library.NewBook("111", "Dune", "Herbert", 1965, "SciFi")

	// act
	err := book.Borrow()

	// assert
	require.NoError(t, err)
	assert.Equal(t, library.StatusBorrowed, book.Status)
	assert.False(t, book.IsAvailable())
}

func Test_Book_Borrow_Error_WhenAlreadyBorrowed(t *testing.T) {
	// arrange
	book := library.NewBook("111", "Dune", "Herbert", 1965, "SciFi")
	require.NoError(t, book.Borrow())

	// act
	err := book.Borrow()

	// assert
	assert.ErrorIs(t, err, library.ErrBookUnavailable)
	assert.Contains(t, err.Error(), "Dune")
	assert.Equal(t, library.StatusBorrowed, book.Status)
}

func Test_Book_Return_IsIdempotent(t *testing.T) {
	// arrange
	book := library.NewBook("111", "Dune", "Herbert", 1965, "SciFi")
	require.NoError(t, book.Borrow())

	// act
	book.Return()
	book.Return()

	// assert
	assert.True(t, book.IsAvailable())
}
