package library_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/library-catalog-go/library"
)

func Test_Member_Borrow_UpToQuota(t *testing.T) {
	// arrange
	member := library.NewMember("M1", "Ada", 2)

	// act
	errFirst := member.Borrow("111")
	errSecond := member.Borrow("222")
	errThird := member.Borrow("333")

	// assert
	assert.NoError(t, errFirst)
	assert.NoError(t, errSecond)
	assert.ErrorIs(t, errThird, library.ErrQuotaExceeded)
	assert.Equal(t, []string{"111", "222"}, member.Loans)
	assert.False(t, member.CanBorrow())
}

func Test_Member_Borrow_AllowsDuplicateIDs(t *testing.T) {
	// arrange
	member := library.NewMember("M1", "Ada", library.DefaultQuota)

	// act
	require.NoError(t, member.Borrow("111"))
	require.NoError(t, member.Borrow("111"))

	// assert
	assert.Equal(t, []string{"111", "111"}, member.Loans)
}

func Test_Member_ReturnBook_RemovesFirstOccurrenceOnly(t *testing.T) {
	// arrange
	member := library.NewMember("M1", "Ada", library.DefaultQuota)
	require.NoError(t, member.Borrow("111"))
	require.NoError(t, member.Borrow("222"))
	require.NoError(t, member.Borrow("111"))

	// act
	held := member.ReturnBook("111")

	// assert
	assert.True(t, held)
	assert.Equal(t, []string{"222", "111"}, member.Loans)
}

func Test_Member_ReturnBook_NoOpWhenNotHeld(t *testing.T) {
	// arrange
	member := library.NewMember("M1", "Ada", library.DefaultQuota)
	require.NoError(t, member.Borrow("111"))

	// act
	held := member.ReturnBook("999")

	// assert
	assert.False(t, held)
	assert.Equal(t, []string{"111"}, member.Loans)
}
