package library

import (
	"fmt"
	"slices"
)

// MemberIDString represents a member identifier.
type MemberIDString = string

// DefaultQuota is the number of books a member may hold at the same time unless configured otherwise.
const DefaultQuota = 5

// Member is one registered patron together with the books currently held.
type Member struct {
	ID    MemberIDString
	Name  string
	Loans []BookIDString
	Quota int
}

// NewMember creates a member without loans.
func NewMember(id MemberIDString, name string, quota int) Member {
	return Member{
		ID:    id,
		Name:  name,
		Loans: make([]BookIDString, 0),
		Quota: quota,
	}
}

// CanBorrow reports whether the member is below the quota.
func (m *Member) CanBorrow() bool {
	return len(m.Loans) < m.Quota
}

// Borrow appends bookID to the held books. The same ID may be appended twice.
func (m *Member) Borrow(bookID BookIDString) error {
	if !m.CanBorrow() {
		return fmt.Errorf("%w: member %q (ID %s) already holds %d books", ErrQuotaExceeded, m.Name, m.ID, len(m.Loans))
	}

	m.Loans = append(m.Loans, bookID)

	return nil
}

// ReturnBook removes the first occurrence of bookID and reports whether it was held.
func (m *Member) ReturnBook(bookID BookIDString) bool {
	idx := slices.Index(m.Loans, bookID)
	if idx < 0 {
		return false
	}

	m.Loans = slices.Delete(m.Loans, idx, idx+1)

	return true
}

// Holds reports whether bookID is among the held books.
func (m *Member) Holds(bookID BookIDString) bool {
	return slices.Contains(m.Loans, bookID)
}

// String renders the member for listings.
func (m Member) String() string {
	return fmt.Sprintf("%s (ID %s) - loans: %d", m.Name, m.ID, len(m.Loans))
}

func (m Member) clone() Member {
	m.Loans = slices.Clone(m.Loans)
	if m.Loans == nil {
		m.Loans = make([]BookIDString, 0)
	}

	return m
}
