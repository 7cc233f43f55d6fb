package library

import (
	"fmt"
	"time"
)

// Action is what happened in a history entry.
type Action string

const (
	// ActionBorrow records a book leaving the shelf.
	ActionBorrow Action = "borrow"
	// ActionReturn records a book coming back.
	ActionReturn Action = "return"
)

// Placeholders used by RecentHistory for IDs that no longer resolve.
const (
	UnknownTitle      = "unknown title"
	UnknownMemberName = "unknown member"
)

// HistoryEntry is an immutable record of one borrow or return.
type HistoryEntry struct {
	Date     time.Time
	BookID   BookIDString
	MemberID MemberIDString
	Action   Action
}

// BuildHistoryEntry creates a HistoryEntry with the date truncated to its calendar day.
func BuildHistoryEntry(date time.Time, bookID BookIDString, memberID MemberIDString, action Action) HistoryEntry {
	return HistoryEntry{
		Date:     ToCalendarDate(date),
		BookID:   bookID,
		MemberID: memberID,
		Action:   action,
	}
}

// ToCalendarDate drops everything below day precision, keeping the local calendar day of t.
func ToCalendarDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// HistoryLine is a HistoryEntry with the book title and member name resolved for display.
type HistoryLine struct {
	HistoryEntry
	BookTitle  string
	MemberName string
}

// String renders the line for listings.
func (l HistoryLine) String() string {
	return fmt.Sprintf(
		"%s - %s - %q (ID %s) - %s (ID %s)",
		l.Date.Format(time.DateOnly), l.Action, l.BookTitle, l.BookID, l.MemberName, l.MemberID,
	)
}
