package library

import "errors"

var (
	// ErrBookUnavailable is returned when a borrow is attempted on a book which is not available.
	ErrBookUnavailable = errors.New("book is not available")

	// ErrQuotaExceeded is returned when a member who already holds the maximum number of books tries to borrow one more.
	ErrQuotaExceeded = errors.New("borrowing quota exceeded")

	// ErrMemberNotFound is returned when an operation references an unknown member ID.
	ErrMemberNotFound = errors.New("member not found")

	// ErrBookNotFound is returned when an operation references an unknown book ID.
	ErrBookNotFound = errors.New("book not found")

	// ErrInvalidQuota is returned when a non-positive default quota is configured.
	ErrInvalidQuota = errors.New("quota must be positive")

	// ErrNilClock is returned when a nil clock function is configured.
	ErrNilClock = errors.New("clock must not be nil")
)
