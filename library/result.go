package library

// AddResult represents the outcome of adding a book or registering a member.
// An existing ID is an expected outcome, not an error.
//
// AddResult should only be constructed using the provided factory methods:
// AddedResult() or AlreadyExistsResult().
type AddResult struct {
	Outcome string // "added" or "already_exists"
}

const (
	addedOutcome         = "added"
	alreadyExistsOutcome = "already_exists"
)

// AddedResult creates an AddResult indicating a new record was inserted.
func AddedResult() AddResult {
	return AddResult{Outcome: addedOutcome}
}

// AlreadyExistsResult creates an AddResult indicating the ID was taken and nothing changed.
func AlreadyExistsResult() AddResult {
	return AddResult{Outcome: alreadyExistsOutcome}
}

// Added returns true if a new record was inserted.
func (r AddResult) Added() bool {
	return r.Outcome == addedOutcome
}

// AlreadyExists returns true if the ID was already present.
func (r AddResult) AlreadyExists() bool {
	return r.Outcome == alreadyExistsOutcome
}

// ReturnResult represents the outcome of a successful return.
// Both irregularities are tolerated; they are reported so callers can inform the user.
type ReturnResult struct {
	// BookWasAvailable is true if the book had not been marked as borrowed.
	BookWasAvailable bool

	// MemberHeldBook is true if the book was found among the member's loans and removed.
	MemberHeldBook bool
}

// Idempotent returns true if the return changed neither the book nor the member.
func (r ReturnResult) Idempotent() bool {
	return r.BookWasAvailable && !r.MemberHeldBook
}
