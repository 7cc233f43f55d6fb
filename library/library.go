package library

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// Library is the catalog and lending engine.
// It exclusively owns the books, the members and the history; callers only ever receive copies.
// A Library is not safe for concurrent use.
type Library struct {
	books   *registry[Book]
	members *registry[Member]
	history []HistoryEntry

	now              func() time.Time
	defaultQuota     int
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
}

// New creates an empty Library with the given options applied.
func New(options ...Option) (*Library, error) {
	l := &Library{
		books:        newRegistry[Book](),
		members:      newRegistry[Member](),
		history:      make([]HistoryEntry, 0),
		now:          time.Now,
		defaultQuota: DefaultQuota,
	}

	for _, option := range options {
		if err := option(l); err != nil {
			return nil, err
		}
	}

	return l, nil
}

// DefaultQuota returns the quota given to newly registered members.
func (l *Library) DefaultQuota() int {
	return l.defaultQuota
}

// AddBook inserts a new available book into the catalog.
// If the ID is already taken, nothing changes and AlreadyExistsResult is returned.
func (l *Library) AddBook(id BookIDString, title, author string, year int, genre string) AddResult {
	if l.books.has(id) {
		l.logInfo("book already exists", LogAttrOperation, operationAddBook, LogAttrBookID, id)
		l.recordOperation(operationAddBook, StatusIdempotent)

		return AlreadyExistsResult()
	}

	book := NewBook(id, title, author, year, genre)
	l.books.put(id, &book)
	l.recordOperation(operationAddBook, StatusSuccess)

	return AddedResult()
}

// RemoveBook deletes a book from the catalog.
// Members holding the book keep it in their loans.
func (l *Library) RemoveBook(id BookIDString) error {
	if !l.books.has(id) {
		return l.abort(operationRemoveBook, fmt.Errorf("%w: ID %s", ErrBookNotFound, id), LogAttrBookID, id)
	}

	l.books.delete(id)
	l.recordOperation(operationRemoveBook, StatusSuccess)

	return nil
}

// RegisterMember inserts a new member without loans and with the default quota.
// If the ID is already taken, nothing changes and AlreadyExistsResult is returned.
func (l *Library) RegisterMember(id MemberIDString, name string) AddResult {
	if l.members.has(id) {
		l.logInfo("member already exists", LogAttrOperation, operationRegisterMember, LogAttrMemberID, id)
		l.recordOperation(operationRegisterMember, StatusIdempotent)

		return AlreadyExistsResult()
	}

	member := NewMember(id, name, l.defaultQuota)
	l.members.put(id, &member)
	l.recordOperation(operationRegisterMember, StatusSuccess)

	return AddedResult()
}

// FindBooksByTitle returns all books whose title contains substring, ignoring case.
func (l *Library) FindBooksByTitle(substring string) []Book {
	needle := strings.ToLower(substring)
	found := make([]Book, 0)

	l.books.each(func(b *Book) {
		if strings.Contains(strings.ToLower(b.Title), needle) {
			found = append(found, *b)
		}
	})

	return found
}

// FindMembersByName returns all members whose name contains substring, ignoring case.
func (l *Library) FindMembersByName(substring string) []Member {
	needle := strings.ToLower(substring)
	found := make([]Member, 0)

	l.members.each(func(m *Member) {
		if strings.Contains(strings.ToLower(m.Name), needle) {
			found = append(found, m.clone())
		}
	})

	return found
}

// Borrow lends a book to a member and records it in the history.
//
// The member is looked up before the book. The book is marked as borrowed before the member's
// quota is checked, and it is NOT reset when that check fails: a book can end up borrowed
// without being held by anybody. Existing data files depend on this ordering.
func (l *Library) Borrow(bookID BookIDString, memberID MemberIDString) error {
	member, book, err := l.lookup(operationBorrow, bookID, memberID)
	if err != nil {
		return err
	}

	if err = book.Borrow(); err != nil {
		return l.abort(operationBorrow, err, LogAttrBookID, bookID, LogAttrMemberID, memberID)
	}

	if err = member.Borrow(bookID); err != nil {
		return l.abort(operationBorrow, err, LogAttrBookID, bookID, LogAttrMemberID, memberID)
	}

	l.history = append(l.history, BuildHistoryEntry(l.now(), bookID, memberID, ActionBorrow))
	l.recordOperation(operationBorrow, StatusSuccess)

	return nil
}

// ReturnBook takes a book back from a member and records it in the history.
// Returning an available book, or a book the member does not hold, is accepted.
func (l *Library) ReturnBook(bookID BookIDString, memberID MemberIDString) (ReturnResult, error) {
	member, book, err := l.lookup(operationReturn, bookID, memberID)
	if err != nil {
		return ReturnResult{}, err
	}

	result := ReturnResult{BookWasAvailable: book.IsAvailable()}
	book.Return()
	result.MemberHeldBook = member.ReturnBook(bookID)

	l.history = append(l.history, BuildHistoryEntry(l.now(), bookID, memberID, ActionReturn))

	if result.BookWasAvailable || !result.MemberHeldBook {
		l.logInfo(
			"return accepted without matching loan",
			LogAttrOperation, operationReturn,
			LogAttrBookID, bookID,
			LogAttrMemberID, memberID,
			"book_was_available", result.BookWasAvailable,
			"member_held_book", result.MemberHeldBook,
		)
	}

	if result.Idempotent() {
		l.recordOperation(operationReturn, StatusIdempotent)
	} else {
		l.recordOperation(operationReturn, StatusSuccess)
	}

	return result, nil
}

// Books lists the catalog in insertion order.
func (l *Library) Books() []Book {
	books := make([]Book, 0, l.books.len())
	l.books.each(func(b *Book) { books = append(books, *b) })

	return books
}

// Members lists the registered members in insertion order.
func (l *Library) Members() []Member {
	members := make([]Member, 0, l.members.len())
	l.members.each(func(m *Member) { members = append(members, m.clone()) })

	return members
}

// Book returns a copy of the book with the given ID.
func (l *Library) Book(id BookIDString) (Book, bool) {
	b, ok := l.books.get(id)
	if !ok {
		return Book{}, false
	}

	return *b, true
}

// Member returns a copy of the member with the given ID.
func (l *Library) Member(id MemberIDString) (Member, bool) {
	m, ok := l.members.get(id)
	if !ok {
		return Member{}, false
	}

	return m.clone(), true
}

// BorrowerOf scans the members' loans for the first member holding bookID.
func (l *Library) BorrowerOf(bookID BookIDString) (Member, bool) {
	var borrower *Member

	l.members.each(func(m *Member) {
		if borrower == nil && m.Holds(bookID) {
			borrower = m
		}
	})

	if borrower == nil {
		return Member{}, false
	}

	return borrower.clone(), true
}

// History returns the full history, oldest entry first.
func (l *Library) History() []HistoryEntry {
	return slices.Clone(l.history)
}

// RecentHistory returns the last n history entries, oldest first, with titles and names resolved.
// IDs which do not resolve (deleted or never existing records) get UnknownTitle and UnknownMemberName.
func (l *Library) RecentHistory(n int) []HistoryLine {
	if n <= 0 {
		return make([]HistoryLine, 0)
	}

	start := max(len(l.history)-n, 0)
	lines := make([]HistoryLine, 0, len(l.history)-start)

	for _, entry := range l.history[start:] {
		line := HistoryLine{
			HistoryEntry: entry,
			BookTitle:    UnknownTitle,
			MemberName:   UnknownMemberName,
		}

		if b, ok := l.books.get(entry.BookID); ok {
			line.BookTitle = b.Title
		}

		if m, ok := l.members.get(entry.MemberID); ok {
			line.MemberName = m.Name
		}

		lines = append(lines, line)
	}

	return lines
}

// Restore replaces all three collections, for example with data loaded from disk.
// For duplicate IDs the last value wins while the first position is kept.
// Members without a positive quota get the default quota.
func (l *Library) Restore(books []Book, members []Member, history []HistoryEntry) {
	l.books = newRegistry[Book]()
	for _, b := range books {
		book := b
		l.books.put(book.ID, &book)
	}

	l.members = newRegistry[Member]()
	for _, m := range members {
		member := m.clone()
		if member.Quota <= 0 {
			member.Quota = l.defaultQuota
		}

		l.members.put(member.ID, &member)
	}

	l.history = slices.Clone(history)
	if l.history == nil {
		l.history = make([]HistoryEntry, 0)
	}

	l.logInfo(
		"library restored",
		LogAttrOperation, operationRestore,
		"books", l.books.len(),
		"members", l.members.len(),
		"history_entries", len(l.history),
	)
	l.recordOperation(operationRestore, StatusSuccess)
}

// lookup resolves the member first and then the book, as Borrow and ReturnBook require.
func (l *Library) lookup(operation string, bookID BookIDString, memberID MemberIDString) (*Member, *Book, error) {
	member, ok := l.members.get(memberID)
	if !ok {
		err := fmt.Errorf("%w: ID %s", ErrMemberNotFound, memberID)
		return nil, nil, l.abort(operation, err, LogAttrBookID, bookID, LogAttrMemberID, memberID)
	}

	book, ok := l.books.get(bookID)
	if !ok {
		err := fmt.Errorf("%w: ID %s", ErrBookNotFound, bookID)
		return nil, nil, l.abort(operation, err, LogAttrBookID, bookID, LogAttrMemberID, memberID)
	}

	return member, book, nil
}

// abort logs and counts an aborted operation and hands the error back.
func (l *Library) abort(operation string, err error, args ...any) error {
	allArgs := []any{LogAttrOperation, operation, LogAttrError, err.Error()}
	allArgs = append(allArgs, args...)
	l.logWarn("operation aborted", allArgs...)
	l.recordOperation(operation, StatusError)

	return err
}
