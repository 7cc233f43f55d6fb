package library

import "fmt"

// BookIDString represents a catalog key, usually an ISBN.
type BookIDString = string

// Status is the availability state of a book.
type Status string

const (
	// StatusAvailable means the book is on the shelf.
	StatusAvailable Status = "available"
	// StatusBorrowed means the book is held by a member.
	StatusBorrowed Status = "borrowed"
)

// Book is one catalog entry.
type Book struct {
	ID     BookIDString
	Title  string
	Author string
	Year   int
	Genre  string
	Status Status
}

// NewBook creates an available book.
func NewBook(id BookIDString, title, author string, year int, genre string) Book {
	return Book{
		ID:     id,
		Title:  title,
		Author: author,
		Year:   year,
		Genre:  genre,
		Status: StatusAvailable,
	}
}

// IsAvailable reports whether the book can be borrowed.
func (b *Book) IsAvailable() bool {
	return b.Status == StatusAvailable
}

// Borrow marks the book as borrowed. It does not know who borrows it.
func (b *Book) Borrow() error {
	if !b.IsAvailable() {
		return fmt.Errorf("%w: %q (ID %s)", ErrBookUnavailable, b.Title, b.ID)
	}

	b.Status = StatusBorrowed

	return nil
}

// Return marks the book as available, also when it already is.
func (b *Book) Return() {
	b.Status = StatusAvailable
}

// String renders the book for listings.
func (b Book) String() string {
	return fmt.Sprintf("%s (%s, %d) - %s [%s]", b.Title, b.Author, b.Year, b.Genre, b.Status)
}
