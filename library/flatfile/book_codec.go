package flatfile

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/AntonStoeckl/library-catalog-go/library"
)

const (
	bookFieldCount = 6

	statusAvailableWire = "disponible"
	statusBorrowedWire  = "emprunté"
)

// FormatBookLine renders a book as id;title;author;year;genre;status.
func FormatBookLine(b library.Book) string {
	return strings.Join([]string{
		b.ID,
		sanitizeField(b.Title),
		sanitizeField(b.Author),
		strconv.Itoa(b.Year),
		sanitizeField(b.Genre),
		formatStatus(b.Status),
	}, fieldDelimiter)
}

// ParseBookLine parses a line written by FormatBookLine.
// Fields beyond the sixth are ignored and a year that is not an integer becomes 0.
func ParseBookLine(line string) (library.Book, error) {
	parts := strings.Split(strings.TrimSpace(line), fieldDelimiter)
	if len(parts) < bookFieldCount {
		return library.Book{}, fmt.Errorf("%w: book needs %d fields, got %d", ErrMalformedLine, bookFieldCount, len(parts))
	}

	year, err := strconv.Atoi(strings.TrimSpace(parts[3]))
	if err != nil {
		year = 0
	}

	return library.Book{
		ID:     parts[0],
		Title:  parts[1],
		Author: parts[2],
		Year:   year,
		Genre:  parts[4],
		Status: parseStatus(parts[5]),
	}, nil
}

// ReadBooks parses all book lines of r, skipping malformed ones.
func ReadBooks(r io.Reader) ([]library.Book, []SkippedLine, error) {
	return readLines(r, ParseBookLine)
}

// WriteBooks writes one line per book.
func WriteBooks(w io.Writer, books []library.Book) error {
	return writeLines(w, books, FormatBookLine)
}

func formatStatus(s library.Status) string {
	if s == library.StatusAvailable {
		return statusAvailableWire
	}

	return statusBorrowedWire
}

// parseStatus treats everything but the available marker as borrowed.
func parseStatus(s string) library.Status {
	if s == statusAvailableWire {
		return library.StatusAvailable
	}

	return library.StatusBorrowed
}
