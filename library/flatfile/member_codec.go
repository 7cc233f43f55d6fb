package flatfile

import (
	"fmt"
	"io"
	"strings"

	"github.com/AntonStoeckl/library-catalog-go/library"
)

const memberMinFieldCount = 2

// FormatMemberLine renders a member as id;name;loan1,loan2,...
// The quota is not persisted.
func FormatMemberLine(m library.Member) string {
	return strings.Join([]string{
		m.ID,
		sanitizeField(m.Name),
		strings.Join(m.Loans, listDelimiter),
	}, fieldDelimiter)
}

// ParseMemberLine parses a line written by FormatMemberLine.
// The loans field is optional. The returned member has no quota set.
func ParseMemberLine(line string) (library.Member, error) {
	parts := strings.Split(strings.TrimSpace(line), fieldDelimiter)
	if len(parts) < memberMinFieldCount {
		return library.Member{}, fmt.Errorf("%w: member needs at least %d fields, got %d", ErrMalformedLine, memberMinFieldCount, len(parts))
	}

	member := library.Member{
		ID:    parts[0],
		Name:  parts[1],
		Loans: make([]library.BookIDString, 0),
	}

	if len(parts) >= 3 && parts[2] != "" {
		member.Loans = strings.Split(parts[2], listDelimiter)
	}

	return member, nil
}

// ReadMembers parses all member lines of r, skipping malformed ones.
func ReadMembers(r io.Reader) ([]library.Member, []SkippedLine, error) {
	return readLines(r, ParseMemberLine)
}

// WriteMembers writes one line per member.
func WriteMembers(w io.Writer, members []library.Member) error {
	return writeLines(w, members, FormatMemberLine)
}
