package flatfile

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/AntonStoeckl/library-catalog-go/library"
)

const (
	columnDate     = "date"
	columnBookID   = "isbn"
	columnMemberID = "id_membre"
	columnAction   = "action"

	actionBorrowWire = "emprunt"
	actionReturnWire = "retour"
)

// HistoryHeader is the first row of the history file.
var HistoryHeader = []string{columnDate, columnBookID, columnMemberID, columnAction}

// ReadHistory parses a history CSV. Columns are located by their header name.
// Rows with an empty required field or an unparseable date are skipped.
func ReadHistory(r io.Reader) ([]library.HistoryEntry, []SkippedLine, error) {
	entries := make([]library.HistoryEntry, 0)
	skipped := make([]SkippedLine, 0)

	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return entries, skipped, nil
	}

	if err != nil {
		return nil, nil, err
	}

	columns := indexColumns(header)

	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			skipped = append(skipped, SkippedLine{Line: parseErr.Line, Err: errors.Join(ErrMalformedLine, err)})
			continue
		}

		if err != nil {
			return nil, nil, err
		}

		line, _ := reader.FieldPos(0)

		entry, err := parseHistoryRecord(record, columns)
		if err != nil {
			skipped = append(skipped, SkippedLine{Line: line, Err: err})
			continue
		}

		entries = append(entries, entry)
	}

	return entries, skipped, nil
}

// WriteHistory writes the header followed by one row per entry.
func WriteHistory(w io.Writer, entries []library.HistoryEntry) error {
	writer := csv.NewWriter(w)

	if err := writer.Write(HistoryHeader); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{e.Date.Format(time.DateOnly), e.BookID, e.MemberID, formatAction(e.Action)}
		if err := writer.Write(row); err != nil {
			return err
		}
	}

	writer.Flush()

	return writer.Error()
}

func indexColumns(header []string) map[string]int {
	columns := make(map[string]int, len(header))
	for i, name := range header {
		name = strings.TrimSpace(strings.TrimPrefix(name, "\ufeff"))
		if _, exists := columns[name]; !exists {
			columns[name] = i
		}
	}

	return columns
}

func parseHistoryRecord(record []string, columns map[string]int) (library.HistoryEntry, error) {
	field := func(name string) string {
		i, ok := columns[name]
		if !ok || i >= len(record) {
			return ""
		}

		return strings.TrimSpace(record[i])
	}

	date, bookID, memberID, action := field(columnDate), field(columnBookID), field(columnMemberID), field(columnAction)
	if date == "" || bookID == "" || memberID == "" || action == "" {
		return library.HistoryEntry{}, fmt.Errorf("%w: history row has an empty field", ErrMalformedLine)
	}

	day, err := time.Parse(time.DateOnly, date)
	if err != nil {
		return library.HistoryEntry{}, errors.Join(ErrMalformedLine, err)
	}

	return library.BuildHistoryEntry(day, bookID, memberID, parseAction(action)), nil
}

// formatAction writes unknown actions through unchanged.
func formatAction(a library.Action) string {
	switch a {
	case library.ActionBorrow:
		return actionBorrowWire
	case library.ActionReturn:
		return actionReturnWire
	default:
		return string(a)
	}
}

// parseAction keeps unknown actions as they are.
func parseAction(s string) library.Action {
	switch s {
	case actionBorrowWire:
		return library.ActionBorrow
	case actionReturnWire:
		return library.ActionReturn
	default:
		return library.Action(s)
	}
}
