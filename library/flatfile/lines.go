package flatfile

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
)

const (
	fieldDelimiter = ";"
	listDelimiter  = ","

	maxLineBytes = 1024 * 1024
)

// ErrMalformedLine is wrapped by all line parsing errors.
var ErrMalformedLine = errors.New("malformed line")

// SkippedLine describes an input line which was dropped during a lenient load.
type SkippedLine struct {
	Line int
	Err  error
}

// sanitizeField replaces the field delimiter in free text so it can't shift the following fields.
func sanitizeField(s string) string {
	return strings.ReplaceAll(s, fieldDelimiter, listDelimiter)
}

// readLines parses every non-blank line of r with parse. Lines that fail to parse are skipped.
func readLines[T any](r io.Reader, parse func(line string) (T, error)) ([]T, []SkippedLine, error) {
	records := make([]T, 0)
	skipped := make([]SkippedLine, 0)

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)

	lineNumber := 0
	for scanner.Scan() {
		lineNumber++

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		record, err := parse(line)
		if err != nil {
			skipped = append(skipped, SkippedLine{Line: lineNumber, Err: err})
			continue
		}

		records = append(records, record)
	}

	if err := scanner.Err(); err != nil {
		return nil, nil, err
	}

	return records, skipped, nil
}

// writeLines writes one formatted line per record.
func writeLines[T any](w io.Writer, records []T, format func(T) string) error {
	bw := bufio.NewWriter(w)

	for _, record := range records {
		if _, err := fmt.Fprintln(bw, format(record)); err != nil {
			return err
		}
	}

	return bw.Flush()
}
