package stats

import (
	"slices"

	"github.com/AntonStoeckl/library-catalog-go/library"
)

// AuthorCount is the number of borrows of books by one author.
type AuthorCount struct {
	Author  string
	Borrows int
}

// TopAuthors ranks authors by their number of Borrow entries in history.
//
// The result is sorted by descending count; equal counts keep the order in which the
// author was first borrowed. Every author tied with the topN-th entry is included, so the
// result can be longer than topN. Entries for books missing from books, and books
// without an author, are ignored. topN <= 0 yields an empty slice.
func TopAuthors(history []library.HistoryEntry, books []library.Book, topN int) []AuthorCount {
	if topN <= 0 {
		return make([]AuthorCount, 0)
	}

	authorOf := make(map[library.BookIDString]string, len(books))
	for _, book := range books {
		authorOf[book.ID] = book.Author
	}

	counts := make([]AuthorCount, 0)
	index := make(map[string]int)

	for _, entry := range history {
		if entry.Action != library.ActionBorrow {
			continue
		}

		author, known := authorOf[entry.BookID]
		if !known || author == "" {
			continue
		}

		i, seen := index[author]
		if !seen {
			i = len(counts)
			index[author] = i
			counts = append(counts, AuthorCount{Author: author})
		}

		counts[i].Borrows++
	}

	slices.SortStableFunc(counts, func(a, b AuthorCount) int {
		return b.Borrows - a.Borrows
	})

	if len(counts) <= topN {
		return counts
	}

	cutoff := counts[topN-1].Borrows
	end := topN
	for end < len(counts) && counts[end].Borrows == cutoff {
		end++
	}

	return counts[:end]
}
