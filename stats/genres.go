package stats

import "github.com/AntonStoeckl/library-catalog-go/library"

// GenreShare is the number of catalog books in one genre and their share of the catalog in percent.
type GenreShare struct {
	Genre   string
	Count   int
	Percent float64
}

// GenreDistribution counts books per genre in first-seen order.
// An empty catalog yields an empty slice.
func GenreDistribution(books []library.Book) []GenreShare {
	shares := make([]GenreShare, 0)
	index := make(map[string]int)

	for _, book := range books {
		i, seen := index[book.Genre]
		if !seen {
			i = len(shares)
			index[book.Genre] = i
			shares = append(shares, GenreShare{Genre: book.Genre})
		}

		shares[i].Count++
	}

	for i := range shares {
		shares[i].Percent = float64(shares[i].Count) * 100 / float64(len(books))
	}

	return shares
}
