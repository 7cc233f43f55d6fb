package stats

import (
	"time"

	"github.com/AntonStoeckl/library-catalog-go/library"
)

// DefaultActivityDays is the window used by the console driver for DailyBorrows.
const DefaultActivityDays = 30

// DailyCount is the number of Borrow entries dated on one calendar day.
type DailyCount struct {
	Date    time.Time
	Borrows int
}

// DailyBorrows returns one DailyCount per calendar day of the window of days days ending on today,
// oldest first. Days without borrows are present with a zero count; entries outside the
// window are ignored. days <= 0 yields an empty slice.
func DailyBorrows(history []library.HistoryEntry, today time.Time, days int) []DailyCount {
	if days <= 0 {
		return make([]DailyCount, 0)
	}

	last := library.ToCalendarDate(today)
	first := last.AddDate(0, 0, -(days - 1))

	series := make([]DailyCount, days)
	for i := range series {
		series[i].Date = first.AddDate(0, 0, i)
	}

	for _, entry := range history {
		if entry.Action != library.ActionBorrow {
			continue
		}

		date := library.ToCalendarDate(entry.Date)
		if date.Before(first) || date.After(last) {
			continue
		}

		series[dayIndex(first, date)].Borrows++
	}

	return series
}

// dayIndex counts the calendar days from first to date. Both are UTC midnights.
func dayIndex(first, date time.Time) int {
	return int(date.Sub(first).Hours() / 24)
}
