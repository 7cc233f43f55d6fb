// Package stats computes read-only statistics over a library.Snapshot:
// the genre distribution of the catalog, the most borrowed authors and the daily borrow activity.
//
// Nothing here renders charts; callers decide how to present the numbers.
package stats
