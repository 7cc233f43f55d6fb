// Package library provides the in-memory catalog and lending engine of a small public library.
//
// The engine owns three collections: the catalog (books by ID), the registered members
// (members by ID) and the chronological history of borrow and return actions.
// Both mappings keep their insertion order, so listings and searches are deterministic.
//
// All operations are synchronous and act on memory only. Persisting the collections is an
// explicit, separate step which is implemented by the flatfile subpackage.
//
// Only four conditions abort an operation, each reported as a wrapped sentinel error:
//   - ErrBookUnavailable: the book is not available for borrowing
//   - ErrQuotaExceeded: the member already holds as many books as allowed
//   - ErrMemberNotFound: an unknown member ID was referenced
//   - ErrBookNotFound: an unknown book ID was referenced
//
// Everything else (duplicate additions, returning a book that is already available, returning
// a book that the member does not hold) is tolerated and reported as a result value.
//
// Common usage pattern:
//
//	lib, err := library.New(library.WithLogger(logger))
//	if err != nil {
//		// handle error
//	}
//
//	lib.AddBook("111", "Dune", "Herbert", 1965, "SciFi")
//	lib.RegisterMember("M1", "Ada")
//
//	if err := lib.Borrow("111", "M1"); errors.Is(err, library.ErrBookUnavailable) {
//		// somebody else has it
//	}
package library
