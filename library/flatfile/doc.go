// Package flatfile persists a library.Library to three delimited text files in one data directory.
//
// File layout (default names):
//
//	livres.txt      one book per line:   id;title;author;year;genre;status
//	membres.txt     one member per line: id;name;loan1,loan2,...
//	historique.csv  header date,isbn,id_membre,action followed by one row per history entry
//
// Loading is lenient. A malformed line is skipped and reported in the LoadReport instead of
// failing the whole load, so one bad line never prevents the library from starting.
//
// Saving overwrites each file as a whole. Every file is written to a temporary file first and
// then renamed over the old one, so an interrupted save can't leave a truncated file behind.
// There is no cross-file transaction: files are saved one after another.
//
// The Store is meant for exclusive single-process use of its data directory.
package flatfile
