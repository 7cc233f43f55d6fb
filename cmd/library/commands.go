package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/renameio/v2"
	"github.com/google/uuid"

	"github.com/AntonStoeckl/library-catalog-go/library"
	"github.com/AntonStoeckl/library-catalog-go/stats"
)

const (
	defaultHistoryLines = 20
	defaultTopAuthors   = 10
	exportFilePerm      = 0o644
)

type command struct {
	name     string
	summary  string
	mutating bool
	run      func(ctx context.Context, a *app, args []string) error
}

var commands = []command{
	{name: "books", summary: "list all books", run: runBooks},
	{name: "add-book", summary: "add a book to the catalog", mutating: true, run: runAddBook},
	{name: "remove-book", summary: "remove a book from the catalog", mutating: true, run: runRemoveBook},
	{name: "members", summary: "list all members", run: runMembers},
	{name: "add-member", summary: "register a member, generating an ID if none is given", mutating: true, run: runAddMember},
	{name: "borrow", summary: "lend a book to a member", mutating: true, run: runBorrow},
	{name: "return", summary: "take a book back from a member", mutating: true, run: runReturn},
	{name: "history", summary: "show the most recent borrow and return entries", run: runHistory},
	{name: "find-books", summary: "search books by title", run: runFindBooks},
	{name: "find-members", summary: "search members by name", run: runFindMembers},
	{name: "stats", summary: "show genre distribution, top authors and daily borrows", run: runStats},
	{name: "export", summary: "write all data to a JSON file", run: runExport},
	{name: "import", summary: "replace all data with the content of a JSON file", mutating: true, run: runImport},
}

func findCommand(name string) (command, bool) {
	for _, cmd := range commands {
		if cmd.name == name {
			return cmd, true
		}
	}

	return command{}, false
}

func runBooks(_ context.Context, a *app, args []string) error {
	if err := a.parse(a.flagSet("books"), args); err != nil {
		return err
	}

	books := a.lib.Books()
	if len(books) == 0 {
		a.printf("No books in the catalog.\n")
		return nil
	}

	a.printf("%s\n", Header(fmt.Sprintf("Books (%d)", len(books))))
	for _, book := range books {
		a.printf("  %s  %s\n", Dim(book.ID), book)

		if borrower, held := a.lib.BorrowerOf(book.ID); held {
			a.printf("      borrowed by %s (ID %s)\n", borrower.Name, borrower.ID)
		}
	}

	return nil
}

func runAddBook(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("add-book")
	var (
		id     = fs.String("id", "", "book ID, usually the ISBN (required)")
		title  = fs.String("title", "", "title (required)")
		author = fs.String("author", "", "author")
		year   = fs.Int("year", 0, "publication year")
		genre  = fs.String("genre", "", "genre")
	)

	if err := a.parse(fs, args); err != nil {
		return err
	}

	if err := requireFlags(fs, "id", *id, "title", *title); err != nil {
		return err
	}

	if a.lib.AddBook(*id, *title, *author, *year, *genre).AlreadyExists() {
		a.printf("%s a book with ID %s already exists, nothing changed\n", Warning("[~]"), *id)
		return nil
	}

	book, _ := a.lib.Book(*id)
	a.printf("%s book added: %s\n", Success("[+]"), book)

	return nil
}

func runRemoveBook(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("remove-book")
	id := fs.String("id", "", "book ID (required)")

	if err := a.parse(fs, args); err != nil {
		return err
	}

	if err := requireFlags(fs, "id", *id); err != nil {
		return err
	}

	book, _ := a.lib.Book(*id)
	if err := a.lib.RemoveBook(*id); err != nil {
		return err
	}

	a.printf("%s book removed: %s\n", Success("[-]"), book)

	return nil
}

func runMembers(_ context.Context, a *app, args []string) error {
	if err := a.parse(a.flagSet("members"), args); err != nil {
		return err
	}

	members := a.lib.Members()
	if len(members) == 0 {
		a.printf("No registered members.\n")
		return nil
	}

	a.printf("%s\n", Header(fmt.Sprintf("Members (%d)", len(members))))
	for _, member := range members {
		a.printf("  %s (quota %d)\n", member, member.Quota)

		for _, bookID := range member.Loans {
			title := library.UnknownTitle
			if book, found := a.lib.Book(bookID); found {
				title = book.Title
			}

			a.printf("      %s %q (ID %s)\n", Dim("holds"), title, bookID)
		}
	}

	return nil
}

func runAddMember(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("add-member")
	var (
		id   = fs.String("id", "", "member ID, generated when empty")
		name = fs.String("name", "", "name (required)")
	)

	if err := a.parse(fs, args); err != nil {
		return err
	}

	if err := requireFlags(fs, "name", *name); err != nil {
		return err
	}

	if *id == "" {
		*id = uuid.NewString()
	}

	if a.lib.RegisterMember(*id, *name).AlreadyExists() {
		a.printf("%s a member with ID %s already exists, nothing changed\n", Warning("[~]"), *id)
		return nil
	}

	a.printf("%s member registered: %s (ID %s)\n", Success("[+]"), *name, *id)

	return nil
}

func runBorrow(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("borrow")
	var (
		bookID   = fs.String("book", "", "book ID (required)")
		memberID = fs.String("member", "", "member ID (required)")
	)

	if err := a.parse(fs, args); err != nil {
		return err
	}

	if err := requireFlags(fs, "book", *bookID, "member", *memberID); err != nil {
		return err
	}

	if err := a.lib.Borrow(*bookID, *memberID); err != nil {
		return err
	}

	book, _ := a.lib.Book(*bookID)
	member, _ := a.lib.Member(*memberID)
	a.printf("%s %q borrowed by %s (%d/%d loans)\n", Success("[+]"), book.Title, member.Name, len(member.Loans), member.Quota)

	return nil
}

func runReturn(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("return")
	var (
		bookID   = fs.String("book", "", "book ID (required)")
		memberID = fs.String("member", "", "member ID (required)")
	)

	if err := a.parse(fs, args); err != nil {
		return err
	}

	if err := requireFlags(fs, "book", *bookID, "member", *memberID); err != nil {
		return err
	}

	result, err := a.lib.ReturnBook(*bookID, *memberID)
	if err != nil {
		return err
	}

	book, _ := a.lib.Book(*bookID)
	member, _ := a.lib.Member(*memberID)

	switch {
	case result.Idempotent():
		a.printf("%s %q was already available and not held by %s, nothing changed\n", Warning("[~]"), book.Title, member.Name)
	case result.BookWasAvailable:
		a.printf("%s %q returned by %s; it was already marked as available\n", Warning("[~]"), book.Title, member.Name)
	case !result.MemberHeldBook:
		a.printf("%s %q is available again; it was not among the loans of %s\n", Warning("[~]"), book.Title, member.Name)
	default:
		a.printf("%s %q returned by %s\n", Success("[+]"), book.Title, member.Name)
	}

	return nil
}

func runHistory(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("history")
	n := fs.Int("n", defaultHistoryLines, "number of most recent entries")

	if err := a.parse(fs, args); err != nil {
		return err
	}

	lines := a.lib.RecentHistory(*n)
	if len(lines) == 0 {
		a.printf("No history entries.\n")
		return nil
	}

	for _, line := range lines {
		a.printf("%s\n", line)
	}

	return nil
}

func runFindBooks(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("find-books")
	query := fs.String("q", "", "part of the title, case-insensitive (required)")

	if err := a.parse(fs, args); err != nil {
		return err
	}

	if err := requireFlags(fs, "q", *query); err != nil {
		return err
	}

	books := a.lib.FindBooksByTitle(*query)
	if len(books) == 0 {
		a.printf("No book title contains %q.\n", *query)
		return nil
	}

	for _, book := range books {
		a.printf("  %s  %s\n", Dim(book.ID), book)
	}

	return nil
}

func runFindMembers(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("find-members")
	query := fs.String("q", "", "part of the name, case-insensitive (required)")

	if err := a.parse(fs, args); err != nil {
		return err
	}

	if err := requireFlags(fs, "q", *query); err != nil {
		return err
	}

	members := a.lib.FindMembersByName(*query)
	if len(members) == 0 {
		a.printf("No member name contains %q.\n", *query)
		return nil
	}

	for _, member := range members {
		a.printf("  %s\n", member)
	}

	return nil
}

func runStats(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("stats")
	var (
		top  = fs.Int("top", defaultTopAuthors, "number of authors to rank, ties included")
		days = fs.Int("days", stats.DefaultActivityDays, "number of days of borrow activity")
	)

	if err := a.parse(fs, args); err != nil {
		return err
	}

	snapshot := a.lib.Snapshot()

	a.printf("%s\n", Header("Books by genre"))
	shares := stats.GenreDistribution(snapshot.Books)
	if len(shares) == 0 {
		a.printf("  no books\n")
	}

	for _, share := range shares {
		a.printf("  %-24s %4d  %5.1f%%\n", share.Genre, share.Count, share.Percent)
	}

	a.printf("\n%s\n", Header(fmt.Sprintf("Top %d authors", *top)))
	authors := stats.TopAuthors(snapshot.History, snapshot.Books, *top)
	if len(authors) == 0 {
		a.printf("  no borrows\n")
	}

	for i, author := range authors {
		a.printf("  %2d. %-24s %4d\n", i+1, author.Author, author.Borrows)
	}

	a.printf("\n%s\n", Header(fmt.Sprintf("Borrows over the last %d days", *days)))
	for _, day := range stats.DailyBorrows(snapshot.History, snapshot.TakenAt, *days) {
		a.printf("  %s %3d %s\n", day.Date.Format(time.DateOnly), day.Borrows, Info(strings.Repeat("#", day.Borrows)))
	}

	return nil
}

func runExport(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("export")
	file := fs.String("file", "", "target JSON file (required)")

	if err := a.parse(fs, args); err != nil {
		return err
	}

	if err := requireFlags(fs, "file", *file); err != nil {
		return err
	}

	snapshot := a.lib.Snapshot()

	data, err := library.MarshalSnapshotJSON(snapshot)
	if err != nil {
		return err
	}

	if err := renameio.WriteFile(*file, data, exportFilePerm); err != nil {
		return fmt.Errorf("writing %s failed: %w", *file, err)
	}

	a.printf(
		"%s exported %d books, %d members and %d history entries to %s\n",
		Success("[+]"), len(snapshot.Books), len(snapshot.Members), len(snapshot.History), *file,
	)

	return nil
}

func runImport(_ context.Context, a *app, args []string) error {
	fs := a.flagSet("import")
	file := fs.String("file", "", "JSON file written by export (required)")

	if err := a.parse(fs, args); err != nil {
		return err
	}

	if err := requireFlags(fs, "file", *file); err != nil {
		return err
	}

	data, err := os.ReadFile(*file)
	if err != nil {
		return fmt.Errorf("reading %s failed: %w", *file, err)
	}

	snapshot, err := library.UnmarshalSnapshotJSON(data)
	if err != nil {
		return err
	}

	a.lib.RestoreSnapshot(snapshot)
	a.printf(
		"%s imported %d books, %d members and %d history entries from %s\n",
		Success("[+]"), len(snapshot.Books), len(snapshot.Members), len(snapshot.History), *file,
	)

	return nil
}
