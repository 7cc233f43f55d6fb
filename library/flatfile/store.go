package flatfile

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/renameio/v2"

	"github.com/AntonStoeckl/library-catalog-go/library"
)

const (
	// DefaultBooksFile is the default name of the books file.
	DefaultBooksFile = "livres.txt"
	// DefaultMembersFile is the default name of the members file.
	DefaultMembersFile = "membres.txt"
	// DefaultHistoryFile is the default name of the history file.
	DefaultHistoryFile = "historique.csv"

	dirPerm  = 0o755
	filePerm = 0o644
)

var (
	// ErrEmptyDataDir is returned when an empty data directory is supplied.
	ErrEmptyDataDir = errors.New("empty data directory supplied")

	// ErrEmptyFileName is returned when an empty file name is supplied.
	ErrEmptyFileName = errors.New("empty file name supplied")

	// ErrLoadingFailed is returned when a file can't be read.
	ErrLoadingFailed = errors.New("loading library failed")

	// ErrSavingFailed is returned when a file can't be written.
	ErrSavingFailed = errors.New("saving library failed")
)

// LoadReport tells how many records were loaded and which lines were skipped, per file.
type LoadReport struct {
	Books          int
	Members        int
	HistoryEntries int

	SkippedBooks   []SkippedLine
	SkippedMembers []SkippedLine
	SkippedHistory []SkippedLine
}

// SkippedCount returns the number of skipped lines over all files.
func (r LoadReport) SkippedCount() int {
	return len(r.SkippedBooks) + len(r.SkippedMembers) + len(r.SkippedHistory)
}

// Store loads and saves a library.Library from and to a data directory.
type Store struct {
	dataDir     string
	booksFile   string
	membersFile string
	historyFile string

	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// NewStore creates a Store for dataDir. The directory is created on the first load or save.
func NewStore(dataDir string, options ...Option) (*Store, error) {
	if dataDir == "" {
		return nil, ErrEmptyDataDir
	}

	s := &Store{
		dataDir:     dataDir,
		booksFile:   DefaultBooksFile,
		membersFile: DefaultMembersFile,
		historyFile: DefaultHistoryFile,
	}

	for _, option := range options {
		if err := option(s); err != nil {
			return nil, err
		}
	}

	return s, nil
}

// DataDir returns the directory the Store works in.
func (s *Store) DataDir() string {
	return s.dataDir
}

// LoadAll reads books, members and history, in this order, and restores them into lib.
// Missing files count as empty. Malformed lines are skipped and reported.
// On error, lib is left untouched.
func (s *Store) LoadAll(ctx context.Context, lib *library.Library) (LoadReport, error) {
	ctx, span := s.startSpan(ctx, spanNameLoadAll, operationLoadAll)
	start := time.Now()

	report, books, members, history, err := s.load(ctx)
	if err != nil {
		duration := time.Since(start)
		s.logError(ctx, logMsgLoadFailed, err, logAttrDurationMS, toMilliseconds(duration))
		s.incrementCounter(ctx, metricErrors, map[string]string{logAttrOperation: operationLoadAll})
		s.recordDuration(ctx, metricLoadDuration, duration, operationLoadAll, statusError)
		s.finishSpan(span, statusError, duration, map[string]string{logAttrError: err.Error()})

		return LoadReport{}, err
	}

	lib.Restore(books, members, history)

	duration := time.Since(start)
	s.recordDuration(ctx, metricLoadDuration, duration, operationLoadAll, statusSuccess)
	s.recordValue(ctx, metricRecordsLoaded, float64(report.Books), collectionBooks)
	s.recordValue(ctx, metricRecordsLoaded, float64(report.Members), collectionMembers)
	s.recordValue(ctx, metricRecordsLoaded, float64(report.HistoryEntries), collectionHistory)
	s.logInfo(
		ctx, logMsgLoaded,
		collectionBooks, report.Books,
		collectionMembers, report.Members,
		collectionHistory, report.HistoryEntries,
		"skipped", report.SkippedCount(),
		logAttrDurationMS, toMilliseconds(duration),
	)
	s.finishSpan(span, statusSuccess, duration, map[string]string{
		collectionBooks:   fmt.Sprintf("%d", report.Books),
		collectionMembers: fmt.Sprintf("%d", report.Members),
		collectionHistory: fmt.Sprintf("%d", report.HistoryEntries),
		"skipped":         fmt.Sprintf("%d", report.SkippedCount()),
	})

	return report, nil
}

// SaveAll writes books, members and history, in this order. Each file is replaced atomically.
func (s *Store) SaveAll(ctx context.Context, lib *library.Library) error {
	ctx, span := s.startSpan(ctx, spanNameSaveAll, operationSaveAll)
	start := time.Now()

	snapshot := lib.Snapshot()

	err := s.save(snapshot)
	duration := time.Since(start)

	if err != nil {
		s.logError(ctx, logMsgSaveFailed, err, logAttrDurationMS, toMilliseconds(duration))
		s.incrementCounter(ctx, metricErrors, map[string]string{logAttrOperation: operationSaveAll})
		s.recordDuration(ctx, metricSaveDuration, duration, operationSaveAll, statusError)
		s.finishSpan(span, statusError, duration, map[string]string{logAttrError: err.Error()})

		return err
	}

	s.recordDuration(ctx, metricSaveDuration, duration, operationSaveAll, statusSuccess)
	s.logInfo(
		ctx, logMsgSaved,
		collectionBooks, len(snapshot.Books),
		collectionMembers, len(snapshot.Members),
		collectionHistory, len(snapshot.History),
		logAttrDurationMS, toMilliseconds(duration),
	)
	s.finishSpan(span, statusSuccess, duration, nil)

	return nil
}

func (s *Store) load(ctx context.Context) (
	LoadReport,
	[]library.Book,
	[]library.Member,
	[]library.HistoryEntry,
	error,
) {
	var report LoadReport

	if err := s.ensureDataDir(); err != nil {
		return report, nil, nil, nil, errors.Join(ErrLoadingFailed, err)
	}

	books, skippedBooks, err := readFile(s.path(s.booksFile), ReadBooks)
	if err != nil {
		return report, nil, nil, nil, err
	}

	members, skippedMembers, err := readFile(s.path(s.membersFile), ReadMembers)
	if err != nil {
		return report, nil, nil, nil, err
	}

	history, skippedHistory, err := readFile(s.path(s.historyFile), ReadHistory)
	if err != nil {
		return report, nil, nil, nil, err
	}

	s.observeSkipped(ctx, s.booksFile, collectionBooks, skippedBooks)
	s.observeSkipped(ctx, s.membersFile, collectionMembers, skippedMembers)
	s.observeSkipped(ctx, s.historyFile, collectionHistory, skippedHistory)

	report = LoadReport{
		Books:          len(books),
		Members:        len(members),
		HistoryEntries: len(history),
		SkippedBooks:   skippedBooks,
		SkippedMembers: skippedMembers,
		SkippedHistory: skippedHistory,
	}

	return report, books, members, history, nil
}

func (s *Store) save(snapshot library.Snapshot) error {
	if err := s.ensureDataDir(); err != nil {
		return errors.Join(ErrSavingFailed, err)
	}

	if err := writeFile(s.path(s.booksFile), func(w io.Writer) error { return WriteBooks(w, snapshot.Books) }); err != nil {
		return err
	}

	if err := writeFile(s.path(s.membersFile), func(w io.Writer) error { return WriteMembers(w, snapshot.Members) }); err != nil {
		return err
	}

	return writeFile(s.path(s.historyFile), func(w io.Writer) error { return WriteHistory(w, snapshot.History) })
}

func (s *Store) ensureDataDir() error {
	return os.MkdirAll(s.dataDir, dirPerm)
}

func (s *Store) path(file string) string {
	return filepath.Join(s.dataDir, file)
}

// readFile opens path and parses it with read. A missing file yields no records.
func readFile[T any](path string, read func(io.Reader) ([]T, []SkippedLine, error)) ([]T, []SkippedLine, error) {
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return make([]T, 0), make([]SkippedLine, 0), nil
	}

	if err != nil {
		return nil, nil, errors.Join(ErrLoadingFailed, err)
	}
	defer func() {
		_ = f.Close()
	}()

	records, skipped, err := read(f)
	if err != nil {
		return nil, nil, errors.Join(ErrLoadingFailed, fmt.Errorf("%s: %w", path, err))
	}

	return records, skipped, nil
}

// writeFile renders the whole file in memory and replaces path atomically.
func writeFile(path string, write func(io.Writer) error) error {
	var buf bytes.Buffer

	if err := write(&buf); err != nil {
		return errors.Join(ErrSavingFailed, fmt.Errorf("%s: %w", path, err))
	}

	if err := renameio.WriteFile(path, buf.Bytes(), filePerm); err != nil {
		return errors.Join(ErrSavingFailed, err)
	}

	return nil
}
