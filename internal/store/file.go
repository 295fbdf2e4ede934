// Package store reads and appends catalog records in the movies text file.
package store

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"github.com/marco/movieCatalog/internal/retry"
)

// DefaultHeader is the column header written by Init.
const DefaultHeader = "movieId,title,genres"

// ErrUnavailable indicates the catalog file could not be opened
var ErrUnavailable = errors.New("store unavailable")

// UnavailableError reports a failed open, read or write of the catalog file.
type UnavailableError struct {
	Path string
	Op   string
	Err  error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("catalog file %s: %s: %v", e.Path, e.Op, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// Is implements errors.Is support
func (e *UnavailableError) Is(target error) bool {
	return target == ErrUnavailable
}

// Options configures a File store.
type Options struct {
	Header       string
	LockAttempts int
	LockBackoff  time.Duration
}

// File is the text file backing a catalog: one header line followed by one
// record per line. Records are only ever appended.
type File struct {
	path     string
	header   string
	lock     *flock.Flock
	attempts int
	backoff  time.Duration
}

// NewFile creates a store for the file at path. Appends are serialized with
// an advisory lock on a sibling ".lock" file.
func NewFile(path string, opts Options) *File {
	if opts.Header == "" {
		opts.Header = DefaultHeader
	}
	if opts.LockAttempts <= 0 {
		opts.LockAttempts = 5
	}
	if opts.LockBackoff <= 0 {
		opts.LockBackoff = 50 * time.Millisecond
	}

	return &File{
		path:     path,
		header:   opts.Header,
		lock:     flock.New(path + ".lock"),
		attempts: opts.LockAttempts,
		backoff:  opts.LockBackoff,
	}
}

// Path returns the catalog file path
func (f *File) Path() string {
	return f.path
}

// Exists reports whether the catalog file is present
func (f *File) Exists() bool {
	info, err := os.Stat(f.path)
	return err == nil && !info.IsDir()
}

// ReadLines returns every record line after the header, in file order.
// Blank lines are kept so the caller can report them.
func (f *File) ReadLines() ([]string, error) {
	file, err := os.Open(f.path)
	if err != nil {
		return nil, &UnavailableError{Path: f.path, Op: "open", Err: err}
	}
	defer file.Close()

	return readRecords(file, f.path)
}

func readRecords(r io.Reader, path string) ([]string, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	first := true
	for scanner.Scan() {
		if first {
			// first line contains column headers
			first = false
			continue
		}
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, &UnavailableError{Path: path, Op: "read", Err: err}
	}
	return lines, nil
}

// Append writes line at the end of the file. Existing content is never
// rewritten; a missing final newline is completed first so the new record
// starts on its own line.
func (f *File) Append(line string) error {
	if err := f.acquire(); err != nil {
		return err
	}
	defer f.lock.Unlock()

	file, err := os.OpenFile(f.path, os.O_RDWR|os.O_APPEND, 0)
	if err != nil {
		return &UnavailableError{Path: f.path, Op: "open for append", Err: err}
	}

	var sb strings.Builder
	needsNewline, err := missingFinalNewline(file)
	if err != nil {
		file.Close()
		return &UnavailableError{Path: f.path, Op: "read", Err: err}
	}
	if needsNewline {
		sb.WriteString("\n")
	}
	sb.WriteString(line)
	sb.WriteString("\n")

	if _, err := file.WriteString(sb.String()); err != nil {
		file.Close()
		return &UnavailableError{Path: f.path, Op: "append", Err: err}
	}
	if err := file.Close(); err != nil {
		return &UnavailableError{Path: f.path, Op: "close", Err: err}
	}
	return nil
}

func missingFinalNewline(file *os.File) (bool, error) {
	info, err := file.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return false, nil
	}
	last := make([]byte, 1)
	if _, err := file.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] != '\n', nil
}

// Init creates the file containing only the header. It reports false
// without touching anything when the file already exists.
func (f *File) Init() (bool, error) {
	if err := os.MkdirAll(filepath.Dir(f.path), 0755); err != nil {
		return false, fmt.Errorf("failed to create catalog directory: %w", err)
	}

	file, err := os.OpenFile(f.path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if errors.Is(err, os.ErrExist) {
			return false, nil
		}
		return false, &UnavailableError{Path: f.path, Op: "create", Err: err}
	}

	if _, err := file.WriteString(f.header + "\n"); err != nil {
		file.Close()
		return false, &UnavailableError{Path: f.path, Op: "write header", Err: err}
	}
	if err := file.Close(); err != nil {
		return false, &UnavailableError{Path: f.path, Op: "close", Err: err}
	}
	return true, nil
}

func (f *File) acquire() error {
	err := retry.Retry(func() error {
		ok, err := f.lock.TryLock()
		if err != nil {
			return err
		}
		if !ok {
			return retry.ErrBusy
		}
		return nil
	}, f.attempts, f.backoff)
	if err != nil {
		return &UnavailableError{Path: f.path, Op: "lock", Err: err}
	}
	return nil
}
