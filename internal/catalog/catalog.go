// Package catalog holds the in-memory movie collection for a session and
// appends new records to the backing store.
package catalog

import (
	"fmt"
	"slices"
	"strings"

	"golang.org/x/text/cases"

	"github.com/marco/movieCatalog/internal/movie"
)

// Appender persists one encoded record line at the end of the store.
type Appender interface {
	Append(line string) error
}

// Catalog is the loaded set of movies. It is not safe for concurrent use.
type Catalog struct {
	store  Appender
	movies []movie.Movie
	titles map[string]int // folded title -> index of first movie with it
	ids    map[uint64]struct{}
	maxID  uint64
}

// Load decodes every line into a Catalog, in order. Lines that are empty,
// malformed, or reuse an already loaded id are skipped and returned as
// LineErrors; they never abort the load.
func Load(lines []string, store Appender) (*Catalog, []*LineError) {
	c := &Catalog{
		store:  store,
		movies: make([]movie.Movie, 0, len(lines)),
		titles: make(map[string]int, len(lines)),
		ids:    make(map[uint64]struct{}, len(lines)),
	}

	var errs []*LineError
	for i, line := range lines {
		if line == "" {
			errs = append(errs, &LineError{Record: i + 1, Err: ErrEmptyLine})
			continue
		}

		m, err := movie.Decode(line)
		if err != nil {
			errs = append(errs, &LineError{Record: i + 1, Text: line, Err: err})
			continue
		}

		if _, dup := c.ids[m.ID]; dup {
			errs = append(errs, &LineError{
				Record: i + 1,
				Text:   line,
				Err:    fmt.Errorf("%w: %d", ErrDuplicateID, m.ID),
			})
			continue
		}

		c.insert(m)
	}

	return c, errs
}

func (c *Catalog) insert(m movie.Movie) {
	key := foldTitle(m.Title)
	if _, ok := c.titles[key]; !ok {
		c.titles[key] = len(c.movies)
	}
	c.ids[m.ID] = struct{}{}
	if m.ID > c.maxID {
		c.maxID = m.ID
	}
	c.movies = append(c.movies, m)
}

// Exists reports whether a movie with this title is loaded, ignoring case.
func (c *Catalog) Exists(title string) bool {
	_, ok := c.titles[foldTitle(title)]
	return ok
}

// NextID returns the highest loaded id plus one, or 1 for an empty catalog.
func (c *Catalog) NextID() uint64 {
	return c.maxID + 1
}

// Add creates a movie with the next id, appends it to the store and then to
// the in-memory collection. The catalog is left unchanged when any step
// fails.
func (c *Catalog) Add(title string, genres []string) (movie.Movie, error) {
	title = strings.TrimSpace(title)
	if title == "" {
		return movie.Movie{}, &MissingInputError{Field: "title"}
	}

	if idx, ok := c.titles[foldTitle(title)]; ok {
		return movie.Movie{}, &DuplicateTitleError{Title: title, Existing: c.movies[idx].Title}
	}

	m := movie.New(c.NextID(), title, genres)
	if err := movie.Validate(m); err != nil {
		return movie.Movie{}, err
	}

	if err := c.store.Append(movie.Encode(m)); err != nil {
		return movie.Movie{}, fmt.Errorf("failed to persist movie %d: %w", m.ID, err)
	}

	c.insert(m)
	return clone(m), nil
}

// All returns the movies in load and insertion order. Callers get their own
// copies, genres included.
func (c *Catalog) All() []movie.Movie {
	out := make([]movie.Movie, len(c.movies))
	for i, m := range c.movies {
		out[i] = clone(m)
	}
	return out
}

func clone(m movie.Movie) movie.Movie {
	m.Genres = slices.Clone(m.Genres)
	return m
}

// Len returns the number of loaded movies.
func (c *Catalog) Len() int {
	return len(c.movies)
}

func foldTitle(title string) string {
	return cases.Fold().String(title)
}
