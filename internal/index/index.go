// Package index provides a searchable SQLite copy of the catalog.
package index

import (
	"errors"

	"github.com/marco/movieCatalog/internal/movie"
)

// ErrNotBuilt indicates the index database has not been created yet
var ErrNotBuilt = errors.New("index not built")

// Query selects movies by title substring and/or exact genre.
// Both comparisons ignore case; empty fields match everything.
type Query struct {
	Title string
	Genre string
}

// Index defines the interface for a rebuildable movie search index.
type Index interface {
	// Sync replaces the indexed movies with the given list.
	Sync(movies []movie.Movie) error

	// Search returns matching movies in catalog order.
	Search(q Query) ([]movie.Movie, error)

	// Count returns the number of indexed movies.
	Count() (int, error)

	// Close closes the index and releases resources.
	Close() error
}
