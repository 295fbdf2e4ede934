package index

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/text/cases"
	_ "modernc.org/sqlite"

	"github.com/marco/movieCatalog/internal/movie"
)

// SQLiteIndex implements the Index interface using SQLite for persistence.
type SQLiteIndex struct {
	db *sql.DB
}

// NewSQLiteIndex opens the index database.
// The database file and tables are auto-created if they don't exist.
func NewSQLiteIndex(dbPath string) (*SQLiteIndex, error) {
	// Ensure parent directory exists
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("failed to create index directory: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open index database: %w", err)
	}

	createTableSQL := `
		CREATE TABLE IF NOT EXISTS movies (
			id INTEGER PRIMARY KEY,
			position INTEGER NOT NULL,
			title TEXT NOT NULL,
			title_folded TEXT NOT NULL,
			release_year INTEGER NOT NULL,
			slug TEXT NOT NULL
		);
		CREATE TABLE IF NOT EXISTS movie_genres (
			movie_id INTEGER NOT NULL REFERENCES movies(id),
			position INTEGER NOT NULL,
			genre TEXT NOT NULL,
			genre_folded TEXT NOT NULL,
			PRIMARY KEY (movie_id, position)
		);
		CREATE INDEX IF NOT EXISTS idx_movies_position ON movies(position);
		CREATE INDEX IF NOT EXISTS idx_movie_genres_folded ON movie_genres(genre_folded);
	`
	if _, err := db.Exec(createTableSQL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create index tables: %w", err)
	}

	return &SQLiteIndex{db: db}, nil
}

// OpenSQLiteIndex opens an index previously created by NewSQLiteIndex.
// It fails with ErrNotBuilt instead of creating an empty database.
func OpenSQLiteIndex(dbPath string) (*SQLiteIndex, error) {
	info, err := os.Stat(dbPath)
	if errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s does not exist", ErrNotBuilt, dbPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to stat index database: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("index path %s is a directory", dbPath)
	}
	return NewSQLiteIndex(dbPath)
}

// Sync replaces the indexed movies in a single transaction.
func (ix *SQLiteIndex) Sync(movies []movie.Movie) error {
	tx, err := ix.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin index sync: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec("DELETE FROM movie_genres"); err != nil {
		return fmt.Errorf("failed to clear genres: %w", err)
	}
	if _, err := tx.Exec("DELETE FROM movies"); err != nil {
		return fmt.Errorf("failed to clear movies: %w", err)
	}

	insertMovie, err := tx.Prepare(
		`INSERT INTO movies (id, position, title, title_folded, release_year, slug)
		 VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare movie insert: %w", err)
	}
	defer insertMovie.Close()

	insertGenre, err := tx.Prepare(
		`INSERT INTO movie_genres (movie_id, position, genre, genre_folded) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("failed to prepare genre insert: %w", err)
	}
	defer insertGenre.Close()

	fold := cases.Fold()
	for pos, m := range movies {
		// ids above MaxInt64 round-trip through their two's complement form
		id := int64(m.ID)
		if _, err := insertMovie.Exec(id, pos, m.Title, fold.String(m.Title), m.ReleaseYear(), m.Slug()); err != nil {
			return fmt.Errorf("failed to index movie %d: %w", m.ID, err)
		}
		for gpos, g := range m.Genres {
			if _, err := insertGenre.Exec(id, gpos, g, fold.String(g)); err != nil {
				return fmt.Errorf("failed to index genre %q of movie %d: %w", g, m.ID, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit index sync: %w", err)
	}
	return nil
}

// Search returns movies matching q in catalog order.
func (ix *SQLiteIndex) Search(q Query) ([]movie.Movie, error) {
	fold := cases.Fold()
	title := fold.String(q.Title)
	genre := fold.String(q.Genre)

	rows, err := ix.db.Query(
		`SELECT m.id, m.title FROM movies m
		 WHERE (? = '' OR instr(m.title_folded, ?) > 0)
		   AND (? = '' OR EXISTS (
		         SELECT 1 FROM movie_genres g
		         WHERE g.movie_id = m.id AND g.genre_folded = ?))
		 ORDER BY m.position`,
		title, title, genre, genre,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to search index: %w", err)
	}

	var results []movie.Movie
	for rows.Next() {
		var id int64
		var m movie.Movie
		if err := rows.Scan(&id, &m.Title); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to read search result: %w", err)
		}
		m.ID = uint64(id)
		results = append(results, m)
	}
	if err := rows.Err(); err != nil {
		rows.Close()
		return nil, fmt.Errorf("failed to read search results: %w", err)
	}
	rows.Close()

	for i := range results {
		genres, err := ix.genres(int64(results[i].ID))
		if err != nil {
			return nil, err
		}
		results[i].Genres = genres
	}
	return results, nil
}

func (ix *SQLiteIndex) genres(id int64) ([]string, error) {
	rows, err := ix.db.Query(
		"SELECT genre FROM movie_genres WHERE movie_id = ? ORDER BY position", id)
	if err != nil {
		return nil, fmt.Errorf("failed to load genres for movie %d: %w", uint64(id), err)
	}
	defer rows.Close()

	var genres []string
	for rows.Next() {
		var g string
		if err := rows.Scan(&g); err != nil {
			return nil, fmt.Errorf("failed to read genre: %w", err)
		}
		genres = append(genres, g)
	}
	return genres, rows.Err()
}

// Count returns the number of indexed movies.
func (ix *SQLiteIndex) Count() (int, error) {
	var n int
	if err := ix.db.QueryRow("SELECT COUNT(*) FROM movies").Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count indexed movies: %w", err)
	}
	return n, nil
}

// Close closes the database connection.
func (ix *SQLiteIndex) Close() error {
	if ix.db != nil {
		return ix.db.Close()
	}
	return nil
}
