// Package movie defines the catalog record and its line codec.
package movie

import "strings"

// NoGenres is the placeholder genre used when a movie has none.
const NoGenres = "(no genres listed)"

// Movie represents one catalog entry
type Movie struct {
	ID     uint64
	Title  string
	Genres []string
}

// New builds a Movie, substituting the placeholder genre for an empty list.
func New(id uint64, title string, genres []string) Movie {
	return Movie{ID: id, Title: title, Genres: normalizeGenres(genres)}
}

// GenreList returns the genres joined for display
func (m Movie) GenreList() string {
	return strings.Join(normalizeGenres(m.Genres), ", ")
}

func normalizeGenres(genres []string) []string {
	if len(genres) == 0 {
		return []string{NoGenres}
	}
	out := make([]string, len(genres))
	copy(out, genres)
	return out
}
