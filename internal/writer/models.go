package writer

import "github.com/marco/movieCatalog/internal/movie"

// Page is the frontmatter of an exported movie page
type Page struct {
	ID          uint64   `yaml:"id"`
	Title       string   `yaml:"title"`
	Slug        string   `yaml:"slug"`
	ReleaseYear int      `yaml:"releaseYear,omitempty"`
	Genres      []string `yaml:"genres"`
}

// NewPage builds the frontmatter for m
func NewPage(m movie.Movie) Page {
	return Page{
		ID:          m.ID,
		Title:       m.Title,
		Slug:        m.Slug(),
		ReleaseYear: m.ReleaseYear(),
		Genres:      m.Genres,
	}
}
