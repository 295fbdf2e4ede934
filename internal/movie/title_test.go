package movie

import (
	"reflect"
	"testing"
)

func TestSplitYear(t *testing.T) {
	testCases := []struct {
		title        string
		expectedName string
		expectedYear int
	}{
		{"Jumanji (1995)", "Jumanji", 1995},
		{"American President, The (1995)", "American President, The", 1995},
		{"Shanghai Triad (Yao a yao yao dao waipo qiao) (1995)", "Shanghai Triad (Yao a yao yao dao waipo qiao)", 1995},
		{"2001: A Space Odyssey (1968)", "2001: A Space Odyssey", 1968},
		{"1917", "1917", 0},
		{"Jumanji", "Jumanji", 0},
		{"Babylon 5", "Babylon 5", 0},
		{"Year (199)", "Year (199)", 0},
	}

	for _, tc := range testCases {
		name, year := SplitYear(tc.title)
		if name != tc.expectedName || year != tc.expectedYear {
			t.Errorf("SplitYear(%q) = (%q, %d), want (%q, %d)",
				tc.title, name, year, tc.expectedName, tc.expectedYear)
		}
	}
}

func TestSlug(t *testing.T) {
	testCases := []struct {
		movie    Movie
		expected string
	}{
		{Movie{ID: 2, Title: "Jumanji (1995)"}, "jumanji-1995"},
		{Movie{ID: 11, Title: "American President, The (1995)"}, "american-president-the-1995"},
		{Movie{ID: 3, Title: "Grumpier Old Men"}, "grumpier-old-men"},
		{Movie{ID: 924, Title: "2001: A Space Odyssey (1968)"}, "2001-a-space-odyssey-1968"},
		{Movie{ID: 77, Title: "!!!"}, "movie-77"},
	}

	for _, tc := range testCases {
		if got := tc.movie.Slug(); got != tc.expected {
			t.Errorf("Slug(%q) = %q, want %q", tc.movie.Title, got, tc.expected)
		}
	}
}

func TestNew_SubstitutesPlaceholder(t *testing.T) {
	m := New(5, "Heat", nil)
	if !reflect.DeepEqual(m.Genres, []string{NoGenres}) {
		t.Errorf("New with no genres: Genres = %v, want [%s]", m.Genres, NoGenres)
	}
	if m.GenreList() != NoGenres {
		t.Errorf("GenreList() = %q, want %q", m.GenreList(), NoGenres)
	}

	genres := []string{"Action", "Crime"}
	m = New(6, "Heat", genres)
	genres[0] = "Changed"
	if m.Genres[0] != "Action" {
		t.Errorf("New must copy the genre slice, got %v", m.Genres)
	}
	if m.GenreList() != "Action, Crime" {
		t.Errorf("GenreList() = %q, want %q", m.GenreList(), "Action, Crime")
	}
}
