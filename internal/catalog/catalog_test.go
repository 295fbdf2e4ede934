package catalog

import (
	"errors"
	"reflect"
	"testing"

	"github.com/marco/movieCatalog/internal/movie"
)

// recordingStore captures appended lines in memory.
type recordingStore struct {
	lines []string
	err   error
}

func (s *recordingStore) Append(line string) error {
	if s.err != nil {
		return s.err
	}
	s.lines = append(s.lines, line)
	return nil
}

func TestLoad_DecodesInOrder(t *testing.T) {
	lines := []string{
		"101,Jumanji,Adventure|Children|Fantasy",
		`102,"Waiting to Exhale",Comedy|Drama|Romance`,
		`11,"American President, The (1995)",Comedy`,
	}

	c, errs := Load(lines, &recordingStore{})
	if len(errs) != 0 {
		t.Fatalf("unexpected load errors: %v", errs)
	}

	want := []movie.Movie{
		{ID: 101, Title: "Jumanji", Genres: []string{"Adventure", "Children", "Fantasy"}},
		{ID: 102, Title: "Waiting to Exhale", Genres: []string{"Comedy", "Drama", "Romance"}},
		{ID: 11, Title: "American President, The (1995)", Genres: []string{"Comedy"}},
	}
	if got := c.All(); !reflect.DeepEqual(got, want) {
		t.Errorf("All() = %+v, want %+v", got, want)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}

func TestLoad_SkipsBadLines(t *testing.T) {
	lines := []string{
		"1,Toy Story (1995),Animation",
		"abc,NoIdHere,Drama",
		"",
		"2,Jumanji (1995),Adventure",
		"1,Reused Id,Drama",
		`3,"Unterminated, Title,Drama`,
	}

	c, errs := Load(lines, &recordingStore{})

	if c.Len() != 2 {
		t.Errorf("expected 2 movies loaded, got %d", c.Len())
	}
	if len(errs) != 4 {
		t.Fatalf("expected 4 line errors, got %d: %v", len(errs), errs)
	}

	wantRecords := []int{2, 3, 5, 6}
	for i, e := range errs {
		if e.Record != wantRecords[i] {
			t.Errorf("error %d: Record = %d, want %d", i, e.Record, wantRecords[i])
		}
	}

	var fe *movie.FormatError
	if !errors.As(errs[0], &fe) {
		t.Errorf("expected FormatError for malformed id, got %v", errs[0])
	}
	if !errors.Is(errs[1], ErrEmptyLine) {
		t.Errorf("expected ErrEmptyLine, got %v", errs[1])
	}
	if !errors.Is(errs[2], ErrDuplicateID) {
		t.Errorf("expected ErrDuplicateID, got %v", errs[2])
	}
	if !errors.As(errs[3], &fe) {
		t.Errorf("expected FormatError for unterminated quote, got %v", errs[3])
	}
}

func TestNextID(t *testing.T) {
	testCases := []struct {
		name  string
		lines []string
		want  uint64
	}{
		{"empty", nil, 1},
		{"unordered ids", []string{"3,C,Drama", "7,G,Drama", "2,B,Drama"}, 8},
		{"single", []string{"102,Waiting to Exhale,Drama"}, 103},
	}

	for _, tc := range testCases {
		c, _ := Load(tc.lines, &recordingStore{})
		if got := c.NextID(); got != tc.want {
			t.Errorf("%s: NextID() = %d, want %d", tc.name, got, tc.want)
		}
	}
}

func TestExists_IgnoresCase(t *testing.T) {
	c, _ := Load([]string{"1,Inception,Sci-Fi", "2,Amélie,Romance"}, &recordingStore{})

	testCases := []struct {
		title string
		want  bool
	}{
		{"Inception", true},
		{"inception", true},
		{"INCEPTION", true},
		{"AMÉLIE", true},
		{"Incept", false},
		{"Memento", false},
	}

	for _, tc := range testCases {
		if got := c.Exists(tc.title); got != tc.want {
			t.Errorf("Exists(%q) = %v, want %v", tc.title, got, tc.want)
		}
	}
}

func TestAdd_AppendsEncodedLine(t *testing.T) {
	store := &recordingStore{}
	c, _ := Load([]string{
		"101,Jumanji,Adventure|Children|Fantasy",
		`102,"Waiting to Exhale",Comedy|Drama|Romance`,
	}, store)

	m, err := c.Add("My, Title", []string{"done"})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if m.ID != 103 {
		t.Errorf("expected id 103, got %d", m.ID)
	}
	if !reflect.DeepEqual(store.lines, []string{`103,"My, Title",done`}) {
		t.Errorf("store lines = %q", store.lines)
	}

	all := c.All()
	if len(all) != 3 || !reflect.DeepEqual(all[2], m) {
		t.Errorf("expected added movie at the end, got %+v", all)
	}
	if !c.Exists("my, title") {
		t.Error("expected added title to exist")
	}
	if c.NextID() != 104 {
		t.Errorf("NextID() after add = %d, want 104", c.NextID())
	}
}

func TestAdd_EmptyCatalogStartsAtOne(t *testing.T) {
	store := &recordingStore{}
	c, _ := Load(nil, store)

	m, err := c.Add("Heat", []string{"Action", "Crime"})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if m.ID != 1 {
		t.Errorf("expected id 1, got %d", m.ID)
	}
	if store.lines[0] != "1,Heat,Action|Crime" {
		t.Errorf("store line = %q", store.lines[0])
	}
}

func TestAdd_NoGenresUsesPlaceholder(t *testing.T) {
	store := &recordingStore{}
	c, _ := Load(nil, store)

	m, err := c.Add("Mystery Film", []string{})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	if !reflect.DeepEqual(m.Genres, []string{movie.NoGenres}) {
		t.Errorf("Genres = %v, want [%s]", m.Genres, movie.NoGenres)
	}
	if store.lines[0] != "1,Mystery Film,(no genres listed)" {
		t.Errorf("store line = %q", store.lines[0])
	}
}

func TestAdd_DuplicateTitle(t *testing.T) {
	store := &recordingStore{}
	c, _ := Load(nil, store)

	if _, err := c.Add("inception", []string{"Sci-Fi"}); err != nil {
		t.Fatalf("first Add returned error: %v", err)
	}

	_, err := c.Add("Inception", []string{"Thriller"})
	if !errors.Is(err, ErrDuplicateTitle) {
		t.Fatalf("expected ErrDuplicateTitle, got %v", err)
	}
	var dup *DuplicateTitleError
	if !errors.As(err, &dup) || dup.Existing != "inception" {
		t.Errorf("expected DuplicateTitleError naming existing title, got %v", err)
	}
	if len(store.lines) != 1 {
		t.Errorf("duplicate add must not touch the store, got %d lines", len(store.lines))
	}
	if c.Len() != 1 {
		t.Errorf("duplicate add must not change the catalog, got %d movies", c.Len())
	}
}

func TestAdd_MissingTitle(t *testing.T) {
	store := &recordingStore{}
	c, _ := Load(nil, store)

	for _, title := range []string{"", "   "} {
		_, err := c.Add(title, []string{"Drama"})
		if !errors.Is(err, ErrMissingInput) {
			t.Errorf("Add(%q) error = %v, want ErrMissingInput", title, err)
		}
	}
	if len(store.lines) != 0 {
		t.Errorf("expected no store writes, got %q", store.lines)
	}
}

func TestAdd_RejectsUnencodableInput(t *testing.T) {
	store := &recordingStore{}
	c, _ := Load(nil, store)

	_, err := c.Add(`The "Quoted" Movie`, []string{"Drama"})
	var ve *movie.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for quoted title, got %v", err)
	}

	_, err = c.Add("Heat", []string{"Action|Crime"})
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for genre with separator, got %v", err)
	}

	if len(store.lines) != 0 || c.Len() != 0 {
		t.Errorf("rejected adds must not change state: lines=%q len=%d", store.lines, c.Len())
	}
}

func TestAdd_StoreFailureLeavesCatalogUnchanged(t *testing.T) {
	storeErr := errors.New("disk full")
	store := &recordingStore{err: storeErr}
	c, _ := Load([]string{"5,Heat,Action"}, store)

	_, err := c.Add("Ronin", []string{"Action"})
	if !errors.Is(err, storeErr) {
		t.Fatalf("expected store error to be wrapped, got %v", err)
	}
	if c.Len() != 1 {
		t.Errorf("expected 1 movie after failed add, got %d", c.Len())
	}
	if c.Exists("Ronin") {
		t.Error("failed add must not register the title")
	}
	if c.NextID() != 6 {
		t.Errorf("NextID() = %d, want 6", c.NextID())
	}
}

func TestAll_ReturnsCopy(t *testing.T) {
	c, _ := Load([]string{"1,Heat,Action|Crime"}, &recordingStore{})
	all := c.All()
	all[0].Title = "Changed"
	all[0].Genres[0] = "Changed"

	got := c.All()[0]
	if got.Title != "Heat" {
		t.Error("All() must not expose internal titles")
	}
	if !reflect.DeepEqual(got.Genres, []string{"Action", "Crime"}) {
		t.Errorf("All() exposed internal genres, stored record now has %v", got.Genres)
	}
}

func TestAdd_ReturnsCopy(t *testing.T) {
	c, _ := Load(nil, &recordingStore{})
	m, err := c.Add("Ronin", []string{"Action"})
	if err != nil {
		t.Fatalf("Add returned error: %v", err)
	}
	m.Genres[0] = "Changed"

	if got := c.All()[0].Genres; !reflect.DeepEqual(got, []string{"Action"}) {
		t.Errorf("Add() result shares genres with the catalog, stored record now has %v", got)
	}
}

func TestDuplicates(t *testing.T) {
	c, errs := Load([]string{
		"1,Emma,Drama",
		"2,Heat,Action",
		"3,EMMA,Romance",
		"4,heat,Crime",
		"5,Ronin,Action",
	}, &recordingStore{})
	if len(errs) != 0 {
		t.Fatalf("unexpected load errors: %v", errs)
	}

	sets := c.Duplicates()
	if len(sets) != 2 {
		t.Fatalf("expected 2 duplicate sets, got %d", len(sets))
	}
	if sets[0].Movies[0].ID != 1 || sets[0].Movies[1].ID != 3 {
		t.Errorf("first set = %+v, want ids 1 and 3", sets[0].Movies)
	}
	if sets[1].Movies[0].ID != 2 || sets[1].Movies[1].ID != 4 {
		t.Errorf("second set = %+v, want ids 2 and 4", sets[1].Movies)
	}
}
