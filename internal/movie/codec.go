package movie

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	fieldSep = ","
	genreSep = "|"
	quote    = `"`
)

// FormatError reports a persisted line that cannot be decoded into a Movie.
type FormatError struct {
	Line   string
	Reason string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed movie line %q: %s", e.Line, e.Reason)
}

// ValidationError reports a field value that Encode cannot represent
// unambiguously.
type ValidationError struct {
	Field  string
	Value  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %q: %s", e.Field, e.Value, e.Reason)
}

// Decode parses one persisted line.
//
// Two forms are accepted:
//
//	id,title,Genre1|Genre2
//	id,"title, with commas",Genre1|Genre2
//
// A plain line must split into exactly three fields. Quote characters are
// only allowed as the delimiters of a quoted title.
func Decode(line string) (Movie, error) {
	idField, rest, ok := strings.Cut(line, fieldSep)
	if !ok {
		return Movie{}, &FormatError{Line: line, Reason: "no field separator"}
	}

	id, err := strconv.ParseUint(idField, 10, 64)
	if err != nil {
		return Movie{}, &FormatError{Line: line, Reason: fmt.Sprintf("invalid id %q", idField)}
	}
	if id == 0 {
		return Movie{}, &FormatError{Line: line, Reason: "id must be positive"}
	}

	var title, genreField, reason string
	if strings.HasPrefix(rest, quote) {
		title, genreField, reason = splitQuoted(rest)
	} else {
		title, genreField, reason = splitPlain(rest)
	}
	if reason != "" {
		return Movie{}, &FormatError{Line: line, Reason: reason}
	}
	if title == "" {
		return Movie{}, &FormatError{Line: line, Reason: "empty title"}
	}

	genres, reason := splitGenres(genreField)
	if reason != "" {
		return Movie{}, &FormatError{Line: line, Reason: reason}
	}

	return Movie{ID: id, Title: title, Genres: genres}, nil
}

// splitQuoted handles `"title",genres`. rest starts with the opening quote.
func splitQuoted(rest string) (title, genres, reason string) {
	body := rest[len(quote):]
	end := strings.Index(body, quote)
	if end < 0 {
		return "", "", "missing closing quote"
	}
	title = body[:end]
	after := body[end+len(quote):]

	switch {
	case after == "":
		return "", "", "missing genre field"
	case !strings.HasPrefix(after, fieldSep):
		return "", "", "quote character inside quoted title"
	}
	genres = after[len(fieldSep):]
	if strings.Contains(genres, quote) {
		return "", "", "quote character in genre field"
	}
	return title, genres, ""
}

// splitPlain handles `title,genres` where the title has no comma.
func splitPlain(rest string) (title, genres, reason string) {
	if strings.Contains(rest, quote) {
		return "", "", "quote character outside a quoted title"
	}
	fields := strings.Split(rest, fieldSep)
	if len(fields) != 2 {
		return "", "", fmt.Sprintf("expected 3 fields, got %d", len(fields)+1)
	}
	return fields[0], fields[1], ""
}

func splitGenres(field string) ([]string, string) {
	if field == "" {
		return []string{NoGenres}, ""
	}
	genres := strings.Split(field, genreSep)
	for _, g := range genres {
		if g == "" {
			return nil, "empty genre label"
		}
	}
	return genres, ""
}

// Encode renders m as a persisted line. The title is quoted only when it
// contains a comma; an empty genre list is written as the placeholder.
func Encode(m Movie) string {
	title := m.Title
	if strings.Contains(title, fieldSep) {
		title = quote + title + quote
	}

	var sb strings.Builder
	sb.WriteString(strconv.FormatUint(m.ID, 10))
	sb.WriteString(fieldSep)
	sb.WriteString(title)
	sb.WriteString(fieldSep)
	sb.WriteString(strings.Join(normalizeGenres(m.Genres), genreSep))
	return sb.String()
}

// Validate reports values that would not survive an Encode/Decode round trip.
func Validate(m Movie) error {
	if m.ID == 0 {
		return &ValidationError{Field: "id", Value: "0", Reason: "must be positive"}
	}
	if m.Title == "" {
		return &ValidationError{Field: "title", Reason: "must not be empty"}
	}
	if strings.Contains(m.Title, quote) {
		return &ValidationError{Field: "title", Value: m.Title, Reason: "must not contain a quote character"}
	}
	if strings.ContainsAny(m.Title, "\r\n") {
		return &ValidationError{Field: "title", Value: m.Title, Reason: "must be a single line"}
	}
	for _, g := range m.Genres {
		if g == "" {
			return &ValidationError{Field: "genre", Reason: "must not be empty"}
		}
		if strings.ContainsAny(g, fieldSep+genreSep+quote+"\r\n") {
			return &ValidationError{Field: "genre", Value: g, Reason: `must not contain ",", "|", quotes or line breaks`}
		}
	}
	return nil
}
