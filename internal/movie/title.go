package movie

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	// MovieLens titles end with the release year, e.g. "Jumanji (1995)"
	trailingYearPattern = regexp.MustCompile(`\s*\((\d{4})\)\s*$`)
	slugInvalidPattern  = regexp.MustCompile(`[^a-z0-9-]+`)
	slugDashPattern     = regexp.MustCompile(`-+`)
)

// SplitYear separates a trailing "(YYYY)" from the title.
// It returns the title unchanged and year 0 when no year is present.
func SplitYear(title string) (name string, year int) {
	m := trailingYearPattern.FindStringSubmatchIndex(title)
	if m == nil {
		return title, 0
	}
	year, _ = strconv.Atoi(title[m[2]:m[3]])
	return strings.TrimSpace(title[:m[0]]), year
}

// ReleaseYear returns the year embedded in the title, or 0.
func (m Movie) ReleaseYear() int {
	_, year := SplitYear(m.Title)
	return year
}

// Slug creates a URL-friendly slug from the title, keeping the release
// year as a suffix when present.
func (m Movie) Slug() string {
	name, year := SplitYear(m.Title)

	slug := strings.ToLower(name)
	slug = strings.ReplaceAll(slug, " ", "-")
	slug = slugInvalidPattern.ReplaceAllString(slug, "")
	slug = slugDashPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")

	if slug == "" {
		slug = "movie-" + strconv.FormatUint(m.ID, 10)
	}
	if year > 0 {
		slug = slug + "-" + strconv.Itoa(year)
	}
	return slug
}
