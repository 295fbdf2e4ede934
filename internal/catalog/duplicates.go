package catalog

import "github.com/marco/movieCatalog/internal/movie"

// DuplicateSet represents a group of loaded movies whose titles match
// case-insensitively
type DuplicateSet struct {
	Key    string // folded title shared by the group
	Movies []movie.Movie
}

// Duplicates groups loaded movies that share a title, ignoring case.
// Add never creates such groups, but a hand-edited store can contain them.
// Sets are ordered by the position of their first member.
func (c *Catalog) Duplicates() []DuplicateSet {
	groups := make(map[string][]movie.Movie)
	var order []string

	for _, m := range c.movies {
		key := foldTitle(m.Title)
		if _, seen := groups[key]; !seen {
			order = append(order, key)
		}
		groups[key] = append(groups[key], clone(m))
	}

	// Build duplicate sets (only groups with more than 1 movie)
	var sets []DuplicateSet
	for _, key := range order {
		if len(groups[key]) > 1 {
			sets = append(sets, DuplicateSet{Key: key, Movies: groups[key]})
		}
	}
	return sets
}
