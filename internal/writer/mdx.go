package writer

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/marco/movieCatalog/internal/movie"
)

// MDXWriter handles writing catalog movies to MDX pages
type MDXWriter struct {
	mdxDir string
}

// NewMDXWriter creates a new MDX writer
func NewMDXWriter(mdxDir string) *MDXWriter {
	return &MDXWriter{mdxDir: mdxDir}
}

// WriteAll writes one page per movie using up to workers goroutines and
// returns the number written. Slugs are claimed in catalog order, so a movie
// whose slug was already used by an earlier movie is skipped.
func (w *MDXWriter) WriteAll(ctx context.Context, movies []movie.Movie, workers int) (int, error) {
	// Ensure output directory exists
	if err := os.MkdirAll(w.mdxDir, 0755); err != nil {
		return 0, fmt.Errorf("failed to create MDX directory: %w", err)
	}

	claimed := make(map[string]bool, len(movies))
	pages := make([]Page, 0, len(movies))
	for _, m := range movies {
		page := NewPage(m)
		if claimed[page.Slug] {
			slog.Debug("slug already claimed", "id", m.ID, "slug", page.Slug)
			continue
		}
		claimed[page.Slug] = true
		pages = append(pages, page)
	}

	written := 0
	var errs []error
	for _, r := range WritePages(ctx, pages, workers, w.writePage) {
		if r.Err != nil {
			errs = append(errs, fmt.Errorf("page %s: %w", r.Page.Slug, r.Err))
			continue
		}
		written++
	}
	return written, errors.Join(errs...)
}

func (w *MDXWriter) writePage(_ context.Context, page Page) (string, error) {
	content, err := GenerateMDX(page)
	if err != nil {
		return "", fmt.Errorf("failed to generate MDX: %w", err)
	}

	path := w.PagePath(page.Slug)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return "", fmt.Errorf("failed to write MDX file: %w", err)
	}
	return path, nil
}

// PagePath returns the file system path of the page for slug
func (w *MDXWriter) PagePath(slug string) string {
	return filepath.Join(w.mdxDir, slug+".mdx")
}

// GenerateMDX creates MDX content with YAML frontmatter
func GenerateMDX(page Page) (string, error) {
	var sb strings.Builder

	sb.WriteString("---\n")

	// Titles such as "Star Wars: Episode IV" would otherwise be emitted as
	// bare scalars that some frontmatter parsers read as mappings.
	var docNode yaml.Node
	if err := docNode.Encode(page); err != nil {
		return "", fmt.Errorf("failed to marshal movie to YAML: %w", err)
	}
	forceQuotedFields(&docNode, "title")
	yamlData, err := yaml.Marshal(&docNode)
	if err != nil {
		return "", fmt.Errorf("failed to marshal movie to YAML: %w", err)
	}

	sb.Write(yamlData)
	sb.WriteString("---\n\n")

	name, year := movie.SplitYear(page.Title)
	sb.WriteString(fmt.Sprintf("# %s", name))
	if year > 0 {
		sb.WriteString(fmt.Sprintf(" (%d)", year))
	}
	sb.WriteString("\n\n")

	sb.WriteString("## Details\n\n")
	sb.WriteString(fmt.Sprintf("- **Catalog ID**: %d\n", page.ID))
	if len(page.Genres) > 0 {
		sb.WriteString(fmt.Sprintf("- **Genres**: %s\n", strings.Join(page.Genres, ", ")))
	}

	return sb.String(), nil
}

// forceQuotedFields sets DoubleQuotedStyle on the named scalar fields of a
// mapping node. Node.Encode yields the mapping itself, while a parsed
// document wraps it in a DocumentNode; both are accepted.
func forceQuotedFields(node *yaml.Node, keys ...string) {
	mapping := node
	if mapping.Kind == yaml.DocumentNode {
		if len(mapping.Content) == 0 {
			return
		}
		mapping = mapping.Content[0]
	}
	if mapping.Kind != yaml.MappingNode {
		return
	}
	keySet := make(map[string]bool, len(keys))
	for _, k := range keys {
		keySet[k] = true
	}
	for i := 0; i+1 < len(mapping.Content); i += 2 {
		if keySet[mapping.Content[i].Value] {
			mapping.Content[i+1].Style = yaml.DoubleQuotedStyle
		}
	}
}
