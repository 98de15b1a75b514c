// Package pages generates the category listing files with pagination.
package pages

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vjelic/blogforge/internal/blog"
	"github.com/vjelic/blogforge/internal/fragments"
	"github.com/vjelic/blogforge/internal/images"
)

// Generator writes paginated listing pages from category groupings.
type Generator struct {
	renderer *fragments.Renderer

	// PerPage is the number of grid items on one listing page.
	PerPage int
}

// NewGenerator returns a Generator writing perPage entries per listing page.
func NewGenerator(r *fragments.Renderer, perPage int) *Generator {
	if perPage <= 0 {
		perPage = 12
	}
	return &Generator{renderer: r, PerPage: perPage}
}

// PageFileName returns the listing file name for a category page. The first
// page is `<slug>.md`; later pages carry a page suffix.
func PageFileName(category string, page int) string {
	slug := fragments.Slugify(category)
	if page <= 1 {
		return slug + ".md"
	}
	return fmt.Sprintf("%s-page%d.md", slug, page)
}

// WriteCategoryPages writes the listing files for every category into
// outDir. Categories are emitted in the given order; an empty category still
// gets a single (empty) listing page. Each grid item uses the entry's
// resolved thumbnail path.
func (g *Generator) WriteCategoryPages(groups map[string][]*blog.Entry, categories []string, outDir string) error {
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outDir, err)
	}

	for _, category := range categories {
		if err := g.writeCategory(category, groups[category], outDir); err != nil {
			return err
		}
	}
	return nil
}

func (g *Generator) writeCategory(category string, entries []*blog.Entry, outDir string) error {
	chunks := paginate(entries, g.PerPage)
	if len(chunks) == 0 {
		chunks = [][]*blog.Entry{nil}
	}
	total := len(chunks)

	for i, chunk := range chunks {
		page := i + 1

		var grid strings.Builder
		for _, e := range chunk {
			item, err := g.renderer.GridItem(e, entryImage(e))
			if err != nil {
				return err
			}
			grid.WriteString(item)
			grid.WriteString("\n")
		}

		prev, next := "", ""
		if page > 1 {
			prev = PageFileName(category, page-1)
		}
		if page < total {
			next = PageFileName(category, page+1)
		}
		nav, err := g.renderer.Pagination(prev, next, page, total)
		if err != nil {
			return err
		}

		content, err := g.renderer.Index(category, grid.String(), nav)
		if err != nil {
			return err
		}

		name := PageFileName(category, page)
		if err := os.WriteFile(filepath.Join(outDir, name), []byte(content), 0o644); err != nil {
			return fmt.Errorf("writing listing %s: %w", name, err)
		}
		slog.Debug("wrote listing page", "category", category, "page", page, "entries", len(chunk))
	}
	return nil
}

// entryImage picks the grid image for an entry: the path its thumbnail
// resolved to, or the shared placeholder if resolution never ran.
func entryImage(e *blog.Entry) string {
	if e.ThumbnailPath != "" {
		return e.ThumbnailPath
	}
	return "./images/" + images.FallbackImage
}

// paginate slices entries into chunks of at most perPage.
func paginate(entries []*blog.Entry, perPage int) [][]*blog.Entry {
	var chunks [][]*blog.Entry
	for start := 0; start < len(entries); start += perPage {
		end := start + perPage
		if end > len(entries) {
			end = len(entries)
		}
		chunks = append(chunks, entries[start:end])
	}
	return chunks
}
