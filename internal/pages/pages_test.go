package pages

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/vjelic/blogforge/internal/blog"
	"github.com/vjelic/blogforge/internal/fragments"
	"github.com/vjelic/blogforge/internal/images"
	"github.com/vjelic/blogforge/internal/templates"
)

func testGenerator(t *testing.T, perPage int) *Generator {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		fragments.TplAuthorAttribution: ``,
		fragments.TplSocialShare:       ``,
		fragments.TplImageBanner:       ``,
		fragments.TplGridItem:          `<article>{title}</article>`,
		fragments.TplPagination:        `<nav data-prev="{prev}" data-next="{next}">{page}/{total}</nav>`,
		fragments.TplIndex:             "<h1>{title}</h1>\n{grid_items}\n{pagination}",
	}
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	cache, err := templates.NewCache(dir, fragments.ResourceNames())
	if err != nil {
		t.Fatal(err)
	}
	return NewGenerator(fragments.NewRenderer(cache), perPage)
}

func titled(titles ...string) []*blog.Entry {
	d := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	out := make([]*blog.Entry, 0, len(titles))
	for _, title := range titles {
		out = append(out, &blog.Entry{Title: title, Date: &d, Category: "Software Tools"})
	}
	return out
}

func TestPaginate(t *testing.T) {
	entries := titled("a", "b", "c", "d", "e")

	chunks := paginate(entries, 2)
	if len(chunks) != 3 {
		t.Fatalf("got %d chunks, want 3", len(chunks))
	}
	if len(chunks[0]) != 2 || len(chunks[1]) != 2 || len(chunks[2]) != 1 {
		t.Errorf("chunk sizes = %d,%d,%d", len(chunks[0]), len(chunks[1]), len(chunks[2]))
	}

	if chunks := paginate(nil, 2); chunks != nil {
		t.Errorf("paginate(nil) = %v", chunks)
	}
}

func TestPageFileName(t *testing.T) {
	if got := PageFileName("Software Tools", 1); got != "software-tools.md" {
		t.Errorf("page 1 = %q", got)
	}
	if got := PageFileName("Software Tools", 3); got != "software-tools-page3.md" {
		t.Errorf("page 3 = %q", got)
	}
}

func TestEntryImage_UsesResolvedThumbnailPath(t *testing.T) {
	// Thumbnails can resolve beside the post, not just in the shared
	// directory; the grid must reference wherever the file actually lives.
	e := &blog.Entry{ThumbnailPath: "./gemm/pic.jpg"}
	if got := entryImage(e); got != "./gemm/pic.jpg" {
		t.Errorf("entryImage = %q, want resolved path", got)
	}

	unresolved := &blog.Entry{}
	if got := entryImage(unresolved); got != "./images/"+images.FallbackImage {
		t.Errorf("entryImage = %q, want placeholder", got)
	}
}

func TestWriteCategoryPages(t *testing.T) {
	g := testGenerator(t, 2)
	out := t.TempDir()

	groups := map[string][]*blog.Entry{
		"Software Tools": titled("One", "Two", "Three"),
		"Applications":   nil,
	}

	err := g.WriteCategoryPages(groups, []string{"Software Tools", "Applications"}, out)
	if err != nil {
		t.Fatalf("WriteCategoryPages: %v", err)
	}

	page1, err := os.ReadFile(filepath.Join(out, "software-tools.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page1), "<article>One</article>") ||
		!strings.Contains(string(page1), "<article>Two</article>") {
		t.Errorf("page 1 missing grid items:\n%s", page1)
	}
	if strings.Contains(string(page1), "Three") {
		t.Errorf("page 1 leaked a page-2 entry")
	}
	if !strings.Contains(string(page1), `data-next="software-tools-page2.md"`) {
		t.Errorf("page 1 missing next link:\n%s", page1)
	}
	if !strings.Contains(string(page1), `data-prev=""`) {
		t.Errorf("page 1 should have an empty prev link:\n%s", page1)
	}

	page2, err := os.ReadFile(filepath.Join(out, "software-tools-page2.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(page2), "<article>Three</article>") {
		t.Errorf("page 2 missing entry:\n%s", page2)
	}
	if !strings.Contains(string(page2), `data-prev="software-tools.md"`) {
		t.Errorf("page 2 missing prev link:\n%s", page2)
	}

	// Empty category still gets a listing page.
	empty, err := os.ReadFile(filepath.Join(out, "applications.md"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(empty), "<h1>Applications</h1>") {
		t.Errorf("empty category page malformed:\n%s", empty)
	}
}
