// Package registry holds the in-memory, title-keyed set of blog entries for
// one build.
//
// Discovery tasks insert concurrently; everything after discovery reads the
// registry without mutating it.
package registry

import (
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/vjelic/blogforge/internal/blog"
)

// DuplicateTitleError reports an insert whose title key is already taken.
// The entry that was there first stays.
type DuplicateTitleError struct {
	Title string
}

func (e *DuplicateTitleError) Error() string {
	return fmt.Sprintf("duplicate blog title %q", e.Title)
}

// Registry is the keyed collection of all discovered blog entries.
type Registry struct {
	mu      sync.Mutex
	entries []*blog.Entry
	byTitle map[string]*blog.Entry

	groups  map[string][]*blog.Entry
	skipped int
}

// New returns an empty registry.
func New() *Registry {
	return &Registry{byTitle: make(map[string]*blog.Entry)}
}

// key derives the registry key for an entry: its title, else a title derived
// from the content file's directory name, else a fixed default.
func key(e *blog.Entry) string {
	if e.Title != "" {
		return e.Title
	}
	dir := filepath.Base(filepath.Dir(e.Path))
	if dir != "" && dir != "." && dir != string(filepath.Separator) {
		return dir
	}
	return blog.DefaultTitle
}

// Add inserts an entry keyed by title. Inserting a second entry with the
// same key fails with a *DuplicateTitleError and leaves the registry
// unchanged. Safe for concurrent use.
func (r *Registry) Add(e *blog.Entry) error {
	k := key(e)

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.byTitle[k]; exists {
		return &DuplicateTitleError{Title: k}
	}
	r.byTitle[k] = e
	r.entries = append(r.entries, e)
	return nil
}

// Len reports the number of entries held.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

// Entries returns all entries in insertion order.
func (r *Registry) Entries() []*blog.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*blog.Entry, len(r.entries))
	copy(out, r.entries)
	return out
}

// SortByDate returns all entries ordered by publish date, newest first when
// descending. Entries without a date sort as the oldest possible. The sort
// is stable, so same-date entries keep insertion order.
func (r *Registry) SortByDate(descending bool) []*blog.Entry {
	out := r.Entries()
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := dateOf(out[i]), dateOf(out[j])
		if descending {
			return di.After(dj)
		}
		return di.Before(dj)
	})
	return out
}

func dateOf(e *blog.Entry) time.Time {
	if e.Date == nil {
		return time.Time{}
	}
	return *e.Date
}

// GroupByCategory rebuilds the category buckets from scratch. One bucket is
// created per provided category name, and entries are placed by exact
// category match. Entries whose category is not in the list end up in no
// bucket; how many were dropped is reported by SkippedCategories.
func (r *Registry) GroupByCategory(categories []string) map[string][]*blog.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.groups = make(map[string][]*blog.Entry, len(categories))
	for _, c := range categories {
		r.groups[c] = []*blog.Entry{}
	}
	r.skipped = 0

	for _, e := range r.entries {
		bucket, ok := r.groups[e.Category]
		if !ok {
			r.skipped++
			continue
		}
		r.groups[e.Category] = append(bucket, e)
	}
	return r.groups
}

// SkippedCategories reports how many entries the most recent grouping
// dropped for having an unrecognized category.
func (r *Registry) SkippedCategories() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.skipped
}

// GetByTitle looks an entry up by title in three tiers: exact match, then
// case-insensitive, then a normalized comparison that collapses whitespace
// and strips common punctuation. Returns nil when no tier matches.
func (r *Registry) GetByTitle(title string) *blog.Entry {
	r.mu.Lock()
	defer r.mu.Unlock()

	if e, ok := r.byTitle[title]; ok {
		return e
	}
	for k, e := range r.byTitle {
		if strings.EqualFold(k, title) {
			return e
		}
	}
	want := normalizeTitle(title)
	for k, e := range r.byTitle {
		if normalizeTitle(k) == want {
			return e
		}
	}
	return nil
}

// normalizeTitle lowercases, drops punctuation, and collapses whitespace
// runs to single spaces.
func normalizeTitle(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch {
		case unicode.IsPunct(r):
			// dropped
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		default:
			b.WriteRune(unicode.ToLower(r))
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
