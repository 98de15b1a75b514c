// Package blog defines the blog entry model built from one content file's
// front matter.
package blog

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// DefaultCategory is assigned to entries whose front matter declares no
// category.
const DefaultCategory = "Uncategorized"

// DefaultTitle is the last-resort registry key for entries with no title and
// no usable directory name.
const DefaultTitle = "Untitled"

// Entry is one discovered blog post.
//
// The typed fields are pulled out of the front matter for the keys the
// pipeline understands; Meta keeps every key as parsed so unknown metadata
// stays queryable.
type Entry struct {
	Path string

	Title     string
	Date      *time.Time
	Author    string
	Category  string
	Tags      string
	Thumbnail string

	Meta map[string]any

	// Set after discovery by the processing phase.
	WordCount      int
	ReadingTime    int
	ResolvedImages []string

	// ThumbnailPath is the root-relative path the thumbnail resolved to,
	// usable as-is in generated pages. Empty until resolution runs.
	ThumbnailPath string
}

// NewEntry builds an Entry from a file path and its front-matter mapping.
//
// An unparseable date is reported and left nil; the caller decides whether
// such entries are publishable.
func NewEntry(path string, meta map[string]any) *Entry {
	e := &Entry{
		Path:     path,
		Meta:     meta,
		Category: DefaultCategory,
	}

	e.Title = e.MetaString("title")
	e.Author = e.MetaString("author")
	e.Tags = e.MetaString("tags")
	e.Thumbnail = e.MetaString("thumbnail")
	if v := e.MetaString("category"); v != "" {
		e.Category = v
	}

	if v := e.MetaString("date"); v != "" {
		if d, err := ParseDate(v); err == nil {
			e.Date = &d
		} else {
			slog.Warn("unparseable publish date", "path", path, "date", v)
		}
	}

	return e
}

// MetaString returns the front-matter value for key rendered as a trimmed
// string, or "" if the key is absent.
func (e *Entry) MetaString(key string) string {
	switch v := e.Meta[key].(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case time.Time:
		// yaml.v3 resolves timestamp-shaped scalars to time.Time.
		return v.Format("2-1-2006")
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// Authors splits the comma-separated author field on demand.
func (e *Entry) Authors() []string {
	return splitCommaList(e.Author)
}

// TagList splits the comma-separated tags field on demand.
func (e *Entry) TagList() []string {
	return splitCommaList(e.Tags)
}

func splitCommaList(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
