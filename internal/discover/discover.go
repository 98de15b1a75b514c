// Package discover walks the content tree and populates the blog registry.
//
// Per-file parsing runs on a bounded worker pool; a single malformed file is
// logged and skipped, never failing the batch. The only fatal outcomes are a
// broken walk and an entirely empty content tree.
package discover

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/vjelic/blogforge/internal/blog"
	"github.com/vjelic/blogforge/internal/frontmatter"
	"github.com/vjelic/blogforge/internal/registry"
)

// ErrNoContent signals that no content files were found under the root,
// which almost always means a misconfigured content directory.
var ErrNoContent = errors.New("no content files found")

const (
	// contentFileName is matched case-insensitively against file names.
	contentFileName = "readme.md"

	// maxWorkers caps the parsing pool regardless of core count.
	maxWorkers = 8
)

// Result summarizes one discovery run.
type Result struct {
	Found      int // content files matched on disk
	Added      int // entries inserted into the registry
	Skipped    int // parse failures plus entries missing title or date
	Duplicates int // entries rejected for a duplicate title
}

// Scan walks root for content files, parses each concurrently, and fills reg
// with every entry that has a usable title and date.
func Scan(ctx context.Context, root string, reg *registry.Registry) (*Result, error) {
	paths, err := findContentFiles(root)
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	return parseAll(ctx, paths, reg)
}

// ScanCached behaves like Scan but consults a cached path list first. A
// valid cache skips the tree walk entirely; after a full walk the cache is
// refreshed. An empty cachePath disables caching.
func ScanCached(ctx context.Context, root, cachePath string, reg *registry.Registry) (*Result, error) {
	if cachePath != "" {
		if paths, ok := LoadCache(cachePath); ok {
			slog.Info("using discovery cache", "path", cachePath, "files", len(paths))
			return parseAll(ctx, paths, reg)
		}
	}

	paths, err := findContentFiles(root)
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", root, err)
	}
	if cachePath != "" && len(paths) > 0 {
		if err := SaveCache(cachePath, paths); err != nil {
			slog.Warn("could not write discovery cache", "path", cachePath, "error", err)
		}
	}
	return parseAll(ctx, paths, reg)
}

func parseAll(ctx context.Context, paths []string, reg *registry.Registry) (*Result, error) {
	if len(paths) == 0 {
		return nil, ErrNoContent
	}

	var (
		res Result
		mu  sync.Mutex
	)
	res.Found = len(paths)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workerCount())

	for _, p := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			entry, err := parseFile(p)
			if err != nil {
				// One bad file must not sink the batch.
				slog.Warn("skipping content file", "path", p, "error", err)
				mu.Lock()
				res.Skipped++
				mu.Unlock()
				return nil
			}

			if entry.Title == "" || entry.Date == nil {
				// Not publishable; dropped without noise.
				mu.Lock()
				res.Skipped++
				mu.Unlock()
				return nil
			}

			if err := reg.Add(entry); err != nil {
				var dup *registry.DuplicateTitleError
				if errors.As(err, &dup) {
					slog.Warn("duplicate blog title", "path", p, "title", dup.Title)
					mu.Lock()
					res.Duplicates++
					mu.Unlock()
					return nil
				}
				return err
			}

			mu.Lock()
			res.Added++
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("parsing content files: %w", err)
	}
	return &res, nil
}

func parseFile(path string) (*blog.Entry, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	meta, err := frontmatter.Parse(content, path)
	if err != nil {
		return nil, err
	}
	return blog.NewEntry(path, meta), nil
}

// findContentFiles returns every content file under root in sorted order,
// skipping hidden directories.
func findContentFiles(root string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return nil
		}
		if strings.EqualFold(d.Name(), contentFileName) {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}

func workerCount() int {
	return min(runtime.GOMAXPROCS(0), maxWorkers)
}
