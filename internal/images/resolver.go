// Package images resolves blog thumbnails against the content tree and
// rewrites raster images into smaller web-ready files.
package images

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/vjelic/blogforge/internal/blog"
)

// FallbackImage is the shared placeholder used when a declared thumbnail
// cannot be found anywhere in the tree.
const FallbackImage = "generic.jpg"

// globalImagesDir is the name of the shared images directory under the
// content root.
const globalImagesDir = "images"

// Resolve locates an entry's declared thumbnail on disk.
//
// Candidate locations are probed in a fixed order: the declared path if
// absolute, beside the content file, an images/ directory beside it, one and
// two levels up, the shared <root>/images directory, and the same with a
// lowercased filename. The first existing file wins. If nothing matches, a
// case-insensitive substring scan of the shared directory is tried before
// giving up and falling back to the placeholder.
//
// The resolved filename is appended to the entry's ResolvedImages list and
// the full path recorded as its ThumbnailPath. The returned path is relative
// to root, forward-slashed, and prefixed with "./"; fallback reports whether
// the placeholder had to be used.
func Resolve(e *blog.Entry, root string) (resolved string, fallback bool) {
	ref := strings.TrimSpace(e.Thumbnail)
	globalDir := filepath.Join(root, globalImagesDir)

	if ref != "" {
		// A reference may encode a subdirectory; only the filename takes
		// part in the search.
		name := filepath.Base(filepath.FromSlash(ref))
		entryDir := filepath.Dir(e.Path)

		var candidates []string
		if filepath.IsAbs(filepath.FromSlash(ref)) {
			candidates = append(candidates, filepath.FromSlash(ref))
		}
		candidates = append(candidates,
			filepath.Join(entryDir, name),
			filepath.Join(entryDir, globalImagesDir, name),
			filepath.Join(entryDir, "..", globalImagesDir, name),
			filepath.Join(entryDir, "..", "..", globalImagesDir, name),
			filepath.Join(globalDir, name),
			filepath.Join(globalDir, strings.ToLower(name)),
		)

		for _, c := range candidates {
			if fileExists(c) {
				return record(e, filepath.Base(c), relToRoot(root, c)), false
			}
		}

		if match := substringMatch(globalDir, name); match != "" {
			slog.Debug("thumbnail matched by substring scan",
				"path", e.Path, "declared", ref, "matched", match)
			return record(e, match, relToRoot(root, filepath.Join(globalDir, match))), false
		}
	}

	slog.Warn("thumbnail not found, using placeholder", "path", e.Path, "declared", ref)
	return record(e, FallbackImage, "./"+globalImagesDir+"/"+FallbackImage), true
}

// record notes the resolution outcome on the entry and returns the path.
func record(e *blog.Entry, name, path string) string {
	e.ResolvedImages = append(e.ResolvedImages, name)
	e.ThumbnailPath = path
	return path
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// substringMatch scans dir for the first file whose name contains the
// reference's base name, compared case-insensitively. Returns "" when dir is
// unreadable or nothing matches.
func substringMatch(dir, name string) string {
	needle := strings.ToLower(strings.TrimSuffix(name, filepath.Ext(name)))
	if needle == "" {
		return ""
	}

	dirents, err := os.ReadDir(dir)
	if err != nil {
		return ""
	}
	for _, d := range dirents {
		if d.IsDir() {
			continue
		}
		if strings.Contains(strings.ToLower(d.Name()), needle) {
			return d.Name()
		}
	}
	return ""
}

// relToRoot expresses path relative to root with forward slashes and a "./"
// prefix. Paths outside root are returned forward-slashed as-is.
func relToRoot(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return "./" + filepath.ToSlash(rel)
}
