package discover

import (
	"os"
	"strings"
)

// The discovery cache is a plain newline-delimited list of previously
// discovered content paths. It carries no timestamps or hashes: the cache is
// trusted only while every listed file still exists, and discarded wholesale
// otherwise.

// LoadCache reads a cached path list. ok is false when the cache is missing,
// empty, or stale.
func LoadCache(path string) (paths []string, ok bool) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		if _, err := os.Stat(line); err != nil {
			return nil, false
		}
		paths = append(paths, line)
	}
	if len(paths) == 0 {
		return nil, false
	}
	return paths, true
}

// SaveCache writes the path list for the next build.
func SaveCache(path string, paths []string) error {
	return os.WriteFile(path, []byte(strings.Join(paths, "\n")+"\n"), 0o644)
}
