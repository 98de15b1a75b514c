// Package templates loads HTML and CSS fragments once per build and renders
// them with named-placeholder substitution.
package templates

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/valyala/fasttemplate"
)

// ResourceError reports a template or stylesheet that could not be loaded.
// Missing resources abort the whole build phase: output rendered without
// them would be meaningless.
type ResourceError struct {
	Name string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("loading resource %s: %v", e.Name, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// Cache holds resource text memoized by name. Everything is read at
// construction and immutable for the life of the process; there is no
// invalidation.
type Cache struct {
	resources map[string]string
}

// NewCache reads every named resource from dir up front. Any unreadable
// resource fails construction with a *ResourceError.
func NewCache(dir string, names []string) (*Cache, error) {
	c := &Cache{resources: make(map[string]string, len(names))}
	for _, name := range names {
		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			return nil, &ResourceError{Name: name, Err: err}
		}
		c.resources[name] = string(data)
	}
	return c, nil
}

// Get returns the cached text of a resource.
func (c *Cache) Get(name string) (string, error) {
	text, ok := c.resources[name]
	if !ok {
		return "", &ResourceError{Name: name, Err: os.ErrNotExist}
	}
	return text, nil
}

// Render substitutes {name} placeholders in tpl from vars.
//
// Placeholders without a matching key are emitted verbatim, braces and all.
// Downstream tooling depends on unmatched placeholders surviving the pass,
// so they are never silently dropped.
func Render(tpl string, vars map[string]string) string {
	return fasttemplate.ExecuteFuncString(tpl, "{", "}",
		func(w io.Writer, tag string) (int, error) {
			if v, ok := vars[tag]; ok {
				return w.Write([]byte(v))
			}
			return fmt.Fprintf(w, "{%s}", tag)
		})
}

// RenderResource renders a cached resource with the given substitutions.
func (c *Cache) RenderResource(name string, vars map[string]string) (string, error) {
	tpl, err := c.Get(name)
	if err != nil {
		return "", err
	}
	return Render(tpl, vars), nil
}
