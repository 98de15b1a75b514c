// Package build drives the full content-generation pipeline and exposes the
// integration surface consumed by the host documentation toolchain.
//
// A build is one-shot: discover content, enrich each entry (word count,
// thumbnail resolution, image optimization), rewrite the content files with
// generated fragments, and emit the category listing pages. Per-entry
// failures are logged and skipped; only missing templates and an empty
// content tree abort the phase.
package build

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/vjelic/blogforge/internal/blog"
	"github.com/vjelic/blogforge/internal/config"
	"github.com/vjelic/blogforge/internal/discover"
	"github.com/vjelic/blogforge/internal/fragments"
	"github.com/vjelic/blogforge/internal/frontmatter"
	"github.com/vjelic/blogforge/internal/images"
	"github.com/vjelic/blogforge/internal/pages"
	"github.com/vjelic/blogforge/internal/registry"
	"github.com/vjelic/blogforge/internal/templates"
)

// maxWorkers caps the processing pool regardless of core count.
const maxWorkers = 8

// Pipeline owns the state for one build.
type Pipeline struct {
	cfg       *config.Config
	renderer  *fragments.Renderer
	reg       *registry.Registry
	optimizer *images.Optimizer
}

// New loads the template cache and prepares a pipeline. A missing template
// fails construction; nothing useful can be generated without them.
func New(cfg *config.Config) (*Pipeline, error) {
	cache, err := templates.NewCache(cfg.Content.TemplatesDir, fragments.ResourceNames())
	if err != nil {
		return nil, fmt.Errorf("loading templates: %w", err)
	}

	return &Pipeline{
		cfg:      cfg,
		renderer: fragments.NewRenderer(cache),
		reg:      registry.New(),
		optimizer: &images.Optimizer{
			MaxWidth:    cfg.Images.MaxWidth,
			JPEGQuality: cfg.Images.JPEGQuality,
		},
	}, nil
}

// Run executes the whole phase: discovery, per-entry processing, and
// listing-page generation.
func Run(ctx context.Context, cfg *config.Config) error {
	p, err := New(cfg)
	if err != nil {
		return err
	}
	return p.Run(ctx)
}

// Run executes the pipeline against the configured content root.
func (p *Pipeline) Run(ctx context.Context) error {
	root := p.cfg.Content.Root

	res, err := discover.ScanCached(ctx, root, p.cfg.Content.CachePath, p.reg)
	if err != nil {
		return fmt.Errorf("discovery: %w", err)
	}
	slog.Info("discovery complete",
		"found", res.Found,
		"added", res.Added,
		"skipped", res.Skipped,
		"duplicates", res.Duplicates,
	)

	entries := p.reg.SortByDate(true)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers())
	for _, e := range entries {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := p.processEntry(e); err != nil {
				// Entry-local failure; the rest of the batch goes on.
				slog.Warn("processing blog entry failed", "path", e.Path, "error", err)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return fmt.Errorf("processing entries: %w", err)
	}

	groups := p.reg.GroupByCategory(p.cfg.Content.Categories)
	if n := p.reg.SkippedCategories(); n > 0 {
		slog.Warn("entries excluded from category listings", "count", n)
	}

	gen := pages.NewGenerator(p.renderer, p.cfg.Content.PostsPerPage)
	if err := gen.WriteCategoryPages(groups, p.cfg.Content.Categories, p.cfg.Build.OutputDir); err != nil {
		return fmt.Errorf("writing listing pages: %w", err)
	}

	slog.Info("build complete", "entries", len(entries))
	return nil
}

// processEntry enriches one entry and rewrites its content file in place:
// word count, thumbnail resolution, image optimization, and fragment
// injection.
func (p *Pipeline) processEntry(e *blog.Entry) error {
	content, err := os.ReadFile(e.Path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", e.Path, err)
	}
	_, body, had, style := frontmatter.Split(content)

	e.WordCount = blog.WordCount(body)
	e.ReadingTime = blog.ReadingTime(e.WordCount)

	imgPath, fallback := images.Resolve(e, p.cfg.Content.Root)
	if !fallback {
		p.optimizeImage(imgPath)
	}

	attribution, err := p.renderer.AuthorAttribution(e)
	if err != nil {
		return err
	}
	banner, err := p.renderer.ImageBanner(e, imgPath)
	if err != nil {
		return err
	}
	share, err := p.renderer.SocialShare(e, p.cfg.Content.BaseURL)
	if err != nil {
		return err
	}

	newBody := injectFragments(body, attribution+"\n"+banner, share)

	var out []byte
	if had {
		// Record the resolved thumbnail path so downstream rendering does
		// not repeat the search.
		e.Meta["thumbnail"] = imgPath
		raw, err := frontmatter.Serialize(e.Meta, style)
		if err != nil {
			return fmt.Errorf("serializing front matter of %s: %w", e.Path, err)
		}
		out = frontmatter.Join(raw, newBody, true, style)
	} else {
		out = newBody
	}

	if err := os.WriteFile(e.Path, out, 0o644); err != nil {
		return fmt.Errorf("rewriting %s: %w", e.Path, err)
	}
	return nil
}

// optimizeImage shrinks the resolved thumbnail in place and, when enabled,
// writes a WebP copy beside it. Failures are warnings: the original file is
// restored untouched and the build goes on.
func (p *Pipeline) optimizeImage(imgPath string) {
	abs := p.contentPath(imgPath)

	if p.cfg.Images.Optimize {
		if err := p.optimizer.Optimize(abs); err != nil {
			slog.Warn("image optimization failed", "image", abs, "error", err)
		}
	}
	if p.cfg.Images.WebP {
		if _, err := p.optimizer.ConvertWebP(abs); err != nil {
			slog.Warn("webp conversion failed", "image", abs, "error", err)
		}
	}
}

// contentPath maps a root-relative "./..." path back to a filesystem path.
func (p *Pipeline) contentPath(rel string) string {
	if trimmed, ok := strings.CutPrefix(rel, "./"); ok {
		return filepath.Join(p.cfg.Content.Root, filepath.FromSlash(trimmed))
	}
	return filepath.FromSlash(rel)
}

func (p *Pipeline) workers() int {
	if p.cfg.Build.Workers > 0 {
		return p.cfg.Build.Workers
	}
	return min(runtime.GOMAXPROCS(0), maxWorkers)
}
