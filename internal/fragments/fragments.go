// Package fragments renders the generated HTML snippets injected into blog
// pages and listing pages.
package fragments

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/vjelic/blogforge/internal/blog"
	"github.com/vjelic/blogforge/internal/templates"
)

// Template resource names the renderer expects in the templates directory.
const (
	TplAuthorAttribution = "author_attribution.html"
	TplSocialShare       = "social_share.html"
	TplImageBanner       = "image_banner.html"
	TplGridItem          = "grid_item.html"
	TplPagination        = "pagination.html"
	TplIndex             = "index.html"
)

// ResourceNames lists every template the renderer needs. Used to build the
// template cache so a missing file fails the phase up front.
func ResourceNames() []string {
	return []string{
		TplAuthorAttribution,
		TplSocialShare,
		TplImageBanner,
		TplGridItem,
		TplPagination,
		TplIndex,
	}
}

// Renderer produces HTML fragments for blog entries from cached templates.
type Renderer struct {
	cache *templates.Cache
}

// NewRenderer wraps a template cache.
func NewRenderer(c *templates.Cache) *Renderer {
	return &Renderer{cache: c}
}

// AuthorAttribution renders the byline block for one entry: linked author
// names, publish date, category, tags, and reading time.
func (r *Renderer) AuthorAttribution(e *blog.Entry) (string, error) {
	date := ""
	if e.Date != nil {
		date = e.Date.Format("2 Jan 2006")
	}
	return r.cache.RenderResource(TplAuthorAttribution, map[string]string{
		"authors":   authorLinks(e.Authors()),
		"date":      date,
		"category":  e.Category,
		"tags":      strings.Join(e.TagList(), ", "),
		"read_time": fmt.Sprintf("%d min read", e.ReadingTime),
	})
}

// SocialShare renders the share-button block for an entry published under
// baseURL.
func (r *Renderer) SocialShare(e *blog.Entry, baseURL string) (string, error) {
	postURL := strings.TrimSuffix(baseURL, "/") + "/" + Slugify(e.Title) + ".html"
	return r.cache.RenderResource(TplSocialShare, map[string]string{
		"url":   postURL,
		"title": url.QueryEscape(e.Title),
	})
}

// ImageBanner renders the banner block using the entry's resolved thumbnail
// path.
func (r *Renderer) ImageBanner(e *blog.Entry, imagePath string) (string, error) {
	return r.cache.RenderResource(TplImageBanner, map[string]string{
		"image": imagePath,
		"alt":   e.Title,
	})
}

// GridItem renders one listing-page card for an entry.
func (r *Renderer) GridItem(e *blog.Entry, imagePath string) (string, error) {
	date := ""
	if e.Date != nil {
		date = e.Date.Format("2 Jan 2006")
	}
	return r.cache.RenderResource(TplGridItem, map[string]string{
		"title":     e.Title,
		"date":      date,
		"category":  e.Category,
		"image":     imagePath,
		"authors":   strings.Join(e.Authors(), ", "),
		"href":      Slugify(e.Title) + ".html",
		"read_time": fmt.Sprintf("%d min read", e.ReadingTime),
	})
}

// Pagination renders the prev/next navigation block. Empty prev or next
// hrefs render as empty strings, leaving the slot blank.
func (r *Renderer) Pagination(prev, next string, page, total int) (string, error) {
	return r.cache.RenderResource(TplPagination, map[string]string{
		"prev":  prev,
		"next":  next,
		"page":  fmt.Sprint(page),
		"total": fmt.Sprint(total),
	})
}

// Index renders a full listing page from its pre-rendered parts.
func (r *Renderer) Index(title, gridItems, pagination string) (string, error) {
	return r.cache.RenderResource(TplIndex, map[string]string{
		"title":      title,
		"grid_items": gridItems,
		"pagination": pagination,
	})
}

// authorLinks renders each author as a link to their bio page.
func authorLinks(authors []string) string {
	links := make([]string, 0, len(authors))
	for _, a := range authors {
		links = append(links, fmt.Sprintf(`<a href="../authors/%s.html">%s</a>`, Slugify(a), a))
	}
	return strings.Join(links, ", ")
}

// Slugify lowercases and dash-joins a title or name for use in filenames and
// hrefs.
func Slugify(s string) string {
	var b strings.Builder
	prevDash := true
	for _, r := range strings.ToLower(s) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
			prevDash = false
		default:
			if !prevDash {
				b.WriteByte('-')
				prevDash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
