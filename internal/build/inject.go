package build

import (
	"bytes"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// Injection markers. Re-running a build against already-processed content
// must not stack a second copy of each fragment.
const (
	markerAttribution = "<!-- blogforge:attribution -->"
	markerShare       = "<!-- blogforge:share -->"
)

// injectFragments inserts the attribution block right after the first
// top-level heading of body and appends the share block at the end. A body
// that already carries a marker keeps its existing fragment.
func injectFragments(body []byte, attribution, share string) []byte {
	out := body

	if !bytes.Contains(out, []byte(markerAttribution)) {
		offset := firstHeadingEnd(out)
		block := []byte("\n\n" + markerAttribution + "\n" + attribution + "\n")

		next := make([]byte, 0, len(out)+len(block))
		next = append(next, out[:offset]...)
		next = append(next, block...)
		next = append(next, out[offset:]...)
		out = next
	}

	if !bytes.Contains(out, []byte(markerShare)) {
		if len(out) > 0 && out[len(out)-1] != '\n' {
			out = append(out, '\n')
		}
		out = append(out, []byte("\n"+markerShare+"\n"+share+"\n")...)
	}

	return out
}

// firstHeadingEnd returns the byte offset just past the first level-1
// heading, or 0 when the body has none (fragments then lead the document).
func firstHeadingEnd(body []byte) int {
	md := goldmark.New()
	root := md.Parser().Parse(gmtext.NewReader(body))

	for n := root.FirstChild(); n != nil; n = n.NextSibling() {
		h, ok := n.(*gmast.Heading)
		if !ok || h.Level != 1 {
			continue
		}
		lines := h.Lines()
		if lines.Len() == 0 {
			return 0
		}
		return lines.At(lines.Len() - 1).Stop
	}
	return 0
}
