// Package frontmatter reads and rewrites the YAML metadata block at the top
// of a content file.
//
// A front-matter block is delimited by `---` lines and must start at the very
// first byte of the document. Documents without a block are valid and simply
// carry no metadata.
package frontmatter

import (
	"bytes"
	"fmt"

	"gopkg.in/yaml.v3"
)

// ParseError reports a front-matter block that is present but not valid YAML.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parsing front matter of %s: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Style captures the newline shape of a document so a rewrite can reproduce
// it byte-for-byte outside the edited block.
type Style struct {
	Newline string
}

// Split separates a leading `---` delimited YAML block from the body.
//
// If the document does not begin with an opening delimiter, or an opening
// delimiter is never closed, had is false and body is the full input.
func Split(content []byte) (meta, body []byte, had bool, style Style) {
	style = detectStyle(content)
	nl := style.Newline

	open := []byte("---" + nl)
	if !bytes.HasPrefix(content, open) {
		return nil, content, false, style
	}

	rest := content[len(open):]

	// Empty block: the closing delimiter immediately follows the opening one.
	if bytes.HasPrefix(rest, open) {
		return []byte{}, rest[len(open):], true, style
	}

	closeSeq := []byte(nl + "---" + nl)
	idx := bytes.Index(rest, closeSeq)
	if idx < 0 {
		// Unclosed delimiter: treat the document as having no front matter.
		return nil, content, false, style
	}

	metaEnd := idx + len(nl)
	bodyStart := idx + len(closeSeq)
	return rest[:metaEnd], rest[bodyStart:], true, style
}

// Parse extracts the front-matter mapping from a document. Documents without
// a block yield an empty map and no error; a block that fails to parse yields
// a *ParseError naming the offending file.
func Parse(content []byte, path string) (map[string]any, error) {
	raw, _, had, _ := Split(content)
	if !had {
		return map[string]any{}, nil
	}

	var fields map[string]any
	if err := yaml.Unmarshal(raw, &fields); err != nil {
		return nil, &ParseError{Path: path, Err: err}
	}
	if fields == nil {
		fields = map[string]any{}
	}
	return fields, nil
}

// Join reassembles a document from raw front matter and body. If had is
// false, Join returns body unchanged.
func Join(meta, body []byte, had bool, style Style) []byte {
	if !had {
		return body
	}

	nl := style.Newline
	if nl == "" {
		nl = "\n"
	}
	delim := []byte("---" + nl)

	out := make([]byte, 0, 2*len(delim)+len(meta)+len(body))
	out = append(out, delim...)
	out = append(out, meta...)
	out = append(out, delim...)
	out = append(out, body...)
	return out
}

func detectStyle(content []byte) Style {
	newline := "\n"
	for i := 0; i < len(content); i++ {
		if content[i] != '\n' {
			continue
		}
		if i > 0 && content[i-1] == '\r' {
			newline = "\r\n"
		}
		break
	}
	return Style{Newline: newline}
}
