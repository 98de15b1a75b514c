package frontmatter

import (
	"bytes"

	"gopkg.in/yaml.v3"
)

// Serialize renders front-matter fields as YAML, normalized to the
// document's newline style.
//
// Key order follows yaml.v3's map marshaling (alphabetical). Rewrites do not
// attempt to preserve the original YAML formatting, only the newline shape.
func Serialize(fields map[string]any, style Style) ([]byte, error) {
	out, err := yaml.Marshal(fields)
	if err != nil {
		return nil, err
	}
	if style.Newline == "\r\n" {
		out = bytes.ReplaceAll(out, []byte("\n"), []byte("\r\n"))
	}
	return out, nil
}
