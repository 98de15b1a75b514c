package frontmatter

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSplit_NoFrontMatter_ReturnsBodyOnly(t *testing.T) {
	input := []byte("# Title\n\nHello\n")

	meta, body, had, _ := Split(input)
	require.False(t, had)
	require.Empty(t, meta)
	require.Equal(t, input, body)
}

func TestSplit_Block_SeparatesMetaAndBody(t *testing.T) {
	input := []byte("---\ntitle: Hello\n---\n# Heading\n")

	meta, body, had, _ := Split(input)
	require.True(t, had)
	require.Equal(t, []byte("title: Hello\n"), meta)
	require.Equal(t, []byte("# Heading\n"), body)
}

func TestSplit_EmptyBlock(t *testing.T) {
	input := []byte("---\n---\nbody\n")

	meta, body, had, _ := Split(input)
	require.True(t, had)
	require.Empty(t, meta)
	require.Equal(t, []byte("body\n"), body)
}

func TestSplit_UnclosedDelimiter_TreatedAsNoBlock(t *testing.T) {
	input := []byte("---\ntitle: Hello\n# Heading\n")

	_, body, had, _ := Split(input)
	require.False(t, had)
	require.Equal(t, input, body)
}

func TestSplit_CRLF(t *testing.T) {
	input := []byte("---\r\ntitle: Hello\r\n---\r\n# Heading\r\n")

	meta, body, had, style := Split(input)
	require.True(t, had)
	require.Equal(t, "\r\n", style.Newline)
	require.Equal(t, []byte("title: Hello\r\n"), meta)
	require.Equal(t, []byte("# Heading\r\n"), body)
}

func TestParse_NoBlock_ReturnsEmptyMap(t *testing.T) {
	fields, err := Parse([]byte("# Just a document\n"), "post/README.md")
	require.NoError(t, err)
	require.NotNil(t, fields)
	require.Empty(t, fields)
}

func TestParse_ValidBlock(t *testing.T) {
	input := []byte("---\ntitle: Hello World\ncategory: Software Tools\n---\nbody\n")

	fields, err := Parse(input, "post/README.md")
	require.NoError(t, err)
	require.Equal(t, "Hello World", fields["title"])
	require.Equal(t, "Software Tools", fields["category"])
}

func TestParse_InvalidYAML_ReturnsParseErrorWithPath(t *testing.T) {
	input := []byte("---\ntitle: [unbalanced\n---\nbody\n")

	_, err := Parse(input, "post/README.md")
	require.Error(t, err)

	var perr *ParseError
	require.ErrorAs(t, err, &perr)
	require.Equal(t, "post/README.md", perr.Path)
	require.Contains(t, perr.Error(), "post/README.md")
}

func TestJoin_RoundTrip(t *testing.T) {
	input := []byte("---\ntitle: Hello\n---\n# Heading\n\nbody text\n")

	meta, body, had, style := Split(input)
	require.True(t, had)
	require.Equal(t, input, Join(meta, body, had, style))
}

func TestSerialize_MatchesNewlineStyle(t *testing.T) {
	raw, err := Serialize(map[string]any{"title": "New"}, Style{Newline: "\r\n"})
	require.NoError(t, err)
	require.Equal(t, []byte("title: New\r\n"), raw)
}

func TestSerialize_RoundTripsThroughJoinAndSplit(t *testing.T) {
	style := Style{Newline: "\n"}
	raw, err := Serialize(map[string]any{"title": "New"}, style)
	require.NoError(t, err)

	doc := Join(raw, []byte("body\n"), true, style)
	require.Equal(t, []byte("---\ntitle: New\n---\nbody\n"), doc)

	fields, err := Parse(doc, "post/README.md")
	require.NoError(t, err)
	require.Equal(t, "New", fields["title"])
}
