package build

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestInjectFragments_AfterFirstHeading(t *testing.T) {
	body := []byte("# My Post\n\nFirst paragraph.\n")

	out := string(injectFragments(body, "<div>byline</div>", "<div>share</div>"))

	headingIdx := strings.Index(out, "# My Post")
	bylineIdx := strings.Index(out, "<div>byline</div>")
	paraIdx := strings.Index(out, "First paragraph.")
	shareIdx := strings.Index(out, "<div>share</div>")

	require.NotEqual(t, -1, bylineIdx)
	require.NotEqual(t, -1, shareIdx)
	require.Less(t, headingIdx, bylineIdx, "byline must follow the heading")
	require.Less(t, bylineIdx, paraIdx, "byline must precede the body text")
	require.Less(t, paraIdx, shareIdx, "share block goes at the end")
}

func TestInjectFragments_NoHeading_FragmentsLead(t *testing.T) {
	body := []byte("just text, no heading\n")

	out := string(injectFragments(body, "<div>byline</div>", "<div>share</div>"))
	require.Less(t, strings.Index(out, "<div>byline</div>"), strings.Index(out, "just text"))
}

func TestInjectFragments_SecondPassDoesNotStack(t *testing.T) {
	body := []byte("# My Post\n\nText.\n")

	once := injectFragments(body, "<div>byline</div>", "<div>share</div>")
	twice := injectFragments(once, "<div>byline</div>", "<div>share</div>")

	require.Equal(t, string(once), string(twice))
	require.Equal(t, 1, strings.Count(string(twice), "<div>byline</div>"))
	require.Equal(t, 1, strings.Count(string(twice), "<div>share</div>"))
}

func TestInjectFragments_SetextAndLaterHeadings(t *testing.T) {
	// The insertion point is the first level-1 heading, not a later one.
	body := []byte("# First\n\ntext\n\n# Second\n")

	out := string(injectFragments(body, "<div>byline</div>", ""))
	require.Less(t, strings.Index(out, "<div>byline</div>"), strings.Index(out, "text"))
}

func TestFirstHeadingEnd(t *testing.T) {
	body := []byte("# Title\nrest\n")
	require.Equal(t, len("# Title"), firstHeadingEnd(body))

	require.Equal(t, 0, firstHeadingEnd([]byte("no heading here\n")))
}

func TestSetup_Capabilities(t *testing.T) {
	caps := Setup()
	require.Equal(t, Version, caps.Version)
	require.True(t, caps.ParallelReadSafe)
	require.False(t, caps.ParallelWriteSafe)
}
