package blog

import (
	"math"
	"strings"
	"unicode"

	"github.com/yuin/goldmark"
	gmast "github.com/yuin/goldmark/ast"
	gmtext "github.com/yuin/goldmark/text"
)

// wpmTechnical is the average words-per-minute reading speed for technical
// content.
const wpmTechnical = 238

// WordCount counts the prose words in a Markdown body, walking the parsed
// AST so markup and link destinations are not counted as text.
func WordCount(body []byte) int {
	md := goldmark.New()
	root := md.Parser().Parse(gmtext.NewReader(body))

	words := 0
	_ = gmast.Walk(root, func(n gmast.Node, entering bool) (gmast.WalkStatus, error) {
		if !entering {
			return gmast.WalkContinue, nil
		}
		if t, ok := n.(*gmast.Text); ok {
			words += countWords(string(t.Segment.Value(body)))
		}
		return gmast.WalkContinue, nil
	})
	return words
}

// ReadingTime estimates reading time in minutes for the given word count,
// with a minimum of one minute for non-empty text.
func ReadingTime(words int) int {
	if words == 0 {
		return 0
	}
	minutes := math.Ceil(float64(words) / wpmTechnical)
	if minutes < 1 {
		minutes = 1
	}
	return int(minutes)
}

// countWords counts words in text, treating punctuation as a separator.
func countWords(text string) int {
	count := 0
	inWord := false
	for _, r := range text {
		if unicode.IsSpace(r) || strings.ContainsRune(".,;:!?\"'()[]{}", r) {
			if inWord {
				count++
				inWord = false
			}
		} else {
			inWord = true
		}
	}
	if inWord {
		count++
	}
	return count
}
