package blog

import (
	"strings"
	"testing"
)

func TestWordCount(t *testing.T) {
	tests := []struct {
		name string
		body string
		want int
	}{
		{name: "empty", body: "", want: 0},
		{name: "plain sentence", body: "Three short words.", want: 3},
		{
			name: "markup not counted",
			body: "# Heading\n\nSome **bold** text with a [link](https://example.com/very/long/path).\n",
			want: 7,
		},
		{
			name: "code fences excluded",
			body: "intro\n\n```\nx := 1\n```\n",
			want: 1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WordCount([]byte(tt.body)); got != tt.want {
				t.Errorf("WordCount() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestReadingTime(t *testing.T) {
	tests := []struct {
		words int
		want  int
	}{
		{words: 0, want: 0},
		{words: 1, want: 1},
		{words: 238, want: 1},
		{words: 239, want: 2},
		{words: 1000, want: 5},
	}
	for _, tt := range tests {
		if got := ReadingTime(tt.words); got != tt.want {
			t.Errorf("ReadingTime(%d) = %d, want %d", tt.words, got, tt.want)
		}
	}
}

func TestWordCount_LongDocument(t *testing.T) {
	body := "# Title\n\n" + strings.Repeat("word ", 500)
	got := WordCount([]byte(body))
	if got != 501 {
		t.Errorf("WordCount() = %d, want 501", got)
	}
}
