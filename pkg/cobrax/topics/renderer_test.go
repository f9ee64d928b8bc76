package topics

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPlainRenderer(t *testing.T) {
	r := &PlainRenderer{}
	assert.Equal(t, "# Title", r.Render("# Title", ".md"))
}

func TestMarkdownRenderer(t *testing.T) {
	t.Run("non-markdown passes through", func(t *testing.T) {
		r := NewMarkdownRenderer(&bytes.Buffer{})
		assert.Equal(t, "plain text", r.Render("plain text", ".txt"))
	})

	t.Run("markdown is rendered", func(t *testing.T) {
		r := &MarkdownRenderer{Out: &bytes.Buffer{}, Width: 60}
		out := r.Render("# Heading\n\nSome **bold** text.", ".md")
		assert.Contains(t, out, "Heading")
		assert.Contains(t, out, "bold")
		assert.NotContains(t, out, "\x1b[")
	})

	t.Run("unknown style file falls back to source", func(t *testing.T) {
		r := &MarkdownRenderer{Style: "/nonexistent/style.json"}
		assert.Equal(t, "# Heading", r.Render("# Heading", ".md"))
	})
}

func TestMarkdownRendererStyle(t *testing.T) {
	tests := []struct {
		name     string
		renderer MarkdownRenderer
		want     string
	}{
		{"buffer output", MarkdownRenderer{Out: &bytes.Buffer{}}, "notty"},
		{"no output", MarkdownRenderer{}, "notty"},
		{"explicit style", MarkdownRenderer{Out: &bytes.Buffer{}, Style: "dark"}, "dark"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.renderer.style())
		})
	}

	t.Run("NO_COLOR", func(t *testing.T) {
		t.Setenv("NO_COLOR", "1")
		r := MarkdownRenderer{Out: &bytes.Buffer{}}
		assert.Equal(t, "notty", r.style())
	})
}
