package topics

import (
	"io"

	"github.com/arthur-debert/makecatalogs/pkg/ui/output"
	"github.com/charmbracelet/glamour"
)

// Renderer turns a topic file into text for the help command. format is the
// file extension, dot included.
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer prints topics verbatim.
type PlainRenderer struct{}

func (r *PlainRenderer) Render(content string, format string) string {
	return content
}

// MarkdownRenderer formats .md topics with glamour. Other formats, and any
// content glamour fails on, are printed verbatim.
type MarkdownRenderer struct {
	// Out is the stream the help text goes to. When it is not a terminal,
	// or NO_COLOR is set, the escape-free "notty" style is used.
	Out io.Writer
	// Style forces a glamour style name or style file path.
	Style string
	// Width wraps rendered text; 0 keeps glamour's default.
	Width int
}

func NewMarkdownRenderer(out io.Writer) *MarkdownRenderer {
	return &MarkdownRenderer{Out: out}
}

func (r *MarkdownRenderer) Render(content string, format string) string {
	if format != ".md" {
		return content
	}

	options := []glamour.TermRendererOption{glamour.WithStylePath(r.style())}
	if r.Width > 0 {
		options = append(options, glamour.WithWordWrap(r.Width))
	}

	tr, err := glamour.NewTermRenderer(options...)
	if err != nil {
		return content
	}
	rendered, err := tr.Render(content)
	if err != nil {
		return content
	}
	return rendered
}

// style picks the glamour style: Style when set, otherwise "auto" for a
// colour terminal and "notty" for everything else.
func (r *MarkdownRenderer) style() string {
	if r.Style != "" {
		return r.Style
	}
	if r.Out != nil && output.ColorEnabled(r.Out) {
		return "auto"
	}
	return "notty"
}
