package topics

import (
	"github.com/charmbracelet/glamour"
)

// GlamourRenderer renders markdown topics with glamour. Plain-text
// topics are returned as-is.
type GlamourRenderer struct {
	// Width is the wrap width for rendered output. Zero means the
	// glamour default.
	Width int
}

// NewGlamourRenderer returns a renderer that auto-detects the
// terminal's light or dark background.
func NewGlamourRenderer() *GlamourRenderer {
	return &GlamourRenderer{Width: 80}
}

func (g *GlamourRenderer) Render(content string, format string) string {
	if format != "markdown" {
		return content
	}
	opts := []glamour.TermRendererOption{
		glamour.WithAutoStyle(),
	}
	if g.Width > 0 {
		opts = append(opts, glamour.WithWordWrap(g.Width))
	}
	r, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		return content
	}
	out, err := r.Render(content)
	if err != nil {
		return content
	}
	return out
}
