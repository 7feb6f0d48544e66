// Package topics adds long-form help topics to a cobra command tree.
// Topics are markdown or plain-text documents shipped with the binary
// and surfaced through an extended "help" command.
package topics

// Renderer formats topic content for terminal display.
type Renderer interface {
	// Render takes the raw content and its format ("markdown" or
	// "text") and returns the string to print.
	Render(content string, format string) string
}

// PlainRenderer passes content through untouched. It is the fallback
// when markdown rendering is unavailable or unwanted.
type PlainRenderer struct{}

func (PlainRenderer) Render(content string, format string) string {
	return content
}
