package topics

// Renderer formats topic content for the terminal. format is the topic
// file's extension, e.g. ".md".
type Renderer interface {
	Render(content string, format string) string
}

// PlainRenderer returns content as-is
type PlainRenderer struct{}

// Render returns the content unchanged
func (r *PlainRenderer) Render(content string, format string) string {
	return content
}
