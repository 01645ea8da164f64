package render

import "strings"

// Markdown renders markdown content for terminal display.
func Markdown(content string, opts Options) (string, error) {
	r, err := acquire(opts)
	if err != nil {
		return "", err
	}
	defer release(opts, r)

	return r.Render(content)
}

// Reply renders an assistant reply, trimming the blank lines glamour adds.
// If rendering fails the content is returned unchanged.
func Reply(content string, opts Options) string {
	out, err := Markdown(content, opts)
	if err != nil {
		return content
	}
	return strings.Trim(out, "\n")
}
