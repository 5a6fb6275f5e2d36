package content

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// Body is the content handle of a post read from disk.
type Body struct {
	// Path is the file path relative to the content directory, slash separated.
	Path     string
	Markdown []byte
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// HTML renders the Markdown body.
func (b Body) HTML() (string, error) {
	var buf bytes.Buffer
	if err := markdown.Convert(b.Markdown, &buf); err != nil {
		return "", fmt.Errorf("render %s: %w", b.Path, err)
	}
	return buf.String(), nil
}
