// Package content reads blog posts from a directory of Markdown files.
package content

import (
	"bytes"
	"fmt"

	"github.com/adrg/frontmatter"

	"github.com/sgx-labs/blogindex/internal/posts"
)

// ParsedPost holds the parsed content of a Markdown post.
type ParsedPost struct {
	Meta posts.Frontmatter
	Body []byte
}

// ParsePost parses a post's frontmatter (YAML, TOML or JSON delimiters) and
// body. A file without a frontmatter block parses to zero metadata and the
// whole file as body.
func ParsePost(data []byte) (ParsedPost, error) {
	var meta posts.Frontmatter
	body, err := frontmatter.Parse(bytes.NewReader(data), &meta)
	if err != nil {
		return ParsedPost{}, fmt.Errorf("parse frontmatter: %w", err)
	}
	return ParsedPost{Meta: meta, Body: body}, nil
}
