// Package posts indexes blog posts: it loads and orders a post collection,
// groups it into date archives and tags, and builds the category tree.
//
// Every function here is a pure transformation over the slice it is given.
// Nothing is cached between calls, so callers rebuild the derived structures
// on each indexing pass.
package posts

import "time"

// Image is the optional cover image of a post.
type Image struct {
	URL string `yaml:"url" toml:"url" json:"url"`
	Alt string `yaml:"alt" toml:"alt" json:"alt"`
}

// Frontmatter holds the metadata block at the top of a post.
type Frontmatter struct {
	Title       string   `yaml:"title" toml:"title" json:"title"`
	PubDate     string   `yaml:"pubDate" toml:"pubDate" json:"pubDate"`
	Description string   `yaml:"description" toml:"description" json:"description,omitempty"`
	Author      string   `yaml:"author" toml:"author" json:"author,omitempty"`
	Categories  []string `yaml:"categories" toml:"categories" json:"categories,omitempty"`
	Tags        []string `yaml:"tags" toml:"tags" json:"tags,omitempty"`
	Slug        string   `yaml:"slug" toml:"slug" json:"slug"`
	Draft       bool     `yaml:"draft" toml:"draft" json:"draft,omitempty"`
	Image       *Image   `yaml:"image" toml:"image" json:"image,omitempty"`
	Layout      string   `yaml:"layout" toml:"layout" json:"layout,omitempty"`
}

// Post is one document of the collection. Content is an opaque handle owned
// by whoever renders the post; this package never looks inside it.
type Post[C any] struct {
	URL         string
	Frontmatter Frontmatter
	Content     C
}

// Date parses the post's pubDate. ok is false when the date is missing or
// in a format ParseDate does not understand.
func (p *Post[C]) Date() (t time.Time, ok bool) {
	return ParseDate(p.Frontmatter.PubDate)
}
