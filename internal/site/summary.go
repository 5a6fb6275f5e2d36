package site

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/sgx-labs/blogindex/internal/posts"
)

// ErrUnknownFormat is returned by Encode for an unsupported output format.
var ErrUnknownFormat = errors.New("unknown output format")

// PostSummary is the serializable view of a post. The content handle is
// left out.
type PostSummary struct {
	URL         string   `json:"url" yaml:"url"`
	Title       string   `json:"title" yaml:"title"`
	PubDate     string   `json:"pub_date" yaml:"pub_date"`
	Date        string   `json:"date,omitempty" yaml:"date,omitempty"`
	Author      string   `json:"author,omitempty" yaml:"author,omitempty"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Categories  []string `json:"categories,omitempty" yaml:"categories,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
}

// Archive is one year or month bucket.
type Archive struct {
	Key   string   `json:"key" yaml:"key"`
	Count int      `json:"count" yaml:"count"`
	URLs  []string `json:"urls" yaml:"urls"`
}

// TagSummary is a tag with the number of posts using it.
type TagSummary struct {
	Name  string `json:"name" yaml:"name"`
	Count int    `json:"count" yaml:"count"`
}

// CategorySummary is one node of the category tree.
type CategorySummary struct {
	Name     string            `json:"name" yaml:"name"`
	Path     string            `json:"path" yaml:"path"`
	Count    int               `json:"count" yaml:"count"`
	Leaf     bool              `json:"leaf" yaml:"leaf"`
	Posts    []string          `json:"posts,omitempty" yaml:"posts,omitempty"`
	Children []CategorySummary `json:"children,omitempty" yaml:"children,omitempty"`
}

// Summary is the serializable view of an Index.
type Summary struct {
	BuildID    string            `json:"build_id" yaml:"build_id"`
	BuiltAt    string            `json:"built_at" yaml:"built_at"`
	TotalPosts int               `json:"total_posts" yaml:"total_posts"`
	Posts      []PostSummary     `json:"posts" yaml:"posts"`
	Years      []Archive         `json:"years" yaml:"years"`
	Months     []Archive         `json:"months" yaml:"months"`
	Tags       []TagSummary      `json:"tags" yaml:"tags"`
	Categories []CategorySummary `json:"categories" yaml:"categories"`
}

// Summarize converts a post for output, formatting its date in locale.
func Summarize[C any](p *posts.Post[C], locale string) PostSummary {
	fm := p.Frontmatter
	return PostSummary{
		URL:         p.URL,
		Title:       fm.Title,
		PubDate:     fm.PubDate,
		Date:        posts.FormatDate(fm.PubDate, locale),
		Author:      fm.Author,
		Description: fm.Description,
		Categories:  fm.Categories,
		Tags:        fm.Tags,
	}
}

// Summary builds the serializable view of the index.
func (ix *Index[C]) Summary() Summary {
	s := Summary{
		BuildID:    ix.BuildID,
		BuiltAt:    ix.BuiltAt.Format(time.RFC3339),
		TotalPosts: len(ix.Posts),
		Posts:      make([]PostSummary, 0, len(ix.Posts)),
		Years:      archives(ix.Years),
		Months:     archives(ix.Months),
		Tags:       make([]TagSummary, 0, len(ix.Tags)),
		Categories: categorySummaries(ix.Tree.Roots()),
	}
	for _, p := range ix.Posts {
		s.Posts = append(s.Posts, Summarize(p, ix.Locale))
	}
	for _, tag := range ix.Tags {
		s.Tags = append(s.Tags, TagSummary{Name: tag, Count: len(posts.ByTag(ix.Posts, tag))})
	}
	return s
}

func archives[C any](groups map[string][]*posts.Post[C]) []Archive {
	out := make([]Archive, 0, len(groups))
	for _, key := range posts.SortedKeys(groups) {
		group := groups[key]
		urls := make([]string, len(group))
		for i, p := range group {
			urls[i] = p.URL
		}
		out = append(out, Archive{Key: key, Count: len(group), URLs: urls})
	}
	return out
}

func categorySummaries[C any](nodes []*posts.CategoryNode[C]) []CategorySummary {
	out := make([]CategorySummary, 0, len(nodes))
	for _, n := range nodes {
		cs := CategorySummary{
			Name:     n.Label(),
			Path:     n.Path(),
			Count:    n.Count(),
			Leaf:     n.IsLeaf(),
			Children: categorySummaries(n.Children()),
		}
		for _, p := range n.Posts() {
			cs.Posts = append(cs.Posts, p.URL)
		}
		out = append(out, cs)
	}
	return out
}

// Encode writes v as "json" or "yaml".
func Encode(w io.Writer, v any, format string) error {
	switch format {
	case "json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownFormat, format)
	}
}
