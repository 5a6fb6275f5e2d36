// Package site runs one indexing pass over a post collection and packages
// every derived structure into a snapshot.
package site

import (
	"time"

	"github.com/google/uuid"

	"github.com/sgx-labs/blogindex/internal/posts"
)

// Index is the result of one indexing pass. It is rebuilt from scratch on
// every pass and must not be modified by consumers.
type Index[C any] struct {
	BuildID    string
	BuiltAt    time.Time
	Locale     string
	Posts      []*posts.Post[C]
	Years      map[string][]*posts.Post[C]
	Months     map[string][]*posts.Post[C]
	Tags       []string
	Categories []string
	Counts     map[string]int
	Tree       *posts.CategoryTree[C]
}

// Options tunes Build. Zero values use the real clock, random UUIDs and
// posts.DefaultLocale.
type Options struct {
	Locale string
	Now    func() time.Time
	NewID  func() string
}

// Build indexes ps, which are expected to come from posts.Load (published,
// newest first).
func Build[C any](ps []*posts.Post[C], opts Options) *Index[C] {
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	newID := opts.NewID
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}
	locale := opts.Locale
	if locale == "" {
		locale = posts.DefaultLocale
	}

	return &Index[C]{
		BuildID:    newID(),
		BuiltAt:    now().UTC(),
		Locale:     locale,
		Posts:      ps,
		Years:      posts.ByYear(ps),
		Months:     posts.ByMonth(ps),
		Tags:       posts.AllTags(ps),
		Categories: posts.AllCategories(ps),
		Counts:     posts.CategoryCounts(ps),
		Tree:       posts.BuildCategoryTree(ps),
	}
}

// Load reads src with posts.Load and indexes the result.
func Load[C any](src posts.Source[C], opts Options) (*Index[C], error) {
	ps, err := posts.Load(src)
	if err != nil {
		return nil, err
	}
	return Build(ps, opts), nil
}

// Lookup returns the post with the given URL, or nil.
func (ix *Index[C]) Lookup(url string) *posts.Post[C] {
	for _, p := range ix.Posts {
		if p.URL == url {
			return p
		}
	}
	return nil
}
