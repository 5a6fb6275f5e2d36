package posts

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

// ErrNilSource is returned by Load when no source is supplied.
var ErrNilSource = errors.New("posts: nil source")

// Source supplies the raw, already-parsed documents of a site.
type Source[C any] interface {
	Documents() ([]*Post[C], error)
}

// SourceFunc adapts a plain function to a Source.
type SourceFunc[C any] func() ([]*Post[C], error)

// Documents calls f.
func (f SourceFunc[C]) Documents() ([]*Post[C], error) {
	return f()
}

// Load reads every document from src and returns the published ones,
// newest first. See Published.
func Load[C any](src Source[C]) ([]*Post[C], error) {
	if src == nil {
		return nil, ErrNilSource
	}
	docs, err := src.Documents()
	if err != nil {
		return nil, fmt.Errorf("load posts: %w", err)
	}
	return Published(docs), nil
}

// Published drops drafts and nil entries and sorts the rest by pubDate,
// newest first. Posts without a parseable date sort last. The sort is
// stable, so equal dates keep their input order.
func Published[C any](docs []*Post[C]) []*Post[C] {
	out := make([]*Post[C], 0, len(docs))
	for _, p := range docs {
		if p == nil || p.Frontmatter.Draft {
			continue
		}
		out = append(out, p)
	}
	SortByDate(out)
	return out
}

// SortByDate sorts ps in place, newest first, undated last.
func SortByDate[C any](ps []*Post[C]) {
	type dated struct {
		post *Post[C]
		t    time.Time
		ok   bool
	}
	keyed := make([]dated, len(ps))
	for i, p := range ps {
		t, ok := postDate(p)
		keyed[i] = dated{post: p, t: t, ok: ok}
	}
	slices.SortStableFunc(keyed, func(a, b dated) int {
		switch {
		case a.ok && b.ok:
			return b.t.Compare(a.t)
		case a.ok:
			return -1
		case b.ok:
			return 1
		default:
			return 0
		}
	})
	for i := range keyed {
		ps[i] = keyed[i].post
	}
}
