package posts

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// UndatedKey is the archive key for posts whose pubDate cannot be parsed.
const UndatedKey = "undated"

func postDate[C any](p *Post[C]) (time.Time, bool) {
	if p == nil {
		return time.Time{}, false
	}
	return p.Date()
}

// ByYear groups posts by four-digit year. Input order is kept within each
// group.
func ByYear[C any](ps []*Post[C]) map[string][]*Post[C] {
	return groupBy(ps, func(t time.Time) string {
		return fmt.Sprintf("%04d", t.Year())
	})
}

// ByMonth groups posts by "YYYY-MM". Input order is kept within each group.
func ByMonth[C any](ps []*Post[C]) map[string][]*Post[C] {
	return groupBy(ps, func(t time.Time) string {
		return fmt.Sprintf("%04d-%02d", t.Year(), int(t.Month()))
	})
}

func groupBy[C any](ps []*Post[C], key func(time.Time) string) map[string][]*Post[C] {
	out := make(map[string][]*Post[C])
	for _, p := range ps {
		if p == nil {
			continue
		}
		k := UndatedKey
		if t, ok := p.Date(); ok {
			k = key(t)
		}
		out[k] = append(out[k], p)
	}
	return out
}

// SortedKeys returns the keys of an archive newest first, with UndatedKey
// last.
func SortedKeys[C any](groups map[string][]*Post[C]) []string {
	keys := make([]string, 0, len(groups))
	undated := false
	for k := range groups {
		if k == UndatedKey {
			undated = true
			continue
		}
		keys = append(keys, k)
	}
	slices.Sort(keys)
	slices.Reverse(keys)
	if undated {
		keys = append(keys, UndatedKey)
	}
	return keys
}

// AllTags returns every non-empty tag used by ps, deduplicated and sorted.
func AllTags[C any](ps []*Post[C]) []string {
	seen := make(map[string]bool)
	tags := []string{}
	for _, p := range ps {
		if p == nil {
			continue
		}
		for _, tag := range p.Frontmatter.Tags {
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			tags = append(tags, tag)
		}
	}
	slices.Sort(tags)
	return tags
}

// AllCategories returns every category path used by ps, including each
// ancestor path, deduplicated and sorted.
func AllCategories[C any](ps []*Post[C]) []string {
	seen := make(map[string]bool)
	paths := []string{}
	for _, p := range ps {
		if p == nil {
			continue
		}
		for _, path := range categoryPaths(p.Frontmatter.Categories) {
			if !seen[path] {
				seen[path] = true
				paths = append(paths, path)
			}
		}
	}
	slices.Sort(paths)
	return paths
}

// CategoryCounts maps every category path to the number of posts filed
// under it or any of its descendants.
func CategoryCounts[C any](ps []*Post[C]) map[string]int {
	counts := make(map[string]int)
	for _, p := range ps {
		if p == nil {
			continue
		}
		for _, path := range categoryPaths(p.Frontmatter.Categories) {
			counts[path]++
		}
	}
	return counts
}

// cleanLabels drops empty category labels.
func cleanLabels(labels []string) []string {
	out := make([]string, 0, len(labels))
	for _, l := range labels {
		if l != "" {
			out = append(out, l)
		}
	}
	return out
}

// categoryPaths returns the prefix paths of a label list:
// [A B C] -> A, A/B, A/B/C.
func categoryPaths(labels []string) []string {
	labels = cleanLabels(labels)
	paths := make([]string, len(labels))
	for i := range labels {
		paths[i] = strings.Join(labels[:i+1], "/")
	}
	return paths
}
