package posts

import (
	"slices"
	"strings"
)

// CategoryNode is one level of the category tree. A node can own posts and
// have children at the same time.
type CategoryNode[C any] struct {
	label    string
	path     string
	children map[string]*CategoryNode[C]
	order    []string // child labels, first-seen order
	posts    []*Post[C]
	leaf     bool
}

func newCategoryNode[C any](label, path string) *CategoryNode[C] {
	return &CategoryNode[C]{
		label:    label,
		path:     path,
		children: make(map[string]*CategoryNode[C]),
	}
}

// Label is the last category label of the node's path.
func (n *CategoryNode[C]) Label() string { return n.label }

// Path is the "/"-joined label sequence from the root, e.g. "Tech/Go".
func (n *CategoryNode[C]) Path() string { return n.path }

// IsLeaf reports whether at least one post ends exactly at this node.
func (n *CategoryNode[C]) IsLeaf() bool { return n.leaf }

// Posts returns the posts whose category list ends at this node, in input
// order.
func (n *CategoryNode[C]) Posts() []*Post[C] {
	return slices.Clone(n.posts)
}

// Children returns the child nodes in the order their labels were first seen.
func (n *CategoryNode[C]) Children() []*CategoryNode[C] {
	out := make([]*CategoryNode[C], 0, len(n.order))
	for _, label := range n.order {
		out = append(out, n.children[label])
	}
	return out
}

// Child returns the child with the given label, or nil.
func (n *CategoryNode[C]) Child(label string) *CategoryNode[C] {
	return n.children[label]
}

// Count is the number of posts in the node's subtree.
func (n *CategoryNode[C]) Count() int {
	total := len(n.posts)
	for _, child := range n.children {
		total += child.Count()
	}
	return total
}

// CategoryTree is the category hierarchy of a post collection. It is built
// once by BuildCategoryTree and never modified afterwards.
type CategoryTree[C any] struct {
	root   *CategoryNode[C]
	byPath map[string]*CategoryNode[C]
}

// BuildCategoryTree files every post with categories [c1 .. cn] under the
// node c1/../cn, creating the intermediate nodes on first use. Posts without
// categories are left out.
func BuildCategoryTree[C any](ps []*Post[C]) *CategoryTree[C] {
	root := newCategoryNode[C]("", "")
	byPath := make(map[string]*CategoryNode[C])
	for _, p := range ps {
		if p == nil {
			continue
		}
		labels := cleanLabels(p.Frontmatter.Categories)
		if len(labels) == 0 {
			continue
		}
		node := root
		for i, label := range labels {
			child, ok := node.children[label]
			if !ok {
				child = newCategoryNode[C](label, strings.Join(labels[:i+1], "/"))
				node.children[label] = child
				node.order = append(node.order, label)
				if _, taken := byPath[child.path]; !taken {
					byPath[child.path] = child
				}
			}
			node = child
		}
		node.posts = append(node.posts, p)
		node.leaf = true
	}
	return &CategoryTree[C]{root: root, byPath: byPath}
}

// Roots returns the top-level categories in first-seen order.
func (t *CategoryTree[C]) Roots() []*CategoryNode[C] {
	return t.root.Children()
}

// Find returns the node whose full path is path, or nil. A label that
// itself contains "/" (["C/C++"]) has the same path as a nested node
// (["C", "C++"]); when both exist Find returns the one seen first. Use
// FindLabels to address a node by its exact label sequence.
func (t *CategoryTree[C]) Find(path string) *CategoryNode[C] {
	if path == "" {
		return nil
	}
	return t.byPath[path]
}

// FindLabels walks the tree one label at a time and returns the node at
// the end, or nil.
func (t *CategoryTree[C]) FindLabels(labels ...string) *CategoryNode[C] {
	if len(labels) == 0 {
		return nil
	}
	node := t.root
	for _, label := range labels {
		node = node.children[label]
		if node == nil {
			return nil
		}
	}
	return node
}

// Walk visits every node depth-first, parents before children, in
// first-seen order. depth is 0 for top-level categories.
func (t *CategoryTree[C]) Walk(fn func(n *CategoryNode[C], depth int)) {
	var visit func(n *CategoryNode[C], depth int)
	visit = func(n *CategoryNode[C], depth int) {
		for _, child := range n.Children() {
			fn(child, depth)
			visit(child, depth+1)
		}
	}
	visit(t.root, 0)
}

// ByCategory returns the posts filed under path or under any of its
// descendants: filtering by "Tech" also matches posts in "Tech/Go".
// Matching is on the joined path, so ["C/C++"] and ["C", "C++"] both match
// "C/C++".
func ByCategory[C any](ps []*Post[C], path string) []*Post[C] {
	out := []*Post[C]{}
	if path == "" {
		return out
	}
	for _, p := range ps {
		if p == nil {
			continue
		}
		if slices.Contains(categoryPaths(p.Frontmatter.Categories), path) {
			out = append(out, p)
		}
	}
	return out
}

// ByTag returns the posts tagged with tag. Matching is exact and
// case-sensitive.
func ByTag[C any](ps []*Post[C], tag string) []*Post[C] {
	out := []*Post[C]{}
	for _, p := range ps {
		if p != nil && slices.Contains(p.Frontmatter.Tags, tag) {
			out = append(out, p)
		}
	}
	return out
}
