package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"

	"github.com/sgx-labs/blogindex/internal/posts"
)

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		n    int
		want string
	}{
		{0, "0"},
		{999, "999"},
		{1000, "1,000"},
		{1234567, "1,234,567"},
		{-4200, "-4,200"},
	}
	for _, tt := range tests {
		if got := FormatNumber(tt.n); got != tt.want {
			t.Errorf("FormatNumber(%d) = %q, want %q", tt.n, got, tt.want)
		}
	}
}

func TestPlural(t *testing.T) {
	if got := Plural(1, "post"); got != "1 post" {
		t.Errorf("got %q", got)
	}
	if got := Plural(1200, "post"); got != "1,200 posts" {
		t.Errorf("got %q", got)
	}
	if got := Plural(3, "category"); got != "3 categories" {
		t.Errorf("got %q", got)
	}
	if got := Plural(2, "day"); got != "2 days" {
		t.Errorf("got %q", got)
	}
}

func TestShortenHome(t *testing.T) {
	t.Setenv("HOME", "/home/writer")
	if got := ShortenHome("/home/writer/blog"); got != "~/blog" {
		t.Errorf("got %q", got)
	}
	if got := ShortenHome("/srv/blog"); got != "/srv/blog" {
		t.Errorf("got %q", got)
	}
}

func TestTree(t *testing.T) {
	mk := func(cats ...string) *posts.Post[string] {
		return &posts.Post[string]{Frontmatter: posts.Frontmatter{Categories: cats}}
	}
	tree := posts.BuildCategoryTree([]*posts.Post[string]{
		mk("Tech", "Go"),
		mk("Tech", "Rust"),
		mk("Life"),
	})

	var buf bytes.Buffer
	Tree(&buf, tree.Roots())
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 4 {
		t.Fatalf("expected 4 lines, got %d:\n%s", len(lines), buf.String())
	}

	checks := []struct {
		line     int
		contains []string
	}{
		{0, []string{"├── Tech", "(2)"}},
		{1, []string{"│   ├── Go", "(1)"}},
		{2, []string{"│   └── Rust", "(1)"}},
		{3, []string{"└── Life", "(1)"}},
	}
	for _, c := range checks {
		for _, s := range c.contains {
			if !strings.Contains(lines[c.line], s) {
				t.Errorf("line %d = %q, missing %q", c.line, lines[c.line], s)
			}
		}
	}
}

func TestKeyValue_Aligned(t *testing.T) {
	var buf bytes.Buffer
	KeyValue(&buf, "posts", "3")
	KeyValue(&buf, "categories", "4")
	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d:\n%s", len(lines), buf.String())
	}
	for _, line := range lines {
		// margin + 12-column key + space, measured without escape codes
		if got := lipgloss.Width(line); got != len(margin)+12+1+1 {
			t.Errorf("line %q has visible width %d", line, got)
		}
	}
	if !strings.Contains(lines[0], "posts       ") {
		t.Errorf("key not padded: %q", lines[0])
	}
}

func TestPostLine_Undated(t *testing.T) {
	var buf bytes.Buffer
	PostLine(&buf, &posts.Post[string]{URL: "/about", Frontmatter: posts.Frontmatter{Title: "About"}}, "en-US")
	out := buf.String()
	if !strings.Contains(out, posts.UndatedKey) || !strings.Contains(out, "/about") {
		t.Errorf("unexpected output %q", out)
	}
}
