package content

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sgx-labs/blogindex/internal/logger"
	"github.com/sgx-labs/blogindex/internal/posts"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write %s: %v", path, err)
	}
}

func TestParsePost(t *testing.T) {
	content := `---
title: "Hello World"
pubDate: 2024-03-05
description: First post
author: Ada
categories: [Tech, Programming]
tags: [go, testing]
slug: hello-world
image:
  url: /img/cover.png
  alt: Cover
---

# Hello

Body content here.
`
	parsed, err := ParsePost([]byte(content))
	if err != nil {
		t.Fatalf("ParsePost: %v", err)
	}
	m := parsed.Meta
	if m.Title != "Hello World" {
		t.Errorf("title = %q", m.Title)
	}
	if m.PubDate != "2024-03-05" {
		t.Errorf("pubDate = %q", m.PubDate)
	}
	if len(m.Categories) != 2 || m.Categories[0] != "Tech" || m.Categories[1] != "Programming" {
		t.Errorf("categories = %v", m.Categories)
	}
	if len(m.Tags) != 2 || m.Tags[0] != "go" {
		t.Errorf("tags = %v", m.Tags)
	}
	if m.Image == nil || m.Image.URL != "/img/cover.png" || m.Image.Alt != "Cover" {
		t.Errorf("image = %+v", m.Image)
	}
	if m.Draft {
		t.Error("draft should default to false")
	}
	if !strings.Contains(string(parsed.Body), "Body content here.") {
		t.Errorf("body = %q", parsed.Body)
	}
}

func TestParsePost_NoFrontmatter(t *testing.T) {
	parsed, err := ParsePost([]byte("# Just a heading\n\nText.\n"))
	if err != nil {
		t.Fatalf("ParsePost: %v", err)
	}
	if parsed.Meta.Title != "" || parsed.Meta.PubDate != "" {
		t.Errorf("expected empty meta, got %+v", parsed.Meta)
	}
	if !strings.Contains(string(parsed.Body), "Just a heading") {
		t.Errorf("body = %q", parsed.Body)
	}
}

func TestSource_Documents(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "2024", "03", "05", "hello.md"), `---
title: Hello
pubDate: 2024-03-05
slug: hello
categories: [Tech]
---
Hi.
`)
	writeFile(t, filepath.Join(dir, "notes", "my-first-note.md"), `---
pubDate: "2023-01-02"
---
No slug or title.
`)
	writeFile(t, filepath.Join(dir, "drafts", "secret.md"), "---\ntitle: Secret\n---\n")
	writeFile(t, filepath.Join(dir, "ignored", "skip.md"), "---\ntitle: Skip\n---\n")
	writeFile(t, filepath.Join(dir, "readme.txt"), "not markdown")
	writeFile(t, filepath.Join(dir, "broken.md"), "---\ntitle: [unclosed\n---\nbody\n")

	var logBuf bytes.Buffer
	src := NewSource(dir, Options{SkipDirs: []string{"ignored"}, Logger: logger.New(&logBuf)})
	docs, err := src.Documents()
	if err != nil {
		t.Fatalf("Documents: %v", err)
	}

	byURL := make(map[string]*posts.Post[Body])
	for _, d := range docs {
		byURL[d.URL] = d
	}
	if len(byURL) != 2 {
		t.Fatalf("expected 2 posts, got %d: %v", len(byURL), keys(byURL))
	}

	hello := byURL["/2024/03/05/hello"]
	if hello == nil {
		t.Fatalf("missing /2024/03/05/hello in %v", keys(byURL))
	}
	if hello.Content.Path != "2024/03/05/hello.md" {
		t.Errorf("content path = %q", hello.Content.Path)
	}

	note := byURL["/2023/01/02/my-first-note"]
	if note == nil {
		t.Fatalf("missing derived slug URL in %v", keys(byURL))
	}
	if note.Frontmatter.Title != "My First Note" {
		t.Errorf("derived title = %q", note.Frontmatter.Title)
	}

	if !strings.Contains(logBuf.String(), "broken.md") {
		t.Errorf("expected broken.md to be reported, log: %s", logBuf.String())
	}
}

func TestSource_UndatedPostFallsBackToPathURL(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "about", "index.md"), "---\ntitle: About\n---\nAbout me.\n")

	docs, err := NewSource(dir, Options{}).Documents()
	if err != nil {
		t.Fatalf("Documents: %v", err)
	}
	if len(docs) != 1 {
		t.Fatalf("expected 1 doc, got %d", len(docs))
	}
	if docs[0].URL != "/about/index" {
		t.Errorf("URL = %q", docs[0].URL)
	}
	if docs[0].Frontmatter.Slug != "about" {
		t.Errorf("slug = %q, want directory name for index.md", docs[0].Frontmatter.Slug)
	}
}

func TestSource_MissingDir(t *testing.T) {
	src := NewSource(filepath.Join(t.TempDir(), "nope"), Options{})
	if _, err := src.Documents(); !errors.Is(err, ErrNoContentDir) {
		t.Fatalf("expected ErrNoContentDir, got %v", err)
	}
}

func TestSource_LoadDropsDrafts(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "a.md"), "---\npubDate: 2024-01-01\nslug: a\n---\n")
	writeFile(t, filepath.Join(dir, "b.md"), "---\npubDate: 2024-02-01\nslug: b\ndraft: true\n---\n")

	ps, err := posts.Load[Body](NewSource(dir, Options{}))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(ps) != 1 || ps[0].Frontmatter.Slug != "a" {
		t.Fatalf("expected only post a, got %d posts", len(ps))
	}
}

func TestBody_HTML(t *testing.T) {
	b := Body{Path: "x.md", Markdown: []byte("## Section\n\n| a | b |\n|---|---|\n| 1 | 2 |\n")}
	html, err := b.HTML()
	if err != nil {
		t.Fatalf("HTML: %v", err)
	}
	if !strings.Contains(html, `<h2 id="section">Section</h2>`) {
		t.Errorf("missing heading id: %s", html)
	}
	if !strings.Contains(html, "<table>") {
		t.Errorf("GFM table not rendered: %s", html)
	}
}

func TestIsPostFile(t *testing.T) {
	for name, want := range map[string]bool{
		"post.md":  true,
		"POST.MD":  true,
		"post.mdx": false,
		"post.txt": false,
	} {
		if got := IsPostFile(name); got != want {
			t.Errorf("IsPostFile(%q) = %v, want %v", name, got, want)
		}
	}
}

func keys(m map[string]*posts.Post[Body]) []string {
	out := make([]string, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
