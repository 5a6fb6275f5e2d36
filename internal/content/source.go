package content

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/goliatone/go-slug"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/sgx-labs/blogindex/internal/logger"
	"github.com/sgx-labs/blogindex/internal/posts"
)

// ErrNoContentDir is returned when the content directory does not exist.
var ErrNoContentDir = errors.New("content directory not found")

// DefaultSkipDirs are directories never walked for posts.
var DefaultSkipDirs = map[string]bool{
	".git":         true,
	".blogindex":   true,
	"node_modules": true,
	"drafts":       true,
}

// Options configures a Source.
type Options struct {
	// SkipDirs are directory names skipped during the walk, in addition to
	// DefaultSkipDirs.
	SkipDirs []string
	Logger   *logger.Logger
}

// Source reads posts from a directory tree of Markdown files. It implements
// posts.Source[Body].
type Source struct {
	dir  string
	skip map[string]bool
	log  *logger.Logger
}

var _ posts.Source[Body] = (*Source)(nil)

// NewSource returns a Source rooted at dir.
func NewSource(dir string, opts Options) *Source {
	skip := make(map[string]bool, len(DefaultSkipDirs)+len(opts.SkipDirs))
	for k, v := range DefaultSkipDirs {
		skip[k] = v
	}
	for _, d := range opts.SkipDirs {
		if d = strings.TrimSpace(d); d != "" {
			skip[d] = true
		}
	}
	return &Source{dir: dir, skip: skip, log: logger.OrDiscard(opts.Logger)}
}

// Dir returns the content root.
func (s *Source) Dir() string { return s.dir }

// Skip reports whether a directory name is excluded from the walk.
func (s *Source) Skip(name string) bool { return s.skip[name] }

// Documents walks the content directory and parses every Markdown file.
// Files that cannot be read or parsed are logged and skipped.
func (s *Source) Documents() ([]*posts.Post[Body], error) {
	info, err := os.Stat(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNoContentDir, s.dir)
		}
		return nil, fmt.Errorf("stat content dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%w: %s is not a directory", ErrNoContentDir, s.dir)
	}

	files := s.Files()
	docs := make([]*posts.Post[Body], 0, len(files))
	for _, fp := range files {
		rel := relativePath(fp, s.dir)
		data, err := os.ReadFile(fp)
		if err != nil {
			s.log.FileError(rel, err)
			continue
		}
		p, err := buildPost(rel, data)
		if err != nil {
			s.log.FileSkipped(rel, err.Error())
			continue
		}
		s.log.Debug("post read", "file", rel, "url", p.URL)
		docs = append(docs, p)
	}
	return docs, nil
}

// Files returns all Markdown file paths under the content directory,
// respecting skip dirs.
func (s *Source) Files() []string {
	var files []string
	filepath.WalkDir(s.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			if path != s.dir && s.skip[d.Name()] {
				return filepath.SkipDir
			}
			return nil
		}
		if IsPostFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	return files
}

// IsPostFile reports whether a file name looks like a Markdown post.
func IsPostFile(name string) bool {
	return strings.HasSuffix(strings.ToLower(name), ".md")
}

// buildPost parses one file and fills in the fields a post needs but the
// author left out: slug from the file name, title from the slug, and the
// URL from pubDate and slug.
func buildPost(rel string, data []byte) (*posts.Post[Body], error) {
	parsed, err := ParsePost(data)
	if err != nil {
		return nil, err
	}

	meta := parsed.Meta
	if meta.Slug == "" {
		meta.Slug = slugFromPath(rel)
	}
	if meta.Title == "" {
		meta.Title = titleFromSlug(meta.Slug)
	}

	url := posts.PostURL(meta.PubDate, meta.Slug)
	if url == "" {
		url = "/" + strings.TrimSuffix(rel, path.Ext(rel))
	}

	return &posts.Post[Body]{
		URL:         url,
		Frontmatter: meta,
		Content:     Body{Path: rel, Markdown: parsed.Body},
	}, nil
}

// slugFromPath derives a slug from a file name; "index.md" takes the name
// of its directory.
func slugFromPath(rel string) string {
	name := strings.TrimSuffix(path.Base(rel), path.Ext(rel))
	if strings.EqualFold(name, "index") {
		if dir := path.Base(path.Dir(rel)); dir != "." && dir != "/" {
			name = dir
		}
	}
	if s, err := slug.Normalize(name); err == nil && s != "" {
		return s
	}
	return strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-"))
}

var titleCaser = cases.Title(language.English)

func titleFromSlug(s string) string {
	words := strings.NewReplacer("-", " ", "_", " ").Replace(s)
	return titleCaser.String(words)
}

func relativePath(filePath, root string) string {
	rel, err := filepath.Rel(root, filePath)
	if err != nil {
		return filepath.ToSlash(filePath)
	}
	return filepath.ToSlash(rel)
}
