// Package migrate moves posts from the legacy flat posts directory into the
// date-based layout: PagesDir/YYYY/MM/DD/slug.md.
package migrate

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/sgx-labs/blogindex/internal/logger"
	"github.com/sgx-labs/blogindex/internal/posts"
)

// ErrTargetExists is returned for a file whose destination is already taken.
var ErrTargetExists = errors.New("target already exists")

// Migrator holds the settings of one migration run.
type Migrator struct {
	SourceDir  string
	PagesDir   string
	LayoutFrom string
	LayoutTo   string
	DryRun     bool
	Force      bool
	Logger     *logger.Logger
}

// Move is a migrated (or, on a dry run, planned) file.
type Move struct {
	Source string `json:"source"`
	Target string `json:"target"`
}

// Problem is a file that was skipped or failed, with the reason.
type Problem struct {
	File   string `json:"file"`
	Reason string `json:"reason"`
}

// Report summarizes a run. Nothing is rolled back: files in Migrated have
// been moved even when others failed.
type Report struct {
	DryRun        bool      `json:"dry_run"`
	Migrated      []Move    `json:"migrated"`
	Skipped       []Problem `json:"skipped"`
	Failed        []Problem `json:"failed"`
	RemovedSource bool      `json:"removed_source"`
}

// Run migrates every .md file directly inside SourceDir. Per-file errors
// are recorded in the report and never stop the run; the returned error is
// reserved for failures to list SourceDir itself.
func (m *Migrator) Run() (*Report, error) {
	log := logger.OrDiscard(m.Logger)
	report := &Report{DryRun: m.DryRun}

	entries, err := os.ReadDir(m.SourceDir)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			log.Info("source directory does not exist, nothing to migrate", "dir", m.SourceDir)
			return report, nil
		}
		return nil, fmt.Errorf("read source dir: %w", err)
	}

	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".md") {
			files = append(files, e.Name())
		}
	}
	if len(files) == 0 {
		log.Info("no markdown files to migrate", "dir", m.SourceDir)
		return report, nil
	}
	log.Info("migrating posts", "count", len(files), "dir", m.SourceDir, "dry_run", m.DryRun)

	for _, name := range files {
		src := filepath.Join(m.SourceDir, name)
		target, err := m.migrateFile(src)
		var skip *skipError
		switch {
		case errors.As(err, &skip):
			log.FileSkipped(src, skip.Error())
			report.Skipped = append(report.Skipped, Problem{File: src, Reason: skip.Error()})
		case err != nil:
			log.FileError(src, err)
			report.Failed = append(report.Failed, Problem{File: src, Reason: err.Error()})
		default:
			if !m.DryRun {
				log.PostMigrated(src, target)
			}
			report.Migrated = append(report.Migrated, Move{Source: src, Target: target})
		}
	}

	if !m.DryRun {
		if remaining, err := os.ReadDir(m.SourceDir); err == nil && len(remaining) == 0 {
			if err := os.Remove(m.SourceDir); err != nil {
				log.FileError(m.SourceDir, err)
			} else {
				report.RemovedSource = true
				log.Info("removed empty source directory", "dir", m.SourceDir)
			}
		}
	}
	return report, nil
}

// skipError marks a file left alone because it lacks required fields.
type skipError struct{ err error }

func (e *skipError) Error() string { return e.err.Error() }
func (e *skipError) Unwrap() error { return e.err }

func (m *Migrator) migrateFile(src string) (string, error) {
	data, err := os.ReadFile(src)
	if err != nil {
		return "", fmt.Errorf("read: %w", err)
	}
	doc, err := ParseFrontmatter(string(data))
	if err != nil {
		return "", err
	}
	if err := validateDocument(doc); err != nil {
		return "", &skipError{err: err}
	}

	RewriteLayout(doc, m.LayoutFrom, m.LayoutTo)

	target, err := TargetPath(m.PagesDir, doc.Get("pubDate"), doc.Get("slug"))
	if err != nil {
		return "", err
	}
	if !m.Force {
		if _, err := os.Stat(target); err == nil {
			return "", fmt.Errorf("%w: %s", ErrTargetExists, target)
		}
	}
	if m.DryRun {
		return target, nil
	}

	if err := writeFileAtomic(target, []byte(doc.Render())); err != nil {
		return "", err
	}
	if err := os.Remove(src); err != nil {
		return "", fmt.Errorf("remove original: %w", err)
	}
	return target, nil
}

// validateDocument checks the fields the target path is built from.
func validateDocument(doc *Document) error {
	return validation.Errors{
		"pubDate": validation.Validate(doc.Get("pubDate"), validation.Required, validation.By(parsableDate)),
		"slug":    validation.Validate(doc.Get("slug"), validation.Required, validation.By(safeSlug)),
	}.Filter()
}

func parsableDate(value interface{}) error {
	s, _ := value.(string)
	if _, ok := posts.ParseDate(s); !ok {
		return errors.New("unparseable date")
	}
	return nil
}

func safeSlug(value interface{}) error {
	s, _ := value.(string)
	if s == "." || s == ".." || strings.ContainsAny(s, `/\`) {
		return errors.New("must be a single path element")
	}
	return nil
}

// RewriteLayout replaces the from prefix of the layout field with to. A
// layout not starting with from is left as is.
func RewriteLayout(doc *Document, from, to string) {
	layout := doc.Get("layout")
	if from == "" || !strings.HasPrefix(layout, from) {
		return
	}
	doc.Set("layout", to+strings.TrimPrefix(layout, from))
}

// TargetPath returns pagesDir/YYYY/MM/DD/slug.md.
func TargetPath(pagesDir, pubDate, slug string) (string, error) {
	t, ok := posts.ParseDate(pubDate)
	if !ok {
		return "", fmt.Errorf("unparseable pubDate %q", pubDate)
	}
	rel := strings.TrimPrefix(posts.DatePath(t, slug+".md"), "/")
	return filepath.Join(pagesDir, filepath.FromSlash(rel)), nil
}

// writeFileAtomic writes data to a temp file next to path and renames it
// into place.
func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create target dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename into place: %w", err)
	}
	return nil
}
