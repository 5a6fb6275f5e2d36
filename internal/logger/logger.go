// Package logger wraps charm/log for the structured output of blogindex.
package logger

import (
	"io"
	"time"

	"github.com/charmbracelet/log"
)

// Logger wraps charm/log for structured logging.
type Logger struct {
	*log.Logger
}

// New creates a logger writing to w at info level.
func New(w io.Writer) *Logger {
	return NewWithLevel(w, log.InfoLevel)
}

// NewWithLevel creates a logger with a specific level.
func NewWithLevel(w io.Writer, level log.Level) *Logger {
	l := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		TimeFormat:      time.DateTime,
		Level:           level,
	})
	return &Logger{Logger: l}
}

// Discard returns a logger that discards all output.
func Discard() *Logger {
	return New(io.Discard)
}

// OrDiscard returns l, or a discarding logger when l is nil.
func OrDiscard(l *Logger) *Logger {
	if l == nil {
		return Discard()
	}
	return l
}

// FileSkipped logs a file left out of an operation.
func (l *Logger) FileSkipped(file, reason string) {
	l.Warn("file skipped",
		"file", file,
		"reason", reason)
}

// FileError logs an error for a specific file.
func (l *Logger) FileError(file string, err error) {
	l.Error("file error",
		"file", file,
		"error", err)
}

// IndexBuilt logs the result of an indexing pass.
func (l *Logger) IndexBuilt(buildID string, posts, categories, tags int, duration time.Duration) {
	l.Info("index built",
		"build", buildID,
		"posts", posts,
		"categories", categories,
		"tags", tags,
		"duration", duration.Round(time.Millisecond))
}

// PostMigrated logs a post moved into the date layout.
func (l *Logger) PostMigrated(source, target string) {
	l.Info("post migrated",
		"source", source,
		"target", target)
}
