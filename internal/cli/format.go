// Package cli provides shared formatting helpers for CLI output.
package cli

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/sgx-labs/blogindex/internal/posts"
)

// Palette.
const (
	colorAccent = "#78DCE8"
	colorTitle  = "#FF6188"
	colorOK     = "#A9DC76"
	colorWarn   = "#FC9867"
	colorDim    = "#727072"
)

var (
	HeaderStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color(colorTitle))
	SectionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorAccent))
	SuccessStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorOK))
	WarningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color(colorWarn))
	DimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color(colorDim))
	BoldStyle    = lipgloss.NewStyle().Bold(true)

	boxStyle = lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(lipgloss.Color(colorAccent)).
			Padding(0, 2).
			Width(boxWidth)
)

// Box width is the inner content width (between the border characters).
const boxWidth = 40

// Margin is the left indent for all branded output.
const margin = "  "

// ShortenHome replaces $HOME prefix with ~.
func ShortenHome(path string) string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return path
	}
	if strings.HasPrefix(path, home) {
		return "~" + path[len(home):]
	}
	return path
}

// FormatNumber adds comma separators (1234 -> "1,234").
func FormatNumber(n int) string {
	if n < 0 {
		return "-" + FormatNumber(-n)
	}
	if n < 1000 {
		return fmt.Sprintf("%d", n)
	}
	return FormatNumber(n/1000) + "," + fmt.Sprintf("%03d", n%1000)
}

// Plural returns "1 post" / "2 posts", "1 category" / "2 categories".
func Plural(n int, word string) string {
	if n == 1 {
		return "1 " + word
	}
	if strings.HasSuffix(word, "y") && len(word) > 1 && !strings.ContainsAny(word[len(word)-2:len(word)-1], "aeiou") {
		return FormatNumber(n) + " " + word[:len(word)-1] + "ies"
	}
	return FormatNumber(n) + " " + word + "s"
}

// Header prints a heavy-border box with a title. Used by `blogindex index`.
func Header(w io.Writer, title string) {
	fmt.Fprintln(w)
	box := boxStyle.Render(HeaderStyle.Render(title))
	for _, line := range strings.Split(box, "\n") {
		fmt.Fprintln(w, margin+line)
	}
}

// Section prints a section divider line: ── Name ─────────────────
func Section(w io.Writer, name string) {
	prefix := "── " + name + " "
	remaining := boxWidth + 2 - lipgloss.Width(prefix)
	if remaining < 0 {
		remaining = 0
	}
	rule := prefix + strings.Repeat("─", remaining)
	fmt.Fprintf(w, "\n%s%s\n\n", margin, SectionStyle.Render(rule))
}

// KeyValue prints an aligned "key  value" line. The key is padded before
// styling so escape codes don't count toward the column width.
func KeyValue(w io.Writer, key, value string) {
	fmt.Fprintf(w, "%s%s %s\n", margin, DimStyle.Render(fmt.Sprintf("%-12s", key)), value)
}

// PostLine prints one post as "date  title  url".
func PostLine[C any](w io.Writer, p *posts.Post[C], locale string) {
	date := posts.FormatDate(p.Frontmatter.PubDate, locale)
	if date == "" {
		date = posts.UndatedKey
	}
	fmt.Fprintf(w, "%s%s  %s  %s\n", margin,
		DimStyle.Render(date), BoldStyle.Render(p.Frontmatter.Title), p.URL)
}

// Tree prints a category tree with ├── / └── connectors and each node's
// post count.
func Tree[C any](w io.Writer, roots []*posts.CategoryNode[C]) {
	printTree(w, roots, margin)
}

func printTree[C any](w io.Writer, nodes []*posts.CategoryNode[C], prefix string) {
	for i, n := range nodes {
		last := i == len(nodes)-1
		connector, childPrefix := "├── ", "│   "
		if last {
			connector, childPrefix = "└── ", "    "
		}
		fmt.Fprintf(w, "%s%s%s %s\n", prefix, connector, n.Label(),
			DimStyle.Render(fmt.Sprintf("(%d)", n.Count())))
		printTree(w, n.Children(), prefix+childPrefix)
	}
}
