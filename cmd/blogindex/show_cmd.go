package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sgx-labs/blogindex/internal/cli"
	"github.com/sgx-labs/blogindex/internal/posts"
)

func showCmd() *cobra.Command {
	var noBody bool
	cmd := &cobra.Command{
		Use:   "show <url>",
		Short: "Print one post's metadata and rendered HTML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(args[0], noBody)
		},
	}
	cmd.Flags().BoolVar(&noBody, "no-body", false, "Only print metadata")
	return cmd
}

// normalizeURL accepts "2024/03/05/slug", "/2024/03/05/slug/" and the like.
func normalizeURL(u string) string {
	u = strings.TrimSpace(u)
	u = strings.TrimSuffix(u, "/")
	if !strings.HasPrefix(u, "/") {
		u = "/" + u
	}
	return u
}

func runShow(url string, noBody bool) error {
	cfg, ix, err := loadIndex()
	if err != nil {
		return err
	}
	p := ix.Lookup(normalizeURL(url))
	if p == nil {
		return fmt.Errorf("no published post at %s", normalizeURL(url))
	}

	out := os.Stdout
	fm := p.Frontmatter
	cli.Header(out, fm.Title)
	cli.KeyValue(out, "url", p.URL)
	if date := posts.FormatDate(fm.PubDate, cfg.Site.Locale); date != "" {
		cli.KeyValue(out, "date", date)
	}
	if fm.Author != "" {
		cli.KeyValue(out, "author", fm.Author)
	}
	if fm.Description != "" {
		cli.KeyValue(out, "description", fm.Description)
	}
	if len(fm.Categories) > 0 {
		cli.KeyValue(out, "categories", strings.Join(fm.Categories, " / "))
	}
	if len(fm.Tags) > 0 {
		cli.KeyValue(out, "tags", strings.Join(fm.Tags, ", "))
	}
	if fm.Image != nil && fm.Image.URL != "" {
		cli.KeyValue(out, "image", fm.Image.URL)
	}
	cli.KeyValue(out, "file", p.Content.Path)

	if noBody {
		return nil
	}
	html, err := p.Content.HTML()
	if err != nil {
		return fmt.Errorf("render %s: %w", p.Content.Path, err)
	}
	cli.Section(out, "HTML")
	fmt.Fprintln(out, html)
	return nil
}
