package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/sgx-labs/blogindex/internal/cli"
	"github.com/sgx-labs/blogindex/internal/config"
	"github.com/sgx-labs/blogindex/internal/content"
	"github.com/sgx-labs/blogindex/internal/posts"
	"github.com/sgx-labs/blogindex/internal/site"
)

func indexCmd() *cobra.Command {
	var format string
	cmd := &cobra.Command{
		Use:   "index",
		Short: "Build the site index and print it",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runIndex(format)
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "text", "Output format: text, json or yaml")
	return cmd
}

func runIndex(format string) error {
	switch format {
	case "text", "json", "yaml":
	default:
		return fmt.Errorf("%w: %q (use text, json or yaml)", site.ErrUnknownFormat, format)
	}

	cfg, ix, err := loadIndex()
	if err != nil {
		return err
	}
	if format != "text" {
		return site.Encode(os.Stdout, ix.Summary(), format)
	}
	printIndex(cfg, ix)
	return nil
}

func printIndex(cfg *config.Config, ix *site.Index[content.Body]) {
	out := os.Stdout
	if cfg.Display.Mode != "full" {
		fmt.Fprintf(out, "%s, %s, %s\n",
			cli.Plural(len(ix.Posts), "post"),
			cli.Plural(len(ix.Categories), "category"),
			cli.Plural(len(ix.Tags), "tag"))
		return
	}

	cli.Header(out, "blogindex")
	cli.KeyValue(out, "content", cli.ShortenHome(cfg.Site.ContentDir))
	cli.KeyValue(out, "build", ix.BuildID)
	cli.KeyValue(out, "posts", cli.FormatNumber(len(ix.Posts)))
	cli.KeyValue(out, "categories", cli.FormatNumber(len(ix.Categories)))
	cli.KeyValue(out, "tags", cli.FormatNumber(len(ix.Tags)))

	cli.Section(out, "Archive")
	for _, year := range posts.SortedKeys(ix.Years) {
		cli.KeyValue(out, year, cli.Plural(len(ix.Years[year]), "post"))
	}

	if roots := ix.Tree.Roots(); len(roots) > 0 {
		cli.Section(out, "Categories")
		cli.Tree(out, roots)
	}

	if len(ix.Tags) > 0 {
		cli.Section(out, "Tags")
		fmt.Fprintf(out, "  %s\n", strings.Join(ix.Tags, ", "))
	}
	fmt.Fprintln(out)
}
