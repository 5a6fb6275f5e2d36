package main

import (
	"fmt"
	"os"
	"regexp"

	"github.com/spf13/cobra"

	"github.com/sgx-labs/blogindex/internal/cli"
	"github.com/sgx-labs/blogindex/internal/content"
	"github.com/sgx-labs/blogindex/internal/posts"
	"github.com/sgx-labs/blogindex/internal/site"
)

// postFilter narrows a post list. Empty fields match everything.
type postFilter struct {
	Year     string
	Month    string
	Tag      string
	Category string
}

var (
	yearRe  = regexp.MustCompile(`^\d{4}$`)
	monthRe = regexp.MustCompile(`^\d{4}-\d{2}$`)
)

func (f postFilter) validate() error {
	if f.Year != "" && f.Year != posts.UndatedKey && !yearRe.MatchString(f.Year) {
		return fmt.Errorf("--year must be YYYY or %q, got %q", posts.UndatedKey, f.Year)
	}
	if f.Month != "" && f.Month != posts.UndatedKey && !monthRe.MatchString(f.Month) {
		return fmt.Errorf("--month must be YYYY-MM or %q, got %q", posts.UndatedKey, f.Month)
	}
	return nil
}

// apply runs each set filter in turn; every step keeps the newest-first order.
func (f postFilter) apply(ps []*posts.Post[content.Body]) []*posts.Post[content.Body] {
	if f.Year != "" {
		ps = posts.ByYear(ps)[f.Year]
	}
	if f.Month != "" {
		ps = posts.ByMonth(ps)[f.Month]
	}
	if f.Tag != "" {
		ps = posts.ByTag(ps, f.Tag)
	}
	if f.Category != "" {
		ps = posts.ByCategory(ps, f.Category)
	}
	return ps
}

func postsCmd() *cobra.Command {
	var (
		filter postFilter
		asJSON bool
	)
	cmd := &cobra.Command{
		Use:   "posts",
		Short: "List published posts, newest first",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPosts(filter, asJSON)
		},
	}
	cmd.Flags().StringVar(&filter.Year, "year", "", "Only posts from this year (YYYY)")
	cmd.Flags().StringVar(&filter.Month, "month", "", "Only posts from this month (YYYY-MM)")
	cmd.Flags().StringVar(&filter.Tag, "tag", "", "Only posts with this tag (case-sensitive)")
	cmd.Flags().StringVar(&filter.Category, "category", "", "Only posts in this category path, e.g. Tech/Go")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Output as JSON")
	return cmd
}

func runPosts(filter postFilter, asJSON bool) error {
	if err := filter.validate(); err != nil {
		return err
	}
	cfg, ix, err := loadIndex()
	if err != nil {
		return err
	}

	matched := filter.apply(ix.Posts)
	if asJSON {
		out := make([]site.PostSummary, 0, len(matched))
		for _, p := range matched {
			out = append(out, site.Summarize(p, cfg.Site.Locale))
		}
		return site.Encode(os.Stdout, out, "json")
	}

	if len(matched) == 0 {
		fmt.Println("No posts found.")
		return nil
	}
	for _, p := range matched {
		cli.PostLine(os.Stdout, p, cfg.Site.Locale)
	}
	return nil
}

func archiveCmd() *cobra.Command {
	var monthly bool
	cmd := &cobra.Command{
		Use:   "archive",
		Short: "Show post counts per year (or month)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runArchive(monthly)
		},
	}
	cmd.Flags().BoolVar(&monthly, "monthly", false, "Group by month instead of year")
	return cmd
}

func runArchive(monthly bool) error {
	_, ix, err := loadIndex()
	if err != nil {
		return err
	}
	groups := ix.Years
	if monthly {
		groups = ix.Months
	}
	for _, key := range posts.SortedKeys(groups) {
		fmt.Printf("%-10s %s\n", key, cli.FormatNumber(len(groups[key])))
	}
	return nil
}

func tagsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "tags",
		Short: "List all tags with post counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTags()
		},
	}
}

func runTags() error {
	_, ix, err := loadIndex()
	if err != nil {
		return err
	}
	for _, tag := range ix.Tags {
		fmt.Printf("%s\t%d\n", tag, len(posts.ByTag(ix.Posts, tag)))
	}
	return nil
}

func categoriesCmd() *cobra.Command {
	var tree bool
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "List category paths with post counts",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCategories(tree)
		},
	}
	cmd.Flags().BoolVar(&tree, "tree", false, "Print as a tree")
	return cmd
}

func runCategories(tree bool) error {
	_, ix, err := loadIndex()
	if err != nil {
		return err
	}
	if tree {
		cli.Tree(os.Stdout, ix.Tree.Roots())
		return nil
	}
	ix.Tree.Walk(func(n *posts.CategoryNode[content.Body], depth int) {
		fmt.Printf("%s\t%d\n", n.Path(), ix.Counts[n.Path()])
	})
	return nil
}
