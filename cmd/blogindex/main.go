// Package main is the entrypoint for the blogindex CLI.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sgx-labs/blogindex/internal/config"
)

// Version is set at build time via ldflags.
var Version = "dev"

// verbose is set by the --verbose global flag.
var verbose bool

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "blogindex",
		Short: "Index a static blog's posts by date, category and tag",
		Long: "blogindex reads the Markdown posts of a static blog and builds the\n" +
			"archive, tag and category indexes the site is rendered from.",
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}

	root.AddCommand(indexCmd())
	root.AddCommand(postsCmd())
	root.AddCommand(archiveCmd())
	root.AddCommand(tagsCmd())
	root.AddCommand(categoriesCmd())
	root.AddCommand(showCmd())
	root.AddCommand(migrateCmd())
	root.AddCommand(watchCmd())
	root.AddCommand(configCmd())
	root.AddCommand(versionCmd())

	root.PersistentFlags().StringVar(&config.ContentOverride, "content", "", "Content directory (overrides config)")
	root.PersistentFlags().StringVar(&config.ConfigOverride, "config", "", "Path to config.toml")
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log debug output")

	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the blogindex version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Printf("blogindex %s\n", Version)
			return nil
		},
	}
}
