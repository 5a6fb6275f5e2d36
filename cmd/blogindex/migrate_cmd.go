package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/sgx-labs/blogindex/internal/cli"
	"github.com/sgx-labs/blogindex/internal/config"
	"github.com/sgx-labs/blogindex/internal/migrate"
)

type migrateFlags struct {
	From   string
	To     string
	DryRun bool
	Force  bool
}

func migrateCmd() *cobra.Command {
	var flags migrateFlags
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Move legacy posts into the YYYY/MM/DD layout",
		Long: "Moves every .md file in the legacy posts directory to\n" +
			"<pages>/YYYY/MM/DD/<slug>.md, rewriting the layout path on the way.\n" +
			"Files without pubDate or slug are left in place.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(flags)
		},
	}
	cmd.Flags().StringVar(&flags.From, "from", "", "Legacy posts directory (default from config)")
	cmd.Flags().StringVar(&flags.To, "to", "", "Pages directory (default from config)")
	cmd.Flags().BoolVar(&flags.DryRun, "dry-run", false, "Show what would move without touching files")
	cmd.Flags().BoolVar(&flags.Force, "force", false, "Overwrite existing target files")
	return cmd
}

func runMigrate(flags migrateFlags) error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	m := &migrate.Migrator{
		SourceDir:  cfg.Migrate.LegacyDir,
		PagesDir:   cfg.Migrate.PagesDir,
		LayoutFrom: cfg.Migrate.LayoutFrom,
		LayoutTo:   cfg.Migrate.LayoutTo,
		DryRun:     flags.DryRun,
		Force:      flags.Force,
		Logger:     newLogger(),
	}
	if flags.From != "" {
		m.SourceDir = flags.From
	}
	if flags.To != "" {
		m.PagesDir = flags.To
	}

	report, err := m.Run()
	if err != nil {
		return err
	}
	printReport(report)

	if n := len(report.Failed); n > 0 {
		return fmt.Errorf("%s failed to migrate", cli.Plural(n, "file"))
	}
	return nil
}

func printReport(r *migrate.Report) {
	out := os.Stdout
	verb := "Migrated"
	if r.DryRun {
		verb = "Would migrate"
	}
	for _, mv := range r.Migrated {
		fmt.Fprintf(out, "  %s %s -> %s\n", cli.SuccessStyle.Render("✓"), mv.Source, mv.Target)
	}
	for _, p := range r.Skipped {
		fmt.Fprintf(out, "  %s %s: %s\n", cli.WarningStyle.Render("-"), p.File, p.Reason)
	}
	for _, p := range r.Failed {
		fmt.Fprintf(out, "  %s %s: %s\n", cli.WarningStyle.Render("✗"), p.File, p.Reason)
	}
	fmt.Fprintf(out, "\n%s %s, skipped %d, failed %d.\n",
		verb, cli.Plural(len(r.Migrated), "file"), len(r.Skipped), len(r.Failed))
	if r.RemovedSource {
		fmt.Fprintln(out, "Removed the empty legacy directory.")
	}
}
