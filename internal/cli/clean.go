package cli

import (
	"bufio"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diskreclaim/reclaim/internal/cachescan"
	"github.com/diskreclaim/reclaim/internal/cleaner"
	"github.com/diskreclaim/reclaim/internal/config"
)

func newCleanCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		maxDepth int
		types    []string
		dryRun   bool
		yes      bool
	)

	cmd := &cobra.Command{
		Use:   "clean [roots...]",
		Short: "Delete reclaimable cache directories",
		Long: heredoc.Doc(`
			clean scans like the caches command, shows what it found, asks
			for confirmation, and deletes the matched directories. Deletion
			only ever touches paths the scanner classified and validated.

			Use --dry-run to see what would be removed, and --type to limit
			deletion to specific cache types (e.g. --type node-modules).
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			roots := cfg.Roots
			if len(args) > 0 {
				roots = args
			}

			if maxDepth <= 0 {
				maxDepth = cfg.MaxDepth
			}

			rules := cfg.EnabledRules()
			if len(types) > 0 {
				rules = slices.DeleteFunc(rules, func(r cachescan.Rule) bool {
					return !slices.Contains(types, r.ID)
				})

				if len(rules) == 0 {
					return fmt.Errorf("no enabled cache types match %v", types)
				}
			}

			scanner := cachescan.NewScanner(rules, *log)

			candidates, err := scanner.Scan(cmd.Context(), roots, maxDepth)
			if err != nil {
				return err
			}

			if len(candidates) == 0 {
				fmt.Fprintln(os.Stdout, "Nothing to reclaim.")

				return nil
			}

			sortBySize(candidates)

			if err := printCandidatesTable(candidates, os.Stdout); err != nil {
				return err
			}

			if !dryRun && !yes && !confirm(os.Stdin, os.Stdout, len(candidates)) {
				fmt.Fprintln(os.Stdout, "Aborted.")

				return nil
			}

			for i := range candidates {
				candidates[i].Selected = true
			}

			results := cleaner.Execute(candidates, cleaner.Options{DryRun: dryRun}, *log)

			failed := 0

			for _, r := range results {
				if r.Err != nil {
					failed++
				}
			}

			verb := "Reclaimed"
			if dryRun {
				verb = "Would reclaim"
			}

			reclaimed := cleaner.Reclaimed(results)
			fmt.Fprintf(os.Stdout, "\n%s %s from %d directories",
				verb, humanize.IBytes(uint64(reclaimed)), len(results)-failed) //nolint:gosec // Bytes is always positive

			if failed > 0 {
				fmt.Fprintf(os.Stdout, " (%d failed)", failed)
			}

			fmt.Fprintln(os.Stdout)

			return nil
		},
	}

	cmd.Flags().IntVarP(&maxDepth, "max-depth", "d", 0, "Maximum scan depth below each root (0 = config default)")
	cmd.Flags().StringSliceVar(&types, "type", nil, "Cache type IDs to clean (default: all enabled)")
	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Report what would be deleted without deleting")
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip the confirmation prompt")

	return cmd
}

// confirm asks the user before deleting anything. Anything but an explicit
// yes declines.
func confirm(in *os.File, out *os.File, count int) bool {
	fmt.Fprintf(out, "\nDelete %d directories? [y/N] ", count)

	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil {
		return false
	}

	answer := strings.ToLower(strings.TrimSpace(line))

	return answer == "y" || answer == "yes"
}
