package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diskreclaim/reclaim/internal/cachescan"
	"github.com/diskreclaim/reclaim/internal/config"
)

func newCachesCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		maxDepth   int
		minSizeStr string
	)

	cmd := &cobra.Command{
		Use:   "caches [roots...]",
		Short: "Find reclaimable cache and build-artifact directories",
		Long: heredoc.Doc(`
			caches scans the given roots (default: configured roots) for
			directories like node_modules, target, and build that provably
			belong to a project, judged by marker files next to them
			(package.json, Cargo.toml, ...). Nothing is deleted; use the
			clean command for that.
		`),
		RunE: func(cmd *cobra.Command, args []string) error {
			roots := cfg.Roots
			if len(args) > 0 {
				roots = args
			}

			if maxDepth <= 0 {
				maxDepth = cfg.MaxDepth
			}

			var minSize int64

			if minSizeStr != "" {
				size, err := humanize.ParseBytes(minSizeStr)
				if err != nil {
					return fmt.Errorf("invalid min-size: %w", err)
				}

				minSize = int64(size) //nolint:gosec // Size conversion from humanize is safe
			}

			scanner := cachescan.NewScanner(cfg.EnabledRules(), *log)

			candidates, err := scanner.Scan(cmd.Context(), roots, maxDepth)
			if err != nil {
				return err
			}

			candidates = filterBySize(candidates, minSize)
			sortBySize(candidates)

			if cfg.Output == "json" {
				return printJSON(candidates, os.Stdout)
			}

			return printCandidatesTable(candidates, os.Stdout)
		},
	}

	cmd.Flags().IntVarP(&maxDepth, "max-depth", "d", 0, "Maximum scan depth below each root (0 = config default)")
	cmd.Flags().StringVar(&minSizeStr, "min-size", "0KB", "Minimum candidate size (e.g., 100MB)")

	return cmd
}

func filterBySize(candidates []cachescan.Candidate, minSize int64) []cachescan.Candidate {
	if minSize <= 0 {
		return candidates
	}

	kept := candidates[:0]

	for _, c := range candidates {
		if c.SizeBytes >= minSize {
			kept = append(kept, c)
		}
	}

	return kept
}

func sortBySize(candidates []cachescan.Candidate) {
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].SizeBytes > candidates[j].SizeBytes
	})
}
