package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/MakeNowJust/heredoc/v2"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diskreclaim/reclaim/internal/config"
	"github.com/diskreclaim/reclaim/internal/sizer"
	"github.com/diskreclaim/reclaim/internal/tree"
)

func newDuCmd(cfg *config.Config, log *zerolog.Logger) *cobra.Command {
	var (
		topN        int
		concurrency int
	)

	cmd := &cobra.Command{
		Use:   "du [path]",
		Short: "Analyze disk usage of a directory tree",
		Long: heredoc.Doc(`
			du walks the tree rooted at path (default: current directory),
			counting hard links once and never following symlinks, then sizes
			every directory concurrently from allocated blocks, so sparse
			files report true disk consumption rather than logical length.
		`),
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			if concurrency <= 0 {
				concurrency = cfg.Concurrency
			}

			return runDu(cmd.Context(), path, topN, concurrency, cfg.Output, *log)
		},
	}

	cmd.Flags().IntVarP(&topN, "top", "t", 10, "Number of largest directories to display")
	cmd.Flags().IntVarP(&concurrency, "concurrency", "c", 0, "Max concurrent directory aggregations (0 = config default)")

	return cmd
}

func runDu(ctx context.Context, path string, topN, concurrency int, output string, log zerolog.Logger) error {
	root, err := tree.NewWalker(log).Walk(path)
	if err != nil {
		return err
	}

	enableProgress := output != "json" && isatty.IsTerminal(os.Stderr.Fd())

	var totalDirs int64

	root.Walk(func(n *tree.FileNode) {
		if n.IsDir {
			totalDirs++
		}
	})

	if enableProgress {
		// Hide cursor for in-place updates; restore on exit.
		fmt.Fprint(os.Stderr, "\033[?25l")
		defer fmt.Fprint(os.Stderr, "\033[?25h")
	}

	var sizedDirs int64

	start := time.Now()

	// Updates are serialized by the estimator, so the counter needs no lock.
	sizer.NewEstimator(log).Estimate(ctx, root, func(n *tree.FileNode) {
		if !enableProgress || !n.IsDir || n.SizeStatus != tree.SizeCalculated {
			return
		}

		sizedDirs++
		msg := fmt.Sprintf("Sizing… %d/%d directories, %s",
			sizedDirs, totalDirs, humanize.IBytes(uint64(root.SizeBytes))) //nolint:gosec // Bytes is always positive
		fmt.Fprintf(os.Stderr, "\r\033[2K%s\r", msg)
	}, concurrency)

	elapsed := time.Since(start)

	// Clear the status line
	if enableProgress {
		fmt.Fprint(os.Stderr, "\r\033[2K\r")
	}

	if output == "json" {
		return printJSON(root, os.Stdout)
	}

	return printTreeTable(root, topN, elapsed, os.Stdout)
}
