package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"

	"github.com/diskreclaim/reclaim/internal/cachescan"
	"github.com/diskreclaim/reclaim/internal/tree"
)

const (
	// TabSpacing is the number of spaces between tabwriter columns.
	TabSpacing = 2
)

// printJSON writes any result as indented JSON.
func printJSON(v any, writer io.Writer) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding JSON output: %w", err)
	}

	if _, err := fmt.Fprintln(writer, string(data)); err != nil {
		return err
	}

	return nil
}

// printTreeTable writes the largest directories under root in
// human-readable form, smallest of the top N first.
func printTreeTable(root *tree.FileNode, topN int, elapsed time.Duration, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	var dirs []*tree.FileNode

	root.Walk(func(n *tree.FileNode) {
		if n.IsDir && n != root {
			dirs = append(dirs, n)
		}
	})

	sort.SliceStable(dirs, func(i, j int) bool {
		return dirs[i].SizeBytes > dirs[j].SizeBytes
	})

	if topN > 0 && len(dirs) > topN {
		dirs = dirs[:topN]
	}

	fmt.Fprintln(w, "\nTop directories:\t\t")

	for i := len(dirs) - 1; i >= 0; i-- {
		n := dirs[i]

		pct := 0.0
		if root.SizeBytes > 0 {
			pct = 100.0 * float64(n.SizeBytes) / float64(root.SizeBytes)
		}

		fmt.Fprintf(w, "  %d) '%s'\t%s (%.1f%%)\n",
			i+1, n.Path, humanize.IBytes(uint64(n.SizeBytes)), pct) //nolint:gosec // Bytes is always positive
	}

	fmt.Fprintln(w, "\nStats:\t\t")
	fmt.Fprintf(w, "Total size:\t%s (%d bytes)\n",
		humanize.IBytes(uint64(root.SizeBytes)), root.SizeBytes) //nolint:gosec // Bytes is always positive
	fmt.Fprintf(w, "\nElapsed:\t%v\n", elapsed)

	return w.Flush()
}

// printCandidatesTable writes cache candidates in human-readable form,
// largest first.
func printCandidatesTable(candidates []cachescan.Candidate, writer io.Writer) error {
	w := tabwriter.NewWriter(writer, 0, 4, TabSpacing, ' ', 0)

	fmt.Fprintln(w, "\nReclaimable directories:\t\t\t")

	var total int64

	for i, c := range candidates {
		total += c.SizeBytes

		age := "never"
		if !c.LastModified.IsZero() {
			age = humanize.Time(c.LastModified)
		}

		fmt.Fprintf(w, "  %d) '%s'\t%s\t%s\tmodified %s\n",
			i+1, c.Path, c.DisplayName,
			humanize.IBytes(uint64(c.SizeBytes)), age) //nolint:gosec // Bytes is always positive
	}

	fmt.Fprintln(w, "\nStats:\t\t\t")
	fmt.Fprintf(w, "Candidates:\t%d\t\t\n", len(candidates))
	fmt.Fprintf(w, "Reclaimable:\t%s (%d bytes)\t\t\n",
		humanize.IBytes(uint64(total)), total) //nolint:gosec // Bytes is always positive

	return w.Flush()
}
