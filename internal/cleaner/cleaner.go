// Package cleaner executes deletion of selected cache candidates. It is a
// thin layer: every path it touches has already been classified and
// validated by the scanner.
package cleaner

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"

	"github.com/diskreclaim/reclaim/internal/cachescan"
)

// Result is the outcome of deleting one candidate.
type Result struct {
	Path      string
	SizeBytes int64
	Err       error
}

// Options configures deletion behavior.
type Options struct {
	// DryRun reports what would be deleted without touching the disk.
	DryRun bool
}

// Execute removes every selected candidate and returns one result per
// attempt. Unselected candidates are ignored. Failures are per-path, never
// fatal to the batch.
func Execute(candidates []cachescan.Candidate, opts Options, log zerolog.Logger) []Result {
	var results []Result

	for _, candidate := range candidates {
		if !candidate.Selected {
			continue
		}

		result := Result{Path: candidate.Path, SizeBytes: candidate.SizeBytes}

		if err := validatePath(candidate.Path); err != nil {
			result.Err = err
			results = append(results, result)

			continue
		}

		if opts.DryRun {
			log.Info().Str("path", candidate.Path).Msg("dry run, would delete")
			results = append(results, result)

			continue
		}

		if err := os.RemoveAll(candidate.Path); err != nil {
			log.Warn().Err(err).Str("path", candidate.Path).Msg("deletion failed")

			result.Err = err
		} else {
			log.Info().Str("path", candidate.Path).Int64("bytes", candidate.SizeBytes).Msg("deleted")
		}

		results = append(results, result)
	}

	return results
}

// Reclaimed sums the bytes of successful deletions.
func Reclaimed(results []Result) int64 {
	var total int64

	for _, r := range results {
		if r.Err == nil {
			total += r.SizeBytes
		}
	}

	return total
}

func validatePath(path string) error {
	if path == "" {
		return errors.New("refusing to delete empty path")
	}

	cleaned := filepath.Clean(path)
	if cleaned == string(filepath.Separator) || cleaned == "." {
		return errors.New("refusing to delete filesystem root")
	}

	if !filepath.IsAbs(cleaned) {
		return errors.New("refusing to delete relative path")
	}

	return nil
}
