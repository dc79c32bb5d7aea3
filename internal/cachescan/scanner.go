package cachescan

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"

	"github.com/diskreclaim/reclaim/internal/du"
)

// DefaultMaxDepth bounds how deep the scanner descends below each root.
const DefaultMaxDepth = 8

// claimSet tracks paths already accepted as candidates during one scan.
// Single writer; the scan is synchronous depth-first.
type claimSet struct {
	paths []string
}

// covers reports whether path equals, or lies beneath, a claimed path.
func (c *claimSet) covers(path string) bool {
	for _, claimed := range c.paths {
		if path == claimed || strings.HasPrefix(path, claimed+string(filepath.Separator)) {
			return true
		}
	}

	return false
}

func (c *claimSet) add(path string) {
	c.paths = append(c.paths, path)
}

// Scanner walks configured roots looking for directories matching enabled
// rules. A matched directory is claimed and never descended into, so no
// candidate can be nested inside another.
type Scanner struct {
	log   zerolog.Logger
	rules []Rule
	usage func(ctx context.Context, dir string) (du.Usage, error)
}

// NewScanner returns a Scanner over the given ordered rule table.
func NewScanner(rules []Rule, log zerolog.Logger) *Scanner {
	return &Scanner{log: log, rules: rules, usage: du.Calculate}
}

// Scan visits each root up to maxDepth (non-positive falls back to
// DefaultMaxDepth; depth resets per root) and returns every validated
// candidate. A missing root is fatal to the whole call; everything below a
// root is best effort.
func (s *Scanner) Scan(ctx context.Context, roots []string, maxDepth int) ([]Candidate, error) {
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	claimed := &claimSet{}

	var candidates []Candidate

	for _, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("resolving root %q: %w", root, err)
		}

		info, err := os.Lstat(abs)
		if err != nil {
			return nil, fmt.Errorf("accessing root %q: %w", root, err)
		}

		if !info.IsDir() {
			return nil, fmt.Errorf("root %q is not a directory", root)
		}

		s.scanDir(ctx, abs, 0, maxDepth, claimed, &candidates)
	}

	return candidates, nil
}

func (s *Scanner) scanDir(ctx context.Context, path string, depth, maxDepth int, claimed *claimSet, out *[]Candidate) {
	select {
	case <-ctx.Done():
		return
	default:
	}

	// A claimed cache directory's contents are never re-classified, even
	// when another root reaches them.
	if claimed.covers(path) {
		return
	}

	if depth > maxDepth {
		return
	}

	if rule, ok := s.classify(path); ok {
		candidate := Candidate{
			Path:        path,
			DisplayName: rule.DisplayName,
			TypeID:      rule.ID,
		}

		usage, err := s.usage(ctx, path)
		if err != nil {
			s.log.Warn().Err(err).Str("path", path).Msg("sizing candidate failed, reporting zero")
		} else {
			candidate.SizeBytes = usage.Bytes
			candidate.LastModified = usage.LastModified
		}

		*out = append(*out, candidate)
		claimed.add(path)

		return
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		s.log.Debug().Err(err).Str("path", path).Msg("skipping unreadable directory")

		return
	}

	for _, entry := range entries {
		// Symlinks report as non-directories here and are never followed.
		if !entry.IsDir() {
			continue
		}

		s.scanDir(ctx, filepath.Join(path, entry.Name()), depth+1, maxDepth, claimed, out)
	}
}

// classify checks path's name against the rule table in registry order and
// returns the first rule whose validation succeeds. A folder matches at
// most one type per scan.
func (s *Scanner) classify(path string) (Rule, bool) {
	name := filepath.Base(path)
	parent := filepath.Dir(path)

	for _, rule := range s.rules {
		if rule.FolderName != name {
			continue
		}

		if rule.Validate(path, parent) {
			return rule, true
		}
	}

	return Rule{}, false
}
