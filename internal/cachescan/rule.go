// Package cachescan identifies reclaimable cache and build-artifact
// directories by name, validated against marker files in the parent
// directory rather than by content inspection.
package cachescan

import (
	"os"
	"path/filepath"
	"strings"
)

// Predicate is one validation check for a candidate directory. Exactly one
// field is set.
type Predicate struct {
	// SiblingFile names a file that must exist next to the candidate.
	SiblingFile string
	// SiblingExt matches any file next to the candidate with this suffix.
	SiblingExt string
	// Match is a custom check for names no marker file can disambiguate.
	Match func(candidatePath, parentPath string) bool
}

// Rule describes one reclaimable directory type. Rules sharing a FolderName
// (e.g. "target" for Cargo, Maven, and sbt) are disambiguated by their
// predicates; registry order is the explicit tie-break priority.
type Rule struct {
	// ID is the stable type identifier, e.g. "cargo-target".
	ID string
	// DisplayName is the human-readable type name.
	DisplayName string
	// FolderName is the literal directory name to match.
	FolderName string
	// Predicates is the ordered validation list; the first match accepts.
	// An empty list accepts on name alone.
	Predicates []Predicate
}

// Validate reports whether candidatePath, a directory named r.FolderName,
// genuinely belongs to this rule's project type, judged by parentPath's
// contents. Predicates are checked in order; the first match wins.
func (r Rule) Validate(candidatePath, parentPath string) bool {
	if len(r.Predicates) == 0 {
		return true
	}

	for _, p := range r.Predicates {
		if p.matches(candidatePath, parentPath) {
			return true
		}
	}

	return false
}

func (p Predicate) matches(candidatePath, parentPath string) bool {
	switch {
	case p.SiblingFile != "":
		_, err := os.Stat(filepath.Join(parentPath, p.SiblingFile))

		return err == nil
	case p.SiblingExt != "":
		entries, err := os.ReadDir(parentPath)
		if err != nil {
			return false
		}

		// Directories count too: markers like .xcodeproj are bundles.
		for _, entry := range entries {
			if strings.HasSuffix(entry.Name(), p.SiblingExt) {
				return true
			}
		}

		return false
	case p.Match != nil:
		return p.Match(candidatePath, parentPath)
	default:
		return false
	}
}
