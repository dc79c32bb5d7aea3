package tree

import (
	"os"
	"path/filepath"
	"sort"

	"github.com/rs/zerolog"

	"github.com/diskreclaim/reclaim/internal/fsentry"
)

// witnessSet records inodes already counted or already fully walked within
// one Walk call. It is never shared across independent scans.
type witnessSet map[fsentry.ID]struct{}

// Walker builds file trees by single-threaded recursive descent. The
// metadata-only phase is fast enough that concurrency would buy nothing.
type Walker struct {
	log zerolog.Logger
}

// NewWalker returns a Walker logging skipped entries to log.
func NewWalker(log zerolog.Logger) *Walker {
	return &Walker{log: log}
}

// Walk builds the tree rooted at rootPath. A missing or unreadable root is
// the only fatal condition; every per-entry failure below it is absorbed as
// an understated size.
//
// File sizes are final after Walk. Directory sizes are the preliminary sum
// of their children and keep status SizeNotCalculated until a size pass
// recomputes them.
func (w *Walker) Walk(rootPath string) (*FileNode, error) {
	info, err := fsentry.Probe(rootPath)
	if err != nil {
		return nil, err
	}

	return w.walk(info, make(witnessSet)), nil
}

func (w *Walker) walk(info fsentry.Info, seen witnessSet) *FileNode {
	node := newNode(info)

	switch {
	case info.IsSymlink:
		// Never followed: a leaf of size 0 regardless of the target.
		node.SizeStatus = SizeCalculated

		return node
	case !info.IsDir:
		if info.HasIdentity && info.Nlink > 1 {
			if _, dup := seen[info.ID]; dup {
				// Counted already under another name.
				node.SizeStatus = SizeCalculated

				return node
			}

			seen[info.ID] = struct{}{}
		}

		node.SizeBytes = info.AllocatedBytes
		node.SizeStatus = SizeCalculated

		return node
	}

	// Reached via another hard-linked path to the same directory: stop
	// rather than walk the contents twice.
	if info.HasIdentity {
		if _, dup := seen[info.ID]; dup && info.Nlink > 1 {
			return node
		}

		seen[info.ID] = struct{}{}
	}

	entries, err := os.ReadDir(info.Path)
	if err != nil {
		w.log.Debug().Err(err).Str("path", info.Path).Msg("skipping unreadable directory")

		return node
	}

	var total int64

	for _, entry := range entries {
		childPath := filepath.Join(info.Path, entry.Name())

		childInfo, err := fsentry.Probe(childPath)
		if err != nil {
			// Vanished or unreadable: the parent size is simply
			// understated, the walk continues.
			w.log.Debug().Err(err).Str("path", childPath).Msg("skipping entry")

			continue
		}

		child := w.walk(childInfo, seen)
		node.Children = append(node.Children, child)
		total += child.SizeBytes
	}

	// Largest first, for display. Stable so equal-sized siblings keep
	// directory order.
	sort.SliceStable(node.Children, func(i, j int) bool {
		return node.Children[i].SizeBytes > node.Children[j].SizeBytes
	})

	node.SizeBytes = total

	return node
}
