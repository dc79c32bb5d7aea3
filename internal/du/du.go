// Package du computes the aggregate disk usage of a single directory.
//
// It walks the directory with fastwalk (parallel traversal), summing
// allocated bytes with hard-link deduplication scoped to that one call,
// and tracks the most recent modification time found anywhere beneath it.
package du

import (
	"context"
	"io/fs"
	"sync"
	"time"

	"github.com/charlievieth/fastwalk"

	"github.com/diskreclaim/reclaim/internal/fsentry"
)

// Usage is the result of one directory aggregation.
type Usage struct {
	// Bytes is the allocated disk usage, hard links counted once.
	Bytes int64
	// Files is the number of regular files counted.
	Files int64
	// LastModified is the newest modification time found under the
	// directory, including the directory itself.
	LastModified time.Time
}

// accumulator aggregates usage from concurrent fastwalk callbacks.
type accumulator struct {
	mu    sync.Mutex
	usage Usage
	seen  map[fsentry.ID]struct{}
}

// add records one regular file, counting each inode once per aggregation.
func (a *accumulator) add(id fsentry.ID, nlink uint64, hasIdentity bool, size int64) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if hasIdentity && nlink > 1 {
		if _, dup := a.seen[id]; dup {
			return
		}

		a.seen[id] = struct{}{}
	}

	a.usage.Bytes += size
	a.usage.Files++
}

// touch advances the newest modification time.
func (a *accumulator) touch(mod time.Time) {
	a.mu.Lock()
	defer a.mu.Unlock()

	if mod.After(a.usage.LastModified) {
		a.usage.LastModified = mod
	}
}

// Calculate aggregates the disk usage of exactly dir. Symlinks are not
// followed. Per-entry errors are skipped; only a missing or unreadable dir
// itself is an error.
func Calculate(ctx context.Context, dir string) (Usage, error) {
	acc := &accumulator{seen: make(map[fsentry.ID]struct{})}

	conf := &fastwalk.Config{
		Follow: false, // Don't follow symlinks
	}

	err := fastwalk.Walk(conf, dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir {
				return err
			}

			return nil // Silently skip errors below the root
		}

		// Check cancellation periodically
		select {
		case <-ctx.Done():
			return context.Canceled
		default:
		}

		info, err := d.Info()
		if err != nil {
			return nil //nolint:nilerr // Intentionally skip errors during walk
		}

		acc.touch(info.ModTime())

		if !d.Type().IsRegular() {
			return nil
		}

		id, nlink, ok := fsentry.Identity(info)
		acc.add(id, nlink, ok, fsentry.AllocatedSize(info))

		return nil
	})
	if err != nil {
		return Usage{}, err
	}

	return acc.usage, nil
}
