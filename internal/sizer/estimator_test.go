package sizer

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/diskreclaim/reclaim/internal/du"
	"github.com/diskreclaim/reclaim/internal/tree"
)

func dirNode(path string, children ...*tree.FileNode) *tree.FileNode {
	return &tree.FileNode{
		Name:     filepath.Base(path),
		Path:     path,
		IsDir:    true,
		Children: children,
	}
}

func TestEstimateBoundedConcurrency(t *testing.T) {
	children := make([]*tree.FileNode, 0, 10)
	for i := 0; i < 10; i++ {
		children = append(children, dirNode(fmt.Sprintf("/scan/d%d", i)))
	}

	root := dirNode("/scan", children...)

	var inFlight, maxSeen atomic.Int64

	e := NewEstimator(zerolog.Nop())
	e.aggregate = func(_ context.Context, _ string) (du.Usage, error) {
		cur := inFlight.Add(1)
		defer inFlight.Add(-1)

		for {
			seen := maxSeen.Load()
			if cur <= seen || maxSeen.CompareAndSwap(seen, cur) {
				break
			}
		}

		time.Sleep(20 * time.Millisecond)

		return du.Usage{Bytes: 100}, nil
	}

	e.Estimate(context.Background(), root, nil, 2)

	assert.LessOrEqual(t, maxSeen.Load(), int64(2))

	root.Walk(func(n *tree.FileNode) {
		assert.Equal(t, tree.SizeCalculated, n.SizeStatus, n.Path)
		assert.EqualValues(t, 100, n.SizeBytes, n.Path)
	})
}

func TestEstimateStatusOrderingPerNode(t *testing.T) {
	root := dirNode("/scan",
		dirNode("/scan/a", dirNode("/scan/a/x")),
		dirNode("/scan/b"),
	)

	e := NewEstimator(zerolog.Nop())
	e.aggregate = func(_ context.Context, _ string) (du.Usage, error) {
		return du.Usage{Bytes: 1}, nil
	}

	// Callback invocations are serialized, so plain map access is safe.
	updates := make(map[string][]tree.SizeStatus)

	e.Estimate(context.Background(), root, func(n *tree.FileNode) {
		updates[n.Path] = append(updates[n.Path], n.SizeStatus)
	}, 4)

	for _, path := range []string{"/scan", "/scan/a", "/scan/a/x", "/scan/b"} {
		require.Equal(t,
			[]tree.SizeStatus{tree.SizeCalculating, tree.SizeCalculated},
			updates[path], path)
	}
}

func TestEstimateAggregationFailureIsLocal(t *testing.T) {
	root := dirNode("/scan",
		dirNode("/scan/bad"),
		dirNode("/scan/good"),
	)

	e := NewEstimator(zerolog.Nop())
	e.aggregate = func(_ context.Context, dir string) (du.Usage, error) {
		if dir == "/scan/bad" {
			return du.Usage{}, errors.New("boom")
		}

		return du.Usage{Bytes: 42}, nil
	}

	e.Estimate(context.Background(), root, nil, 2)

	var bad, good *tree.FileNode

	root.Walk(func(n *tree.FileNode) {
		switch n.Path {
		case "/scan/bad":
			bad = n
		case "/scan/good":
			good = n
		}
	})

	require.NotNil(t, bad)
	require.NotNil(t, good)

	// The failed directory reports zero and is still Calculated; the
	// sibling is unaffected.
	assert.Zero(t, bad.SizeBytes)
	assert.Equal(t, tree.SizeCalculated, bad.SizeStatus)
	assert.EqualValues(t, 42, good.SizeBytes)
}

func TestEstimateFileFastPath(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 8192), 0o644))

	node := &tree.FileNode{Name: "f.bin", Path: path}

	var updates int

	NewEstimator(zerolog.Nop()).Estimate(context.Background(), node, func(n *tree.FileNode) {
		updates++
		assert.Equal(t, tree.SizeCalculated, n.SizeStatus)
	}, 1)

	assert.Equal(t, 1, updates)
	assert.GreaterOrEqual(t, node.SizeBytes, int64(8192))
}

func TestEstimateSymlinkIsZero(t *testing.T) {
	node := &tree.FileNode{Name: "link", Path: "/scan/link", IsSymlink: true, SizeBytes: 99}

	NewEstimator(zerolog.Nop()).Estimate(context.Background(), node, nil, 1)

	assert.Zero(t, node.SizeBytes)
	assert.Equal(t, tree.SizeCalculated, node.SizeStatus)
}
