package sizer

import (
	"context"
	"sync"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc"

	"github.com/diskreclaim/reclaim/internal/du"
	"github.com/diskreclaim/reclaim/internal/fsentry"
	"github.com/diskreclaim/reclaim/internal/tree"
)

// UpdateFunc receives a node each time its size status changes. Calls are
// serialized, but arrive in no particular order across sibling subtrees;
// consumers should key on the node's path.
type UpdateFunc func(*tree.FileNode)

// aggregateFunc computes the aggregate usage of one directory.
type aggregateFunc func(ctx context.Context, dir string) (du.Usage, error)

// Estimator runs the size pass. Directory aggregation is the expensive
// operation and is the only thing gated by the limiter; file sizes are a
// single cheap stat and never wait for a permit.
type Estimator struct {
	log       zerolog.Logger
	aggregate aggregateFunc

	emitMu sync.Mutex
}

// NewEstimator returns an Estimator logging aggregation failures to log.
func NewEstimator(log zerolog.Logger) *Estimator {
	return &Estimator{log: log, aggregate: du.Calculate}
}

// Estimate recomputes sizes for root and every descendant, delivering all
// results through onUpdate. For any one node, a Calculating update always
// precedes its Calculated update. Estimate returns once the whole subtree
// is done; individual updates stream earlier.
func (e *Estimator) Estimate(ctx context.Context, root *tree.FileNode, onUpdate UpdateFunc, maxConcurrency int) {
	limiter := NewLimiter(maxConcurrency)

	e.estimateNode(ctx, root, onUpdate, limiter)
}

func (e *Estimator) estimateNode(ctx context.Context, node *tree.FileNode, onUpdate UpdateFunc, limiter *Limiter) {
	if node.IsSymlink {
		node.SizeBytes = 0
		node.SizeStatus = tree.SizeCalculated
		e.emit(onUpdate, node)

		return
	}

	if !node.IsDir {
		// Fast path: one stat, no permit, no suspension.
		if info, err := fsentry.Probe(node.Path); err == nil {
			node.SizeBytes = info.AllocatedBytes
		}

		node.SizeStatus = tree.SizeCalculated
		e.emit(onUpdate, node)

		return
	}

	node.SizeStatus = tree.SizeCalculating
	e.emit(onUpdate, node)

	limiter.Acquire()
	usage, err := e.aggregate(ctx, node.Path)
	limiter.Release()

	if err != nil {
		e.log.Warn().Err(err).Str("path", node.Path).Msg("directory aggregation failed, reporting zero")

		node.SizeBytes = 0
	} else {
		node.SizeBytes = usage.Bytes
	}

	node.SizeStatus = tree.SizeCalculated
	e.emit(onUpdate, node)

	// Fan out one task per immediate child without holding a permit, and
	// wait for all subtrees before the parent is considered done.
	var wg conc.WaitGroup

	for _, child := range node.Children {
		child := child

		wg.Go(func() {
			e.estimateNode(ctx, child, onUpdate, limiter)
		})
	}

	wg.Wait()
}

// emit serializes callback invocations so consumers need no locking.
func (e *Estimator) emit(onUpdate UpdateFunc, node *tree.FileNode) {
	if onUpdate == nil {
		return
	}

	e.emitMu.Lock()
	defer e.emitMu.Unlock()

	onUpdate(node)
}
