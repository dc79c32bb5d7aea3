// Package tree builds exclusively-owned file trees by synchronous recursive
// descent, deduplicating hard links and never following symlinks.
package tree

import (
	"time"

	"github.com/diskreclaim/reclaim/internal/fsentry"
)

// SizeStatus tracks the lifecycle of a node's size field.
type SizeStatus uint8

const (
	// SizeNotCalculated means no size pass has touched the node yet.
	SizeNotCalculated SizeStatus = iota
	// SizeCalculating means a size computation for the node is in flight.
	SizeCalculating
	// SizeCalculated means the size field is final.
	SizeCalculated
)

func (s SizeStatus) String() string {
	switch s {
	case SizeCalculating:
		return "calculating"
	case SizeCalculated:
		return "calculated"
	default:
		return "not-calculated"
	}
}

// FileNode represents one filesystem entry in a scanned tree. A directory
// node exclusively owns its children; there is no sharing and no cycles.
//
// A symlink node never has children and its size is always 0. A node whose
// inode was already counted elsewhere (hard link) carries size 0 but still
// appears in the tree for display.
type FileNode struct {
	Name       string      `json:"name"`
	Path       string      `json:"path"`
	SizeBytes  int64       `json:"size_bytes"`
	ModTime    time.Time   `json:"mod_time"`
	IsDir      bool        `json:"is_dir"`
	IsSymlink  bool        `json:"is_symlink"`
	Perm       string      `json:"perm"`
	Hidden     bool        `json:"hidden"`
	ReadOnly   bool        `json:"read_only"`
	SizeStatus SizeStatus  `json:"-"`
	Children   []*FileNode `json:"children,omitempty"`
}

// newNode converts probe metadata into a tree node.
func newNode(info fsentry.Info) *FileNode {
	return &FileNode{
		Name:      info.Name,
		Path:      info.Path,
		ModTime:   info.ModTime,
		IsDir:     info.IsDir,
		IsSymlink: info.IsSymlink,
		Perm:      info.Perm,
		Hidden:    info.Hidden,
		ReadOnly:  info.ReadOnly,
	}
}

// Walk applies fn to the node and every descendant, depth first.
func (n *FileNode) Walk(fn func(*FileNode)) {
	fn(n)

	for _, child := range n.Children {
		child.Walk(fn)
	}
}
