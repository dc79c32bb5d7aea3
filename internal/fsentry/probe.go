package fsentry

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// ErrNotFound reports that a path vanished between discovery and probing.
// Callers are expected to skip the entry, not abort the scan.
var ErrNotFound = errors.New("entry not found")

// ID identifies the underlying storage object of an entry. Multiple paths
// (hard links) can share one ID.
type ID struct {
	Dev   uint64
	Inode uint64
}

// Info holds the identity metadata of one filesystem entry.
type Info struct {
	// Name is the base name of the entry.
	Name string
	// Path is the absolute path.
	Path string
	// ModTime is the last modification time.
	ModTime time.Time
	// IsDir reports whether the entry is a directory.
	IsDir bool
	// IsSymlink reports whether the entry is a symbolic link.
	IsSymlink bool
	// Perm is the 9-character rwx permission string (owner/group/other).
	Perm string
	// Hidden reports whether the entry is hidden.
	Hidden bool
	// ReadOnly reports whether the owner write bit is unset.
	ReadOnly bool
	// Nlink is the hard-link count.
	Nlink uint64
	// ID identifies the underlying inode.
	ID ID
	// AllocatedBytes is the disk space consumed by the entry (blocks),
	// falling back to logical size where the platform stat is unavailable.
	AllocatedBytes int64
	// HasIdentity reports whether ID and Nlink carry real platform values.
	HasIdentity bool
}

// Probe reads the identity metadata of path with a single lstat call.
// A missing path yields an error wrapping ErrNotFound.
func Probe(path string) (Info, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return Info{}, fmt.Errorf("resolving absolute path for %q: %w", path, err)
	}

	info, err := os.Lstat(abs)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Info{}, fmt.Errorf("probing %q: %w", path, ErrNotFound)
		}

		return Info{}, fmt.Errorf("probing %q: %w", path, err)
	}

	return FromFileInfo(abs, info), nil
}

// FromFileInfo decodes an already-obtained lstat result. Walkers that list
// directories themselves use this to avoid a second stat per entry.
func FromFileInfo(abs string, fi os.FileInfo) Info {
	mode := fi.Mode()
	st, ok := sysStat(fi)

	allocated := st.allocated
	if !ok {
		allocated = fi.Size()
	}

	return Info{
		Name:           fi.Name(),
		Path:           abs,
		ModTime:        fi.ModTime(),
		IsDir:          mode.IsDir(),
		IsSymlink:      mode&os.ModeSymlink != 0,
		Perm:           permString(mode),
		Hidden:         strings.HasPrefix(fi.Name(), "."),
		ReadOnly:       mode.Perm()&0o200 == 0,
		Nlink:          st.nlink,
		ID:             ID{Dev: st.dev, Inode: st.inode},
		AllocatedBytes: allocated,
		HasIdentity:    ok,
	}
}

// Identity extracts the inode identity and link count from an lstat result.
func Identity(fi os.FileInfo) (ID, uint64, bool) {
	st, ok := sysStat(fi)

	return ID{Dev: st.dev, Inode: st.inode}, st.nlink, ok
}

// AllocatedSize reports the disk space consumed by an entry, falling back
// to logical size where the platform stat is unavailable.
func AllocatedSize(fi os.FileInfo) int64 {
	if st, ok := sysStat(fi); ok {
		return st.allocated
	}

	return fi.Size()
}

// permString decodes mode into the standard rwxrwxrwx form.
func permString(mode os.FileMode) string {
	const symbols = "rwxrwxrwx"

	var b strings.Builder

	perm := mode.Perm()
	for i := 0; i < 9; i++ {
		if perm&(1<<uint(8-i)) != 0 {
			b.WriteByte(symbols[i])
		} else {
			b.WriteByte('-')
		}
	}

	return b.String()
}
