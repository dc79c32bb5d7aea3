//go:build !windows

package fsentry

import (
	"os"
	"syscall"
)

// blockSize is the unit st_blocks is reported in, per POSIX.
const blockSize = 512

// sysInfo holds platform-specific metadata decoded from an lstat result.
type sysInfo struct {
	dev       uint64
	inode     uint64
	nlink     uint64
	allocated int64
}

// sysStat extracts inode identity, link count, and allocated bytes.
func sysStat(fi os.FileInfo) (sysInfo, bool) {
	st, ok := fi.Sys().(*syscall.Stat_t)
	if !ok {
		return sysInfo{}, false
	}

	return sysInfo{
		dev:       uint64(st.Dev),
		inode:     st.Ino,
		nlink:     uint64(st.Nlink),
		allocated: st.Blocks * blockSize,
	}, true
}
