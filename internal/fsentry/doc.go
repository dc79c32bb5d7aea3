// Package fsentry reads identity metadata for single filesystem entries.
//
// A probe is one lstat-style call, so symlinks are detected before any
// directory semantics are assumed. Sizes are reported as allocated disk
// bytes (blocks), not logical length, which matters for sparse files.
package fsentry
