package fsentry

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProbeRegularFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "data.bin")
	require.NoError(t, os.WriteFile(path, make([]byte, 8192), 0o644))
	require.NoError(t, os.Chmod(path, 0o644))

	info, err := Probe(path)
	require.NoError(t, err)

	assert.Equal(t, "data.bin", info.Name)
	assert.True(t, filepath.IsAbs(info.Path))
	assert.False(t, info.IsDir)
	assert.False(t, info.IsSymlink)
	assert.False(t, info.Hidden)
	assert.False(t, info.ReadOnly)
	assert.Equal(t, "rw-r--r--", info.Perm)

	if runtime.GOOS != "windows" {
		assert.True(t, info.HasIdentity)
		assert.EqualValues(t, 1, info.Nlink)
		assert.GreaterOrEqual(t, info.AllocatedBytes, int64(8192))
	}
}

func TestProbeReadOnly(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "frozen.txt")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))
	require.NoError(t, os.Chmod(path, 0o444))

	info, err := Probe(path)
	require.NoError(t, err)

	assert.True(t, info.ReadOnly)
	assert.Equal(t, "r--r--r--", info.Perm)
}

func TestProbeHiddenByDotName(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("x"), 0o644))

	info, err := Probe(path)
	require.NoError(t, err)

	assert.True(t, info.Hidden)
}

func TestProbeSymlink(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("symlink creation requires privileges on windows")
	}

	dir := t.TempDir()
	target := filepath.Join(dir, "target")
	require.NoError(t, os.Mkdir(target, 0o755))

	link := filepath.Join(dir, "link")
	require.NoError(t, os.Symlink(target, link))

	info, err := Probe(link)
	require.NoError(t, err)

	// The probe must see the link itself, not the directory behind it.
	assert.True(t, info.IsSymlink)
	assert.False(t, info.IsDir)
}

func TestProbeDirectory(t *testing.T) {
	dir := t.TempDir()

	info, err := Probe(dir)
	require.NoError(t, err)

	assert.True(t, info.IsDir)
	assert.False(t, info.IsSymlink)
}

func TestProbeMissingPath(t *testing.T) {
	info, err := Probe(filepath.Join(t.TempDir(), "gone"))

	require.ErrorIs(t, err, ErrNotFound)
	assert.Zero(t, info)
}

func TestPermString(t *testing.T) {
	assert.Equal(t, "rwxr-xr-x", permString(0o755))
	assert.Equal(t, "rw-------", permString(0o600))
	assert.Equal(t, "---------", permString(0))
}
