package fsys

import (
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOSReadWriteAppend(t *testing.T) {
	dir := t.TempDir()
	o := NewOS()
	path := filepath.Join(dir, "a.txt")

	require.NoError(t, o.WriteFile(path, []byte("Hello")))
	require.NoError(t, o.AppendFile(path, []byte(", World")))

	data, err := o.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "Hello, World", string(data))

	// Append creates missing files
	other := filepath.Join(dir, "b.txt")
	require.NoError(t, o.AppendFile(other, []byte("x")))
	data, err = o.ReadFile(other)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
}

func TestOSCopyFile(t *testing.T) {
	dir := t.TempDir()
	o := NewOS()
	src := filepath.Join(dir, "src.txt")
	dst := filepath.Join(dir, "dst.txt")
	require.NoError(t, o.WriteFile(src, []byte("payload")))

	require.NoError(t, o.CopyFile(src, dst, false))
	data, err := o.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "payload", string(data))

	// Exclusive copy refuses to overwrite
	err = o.CopyFile(src, dst, true)
	assert.ErrorIs(t, err, fs.ErrExist)

	err = o.CopyFile(filepath.Join(dir, "missing"), dst, false)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	err = o.CopyFile(dir, filepath.Join(dir, "dircopy"), false)
	assert.Error(t, err)
}

func TestOSDirectories(t *testing.T) {
	dir := t.TempDir()
	o := NewOS()
	nested := filepath.Join(dir, "a", "b", "c")

	assert.Error(t, o.Mkdir(nested, false))
	require.NoError(t, o.Mkdir(nested, true))
	require.NoError(t, o.Mkdir(nested, true))

	require.NoError(t, o.WriteFile(filepath.Join(dir, "a", "file.txt"), []byte("x")))
	entries, err := o.ReadDir(filepath.Join(dir, "a"))
	require.NoError(t, err)
	require.Len(t, entries, 2)
	assert.Equal(t, "b", entries[0].Name())
	assert.True(t, entries[0].IsDir())
	assert.Equal(t, "file.txt", entries[1].Name())

	// Non-recursive rmdir refuses a non-empty directory
	assert.Error(t, o.Rmdir(filepath.Join(dir, "a"), false))
	require.NoError(t, o.Rmdir(nested, false))
	require.NoError(t, o.Rmdir(filepath.Join(dir, "a"), true))

	_, err = o.Stat(filepath.Join(dir, "a"))
	assert.ErrorIs(t, err, fs.ErrNotExist)
}

func TestOSRm(t *testing.T) {
	dir := t.TempDir()
	o := NewOS()
	sub := filepath.Join(dir, "sub")
	require.NoError(t, o.Mkdir(sub, true))
	require.NoError(t, o.WriteFile(filepath.Join(sub, "f"), []byte("x")))

	err := o.Rm(sub, false, false)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is a directory")

	require.NoError(t, o.Rm(sub, true, false))

	missing := filepath.Join(dir, "missing")
	assert.ErrorIs(t, o.Rm(missing, false, false), fs.ErrNotExist)
	assert.NoError(t, o.Rm(missing, false, true))

	file := filepath.Join(dir, "file")
	require.NoError(t, o.WriteFile(file, []byte("x")))
	require.NoError(t, o.Rm(file, false, false))
}

func TestOSUnlinkAndRename(t *testing.T) {
	dir := t.TempDir()
	o := NewOS()
	a := filepath.Join(dir, "a.txt")
	b := filepath.Join(dir, "b.txt")
	require.NoError(t, o.WriteFile(a, []byte("x")))

	require.NoError(t, o.Rename(a, b))
	_, err := o.Stat(a)
	assert.ErrorIs(t, err, fs.ErrNotExist)

	require.NoError(t, o.Unlink(b))
	assert.ErrorIs(t, o.Unlink(b), fs.ErrNotExist)

	sub := filepath.Join(dir, "sub")
	require.NoError(t, o.Mkdir(sub, false))
	assert.Error(t, o.Unlink(sub))
}

func TestOSLinks(t *testing.T) {
	dir := t.TempDir()
	o := NewOS()
	target := filepath.Join(dir, "target.txt")
	link := filepath.Join(dir, "link.txt")
	require.NoError(t, o.WriteFile(target, []byte("hello")))
	if err := os.Symlink(target, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}

	got, err := o.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, target, got)

	_, err = o.Readlink(target)
	assert.Error(t, err)

	li, err := o.Lstat(link)
	require.NoError(t, err)
	assert.True(t, li.Mode()&fs.ModeSymlink != 0)

	si, err := o.Stat(link)
	require.NoError(t, err)
	assert.True(t, si.Mode().IsRegular())
	assert.Equal(t, int64(5), si.Size())

	real, err := o.Realpath(link)
	require.NoError(t, err)
	wantReal, err := filepath.EvalSymlinks(target)
	require.NoError(t, err)
	assert.Equal(t, wantReal, real)
}

func TestTimesAndMode(t *testing.T) {
	dir := t.TempDir()
	o := NewOS()
	path := filepath.Join(dir, "f")
	require.NoError(t, o.WriteFile(path, []byte("x")))

	fi, err := o.Stat(path)
	require.NoError(t, err)

	times := Times(fi)
	assert.False(t, times.Modify.IsZero())
	assert.False(t, times.Access.IsZero())
	assert.False(t, times.Change.IsZero())
	assert.False(t, times.Birth.IsZero())
	assert.NotZero(t, Mode(fi)&0o600)
}
