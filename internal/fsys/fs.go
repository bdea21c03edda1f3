// Package fsys is the filesystem layer behind the gateway.
//
// Every gateway operation performs exactly one call on an FS. Keeping the
// surface this narrow lets tests substitute a spy and prove that rejected
// requests never reach the disk.
package fsys

import (
	"io/fs"
)

// FS is the set of filesystem primitives the gateway may invoke.
// All paths are absolute and already confined by the caller.
type FS interface {
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte) error
	AppendFile(name string, data []byte) error
	// CopyFile copies src to dst. With exclusive set it fails when dst exists.
	CopyFile(src, dst string, exclusive bool) error
	// ReadDir lists a directory without following entry symlinks, sorted by name.
	ReadDir(name string) ([]fs.FileInfo, error)
	Stat(name string) (fs.FileInfo, error)
	Lstat(name string) (fs.FileInfo, error)
	Realpath(name string) (string, error)
	Readlink(name string) (string, error)
	Mkdir(name string, recursive bool) error
	Rmdir(name string, recursive bool) error
	Rm(name string, recursive, force bool) error
	Rename(oldName, newName string) error
	Unlink(name string) error
}
