package fsys

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"

	"github.com/spf13/afero"
)

const (
	dirPerm  = 0o777
	filePerm = 0o666
)

// OS implements FS against the host filesystem
type OS struct {
	fs afero.Fs
}

// NewOS creates an FS backed by the operating system
func NewOS() *OS {
	return &OS{fs: afero.NewOsFs()}
}

// ReadFile reads the whole file
func (o *OS) ReadFile(name string) ([]byte, error) {
	return afero.ReadFile(o.fs, name)
}

// WriteFile creates or truncates name and writes data
func (o *OS) WriteFile(name string, data []byte) error {
	return afero.WriteFile(o.fs, name, data, filePerm)
}

// AppendFile appends data, creating the file if needed
func (o *OS) AppendFile(name string, data []byte) error {
	f, err := o.fs.OpenFile(name, os.O_WRONLY|os.O_CREATE|os.O_APPEND, filePerm)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// CopyFile copies src to dst, preserving permission bits
func (o *OS) CopyFile(src, dst string, exclusive bool) error {
	in, err := o.fs.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return err
	}
	if info.IsDir() {
		return &fs.PathError{Op: "copyfile", Path: src, Err: syscall.EISDIR}
	}

	flags := os.O_WRONLY | os.O_CREATE | os.O_TRUNC
	if exclusive {
		flags |= os.O_EXCL
	}
	out, err := o.fs.OpenFile(dst, flags, info.Mode().Perm())
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy %s to %s: %w", src, dst, err)
	}
	return out.Close()
}

// ReadDir lists entries using lstat semantics
func (o *OS) ReadDir(name string) ([]fs.FileInfo, error) {
	return afero.ReadDir(o.fs, name)
}

// Stat follows symlinks
func (o *OS) Stat(name string) (fs.FileInfo, error) {
	return o.fs.Stat(name)
}

// Lstat does not follow a final symlink
func (o *OS) Lstat(name string) (fs.FileInfo, error) {
	if l, ok := o.fs.(afero.Lstater); ok {
		info, _, err := l.LstatIfPossible(name)
		return info, err
	}
	return o.fs.Stat(name)
}

// Realpath returns the canonical absolute path with all links evaluated
func (o *OS) Realpath(name string) (string, error) {
	p, err := filepath.EvalSymlinks(name)
	if err != nil {
		return "", err
	}
	return filepath.Abs(p)
}

// Readlink returns the target of a symlink
func (o *OS) Readlink(name string) (string, error) {
	if l, ok := o.fs.(afero.LinkReader); ok {
		return l.ReadlinkIfPossible(name)
	}
	return "", &fs.PathError{Op: "readlink", Path: name, Err: afero.ErrNoReadlink}
}

// Mkdir creates a directory. Recursive creation tolerates existing parents.
func (o *OS) Mkdir(name string, recursive bool) error {
	if recursive {
		return o.fs.MkdirAll(name, dirPerm)
	}
	return o.fs.Mkdir(name, dirPerm)
}

// Rmdir removes an empty directory, or the whole tree when recursive
func (o *OS) Rmdir(name string, recursive bool) error {
	if recursive {
		return o.fs.RemoveAll(name)
	}
	if err := syscall.Rmdir(name); err != nil {
		return &fs.PathError{Op: "rmdir", Path: name, Err: err}
	}
	return nil
}

// Rm removes a file, or a directory tree when recursive.
// With force set a missing path is not an error.
func (o *OS) Rm(name string, recursive, force bool) error {
	info, err := o.Lstat(name)
	if err != nil {
		if force && errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if info.IsDir() {
		if !recursive {
			return &fs.PathError{Op: "rm", Path: name, Err: syscall.EISDIR}
		}
		return o.fs.RemoveAll(name)
	}
	return o.fs.Remove(name)
}

// Rename moves oldName to newName
func (o *OS) Rename(oldName, newName string) error {
	return o.fs.Rename(oldName, newName)
}

// Unlink removes a non-directory entry
func (o *OS) Unlink(name string) error {
	if err := syscall.Unlink(name); err != nil {
		return &fs.PathError{Op: "unlink", Path: name, Err: err}
	}
	return nil
}
