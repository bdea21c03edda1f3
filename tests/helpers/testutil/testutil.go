// Package testutil provides testing utilities and helpers for gateway tests.
package testutil

import (
	"io/fs"
	"testing"

	"github.com/stretchr/testify/mock"
)

// MockFS is a testify mock of fsys.FS. It doubles as a spy: tests assert
// on its recorded calls to prove a request never reached the filesystem.
type MockFS struct {
	mock.Mock
}

// NewMockFS creates a mock that accepts the recursive mkdir of root done at
// gateway construction. Any call without a matching expectation fails t.
func NewMockFS(t *testing.T, root string) *MockFS {
	t.Helper()
	m := new(MockFS)
	m.Test(t)
	m.On("Mkdir", root, true).Return(nil).Once()
	return m
}

// ReadFile mocks the ReadFile method.
func (m *MockFS) ReadFile(name string) ([]byte, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]byte), args.Error(1)
}

// WriteFile mocks the WriteFile method.
func (m *MockFS) WriteFile(name string, data []byte) error {
	return m.Called(name, data).Error(0)
}

// AppendFile mocks the AppendFile method.
func (m *MockFS) AppendFile(name string, data []byte) error {
	return m.Called(name, data).Error(0)
}

// CopyFile mocks the CopyFile method.
func (m *MockFS) CopyFile(src, dst string, exclusive bool) error {
	return m.Called(src, dst, exclusive).Error(0)
}

// ReadDir mocks the ReadDir method.
func (m *MockFS) ReadDir(name string) ([]fs.FileInfo, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]fs.FileInfo), args.Error(1)
}

// Stat mocks the Stat method.
func (m *MockFS) Stat(name string) (fs.FileInfo, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(fs.FileInfo), args.Error(1)
}

// Lstat mocks the Lstat method.
func (m *MockFS) Lstat(name string) (fs.FileInfo, error) {
	args := m.Called(name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(fs.FileInfo), args.Error(1)
}

// Realpath mocks the Realpath method.
func (m *MockFS) Realpath(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

// Readlink mocks the Readlink method.
func (m *MockFS) Readlink(name string) (string, error) {
	args := m.Called(name)
	return args.String(0), args.Error(1)
}

// Mkdir mocks the Mkdir method.
func (m *MockFS) Mkdir(name string, recursive bool) error {
	return m.Called(name, recursive).Error(0)
}

// Rmdir mocks the Rmdir method.
func (m *MockFS) Rmdir(name string, recursive bool) error {
	return m.Called(name, recursive).Error(0)
}

// Rm mocks the Rm method.
func (m *MockFS) Rm(name string, recursive, force bool) error {
	return m.Called(name, recursive, force).Error(0)
}

// Rename mocks the Rename method.
func (m *MockFS) Rename(oldName, newName string) error {
	return m.Called(oldName, newName).Error(0)
}

// Unlink mocks the Unlink method.
func (m *MockFS) Unlink(name string) error {
	return m.Called(name).Error(0)
}
