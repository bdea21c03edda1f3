package sandbox

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrOutsideRoot is returned when a path resolves outside the confinement root
var ErrOutsideRoot = errors.New("path is outside the sandbox root")

// Resolve joins candidate onto root and verifies the result stays inside root.
// root must already be absolute and clean.
func Resolve(root, candidate string) (string, error) {
	rel := strings.TrimPrefix(candidate, "/")
	if os.PathSeparator != '/' {
		rel = strings.TrimPrefix(rel, string(os.PathSeparator))
	}

	resolved := filepath.Join(root, rel)
	if !Contains(root, resolved) {
		return "", fmt.Errorf("%w: %s", ErrOutsideRoot, candidate)
	}
	return resolved, nil
}

// Contains reports whether path equals root or is lexically beneath it.
func Contains(root, path string) bool {
	if path == root {
		return true
	}
	prefix := root
	if !strings.HasSuffix(prefix, string(os.PathSeparator)) {
		prefix += string(os.PathSeparator)
	}
	return strings.HasPrefix(path, prefix)
}

// Resolver binds a confinement root for repeated resolution
type Resolver struct {
	root string
}

// NewResolver creates a resolver for root, made absolute and cleaned.
func NewResolver(root string) (*Resolver, error) {
	if root == "" {
		return nil, errors.New("sandbox root is required")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve sandbox root: %w", err)
	}
	return &Resolver{root: filepath.Clean(abs)}, nil
}

// Root returns the absolute confinement root
func (r *Resolver) Root() string {
	return r.root
}

// Resolve confines candidate to the resolver's root
func (r *Resolver) Resolve(candidate string) (string, error) {
	return Resolve(r.root, candidate)
}

// ResolveAll resolves every candidate independently and fails if any escapes.
func (r *Resolver) ResolveAll(candidates ...string) ([]string, error) {
	out := make([]string, 0, len(candidates))
	for _, c := range candidates {
		p, err := r.Resolve(c)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, nil
}
