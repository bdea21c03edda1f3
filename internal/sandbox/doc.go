// Package sandbox confines caller-supplied paths to a single root directory.
//
// Resolution is purely lexical:
//   - One leading separator is stripped, so "/a/b" and "a/b" are equivalent
//   - "." and ".." segments are collapsed without touching the filesystem
//   - The result must equal the root or sit beneath it
//
// Symbolic links are not evaluated. A link planted inside the root that
// points elsewhere will pass resolution; callers needing stronger isolation
// must not allow link creation inside the root.
//
// Example Usage:
//
//	r, err := sandbox.NewResolver("/srv/data")
//	abs, err := r.Resolve("notes/today.txt")
package sandbox
