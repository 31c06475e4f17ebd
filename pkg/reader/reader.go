// Package reader defines the capability quarry datasets use to reach
// their underlying files. A Reader is created over one or more resolved
// local paths and exposes file listing and content access. Readers are
// shared between the datasets derived from one source and are never
// mutated after construction.
package reader

import (
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Reader provides file listing and content access over resolved local
// dataset locations.
type Reader interface {
	// List returns the relative paths of all constituent files, sorted.
	List() ([]string, error)
	// Open opens the named file for reading. The name must be one of the
	// relative paths returned by List.
	Open(name string) (io.ReadCloser, error)
	// Roots returns the resolved local paths this reader was created
	// over. Used for equality checks between readers.
	Roots() []string
}

// Equal reports whether two readers are backed by the same storage:
// either the same instance, or the same set of resolved root paths.
func Equal(a, b Reader) bool {
	if a == b {
		return true
	}
	if a == nil || b == nil {
		return false
	}
	ra, rb := sortedRoots(a), sortedRoots(b)
	if len(ra) != len(rb) {
		return false
	}
	for i := range ra {
		if ra[i] != rb[i] {
			return false
		}
	}
	return true
}

func sortedRoots(r Reader) []string {
	roots := append([]string(nil), r.Roots()...)
	sort.Strings(roots)
	return roots
}

// FS reads files from one or more local directories.
type FS struct {
	roots []string
}

// NewFS creates a reader over the given local directories.
// Each root must exist.
func NewFS(roots ...string) (*FS, error) {
	if len(roots) == 0 {
		return nil, fmt.Errorf("reader: at least one root path is required")
	}
	cleaned := make([]string, len(roots))
	for i, root := range roots {
		abs, err := filepath.Abs(root)
		if err != nil {
			return nil, fmt.Errorf("reader: cannot resolve %q: %w", root, err)
		}
		if _, err := os.Stat(abs); err != nil {
			return nil, fmt.Errorf("reader: root %q: %w", root, err)
		}
		cleaned[i] = abs
	}
	return &FS{roots: cleaned}, nil
}

// List walks every root and returns the relative paths of all regular
// files, sorted lexicographically. When roots overlap, Open resolves a
// relative path against the roots in order.
func (r *FS) List() ([]string, error) {
	var files []string
	for _, root := range r.roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			rel, err := filepath.Rel(root, path)
			if err != nil {
				return err
			}
			files = append(files, filepath.ToSlash(rel))
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("reader: walking %q: %w", root, err)
		}
	}
	sort.Strings(files)
	return files, nil
}

// Open opens the named relative path, searching the roots in order.
func (r *FS) Open(name string) (io.ReadCloser, error) {
	if !fs.ValidPath(name) {
		return nil, fmt.Errorf("reader: invalid file name %q", name)
	}
	for _, root := range r.roots {
		path := filepath.Join(root, filepath.FromSlash(name))
		f, err := os.Open(path)
		if err == nil {
			return f, nil
		}
		if !os.IsNotExist(err) {
			return nil, fmt.Errorf("reader: opening %q: %w", name, err)
		}
	}
	return nil, fmt.Errorf("reader: no file %q under roots %s", name, strings.Join(r.roots, ", "))
}

// Roots returns the resolved root directories.
func (r *FS) Roots() []string {
	return append([]string(nil), r.roots...)
}

// Size returns the total byte size of all files under the roots.
func (r *FS) Size() (int64, error) {
	var total int64
	for _, root := range r.roots {
		err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				return nil
			}
			info, err := d.Info()
			if err != nil {
				return err
			}
			total += info.Size()
			return nil
		})
		if err != nil {
			return 0, fmt.Errorf("reader: sizing %q: %w", root, err)
		}
	}
	return total, nil
}

// Empty is a reader with no files. It backs datasets that exist only to
// carry metadata, such as registry placeholders in tests.
type Empty struct{}

// NewEmpty returns a reader with no files.
func NewEmpty() *Empty { return &Empty{} }

// List returns no files.
func (*Empty) List() ([]string, error) { return nil, nil }

// Open always fails.
func (*Empty) Open(name string) (io.ReadCloser, error) {
	return nil, fmt.Errorf("reader: empty reader has no file %q", name)
}

// Roots returns no paths.
func (*Empty) Roots() []string { return nil }
