package dataset

import (
	"context"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/quarrydata/quarry/internal/fetch"
	"github.com/quarrydata/quarry/pkg/reader"
	"github.com/quarrydata/quarry/pkg/table"
)

// Fetcher materializes a remote resource under destDir, extracting
// archives when extract is true, and returns the resulting local path.
// Failures propagate unchanged; no retrying happens at this layer.
type Fetcher func(ctx context.Context, src, destDir string, extract bool) (string, error)

// DefaultFetcher is the downloader CreateReader uses. Swappable in
// tests.
var DefaultFetcher Fetcher = fetch.Fetch

// CreateReader resolves each path to a local location and returns a
// reader over all of them. A path that already exists locally is used
// as-is; anything else goes through DefaultFetcher with extraction
// enabled, landing under DataRoot. When name is non-empty the whole
// resolution runs in that dataset's named diagnostic scope.
func CreateReader(ctx context.Context, paths []string, name string) (reader.Reader, error) {
	resolve := func() (reader.Reader, error) {
		resolved := make([]string, 0, len(paths))
		for _, p := range paths {
			if _, err := os.Stat(p); err == nil {
				resolved = append(resolved, p)
				continue
			}
			dest := downloadDir(name, p)
			local, err := DefaultFetcher(ctx, p, dest, true)
			if err != nil {
				return nil, err
			}
			resolved = append(resolved, local)
		}
		return reader.NewFS(resolved...)
	}

	if name == "" {
		return resolve()
	}
	sc := newScope(name)
	r, err := resolve()
	if err != nil {
		return nil, sc.wrap(err)
	}
	return r, nil
}

// FromTableFunc builds a dataset by resolving a reader over paths and
// applying buildRows to it. This is the usual way concrete kinds turn a
// downloaded directory tree into example rows.
func FromTableFunc(ctx context.Context, kind string, paths []string, label ColumnRef,
	buildRows func(reader.Reader) (*table.Table, error)) (*Dataset, error) {
	r, err := CreateReader(ctx, paths, "")
	if err != nil {
		return nil, err
	}
	rows, err := buildRows(r)
	if err != nil {
		return nil, err
	}
	return New(kind, rows, r, label)
}

// downloadDir picks the directory a resource is fetched into: the
// dataset's own directory under DataRoot when named, otherwise a
// directory derived from the resource's base name.
func downloadDir(name, src string) string {
	if name == "" {
		base := path.Base(strings.TrimSuffix(src, "/"))
		if i := strings.IndexAny(base, "?#"); i >= 0 {
			base = base[:i]
		}
		name = strings.TrimSuffix(base, path.Ext(base))
	}
	return filepath.Join(DataRoot(), name)
}
