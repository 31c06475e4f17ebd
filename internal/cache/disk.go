package cache

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/quarrydata/quarry/pkg/dataset"
	"github.com/quarrydata/quarry/pkg/table"
)

// Disk stores summary artifacts on the local filesystem at the
// canonical summary path under its root directory.
type Disk struct {
	root string
}

var _ dataset.SummaryStore = (*Disk)(nil)

// NewDisk creates a disk store rooted at root. Pass dataset.DataRoot()
// for the standard location.
func NewDisk(root string) *Disk {
	return &Disk{root: root}
}

// Exists reports whether a summary artifact is present for (name, kind).
func (d *Disk) Exists(_ context.Context, name, kind string) (bool, error) {
	_, err := os.Stat(dataset.SummaryPath(d.root, name, kind))
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("cache: checking summary for %q: %w", name, err)
}

// Load reads the stored summary table for (name, kind).
func (d *Disk) Load(_ context.Context, name, kind string) (*table.Table, error) {
	data, err := os.ReadFile(dataset.SummaryPath(d.root, name, kind))
	if err != nil {
		return nil, fmt.Errorf("cache: loading summary for %q: %w", name, err)
	}
	return unmarshalTable(data)
}

// Save writes the summary table for (name, kind), creating the
// dataset's directory if needed.
func (d *Disk) Save(_ context.Context, name, kind string, t *table.Table) error {
	data, err := marshalTable(t)
	if err != nil {
		return err
	}
	path := dataset.SummaryPath(d.root, name, kind)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("cache: creating %q: %w", filepath.Dir(path), err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("cache: saving summary for %q: %w", name, err)
	}
	return nil
}
