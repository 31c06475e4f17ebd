// Package dataset implements the core of the quarry catalog: the
// Dataset entity with its split/merge/summary operations, and the
// Registry that materializes datasets by name on demand.
//
// A Dataset wraps an ordered table of example metadata (file paths,
// labels) together with the Reader that resolves those paths to
// content. Datasets are never mutated: every operation returns new
// instances that share the same Reader.
package dataset

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/quarrydata/quarry/internal/printer"
	"github.com/quarrydata/quarry/pkg/reader"
	"github.com/quarrydata/quarry/pkg/table"
)

// Dataset is a table of examples bound to a Reader.
// The Reader is shared, not owned; Rows is replaced, never edited.
type Dataset struct {
	// Kind is the dataset category tag, e.g. "image-classification".
	// It partitions the registry namespace.
	Kind string
	// Name is set when the dataset is materialized through a registry,
	// and derived ("parent.0", "parent.merged") by transformations.
	Name string
	// Rows holds one record per example.
	Rows *table.Table
	// Reader resolves the examples' file paths to content.
	Reader reader.Reader
	// LabelColumn is the resolved identifier of the label column, or ""
	// when the dataset has no designated labels.
	LabelColumn string
}

// ColumnRef identifies a table column either by name or by position.
// The zero value means "no column".
type ColumnRef struct {
	name    string
	index   int
	byIndex bool
	set     bool
}

// Col references a column by name.
func Col(name string) ColumnRef {
	return ColumnRef{name: name, set: true}
}

// ColAt references a column by position; the position is resolved to the
// column's identifier at dataset construction.
func ColAt(i int) ColumnRef {
	return ColumnRef{index: i, byIndex: true, set: true}
}

// NoLabel is the absent column reference.
var NoLabel = ColumnRef{}

// New constructs a Dataset of the given kind.
//
// rows and r must be non-nil. When label is set, it is resolved to a
// column identifier (a positional reference fails if out of range, a
// named reference fails if absent) and rows whose label value is nil
// are dropped. An empty result is valid but reported as a warning.
func New(kind string, rows *table.Table, r reader.Reader, label ColumnRef) (*Dataset, error) {
	if rows == nil {
		return nil, fmt.Errorf("%w: rows table is nil", ErrInvalidType)
	}
	if r == nil {
		return nil, fmt.Errorf("%w: reader is nil", ErrInvalidType)
	}

	labelColumn := ""
	if label.set {
		if label.byIndex {
			name, err := rows.ColumnName(label.index)
			if err != nil {
				return nil, fmt.Errorf("%w: label column index %d is not in columns %v",
					ErrInvalidValue, label.index, rows.Columns())
			}
			labelColumn = name
		} else {
			labelColumn = label.name
		}
		if !rows.HasColumn(labelColumn) {
			return nil, fmt.Errorf("%w: label column %q is not in columns %v",
				ErrInvalidValue, labelColumn, rows.Columns())
		}
		c := rows.ColumnIndex(labelColumn)
		rows = rows.Filter(func(row []any) bool { return row[c] != nil })
	}

	if rows.Len() == 0 {
		printer.Warning("no examples found: the rows table is empty")
		printer.Warning("use the dataset's Reader.List() to check which files were found")
	}

	return &Dataset{
		Kind:        kind,
		Rows:        rows,
		Reader:      r,
		LabelColumn: labelColumn,
	}, nil
}

// Len returns the number of examples.
func (d *Dataset) Len() int {
	return d.Rows.Len()
}

// Labels returns the label column's values in row order.
// It fails when the dataset has no designated label column.
func (d *Dataset) Labels() ([]any, error) {
	if d.LabelColumn == "" {
		return nil, fmt.Errorf("%w: dataset has no label column", ErrInvalidValue)
	}
	return d.Rows.Column(d.LabelColumn)
}

// labelRef rebuilds the column reference for derived datasets.
func (d *Dataset) labelRef() ColumnRef {
	if d.LabelColumn == "" {
		return NoLabel
	}
	return Col(d.LabelColumn)
}

// child constructs a derived dataset through New so derived instances
// get the same validation and empty-table warning as direct ones.
func (d *Dataset) child(rows *table.Table, name string) (*Dataset, error) {
	ds, err := New(d.Kind, rows, d.Reader, d.labelRef())
	if err != nil {
		return nil, err
	}
	if d.Name != "" {
		ds.Name = name
	}
	return ds, nil
}

// DataRoot returns the local directory datasets are downloaded to and
// summaries are cached under: $QUARRY_DATA_ROOT when set, otherwise
// ~/.quarry.
func DataRoot() string {
	if root := os.Getenv("QUARRY_DATA_ROOT"); root != "" {
		return root
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".quarry"
	}
	return filepath.Join(home, ".quarry")
}
