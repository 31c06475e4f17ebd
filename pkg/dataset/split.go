package dataset

import (
	"fmt"
	"math/rand"

	"github.com/quarrydata/quarry/pkg/reader"
	"github.com/quarrydata/quarry/pkg/table"
)

// Split partitions the dataset into len(fracs)+1 new datasets.
//
// Each fraction must lie in (0, 1) and the fractions must sum to less
// than 1; the remainder becomes the final implicit slice. When shuffle
// is true the rows are first permuted deterministically from seed: the
// seed is the sole source of randomness, so splitting the same dataset
// twice with the same seed reproduces identical partitions. Slice
// boundaries are floor(cumulative_fraction * row_count), so each result
// is a contiguous range of the (possibly shuffled) order. Every result
// is reindexed and inherits the reader and label column; when the
// parent is named, slice i is named "parent.i".
func (d *Dataset) Split(fracs []float64, shuffle bool, seed int64) ([]*Dataset, error) {
	sum := 0.0
	for _, f := range fracs {
		if f <= 0 || f >= 1 {
			return nil, fmt.Errorf("%w: fraction %v is not in (0, 1)", ErrInvalidValue, f)
		}
		sum += f
	}
	if sum >= 1 {
		return nil, fmt.Errorf("%w: fractions sum to %v, want < 1", ErrInvalidValue, sum)
	}

	rows := d.Rows
	if shuffle {
		perm := rand.New(rand.NewSource(seed)).Perm(rows.Len())
		shuffled, err := rows.Take(perm)
		if err != nil {
			return nil, err
		}
		rows = shuffled
	}

	all := append(append([]float64(nil), fracs...), 1-sum)
	n := rows.Len()
	out := make([]*Dataset, 0, len(all))
	start, cum := 0, 0.0
	for i, f := range all {
		cum += f
		end := int(cum * float64(n))
		if i == len(all)-1 {
			// The cumulative fraction is 1 by construction; pin the last
			// boundary so float accumulation cannot drop the final row.
			end = n
		}
		slice, err := rows.Slice(start, end)
		if err != nil {
			return nil, err
		}
		ds, err := d.child(slice, fmt.Sprintf("%s.%d", d.Name, i))
		if err != nil {
			return nil, err
		}
		out = append(out, ds)
		start = end
	}
	return out, nil
}

// SplitFrac is the two-way convenience form of Split: the first result
// holds about frac of the examples, the second the rest.
func (d *Dataset) SplitFrac(frac float64, shuffle bool, seed int64) ([]*Dataset, error) {
	return d.Split([]float64{frac}, shuffle, seed)
}

// Merge concatenates this dataset's rows with each other dataset's rows,
// self first and the rest in argument order, over a fresh index.
//
// All datasets must share this dataset's reader; merging across readers
// is rejected because file resolution downstream would be ambiguous.
// The result is named "name.merged" when this dataset is named, and
// inherits this dataset's label column unconditionally.
func (d *Dataset) Merge(others ...*Dataset) (*Dataset, error) {
	tables := make([]*table.Table, 0, len(others))
	for _, o := range others {
		if !reader.Equal(d.Reader, o.Reader) {
			return nil, fmt.Errorf("%w: cannot merge with a dataset backed by a different reader",
				ErrInvalidValue)
		}
		tables = append(tables, o.Rows)
	}
	merged, err := d.Rows.Concat(tables...)
	if err != nil {
		return nil, err
	}
	return d.child(merged, d.Name+".merged")
}
