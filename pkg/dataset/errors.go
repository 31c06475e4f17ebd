package dataset

import "errors"

var (
	// ErrInvalidType is returned when a dataset is constructed from a nil
	// table or a nil reader.
	ErrInvalidType = errors.New("quarry(dataset): invalid argument type")
	// ErrInvalidValue is returned for an unresolvable label column,
	// out-of-range split fractions, or a cross-reader merge.
	ErrInvalidValue = errors.New("quarry(dataset): invalid value")
	// ErrNotRegistered is returned when Get is asked for a name the
	// registry does not hold under the requested kind.
	ErrNotRegistered = errors.New("quarry(dataset): dataset not registered")
)
