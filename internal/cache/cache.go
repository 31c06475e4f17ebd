// Package cache persists computed dataset summaries between runs so the
// bulk-summary quick mode can skip recomputation. Two stores implement
// dataset.SummaryStore: Disk (the default, one JSON artifact per
// dataset under the data root) and Redis (for shared environments).
package cache

import (
	"encoding/json"
	"fmt"

	"github.com/quarrydata/quarry/pkg/table"
)

// envelope is the serialized form of a one-row summary table.
type envelope struct {
	Columns []string `json:"columns"`
	Rows    [][]any  `json:"rows"`
}

func marshalTable(t *table.Table) ([]byte, error) {
	env := envelope{Columns: t.Columns(), Rows: make([][]any, t.Len())}
	for i := 0; i < t.Len(); i++ {
		row, err := t.Row(i)
		if err != nil {
			return nil, err
		}
		env.Rows[i] = row
	}
	data, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("cache: serializing summary: %w", err)
	}
	return data, nil
}

func unmarshalTable(data []byte) (*table.Table, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("cache: parsing summary: %w", err)
	}
	t, err := table.New(env.Columns, env.Rows)
	if err != nil {
		return nil, fmt.Errorf("cache: invalid summary table: %w", err)
	}
	return t, nil
}
