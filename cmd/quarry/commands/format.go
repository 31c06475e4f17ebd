package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/quarrydata/quarry/pkg/table"
)

// writeTable renders a table with fixed-width columns sized to their
// content.
func writeTable(w io.Writer, t *table.Table) error {
	cols := t.Columns()
	widths := make([]int, len(cols))
	for i, c := range cols {
		widths[i] = len(c)
	}

	cells := make([][]string, t.Len())
	for r := 0; r < t.Len(); r++ {
		row, err := t.Row(r)
		if err != nil {
			return err
		}
		cells[r] = make([]string, len(row))
		for c, v := range row {
			s := fmt.Sprint(v)
			cells[r][c] = s
			if len(s) > widths[c] {
				widths[c] = len(s)
			}
		}
	}

	writeRow := func(vals []string) {
		parts := make([]string, len(vals))
		for i, v := range vals {
			parts[i] = fmt.Sprintf("%-*s", widths[i], v)
		}
		fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, "  "), " "))
	}

	writeRow(upper(cols))
	rules := make([]string, len(cols))
	for i := range cols {
		rules[i] = strings.Repeat("-", widths[i])
	}
	writeRow(rules)
	for _, row := range cells {
		writeRow(row)
	}
	return nil
}

func upper(ss []string) []string {
	out := make([]string, len(ss))
	for i, s := range ss {
		out[i] = strings.ToUpper(s)
	}
	return out
}
