package record

import (
	"github.com/flarelab/combust/pkg/types/respecth"
)

// buildTable assembles a data group's rows into a column-ordered table with
// summary statistics. The final column order is: declared properties in
// declaration order, filtered to columns that appear in at least one row,
// followed by row-only columns in first-encountered order. An empty row set
// yields (nil, nil): a group with zero points has no table and no statistics
// rather than zero-filled placeholders.
func buildTable(props []respecth.PropertyDescriptor, rows []respecth.Row, extraOrder []string) (*respecth.Table, *respecth.Statistics) {
	if len(rows) == 0 {
		return nil, nil
	}

	present := make(map[string]bool)
	for _, row := range rows {
		for col := range row {
			present[col] = true
		}
	}

	var columns []string
	seen := make(map[string]bool)
	for _, p := range props {
		if present[p.ColumnName] && !seen[p.ColumnName] {
			columns = append(columns, p.ColumnName)
			seen[p.ColumnName] = true
		}
	}
	for _, col := range extraOrder {
		if present[col] && !seen[col] {
			columns = append(columns, col)
			seen[col] = true
		}
	}

	table := &respecth.Table{
		Columns: columns,
		Rows:    make([][]respecth.Scalar, 0, len(rows)),
	}
	for _, row := range rows {
		cells := make([]respecth.Scalar, len(columns))
		for i, col := range columns {
			cells[i] = row[col]
		}
		table.Rows = append(table.Rows, cells)
	}

	stats := &respecth.Statistics{
		NumPoints: len(rows),
		Columns:   columns,
		Shape:     [2]int{len(rows), len(columns)},
	}
	return table, stats
}
