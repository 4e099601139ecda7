package docmgr

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	docxml "github.com/benjaminschreck/go-docmgr/pkg/docmgr/xml"
)

// ClearTableContentExcept blanks every cell of every row whose index is not
// in rowsToKeep. Rows are kept; indices in rowsToKeep that do not exist are
// ignored.
func (m *Manager) ClearTableContentExcept(tableIndex int, rowsToKeep []int) error {
	table, err := m.table(tableIndex)
	if err != nil {
		return err
	}

	keep := make(map[int]bool, len(rowsToKeep))
	for _, i := range rowsToKeep {
		keep[i] = true
	}

	cleared := 0
	for i, row := range table.Rows {
		if keep[i] {
			continue
		}
		for _, cell := range row.Cells {
			cell.Clear()
		}
		cleared++
	}

	m.logger.Debug("Cleared table rows",
		zap.Int("table", tableIndex),
		zap.Int("cleared", cleared),
		zap.Ints("kept", rowsToKeep))
	return nil
}

// DeleteEmptyRows removes every row whose cells all hold only whitespace and
// returns how many rows were removed. Retained rows keep their order.
func (m *Manager) DeleteEmptyRows(tableIndex int) (int, error) {
	table, err := m.table(tableIndex)
	if err != nil {
		return 0, err
	}

	removed := 0
	// Walk backwards so removing a row leaves the remaining indices valid
	for i := len(table.Rows) - 1; i >= 0; i-- {
		if rowIsEmpty(table.Rows[i]) {
			table.RemoveRow(i)
			removed++
		}
	}

	m.logger.Debug("Deleted empty rows", zap.Int("table", tableIndex), zap.Int("removed", removed))
	return removed, nil
}

func rowIsEmpty(row *docxml.TableRow) bool {
	for _, cell := range row.Cells {
		if strings.TrimSpace(cell.GetText()) != "" {
			return false
		}
	}
	return true
}

// AddDataToTable writes column-oriented data into an existing table starting
// at startRow. Value i of column j lands in row startRow+i, cell j. Blank rows
// are appended until the table has startRow+N rows; columns beyond a row's
// cell count are dropped.
//
// Every column must hold the same number of values. Invalid input is rejected
// before the table is touched.
func (m *Manager) AddDataToTable(tableIndex int, data []Column, startRow int) error {
	table, err := m.table(tableIndex)
	if err != nil {
		return err
	}

	n, err := validateColumns(data)
	if err != nil {
		return err
	}
	if startRow < 0 {
		return NewValidationError("startRow", fmt.Sprintf("start row %d is negative", startRow))
	}
	if n == 0 {
		return nil
	}

	added := 0
	for len(table.Rows) < startRow+n {
		table.AddRow()
		added++
	}

	for i := 0; i < n; i++ {
		row := table.Rows[startRow+i]
		for j, column := range data {
			if j >= len(row.Cells) {
				break
			}
			row.Cells[j].SetText(formatValue(column.Values[i]))
		}
	}

	if dropped := len(data) - table.ColumnCount(); dropped > 0 {
		m.logger.Debug("Dropped columns beyond the table width",
			zap.Int("table", tableIndex), zap.Int("dropped", dropped))
	}
	m.logger.Debug("Added data to table",
		zap.Int("table", tableIndex),
		zap.Int("start_row", startRow),
		zap.Int("rows", n),
		zap.Int("rows_added", added))
	return nil
}

// validateColumns checks that all columns have the same length and returns it
func validateColumns(data []Column) (int, error) {
	if len(data) == 0 {
		return 0, nil
	}
	verr := &ValidationError{}
	n := len(data[0].Values)
	for _, column := range data[1:] {
		if len(column.Values) != n {
			verr.Add("data", "column %q has %d values, column %q has %d",
				column.Name, len(column.Values), data[0].Name, n)
		}
	}
	return n, verr.Err()
}

// formatValue renders a cell value; nil becomes an empty cell
func formatValue(v any) string {
	if v == nil {
		return ""
	}
	return fmt.Sprint(v)
}
