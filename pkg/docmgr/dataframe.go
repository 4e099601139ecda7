package docmgr

import (
	"fmt"
	"sort"

	"go.uber.org/zap"

	docxml "github.com/benjaminschreck/go-docmgr/pkg/docmgr/xml"
)

// Column is one named column of values
type Column struct {
	Name   string
	Values []any
}

// DataFrame is a row-oriented table with named columns
type DataFrame struct {
	Columns []string
	Rows    [][]any
}

// ColumnsFromMap orders a column map. Columns named in order come first, in
// that order; the remaining columns follow sorted by name.
func ColumnsFromMap(data map[string][]any, order []string) []Column {
	columns := make([]Column, 0, len(data))
	seen := make(map[string]bool, len(order))
	for _, name := range order {
		values, ok := data[name]
		if !ok || seen[name] {
			continue
		}
		seen[name] = true
		columns = append(columns, Column{Name: name, Values: values})
	}

	var rest []string
	for name := range data {
		if !seen[name] {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		columns = append(columns, Column{Name: name, Values: data[name]})
	}
	return columns
}

// DataFrameFromColumns transposes equally long columns into a data frame
func DataFrameFromColumns(columns []Column) (*DataFrame, error) {
	n, err := validateColumns(columns)
	if err != nil {
		return nil, err
	}
	df := &DataFrame{Columns: make([]string, len(columns)), Rows: make([][]any, n)}
	for j, column := range columns {
		df.Columns[j] = column.Name
	}
	for i := range df.Rows {
		row := make([]any, len(columns))
		for j, column := range columns {
			row[j] = column.Values[i]
		}
		df.Rows[i] = row
	}
	return df, nil
}

// ToColumns transposes the data frame into columns. Short rows leave nil values.
func (df *DataFrame) ToColumns() []Column {
	columns := make([]Column, len(df.Columns))
	for j, name := range df.Columns {
		values := make([]any, len(df.Rows))
		for i, row := range df.Rows {
			if j < len(row) {
				values[i] = row[j]
			}
		}
		columns[j] = Column{Name: name, Values: values}
	}
	return columns
}

// Validate checks that every row has one value per column
func (df *DataFrame) Validate() error {
	verr := &ValidationError{}
	if len(df.Columns) == 0 {
		verr.Add("columns", "data frame has no columns")
	}
	for i, row := range df.Rows {
		if len(row) != len(df.Columns) {
			verr.Add(fmt.Sprintf("rows[%d]", i), "has %d values for %d columns", len(row), len(df.Columns))
		}
	}
	return verr.Err()
}

// AddDataFrame appends df as a new table: a shaded header row followed by
// one row per record. Cells of the status column are shaded by status value.
// A non-empty caption is written above the table as a bold paragraph
// "Table {n}: {caption}" where n is the number of the new table.
func (m *Manager) AddDataFrame(df *DataFrame, caption string) (*docxml.Table, error) {
	if df == nil {
		return nil, NewValidationError("dataframe", "data frame is nil")
	}
	if err := df.Validate(); err != nil {
		return nil, err
	}
	styleID, err := m.styleID(m.config.TableStyle)
	if err != nil {
		return nil, err
	}

	body := m.doc.Body
	if caption != "" {
		m.reconcileTableCount()
		m.tableCount++
		para := docxml.NewParagraph("")
		para.AddRun(fmt.Sprintf("Table %d: %s", m.tableCount, caption), &docxml.RunProperties{Bold: docxml.On()})
		body.Append(para)
	}

	table := docxml.NewTable(len(df.Columns), body.ContentWidth())
	table.Properties.Style = &docxml.Style{Val: styleID}

	header := table.AddRow()
	for j, name := range df.Columns {
		header.Cells[j].SetText(name)
		header.Cells[j].SetShading(m.config.HeaderFill)
	}

	statusColumns := make([]bool, len(df.Columns))
	for j, name := range df.Columns {
		statusColumns[j] = m.config.IsStatusColumn(name)
	}

	for _, record := range df.Rows {
		row := table.AddRow()
		for j, value := range record {
			text := formatValue(value)
			row.Cells[j].SetText(text)
			if statusColumns[j] {
				row.Cells[j].SetShading(m.config.StatusFill(text))
			}
		}
	}
	body.Append(table)

	m.logger.Debug("Added data frame",
		zap.Int("columns", len(df.Columns)),
		zap.Int("rows", len(df.Rows)),
		zap.String("caption", caption),
		zap.Int("table_count", m.tableCount))
	return table, nil
}

// reconcileTableCount resets the caption counter to the tables actually present
func (m *Manager) reconcileTableCount() {
	if live := m.NumTables(); live != m.tableCount {
		m.logger.Warn("Table counter out of sync with document",
			zap.Int("counter", m.tableCount),
			zap.Int("tables", live))
		m.tableCount = live
	}
}
