package docmgr

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	docxml "github.com/benjaminschreck/go-docmgr/pkg/docmgr/xml"
)

func cellFill(cell *docxml.TableCell) string {
	if cell.Properties == nil || cell.Properties.Shading == nil {
		return ""
	}
	return cell.Properties.Shading.Fill
}

func TestAddDataFrameStatusShading(t *testing.T) {
	mgr := newTest(t)

	df := &DataFrame{
		Columns: []string{"Task", "Status"},
		Rows: [][]any{
			{"a", "Red"},
			{"b", "Amber"},
			{"c", "Green"},
			{"d", "Purple"},
			{"e", "red"},
			{"f", nil},
		},
	}
	table, err := mgr.AddDataFrame(df, "")
	require.NoError(t, err)
	require.Len(t, table.Rows, 7)

	for _, cell := range table.Rows[0].Cells {
		assert.Equal(t, "B7DEE8", cellFill(cell), "header cells are shaded")
	}

	want := []string{"FF0000", "FFA500", "00FF00", "FFFFFF", "FFFFFF", "FFFFFF"}
	for i, fill := range want {
		row := table.Rows[i+1]
		assert.Equal(t, fill, cellFill(row.Cells[1]), "row %d status fill", i+1)
		assert.Equal(t, "", cellFill(row.Cells[0]), "row %d task cell is not shaded", i+1)
	}
}

func TestAddDataFrameStatusColumnMatching(t *testing.T) {
	tests := []struct {
		name   string
		column string
		strict bool
		want   string
	}{
		{"exact name", "Status", false, "FF0000"},
		{"lower case", "status", false, "FF0000"},
		{"upper case", "STATUS", false, "FF0000"},
		{"strict exact", "Status", true, "FF0000"},
		{"strict lower case", "status", true, ""},
		{"other column", "State", false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := DefaultConfig()
			config.StrictStatusColumn = tt.strict
			mgr := newTest(t, WithConfig(config))

			table, err := mgr.AddDataFrame(&DataFrame{
				Columns: []string{tt.column},
				Rows:    [][]any{{"Red"}},
			}, "")
			require.NoError(t, err)
			assert.Equal(t, tt.want, cellFill(table.Rows[1].Cells[0]))
		})
	}
}

func TestAddDataFrameTableLayout(t *testing.T) {
	mgr := newTest(t)

	table, err := mgr.AddDataFrame(&DataFrame{
		Columns: []string{"A", "B"},
		Rows:    [][]any{{1, 2.5}},
	}, "")
	require.NoError(t, err)

	assert.Equal(t, "TableGrid", table.StyleID())
	require.NotNil(t, table.Grid)
	require.Len(t, table.Grid.Columns, 2)
	// Letter page with 1.25in margins
	assert.Equal(t, 4320, table.Grid.Columns[0].Width)

	grid, err := mgr.TableText(0)
	require.NoError(t, err)
	if diff := cmp.Diff([][]string{{"A", "B"}, {"1", "2.5"}}, grid); diff != "" {
		t.Errorf("table text mismatch (-want +got):\n%s", diff)
	}
}

func TestAddDataFrameCaptionNumbering(t *testing.T) {
	mgr := openTest(t, tableXML([]string{"existing"}))
	require.Equal(t, 1, mgr.TableCount())

	df := &DataFrame{Columns: []string{"x"}, Rows: [][]any{{"1"}}}

	_, err := mgr.AddDataFrame(df, "First")
	require.NoError(t, err)
	assert.Equal(t, 2, mgr.TableCount())
	assert.Equal(t, mgr.NumTables(), mgr.TableCount())

	// An uncaptioned table leaves the counter alone
	_, err = mgr.AddDataFrame(df, "")
	require.NoError(t, err)
	assert.Equal(t, 2, mgr.TableCount())
	assert.Equal(t, 3, mgr.NumTables())

	// The next caption accounts for it
	_, err = mgr.AddDataFrame(df, "Second")
	require.NoError(t, err)
	assert.Equal(t, 4, mgr.TableCount())
	assert.Equal(t, mgr.NumTables(), mgr.TableCount())

	assert.Equal(t, []string{"Table 2: First", "Table 4: Second"}, mgr.Paragraphs())
}

func TestAddDataFrameCaptionIsBold(t *testing.T) {
	mgr := newTest(t)

	_, err := mgr.AddDataFrame(&DataFrame{Columns: []string{"x"}}, "Empty")
	require.NoError(t, err)

	paras := mgr.Document().Body.Paragraphs()
	require.Len(t, paras, 1)
	runs := paras[0].Runs()
	require.Len(t, runs, 1)
	require.NotNil(t, runs[0].Properties)
	assert.True(t, runs[0].Properties.Bold.Enabled())
	assert.Equal(t, "Table 1: Empty", runs[0].GetText())
}

func TestAddDataFrameRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name string
		df   *DataFrame
	}{
		{"nil", nil},
		{"no columns", &DataFrame{}},
		{"short row", &DataFrame{Columns: []string{"a", "b"}, Rows: [][]any{{"x"}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := newTest(t)

			_, err := mgr.AddDataFrame(tt.df, "caption")
			require.Error(t, err)
			assert.True(t, IsValidationError(err))
			assert.Equal(t, 0, mgr.NumTables())
			assert.Equal(t, 0, mgr.TableCount())
			assert.Empty(t, mgr.Paragraphs())
		})
	}
}

func TestColumnsFromMap(t *testing.T) {
	data := map[string][]any{
		"Status": {"Red"},
		"Task":   {"a"},
		"Owner":  {"bob"},
		"Due":    {"mon"},
	}

	got := ColumnsFromMap(data, []string{"Task", "Status", "Missing", "Task"})
	names := make([]string, len(got))
	for i, column := range got {
		names[i] = column.Name
	}
	assert.Equal(t, []string{"Task", "Status", "Due", "Owner"}, names)
	assert.Equal(t, []any{"a"}, got[0].Values)
}

func TestDataFrameFromColumns(t *testing.T) {
	df, err := DataFrameFromColumns([]Column{
		{Name: "Task", Values: []any{"a", "b"}},
		{Name: "Status", Values: []any{"Red", "Green"}},
	})
	require.NoError(t, err)

	want := &DataFrame{
		Columns: []string{"Task", "Status"},
		Rows:    [][]any{{"a", "Red"}, {"b", "Green"}},
	}
	if diff := cmp.Diff(want, df); diff != "" {
		t.Errorf("data frame mismatch (-want +got):\n%s", diff)
	}

	_, err = DataFrameFromColumns([]Column{
		{Name: "a", Values: []any{1}},
		{Name: "b", Values: nil},
	})
	assert.True(t, IsValidationError(err))
}
