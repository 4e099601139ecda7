package docmgr

import (
	"strconv"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustTableText(t *testing.T, mgr *Manager, index int) [][]string {
	t.Helper()
	grid, err := mgr.TableText(index)
	if err != nil {
		t.Fatalf("TableText(%d) failed: %v", index, err)
	}
	return grid
}

func TestClearTableContentExcept(t *testing.T) {
	tests := []struct {
		name string
		keep []int
		want [][]string
	}{
		{
			name: "keep header",
			keep: []int{0},
			want: [][]string{{"Name", "Status"}, {"", ""}, {"", ""}},
		},
		{
			name: "keep several",
			keep: []int{0, 2},
			want: [][]string{{"Name", "Status"}, {"", ""}, {"Bob", "Green"}},
		},
		{
			name: "keep nothing",
			keep: nil,
			want: [][]string{{"", ""}, {"", ""}, {"", ""}},
		},
		{
			name: "indices past the end are ignored",
			keep: []int{1, 7},
			want: [][]string{{"", ""}, {"Alice", "Red"}, {"", ""}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := openTest(t, tableXML(
				[]string{"Name", "Status"},
				[]string{"Alice", "Red"},
				[]string{"Bob", "Green"},
			))

			if err := mgr.ClearTableContentExcept(0, tt.keep); err != nil {
				t.Fatalf("ClearTableContentExcept failed: %v", err)
			}
			if diff := cmp.Diff(tt.want, mustTableText(t, mgr, 0)); diff != "" {
				t.Errorf("table text mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClearTableContentExceptKeepsFormatting(t *testing.T) {
	body := `<w:tbl><w:tblGrid><w:gridCol w:w="3000"/></w:tblGrid><w:tr><w:tc>` +
		`<w:tcPr><w:tcW w:w="3000" w:type="dxa"/><w:shd w:val="clear" w:color="auto" w:fill="FF0000"/></w:tcPr>` +
		`<w:p><w:pPr><w:jc w:val="center"/></w:pPr><w:r><w:t>one</w:t></w:r></w:p>` +
		`<w:p><w:r><w:t>two</w:t></w:r></w:p>` +
		`</w:tc></w:tr></w:tbl>`
	mgr := openTest(t, body)

	if err := mgr.ClearTableContentExcept(0, nil); err != nil {
		t.Fatalf("ClearTableContentExcept failed: %v", err)
	}

	table, _ := mgr.Table(0)
	cell := table.Rows[0].Cells[0]
	paras := cell.Paragraphs()
	if len(paras) != 1 {
		t.Fatalf("Expected 1 paragraph after clearing, got %d", len(paras))
	}
	if paras[0].Properties == nil || paras[0].Properties.Alignment == nil || paras[0].Properties.Alignment.Val != "center" {
		t.Errorf("Expected paragraph alignment to survive, got %+v", paras[0].Properties)
	}
	if cell.Properties == nil || cell.Properties.Shading == nil || cell.Properties.Shading.Fill != "FF0000" {
		t.Errorf("Expected cell shading to survive, got %+v", cell.Properties)
	}
}

func TestClearTableContentExceptInvalidIndex(t *testing.T) {
	mgr := openTest(t, tableXML([]string{"a"}))

	err := mgr.ClearTableContentExcept(3, []int{0})
	if !IsTableIndexError(err) {
		t.Fatalf("Expected TableIndexError, got %v", err)
	}
}

func TestDeleteEmptyRows(t *testing.T) {
	mgr := openTest(t, tableXML(
		[]string{"A", "B"},
		[]string{" ", ""},
		[]string{"C", ""},
		[]string{"", ""},
		[]string{"", "D"},
		[]string{"", " "},
	))

	removed, err := mgr.DeleteEmptyRows(0)
	if err != nil {
		t.Fatalf("DeleteEmptyRows failed: %v", err)
	}
	if removed != 3 {
		t.Errorf("Expected 3 rows removed, got %d", removed)
	}

	want := [][]string{{"A", "B"}, {"C", ""}, {"", "D"}}
	if diff := cmp.Diff(want, mustTableText(t, mgr, 0)); diff != "" {
		t.Errorf("table text mismatch (-want +got):\n%s", diff)
	}
}

func TestDeleteEmptyRowsAllEmpty(t *testing.T) {
	mgr := openTest(t, tableXML([]string{"", ""}, []string{"\t", ""}))

	removed, err := mgr.DeleteEmptyRows(0)
	if err != nil {
		t.Fatalf("DeleteEmptyRows failed: %v", err)
	}
	if removed != 2 {
		t.Errorf("Expected 2 rows removed, got %d", removed)
	}
	if got := mustTableText(t, mgr, 0); len(got) != 0 {
		t.Errorf("Expected no rows, got %v", got)
	}
}

func TestDeleteEmptyRowsInvalidIndex(t *testing.T) {
	mgr := newTest(t)

	if _, err := mgr.DeleteEmptyRows(0); !IsTableIndexError(err) {
		t.Fatalf("Expected TableIndexError, got %v", err)
	}
}

func TestAddDataToTable(t *testing.T) {
	mgr := openTest(t, tableXML([]string{"Task", "Owner"}))

	data := []Column{
		{Name: "Task", Values: []any{"Write", 42}},
		{Name: "Owner", Values: []any{nil, "Bob"}},
		{Name: "Extra", Values: []any{"dropped", "dropped"}},
	}
	if err := mgr.AddDataToTable(0, data, 1); err != nil {
		t.Fatalf("AddDataToTable failed: %v", err)
	}

	want := [][]string{{"Task", "Owner"}, {"Write", ""}, {"42", "Bob"}}
	if diff := cmp.Diff(want, mustTableText(t, mgr, 0)); diff != "" {
		t.Errorf("table text mismatch (-want +got):\n%s", diff)
	}
}

func TestAddDataToTableGrowsTable(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]string
		startRow int
		values   int
		wantRows int
	}{
		{"fills past the end", [][]string{{"h", "h"}}, 3, 2, 5},
		{"overwrites existing rows", [][]string{{"h", "h"}, {"x", "x"}, {"y", "y"}}, 1, 2, 3},
		{"partially existing", [][]string{{"h", "h"}, {"x", "x"}}, 1, 3, 4},
		{"start at zero", [][]string{{"h", "h"}}, 0, 1, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := openTest(t, tableXML(tt.rows...))

			values := make([]any, tt.values)
			for i := range values {
				values[i] = i
			}
			if err := mgr.AddDataToTable(0, []Column{{Name: "n", Values: values}}, tt.startRow); err != nil {
				t.Fatalf("AddDataToTable failed: %v", err)
			}

			grid := mustTableText(t, mgr, 0)
			if len(grid) != tt.wantRows {
				t.Fatalf("Expected %d rows, got %d", tt.wantRows, len(grid))
			}
			for i := 0; i < tt.values; i++ {
				row := grid[tt.startRow+i]
				if len(row) != 2 {
					t.Fatalf("Row %d has %d cells, want 2", tt.startRow+i, len(row))
				}
				if want := strconv.Itoa(i); row[0] != want {
					t.Errorf("Row %d cell 0 = %q, want %q", tt.startRow+i, row[0], want)
				}
			}
		})
	}
}

func TestAddDataToTableRejectsInvalidInput(t *testing.T) {
	tests := []struct {
		name     string
		data     []Column
		startRow int
	}{
		{
			name: "mismatched lengths",
			data: []Column{
				{Name: "a", Values: []any{1, 2}},
				{Name: "b", Values: []any{1}},
			},
			startRow: 1,
		},
		{
			name:     "negative start row",
			data:     []Column{{Name: "a", Values: []any{1}}},
			startRow: -1,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mgr := openTest(t, tableXML([]string{"h", "h"}))

			err := mgr.AddDataToTable(0, tt.data, tt.startRow)
			if !IsValidationError(err) {
				t.Fatalf("Expected ValidationError, got %v", err)
			}
			want := [][]string{{"h", "h"}}
			if diff := cmp.Diff(want, mustTableText(t, mgr, 0)); diff != "" {
				t.Errorf("table changed on invalid input (-want +got):\n%s", diff)
			}
		})
	}
}

func TestAddDataToTableEmptyData(t *testing.T) {
	mgr := openTest(t, tableXML([]string{"h"}))

	if err := mgr.AddDataToTable(0, nil, 4); err != nil {
		t.Fatalf("AddDataToTable failed: %v", err)
	}
	if got := len(mustTableText(t, mgr, 0)); got != 1 {
		t.Errorf("Expected table to keep 1 row, got %d", got)
	}
}

func TestAddDataToTableInvalidIndex(t *testing.T) {
	mgr := newTest(t)

	err := mgr.AddDataToTable(0, []Column{{Name: "a", Values: []any{1}}}, 0)
	if !IsTableIndexError(err) {
		t.Fatalf("Expected TableIndexError, got %v", err)
	}
}
