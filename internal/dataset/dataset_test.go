package dataset

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/benjaminschreck/go-docmgr/pkg/docmgr"
)

func TestReadCSV(t *testing.T) {
	input := "\ufeffTask, Status\nWrite,Red\n\"Review, twice\",Green\n"

	df, err := ReadCSV(strings.NewReader(input))
	require.NoError(t, err)

	want := &docmgr.DataFrame{
		Columns: []string{"Task", "Status"},
		Rows: [][]any{
			{"Write", "Red"},
			{"Review, twice", "Green"},
		},
	}
	if diff := cmp.Diff(want, df); diff != "" {
		t.Errorf("data frame mismatch (-want +got):\n%s", diff)
	}
}

func TestReadCSVErrors(t *testing.T) {
	tests := map[string]string{
		"empty":        "",
		"ragged":       "a,b\n1\n",
		"bad quoting":  "a\n\"open\n",
		"blank header": "\n",
	}
	for name, input := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := ReadCSV(strings.NewReader(input))
			assert.Error(t, err)
		})
	}
}

func writeWorkbook(t *testing.T, sheets map[string][][]any) string {
	t.Helper()
	f := excelize.NewFile()
	defer f.Close()

	for name, rows := range sheets {
		if name != "Sheet1" {
			_, err := f.NewSheet(name)
			require.NoError(t, err)
		}
		for i, row := range rows {
			cell, err := excelize.CoordinatesToCellName(1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetSheetRow(name, cell, &row))
		}
	}

	path := filepath.Join(t.TempDir(), "data.xlsx")
	require.NoError(t, f.SaveAs(path))
	return path
}

func TestReadXLSX(t *testing.T) {
	path := writeWorkbook(t, map[string][][]any{
		"Sheet1": {
			{"Task", "Status", "Note"},
			{"Write", "Red", "late"},
			{"Review", "Amber"},
		},
		"Other": {
			{"Only"},
			{"x"},
		},
	})

	df, err := Load(path, "")
	require.NoError(t, err)
	want := &docmgr.DataFrame{
		Columns: []string{"Task", "Status", "Note"},
		Rows: [][]any{
			{"Write", "Red", "late"},
			{"Review", "Amber", ""},
		},
	}
	if diff := cmp.Diff(want, df); diff != "" {
		t.Errorf("data frame mismatch (-want +got):\n%s", diff)
	}

	other, err := Load(path, "Other")
	require.NoError(t, err)
	assert.Equal(t, []string{"Only"}, other.Columns)
	assert.Len(t, other.Rows, 1)

	_, err = Load(path, "Missing")
	assert.Error(t, err)
}

func TestLoadCSVFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tasks.CSV")
	require.NoError(t, os.WriteFile(path, []byte("Task,Status\nShip,Green\n"), 0o644))

	df, err := Load(path, "")
	require.NoError(t, err)
	assert.Equal(t, []string{"Task", "Status"}, df.Columns)
	assert.Equal(t, [][]any{{"Ship", "Green"}}, df.Rows)
}

func TestLoadUnsupported(t *testing.T) {
	_, err := Load("data.json", "")
	assert.True(t, errors.Is(err, ErrUnsupportedFormat))

	_, err = Load(filepath.Join(t.TempDir(), "missing.csv"), "")
	assert.True(t, errors.Is(err, os.ErrNotExist))
}
