// Package dataset loads tabular files into data frames. The first row of a
// file holds the column names; every following row is one record.
package dataset

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/benjaminschreck/go-docmgr/pkg/docmgr"
)

// ErrUnsupportedFormat is returned for files that are neither CSV nor XLSX
var ErrUnsupportedFormat = errors.New("unsupported dataset format")

// Load reads a .csv or .xlsx file. sheet selects the worksheet of a workbook
// and defaults to the first one; it is ignored for CSV.
func Load(path, sheet string) (*docmgr.DataFrame, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		file, err := os.Open(path)
		if err != nil {
			return nil, err
		}
		defer file.Close()
		df, err := ReadCSV(file)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		return df, nil
	case ".xlsx", ".xlsm":
		return ReadXLSX(path, sheet)
	default:
		return nil, fmt.Errorf("%s: %w", path, ErrUnsupportedFormat)
	}
}

// ReadCSV reads comma separated records. All records must have as many fields as the header.
func ReadCSV(r io.Reader) (*docmgr.DataFrame, error) {
	reader := csv.NewReader(r)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV: %w", err)
	}
	return fromRecords(records)
}

// ReadXLSX reads one worksheet of a workbook
func ReadXLSX(path, sheet string) (*docmgr.DataFrame, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook: %w", err)
	}
	defer f.Close()

	if sheet == "" {
		sheets := f.GetSheetList()
		if len(sheets) == 0 {
			return nil, fmt.Errorf("%s: workbook has no sheets", path)
		}
		sheet = sheets[0]
	}

	rows, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to read sheet %q: %w", path, sheet, err)
	}

	// GetRows drops trailing empty cells, so rows are padded to the header
	if len(rows) > 0 {
		width := len(rows[0])
		for i, row := range rows[1:] {
			if len(row) > width {
				return nil, fmt.Errorf("%s: row %d of sheet %q has %d cells, header has %d", path, i+2, sheet, len(row), width)
			}
			for len(row) < width {
				row = append(row, "")
			}
			rows[i+1] = row
		}
	}
	return fromRecords(rows)
}

func fromRecords(records [][]string) (*docmgr.DataFrame, error) {
	if len(records) == 0 || len(records[0]) == 0 {
		return nil, errors.New("dataset has no header row")
	}

	df := &docmgr.DataFrame{
		Columns: make([]string, len(records[0])),
		Rows:    make([][]any, 0, len(records)-1),
	}
	for j, name := range records[0] {
		df.Columns[j] = strings.TrimSpace(name)
	}
	// Spreadsheet exports often start with a byte order mark
	df.Columns[0] = strings.TrimPrefix(df.Columns[0], "\ufeff")
	for _, record := range records[1:] {
		row := make([]any, len(record))
		for j, value := range record {
			row[j] = value
		}
		df.Rows = append(df.Rows, row)
	}
	if err := df.Validate(); err != nil {
		return nil, err
	}
	return df, nil
}
