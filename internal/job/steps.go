package job

import (
	"errors"
	"fmt"
	"strings"

	"github.com/benjaminschreck/go-docmgr/internal/dataset"
	"github.com/benjaminschreck/go-docmgr/pkg/docmgr"
)

// Step is one document operation. Exactly one field must be set.
type Step struct {
	Heading         *HeadingStep   `yaml:"heading" toml:"heading"`
	Paragraph       *TextSpec      `yaml:"paragraph" toml:"paragraph"`
	Bullets         *BulletsStep   `yaml:"bullets" toml:"bullets"`
	Mixed           *MixedStep     `yaml:"mixed" toml:"mixed"`
	DataFrame       *DataFrameStep `yaml:"dataframe" toml:"dataframe"`
	ClearTable      *ClearStep     `yaml:"clear_table" toml:"clear_table"`
	DeleteEmptyRows *TableRef      `yaml:"delete_empty_rows" toml:"delete_empty_rows"`
	FillTable       *FillStep      `yaml:"fill_table" toml:"fill_table"`
}

// HeadingStep appends a heading; level 0 is the title
type HeadingStep struct {
	Text  string `yaml:"text" toml:"text"`
	Level int    `yaml:"level" toml:"level"`
}

// TextSpec is text with optional character formatting
type TextSpec struct {
	Text      string  `yaml:"text" toml:"text"`
	Bold      bool    `yaml:"bold" toml:"bold"`
	Italic    bool    `yaml:"italic" toml:"italic"`
	Underline bool    `yaml:"underline" toml:"underline"`
	Color     string  `yaml:"color" toml:"color"`
	FontSize  float64 `yaml:"font_size" toml:"font_size"`
}

// BulletsStep appends one bullet per item
type BulletsStep struct {
	Items []string `yaml:"items" toml:"items"`
}

// MixedStep appends one paragraph made of differently formatted parts
type MixedStep struct {
	Parts []TextSpec `yaml:"parts" toml:"parts"`
}

// DataSource is inline data or a dataset file (.csv, .xlsx)
type DataSource struct {
	Columns []string `yaml:"columns" toml:"columns"`
	Rows    [][]any  `yaml:"rows" toml:"rows"`
	File    string   `yaml:"file" toml:"file"`
	Sheet   string   `yaml:"sheet" toml:"sheet"`
}

// DataFrameStep appends a new table built from data
type DataFrameStep struct {
	Caption    string `yaml:"caption" toml:"caption"`
	DataSource `yaml:",inline"`
}

// TableRef addresses an existing table
type TableRef struct {
	Index int `yaml:"index" toml:"index"`
}

// ClearStep blanks every row of a table except the kept ones
type ClearStep struct {
	Index int   `yaml:"index" toml:"index"`
	Keep  []int `yaml:"keep" toml:"keep"`
}

// FillStep writes data into an existing table from StartRow on
type FillStep struct {
	Index      int `yaml:"index" toml:"index"`
	StartRow   int `yaml:"start_row" toml:"start_row"`
	DataSource `yaml:",inline"`
}

// Kind names the operation of the step
func (s Step) Kind() string {
	kinds := s.kinds()
	if len(kinds) != 1 {
		return "invalid"
	}
	return kinds[0]
}

func (s Step) kinds() []string {
	var kinds []string
	if s.Heading != nil {
		kinds = append(kinds, "heading")
	}
	if s.Paragraph != nil {
		kinds = append(kinds, "paragraph")
	}
	if s.Bullets != nil {
		kinds = append(kinds, "bullets")
	}
	if s.Mixed != nil {
		kinds = append(kinds, "mixed")
	}
	if s.DataFrame != nil {
		kinds = append(kinds, "dataframe")
	}
	if s.ClearTable != nil {
		kinds = append(kinds, "clear_table")
	}
	if s.DeleteEmptyRows != nil {
		kinds = append(kinds, "delete_empty_rows")
	}
	if s.FillTable != nil {
		kinds = append(kinds, "fill_table")
	}
	return kinds
}

func (s Step) validate() error {
	switch kinds := s.kinds(); len(kinds) {
	case 0:
		return errors.New("step names no operation")
	case 1:
	default:
		return fmt.Errorf("step names several operations: %s", strings.Join(kinds, ", "))
	}

	switch {
	case s.Paragraph != nil:
		return s.Paragraph.validate()
	case s.Mixed != nil:
		for i, part := range s.Mixed.Parts {
			if err := part.validate(); err != nil {
				return fmt.Errorf("parts[%d]: %w", i, err)
			}
		}
	case s.DataFrame != nil:
		return s.DataFrame.validate()
	case s.FillTable != nil:
		return s.FillTable.validate()
	}
	return nil
}

func (t TextSpec) validate() error {
	if t.Color != "" {
		if _, err := docmgr.ParseRGB(t.Color); err != nil {
			return err
		}
	}
	if t.FontSize < 0 {
		return fmt.Errorf("font size %v is negative", t.FontSize)
	}
	return nil
}

func (t TextSpec) format() docmgr.TextFormat {
	format := docmgr.TextFormat{
		Bold:      t.Bold,
		Italic:    t.Italic,
		Underline: t.Underline,
		FontSize:  t.FontSize,
	}
	if t.Color != "" {
		// Checked by validate
		rgb, _ := docmgr.ParseRGB(t.Color)
		format.Color = &rgb
	}
	return format
}

func (d DataSource) validate() error {
	if d.File != "" && (len(d.Columns) > 0 || len(d.Rows) > 0) {
		return errors.New("data comes from a file or inline columns and rows, not both")
	}
	if d.File == "" && len(d.Columns) == 0 {
		return errors.New("data needs columns or a file")
	}
	return nil
}

// load returns the data frame, reading the file relative to the job
func (d DataSource) load(j *Job) (*docmgr.DataFrame, error) {
	if d.File != "" {
		return dataset.Load(j.resolve(d.File), d.Sheet)
	}
	df := &docmgr.DataFrame{Columns: d.Columns, Rows: d.Rows}
	if err := df.Validate(); err != nil {
		return nil, err
	}
	return df, nil
}

// apply runs the step against a document
func (s Step) apply(j *Job, m *docmgr.Manager) error {
	switch {
	case s.Heading != nil:
		_, err := m.AddHeading(s.Heading.Text, s.Heading.Level)
		return err
	case s.Paragraph != nil:
		m.AddParagraph(s.Paragraph.Text, s.Paragraph.format())
		return nil
	case s.Bullets != nil:
		return m.AddBulletPoints(s.Bullets.Items)
	case s.Mixed != nil:
		parts := make([]docmgr.TextPart, len(s.Mixed.Parts))
		for i, part := range s.Mixed.Parts {
			parts[i] = docmgr.TextPart{Text: part.Text, TextFormat: part.format()}
		}
		m.AddMixedFormatParagraph(parts)
		return nil
	case s.DataFrame != nil:
		df, err := s.DataFrame.load(j)
		if err != nil {
			return err
		}
		_, err = m.AddDataFrame(df, s.DataFrame.Caption)
		return err
	case s.ClearTable != nil:
		return m.ClearTableContentExcept(s.ClearTable.Index, s.ClearTable.Keep)
	case s.DeleteEmptyRows != nil:
		_, err := m.DeleteEmptyRows(s.DeleteEmptyRows.Index)
		return err
	case s.FillTable != nil:
		df, err := s.FillTable.load(j)
		if err != nil {
			return err
		}
		return m.AddDataToTable(s.FillTable.Index, df.ToColumns(), s.FillTable.StartRow)
	}
	return errors.New("step names no operation")
}
