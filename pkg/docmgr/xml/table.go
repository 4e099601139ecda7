package xml

import (
	"encoding/xml"
	"strconv"
	"strings"
)

// Table represents a table in the document
type Table struct {
	Properties *TableProperties
	Grid       *TableGrid
	Rows       []*TableRow
	// Extra keeps elements that follow the last row
	Extra []RawXMLElement
}

// isBodyElement implements the BodyElement interface
func (t Table) isBodyElement() {}

// defaultTableLook matches what Word writes for a freshly inserted table
var defaultTableLook = TableLook{
	Val:         "04A0",
	FirstRow:    "1",
	LastRow:     "0",
	FirstColumn: "1",
	LastColumn:  "0",
	NoHBand:     "0",
	NoVBand:     "1",
}

// NewTable creates a table without rows whose grid splits width (in twips)
// evenly across cols columns
func NewTable(cols, width int) *Table {
	look := defaultTableLook
	t := &Table{
		Properties: &TableProperties{
			Width: &Width{W: "0", Type: "auto"},
			Look:  &look,
		},
		Grid: &TableGrid{},
	}
	colWidth := 0
	if cols > 0 {
		colWidth = width / cols
	}
	for i := 0; i < cols; i++ {
		t.Grid.Columns = append(t.Grid.Columns, GridColumn{Width: colWidth})
	}
	return t
}

// UnmarshalXML implements custom XML unmarshaling for Table
func (t *Table) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var pending []RawXMLElement
	err := decodeChildren(d, func(el xml.StartElement) (bool, error) {
		switch el.Name.Local {
		case "tblPr":
			var props TableProperties
			if err := d.DecodeElement(&props, &el); err != nil {
				return true, err
			}
			t.Properties = &props
		case "tblGrid":
			var grid TableGrid
			if err := d.DecodeElement(&grid, &el); err != nil {
				return true, err
			}
			t.Grid = &grid
		case "tr":
			var row TableRow
			if err := d.DecodeElement(&row, &el); err != nil {
				return true, err
			}
			row.Before = pending
			pending = nil
			t.Rows = append(t.Rows, &row)
		default:
			return false, nil
		}
		return true, nil
	}, func(raw *RawXMLElement) {
		pending = append(pending, *raw)
	})
	t.Extra = pending
	return err
}

// MarshalXML implements custom XML marshaling for Table
func (t Table) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tbl"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if t.Properties != nil {
		if err := e.EncodeElement(t.Properties, xml.StartElement{Name: xml.Name{Local: "w:tblPr"}}); err != nil {
			return err
		}
	}
	if t.Grid != nil {
		if err := e.EncodeElement(t.Grid, xml.StartElement{Name: xml.Name{Local: "w:tblGrid"}}); err != nil {
			return err
		}
	}
	for _, row := range t.Rows {
		for i := range row.Before {
			if err := e.Encode(&row.Before[i]); err != nil {
				return err
			}
		}
		if err := e.Encode(row); err != nil {
			return err
		}
	}
	for i := range t.Extra {
		if err := e.Encode(&t.Extra[i]); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// ColumnCount returns the number of grid columns, falling back to the widest row
func (t *Table) ColumnCount() int {
	if t.Grid != nil && len(t.Grid.Columns) > 0 {
		return len(t.Grid.Columns)
	}
	count := 0
	for _, row := range t.Rows {
		if len(row.Cells) > count {
			count = len(row.Cells)
		}
	}
	return count
}

// AddRow appends a row with one empty cell per grid column, each as wide as its column
func (t *Table) AddRow() *TableRow {
	row := &TableRow{}
	switch {
	case t.Grid != nil && len(t.Grid.Columns) > 0:
		for _, col := range t.Grid.Columns {
			row.Cells = append(row.Cells, NewTableCell(col.Width))
		}
	case len(t.Rows) > 0:
		for range t.Rows[len(t.Rows)-1].Cells {
			row.Cells = append(row.Cells, NewTableCell(0))
		}
	}
	t.Rows = append(t.Rows, row)
	return row
}

// RemoveRow removes the row at index i. Elements preserved in front of the
// row move to whatever follows it. Out of range indices are ignored.
func (t *Table) RemoveRow(i int) {
	if i < 0 || i >= len(t.Rows) {
		return
	}
	if before := t.Rows[i].Before; len(before) > 0 {
		if i+1 < len(t.Rows) {
			next := t.Rows[i+1]
			next.Before = append(append([]RawXMLElement(nil), before...), next.Before...)
		} else {
			t.Extra = append(append([]RawXMLElement(nil), before...), t.Extra...)
		}
	}
	t.Rows = append(t.Rows[:i], t.Rows[i+1:]...)
}

// StyleID returns the table style id, or "" when none is set
func (t *Table) StyleID() string {
	if t.Properties == nil || t.Properties.Style == nil {
		return ""
	}
	return t.Properties.Style.Val
}

// TableProperties represents table-level properties
type TableProperties struct {
	Style *Style
	Width *Width
	Look  *TableLook
	// Extra keeps tblPr children we don't model (borders, layout, margins...)
	Extra []RawXMLElement
}

// tablePropertyOrder is the CT_TblPr child sequence
var tablePropertyOrder = []string{
	"tblStyle", "tblpPr", "tblOverlap", "bidiVisual", "tblStyleRowBandSize", "tblStyleColBandSize",
	"tblW", "jc", "tblCellSpacing", "tblInd", "tblBorders", "shd", "tblLayout", "tblCellMar",
	"tblLook", "tblCaption", "tblDescription", "tblPrChange",
}

// UnmarshalXML implements custom XML unmarshaling for TableProperties
func (p *TableProperties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeChildren(d, func(t xml.StartElement) (bool, error) {
		var target interface{}
		switch t.Name.Local {
		case "tblStyle":
			p.Style = &Style{}
			target = p.Style
		case "tblW":
			p.Width = &Width{}
			target = p.Width
		case "tblLook":
			p.Look = &TableLook{}
			target = p.Look
		default:
			return false, nil
		}
		return true, d.DecodeElement(target, &t)
	}, func(raw *RawXMLElement) {
		p.Extra = append(p.Extra, *raw)
	})
}

// MarshalXML implements custom XML marshaling for TableProperties
func (p TableProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	var c children
	if p.Style != nil {
		c.add("tblStyle", p.Style)
	}
	if p.Width != nil {
		c.add("tblW", p.Width)
	}
	if p.Look != nil {
		c.add("tblLook", p.Look)
	}
	c.addRaw(p.Extra)
	return c.encode(e, xml.StartElement{Name: xml.Name{Local: "w:tblPr"}}, tablePropertyOrder)
}

// TableLook represents table style options
type TableLook struct {
	Val         string `xml:"val,attr,omitempty"`
	FirstRow    string `xml:"firstRow,attr,omitempty"`
	LastRow     string `xml:"lastRow,attr,omitempty"`
	FirstColumn string `xml:"firstColumn,attr,omitempty"`
	LastColumn  string `xml:"lastColumn,attr,omitempty"`
	NoHBand     string `xml:"noHBand,attr,omitempty"`
	NoVBand     string `xml:"noVBand,attr,omitempty"`
}

// MarshalXML implements custom XML marshaling for TableLook
func (t TableLook) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = nil
	for _, attr := range []struct{ name, value string }{
		{"w:val", t.Val},
		{"w:firstRow", t.FirstRow},
		{"w:lastRow", t.LastRow},
		{"w:firstColumn", t.FirstColumn},
		{"w:lastColumn", t.LastColumn},
		{"w:noHBand", t.NoHBand},
		{"w:noVBand", t.NoVBand},
	} {
		if attr.value != "" {
			start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: attr.name}, Value: attr.value})
		}
	}
	return e.EncodeElement(struct{}{}, start)
}

// TableGrid represents table column definitions
type TableGrid struct {
	Columns []GridColumn `xml:"gridCol"`
}

// MarshalXML implements custom XML marshaling for TableGrid
func (g TableGrid) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tblGrid"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, col := range g.Columns {
		if err := e.EncodeElement(col, xml.StartElement{Name: xml.Name{Local: "w:gridCol"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GridColumn represents a table column
type GridColumn struct {
	Width int `xml:"w,attr"`
}

// MarshalXML implements custom XML marshaling for GridColumn
func (g GridColumn) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:gridCol"}
	start.Attr = []xml.Attr{
		{Name: xml.Name{Local: "w:w"}, Value: strconv.Itoa(g.Width)},
	}
	return e.EncodeElement(struct{}{}, start)
}

// TableRow represents a row in a table
type TableRow struct {
	// Before keeps elements found between the previous row and this one
	Before []RawXMLElement
	// PropertyExceptions is the row-level w:tblPrEx, kept verbatim
	PropertyExceptions *RawXMLElement
	Properties         *TableRowProperties
	Cells              []*TableCell
	// Extra keeps elements that follow the last cell
	Extra []RawXMLElement
}

// UnmarshalXML implements custom XML unmarshaling for TableRow
func (r *TableRow) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var pending []RawXMLElement
	err := decodeChildren(d, func(t xml.StartElement) (bool, error) {
		switch t.Name.Local {
		case "tblPrEx":
			raw, err := captureRaw(d, t)
			if err != nil {
				return true, err
			}
			r.PropertyExceptions = raw
		case "trPr":
			var props TableRowProperties
			if err := d.DecodeElement(&props, &t); err != nil {
				return true, err
			}
			r.Properties = &props
		case "tc":
			var cell TableCell
			if err := d.DecodeElement(&cell, &t); err != nil {
				return true, err
			}
			cell.Before = pending
			pending = nil
			r.Cells = append(r.Cells, &cell)
		default:
			return false, nil
		}
		return true, nil
	}, func(raw *RawXMLElement) {
		pending = append(pending, *raw)
	})
	r.Extra = pending
	return err
}

// MarshalXML implements custom XML marshaling for TableRow to ensure proper namespacing
func (r TableRow) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tr"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if r.PropertyExceptions != nil {
		if err := e.Encode(r.PropertyExceptions); err != nil {
			return err
		}
	}
	if r.Properties != nil {
		if err := e.EncodeElement(r.Properties, xml.StartElement{Name: xml.Name{Local: "w:trPr"}}); err != nil {
			return err
		}
	}
	for _, cell := range r.Cells {
		for i := range cell.Before {
			if err := e.Encode(&cell.Before[i]); err != nil {
				return err
			}
		}
		if err := e.Encode(cell); err != nil {
			return err
		}
	}
	for i := range r.Extra {
		if err := e.Encode(&r.Extra[i]); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// TableRowProperties represents row-level properties
type TableRowProperties struct {
	CantSplit *OnOff
	Header    *OnOff
	// Extra keeps trPr children we don't model (trHeight, jc, hidden...)
	Extra []RawXMLElement
}

// tableRowPropertyOrder is the CT_TrPr child sequence
var tableRowPropertyOrder = []string{
	"cnfStyle", "divId", "gridBefore", "gridAfter", "wBefore", "wAfter", "cantSplit",
	"trHeight", "tblHeader", "tblCellSpacing", "jc", "hidden", "ins", "del", "trPrChange",
}

// UnmarshalXML implements custom XML unmarshaling for TableRowProperties
func (p *TableRowProperties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeChildren(d, func(t xml.StartElement) (bool, error) {
		switch t.Name.Local {
		case "cantSplit":
			p.CantSplit = &OnOff{}
			return true, d.DecodeElement(p.CantSplit, &t)
		case "tblHeader":
			p.Header = &OnOff{}
			return true, d.DecodeElement(p.Header, &t)
		}
		return false, nil
	}, func(raw *RawXMLElement) {
		p.Extra = append(p.Extra, *raw)
	})
}

// MarshalXML implements custom XML marshaling for TableRowProperties
func (p TableRowProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	var c children
	if p.CantSplit != nil {
		c.add("cantSplit", p.CantSplit)
	}
	if p.Header != nil {
		c.add("tblHeader", p.Header)
	}
	c.addRaw(p.Extra)
	return c.encode(e, xml.StartElement{Name: xml.Name{Local: "w:trPr"}}, tableRowPropertyOrder)
}

// TableCell represents a cell in a table row
type TableCell struct {
	// Before keeps elements found between the previous cell and this one
	Before     []RawXMLElement
	Properties *TableCellProperties
	// Content holds *Paragraph, *Table and *RawXMLElement in document order
	Content []BodyElement
}

// NewTableCell creates a cell holding one empty paragraph. A positive width
// sets tcW in twips.
func NewTableCell(width int) *TableCell {
	cell := &TableCell{Content: []BodyElement{&Paragraph{}}}
	if width > 0 {
		cell.Properties = &TableCellProperties{Width: &Width{W: strconv.Itoa(width), Type: "dxa"}}
	}
	return cell
}

// UnmarshalXML implements custom XML unmarshaling for TableCell
func (c *TableCell) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeChildren(d, func(t xml.StartElement) (bool, error) {
		switch t.Name.Local {
		case "tcPr":
			var props TableCellProperties
			if err := d.DecodeElement(&props, &t); err != nil {
				return true, err
			}
			c.Properties = &props
		case "p":
			var para Paragraph
			if err := d.DecodeElement(&para, &t); err != nil {
				return true, err
			}
			c.Content = append(c.Content, &para)
		case "tbl":
			var table Table
			if err := d.DecodeElement(&table, &t); err != nil {
				return true, err
			}
			c.Content = append(c.Content, &table)
		default:
			return false, nil
		}
		return true, nil
	}, func(raw *RawXMLElement) {
		c.Content = append(c.Content, raw)
	})
}

// MarshalXML implements custom XML marshaling for TableCell to ensure proper namespacing
func (c TableCell) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tc"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if c.Properties != nil {
		if err := e.EncodeElement(c.Properties, xml.StartElement{Name: xml.Name{Local: "w:tcPr"}}); err != nil {
			return err
		}
	}
	for _, content := range c.Content {
		if err := e.Encode(content); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Paragraphs returns the paragraphs directly inside the cell
func (c *TableCell) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, content := range c.Content {
		if para, ok := content.(*Paragraph); ok {
			paras = append(paras, para)
		}
	}
	return paras
}

// GetText returns the text of the cell's paragraphs joined by newlines
func (c *TableCell) GetText() string {
	paras := c.Paragraphs()
	texts := make([]string, len(paras))
	for i, para := range paras {
		texts[i] = para.GetText()
	}
	return strings.Join(texts, "\n")
}

// SetText replaces the cell content with a single paragraph holding text.
// The first paragraph's properties and the formatting of its first run carry
// over; an empty text leaves one empty paragraph.
func (c *TableCell) SetText(text string) {
	para := &Paragraph{}
	var runProps *RunProperties
	if paras := c.Paragraphs(); len(paras) > 0 {
		para.Properties = paras[0].Properties
		if runs := paras[0].Runs(); len(runs) > 0 {
			runProps = runs[0].Properties.Clone()
		}
	}
	if text != "" {
		para.AddRun(text, runProps)
	}
	c.Content = []BodyElement{para}
}

// Clear empties the cell, keeping its properties and leaving one empty paragraph
func (c *TableCell) Clear() {
	c.SetText("")
}

// SetShading sets a solid background fill (RRGGBB), replacing any existing shading
func (c *TableCell) SetShading(fill string) {
	if c.Properties == nil {
		c.Properties = &TableCellProperties{}
	}
	c.Properties.Shading = &Shading{Val: "clear", Color: "auto", Fill: fill}
}

// TableCellProperties represents cell-level properties
type TableCellProperties struct {
	Width    *Width
	GridSpan *IntVal
	Shading  *Shading
	// Extra keeps tcPr children we don't model (vMerge, borders, vAlign...)
	Extra []RawXMLElement
}

// tableCellPropertyOrder is the CT_TcPr child sequence
var tableCellPropertyOrder = []string{
	"cnfStyle", "tcW", "gridSpan", "hMerge", "vMerge", "tcBorders", "shd", "noWrap", "tcMar",
	"textDirection", "tcFitText", "vAlign", "hideMark", "headers", "cellIns", "cellDel",
	"cellMerge", "tcPrChange",
}

// UnmarshalXML implements custom XML unmarshaling for TableCellProperties
func (p *TableCellProperties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeChildren(d, func(t xml.StartElement) (bool, error) {
		var target interface{}
		switch t.Name.Local {
		case "tcW":
			p.Width = &Width{}
			target = p.Width
		case "gridSpan":
			p.GridSpan = &IntVal{}
			target = p.GridSpan
		case "shd":
			p.Shading = &Shading{}
			target = p.Shading
		default:
			return false, nil
		}
		return true, d.DecodeElement(target, &t)
	}, func(raw *RawXMLElement) {
		p.Extra = append(p.Extra, *raw)
	})
}

// MarshalXML implements custom XML marshaling for TableCellProperties
func (p TableCellProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	var c children
	if p.Width != nil {
		c.add("tcW", p.Width)
	}
	if p.GridSpan != nil {
		c.add("gridSpan", p.GridSpan)
	}
	if p.Shading != nil {
		c.add("shd", p.Shading)
	}
	c.addRaw(p.Extra)
	return c.encode(e, xml.StartElement{Name: xml.Name{Local: "w:tcPr"}}, tableCellPropertyOrder)
}

// Width represents a measurement such as tblW or tcW. W is kept as text
// because it may carry a percentage.
type Width struct {
	W    string `xml:"w,attr"`
	Type string `xml:"type,attr,omitempty"`
}

// MarshalXML implements custom XML marshaling for Width
func (w Width) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{{Name: xml.Name{Local: "w:w"}, Value: w.W}}
	if w.Type != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "w:type"}, Value: w.Type})
	}
	return e.EncodeElement(struct{}{}, start)
}

// Shading represents cell shading
type Shading struct {
	Val       string `xml:"val,attr,omitempty"`
	Color     string `xml:"color,attr,omitempty"`
	Fill      string `xml:"fill,attr,omitempty"`
	ThemeFill string `xml:"themeFill,attr,omitempty"`
}

// MarshalXML implements custom XML marshaling for Shading
func (s Shading) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:shd"}
	start.Attr = nil
	for _, attr := range []struct{ name, value string }{
		{"w:val", s.Val},
		{"w:color", s.Color},
		{"w:fill", s.Fill},
		{"w:themeFill", s.ThemeFill},
	} {
		if attr.value != "" {
			start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: attr.name}, Value: attr.value})
		}
	}
	return e.EncodeElement(struct{}{}, start)
}
