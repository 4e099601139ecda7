// Package inspect renders a Markdown outline of a document: its headings,
// text, bullet lists and tables in body order, followed by a summary.
package inspect

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/benjaminschreck/go-docmgr/pkg/docmgr"
	docxml "github.com/benjaminschreck/go-docmgr/pkg/docmgr/xml"
)

// maxHeading is the deepest Markdown heading
const maxHeading = 6

// Summary counts what the outline saw
type Summary struct {
	Headings   int
	Paragraphs int
	Bullets    int
	Tables     int
}

type outliner struct {
	md      *markdown.Markdown
	mgr     *docmgr.Manager
	bullets []string
	summary Summary
}

// Outline writes the Markdown outline of the document to w
func Outline(w io.Writer, m *docmgr.Manager) (Summary, error) {
	o := &outliner{md: markdown.NewMarkdown(w), mgr: m}
	for _, elem := range m.Document().Body.Elements {
		switch e := elem.(type) {
		case *docxml.Paragraph:
			o.paragraph(e)
		case *docxml.Table:
			o.flushBullets()
			o.table(e)
		}
	}
	o.flushBullets()
	o.writeSummary()
	return o.summary, o.md.Build()
}

func (o *outliner) paragraph(p *docxml.Paragraph) {
	text := strings.TrimSpace(p.GetText())
	name := strings.ToLower(o.mgr.StyleName(p.StyleID()))

	if isListParagraph(p, name) {
		if text != "" {
			o.bullets = append(o.bullets, text)
			o.summary.Bullets++
		}
		return
	}
	o.flushBullets()
	if text == "" {
		return
	}

	if level, ok := headingLevel(name); ok {
		o.heading(text, level)
		o.summary.Headings++
		return
	}
	o.md.PlainText(text)
	o.md.PlainText("")
	o.summary.Paragraphs++
}

// headingLevel maps Title to 1 and "heading N" to N+1, capped at maxHeading
func headingLevel(styleName string) (int, bool) {
	if styleName == "title" {
		return 1, true
	}
	rest, ok := strings.CutPrefix(styleName, "heading ")
	if !ok {
		return 0, false
	}
	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return min(n+1, maxHeading), true
}

func isListParagraph(p *docxml.Paragraph, styleName string) bool {
	if strings.HasPrefix(styleName, "list bullet") {
		return true
	}
	return p.Properties != nil && p.Properties.Numbering != nil
}

func (o *outliner) heading(text string, level int) {
	switch level {
	case 1:
		o.md.H1(text)
	case 2:
		o.md.H2(text)
	case 3:
		o.md.H3(text)
	case 4:
		o.md.H4(text)
	case 5:
		o.md.H5(text)
	default:
		o.md.H6(text)
	}
	o.md.PlainText("")
}

func (o *outliner) flushBullets() {
	if len(o.bullets) == 0 {
		return
	}
	o.md.BulletList(o.bullets...)
	o.md.PlainText("")
	o.bullets = nil
}

// table writes the first row as the header; short rows are padded
func (o *outliner) table(t *docxml.Table) {
	o.summary.Tables++
	if len(t.Rows) == 0 {
		o.md.PlainText("_(empty table)_")
		o.md.PlainText("")
		return
	}

	width := 0
	grid := make([][]string, len(t.Rows))
	for i, row := range t.Rows {
		cells := make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			cells[j] = cellText(cell)
		}
		grid[i] = cells
		width = max(width, len(cells))
	}
	if width == 0 {
		o.md.PlainText("_(empty table)_")
		o.md.PlainText("")
		return
	}
	for i := range grid {
		for len(grid[i]) < width {
			grid[i] = append(grid[i], "")
		}
	}

	o.md.Table(markdown.TableSet{
		Header: grid[0],
		Rows:   grid[1:],
	})
	o.md.PlainText("")
}

// cellText flattens a cell onto one line so it fits a Markdown table
func cellText(cell *docxml.TableCell) string {
	text := strings.ReplaceAll(cell.GetText(), "\n", " ")
	return strings.ReplaceAll(strings.TrimSpace(text), "|", "\\|")
}

func (o *outliner) writeSummary() {
	o.md.H2("Summary")
	o.md.PlainText("")
	o.md.Table(markdown.TableSet{
		Header: []string{"Element", "Count"},
		Rows: [][]string{
			{"Headings", strconv.Itoa(o.summary.Headings)},
			{"Paragraphs", strconv.Itoa(o.summary.Paragraphs)},
			{"Bullets", strconv.Itoa(o.summary.Bullets)},
			{"Tables", strconv.Itoa(o.summary.Tables)},
		},
	})
}
