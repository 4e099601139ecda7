package xml

import (
	"encoding/xml"
	"strings"
)

// Paragraph represents a paragraph in the document
type Paragraph struct {
	Properties *ParagraphProperties
	// Content maintains the order of runs, hyperlinks and preserved elements
	Content []ParagraphContent
}

// isBodyElement implements the BodyElement interface
func (p Paragraph) isBodyElement() {}

// NewParagraph creates an empty paragraph, optionally bound to a paragraph style id
func NewParagraph(styleID string) *Paragraph {
	p := &Paragraph{}
	if styleID != "" {
		p.Properties = &ParagraphProperties{Style: &Style{Val: styleID}}
	}
	return p
}

// UnmarshalXML implements custom XML unmarshaling to preserve element order
func (p *Paragraph) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeChildren(d, func(t xml.StartElement) (bool, error) {
		switch t.Name.Local {
		case "pPr":
			var props ParagraphProperties
			if err := d.DecodeElement(&props, &t); err != nil {
				return true, err
			}
			p.Properties = &props
		case "r":
			var run Run
			if err := d.DecodeElement(&run, &t); err != nil {
				return true, err
			}
			p.Content = append(p.Content, &run)
		case "hyperlink":
			var link Hyperlink
			if err := d.DecodeElement(&link, &t); err != nil {
				return true, err
			}
			p.Content = append(p.Content, &link)
		default:
			return false, nil
		}
		return true, nil
	}, func(raw *RawXMLElement) {
		p.Content = append(p.Content, raw)
	})
}

// MarshalXML implements custom XML marshaling for Paragraph to ensure proper namespacing
func (p Paragraph) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:p"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if p.Properties != nil {
		if err := e.EncodeElement(p.Properties, xml.StartElement{Name: xml.Name{Local: "w:pPr"}}); err != nil {
			return err
		}
	}

	for _, content := range p.Content {
		if err := e.Encode(content); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// AddRun appends a run holding text with the given properties and returns it
func (p *Paragraph) AddRun(text string, props *RunProperties) *Run {
	run := NewRun(text, props)
	p.Content = append(p.Content, run)
	return run
}

// Runs returns the runs directly inside the paragraph
func (p *Paragraph) Runs() []*Run {
	var runs []*Run
	for _, content := range p.Content {
		if run, ok := content.(*Run); ok {
			runs = append(runs, run)
		}
	}
	return runs
}

// StyleID returns the paragraph style id, or "" when none is set
func (p *Paragraph) StyleID() string {
	if p.Properties == nil || p.Properties.Style == nil {
		return ""
	}
	return p.Properties.Style.Val
}

// GetText returns the concatenated text of all runs and hyperlinks in a paragraph
func (p *Paragraph) GetText() string {
	var sb strings.Builder
	for _, content := range p.Content {
		switch c := content.(type) {
		case *Run:
			sb.WriteString(c.GetText())
		case *Hyperlink:
			sb.WriteString(c.GetText())
		}
	}
	return sb.String()
}

// ParagraphProperties represents paragraph formatting properties
type ParagraphProperties struct {
	Style     *Style
	KeepNext  *OnOff
	Numbering *NumberingProperties
	Alignment *StringVal
	// RunProperties holds the paragraph mark formatting
	RunProperties *RunProperties
	// Extra keeps pPr children we don't model (spacing, ind, tabs, borders...)
	Extra []RawXMLElement
}

// paragraphPropertyOrder is the CT_PPr child sequence
var paragraphPropertyOrder = []string{
	"pStyle", "keepNext", "keepLines", "pageBreakBefore", "framePr", "widowControl", "numPr",
	"suppressLineNumbers", "pBdr", "shd", "tabs", "suppressAutoHyphens", "kinsoku", "wordWrap",
	"overflowPunct", "topLinePunct", "autoSpaceDE", "autoSpaceDN", "bidi", "adjustRightInd",
	"snapToGrid", "spacing", "ind", "contextualSpacing", "mirrorIndents", "suppressOverlap",
	"jc", "textDirection", "textAlignment", "textboxTightWrap", "outlineLvl", "divId",
	"cnfStyle", "rPr", "sectPr", "pPrChange",
}

// Clone returns a deep copy of the properties
func (p *ParagraphProperties) Clone() *ParagraphProperties {
	if p == nil {
		return nil
	}
	out := *p
	copyPtr(&out.Style)
	copyPtr(&out.KeepNext)
	copyPtr(&out.Alignment)
	if p.Numbering != nil {
		n := *p.Numbering
		copyPtr(&n.Level)
		copyPtr(&n.ID)
		out.Numbering = &n
	}
	out.RunProperties = p.RunProperties.Clone()
	out.Extra = append([]RawXMLElement(nil), p.Extra...)
	return &out
}

// UnmarshalXML implements custom XML unmarshaling to preserve unknown elements
func (p *ParagraphProperties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeChildren(d, func(t xml.StartElement) (bool, error) {
		var target interface{}
		switch t.Name.Local {
		case "pStyle":
			p.Style = &Style{}
			target = p.Style
		case "keepNext":
			p.KeepNext = &OnOff{}
			target = p.KeepNext
		case "numPr":
			p.Numbering = &NumberingProperties{}
			target = p.Numbering
		case "jc":
			p.Alignment = &StringVal{}
			target = p.Alignment
		case "rPr":
			p.RunProperties = &RunProperties{}
			target = p.RunProperties
		default:
			return false, nil
		}
		return true, d.DecodeElement(target, &t)
	}, func(raw *RawXMLElement) {
		p.Extra = append(p.Extra, *raw)
	})
}

// MarshalXML implements custom XML marshaling for ParagraphProperties
func (p ParagraphProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	var c children
	if p.Style != nil {
		c.add("pStyle", p.Style)
	}
	if p.KeepNext != nil {
		c.add("keepNext", p.KeepNext)
	}
	if p.Numbering != nil {
		c.add("numPr", p.Numbering)
	}
	if p.Alignment != nil {
		c.add("jc", p.Alignment)
	}
	if p.RunProperties != nil {
		c.add("rPr", p.RunProperties)
	}
	c.addRaw(p.Extra)
	return c.encode(e, xml.StartElement{Name: xml.Name{Local: "w:pPr"}}, paragraphPropertyOrder)
}

// NumberingProperties binds a paragraph to a numbering instance (w:numPr)
type NumberingProperties struct {
	Level *IntVal `xml:"ilvl"`
	ID    *IntVal `xml:"numId"`
}

// MarshalXML implements custom XML marshaling for NumberingProperties
func (n NumberingProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	if n.Level != nil {
		if err := e.EncodeElement(n.Level, xml.StartElement{Name: xml.Name{Local: "w:ilvl"}}); err != nil {
			return err
		}
	}
	if n.ID != nil {
		if err := e.EncodeElement(n.ID, xml.StartElement{Name: xml.Name{Local: "w:numId"}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Hyperlink represents a hyperlink in the document
type Hyperlink struct {
	// Attrs keeps r:id, w:anchor, w:history and friends with their prefixes
	Attrs   []xml.Attr
	Content []ParagraphContent
}

// isParagraphContent implements the ParagraphContent interface
func (h Hyperlink) isParagraphContent() {}

// UnmarshalXML implements custom XML unmarshaling for Hyperlink
func (h *Hyperlink) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	h.Attrs = prefixedAttrs(d, start.Attr)
	return decodeChildren(d, func(t xml.StartElement) (bool, error) {
		if t.Name.Local != "r" {
			return false, nil
		}
		var run Run
		if err := d.DecodeElement(&run, &t); err != nil {
			return true, err
		}
		h.Content = append(h.Content, &run)
		return true, nil
	}, func(raw *RawXMLElement) {
		h.Content = append(h.Content, raw)
	})
}

// MarshalXML implements custom XML marshaling for Hyperlink to ensure proper namespacing
func (h Hyperlink) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:hyperlink"}
	start.Attr = h.Attrs
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, content := range h.Content {
		if err := e.Encode(content); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the concatenated text of all runs in a hyperlink
func (h *Hyperlink) GetText() string {
	var sb strings.Builder
	for _, content := range h.Content {
		if run, ok := content.(*Run); ok {
			sb.WriteString(run.GetText())
		}
	}
	return sb.String()
}
