package xml

import (
	"encoding/xml"
	"strings"
)

// Run represents a run of text with common properties
type Run struct {
	Properties *RunProperties
	// Content holds *Text, *Break, *Tab and *RawXMLElement (drawings, fields) in document order
	Content []RunContent
}

// isParagraphContent implements the ParagraphContent interface
func (r Run) isParagraphContent() {}

// NewRun creates a run holding text with the given properties
func NewRun(text string, props *RunProperties) *Run {
	r := &Run{Properties: props}
	r.SetText(text)
	return r
}

// UnmarshalXML implements custom XML unmarshaling to preserve unknown elements
func (r *Run) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeChildren(d, func(t xml.StartElement) (bool, error) {
		switch t.Name.Local {
		case "rPr":
			var props RunProperties
			if err := d.DecodeElement(&props, &t); err != nil {
				return true, err
			}
			r.Properties = &props
		case "t":
			var text Text
			if err := d.DecodeElement(&text, &t); err != nil {
				return true, err
			}
			r.Content = append(r.Content, &text)
		case "br":
			var br Break
			if err := d.DecodeElement(&br, &t); err != nil {
				return true, err
			}
			r.Content = append(r.Content, &br)
		case "tab":
			if err := d.Skip(); err != nil {
				return true, err
			}
			r.Content = append(r.Content, &Tab{})
		default:
			return false, nil
		}
		return true, nil
	}, func(raw *RawXMLElement) {
		r.Content = append(r.Content, raw)
	})
}

// MarshalXML implements custom XML marshaling for Run to ensure proper namespacing
func (r Run) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:r"}
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	if r.Properties != nil {
		if err := e.EncodeElement(r.Properties, xml.StartElement{Name: xml.Name{Local: "w:rPr"}}); err != nil {
			return err
		}
	}

	for _, content := range r.Content {
		if err := e.Encode(content); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// GetText returns the text content of a run. Tabs come back as "\t" and
// line breaks as "\n".
func (r *Run) GetText() string {
	var sb strings.Builder
	for _, content := range r.Content {
		switch c := content.(type) {
		case *Text:
			sb.WriteString(c.Content)
		case *Tab:
			sb.WriteString("\t")
		case *Break:
			if c.Type == "" || c.Type == "textWrapping" {
				sb.WriteString("\n")
			}
		case *RawXMLElement:
			switch c.LocalName() {
			case "cr":
				sb.WriteString("\n")
			case "noBreakHyphen":
				sb.WriteString("-")
			}
		}
	}
	return sb.String()
}

// SetText replaces the run content with text. Tabs become w:tab and
// newlines or carriage returns become w:br.
func (r *Run) SetText(text string) {
	r.Content = nil

	var pending strings.Builder
	flush := func() {
		if pending.Len() > 0 {
			r.Content = append(r.Content, NewText(pending.String()))
			pending.Reset()
		}
	}

	for _, ch := range text {
		switch ch {
		case '\t':
			flush()
			r.Content = append(r.Content, &Tab{})
		case '\n', '\r':
			flush()
			r.Content = append(r.Content, &Break{})
		default:
			pending.WriteRune(ch)
		}
	}
	flush()
}

// RunProperties represents run formatting properties
type RunProperties struct {
	Style         *Style
	Bold          *OnOff
	BoldCs        *OnOff
	Italic        *OnOff
	ItalicCs      *OnOff
	Strike        *OnOff
	Color         *Color
	Size          *IntVal // half-points
	SizeCs        *IntVal
	Underline     *StringVal
	VerticalAlign *StringVal
	// Extra keeps rPr children we don't model
	Extra []RawXMLElement
}

// runPropertyOrder is the CT_RPr child sequence
var runPropertyOrder = []string{
	"rStyle", "rFonts", "b", "bCs", "i", "iCs", "caps", "smallCaps", "strike", "dstrike",
	"outline", "shadow", "emboss", "imprint", "noProof", "snapToGrid", "vanish", "webHidden",
	"color", "spacing", "w", "kern", "position", "sz", "szCs", "highlight", "u", "effect",
	"bdr", "shd", "fitText", "vertAlign", "rtl", "cs", "em", "lang", "eastAsianLayout",
	"specVanish", "oMath", "rPrChange",
}

// Clone returns a deep copy of the properties
func (p *RunProperties) Clone() *RunProperties {
	if p == nil {
		return nil
	}
	out := *p
	copyPtr(&out.Style)
	copyPtr(&out.Bold)
	copyPtr(&out.BoldCs)
	copyPtr(&out.Italic)
	copyPtr(&out.ItalicCs)
	copyPtr(&out.Strike)
	copyPtr(&out.Color)
	copyPtr(&out.Size)
	copyPtr(&out.SizeCs)
	copyPtr(&out.Underline)
	copyPtr(&out.VerticalAlign)
	out.Extra = append([]RawXMLElement(nil), p.Extra...)
	return &out
}

// UnmarshalXML implements custom XML unmarshaling for RunProperties
func (p *RunProperties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeChildren(d, func(t xml.StartElement) (bool, error) {
		var target interface{}
		switch t.Name.Local {
		case "rStyle":
			p.Style = &Style{}
			target = p.Style
		case "b":
			p.Bold = &OnOff{}
			target = p.Bold
		case "bCs":
			p.BoldCs = &OnOff{}
			target = p.BoldCs
		case "i":
			p.Italic = &OnOff{}
			target = p.Italic
		case "iCs":
			p.ItalicCs = &OnOff{}
			target = p.ItalicCs
		case "strike":
			p.Strike = &OnOff{}
			target = p.Strike
		case "color":
			p.Color = &Color{}
			target = p.Color
		case "sz":
			p.Size = &IntVal{}
			target = p.Size
		case "szCs":
			p.SizeCs = &IntVal{}
			target = p.SizeCs
		case "u":
			p.Underline = &StringVal{}
			target = p.Underline
		case "vertAlign":
			p.VerticalAlign = &StringVal{}
			target = p.VerticalAlign
		default:
			return false, nil
		}
		return true, d.DecodeElement(target, &t)
	}, func(raw *RawXMLElement) {
		p.Extra = append(p.Extra, *raw)
	})
}

// MarshalXML writes run properties in schema order
func (p RunProperties) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	var c children
	if p.Style != nil {
		c.add("rStyle", p.Style)
	}
	if p.Bold != nil {
		c.add("b", p.Bold)
	}
	if p.BoldCs != nil {
		c.add("bCs", p.BoldCs)
	}
	if p.Italic != nil {
		c.add("i", p.Italic)
	}
	if p.ItalicCs != nil {
		c.add("iCs", p.ItalicCs)
	}
	if p.Strike != nil {
		c.add("strike", p.Strike)
	}
	if p.Color != nil {
		c.add("color", p.Color)
	}
	if p.Size != nil {
		c.add("sz", p.Size)
	}
	if p.SizeCs != nil {
		c.add("szCs", p.SizeCs)
	}
	if p.Underline != nil {
		c.add("u", p.Underline)
	}
	if p.VerticalAlign != nil {
		c.add("vertAlign", p.VerticalAlign)
	}
	c.addRaw(p.Extra)
	return c.encode(e, xml.StartElement{Name: xml.Name{Local: "w:rPr"}}, runPropertyOrder)
}

// Text represents text content
type Text struct {
	Space   string `xml:"space,attr"`
	Content string `xml:",chardata"`
}

func (t Text) isRunContent() {}

// NewText creates a text element, preserving spaces when the value has
// leading or trailing whitespace
func NewText(s string) *Text {
	t := &Text{Content: s}
	if strings.TrimSpace(s) != s {
		t.Space = "preserve"
	}
	return t
}

// MarshalXML implements custom XML marshaling for Text to ensure proper namespacing
func (t Text) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:t"}
	start.Attr = nil
	if t.Space == "preserve" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "xml:space"}, Value: "preserve"})
	}
	return e.EncodeElement(t.Content, start)
}

// Break represents a line, column or page break
type Break struct {
	Type string `xml:"type,attr,omitempty"`
}

func (b Break) isRunContent() {}

// MarshalXML implements xml.Marshaler to ensure Break is self-contained
func (b Break) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:br"}
	start.Attr = nil
	if b.Type != "" {
		start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: "w:type"}, Value: b.Type})
	}
	return e.EncodeElement(struct{}{}, start)
}

// Tab represents a tab character inside a run
type Tab struct{}

func (t Tab) isRunContent() {}

// MarshalXML implements custom XML marshaling for Tab
func (t Tab) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:tab"}
	start.Attr = nil
	return e.EncodeElement(struct{}{}, start)
}

// Color represents text color as RRGGBB or "auto"
type Color struct {
	Val        string `xml:"val,attr"`
	ThemeColor string `xml:"themeColor,attr,omitempty"`
	ThemeShade string `xml:"themeShade,attr,omitempty"`
	ThemeTint  string `xml:"themeTint,attr,omitempty"`
}

// MarshalXML implements custom XML marshaling for Color
func (c Color) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: c.Val}}
	for _, attr := range []struct{ name, value string }{
		{"w:themeColor", c.ThemeColor},
		{"w:themeShade", c.ThemeShade},
		{"w:themeTint", c.ThemeTint},
	} {
		if attr.value != "" {
			start.Attr = append(start.Attr, xml.Attr{Name: xml.Name{Local: attr.name}, Value: attr.value})
		}
	}
	return e.EncodeElement(struct{}{}, start)
}

// copyPtr replaces *p with a pointer to a copy of the value it points to
func copyPtr[T any](p **T) {
	if *p != nil {
		v := **p
		*p = &v
	}
}
