package xml

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
)

const (
	// WordNamespace is the main WordprocessingML namespace
	WordNamespace = "http://schemas.openxmlformats.org/wordprocessingml/2006/main"
	// RelationshipsNamespace is the officeDocument relationships namespace
	RelationshipsNamespace = "http://schemas.openxmlformats.org/officeDocument/2006/relationships"

	// DefaultContentWidth is the text width in twips used when the section
	// carries no usable page size (6 inches)
	DefaultContentWidth = 8640
)

// Document represents a Word document structure
type Document struct {
	// Attrs preserves root element attributes (namespaces, mc:Ignorable) with their prefixes
	Attrs []xml.Attr
	// Extra keeps children of w:document other than w:body (e.g. w:background)
	Extra []RawXMLElement
	Body  *Body
}

// NewDocument creates an empty document with a Letter-sized section
func NewDocument() *Document {
	return &Document{
		Attrs: defaultRootAttrs(),
		Body: &Body{
			SectionProperties: &RawXMLElement{
				XMLName: xml.Name{Local: "w:sectPr"},
				Content: []byte(`<w:pgSz w:w="12240" w:h="15840"></w:pgSz>` +
					`<w:pgMar w:top="1440" w:right="1800" w:bottom="1440" w:left="1800" w:header="720" w:footer="720" w:gutter="0"></w:pgMar>` +
					`<w:cols w:space="720"></w:cols>`),
			},
		},
	}
}

func defaultRootAttrs() []xml.Attr {
	return []xml.Attr{
		{Name: xml.Name{Local: "xmlns:w"}, Value: WordNamespace},
		{Name: xml.Name{Local: "xmlns:r"}, Value: RelationshipsNamespace},
	}
}

// UnmarshalXML implements custom XML unmarshaling to preserve root attributes
func (doc *Document) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	registerPrefixes(d, start.Attr)
	defer unregisterPrefixes(d)

	doc.Attrs = prefixedAttrs(d, start.Attr)
	return decodeChildren(d, func(t xml.StartElement) (bool, error) {
		if t.Name.Local != "body" {
			return false, nil
		}
		var body Body
		if err := d.DecodeElement(&body, &t); err != nil {
			return true, err
		}
		doc.Body = &body
		return true, nil
	}, func(raw *RawXMLElement) {
		doc.Extra = append(doc.Extra, *raw)
	})
}

// MarshalXML implements custom XML marshaling for Document
func (doc Document) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = xml.Name{Local: "w:document"}
	start.Attr = doc.Attrs
	if len(start.Attr) == 0 {
		start.Attr = defaultRootAttrs()
	}
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for i := range doc.Extra {
		if err := e.Encode(&doc.Extra[i]); err != nil {
			return err
		}
	}
	if doc.Body != nil {
		if err := e.EncodeElement(doc.Body, xml.StartElement{Name: xml.Name{Local: "w:body"}}); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Body represents the document body
type Body struct {
	// Elements maintains the order of all body elements
	Elements []BodyElement
	// SectionProperties at the end of the body (critical for Word compatibility)
	SectionProperties *RawXMLElement
}

// UnmarshalXML implements custom XML unmarshaling to preserve element order
func (b *Body) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	return decodeChildren(d, func(t xml.StartElement) (bool, error) {
		switch t.Name.Local {
		case "p":
			var para Paragraph
			if err := d.DecodeElement(&para, &t); err != nil {
				return true, err
			}
			b.Elements = append(b.Elements, &para)
		case "tbl":
			var table Table
			if err := d.DecodeElement(&table, &t); err != nil {
				return true, err
			}
			b.Elements = append(b.Elements, &table)
		case "sectPr":
			raw, err := captureRaw(d, t)
			if err != nil {
				return true, err
			}
			b.SectionProperties = raw
		default:
			return false, nil
		}
		return true, nil
	}, func(raw *RawXMLElement) {
		b.Elements = append(b.Elements, raw)
	})
}

// MarshalXML implements custom XML marshaling to preserve element order
func (b Body) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}

	for _, elem := range b.Elements {
		if err := e.Encode(elem); err != nil {
			return err
		}
	}
	if b.SectionProperties != nil {
		if err := e.Encode(b.SectionProperties); err != nil {
			return err
		}
	}

	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// Tables returns the top-level tables of the body in document order
func (b *Body) Tables() []*Table {
	var tables []*Table
	for _, elem := range b.Elements {
		if table, ok := elem.(*Table); ok {
			tables = append(tables, table)
		}
	}
	return tables
}

// Paragraphs returns the top-level paragraphs of the body in document order
func (b *Body) Paragraphs() []*Paragraph {
	var paras []*Paragraph
	for _, elem := range b.Elements {
		if para, ok := elem.(*Paragraph); ok {
			paras = append(paras, para)
		}
	}
	return paras
}

// Append adds elements to the end of the body
func (b *Body) Append(elems ...BodyElement) {
	b.Elements = append(b.Elements, elems...)
}

// ContentWidth returns the width between the left and right margins of the
// final section in twips, or DefaultContentWidth when it cannot be read.
func (b *Body) ContentWidth() int {
	if b.SectionProperties == nil {
		return DefaultContentWidth
	}

	var layout struct {
		PageSize struct {
			W int `xml:"w,attr"`
		} `xml:"pgSz"`
		Margins struct {
			Left  int `xml:"left,attr"`
			Right int `xml:"right,attr"`
		} `xml:"pgMar"`
	}
	// Prefixes inside the fragment are undeclared, which the decoder tolerates
	var buf bytes.Buffer
	buf.WriteString("<sectPr>")
	buf.Write(b.SectionProperties.Content)
	buf.WriteString("</sectPr>")
	if err := xml.Unmarshal(buf.Bytes(), &layout); err != nil {
		return DefaultContentWidth
	}

	width := layout.PageSize.W - layout.Margins.Left - layout.Margins.Right
	if width <= 0 {
		return DefaultContentWidth
	}
	return width
}

// ParseDocument parses a Word document XML
func ParseDocument(r io.Reader) (*Document, error) {
	decoder := xml.NewDecoder(r)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		return nil, fmt.Errorf("failed to parse document: %w", err)
	}
	if doc.Body == nil {
		doc.Body = &Body{}
	}

	return &doc, nil
}

// MarshalDocument encodes a document as a complete document.xml part
func MarshalDocument(doc *Document) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")

	encoder := xml.NewEncoder(&buf)
	if err := encoder.Encode(doc); err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}
	if err := encoder.Flush(); err != nil {
		return nil, fmt.Errorf("failed to marshal document: %w", err)
	}

	return buf.Bytes(), nil
}
