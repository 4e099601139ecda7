package xml

import (
	"bytes"
	"encoding/xml"
	"io"
	"slices"
	"strconv"
	"strings"
	"sync"
)

// BodyElement represents any element that can appear in a document body or a table cell
type BodyElement interface {
	isBodyElement()
}

// ParagraphContent represents any content that can appear in a paragraph
type ParagraphContent interface {
	isParagraphContent()
}

// RunContent represents any content that can appear in a run
type RunContent interface {
	isRunContent()
}

// RawXMLElement represents an element we preserve verbatim but don't model.
// XMLName and Attrs carry prefixed names (e.g. "w:sdt"), Content the inner XML.
type RawXMLElement struct {
	XMLName xml.Name
	Attrs   []xml.Attr
	Content []byte
}

func (r RawXMLElement) isBodyElement()      {}
func (r RawXMLElement) isParagraphContent() {}
func (r RawXMLElement) isRunContent()       {}

// LocalName returns the element name without its namespace prefix
func (r *RawXMLElement) LocalName() string {
	return localPart(r.XMLName.Local)
}

// MarshalXML writes the preserved element back unchanged
func (r RawXMLElement) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Name = r.XMLName
	start.Attr = r.Attrs
	inner := struct {
		Inner []byte `xml:",innerxml"`
	}{Inner: r.Content}
	return e.EncodeElement(inner, start)
}

// OnOff represents a toggle property such as w:b or w:cantSplit.
// A missing w:val means on.
type OnOff struct {
	Val string `xml:"val,attr,omitempty"`
}

// On returns an enabled toggle
func On() *OnOff {
	return &OnOff{}
}

// Enabled reports whether the toggle is set
func (o *OnOff) Enabled() bool {
	if o == nil {
		return false
	}
	switch o.Val {
	case "", "1", "true", "on":
		return true
	}
	return false
}

// MarshalXML implements custom XML marshaling for OnOff
func (o OnOff) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	start.Attr = nil
	if o.Val != "" {
		start.Attr = []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: o.Val}}
	}
	return e.EncodeElement(struct{}{}, start)
}

// Style represents a style reference (pStyle, rStyle, tblStyle)
type Style struct {
	Val string `xml:"val,attr"`
}

// MarshalXML implements custom XML marshaling for Style
func (s Style) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	// The element name depends on the context so we keep the provided name
	return encodeVal(e, start, s.Val)
}

// StringVal represents an element holding a single string w:val (u, jc, vertAlign)
type StringVal struct {
	Val string `xml:"val,attr"`
}

// MarshalXML implements custom XML marshaling for StringVal
func (v StringVal) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return encodeVal(e, start, v.Val)
}

// IntVal represents an element holding a single integer w:val
type IntVal struct {
	Val int `xml:"val,attr"`
}

// MarshalXML implements custom XML marshaling for IntVal
func (v IntVal) MarshalXML(e *xml.Encoder, start xml.StartElement) error {
	return encodeVal(e, start, strconv.Itoa(v.Val))
}

// encodeVal writes a self-contained element with a single w:val attribute
func encodeVal(e *xml.Encoder, start xml.StartElement, val string) error {
	start.Attr = []xml.Attr{{Name: xml.Name{Local: "w:val"}, Value: val}}
	return e.EncodeElement(struct{}{}, start)
}

// decodeChildren walks the child elements of the element opened by start.
// decode reports whether it consumed an element; everything it leaves is
// captured verbatim and handed to keep.
func decodeChildren(d *xml.Decoder, decode func(xml.StartElement) (bool, error), keep func(*RawXMLElement)) error {
	for {
		token, err := d.Token()
		if err != nil {
			if err == io.EOF {
				return io.ErrUnexpectedEOF
			}
			return err
		}

		switch t := token.(type) {
		case xml.StartElement:
			handled, err := decode(t)
			if err != nil {
				return err
			}
			if handled {
				continue
			}
			raw, err := captureRaw(d, t)
			if err != nil {
				return err
			}
			keep(raw)
		case xml.EndElement:
			return nil
		}
	}
}

// child is a typed element waiting to be encoded under its WordprocessingML name
type child struct {
	local string
	value interface{}
	raw   *RawXMLElement
}

// children collects typed and preserved elements of a property container so
// they can be written in schema order.
type children struct {
	items []child
}

func (c *children) add(local string, value interface{}) {
	c.items = append(c.items, child{local: local, value: value})
}

func (c *children) addRaw(raws []RawXMLElement) {
	for i := range raws {
		c.items = append(c.items, child{local: raws[i].LocalName(), raw: &raws[i]})
	}
}

// encode writes start, the collected children sorted by their position in
// order, and the end element. Unknown names go last in original order.
func (c *children) encode(e *xml.Encoder, start xml.StartElement, order []string) error {
	rank := func(local string) int {
		if i := slices.Index(order, local); i >= 0 {
			return i
		}
		return len(order)
	}
	slices.SortStableFunc(c.items, func(a, b child) int {
		return rank(a.local) - rank(b.local)
	})

	start.Attr = nil
	if err := e.EncodeToken(start); err != nil {
		return err
	}
	for _, item := range c.items {
		if item.raw != nil {
			if err := e.Encode(item.raw); err != nil {
				return err
			}
			continue
		}
		if err := e.EncodeElement(item.value, xml.StartElement{Name: xml.Name{Local: "w:" + item.local}}); err != nil {
			return err
		}
	}
	return e.EncodeToken(xml.EndElement{Name: start.Name})
}

// namespacePrefixes holds conventional prefixes for the namespaces found in DOCX parts
var namespacePrefixes = map[string]string{
	// Core Word namespaces
	"http://schemas.openxmlformats.org/wordprocessingml/2006/main":        "w",
	"http://schemas.openxmlformats.org/officeDocument/2006/relationships": "r",
	"http://schemas.openxmlformats.org/officeDocument/2006/math":          "m",
	"http://www.w3.org/XML/1998/namespace":                                "xml",
	// Drawing namespaces
	"http://schemas.openxmlformats.org/drawingml/2006/wordprocessingDrawing": "wp",
	"http://schemas.openxmlformats.org/drawingml/2006/main":                  "a",
	"http://schemas.openxmlformats.org/drawingml/2006/picture":               "pic",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingDrawing":    "wp14",
	"http://schemas.microsoft.com/office/drawing/2010/main":                  "a14",
	// VML namespaces
	"urn:schemas-microsoft-com:vml":           "v",
	"urn:schemas-microsoft-com:office:office": "o",
	"urn:schemas-microsoft-com:office:word":   "w10",
	// Markup compatibility namespace
	"http://schemas.openxmlformats.org/markup-compatibility/2006": "mc",
	// Word processing shapes and canvas
	"http://schemas.microsoft.com/office/word/2010/wordprocessingShape":  "wps",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingCanvas": "wpc",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingGroup":  "wpg",
	"http://schemas.microsoft.com/office/word/2010/wordprocessingInk":    "wpi",
	// Extended Word namespaces
	"http://schemas.microsoft.com/office/word/2010/wordml":               "w14",
	"http://schemas.microsoft.com/office/word/2012/wordml":               "w15",
	"http://schemas.microsoft.com/office/word/2015/wordml/symex":         "w16se",
	"http://schemas.microsoft.com/office/word/2016/wordml/cid":           "w16cid",
	"http://schemas.microsoft.com/office/word/2018/wordml":               "w16",
	"http://schemas.microsoft.com/office/word/2018/wordml/cex":           "w16cex",
	"http://schemas.microsoft.com/office/word/2020/wordml/sdtdatahash":   "w16sdtdh",
	"http://schemas.microsoft.com/office/word/2024/wordml/sdtformatlock": "w16sdtfl",
	"http://schemas.microsoft.com/office/word/2023/wordml/word16du":      "w16du",
	"http://schemas.microsoft.com/office/word/2006/wordml":               "wne",
	// Chart namespaces
	"http://schemas.microsoft.com/office/drawing/2014/chartex":       "cx",
	"http://schemas.microsoft.com/office/drawing/2015/9/8/chartex":   "cx1",
	"http://schemas.microsoft.com/office/drawing/2015/10/21/chartex": "cx2",
	"http://schemas.microsoft.com/office/drawing/2016/5/9/chartex":   "cx3",
	"http://schemas.microsoft.com/office/drawing/2016/5/10/chartex":  "cx4",
	"http://schemas.microsoft.com/office/drawing/2016/5/11/chartex":  "cx5",
	"http://schemas.microsoft.com/office/drawing/2016/5/12/chartex":  "cx6",
	"http://schemas.microsoft.com/office/drawing/2016/5/13/chartex":  "cx7",
	"http://schemas.microsoft.com/office/drawing/2016/5/14/chartex":  "cx8",
	// Other drawing namespaces
	"http://schemas.microsoft.com/office/drawing/2016/ink":     "aink",
	"http://schemas.microsoft.com/office/drawing/2017/model3d": "am3d",
	// Office extension namespaces
	"http://schemas.microsoft.com/office/2019/extlst": "oel",
}

// declaredPrefixes maps a decoder in flight to the prefixes declared on the
// root element it is decoding, for namespaces missing from namespacePrefixes.
var declaredPrefixes sync.Map // *xml.Decoder -> map[string]string

func registerPrefixes(d *xml.Decoder, attrs []xml.Attr) {
	declared := make(map[string]string)
	for _, attr := range attrs {
		if attr.Name.Space == "xmlns" {
			declared[attr.Value] = attr.Name.Local
		}
	}
	declaredPrefixes.Store(d, declared)
}

func unregisterPrefixes(d *xml.Decoder) {
	declaredPrefixes.Delete(d)
}

// namespaceToPrefix converts a namespace URI to its prefix. Undeclared
// prefixes come through the decoder untranslated and are returned as-is.
func namespaceToPrefix(d *xml.Decoder, uri string) string {
	if prefix, ok := namespacePrefixes[uri]; ok {
		return prefix
	}
	if d != nil {
		if v, ok := declaredPrefixes.Load(d); ok {
			if prefix, ok := v.(map[string]string)[uri]; ok {
				return prefix
			}
		}
	}
	return uri
}

// prefixedName renders a decoded name back into its prefixed form
func prefixedName(d *xml.Decoder, name xml.Name) string {
	switch name.Space {
	case "":
		return name.Local
	case "xmlns":
		return "xmlns:" + name.Local
	}
	return namespaceToPrefix(d, name.Space) + ":" + name.Local
}

func prefixedAttrs(d *xml.Decoder, attrs []xml.Attr) []xml.Attr {
	if len(attrs) == 0 {
		return nil
	}
	out := make([]xml.Attr, len(attrs))
	for i, attr := range attrs {
		out[i] = xml.Attr{Name: xml.Name{Local: prefixedName(d, attr.Name)}, Value: attr.Value}
	}
	return out
}

// captureRaw consumes the element opened by start and returns it verbatim
func captureRaw(d *xml.Decoder, start xml.StartElement) (*RawXMLElement, error) {
	raw := &RawXMLElement{
		XMLName: xml.Name{Local: prefixedName(d, start.Name)},
		Attrs:   prefixedAttrs(d, start.Attr),
	}

	var buf bytes.Buffer
	depth := 1
	for depth > 0 {
		tok, err := d.Token()
		if err != nil {
			if err == io.EOF {
				err = io.ErrUnexpectedEOF
			}
			return nil, err
		}

		switch tt := tok.(type) {
		case xml.StartElement:
			depth++
			buf.WriteString("<")
			buf.WriteString(prefixedName(d, tt.Name))
			for _, attr := range tt.Attr {
				buf.WriteString(" ")
				buf.WriteString(prefixedName(d, attr.Name))
				buf.WriteString(`="`)
				xml.EscapeText(&buf, []byte(attr.Value))
				buf.WriteString(`"`)
			}
			buf.WriteString(">")
		case xml.EndElement:
			depth--
			if depth > 0 {
				buf.WriteString("</")
				buf.WriteString(prefixedName(d, tt.Name))
				buf.WriteString(">")
			}
		case xml.CharData:
			xml.EscapeText(&buf, tt)
		case xml.Comment:
			buf.WriteString("<!--")
			buf.Write(tt)
			buf.WriteString("-->")
		}
	}

	raw.Content = buf.Bytes()
	return raw, nil
}

func localPart(name string) string {
	if idx := strings.IndexByte(name, ':'); idx >= 0 {
		return name[idx+1:]
	}
	return name
}
