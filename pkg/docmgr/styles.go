package docmgr

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// Styles represents the w:styles element in styles.xml
type Styles struct {
	XMLName xml.Name        `xml:"styles"`
	Styles  []DocumentStyle `xml:"style"`
}

// DocumentStyle represents a single w:style element
type DocumentStyle struct {
	Type    string `xml:"type,attr"`
	StyleID string `xml:"styleId,attr"`
	Name    struct {
		Val string `xml:"val,attr"`
	} `xml:"name"`
}

// parseStyles parses a styles.xml file
func parseStyles(stylesXML []byte) (*Styles, error) {
	var styles Styles
	err := xml.Unmarshal(stylesXML, &styles)
	if err != nil {
		return nil, fmt.Errorf("failed to parse styles.xml: %w", err)
	}
	return &styles, nil
}

// styleSheet indexes styles.xml by style name and id and appends definitions
// to the raw part, leaving every existing byte untouched
type styleSheet struct {
	data    []byte
	byName  map[string]string // lower-cased name -> styleId
	byID    map[string]string // styleId -> name
	changed bool
}

func newStyleSheet(data []byte) (*styleSheet, error) {
	styles, err := parseStyles(data)
	if err != nil {
		return nil, err
	}

	sheet := &styleSheet{
		data:   data,
		byName: make(map[string]string, len(styles.Styles)),
		byID:   make(map[string]string, len(styles.Styles)),
	}
	for _, style := range styles.Styles {
		sheet.register(style.StyleID, style.Name.Val)
	}
	return sheet, nil
}

func (s *styleSheet) register(id, name string) {
	if name == "" {
		name = id
	}
	key := strings.ToLower(name)
	if _, ok := s.byName[key]; !ok {
		s.byName[key] = id
	}
	s.byID[id] = name
}

// lookup resolves a style name such as "Heading 1" to its id, ignoring case
func (s *styleSheet) lookup(name string) (string, bool) {
	id, ok := s.byName[strings.ToLower(name)]
	return id, ok
}

func (s *styleSheet) hasID(id string) bool {
	_, ok := s.byID[id]
	return ok
}

// name returns the name of a style id, or "" when the id is unknown
func (s *styleSheet) name(id string) string {
	return s.byID[id]
}

// add merges a style definition into styles.xml
func (s *styleSheet) add(def styleDefinition) error {
	merged, err := rebuildStylesXML(s.data, []styleDefinition{def})
	if err != nil {
		return err
	}
	s.data = merged
	s.register(def.ID, def.Name)
	s.changed = true
	return nil
}

// rebuildStylesXML adds new styles to the existing styles.xml
func rebuildStylesXML(originalXML []byte, newStyles []styleDefinition) ([]byte, error) {
	closingTag := []byte("</w:styles>")
	closingIndex := bytes.LastIndex(originalXML, closingTag)
	if closingIndex < 0 {
		return nil, fmt.Errorf("styles.xml has no %s element", closingTag)
	}

	var newStylesXML bytes.Buffer
	for _, style := range newStyles {
		newStylesXML.WriteString(style.xml())
	}

	result := make([]byte, 0, len(originalXML)+newStylesXML.Len())
	result = append(result, originalXML[:closingIndex]...)
	result = append(result, newStylesXML.Bytes()...)
	result = append(result, originalXML[closingIndex:]...)
	return result, nil
}

// styleDefinition is a built-in style ready to be merged into styles.xml
type styleDefinition struct {
	ID   string
	Name string
	Type string
	Body string // children of w:style after w:name
}

func (d styleDefinition) xml() string {
	return fmt.Sprintf(`<w:style w:type="%s" w:styleId="%s"><w:name w:val="%s"/>%s</w:style>`,
		d.Type, d.ID, d.Name, d.Body)
}

// headingLook holds the visual parameters of a built-in heading level
type headingLook struct {
	before int
	color  string
	size   int
	bold   bool
	italic bool
}

var headingLooks = [...]headingLook{
	{before: 480, color: "365F91", size: 28, bold: true},
	{before: 200, color: "4F81BD", size: 26, bold: true},
	{before: 200, color: "4F81BD", size: 24, bold: true},
	{before: 200, color: "4F81BD", size: 22, bold: true, italic: true},
	{before: 200, color: "243F60", size: 22},
	{before: 200, color: "243F60", size: 22, italic: true},
	{before: 200, color: "404040", size: 22, italic: true},
	{before: 200, color: "404040", size: 20},
	{before: 200, color: "404040", size: 20, italic: true},
}

// builtinStyle returns the definition of a style Word ships with. numID is
// the bullet numbering instance used by "List Bullet".
func builtinStyle(name string, numID int) (styleDefinition, bool) {
	switch strings.ToLower(name) {
	case "title":
		return styleDefinition{
			ID:   "Title",
			Name: "Title",
			Type: "paragraph",
			Body: `<w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:uiPriority w:val="10"/><w:qFormat/>` +
				`<w:pPr><w:pBdr><w:bottom w:val="single" w:sz="8" w:space="4" w:color="4F81BD"/></w:pBdr>` +
				`<w:spacing w:after="300" w:line="240" w:lineRule="auto"/><w:contextualSpacing/></w:pPr>` +
				`<w:rPr><w:color w:val="17365D"/><w:spacing w:val="5"/><w:kern w:val="28"/><w:sz w:val="52"/><w:szCs w:val="52"/></w:rPr>`,
		}, true
	case "list bullet":
		return styleDefinition{
			ID:   "ListBullet",
			Name: "List Bullet",
			Type: "paragraph",
			Body: `<w:basedOn w:val="Normal"/><w:uiPriority w:val="99"/><w:unhideWhenUsed/>` +
				fmt.Sprintf(`<w:pPr><w:numPr><w:numId w:val="%d"/></w:numPr><w:contextualSpacing/></w:pPr>`, numID),
		}, true
	case "table grid":
		border := func(side string) string {
			return fmt.Sprintf(`<w:%s w:val="single" w:sz="4" w:space="0" w:color="auto"/>`, side)
		}
		return styleDefinition{
			ID:   "TableGrid",
			Name: "Table Grid",
			Type: "table",
			Body: `<w:basedOn w:val="TableNormal"/><w:uiPriority w:val="59"/>` +
				`<w:pPr><w:spacing w:after="0" w:line="240" w:lineRule="auto"/></w:pPr>` +
				`<w:tblPr><w:tblBorders>` + border("top") + border("left") + border("bottom") +
				border("right") + border("insideH") + border("insideV") + `</w:tblBorders></w:tblPr>`,
		}, true
	}

	var level int
	if n, err := fmt.Sscanf(strings.ToLower(name), "heading %d", &level); err == nil && n == 1 && level >= 1 && level <= 9 {
		return headingStyle(level), true
	}
	return styleDefinition{}, false
}

func headingStyle(level int) styleDefinition {
	look := headingLooks[level-1]

	var rPr strings.Builder
	if look.bold {
		rPr.WriteString(`<w:b/><w:bCs/>`)
	}
	if look.italic {
		rPr.WriteString(`<w:i/><w:iCs/>`)
	}
	fmt.Fprintf(&rPr, `<w:color w:val="%s"/><w:sz w:val="%d"/><w:szCs w:val="%d"/>`, look.color, look.size, look.size)

	return styleDefinition{
		ID:   fmt.Sprintf("Heading%d", level),
		Name: fmt.Sprintf("heading %d", level),
		Type: "paragraph",
		Body: `<w:basedOn w:val="Normal"/><w:next w:val="Normal"/><w:uiPriority w:val="9"/><w:qFormat/>` +
			fmt.Sprintf(`<w:pPr><w:keepNext/><w:keepLines/><w:spacing w:before="%d" w:after="0"/><w:outlineLvl w:val="%d"/></w:pPr>`,
				look.before, level-1) +
			`<w:rPr>` + rPr.String() + `</w:rPr>`,
	}
}

// blankStylesXML is styles.xml of a new document
const blankStylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:docDefaults><w:rPrDefault><w:rPr><w:rFonts w:ascii="Calibri" w:hAnsi="Calibri" w:eastAsia="Calibri" w:cs="Times New Roman"/>` +
	`<w:sz w:val="22"/><w:szCs w:val="22"/><w:lang w:val="en-US" w:eastAsia="en-US" w:bidi="ar-SA"/></w:rPr></w:rPrDefault>` +
	`<w:pPrDefault><w:pPr><w:spacing w:after="200" w:line="276" w:lineRule="auto"/></w:pPr></w:pPrDefault></w:docDefaults>` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/><w:qFormat/></w:style>` +
	`<w:style w:type="character" w:default="1" w:styleId="DefaultParagraphFont"><w:name w:val="Default Paragraph Font"/>` +
	`<w:uiPriority w:val="1"/><w:semiHidden/><w:unhideWhenUsed/></w:style>` +
	`<w:style w:type="table" w:default="1" w:styleId="TableNormal"><w:name w:val="Normal Table"/>` +
	`<w:uiPriority w:val="99"/><w:semiHidden/><w:unhideWhenUsed/><w:tblPr><w:tblInd w:w="0" w:type="dxa"/>` +
	`<w:tblCellMar><w:top w:w="0" w:type="dxa"/><w:left w:w="108" w:type="dxa"/><w:bottom w:w="0" w:type="dxa"/>` +
	`<w:right w:w="108" w:type="dxa"/></w:tblCellMar></w:tblPr></w:style>` +
	`<w:style w:type="numbering" w:default="1" w:styleId="NoList"><w:name w:val="No List"/>` +
	`<w:uiPriority w:val="99"/><w:semiHidden/><w:unhideWhenUsed/></w:style>` +
	`</w:styles>`
