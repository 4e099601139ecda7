package docmgr

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

// numberingIDs holds the ids already used in numbering.xml
type numberingIDs struct {
	AbstractNums []struct {
		ID int `xml:"abstractNumId,attr"`
	} `xml:"abstractNum"`
	Nums []struct {
		ID int `xml:"numId,attr"`
	} `xml:"num"`
}

// numberingPart edits numbering.xml in place, like styleSheet does for styles
type numberingPart struct {
	data        []byte
	bulletNumID int
	changed     bool
}

const blankNumberingXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:numbering xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main"></w:numbering>`

func newNumberingPart(data []byte) (*numberingPart, error) {
	var ids numberingIDs
	if err := xml.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse numbering.xml: %w", err)
	}
	return &numberingPart{data: data}, nil
}

// bulletList returns the id of a bullet numbering instance, adding an
// abstractNum/num pair the first time it is needed
func (n *numberingPart) bulletList() (int, error) {
	if n.bulletNumID > 0 {
		return n.bulletNumID, nil
	}

	var ids numberingIDs
	if err := xml.Unmarshal(n.data, &ids); err != nil {
		return 0, fmt.Errorf("failed to parse numbering.xml: %w", err)
	}
	abstractID := 0
	for _, abstract := range ids.AbstractNums {
		if abstract.ID >= abstractID {
			abstractID = abstract.ID + 1
		}
	}
	numID := 1
	for _, num := range ids.Nums {
		if num.ID >= numID {
			numID = num.ID + 1
		}
	}

	closing := bytes.LastIndex(n.data, []byte("</w:numbering>"))
	if closing < 0 {
		return 0, fmt.Errorf("numbering.xml has no </w:numbering> element")
	}
	// Schema order is abstractNum*, num*, numIdMacAtCleanup?
	numAt := closing
	if idx := bytes.Index(n.data, []byte("<w:numIdMacAtCleanup")); idx >= 0 {
		numAt = idx
	}
	abstractAt := numAt
	for _, marker := range []string{"<w:num ", "<w:num>"} {
		if idx := bytes.Index(n.data, []byte(marker)); idx >= 0 && idx < abstractAt {
			abstractAt = idx
		}
	}

	abstractXML := bulletAbstractXML(abstractID)
	numXML := fmt.Sprintf(`<w:num w:numId="%d"><w:abstractNumId w:val="%d"/></w:num>`, numID, abstractID)

	var buf bytes.Buffer
	buf.Grow(len(n.data) + len(abstractXML) + len(numXML))
	buf.Write(n.data[:abstractAt])
	buf.WriteString(abstractXML)
	buf.Write(n.data[abstractAt:numAt])
	buf.WriteString(numXML)
	buf.Write(n.data[numAt:])

	n.data = buf.Bytes()
	n.bulletNumID = numID
	n.changed = true
	return numID, nil
}

// bulletGlyphs cycles through the three bullet glyphs Word uses by level
var bulletGlyphs = [...]struct {
	text string
	font string
}{
	{"\uf0b7", "Symbol"},
	{"o", "Courier New"},
	{"\uf0a7", "Wingdings"},
}

func bulletAbstractXML(id int) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, `<w:abstractNum w:abstractNumId="%d"><w:multiLevelType w:val="hybridMultilevel"/>`, id)
	for level := 0; level < 9; level++ {
		glyph := bulletGlyphs[level%len(bulletGlyphs)]
		fmt.Fprintf(&sb, `<w:lvl w:ilvl="%d"><w:start w:val="1"/><w:numFmt w:val="bullet"/>`, level)
		fmt.Fprintf(&sb, `<w:lvlText w:val="%s"/><w:lvlJc w:val="left"/>`, glyph.text)
		fmt.Fprintf(&sb, `<w:pPr><w:ind w:left="%d" w:hanging="360"/></w:pPr>`, 720*(level+1))
		fmt.Fprintf(&sb, `<w:rPr><w:rFonts w:ascii="%[1]s" w:hAnsi="%[1]s" w:hint="default"/></w:rPr></w:lvl>`, glyph.font)
	}
	sb.WriteString(`</w:abstractNum>`)
	return sb.String()
}
