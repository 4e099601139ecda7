package docmgr

import (
	"fmt"

	"go.uber.org/zap"

	docxml "github.com/benjaminschreck/go-docmgr/pkg/docmgr/xml"
)

// MaxHeadingLevel is the deepest built-in heading style
const MaxHeadingLevel = 9

// AddHeading appends a heading paragraph. Level 0 uses the Title style and
// levels 1 to 9 use "Heading 1" to "Heading 9".
func (m *Manager) AddHeading(text string, level int) (*docxml.Paragraph, error) {
	if level < 0 || level > MaxHeadingLevel {
		return nil, NewValidationError("level", fmt.Sprintf("heading level must be in range 0-%d, got %d", MaxHeadingLevel, level))
	}

	styleName := "Title"
	if level > 0 {
		styleName = fmt.Sprintf("Heading %d", level)
	}
	styleID, err := m.styleID(styleName)
	if err != nil {
		return nil, err
	}

	para := docxml.NewParagraph(styleID)
	if text != "" {
		para.AddRun(text, nil)
	}
	m.doc.Body.Append(para)
	m.logger.Debug("Added heading", zap.Int("level", level), zap.String("style", styleID))
	return para, nil
}

// AddParagraph appends a paragraph holding one run of text in the given format
func (m *Manager) AddParagraph(text string, format TextFormat) *docxml.Paragraph {
	para := docxml.NewParagraph("")
	para.AddRun(text, format.runProperties())
	m.doc.Body.Append(para)
	return para
}

// AddBulletPoints appends one "List Bullet" paragraph per item
func (m *Manager) AddBulletPoints(items []string) error {
	if len(items) == 0 {
		return nil
	}
	styleID, err := m.styleID("List Bullet")
	if err != nil {
		return err
	}
	for _, item := range items {
		para := docxml.NewParagraph(styleID)
		if item != "" {
			para.AddRun(item, nil)
		}
		m.doc.Body.Append(para)
	}
	m.logger.Debug("Added bullet points", zap.Int("items", len(items)))
	return nil
}

// AddMixedFormatParagraph appends a single paragraph with one run per part,
// in order, each formatted independently
func (m *Manager) AddMixedFormatParagraph(parts []TextPart) *docxml.Paragraph {
	para := docxml.NewParagraph("")
	for _, part := range parts {
		para.AddRun(part.Text, part.runProperties())
	}
	m.doc.Body.Append(para)
	return para
}
