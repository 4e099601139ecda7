package docmgr

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path"

	"go.uber.org/zap"

	docxml "github.com/benjaminschreck/go-docmgr/pkg/docmgr/xml"
)

// Manager provides the main API for editing a document. Use New() for a
// blank document or Open() for an existing one.
//
// A Manager is not safe for concurrent use.
type Manager struct {
	source string
	pkg    *docxPackage
	doc    *docxml.Document

	rels         *Relationships
	relsChanged  bool
	contentTypes *ContentTypes
	typesChanged bool

	styles            *styleSheet
	stylesPartName    string
	numbering         *numberingPart
	numberingPartName string

	config *Config
	logger *zap.Logger

	// tableCount numbers captioned tables; reconciled with the body before each caption
	tableCount int
}

// Option configures a Manager
type Option func(*Manager)

// WithConfig uses a copy of config instead of the global configuration
func WithConfig(config *Config) Option {
	return func(m *Manager) {
		if config != nil {
			m.config = config.Clone()
		}
	}
}

// WithLogger replaces the package logger for one manager
func WithLogger(logger *zap.Logger) Option {
	return func(m *Manager) {
		if logger != nil {
			m.logger = logger
		}
	}
}

// New creates a manager holding a blank document
func New(opts ...Option) (*Manager, error) {
	pkg, err := newBlankPackage()
	if err != nil {
		return nil, NewDocumentError("create", "", err)
	}
	return newManager("", pkg, opts)
}

// Open loads the document at path
func Open(path string, opts ...Option) (*Manager, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	defer file.Close()

	info, err := file.Stat()
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}

	pkg, err := readPackage(file, info.Size())
	if err != nil {
		return nil, NewDocumentError("open", path, err)
	}
	return newManager(path, pkg, opts)
}

// OpenReader loads a document held in memory
func OpenReader(r io.ReaderAt, size int64, opts ...Option) (*Manager, error) {
	pkg, err := readPackage(r, size)
	if err != nil {
		return nil, NewDocumentError("open", "", err)
	}
	return newManager("", pkg, opts)
}

func newManager(source string, pkg *docxPackage, opts []Option) (*Manager, error) {
	m := &Manager{source: source, pkg: pkg}
	for _, opt := range opts {
		opt(m)
	}
	if m.config == nil {
		m.config = GetGlobalConfig()
	}
	if err := m.config.Validate(); err != nil {
		return nil, err
	}
	if m.logger == nil {
		m.logger = GetLogger()
	}
	name := source
	if name == "" {
		name = "<memory>"
	}
	m.logger = m.logger.With(zap.String("doc", name))

	documentXML, _ := pkg.part(documentPartName)
	doc, err := docxml.ParseDocument(bytes.NewReader(documentXML))
	if err != nil {
		return nil, NewDocumentError("parse", source, err)
	}
	m.doc = doc

	if err := m.loadPackageParts(); err != nil {
		return nil, NewDocumentError("parse", source, err)
	}

	m.tableCount = len(doc.Body.Tables())
	m.logger.Debug("Document loaded",
		zap.Int("tables", m.tableCount),
		zap.Int("paragraphs", len(doc.Body.Paragraphs())))
	return m, nil
}

// loadPackageParts reads relationships, content types, styles and numbering
func (m *Manager) loadPackageParts() error {
	if data, ok := m.pkg.part(documentRelsPartName); ok {
		rels, err := parseRelationships(data)
		if err != nil {
			return err
		}
		m.rels = rels
	} else {
		m.rels = &Relationships{}
	}

	if data, ok := m.pkg.part(contentTypesPartName); ok {
		types, err := parseContentTypes(data)
		if err != nil {
			return err
		}
		m.contentTypes = types
	} else {
		m.contentTypes = &ContentTypes{}
	}

	if rel := m.rels.byType(relTypeStyles); rel != nil {
		partName := resolveTarget(rel.Target)
		if data, ok := m.pkg.part(partName); ok {
			sheet, err := newStyleSheet(data)
			if err != nil {
				return err
			}
			m.styles = sheet
			m.stylesPartName = partName
		}
	}

	if rel := m.rels.byType(relTypeNumbering); rel != nil {
		partName := resolveTarget(rel.Target)
		if data, ok := m.pkg.part(partName); ok {
			numbering, err := newNumberingPart(data)
			if err != nil {
				return err
			}
			m.numbering = numbering
			m.numberingPartName = partName
		}
	}
	return nil
}

// ensureStyleSheet returns the styles part, creating it when the package has none
func (m *Manager) ensureStyleSheet() (*styleSheet, error) {
	if m.styles != nil {
		return m.styles, nil
	}
	sheet, err := newStyleSheet([]byte(blankStylesXML))
	if err != nil {
		return nil, err
	}
	sheet.changed = true
	m.styles = sheet
	m.stylesPartName = defaultStylesPart
	m.addPartReference(relTypeStyles, defaultStylesPart, contentTypeStyles)
	m.logger.Debug("Created styles part", zap.String("part", defaultStylesPart))
	return sheet, nil
}

// ensureNumbering returns the numbering part, creating it when the package has none
func (m *Manager) ensureNumbering() (*numberingPart, error) {
	if m.numbering != nil {
		return m.numbering, nil
	}
	numbering, err := newNumberingPart([]byte(blankNumberingXML))
	if err != nil {
		return nil, err
	}
	numbering.changed = true
	m.numbering = numbering
	m.numberingPartName = defaultNumberingPart
	m.addPartReference(relTypeNumbering, defaultNumberingPart, contentTypeNumbering)
	m.logger.Debug("Created numbering part", zap.String("part", defaultNumberingPart))
	return numbering, nil
}

func (m *Manager) addPartReference(relType, partName, contentType string) {
	m.rels.add(relType, path.Base(partName))
	m.relsChanged = true
	if m.contentTypes.ensureOverride(partName, contentType) {
		m.typesChanged = true
	}
}

// styleID resolves a style name to its id, merging a built-in definition
// into styles.xml when the document lacks it
func (m *Manager) styleID(name string) (string, error) {
	sheet, err := m.ensureStyleSheet()
	if err != nil {
		return "", err
	}
	if id, ok := sheet.lookup(name); ok {
		return id, nil
	}

	def, ok := builtinStyle(name, 0)
	if !ok {
		return "", NewValidationError("style", fmt.Sprintf("style %q is not defined in the document", name))
	}
	// Some templates carry the id under a localized name
	if sheet.hasID(def.ID) {
		return def.ID, nil
	}

	if def.ID == "ListBullet" {
		numbering, err := m.ensureNumbering()
		if err != nil {
			return "", err
		}
		numID, err := numbering.bulletList()
		if err != nil {
			return "", err
		}
		def, _ = builtinStyle(name, numID)
	}

	if err := sheet.add(def); err != nil {
		return "", err
	}
	m.logger.Debug("Added built-in style", zap.String("name", def.Name), zap.String("id", def.ID))
	return def.ID, nil
}

// table returns the top-level table at index
func (m *Manager) table(index int) (*docxml.Table, error) {
	tables := m.doc.Body.Tables()
	if index < 0 || index >= len(tables) {
		return nil, NewTableIndexError(index, len(tables))
	}
	return tables[index], nil
}

// flush writes the in-memory state back into the package parts
func (m *Manager) flush() error {
	documentXML, err := docxml.MarshalDocument(m.doc)
	if err != nil {
		return err
	}
	m.pkg.setPart(documentPartName, documentXML)

	if m.styles != nil && m.styles.changed {
		m.pkg.setPart(m.stylesPartName, m.styles.data)
	}
	if m.numbering != nil && m.numbering.changed {
		m.pkg.setPart(m.numberingPartName, m.numbering.data)
	}
	if m.relsChanged {
		data, err := m.rels.marshal()
		if err != nil {
			return err
		}
		m.pkg.setPart(documentRelsPartName, data)
	}
	if m.typesChanged {
		data, err := m.contentTypes.marshal()
		if err != nil {
			return err
		}
		m.pkg.setPart(contentTypesPartName, data)
	}
	return nil
}

// WriteTo writes the document as a .docx archive to w
func (m *Manager) WriteTo(w io.Writer) (int64, error) {
	if err := m.flush(); err != nil {
		return 0, NewDocumentError("write", m.source, err)
	}
	n, err := m.pkg.writeTo(w)
	if err != nil {
		return n, NewDocumentError("write", m.source, err)
	}
	return n, nil
}

// Save writes the document to path, replacing any existing file
func (m *Manager) Save(path string) error {
	var buf bytes.Buffer
	if _, err := m.WriteTo(&buf); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return NewDocumentError("save", path, err)
	}
	m.logger.Debug("Document saved", zap.String("path", path), zap.Int("bytes", buf.Len()))
	return nil
}

// Source returns the path the document was opened from, or "" for blank and in-memory documents
func (m *Manager) Source() string {
	return m.source
}

// Document exposes the underlying DOM
func (m *Manager) Document() *docxml.Document {
	return m.doc
}

// NumTables returns the number of top-level tables in the body
func (m *Manager) NumTables() int {
	return len(m.doc.Body.Tables())
}

// TableCount returns the caption counter
func (m *Manager) TableCount() int {
	return m.tableCount
}

// Table returns the table at index
func (m *Manager) Table(index int) (*docxml.Table, error) {
	return m.table(index)
}

// TableText returns the text of every cell of a table, row by row
func (m *Manager) TableText(index int) ([][]string, error) {
	table, err := m.table(index)
	if err != nil {
		return nil, err
	}
	grid := make([][]string, len(table.Rows))
	for i, row := range table.Rows {
		grid[i] = make([]string, len(row.Cells))
		for j, cell := range row.Cells {
			grid[i][j] = cell.GetText()
		}
	}
	return grid, nil
}

// Paragraphs returns the text of the top-level paragraphs in document order
func (m *Manager) Paragraphs() []string {
	paras := m.doc.Body.Paragraphs()
	texts := make([]string, len(paras))
	for i, para := range paras {
		texts[i] = para.GetText()
	}
	return texts
}

// StyleName returns the UI name of a style id, or "" when the document does not define it
func (m *Manager) StyleName(styleID string) string {
	if m.styles == nil {
		return ""
	}
	return m.styles.name(styleID)
}
