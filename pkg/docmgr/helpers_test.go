package docmgr

import (
	"archive/zip"
	"bytes"
	"io"
	"testing"

	"go.uber.org/zap"
)

const testStylesXML = `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>
<w:styles xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main">` +
	`<w:style w:type="paragraph" w:default="1" w:styleId="Normal"><w:name w:val="Normal"/></w:style>` +
	`<w:style w:type="paragraph" w:styleId="Heading1"><w:name w:val="heading 1"/><w:basedOn w:val="Normal"/></w:style>` +
	`</w:styles>`

// testDocx builds a minimal .docx archive whose body holds bodyXML
func testDocx(t *testing.T, bodyXML string) []byte {
	t.Helper()

	parts := []struct{ name, content string }{
		{contentTypesPartName, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Types xmlns="http://schemas.openxmlformats.org/package/2006/content-types">` +
			`<Default Extension="rels" ContentType="application/vnd.openxmlformats-package.relationships+xml"/>` +
			`<Default Extension="xml" ContentType="application/xml"/>` +
			`<Override PartName="/word/document.xml" ContentType="` + contentTypeDocument + `"/>` +
			`<Override PartName="/word/styles.xml" ContentType="` + contentTypeStyles + `"/>` +
			`</Types>`},
		{packageRelsPartName, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="` + relTypeOfficeDocument + `" Target="word/document.xml"/>` +
			`</Relationships>`},
		{documentPartName, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<w:document xmlns:w="http://schemas.openxmlformats.org/wordprocessingml/2006/main" ` +
			`xmlns:r="http://schemas.openxmlformats.org/officeDocument/2006/relationships"><w:body>` +
			bodyXML +
			`<w:sectPr><w:pgSz w:w="11906" w:h="16838"/><w:pgMar w:top="1440" w:right="1440" w:bottom="1440" w:left="1440"/></w:sectPr>` +
			`</w:body></w:document>`},
		{documentRelsPartName, `<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` +
			`<Relationships xmlns="http://schemas.openxmlformats.org/package/2006/relationships">` +
			`<Relationship Id="rId1" Type="` + relTypeStyles + `" Target="styles.xml"/>` +
			`</Relationships>`},
		{defaultStylesPart, testStylesXML},
	}

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for _, part := range parts {
		f, err := w.Create(part.name)
		if err != nil {
			t.Fatalf("Failed to create %s: %v", part.name, err)
		}
		if _, err := f.Write([]byte(part.content)); err != nil {
			t.Fatalf("Failed to write %s: %v", part.name, err)
		}
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Failed to close zip: %v", err)
	}
	return buf.Bytes()
}

// tableXML renders rows of cell texts as a w:tbl with a matching grid
func tableXML(rows ...[]string) string {
	var sb bytes.Buffer
	sb.WriteString(`<w:tbl><w:tblPr><w:tblW w:w="0" w:type="auto"/></w:tblPr><w:tblGrid>`)
	if len(rows) > 0 {
		for range rows[0] {
			sb.WriteString(`<w:gridCol w:w="3000"/>`)
		}
	}
	sb.WriteString(`</w:tblGrid>`)
	for _, row := range rows {
		sb.WriteString(`<w:tr>`)
		for _, text := range row {
			sb.WriteString(`<w:tc><w:tcPr><w:tcW w:w="3000" w:type="dxa"/></w:tcPr><w:p>`)
			if text != "" {
				sb.WriteString(`<w:r><w:t xml:space="preserve">` + text + `</w:t></w:r>`)
			}
			sb.WriteString(`</w:p></w:tc>`)
		}
		sb.WriteString(`</w:tr>`)
	}
	sb.WriteString(`</w:tbl>`)
	return sb.String()
}

// openTest opens an in-memory document with a silent logger
func openTest(t *testing.T, bodyXML string, opts ...Option) *Manager {
	t.Helper()
	data := testDocx(t, bodyXML)
	opts = append([]Option{WithLogger(zap.NewNop())}, opts...)
	mgr, err := OpenReader(bytes.NewReader(data), int64(len(data)), opts...)
	if err != nil {
		t.Fatalf("OpenReader failed: %v", err)
	}
	return mgr
}

// newTest creates a blank document with a silent logger
func newTest(t *testing.T, opts ...Option) *Manager {
	t.Helper()
	opts = append([]Option{WithLogger(zap.NewNop())}, opts...)
	mgr, err := New(opts...)
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	return mgr
}

// readParts writes the document and returns every part of the archive
func readParts(t *testing.T, mgr *Manager) map[string]string {
	t.Helper()
	var buf bytes.Buffer
	if _, err := mgr.WriteTo(&buf); err != nil {
		t.Fatalf("WriteTo failed: %v", err)
	}
	r, err := zip.NewReader(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Failed to read written archive: %v", err)
	}
	parts := make(map[string]string, len(r.File))
	for _, f := range r.File {
		rc, err := f.Open()
		if err != nil {
			t.Fatalf("Failed to open %s: %v", f.Name, err)
		}
		data, err := io.ReadAll(rc)
		rc.Close()
		if err != nil {
			t.Fatalf("Failed to read %s: %v", f.Name, err)
		}
		parts[f.Name] = string(data)
	}
	return parts
}
