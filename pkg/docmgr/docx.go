package docmgr

import (
	"archive/zip"
	"bytes"
	"encoding/xml"
	"fmt"
	"io"
	"path"
	"strconv"
	"strings"

	docxml "github.com/benjaminschreck/go-docmgr/pkg/docmgr/xml"
)

// Part names and relationship types used by the package layer
const (
	documentPartName      = "word/document.xml"
	documentRelsPartName  = "word/_rels/document.xml.rels"
	contentTypesPartName  = "[Content_Types].xml"
	packageRelsPartName   = "_rels/.rels"
	defaultStylesPart     = "word/styles.xml"
	defaultNumberingPart  = "word/numbering.xml"
	relationshipsNS       = "http://schemas.openxmlformats.org/package/2006/relationships"
	contentTypesNS        = "http://schemas.openxmlformats.org/package/2006/content-types"
	relTypeOfficeDocument = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/officeDocument"
	relTypeStyles         = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/styles"
	relTypeNumbering      = "http://schemas.openxmlformats.org/officeDocument/2006/relationships/numbering"
	contentTypeDocument   = "application/vnd.openxmlformats-officedocument.wordprocessingml.document.main+xml"
	contentTypeStyles     = "application/vnd.openxmlformats-officedocument.wordprocessingml.styles+xml"
	contentTypeNumbering  = "application/vnd.openxmlformats-officedocument.wordprocessingml.numbering+xml"
	contentTypeRels       = "application/vnd.openxmlformats-package.relationships+xml"
)

// docxPackage holds every part of a DOCX archive in its original order
type docxPackage struct {
	names []string
	parts map[string][]byte
}

// readPackage reads all parts of a DOCX archive into memory
func readPackage(r io.ReaderAt, size int64) (*docxPackage, error) {
	zipReader, err := zip.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("failed to read zip file: %w", err)
	}

	pkg := &docxPackage{parts: make(map[string][]byte, len(zipReader.File))}
	for _, file := range zipReader.File {
		content, err := readZipFile(file)
		if err != nil {
			return nil, err
		}
		pkg.setPart(file.Name, content)
	}

	// Check if this is a valid DOCX file by looking for required parts
	if _, ok := pkg.parts[documentPartName]; !ok {
		return nil, fmt.Errorf("not a valid DOCX file: missing %s", documentPartName)
	}

	return pkg, nil
}

func readZipFile(file *zip.File) ([]byte, error) {
	rc, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", file.Name, err)
	}
	defer rc.Close()

	content, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", file.Name, err)
	}
	return content, nil
}

func (p *docxPackage) part(name string) ([]byte, bool) {
	content, ok := p.parts[name]
	return content, ok
}

// setPart stores a part, appending its name when it is new
func (p *docxPackage) setPart(name string, content []byte) {
	if _, ok := p.parts[name]; !ok {
		p.names = append(p.names, name)
	}
	p.parts[name] = content
}

// writeTo writes every part to a new zip archive
func (p *docxPackage) writeTo(w io.Writer) (int64, error) {
	counter := &countingWriter{w: w}
	zipWriter := zip.NewWriter(counter)

	for _, name := range p.names {
		writer, err := zipWriter.Create(name)
		if err != nil {
			return counter.n, fmt.Errorf("failed to create %s: %w", name, err)
		}
		if _, err := writer.Write(p.parts[name]); err != nil {
			return counter.n, fmt.Errorf("failed to write %s: %w", name, err)
		}
	}

	if err := zipWriter.Close(); err != nil {
		return counter.n, fmt.Errorf("failed to close zip writer: %w", err)
	}
	return counter.n, nil
}

type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(b []byte) (int, error) {
	n, err := c.w.Write(b)
	c.n += int64(n)
	return n, err
}

// Relationship represents a relationship in the DOCX package
type Relationship struct {
	ID         string `xml:"Id,attr"`
	Type       string `xml:"Type,attr"`
	Target     string `xml:"Target,attr"`
	TargetMode string `xml:"TargetMode,attr,omitempty"`
}

// Relationships represents the collection of relationships
type Relationships struct {
	XMLName      xml.Name       `xml:"Relationships"`
	Namespace    string         `xml:"xmlns,attr"`
	Relationship []Relationship `xml:"Relationship"`
}

func parseRelationships(data []byte) (*Relationships, error) {
	var rels Relationships
	if err := xml.Unmarshal(data, &rels); err != nil {
		return nil, fmt.Errorf("failed to parse relationships: %w", err)
	}
	return &rels, nil
}

// byType returns the first relationship of the given type
func (r *Relationships) byType(relType string) *Relationship {
	for i := range r.Relationship {
		if r.Relationship[i].Type == relType {
			return &r.Relationship[i]
		}
	}
	return nil
}

// add appends a relationship with the next free rIdN id and returns the id
func (r *Relationships) add(relType, target string) string {
	next := 1
	for _, rel := range r.Relationship {
		if n, err := strconv.Atoi(strings.TrimPrefix(rel.ID, "rId")); err == nil && n >= next {
			next = n + 1
		}
	}
	id := "rId" + strconv.Itoa(next)
	r.Relationship = append(r.Relationship, Relationship{ID: id, Type: relType, Target: target})
	return id
}

func (r *Relationships) marshal() ([]byte, error) {
	// A fresh value keeps the decoded XMLName namespace from doubling xmlns
	out := Relationships{Namespace: relationshipsNS, Relationship: r.Relationship}
	return marshalPart(out)
}

// ContentTypeDefault maps a file extension to a content type
type ContentTypeDefault struct {
	Extension   string `xml:"Extension,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ContentTypeOverride maps a part name to a content type
type ContentTypeOverride struct {
	PartName    string `xml:"PartName,attr"`
	ContentType string `xml:"ContentType,attr"`
}

// ContentTypes represents [Content_Types].xml
type ContentTypes struct {
	XMLName   xml.Name              `xml:"Types"`
	Namespace string                `xml:"xmlns,attr"`
	Defaults  []ContentTypeDefault  `xml:"Default"`
	Overrides []ContentTypeOverride `xml:"Override"`
}

func parseContentTypes(data []byte) (*ContentTypes, error) {
	var types ContentTypes
	if err := xml.Unmarshal(data, &types); err != nil {
		return nil, fmt.Errorf("failed to parse content types: %w", err)
	}
	return &types, nil
}

// ensureOverride registers a content type for a part and reports whether anything changed
func (c *ContentTypes) ensureOverride(partName, contentType string) bool {
	partName = "/" + strings.TrimPrefix(partName, "/")
	for _, override := range c.Overrides {
		if strings.EqualFold(override.PartName, partName) {
			return false
		}
	}
	c.Overrides = append(c.Overrides, ContentTypeOverride{PartName: partName, ContentType: contentType})
	return true
}

func (c *ContentTypes) marshal() ([]byte, error) {
	out := ContentTypes{Namespace: contentTypesNS, Defaults: c.Defaults, Overrides: c.Overrides}
	return marshalPart(out)
}

func marshalPart(v interface{}) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(`<?xml version="1.0" encoding="UTF-8" standalone="yes"?>` + "\n")
	if err := xml.NewEncoder(&buf).Encode(v); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// resolveTarget turns a relationship target of word/document.xml into a part name
func resolveTarget(target string) string {
	if strings.HasPrefix(target, "/") {
		return strings.TrimPrefix(target, "/")
	}
	return path.Join(path.Dir(documentPartName), target)
}

// newBlankPackage builds the smallest package Word opens without complaint
func newBlankPackage() (*docxPackage, error) {
	pkg := &docxPackage{parts: make(map[string][]byte)}

	types := &ContentTypes{
		Defaults: []ContentTypeDefault{
			{Extension: "rels", ContentType: contentTypeRels},
			{Extension: "xml", ContentType: "application/xml"},
		},
		Overrides: []ContentTypeOverride{
			{PartName: "/" + documentPartName, ContentType: contentTypeDocument},
			{PartName: "/" + defaultStylesPart, ContentType: contentTypeStyles},
		},
	}
	typesXML, err := types.marshal()
	if err != nil {
		return nil, err
	}
	pkg.setPart(contentTypesPartName, typesXML)

	packageRels := &Relationships{Relationship: []Relationship{
		{ID: "rId1", Type: relTypeOfficeDocument, Target: documentPartName},
	}}
	packageRelsXML, err := packageRels.marshal()
	if err != nil {
		return nil, err
	}
	pkg.setPart(packageRelsPartName, packageRelsXML)

	documentXML, err := docxml.MarshalDocument(docxml.NewDocument())
	if err != nil {
		return nil, err
	}
	pkg.setPart(documentPartName, documentXML)

	documentRels := &Relationships{Relationship: []Relationship{
		{ID: "rId1", Type: relTypeStyles, Target: path.Base(defaultStylesPart)},
	}}
	documentRelsXML, err := documentRels.marshal()
	if err != nil {
		return nil, err
	}
	pkg.setPart(documentRelsPartName, documentRelsXML)

	pkg.setPart(defaultStylesPart, []byte(blankStylesXML))

	return pkg, nil
}
