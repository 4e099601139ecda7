// Package xml provides the WordprocessingML structures used to read and write
// word/document.xml.
//
// DOCX files are ZIP archives of XML parts. This package models the main
// document part: the body, its paragraphs, runs and tables, and the property
// containers that format them. Everything it does not model is kept as a
// RawXMLElement, so a template can be opened, edited and saved without losing
// content controls, bookmarks, drawings or section settings.
//
// # Structure Organization
//
//   - types.go: Core interfaces, RawXMLElement and the shared value types
//   - document.go: Top-level Document and Body structures
//   - paragraph.go: Paragraphs, paragraph properties and hyperlinks
//   - run.go: Runs, run properties, Text, Break and Tab
//   - table.go: Table, TableRow, TableCell and their properties
//
// # Element Names
//
// Elements and attributes are written with their prefix in Name.Local
// (for example "w:p" or "w:val") and no Name.Space, which lets encoding/xml
// emit the prefixes the root element declares instead of inventing its own.
// Property containers write their children in schema order regardless of the
// order they were set in.
//
// Example of building a paragraph:
//
//	para := xml.NewParagraph("Heading1")
//	para.AddRun("Quarterly report", &xml.RunProperties{Bold: xml.On()})
//	doc := xml.NewDocument()
//	doc.Body.Append(para)
//	data, err := xml.MarshalDocument(doc)
package xml
