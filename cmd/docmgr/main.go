// Package main provides the docmgr command line tool.
//
// docmgr edits Word documents: it builds reports from job files, prints
// document outlines and edits tables of existing documents.
//
// Usage:
//
//	docmgr build report.yaml
//	docmgr inspect report.docx
//	docmgr table fill report.docx --index 0 --start 1 --data tasks.csv
//
// See --help for all available options.
package main

func main() {
	Execute()
}
