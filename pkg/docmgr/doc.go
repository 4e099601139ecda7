// Package docmgr edits Microsoft Word documents (DOCX): it opens or creates a
// document, rewrites tables and appends formatted content.
//
// # Quick Start
//
//	mgr, err := docmgr.New()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	if _, err := mgr.AddHeading("Report", 1); err != nil {
//	    log.Fatal(err)
//	}
//
//	df := &docmgr.DataFrame{
//	    Columns: []string{"Task", "Status"},
//	    Rows: [][]any{
//	        {"Task 1", "Red"},
//	        {"Task 2", "Green"},
//	    },
//	}
//	if _, err := mgr.AddDataFrame(df, "Results"); err != nil {
//	    log.Fatal(err)
//	}
//
//	if err := mgr.Save("report.docx"); err != nil {
//	    log.Fatal(err)
//	}
//
// # Tables
//
// Tables are addressed by their zero-based position among the top-level
// tables of the body. An index that does not exist yields a
// *TableIndexError.
//
//	mgr.ClearTableContentExcept(0, []int{0})   // keep the header row
//	mgr.DeleteEmptyRows(0)
//	mgr.AddDataToTable(0, []docmgr.Column{
//	    {Name: "Task", Values: []any{"Write", "Review"}},
//	    {Name: "Status", Values: []any{"Green", "Amber"}},
//	}, 1)
//
// AddDataFrame builds a new table from a DataFrame. The header row is shaded
// with Config.HeaderFill and cells of the status column ("Status" by default)
// are shaded by their value: Red, Amber and Green map to red, orange and
// green, anything else to white.
//
// # Text
//
// AddHeading, AddParagraph, AddBulletPoints and AddMixedFormatParagraph
// append content at the end of the body. Styles the document does not define
// (Title, Heading 1-9, List Bullet, Table Grid) are added to styles.xml on
// first use.
//
// # Configuration
//
// Defaults come from DefaultConfig and the DOCMGR_* environment variables:
//
//	DOCMGR_LOG_LEVEL=debug
//	DOCMGR_TABLE_STYLE="Table Grid"
//	DOCMGR_HEADER_FILL=B7DEE8
//	DOCMGR_STATUS_COLUMN=Status
//	DOCMGR_STRICT_STATUS_COLUMN=true
//
// LoadConfigFile reads the same settings from YAML or TOML.
package docmgr
