// Package job builds documents from YAML or TOML job files.
//
// A job names an optional input document, an output path and a list of
// steps. Every step sets exactly one operation:
//
//	input: template.docx
//	output: report.docx
//	steps:
//	  - heading: {text: Weekly report, level: 1}
//	  - paragraph: {text: All green., bold: true, color: "00AA00"}
//	  - bullets: {items: [Shipped, Reviewed]}
//	  - dataframe:
//	      caption: Tasks
//	      columns: [Task, Status]
//	      rows: [[Write, Red], [Review, Green]]
//	  - clear_table: {index: 0, keep: [0]}
//	  - fill_table: {index: 0, start_row: 1, file: tasks.csv}
//	  - delete_empty_rows: {index: 0}
//
// Relative paths resolve against the directory of the job file. Colors that
// look like numbers must be quoted in YAML.
package job
