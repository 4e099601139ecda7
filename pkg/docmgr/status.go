package docmgr

import (
	"golang.org/x/text/cases"
)

// StatusFill returns the RRGGBB shading for a status value. Matching is
// exact; unrecognized values get the default fill.
func (c *Config) StatusFill(value string) string {
	if fill, ok := c.StatusColors[value]; ok {
		return fill
	}
	return c.DefaultStatusFill
}

// IsStatusColumn reports whether a column name designates the status column.
// Names are compared under Unicode case folding unless StrictStatusColumn is set.
func (c *Config) IsStatusColumn(name string) bool {
	if c.StrictStatusColumn {
		return name == c.StatusColumn
	}
	// A Caser keeps state, so each comparison gets its own
	fold := cases.Fold()
	return fold.String(name) == fold.String(c.StatusColumn)
}

// StatusFill looks up a status value in the global configuration's palette
func StatusFill(value string) string {
	return GetGlobalConfig().StatusFill(value)
}
