package docmgr

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	docxml "github.com/benjaminschreck/go-docmgr/pkg/docmgr/xml"
)

// RGB is a text color
type RGB struct {
	R, G, B uint8
}

// Hex returns the color as RRGGBB
func (c RGB) Hex() string {
	return fmt.Sprintf("%02X%02X%02X", c.R, c.G, c.B)
}

// ParseRGB parses an RRGGBB color, with or without a leading '#'
func ParseRGB(s string) (RGB, error) {
	s = strings.TrimPrefix(strings.TrimSpace(s), "#")
	if !isHexColor(s) {
		return RGB{}, NewValidationError("color", fmt.Sprintf("%q is not an RRGGBB color", s))
	}
	v, err := strconv.ParseUint(s, 16, 32)
	if err != nil {
		return RGB{}, NewValidationError("color", err.Error())
	}
	return RGB{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
}

// TextFormat describes the character formatting of a run. Zero values leave
// the corresponding property unset so it is inherited from the style.
type TextFormat struct {
	Bold      bool
	Italic    bool
	Underline bool
	Color     *RGB
	// FontSize in points
	FontSize float64
}

// TextPart is one differently formatted piece of a mixed paragraph
type TextPart struct {
	Text string
	TextFormat
}

// runProperties converts the format to w:rPr, or nil when nothing is set
func (f TextFormat) runProperties() *docxml.RunProperties {
	props := &docxml.RunProperties{}
	set := false
	if f.Bold {
		props.Bold = docxml.On()
		set = true
	}
	if f.Italic {
		props.Italic = docxml.On()
		set = true
	}
	if f.Underline {
		props.Underline = &docxml.StringVal{Val: "single"}
		set = true
	}
	if f.Color != nil {
		props.Color = &docxml.Color{Val: f.Color.Hex()}
		set = true
	}
	if f.FontSize > 0 {
		props.Size = &docxml.IntVal{Val: int(math.Round(f.FontSize * 2))}
		set = true
	}
	if !set {
		return nil
	}
	return props
}
