package xml

import (
	"encoding/xml"
	"testing"
)

func TestRunSetText(t *testing.T) {
	tests := []struct {
		name     string
		text     string
		expected string
	}{
		{
			name:     "plain text",
			text:     "Hello",
			expected: `<w:r><w:t>Hello</w:t></w:r>`,
		},
		{
			name:     "leading space preserved",
			text:     " padded",
			expected: `<w:r><w:t xml:space="preserve"> padded</w:t></w:r>`,
		},
		{
			name:     "tab and newline",
			text:     "a\tb\nc",
			expected: `<w:r><w:t>a</w:t><w:tab></w:tab><w:t>b</w:t><w:br></w:br><w:t>c</w:t></w:r>`,
		},
		{
			name:     "empty",
			text:     "",
			expected: `<w:r></w:r>`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			run := NewRun(tt.text, nil)
			out, err := xml.Marshal(run)
			if err != nil {
				t.Fatalf("Marshal failed: %v", err)
			}
			if string(out) != tt.expected {
				t.Errorf("Expected %s, got %s", tt.expected, out)
			}
			if got := run.GetText(); got != tt.text {
				t.Errorf("GetText() = %q, want %q", got, tt.text)
			}
		})
	}
}

func TestRunGetTextBreakTypes(t *testing.T) {
	input := `<w:r ` + testW + `><w:t>one</w:t><w:br w:type="page"/><w:t>two</w:t><w:cr/><w:t>three</w:t></w:r>`

	var run Run
	if err := xml.Unmarshal([]byte(input), &run); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if got := run.GetText(); got != "onetwo\nthree" {
		t.Errorf("GetText() = %q, want %q", got, "onetwo\nthree")
	}
	if len(run.Content) != 5 {
		t.Errorf("Expected 5 content items, got %d", len(run.Content))
	}
}

func TestRunPropertiesSchemaOrder(t *testing.T) {
	props := RunProperties{
		Underline: &StringVal{Val: "single"},
		Size:      &IntVal{Val: 24},
		Color:     &Color{Val: "FF0000"},
		Italic:    On(),
		Bold:      On(),
	}

	out, err := xml.Marshal(props)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}

	expected := `<w:rPr><w:b></w:b><w:i></w:i><w:color w:val="FF0000"></w:color><w:sz w:val="24"></w:sz><w:u w:val="single"></w:u></w:rPr>`
	if string(out) != expected {
		t.Errorf("Expected %s, got %s", expected, out)
	}
}

func TestRunPropertiesPreserveUnknown(t *testing.T) {
	input := `<w:rPr ` + testW + `><w:sz w:val="20"/><w:lang w:val="en-GB"/><w:rFonts w:ascii="Arial"/><w:b w:val="0"/></w:rPr>`

	var props RunProperties
	if err := xml.Unmarshal([]byte(input), &props); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if props.Bold.Enabled() {
		t.Error("Expected w:val=0 to disable bold")
	}
	if props.Size == nil || props.Size.Val != 20 {
		t.Errorf("Expected size 20, got %+v", props.Size)
	}
	if len(props.Extra) != 2 {
		t.Fatalf("Expected 2 preserved elements, got %d", len(props.Extra))
	}

	out, err := xml.Marshal(props)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	expected := `<w:rPr><w:rFonts w:ascii="Arial"></w:rFonts><w:b w:val="0"></w:b><w:sz w:val="20"></w:sz><w:lang w:val="en-GB"></w:lang></w:rPr>`
	if string(out) != expected {
		t.Errorf("Expected %s, got %s", expected, out)
	}
}

func TestRunPropertiesClone(t *testing.T) {
	original := &RunProperties{Bold: On(), Color: &Color{Val: "00FF00"}}
	clone := original.Clone()
	clone.Color.Val = "0000FF"
	clone.Bold = nil

	if original.Color.Val != "00FF00" {
		t.Errorf("Clone shares color with original: %s", original.Color.Val)
	}
	if !original.Bold.Enabled() {
		t.Error("Clone changed the original bold flag")
	}

	var nilProps *RunProperties
	if nilProps.Clone() != nil {
		t.Error("Expected nil clone of nil properties")
	}
}

func TestParagraphPropertiesOrder(t *testing.T) {
	input := `<w:p ` + testW + `><w:pPr><w:jc w:val="center"/><w:spacing w:after="0"/><w:pStyle w:val="ListBullet"/>` +
		`<w:numPr><w:ilvl w:val="0"/><w:numId w:val="3"/></w:numPr></w:pPr><w:r><w:t>item</w:t></w:r></w:p>`

	var para Paragraph
	if err := xml.Unmarshal([]byte(input), &para); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if para.Properties.Numbering == nil || para.Properties.Numbering.ID.Val != 3 {
		t.Fatalf("Expected numbering id 3, got %+v", para.Properties.Numbering)
	}

	out, err := xml.Marshal(para)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	expected := `<w:p><w:pPr><w:pStyle w:val="ListBullet"></w:pStyle>` +
		`<w:numPr><w:ilvl w:val="0"></w:ilvl><w:numId w:val="3"></w:numId></w:numPr>` +
		`<w:spacing w:after="0"></w:spacing><w:jc w:val="center"></w:jc></w:pPr>` +
		`<w:r><w:t>item</w:t></w:r></w:p>`
	if string(out) != expected {
		t.Errorf("Expected %s, got %s", expected, out)
	}
}
