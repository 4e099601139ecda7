package docmgr

import "testing"

func TestParseRGB(t *testing.T) {
	tests := []struct {
		input   string
		want    RGB
		wantErr bool
	}{
		{"FF0000", RGB{R: 255}, false},
		{"#00ff7f", RGB{G: 255, B: 127}, false},
		{" 123456 ", RGB{R: 0x12, G: 0x34, B: 0x56}, false},
		{"F00", RGB{}, true},
		{"red", RGB{}, true},
		{"", RGB{}, true},
	}

	for _, tt := range tests {
		got, err := ParseRGB(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseRGB(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseRGB(%q) = %+v, want %+v", tt.input, got, tt.want)
		}
	}
}

func TestRGBHex(t *testing.T) {
	if got := (RGB{R: 255, G: 165}).Hex(); got != "FFA500" {
		t.Errorf("Hex() = %s, want FFA500", got)
	}
}

func TestTextFormatRunProperties(t *testing.T) {
	if props := (TextFormat{}).runProperties(); props != nil {
		t.Errorf("Zero format should produce no properties, got %+v", props)
	}

	props := TextFormat{FontSize: 10.5}.runProperties()
	if props == nil || props.Size == nil || props.Size.Val != 21 {
		t.Errorf("10.5pt should be 21 half-points, got %+v", props)
	}
	if props.Bold != nil || props.Color != nil {
		t.Errorf("Only the size should be set, got %+v", props)
	}
}
