package particle

import (
	"testing"

	"gopkg.in/yaml.v3"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Color
		wantErr bool
	}{
		{"opaque", "#ffcc00", Color{0xff, 0xcc, 0x00, 0xff}, false},
		{"with alpha", "#ffcc0080", Color{0xff, 0xcc, 0x00, 0x80}, false},
		{"black", "#000000", Color{0, 0, 0, 0xff}, false},
		{"missing hash", "ffcc00", Color{}, true},
		{"too short", "#fc0", Color{}, true},
		{"garbage", "#zzzzzz", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseHex(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseHex(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseHex(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	for _, c := range []Color{
		{0x12, 0x34, 0x56, 0xff},
		{0x12, 0x34, 0x56, 0x78},
	} {
		parsed, err := ParseHex(c.Hex())
		if err != nil {
			t.Fatalf("ParseHex(%q) error: %v", c.Hex(), err)
		}
		if parsed != c {
			t.Errorf("round trip %v -> %q -> %v", c, c.Hex(), parsed)
		}
	}
}

func TestColorUnmarshalYAML(t *testing.T) {
	tests := []struct {
		name    string
		in      string
		want    Color
		wantErr bool
	}{
		{"hex scalar", `"#80ff01"`, Color{0x80, 0xff, 0x01, 0xff}, false},
		{"float tuple", "[1.0, 0.0, 0.5, 1.0]", Color{255, 0, 128, 255}, false},
		{"tuple too short", "[1.0, 0.0, 0.5]", Color{}, true},
		{"component out of range", "[1.0, 0.0, 2.0, 1.0]", Color{}, true},
		{"wrong node kind", "{r: 1}", Color{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var c Color
			err := yaml.Unmarshal([]byte(tt.in), &c)
			if (err != nil) != tt.wantErr {
				t.Fatalf("unmarshal %q error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && c != tt.want {
				t.Errorf("unmarshal %q = %v, want %v", tt.in, c, tt.want)
			}
		})
	}
}
