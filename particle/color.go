package particle

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Color is an 8-bit RGBA color.
type Color struct {
	R, G, B, A uint8
}

// Hex returns the color in "#RRGGBBAA" form ("#RRGGBB" when fully opaque).
func (c Color) Hex() string {
	if c.A == 0xff {
		return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
	}
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseHex parses "#RRGGBB" or "#RRGGBBAA".
func ParseHex(s string) (Color, error) {
	if len(s) != 7 && len(s) != 9 {
		return Color{}, fmt.Errorf("invalid color %q: want #RRGGBB or #RRGGBBAA", s)
	}
	if s[0] != '#' {
		return Color{}, fmt.Errorf("invalid color %q: missing leading '#'", s)
	}
	var r, g, b uint8
	a := uint8(0xff)
	var err error
	if len(s) == 7 {
		_, err = fmt.Sscanf(s[1:], "%02x%02x%02x", &r, &g, &b)
	} else {
		_, err = fmt.Sscanf(s[1:], "%02x%02x%02x%02x", &r, &g, &b, &a)
	}
	if err != nil {
		return Color{}, fmt.Errorf("invalid color %q: %w", s, err)
	}
	return Color{R: r, G: g, B: b, A: a}, nil
}

// MarshalYAML emits the hex-string form.
func (c Color) MarshalYAML() (interface{}, error) {
	return c.Hex(), nil
}

// UnmarshalYAML accepts either the hex-string form or a 4-tuple of
// floats in [0,1], the two shapes the definition format allows.
func (c *Color) UnmarshalYAML(value *yaml.Node) error {
	switch value.Kind {
	case yaml.ScalarNode:
		var s string
		if err := value.Decode(&s); err != nil {
			return err
		}
		parsed, err := ParseHex(s)
		if err != nil {
			return err
		}
		*c = parsed
		return nil
	case yaml.SequenceNode:
		var vals []float64
		if err := value.Decode(&vals); err != nil {
			return err
		}
		if len(vals) != 4 {
			return fmt.Errorf("invalid color tuple: want 4 components, got %d", len(vals))
		}
		for _, v := range vals {
			if v < 0 || v > 1 {
				return fmt.Errorf("invalid color tuple: component %v outside [0,1]", v)
			}
		}
		*c = Color{
			R: uint8(vals[0]*255 + 0.5),
			G: uint8(vals[1]*255 + 0.5),
			B: uint8(vals[2]*255 + 0.5),
			A: uint8(vals[3]*255 + 0.5),
		}
		return nil
	default:
		return fmt.Errorf("invalid color: want hex string or 4-tuple")
	}
}
