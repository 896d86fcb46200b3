package scene

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// ParseColor accepts "#rrggbb" strings and 0xRRGGBB integers.
func ParseColor(v any) (colorful.Color, error) {
	switch c := v.(type) {
	case colorful.Color:
		return c, nil
	case string:
		return colorful.Hex(c)
	case int:
		return FromHex(uint32(c)), nil
	case uint32:
		return FromHex(c), nil
	case float64:
		if c < 0 || c > 0xffffff {
			return colorful.Color{}, fmt.Errorf("color %v out of range", c)
		}
		return FromHex(uint32(c)), nil
	}
	return colorful.Color{}, fmt.Errorf("unsupported color value %T", v)
}

func FromHex(h uint32) colorful.Color {
	return colorful.Color{
		R: float64((h>>16)&0xff) / 255,
		G: float64((h>>8)&0xff) / 255,
		B: float64(h&0xff) / 255,
	}
}

func MustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

// Hue returns the fully saturated, half-lightness color for a hue in
// degrees.
func Hue(deg int) colorful.Color {
	return colorful.Hsl(float64(deg), 1, 0.5)
}
