package config

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseHexColor parses a #RRGGBB (or RRGGBB) string into normalized
// RGB components in [0,1]
func ParseHexColor(s string) ([3]float32, error) {
	var rgb [3]float32

	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) != 6 {
		return rgb, fmt.Errorf("invalid color %q: want #RRGGBB", s)
	}

	for i := 0; i < 3; i++ {
		v, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return rgb, fmt.Errorf("invalid color %q: %v", s, err)
		}
		rgb[i] = float32(v) / 255.0
	}

	return rgb, nil
}

// FormatHexColor formats normalized RGB components as #RRGGBB
func FormatHexColor(rgb [3]float32) string {
	clamp := func(v float32) uint8 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 255
		}
		return uint8(v*255 + 0.5)
	}
	return fmt.Sprintf("#%02X%02X%02X", clamp(rgb[0]), clamp(rgb[1]), clamp(rgb[2]))
}
