package contrast

import (
	"image/color"
	"regexp"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
	"golang.org/x/text/cases"
)

// White is the background assumed when nothing else can be determined.
var White = color.NRGBA{R: 255, G: 255, B: 255, A: 255}

var rgbPattern = regexp.MustCompile(`^rgba?\(\s*(\d+)\s*,\s*(\d+)\s*,\s*(\d+)\s*(?:,\s*([\d.]+%?)\s*)?\)$`)

// ParseColor parses a CSS background color: rgb(), rgba(), hex notation,
// named colors and "transparent". The second result is false when the
// value is empty, unknown or fully transparent, meaning no background is
// painted there.
func ParseColor(s string) (color.NRGBA, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return color.NRGBA{}, false
	}

	var (
		c  color.NRGBA
		ok bool
	)
	switch {
	case strings.HasPrefix(s, "#"):
		c, ok = parseHex(s[1:])
	case strings.HasPrefix(strings.ToLower(s), "rgb"):
		c, ok = parseRGB(strings.ToLower(s))
	default:
		c, ok = parseName(s)
	}
	if !ok || c.A == 0 {
		return color.NRGBA{}, false
	}
	return c, true
}

func parseRGB(s string) (color.NRGBA, bool) {
	m := rgbPattern.FindStringSubmatch(s)
	if m == nil {
		return color.NRGBA{}, false
	}

	c := color.NRGBA{A: 255}
	for i, dst := range []*uint8{&c.R, &c.G, &c.B} {
		v, err := strconv.Atoi(m[i+1])
		if err != nil {
			return color.NRGBA{}, false
		}
		*dst = uint8(min(v, 255))
	}

	if m[4] != "" {
		alpha := m[4]
		scale := 1.0
		if strings.HasSuffix(alpha, "%") {
			alpha = strings.TrimSuffix(alpha, "%")
			scale = 100
		}
		a, err := strconv.ParseFloat(alpha, 64)
		if err != nil {
			return color.NRGBA{}, false
		}
		c.A = uint8(max(0, min(1, a/scale)) * 255)
	}
	return c, true
}

func parseHex(hex string) (color.NRGBA, bool) {
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, false
	}

	switch len(hex) {
	case 3: // RGB
		return color.NRGBA{R: uint8(v>>8&0xf) * 17, G: uint8(v>>4&0xf) * 17, B: uint8(v&0xf) * 17, A: 255}, true
	case 4: // RGBA
		return color.NRGBA{R: uint8(v>>12&0xf) * 17, G: uint8(v>>8&0xf) * 17, B: uint8(v>>4&0xf) * 17, A: uint8(v&0xf) * 17}, true
	case 6: // RRGGBB
		return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, true
	case 8: // RRGGBBAA
		return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, true
	}
	return color.NRGBA{}, false
}

func parseName(s string) (color.NRGBA, bool) {
	name := cases.Fold().String(s)
	if name == "transparent" {
		return color.NRGBA{}, false
	}
	rgba, ok := colornames.Map[name]
	if !ok {
		return color.NRGBA{}, false
	}
	return color.NRGBA{R: rgba.R, G: rgba.G, B: rgba.B, A: rgba.A}, true
}
