package config

import (
	"fmt"
	"image/color"
	"log"
	"math"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

var (
	transparent = color.NRGBA{}
	opaqueBlack = color.NRGBA{A: 0xff}
)

// ParseColor converts a config color string to a straight-alpha color.
//
// Accepted forms: "", "none", "transparent", "#RRGGBBAA", "rgb(r,g,b)",
// "rgba(r,g,b,a)", "#RGB", "#RRGGBB", "hsv(h,s,v)" and SVG color names.
// On failure it returns opaque black together with an error wrapping ErrInvalidColor.
func ParseColor(s string) (color.NRGBA, error) {
	v := strings.ToLower(strings.TrimSpace(s))

	switch v {
	case "", "none", "transparent":
		return transparent, nil
	}

	if len(v) == 9 && v[0] == '#' {
		c, err := parseHex(v[1:])
		if err != nil {
			return opaqueBlack, fmt.Errorf("%w: %q", ErrInvalidColor, s)
		}
		return c, nil
	}

	if args, ok := functional(v, "rgb"); ok {
		ch, err := parseChannels(args, 3)
		if err != nil {
			return opaqueBlack, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: 0xff}, nil
	}

	if args, ok := functional(v, "rgba"); ok {
		ch, err := parseChannels(args, 4)
		if err != nil {
			return opaqueBlack, fmt.Errorf("%w: %q: %v", ErrInvalidColor, s, err)
		}
		return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
	}

	return parseGeneral(v, s)
}

// ResolveColor parses value, or fallback when value is nil.
// Parse failures are logged and resolve to opaque black.
func ResolveColor(value *string, fallback string) color.NRGBA {
	raw := fallback
	if value != nil {
		raw = *value
	}
	c, err := ParseColor(raw)
	if err != nil {
		log.Printf("Warning: %v, using black", err)
	}
	return c
}

// parseGeneral handles the forms a toolkit color parser accepts beyond the explicit rules.
func parseGeneral(v, orig string) (color.NRGBA, error) {
	if strings.HasPrefix(v, "#") {
		hex := v[1:]
		switch len(hex) {
		case 3:
			hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
			fallthrough
		case 6:
			c, err := parseHex(hex + "ff")
			if err == nil {
				return c, nil
			}
		}
		return opaqueBlack, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}

	if args, ok := functional(v, "hsv"); ok {
		parts := strings.Split(args, ",")
		if len(parts) == 3 {
			h, errH := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
			s, errS := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
			b, errV := strconv.ParseFloat(strings.TrimSpace(parts[2]), 64)
			if errH == nil && errS == nil && errV == nil {
				r, g, bl := hsvToRgb(h, clamp01(s/100), clamp01(b/100))
				return color.NRGBA{R: r, G: g, B: bl, A: 0xff}, nil
			}
		}
		return opaqueBlack, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
	}

	if c, ok := colornames.Map[v]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	return opaqueBlack, fmt.Errorf("%w: %q", ErrInvalidColor, orig)
}

// functional returns the argument list of name(...) notation.
func functional(v, name string) (string, bool) {
	if !strings.HasPrefix(v, name+"(") || !strings.HasSuffix(v, ")") {
		return "", false
	}
	return v[len(name)+1 : len(v)-1], true
}

func parseChannels(args string, n int) ([]uint8, error) {
	parts := strings.Split(args, ",")
	if len(parts) != n {
		return nil, fmt.Errorf("want %d components, got %d", n, len(parts))
	}
	out := make([]uint8, n)
	for i, p := range parts {
		x, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, err
		}
		if x < 0 || x > 255 {
			return nil, fmt.Errorf("component %d out of range", x)
		}
		out[i] = uint8(x)
	}
	return out, nil
}

// parseHex decodes exactly eight hex digits as RRGGBBAA.
func parseHex(hex string) (color.NRGBA, error) {
	if len(hex) != 8 {
		return opaqueBlack, ErrInvalidColor
	}
	var ch [4]uint8
	for i := range ch {
		x, err := strconv.ParseUint(hex[i*2:i*2+2], 16, 8)
		if err != nil {
			return opaqueBlack, err
		}
		ch[i] = uint8(x)
	}
	return color.NRGBA{R: ch[0], G: ch[1], B: ch[2], A: ch[3]}, nil
}

// hsvToRgb converts HSV to RGB (hue: 0-360, saturation: 0-1, value: 0-1)
func hsvToRgb(h, s, v float64) (uint8, uint8, uint8) {
	h = math.Mod(h, 360)
	if h < 0 {
		h += 360
	}
	c := v * s
	x := c * (1 - math.Abs(math.Mod(h/60, 2)-1))
	m := v - c

	var r, g, b float64
	switch {
	case h < 60:
		r, g, b = c, x, 0
	case h < 120:
		r, g, b = x, c, 0
	case h < 180:
		r, g, b = 0, c, x
	case h < 240:
		r, g, b = 0, x, c
	case h < 300:
		r, g, b = x, 0, c
	default:
		r, g, b = c, 0, x
	}

	return uint8(math.Round((r + m) * 255)), uint8(math.Round((g + m) * 255)), uint8(math.Round((b + m) * 255))
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
