package color

import (
	"fmt"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/smallnest/agenttools/tool"
)

// Palette styles.
const (
	StyleHappy      = "happy"
	StyleWarm       = "warm"
	StyleSoft       = "soft"
	StyleMonochrome = "monochrome"
)

const maxPaletteSize = 64

// Palette generates count colors in the given style as uppercase hex strings.
// The monochrome style requires a base color; the generated styles ignore it.
func Palette(style string, count int, base string) ([]string, error) {
	if count < 1 || count > maxPaletteSize {
		return nil, tool.Invalidf("count", "must be between 1 and %d, got %d", maxPaletteSize, count)
	}

	var colors []colorful.Color
	switch strings.ToLower(style) {
	case StyleHappy, "":
		colors = colorful.FastHappyPalette(count)
	case StyleWarm:
		colors = colorful.FastWarmPalette(count)
	case StyleSoft:
		var err error
		colors, err = colorful.SoftPalette(count)
		if err != nil {
			return nil, fmt.Errorf("failed to generate soft palette: %w", err)
		}
	case StyleMonochrome:
		if base == "" {
			return nil, tool.Invalidf("base", "monochrome palette needs a base color")
		}
		c, err := parseHex(base)
		if err != nil {
			return nil, err
		}
		colors = monochrome(c, count)
	default:
		return nil, tool.Invalidf("style", "unknown style %q (happy, warm, soft, monochrome)", style)
	}

	hexes := make([]string, len(colors))
	for i, c := range colors {
		hexes[i] = upperHex(c)
	}
	return hexes, nil
}

// monochrome keeps hue and saturation and walks lightness from dark to light.
func monochrome(base colorful.Color, count int) []colorful.Color {
	h, s, _ := base.Hsl()
	if count == 1 {
		return []colorful.Color{base}
	}
	const lo, hi = 0.15, 0.85
	colors := make([]colorful.Color, count)
	for i := range colors {
		l := lo + (hi-lo)*float64(i)/float64(count-1)
		colors[i] = colorful.Hsl(h, s, l).Clamped()
	}
	return colors
}

// Blend spaces.
const (
	SpaceLab = "lab"
	SpaceRGB = "rgb"
	SpaceHCL = "hcl"
)

// Blend mixes two hex colors at position t in [0,1], where 0 is the first
// color and 1 the second. Lab blending gives the most perceptually even
// gradient and is the default.
func Blend(first, second string, t float64, space string) (string, error) {
	if t < 0 || t > 1 {
		return "", tool.Invalidf("t", "must be between 0 and 1, got %v", t)
	}
	a, err := parseHex(first)
	if err != nil {
		return "", err
	}
	b, err := parseHex(second)
	if err != nil {
		return "", err
	}

	var mixed colorful.Color
	switch strings.ToLower(space) {
	case SpaceLab, "":
		mixed = a.BlendLab(b, t)
	case SpaceRGB:
		mixed = a.BlendRgb(b, t)
	case SpaceHCL:
		mixed = a.BlendHcl(b, t)
	default:
		return "", tool.Invalidf("space", "unknown space %q (lab, rgb, hcl)", space)
	}
	return upperHex(mixed.Clamped()), nil
}

// Lighten raises the HSL lightness of a hex color by percent points.
func Lighten(hex string, percent float64) (string, error) {
	return shiftLightness(hex, percent)
}

// Darken lowers the HSL lightness of a hex color by percent points.
func Darken(hex string, percent float64) (string, error) {
	return shiftLightness(hex, -percent)
}

func shiftLightness(hex string, delta float64) (string, error) {
	if delta < -100 || delta > 100 {
		return "", tool.Invalidf("percent", "must be between 0 and 100, got %v", delta)
	}
	c, err := parseHex(hex)
	if err != nil {
		return "", err
	}
	h, s, l := c.Hsl()
	l += delta / 100
	if l < 0 {
		l = 0
	}
	if l > 1 {
		l = 1
	}
	return upperHex(colorful.Hsl(h, s, l).Clamped()), nil
}

// Distance metrics.
const (
	MetricCIE76   = "cie76"
	MetricCIE94   = "cie94"
	MetricCIEDE2k = "ciede2000"
)

// Distance computes the perceptual distance between two hex colors with the
// chosen CIE metric. CIEDE2000 is the most accurate and is the default.
func Distance(first, second string, metric string) (float64, error) {
	a, err := parseHex(first)
	if err != nil {
		return 0, err
	}
	b, err := parseHex(second)
	if err != nil {
		return 0, err
	}

	switch strings.ToLower(metric) {
	case MetricCIEDE2k, "":
		return round2(a.DistanceCIEDE2000(b)), nil
	case MetricCIE94:
		return round2(a.DistanceCIE94(b)), nil
	case MetricCIE76:
		return round2(a.DistanceCIE76(b)), nil
	default:
		return 0, tool.Invalidf("metric", "unknown metric %q (cie76, cie94, ciede2000)", metric)
	}
}

func upperHex(c colorful.Color) string {
	return strings.ToUpper(c.Hex())
}
