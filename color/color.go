package color

import (
	"fmt"
	"math"
	"regexp"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/smallnest/agenttools/tool"
)

// RGB is a color in the sRGB space with 0-255 channels.
type RGB struct {
	R int `json:"r"`
	G int `json:"g"`
	B int `json:"b"`
}

// HSL is a color as hue (degrees), saturation and lightness (percent).
type HSL struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	L float64 `json:"l"`
}

// HSV is a color as hue (degrees), saturation and value (percent).
type HSV struct {
	H float64 `json:"h"`
	S float64 `json:"s"`
	V float64 `json:"v"`
}

// CMYK is a color as cyan, magenta, yellow and key percentages.
type CMYK struct {
	C float64 `json:"c"`
	M float64 `json:"m"`
	Y float64 `json:"y"`
	K float64 `json:"k"`
}

// Conversion is one color expressed in every supported space.
type Conversion struct {
	Hex  string `json:"hex"`
	RGB  RGB    `json:"rgb"`
	HSL  HSL    `json:"hsl"`
	HSV  HSV    `json:"hsv"`
	CMYK CMYK   `json:"cmyk"`
}

var hexPattern = regexp.MustCompile(`^#?([0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)

// HexToRGB parses a "#RGB" or "#RRGGBB" color. The leading "#" is optional.
func HexToRGB(hex string) (RGB, error) {
	c, err := parseHex(hex)
	if err != nil {
		return RGB{}, err
	}
	r, g, b := c.RGB255()
	return RGB{R: int(r), G: int(g), B: int(b)}, nil
}

// RGBToHex formats 0-255 channels as an uppercase "#RRGGBB" string.
func RGBToHex(r, g, b int) (string, error) {
	if err := checkChannels(r, g, b); err != nil {
		return "", err
	}
	return fmt.Sprintf("#%02X%02X%02X", r, g, b), nil
}

// RGBToHSL converts 0-255 channels to hue, saturation and lightness.
func RGBToHSL(r, g, b int) (HSL, error) {
	if err := checkChannels(r, g, b); err != nil {
		return HSL{}, err
	}
	h, s, l := rgbColor(r, g, b).Hsl()
	return HSL{H: round1(h), S: round1(s * 100), L: round1(l * 100)}, nil
}

// HSLToRGB converts hue (0-360) and saturation/lightness percentages back to
// 0-255 channels.
func HSLToRGB(h, s, l float64) (RGB, error) {
	if err := checkHuePercent(h, s, l, "l"); err != nil {
		return RGB{}, err
	}
	r, g, b := colorful.Hsl(h, s/100, l/100).Clamped().RGB255()
	return RGB{R: int(r), G: int(g), B: int(b)}, nil
}

// RGBToHSV converts 0-255 channels to hue, saturation and value.
func RGBToHSV(r, g, b int) (HSV, error) {
	if err := checkChannels(r, g, b); err != nil {
		return HSV{}, err
	}
	h, s, v := rgbColor(r, g, b).Hsv()
	return HSV{H: round1(h), S: round1(s * 100), V: round1(v * 100)}, nil
}

// HSVToRGB converts hue (0-360) and saturation/value percentages back to
// 0-255 channels.
func HSVToRGB(h, s, v float64) (RGB, error) {
	if err := checkHuePercent(h, s, v, "v"); err != nil {
		return RGB{}, err
	}
	r, g, b := colorful.Hsv(h, s/100, v/100).Clamped().RGB255()
	return RGB{R: int(r), G: int(g), B: int(b)}, nil
}

// RGBToCMYK converts 0-255 channels to CMYK percentages.
func RGBToCMYK(r, g, b int) (CMYK, error) {
	if err := checkChannels(r, g, b); err != nil {
		return CMYK{}, err
	}
	rf, gf, bf := float64(r)/255, float64(g)/255, float64(b)/255
	k := 1 - math.Max(rf, math.Max(gf, bf))
	if k >= 1 {
		return CMYK{C: 0, M: 0, Y: 0, K: 100}, nil
	}
	return CMYK{
		C: round1((1 - rf - k) / (1 - k) * 100),
		M: round1((1 - gf - k) / (1 - k) * 100),
		Y: round1((1 - bf - k) / (1 - k) * 100),
		K: round1(k * 100),
	}, nil
}

// CMYKToRGB converts CMYK percentages back to 0-255 channels.
func CMYKToRGB(c, m, y, k float64) (RGB, error) {
	for name, v := range map[string]float64{"c": c, "m": m, "y": y, "k": k} {
		if v < 0 || v > 100 {
			return RGB{}, tool.Invalidf(name, "must be between 0 and 100, got %v", v)
		}
	}
	return RGB{
		R: int(math.Round(255 * (1 - c/100) * (1 - k/100))),
		G: int(math.Round(255 * (1 - m/100) * (1 - k/100))),
		B: int(math.Round(255 * (1 - y/100) * (1 - k/100))),
	}, nil
}

// Convert expresses a hex color in every supported space.
func Convert(hex string) (Conversion, error) {
	rgb, err := HexToRGB(hex)
	if err != nil {
		return Conversion{}, err
	}
	return convertRGB(rgb)
}

// ConvertRGB expresses 0-255 channels in every supported space.
func ConvertRGB(r, g, b int) (Conversion, error) {
	if err := checkChannels(r, g, b); err != nil {
		return Conversion{}, err
	}
	return convertRGB(RGB{R: r, G: g, B: b})
}

func convertRGB(rgb RGB) (Conversion, error) {
	hex, err := RGBToHex(rgb.R, rgb.G, rgb.B)
	if err != nil {
		return Conversion{}, err
	}
	hsl, _ := RGBToHSL(rgb.R, rgb.G, rgb.B)
	hsv, _ := RGBToHSV(rgb.R, rgb.G, rgb.B)
	cmyk, _ := RGBToCMYK(rgb.R, rgb.G, rgb.B)
	return Conversion{Hex: hex, RGB: rgb, HSL: hsl, HSV: hsv, CMYK: cmyk}, nil
}

func parseHex(hex string) (colorful.Color, error) {
	s := strings.TrimSpace(hex)
	if !hexPattern.MatchString(s) {
		return colorful.Color{}, tool.Invalidf("color", "%q is not a hex color like #FF5733", hex)
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	c, err := colorful.Hex(strings.ToLower(s))
	if err != nil {
		return colorful.Color{}, tool.Invalidf("color", "%q is not a hex color: %v", hex, err)
	}
	return c, nil
}

func rgbColor(r, g, b int) colorful.Color {
	return colorful.Color{R: float64(r) / 255, G: float64(g) / 255, B: float64(b) / 255}
}

func checkChannels(r, g, b int) error {
	for name, v := range map[string]int{"r": r, "g": g, "b": b} {
		if v < 0 || v > 255 {
			return tool.Invalidf(name, "must be between 0 and 255, got %d", v)
		}
	}
	return nil
}

func checkHuePercent(h, s, last float64, lastName string) error {
	if h < 0 || h > 360 {
		return tool.Invalidf("h", "must be between 0 and 360, got %v", h)
	}
	if s < 0 || s > 100 {
		return tool.Invalidf("s", "must be between 0 and 100, got %v", s)
	}
	if last < 0 || last > 100 {
		return tool.Invalidf(lastName, "must be between 0 and 100, got %v", last)
	}
	return nil
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
