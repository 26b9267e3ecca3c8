package color

import (
	"github.com/lucasb-eyer/go-colorful"
)

// ContrastResult is the WCAG contrast between two colors.
type ContrastResult struct {
	Ratio  float64 `json:"ratio"`
	Rating string  `json:"rating"`
}

// WCAG 2.x rating thresholds for normal text.
const (
	RatingAAA     = "AAA"
	RatingAA      = "AA"
	RatingAALarge = "AA Large"
	RatingFail    = "Fail"
)

// ContrastRatio computes the WCAG 2.x contrast ratio between two hex colors.
// The ratio ranges from 1.0 (identical) to 21.0 (black on white) and is
// rounded to two decimals.
func ContrastRatio(first, second string) (ContrastResult, error) {
	a, err := parseHex(first)
	if err != nil {
		return ContrastResult{}, err
	}
	b, err := parseHex(second)
	if err != nil {
		return ContrastResult{}, err
	}

	la := relativeLuminance(a)
	lb := relativeLuminance(b)
	if la < lb {
		la, lb = lb, la
	}
	ratio := round2((la + 0.05) / (lb + 0.05))
	return ContrastResult{Ratio: ratio, Rating: contrastRating(ratio)}, nil
}

// relativeLuminance follows the WCAG definition: a weighted sum of the
// linearized sRGB channels.
func relativeLuminance(c colorful.Color) float64 {
	r, g, b := c.LinearRgb()
	return 0.2126*r + 0.7152*g + 0.0722*b
}

func contrastRating(ratio float64) string {
	switch {
	case ratio >= 7:
		return RatingAAA
	case ratio >= 4.5:
		return RatingAA
	case ratio >= 3:
		return RatingAALarge
	default:
		return RatingFail
	}
}
