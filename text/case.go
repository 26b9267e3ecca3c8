package text

import (
	"strings"
	"unicode"

	"github.com/smallnest/agenttools/tool"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Case styles accepted by ConvertCase.
const (
	CaseUpper    = "upper"
	CaseLower    = "lower"
	CaseTitle    = "title"
	CaseSnake    = "snake"
	CaseKebab    = "kebab"
	CaseCamel    = "camel"
	CasePascal   = "pascal"
	CaseConstant = "constant"
)

// titleCase returns a fresh caser per call; a cases.Caser carries state and
// must not be shared between goroutines.
func titleCase(s string) string {
	return cases.Title(language.Und).String(s)
}

// ConvertCase rewrites s in the given case style. The word styles (snake,
// kebab, camel, pascal, constant) split on separators and on lower-to-upper
// boundaries, so "parseHTTPResponse" becomes "parse_http_response".
func ConvertCase(s, style string) (string, error) {
	switch strings.ToLower(style) {
	case CaseUpper:
		return strings.ToUpper(s), nil
	case CaseLower:
		return strings.ToLower(s), nil
	case CaseTitle:
		return titleCase(strings.ToLower(s)), nil
	case CaseSnake:
		return joinWords(s, "_", strings.ToLower), nil
	case CaseKebab:
		return joinWords(s, "-", strings.ToLower), nil
	case CaseConstant:
		return joinWords(s, "_", strings.ToUpper), nil
	case CaseCamel:
		return camelWords(s, false), nil
	case CasePascal:
		return camelWords(s, true), nil
	default:
		return "", tool.Invalidf("style", "unknown style %q", style)
	}
}

func camelWords(s string, upperFirst bool) string {
	var b strings.Builder
	for i, w := range splitWords(s) {
		if i == 0 && !upperFirst {
			b.WriteString(strings.ToLower(w))
			continue
		}
		b.WriteString(titleCase(strings.ToLower(w)))
	}
	return b.String()
}

func joinWords(s, sep string, mapWord func(string) string) string {
	words := splitWords(s)
	for i, w := range words {
		words[i] = mapWord(w)
	}
	return strings.Join(words, sep)
}

// splitWords breaks s into words at separators, lower-to-upper boundaries
// and acronym tails ("HTTPServer" splits before "Server").
func splitWords(s string) []string {
	var words []string
	var cur []rune
	flush := func() {
		if len(cur) > 0 {
			words = append(words, string(cur))
			cur = cur[:0]
		}
	}

	runes := []rune(s)
	for i, r := range runes {
		switch {
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			flush()
		case i > 0 && unicode.IsUpper(r) && unicode.IsLower(runes[i-1]):
			flush()
			cur = append(cur, r)
		case i > 0 && i+1 < len(runes) && unicode.IsUpper(r) &&
			unicode.IsUpper(runes[i-1]) && unicode.IsLower(runes[i+1]):
			flush()
			cur = append(cur, r)
		default:
			cur = append(cur, r)
		}
	}
	flush()
	return words
}
