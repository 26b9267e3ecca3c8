package text

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/smallnest/agenttools/tool"
	"golang.org/x/text/unicode/norm"
)

// NormalizeOptions controls NormalizeWhitespace. The zero value changes
// nothing.
type NormalizeOptions struct {
	Trim               bool
	CollapseSpaces     bool
	CollapseBlankLines bool
	UnifyNewlines      bool
}

var (
	spaceRun     = regexp.MustCompile(`[ \t]+`)
	blankLineRun = regexp.MustCompile(`\n{3,}`)
)

// NormalizeWhitespace cleans up whitespace according to opts: CRLF to LF,
// runs of spaces and tabs to a single space, runs of blank lines to one, and
// leading/trailing whitespace trimmed.
func NormalizeWhitespace(s string, opts NormalizeOptions) string {
	out := s
	if opts.UnifyNewlines {
		out = strings.ReplaceAll(out, "\r\n", "\n")
		out = strings.ReplaceAll(out, "\r", "\n")
	}
	if opts.CollapseSpaces {
		lines := strings.Split(out, "\n")
		for i, line := range lines {
			lines[i] = strings.TrimRight(spaceRun.ReplaceAllString(line, " "), " ")
		}
		out = strings.Join(lines, "\n")
	}
	if opts.CollapseBlankLines {
		out = blankLineRun.ReplaceAllString(out, "\n\n")
	}
	if opts.Trim {
		out = strings.TrimSpace(out)
	}
	return out
}

// TruncateOptions controls Truncate.
type TruncateOptions struct {
	// MaxLength is the maximum number of runes in the result, suffix
	// included.
	MaxLength int
	// ByWords backtracks to the previous word boundary before cutting.
	ByWords bool
	// Suffix is appended when the text was shortened. Defaults to "...".
	Suffix string
}

// Truncate shortens s to at most MaxLength runes. Multi-byte text is never
// split inside a rune.
func Truncate(s string, opts TruncateOptions) (string, error) {
	if opts.MaxLength < 0 {
		return "", tool.Invalidf("max_length", "must be >= 0, got %d", opts.MaxLength)
	}
	runes := []rune(s)
	if len(runes) <= opts.MaxLength {
		return s, nil
	}

	suffix := opts.Suffix
	if suffix == "" {
		suffix = "..."
	}
	suffixRunes := []rune(suffix)
	if opts.MaxLength <= len(suffixRunes) {
		return string(suffixRunes[:opts.MaxLength]), nil
	}

	cut := opts.MaxLength - len(suffixRunes)
	if opts.ByWords {
		if i := lastBoundary(runes, cut); i > 0 {
			cut = i
		}
	}
	return strings.TrimRight(string(runes[:cut]), " \t\n") + suffix, nil
}

// lastBoundary returns the index of the last space at or before limit.
func lastBoundary(runes []rune, limit int) int {
	for i := limit; i > 0; i-- {
		if unicode.IsSpace(runes[i-1]) {
			return i - 1
		}
	}
	return 0
}

// Counts holds the size measures of a text.
type Counts struct {
	Characters int `json:"characters"`
	Bytes      int `json:"bytes"`
	Words      int `json:"words"`
	Lines      int `json:"lines"`
	Sentences  int `json:"sentences"`
}

var sentenceEnd = regexp.MustCompile(`[.!?]+`)

// Count measures s. Characters are Unicode runes, words are whitespace
// separated fields, and sentences are runs of sentence punctuation.
func Count(s string) Counts {
	c := Counts{
		Characters: len([]rune(s)),
		Bytes:      len(s),
		Words:      len(strings.Fields(s)),
	}
	if s != "" {
		c.Lines = strings.Count(s, "\n") + 1
	}
	c.Sentences = len(sentenceEnd.FindAllString(s, -1))
	return c
}

// Slugify turns s into a lowercase ASCII slug with single hyphens, dropping
// accents where the decomposed form allows it.
func Slugify(s string) string {
	decomposed := norm.NFD.String(s)
	var b strings.Builder
	lastHyphen := true
	for _, r := range decomposed {
		switch {
		case unicode.Is(unicode.Mn, r):
			// combining mark from the decomposition, drop it
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			b.WriteRune(r)
			lastHyphen = false
		case r >= 'A' && r <= 'Z':
			b.WriteRune(unicode.ToLower(r))
			lastHyphen = false
		default:
			if !lastHyphen {
				b.WriteByte('-')
				lastHyphen = true
			}
		}
	}
	return strings.TrimRight(b.String(), "-")
}

// Match is one regular expression match with its capture groups.
type Match struct {
	Text   string   `json:"text"`
	Start  int      `json:"start"`
	Groups []string `json:"groups,omitempty"`
}

// RegexExtract returns up to limit matches of pattern in s. A limit of 0
// means all matches. Patterns use Go's RE2 syntax.
func RegexExtract(pattern, s string, limit int) ([]Match, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}
	indexes := re.FindAllStringSubmatchIndex(s, limit)
	matches := make([]Match, 0, len(indexes))
	for _, idx := range indexes {
		m := Match{Text: s[idx[0]:idx[1]], Start: idx[0]}
		for g := 1; g < len(idx)/2; g++ {
			if idx[2*g] < 0 {
				m.Groups = append(m.Groups, "")
				continue
			}
			m.Groups = append(m.Groups, s[idx[2*g]:idx[2*g+1]])
		}
		matches = append(matches, m)
	}
	return matches, nil
}

// RegexReplace replaces every match of pattern in s with replacement, which
// may reference capture groups as $1, $2 and so on. It returns the new text
// and the number of replacements.
func RegexReplace(pattern, s, replacement string) (string, int, error) {
	re, err := compilePattern(pattern)
	if err != nil {
		return "", 0, err
	}
	count := len(re.FindAllStringIndex(s, -1))
	return re.ReplaceAllString(s, replacement), count, nil
}

func compilePattern(pattern string) (*regexp.Regexp, error) {
	if pattern == "" {
		return nil, tool.Invalidf("pattern", "must not be empty")
	}
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("%w: bad pattern: %v", tool.ErrInvalidInput, err)
	}
	return re, nil
}

// NormalizeUnicode applies a Unicode normalization form to s. Supported
// forms are nfc, nfd, nfkc and nfkd.
func NormalizeUnicode(s, form string) (string, error) {
	switch strings.ToLower(form) {
	case "nfc", "":
		return norm.NFC.String(s), nil
	case "nfd":
		return norm.NFD.String(s), nil
	case "nfkc":
		return norm.NFKC.String(s), nil
	case "nfkd":
		return norm.NFKD.String(s), nil
	default:
		return "", tool.Invalidf("form", "unknown form %q (nfc, nfd, nfkc, nfkd)", form)
	}
}
