package text

import (
	"context"
	"encoding/json"

	"github.com/smallnest/agenttools/tool"
)

// Category is the registry category of every tool in this package.
const Category = "text"

// Tools returns the text tool definitions.
func Tools() []*tool.Definition {
	return []*tool.Definition{
		normalizeTool(),
		caseTool(),
		truncateTool(),
		countTool(),
		slugifyTool(),
		regexExtractTool(),
		regexReplaceTool(),
		markdownTool(),
		htmlTextTool(),
		unicodeTool(),
	}
}

func normalizeTool() *tool.Definition {
	type params struct {
		Text               string `json:"text"`
		KeepInnerSpaces    bool   `json:"keep_inner_spaces"`
		CollapseBlankLines bool   `json:"collapse_blank_lines"`
	}
	return tool.New("text_normalize_whitespace",
		"Trims text, unifies line endings and collapses runs of spaces and tabs.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			out := NormalizeWhitespace(p.Text, NormalizeOptions{
				Trim:               true,
				CollapseSpaces:     !p.KeepInnerSpaces,
				CollapseBlankLines: p.CollapseBlankLines,
				UnifyNewlines:      true,
			})
			return map[string]string{"text": out}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("whitespace", "clean"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"text":                 tool.StringProp("Text to normalize."),
			"keep_inner_spaces":    tool.BoolProp("Keep runs of spaces and tabs as they are."),
			"collapse_blank_lines": tool.BoolProp("Collapse runs of blank lines to a single one."),
		}, "text")),
	)
}

func caseTool() *tool.Definition {
	type params struct {
		Text  string `json:"text"`
		Style string `json:"style"`
	}
	return tool.New("text_case",
		"Rewrites text in a case style: upper, lower, title, snake, kebab, camel, pascal or constant.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			out, err := ConvertCase(p.Text, p.Style)
			if err != nil {
				return nil, err
			}
			return map[string]string{"text": out}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("case", "snake", "camel"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"text": tool.StringProp("Text to convert."),
			"style": tool.EnumProp("Target case style.",
				CaseUpper, CaseLower, CaseTitle, CaseSnake, CaseKebab, CaseCamel, CasePascal, CaseConstant),
		}, "text", "style")),
	)
}

func truncateTool() *tool.Definition {
	type params struct {
		Text      string `json:"text"`
		MaxLength int    `json:"max_length"`
		ByWords   bool   `json:"by_words"`
		Suffix    string `json:"suffix"`
	}
	return tool.New("text_truncate",
		"Shortens text to a maximum number of characters, optionally at a word boundary.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			out, err := Truncate(p.Text, TruncateOptions{
				MaxLength: p.MaxLength,
				ByWords:   p.ByWords,
				Suffix:    p.Suffix,
			})
			if err != nil {
				return nil, err
			}
			return map[string]any{"text": out, "truncated": out != p.Text}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("truncate", "shorten"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"text":       tool.StringProp("Text to shorten."),
			"max_length": tool.IntProp("Maximum characters in the result, suffix included."),
			"by_words":   tool.BoolProp("Cut at the previous word boundary."),
			"suffix":     tool.StringProp(`Appended when shortened. Defaults to "...".`),
		}, "text", "max_length")),
	)
}

func countTool() *tool.Definition {
	type params struct {
		Text string `json:"text"`
	}
	return tool.New("text_count",
		"Counts characters, bytes, words, lines and sentences.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Count(p.Text), nil
		},
		tool.WithCategory(Category),
		tool.WithTags("count", "statistics"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"text": tool.StringProp("Text to measure."),
		}, "text")),
	)
}

func slugifyTool() *tool.Definition {
	type params struct {
		Text string `json:"text"`
	}
	return tool.New("text_slugify",
		"Turns text into a lowercase ASCII slug with hyphens, suitable for URLs and file names.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return map[string]string{"slug": Slugify(p.Text)}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("slug", "url"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"text": tool.StringProp("Text to slugify."),
		}, "text")),
	)
}

func regexExtractTool() *tool.Definition {
	type params struct {
		Pattern string `json:"pattern"`
		Text    string `json:"text"`
		Limit   int    `json:"limit"`
	}
	return tool.New("text_regex_extract",
		"Finds matches of a Go regular expression with their capture groups and offsets.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			matches, err := RegexExtract(p.Pattern, p.Text, p.Limit)
			if err != nil {
				return nil, err
			}
			return map[string]any{"matches": matches, "count": len(matches)}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("regex", "extract", "match"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"pattern": tool.StringProp("Go RE2 regular expression."),
			"text":    tool.StringProp("Text to search."),
			"limit":   tool.IntProp("Maximum matches to return, 0 for all."),
		}, "pattern", "text")),
	)
}

func regexReplaceTool() *tool.Definition {
	type params struct {
		Pattern     string `json:"pattern"`
		Text        string `json:"text"`
		Replacement string `json:"replacement"`
	}
	return tool.New("text_regex_replace",
		"Replaces every match of a Go regular expression. The replacement may use $1-style group references.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			out, n, err := RegexReplace(p.Pattern, p.Text, p.Replacement)
			if err != nil {
				return nil, err
			}
			return map[string]any{"text": out, "replacements": n}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("regex", "replace"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"pattern":     tool.StringProp("Go RE2 regular expression."),
			"text":        tool.StringProp("Text to rewrite."),
			"replacement": tool.StringProp("Replacement, may reference groups as $1."),
		}, "pattern", "text")),
	)
}

func markdownTool() *tool.Definition {
	type params struct {
		Markdown string `json:"markdown"`
		Sanitize bool   `json:"sanitize"`
	}
	return tool.New("text_markdown_html",
		"Renders markdown to HTML, optionally sanitized for embedding.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return map[string]string{"html": MarkdownToHTML(p.Markdown, p.Sanitize)}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("markdown", "html", "render"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"markdown": tool.StringProp("Markdown source."),
			"sanitize": tool.BoolProp("Strip unsafe HTML from the output."),
		}, "markdown")),
	)
}

func htmlTextTool() *tool.Definition {
	type params struct {
		HTML string `json:"html"`
	}
	return tool.New("text_html_text",
		"Strips markup from an HTML fragment and returns readable plain text.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return map[string]string{"text": HTMLToText(p.HTML)}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("html", "strip", "plain"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"html": tool.StringProp("HTML fragment to strip."),
		}, "html")),
	)
}

func unicodeTool() *tool.Definition {
	type params struct {
		Text string `json:"text"`
		Form string `json:"form"`
	}
	return tool.New("text_unicode_normalize",
		"Applies a Unicode normalization form: nfc (default), nfd, nfkc or nfkd.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			out, err := NormalizeUnicode(p.Text, p.Form)
			if err != nil {
				return nil, err
			}
			return map[string]string{"text": out}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("unicode", "normalize"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"text": tool.StringProp("Text to normalize."),
			"form": tool.EnumProp("Normalization form.", "nfc", "nfd", "nfkc", "nfkd"),
		}, "text")),
	)
}
