package text

import (
	stdhtml "html"
	"regexp"

	"github.com/gomarkdown/markdown"
	"github.com/gomarkdown/markdown/html"
	"github.com/gomarkdown/markdown/parser"
	"github.com/microcosm-cc/bluemonday"
)

// MarkdownToHTML renders CommonMark-style markdown to HTML. With sanitize
// set, the output is run through a bluemonday UGC policy so it is safe to
// embed in a page.
func MarkdownToHTML(md string, sanitize bool) string {
	extensions := parser.CommonExtensions | parser.AutoHeadingIDs
	p := parser.NewWithExtensions(extensions)
	doc := p.Parse([]byte(md))

	renderer := html.NewRenderer(html.RendererOptions{Flags: html.CommonFlags})
	out := markdown.Render(doc, renderer)
	if sanitize {
		out = bluemonday.UGCPolicy().SanitizeBytes(out)
	}
	return string(out)
}

var blockBreak = regexp.MustCompile(`(?i)<br\s*/?>|</(?:p|div|li|tr|h[1-6]|blockquote|pre)>`)

// HTMLToText strips all markup from an HTML fragment and returns readable
// plain text. Block element boundaries become line breaks.
func HTMLToText(htmlSrc string) string {
	withBreaks := blockBreak.ReplaceAllString(htmlSrc, "\n")
	stripped := bluemonday.StrictPolicy().Sanitize(withBreaks)
	decoded := stdhtml.UnescapeString(stripped)

	return NormalizeWhitespace(decoded, NormalizeOptions{
		Trim:               true,
		CollapseSpaces:     true,
		CollapseBlankLines: true,
		UnifyNewlines:      true,
	})
}
