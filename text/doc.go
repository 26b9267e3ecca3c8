// Package text provides plain-text processing tools: whitespace cleanup,
// case conversion, truncation, counting, slugs, regular expressions, and
// markdown/HTML rendering.
//
// Everything operates on strings in memory and is rune-safe, so multi-byte
// text never gets cut inside a character.
//
//	out, _ := text.ConvertCase("parseHTTPResponse", text.CaseSnake)
//	// out == "parse_http_response"
//
//	short, _ := text.Truncate(long, text.TruncateOptions{MaxLength: 80, ByWords: true})
//
// MarkdownToHTML renders with gomarkdown and can sanitize the result with
// bluemonday; HTMLToText goes the other way and strips a fragment down to
// readable plain text:
//
//	html := text.MarkdownToHTML("# Report\n\nAll *good*.", true)
//	plain := text.HTMLToText("<p>Hello <b>World</b></p>")
//	// plain == "Hello World"
//
// Tools returns the package as agent-callable definitions under the "text"
// category.
package text
