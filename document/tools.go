package document

import (
	"context"
	"encoding/json"

	"github.com/smallnest/agenttools/tool"
)

// Category is the registry category of every tool in this package.
const Category = "document"

type pathParams struct {
	Path string `json:"path"`
}

type pdfTextParams struct {
	Path     string `json:"path"`
	MaxChars int    `json:"max_chars"`
}

// Tools returns the document tool definitions.
func Tools() []*tool.Definition {
	return []*tool.Definition{
		pdfTextTool(),
		pdfInfoTool(),
		docxTextTool(),
		pptxTextTool(),
	}
}

func pdfTextTool() *tool.Definition {
	return tool.New("pdf_text",
		"Extracts the plain text of a PDF file.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p pdfTextParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return PDFText(p.Path, p.MaxChars)
		},
		tool.WithCategory(Category),
		tool.WithTags("pdf", "extract", "text"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path":      tool.StringProp("Path of the .pdf file."),
			"max_chars": tool.IntProp("Cap on returned characters. 0 means no cap."),
		}, "path")),
	)
}

func pdfInfoTool() *tool.Definition {
	return tool.New("pdf_info",
		"Returns page count, file size and encryption status of a PDF file.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p pathParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return PDFInfo(p.Path)
		},
		tool.WithCategory(Category),
		tool.WithTags("pdf", "info", "pages"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path": tool.StringProp("Path of the .pdf file."),
		}, "path")),
	)
}

func docxTextTool() *tool.Definition {
	return tool.New("docx_text",
		"Extracts paragraph text from a Word .docx file.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p pathParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return DocxText(p.Path)
		},
		tool.WithCategory(Category),
		tool.WithTags("word", "docx", "extract", "text"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path": tool.StringProp("Path of the .docx file."),
		}, "path")),
	)
}

func pptxTextTool() *tool.Definition {
	return tool.New("pptx_text",
		"Extracts slide text from a PowerPoint .pptx file, slide by slide.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p pathParams
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return PptxText(p.Path)
		},
		tool.WithCategory(Category),
		tool.WithTags("powerpoint", "pptx", "slides", "extract", "text"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path": tool.StringProp("Path of the .pptx file."),
		}, "path")),
	)
}
