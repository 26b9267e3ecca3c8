package sheet

import (
	"context"
	"encoding/json"

	"github.com/smallnest/agenttools/tool"
)

// Category is the registry category of every tool in this package.
const Category = "sheet"

// Tools returns the spreadsheet tool definitions.
func Tools() []*tool.Definition {
	return []*tool.Definition{
		listTool(),
		readTool(),
		readCellTool(),
		writeTool(),
		toCSVTool(),
		fromCSVTool(),
	}
}

func listTool() *tool.Definition {
	type params struct {
		Path string `json:"path"`
	}
	return tool.New("sheet_list",
		"Lists the sheet names of an xlsx workbook in tab order.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return List(p.Path)
		},
		tool.WithCategory(Category),
		tool.WithTags("excel", "xlsx", "list"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path": tool.StringProp("Workbook path."),
		}, "path")),
	)
}

func readTool() *tool.Definition {
	type params struct {
		Path    string `json:"path"`
		Sheet   string `json:"sheet"`
		Headers bool   `json:"headers"`
		MaxRows int    `json:"max_rows"`
	}
	return tool.New("sheet_read",
		"Reads one sheet of an xlsx workbook as rows of cell strings, optionally keyed by a header row.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Read(p.Path, ReadOptions{
				Sheet:   p.Sheet,
				Headers: p.Headers,
				MaxRows: p.MaxRows,
			})
		},
		tool.WithCategory(Category),
		tool.WithTags("excel", "xlsx", "read"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path":     tool.StringProp("Workbook path."),
			"sheet":    tool.StringProp("Sheet name. Omit for the first sheet."),
			"headers":  tool.BoolProp("Treat the first row as column names."),
			"max_rows": tool.IntProp("Row cap. Defaults to 10000."),
		}, "path")),
	)
}

func readCellTool() *tool.Definition {
	type params struct {
		Path  string `json:"path"`
		Sheet string `json:"sheet"`
		Cell  string `json:"cell"`
	}
	return tool.New("sheet_read_cell",
		"Reads a single cell of an xlsx workbook by A1-style reference.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return ReadCell(p.Path, p.Sheet, p.Cell)
		},
		tool.WithCategory(Category),
		tool.WithTags("excel", "xlsx", "read"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path":  tool.StringProp("Workbook path."),
			"sheet": tool.StringProp("Sheet name. Omit for the first sheet."),
			"cell":  tool.StringProp("Cell reference such as B2."),
		}, "path", "cell")),
	)
}

func writeTool() *tool.Definition {
	type params struct {
		Path        string           `json:"path"`
		Sheet       string           `json:"sheet"`
		Rows        [][]any          `json:"rows"`
		Records     []map[string]any `json:"records"`
		SkipConfirm bool             `json:"skip_confirm"`
	}
	return tool.New("sheet_write",
		"Writes rows or flat records into a new single-sheet xlsx workbook.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return Write(p.Path, WriteOptions{
				Sheet:       p.Sheet,
				Rows:        p.Rows,
				Records:     p.Records,
				SkipConfirm: p.SkipConfirm,
			})
		},
		tool.WithCategory(Category),
		tool.WithTags("excel", "xlsx", "write"),
		tool.WithWrites(),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path":         tool.StringProp("Destination workbook path."),
			"sheet":        tool.StringProp("Sheet name. Defaults to Sheet1."),
			"rows":         tool.ArrayProp("Rows of cell values. Mutually exclusive with records.", nil),
			"records":      tool.ArrayProp("Flat objects written under a header row of their keys.", tool.ObjectProp("One record.", nil)),
			"skip_confirm": tool.BoolProp("Replace the file if it already exists."),
		}, "path")),
	)
}

func toCSVTool() *tool.Definition {
	type params struct {
		Path      string `json:"path"`
		Sheet     string `json:"sheet"`
		Delimiter string `json:"delimiter"`
	}
	return tool.New("sheet_to_csv",
		"Renders one sheet of an xlsx workbook as CSV text.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			out, err := ToCSV(p.Path, p.Sheet, p.Delimiter)
			if err != nil {
				return nil, err
			}
			return map[string]any{"csv": out}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("excel", "csv", "convert"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"path":      tool.StringProp("Workbook path."),
			"sheet":     tool.StringProp("Sheet name. Omit for the first sheet."),
			"delimiter": tool.StringProp("Field separator. Defaults to comma."),
		}, "path")),
	)
}

func fromCSVTool() *tool.Definition {
	type params struct {
		Content     string `json:"content"`
		Path        string `json:"path"`
		Sheet       string `json:"sheet"`
		Delimiter   string `json:"delimiter"`
		SkipConfirm bool   `json:"skip_confirm"`
	}
	return tool.New("csv_to_sheet",
		"Writes CSV text into a new single-sheet xlsx workbook.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return FromCSV(p.Content, p.Path, p.Sheet, p.Delimiter, p.SkipConfirm)
		},
		tool.WithCategory(Category),
		tool.WithTags("excel", "csv", "convert"),
		tool.WithWrites(),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"content":      tool.StringProp("CSV text."),
			"path":         tool.StringProp("Destination workbook path."),
			"sheet":        tool.StringProp("Sheet name. Defaults to Sheet1."),
			"delimiter":    tool.StringProp("Field separator. Defaults to comma."),
			"skip_confirm": tool.BoolProp("Replace the file if it already exists."),
		}, "content", "path")),
	)
}
