package data

import (
	"context"
	"encoding/json"

	"github.com/smallnest/agenttools/tool"
)

// Category is the registry category of every tool in this package.
const Category = "data"

// Tools returns the structured data tool definitions.
func Tools() []*tool.Definition {
	return []*tool.Definition{
		csvParseTool(),
		csvToJSONTool(),
		jsonToCSVTool(),
		jsonFormatTool(),
		jsonQueryTool(),
		jsonSetTool(),
		jsonToYAMLTool(),
		yamlToJSONTool(),
		tomlToJSONTool(),
		jsonToTOMLTool(),
		iniToJSONTool(),
		xmlToJSONTool(),
	}
}

func csvParseTool() *tool.Definition {
	type params struct {
		Content   string `json:"content"`
		Delimiter string `json:"delimiter"`
		Headers   bool   `json:"headers"`
		MaxRows   int    `json:"max_rows"`
	}
	return tool.New("csv_parse",
		"Parses CSV text, sniffing the delimiter from comma, semicolon, tab and pipe when none is given.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return ParseCSV(p.Content, CSVOptions{
				Delimiter: p.Delimiter,
				Headers:   p.Headers,
				MaxRows:   p.MaxRows,
			})
		},
		tool.WithCategory(Category),
		tool.WithTags("csv", "parse"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"content":   tool.StringProp("CSV text."),
			"delimiter": tool.StringProp("Field separator. Omit to sniff it."),
			"headers":   tool.BoolProp("Treat the first row as column names."),
			"max_rows":  tool.IntProp("Row cap. Defaults to 10000."),
		}, "content")),
	)
}

func csvToJSONTool() *tool.Definition {
	type params struct {
		Content   string `json:"content"`
		Delimiter string `json:"delimiter"`
	}
	return tool.New("csv_to_json",
		"Converts CSV with a header row into an array of header-keyed objects.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			rows, err := CSVToJSON(p.Content, p.Delimiter)
			if err != nil {
				return nil, err
			}
			return map[string]any{"rows": rows, "count": len(rows)}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("csv", "json", "convert"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"content":   tool.StringProp("CSV text with a header row."),
			"delimiter": tool.StringProp("Field separator. Omit to sniff it."),
		}, "content")),
	)
}

func jsonToCSVTool() *tool.Definition {
	type params struct {
		Content   string `json:"content"`
		Delimiter string `json:"delimiter"`
	}
	return tool.New("json_to_csv",
		"Renders a JSON array of objects or arrays as CSV text.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			out, err := JSONToCSV(p.Content, p.Delimiter)
			if err != nil {
				return nil, err
			}
			return map[string]string{"csv": out}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("csv", "json", "convert"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"content":   tool.StringProp("JSON array to convert."),
			"delimiter": tool.StringProp("Field separator. Defaults to a comma."),
		}, "content")),
	)
}

func jsonFormatTool() *tool.Definition {
	type params struct {
		Content string `json:"content"`
		Mode    string `json:"mode"`
		Indent  int    `json:"indent"`
	}
	return tool.New("json_format",
		"Pretty-prints or minifies JSON without reordering keys.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			out, err := FormatJSON(p.Content, p.Mode, p.Indent)
			if err != nil {
				return nil, err
			}
			return map[string]string{"json": out}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("json", "format", "pretty"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"content": tool.StringProp("JSON text."),
			"mode":    tool.EnumProp("Output mode. Defaults to pretty.", "pretty", "minify"),
			"indent":  tool.IntProp("Spaces per level when pretty-printing. Defaults to 2."),
		}, "content")),
	)
}

func jsonQueryTool() *tool.Definition {
	type params struct {
		Content string `json:"content"`
		Path    string `json:"path"`
	}
	return tool.New("json_query",
		`Looks up a gjson path like "user.addresses.0.city" and reports whether it exists.`,
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			return QueryJSON(p.Content, p.Path)
		},
		tool.WithCategory(Category),
		tool.WithTags("json", "query", "path"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"content": tool.StringProp("JSON text."),
			"path":    tool.StringProp("gjson path to look up."),
		}, "content", "path")),
	)
}

func jsonSetTool() *tool.Definition {
	type params struct {
		Content string          `json:"content"`
		Path    string          `json:"path"`
		Value   json.RawMessage `json:"value"`
	}
	return tool.New("json_set",
		"Sets the value at a sjson path and returns the updated document.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			out, err := SetJSON(p.Content, p.Path, p.Value)
			if err != nil {
				return nil, err
			}
			return map[string]string{"json": out}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("json", "set", "path"),
		tool.WithSchema(tool.NewSchema(map[string]*tool.Property{
			"content": tool.StringProp("JSON text."),
			"path":    tool.StringProp("sjson path to set."),
			"value":   tool.StringProp("New value as JSON, so strings must be quoted."),
		}, "content", "path", "value")),
	)
}

func jsonToYAMLTool() *tool.Definition {
	type params struct {
		Content string `json:"content"`
	}
	return tool.New("json_to_yaml",
		"Renders a JSON document as YAML.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			out, err := JSONToYAML(p.Content)
			if err != nil {
				return nil, err
			}
			return map[string]string{"yaml": out}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("json", "yaml", "convert"),
		tool.WithSchema(contentSchema("JSON text.")),
	)
}

func yamlToJSONTool() *tool.Definition {
	type params struct {
		Content string `json:"content"`
	}
	return tool.New("yaml_to_json",
		"Parses YAML into JSON values.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			v, err := YAMLToJSON(p.Content)
			if err != nil {
				return nil, err
			}
			return map[string]any{"data": v}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("yaml", "json", "convert"),
		tool.WithSchema(contentSchema("YAML text.")),
	)
}

func tomlToJSONTool() *tool.Definition {
	type params struct {
		Content string `json:"content"`
	}
	return tool.New("toml_to_json",
		"Parses TOML into JSON values.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			v, err := TOMLToJSON(p.Content)
			if err != nil {
				return nil, err
			}
			return map[string]any{"data": v}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("toml", "json", "convert"),
		tool.WithSchema(contentSchema("TOML text.")),
	)
}

func jsonToTOMLTool() *tool.Definition {
	type params struct {
		Content string `json:"content"`
	}
	return tool.New("json_to_toml",
		"Renders a JSON object as TOML.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			out, err := JSONToTOML(p.Content)
			if err != nil {
				return nil, err
			}
			return map[string]string{"toml": out}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("json", "toml", "convert"),
		tool.WithSchema(contentSchema("JSON text with an object at the top level.")),
	)
}

func iniToJSONTool() *tool.Definition {
	type params struct {
		Content string `json:"content"`
	}
	return tool.New("ini_to_json",
		"Parses INI text into nested objects, one per section.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			v, err := INIToJSON(p.Content)
			if err != nil {
				return nil, err
			}
			return map[string]any{"data": v}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("ini", "json", "convert"),
		tool.WithSchema(contentSchema("INI text.")),
	)
}

func xmlToJSONTool() *tool.Definition {
	type params struct {
		Content string `json:"content"`
	}
	return tool.New("xml_to_json",
		"Parses XML into a generic tree of tag, attributes, text and children.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p params
			if err := tool.DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			root, err := XMLToJSON(p.Content)
			if err != nil {
				return nil, err
			}
			return map[string]any{"root": root}, nil
		},
		tool.WithCategory(Category),
		tool.WithTags("xml", "json", "convert"),
		tool.WithSchema(contentSchema("XML text.")),
	)
}

func contentSchema(desc string) *tool.Schema {
	return tool.NewSchema(map[string]*tool.Property{
		"content": tool.StringProp(desc),
	}, "content")
}
