package data

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/smallnest/agenttools/tool"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"
)

// FormatJSON pretty-prints or minifies JSON without reordering keys or
// reformatting numbers. Mode is "pretty" (the default) or "minify".
func FormatJSON(input, mode string, indent int) (string, error) {
	raw := []byte(strings.TrimSpace(input))
	if !json.Valid(raw) {
		return "", tool.Invalidf("content", "not valid json")
	}

	var buf bytes.Buffer
	switch mode {
	case "", "pretty":
		if indent <= 0 {
			indent = 2
		}
		if err := json.Indent(&buf, raw, "", strings.Repeat(" ", indent)); err != nil {
			return "", fmt.Errorf("%w: %v", tool.ErrInvalidInput, err)
		}
	case "minify":
		if err := json.Compact(&buf, raw); err != nil {
			return "", fmt.Errorf("%w: %v", tool.ErrInvalidInput, err)
		}
	default:
		return "", tool.Invalidf("mode", "unknown mode %q (pretty, minify)", mode)
	}
	return buf.String(), nil
}

// QueryResult is the outcome of a path lookup.
type QueryResult struct {
	Path   string `json:"path"`
	Exists bool   `json:"exists"`
	Type   string `json:"type,omitempty"`
	Value  any    `json:"value,omitempty"`
}

// QueryJSON looks up a gjson path. A missing path is reported through
// Exists, not as an error.
func QueryJSON(input, path string) (*QueryResult, error) {
	if path == "" {
		return nil, tool.Invalidf("path", "must not be empty")
	}
	if !gjson.Valid(input) {
		return nil, tool.Invalidf("content", "not valid json")
	}

	res := gjson.Get(input, path)
	out := &QueryResult{Path: path, Exists: res.Exists()}
	if !res.Exists() {
		return out, nil
	}
	out.Type = gjsonTypeName(res)
	out.Value = res.Value()
	return out, nil
}

func gjsonTypeName(res gjson.Result) string {
	switch {
	case res.IsArray():
		return "array"
	case res.IsObject():
		return "object"
	}
	switch res.Type {
	case gjson.String:
		return "string"
	case gjson.Number:
		return "number"
	case gjson.True, gjson.False:
		return "boolean"
	case gjson.Null:
		return "null"
	default:
		return strings.ToLower(res.Type.String())
	}
}

// SetJSON sets the value at a sjson path and returns the new document.
// The value is raw JSON, so strings must be quoted.
func SetJSON(input, path string, value json.RawMessage) (string, error) {
	if path == "" {
		return "", tool.Invalidf("path", "must not be empty")
	}
	if !gjson.Valid(input) {
		return "", tool.Invalidf("content", "not valid json")
	}
	if len(value) == 0 || !json.Valid(value) {
		return "", tool.Invalidf("value", "must be valid json")
	}

	out, err := sjson.SetRaw(input, path, string(value))
	if err != nil {
		return "", fmt.Errorf("%w: %v", tool.ErrInvalidInput, err)
	}
	return out, nil
}

// DeleteJSONPath removes the value at a sjson path and returns the new
// document. Deleting a missing path returns the document unchanged.
func DeleteJSONPath(input, path string) (string, error) {
	if path == "" {
		return "", tool.Invalidf("path", "must not be empty")
	}
	if !gjson.Valid(input) {
		return "", tool.Invalidf("content", "not valid json")
	}

	out, err := sjson.Delete(input, path)
	if err != nil {
		return "", fmt.Errorf("%w: %v", tool.ErrInvalidInput, err)
	}
	return out, nil
}
