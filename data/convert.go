package data

import (
	"encoding/json"
	"encoding/xml"
	"fmt"
	"io"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"github.com/smallnest/agenttools/tool"
	"gopkg.in/ini.v1"
	"gopkg.in/yaml.v3"
)

// decodeJSON parses JSON preserving integer values, so converters do not
// turn 42 into 42.0 on the way through.
func decodeJSON(input string) (any, error) {
	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("%w: not valid json: %v", tool.ErrInvalidInput, err)
	}
	return normalizeNumbers(v), nil
}

func normalizeNumbers(v any) any {
	switch val := v.(type) {
	case json.Number:
		if i, err := val.Int64(); err == nil {
			return i
		}
		if f, err := val.Float64(); err == nil {
			return f
		}
		return val.String()
	case map[string]any:
		for k, item := range val {
			val[k] = normalizeNumbers(item)
		}
		return val
	case []any:
		for i, item := range val {
			val[i] = normalizeNumbers(item)
		}
		return val
	default:
		return v
	}
}

// canonicalize rewrites decoded YAML into JSON-marshalable values by
// forcing map keys to strings.
func canonicalize(v any) any {
	switch val := v.(type) {
	case map[string]any:
		for k, item := range val {
			val[k] = canonicalize(item)
		}
		return val
	case map[any]any:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[fmt.Sprint(k)] = canonicalize(item)
		}
		return out
	case []any:
		for i, item := range val {
			val[i] = canonicalize(item)
		}
		return val
	default:
		return v
	}
}

// JSONToYAML renders a JSON document as YAML.
func JSONToYAML(input string) (string, error) {
	v, err := decodeJSON(input)
	if err != nil {
		return "", err
	}
	out, err := yaml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("failed to render yaml: %w", err)
	}
	return string(out), nil
}

// YAMLToJSON parses YAML into canonical JSON values: string-keyed maps,
// arrays and scalars.
func YAMLToJSON(input string) (any, error) {
	var v any
	if err := yaml.Unmarshal([]byte(input), &v); err != nil {
		return nil, fmt.Errorf("%w: not valid yaml: %v", tool.ErrInvalidInput, err)
	}
	return canonicalize(v), nil
}

// TOMLToJSON parses TOML into canonical JSON values.
func TOMLToJSON(input string) (any, error) {
	var v any
	if err := toml.Unmarshal([]byte(input), &v); err != nil {
		return nil, fmt.Errorf("%w: not valid toml: %v", tool.ErrInvalidInput, err)
	}
	return v, nil
}

// JSONToTOML renders a JSON object as TOML. TOML documents are tables, so
// the top-level JSON value must be an object.
func JSONToTOML(input string) (string, error) {
	v, err := decodeJSON(input)
	if err != nil {
		return "", err
	}
	if _, ok := v.(map[string]any); !ok {
		return "", tool.Invalidf("content", "top-level json value must be an object")
	}
	out, err := toml.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("%w: cannot express as toml: %v", tool.ErrInvalidInput, err)
	}
	return string(out), nil
}

// INIToJSON parses INI text. Keys of the unnamed default section land at
// the top level; named sections become nested objects. Values stay strings.
func INIToJSON(input string) (map[string]any, error) {
	cfg, err := ini.Load([]byte(input))
	if err != nil {
		return nil, fmt.Errorf("%w: not valid ini: %v", tool.ErrInvalidInput, err)
	}

	out := map[string]any{}
	for _, section := range cfg.Sections() {
		if section.Name() == ini.DefaultSection {
			for k, v := range section.KeysHash() {
				out[k] = v
			}
			continue
		}
		nested := map[string]any{}
		for k, v := range section.KeysHash() {
			nested[k] = v
		}
		out[section.Name()] = nested
	}
	return out, nil
}

// XMLNode is one element of a generic XML tree.
type XMLNode struct {
	Tag        string            `json:"tag"`
	Attributes map[string]string `json:"attributes,omitempty"`
	Text       string            `json:"text,omitempty"`
	Children   []*XMLNode        `json:"children,omitempty"`
}

// XMLToJSON parses an XML document into a generic element tree of tag,
// attributes, text and children.
func XMLToJSON(input string) (*XMLNode, error) {
	dec := xml.NewDecoder(strings.NewReader(input))

	var root *XMLNode
	var stack []*XMLNode
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: not valid xml: %v", tool.ErrInvalidInput, err)
		}

		switch t := tok.(type) {
		case xml.StartElement:
			node := &XMLNode{Tag: t.Name.Local}
			if len(t.Attr) > 0 {
				node.Attributes = make(map[string]string, len(t.Attr))
				for _, attr := range t.Attr {
					node.Attributes[attr.Name.Local] = attr.Value
				}
			}
			if len(stack) == 0 {
				if root != nil {
					return nil, tool.Invalidf("content", "multiple root elements")
				}
				root = node
			} else {
				parent := stack[len(stack)-1]
				parent.Children = append(parent.Children, node)
			}
			stack = append(stack, node)
		case xml.EndElement:
			if len(stack) > 0 {
				stack = stack[:len(stack)-1]
			}
		case xml.CharData:
			if len(stack) == 0 {
				continue
			}
			text := strings.TrimSpace(string(t))
			if text == "" {
				continue
			}
			current := stack[len(stack)-1]
			if current.Text != "" {
				current.Text += " "
			}
			current.Text += text
		}
	}
	if root == nil {
		return nil, tool.Invalidf("content", "no root element")
	}
	return root, nil
}
