package tool

import "encoding/json"

// Schema describes the JSON object a tool accepts as input. It covers the
// subset of JSON Schema that function-calling APIs understand.
type Schema struct {
	Type       string               `json:"type"`
	Properties map[string]*Property `json:"properties,omitempty"`
	Required   []string             `json:"required,omitempty"`
}

// Property describes one field of a tool input schema.
type Property struct {
	Type        string               `json:"type"`
	Description string               `json:"description,omitempty"`
	Enum        []string             `json:"enum,omitempty"`
	Format      string               `json:"format,omitempty"`
	Items       *Property            `json:"items,omitempty"`
	Properties  map[string]*Property `json:"properties,omitempty"`
	Required    []string             `json:"required,omitempty"`
	Default     any                  `json:"default,omitempty"`
}

// NewSchema builds an object schema from its properties and the names of the
// required ones.
func NewSchema(props map[string]*Property, required ...string) *Schema {
	return &Schema{
		Type:       "object",
		Properties: props,
		Required:   required,
	}
}

// Map returns the schema as a generic map, the form function-calling payloads
// expect.
func (s *Schema) Map() map[string]any {
	if s == nil {
		return map[string]any{"type": "object"}
	}
	data, err := json.Marshal(s)
	if err != nil {
		return map[string]any{"type": "object"}
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		return map[string]any{"type": "object"}
	}
	return m
}

// StringProp returns a string property with the given description.
func StringProp(description string) *Property {
	return &Property{Type: "string", Description: description}
}

// IntProp returns an integer property with the given description.
func IntProp(description string) *Property {
	return &Property{Type: "integer", Description: description}
}

// NumberProp returns a number property with the given description.
func NumberProp(description string) *Property {
	return &Property{Type: "number", Description: description}
}

// BoolProp returns a boolean property with the given description.
func BoolProp(description string) *Property {
	return &Property{Type: "boolean", Description: description}
}

// EnumProp returns a string property restricted to the given values.
func EnumProp(description string, values ...string) *Property {
	return &Property{Type: "string", Description: description, Enum: values}
}

// ArrayProp returns an array property whose elements follow items.
func ArrayProp(description string, items *Property) *Property {
	return &Property{Type: "array", Description: description, Items: items}
}

// ObjectProp returns an object property with the given nested properties.
func ObjectProp(description string, props map[string]*Property) *Property {
	return &Property{Type: "object", Description: description, Properties: props}
}
