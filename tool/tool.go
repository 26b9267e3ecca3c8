package tool

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
)

// Handler executes a tool against its decoded JSON arguments and returns a
// JSON-serializable result.
type Handler func(ctx context.Context, args json.RawMessage) (any, error)

// Definition describes a single callable tool: its name, description, input
// schema, and the handler that implements it. A Definition satisfies the
// langchaingo tools.Tool interface, so it can be handed to any agent that
// accepts one.
type Definition struct {
	name        string
	description string
	category    string
	tags        []string
	schema      *Schema
	readOnly    bool
	handler     Handler
}

// Option configures a Definition.
type Option func(*Definition)

// WithCategory sets the category the tool belongs to.
func WithCategory(category string) Option {
	return func(d *Definition) {
		d.category = category
	}
}

// WithTags sets searchable tags for the tool.
func WithTags(tags ...string) Option {
	return func(d *Definition) {
		d.tags = tags
	}
}

// WithSchema attaches the JSON schema describing the tool input.
func WithSchema(schema *Schema) Option {
	return func(d *Definition) {
		d.schema = schema
	}
}

// WithWrites marks the tool as one that modifies files or external state.
// Tools are considered read-only unless this option is applied.
func WithWrites() Option {
	return func(d *Definition) {
		d.readOnly = false
	}
}

// New creates a tool definition with the given name, description and handler.
func New(name, description string, handler Handler, opts ...Option) *Definition {
	d := &Definition{
		name:        name,
		description: description,
		handler:     handler,
		readOnly:    true,
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// Name returns the name of the tool.
func (d *Definition) Name() string {
	return d.name
}

// Description returns the description of the tool.
func (d *Definition) Description() string {
	return d.description
}

// Category returns the category the tool belongs to.
func (d *Definition) Category() string {
	return d.category
}

// Tags returns the searchable tags of the tool.
func (d *Definition) Tags() []string {
	return d.tags
}

// Schema returns the JSON schema of the tool input, or nil if none was set.
func (d *Definition) Schema() *Schema {
	return d.schema
}

// ReadOnly reports whether the tool leaves files and external state untouched.
func (d *Definition) ReadOnly() bool {
	return d.readOnly
}

// Call executes the tool with a JSON string input and returns the result
// encoded as a JSON string. An empty input is treated as an empty object.
func (d *Definition) Call(ctx context.Context, input string) (string, error) {
	raw := strings.TrimSpace(input)
	if raw == "" {
		raw = "{}"
	}
	if !json.Valid([]byte(raw)) {
		return "", fmt.Errorf("%w: input is not valid JSON", ErrInvalidInput)
	}
	result, err := d.handler(ctx, json.RawMessage(raw))
	if err != nil {
		return "", fmt.Errorf("%s: %w", d.name, err)
	}
	out, err := encodeResult(result)
	if err != nil {
		return "", fmt.Errorf("%s: failed to encode result: %w", d.name, err)
	}
	return out, nil
}

// encodeResult marshals without HTML escaping, so markdown arrows and tag
// fragments in results stay readable.
func encodeResult(v any) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return "", err
	}
	return strings.TrimSuffix(buf.String(), "\n"), nil
}

// Execute runs the tool handler directly with raw JSON arguments, skipping
// the string round trip of Call.
func (d *Definition) Execute(ctx context.Context, args json.RawMessage) (any, error) {
	return d.handler(ctx, args)
}

// DecodeArgs unmarshals raw JSON arguments into v. Empty arguments decode as
// an empty object. Unknown fields are ignored so callers may pass extra keys.
func DecodeArgs(args json.RawMessage, v any) error {
	if len(args) == 0 {
		args = json.RawMessage(`{}`)
	}
	if err := json.Unmarshal(args, v); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
