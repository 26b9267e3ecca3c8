package tool

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func echoTool() *Definition {
	return New("echo", "Returns its message argument.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			var p struct {
				Message string `json:"message"`
			}
			if err := DecodeArgs(args, &p); err != nil {
				return nil, err
			}
			if p.Message == "" {
				return nil, Invalidf("message", "must not be empty")
			}
			return map[string]string{"message": p.Message}, nil
		},
		WithCategory("demo"),
		WithTags("test", "echo"),
		WithSchema(NewSchema(map[string]*Property{
			"message": StringProp("Message to echo back."),
		}, "message")),
	)
}

func TestDefinition_Accessors(t *testing.T) {
	def := echoTool()

	assert.Equal(t, "echo", def.Name())
	assert.Equal(t, "Returns its message argument.", def.Description())
	assert.Equal(t, "demo", def.Category())
	assert.Equal(t, []string{"test", "echo"}, def.Tags())
	assert.True(t, def.ReadOnly())
	require.NotNil(t, def.Schema())
	assert.Equal(t, "object", def.Schema().Type)
}

func TestDefinition_WithWrites(t *testing.T) {
	def := New("writer", "Writes something.",
		func(ctx context.Context, args json.RawMessage) (any, error) {
			return "ok", nil
		},
		WithWrites(),
	)
	assert.False(t, def.ReadOnly())
}

func TestDefinition_Call(t *testing.T) {
	def := echoTool()
	ctx := context.Background()

	t.Run("valid input", func(t *testing.T) {
		out, err := def.Call(ctx, `{"message": "hello"}`)
		require.NoError(t, err)
		assert.JSONEq(t, `{"message":"hello"}`, out)
	})

	t.Run("empty input decodes as empty object", func(t *testing.T) {
		_, err := def.Call(ctx, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("malformed json", func(t *testing.T) {
		_, err := def.Call(ctx, `{"message":`)
		require.Error(t, err)
		assert.ErrorIs(t, err, ErrInvalidInput)
	})

	t.Run("handler error carries tool name", func(t *testing.T) {
		_, err := def.Call(ctx, `{"message": ""}`)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "echo")
	})

	t.Run("extra fields are ignored", func(t *testing.T) {
		out, err := def.Call(ctx, `{"message": "hi", "unused": 1}`)
		require.NoError(t, err)
		assert.JSONEq(t, `{"message":"hi"}`, out)
	})

	t.Run("angle brackets are not escaped", func(t *testing.T) {
		out, err := def.Call(ctx, `{"message": "a --> <b>"}`)
		require.NoError(t, err)
		assert.Contains(t, out, "a --> <b>")
	})
}

func TestDefinition_Execute(t *testing.T) {
	def := echoTool()

	result, err := def.Execute(context.Background(), json.RawMessage(`{"message":"direct"}`))
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"message": "direct"}, result)
}

func TestDecodeArgs(t *testing.T) {
	var p struct {
		N int `json:"n"`
	}

	require.NoError(t, DecodeArgs(nil, &p))
	assert.Equal(t, 0, p.N)

	require.NoError(t, DecodeArgs(json.RawMessage(`{"n": 7}`), &p))
	assert.Equal(t, 7, p.N)

	err := DecodeArgs(json.RawMessage(`{"n": "x"}`), &p)
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestInputError(t *testing.T) {
	err := Invalidf("depth", "must be >= -1, got %d", -5)

	assert.ErrorIs(t, err, ErrInvalidInput)
	var inputErr *InputError
	require.True(t, errors.As(err, &inputErr))
	assert.Equal(t, "depth", inputErr.Field)
	assert.Contains(t, err.Error(), "depth")
	assert.Contains(t, err.Error(), "-5")
}

func TestSchema_Map(t *testing.T) {
	schema := NewSchema(map[string]*Property{
		"path":  StringProp("File path."),
		"depth": IntProp("Traversal depth."),
		"style": EnumProp("Render style.", "plain", "fancy"),
		"names": ArrayProp("Name list.", StringProp("One name.")),
	}, "path")

	m := schema.Map()
	assert.Equal(t, "object", m["type"])

	props, ok := m["properties"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, props, 4)

	required, ok := m["required"].([]any)
	require.True(t, ok)
	assert.Equal(t, []any{"path"}, required)
}

func TestSchema_MapNil(t *testing.T) {
	var schema *Schema
	assert.Equal(t, map[string]any{"type": "object"}, schema.Map())
}
