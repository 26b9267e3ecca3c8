package data

import (
	"context"
	"testing"

	"github.com/smallnest/agenttools/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolsCatalog(t *testing.T) {
	defs := Tools()
	require.Len(t, defs, 12)
	for _, def := range defs {
		assert.Equal(t, Category, def.Category(), def.Name())
		assert.NotEmpty(t, def.Description(), def.Name())
		assert.NotNil(t, def.Schema(), def.Name())
		assert.True(t, def.ReadOnly(), def.Name())
	}
}

func TestToolRoundTrip(t *testing.T) {
	reg := tool.NewRegistry(Tools()...)
	ctx := context.Background()

	out, err := reg.Execute(ctx, "csv_to_json", `{"content": "name,age\nAda,36\n"}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"name":"Ada"`)
	assert.Contains(t, out, `"count":1`)

	out, err = reg.Execute(ctx, "json_query", `{"content": "{\"a\": {\"b\": 7}}", "path": "a.b"}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"exists":true`)
	assert.Contains(t, out, `"value":7`)

	_, err = reg.Execute(ctx, "json_format", `{"content": "{bad"}`)
	require.Error(t, err)
	assert.ErrorIs(t, err, tool.ErrInvalidInput)
}
