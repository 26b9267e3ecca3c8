package sheet

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/smallnest/agenttools/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFixture(t *testing.T, sheet string, rows [][]any) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "book.xlsx")
	_, err := Write(path, WriteOptions{Sheet: sheet, Rows: rows})
	require.NoError(t, err)
	return path
}

func jsonString(s string) string {
	b, _ := json.Marshal(s)
	return string(b)
}

func TestWriteAndList(t *testing.T) {
	path := writeFixture(t, "Data", [][]any{{"name", "qty"}, {"ada", 3}})

	out, err := List(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"Data"}, out.Sheets)
	assert.Equal(t, 1, out.Count)
}

func TestWriteNeedsConfirm(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")
	rows := [][]any{{"a"}}

	out, err := Write(path, WriteOptions{Rows: rows})
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", out.Sheet)
	assert.Equal(t, 1, out.RowsWritten)
	assert.False(t, out.Overwrote)

	_, err = Write(path, WriteOptions{Rows: rows})
	require.Error(t, err)
	assert.ErrorIs(t, err, tool.ErrConfirmRequired)

	out, err = Write(path, WriteOptions{Rows: rows, SkipConfirm: true})
	require.NoError(t, err)
	assert.True(t, out.Overwrote)
}

func TestWriteValidation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")

	_, err := Write(path, WriteOptions{})
	assert.ErrorIs(t, err, tool.ErrInvalidInput)

	_, err = Write(path, WriteOptions{
		Rows:    [][]any{{"a"}},
		Records: []map[string]any{{"a": 1}},
	})
	assert.ErrorIs(t, err, tool.ErrInvalidInput)
}

func TestReadRows(t *testing.T) {
	path := writeFixture(t, "", [][]any{
		{"name", "qty", "price"},
		{"ada", 3, 1.5},
		{"bob", 10, 2},
	})

	out, err := Read(path, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, "Sheet1", out.Sheet)
	assert.Equal(t, [][]string{
		{"name", "qty", "price"},
		{"ada", "3", "1.5"},
		{"bob", "10", "2"},
	}, out.Records)
	assert.Equal(t, 3, out.RowCount)
	assert.Equal(t, 3, out.ColumnCount)
	assert.False(t, out.Truncated)
}

func TestReadHeaders(t *testing.T) {
	path := writeFixture(t, "", [][]any{
		{"name", "qty"},
		{"ada", 3},
		{"bob", 10},
	})

	out, err := Read(path, ReadOptions{Headers: true})
	require.NoError(t, err)
	assert.Equal(t, []string{"name", "qty"}, out.Headers)
	assert.Equal(t, []map[string]string{
		{"name": "ada", "qty": "3"},
		{"name": "bob", "qty": "10"},
	}, out.Rows)
	assert.Equal(t, 2, out.RowCount)
}

func TestReadNamedSheet(t *testing.T) {
	path := writeFixture(t, "Inventory", [][]any{{"x"}})

	out, err := Read(path, ReadOptions{Sheet: "Inventory"})
	require.NoError(t, err)
	assert.Equal(t, "Inventory", out.Sheet)

	_, err = Read(path, ReadOptions{Sheet: "Missing"})
	require.Error(t, err)
	assert.ErrorIs(t, err, tool.ErrNotFound)
	assert.Contains(t, err.Error(), `sheet "Missing"`)
	assert.Contains(t, err.Error(), "Inventory")
}

func TestReadMaxRows(t *testing.T) {
	path := writeFixture(t, "", [][]any{{"a"}, {"b"}, {"c"}})

	out, err := Read(path, ReadOptions{MaxRows: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, out.RowCount)
	assert.True(t, out.Truncated)
}

func TestReadMissingFile(t *testing.T) {
	_, err := Read(filepath.Join(t.TempDir(), "nope.xlsx"), ReadOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, tool.ErrNotFound)
}

func TestReadCell(t *testing.T) {
	path := writeFixture(t, "", [][]any{
		{"name", "qty"},
		{"ada", 3},
	})

	out, err := ReadCell(path, "", "B2")
	require.NoError(t, err)
	assert.Equal(t, "3", out.Value)
	assert.Equal(t, "B2", out.Cell)

	// Cells outside the written range read as empty.
	out, err = ReadCell(path, "", "Z99")
	require.NoError(t, err)
	assert.Equal(t, "", out.Value)

	_, err = ReadCell(path, "", "not a cell")
	require.Error(t, err)
	assert.ErrorIs(t, err, tool.ErrInvalidInput)
}

func TestWriteRecords(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")

	out, err := Write(path, WriteOptions{Records: []map[string]any{
		{"qty": 3, "name": "ada"},
		{"name": "bob"},
	}})
	require.NoError(t, err)
	assert.Equal(t, 3, out.RowsWritten)

	got, err := Read(path, ReadOptions{})
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"name", "qty"},
		{"ada", "3"},
		{"bob"},
	}, got.Records)
}

func TestToCSV(t *testing.T) {
	path := writeFixture(t, "", [][]any{
		{"name", "qty"},
		{"ada", 3},
	})

	out, err := ToCSV(path, "", "")
	require.NoError(t, err)
	assert.Equal(t, "name,qty\nada,3\n", out)

	out, err = ToCSV(path, "", ";")
	require.NoError(t, err)
	assert.Equal(t, "name;qty\nada;3\n", out)

	_, err = ToCSV(path, "", ";;")
	require.Error(t, err)
	assert.ErrorIs(t, err, tool.ErrInvalidInput)
}

func TestFromCSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")

	out, err := FromCSV("name,qty\nada,3\n", path, "Data", "", false)
	require.NoError(t, err)
	assert.Equal(t, "Data", out.Sheet)
	assert.Equal(t, 2, out.RowsWritten)

	got, err := ToCSV(path, "Data", "")
	require.NoError(t, err)
	assert.Equal(t, "name,qty\nada,3\n", got)
}

func TestFromCSVErrors(t *testing.T) {
	path := filepath.Join(t.TempDir(), "book.xlsx")

	_, err := FromCSV("   ", path, "", "", false)
	assert.ErrorIs(t, err, tool.ErrInvalidInput)

	_, err = FromCSV("a,b", path, "", "||", false)
	assert.ErrorIs(t, err, tool.ErrInvalidInput)
}

func TestListErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := List(filepath.Join(dir, "nope.xlsx"))
	assert.ErrorIs(t, err, tool.ErrNotFound)
}

func TestToolsCatalog(t *testing.T) {
	defs := Tools()
	require.Len(t, defs, 6)

	writers := map[string]bool{
		"sheet_write":  true,
		"csv_to_sheet": true,
	}
	for _, def := range defs {
		assert.Equal(t, Category, def.Category(), def.Name())
		assert.NotEmpty(t, def.Description(), def.Name())
		assert.NotNil(t, def.Schema(), def.Name())
		assert.Equal(t, !writers[def.Name()], def.ReadOnly(), def.Name())
	}
}

func TestToolRoundTrip(t *testing.T) {
	reg := tool.NewRegistry(Tools()...)
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "book.xlsx")

	_, err := reg.Execute(ctx, "sheet_write", `{"path": `+jsonString(path)+`, "rows": [["name", "qty"], ["ada", 3]]}`)
	require.NoError(t, err)

	out, err := reg.Execute(ctx, "sheet_read", `{"path": `+jsonString(path)+`, "headers": true}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"name":"ada"`)
	assert.Contains(t, out, `"qty":"3"`)

	out, err = reg.Execute(ctx, "sheet_read_cell", `{"path": `+jsonString(path)+`, "cell": "A2"}`)
	require.NoError(t, err)
	assert.Contains(t, out, `"value":"ada"`)

	out, err = reg.Execute(ctx, "sheet_to_csv", `{"path": `+jsonString(path)+`}`)
	require.NoError(t, err)
	assert.Contains(t, out, `name,qty\nada,3\n`)
}
