package data

import (
	"testing"

	"github.com/smallnest/agenttools/tool"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSniffDelimiter(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  rune
	}{
		{"comma", "a,b,c\nd,e,f\n", ','},
		{"semicolon", "a;b;c\nd;e;f\n", ';'},
		{"tab", "a\tb\nc\td\n", '\t'},
		{"pipe", "a|b\nc|d\n", '|'},
		{"single column falls back to comma", "a\nb\nc\n", ','},
		{"quoted commas prefer semicolon", "\"a,b\";c\n\"d,e\";f\n", ';'},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, sniffDelimiter(tt.input))
		})
	}
}

func TestParseCSVRecords(t *testing.T) {
	res, err := ParseCSV("a,b\n1,2\n3,4\n", CSVOptions{})
	require.NoError(t, err)

	assert.Equal(t, ",", res.Delimiter)
	assert.True(t, res.Sniffed)
	assert.Equal(t, [][]string{{"a", "b"}, {"1", "2"}, {"3", "4"}}, res.Records)
	assert.Equal(t, 3, res.RowCount)
	assert.Equal(t, 2, res.ColumnCount)
	assert.Nil(t, res.Rows)
}

func TestParseCSVHeaders(t *testing.T) {
	res, err := ParseCSV("name,age\nAda,36\nAlan,41\n", CSVOptions{Headers: true})
	require.NoError(t, err)

	assert.Equal(t, []string{"name", "age"}, res.Headers)
	assert.Equal(t, []map[string]string{
		{"name": "Ada", "age": "36"},
		{"name": "Alan", "age": "41"},
	}, res.Rows)
	assert.Equal(t, 2, res.RowCount)
	assert.Nil(t, res.Records)
}

func TestParseCSVExplicitDelimiter(t *testing.T) {
	res, err := ParseCSV("a;b\n1;2\n", CSVOptions{Delimiter: ";"})
	require.NoError(t, err)
	assert.Equal(t, ";", res.Delimiter)
	assert.False(t, res.Sniffed)

	_, err = ParseCSV("a;b\n", CSVOptions{Delimiter: ";;"})
	require.Error(t, err)
	assert.ErrorIs(t, err, tool.ErrInvalidInput)
}

func TestParseCSVEmpty(t *testing.T) {
	_, err := ParseCSV("  \n ", CSVOptions{})
	require.Error(t, err)
	assert.ErrorIs(t, err, tool.ErrInvalidInput)
}

func TestParseCSVMaxRows(t *testing.T) {
	res, err := ParseCSV("a,b\n1,2\n3,4\n5,6\n", CSVOptions{MaxRows: 2})
	require.NoError(t, err)
	assert.Equal(t, 2, res.RowCount)
	assert.True(t, res.Truncated)
}

func TestCSVToJSON(t *testing.T) {
	rows, err := CSVToJSON("name,age\nAda,36\n", "")
	require.NoError(t, err)
	assert.Equal(t, []map[string]string{{"name": "Ada", "age": "36"}}, rows)

	rows, err = CSVToJSON("name,age\n", "")
	require.NoError(t, err)
	assert.Empty(t, rows)
	assert.NotNil(t, rows)
}

func TestJSONToCSVObjects(t *testing.T) {
	out, err := JSONToCSV(`[{"b":1,"a":"x"},{"a":"y","b":2}]`, "")
	require.NoError(t, err)
	assert.Equal(t, "a,b\nx,1\ny,2\n", out)
}

func TestJSONToCSVArrays(t *testing.T) {
	out, err := JSONToCSV(`[["a","b"],["c","d"]]`, "")
	require.NoError(t, err)
	assert.Equal(t, "a,b\nc,d\n", out)
}

func TestJSONToCSVScalars(t *testing.T) {
	out, err := JSONToCSV(`[{"a":null,"b":true}]`, "")
	require.NoError(t, err)
	assert.Equal(t, "a,b\n,true\n", out)
}

func TestJSONToCSVDelimiter(t *testing.T) {
	out, err := JSONToCSV(`[["a","b"]]`, ";")
	require.NoError(t, err)
	assert.Equal(t, "a;b\n", out)
}

func TestJSONToCSVErrors(t *testing.T) {
	for name, input := range map[string]string{
		"not an array":  `{"a":1}`,
		"empty array":   `[]`,
		"scalar array":  `[1,2]`,
		"mixed array":   `[{"a":1},["b"]]`,
		"invalid json":  `{`,
		"mixed reverse": `[["a"],{"b":1}]`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := JSONToCSV(input, "")
			require.Error(t, err)
			assert.ErrorIs(t, err, tool.ErrInvalidInput)
		})
	}
}
