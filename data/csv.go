package data

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/smallnest/agenttools/tool"
)

// delimiterCandidates are tried in order when sniffing; the order breaks
// score ties.
var delimiterCandidates = []rune{',', ';', '\t', '|'}

const sniffSampleRows = 10

// CSVOptions controls ParseCSV.
type CSVOptions struct {
	// Delimiter is the field separator. Empty means sniff it from the input.
	Delimiter string
	// Headers treats the first row as column names and returns rows as
	// header-keyed objects instead of arrays.
	Headers bool
	// MaxRows caps parsed data rows. 0 means the default of 10000.
	MaxRows int
}

// CSVResult is a parsed CSV document.
type CSVResult struct {
	Delimiter   string              `json:"delimiter"`
	Sniffed     bool                `json:"sniffed,omitempty"`
	Headers     []string            `json:"headers,omitempty"`
	Records     [][]string          `json:"records,omitempty"`
	Rows        []map[string]string `json:"rows,omitempty"`
	RowCount    int                 `json:"row_count"`
	ColumnCount int                 `json:"column_count"`
	Truncated   bool                `json:"truncated,omitempty"`
}

const defaultMaxCSVRows = 10000

// ParseCSV parses CSV text. With an empty delimiter the separator is
// sniffed by scoring comma, semicolon, tab and pipe for consistent field
// counts over a sample of the input.
func ParseCSV(input string, opts CSVOptions) (*CSVResult, error) {
	if strings.TrimSpace(input) == "" {
		return nil, tool.Invalidf("content", "must not be empty")
	}

	delim, sniffed, err := resolveDelimiter(input, opts.Delimiter)
	if err != nil {
		return nil, err
	}

	maxRows := opts.MaxRows
	if maxRows <= 0 {
		maxRows = defaultMaxCSVRows
	}

	r := csv.NewReader(strings.NewReader(input))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	result := &CSVResult{Delimiter: string(delim), Sniffed: sniffed}
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: bad csv: %v", tool.ErrInvalidInput, err)
		}
		if opts.Headers && result.Headers == nil {
			result.Headers = record
			result.ColumnCount = len(record)
			continue
		}
		if result.RowCount >= maxRows {
			result.Truncated = true
			break
		}
		result.RowCount++
		if result.ColumnCount < len(record) {
			result.ColumnCount = len(record)
		}
		if opts.Headers {
			result.Rows = append(result.Rows, recordToRow(result.Headers, record))
		} else {
			result.Records = append(result.Records, record)
		}
	}
	return result, nil
}

func recordToRow(headers, record []string) map[string]string {
	row := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(record) {
			row[h] = record[i]
		} else {
			row[h] = ""
		}
	}
	return row
}

func resolveDelimiter(input, requested string) (rune, bool, error) {
	if requested == "" {
		return sniffDelimiter(input), true, nil
	}
	if utf8.RuneCountInString(requested) != 1 {
		return 0, false, tool.Invalidf("delimiter", "%q is not a single character", requested)
	}
	delim, _ := utf8.DecodeRuneInString(requested)
	return delim, false, nil
}

// sniffDelimiter scores each candidate by the field count it yields when
// every sampled row agrees on it. The widest consistent split wins; ties
// keep the earlier candidate.
func sniffDelimiter(input string) rune {
	best := ','
	bestScore := 0
	for _, cand := range delimiterCandidates {
		if score := delimiterScore(input, cand); score > bestScore {
			best, bestScore = cand, score
		}
	}
	return best
}

func delimiterScore(input string, delim rune) int {
	r := csv.NewReader(strings.NewReader(input))
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true

	fields := 0
	for i := 0; i < sniffSampleRows; i++ {
		record, err := r.Read()
		if err != nil {
			break
		}
		if fields == 0 {
			fields = len(record)
			continue
		}
		if len(record) != fields {
			return 0
		}
	}
	if fields < 2 {
		return 0
	}
	return fields
}

// CSVToJSON converts CSV text with a header row into an array of
// header-keyed objects.
func CSVToJSON(input string, delimiter string) ([]map[string]string, error) {
	res, err := ParseCSV(input, CSVOptions{Delimiter: delimiter, Headers: true})
	if err != nil {
		return nil, err
	}
	if len(res.Headers) == 0 {
		return nil, tool.Invalidf("content", "missing header row")
	}
	if res.Rows == nil {
		return []map[string]string{}, nil
	}
	return res.Rows, nil
}

// JSONToCSV renders a JSON array as CSV text. An array of flat objects gets
// a header row of the sorted union of keys; an array of arrays is written
// as-is. Nested values are embedded as compact JSON.
func JSONToCSV(input string, delimiter string) (string, error) {
	delim := ','
	if delimiter != "" {
		if utf8.RuneCountInString(delimiter) != 1 {
			return "", tool.Invalidf("delimiter", "%q is not a single character", delimiter)
		}
		delim, _ = utf8.DecodeRuneInString(delimiter)
	}

	dec := json.NewDecoder(strings.NewReader(input))
	dec.UseNumber()
	var rows []any
	if err := dec.Decode(&rows); err != nil {
		return "", fmt.Errorf("%w: expected a json array: %v", tool.ErrInvalidInput, err)
	}
	if len(rows) == 0 {
		return "", tool.Invalidf("content", "array is empty")
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = delim

	switch rows[0].(type) {
	case map[string]any:
		headers, err := unionKeys(rows)
		if err != nil {
			return "", err
		}
		if err := w.Write(headers); err != nil {
			return "", fmt.Errorf("failed to write csv: %w", err)
		}
		for _, row := range rows {
			obj, ok := row.(map[string]any)
			if !ok {
				return "", tool.Invalidf("content", "mixed array of objects and non-objects")
			}
			record := make([]string, len(headers))
			for i, h := range headers {
				record[i] = cellString(obj[h])
			}
			if err := w.Write(record); err != nil {
				return "", fmt.Errorf("failed to write csv: %w", err)
			}
		}
	case []any:
		for _, row := range rows {
			arr, ok := row.([]any)
			if !ok {
				return "", tool.Invalidf("content", "mixed array of arrays and non-arrays")
			}
			record := make([]string, len(arr))
			for i, v := range arr {
				record[i] = cellString(v)
			}
			if err := w.Write(record); err != nil {
				return "", fmt.Errorf("failed to write csv: %w", err)
			}
		}
	default:
		return "", tool.Invalidf("content", "expected an array of objects or an array of arrays")
	}

	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write csv: %w", err)
	}
	return sb.String(), nil
}

func unionKeys(rows []any) ([]string, error) {
	seen := map[string]bool{}
	var keys []string
	for _, row := range rows {
		obj, ok := row.(map[string]any)
		if !ok {
			return nil, tool.Invalidf("content", "mixed array of objects and non-objects")
		}
		for k := range obj {
			if !seen[k] {
				seen[k] = true
				keys = append(keys, k)
			}
		}
	}
	sort.Strings(keys)
	return keys, nil
}

func cellString(v any) string {
	switch val := v.(type) {
	case nil:
		return ""
	case string:
		return val
	case json.Number:
		return val.String()
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		b, err := json.Marshal(val)
		if err != nil {
			return fmt.Sprint(val)
		}
		return string(b)
	}
}
