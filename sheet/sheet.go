package sheet

import (
	"encoding/csv"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/smallnest/agenttools/tool"
	"github.com/xuri/excelize/v2"
)

const defaultMaxSheetRows = 10000

// ListResult names the sheets of a workbook.
type ListResult struct {
	Path   string   `json:"path"`
	Sheets []string `json:"sheets"`
	Count  int      `json:"count"`
}

// List returns the sheet names of a workbook in tab order.
func List(path string) (*ListResult, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	sheets := f.GetSheetList()
	return &ListResult{Path: path, Sheets: sheets, Count: len(sheets)}, nil
}

// ReadOptions controls Read.
type ReadOptions struct {
	// Sheet is the sheet name. Empty means the first sheet.
	Sheet string
	// Headers treats the first row as column names and returns rows as
	// header-keyed objects.
	Headers bool
	// MaxRows caps returned data rows. 0 means the default of 10000.
	MaxRows int
}

// ReadResult is the content of one sheet. Cell values are strings, as
// rendered by the workbook's number formats.
type ReadResult struct {
	Path        string              `json:"path"`
	Sheet       string              `json:"sheet"`
	Headers     []string            `json:"headers,omitempty"`
	Records     [][]string          `json:"records,omitempty"`
	Rows        []map[string]string `json:"rows,omitempty"`
	RowCount    int                 `json:"row_count"`
	ColumnCount int                 `json:"column_count"`
	Truncated   bool                `json:"truncated,omitempty"`
}

// Read returns the rows of one sheet.
func Read(path string, opts ReadOptions) (*ReadResult, error) {
	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name, err := resolveSheet(f, opts.Sheet)
	if err != nil {
		return nil, err
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return nil, fmt.Errorf("failed to read sheet %q: %w", name, err)
	}

	maxRows := opts.MaxRows
	if maxRows <= 0 {
		maxRows = defaultMaxSheetRows
	}

	result := &ReadResult{Path: path, Sheet: name}
	for _, row := range rows {
		if opts.Headers && result.Headers == nil {
			result.Headers = row
			result.ColumnCount = len(row)
			continue
		}
		if result.RowCount >= maxRows {
			result.Truncated = true
			break
		}
		result.RowCount++
		if result.ColumnCount < len(row) {
			result.ColumnCount = len(row)
		}
		if opts.Headers {
			result.Rows = append(result.Rows, rowToRecord(result.Headers, row))
		} else {
			result.Records = append(result.Records, row)
		}
	}
	return result, nil
}

func rowToRecord(headers, row []string) map[string]string {
	record := make(map[string]string, len(headers))
	for i, h := range headers {
		if i < len(row) {
			record[h] = row[i]
		} else {
			record[h] = ""
		}
	}
	return record
}

// CellResult is one cell value.
type CellResult struct {
	Path  string `json:"path"`
	Sheet string `json:"sheet"`
	Cell  string `json:"cell"`
	Value string `json:"value"`
}

// ReadCell returns a single cell by A1-style reference.
func ReadCell(path, sheetName, cell string) (*CellResult, error) {
	if _, _, err := excelize.CellNameToCoordinates(cell); err != nil {
		return nil, tool.Invalidf("cell", "bad cell reference %q", cell)
	}

	f, err := openWorkbook(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	name, err := resolveSheet(f, sheetName)
	if err != nil {
		return nil, err
	}
	value, err := f.GetCellValue(name, cell)
	if err != nil {
		return nil, fmt.Errorf("failed to read cell %s: %w", cell, err)
	}
	return &CellResult{Path: path, Sheet: name, Cell: cell, Value: value}, nil
}

// WriteOptions controls Write.
type WriteOptions struct {
	// Sheet names the sheet of the new workbook. Empty means Sheet1.
	Sheet string
	// Rows writes raw rows. Exactly one of Rows and Records must be set.
	Rows [][]any
	// Records writes flat objects under a header row of their sorted keys.
	Records []map[string]any
	// SkipConfirm allows replacing an existing file.
	SkipConfirm bool
}

// WriteResult reports a written workbook.
type WriteResult struct {
	Path        string `json:"path"`
	Sheet       string `json:"sheet"`
	RowsWritten int    `json:"rows_written"`
	Overwrote   bool   `json:"overwrote"`
}

// Write creates a workbook holding one sheet of data. Writing over an
// existing file requires skip_confirm.
func Write(path string, opts WriteOptions) (*WriteResult, error) {
	if len(opts.Rows) == 0 && len(opts.Records) == 0 {
		return nil, tool.Invalidf("rows", "nothing to write")
	}
	if len(opts.Rows) > 0 && len(opts.Records) > 0 {
		return nil, tool.Invalidf("rows", "rows and records are mutually exclusive")
	}

	existed, err := fileExists(path)
	if err != nil {
		return nil, err
	}
	if existed && !opts.SkipConfirm {
		return nil, fmt.Errorf("%w: %s already exists", tool.ErrConfirmRequired, path)
	}

	rows := opts.Rows
	if len(opts.Records) > 0 {
		rows = recordsToRows(opts.Records)
	}

	f := excelize.NewFile()
	defer f.Close()

	name := opts.Sheet
	if name == "" {
		name = "Sheet1"
	} else if name != "Sheet1" {
		if err := f.SetSheetName("Sheet1", name); err != nil {
			return nil, tool.Invalidf("sheet", "bad sheet name %q: %v", name, err)
		}
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return nil, fmt.Errorf("failed to address row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(name, cell, &row); err != nil {
			return nil, fmt.Errorf("failed to write row %d: %w", i+1, err)
		}
	}
	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("failed to save %s: %w", path, err)
	}
	return &WriteResult{Path: path, Sheet: name, RowsWritten: len(rows), Overwrote: existed}, nil
}

func recordsToRows(records []map[string]any) [][]any {
	seen := map[string]bool{}
	var headers []string
	for _, record := range records {
		for k := range record {
			if !seen[k] {
				seen[k] = true
				headers = append(headers, k)
			}
		}
	}
	sort.Strings(headers)

	rows := make([][]any, 0, len(records)+1)
	headerRow := make([]any, len(headers))
	for i, h := range headers {
		headerRow[i] = h
	}
	rows = append(rows, headerRow)

	for _, record := range records {
		row := make([]any, len(headers))
		for i, h := range headers {
			row[i] = record[h]
		}
		rows = append(rows, row)
	}
	return rows
}

// ToCSV renders one sheet as CSV text.
func ToCSV(path, sheetName, delimiter string) (string, error) {
	delim, err := csvDelimiter(delimiter)
	if err != nil {
		return "", err
	}

	f, err := openWorkbook(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	name, err := resolveSheet(f, sheetName)
	if err != nil {
		return "", err
	}
	rows, err := f.GetRows(name)
	if err != nil {
		return "", fmt.Errorf("failed to read sheet %q: %w", name, err)
	}

	var sb strings.Builder
	w := csv.NewWriter(&sb)
	w.Comma = delim
	for _, row := range rows {
		if err := w.Write(row); err != nil {
			return "", fmt.Errorf("failed to write csv: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return "", fmt.Errorf("failed to write csv: %w", err)
	}
	return sb.String(), nil
}

// FromCSV writes CSV text into a new single-sheet workbook.
func FromCSV(content, path, sheetName, delimiter string, skipConfirm bool) (*WriteResult, error) {
	delim, err := csvDelimiter(delimiter)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(content) == "" {
		return nil, tool.Invalidf("content", "must not be empty")
	}

	r := csv.NewReader(strings.NewReader(content))
	r.Comma = delim
	r.FieldsPerRecord = -1
	records, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: bad csv: %v", tool.ErrInvalidInput, err)
	}

	rows := make([][]any, len(records))
	for i, record := range records {
		row := make([]any, len(record))
		for j, field := range record {
			row[j] = field
		}
		rows[i] = row
	}
	return Write(path, WriteOptions{Sheet: sheetName, Rows: rows, SkipConfirm: skipConfirm})
}

func csvDelimiter(delimiter string) (rune, error) {
	if delimiter == "" {
		return ',', nil
	}
	runes := []rune(delimiter)
	if len(runes) != 1 {
		return 0, tool.Invalidf("delimiter", "%q is not a single character", delimiter)
	}
	return runes[0], nil
}

func openWorkbook(path string) (*excelize.File, error) {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", tool.ErrNotFound, path)
		}
		return nil, fmt.Errorf("failed to stat %s: %w", path, err)
	}
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: cannot open workbook: %v", tool.ErrInvalidInput, err)
	}
	return f, nil
}

func resolveSheet(f *excelize.File, name string) (string, error) {
	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return "", fmt.Errorf("%w: workbook has no sheets", tool.ErrNotFound)
	}
	if name == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == name {
			return name, nil
		}
	}
	return "", fmt.Errorf("%w: sheet %q (workbook has %s)", tool.ErrNotFound, name, strings.Join(sheets, ", "))
}

func fileExists(path string) (bool, error) {
	_, err := os.Stat(path)
	if err == nil {
		return true, nil
	}
	if os.IsNotExist(err) {
		return false, nil
	}
	return false, fmt.Errorf("failed to stat %s: %w", path, err)
}
