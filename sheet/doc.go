// Package sheet reads and writes xlsx workbooks.
//
// Reads return cell values as strings, rendered the way excelize applies the
// workbook's number formats, so a cell holding 1.5 comes back as "1.5" and a
// date cell comes back formatted. Writes always produce a fresh single-sheet
// workbook; replacing an existing file requires skip_confirm, the same gate
// the file tools use.
//
// CSV conversions round-trip text content:
//
//	out, _ := sheet.FromCSV("name,qty\nada,3\n", "book.xlsx", "Data", "", false)
//	csv, _ := sheet.ToCSV("book.xlsx", "Data", "")
//	// csv == "name,qty\nada,3\n"
package sheet
