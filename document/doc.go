// Package document extracts plain text from PDF, DOCX and PPTX files.
//
// Extraction is read-only and text-only: styling, images and embedded
// objects are ignored. DOCX and PPTX are OOXML zip containers, read with
// the standard archive/zip and encoding/xml packages; PDFs go through
// ledongthuc/pdf. Paragraph breaks survive as newlines and slides keep
// their file order, so the output is stable for a given input file.
package document
