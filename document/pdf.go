package document

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/smallnest/agenttools/tool"
)

const maxDocumentSize = 50 << 20 // 50 MiB

// PDFTextResult is the extracted text of a PDF file.
type PDFTextResult struct {
	Path      string `json:"path"`
	Text      string `json:"text"`
	Pages     int    `json:"pages"`
	Truncated bool   `json:"truncated,omitempty"`
}

// PDFInfoResult describes a PDF file without extracting its text.
type PDFInfoResult struct {
	Path      string `json:"path"`
	Pages     int    `json:"pages"`
	SizeBytes int64  `json:"size_bytes"`
	Encrypted bool   `json:"encrypted"`
}

// PDFText extracts the plain text of a PDF. maxChars caps the returned
// text; 0 means no cap.
func PDFText(path string, maxChars int) (*PDFTextResult, error) {
	if maxChars < 0 {
		return nil, tool.Invalidf("max_chars", "must not be negative")
	}
	if err := checkDocument(path, ".pdf"); err != nil {
		return nil, err
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	var buf bytes.Buffer
	content, err := reader.GetPlainText()
	if err != nil {
		return nil, fmt.Errorf("extract pdf text %s: %w", path, err)
	}
	if _, err := buf.ReadFrom(content); err != nil {
		return nil, fmt.Errorf("extract pdf text %s: %w", path, err)
	}

	text := strings.TrimSpace(buf.String())
	truncated := false
	if maxChars > 0 && len(text) > maxChars {
		text = truncateRunes(text, maxChars)
		truncated = true
	}
	return &PDFTextResult{
		Path:      path,
		Text:      text,
		Pages:     reader.NumPage(),
		Truncated: truncated,
	}, nil
}

// PDFInfo returns page count, file size and encryption status of a PDF.
func PDFInfo(path string) (*PDFInfoResult, error) {
	if err := checkDocument(path, ".pdf"); err != nil {
		return nil, err
	}
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}

	f, reader, err := pdf.Open(path)
	if err != nil {
		// An open failure on a structurally valid file usually means
		// password protection; report that instead of failing.
		if strings.Contains(strings.ToLower(err.Error()), "encrypt") {
			return &PDFInfoResult{Path: path, SizeBytes: info.Size(), Encrypted: true}, nil
		}
		return nil, fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	return &PDFInfoResult{
		Path:      path,
		Pages:     reader.NumPage(),
		SizeBytes: info.Size(),
	}, nil
}

// checkDocument validates that path exists, is a regular file of the
// expected extension and is not absurdly large.
func checkDocument(path, wantExt string) error {
	if path == "" {
		return tool.Invalidf("path", "must not be empty")
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return fmt.Errorf("%w: %s", tool.ErrNotFound, path)
	}
	if err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if info.IsDir() {
		return tool.Invalidf("path", "%s is a directory", path)
	}
	if info.Size() > maxDocumentSize {
		return fmt.Errorf("%w: %s is %d bytes, limit is %d", tool.ErrTooLarge, path, info.Size(), maxDocumentSize)
	}
	if ext := strings.ToLower(filepath.Ext(path)); ext != wantExt {
		return tool.Invalidf("path", "expected a %s file, got %q", wantExt, ext)
	}
	return nil
}

func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
