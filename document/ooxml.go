package document

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// DocxTextResult is the extracted text of a Word document.
type DocxTextResult struct {
	Path       string `json:"path"`
	Text       string `json:"text"`
	Paragraphs int    `json:"paragraphs"`
}

// Slide is the text content of one presentation slide.
type Slide struct {
	Index int    `json:"index"`
	Text  string `json:"text"`
}

// PptxTextResult is the extracted text of a presentation, slide by slide.
type PptxTextResult struct {
	Path   string  `json:"path"`
	Slides []Slide `json:"slides"`
	Count  int     `json:"count"`
	Text   string  `json:"text"`
}

// DocxText extracts paragraph text from a .docx file. Each paragraph
// becomes one line; tabs and explicit line breaks inside a paragraph are
// preserved.
func DocxText(path string) (*DocxTextResult, error) {
	if err := checkDocument(path, ".docx"); err != nil {
		return nil, err
	}
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open docx %s: %w", path, err)
	}
	defer r.Close()

	part, err := zipPart(&r.Reader, "word/document.xml")
	if err != nil {
		return nil, fmt.Errorf("read docx %s: %w", path, err)
	}
	paragraphs, err := wordParagraphs(part)
	if err != nil {
		return nil, fmt.Errorf("parse docx %s: %w", path, err)
	}
	return &DocxTextResult{
		Path:       path,
		Text:       strings.Join(paragraphs, "\n"),
		Paragraphs: len(paragraphs),
	}, nil
}

// PptxText extracts text from every slide of a .pptx file, in slide order.
func PptxText(path string) (*PptxTextResult, error) {
	if err := checkDocument(path, ".pptx"); err != nil {
		return nil, err
	}
	r, err := zip.OpenReader(path)
	if err != nil {
		return nil, fmt.Errorf("open pptx %s: %w", path, err)
	}
	defer r.Close()

	names := slideNames(&r.Reader)
	slides := make([]Slide, 0, len(names))
	var all []string
	for _, name := range names {
		part, err := zipPart(&r.Reader, name.path)
		if err != nil {
			return nil, fmt.Errorf("read pptx %s: %w", path, err)
		}
		lines, err := drawingText(part)
		if err != nil {
			return nil, fmt.Errorf("parse pptx %s slide %d: %w", path, name.index, err)
		}
		text := strings.Join(lines, "\n")
		slides = append(slides, Slide{Index: name.index, Text: text})
		if text != "" {
			all = append(all, text)
		}
	}
	return &PptxTextResult{
		Path:   path,
		Slides: slides,
		Count:  len(slides),
		Text:   strings.Join(all, "\n\n"),
	}, nil
}

func zipPart(r *zip.Reader, name string) ([]byte, error) {
	for _, f := range r.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, err
		}
		defer rc.Close()
		return io.ReadAll(io.LimitReader(rc, maxDocumentSize))
	}
	return nil, fmt.Errorf("missing part %s", name)
}

var slideNameRe = regexp.MustCompile(`^ppt/slides/slide(\d+)\.xml$`)

type slideRef struct {
	path  string
	index int
}

// slideNames lists the slide parts sorted by slide number, not by the zip
// entry order, which is not guaranteed.
func slideNames(r *zip.Reader) []slideRef {
	var refs []slideRef
	for _, f := range r.File {
		m := slideNameRe.FindStringSubmatch(f.Name)
		if m == nil {
			continue
		}
		n, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		refs = append(refs, slideRef{path: f.Name, index: n})
	}
	sort.Slice(refs, func(i, j int) bool { return refs[i].index < refs[j].index })
	return refs
}

// wordParagraphs walks the document XML collecting w:t run text, one entry
// per w:p paragraph. Namespace prefixes are resolved by the decoder, so
// matching is on local names.
func wordParagraphs(data []byte) ([]string, error) {
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	var (
		paragraphs []string
		current    strings.Builder
		inside     bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inside = true
				current.Reset()
			case "t":
				if inside {
					var s string
					if err := dec.DecodeElement(&s, &t); err != nil {
						return nil, err
					}
					current.WriteString(s)
				}
			case "tab":
				if inside {
					current.WriteByte('\t')
				}
			case "br", "cr":
				if inside {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Local == "p" && inside {
				paragraphs = append(paragraphs, current.String())
				inside = false
			}
		}
	}
	return paragraphs, nil
}

// drawingText collects a:t run text from a DrawingML part, one entry per
// a:p paragraph, skipping empty paragraphs.
func drawingText(data []byte) ([]string, error) {
	dec := xml.NewDecoder(strings.NewReader(string(data)))
	var (
		lines   []string
		current strings.Builder
		inside  bool
	)
	for {
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		switch t := tok.(type) {
		case xml.StartElement:
			switch t.Name.Local {
			case "p":
				inside = true
				current.Reset()
			case "t":
				if inside {
					var s string
					if err := dec.DecodeElement(&s, &t); err != nil {
						return nil, err
					}
					current.WriteString(s)
				}
			case "br":
				if inside {
					current.WriteByte('\n')
				}
			}
		case xml.EndElement:
			if t.Name.Local == "p" && inside {
				if line := current.String(); strings.TrimSpace(line) != "" {
					lines = append(lines, line)
				}
				inside = false
			}
		}
	}
	return lines, nil
}
