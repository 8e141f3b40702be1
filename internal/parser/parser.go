package parser

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/dgallion1/docdigest/internal/document"
)

// Parser converts raw document bytes into ordered pages of plain text. The
// segmenter does its own header detection over raw lines, so parsers flatten
// any structure they see into text, emitting headings as their own lines.
type Parser interface {
	Parse(r io.Reader, filename string) ([]document.Page, error)
}

// SupportedExtensions lists file extensions this service can handle.
var SupportedExtensions = map[string]bool{
	".txt":  true,
	".md":   true,
	".csv":  true,
	".html": true,
	".htm":  true,
	".pdf":  true,
	".docx": true,
}

// ForFile returns the appropriate parser for a filename.
func ForFile(filename string) (Parser, error) {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".txt":
		return &TextParser{}, nil
	case ".md", ".markdown":
		return &MarkdownParser{}, nil
	case ".csv":
		return &CSVParser{}, nil
	case ".html", ".htm":
		return &HTMLParser{}, nil
	case ".pdf":
		return &PDFParser{}, nil
	case ".docx":
		return &DOCXParser{}, nil
	default:
		return nil, fmt.Errorf("unsupported file extension: %s", ext)
	}
}

// IsSupportedExtension checks if a file extension is supported.
func IsSupportedExtension(filename string) bool {
	ext := strings.ToLower(filepath.Ext(filename))
	return SupportedExtensions[ext]
}

// Load parses a named document, converting a parse failure into a Document
// with Err set so a digest run continues with the sibling documents.
func Load(r io.Reader, filename string) document.Document {
	p, err := ForFile(filename)
	if err != nil {
		return document.Document{Name: filename, Err: err}
	}
	pages, err := p.Parse(r, filename)
	if err != nil {
		return document.Document{Name: filename, Err: err}
	}
	return document.Document{Name: filename, Pages: pages}
}
