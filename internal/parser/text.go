package parser

import (
	"bufio"
	"io"
	"strings"

	"github.com/dgallion1/docdigest/internal/document"
)

// TextParser handles plain text files. The whole file becomes page 1, lines
// preserved as-is.
type TextParser struct{}

func (p *TextParser) Parse(r io.Reader, filename string) ([]document.Page, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	var lines []string
	for scanner.Scan() {
		lines = append(lines, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, err
	}

	text := strings.TrimSpace(strings.Join(lines, "\n"))
	if text == "" {
		return nil, nil
	}
	return []document.Page{{Number: 1, Text: text}}, nil
}
