// Package segment splits a document's raw page text into an ordered sequence
// of titled sections using line-level header heuristics.
package segment

import (
	"strings"

	"github.com/dgallion1/docdigest/internal/document"
)

// Title of the synthetic section produced when no header line matched.
const fallbackTitle = "Document Content"

// Title of the synthetic section produced for a failed extraction.
const errorTitle = "Error Processing Document"

// Segment splits pages into sections. Each non-blank line is classified as a
// header or body line; headers close the current section and open a new one.
// Headers with no accumulated body lines do not emit a section. A document
// with no matching header but non-empty text yields one "Document Content"
// section spanning the concatenated text; an empty document yields nothing.
func Segment(pages []document.Page) []document.Section {
	var sections []document.Section

	var fullText strings.Builder
	var currentTitle string
	var currentPage int
	var body []string

	flush := func() {
		if currentTitle == "" || len(body) == 0 {
			return
		}
		content := strings.Join(body, "\n")
		sections = append(sections, document.Section{
			Title:      currentTitle,
			Content:    content,
			PageNumber: currentPage,
			WordCount:  document.CountWords(content),
		})
	}

	for _, page := range pages {
		fullText.WriteString(page.Text)
		fullText.WriteString("\n")

		for _, line := range strings.Split(page.Text, "\n") {
			line = strings.TrimSpace(line)
			if line == "" {
				continue
			}
			if IsHeader(line) {
				flush()
				currentTitle = line
				currentPage = page.Number
				body = body[:0]
			} else {
				body = append(body, line)
			}
		}
	}
	flush()

	if len(sections) == 0 {
		if text := strings.TrimSpace(fullText.String()); text != "" {
			sections = append(sections, document.Section{
				Title:      fallbackTitle,
				Content:    text,
				PageNumber: 1,
				WordCount:  document.CountWords(text),
			})
		}
	}

	return sections
}

// ErrorSection builds the single marker section emitted for a document whose
// upstream extraction failed. The error message is preserved in the content
// so ranking and refinement see normal data shapes.
func ErrorSection(err error) document.Section {
	return document.Section{
		Title:      errorTitle,
		Content:    "Could not process document: " + err.Error(),
		PageNumber: 1,
		WordCount:  0,
	}
}

// Sections returns the section sequence for a document, routing extraction
// failures through ErrorSection.
func Sections(doc document.Document) []document.Section {
	if doc.Err != nil {
		return []document.Section{ErrorSection(doc.Err)}
	}
	return Segment(doc.Pages)
}
