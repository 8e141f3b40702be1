package document

import "strings"

// Page is one page of raw extracted text from a source document.
type Page struct {
	Number int    // 1-based page number
	Text   string // raw page text, lines separated by \n
}

// Document is the unit of input to the digest pipeline: a named, ordered
// sequence of pages. Err carries an upstream extraction failure; when set,
// Pages is ignored and the document yields a single error-marker section.
type Document struct {
	Name  string
	Pages []Page
	Err   error
}

// Section is a titled span of a document's text produced by header-based
// segmentation.
type Section struct {
	Title      string
	Content    string // body lines joined with \n
	PageNumber int    // page on which the section header occurred
	WordCount  int    // whitespace-token count of Content
}

// ScoredSection is a Section scored against a persona profile and task.
// ImportanceRank is assigned only by the global cross-document re-rank;
// until then it holds the provisional per-document rank.
type ScoredSection struct {
	Section
	Document       string
	RelevanceScore float64
	ImportanceRank int
}

// SubsectionAnalysis is the condensed view of a top-ranked section.
type SubsectionAnalysis struct {
	Document       string
	RefinedText    string
	PageNumber     int
	RelevanceScore float64
	KeyConcepts    []string
}

// CountWords returns the whitespace-token count of s.
func CountWords(s string) int {
	return len(strings.Fields(s))
}
