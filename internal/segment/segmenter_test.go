package segment

import (
	"errors"
	"strings"
	"testing"

	"github.com/dgallion1/docdigest/internal/document"
)

func TestIsHeader_Rules(t *testing.T) {
	cases := []struct {
		line string
		want bool
	}{
		// All caps.
		{"BUDGET PLANNING", true},
		{"INTRODUCTION", true},
		{"AB", false}, // below min length
		// Numbered openers.
		{"1. Getting Started", true},
		{"12 Packing Tips", true},
		{"1. lowercase start", false},
		// Title Case.
		{"Packing Checklist", true},
		{"Packing Checklist:", true},
		{"Packing checklist", false},
		// Bullets with caps.
		{"- Bring sunscreen", true},
		{"* Book Early", true},
		{"• Confirm Reservations", true},
		{"- bring sunscreen", false},
		// Single word with colon.
		{"Ingredients:", true},
		{"note:", true},
		// Plain body text.
		{"Plan a trip with friends to France on a budget.", false},
		{"the south of france has great beaches", false},
	}

	for _, c := range cases {
		if got := IsHeader(c.line); got != c.want {
			t.Errorf("IsHeader(%q) = %v, want %v", c.line, got, c.want)
		}
	}
}

func TestIsHeader_LengthBounds(t *testing.T) {
	if IsHeader("AB") {
		t.Error("expected 2-char line to be rejected")
	}
	long := strings.Repeat("A", 101)
	if IsHeader(long) {
		t.Error("expected 101-char line to be rejected")
	}
	exactly := strings.Repeat("A", 100)
	if !IsHeader(exactly) {
		t.Error("expected 100-char all-caps line to be accepted")
	}
}

func TestSegment_HeadersSplitSections(t *testing.T) {
	pages := []document.Page{
		{Number: 1, Text: "BUDGET PLANNING\nPlan a trip with friends to France on a budget."},
		{Number: 2, Text: "PACKING\nBring layers for the coast.\nAnd comfortable shoes."},
	}
	sections := Segment(pages)

	if len(sections) != 2 {
		t.Fatalf("expected 2 sections, got %d", len(sections))
	}
	if sections[0].Title != "BUDGET PLANNING" {
		t.Errorf("expected title %q, got %q", "BUDGET PLANNING", sections[0].Title)
	}
	if sections[0].Content != "Plan a trip with friends to France on a budget." {
		t.Errorf("unexpected content: %q", sections[0].Content)
	}
	if sections[0].PageNumber != 1 {
		t.Errorf("expected page 1, got %d", sections[0].PageNumber)
	}
	if sections[0].WordCount != 10 {
		t.Errorf("expected word count 10, got %d", sections[0].WordCount)
	}
	if sections[1].Title != "PACKING" || sections[1].PageNumber != 2 {
		t.Errorf("unexpected second section: %+v", sections[1])
	}
	if sections[1].Content != "Bring layers for the coast.\nAnd comfortable shoes." {
		t.Errorf("unexpected second content: %q", sections[1].Content)
	}
}

func TestSegment_HeaderPageIsWhereHeaderOccurred(t *testing.T) {
	// Section opens on page 1, body continues onto page 2.
	pages := []document.Page{
		{Number: 1, Text: "ITINERARY\nDay one in Nice."},
		{Number: 2, Text: "Day two in Marseille."},
	}
	sections := Segment(pages)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].PageNumber != 1 {
		t.Errorf("expected page 1 (where the header occurred), got %d", sections[0].PageNumber)
	}
	if sections[0].Content != "Day one in Nice.\nDay two in Marseille." {
		t.Errorf("unexpected content: %q", sections[0].Content)
	}
}

func TestSegment_NoHeadersYieldsDocumentContent(t *testing.T) {
	pages := []document.Page{
		{Number: 1, Text: "just some lowercase text"},
		{Number: 2, Text: "and a second page of it"},
	}
	sections := Segment(pages)
	if len(sections) != 1 {
		t.Fatalf("expected 1 fallback section, got %d", len(sections))
	}
	if sections[0].Title != "Document Content" {
		t.Errorf("expected title %q, got %q", "Document Content", sections[0].Title)
	}
	if sections[0].PageNumber != 1 {
		t.Errorf("expected page 1, got %d", sections[0].PageNumber)
	}
	if !strings.Contains(sections[0].Content, "just some lowercase text") ||
		!strings.Contains(sections[0].Content, "and a second page of it") {
		t.Errorf("fallback content missing page text: %q", sections[0].Content)
	}
}

func TestSegment_EmptyDocumentYieldsNothing(t *testing.T) {
	if got := Segment(nil); len(got) != 0 {
		t.Errorf("expected no sections for nil pages, got %d", len(got))
	}
	pages := []document.Page{{Number: 1, Text: "   \n  \n"}}
	if got := Segment(pages); len(got) != 0 {
		t.Errorf("expected no sections for blank pages, got %d", len(got))
	}
}

func TestSegment_TrailingBodylessHeaderDropped(t *testing.T) {
	pages := []document.Page{
		{Number: 1, Text: "OVERVIEW\nsome body text here\nNOTES"},
	}
	sections := Segment(pages)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Title != "OVERVIEW" {
		t.Errorf("expected only OVERVIEW section, got %q", sections[0].Title)
	}
}

func TestSegment_PreambleBeforeFirstHeaderDropped(t *testing.T) {
	// Body lines before any header belong to no section; once a header
	// matches, the fallback doesn't apply either.
	pages := []document.Page{
		{Number: 1, Text: "stray preamble line\nDETAILS\nactual body"},
	}
	sections := Segment(pages)
	if len(sections) != 1 {
		t.Fatalf("expected 1 section, got %d", len(sections))
	}
	if sections[0].Title != "DETAILS" || sections[0].Content != "actual body" {
		t.Errorf("unexpected section: %+v", sections[0])
	}
}

func TestErrorSection(t *testing.T) {
	sec := ErrorSection(errors.New("pdf is encrypted"))
	if sec.Title != "Error Processing Document" {
		t.Errorf("unexpected title %q", sec.Title)
	}
	if !strings.Contains(sec.Content, "pdf is encrypted") {
		t.Errorf("expected error message preserved in content, got %q", sec.Content)
	}
	if sec.WordCount != 0 {
		t.Errorf("expected word count 0, got %d", sec.WordCount)
	}
	if sec.PageNumber != 1 {
		t.Errorf("expected page 1, got %d", sec.PageNumber)
	}
}

func TestSections_RoutesExtractionFailure(t *testing.T) {
	doc := document.Document{
		Name: "broken.pdf",
		Err:  errors.New("truncated xref table"),
		// Pages must be ignored when Err is set.
		Pages: []document.Page{{Number: 1, Text: "SHOULD NOT APPEAR\nbody"}},
	}
	sections := Sections(doc)
	if len(sections) != 1 {
		t.Fatalf("expected 1 error section, got %d", len(sections))
	}
	if sections[0].Title != "Error Processing Document" {
		t.Errorf("unexpected title %q", sections[0].Title)
	}
}
