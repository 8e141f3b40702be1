package digest

import (
	"strings"
	"testing"
	"time"

	"github.com/dgallion1/docdigest/internal/document"
	"github.com/dgallion1/docdigest/internal/persona"
)

func travelDoc(name string, headers int) document.Document {
	var b strings.Builder
	for i := 0; i < headers; i++ {
		b.WriteString("TRAVEL SECTION\n")
		b.WriteString("Notes on travel budget and itinerary costs for the trip.\n")
	}
	return document.Document{
		Name:  name,
		Pages: []document.Page{{Number: 1, Text: b.String()}},
	}
}

func TestPipeline_Run(t *testing.T) {
	p := New(persona.Builtin())
	docs := []document.Document{travelDoc("south.pdf", 2), travelDoc("north.pdf", 1)}

	report := p.Run(docs, "Travel Planner", "plan a trip on a budget")

	if len(report.ExtractedSections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(report.ExtractedSections))
	}
	if len(report.SubsectionAnalysis) != 3 {
		t.Fatalf("expected 3 analyses, got %d", len(report.SubsectionAnalysis))
	}
	if report.Metadata.Persona != "Travel Planner" {
		t.Errorf("unexpected persona: %q", report.Metadata.Persona)
	}
	if report.Metadata.JobToBeDone != "plan a trip on a budget" {
		t.Errorf("unexpected job: %q", report.Metadata.JobToBeDone)
	}
	if report.Metadata.TotalDocumentsProcessed != 2 {
		t.Errorf("expected 2 documents processed, got %d", report.Metadata.TotalDocumentsProcessed)
	}
	if report.Metadata.TotalSectionsAnalyzed != 3 {
		t.Errorf("expected 3 sections analyzed, got %d", report.Metadata.TotalSectionsAnalyzed)
	}
	if got := report.Metadata.InputDocuments; len(got) != 2 || got[0] != "south.pdf" || got[1] != "north.pdf" {
		t.Errorf("unexpected input documents: %v", got)
	}
}

func TestPipeline_Run_RanksAcrossDocuments(t *testing.T) {
	p := New(persona.Builtin())
	docs := []document.Document{travelDoc("a.pdf", 2), travelDoc("b.pdf", 2)}

	report := p.Run(docs, "Travel Planner", "plan a trip")

	seen := make(map[int]bool)
	for _, s := range report.ExtractedSections {
		seen[s.ImportanceRank] = true
	}
	for r := 1; r <= 4; r++ {
		if !seen[r] {
			t.Errorf("importance_rank %d missing after global re-rank", r)
		}
	}
	for i := 1; i < len(report.ExtractedSections); i++ {
		if report.ExtractedSections[i-1].RelevanceScore < report.ExtractedSections[i].RelevanceScore {
			t.Errorf("section scores not descending at index %d", i)
		}
	}
}

func TestPipeline_Run_UnknownRole(t *testing.T) {
	p := New(persona.Builtin())
	docs := []document.Document{travelDoc("a.pdf", 1)}

	report := p.Run(docs, "Astronaut", "explore space")

	if len(report.ExtractedSections) != 0 {
		t.Errorf("expected no sections for unknown role, got %d", len(report.ExtractedSections))
	}
	if len(report.SubsectionAnalysis) != 0 {
		t.Errorf("expected no analyses for unknown role, got %d", len(report.SubsectionAnalysis))
	}
	if report.Metadata.Persona != "Astronaut" {
		t.Errorf("expected metadata to keep the requested role, got %q", report.Metadata.Persona)
	}
	if len(report.Metadata.InputDocuments) != 1 {
		t.Errorf("expected input documents recorded, got %v", report.Metadata.InputDocuments)
	}
}

func TestPipeline_Run_FailedDocumentDoesNotAbortSiblings(t *testing.T) {
	p := New(persona.Builtin())
	docs := []document.Document{
		{Name: "broken.pdf", Err: errFake("damaged xref")},
		travelDoc("good.pdf", 1),
	}

	report := p.Run(docs, "Travel Planner", "plan a trip")

	if len(report.ExtractedSections) != 1 {
		t.Fatalf("expected the healthy document's section, got %d", len(report.ExtractedSections))
	}
	if report.ExtractedSections[0].Document != "good.pdf" {
		t.Errorf("unexpected section source: %q", report.ExtractedSections[0].Document)
	}
	if report.Metadata.TotalDocumentsProcessed != 2 {
		t.Errorf("expected both documents counted, got %d", report.Metadata.TotalDocumentsProcessed)
	}
}

type errFake string

func (e errFake) Error() string { return string(e) }

func TestBuildReport_CapsOutputLists(t *testing.T) {
	var results []DocResult
	for d := 0; d < 3; d++ {
		r := DocResult{Name: "doc.pdf"}
		for s := 0; s < 10; s++ {
			r.Sections = append(r.Sections, document.ScoredSection{
				Document:       r.Name,
				Section:        document.Section{Title: "S", PageNumber: 1},
				RelevanceScore: 0.5,
			})
			r.Analyses = append(r.Analyses, document.SubsectionAnalysis{
				Document:       r.Name,
				RefinedText:    "text",
				PageNumber:     1,
				RelevanceScore: 0.5,
			})
		}
		results = append(results, r)
	}

	report := BuildReport(results, RunInfo{Role: "x", Timestamp: time.Now()})

	if len(report.ExtractedSections) != MaxSections {
		t.Errorf("expected %d sections, got %d", MaxSections, len(report.ExtractedSections))
	}
	if len(report.SubsectionAnalysis) != MaxAnalyses {
		t.Errorf("expected %d analyses, got %d", MaxAnalyses, len(report.SubsectionAnalysis))
	}
	if report.Metadata.TotalSectionsAnalyzed != 30 {
		t.Errorf("expected uncapped analyzed count 30, got %d", report.Metadata.TotalSectionsAnalyzed)
	}
}

func TestBuildReport_AnalysesSortedByScore(t *testing.T) {
	results := []DocResult{{
		Name: "doc.pdf",
		Analyses: []document.SubsectionAnalysis{
			{Document: "doc.pdf", RefinedText: "low", RelevanceScore: 0.2},
			{Document: "doc.pdf", RefinedText: "high", RelevanceScore: 0.9},
			{Document: "doc.pdf", RefinedText: "mid", RelevanceScore: 0.5},
		},
	}}

	report := BuildReport(results, RunInfo{Role: "x", Timestamp: time.Now()})

	want := []string{"high", "mid", "low"}
	for i, w := range want {
		if report.SubsectionAnalysis[i].RefinedText != w {
			t.Errorf("position %d: expected %q, got %q", i, w, report.SubsectionAnalysis[i].RefinedText)
		}
	}
}

func TestBuildReport_RoundsScores(t *testing.T) {
	results := []DocResult{{
		Name: "doc.pdf",
		Sections: []document.ScoredSection{{
			Document:       "doc.pdf",
			Section:        document.Section{Title: "S"},
			RelevanceScore: 0.123456,
		}},
	}}

	report := BuildReport(results, RunInfo{Role: "x", Timestamp: time.Now()})

	if got := report.ExtractedSections[0].RelevanceScore; got != 0.123 {
		t.Errorf("expected score rounded to 0.123, got %v", got)
	}
}

func TestBuildReport_TimestampFormat(t *testing.T) {
	ts := time.Date(2025, 7, 28, 14, 30, 5, 0, time.UTC)
	report := BuildReport(nil, RunInfo{Role: "x", Timestamp: ts})

	if got := report.Metadata.ProcessingTimestamp; got != "2025-07-28 14:30:05" {
		t.Errorf("unexpected timestamp format: %q", got)
	}
}

func TestBuildReport_EmptyRun(t *testing.T) {
	report := BuildReport(nil, RunInfo{Role: "x", Timestamp: time.Now()})

	if report.ExtractedSections == nil || len(report.ExtractedSections) != 0 {
		t.Errorf("expected empty non-nil sections, got %v", report.ExtractedSections)
	}
	if report.SubsectionAnalysis == nil || len(report.SubsectionAnalysis) != 0 {
		t.Errorf("expected empty non-nil analyses, got %v", report.SubsectionAnalysis)
	}
	if report.Metadata.InputDocuments == nil {
		t.Error("expected empty non-nil input documents")
	}
}

func TestPreview(t *testing.T) {
	short := "brief content"
	if got := Preview(short); got != short {
		t.Errorf("expected short content unchanged, got %q", got)
	}

	long := strings.Repeat("x", PreviewChars+50)
	got := Preview(long)
	if len([]rune(got)) != PreviewChars+len("...") {
		t.Errorf("unexpected preview length %d", len([]rune(got)))
	}
	if !strings.HasSuffix(got, "...") {
		t.Errorf("expected ellipsis suffix, got %q", got[len(got)-10:])
	}

	exact := strings.Repeat("y", PreviewChars)
	if got := Preview(exact); got != exact {
		t.Error("expected content at the threshold unchanged")
	}
}

func TestProcessDocument(t *testing.T) {
	profile, _ := persona.Builtin().Lookup("Travel Planner")
	res := ProcessDocument(travelDoc("guide.pdf", 3), profile, "plan a trip")

	if res.Name != "guide.pdf" {
		t.Errorf("unexpected name: %q", res.Name)
	}
	if len(res.Sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(res.Sections))
	}
	if len(res.Analyses) != 3 {
		t.Fatalf("expected 3 analyses, got %d", len(res.Analyses))
	}
	for i, s := range res.Sections {
		if s.ImportanceRank != i+1 {
			t.Errorf("section %d: expected provisional rank %d, got %d", i, i+1, s.ImportanceRank)
		}
		if s.Document != "guide.pdf" {
			t.Errorf("section %d: unexpected document %q", i, s.Document)
		}
	}
}
