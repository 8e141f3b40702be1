package digest

import (
	"math"
	"sort"
	"time"

	"github.com/dgallion1/docdigest/internal/document"
	"github.com/dgallion1/docdigest/internal/rank"
)

// External output caps. These are part of the run's output contract and must
// not change without coordinating with downstream consumers.
const (
	MaxSections     = 20  // extracted_sections entries per report
	MaxAnalyses     = 15  // subsection_analysis entries per report
	PreviewChars    = 200 // content_preview truncation threshold
	previewEllipsis = "..."
)

// SectionRecord is one serialized extracted section.
type SectionRecord struct {
	Document       string  `json:"document"`
	SectionTitle   string  `json:"section_title"`
	ImportanceRank int     `json:"importance_rank"`
	PageNumber     int     `json:"page_number"`
	RelevanceScore float64 `json:"relevance_score"`
	ContentPreview string  `json:"content_preview"`
}

// AnalysisRecord is one serialized subsection analysis.
type AnalysisRecord struct {
	Document       string   `json:"document"`
	RefinedText    string   `json:"refined_text"`
	PageNumber     int      `json:"page_number"`
	RelevanceScore float64  `json:"relevance_score"`
	KeyConcepts    []string `json:"key_concepts"`
}

// Metadata describes the run that produced a report.
type Metadata struct {
	ChallengeID             string   `json:"challenge_id,omitempty"`
	TestCaseName            string   `json:"test_case_name,omitempty"`
	InputDocuments          []string `json:"input_documents"`
	Persona                 string   `json:"persona"`
	JobToBeDone             string   `json:"job_to_be_done"`
	ProcessingTimestamp     string   `json:"processing_timestamp"`
	TotalSectionsAnalyzed   int      `json:"total_sections_analyzed"`
	TotalDocumentsProcessed int      `json:"total_documents_processed"`
}

// Report is the full serialized output of one run.
type Report struct {
	Metadata           Metadata         `json:"metadata"`
	ExtractedSections  []SectionRecord  `json:"extracted_sections"`
	SubsectionAnalysis []AnalysisRecord `json:"subsection_analysis"`
}

// RunInfo carries run identity into BuildReport.
type RunInfo struct {
	ChallengeID  string
	TestCaseName string
	Role         string
	Task         string
	Documents    []string
	Timestamp    time.Time
}

// BuildReport is the global re-rank barrier: it concatenates every document's
// retained sections in discovery order, reassigns dense importance ranks over
// the combined set, and serializes the capped output lists. Per-document
// provisional ranks are discarded here.
func BuildReport(results []DocResult, info RunInfo) Report {
	var all []document.ScoredSection
	var analyses []document.SubsectionAnalysis
	for _, r := range results {
		all = append(all, r.Sections...)
		analyses = append(analyses, r.Analyses...)
	}

	ranked := rank.RankGlobal(all)

	sections := make([]SectionRecord, 0, min(len(ranked), MaxSections))
	for _, sec := range ranked[:min(len(ranked), MaxSections)] {
		sections = append(sections, SectionRecord{
			Document:       sec.Document,
			SectionTitle:   sec.Title,
			ImportanceRank: sec.ImportanceRank,
			PageNumber:     sec.PageNumber,
			RelevanceScore: round3(sec.RelevanceScore),
			ContentPreview: Preview(sec.Content),
		})
	}

	// Analyses keep their source section's score; stable sort so ties stay
	// in accumulation order.
	sorted := make([]document.SubsectionAnalysis, len(analyses))
	copy(sorted, analyses)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].RelevanceScore > sorted[j].RelevanceScore
	})

	analysisRecords := make([]AnalysisRecord, 0, min(len(sorted), MaxAnalyses))
	for _, a := range sorted[:min(len(sorted), MaxAnalyses)] {
		analysisRecords = append(analysisRecords, AnalysisRecord{
			Document:       a.Document,
			RefinedText:    a.RefinedText,
			PageNumber:     a.PageNumber,
			RelevanceScore: round3(a.RelevanceScore),
			KeyConcepts:    a.KeyConcepts,
		})
	}

	docs := info.Documents
	if docs == nil {
		docs = []string{}
	}

	return Report{
		Metadata: Metadata{
			ChallengeID:             info.ChallengeID,
			TestCaseName:            info.TestCaseName,
			InputDocuments:          docs,
			Persona:                 info.Role,
			JobToBeDone:             info.Task,
			ProcessingTimestamp:     info.Timestamp.Format("2006-01-02 15:04:05"),
			TotalSectionsAnalyzed:   len(ranked),
			TotalDocumentsProcessed: len(docs),
		},
		ExtractedSections:  sections,
		SubsectionAnalysis: analysisRecords,
	}
}

// Preview truncates content to the preview threshold, marking truncation
// with a trailing ellipsis.
func Preview(content string) string {
	runes := []rune(content)
	if len(runes) <= PreviewChars {
		return content
	}
	return string(runes[:PreviewChars]) + previewEllipsis
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
