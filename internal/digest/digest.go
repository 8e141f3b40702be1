// Package digest runs the full persona-ranking pipeline over a set of
// documents: segmentation, relevance scoring, per-document ranking and
// refinement, then the global cross-document re-rank and report assembly.
package digest

import (
	"time"

	"github.com/dgallion1/docdigest/internal/document"
	"github.com/dgallion1/docdigest/internal/persona"
	"github.com/dgallion1/docdigest/internal/rank"
	"github.com/dgallion1/docdigest/internal/refine"
	"github.com/dgallion1/docdigest/internal/segment"
)

// DocResult holds one document's contribution to a run: its retained scored
// sections (in provisional rank order) and the analyses of its top sections.
type DocResult struct {
	Name     string
	Sections []document.ScoredSection
	Analyses []document.SubsectionAnalysis
}

// ProcessDocument runs segmentation, scoring, ranking, and refinement for a
// single document. It is independent of every other document in the run and
// safe to call from parallel workers; only BuildReport requires all results.
func ProcessDocument(doc document.Document, p persona.Profile, task string) DocResult {
	sections := segment.Sections(doc)
	scored := rank.ScoreSections(doc.Name, sections, p, task)
	return DocResult{
		Name:     doc.Name,
		Sections: scored,
		Analyses: refine.Analyze(scored, p, task),
	}
}

// Pipeline ties the pipeline stages to an injected persona registry.
type Pipeline struct {
	registry *persona.Registry
}

// New returns a pipeline using the given registry.
func New(registry *persona.Registry) *Pipeline {
	return &Pipeline{registry: registry}
}

// Registry exposes the pipeline's persona registry.
func (p *Pipeline) Registry() *persona.Registry {
	return p.registry
}

// Run processes every document sequentially and assembles the run report.
// An unknown role yields a report with empty section and analysis lists but
// intact metadata; it is not an error.
func (p *Pipeline) Run(docs []document.Document, role, task string) Report {
	names := make([]string, len(docs))
	for i, doc := range docs {
		names[i] = doc.Name
	}

	profile, ok := p.registry.Lookup(role)
	if !ok {
		return BuildReport(nil, RunInfo{
			Role:      role,
			Task:      task,
			Documents: names,
			Timestamp: time.Now(),
		})
	}

	results := make([]DocResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, ProcessDocument(doc, profile, task))
	}

	return BuildReport(results, RunInfo{
		Role:      role,
		Task:      task,
		Documents: names,
		Timestamp: time.Now(),
	})
}
