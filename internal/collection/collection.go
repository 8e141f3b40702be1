// Package collection implements batch processing of document collections:
// directories holding an input descriptor (persona, task, document list) and
// a PDFs folder, producing a digest report JSON next to the input.
package collection

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/dgallion1/docdigest/internal/digest"
	"github.com/dgallion1/docdigest/internal/document"
	"github.com/dgallion1/docdigest/internal/parser"
)

const (
	// InputFilename is the per-collection run descriptor.
	InputFilename = "challenge1b_input.json"
	// OutputFilename is the report written next to the descriptor.
	OutputFilename = "challenge1b_output.json"
	// PDFDirName holds the collection's source documents.
	PDFDirName = "PDFs"
)

// Input is the on-disk run descriptor for one collection.
type Input struct {
	ChallengeInfo struct {
		ChallengeID  string `json:"challenge_id"`
		TestCaseName string `json:"test_case_name"`
	} `json:"challenge_info"`
	Documents []struct {
		Filename string `json:"filename"`
		Title    string `json:"title"`
	} `json:"documents"`
	Persona struct {
		Role string `json:"role"`
	} `json:"persona"`
	JobToBeDone struct {
		Task string `json:"task"`
	} `json:"job_to_be_done"`
}

// Processor runs the digest pipeline over collection directories.
type Processor struct {
	pipeline *digest.Pipeline
	log      *slog.Logger

	// OnDocument, if set, is called with each document name before it is
	// processed. Used by the CLI for progress reporting.
	OnDocument func(name string)
}

// NewProcessor returns a processor backed by the given pipeline.
func NewProcessor(p *digest.Pipeline, log *slog.Logger) *Processor {
	return &Processor{pipeline: p, log: log}
}

// Discover returns the collection directories under base, sorted by name.
// A collection directory is any directory whose name starts with
// "Collection".
func Discover(base string) ([]string, error) {
	entries, err := os.ReadDir(base)
	if err != nil {
		return nil, fmt.Errorf("read base dir: %w", err)
	}
	var dirs []string
	for _, e := range entries {
		if e.IsDir() && strings.HasPrefix(e.Name(), "Collection") {
			dirs = append(dirs, filepath.Join(base, e.Name()))
		}
	}
	sort.Strings(dirs)
	return dirs, nil
}

// ReadInput loads a collection's run descriptor.
func ReadInput(dir string) (*Input, error) {
	data, err := os.ReadFile(filepath.Join(dir, InputFilename))
	if err != nil {
		return nil, fmt.Errorf("read input descriptor: %w", err)
	}
	var in Input
	if err := json.Unmarshal(data, &in); err != nil {
		return nil, fmt.Errorf("parse input descriptor: %w", err)
	}
	return &in, nil
}

// Process digests one collection directory and writes its report. Failures
// on individual documents become error-marker sections; the run continues.
func (p *Processor) Process(dir string) (*digest.Report, error) {
	log := p.log.With("collection", filepath.Base(dir))

	in, err := ReadInput(dir)
	if err != nil {
		return nil, err
	}
	log.Info("processing collection", "persona", in.Persona.Role, "task", in.JobToBeDone.Task)

	pdfDir := filepath.Join(dir, PDFDirName)
	pdfPaths, err := filepath.Glob(filepath.Join(pdfDir, "*.pdf"))
	if err != nil {
		return nil, fmt.Errorf("glob pdfs: %w", err)
	}
	sort.Strings(pdfPaths)
	log.Info("found documents", "count", len(pdfPaths))

	docs := make([]document.Document, 0, len(pdfPaths))
	for _, path := range pdfPaths {
		name := filepath.Base(path)
		if p.OnDocument != nil {
			p.OnDocument(name)
		}
		docs = append(docs, loadPDF(path, name))
	}

	report := p.run(docs, in)

	if err := WriteReport(filepath.Join(dir, OutputFilename), report); err != nil {
		return nil, err
	}
	log.Info("report written",
		"sections", report.Metadata.TotalSectionsAnalyzed,
		"extracted", len(report.ExtractedSections),
		"analyses", len(report.SubsectionAnalysis),
	)
	return report, nil
}

// ProcessAll digests every collection under base. A failed collection is
// logged and skipped; siblings still run.
func (p *Processor) ProcessAll(base string) error {
	dirs, err := Discover(base)
	if err != nil {
		return err
	}
	if len(dirs) == 0 {
		return fmt.Errorf("no collection directories found under %s", base)
	}
	for _, dir := range dirs {
		if _, err := p.Process(dir); err != nil {
			p.log.Error("collection failed", "dir", dir, "error", err)
		}
	}
	return nil
}

func (p *Processor) run(docs []document.Document, in *Input) *digest.Report {
	names := make([]string, len(docs))
	for i, d := range docs {
		names[i] = d.Name
	}

	info := digest.RunInfo{
		ChallengeID:  in.ChallengeInfo.ChallengeID,
		TestCaseName: in.ChallengeInfo.TestCaseName,
		Role:         in.Persona.Role,
		Task:         in.JobToBeDone.Task,
		Documents:    names,
		Timestamp:    time.Now(),
	}

	profile, ok := p.pipeline.Registry().Lookup(in.Persona.Role)
	if !ok {
		p.log.Warn("unknown persona, producing empty digest", "persona", in.Persona.Role)
		report := digest.BuildReport(nil, info)
		return &report
	}

	results := make([]digest.DocResult, 0, len(docs))
	for _, doc := range docs {
		results = append(results, digest.ProcessDocument(doc, profile, in.JobToBeDone.Task))
	}
	report := digest.BuildReport(results, info)
	return &report
}

// WriteReport serializes a report as pretty-printed UTF-8 JSON.
func WriteReport(path string, report *digest.Report) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create report file: %w", err)
	}
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(report); err != nil {
		f.Close()
		return fmt.Errorf("write report: %w", err)
	}
	return f.Close()
}

func loadPDF(path, name string) document.Document {
	f, err := os.Open(path)
	if err != nil {
		return document.Document{Name: name, Err: err}
	}
	defer f.Close()

	p := &parser.PDFParser{FallbackPdftotext: true}
	pages, err := p.Parse(f, name)
	if err != nil {
		return document.Document{Name: name, Err: err}
	}
	return document.Document{Name: name, Pages: pages}
}
