package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgallion1/docdigest/internal/digest"
	"github.com/dgallion1/docdigest/internal/document"
	"github.com/dgallion1/docdigest/internal/parser"
)

// Worker processes a single digest job.
type Worker struct {
	pipeline *digest.Pipeline
	log      *slog.Logger
	stats    *ProcStats

	maxParallelDocs int
	pdfFallback     bool
}

func NewWorker(p *digest.Pipeline, log *slog.Logger, stats *ProcStats, maxParallelDocs int, pdfFallback bool) *Worker {
	if maxParallelDocs <= 0 {
		maxParallelDocs = 1
	}
	return &Worker{
		pipeline:        p,
		log:             log,
		stats:           stats,
		maxParallelDocs: maxParallelDocs,
		pdfFallback:     pdfFallback,
	}
}

// Process runs the full digest pipeline for a job: parse and score each
// document independently, then merge at the global re-rank barrier. A failure
// on one document becomes an error-marker section and never aborts the run.
func (w *Worker) Process(ctx context.Context, job *Job) {
	log := w.log.With("job_id", job.ID, "persona", job.Role)

	files := job.Files()
	job.SetTotalDocuments(len(files))

	names := make([]string, len(files))
	for i, f := range files {
		names[i] = f.Name
	}
	info := digest.RunInfo{
		Role:      job.Role,
		Task:      job.Task,
		Documents: names,
		Timestamp: time.Now(),
	}

	profile, known := w.pipeline.Registry().Lookup(job.Role)
	if !known {
		// Unknown persona is not a failure: the report simply has empty
		// section and analysis lists.
		log.Warn("unknown persona, producing empty digest")
		report := digest.BuildReport(nil, info)
		job.SetReport(&report)
		job.SetStatus(StatusCompleted, "done")
		return
	}

	job.SetStatus(StatusParsing, "parsing")

	// Per-document segmentation and scoring are independent; fan out with
	// bounded concurrency and collect back into submission order so the
	// stable global sort sees a deterministic sequence.
	results := make([]digest.DocResult, len(files))
	parseErrs := make([]error, len(files))
	sem := make(chan struct{}, w.maxParallelDocs)
	done := make(chan int, len(files))

	for i, f := range files {
		sem <- struct{}{}
		go func(i int, f UploadedFile) {
			defer func() { <-sem }()
			start := time.Now()
			doc := w.parse(f)
			parseErrs[i] = doc.Err
			results[i] = digest.ProcessDocument(doc, profile, job.Task)
			w.stats.Record(time.Since(start).Milliseconds())
			done <- i
		}(i, f)
	}

	job.SetStatus(StatusScoring, "scoring")
	for range files {
		<-done
		job.IncrDocumentsProcessed()
	}

	hadErrors := false
	for i, f := range files {
		if parseErrs[i] != nil {
			job.AddError(fmt.Sprintf("%s: %s", f.Name, parseErrs[i]))
			hadErrors = true
		}
	}

	job.SetStatus(StatusRanking, "ranking")
	report := digest.BuildReport(results, info)
	job.SetSectionsRetained(report.Metadata.TotalSectionsAnalyzed)
	job.SetReport(&report)

	log.Info("digest complete",
		"documents", len(files),
		"sections", report.Metadata.TotalSectionsAnalyzed,
		"analyses", len(report.SubsectionAnalysis),
	)

	if hadErrors {
		job.SetStatus(StatusPartial, "done")
	} else {
		job.SetStatus(StatusCompleted, "done")
	}
}

// parse converts an uploaded file into a Document, carrying parse failures
// in Document.Err so segmentation emits the error-marker section.
func (w *Worker) parse(f UploadedFile) document.Document {
	p, err := parser.ForFile(f.Name)
	if err != nil {
		return document.Document{Name: f.Name, Err: err}
	}
	if pdfParser, ok := p.(*parser.PDFParser); ok {
		pdfParser.FallbackPdftotext = w.pdfFallback
	}
	pages, err := p.Parse(bytes.NewReader(f.Data), f.Name)
	if err != nil {
		return document.Document{Name: f.Name, Err: err}
	}
	return document.Document{Name: f.Name, Pages: pages}
}
