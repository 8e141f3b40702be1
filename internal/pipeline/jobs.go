package pipeline

import (
	"sync"
	"time"

	"github.com/dgallion1/docdigest/internal/digest"
)

// JobStatus represents the state of a digest job.
type JobStatus string

const (
	StatusQueued    JobStatus = "queued"
	StatusParsing   JobStatus = "parsing"
	StatusScoring   JobStatus = "scoring"
	StatusRanking   JobStatus = "ranking"
	StatusCompleted JobStatus = "completed"
	StatusFailed    JobStatus = "failed"
	StatusPartial   JobStatus = "partial"
)

// UploadedFile is one document submitted with a job, held in memory until
// the job is processed.
type UploadedFile struct {
	Name string
	Data []byte
}

// Job tracks the state of a single digest run.
type Job struct {
	mu sync.Mutex

	ID   string `json:"job_id"`
	Role string `json:"persona"`
	Task string `json:"job_to_be_done"`

	Status JobStatus `json:"status"`
	Phase  string    `json:"phase"`

	Progress Progress `json:"progress"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Internal: not serialized.
	files  []UploadedFile
	report *digest.Report
	errors []string
}

// Progress tracks processing progress.
type Progress struct {
	TotalDocuments     int      `json:"total_documents"`
	DocumentsProcessed int      `json:"documents_processed"`
	SectionsRetained   int      `json:"sections_retained"`
	Errors             []string `json:"errors"`
}

// JobStore is a thread-safe in-memory job registry with TTL eviction.
type JobStore struct {
	mu   sync.Mutex
	jobs map[string]*Job
	ttl  time.Duration
}

func NewJobStore(ttl time.Duration) *JobStore {
	return &JobStore{
		jobs: make(map[string]*Job),
		ttl:  ttl,
	}
}

func (s *JobStore) Put(job *Job) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *JobStore) Get(id string) *Job {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.jobs[id]
}

// Cleanup removes expired jobs.
func (s *JobStore) Cleanup() {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, job := range s.jobs {
		if now.Sub(job.UpdatedAt) > s.ttl {
			delete(s.jobs, id)
		}
	}
}

// SetStatus updates job status atomically.
func (j *Job) SetStatus(status JobStatus, phase string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Status = status
	j.Phase = phase
	j.UpdatedAt = time.Now()
}

// AddError records an error.
func (j *Job) AddError(err string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.errors = append(j.errors, err)
	j.Progress.Errors = j.errors
	j.UpdatedAt = time.Now()
}

// IncrDocumentsProcessed atomically increments the processed-document count.
func (j *Job) IncrDocumentsProcessed() {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.DocumentsProcessed++
	j.UpdatedAt = time.Now()
}

// SetTotalDocuments records the document count for progress reporting.
func (j *Job) SetTotalDocuments(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.TotalDocuments = n
	j.UpdatedAt = time.Now()
}

// SetSectionsRetained records how many sections survived the relevance filter.
func (j *Job) SetSectionsRetained(n int) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.Progress.SectionsRetained = n
	j.UpdatedAt = time.Now()
}

// SetFiles attaches the uploaded documents to the job.
func (j *Job) SetFiles(files []UploadedFile) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.files = files
}

// Files returns the uploaded documents.
func (j *Job) Files() []UploadedFile {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.files
}

// SetReport stores the finished report and releases the uploaded file data.
func (j *Job) SetReport(r *digest.Report) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.report = r
	j.files = nil
	j.UpdatedAt = time.Now()
}

// Report returns the finished report, or nil if the job is not done.
func (j *Job) Report() *digest.Report {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.report
}

// JobSnapshot is a read-only, JSON-safe copy of job state.
type JobSnapshot struct {
	ID       string    `json:"job_id"`
	Role     string    `json:"persona"`
	Task     string    `json:"job_to_be_done"`
	Status   JobStatus `json:"status"`
	Phase    string    `json:"phase"`
	Progress Progress  `json:"progress"`
}

// Snapshot returns a JSON-safe copy of the job state.
func (j *Job) Snapshot() JobSnapshot {
	j.mu.Lock()
	defer j.mu.Unlock()
	errs := j.Progress.Errors
	if errs == nil {
		errs = []string{}
	}
	return JobSnapshot{
		ID:     j.ID,
		Role:   j.Role,
		Task:   j.Task,
		Status: j.Status,
		Phase:  j.Phase,
		Progress: Progress{
			TotalDocuments:     j.Progress.TotalDocuments,
			DocumentsProcessed: j.Progress.DocumentsProcessed,
			SectionsRetained:   j.Progress.SectionsRetained,
			Errors:             errs,
		},
	}
}
