package model

import "time"

// PageStatus represents the terminal state of one link's archive attempt.
type PageStatus string

// Page status constants.
const (
	// StatusArchived means the page was rendered and its PDF written to disk.
	StatusArchived PageStatus = "archived"
	// StatusSkipped means the link was never navigated to (empty slug,
	// robots.txt disallow).
	StatusSkipped PageStatus = "skipped"
	// StatusFailed means navigation, preparation, or rendering failed.
	StatusFailed PageStatus = "failed"
)

// String returns the string representation of the PageStatus.
func (s PageStatus) String() string {
	return string(s)
}

// PageResult records the outcome of archiving a single discovered link.
type PageResult struct {
	// Href is the raw root-relative link as discovered on the entry page.
	Href string `json:"href"`

	// Slug is the filesystem-safe path derived from Href.
	// Empty when slug derivation rejected the link.
	Slug string `json:"slug,omitempty"`

	// OutputPath is the PDF file path, set only when Status is StatusArchived.
	OutputPath string `json:"outputPath,omitempty"`

	// Status is the terminal state of this link.
	Status PageStatus `json:"status"`

	// HTTPStatus is the response status code of the page navigation,
	// zero when navigation never completed.
	HTTPStatus int `json:"httpStatus,omitempty"`

	// Elapsed is how long the load-prepare-render cycle took.
	Elapsed time.Duration `json:"elapsed"`

	// Error is the human-readable cause when Status is not StatusArchived.
	Error string `json:"error,omitempty"`
}

// Archived reports whether the page was successfully written to disk.
func (r *PageResult) Archived() bool {
	return r.Status == StatusArchived
}

// RunReport is the aggregate result of one archive run.
// It is built incrementally by the orchestrator and rendered by the
// report package after the run finishes.
type RunReport struct {
	// EntryURL is the starting page supplied by the operator.
	EntryURL string `json:"entryUrl"`

	// OutDir is the output directory PDFs were written under.
	OutDir string `json:"outDir"`

	// StartedAt is when discovery began.
	StartedAt time.Time `json:"startedAt"`

	// Elapsed is the total run duration.
	Elapsed time.Duration `json:"elapsed"`

	// Discovered is the number of distinct internal links found on the
	// entry page.
	Discovered int `json:"discovered"`

	// Pages holds one result per discovered link, in discovery order.
	Pages []PageResult `json:"pages"`
}

// NewRunReport creates a RunReport for the given entry URL and output directory.
func NewRunReport(entryURL, outDir string) *RunReport {
	return &RunReport{
		EntryURL:  entryURL,
		OutDir:    outDir,
		StartedAt: time.Now(),
	}
}

// Add appends a page result to the report.
func (r *RunReport) Add(result PageResult) {
	r.Pages = append(r.Pages, result)
}

// ArchivedCount returns the number of pages written to disk.
func (r *RunReport) ArchivedCount() int {
	return r.countStatus(StatusArchived)
}

// SkippedCount returns the number of links skipped before navigation.
func (r *RunReport) SkippedCount() int {
	return r.countStatus(StatusSkipped)
}

// FailedCount returns the number of links that failed during archiving.
func (r *RunReport) FailedCount() int {
	return r.countStatus(StatusFailed)
}

// Failures returns the results of links that failed during archiving.
func (r *RunReport) Failures() []PageResult {
	failures := make([]PageResult, 0)
	for _, p := range r.Pages {
		if p.Status == StatusFailed {
			failures = append(failures, p)
		}
	}
	return failures
}

func (r *RunReport) countStatus(status PageStatus) int {
	count := 0
	for _, p := range r.Pages {
		if p.Status == status {
			count++
		}
	}
	return count
}
