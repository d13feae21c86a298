package ansiquip

import "fmt"

// FailureReason classifies why a document in the batch was not updated.
type FailureReason int

const (
	// ReasonReferenceUnparseable: the supplied URL did not resolve to a
	// document reference. No fetch was attempted.
	ReasonReferenceUnparseable FailureReason = iota

	// ReasonFetchFailed: the document HTML could not be retrieved.
	ReasonFetchFailed

	// ReasonAnchorNotFound: the target text was not found at a usable
	// anchor, or the markup could not be parsed at all.
	ReasonAnchorNotFound

	// ReasonWriteFailed: the mutation request was rejected or failed in
	// transport.
	ReasonWriteFailed
)

// String returns the human-readable annotation appended to unsuccessful
// report entries.
func (r FailureReason) String() string {
	switch r {
	case ReasonReferenceUnparseable:
		return "could not parse document URL"
	case ReasonFetchFailed:
		return "failed to get HTML"
	case ReasonAnchorNotFound:
		return "target not found"
	case ReasonWriteFailed:
		return "POST failed"
	}
	return "unknown"
}

// Report is the aggregated outcome of one batch run. Entries appear in the
// order their references were supplied; every input lands in exactly one of
// Successful or Unsuccessful.
type Report struct {
	// RunID correlates log lines with this run.
	RunID string

	// Successful holds "host/id#anchor" labels for updated documents.
	Successful []string

	// Unsuccessful holds "host/id" or "host/id#anchor" labels, annotated
	// with the failure reason.
	Unsuccessful []string

	// Changed is true iff at least one document was updated.
	Changed bool

	// Message summarizes the run: "<n> of <total> ... updated successfully".
	Message string

	// OriginalMessage describes the action that was attempted.
	OriginalMessage string
}

func newReport(runID string) *Report {
	return &Report{
		RunID:        runID,
		Successful:   []string{},
		Unsuccessful: []string{},
	}
}

func (r *Report) addSuccess(label string) {
	r.Successful = append(r.Successful, label)
}

// addFailure records an unsuccessful document. Unparseable references keep
// the raw input as their label; the reason annotation is enough context for
// the other classifications.
func (r *Report) addFailure(label string, reason FailureReason) {
	if reason == ReasonReferenceUnparseable {
		r.Unsuccessful = append(r.Unsuccessful, label)
		return
	}
	r.Unsuccessful = append(r.Unsuccessful, fmt.Sprintf("%s - %s", label, reason))
}

// finalize computes Changed and Message once all outcomes are recorded. The
// report is not mutated after this.
func (r *Report) finalize(total int) {
	n := len(r.Successful)
	r.Changed = n > 0
	if r.Changed {
		r.Message = fmt.Sprintf("%d of %d Quip documents were updated successfully", n, total)
	} else {
		r.Message = fmt.Sprintf("%d of %d were updated successfully", n, total)
	}
}

// Failed reports the batch-level outcome: a run with zero successes is a
// failed run even though each document failed independently.
func (r *Report) Failed() bool {
	return len(r.Successful) == 0
}

// Result is the host-surfaced shape of a finished run, consumed by the CLI
// and by automation layers driving it.
type Result struct {
	Changed         bool     `json:"changed"`
	OriginalMessage string   `json:"original_message"`
	Message         string   `json:"message"`
	Successful      []string `json:"successful"`
	Unsuccessful    []string `json:"unsuccessful"`
}

// Result converts the report to its host-surfaced shape.
func (r *Report) Result() Result {
	return Result{
		Changed:         r.Changed,
		OriginalMessage: r.OriginalMessage,
		Message:         r.Message,
		Successful:      r.Successful,
		Unsuccessful:    r.Unsuccessful,
	}
}
