// Package ansiquip applies a content mutation to a batch of Quip documents,
// anchored on a table cell or section heading located by exact text match.
//
// Basic usage:
//
//	session := quip.NewSession(token)
//	report, err := ansiquip.New(session).
//	    Target("Status").
//	    Replace("green").
//	    Bold().
//	    Run(ctx, urls)
//	if err != nil {
//	    // handle configuration error
//	}
//	fmt.Println(report.Message)
//
// Each document in the batch is processed independently and classified as
// successful or unsuccessful; a failure on one document never aborts the
// rest. Live-pasting a source section after (or before) a heading works the
// same way:
//
//	report, err := ansiquip.New(session).
//	    Target("Deployment Notes").
//	    Headings().
//	    PasteFrom("SRCDOC1", "temp:C:src50e480d499").
//	    Run(ctx, urls)
//
// The lower-level markup, quip, resolver, and ratelimit packages are also
// available for advanced use.
package ansiquip

import (
	"context"

	"github.com/wes-spinks/ansiquip/quip"
)

// Gateway is the remote document surface the batch engine drives. A
// *quip.Session satisfies it; tests substitute fakes.
type Gateway interface {
	FetchHTML(ctx context.Context, threadID string) (string, quip.RateLimit, error)
	EditDocument(ctx context.Context, req quip.EditRequest) (quip.RateLimit, error)
	LivePaste(ctx context.Context, req quip.PasteRequest) (quip.RateLimit, error)
}

// New creates a Batch backed by the given gateway with default options:
// cell anchors, literal replacement text, a nop logger, and default
// rate-limit pacing.
func New(gw Gateway) *Batch {
	return &Batch{
		gateway: gw,
		options: defaultBatchOptions(),
	}
}
