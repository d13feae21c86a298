package ansiquip

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/wes-spinks/ansiquip/markup"
	"github.com/wes-spinks/ansiquip/quip"
	"github.com/wes-spinks/ansiquip/ratelimit"
	"github.com/wes-spinks/ansiquip/resolver"
)

// Batch provides a fluent interface for configuring and running one batch
// mutation. Each configuration method returns a new Batch instance, so a
// configured Batch can be shared and re-run safely.
type Batch struct {
	gateway Gateway
	options batchOptions

	// Accumulated configuration error (fail-fast, reported by Run)
	err error
}

// clone creates a copy of the Batch with a copy of its options. This keeps
// each chain link immutable.
func (b *Batch) clone() *Batch {
	return &Batch{
		gateway: b.gateway,
		options: b.options.clone(),
		err:     b.err,
	}
}

// Target sets the exact string the anchor search looks for. Required.
func (b *Batch) Target(text string) *Batch {
	nb := b.clone()
	nb.options.target = text
	return nb
}

// Cells anchors the mutation on the table cell containing the target text.
// This is the default.
func (b *Batch) Cells() *Batch {
	nb := b.clone()
	nb.options.kind = markup.Cell
	return nb
}

// Headings anchors the mutation on the section heading containing the
// target text, trying heading levels 1 through 3 in order.
func (b *Batch) Headings() *Batch {
	nb := b.clone()
	nb.options.kind = markup.Heading
	return nb
}

// Replace sets the replacement content written at the anchor.
func (b *Batch) Replace(content string) *Batch {
	nb := b.clone()
	nb.options.replace = content
	return nb
}

// Bold wraps the replacement content in a bold tag. Mutually exclusive with
// Italic; the last call wins.
func (b *Batch) Bold() *Batch {
	nb := b.clone()
	nb.options.emphasis = "bold"
	return nb
}

// Italic wraps the replacement content in an italic tag. Mutually exclusive
// with Bold; the last call wins.
func (b *Batch) Italic() *Batch {
	nb := b.clone()
	nb.options.emphasis = "italic"
	return nb
}

// PayloadFunc overrides the replacement content with a per-document hook.
// Replace/Bold/Italic are ignored while a hook is set.
func (b *Batch) PayloadFunc(fn func(resolver.DocumentRef) string) *Batch {
	nb := b.clone()
	nb.options.payloadFn = fn
	return nb
}

// PasteFrom switches the batch to live-paste mode: the source section is
// inserted after (or before, see Prepend) the located anchor in each
// destination document.
func (b *Batch) PasteFrom(sourceThreadID, sourceSectionID string) *Batch {
	nb := b.clone()
	nb.options.sourceThreadID = sourceThreadID
	nb.options.sourceSectionID = sourceSectionID
	return nb
}

// Prepend makes live paste insert before the anchor instead of after it.
func (b *Batch) Prepend() *Batch {
	nb := b.clone()
	nb.options.prepend = true
	return nb
}

// WithGovernor replaces the rate-limit governor used between remote calls.
func (b *Batch) WithGovernor(g *ratelimit.Governor) *Batch {
	nb := b.clone()
	nb.options.governor = g
	return nb
}

// WithLogger attaches a structured logger. The default is a nop logger.
func (b *Batch) WithLogger(l *zap.Logger) *Batch {
	nb := b.clone()
	nb.options.logger = l
	return nb
}

// validate checks the accumulated configuration before any remote call.
func (b *Batch) validate() error {
	if b.err != nil {
		return b.err
	}
	if b.gateway == nil {
		return fmt.Errorf("no gateway configured")
	}
	if b.options.target == "" {
		return fmt.Errorf("no target text configured")
	}
	if b.options.pasteMode() && b.options.sourceSectionID == "" {
		return fmt.Errorf("paste mode requires a source section id")
	}
	return nil
}

// Run processes the references strictly in order: resolve, fetch, locate,
// mutate, classify. The returned error covers configuration problems only;
// per-document failures are classified into the report and never abort the
// batch. The rate-limit governor observes the response metadata after every
// remote call, so the next call is paced when quota runs low.
func (b *Batch) Run(ctx context.Context, refs []string) (*Report, error) {
	if err := b.validate(); err != nil {
		return nil, err
	}

	opts := b.options
	gov := opts.governor
	if gov == nil {
		gov = ratelimit.New()
	}

	report := newReport(uuid.NewString())
	log := opts.logger.With(
		zap.String("run_id", report.RunID),
		zap.String("target", opts.target),
		zap.Stringer("kind", opts.kind),
	)
	log.Info("Starting batch run", zap.Int("documents", len(refs)))

	report.OriginalMessage = b.describeAction(refs)

	for _, raw := range refs {
		ref, err := resolver.ParseURL(raw)
		if err != nil {
			log.Warn("Skipping unparseable reference", zap.String("url", raw), zap.Error(err))
			report.addFailure(raw, ReasonReferenceUnparseable)
			continue
		}

		html, rl, err := b.gateway.FetchHTML(ctx, ref.ID)
		gov.Observe(rl.Remaining, rl.RetryAfter)
		if err != nil {
			log.Warn("Fetch failed", zap.String("document", ref.String()), zap.Error(err))
			report.addFailure(ref.String(), ReasonFetchFailed)
			continue
		}

		anchor, ok := locateAnchor(html, opts.target, opts.kind)
		if !ok {
			log.Warn("Anchor not found", zap.String("document", ref.String()))
			report.addFailure(ref.String(), ReasonAnchorNotFound)
			continue
		}

		label := ref.String() + "#" + anchor
		rl, err = b.mutate(ctx, ref, anchor)
		gov.Observe(rl.Remaining, rl.RetryAfter)
		if err != nil {
			log.Warn("Mutation failed", zap.String("document", label), zap.Error(err))
			report.addFailure(label, ReasonWriteFailed)
			continue
		}

		log.Info("Document updated", zap.String("document", label))
		report.addSuccess(label)
	}

	report.finalize(len(refs))
	if report.Failed() {
		report.OriginalMessage = b.describeFailure()
	}
	log.Info("Batch run finished",
		zap.Int("successful", len(report.Successful)),
		zap.Int("unsuccessful", len(report.Unsuccessful)),
		zap.Bool("changed", report.Changed),
	)
	return report, nil
}

// locateAnchor parses the fetched markup and locates the anchor. Markup
// that cannot be parsed at all behaves exactly like a missing anchor: fail
// soft and let the batch continue.
func locateAnchor(html, target string, kind markup.AnchorKind) (string, bool) {
	doc, err := markup.Parse(strings.NewReader(html))
	if err != nil {
		return "", false
	}
	return markup.Locate(doc, target, kind)
}

// mutate dispatches the configured mutation against the located anchor.
func (b *Batch) mutate(ctx context.Context, ref resolver.DocumentRef, anchor string) (quip.RateLimit, error) {
	if b.options.pasteMode() {
		location := quip.LocationAfterSection
		if b.options.prepend {
			location = quip.LocationBeforeSection
		}
		return b.gateway.LivePaste(ctx, quip.PasteRequest{
			SourceThreadID:       b.options.sourceThreadID,
			SourceSectionID:      b.options.sourceSectionID,
			DestinationThreadID:  ref.ID,
			DestinationSectionID: anchor,
			Location:             location,
		})
	}

	return b.gateway.EditDocument(ctx, quip.EditRequest{
		ThreadID:  ref.ID,
		Content:   b.options.payload(ref),
		Location:  quip.LocationReplaceSection,
		Format:    "html",
		SectionID: anchor,
	})
}

// describeAction summarizes what the run is about to attempt.
func (b *Batch) describeAction(refs []string) string {
	if b.options.pasteMode() {
		return fmt.Sprintf("Pasting %s#%s to %d Quip documents",
			b.options.sourceThreadID, b.options.sourceSectionID, len(refs))
	}
	return fmt.Sprintf("Attempting to find '%s' and replace with '%s' on %d Quip documents",
		b.options.target, b.options.replace, len(refs))
}

// describeFailure replaces the action summary when nothing was updated.
func (b *Batch) describeFailure() string {
	if b.options.pasteMode() {
		return fmt.Sprintf("No valid destinations identified while attempting live paste from %s#%s",
			b.options.sourceThreadID, b.options.sourceSectionID)
	}
	return fmt.Sprintf("Failed to find '%s' and replace with '%s' in all provided Quip URLs",
		b.options.target, b.options.replace)
}
