package ansiquip

import (
	"go.uber.org/zap"

	"github.com/wes-spinks/ansiquip/markup"
	"github.com/wes-spinks/ansiquip/ratelimit"
	"github.com/wes-spinks/ansiquip/resolver"
)

// batchOptions holds the configuration accumulated by the fluent Batch
// methods.
type batchOptions struct {
	// Anchor selection
	target string
	kind   markup.AnchorKind

	// Cell/heading replacement
	replace  string
	emphasis string // "", "bold", or "italic"; exactly one wrap, never both

	// Custom payload hook; overrides replace/emphasis when set
	payloadFn func(resolver.DocumentRef) string

	// Live paste source
	sourceThreadID  string
	sourceSectionID string
	prepend         bool

	// Ambient
	governor *ratelimit.Governor
	logger   *zap.Logger
}

// defaultBatchOptions returns the default batch configuration.
func defaultBatchOptions() batchOptions {
	return batchOptions{
		kind:   markup.Cell,
		logger: zap.NewNop(),
	}
}

// clone creates a copy of batchOptions. All fields are value types or
// deliberately shared (logger, governor), so a plain copy suffices.
func (o batchOptions) clone() batchOptions {
	return o
}

// pasteMode reports whether the batch live-pastes instead of replacing the
// anchored content.
func (o batchOptions) pasteMode() bool {
	return o.sourceThreadID != ""
}

// payload builds the mutation content for one document: the literal
// replacement string, or the same string wrapped in a single emphasis tag
// when one was requested.
func (o batchOptions) payload(ref resolver.DocumentRef) string {
	if o.payloadFn != nil {
		return o.payloadFn(ref)
	}
	switch o.emphasis {
	case "bold":
		return "<b>" + o.replace + "</b>"
	case "italic":
		return "<i>" + o.replace + "</i>"
	}
	return o.replace
}
