// Package markup provides anchor location in Quip document HTML.
//
// Quip exposes stable anchor identifiers only on specific wrapper elements:
// table cells carry them on an inline <span>, section headings carry them on
// the heading element itself. This package parses a document's HTML into an
// owned, flattened node arena and locates the anchor for a given target
// string.
//
// # Basic Usage
//
// Parse the document once, then locate anchors against it:
//
//	doc, err := markup.Parse(strings.NewReader(html))
//	if err != nil {
//	    // handle error
//	}
//	anchor, ok := markup.Locate(doc, "Status", markup.Cell)
//
// A miss at any step of the lookup chain (no exact text match, no enclosing
// cell, no span with an id) reports "not found" rather than an error.
package markup
