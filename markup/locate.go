package markup

// AnchorKind selects which tag family Locate searches.
type AnchorKind int

const (
	// Cell locates the inline span id inside the table cell that contains
	// the target text.
	Cell AnchorKind = iota

	// Heading locates the id of the heading element enclosing the target
	// text, trying levels 1 through 3 in order.
	Heading
)

// String returns the kind name for logging.
func (k AnchorKind) String() string {
	switch k {
	case Cell:
		return "cell"
	case Heading:
		return "heading"
	}
	return "unknown"
}

// headingTags are the candidate heading levels, tried in order. The first
// ancestor carrying an id wins; matches are never merged across levels.
var headingTags = []string{"h1", "h2", "h3"}

// Locate finds the anchor identifier for target in doc.
//
// For Cell: the first text node equal to target is walked up to its
// enclosing <td>, and the id of the first descendant <span> carrying one is
// returned. For Heading: the enclosing h1 is tried first, then h2, then h3.
//
// Only the first exact text match in the document is considered; Locate
// does not search for further occurrences of target. A broken chain at any
// step reports ok=false, never an error.
func Locate(doc *Document, target string, kind AnchorKind) (string, bool) {
	ref, ok := doc.FindTextNode(target)
	if !ok {
		return "", false
	}

	switch kind {
	case Cell:
		cell, ok := doc.AncestorOfTag(ref, "td")
		if !ok {
			return "", false
		}
		return doc.DescendantWithID(cell, "span")

	case Heading:
		for _, tag := range headingTags {
			h, ok := doc.AncestorOfTag(ref, tag)
			if !ok {
				continue
			}
			if id, ok := doc.Attr(h, "id"); ok && id != "" {
				return id, true
			}
		}
		return "", false
	}

	return "", false
}
