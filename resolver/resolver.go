package resolver

import (
	"fmt"
	"net/url"
	"strings"
)

// Domain is the marketing domain pattern a reference must carry to be
// treated as a Quip document URL. Corporate deployments use subdomains of
// it (team.quip.com, corp.quip.com).
const Domain = "quip.com"

// DocumentRef identifies one remote document. Immutable once created.
type DocumentRef struct {
	Host string // e.g. "corp.quip.com"
	ID   string // first path segment, the thread id
}

// String returns the host/id form used in report labels.
func (r DocumentRef) String() string {
	return r.Host + "/" + r.ID
}

// ParseURL resolves a raw document URL into a DocumentRef. A missing scheme
// is normalized to https before parsing; rooted paths are left alone so
// they fail the domain check rather than being mangled.
func ParseURL(raw string) (DocumentRef, error) {
	if raw == "" {
		return DocumentRef{}, fmt.Errorf("empty document URL")
	}

	normalized := raw
	if !strings.Contains(normalized, "://") && !strings.HasPrefix(normalized, "/") {
		normalized = "https://" + normalized
	}

	if !strings.Contains(normalized, Domain) {
		return DocumentRef{}, fmt.Errorf("%q is not a %s URL", raw, Domain)
	}

	u, err := url.Parse(normalized)
	if err != nil {
		return DocumentRef{}, fmt.Errorf("parsing %q: %w", raw, err)
	}

	id := firstPathSegment(u.Path)
	if u.Host == "" || id == "" {
		return DocumentRef{}, fmt.Errorf("no document id in %q", raw)
	}

	return DocumentRef{Host: u.Host, ID: id}, nil
}

func firstPathSegment(p string) string {
	for _, seg := range strings.Split(p, "/") {
		if seg != "" {
			return seg
		}
	}
	return ""
}
