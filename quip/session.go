package quip

import (
	"net/http"
	"time"
)

// DefaultBaseURL is the public Quip Automation API host.
const DefaultBaseURL = "https://platform.quip.com"

// defaultTimeout matches the longest call the API makes (thread HTML for
// large documents).
const defaultTimeout = 75 * time.Second

// Session holds the credential and endpoint configuration for API calls.
// It is immutable once created and safe for concurrent use.
type Session struct {
	token   string
	baseURL string
	client  *http.Client

	// ownsClient is true while the session still uses the client it built
	// itself; WithTimeout only applies then.
	ownsClient bool
}

// Option configures a Session.
type Option func(*Session)

// WithBaseURL points the session at an alternate API host, e.g. a corporate
// Quip deployment.
func WithBaseURL(u string) Option {
	return func(s *Session) {
		s.baseURL = u
	}
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(c *http.Client) Option {
	return func(s *Session) {
		s.client = c
		s.ownsClient = false
	}
}

// WithTimeout sets the per-request timeout on the session's own client.
// Ignored when WithHTTPClient is also given.
func WithTimeout(d time.Duration) Option {
	return func(s *Session) {
		if s.ownsClient {
			s.client.Timeout = d
		}
	}
}

// NewSession creates a Session for the given API token.
func NewSession(token string, opts ...Option) *Session {
	s := &Session{
		token:      token,
		baseURL:    DefaultBaseURL,
		client:     &http.Client{Timeout: defaultTimeout},
		ownsClient: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// BaseURL returns the API host this session talks to.
func (s *Session) BaseURL() string {
	return s.baseURL
}
