package quip

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"golang.org/x/text/encoding/htmlindex"
)

// Edit location codes defined by the Automation API. Operations relative to
// another section require a section id.
const (
	LocationAppend         = 0
	LocationPrepend        = 1
	LocationAfterSection   = 2
	LocationBeforeSection  = 3
	LocationReplaceSection = 4
)

// RateLimit is the throttling metadata Quip attaches to every response.
// Remaining is -1 when the response carried no quota header.
type RateLimit struct {
	Remaining  int // calls left before throttling
	RetryAfter int // suggested wait in seconds
}

// EditRequest describes one edit-document call. SectionID is required for
// the section-relative location codes.
type EditRequest struct {
	ThreadID  string
	Content   string
	Location  int
	Format    string // "html" or "markdown"; empty fields are omitted
	SectionID string
}

// PasteRequest describes one live-paste call: content identified by
// (SourceThreadID, SourceSectionID) is inserted relative to
// DestinationSectionID in DestinationThreadID.
type PasteRequest struct {
	SourceThreadID       string
	SourceSectionID      string
	DestinationThreadID  string
	DestinationSectionID string
	Location             int
}

// apiError is the structured error body the API returns on failures.
type apiError struct {
	Description string `json:"error_description"`
}

// FetchHTML retrieves the rendered HTML for a thread. A response without an
// html field is an error; there is nothing to parse in that case.
func (s *Session) FetchHTML(ctx context.Context, threadID string) (string, RateLimit, error) {
	endpoint := s.baseURL + "/2/threads/" + url.PathEscape(threadID) + "/html"

	body, rl, err := s.get(ctx, endpoint)
	if err != nil {
		return "", rl, err
	}

	var payload struct {
		HTML string `json:"html"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", rl, fmt.Errorf("decoding thread %s html response: %w", threadID, err)
	}
	if payload.HTML == "" {
		return "", rl, fmt.Errorf("thread %s response has no html field", threadID)
	}
	return payload.HTML, rl, nil
}

// EditDocument applies an edit to a thread. Cell anchors can contain ';',
// which collides with the form field-separator convention, so every ';' in
// the section id is transmitted as '_'.
func (s *Session) EditDocument(ctx context.Context, req EditRequest) (RateLimit, error) {
	form := url.Values{}
	form.Set("thread_id", req.ThreadID)
	form.Set("content", req.Content)
	form.Set("location", strconv.Itoa(req.Location))
	if req.Format != "" {
		form.Set("format", req.Format)
	}
	if req.SectionID != "" {
		form.Set("section_id", SanitizeSectionID(req.SectionID))
	}

	_, rl, err := s.postForm(ctx, s.baseURL+"/1/threads/edit-document", form)
	return rl, err
}

// LivePaste inserts live-updating content from a source document section
// relative to a destination section.
func (s *Session) LivePaste(ctx context.Context, req PasteRequest) (RateLimit, error) {
	form := url.Values{}
	form.Set("source_thread_id", req.SourceThreadID)
	form.Set("source_section_ids", req.SourceSectionID)
	form.Set("destination_thread_id", req.DestinationThreadID)
	form.Set("destination_section_id", req.DestinationSectionID)
	form.Set("location", strconv.Itoa(req.Location))
	form.Set("update_automatic", "true")

	_, rl, err := s.postForm(ctx, s.baseURL+"/1/threads/live-paste", form)
	return rl, err
}

// FolderThreads lists the thread ids of the documents directly inside a
// folder.
func (s *Session) FolderThreads(ctx context.Context, folderID string) ([]string, error) {
	body, _, err := s.get(ctx, s.baseURL+"/1/folders/"+url.PathEscape(folderID))
	if err != nil {
		return nil, err
	}

	var payload struct {
		Children []struct {
			ThreadID string `json:"thread_id"`
		} `json:"children"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("decoding folder %s response: %w", folderID, err)
	}

	ids := make([]string, 0, len(payload.Children))
	for _, c := range payload.Children {
		if c.ThreadID != "" {
			ids = append(ids, c.ThreadID)
		}
	}
	return ids, nil
}

// ThreadLink returns the canonical link for a thread.
func (s *Session) ThreadLink(ctx context.Context, threadID string) (string, error) {
	body, _, err := s.get(ctx, s.baseURL+"/2/threads/"+url.PathEscape(threadID))
	if err != nil {
		return "", err
	}

	var payload struct {
		Thread struct {
			Link string `json:"link"`
		} `json:"thread"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return "", fmt.Errorf("decoding thread %s response: %w", threadID, err)
	}
	if payload.Thread.Link == "" {
		return "", fmt.Errorf("thread %s response has no link", threadID)
	}
	return payload.Thread.Link, nil
}

// SanitizeSectionID replaces every ';' in a section id with '_'. A no-op
// for ids without the separator.
func SanitizeSectionID(id string) string {
	return strings.ReplaceAll(id, ";", "_")
}

func (s *Session) get(ctx context.Context, endpoint string) ([]byte, RateLimit, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, RateLimit{Remaining: -1}, fmt.Errorf("building request: %w", err)
	}
	return s.do(req)
}

func (s *Session) postForm(ctx context.Context, endpoint string, form url.Values) ([]byte, RateLimit, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, RateLimit{Remaining: -1}, fmt.Errorf("building request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return s.do(req)
}

// do executes the request and returns the decoded body along with the
// response's rate-limit metadata. The metadata is populated on both success
// and failure so the caller can pace either way.
func (s *Session) do(req *http.Request) ([]byte, RateLimit, error) {
	req.Header.Set("Authorization", "Bearer "+s.token)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, RateLimit{Remaining: -1}, fmt.Errorf("calling %s: %w", req.URL.Path, err)
	}
	defer resp.Body.Close()

	rl := parseRateLimit(resp.Header)

	body, err := decodeBody(resp)
	if err != nil {
		return nil, rl, fmt.Errorf("reading %s response: %w", req.URL.Path, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		var apiErr apiError
		if json.Unmarshal(body, &apiErr) == nil && apiErr.Description != "" {
			return nil, rl, fmt.Errorf("%s: %s (status %d)", req.URL.Path, apiErr.Description, resp.StatusCode)
		}
		return nil, rl, fmt.Errorf("%s: unexpected status %d", req.URL.Path, resp.StatusCode)
	}

	return body, rl, nil
}

// decodeBody reads the response body, transcoding to UTF-8 when the
// Content-Type names a different charset.
func decodeBody(resp *http.Response) ([]byte, error) {
	var r io.Reader = resp.Body

	if ct := resp.Header.Get("Content-Type"); ct != "" {
		if _, params, err := mime.ParseMediaType(ct); err == nil {
			if name := params["charset"]; name != "" && !strings.EqualFold(name, "utf-8") {
				enc, err := htmlindex.Get(name)
				if err != nil {
					return nil, fmt.Errorf("unsupported charset %q: %w", name, err)
				}
				r = enc.NewDecoder().Reader(r)
			}
		}
	}

	return io.ReadAll(r)
}

// parseRateLimit extracts the throttling headers from a response. Remaining
// is -1 when the quota header is absent or unparseable.
func parseRateLimit(h http.Header) RateLimit {
	rl := RateLimit{Remaining: -1}
	if v := h.Get("X-Ratelimit-Remaining"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			rl.Remaining = n
		}
	}
	if v := h.Get("Retry-After"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			rl.RetryAfter = n
		}
	}
	return rl
}
