// Package quip is a minimal client for the Quip Automation API, covering
// the operations the batch mutation engine needs: fetching a thread's HTML,
// editing a document section, live-pasting content between documents, and
// listing the threads in a folder.
//
// # Sessions
//
// All calls go through an immutable Session carrying the token and base API
// URL:
//
//	session := quip.NewSession(token)
//	html, rl, err := session.FetchHTML(ctx, "DOCID1ONE")
//
// Every call surfaces the response's rate-limit metadata (remaining quota
// and suggested wait) so the caller can pace subsequent requests; see the
// ratelimit package.
//
// API reference: https://quip.com/dev/automation/documentation/current
package quip
