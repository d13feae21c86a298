// Package resolver turns human-supplied Quip document URLs into stable
// document references.
//
// Users paste links in many shapes: with or without a scheme, with or
// without the document title slug. The resolver normalizes a missing scheme,
// checks for the quip.com domain, and takes the first path segment as the
// document id:
//
//	ref, err := resolver.ParseURL("corp.quip.com/3XAMPL3D0C/my-demo-doc")
//	// ref.Host == "corp.quip.com", ref.ID == "3XAMPL3D0C"
//
// Anything that does not yield both a host and a document id is reported as
// unparseable.
package resolver
