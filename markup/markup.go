package markup

import (
	"fmt"
	"io"

	"golang.org/x/net/html"
)

// NodeRef identifies a node within a Document's arena.
type NodeRef int

// noNode is the NodeRef returned alongside ok=false.
const noNode NodeRef = -1

// nodeKind distinguishes element nodes from text nodes. Other HTML node
// types (comments, doctype) are not retained in the arena.
type nodeKind int

const (
	kindElement nodeKind = iota
	kindText
)

// node is one entry in the Document arena. Parent/child relationships are
// integer indices into the same slice, so a Document owns all of its state
// and shares nothing with other parses.
type node struct {
	kind     nodeKind
	tag      string // element tag name, lower case
	text     string // text node content
	attrs    map[string]string
	parent   NodeRef
	children []NodeRef
}

// Document is a parsed HTML document flattened into an arena of nodes in
// document order. It is immutable after Parse and safe for concurrent reads.
type Document struct {
	nodes []node
}

// Parse reads HTML from r and builds a Document. The underlying HTML parser
// is lenient; malformed input produces a best-effort tree rather than an
// error, so an error here means the reader itself failed.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	doc := &Document{nodes: make([]node, 0, 64)}
	doc.flatten(root, noNode)
	return doc, nil
}

// flatten appends n and its descendants to the arena in document order.
func (d *Document) flatten(n *html.Node, parent NodeRef) {
	var ref NodeRef = noNode

	switch n.Type {
	case html.ElementNode:
		attrs := make(map[string]string, len(n.Attr))
		for _, a := range n.Attr {
			attrs[a.Key] = a.Val
		}
		ref = NodeRef(len(d.nodes))
		d.nodes = append(d.nodes, node{
			kind:   kindElement,
			tag:    n.Data,
			attrs:  attrs,
			parent: parent,
		})
	case html.TextNode:
		ref = NodeRef(len(d.nodes))
		d.nodes = append(d.nodes, node{
			kind:   kindText,
			text:   n.Data,
			parent: parent,
		})
	}

	if ref != noNode && parent != noNode {
		d.nodes[parent].children = append(d.nodes[parent].children, ref)
	}

	// Document and comment nodes are skipped but their children still
	// attach to the nearest retained ancestor.
	childParent := parent
	if ref != noNode {
		childParent = ref
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		d.flatten(c, childParent)
	}
}

// FindTextNode returns the first text node whose content equals target
// exactly. No substring or fuzzy matching is performed.
func (d *Document) FindTextNode(target string) (NodeRef, bool) {
	for i, n := range d.nodes {
		if n.kind == kindText && n.text == target {
			return NodeRef(i), true
		}
	}
	return noNode, false
}

// AncestorOfTag walks up from ref and returns the nearest ancestor element
// with the given tag name.
func (d *Document) AncestorOfTag(ref NodeRef, tag string) (NodeRef, bool) {
	if !d.valid(ref) {
		return noNode, false
	}
	for p := d.nodes[ref].parent; p != noNode; p = d.nodes[p].parent {
		if d.nodes[p].kind == kindElement && d.nodes[p].tag == tag {
			return p, true
		}
	}
	return noNode, false
}

// DescendantWithID returns the id attribute of the first descendant of ref
// (in document order) with the given tag name and a non-empty id.
func (d *Document) DescendantWithID(ref NodeRef, tag string) (string, bool) {
	if !d.valid(ref) {
		return "", false
	}
	for _, c := range d.nodes[ref].children {
		n := d.nodes[c]
		if n.kind == kindElement && n.tag == tag {
			if id := n.attrs["id"]; id != "" {
				return id, true
			}
		}
		if id, ok := d.DescendantWithID(c, tag); ok {
			return id, true
		}
	}
	return "", false
}

// Attr returns the named attribute of an element node.
func (d *Document) Attr(ref NodeRef, key string) (string, bool) {
	if !d.valid(ref) || d.nodes[ref].kind != kindElement {
		return "", false
	}
	v, ok := d.nodes[ref].attrs[key]
	return v, ok
}

// Len reports the number of nodes retained in the arena.
func (d *Document) Len() int {
	return len(d.nodes)
}

func (d *Document) valid(ref NodeRef) bool {
	return ref >= 0 && int(ref) < len(d.nodes)
}
