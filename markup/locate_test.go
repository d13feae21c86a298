package markup

import (
	"strings"
	"testing"
)

const cellDoc = `<html><body>
<table><tbody>
<tr><td><span id="temp:C:abc123">Owner</span>Owner</td><td>alice</td></tr>
<tr><td><span id="temp:C:def456">Status</span>Status</td><td>green</td></tr>
</tbody></table>
</body></html>`

func TestLocate_Cell(t *testing.T) {
	doc := mustParse(t, cellDoc)

	tests := []struct {
		name   string
		target string
		wantID string
		wantOK bool
	}{
		{"first cell", "Owner", "temp:C:abc123", true},
		{"second row", "Status", "temp:C:def456", true},
		{"absent text", "Missing", "", false},
		{"substring does not match", "Stat", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := Locate(doc, tt.target, Cell)
			if ok != tt.wantOK || id != tt.wantID {
				t.Errorf("Locate(%q, Cell) = %q, %v, want %q, %v",
					tt.target, id, ok, tt.wantID, tt.wantOK)
			}
		})
	}
}

func TestLocate_Cell_NoEnclosingCell(t *testing.T) {
	doc := mustParse(t, `<html><body><p>Owner</p></body></html>`)

	if _, ok := Locate(doc, "Owner", Cell); ok {
		t.Error("Locate() found a cell anchor outside a table cell")
	}
}

func TestLocate_Cell_NoSpanWithID(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<table><tr><td><span>Owner</span></td></tr></table>
	</body></html>`)

	if _, ok := Locate(doc, "Owner", Cell); ok {
		t.Error("Locate() returned an anchor from a span without an id")
	}
}

func TestLocate_Heading_Fallback(t *testing.T) {
	// Same target text present only under a level-2 heading; a level-1 and a
	// level-3 heading with different text must not match.
	doc := mustParse(t, `<html><body>
		<h1 id="top">Overview</h1>
		<h2 id="deploy">Deployment Notes</h2>
		<h3 id="misc">Appendix</h3>
	</body></html>`)

	id, ok := Locate(doc, "Deployment Notes", Heading)
	if !ok {
		t.Fatal("Locate(Heading) did not find the level-2 heading")
	}
	if id != "deploy" {
		t.Errorf("Locate(Heading) = %q, want 'deploy'", id)
	}
}

func TestLocate_Heading_Level1Preferred(t *testing.T) {
	doc := mustParse(t, `<html><body>
		<h1 id="h1id"><span>Release</span></h1>
	</body></html>`)

	id, ok := Locate(doc, "Release", Heading)
	if !ok || id != "h1id" {
		t.Errorf("Locate(Heading) = %q, %v, want 'h1id', true", id, ok)
	}
}

func TestLocate_Heading_Level3(t *testing.T) {
	doc := mustParse(t, `<html><body><h3 id="h3id">Deep Section</h3></body></html>`)

	id, ok := Locate(doc, "Deep Section", Heading)
	if !ok || id != "h3id" {
		t.Errorf("Locate(Heading) = %q, %v, want 'h3id', true", id, ok)
	}
}

func TestLocate_Heading_NotFound(t *testing.T) {
	doc := mustParse(t, `<html><body><h4 id="h4id">Too Deep</h4><p>Plain</p></body></html>`)

	// h4 is outside the candidate levels.
	if _, ok := Locate(doc, "Too Deep", Heading); ok {
		t.Error("Locate(Heading) matched a level-4 heading")
	}
	if _, ok := Locate(doc, "Plain", Heading); ok {
		t.Error("Locate(Heading) matched text outside any heading")
	}
}

func TestLocate_Heading_StrictFirstMatch(t *testing.T) {
	// The first occurrence of the target is a paragraph; the later heading
	// occurrence must not be consulted.
	doc := mustParse(t, `<html><body>
		<p>Changelog</p>
		<h2 id="log">Changelog</h2>
	</body></html>`)

	if _, ok := Locate(doc, "Changelog", Heading); ok {
		t.Error("Locate(Heading) searched beyond the first text match")
	}
}

func TestLocate_MalformedMarkup(t *testing.T) {
	doc, err := Parse(strings.NewReader(`<td><span id="x">`))
	if err != nil {
		t.Fatalf("Parse() failed on malformed markup: %v", err)
	}
	if _, ok := Locate(doc, "anything", Cell); ok {
		t.Error("Locate() found an anchor in empty malformed markup")
	}
}
