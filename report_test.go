package ansiquip

import (
	"encoding/json"
	"testing"
)

func TestReport_Finalize(t *testing.T) {
	r := newReport("run-1")
	r.addSuccess("quip.com/a#s1")
	r.addFailure("quip.com/b", ReasonFetchFailed)
	r.finalize(2)

	if !r.Changed {
		t.Error("Changed = false after a success")
	}
	if r.Message != "1 of 2 Quip documents were updated successfully" {
		t.Errorf("Message = %q", r.Message)
	}
	if r.Failed() {
		t.Error("Failed() = true with one success")
	}
}

func TestReport_FinalizeAllFailed(t *testing.T) {
	r := newReport("run-2")
	r.addFailure("quip.com/a", ReasonAnchorNotFound)
	r.finalize(1)

	if r.Changed {
		t.Error("Changed = true with no successes")
	}
	if !r.Failed() {
		t.Error("Failed() = false with no successes")
	}
	if r.Message != "0 of 1 were updated successfully" {
		t.Errorf("Message = %q", r.Message)
	}
}

func TestReport_FailureAnnotations(t *testing.T) {
	r := newReport("run-3")
	r.addFailure("bad input", ReasonReferenceUnparseable)
	r.addFailure("quip.com/a", ReasonFetchFailed)
	r.addFailure("quip.com/b", ReasonAnchorNotFound)
	r.addFailure("quip.com/c#s1", ReasonWriteFailed)

	want := []string{
		"bad input",
		"quip.com/a - failed to get HTML",
		"quip.com/b - target not found",
		"quip.com/c#s1 - POST failed",
	}
	for i, w := range want {
		if r.Unsuccessful[i] != w {
			t.Errorf("Unsuccessful[%d] = %q, want %q", i, r.Unsuccessful[i], w)
		}
	}
}

func TestResult_JSONShape(t *testing.T) {
	r := newReport("run-4")
	r.OriginalMessage = "attempted"
	r.addSuccess("quip.com/a#s1")
	r.finalize(1)

	data, err := json.Marshal(r.Result())
	if err != nil {
		t.Fatalf("Marshal() failed: %v", err)
	}

	var decoded map[string]interface{}
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("Unmarshal() failed: %v", err)
	}
	for _, key := range []string{"changed", "original_message", "message", "successful", "unsuccessful"} {
		if _, ok := decoded[key]; !ok {
			t.Errorf("result JSON missing %q", key)
		}
	}
	if decoded["changed"] != true {
		t.Error("changed = false in JSON")
	}

	// Empty lists must serialize as [], not null, for automation consumers.
	empty := newReport("run-5")
	empty.finalize(0)
	data, _ = json.Marshal(empty.Result())
	if string(data) == "" || string(data) == "null" {
		t.Fatal("empty result did not marshal")
	}
	var shape struct {
		Successful   []string `json:"successful"`
		Unsuccessful []string `json:"unsuccessful"`
	}
	json.Unmarshal(data, &shape)
	if shape.Successful == nil || shape.Unsuccessful == nil {
		t.Error("empty lists serialized as null")
	}
}
