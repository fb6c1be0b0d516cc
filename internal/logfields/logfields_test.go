package logfields

import (
	"log/slog"
	"testing"
)

// TestHelperKeyNames verifies string-based helper key/value stability.
func TestHelperKeyNames(t *testing.T) {
	cases := []struct {
		name    string
		attrKey string
		attrVal string
		attr    slog.Attr
	}{
		{"RunID", KeyRunID, "run-1", RunID("run-1")},
		{"Root", KeyRoot, "docs", Root("docs")},
		{"File", KeyFile, "docs/a.md", File("docs/a.md")},
		{"Link", KeyLink, "b.md#setup", Link("b.md#setup")},
		{"Target", KeyTarget, "docs/b.md", Target("docs/b.md")},
		{"Anchor", KeyAnchor, "#setup", Anchor("#setup")},
		{"Subject", KeySubject, "doclink.links.broken", Subject("doclink.links.broken")},
	}

	for _, tc := range cases {
		if tc.attr.Key != tc.attrKey {
			// Key drift would break log ingestion schemas.
			t.Fatalf("%s: expected key %s, got %s", tc.name, tc.attrKey, tc.attr.Key)
		}
		if got := tc.attr.Value.String(); got != tc.attrVal {
			t.Fatalf("%s: expected value %s, got %v", tc.name, tc.attrVal, got)
		}
	}
}

// TestNumericHelpers verifies keys for int and float helpers.
func TestNumericHelpers(t *testing.T) {
	if v := Line(14); v.Key != KeyLine {
		t.Fatalf("Line key mismatch: %s", v.Key)
	}
	if v := Files(3); v.Key != KeyFiles {
		t.Fatalf("Files key mismatch: %s", v.Key)
	}
	if v := Links(87); v.Key != KeyLinks {
		t.Fatalf("Links key mismatch: %s", v.Key)
	}
	if v := Problems(2); v.Key != KeyProblems {
		t.Fatalf("Problems key mismatch: %s", v.Key)
	}
	if v := DurationMS(12.5); v.Key != KeyDurationMS {
		t.Fatalf("DurationMS key mismatch: %s", v.Key)
	}
}

// TestErrorHelper ensures Error() handles nil and non-nil errors predictably.
func TestErrorHelper(t *testing.T) {
	attr := Error(nil)
	if attr.Key != KeyError {
		t.Fatalf("Error key mismatch: %s", attr.Key)
	}
	if attr.Value.String() != "" {
		t.Fatalf("expected empty error string, got %s", attr.Value.String())
	}
	attr = Error(errTest{})
	if attr.Value.String() != "err-test" {
		t.Fatalf("expected 'err-test', got %s", attr.Value.String())
	}
}

type errTest struct{}

func (e errTest) Error() string { return "err-test" }
