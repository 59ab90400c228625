package report

import (
	"encoding/json"
	"strings"
	"testing"
)

func TestSummaryAddAccumulatesRows(t *testing.T) {
	t.Parallel()

	summary := NewSummary()
	summary.Add(TableResult{Name: "item", Rows: 3, Columns: 4, Written: true})
	summary.Add(TableResult{Name: "item.sub", Rows: 2, Columns: 3, Written: true})

	if summary.Rows != 5 {
		t.Fatalf("Rows = %d, want 5", summary.Rows)
	}
	if len(summary.Tables) != 2 {
		t.Fatalf("len(Tables) = %d, want 2", len(summary.Tables))
	}
	if summary.RunID == "" {
		t.Fatal("RunID is empty")
	}
}

func TestSummaryWriteText(t *testing.T) {
	t.Parallel()

	summary := NewSummary()
	summary.Add(TableResult{Name: "item", File: "item.csv", Rows: 3, Columns: 4, Written: true})
	summary.Add(TableResult{Name: "item.sub", File: "item.sub.csv", Rows: 2, Columns: 3})
	summary.AddIssue(Issue{Code: CodeOutputExists, Path: "item.sub.csv", Message: "output file exists"})

	var buf strings.Builder
	if err := summary.Write(&buf, FormatText); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	out := buf.String()
	if !strings.Contains(out, "item: 3 rows, 4 columns -> item.csv") {
		t.Fatalf("text output = %q", out)
	}
	if !strings.Contains(out, "item.sub: 2 rows, 3 columns -> item.sub.csv (not written)") {
		t.Fatalf("text output = %q", out)
	}
	if !strings.Contains(out, "2 tables, 5 rows") {
		t.Fatalf("text output = %q", out)
	}
	if !strings.Contains(out, "warning: output_exists: output file exists") {
		t.Fatalf("text output = %q", out)
	}
}

func TestSummaryWriteJSON(t *testing.T) {
	t.Parallel()

	summary := NewSummary()
	summary.Add(TableResult{Name: "item", File: "item.csv", Rows: 1, Columns: 2, Written: true})

	var buf strings.Builder
	if err := summary.Write(&buf, FormatJSON); err != nil {
		t.Fatalf("Write() error = %v", err)
	}

	var decoded Summary
	if err := json.Unmarshal([]byte(buf.String()), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded.RunID != summary.RunID {
		t.Fatalf("RunID = %q, want %q", decoded.RunID, summary.RunID)
	}
	if len(decoded.Tables) != 1 || decoded.Tables[0].Name != "item" {
		t.Fatalf("decoded tables = %+v", decoded.Tables)
	}
}
