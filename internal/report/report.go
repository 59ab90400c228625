// Package report aggregates conversion outcomes for user-facing
// text or JSON summaries.
package report

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/google/uuid"
)

// Format determines how summaries are printed.
type Format string

const (
	FormatText Format = "text"
	FormatJSON Format = "json"
)

// IssueCode classifies non-fatal writer-stage conditions.
type IssueCode string

const (
	// CodeOutputExists marks a table skipped because its output file
	// already exists and overwriting was not requested.
	CodeOutputExists IssueCode = "output_exists"
)

// Issue captures a specific non-fatal condition for one table.
type Issue struct {
	Code    IssueCode `json:"code"`
	Path    string    `json:"path,omitempty"`
	Message string    `json:"message"`
}

// TableResult is the per-table conversion outcome.
type TableResult struct {
	Name    string `json:"name"`
	File    string `json:"file,omitempty"`
	Rows    int    `json:"rows"`
	Columns int    `json:"columns"`
	Written bool   `json:"written"`
}

// Summary aggregates outcomes across one conversion run.
type Summary struct {
	RunID  string        `json:"run_id"`
	Tables []TableResult `json:"tables,omitempty"`
	Rows   int           `json:"rows"`
	Issues []Issue       `json:"issues,omitempty"`
}

// NewSummary creates a summary with a fresh run identifier.
func NewSummary() Summary {
	return Summary{RunID: uuid.NewString()}
}

// Add records one table result into the summary.
func (s *Summary) Add(result TableResult) {
	s.Tables = append(s.Tables, result)
	s.Rows += result.Rows
}

// AddIssue records a non-fatal condition.
func (s *Summary) AddIssue(issue Issue) {
	s.Issues = append(s.Issues, issue)
}

// Write renders the summary in the requested format.
func (s Summary) Write(w io.Writer, format Format) error {
	switch format {
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(s); err != nil {
			return fmt.Errorf("encode summary: %w", err)
		}
		return nil
	default:
		return s.writeText(w)
	}
}

func (s Summary) writeText(w io.Writer) error {
	for _, table := range s.Tables {
		status := ""
		if !table.Written {
			status = " (not written)"
		}
		target := ""
		if table.File != "" {
			target = " -> " + table.File
		}
		if _, err := fmt.Fprintf(w, "%s: %d rows, %d columns%s%s\n",
			table.Name, table.Rows, table.Columns, target, status); err != nil {
			return err
		}
	}

	if _, err := fmt.Fprintf(w, "%d tables, %d rows\n", len(s.Tables), s.Rows); err != nil {
		return err
	}

	for _, issue := range s.Issues {
		if _, err := fmt.Fprintf(w, "warning: %s: %s\n", issue.Code, issue.Message); err != nil {
			return err
		}
	}

	return nil
}
