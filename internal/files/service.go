// Package files orchestrates one conversion run: decode the input
// document, convert it into tables and write the CSV outputs.
package files

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/jacoelho/multicsv/internal/config"
	"github.com/jacoelho/multicsv/internal/convert"
	"github.com/jacoelho/multicsv/internal/csvfile"
	"github.com/jacoelho/multicsv/internal/document"
	"github.com/jacoelho/multicsv/internal/pathspec"
	"github.com/jacoelho/multicsv/internal/report"
)

// Run executes the conversion described by cfg, reading stdin when the
// input file is "-". Nothing is written when parsing or conversion
// fails.
func Run(cfg config.Config, stdin io.Reader) (report.Summary, error) {
	handlers, err := pathspec.Compile(cfg.PathSpecs)
	if err != nil {
		return report.Summary{}, err
	}

	doc, err := readDocument(cfg, stdin)
	if err != nil {
		return report.Summary{}, err
	}

	doc, err = document.Select(doc, cfg.Select)
	if err != nil {
		return report.Summary{}, err
	}

	tables, err := convert.New(handlers, cfg.TableName).Convert(doc)
	if err != nil {
		return report.Summary{}, err
	}

	return writeTables(cfg, tables)
}

func readDocument(cfg config.Config, stdin io.Reader) (any, error) {
	format := cfg.Format

	if cfg.InputFile == "-" {
		if format == "" {
			format = document.FormatJSON
		}
		return document.Decode(stdin, format)
	}

	file, err := os.Open(cfg.InputFile)
	if err != nil {
		return nil, fmt.Errorf("open input file: %w", err)
	}
	defer file.Close()

	if format == "" {
		format = document.DetectFormat(cfg.InputFile)
	}
	return document.Decode(file, format)
}

func writeTables(cfg config.Config, tables *convert.Tables) (report.Summary, error) {
	// Plan every file name first so short-name collisions abort before
	// any output exists.
	planner := csvfile.NewPlanner(cfg.ShortNames)
	filenames := make([]string, 0, tables.Len())
	for _, table := range tables.All() {
		filename, err := planner.Next(table.Parts)
		if err != nil {
			return report.Summary{}, err
		}
		filenames = append(filenames, filename)
	}

	if !cfg.DryRun {
		if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
			return report.Summary{}, fmt.Errorf("create output directory: %w", err)
		}
	}

	summary := report.NewSummary()
	for i, table := range tables.All() {
		filename := filenames[i]
		result := report.TableResult{
			Name:    table.Name(),
			File:    filename,
			Rows:    len(table.Rows),
			Columns: csvfile.ColumnCount(table),
		}

		if !cfg.DryRun {
			written, err := writeTableFile(cfg, filename, table, &summary)
			if err != nil {
				return report.Summary{}, err
			}
			result.Written = written
		}

		summary.Add(result)
	}

	return summary, nil
}

func writeTableFile(cfg config.Config, filename string, table *convert.Table, summary *report.Summary) (bool, error) {
	target := filepath.Join(cfg.OutputDir, filename)

	if !cfg.Overwrite {
		if _, err := os.Stat(target); err == nil {
			summary.AddIssue(report.Issue{
				Code:    report.CodeOutputExists,
				Path:    target,
				Message: fmt.Sprintf("output file exists and --overwrite is false: %s", target),
			})
			return false, nil
		}
	}

	file, err := os.Create(target)
	if err != nil {
		return false, fmt.Errorf("create output file: %w", err)
	}

	if err := csvfile.WriteTable(file, table); err != nil {
		file.Close()
		return false, fmt.Errorf("write %s: %w", target, err)
	}

	if err := file.Close(); err != nil {
		return false, fmt.Errorf("close %s: %w", target, err)
	}

	return true, nil
}
