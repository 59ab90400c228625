// Package config parses and validates command line options.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/jacoelho/multicsv/internal/document"
	"github.com/jacoelho/multicsv/internal/report"
)

var (
	ErrNoArguments         = errors.New("no arguments provided")
	ErrHelp                = errors.New("help requested")
	ErrInvalidFormat       = errors.New("--format must be one of: auto, json, yaml")
	ErrInvalidReportFormat = errors.New("--report must be one of: text, json")
)

// Config defines CLI options for one conversion run.
type Config struct {
	InputFile    string // "-" reads stdin
	PathSpecs    []string
	TableName    string
	OutputDir    string
	Format       document.Format // empty means detect from file extension
	Select       string
	ShortNames   bool
	Overwrite    bool
	DryRun       bool
	ReportFormat report.Format
}

// pathList collects repeated --path flags in order.
type pathList []string

func (p *pathList) String() string {
	return strings.Join(*p, ", ")
}

func (p *pathList) Set(value string) error {
	*p = append(*p, value)
	return nil
}

// Parse parses and validates CLI arguments.
func Parse(args []string) (*Config, error) {
	if len(args) == 0 {
		return nil, ErrNoArguments
	}

	fs := flag.NewFlagSet(args[0], flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}

	var paths pathList
	file := fs.String("file", "-", "JSON or YAML input file, - for stdin")
	fs.Var(&paths, "path", "path specification, repeatable: /path:handler[:name[:keyname]]")
	table := fs.String("table", "", "top-level table name")
	out := fs.String("out", ".", "output directory for CSV files")
	format := fs.String("format", "auto", "input format: auto, json or yaml")
	selectExpr := fs.String("select", "", "JSONPath expression selecting the subtree to convert")
	shortNames := fs.Bool("short-names", false, "name output files by the last table name component only")
	overwrite := fs.Bool("overwrite", false, "overwrite existing output files")
	dryRun := fs.Bool("dry-run", false, "convert and report without writing files")
	reportFormat := fs.String("report", "text", "report format: text or json")

	if err := fs.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, ErrHelp
		}
		return nil, fmt.Errorf("parse arguments: %w", err)
	}

	parsedFormat, err := parseFormat(*format)
	if err != nil {
		return nil, err
	}

	parsedReportFormat, err := parseReportFormat(*reportFormat)
	if err != nil {
		return nil, err
	}

	return &Config{
		InputFile:    *file,
		PathSpecs:    []string(paths),
		TableName:    *table,
		OutputDir:    *out,
		Format:       parsedFormat,
		Select:       *selectExpr,
		ShortNames:   *shortNames,
		Overwrite:    *overwrite,
		DryRun:       *dryRun,
		ReportFormat: parsedReportFormat,
	}, nil
}

func parseFormat(input string) (document.Format, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", "auto":
		return "", nil
	case string(document.FormatJSON):
		return document.FormatJSON, nil
	case string(document.FormatYAML):
		return document.FormatYAML, nil
	default:
		return "", fmt.Errorf("%w, got: %s", ErrInvalidFormat, input)
	}
}

func parseReportFormat(input string) (report.Format, error) {
	switch strings.ToLower(strings.TrimSpace(input)) {
	case "", string(report.FormatText):
		return report.FormatText, nil
	case string(report.FormatJSON):
		return report.FormatJSON, nil
	default:
		return "", fmt.Errorf("%w, got: %s", ErrInvalidReportFormat, input)
	}
}

// Usage returns command usage text.
func Usage() string {
	return `multicsv - split a hierarchical JSON or YAML file into multiple CSV files

Usage:
  multicsv --file input.json --path '/:table:item' [--path SPEC]... [options]

Options:
  --file FILE       JSON or YAML input file, - for stdin (default: -)
  --path SPEC       Path specification /path:handler[:name[:keyname]], repeatable.
                    Handlers: table, column, row, ignore
  --table NAME      Top-level table name
  --out DIR         Output directory for CSV files (default: .)
  --format FORMAT   Input format: auto, json or yaml (default: auto)
  --select EXPR     JSONPath expression selecting the subtree to convert
  --short-names     Name output files by the last table name component only
  --overwrite       Overwrite existing output files
  --dry-run         Convert and report without writing files
  --report FORMAT   Report format: text or json (default: text)
  -h, --help        Show this help message`
}
