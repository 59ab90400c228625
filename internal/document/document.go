// Package document decodes hierarchical input into a generic value
// tree and optionally narrows it with a JSONPath selection before
// conversion.
package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/theory/jsonpath"
)

// ErrDecode indicates document decoding failures.
var ErrDecode = errors.New("document decode error")

// Format selects the input codec.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DetectFormat picks a format from a filename extension, defaulting to
// JSON for unknown extensions and streams without a name.
func DetectFormat(filename string) Format {
	switch strings.ToLower(filepath.Ext(filename)) {
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatJSON
	}
}

// Decode reads one document into a generic tree of maps, slices and
// scalars. JSON numbers are kept as json.Number so they round-trip into
// output verbatim.
func Decode(r io.Reader, format Format) (any, error) {
	switch format {
	case FormatYAML:
		payload, err := io.ReadAll(r)
		if err != nil {
			return nil, fmt.Errorf("%w: read input: %v", ErrDecode, err)
		}

		var doc any
		if err := yaml.Unmarshal(payload, &doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return doc, nil
	default:
		decoder := json.NewDecoder(r)
		decoder.UseNumber()

		var doc any
		if err := decoder.Decode(&doc); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		return doc, nil
	}
}

// Select narrows the document to the first value matching a JSONPath
// expression. An empty expression returns the document unchanged.
func Select(doc any, expr string) (any, error) {
	if strings.TrimSpace(expr) == "" {
		return doc, nil
	}

	path, err := jsonpath.Parse(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid JSONPath %s: %w", expr, err)
	}

	results := path.Select(doc)
	if len(results) == 0 {
		return nil, fmt.Errorf("JSONPath %s matched nothing", expr)
	}

	return results[0], nil
}
