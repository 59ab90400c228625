package convert

import (
	"fmt"
	"slices"
	"strings"

	"github.com/jacoelho/multicsv/internal/pathspec"
)

func (c *Converter) noHandlerError(path []string, value any) error {
	valType := "object"
	if _, ok := value.([]any); ok {
		valType = "array"
	}

	specPath := c.suggestSpec(path)
	return &ConvertError{
		Path: "/" + strings.Join(path, "/"),
		Message: fmt.Sprintf(
			"no handler matches the %s at %s\n"+
				"Add a --path option for this location, for example:\n"+
				"  --path '%s:table:NAME'\n"+
				"  --path '%s:column'\n"+
				"  --path '%s:ignore'",
			valType, specPath, specPath, specPath, specPath),
	}
}

// suggestSpec builds a path specification suggestion from a concrete
// path. Positions holding the child key of a table handler above them
// are rendered as the wildcard when the key looks like an array index;
// every other position keeps the literal key.
func (c *Converter) suggestSpec(path []string) string {
	spec := slices.Clone(path)
	for _, handler := range c.handlers {
		table, ok := handler.(pathspec.Table)
		if !ok {
			continue
		}
		n := len(table.Path)
		if n < len(path) && table.Match(path[:n]) && isAllDigits(spec[n]) {
			spec[n] = pathspec.Wildcard
		}
	}
	return "/" + strings.Join(spec, "/")
}

func isAllDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
