// Package pathspec compiles textual path specifications like
// "/games/*/players:column" into routing handlers for the converter.
package pathspec

// Wildcard matches any single path segment.
const Wildcard = "*"

// Handler is a compiled routing rule. The concrete kinds form a closed
// set: Table, Column, Row and Ignore.
type Handler interface {
	// Components returns the literal/wildcard segment matchers.
	Components() []string

	// Match reports whether the rule applies to a concrete path.
	// Matching is length-strict: a path of a different length than the
	// components never matches.
	Match(path []string) bool

	// Fallback reports whether the rule is an auto-generated catch-all
	// column handler. Fallback rules lose against any non-fallback rule
	// matching the same path.
	Fallback() bool
}

// Table routes each child of the matched node into a row of a named
// child table.
type Table struct {
	Path    []string
	Name    string
	KeyName string // overrides the generated ancestor-key column name
}

func (h Table) Components() []string { return h.Path }
func (h Table) Match(path []string) bool { return match(h.Path, path) }
func (h Table) Fallback() bool { return false }

// Column flattens the matched node's children into dot-joined column
// names on the enclosing row.
type Column struct {
	Path       []string
	IsFallback bool
}

func (h Column) Components() []string { return h.Path }
func (h Column) Match(path []string) bool { return match(h.Path, path) }
func (h Column) Fallback() bool { return h.IsFallback }

// Row turns the matched node into exactly one row of the current table.
type Row struct {
	Path []string
}

func (h Row) Components() []string { return h.Path }
func (h Row) Match(path []string) bool { return match(h.Path, path) }
func (h Row) Fallback() bool { return false }

// Ignore drops the matched node and its entire subtree.
type Ignore struct {
	Path []string
}

func (h Ignore) Components() []string { return h.Path }
func (h Ignore) Match(path []string) bool { return match(h.Path, path) }
func (h Ignore) Fallback() bool { return false }

func match(components, path []string) bool {
	if len(path) != len(components) {
		return false
	}

	for i, component := range components {
		if component != Wildcard && component != path[i] {
			return false
		}
	}

	return true
}

// Handlers is an ordered registry of routing rules.
type Handlers []Handler

// Find resolves the handler for a concrete path. The first non-fallback
// match wins immediately; a matching fallback is only returned when no
// non-fallback rule matches at all.
func (hs Handlers) Find(path []string) (Handler, bool) {
	var fallback Handler
	for _, handler := range hs {
		if !handler.Match(path) {
			continue
		}
		if handler.Fallback() {
			fallback = handler
			continue
		}
		return handler, true
	}

	if fallback != nil {
		return fallback, true
	}

	return nil, false
}
