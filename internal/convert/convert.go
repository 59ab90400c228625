// Package convert walks a decoded document tree top-down and routes
// every node through compiled path handlers into named, insertion-
// ordered output tables.
package convert

import (
	"fmt"
	"slices"
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/jacoelho/multicsv/internal/pathspec"
	"github.com/jacoelho/multicsv/internal/stack"
)

// Converter transforms one document into a table store. A converter
// owns its state for exactly one Convert call; it is not safe for
// concurrent use.
type Converter struct {
	handlers  pathspec.Handlers
	rootParts []string
	tables    *Tables
}

// New creates a converter. A non-empty tableName seeds the initial
// table identity so a root row handler or scalar-producing root has a
// name to attach to.
func New(handlers pathspec.Handlers, tableName string) *Converter {
	var rootParts []string
	if tableName != "" {
		rootParts = []string{tableName}
	}
	return &Converter{handlers: handlers, rootParts: rootParts}
}

// keyColumn is one ancestor key column: the column name derived from a
// table boundary and the child key that produced the row.
type keyColumn struct {
	name string
	key  string
}

// frame is the per-node traversal state. The walk uses an explicit
// work stack instead of native recursion so document nesting depth is
// bounded by heap, not by the call stack.
type frame struct {
	value     any
	path      []string
	parts     []string
	ancestors []keyColumn
	field     string
	hasField  bool
	row       *Row

	// appendRow pre-appends a fresh row for a table handler's child on
	// entry, before any handler lookup, matching traversal order.
	appendRow bool
	// storeAs names the field for a table handler's scalar child, which
	// is stored directly without further routing.
	storeAs string
}

// Convert walks the document depth-first and returns the resulting
// table store. On error no partial store is returned.
func (c *Converter) Convert(doc any) (*Tables, error) {
	c.tables = NewTables()

	frames := stack.NewWithCapacity[frame](16)
	frames.Push(frame{value: doc, parts: c.rootParts})

	for {
		f, ok := frames.Pop()
		if !ok {
			break
		}
		if err := c.step(f, frames); err != nil {
			c.tables = nil
			return nil, err
		}
	}

	tables := c.tables
	c.tables = nil
	return tables, nil
}

func (c *Converter) step(f frame, frames *stack.Stack[frame]) error {
	if f.appendRow {
		f.row = rowFromKeys(f.ancestors)
		c.tables.append(f.parts, f.row)
		if f.storeAs != "" {
			f.row.Set(f.storeAs, f.value)
			return nil
		}
	}

	handler, found := c.handlers.Find(f.path)
	if found {
		if _, ok := handler.(pathspec.Ignore); ok {
			return nil
		}
	}

	children, container := childPairs(f.value)
	if !container {
		return c.assignScalar(f)
	}

	if !found {
		return c.noHandlerError(f.path, f.value)
	}

	switch h := handler.(type) {
	case pathspec.Table:
		c.pushTableChildren(frames, f, h, children)
	case pathspec.Column:
		if h.IsFallback {
			if _, isArray := f.value.([]any); isArray {
				return c.noHandlerError(f.path, f.value)
			}
		}
		c.pushColumnChildren(frames, f, children)
	case pathspec.Row:
		row := rowFromKeys(f.ancestors)
		c.tables.append(f.parts, row)
		c.pushRowChildren(frames, f, row, children)
	}

	return nil
}

func (c *Converter) assignScalar(f frame) error {
	jsonPath := "/" + strings.Join(f.path, "/")

	if f.row == nil {
		return &ConvertError{
			Path: jsonPath,
			Message: fmt.Sprintf(
				"no enclosing row for the value at %s; a 'table' or 'row' handler must apply above this location",
				jsonPath),
		}
	}

	if _, exists := f.row.Get(f.field); exists {
		return &ConvertError{
			Path: jsonPath,
			Message: fmt.Sprintf(
				"column name %q already exists in table %q at %s\n"+
					"This can happen when a key contains '.' and collides with a flattened nested path.",
				f.field, strings.Join(f.parts, "."), jsonPath),
		}
	}

	f.row.Set(f.field, f.value)
	return nil
}

func (c *Converter) pushTableChildren(frames *stack.Stack[frame], f frame, h pathspec.Table, children []pair) {
	childParts := extend(f.parts, h.Name)
	colName := h.KeyName
	if colName == "" {
		colName = defaultKeyName(childParts, len(f.ancestors))
	}

	next := make([]frame, 0, len(children))
	for _, child := range children {
		next = append(next, frame{
			value:     child.value,
			path:      extend(f.path, child.key),
			parts:     childParts,
			ancestors: append(slices.Clone(f.ancestors), keyColumn{name: colName, key: child.key}),
			appendRow: true,
			storeAs:   scalarStoreName(child.value, h.Name),
		})
	}
	pushInOrder(frames, next)
}

func (c *Converter) pushColumnChildren(frames *stack.Stack[frame], f frame, children []pair) {
	next := make([]frame, 0, len(children))
	for _, child := range children {
		field := child.key
		if f.hasField {
			field = f.field + "." + child.key
		}
		next = append(next, frame{
			value:     child.value,
			path:      extend(f.path, child.key),
			parts:     f.parts,
			ancestors: f.ancestors,
			field:     field,
			hasField:  true,
			row:       f.row,
		})
	}
	pushInOrder(frames, next)
}

func (c *Converter) pushRowChildren(frames *stack.Stack[frame], f frame, row *Row, children []pair) {
	next := make([]frame, 0, len(children))
	for _, child := range children {
		next = append(next, frame{
			value:     child.value,
			path:      extend(f.path, child.key),
			parts:     f.parts,
			ancestors: f.ancestors,
			field:     child.key,
			hasField:  true,
			row:       row,
		})
	}
	pushInOrder(frames, next)
}

// pushInOrder pushes frames so the first child is processed first,
// preserving depth-first document order on the LIFO work stack.
func pushInOrder(frames *stack.Stack[frame], next []frame) {
	slices.Reverse(next)
	frames.Push(next...)
}

// defaultKeyName derives the ancestor key column name for a table
// boundary: the identity prefix one component longer than the inherited
// key columns, dot-joined, with a "._key" suffix.
func defaultKeyName(childParts []string, inherited int) string {
	n := min(inherited+1, len(childParts))
	return strings.Join(childParts[:n], ".") + "._key"
}

func rowFromKeys(ancestors []keyColumn) *Row {
	row := orderedmap.New[string, any]()
	for _, kc := range ancestors {
		row.Set(kc.name, kc.key)
	}
	return row
}

// scalarStoreName returns the table name when the child is a scalar,
// meaning it is stored directly in its row instead of being recursed.
func scalarStoreName(value any, tableName string) string {
	switch value.(type) {
	case map[string]any, []any:
		return ""
	default:
		return tableName
	}
}

func extend(base []string, elem string) []string {
	extended := make([]string, len(base)+1)
	copy(extended, base)
	extended[len(base)] = elem
	return extended
}
