package convert

import (
	"strings"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Row is one flat output record: an insertion-ordered mapping from
// field name to scalar value. Field insertion order is what the writer
// uses to derive first-seen column order.
type Row = orderedmap.OrderedMap[string, any]

// Table is one named output table with its rows in traversal order.
type Table struct {
	Parts []string // table identity, ordered name components
	Rows  []*Row
}

// Name returns the identity components joined with dots.
func (t *Table) Name() string {
	return strings.Join(t.Parts, ".")
}

// Tables is an insertion-ordered store of output tables, keyed by table
// identity. The first append of an identity fixes the table's emission
// position; rows keep document traversal order.
type Tables struct {
	byIdentity *orderedmap.OrderedMap[string, *Table]
}

// NewTables creates an empty table store.
func NewTables() *Tables {
	return &Tables{byIdentity: orderedmap.New[string, *Table]()}
}

// identityKey must be injective over identities whose components may
// contain any character except '/' and ':'.
func identityKey(parts []string) string {
	return strings.Join(parts, "\x00")
}

func (t *Tables) append(parts []string, row *Row) {
	key := identityKey(parts)
	table, ok := t.byIdentity.Get(key)
	if !ok {
		table = &Table{Parts: parts}
		t.byIdentity.Set(key, table)
	}
	table.Rows = append(table.Rows, row)
}

// Len returns the number of distinct tables.
func (t *Tables) Len() int {
	return t.byIdentity.Len()
}

// All returns the tables in first-appended order.
func (t *Tables) All() []*Table {
	tables := make([]*Table, 0, t.byIdentity.Len())
	for pair := t.byIdentity.Oldest(); pair != nil; pair = pair.Next() {
		tables = append(tables, pair.Value)
	}
	return tables
}

// Lookup finds a table by its identity components.
func (t *Tables) Lookup(parts ...string) (*Table, bool) {
	return t.byIdentity.Get(identityKey(parts))
}
