// Package csvfile renders converted tables as CSV files, deriving
// column order and output names from the table store.
package csvfile

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jacoelho/multicsv/internal/convert"
)

// ErrNameCollision indicates two distinct tables mapping to the same
// output file name.
var ErrNameCollision = errors.New("output name collision")

// Planner derives output file names from table identities with
// collision tracking. In short-name mode only the last identity
// component names the file, so distinct tables can collide; planning
// all names up front lets the caller reject that before writing.
type Planner struct {
	shortNames bool
	used       map[string]string
}

// NewPlanner creates a file name planner.
func NewPlanner(shortNames bool) *Planner {
	return &Planner{shortNames: shortNames, used: make(map[string]string)}
}

// Next returns the output file name for a table identity.
func (p *Planner) Next(parts []string) (string, error) {
	name := strings.Join(parts, ".")
	if p.shortNames && len(parts) > 0 {
		name = parts[len(parts)-1]
	}
	filename := name + ".csv"

	identity := strings.Join(parts, ".")
	if claimed, ok := p.used[filename]; ok {
		return "", fmt.Errorf("%w: tables %q and %q both map to %s; rename a table or drop short names",
			ErrNameCollision, claimed, identity, filename)
	}
	p.used[filename] = identity

	return filename, nil
}

// WriteTable renders one table as CSV. Column order is first-seen field
// order across the table's rows; fields absent from a row render empty.
func WriteTable(w io.Writer, table *convert.Table) error {
	fields := fieldOrder(table.Rows)

	writer := csv.NewWriter(w)
	writer.UseCRLF = true
	if err := writer.Write(fields); err != nil {
		return fmt.Errorf("write header: %w", err)
	}

	record := make([]string, len(fields))
	for _, row := range table.Rows {
		for i, field := range fields {
			record[i] = ""
			if value, ok := row.Get(field); ok {
				record[i] = formatValue(value)
			}
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write row: %w", err)
		}
	}

	writer.Flush()
	return writer.Error()
}

// ColumnCount returns the number of distinct fields across all rows.
func ColumnCount(table *convert.Table) int {
	return len(fieldOrder(table.Rows))
}

func fieldOrder(rows []*convert.Row) []string {
	seen := make(map[string]struct{})
	var fields []string
	for _, row := range rows {
		for pair := row.Oldest(); pair != nil; pair = pair.Next() {
			if _, ok := seen[pair.Key]; ok {
				continue
			}
			seen[pair.Key] = struct{}{}
			fields = append(fields, pair.Key)
		}
	}
	return fields
}

func formatValue(value any) string {
	switch v := value.(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case bool:
		return strconv.FormatBool(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'g', -1, 64)
	default:
		return fmt.Sprintf("%v", v)
	}
}
