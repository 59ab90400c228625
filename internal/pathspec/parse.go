package pathspec

import "slices"

const validKinds = "column, ignore, row, table"

// Parse compiles one path specification like "/:table:item" or
// "/games/*/players:column" into a Handler. Every malformed input fails
// with a *SpecError pointing at the offending character; Parse never
// fails any other way, for any input.
func Parse(spec string) (Handler, error) {
	lx := &lexer{spec: spec}

	if err := lx.expect('/'); err != nil {
		return nil, err
	}

	var components []string
	for {
		ch, ok := lx.peek()
		if !ok || ch == ':' {
			break
		}

		segment, err := lx.readText()
		if err != nil {
			return nil, err
		}
		components = append(components, segment)

		if ch, ok := lx.peek(); ok && ch == '/' {
			lx.pos++
			// A slash must introduce another segment, not trail off
			// into the kind separator or the end of the spec.
			if ch, ok := lx.peek(); !ok || ch == ':' {
				return nil, lx.errorf("expected text, got %s", lx.describeNext())
			}
		}
	}

	if err := lx.expect(':'); err != nil {
		return nil, err
	}

	kindStart := lx.pos
	kind, err := lx.readText()
	if err != nil {
		return nil, err
	}

	switch kind {
	case "table":
		return parseTable(lx, components)
	case "column":
		if !lx.atEnd() {
			return nil, lx.errorf("'column' handler does not take extra arguments")
		}
		return Column{Path: components}, nil
	case "row":
		if !lx.atEnd() {
			return nil, lx.errorf("'row' handler does not take extra arguments")
		}
		return Row{Path: components}, nil
	case "ignore":
		if !lx.atEnd() {
			return nil, lx.errorf("'ignore' handler does not take extra arguments")
		}
		return Ignore{Path: components}, nil
	default:
		lx.pos = kindStart
		return nil, lx.errorf("unknown handler kind %q, expected one of: %s", kind, validKinds)
	}
}

func parseTable(lx *lexer, components []string) (Handler, error) {
	if err := lx.expect(':'); err != nil {
		return nil, err
	}

	name, err := lx.readText()
	if err != nil {
		return nil, err
	}

	var keyName string
	if ch, ok := lx.peek(); ok && ch == ':' {
		lx.pos++
		keyName, err = lx.readText()
		if err != nil {
			return nil, err
		}
	}

	if !lx.atEnd() {
		return nil, lx.errorf("unexpected content")
	}

	return Table{Path: components, Name: name, KeyName: keyName}, nil
}

// Compile parses a list of path specifications and expands each parsed
// handler with an auto-generated fallback column handler one segment
// deeper, so children with no explicit route become flattened columns.
func Compile(specs []string) (Handlers, error) {
	handlers := make(Handlers, 0, 2*len(specs))
	for _, spec := range specs {
		handler, err := Parse(spec)
		if err != nil {
			return nil, err
		}

		fallbackPath := append(slices.Clone(handler.Components()), Wildcard)
		handlers = append(handlers, handler, Column{Path: fallbackPath, IsFallback: true})
	}

	return handlers, nil
}
