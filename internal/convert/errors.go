package convert

// ConvertError reports a document the handler set cannot route:
// a container with no matching handler, a column-name collision within
// one row, or a scalar with no enclosing row. Conversion errors are
// deterministic; a failed conversion produces no table store.
type ConvertError struct {
	Path    string // "/"-joined document path of the offending node
	Message string
}

func (e *ConvertError) Error() string {
	return e.Message
}
