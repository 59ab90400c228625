package pathspec

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// SpecError reports a malformed path specification. It carries the
// original text and the byte offset of the fault so the rendered
// message can point a caret at the offending character.
type SpecError struct {
	Spec    string
	Offset  int
	Message string
}

func (e *SpecError) Error() string {
	column := utf8.RuneCountInString(e.Spec[:e.Offset])
	return fmt.Sprintf("  %s\n  %s^\n%s", e.Spec, strings.Repeat(" ", column), e.Message)
}
