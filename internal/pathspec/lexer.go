package pathspec

import "fmt"

// lexer is a demand-driven scanner over one path specification. The
// grammar's delimiters are all ASCII, so it works on bytes and leaves
// multi-byte runes intact inside segments.
type lexer struct {
	spec string
	pos  int
}

func (l *lexer) atEnd() bool {
	return l.pos >= len(l.spec)
}

func (l *lexer) peek() (byte, bool) {
	if l.atEnd() {
		return 0, false
	}
	return l.spec[l.pos], true
}

func (l *lexer) errorf(format string, args ...any) *SpecError {
	return &SpecError{
		Spec:    l.spec,
		Offset:  l.pos,
		Message: fmt.Sprintf(format, args...),
	}
}

// describeNext renders the upcoming character for diagnostics.
func (l *lexer) describeNext() string {
	ch, ok := l.peek()
	if !ok {
		return "end of string"
	}
	return fmt.Sprintf("%q", string(ch))
}

func (l *lexer) expect(ch byte) error {
	if got, ok := l.peek(); !ok || got != ch {
		return l.errorf("expected %q, got %s", string(ch), l.describeNext())
	}
	l.pos++
	return nil
}

// readText consumes a non-empty run of characters excluding '/' and ':'.
func (l *lexer) readText() (string, error) {
	start := l.pos
	for l.pos < len(l.spec) && l.spec[l.pos] != '/' && l.spec[l.pos] != ':' {
		l.pos++
	}
	if l.pos == start {
		return "", l.errorf("expected text, got %s", l.describeNext())
	}
	return l.spec[start:l.pos], nil
}
