package pathspec

import (
	"errors"
	"reflect"
	"strings"
	"testing"
)

func TestParseValidSpecs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		spec string
		want Handler
	}{
		{spec: "/:table:item", want: Table{Name: "item"}},
		{spec: "/*/rating:column", want: Column{Path: []string{"*", "rating"}}},
		{spec: "/games:table:game", want: Table{Path: []string{"games"}, Name: "game"}},
		{spec: "/games/*/players:column", want: Column{Path: []string{"games", "*", "players"}}},
		{spec: "/:row", want: Row{}},
		{spec: "/secret:ignore", want: Ignore{Path: []string{"secret"}}},
		{spec: "/:table:form:rptId", want: Table{Name: "form", KeyName: "rptId"}},
		{spec: "/:table:form", want: Table{Name: "form"}},
	}

	for _, tt := range tests {
		t.Run(tt.spec, func(t *testing.T) {
			t.Parallel()

			got, err := Parse(tt.spec)
			if err != nil {
				t.Fatalf("Parse(%q) error = %v", tt.spec, err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("Parse(%q) = %#v, want %#v", tt.spec, got, tt.want)
			}
		})
	}
}

func TestParseInvalidSpecs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		spec       string
		wantText   string
		wantOffset int
	}{
		{name: "missing leading slash", spec: "games:table:game", wantText: `expected "/"`, wantOffset: 0},
		{name: "trailing slash", spec: "/games/:table:game", wantText: "expected text", wantOffset: 7},
		{name: "unknown handler kind", spec: "/:bogus", wantText: "unknown handler kind", wantOffset: 2},
		{name: "table without name", spec: "/:table", wantText: `expected ":"`, wantOffset: 7},
		{name: "column with name", spec: "/foo:column:bar", wantText: "does not take extra arguments", wantOffset: 11},
		{name: "empty segment double slash", spec: "//foo:column", wantText: "expected text", wantOffset: 1},
		{name: "missing handler", spec: "/foo", wantText: `expected ":"`, wantOffset: 4},
		{name: "too many parts", spec: "/:table:name:key:extra", wantText: "unexpected content", wantOffset: 16},
		{name: "empty key name", spec: "/:table:name:", wantText: "expected text", wantOffset: 13},
		{name: "bare root no handler", spec: "/", wantText: `expected ":"`, wantOffset: 1},
		{name: "empty string", spec: "", wantText: `expected "/"`, wantOffset: 0},
		{name: "row with argument", spec: "/:row:extra", wantText: "does not take extra arguments", wantOffset: 5},
		{name: "ignore with argument", spec: "/x:ignore:y", wantText: "does not take extra arguments", wantOffset: 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := Parse(tt.spec)
			if err == nil {
				t.Fatalf("Parse(%q) expected error", tt.spec)
			}

			var specErr *SpecError
			if !errors.As(err, &specErr) {
				t.Fatalf("Parse(%q) error type = %T, want *SpecError", tt.spec, err)
			}
			if !strings.Contains(specErr.Message, tt.wantText) {
				t.Fatalf("Parse(%q) message = %q, want substring %q", tt.spec, specErr.Message, tt.wantText)
			}
			if specErr.Offset != tt.wantOffset {
				t.Fatalf("Parse(%q) offset = %d, want %d", tt.spec, specErr.Offset, tt.wantOffset)
			}
			if specErr.Spec != tt.spec {
				t.Fatalf("Parse(%q) error spec = %q", tt.spec, specErr.Spec)
			}
		})
	}
}

func TestSpecErrorRendersCaret(t *testing.T) {
	t.Parallel()

	_, err := Parse("/:bogus")
	if err == nil {
		t.Fatal("Parse() expected error")
	}

	lines := strings.Split(err.Error(), "\n")
	if len(lines) < 3 {
		t.Fatalf("error rendering = %q, want three lines", err.Error())
	}
	if lines[0] != "  /:bogus" {
		t.Fatalf("first line = %q", lines[0])
	}
	if lines[1] != "    ^" {
		t.Fatalf("caret line = %q", lines[1])
	}
}

func TestParseIsDeterministic(t *testing.T) {
	t.Parallel()

	first, err := Parse("/games/*/players:table:player:pId")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	second, err := Parse("/games/*/players:table:player:pId")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Fatalf("repeated Parse() differs: %#v vs %#v", first, second)
	}
}

func TestCompileExpandsFallbacks(t *testing.T) {
	t.Parallel()

	handlers, err := Compile([]string{"/:table:item", "/*/rating:column"})
	if err != nil {
		t.Fatalf("Compile() error = %v", err)
	}

	if len(handlers) != 4 {
		t.Fatalf("len(handlers) = %d, want 4", len(handlers))
	}

	fallback, ok := handlers[1].(Column)
	if !ok || !fallback.IsFallback {
		t.Fatalf("handlers[1] = %#v, want fallback column", handlers[1])
	}
	if !reflect.DeepEqual(fallback.Path, []string{"*"}) {
		t.Fatalf("fallback components = %v, want [*]", fallback.Path)
	}

	fallback, ok = handlers[3].(Column)
	if !ok || !fallback.IsFallback {
		t.Fatalf("handlers[3] = %#v, want fallback column", handlers[3])
	}
	if !reflect.DeepEqual(fallback.Path, []string{"*", "rating", "*"}) {
		t.Fatalf("fallback components = %v", fallback.Path)
	}
}

func TestCompileReportsFirstBadSpec(t *testing.T) {
	t.Parallel()

	_, err := Compile([]string{"/:table:item", "/:bogus"})

	var specErr *SpecError
	if !errors.As(err, &specErr) {
		t.Fatalf("Compile() error = %v, want *SpecError", err)
	}
	if specErr.Spec != "/:bogus" {
		t.Fatalf("error spec = %q, want /:bogus", specErr.Spec)
	}
}
