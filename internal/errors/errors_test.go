package errors

import (
	"strings"
	"testing"

	"github.com/Legendyboi/rutaceae/internal/lexer"
)

func TestCompilerError_Format(t *testing.T) {
	pos := lexer.Position{Line: 3, Column: 5}
	err := Type(pos, "cannot assign %s to %s", "string", "int")

	if err.Kind != KindType {
		t.Errorf("Kind = %q, want %q", err.Kind, KindType)
	}

	got := err.Error()
	for _, want := range []string{"TypeError", "3", "5", "cannot assign string to int"} {
		if !strings.Contains(got, want) {
			t.Errorf("Error() = %q, want it to contain %q", got, want)
		}
	}
}

func TestConstructors_SetDistinctKinds(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	tests := []struct {
		name string
		err  *CompilerError
		kind Kind
	}{
		{"Parse", Parse(pos, "x"), KindParse},
		{"AstBuild", AstBuild(pos, "x"), KindAstBuild},
		{"Name", Name(pos, "x"), KindName},
		{"Type", Type(pos, "x"), KindType},
		{"Mutability", Mutability(pos, "x"), KindMutability},
		{"Arity", Arity(pos, "x"), KindArity},
		{"Control", Control(pos, "x"), KindControl},
	}
	for _, tt := range tests {
		if tt.err.Kind != tt.kind {
			t.Errorf("%s: Kind = %q, want %q", tt.name, tt.err.Kind, tt.kind)
		}
	}
}

func TestWithSource_AttachesCaretContext(t *testing.T) {
	source := "let x = 1;\nlet y = x + ;\n"
	err := Parse(lexer.Position{Line: 2, Column: 13}, "unexpected token")
	err = err.WithSource(source, "test.rut")

	got := err.Format(false)
	if !strings.Contains(got, "let y = x + ;") {
		t.Errorf("Format() = %q, want it to include the offending source line", got)
	}
	if !strings.Contains(got, "test.rut") {
		t.Errorf("Format() = %q, want it to include the filename", got)
	}
}

func TestFormatErrors_JoinsMultiple(t *testing.T) {
	pos := lexer.Position{Line: 1, Column: 1}
	errs := []*CompilerError{
		Name(pos, "undefined name %q", "y"),
		Arity(pos, "wrong argument count"),
	}
	out := FormatErrors(errs, false)
	if !strings.Contains(out, "NameError") || !strings.Contains(out, "ArityError") {
		t.Errorf("FormatErrors() = %q, want both error kinds present", out)
	}
}

func TestAttachSource_SetsSourceOnEveryError(t *testing.T) {
	errs := []*CompilerError{
		Name(lexer.Position{Line: 1, Column: 1}, "a"),
		Type(lexer.Position{Line: 2, Column: 1}, "b"),
	}
	AttachSource(errs, "line one\nline two\n", "f.rut")
	for _, e := range errs {
		if e.File != "f.rut" {
			t.Errorf("File = %q, want %q", e.File, "f.rut")
		}
	}
}
