package codegen

import (
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/Legendyboi/rutaceae/internal/ast"
	"github.com/Legendyboi/rutaceae/internal/errors"
	"github.com/Legendyboi/rutaceae/internal/lexer"
	"github.com/Legendyboi/rutaceae/internal/parser"
)

func mustParse(t *testing.T, src string) *ast.Program {
	t.Helper()
	p := parser.New(lexer.New(src))
	program := p.ParseProgram()
	if errs := p.Errors(); len(errs) != 0 {
		for _, e := range errs {
			t.Errorf("parse error: %s", e.Error())
		}
		t.FailNow()
	}
	return program
}

func generateOrFail(t *testing.T, src string) string {
	t.Helper()
	program := mustParse(t, src)
	module, err := Generate(program)
	if err != nil {
		t.Fatalf("codegen error: %s", err.Error())
	}
	return module.String()
}

func TestGenerate_SimpleReturn(t *testing.T) {
	ir := generateOrFail(t, `fn int main() { return 42; }`)
	snaps.MatchSnapshot(t, ir)
}

func TestGenerate_ArithmeticAndCall(t *testing.T) {
	ir := generateOrFail(t, `
		fn int add(int a, int b) { return a + b; }
		fn int main() { return add(2, 3) * 10; }
	`)
	snaps.MatchSnapshot(t, ir)
}

func TestGenerate_IfElse(t *testing.T) {
	ir := generateOrFail(t, `
		fn int main() {
			let x: int = 5;
			if (x > 0) {
				return 1;
			} else {
				return -1;
			}
		}
	`)
	snaps.MatchSnapshot(t, ir)
}

func TestGenerate_WhileLoop(t *testing.T) {
	ir := generateOrFail(t, `
		fn int main() {
			let i = 0;
			let sum = 0;
			while (i < 10) {
				sum += i;
				i++;
			}
			return sum;
		}
	`)
	snaps.MatchSnapshot(t, ir)
}

func TestGenerate_ForLoopWithBreakContinue(t *testing.T) {
	ir := generateOrFail(t, `
		fn void main() {
			for (let i = 0; i < 10; i++) {
				if (i == 5) { break; }
				if (i % 2 == 0) { continue; }
				print(i);
			}
		}
	`)
	snaps.MatchSnapshot(t, ir)
}

func TestGenerate_PromotionIntFloat(t *testing.T) {
	ir := generateOrFail(t, `
		fn float main() {
			let x: int = 2;
			let y: float = 3.5;
			return x + y;
		}
	`)
	snaps.MatchSnapshot(t, ir)
}

func TestGenerate_Casts(t *testing.T) {
	ir := generateOrFail(t, `
		fn void main() {
			let a = float(5);
			let b = int(3.9);
			let c = bool(0);
			let d = int(true);
		}
	`)
	snaps.MatchSnapshot(t, ir)
}

func TestGenerate_PrintFanOut(t *testing.T) {
	ir := generateOrFail(t, `
		fn void main() {
			print("hello");
			print(1, 2.5, "three", true);
		}
	`)
	snaps.MatchSnapshot(t, ir)
}

func TestGenerate_UndefinedName(t *testing.T) {
	program := mustParse(t, `fn int main() { return y; }`)
	_, err := Generate(program)
	if err == nil || err.Kind != errors.KindName {
		t.Fatalf("got %v, want a NameError", err)
	}
}

func TestGenerate_MutabilityError(t *testing.T) {
	program := mustParse(t, `fn void main() { const x = 1; x = 2; }`)
	_, err := Generate(program)
	if err == nil || err.Kind != errors.KindMutability {
		t.Fatalf("got %v, want a MutabilityError", err)
	}
}

func TestGenerate_ArityError(t *testing.T) {
	program := mustParse(t, `
		fn int add(int a, int b) { return a + b; }
		fn int main() { return add(1); }
	`)
	_, err := Generate(program)
	if err == nil || err.Kind != errors.KindArity {
		t.Fatalf("got %v, want an ArityError", err)
	}
}

func TestGenerate_ControlErrorBreakOutsideLoop(t *testing.T) {
	program := mustParse(t, `fn void main() { break; }`)
	_, err := Generate(program)
	if err == nil || err.Kind != errors.KindControl {
		t.Fatalf("got %v, want a ControlError", err)
	}
}

func TestGenerate_TypeErrorMismatchedOperands(t *testing.T) {
	program := mustParse(t, `fn void main() { let x = "a" + 1; }`)
	_, err := Generate(program)
	if err == nil || err.Kind != errors.KindType {
		t.Fatalf("got %v, want a TypeError", err)
	}
}

func TestGenerate_RedeclarationInSameScope(t *testing.T) {
	program := mustParse(t, `fn int main() { let x = 1; let x = 2; return x; }`)
	_, err := Generate(program)
	if err == nil || err.Kind != errors.KindName {
		t.Fatalf("got %v, want a NameError for redeclaring x in the same scope", err)
	}
}

func TestGenerate_ForLoopInitScopedToLoop(t *testing.T) {
	// i is declared in the for-statement's own scope; declaring it again
	// after the loop is a fresh declaration in main's scope, not a
	// redeclaration, since the loop's scope already closed.
	program := mustParse(t, `
		fn void main() {
			for (let i = 0; i < 3; i++) { }
			let i = 1;
		}
	`)
	_, err := Generate(program)
	if err != nil {
		t.Fatalf("expected no error (i re-declared after loop scope closed), got %v", err)
	}
}
