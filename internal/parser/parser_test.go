package parser

import (
	"testing"

	"github.com/Legendyboi/rutaceae/internal/ast"
	"github.com/Legendyboi/rutaceae/internal/lexer"
)

func checkParserErrors(t *testing.T, p *Parser) {
	t.Helper()
	errs := p.Errors()
	if len(errs) == 0 {
		return
	}
	for _, e := range errs {
		t.Errorf("parser error: %s", e.Error())
	}
	t.FailNow()
}

func parseProgram(t *testing.T, input string) *ast.Program {
	t.Helper()
	p := New(lexer.New(input))
	program := p.ParseProgram()
	checkParserErrors(t, p)
	return program
}

func TestParseFunctionDef_NoParams(t *testing.T) {
	program := parseProgram(t, `fn int main() { return 0; }`)

	if len(program.Functions) != 1 {
		t.Fatalf("got %d functions, want 1", len(program.Functions))
	}
	fn := program.Functions[0]
	if fn.Name != "main" || fn.ReturnType != ast.TypeInt || len(fn.Parameters) != 0 {
		t.Fatalf("unexpected function: %+v", fn)
	}
	if len(fn.Body.Statements) != 1 {
		t.Fatalf("got %d statements, want 1", len(fn.Body.Statements))
	}
	ret, ok := fn.Body.Statements[0].(*ast.ReturnStatement)
	if !ok {
		t.Fatalf("statement is %T, want *ast.ReturnStatement", fn.Body.Statements[0])
	}
	lit, ok := ret.Value.(*ast.IntegerLiteral)
	if !ok || lit.Value != 0 {
		t.Fatalf("return value is %+v, want int literal 0", ret.Value)
	}
}

func TestParseFunctionDef_Params(t *testing.T) {
	program := parseProgram(t, `fn int add(int a, int b) { return a + b; }`)

	fn := program.Functions[0]
	if len(fn.Parameters) != 2 {
		t.Fatalf("got %d params, want 2", len(fn.Parameters))
	}
	if fn.Parameters[0].Name.Value != "a" || fn.Parameters[0].Type != ast.TypeInt {
		t.Fatalf("param 0: %+v", fn.Parameters[0])
	}
	if fn.Parameters[1].Name.Value != "b" || fn.Parameters[1].Type != ast.TypeInt {
		t.Fatalf("param 1: %+v", fn.Parameters[1])
	}
}

func TestParseDeclStatement_ExplicitType(t *testing.T) {
	program := parseProgram(t, `fn void main() { let x: float = 3.5; }`)

	decl := program.Functions[0].Body.Statements[0].(*ast.DeclStatement)
	if decl.Name != "x" || decl.Type != ast.TypeFloat || decl.IsConst {
		t.Fatalf("unexpected decl: %+v", decl)
	}
}

func TestParseDeclStatement_InferredType(t *testing.T) {
	tests := []struct {
		input string
		want  ast.TypeTag
	}{
		{`let x = true;`, ast.TypeBool},
		{`let x = 3.14;`, ast.TypeFloat},
		{`let x = "hi";`, ast.TypeString},
		{`let x = 5;`, ast.TypeInt},
		{`let x;`, ast.TypeInt},
	}

	for _, tt := range tests {
		program := parseProgram(t, "fn void main() { "+tt.input+" }")
		decl := program.Functions[0].Body.Statements[0].(*ast.DeclStatement)
		if decl.Type != tt.want {
			t.Errorf("input %q: got type %s, want %s", tt.input, decl.Type, tt.want)
		}
	}
}

func TestParseDeclStatement_ConstRequiresInitializer(t *testing.T) {
	p := New(lexer.New(`fn void main() { const x: int; }`))
	p.ParseProgram()
	errs := p.Errors()
	if len(errs) != 1 || errs[0].Kind != "AstBuildError" {
		t.Fatalf("got %v, want one AstBuildError", errs)
	}
}

func TestParseForStatement_EmptyInit(t *testing.T) {
	program := parseProgram(t, `fn void main() { for (; x < 10; x++) { } }`)
	forStmt := program.Functions[0].Body.Statements[0].(*ast.ForStatement)
	if forStmt.Init != nil {
		t.Fatalf("expected nil Init, got %+v", forStmt.Init)
	}
}

func TestParseForStatement_Full(t *testing.T) {
	program := parseProgram(t, `fn void main() { for (let i = 0; i < 10; i += 1) { print(i); } }`)
	forStmt := program.Functions[0].Body.Statements[0].(*ast.ForStatement)

	decl, ok := forStmt.Init.(*ast.DeclStatement)
	if !ok || decl.Name != "i" {
		t.Fatalf("unexpected init: %+v", forStmt.Init)
	}
	update, ok := forStmt.Update.(*ast.CompoundAssignStatement)
	if !ok || update.Operator != "+=" {
		t.Fatalf("unexpected update: %+v", forStmt.Update)
	}
}

func TestParseIfElse(t *testing.T) {
	program := parseProgram(t, `fn void main() { if (x > 0) { print(x); } else { print(0); } }`)
	ifStmt := program.Functions[0].Body.Statements[0].(*ast.IfStatement)
	if ifStmt.Else == nil {
		t.Fatalf("expected an else block")
	}
}

func TestParsePrintStatement_MultipleArgs(t *testing.T) {
	program := parseProgram(t, `fn void main() { print(1, 2, "three"); }`)
	print := program.Functions[0].Body.Statements[0].(*ast.PrintStatement)
	if len(print.Args) != 3 {
		t.Fatalf("got %d args, want 3", len(print.Args))
	}
}

func TestParseBinaryPrecedence(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"1 + 2 * 3", "(1 + (2 * 3))"},
		{"1 * 2 + 3", "((1 * 2) + 3)"},
		{"1 < 2 == 3 < 4", "((1 < 2) == (3 < 4))"},
		{"1 + 2 == 3 && 4 < 5", "(((1 + 2) == 3) && (4 < 5))"},
		{"a || b && c", "(a || (b && c))"},
	}

	for _, tt := range tests {
		program := parseProgram(t, "fn void main() { let x = "+tt.input+"; }")
		stmt := program.Functions[0].Body.Statements[0].(*ast.DeclStatement)
		if got := stmt.Init.String(); got != tt.want {
			t.Errorf("input %q: got %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestParseUnaryExpression(t *testing.T) {
	program := parseProgram(t, `fn void main() { let x = -5; let y = !true; }`)
	decl1 := program.Functions[0].Body.Statements[0].(*ast.DeclStatement)
	unary, ok := decl1.Init.(*ast.UnaryExpr)
	if !ok || unary.Operator != "-" {
		t.Fatalf("unexpected init: %+v", decl1.Init)
	}
}

func TestParseCallExpression(t *testing.T) {
	program := parseProgram(t, `fn void main() { let x = add(1, 2 * 3); }`)
	decl := program.Functions[0].Body.Statements[0].(*ast.DeclStatement)
	call, ok := decl.Init.(*ast.CallExpr)
	if !ok || call.Callee != "add" || len(call.Args) != 2 {
		t.Fatalf("unexpected call: %+v", decl.Init)
	}
}

func TestParseCastExpression(t *testing.T) {
	program := parseProgram(t, `fn void main() { let x = float(5); let y = int(3.9); }`)

	decl1 := program.Functions[0].Body.Statements[0].(*ast.DeclStatement)
	cast1, ok := decl1.Init.(*ast.CastExpr)
	if !ok || cast1.TargetType != ast.TypeFloat {
		t.Fatalf("unexpected cast: %+v", decl1.Init)
	}

	decl2 := program.Functions[0].Body.Statements[1].(*ast.DeclStatement)
	cast2, ok := decl2.Init.(*ast.CastExpr)
	if !ok || cast2.TargetType != ast.TypeInt {
		t.Fatalf("unexpected cast: %+v", decl2.Init)
	}
}

func TestParseStringLiteral_EscapeDecoding(t *testing.T) {
	program := parseProgram(t, `fn void main() { print("a\nb\tc"); }`)
	print := program.Functions[0].Body.Statements[0].(*ast.PrintStatement)
	str := print.Args[0].(*ast.StringLiteral)
	if str.Value != "a\nb\tc" {
		t.Fatalf("got %q", str.Value)
	}
	if str.Token.Literal != `a\nb\tc` {
		t.Fatalf("raw token literal was decoded in place: %q", str.Token.Literal)
	}
}

func TestParseAssignmentForms(t *testing.T) {
	program := parseProgram(t, `fn void main() {
		x = 1;
		x += 1;
		x++;
		x--;
	}`)
	stmts := program.Functions[0].Body.Statements
	if len(stmts) != 4 {
		t.Fatalf("got %d statements, want 4", len(stmts))
	}
	if _, ok := stmts[0].(*ast.AssignStatement); !ok {
		t.Errorf("stmt 0 is %T", stmts[0])
	}
	if _, ok := stmts[1].(*ast.CompoundAssignStatement); !ok {
		t.Errorf("stmt 1 is %T", stmts[1])
	}
	inc, ok := stmts[2].(*ast.IncDecStatement)
	if !ok || !inc.Increment {
		t.Errorf("stmt 2 is %+v", stmts[2])
	}
	dec, ok := stmts[3].(*ast.IncDecStatement)
	if !ok || dec.Increment {
		t.Errorf("stmt 3 is %+v", stmts[3])
	}
}

func TestParseMultipleFunctions(t *testing.T) {
	program := parseProgram(t, `
		fn int helper() { return 1; }
		fn void main() { print(helper()); }
	`)
	if len(program.Functions) != 2 {
		t.Fatalf("got %d functions, want 2", len(program.Functions))
	}
}

func TestParseProgram_ErrorRecovery(t *testing.T) {
	// Two malformed statements in sequence should both be reported rather
	// than the second being swallowed by a cascade from the first.
	p := New(lexer.New(`fn void main() { @; @; }`))
	p.ParseProgram()
	if len(p.Errors()) < 2 {
		t.Fatalf("got %d errors, want at least 2", len(p.Errors()))
	}
}
