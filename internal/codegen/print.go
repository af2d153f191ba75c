package codegen

import (
	"github.com/llir/llvm/ir"
	irtypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/Legendyboi/rutaceae/internal/ast"
	"github.com/Legendyboi/rutaceae/internal/errors"
)

// printf lazily declares the variadic libc printf used to implement the
// print builtin (spec.md §4.3.5 — the language's only stdlib surface).
func (g *Generator) printf() *ir.Func {
	if g.printfFunc != nil {
		return g.printfFunc
	}
	fn := g.module.NewFunc("printf", irtypes.I32, ir.NewParam("format", irtypes.NewPointer(irtypes.I8)))
	fn.Sig.Variadic = true
	g.printfFunc = fn
	return fn
}

// formatSpec returns the printf conversion specifier for a lowered
// value's type, widening a bool to int first since printf has no bool
// conversion.
func (g *Generator) formatSpec(v typedValue) (string, value.Value) {
	switch v.typ {
	case ast.TypeInt:
		return "%d", v.val
	case ast.TypeFloat:
		return "%f", v.val
	case ast.TypeBool:
		return "%d", g.block.NewZExt(v.val, irtypes.I32)
	case ast.TypeString:
		return "%s", v.val
	default:
		return "%d", v.val
	}
}

func (g *Generator) emitPrintfLiteral(format string) {
	str := g.stringConstant(format)
	g.block.NewCall(g.printf(), str)
}

func (g *Generator) emitPrintfValue(format string, val value.Value) {
	str := g.stringConstant(format)
	g.block.NewCall(g.printf(), str, val)
}

// lowerPrint fans out print's argument list (spec.md §4.2): a single
// argument is printed followed by a newline; multiple arguments are
// printed space-separated with a trailing newline after the last one.
func (g *Generator) lowerPrint(s *ast.PrintStatement) {
	if len(s.Args) == 0 {
		g.addError(errors.Arity(s.Pos(), "print requires at least one argument"))
		return
	}

	for i, argExpr := range s.Args {
		arg := g.lowerExpression(argExpr)
		spec, val := g.formatSpec(arg)
		g.emitPrintfValue(spec, val)

		if i < len(s.Args)-1 {
			g.emitPrintfLiteral(" ")
		}
	}
	g.emitPrintfLiteral("\n")
}
