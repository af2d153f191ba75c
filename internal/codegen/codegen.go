// Package codegen lowers a Rutaceae AST to LLVM IR using
// github.com/llir/llvm. Functions are emitted in two passes: every
// signature is declared first so forward references and mutual
// recursion resolve without a separate call-graph pass, then each body
// is lowered against the now-complete function table (spec.md §4.3).
package codegen

import (
	"strconv"

	"github.com/llir/llvm/ir"
	"github.com/llir/llvm/ir/value"

	"github.com/Legendyboi/rutaceae/internal/ast"
	"github.com/Legendyboi/rutaceae/internal/errors"
)

// symbol is one entry of a lexical scope: the alloca backing a local
// variable or parameter, its source-level type, and whether it was
// declared const.
type symbol struct {
	value   value.Value
	typ     ast.TypeTag
	isConst bool
}

// loopTarget is the pair of blocks a break/continue inside a loop body
// jumps to.
type loopTarget struct {
	continueBlock *ir.Block
	breakBlock    *ir.Block
}

// Generator lowers one Program into one Module.
type Generator struct {
	module *ir.Module

	funcs       map[string]*ir.Func
	funcDefs    map[string]*ast.FunctionDef
	currentFunc *ir.Func
	returnType  ast.TypeTag

	block *ir.Block

	scopes    []map[string]*symbol
	loopStack []loopTarget

	globalCounter int
	printfFunc    *ir.Func

	err *errors.CompilerError
}

// New creates a Generator ready to lower a Program.
func New() *Generator {
	return &Generator{
		module:   ir.NewModule(),
		funcs:    make(map[string]*ir.Func),
		funcDefs: make(map[string]*ast.FunctionDef),
	}
}

// Generate lowers program to an LLVM module. Codegen is fatal on the
// first error (spec.md §7): once addError records one, every later
// lowering step becomes a no-op and Generate returns it alone. The
// returned module is only meaningful when the returned error is nil.
func Generate(program *ast.Program) (*ir.Module, *errors.CompilerError) {
	g := New()
	g.declareFunctions(program)
	if g.err == nil {
		g.defineFunctions(program)
	}
	return g.module, g.err
}

// addError records err as the fatal error for this compilation, if one
// hasn't already been recorded. Once set, callers throughout codegen
// check g.err and stop lowering rather than continuing past it.
func (g *Generator) addError(err *errors.CompilerError) {
	if g.err == nil {
		g.err = err
	}
}

func (g *Generator) nextGlobalName(prefix string) string {
	name := prefix + "." + strconv.Itoa(g.globalCounter)
	g.globalCounter++
	return name
}

// declareFunctions is pass one: every function signature is registered
// in the module before any body is lowered.
func (g *Generator) declareFunctions(program *ast.Program) {
	for _, fn := range program.Functions {
		if g.err != nil {
			return
		}
		if _, exists := g.funcs[fn.Name]; exists {
			g.addError(errors.Name(fn.Pos(), "function %q redeclared", fn.Name))
			return
		}

		retType := llvmType(fn.ReturnType)
		params := make([]*ir.Param, len(fn.Parameters))
		for i, p := range fn.Parameters {
			params[i] = ir.NewParam(p.Name.Value, llvmType(p.Type))
		}

		irFn := g.module.NewFunc(fn.Name, retType, params...)
		g.funcs[fn.Name] = irFn
		g.funcDefs[fn.Name] = fn
	}
}

// defineFunctions is pass two: each declared function's body is lowered
// against the complete function table built in pass one.
func (g *Generator) defineFunctions(program *ast.Program) {
	for _, fn := range program.Functions {
		if g.err != nil {
			return
		}
		irFn, ok := g.funcs[fn.Name]
		if !ok {
			continue // declaration already failed; skip body lowering
		}
		g.lowerFunctionBody(irFn, fn)
	}
}

func (g *Generator) lowerFunctionBody(irFn *ir.Func, fn *ast.FunctionDef) {
	g.currentFunc = irFn
	g.returnType = fn.ReturnType
	g.scopes = []map[string]*symbol{make(map[string]*symbol)}

	entry := irFn.NewBlock("entry")
	g.block = entry

	for i, p := range fn.Parameters {
		alloca := g.block.NewAlloca(llvmType(p.Type))
		alloca.SetName(p.Name.Value + ".addr")
		g.block.NewStore(irFn.Params[i], alloca)
		g.define(p.Name.Value, alloca, p.Type, false)
	}

	g.lowerBlock(fn.Body)

	if g.err == nil && g.block.Term == nil {
		if fn.ReturnType == ast.TypeVoid {
			g.block.NewRet(nil)
		} else {
			g.addError(errors.Control(fn.Pos(), "function %q does not return on all paths", fn.Name))
			g.block.NewUnreachable()
		}
	}
}
