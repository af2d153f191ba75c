package codegen

import (
	"github.com/llir/llvm/ir/constant"
	irtypes "github.com/llir/llvm/ir/types"

	"github.com/Legendyboi/rutaceae/internal/ast"
	"github.com/Legendyboi/rutaceae/internal/errors"
)

func (g *Generator) lowerBlock(block *ast.Block) {
	for _, stmt := range block.Statements {
		if g.err != nil {
			return
		}
		g.lowerStatement(stmt)
		if g.block.Term != nil {
			// Unreachable code after a terminator (return/break/continue)
			// is simply not lowered; it has no effect on the final module.
			return
		}
	}
}

// lowerStatement lowers one statement. Codegen is fatal on first error
// (spec.md §7): if a prior step already recorded one, this is a no-op.
func (g *Generator) lowerStatement(stmt ast.Statement) {
	if g.err != nil {
		return
	}
	switch s := stmt.(type) {
	case *ast.DeclStatement:
		g.lowerDecl(s)
	case *ast.AssignStatement:
		g.lowerAssign(s)
	case *ast.CompoundAssignStatement:
		g.lowerCompoundAssign(s)
	case *ast.IncDecStatement:
		g.lowerIncDec(s)
	case *ast.IfStatement:
		g.lowerIf(s)
	case *ast.WhileStatement:
		g.lowerWhile(s)
	case *ast.ForStatement:
		g.lowerFor(s)
	case *ast.BreakStatement:
		g.lowerBreak(s)
	case *ast.ContinueStatement:
		g.lowerContinue(s)
	case *ast.ReturnStatement:
		g.lowerReturn(s)
	case *ast.PrintStatement:
		g.lowerPrint(s)
	case *ast.ExprStatement:
		g.lowerExpression(s.Expr)
	default:
		g.addError(errors.AstBuild(stmt.Pos(), "unsupported statement node %T", stmt))
	}
}

func (g *Generator) lowerDecl(s *ast.DeclStatement) {
	if _, redeclared := g.lookupCurrentScope(s.Name); redeclared {
		g.addError(errors.Name(s.Pos(), "%q redeclared in the same scope", s.Name))
		return
	}

	alloca := g.block.NewAlloca(llvmType(s.Type))
	alloca.SetName(s.Name)

	if s.Init != nil {
		init := g.lowerExpression(s.Init)
		init = g.coerceAssign(s, init, s.Type)
		g.block.NewStore(init.val, alloca)
	}

	g.define(s.Name, alloca, s.Type, s.IsConst)
}

// coerceAssign applies the int->float/bool->int promotions used by
// binary expressions to a value being stored into a declared-type slot,
// and reports a TypeError for anything else that doesn't already match.
func (g *Generator) coerceAssign(pos ast.Node, v typedValue, want ast.TypeTag) typedValue {
	if v.typ == want {
		return v
	}
	if v.typ == ast.TypeInt && want == ast.TypeFloat {
		return typedValue{g.block.NewSIToFP(v.val, irtypes.Double), ast.TypeFloat}
	}
	if v.typ == ast.TypeBool && want == ast.TypeInt {
		return typedValue{g.block.NewZExt(v.val, irtypes.I32), ast.TypeInt}
	}
	g.addError(errors.Type(pos.Pos(), "cannot assign %s to %s", v.typ, want))
	return v
}

func (g *Generator) lowerAssign(s *ast.AssignStatement) {
	sym, ok := g.lookup(s.Name)
	if !ok {
		g.addError(errors.Name(s.Pos(), "undefined name %q", s.Name))
		return
	}
	if sym.isConst {
		g.addError(errors.Mutability(s.Pos(), "cannot assign to const %q", s.Name))
		return
	}
	value := g.lowerExpression(s.Value)
	value = g.coerceAssign(s, value, sym.typ)
	g.block.NewStore(value.val, sym.value)
}

func (g *Generator) lowerCompoundAssign(s *ast.CompoundAssignStatement) {
	sym, ok := g.lookup(s.Name)
	if !ok {
		g.addError(errors.Name(s.Pos(), "undefined name %q", s.Name))
		return
	}
	if sym.isConst {
		g.addError(errors.Mutability(s.Pos(), "cannot assign to const %q", s.Name))
		return
	}

	current := typedValue{g.block.NewLoad(llvmType(sym.typ), sym.value), sym.typ}
	rhs := g.lowerExpression(s.Value)

	pl, pr, typ, ok := g.promoteForPos(s, current, rhs)
	if !ok {
		return
	}

	op := s.Operator[:1] // "+=" -> "+"
	var result typedValue
	if op == "%" {
		if typ != ast.TypeInt {
			g.addError(errors.Type(s.Pos(), "'%%=' requires int, got %s", typ))
			return
		}
		result = typedValue{g.block.NewSRem(pl.val, pr.val), ast.TypeInt}
	} else {
		result = typedValue{g.arith(s, op, pl, pr, typ), typ}
	}

	result = g.coerceAssign(s, result, sym.typ)
	g.block.NewStore(result.val, sym.value)
}

func (g *Generator) lowerIncDec(s *ast.IncDecStatement) {
	sym, ok := g.lookup(s.Name)
	if !ok {
		g.addError(errors.Name(s.Pos(), "undefined name %q", s.Name))
		return
	}
	if sym.isConst {
		g.addError(errors.Mutability(s.Pos(), "cannot assign to const %q", s.Name))
		return
	}
	if sym.typ != ast.TypeInt {
		g.addError(errors.Type(s.Pos(), "++/-- requires int, got %s", sym.typ))
		return
	}

	current := g.block.NewLoad(llvmType(sym.typ), sym.value)
	one := constant.NewInt(irtypes.I32, 1)
	if s.Increment {
		g.block.NewStore(g.block.NewAdd(current, one), sym.value)
	} else {
		g.block.NewStore(g.block.NewSub(current, one), sym.value)
	}
}

func (g *Generator) lowerIf(s *ast.IfStatement) {
	cond := g.lowerExpression(s.Condition)
	if cond.typ != ast.TypeBool {
		g.addError(errors.Type(s.Condition.Pos(), "if condition must be bool, got %s", cond.typ))
	}

	thenBlock := g.currentFunc.NewBlock("")
	endBlock := g.currentFunc.NewBlock("")

	if s.Else != nil {
		elseBlock := g.currentFunc.NewBlock("")
		g.block.NewCondBr(cond.val, thenBlock, elseBlock)

		g.block = thenBlock
		g.pushScope()
		g.lowerBlock(s.Then)
		g.popScope()
		thenFellThrough := g.block.Term == nil
		if thenFellThrough {
			g.block.NewBr(endBlock)
		}

		g.block = elseBlock
		g.pushScope()
		g.lowerBlock(s.Else)
		g.popScope()
		elseFellThrough := g.block.Term == nil
		if elseFellThrough {
			g.block.NewBr(endBlock)
		}

		if !thenFellThrough && !elseFellThrough {
			// Neither branch reaches the merge point (both return/break/
			// continue): endBlock is dead code, but LLVM still requires
			// every block to end in a terminator.
			endBlock.NewUnreachable()
		}
	} else {
		g.block.NewCondBr(cond.val, thenBlock, endBlock)

		g.block = thenBlock
		g.pushScope()
		g.lowerBlock(s.Then)
		g.popScope()
		if g.block.Term == nil {
			g.block.NewBr(endBlock)
		}
	}

	g.block = endBlock
}

func (g *Generator) lowerWhile(s *ast.WhileStatement) {
	condBlock := g.currentFunc.NewBlock("")
	bodyBlock := g.currentFunc.NewBlock("")
	endBlock := g.currentFunc.NewBlock("")

	g.block.NewBr(condBlock)

	g.block = condBlock
	cond := g.lowerExpression(s.Condition)
	if cond.typ != ast.TypeBool {
		g.addError(errors.Type(s.Condition.Pos(), "while condition must be bool, got %s", cond.typ))
	}
	g.block.NewCondBr(cond.val, bodyBlock, endBlock)

	g.loopStack = append(g.loopStack, loopTarget{continueBlock: condBlock, breakBlock: endBlock})
	g.block = bodyBlock
	g.pushScope()
	g.lowerBlock(s.Body)
	g.popScope()
	if g.block.Term == nil {
		g.block.NewBr(condBlock)
	}
	g.loopStack = g.loopStack[:len(g.loopStack)-1]

	g.block = endBlock
}

// lowerFor gives the loop's init variable its own scope, pushed before
// the init statement is lowered and popped once the loop has exited, so
// it doesn't leak into code following the loop.
func (g *Generator) lowerFor(s *ast.ForStatement) {
	g.pushScope()
	defer g.popScope()

	if s.Init != nil {
		g.lowerStatement(s.Init)
	}

	condBlock := g.currentFunc.NewBlock("")
	bodyBlock := g.currentFunc.NewBlock("")
	updateBlock := g.currentFunc.NewBlock("")
	endBlock := g.currentFunc.NewBlock("")

	g.block.NewBr(condBlock)

	g.block = condBlock
	cond := g.lowerExpression(s.Condition)
	if cond.typ != ast.TypeBool {
		g.addError(errors.Type(s.Condition.Pos(), "for condition must be bool, got %s", cond.typ))
	}
	g.block.NewCondBr(cond.val, bodyBlock, endBlock)

	g.loopStack = append(g.loopStack, loopTarget{continueBlock: updateBlock, breakBlock: endBlock})
	g.block = bodyBlock
	g.pushScope()
	g.lowerBlock(s.Body)
	g.popScope()
	if g.block.Term == nil {
		g.block.NewBr(updateBlock)
	}
	g.loopStack = g.loopStack[:len(g.loopStack)-1]

	g.block = updateBlock
	if s.Update != nil {
		g.lowerStatement(s.Update)
	}
	if g.block.Term == nil {
		g.block.NewBr(condBlock)
	}

	g.block = endBlock
}

func (g *Generator) lowerBreak(s *ast.BreakStatement) {
	if len(g.loopStack) == 0 {
		g.addError(errors.Control(s.Pos(), "'break' outside of a loop"))
		return
	}
	target := g.loopStack[len(g.loopStack)-1]
	g.block.NewBr(target.breakBlock)
}

func (g *Generator) lowerContinue(s *ast.ContinueStatement) {
	if len(g.loopStack) == 0 {
		g.addError(errors.Control(s.Pos(), "'continue' outside of a loop"))
		return
	}
	target := g.loopStack[len(g.loopStack)-1]
	g.block.NewBr(target.continueBlock)
}

func (g *Generator) lowerReturn(s *ast.ReturnStatement) {
	if s.Value == nil {
		if g.returnType != ast.TypeVoid {
			g.addError(errors.Type(s.Pos(), "function must return %s, but 'return;' returns nothing", g.returnType))
		}
		g.block.NewRet(nil)
		return
	}

	value := g.lowerExpression(s.Value)
	value = g.coerceAssign(s, value, g.returnType)
	g.block.NewRet(value.val)
}
