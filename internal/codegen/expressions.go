package codegen

import (
	"github.com/llir/llvm/ir/constant"
	"github.com/llir/llvm/ir/enum"
	irtypes "github.com/llir/llvm/ir/types"
	"github.com/llir/llvm/ir/value"

	"github.com/Legendyboi/rutaceae/internal/ast"
	"github.com/Legendyboi/rutaceae/internal/errors"
)

// typedValue pairs a lowered IR value with the source-level type it
// represents, since LLVM's own type system can't distinguish Rutaceae's
// int/bool distinction from a bare i32/i1 once values start moving
// through generic instructions.
type typedValue struct {
	val value.Value
	typ ast.TypeTag
}

// lowerExpression lowers one expression. Codegen is fatal on first error
// (spec.md §7): if a prior step already recorded one, this returns a
// harmless zero value without lowering anything further.
func (g *Generator) lowerExpression(expr ast.Expression) typedValue {
	if g.err != nil {
		return typedValue{constant.NewInt(irtypes.I32, 0), ast.TypeInt}
	}
	switch e := expr.(type) {
	case *ast.IntegerLiteral:
		return typedValue{constant.NewInt(irtypes.I32, int64(e.Value)), ast.TypeInt}
	case *ast.FloatLiteral:
		return typedValue{constant.NewFloat(irtypes.Double, e.Value), ast.TypeFloat}
	case *ast.BooleanLiteral:
		return typedValue{constant.NewBool(e.Value), ast.TypeBool}
	case *ast.StringLiteral:
		return typedValue{g.stringConstant(e.Value), ast.TypeString}
	case *ast.Identifier:
		return g.lowerIdentifier(e)
	case *ast.UnaryExpr:
		return g.lowerUnary(e)
	case *ast.BinaryExpr:
		return g.lowerBinary(e)
	case *ast.CastExpr:
		return g.lowerCast(e)
	case *ast.CallExpr:
		return g.lowerCall(e)
	default:
		g.addError(errors.AstBuild(expr.Pos(), "unsupported expression node %T", expr))
		return typedValue{constant.NewInt(irtypes.I32, 0), ast.TypeInt}
	}
}

// stringConstant materializes a string literal as a uniquely-named
// global null-terminated byte array, returning an i8* to its first
// element.
func (g *Generator) stringConstant(s string) value.Value {
	data := append([]byte(s), 0)
	name := g.nextGlobalName(".str")
	global := g.module.NewGlobalDef(name, constant.NewCharArray(data))
	global.Immutable = true
	zero := constant.NewInt(irtypes.I64, 0)
	return constant.NewGetElementPtr(global.ContentType, global, zero, zero)
}

func (g *Generator) lowerIdentifier(e *ast.Identifier) typedValue {
	sym, ok := g.lookup(e.Value)
	if !ok {
		g.addError(errors.Name(e.Pos(), "undefined name %q", e.Value))
		return typedValue{constant.NewInt(irtypes.I32, 0), ast.TypeInt}
	}
	loaded := g.block.NewLoad(llvmType(sym.typ), sym.value)
	return typedValue{loaded, sym.typ}
}

func (g *Generator) lowerUnary(e *ast.UnaryExpr) typedValue {
	operand := g.lowerExpression(e.Operand)

	switch e.Operator {
	case "-":
		switch operand.typ {
		case ast.TypeInt:
			return typedValue{g.block.NewSub(constant.NewInt(irtypes.I32, 0), operand.val), ast.TypeInt}
		case ast.TypeFloat:
			return typedValue{g.block.NewFNeg(operand.val), ast.TypeFloat}
		default:
			g.addError(errors.Type(e.Pos(), "unary '-' requires int or float, got %s", operand.typ))
			return operand
		}
	case "!":
		if operand.typ != ast.TypeBool {
			g.addError(errors.Type(e.Pos(), "unary '!' requires bool, got %s", operand.typ))
			return operand
		}
		return typedValue{g.block.NewXor(operand.val, constant.True), ast.TypeBool}
	default:
		g.addError(errors.AstBuild(e.Pos(), "unsupported unary operator %q", e.Operator))
		return operand
	}
}

func (g *Generator) lowerBinary(e *ast.BinaryExpr) typedValue {
	lhs := g.lowerExpression(e.Left)
	rhs := g.lowerExpression(e.Right)

	switch e.Operator {
	case "&&", "||":
		if lhs.typ != ast.TypeBool || rhs.typ != ast.TypeBool {
			g.addError(errors.Type(e.Pos(), "%q requires bool operands, got %s and %s", e.Operator, lhs.typ, rhs.typ))
			return typedValue{constant.False, ast.TypeBool}
		}
		if e.Operator == "&&" {
			return typedValue{g.block.NewAnd(lhs.val, rhs.val), ast.TypeBool}
		}
		return typedValue{g.block.NewOr(lhs.val, rhs.val), ast.TypeBool}
	}

	if lhs.typ == ast.TypeString || rhs.typ == ast.TypeString {
		g.addError(errors.Type(e.Pos(), "operator %q is not defined for string", e.Operator))
		return typedValue{constant.NewInt(irtypes.I32, 0), ast.TypeInt}
	}

	pl, pr, typ, ok := g.promoteForPos(e, lhs, rhs)
	if !ok {
		return typedValue{constant.NewInt(irtypes.I32, 0), ast.TypeInt}
	}

	switch e.Operator {
	case "+", "-", "*", "/":
		return typedValue{g.arith(e, e.Operator, pl, pr, typ), typ}
	case "%":
		if typ != ast.TypeInt {
			g.addError(errors.Type(e.Pos(), "'%%' requires int operands, got %s", typ))
			return typedValue{constant.NewInt(irtypes.I32, 0), ast.TypeInt}
		}
		return typedValue{g.block.NewSRem(pl.val, pr.val), ast.TypeInt}
	case "==", "!=", "<", "<=", ">", ">=":
		return typedValue{g.compare(e.Operator, pl, pr, typ), ast.TypeBool}
	default:
		g.addError(errors.AstBuild(e.Pos(), "unsupported binary operator %q", e.Operator))
		return typedValue{constant.NewInt(irtypes.I32, 0), ast.TypeInt}
	}
}

// promoteForPos applies the implicit operand promotions (int with float
// becomes float via sitofp, bool with int becomes int via zext) and
// reports a TypeError at node's position for any other type mismatch.
func (g *Generator) promoteForPos(node ast.Node, lhs, rhs typedValue) (typedValue, typedValue, ast.TypeTag, bool) {
	if lhs.typ == rhs.typ {
		return lhs, rhs, lhs.typ, true
	}
	if lhs.typ == ast.TypeInt && rhs.typ == ast.TypeFloat {
		lhs.val = g.block.NewSIToFP(lhs.val, irtypes.Double)
		lhs.typ = ast.TypeFloat
		return lhs, rhs, ast.TypeFloat, true
	}
	if lhs.typ == ast.TypeFloat && rhs.typ == ast.TypeInt {
		rhs.val = g.block.NewSIToFP(rhs.val, irtypes.Double)
		rhs.typ = ast.TypeFloat
		return lhs, rhs, ast.TypeFloat, true
	}
	if lhs.typ == ast.TypeBool && rhs.typ == ast.TypeInt {
		lhs.val = g.block.NewZExt(lhs.val, irtypes.I32)
		lhs.typ = ast.TypeInt
		return lhs, rhs, ast.TypeInt, true
	}
	if lhs.typ == ast.TypeInt && rhs.typ == ast.TypeBool {
		rhs.val = g.block.NewZExt(rhs.val, irtypes.I32)
		rhs.typ = ast.TypeInt
		return lhs, rhs, ast.TypeInt, true
	}
	g.addError(errors.Type(node.Pos(), "mismatched operand types %s and %s", lhs.typ, rhs.typ))
	return lhs, rhs, lhs.typ, false
}

func (g *Generator) arith(node ast.Node, op string, lhs, rhs typedValue, typ ast.TypeTag) value.Value {
	isFloat := typ == ast.TypeFloat
	switch op {
	case "+":
		if isFloat {
			return g.block.NewFAdd(lhs.val, rhs.val)
		}
		return g.block.NewAdd(lhs.val, rhs.val)
	case "-":
		if isFloat {
			return g.block.NewFSub(lhs.val, rhs.val)
		}
		return g.block.NewSub(lhs.val, rhs.val)
	case "*":
		if isFloat {
			return g.block.NewFMul(lhs.val, rhs.val)
		}
		return g.block.NewMul(lhs.val, rhs.val)
	case "/":
		if isFloat {
			return g.block.NewFDiv(lhs.val, rhs.val)
		}
		return g.block.NewSDiv(lhs.val, rhs.val)
	}
	g.addError(errors.AstBuild(node.Pos(), "unsupported arithmetic operator %q", op))
	return constant.NewInt(irtypes.I32, 0)
}

func (g *Generator) compare(op string, lhs, rhs typedValue, typ ast.TypeTag) value.Value {
	if typ == ast.TypeFloat {
		pred := map[string]enum.FPred{
			"==": enum.FPredOEQ, "!=": enum.FPredONE,
			"<": enum.FPredOLT, "<=": enum.FPredOLE,
			">": enum.FPredOGT, ">=": enum.FPredOGE,
		}[op]
		return g.block.NewFCmp(pred, lhs.val, rhs.val)
	}
	pred := map[string]enum.IPred{
		"==": enum.IPredEQ, "!=": enum.IPredNE,
		"<": enum.IPredSLT, "<=": enum.IPredSLE,
		">": enum.IPredSGT, ">=": enum.IPredSGE,
	}[op]
	return g.block.NewICmp(pred, lhs.val, rhs.val)
}

// lowerCast implements the explicit conversion table (spec.md §4.3.4):
// float<->int via fptosi/sitofp, bool->int via zext, bool->float via
// uitofp, int->bool and float->bool via a !=0 comparison, same-type is a
// no-op, anything else is a TypeError.
func (g *Generator) lowerCast(e *ast.CastExpr) typedValue {
	inner := g.lowerExpression(e.Inner)
	target := e.TargetType

	if inner.typ == target {
		return typedValue{inner.val, target}
	}

	switch {
	case inner.typ == ast.TypeFloat && target == ast.TypeInt:
		return typedValue{g.block.NewFPToSI(inner.val, irtypes.I32), ast.TypeInt}
	case inner.typ == ast.TypeInt && target == ast.TypeFloat:
		return typedValue{g.block.NewSIToFP(inner.val, irtypes.Double), ast.TypeFloat}
	case inner.typ == ast.TypeBool && target == ast.TypeInt:
		return typedValue{g.block.NewZExt(inner.val, irtypes.I32), ast.TypeInt}
	case inner.typ == ast.TypeBool && target == ast.TypeFloat:
		return typedValue{g.block.NewUIToFP(inner.val, irtypes.Double), ast.TypeFloat}
	case inner.typ == ast.TypeInt && target == ast.TypeBool:
		cmp := g.block.NewICmp(enum.IPredNE, inner.val, constant.NewInt(irtypes.I32, 0))
		return typedValue{cmp, ast.TypeBool}
	case inner.typ == ast.TypeFloat && target == ast.TypeBool:
		cmp := g.block.NewFCmp(enum.FPredONE, inner.val, constant.NewFloat(irtypes.Double, 0))
		return typedValue{cmp, ast.TypeBool}
	default:
		g.addError(errors.Type(e.Pos(), "cannot cast %s to %s", inner.typ, target))
		return typedValue{inner.val, target}
	}
}

func (g *Generator) lowerCall(e *ast.CallExpr) typedValue {
	irFn, ok := g.funcs[e.Callee]
	if !ok {
		g.addError(errors.Name(e.Pos(), "undefined function %q", e.Callee))
		return typedValue{constant.NewInt(irtypes.I32, 0), ast.TypeInt}
	}
	fnDef := g.funcDefs[e.Callee]

	if len(e.Args) != len(fnDef.Parameters) {
		g.addError(errors.Arity(e.Pos(), "%q expects %d argument(s), got %d", e.Callee, len(fnDef.Parameters), len(e.Args)))
		return typedValue{constant.NewInt(irtypes.I32, 0), ast.TypeInt}
	}

	args := make([]value.Value, len(e.Args))
	for i, a := range e.Args {
		arg := g.lowerExpression(a)
		want := fnDef.Parameters[i].Type
		if arg.typ != want {
			g.addError(errors.Type(a.Pos(), "argument %d of %q: expected %s, got %s", i+1, e.Callee, want, arg.typ))
		}
		args[i] = arg.val
	}

	call := g.block.NewCall(irFn, args...)
	return typedValue{call, fnDef.ReturnType}
}
