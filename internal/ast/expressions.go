package ast

import (
	"bytes"
	"strings"

	"github.com/Legendyboi/rutaceae/internal/lexer"
)

// Identifier refers to a variable or parameter in scope.
type Identifier struct {
	Token lexer.Token
	Value string
}

func (i *Identifier) expressionNode()      {}
func (i *Identifier) TokenLiteral() string { return i.Token.Literal }
func (i *Identifier) Pos() lexer.Position  { return i.Token.Pos }
func (i *Identifier) String() string       { return i.Value }

// IntegerLiteral is a 32-bit signed integer literal.
type IntegerLiteral struct {
	Token lexer.Token
	Value int32
}

func (il *IntegerLiteral) expressionNode()      {}
func (il *IntegerLiteral) TokenLiteral() string { return il.Token.Literal }
func (il *IntegerLiteral) Pos() lexer.Position  { return il.Token.Pos }
func (il *IntegerLiteral) String() string       { return il.Token.Literal }

// FloatLiteral is a double-precision floating-point literal.
type FloatLiteral struct {
	Token lexer.Token
	Value float64
}

func (fl *FloatLiteral) expressionNode()      {}
func (fl *FloatLiteral) TokenLiteral() string { return fl.Token.Literal }
func (fl *FloatLiteral) Pos() lexer.Position  { return fl.Token.Pos }
func (fl *FloatLiteral) String() string       { return fl.Token.Literal }

// BooleanLiteral is a true/false literal.
type BooleanLiteral struct {
	Token lexer.Token
	Value bool
}

func (bl *BooleanLiteral) expressionNode()      {}
func (bl *BooleanLiteral) TokenLiteral() string { return bl.Token.Literal }
func (bl *BooleanLiteral) Pos() lexer.Position  { return bl.Token.Pos }
func (bl *BooleanLiteral) String() string       { return bl.Token.Literal }

// StringLiteral is a null-terminated string literal. Value holds the
// decoded byte sequence (escape sequences resolved at AST-build time,
// spec.md §4.2); Token.Literal retains the raw, undecoded source text.
type StringLiteral struct {
	Token lexer.Token
	Value string
}

func (sl *StringLiteral) expressionNode()      {}
func (sl *StringLiteral) TokenLiteral() string { return sl.Token.Literal }
func (sl *StringLiteral) Pos() lexer.Position  { return sl.Token.Pos }
func (sl *StringLiteral) String() string       { return "\"" + sl.Token.Literal + "\"" }

// BinaryExpr is a binary operation; Operator is one of
// + - * / % == != < <= > >= && || (spec.md §3).
type BinaryExpr struct {
	Token    lexer.Token
	Left     Expression
	Operator string
	Right    Expression
}

func (be *BinaryExpr) expressionNode()      {}
func (be *BinaryExpr) TokenLiteral() string { return be.Token.Literal }
func (be *BinaryExpr) Pos() lexer.Position  { return be.Token.Pos }
func (be *BinaryExpr) String() string {
	var out bytes.Buffer
	out.WriteString("(")
	out.WriteString(be.Left.String())
	out.WriteString(" " + be.Operator + " ")
	out.WriteString(be.Right.String())
	out.WriteString(")")
	return out.String()
}

// UnaryExpr is a unary operation; Operator is one of - ! (spec.md §3).
type UnaryExpr struct {
	Token    lexer.Token
	Operator string
	Operand  Expression
}

func (ue *UnaryExpr) expressionNode()      {}
func (ue *UnaryExpr) TokenLiteral() string { return ue.Token.Literal }
func (ue *UnaryExpr) Pos() lexer.Position  { return ue.Token.Pos }
func (ue *UnaryExpr) String() string {
	return "(" + ue.Operator + ue.Operand.String() + ")"
}

// CallExpr is a function call: a callee name and ordered arguments.
type CallExpr struct {
	Token    lexer.Token // the callee identifier token
	Callee   string
	Args     []Expression
}

func (ce *CallExpr) expressionNode()      {}
func (ce *CallExpr) TokenLiteral() string { return ce.Token.Literal }
func (ce *CallExpr) Pos() lexer.Position  { return ce.Token.Pos }
func (ce *CallExpr) String() string {
	var out bytes.Buffer
	out.WriteString(ce.Callee)
	out.WriteString("(")
	args := make([]string, 0, len(ce.Args))
	for _, a := range ce.Args {
		args = append(args, a.String())
	}
	out.WriteString(strings.Join(args, ", "))
	out.WriteString(")")
	return out.String()
}

// CastExpr explicitly converts Inner to TargetType (spec.md §4.3.4).
type CastExpr struct {
	Token      lexer.Token // the target-type token
	TargetType TypeTag
	Inner      Expression
}

func (ce *CastExpr) expressionNode()      {}
func (ce *CastExpr) TokenLiteral() string { return ce.Token.Literal }
func (ce *CastExpr) Pos() lexer.Position  { return ce.Token.Pos }
func (ce *CastExpr) String() string {
	return "(" + string(ce.TargetType) + ")" + ce.Inner.String()
}
