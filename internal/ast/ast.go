// Package ast defines the Abstract Syntax Tree node vocabulary for
// Rutaceae programs (spec.md §3). Nodes are constructed bottom-up during
// parsing, are immutable afterward, and carry the (line, column) of their
// defining token for diagnostics.
package ast

import (
	"bytes"
	"strings"

	"github.com/Legendyboi/rutaceae/internal/lexer"
)

// Node is the base interface implemented by every AST node.
type Node interface {
	TokenLiteral() string
	String() string
	Pos() lexer.Position
}

// Expression is any node that produces a value.
type Expression interface {
	Node
	expressionNode()
}

// Statement is any node that performs an action without producing a value.
type Statement interface {
	Node
	statementNode()
}

// TypeTag is a member of the closed set of types spec.md §3 allows:
// int, float, bool, string, void.
type TypeTag string

const (
	TypeInt    TypeTag = "int"
	TypeFloat  TypeTag = "float"
	TypeBool   TypeTag = "bool"
	TypeString TypeTag = "string"
	TypeVoid   TypeTag = "void"
)

// ValidTypeTag reports whether s names one of the closed set of type tags.
func ValidTypeTag(s string) (TypeTag, bool) {
	switch TypeTag(s) {
	case TypeInt, TypeFloat, TypeBool, TypeString, TypeVoid:
		return TypeTag(s), true
	default:
		return "", false
	}
}

// Block is an ordered sequence of statements (spec.md §3).
type Block struct {
	Token      lexer.Token // the '{' token
	Statements []Statement
}

func (b *Block) TokenLiteral() string { return b.Token.Literal }
func (b *Block) Pos() lexer.Position  { return b.Token.Pos }
func (b *Block) String() string {
	var out bytes.Buffer
	out.WriteString("{\n")
	for _, stmt := range b.Statements {
		out.WriteString("  ")
		out.WriteString(strings.ReplaceAll(stmt.String(), "\n", "\n  "))
		out.WriteString("\n")
	}
	out.WriteString("}")
	return out.String()
}

// Param is one entry of a function's ordered parameter list.
type Param struct {
	Name *Identifier
	Type TypeTag
}

func (p *Param) String() string {
	return string(p.Type) + " " + p.Name.Value
}

// FunctionDef is a top-level function definition.
type FunctionDef struct {
	Token      lexer.Token // the 'fn' token
	ReturnType TypeTag
	Name       string
	Parameters []*Param
	Body       *Block
}

func (f *FunctionDef) TokenLiteral() string { return f.Token.Literal }
func (f *FunctionDef) Pos() lexer.Position  { return f.Token.Pos }
func (f *FunctionDef) String() string {
	var out bytes.Buffer
	out.WriteString("fn ")
	out.WriteString(string(f.ReturnType))
	out.WriteString(" ")
	out.WriteString(f.Name)
	out.WriteString("(")
	params := make([]string, 0, len(f.Parameters))
	for _, p := range f.Parameters {
		params = append(params, p.String())
	}
	out.WriteString(strings.Join(params, ", "))
	out.WriteString(") ")
	out.WriteString(f.Body.String())
	return out.String()
}

// Program is the root node: an ordered list of function definitions.
type Program struct {
	Functions []*FunctionDef
}

func (p *Program) TokenLiteral() string {
	if len(p.Functions) > 0 {
		return p.Functions[0].TokenLiteral()
	}
	return ""
}

func (p *Program) Pos() lexer.Position {
	if len(p.Functions) > 0 {
		return p.Functions[0].Pos()
	}
	return lexer.Position{Line: 1, Column: 1}
}

func (p *Program) String() string {
	var out bytes.Buffer
	for _, fn := range p.Functions {
		out.WriteString(fn.String())
		out.WriteString("\n\n")
	}
	return out.String()
}
