package ast

import (
	"bytes"
	"strings"

	"github.com/Legendyboi/rutaceae/internal/lexer"
)

// DeclStatement declares a new local variable (`let`/`const`, spec.md §3).
// Type is always a member of the closed type set. A const declaration's
// Init is never nil (enforced at AST-build time).
type DeclStatement struct {
	Token   lexer.Token // the 'let' or 'const' token
	Name    string
	Type    TypeTag
	Init    Expression // nil if absent
	IsConst bool
}

func (ds *DeclStatement) statementNode()       {}
func (ds *DeclStatement) TokenLiteral() string { return ds.Token.Literal }
func (ds *DeclStatement) Pos() lexer.Position  { return ds.Token.Pos }
func (ds *DeclStatement) String() string {
	var out bytes.Buffer
	if ds.IsConst {
		out.WriteString("const ")
	} else {
		out.WriteString("let ")
	}
	out.WriteString(ds.Name)
	out.WriteString(": ")
	out.WriteString(string(ds.Type))
	if ds.Init != nil {
		out.WriteString(" = ")
		out.WriteString(ds.Init.String())
	}
	out.WriteString(";")
	return out.String()
}

// AssignStatement assigns a new value to an existing name.
type AssignStatement struct {
	Token lexer.Token // the identifier token
	Name  string
	Value Expression
}

func (as *AssignStatement) statementNode()       {}
func (as *AssignStatement) TokenLiteral() string { return as.Token.Literal }
func (as *AssignStatement) Pos() lexer.Position  { return as.Token.Pos }
func (as *AssignStatement) String() string {
	return as.Name + " = " + as.Value.String() + ";"
}

// CompoundAssignStatement applies Operator (one of += -= *= /= %=) to an
// existing name using Value as the right-hand side.
type CompoundAssignStatement struct {
	Token    lexer.Token
	Name     string
	Operator string
	Value    Expression
}

func (cas *CompoundAssignStatement) statementNode()       {}
func (cas *CompoundAssignStatement) TokenLiteral() string { return cas.Token.Literal }
func (cas *CompoundAssignStatement) Pos() lexer.Position  { return cas.Token.Pos }
func (cas *CompoundAssignStatement) String() string {
	return cas.Name + " " + cas.Operator + " " + cas.Value.String() + ";"
}

// IncDecStatement is a `++`/`--` statement on an existing name.
type IncDecStatement struct {
	Token     lexer.Token
	Name      string
	Increment bool // true for ++, false for --
}

func (ids *IncDecStatement) statementNode()       {}
func (ids *IncDecStatement) TokenLiteral() string { return ids.Token.Literal }
func (ids *IncDecStatement) Pos() lexer.Position  { return ids.Token.Pos }
func (ids *IncDecStatement) String() string {
	if ids.Increment {
		return ids.Name + "++;"
	}
	return ids.Name + "--;"
}

// IfStatement is an if/else conditional. Else is nil when absent.
type IfStatement struct {
	Token     lexer.Token
	Condition Expression
	Then      *Block
	Else      *Block
}

func (is *IfStatement) statementNode()       {}
func (is *IfStatement) TokenLiteral() string { return is.Token.Literal }
func (is *IfStatement) Pos() lexer.Position  { return is.Token.Pos }
func (is *IfStatement) String() string {
	var out bytes.Buffer
	out.WriteString("if (")
	out.WriteString(is.Condition.String())
	out.WriteString(") ")
	out.WriteString(is.Then.String())
	if is.Else != nil {
		out.WriteString(" else ")
		out.WriteString(is.Else.String())
	}
	return out.String()
}

// WhileStatement is a while loop.
type WhileStatement struct {
	Token     lexer.Token
	Condition Expression
	Body      *Block
}

func (ws *WhileStatement) statementNode()       {}
func (ws *WhileStatement) TokenLiteral() string { return ws.Token.Literal }
func (ws *WhileStatement) Pos() lexer.Position  { return ws.Token.Pos }
func (ws *WhileStatement) String() string {
	return "while (" + ws.Condition.String() + ") " + ws.Body.String()
}

// ForStatement is a C-style for loop. Init is nil when the init slot is
// empty (spec.md §4.2).
type ForStatement struct {
	Token     lexer.Token
	Init      Statement // *DeclStatement or *AssignStatement, or nil
	Condition Expression
	Update    Statement
	Body      *Block
}

func (fs *ForStatement) statementNode()       {}
func (fs *ForStatement) TokenLiteral() string { return fs.Token.Literal }
func (fs *ForStatement) Pos() lexer.Position  { return fs.Token.Pos }
func (fs *ForStatement) String() string {
	var out bytes.Buffer
	out.WriteString("for (")
	if fs.Init != nil {
		out.WriteString(fs.Init.String())
	} else {
		out.WriteString(";")
	}
	out.WriteString(" ")
	out.WriteString(fs.Condition.String())
	out.WriteString("; ")
	// Update is rendered without its own trailing ';' for readability.
	out.WriteString(strings.TrimSuffix(fs.Update.String(), ";"))
	out.WriteString(") ")
	out.WriteString(fs.Body.String())
	return out.String()
}

// BreakStatement exits the innermost enclosing loop.
type BreakStatement struct {
	Token lexer.Token
}

func (bs *BreakStatement) statementNode()       {}
func (bs *BreakStatement) TokenLiteral() string { return bs.Token.Literal }
func (bs *BreakStatement) Pos() lexer.Position  { return bs.Token.Pos }
func (bs *BreakStatement) String() string       { return "break;" }

// ContinueStatement skips to the next iteration of the innermost loop.
type ContinueStatement struct {
	Token lexer.Token
}

func (cs *ContinueStatement) statementNode()       {}
func (cs *ContinueStatement) TokenLiteral() string { return cs.Token.Literal }
func (cs *ContinueStatement) Pos() lexer.Position  { return cs.Token.Pos }
func (cs *ContinueStatement) String() string       { return "continue;" }

// ReturnStatement returns Value from the enclosing function.
type ReturnStatement struct {
	Token lexer.Token
	Value Expression // nil for a void return
}

func (rs *ReturnStatement) statementNode()       {}
func (rs *ReturnStatement) TokenLiteral() string { return rs.Token.Literal }
func (rs *ReturnStatement) Pos() lexer.Position  { return rs.Token.Pos }
func (rs *ReturnStatement) String() string {
	if rs.Value == nil {
		return "return;"
	}
	return "return " + rs.Value.String() + ";"
}

// PrintStatement prints one or more expressions (spec.md §3/§4.3.5).
type PrintStatement struct {
	Token lexer.Token
	Args  []Expression
}

func (ps *PrintStatement) statementNode()       {}
func (ps *PrintStatement) TokenLiteral() string { return ps.Token.Literal }
func (ps *PrintStatement) Pos() lexer.Position  { return ps.Token.Pos }
func (ps *PrintStatement) String() string {
	args := make([]string, 0, len(ps.Args))
	for _, a := range ps.Args {
		args = append(args, a.String())
	}
	return "print(" + strings.Join(args, ", ") + ");"
}

// ExprStatement wraps a call expression used for its side effect alone
// (e.g. a bare function call statement).
type ExprStatement struct {
	Token lexer.Token
	Expr  Expression
}

func (es *ExprStatement) statementNode()       {}
func (es *ExprStatement) TokenLiteral() string { return es.Token.Literal }
func (es *ExprStatement) Pos() lexer.Position  { return es.Token.Pos }
func (es *ExprStatement) String() string       { return es.Expr.String() + ";" }
