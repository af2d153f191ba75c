package lexer

import "fmt"

// Position identifies a location in source text. Line and Column are both
// 1-based, matching what the grammar front-end hands to every AST node.
type Position struct {
	Line   int
	Column int
}

func (p Position) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Column)
}
