package codegen

import (
	"github.com/llir/llvm/ir/value"

	"github.com/Legendyboi/rutaceae/internal/ast"
)

// pushScope opens a new innermost lexical scope.
func (g *Generator) pushScope() {
	g.scopes = append(g.scopes, make(map[string]*symbol))
}

// popScope closes the innermost lexical scope.
func (g *Generator) popScope() {
	g.scopes = g.scopes[:len(g.scopes)-1]
}

// define binds name in the innermost scope.
func (g *Generator) define(name string, v value.Value, typ ast.TypeTag, isConst bool) {
	g.scopes[len(g.scopes)-1][name] = &symbol{value: v, typ: typ, isConst: isConst}
}

// lookup searches the scope stack innermost-first.
func (g *Generator) lookup(name string) (*symbol, bool) {
	for i := len(g.scopes) - 1; i >= 0; i-- {
		if sym, ok := g.scopes[i][name]; ok {
			return sym, true
		}
	}
	return nil, false
}

// lookupCurrentScope searches only the innermost scope, for rejecting a
// redeclaration without flagging a name merely shadowing an outer one.
func (g *Generator) lookupCurrentScope(name string) (*symbol, bool) {
	sym, ok := g.scopes[len(g.scopes)-1][name]
	return sym, ok
}
