package codegen

import (
	irtypes "github.com/llir/llvm/ir/types"

	"github.com/Legendyboi/rutaceae/internal/ast"
)

// llvmType maps a source-level type tag to its LLVM representation
// (spec.md §4.3): int -> i32, bool -> i1, float -> double, string -> i8*,
// void -> void.
func llvmType(tag ast.TypeTag) irtypes.Type {
	switch tag {
	case ast.TypeInt:
		return irtypes.I32
	case ast.TypeFloat:
		return irtypes.Double
	case ast.TypeBool:
		return irtypes.I1
	case ast.TypeString:
		return irtypes.NewPointer(irtypes.I8)
	case ast.TypeVoid:
		return irtypes.Void
	default:
		return irtypes.Void
	}
}
