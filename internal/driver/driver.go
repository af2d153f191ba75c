// Package driver wires the lexer, parser and codegen stages together
// into the pipeline the cmd/rutaceae commands drive: source text in,
// either a written .ll file, a linked executable, or a freshly executed
// program out.
//
// Object-file emission, linking, and JIT execution are delegated to the
// system's cc: github.com/llir/llvm is a pure-Go IR builder with no LLVM
// C API or MCJIT bindings, so "run" approximates a JIT by compiling to a
// temporary executable and immediately executing it rather than JITting
// in-process (spec.md §6 leaves the backend beyond IR emission as an
// external contract).
package driver

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"

	"github.com/llir/llvm/ir"

	"github.com/Legendyboi/rutaceae/internal/codegen"
	"github.com/Legendyboi/rutaceae/internal/errors"
	"github.com/Legendyboi/rutaceae/internal/lexer"
	"github.com/Legendyboi/rutaceae/internal/parser"
)

// Result carries the artifacts of a successful Compile, plus verbose
// diagnostics callers may want to print.
type Result struct {
	Module   *ir.Module
	IR       string
	Filename string
}

// Compile runs source through lex -> parse -> codegen and returns the
// lowered module. The parser accumulates every error it finds across the
// whole source; codegen, per spec.md §7, is fatal on the first error and
// never runs past it. Either stage's errors are reported as a slice of
// one or more *errors.CompilerError; a non-empty slice means Module is
// not meaningful.
func Compile(source, filename string) (*Result, []*errors.CompilerError) {
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()

	if errs := p.Errors(); len(errs) > 0 {
		errors.AttachSource(errs, source, filename)
		return nil, errs
	}

	module, err := codegen.Generate(program)
	if err != nil {
		err.WithSource(source, filename)
		return nil, []*errors.CompilerError{err}
	}

	return &Result{Module: module, IR: module.String(), Filename: filename}, nil
}

// CompileFile reads filename and runs it through Compile.
func CompileFile(filename string) (*Result, []*errors.CompilerError) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, []*errors.CompilerError{errors.Parse(lexer.Position{}, "failed to read %s: %s", filename, err)}
	}
	return Compile(string(content), filename)
}

// WriteIR writes the module's textual LLVM IR to path.
func (r *Result) WriteIR(path string) error {
	return os.WriteFile(path, []byte(r.IR), 0o644)
}

// Build links result's IR into a native executable at outPath by
// shelling out to cc, the same way the reference toolchain turns
// assembly into a linked binary: cc -x ir <ir-file> -o <outPath>.
// A non-empty triple is forwarded as -target.
func Build(r *Result, outPath, triple string) error {
	irPath := outPath + ".ll"
	if err := r.WriteIR(irPath); err != nil {
		return fmt.Errorf("failed to write IR: %w", err)
	}
	defer os.Remove(irPath)

	args := []string{"-x", "ir", irPath, "-o", outPath}
	if triple != "" {
		args = append(args, "-target", triple)
	}

	cmd := exec.Command("cc", args...)
	cmd.Stderr = os.Stderr
	cmd.Stdout = os.Stdout
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("cc failed: %w", err)
	}
	return nil
}

// Run builds result to a temporary executable and immediately runs it,
// streaming its stdio through to the caller's. This is the closest
// approximation of JIT execution available without cgo LLVM bindings.
func Run(r *Result, triple string, args []string) (int, error) {
	tmpDir, err := os.MkdirTemp("", "rutaceae-run-*")
	if err != nil {
		return 1, fmt.Errorf("failed to create temp dir: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	exePath := filepath.Join(tmpDir, "a.out")
	if err := Build(r, exePath, triple); err != nil {
		return 1, err
	}

	cmd := exec.Command(exePath, args...)
	cmd.Stdin = os.Stdin
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr
	if err := cmd.Run(); err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			return exitErr.ExitCode(), nil
		}
		return 1, fmt.Errorf("failed to execute %s: %w", exePath, err)
	}
	return 0, nil
}
