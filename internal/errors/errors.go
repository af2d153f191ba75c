// Package errors formats the compiler's diagnostics: every stage (lexer,
// parser, AST builder, code generator) reports failures as a *CompilerError
// carrying a stable Kind and the source position it occurred at.
package errors

import (
	"fmt"
	"strings"

	"github.com/Legendyboi/rutaceae/internal/lexer"
)

// Kind is the stable error taxonomy a caller can switch on (spec.md §7).
type Kind string

const (
	KindParse      Kind = "ParseError"
	KindAstBuild   Kind = "AstBuildError"
	KindName       Kind = "NameError"
	KindType       Kind = "TypeError"
	KindMutability Kind = "MutabilityError"
	KindArity      Kind = "ArityError"
	KindControl    Kind = "ControlError"
)

// CompilerError is a single diagnostic with a kind, a message, and the
// source position it occurred at.
type CompilerError struct {
	Kind    Kind
	Message string
	Source  string
	File    string
	Pos     lexer.Position
}

// New constructs a CompilerError of the given kind.
func New(kind Kind, pos lexer.Position, message, source, file string) *CompilerError {
	return &CompilerError{Kind: kind, Pos: pos, Message: message, Source: source, File: file}
}

func Parse(pos lexer.Position, format string, args ...any) *CompilerError {
	return &CompilerError{Kind: KindParse, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func AstBuild(pos lexer.Position, format string, args ...any) *CompilerError {
	return &CompilerError{Kind: KindAstBuild, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func Name(pos lexer.Position, format string, args ...any) *CompilerError {
	return &CompilerError{Kind: KindName, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func Type(pos lexer.Position, format string, args ...any) *CompilerError {
	return &CompilerError{Kind: KindType, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func Mutability(pos lexer.Position, format string, args ...any) *CompilerError {
	return &CompilerError{Kind: KindMutability, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func Arity(pos lexer.Position, format string, args ...any) *CompilerError {
	return &CompilerError{Kind: KindArity, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

func Control(pos lexer.Position, format string, args ...any) *CompilerError {
	return &CompilerError{Kind: KindControl, Pos: pos, Message: fmt.Sprintf(format, args...)}
}

// Error implements the error interface.
func (e *CompilerError) Error() string { return e.Format(false) }

// WithSource attaches the original source text and file name, enabling
// caret-annotated output from Format/FormatWithContext.
func (e *CompilerError) WithSource(source, file string) *CompilerError {
	e.Source = source
	e.File = file
	return e
}

// Format renders the error with a single line of source context and a
// caret pointing at the offending column.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder
	sb.WriteString(e.header())

	sourceLine := e.getSourceLine(e.Pos.Line)
	if sourceLine != "" {
		lineNumStr := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(lineNumStr)
		sb.WriteString(sourceLine)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
		if color {
			sb.WriteString("\033[1;31m")
		}
		sb.WriteString("^")
		if color {
			sb.WriteString("\033[0m")
		}
		sb.WriteString("\n")
	}

	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(string(e.Kind))
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

func (e *CompilerError) header() string {
	if e.File != "" {
		return fmt.Sprintf("%s:%d:%d\n", e.File, e.Pos.Line, e.Pos.Column)
	}
	return fmt.Sprintf("line %d:%d\n", e.Pos.Line, e.Pos.Column)
}

func (e *CompilerError) getSourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

func (e *CompilerError) getSourceContext(lineNum, before, after int) (int, []string) {
	if e.Source == "" {
		return 0, nil
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return 0, nil
	}
	start := lineNum - before
	if start < 1 {
		start = 1
	}
	end := lineNum + after
	if end > len(lines) {
		end = len(lines)
	}
	return start, lines[start-1 : end]
}

// FormatWithContext renders the error with contextLines of surrounding
// source above and below the offending line.
func (e *CompilerError) FormatWithContext(contextLines int, color bool) string {
	startLine, ctx := e.getSourceContext(e.Pos.Line, contextLines, contextLines)
	if len(ctx) == 0 {
		return e.Format(color)
	}

	var sb strings.Builder
	sb.WriteString(e.header())

	for i, line := range ctx {
		currentLine := startLine + i
		lineNumStr := fmt.Sprintf("%4d | ", currentLine)
		if currentLine == e.Pos.Line {
			if color {
				sb.WriteString("\033[1m")
			}
			sb.WriteString(lineNumStr)
			sb.WriteString(line)
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
			sb.WriteString(strings.Repeat(" ", len(lineNumStr)+e.Pos.Column-1))
			if color {
				sb.WriteString("\033[1;31m")
			}
			sb.WriteString("^")
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		} else {
			if color {
				sb.WriteString("\033[2m")
			}
			sb.WriteString(lineNumStr)
			sb.WriteString(line)
			if color {
				sb.WriteString("\033[0m")
			}
			sb.WriteString("\n")
		}
	}

	sb.WriteString("\n")
	if color {
		sb.WriteString("\033[1m")
	}
	sb.WriteString(string(e.Kind))
	sb.WriteString(": ")
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}
	return sb.String()
}

// FormatErrors renders a batch of errors, numbered when there is more
// than one.
func FormatErrors(errs []*CompilerError, color bool) string {
	if len(errs) == 0 {
		return ""
	}
	if len(errs) == 1 {
		return errs[0].Format(color)
	}

	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("compilation failed with %d error(s):\n\n", len(errs)))
	for i, err := range errs {
		sb.WriteString(fmt.Sprintf("[%d/%d] ", i+1, len(errs)))
		sb.WriteString(err.Format(color))
		if i < len(errs)-1 {
			sb.WriteString("\n\n")
		}
	}
	return sb.String()
}

// AttachSource stamps source and file onto every error in errs, so a
// single parse/build pass can attach context once all errors are known.
func AttachSource(errs []*CompilerError, source, file string) {
	for _, e := range errs {
		e.Source = source
		e.File = file
	}
}
