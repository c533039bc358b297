// Package errors formats and classifies the diagnostics produced by
// the parser and the flow checker.
//
// Two classes of failure exist (spec §7): user errors, which set the
// checker's status flag but let checking continue, and internal
// inconsistencies, which abort the current compilation unit via panic
// and are recovered at the per-declaration boundary.
package errors

import (
	"fmt"
	"strings"

	"github.com/quill-lang/quillc/internal/token"
)

// Code is one of the fixed diagnostic codes from spec §6, emitted
// verbatim so downstream tooling can match on code rather than message
// text.
type Code string

const (
	SubtypeError           Code = "SUBTYPE_ERROR"
	EmptyType              Code = "EMPTY_TYPE"
	ExpectedArray          Code = "EXPECTED_ARRAY"
	ExpectedRecord         Code = "EXPECTED_RECORD"
	ExpectedReference      Code = "EXPECTED_REFERENCE"
	ExpectedLambda         Code = "EXPECTED_LAMBDA"
	InvalidField           Code = "INVALID_FIELD"
	IncomparableOperands   Code = "INCOMPARABLE_OPERANDS"
	BranchAlwaysTaken      Code = "BRANCH_ALWAYS_TAKEN"
	AmbiguousCallable      Code = "AMBIGUOUS_CALLABLE"
	InsufficientReturns    Code = "INSUFFICIENT_RETURNS"
	TooManyReturns         Code = "TOO_MANY_RETURNS"
	InsufficientArguments  Code = "INSUFFICIENT_ARGUMENTS"
	MissingReturnStatement Code = "MISSING_RETURN_STATEMENT"
	UnreachableCode        Code = "UNREACHABLE_CODE"
	SyntaxError            Code = "SYNTAX_ERROR"
)

// CompilerError is a single diagnostic with position and source
// context, formatted the way the CLI and test snapshots render it.
type CompilerError struct {
	Code    Code
	Message string
	Source  string
	File    string
	Pos     token.Position
}

// New creates a CompilerError.
func New(code Code, pos token.Position, message, source, file string) *CompilerError {
	return &CompilerError{Code: code, Message: message, Source: source, File: file, Pos: pos}
}

// Error implements the error interface.
func (e *CompilerError) Error() string {
	return e.Format(false)
}

// Format renders the error with a source line and caret indicator.
// If color is true, ANSI color codes are used for terminal output.
func (e *CompilerError) Format(color bool) string {
	var sb strings.Builder

	if e.File != "" {
		fmt.Fprintf(&sb, "%s:%d:%d: %s\n", e.File, e.Pos.Line, e.Pos.Column, e.Code)
	} else {
		fmt.Fprintf(&sb, "%d:%d: %s\n", e.Pos.Line, e.Pos.Column, e.Code)
	}

	if line := e.sourceLine(e.Pos.Line); line != "" {
		prefix := fmt.Sprintf("%4d | ", e.Pos.Line)
		sb.WriteString(prefix)
		sb.WriteString(line)
		sb.WriteString("\n")
		sb.WriteString(strings.Repeat(" ", len(prefix)+e.Pos.Column-1))
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
	sb.WriteString(e.Message)
	if color {
		sb.WriteString("\033[0m")
	}

	return sb.String()
}

func (e *CompilerError) sourceLine(lineNum int) string {
	if e.Source == "" {
		return ""
	}
	lines := strings.Split(e.Source, "\n")
	if lineNum < 1 || lineNum > len(lines) {
		return ""
	}
	return lines[lineNum-1]
}

// InternalError represents an impossible AST shape reaching the
// checker — a compiler bug, never expected on a well-formed AST. It
// is raised via panic and recovered at the per-declaration boundary,
// aborting only the current compilation unit (spec §7, class 2).
type InternalError struct {
	Message string
	Pos     token.Position
}

func (e *InternalError) Error() string {
	return fmt.Sprintf("internal error at %s: %s", e.Pos, e.Message)
}

// Panic raises an InternalError at pos with a formatted message.
func Panic(pos token.Position, format string, args ...any) {
	panic(&InternalError{Message: fmt.Sprintf(format, args...), Pos: pos})
}
