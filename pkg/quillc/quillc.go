// Package quillc is the embedding facade: it wires the lexer, parser,
// and flow checker into a single Check call, returning a structured
// Result rather than requiring callers to reach into internal/...
// directly — the same role the teacher's pkg/dwscript engine plays
// over its own internal lexer/parser/interp/semantic stack.
package quillc

import (
	"github.com/quill-lang/quillc/internal/config"
	"github.com/quill-lang/quillc/internal/errors"
	"github.com/quill-lang/quillc/internal/parser"
	"github.com/quill-lang/quillc/internal/report"
	"github.com/quill-lang/quillc/internal/semantic"
)

// Result is the outcome of checking one compilation unit.
type Result struct {
	// OK is true when neither parsing nor checking reported an error.
	OK bool
	// Diagnostics holds every syntax and flow-checking error, sorted by
	// file:line:column.
	Diagnostics []*errors.CompilerError
}

// Text renders Result's diagnostics as plain, caret-annotated text.
func (r *Result) Text(color bool) string { return report.Text(r.Diagnostics, color) }

// JSON renders Result's diagnostics as a JSON array.
func (r *Result) JSON() (string, error) { return report.JSON(r.Diagnostics) }

// Check lexes, parses, and flow-checks source, returning a Result that
// never itself signals failure through the error return — an error is
// reserved for inputs Check cannot even attempt to process (a nil cfg
// is filled with config.Default(), so today Check never returns one,
// but the signature leaves room for future failure modes such as an
// import resolver that can fail before a single declaration checks).
func Check(source, filename string, cfg *config.Config) (*Result, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	p := parser.New(source, filename)
	unit := p.ParseUnit()

	diags := append([]*errors.CompilerError{}, p.Errors()...)

	ok := len(p.Errors()) == 0
	if ok {
		checker := semantic.NewChecker(source, filename)
		for _, lt := range cfg.Lifetimes.Within {
			checker.SeedLifetime(lt)
		}
		unitOK := checker.CheckUnit(unit)
		ok = unitOK
		diags = append(diags, checker.Errors...)
	}

	report.Sort(diags)
	return &Result{OK: ok, Diagnostics: diags}, nil
}
