// Package report renders a checker run's accumulated diagnostics,
// either as the plain caret-annotated text internal/errors.Format
// already produces, or as a JSON document for tooling consumption.
package report

import (
	"sort"
	"strconv"
	"strings"

	"github.com/maruel/natural"
	"github.com/tidwall/sjson"

	"github.com/quill-lang/quillc/internal/errors"
)

// Sort orders diagnostics by "file:line:column" using natural/alnum
// ordering, so a run across many files reports them in a stable,
// human-sensible order independent of map iteration.
func Sort(diags []*errors.CompilerError) {
	sort.SliceStable(diags, func(i, j int) bool {
		return natural.Less(sortKey(diags[i]), sortKey(diags[j]))
	})
}

func sortKey(e *errors.CompilerError) string {
	return e.File + ":" + strconv.Itoa(e.Pos.Line) + ":" + strconv.Itoa(e.Pos.Column)
}

// Text renders diagnostics the way the CLI prints to a terminal: one
// Format(color) block per diagnostic, separated by blank lines.
func Text(diags []*errors.CompilerError, color bool) string {
	var sb strings.Builder
	for i, e := range diags {
		if i > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(e.Format(color))
		sb.WriteString("\n")
	}
	return sb.String()
}

// JSON renders diagnostics as a JSON array, built incrementally with
// sjson.Set rather than a parallel wire-format struct — each
// CompilerError field gets its own Set call against a running
// document string.
func JSON(diags []*errors.CompilerError) (string, error) {
	doc := "[]"
	var err error
	for i, e := range diags {
		prefix := strconv.Itoa(i) + "."
		doc, err = sjson.Set(doc, prefix+"code", string(e.Code))
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, prefix+"message", e.Message)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, prefix+"file", e.File)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, prefix+"line", e.Pos.Line)
		if err != nil {
			return "", err
		}
		doc, err = sjson.Set(doc, prefix+"column", e.Pos.Column)
		if err != nil {
			return "", err
		}
	}
	return doc, nil
}
