package errors

import (
	"strings"
	"testing"

	"github.com/quill-lang/quillc/internal/token"
)

func TestFormatIncludesFileLineAndCaret(t *testing.T) {
	src := "function f() -> int {\n\treturn true;\n}"
	e := New(SubtypeError, token.Position{Line: 2, Column: 9}, "expected int, got bool", src, "test.ql")

	got := e.Format(false)
	if !strings.Contains(got, "test.ql:2:9: SUBTYPE_ERROR") {
		t.Errorf("expected a file:line:col header, got:\n%s", got)
	}
	if !strings.Contains(got, "return true;") {
		t.Errorf("expected the offending source line quoted, got:\n%s", got)
	}
	if !strings.Contains(got, "expected int, got bool") {
		t.Errorf("expected the message to appear, got:\n%s", got)
	}
}

func TestFormatOmitsFileWhenEmpty(t *testing.T) {
	e := New(SyntaxError, token.Position{Line: 1, Column: 1}, "unexpected token", "x", "")
	got := e.Format(false)
	if !strings.HasPrefix(got, "1:1: SYNTAX_ERROR") {
		t.Errorf("expected a bare line:col header with no file prefix, got:\n%s", got)
	}
}

func TestFormatColorWrapsCaretAndMessageInAnsiCodes(t *testing.T) {
	e := New(EmptyType, token.Position{Line: 1, Column: 1}, "uninhabited type", "x", "t.ql")
	got := e.Format(true)
	if !strings.Contains(got, "\033[1;31m^\033[0m") {
		t.Errorf("expected a color-wrapped caret, got:\n%s", got)
	}
	if !strings.Contains(got, "\033[1muninhabited type\033[0m") {
		t.Errorf("expected a color-wrapped message, got:\n%s", got)
	}
}

func TestFormatWithoutSourceSkipsCaretLine(t *testing.T) {
	e := New(EmptyType, token.Position{Line: 1, Column: 1}, "uninhabited type", "", "t.ql")
	got := e.Format(false)
	if strings.Contains(got, "^") {
		t.Errorf("expected no caret line when source is empty, got:\n%s", got)
	}
}

func TestFormatOutOfRangeLineSkipsCaretLine(t *testing.T) {
	e := New(EmptyType, token.Position{Line: 99, Column: 1}, "uninhabited type", "one line only", "t.ql")
	got := e.Format(false)
	if strings.Contains(got, "^") {
		t.Errorf("expected no caret line for an out-of-range line number, got:\n%s", got)
	}
}

func TestErrorImplementsErrorInterface(t *testing.T) {
	var err error = New(SubtypeError, token.Position{Line: 1, Column: 1}, "bad", "x", "t.ql")
	if !strings.Contains(err.Error(), "SUBTYPE_ERROR") {
		t.Errorf("expected Error() to delegate to Format(false), got %q", err.Error())
	}
}

func TestInternalErrorMessage(t *testing.T) {
	ie := &InternalError{Message: "unreachable switch arm", Pos: token.Position{Line: 4, Column: 2}}
	if got := ie.Error(); !strings.Contains(got, "unreachable switch arm") || !strings.Contains(got, "4:2") {
		t.Errorf("expected the position and message in the error text, got %q", got)
	}
}

func TestPanicRaisesInternalError(t *testing.T) {
	defer func() {
		r := recover()
		ie, ok := r.(*InternalError)
		if !ok {
			t.Fatalf("expected a recovered *InternalError, got %T (%v)", r, r)
		}
		if ie.Message != "impossible node kind 7" {
			t.Errorf("expected a formatted message, got %q", ie.Message)
		}
	}()
	Panic(token.Position{Line: 1, Column: 1}, "impossible node kind %d", 7)
}
