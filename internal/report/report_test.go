package report

import (
	"strings"
	"testing"

	"github.com/tidwall/gjson"

	"github.com/quill-lang/quillc/internal/errors"
	"github.com/quill-lang/quillc/internal/token"
)

func sample() []*errors.CompilerError {
	return []*errors.CompilerError{
		errors.New(errors.SubtypeError, token.Position{Line: 10, Column: 3}, "b", "", "b.ql"),
		errors.New(errors.EmptyType, token.Position{Line: 2, Column: 1}, "a", "", "a.ql"),
	}
}

func TestSortOrdersByFileThenPosition(t *testing.T) {
	diags := sample()
	Sort(diags)
	if diags[0].File != "a.ql" || diags[1].File != "b.ql" {
		t.Fatalf("expected a.ql before b.ql, got %s then %s", diags[0].File, diags[1].File)
	}
}

func TestJSONRendersEveryField(t *testing.T) {
	doc, err := JSON(sample())
	if err != nil {
		t.Fatalf("JSON: %v", err)
	}
	result := gjson.Parse(doc)
	if !result.IsArray() || len(result.Array()) != 2 {
		t.Fatalf("expected a 2-element array, got %s", doc)
	}
	first := result.Array()[0]
	if first.Get("code").String() != string(errors.SubtypeError) {
		t.Errorf("unexpected code: %s", first.Get("code").String())
	}
	if first.Get("line").Int() != 10 {
		t.Errorf("unexpected line: %d", first.Get("line").Int())
	}
}

func TestTextIncludesEveryMessage(t *testing.T) {
	out := Text(sample(), false)
	if out == "" {
		t.Fatalf("expected non-empty text output")
	}
	for _, d := range sample() {
		if !strings.Contains(out, string(d.Code)+"\n"+d.Message) {
			t.Errorf("expected text output to include %s %q, got:\n%s", d.Code, d.Message, out)
		}
	}
}
