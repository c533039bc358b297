package ast

import (
	"testing"

	"github.com/quill-lang/quillc/internal/token"
)

// fakeType satisfies ConcreteType minimally so annotation round-trips
// can be exercised without pulling in internal/types.
type fakeType struct{ name string }

func (f *fakeType) String() string { return f.name }

func TestAnnotationRoundTripsThroughBaseExpr(t *testing.T) {
	v := &VariableAccess{Token: token.Token{}, Name: "x"}
	if v.Annotation() != nil {
		t.Fatalf("expected a fresh node to have no annotation, got %v", v.Annotation())
	}
	want := &fakeType{name: "int"}
	v.SetAnnotation(want)
	if got := v.Annotation(); got != want {
		t.Errorf("expected SetAnnotation to stick, got %v", got)
	}
}

func TestLambdaAnnotationRoundTrips(t *testing.T) {
	l := &Lambda{Token: token.Token{}, Name: "double"}
	want := &fakeType{name: "callable"}
	l.SetAnnotation(want)
	if got := l.Annotation(); got != want {
		t.Errorf("expected Lambda's own Annotation accessor to return what was set, got %v", got)
	}
}

func TestUnionTypeExprStringJoinsWithPipe(t *testing.T) {
	u := &UnionTypeExpr{Children: []TypeExpr{
		&AtomTypeExpr{Name: "int"},
		&AtomTypeExpr{Name: "bool"},
		&AtomTypeExpr{Name: "null"},
	}}
	if got, want := u.String(), "int|bool|null"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestReferenceTypeExprStringWithAndWithoutLifetime(t *testing.T) {
	unnamed := &ReferenceTypeExpr{Elem: &AtomTypeExpr{Name: "int"}}
	if got, want := unnamed.String(), "&int"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	named := &ReferenceTypeExpr{Lifetime: "r", Elem: &AtomTypeExpr{Name: "int"}}
	if got, want := named.String(), "&r:int"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRecordTypeExprStringOpenVsClosed(t *testing.T) {
	closed := &RecordTypeExpr{Fields: []RecordFieldExpr{
		{Name: "w", Type: &AtomTypeExpr{Name: "int"}},
		{Name: "h", Type: &AtomTypeExpr{Name: "int"}},
	}}
	if got, want := closed.String(), "{int w, int h}"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	open := &RecordTypeExpr{Open: true, Fields: []RecordFieldExpr{
		{Name: "w", Type: &AtomTypeExpr{Name: "int"}},
	}}
	if got, want := open.String(), "{int w, ...}"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestArrayTypeExprStringAppendsBrackets(t *testing.T) {
	a := &ArrayTypeExpr{Elem: &AtomTypeExpr{Name: "int"}}
	if got, want := a.String(), "int[]"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestRecordAccessStringChainsBaseAndField(t *testing.T) {
	access := &RecordAccess{Base: &VariableAccess{Name: "r"}, Field: "w"}
	if got, want := access.String(), "r.w"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestIsExprStringReadsAsNaturalLanguage(t *testing.T) {
	is := &Is{Value: &VariableAccess{Name: "x"}, Type: &AtomTypeExpr{Name: "int"}}
	if got, want := is.String(), "x is int"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestDeclarationStringsNameTheDeclaration(t *testing.T) {
	fn := &FunctionOrMethod{Name: "area"}
	if got, want := fn.String(), "function area"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	td := &TypeDecl{Name: "Pos"}
	if got, want := td.String(), "type Pos"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
	nb := &NamedBlock{Name: "outer"}
	if got, want := nb.String(), "block outer"; got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}
