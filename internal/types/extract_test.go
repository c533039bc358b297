package types

import "testing"

func TestExtractReadArrayUnionsElementTypes(t *testing.T) {
	reg := NewRegistry()
	t1 := Union(&ArrayType{Elem: Int}, &ArrayType{Elem: Bool})
	elem, ok := ExtractReadArray(t1, reg)
	if !ok {
		t.Fatalf("expected (int[] | bool[]) to extract as an array read")
	}
	if !IsEquivalent(elem, Union(Int, Bool), reg, Lifetimes{}) {
		t.Errorf("expected read element int|bool, got %s", elem)
	}
}

func TestExtractWriteArrayIntersectsElementTypes(t *testing.T) {
	reg := NewRegistry()
	t1 := Union(&ArrayType{Elem: Union(Int, Bool)}, &ArrayType{Elem: Int})
	elem, ok := ExtractWriteArray(t1, reg)
	if !ok {
		t.Fatalf("expected a write-array extraction")
	}
	// A write must be valid in both branches: only int survives the
	// intersection of (int|bool) and int.
	if !IsEquivalent(elem, Int, reg, Lifetimes{}) {
		t.Errorf("expected write element int, got %s", elem)
	}
}

func TestExtractArrayFailsOnNonArrayBranch(t *testing.T) {
	reg := NewRegistry()
	t1 := Union(&ArrayType{Elem: Int}, Bool)
	if _, ok := ExtractReadArray(t1, reg); ok {
		t.Errorf("expected ExtractReadArray to fail when a branch is not an array")
	}
	if _, ok := ExtractWriteArray(t1, reg); ok {
		t.Errorf("expected ExtractWriteArray to fail when a branch is not an array")
	}
}

func TestExtractReadFieldUnionsAcrossBranches(t *testing.T) {
	reg := NewRegistry()
	r1 := NewRecordType(false, []string{"x"}, []Type{Int})
	r2 := NewRecordType(false, []string{"x"}, []Type{Bool})
	ft, ok := ExtractReadField(Union(r1, r2), "x", reg)
	if !ok {
		t.Fatalf("expected field x to extract")
	}
	if !IsEquivalent(ft, Union(Int, Bool), reg, Lifetimes{}) {
		t.Errorf("expected read field int|bool, got %s", ft)
	}
}

func TestExtractWriteFieldIntersectsAcrossBranches(t *testing.T) {
	reg := NewRegistry()
	r1 := NewRecordType(false, []string{"x"}, []Type{Union(Int, Bool)})
	r2 := NewRecordType(false, []string{"x"}, []Type{Int})
	ft, ok := ExtractWriteField(Union(r1, r2), "x", reg)
	if !ok {
		t.Fatalf("expected field x to extract")
	}
	if !IsEquivalent(ft, Int, reg, Lifetimes{}) {
		t.Errorf("expected write field int, got %s", ft)
	}
}

func TestExtractFieldOpenRecordFallsBackToAny(t *testing.T) {
	reg := NewRegistry()
	open := NewRecordType(true, []string{"x"}, []Type{Int})
	ft, ok := ExtractReadField(open, "missing", reg)
	if !ok {
		t.Fatalf("expected an open record to tolerate an absent field")
	}
	if !IsEquivalent(ft, Any, reg, Lifetimes{}) {
		t.Errorf("expected any for an absent field on an open record, got %s", ft)
	}
}

func TestExtractFieldClosedRecordRejectsMissingField(t *testing.T) {
	reg := NewRegistry()
	closed := NewRecordType(false, []string{"x"}, []Type{Int})
	if _, ok := ExtractReadField(closed, "missing", reg); ok {
		t.Errorf("expected a closed record to reject an absent field")
	}
}

func TestExtractDerefUnionsAcrossBranches(t *testing.T) {
	reg := NewRegistry()
	t1 := Union(&ReferenceType{Elem: Int, Lifetime: "r"}, &ReferenceType{Elem: Bool, Lifetime: "r"})
	elem, ok := ExtractDeref(t1, reg)
	if !ok {
		t.Fatalf("expected a dereference extraction")
	}
	if !IsEquivalent(elem, Union(Int, Bool), reg, Lifetimes{}) {
		t.Errorf("expected deref element int|bool, got %s", elem)
	}
}

func TestExtractCallableUnifiesParamsAndReturns(t *testing.T) {
	reg := NewRegistry()
	c1 := &CallableType{CKind: FunctionKind, Params: []Type{Int}, Returns: []Type{Union(Int, Bool)}}
	c2 := &CallableType{CKind: FunctionKind, Params: []Type{Bool}, Returns: []Type{Int}}
	unified, ok := ExtractCallable(Union(c1, c2), reg)
	if !ok {
		t.Fatalf("expected a callable extraction across same-arity branches")
	}
	if !IsEquivalent(unified.Params[0], Union(Int, Bool), reg, Lifetimes{}) {
		t.Errorf("expected param int|bool, got %s", unified.Params[0])
	}
	if !IsEquivalent(unified.Returns[0], Int, reg, Lifetimes{}) {
		t.Errorf("expected return int, got %s", unified.Returns[0])
	}
}

func TestExtractCallableRejectsArityMismatch(t *testing.T) {
	reg := NewRegistry()
	c1 := &CallableType{CKind: FunctionKind, Params: []Type{Int}, Returns: []Type{Int}}
	c2 := &CallableType{CKind: FunctionKind, Params: []Type{Int, Bool}, Returns: []Type{Int}}
	if _, ok := ExtractCallable(Union(c1, c2), reg); ok {
		t.Errorf("expected arity mismatch across branches to fail extraction")
	}
}

func TestExtractCallableMethodKindDominates(t *testing.T) {
	reg := NewRegistry()
	c1 := &CallableType{CKind: FunctionKind, Params: []Type{Int}, Returns: []Type{Int}}
	c2 := &CallableType{CKind: MethodKind, Params: []Type{Int}, Returns: []Type{Int}}
	unified, ok := ExtractCallable(Union(c1, c2), reg)
	if !ok {
		t.Fatalf("expected a callable extraction")
	}
	if unified.CKind != MethodKind {
		t.Errorf("expected method kind to dominate a mixed union, got %v", unified.CKind)
	}
}

func TestIsArraylyRecordlyReferencelyClassifyBranches(t *testing.T) {
	reg := NewRegistry()
	arr := Union(&ArrayType{Elem: Int}, &ArrayType{Elem: Bool})
	if !IsArrayly(arr, reg) {
		t.Errorf("expected a union of arrays to be arrayly")
	}
	mixed := Union(&ArrayType{Elem: Int}, Bool)
	if IsArrayly(mixed, reg) {
		t.Errorf("did not expect a mixed union to be arrayly")
	}
	rec := NewRecordType(false, []string{"a"}, []Type{Int})
	if !IsRecordly(rec, reg) {
		t.Errorf("expected a record to be recordly")
	}
	ref := &ReferenceType{Elem: Int, Lifetime: "r"}
	if !IsReferencely(ref, reg) {
		t.Errorf("expected a reference to be referencely")
	}
}

func TestBranchesUnfoldsNominals(t *testing.T) {
	reg := NewRegistry()
	reg.Register(&Decl{Name: "IntArray", Body: &ArrayType{Elem: Int}})
	nom := &NominalType{Name: "IntArray", Registry: reg}
	if !IsArrayly(nom, reg) {
		t.Errorf("expected a nominal alias of an array type to unfold to arrayly")
	}
	elem, ok := ExtractReadArray(nom, reg)
	if !ok || !IsEquivalent(elem, Int, reg, Lifetimes{}) {
		t.Errorf("expected the nominal to unfold to its array element type int, got %s, ok=%v", elem, ok)
	}
}
