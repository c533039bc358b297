package parser

import (
	"testing"

	"github.com/quill-lang/quillc/internal/ast"
)

func parseOK(t *testing.T, src string) *ast.Unit {
	t.Helper()
	p := New(src, "test.ql")
	unit := p.ParseUnit()
	if len(p.Errors()) > 0 {
		t.Fatalf("unexpected parse errors for:\n%s\n%v", src, p.Errors())
	}
	return unit
}

func TestParseImportsBeforeDeclarations(t *testing.T) {
	unit := parseOK(t, `import collections;
function f() -> int { return 0; }`)
	if len(unit.Imports) != 1 || unit.Imports[0].Name != "collections" {
		t.Errorf("expected one import named collections, got %v", unit.Imports)
	}
	if len(unit.Declarations) != 1 {
		t.Fatalf("expected one declaration, got %d", len(unit.Declarations))
	}
}

func TestParseFunctionWithLifetimes(t *testing.T) {
	unit := parseOK(t, `function f<r>(&r:int x) -> &r:int { return x; }`)
	fn, ok := unit.Declarations[0].(*ast.FunctionOrMethod)
	if !ok {
		t.Fatalf("expected a FunctionOrMethod, got %T", unit.Declarations[0])
	}
	if len(fn.Lifetimes) != 1 || fn.Lifetimes[0] != "r" {
		t.Errorf("expected lifetime \"r\", got %v", fn.Lifetimes)
	}
}

func TestParseNativeFunctionHasNoBody(t *testing.T) {
	unit := parseOK(t, `native function write(int fd, int[] buf) -> int;`)
	fn := unit.Declarations[0].(*ast.FunctionOrMethod)
	if !fn.Native {
		t.Errorf("expected Native to be true")
	}
	if fn.Body != nil {
		t.Errorf("expected a native declaration to have no body")
	}
}

func TestParseMethodDeclaration(t *testing.T) {
	unit := parseOK(t, `method area() -> int { return 0; }`)
	fn := unit.Declarations[0].(*ast.FunctionOrMethod)
	if !fn.IsMethod {
		t.Errorf("expected IsMethod to be true")
	}
}

func TestParseTypeDeclWithInvariant(t *testing.T) {
	unit := parseOK(t, `type Pos is int where (n) n > 0;`)
	td := unit.Declarations[0].(*ast.TypeDecl)
	if td.Name != "Pos" || td.Param != "n" || td.Where == nil {
		t.Errorf("expected a refinement type decl, got %+v", td)
	}
}

func TestParseStaticVariable(t *testing.T) {
	unit := parseOK(t, `static int counter = 0;`)
	sv := unit.Declarations[0].(*ast.StaticVariable)
	if sv.Name != "counter" || sv.Init == nil {
		t.Errorf("expected a static variable with an initialiser, got %+v", sv)
	}
}

func TestParseProperty(t *testing.T) {
	unit := parseOK(t, `property int x get getX set setX;`)
	prop := unit.Declarations[0].(*ast.Property)
	if prop.Getter != "getX" || prop.Setter != "setX" {
		t.Errorf("expected getter/setter getX/setX, got %+v", prop)
	}
}

func TestParseTopLevelLambda(t *testing.T) {
	unit := parseOK(t, `lambda double(int n) -> int { return n * 2; }`)
	lam := unit.Declarations[0].(*ast.Lambda)
	if lam.Name != "double" || len(lam.Params) != 1 {
		t.Errorf("expected a one-param lambda named double, got %+v", lam)
	}
}

func TestParseUnionAndArrayTypes(t *testing.T) {
	unit := parseOK(t, `function f(int|bool|null x) -> int[] { return [1, 2, 3]; }`)
	fn := unit.Declarations[0].(*ast.FunctionOrMethod)
	union, ok := fn.Params[0].Type.(*ast.UnionTypeExpr)
	if !ok || len(union.Children) != 3 {
		t.Fatalf("expected a 3-member union param type, got %+v", fn.Params[0].Type)
	}
	if _, ok := fn.Returns[0].(*ast.ArrayTypeExpr); !ok {
		t.Errorf("expected an array return type, got %+v", fn.Returns[0])
	}
}

func TestParseOpenAndClosedRecordTypes(t *testing.T) {
	unit := parseOK(t, `function f({int x, ...} open, {int y} closed) -> int { return 0; }`)
	fn := unit.Declarations[0].(*ast.FunctionOrMethod)
	openRec := fn.Params[0].Type.(*ast.RecordTypeExpr)
	if !openRec.Open {
		t.Errorf("expected the first record type to be open")
	}
	closedRec := fn.Params[1].Type.(*ast.RecordTypeExpr)
	if closedRec.Open {
		t.Errorf("expected the second record type to be closed")
	}
}

func TestParseEveryStatementForm(t *testing.T) {
	src := `
function f(int n) -> int {
	var int x = 1;
	x := x + 1;
	if x is int {
		x := x;
	} else {
		skip;
	}
	block scope {
		var int y = 2;
	}
	while x < 10 where x >= 0 {
		x := x + 1;
	}
	do {
		x := x - 1;
	} while x > 0;
	switch x {
	case 1, 2:
		break;
	default:
		continue;
	}
	assert x >= 0;
	assume x < 1000;
	debug x;
	fail;
	return x;
}`
	unit := parseOK(t, src)
	fn := unit.Declarations[0].(*ast.FunctionOrMethod)
	if fn.Body == nil || len(fn.Body.Stmts) == 0 {
		t.Fatalf("expected a non-empty function body")
	}
}

func TestParseArrayLengthDoesNotSwallowClosingPipe(t *testing.T) {
	unit := parseOK(t, `
function f(int[] xs) -> bool {
	return |xs| > 0;
}`)
	fn := unit.Declarations[0].(*ast.FunctionOrMethod)
	ret := fn.Body.Stmts[0].(*ast.Return)
	cmp, ok := ret.Values[0].(*ast.Compare)
	if !ok {
		t.Fatalf("expected a Compare expression, got %T", ret.Values[0])
	}
	if _, ok := cmp.Left.(*ast.ArrayLength); !ok {
		t.Errorf("expected the left operand to be an ArrayLength, got %T", cmp.Left)
	}
}

func TestParseCastVsGroupedExpression(t *testing.T) {
	unit := parseOK(t, `function f() -> int { return (int) 1; }`)
	fn := unit.Declarations[0].(*ast.FunctionOrMethod)
	ret := fn.Body.Stmts[0].(*ast.Return)
	if _, ok := ret.Values[0].(*ast.Cast); !ok {
		t.Errorf("expected a Cast expression, got %T", ret.Values[0])
	}

	unit2 := parseOK(t, `function f() -> int { return (1 + 2); }`)
	fn2 := unit2.Declarations[0].(*ast.FunctionOrMethod)
	ret2 := fn2.Body.Stmts[0].(*ast.Return)
	if _, ok := ret2.Values[0].(*ast.Arith); !ok {
		t.Errorf("expected a plain grouped Arith expression, got %T", ret2.Values[0])
	}
}

func TestParseQuantifierExpression(t *testing.T) {
	unit := parseOK(t, `function f(int[] xs) -> bool { return all x in xs: x > 0; }`)
	fn := unit.Declarations[0].(*ast.FunctionOrMethod)
	ret := fn.Body.Stmts[0].(*ast.Return)
	q, ok := ret.Values[0].(*ast.Quantifier)
	if !ok || q.Kind != ast.Universal || q.Var != "x" {
		t.Fatalf("expected a universal quantifier over x, got %+v", ret.Values[0])
	}
}

func TestParseBorrowAndDereference(t *testing.T) {
	unit := parseOK(t, `function f(int[] xs) -> int { var &int r = &xs[0]; return *r; }`)
	fn := unit.Declarations[0].(*ast.FunctionOrMethod)
	decl := fn.Body.Stmts[0].(*ast.VariableDecl)
	if _, ok := decl.Init.(*ast.ArrayBorrow); !ok {
		t.Errorf("expected an ArrayBorrow initialiser, got %T", decl.Init)
	}
	ret := fn.Body.Stmts[1].(*ast.Return)
	if _, ok := ret.Values[0].(*ast.Dereference); !ok {
		t.Errorf("expected a Dereference return value, got %T", ret.Values[0])
	}
}

func TestParseRecordInitialiserAndAccess(t *testing.T) {
	unit := parseOK(t, `function f() -> int { return {x: 1, y: 2}.x; }`)
	fn := unit.Declarations[0].(*ast.FunctionOrMethod)
	ret := fn.Body.Stmts[0].(*ast.Return)
	access, ok := ret.Values[0].(*ast.RecordAccess)
	if !ok || access.Field != "x" {
		t.Fatalf("expected a RecordAccess on field x, got %+v", ret.Values[0])
	}
	if _, ok := access.Base.(*ast.RecordInitialiser); !ok {
		t.Errorf("expected the record access base to be a RecordInitialiser, got %T", access.Base)
	}
}

func TestParseTupleAssignment(t *testing.T) {
	unit := parseOK(t, `function f() -> int { var int a = 0; var int b = 0; a, b := b, a; return a; }`)
	fn := unit.Declarations[0].(*ast.FunctionOrMethod)
	assign, ok := fn.Body.Stmts[2].(*ast.Assign)
	if !ok {
		t.Fatalf("expected an Assign statement, got %T", fn.Body.Stmts[2])
	}
	if len(assign.LHS) != 2 || len(assign.RHS) != 2 {
		t.Errorf("expected a 2-target tuple assignment, got %+v", assign)
	}
}

func TestParseReportsSyntaxErrorOnMalformedFunction(t *testing.T) {
	p := New(`function f( -> int { return 0; }`, "test.ql")
	p.ParseUnit()
	if len(p.Errors()) == 0 {
		t.Errorf("expected at least one syntax error for a malformed parameter list")
	}
}

func TestParseReportsSyntaxErrorOnDanglingOperator(t *testing.T) {
	p := New(`function f() -> int { return 1 +; }`, "test.ql")
	p.ParseUnit()
	if len(p.Errors()) == 0 {
		t.Errorf("expected at least one syntax error for a dangling binary operator")
	}
}

func TestParseNewExpression(t *testing.T) {
	unit := parseOK(t, `function f() -> &int { return new int; }`)
	fn := unit.Declarations[0].(*ast.FunctionOrMethod)
	ret := fn.Body.Stmts[0].(*ast.Return)
	if _, ok := ret.Values[0].(*ast.New); !ok {
		t.Errorf("expected a New expression, got %T", ret.Values[0])
	}
}

func TestParseCallableType(t *testing.T) {
	unit := parseOK(t, `function apply(function(int)->int f, int x) -> int { return f(x); }`)
	fn := unit.Declarations[0].(*ast.FunctionOrMethod)
	if _, ok := fn.Params[0].Type.(*ast.CallableTypeExpr); !ok {
		t.Errorf("expected a callable type param, got %+v", fn.Params[0].Type)
	}
}
