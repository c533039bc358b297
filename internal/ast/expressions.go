package ast

import "github.com/quill-lang/quillc/internal/token"

// ConstKind distinguishes the literal forms Constant can hold.
type ConstKind int

const (
	ConstInt ConstKind = iota
	ConstChar
	ConstString
	ConstBool
	ConstNull
)

// Constant is a literal: an integer, char, string, bool, or null.
// String literals type as Array(Int); char literals type as Int (§4.6).
type Constant struct {
	baseExpr
	Token token.Token
	Kind  ConstKind
	Int   int64
	Str   string
	Bool  bool
}

func (e *Constant) Pos() token.Position { return e.Token.Pos }
func (e *Constant) String() string      { return e.Token.Literal }

// VariableAccess reads a local/parameter variable by name; its type is
// the environment's current known (refined) type.
type VariableAccess struct {
	baseExpr
	Token token.Token
	Name  string
}

func (e *VariableAccess) Pos() token.Position { return e.Token.Pos }
func (e *VariableAccess) String() string      { return e.Name }

// StaticVariableAccess reads a unit-scoped static variable; its type is
// always the declared type, never refined.
type StaticVariableAccess struct {
	baseExpr
	Token token.Token
	Name  string
}

func (e *StaticVariableAccess) Pos() token.Position { return e.Token.Pos }
func (e *StaticVariableAccess) String() string      { return e.Name }

// Cast is "(Type) expr". The checker checks the operand and takes Type
// as the result type; it does not check that the cast can succeed.
type Cast struct {
	baseExpr
	Token  token.Token
	Type   TypeExpr
	Value  Expression
}

func (e *Cast) Pos() token.Position { return e.Token.Pos }
func (e *Cast) String() string      { return "(" + e.Type.String() + ")" }

// Invoke is a direct call "name(args)" resolved through the
// Type-Inference Oracle against every FunctionOrMethod sharing Name.
type Invoke struct {
	baseExpr
	Token    token.Token
	Name     string
	Args     []Expression
	Resolved *FunctionOrMethod // written by TIO
}

func (e *Invoke) Pos() token.Position { return e.Token.Pos }
func (e *Invoke) String() string      { return e.Name + "(...)" }

// IndirectInvoke is "callee(args)" where callee is itself an
// expression of callable type, resolved via RWE(readable-callable).
type IndirectInvoke struct {
	baseExpr
	Token  token.Token
	Callee Expression
	Args   []Expression
}

func (e *IndirectInvoke) Pos() token.Position { return e.Token.Pos }
func (e *IndirectInvoke) String() string      { return "(*callee)(...)" }

// LogicalNot is "!e".
type LogicalNot struct {
	baseExpr
	Token token.Token
	Value Expression
}

func (e *LogicalNot) Pos() token.Position { return e.Token.Pos }
func (e *LogicalNot) String() string      { return "!" + e.Value.String() }

// BinaryLogical covers &&, ||, <=>, => — the condition-checking table
// in §4.6 dispatches on Op.
type LogicalOp int

const (
	OpAnd LogicalOp = iota
	OpOr
	OpIff
	OpImplies
)

type LogicalBinary struct {
	baseExpr
	Token token.Token
	Op    LogicalOp
	Left  Expression
	Right Expression
}

func (e *LogicalBinary) Pos() token.Position { return e.Token.Pos }
func (e *LogicalBinary) String() string      { return "logical" }

// Is is the type test "v is T" that drives flow refinement.
type Is struct {
	baseExpr
	Token token.Token
	Value Expression
	Type  TypeExpr
}

func (e *Is) Pos() token.Position { return e.Token.Pos }
func (e *Is) String() string      { return e.Value.String() + " is " + e.Type.String() }

// QuantifierKind distinguishes "all" from "some".
type QuantifierKind int

const (
	Universal QuantifierKind = iota
	Existential
)

// Quantifier is "all x in source: body" / "some x in source: body".
type Quantifier struct {
	baseExpr
	Token  token.Token
	Kind   QuantifierKind
	Var    string
	Source Expression
	Body   Expression
}

func (e *Quantifier) Pos() token.Position { return e.Token.Pos }
func (e *Quantifier) String() string      { return "quantifier" }

// CompareOp enumerates the relational/equality operators.
type CompareOp int

const (
	CmpEqual CompareOp = iota
	CmpNotEqual
	CmpLess
	CmpLessEqual
	CmpGreater
	CmpGreaterEqual
)

type Compare struct {
	baseExpr
	Token token.Token
	Op    CompareOp
	Left  Expression
	Right Expression
}

func (e *Compare) Pos() token.Position { return e.Token.Pos }
func (e *Compare) String() string      { return "compare" }

// ArithOp enumerates integer arithmetic operators (IntegerNeg is Unary
// with Op=ArithNeg).
type ArithOp int

const (
	ArithNeg ArithOp = iota
	ArithAdd
	ArithSub
	ArithMul
	ArithDiv
	ArithRem
)

type Unary struct {
	baseExpr
	Token token.Token
	Op    ArithOp // only ArithNeg is valid here
	Value Expression
}

func (e *Unary) Pos() token.Position { return e.Token.Pos }
func (e *Unary) String() string      { return "unary" }

type Arith struct {
	baseExpr
	Token token.Token
	Op    ArithOp
	Left  Expression
	Right Expression
}

func (e *Arith) Pos() token.Position { return e.Token.Pos }
func (e *Arith) String() string      { return "arith" }

// BitOp enumerates bitwise operators (BitwiseNot is Unary-shaped).
type BitOp int

const (
	BitNot BitOp = iota
	BitAnd
	BitOr
	BitXor
	BitShl
	BitShr
)

type BitwiseNot struct {
	baseExpr
	Token token.Token
	Value Expression
}

func (e *BitwiseNot) Pos() token.Position { return e.Token.Pos }
func (e *BitwiseNot) String() string      { return "~" + e.Value.String() }

type Bitwise struct {
	baseExpr
	Token token.Token
	Op    BitOp
	Left  Expression
	Right Expression
}

func (e *Bitwise) Pos() token.Position { return e.Token.Pos }
func (e *Bitwise) String() string      { return "bitwise" }

// RecordFieldInit is one "name: value" entry in a RecordInitialiser.
type RecordFieldInit struct {
	Name  string
	Value Expression
}

// RecordInitialiser is "{f1: v1, f2: v2}" — builds a structural,
// union-free record type (§4.6).
type RecordInitialiser struct {
	baseExpr
	Token  token.Token
	Fields []RecordFieldInit
}

func (e *RecordInitialiser) Pos() token.Position { return e.Token.Pos }
func (e *RecordInitialiser) String() string      { return "{record}" }

// RecordAccess is "base.field" as an expression (read).
type RecordAccess struct {
	baseExpr
	Token token.Token
	Base  Expression
	Field string
}

func (e *RecordAccess) Pos() token.Position { return e.Token.Pos }
func (e *RecordAccess) String() string      { return e.Base.String() + "." + e.Field }

// RecordBorrow is "&base.field" — takes a reference to a field.
type RecordBorrow struct {
	baseExpr
	Token    token.Token
	Base     Expression
	Field    string
	Lifetime string
}

func (e *RecordBorrow) Pos() token.Position { return e.Token.Pos }
func (e *RecordBorrow) String() string      { return "&" + e.Base.String() + "." + e.Field }

// RecordUpdate is "base.(field: value)" — a functional (non-mutating)
// update producing a new record value.
type RecordUpdate struct {
	baseExpr
	Token token.Token
	Base  Expression
	Field string
	Value Expression
}

func (e *RecordUpdate) Pos() token.Position { return e.Token.Pos }
func (e *RecordUpdate) String() string      { return "record-update" }

// ArrayLength is "|arr|".
type ArrayLength struct {
	baseExpr
	Token token.Token
	Value Expression
}

func (e *ArrayLength) Pos() token.Position { return e.Token.Pos }
func (e *ArrayLength) String() string      { return "|" + e.Value.String() + "|" }

// ArrayInitialiser is "[v1, v2, v3]".
type ArrayInitialiser struct {
	baseExpr
	Token    token.Token
	Elements []Expression
}

func (e *ArrayInitialiser) Pos() token.Position { return e.Token.Pos }
func (e *ArrayInitialiser) String() string      { return "[array]" }

// ArrayGenerator is "[size; init]" — an array of `size` copies of `init`.
type ArrayGenerator struct {
	baseExpr
	Token token.Token
	Size  Expression
	Init  Expression
}

func (e *ArrayGenerator) Pos() token.Position { return e.Token.Pos }
func (e *ArrayGenerator) String() string      { return "[array-gen]" }

// ArrayAccess is "base[index]" as an expression (read).
type ArrayAccess struct {
	baseExpr
	Token token.Token
	Base  Expression
	Index Expression
}

func (e *ArrayAccess) Pos() token.Position { return e.Token.Pos }
func (e *ArrayAccess) String() string      { return e.Base.String() + "[]" }

// ArrayBorrow is "&base[index]" — takes a reference to an element.
type ArrayBorrow struct {
	baseExpr
	Token    token.Token
	Base     Expression
	Index    Expression
	Lifetime string
}

func (e *ArrayBorrow) Pos() token.Position { return e.Token.Pos }
func (e *ArrayBorrow) String() string      { return "&" + e.Base.String() + "[]" }

// ArrayRange is "base[lo..hi]" — a sub-array slice.
type ArrayRange struct {
	baseExpr
	Token token.Token
	Base  Expression
	Lo    Expression
	Hi    Expression
}

func (e *ArrayRange) Pos() token.Position { return e.Token.Pos }
func (e *ArrayRange) String() string      { return e.Base.String() + "[..]" }

// ArrayUpdate is "base[index := value]" — a functional array update.
type ArrayUpdate struct {
	baseExpr
	Token token.Token
	Base  Expression
	Index Expression
	Value Expression
}

func (e *ArrayUpdate) Pos() token.Position { return e.Token.Pos }
func (e *ArrayUpdate) String() string      { return "array-update" }

// Dereference is "*ref".
type Dereference struct {
	baseExpr
	Token token.Token
	Value Expression
}

func (e *Dereference) Pos() token.Position { return e.Token.Pos }
func (e *Dereference) String() string      { return "*" + e.Value.String() }

// New is "new Type" — allocates a value of the given type.
type New struct {
	baseExpr
	Token token.Token
	Type  TypeExpr
}

func (e *New) Pos() token.Position { return e.Token.Pos }
func (e *New) String() string      { return "new " + e.Type.String() }

// LambdaAccess reads a previously declared named Lambda by name,
// producing a callable value.
type LambdaAccess struct {
	baseExpr
	Token token.Token
	Name  string
}

func (e *LambdaAccess) Pos() token.Position { return e.Token.Pos }
func (e *LambdaAccess) String() string      { return e.Name }

// LambdaDecl is an anonymous function literal:
// "lambda(params) [-> returns] { body }".
type LambdaDecl struct {
	baseExpr
	Token   token.Token
	Params  []Param
	Returns []TypeExpr
	Body    *BlockStatement
}

func (e *LambdaDecl) Pos() token.Position { return e.Token.Pos }
func (e *LambdaDecl) String() string      { return "lambda(...)" }
