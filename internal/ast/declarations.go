package ast

import "github.com/quill-lang/quillc/internal/token"

// Param is one declared parameter of a FunctionOrMethod or Lambda.
type Param struct {
	Name string
	Type TypeExpr
}

// StaticVariable is a unit-scoped variable declaration: "static Type
// name [= init];". Its declared type never refines (§4.6: static
// variable access returns the declared static type).
type StaticVariable struct {
	Token token.Token
	Name  string
	Type  TypeExpr
	Init  Expression
}

func (s *StaticVariable) Pos() token.Position { return s.Token.Pos }
func (s *StaticVariable) String() string      { return "static " + s.Name }
func (s *StaticVariable) declarationNode()    {}

// TypeDecl declares a nominal type: "type name is Body [where (param) cond];"
// A nil Where means no refinement invariant (a plain alias).
type TypeDecl struct {
	Token token.Token
	Name  string
	Param string // bound variable name for the "where" clause, e.g. "n" in "where (n) n >= 0"
	Body  TypeExpr
	Where Expression
}

func (t *TypeDecl) Pos() token.Position { return t.Token.Pos }
func (t *TypeDecl) String() string      { return "type " + t.Name }
func (t *TypeDecl) declarationNode()    {}

// FunctionOrMethod declares a function or method.
type FunctionOrMethod struct {
	Token      token.Token
	Name       string
	IsMethod   bool
	Native     bool
	Params     []Param
	Returns    []TypeExpr
	Lifetimes  []string // declared lifetime parameters, e.g. the "a" in &a:T
	Body       *BlockStatement
	ModifiedLoopVars []string // not filled in by the checker; stays nil
}

func (f *FunctionOrMethod) Pos() token.Position { return f.Token.Pos }
func (f *FunctionOrMethod) String() string      { return "function " + f.Name }
func (f *FunctionOrMethod) declarationNode()    {}

// Property declares a record/class-style accessor pair: a typed name
// with optional getter/setter function names. The checker registers
// nothing for a Property and does not check its type or its
// getter/setter names.
type Property struct {
	Token  token.Token
	Name   string
	Type   TypeExpr
	Getter string
	Setter string
}

func (p *Property) Pos() token.Position { return p.Token.Pos }
func (p *Property) String() string      { return "property " + p.Name }
func (p *Property) declarationNode()    {}

// Lambda is a unit-scoped named lambda: "lambda name(params) [-> returns] { body }"
// It is checked exactly like a FunctionOrMethod but additionally
// receives its inferred Callable signature as an annotation (§6).
type Lambda struct {
	Token      token.Token
	Name       string
	Params     []Param
	Returns    []TypeExpr
	Body       *BlockStatement
	annotation ConcreteType
}

func (l *Lambda) Pos() token.Position        { return l.Token.Pos }
func (l *Lambda) String() string             { return "lambda " + l.Name }
func (l *Lambda) declarationNode()           {}
func (l *Lambda) Annotation() ConcreteType   { return l.annotation }
func (l *Lambda) SetAnnotation(t ConcreteType) { l.annotation = t }
