package ast

import "github.com/quill-lang/quillc/internal/token"

// TypeExpr is the syntax-level representation of a type as written by
// the programmer: "int|null", "&r:T", "{int f}", "function(int)->int".
// The checker resolves a TypeExpr to a semantic type once, at first
// use; TypeExpr itself carries no semantic information.
type TypeExpr interface {
	Node
	typeExprNode()
}

// AtomTypeExpr is one of the built-in atom keywords.
type AtomTypeExpr struct {
	Token token.Token // VOID, ANY, NULL, BOOL, BYTE, or INT
	Name  string
}

func (t *AtomTypeExpr) Pos() token.Position { return t.Token.Pos }
func (t *AtomTypeExpr) String() string      { return t.Name }
func (t *AtomTypeExpr) typeExprNode()       {}

// NamedTypeExpr references a declared (nominal) type by name.
type NamedTypeExpr struct {
	Token token.Token
	Name  string
}

func (t *NamedTypeExpr) Pos() token.Position { return t.Token.Pos }
func (t *NamedTypeExpr) String() string      { return t.Name }
func (t *NamedTypeExpr) typeExprNode()       {}

// UnionTypeExpr is "A|B|C".
type UnionTypeExpr struct {
	Token    token.Token
	Children []TypeExpr
}

func (t *UnionTypeExpr) Pos() token.Position { return t.Token.Pos }
func (t *UnionTypeExpr) String() string {
	s := ""
	for i, c := range t.Children {
		if i > 0 {
			s += "|"
		}
		s += c.String()
	}
	return s
}
func (t *UnionTypeExpr) typeExprNode() {}

// ArrayTypeExpr is "Elem[]".
type ArrayTypeExpr struct {
	Token token.Token
	Elem  TypeExpr
}

func (t *ArrayTypeExpr) Pos() token.Position { return t.Token.Pos }
func (t *ArrayTypeExpr) String() string      { return t.Elem.String() + "[]" }
func (t *ArrayTypeExpr) typeExprNode()       {}

// ReferenceTypeExpr is "&lifetime:Elem" (lifetime may be empty).
type ReferenceTypeExpr struct {
	Token    token.Token
	Lifetime string
	Elem     TypeExpr
}

func (t *ReferenceTypeExpr) Pos() token.Position { return t.Token.Pos }
func (t *ReferenceTypeExpr) String() string {
	if t.Lifetime == "" {
		return "&" + t.Elem.String()
	}
	return "&" + t.Lifetime + ":" + t.Elem.String()
}
func (t *ReferenceTypeExpr) typeExprNode() {}

// RecordFieldExpr is one "Type name" entry in a record type expression.
type RecordFieldExpr struct {
	Name string
	Type TypeExpr
}

// RecordTypeExpr is "{int f, bool g, ...}" (Open=true if "..." present).
type RecordTypeExpr struct {
	Token  token.Token
	Fields []RecordFieldExpr
	Open   bool
}

func (t *RecordTypeExpr) Pos() token.Position { return t.Token.Pos }
func (t *RecordTypeExpr) String() string {
	s := "{"
	for i, f := range t.Fields {
		if i > 0 {
			s += ", "
		}
		s += f.Type.String() + " " + f.Name
	}
	if t.Open {
		s += ", ..."
	}
	return s + "}"
}
func (t *RecordTypeExpr) typeExprNode() {}

// CallableTypeExpr is "function(P1,P2)->R1,R2" or "method(...)->...".
type CallableTypeExpr struct {
	Token      token.Token
	IsMethod   bool
	Params     []TypeExpr
	Returns    []TypeExpr
	Lifetimes  []string
}

func (t *CallableTypeExpr) Pos() token.Position { return t.Token.Pos }
func (t *CallableTypeExpr) String() string {
	s := "function("
	for i, p := range t.Params {
		if i > 0 {
			s += ","
		}
		s += p.String()
	}
	s += ")->"
	for i, r := range t.Returns {
		if i > 0 {
			s += ","
		}
		s += r.String()
	}
	return s
}
func (t *CallableTypeExpr) typeExprNode() {}
