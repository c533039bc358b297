// Package ast defines the abstract syntax tree produced by the parser
// and consumed by the flow checker. The checker owns no node data; it
// only holds read references and writes inferred-type annotations back
// onto expression, l-value, and lambda nodes.
package ast

import "github.com/quill-lang/quillc/internal/token"

// Node is the common interface implemented by every AST node.
type Node interface {
	Pos() token.Position
	String() string
}

// Statement is any node that can appear in a statement position.
type Statement interface {
	Node
	statementNode()
}

// ConcreteType is the annotation the checker writes back onto
// expression, l-value, and lambda nodes: the surface representation
// produced by the Concrete Type Extractor. It is declared here (rather
// than imported from internal/types) so that ast has no dependency on
// the semantic type algebra — internal/semantic, which imports both,
// resolves TypeDecl nodes into internal/types terms.
type ConcreteType interface {
	String() string
}

// Expression is any node that can appear in an expression position.
type Expression interface {
	Node
	expressionNode()
	// Annotation returns the concrete type written by the checker, or
	// nil before checking.
	Annotation() ConcreteType
	SetAnnotation(ConcreteType)
}

// Declaration is a top-level or nested declaration.
type Declaration interface {
	Node
	declarationNode()
}

// baseExpr centralizes the inferred-type annotation every expression
// node carries, so individual node types need not repeat the field.
type baseExpr struct {
	annotation ConcreteType
}

func (b *baseExpr) Annotation() ConcreteType     { return b.annotation }
func (b *baseExpr) SetAnnotation(t ConcreteType) { b.annotation = t }
func (b *baseExpr) expressionNode()              {}

// Unit is the root node: a single compilation unit.
type Unit struct {
	Imports      []*Import
	Declarations []Declaration
}

func (u *Unit) Pos() token.Position { return token.Position{Line: 1, Column: 1} }
func (u *Unit) String() string      { return "unit" }

// Import names a unit dependency. The checker ignores imports; name
// resolution (out of scope) is assumed to have already linked any
// cross-unit references before the checker runs.
type Import struct {
	Token token.Token
	Name  string
}

func (i *Import) Pos() token.Position { return i.Token.Pos }
func (i *Import) String() string      { return "import " + i.Name }
func (i *Import) declarationNode()    {}
