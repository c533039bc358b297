// Package types implements the semantic type algebra (§3 of the
// specification): an immutable term representation for
// atoms, unions, intersections, negations, arrays, references,
// records, callables, and nominal links, together with the emptiness
// oracle, subtype operator, and read/write extractor built on top of
// it.
package types

import (
	"sort"
	"strings"
)

// Kind identifies a Type's top-level constructor, mirroring the
// TypeKind() contract the checker's predecessor used for basic types
// (Integer/Float/String/...), generalized to the algebraic variants.
type Kind string

const (
	KindVoid         Kind = "VOID"
	KindAny          Kind = "ANY"
	KindNull         Kind = "NULL"
	KindBool         Kind = "BOOL"
	KindByte         Kind = "BYTE"
	KindInt          Kind = "INT"
	KindNominal      Kind = "NOMINAL"
	KindArray        Kind = "ARRAY"
	KindReference    Kind = "REFERENCE"
	KindRecord       Kind = "RECORD"
	KindCallable     Kind = "CALLABLE"
	KindUnion        Kind = "UNION"
	KindIntersection Kind = "INTERSECTION"
	KindNegation     Kind = "NEGATION"
)

// Type is the common interface of every semantic type term. Terms are
// immutable; all combinators (Union, Intersect, Negate) return new
// terms rather than mutating their operands.
type Type interface {
	// String renders the term's canonical textual form. Two
	// structurally equal terms always render identically — this is
	// relied on by Equals.
	String() string
	// Kind reports the top-level constructor.
	Kind() Kind
}

// Equals reports whether a and b are the same term, structurally.
func Equals(a, b Type) bool {
	if a == nil || b == nil {
		return a == b
	}
	return a.String() == b.String()
}

// ---------------------------------------------------------------------------
// Atoms

// AtomType is one of {Void, Any, Null, Bool, Byte, Int}.
type AtomType struct {
	kind Kind
	name string
}

func (a *AtomType) String() string { return a.name }
func (a *AtomType) Kind() Kind     { return a.kind }

var (
	Void = &AtomType{kind: KindVoid, name: "void"}
	Any  = &AtomType{kind: KindAny, name: "any"}
	Null = &AtomType{kind: KindNull, name: "null"}
	Bool = &AtomType{kind: KindBool, name: "bool"}
	Byte = &AtomType{kind: KindByte, name: "byte"}
	Int  = &AtomType{kind: KindInt, name: "int"}
)

// isAtomKind reports whether k is one of the atom kinds, which cannot
// overlap pairwise (any two distinct positive atomic kinds are
// disjoint).
func isAtomKind(k Kind) bool {
	switch k {
	case KindVoid, KindAny, KindNull, KindBool, KindByte, KindInt:
		return true
	}
	return false
}

// ---------------------------------------------------------------------------
// Nominal

// NominalType is a qualified name linked to a declared type, resolved
// through a Registry. Its Decl may record a refinement invariant (the
// TypeDecl's "where" clause); the emptiness oracle consults only
// whether one is present (Decl.HasInvariant).
type NominalType struct {
	Name     string
	Registry *Registry
}

func (n *NominalType) String() string { return n.Name }
func (n *NominalType) Kind() Kind     { return KindNominal }

// ---------------------------------------------------------------------------
// Array / Reference

// ArrayType is "Elem[]".
type ArrayType struct {
	Elem Type
}

func (a *ArrayType) String() string { return a.Elem.String() + "[]" }
func (a *ArrayType) Kind() Kind     { return KindArray }

// ReferenceType is "&lifetime:Elem" (Lifetime == "" means unannotated).
type ReferenceType struct {
	Elem     Type
	Lifetime string
}

func (r *ReferenceType) String() string {
	if r.Lifetime == "" {
		return "&" + r.Elem.String()
	}
	return "&" + r.Lifetime + ":" + r.Elem.String()
}
func (r *ReferenceType) Kind() Kind { return KindReference }

// ---------------------------------------------------------------------------
// Record

// RecordType is a structural record. Fields preserve declaration
// order in FieldOrder for printing/initializer purposes, but
// subtyping and equality compare Fields as an unordered finite map
// (spec §9: "implementations must not leak ordering into the subtype
// relation").
type RecordType struct {
	Open       bool
	Fields     map[string]Type
	FieldOrder []string
}

// NewRecordType builds a RecordType from an ordered field list,
// deriving the lookup map.
func NewRecordType(open bool, names []string, fieldTypes []Type) *RecordType {
	fields := make(map[string]Type, len(names))
	for i, n := range names {
		fields[n] = fieldTypes[i]
	}
	return &RecordType{Open: open, Fields: fields, FieldOrder: append([]string(nil), names...)}
}

func (r *RecordType) String() string {
	var sb strings.Builder
	sb.WriteString("{")
	names := append([]string(nil), r.FieldOrder...)
	sort.Strings(names)
	for i, n := range names {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(n)
		sb.WriteString(":")
		sb.WriteString(r.Fields[n].String())
	}
	if r.Open {
		sb.WriteString(",...")
	}
	sb.WriteString("}")
	return sb.String()
}
func (r *RecordType) Kind() Kind { return KindRecord }

// ---------------------------------------------------------------------------
// Callable

// CallableKind distinguishes free functions from methods; §4.1 says
// "function vs method kinds meet as method" under intersection.
type CallableKind int

const (
	FunctionKind CallableKind = iota
	MethodKind
)

// CallableType is a function or method signature.
type CallableType struct {
	CKind     CallableKind
	Params    []Type
	Returns   []Type
	Lifetimes []string // captured/declared lifetime names
}

func (c *CallableType) String() string {
	var sb strings.Builder
	if c.CKind == MethodKind {
		sb.WriteString("method(")
	} else {
		sb.WriteString("function(")
	}
	for i, p := range c.Params {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(p.String())
	}
	sb.WriteString(")->")
	for i, r := range c.Returns {
		if i > 0 {
			sb.WriteString(",")
		}
		sb.WriteString(r.String())
	}
	return sb.String()
}
func (c *CallableType) Kind() Kind { return KindCallable }

// ---------------------------------------------------------------------------
// Union / Intersection / Negation

// UnionType is a flat, idempotent set of children (§3 invariants).
type UnionType struct {
	Children []Type
}

func (u *UnionType) String() string { return joinChildren(u.Children, "|") }
func (u *UnionType) Kind() Kind     { return KindUnion }

// IntersectionType is a flat, idempotent set of children.
type IntersectionType struct {
	Children []Type
}

func (i *IntersectionType) String() string { return joinChildren(i.Children, "&") }
func (i *IntersectionType) Kind() Kind     { return KindIntersection }

// NegationType is "¬child"; NegationType.Negation(Negation(t)) == t is
// enforced by the Negate constructor, never by this struct directly.
type NegationType struct {
	Child Type
}

func (n *NegationType) String() string { return "!" + n.Child.String() }
func (n *NegationType) Kind() Kind     { return KindNegation }

func joinChildren(children []Type, sep string) string {
	strs := make([]string, len(children))
	for i, c := range children {
		strs[i] = c.String()
	}
	sort.Strings(strs)
	return "(" + strings.Join(strs, sep) + ")"
}

// ---------------------------------------------------------------------------
// Combinators

// Union builds a flat, idempotent union of ts. Void is the identity
// (dropped unless it is the only member); Any absorbs (the result
// collapses to Any if any child is Any).
func Union(ts ...Type) Type {
	flat := flatten(ts, KindUnion)
	var out []Type
	seen := map[string]bool{}
	for _, t := range flat {
		if t.Kind() == KindAny {
			return Any
		}
		if t.Kind() == KindVoid {
			continue
		}
		key := t.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	switch len(out) {
	case 0:
		return Void
	case 1:
		return out[0]
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
		return &UnionType{Children: out}
	}
}

// Intersect builds a flat, idempotent intersection of ts. Any is the
// identity; Void absorbs.
func Intersect(ts ...Type) Type {
	flat := flatten(ts, KindIntersection)
	var out []Type
	seen := map[string]bool{}
	for _, t := range flat {
		if t.Kind() == KindVoid {
			return Void
		}
		if t.Kind() == KindAny {
			continue
		}
		key := t.String()
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, t)
	}
	switch len(out) {
	case 0:
		return Any
	case 1:
		return out[0]
	default:
		sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
		return &IntersectionType{Children: out}
	}
}

func flatten(ts []Type, kind Kind) []Type {
	var out []Type
	for _, t := range ts {
		if t == nil {
			continue
		}
		if kind == KindUnion {
			if u, ok := t.(*UnionType); ok {
				out = append(out, flatten(u.Children, kind)...)
				continue
			}
		} else {
			if i, ok := t.(*IntersectionType); ok {
				out = append(out, flatten(i.Children, kind)...)
				continue
			}
		}
		out = append(out, t)
	}
	return out
}

// Negate builds ¬t, collapsing double negation: Negate(Negate(t)) == t.
func Negate(t Type) Type {
	if n, ok := t.(*NegationType); ok {
		return n.Child
	}
	if t.Kind() == KindVoid {
		return Any
	}
	if t.Kind() == KindAny {
		return Void
	}
	return &NegationType{Child: t}
}

// Difference builds a ∧ ¬b, the sugar spec §3 defines for Difference.
func Difference(a, b Type) Type {
	return Intersect(a, Negate(b))
}
