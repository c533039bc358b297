package types

import "sort"

// Concrete Type Extractor (§4.4): reduces a semantic term — which may
// contain nominal links, intersections, and negations — down to a
// disjunction of surface types, the form diagnostics and the CLI print
// to the user. Concrete extraction always unfolds top-level nominals
// strictly: a diagnostic must describe the shape the user's value
// actually has, never leave it hidden behind a declared name.
//
// The result is a Union of branches, each one of Void, Any, an atom,
// an Array, a Reference, a Record, or a Callable — never a Negation,
// Intersection, or NominalType at the top of a branch. Only that top
// level is rewritten: element, field, parameter, and return types
// inside a branch are kept as they are and may still contain nominals,
// intersections, or negations.

// ToConcrete rewrites t into its concrete form.
func ToConcrete(t Type, registry *Registry) Type {
	disjuncts := normalizeToDisjuncts(t, true)
	var branches []Type
	for _, d := range disjuncts {
		if c, ok := conjunctionToConcrete(d, registry, map[string]bool{}); ok {
			branches = append(branches, c)
		}
	}
	return Union(branches...)
}

// conjunctionToConcrete resolves one DNF conjunction to a single
// concrete type, or ok=false if the conjunction has no concrete
// realization (e.g. it mixes incompatible families and is therefore
// uninhabited — such branches are simply dropped from the union, the
// same "default to not contributing" stance the emptiness oracle
// takes toward uncertainty, but here applied to a literal rewrite
// rather than a yes/no decision).
func conjunctionToConcrete(lits []literal, registry *Registry, open map[string]bool) (Type, bool) {
	for i, l := range lits {
		nt, ok := l.T.(*NominalType)
		if !ok {
			continue
		}
		if open[nt.Name] {
			return nil, false
		}
		decl, found := registry.Lookup(nt.Name)
		if !found {
			return nil, false
		}
		rest := withoutIndex(lits, i)
		body := decl.Body
		if !l.Pos {
			body = Negate(body)
		}
		nextOpen := make(map[string]bool, len(open)+1)
		for k := range open {
			nextOpen[k] = true
		}
		nextOpen[nt.Name] = true
		combined := Intersect(append(literalsToTypes(rest), body)...)
		for _, d := range normalizeToDisjuncts(combined, true) {
			if c, ok := conjunctionToConcrete(d, registry, nextOpen); ok {
				return c, true
			}
		}
		return nil, false
	}

	var positives []literal
	for _, l := range lits {
		if l.Pos {
			positives = append(positives, l)
		}
	}
	if len(positives) == 0 {
		return Any, true
	}
	if len(positives) == 1 {
		return positives[0].T, true
	}

	families := map[string]bool{}
	for _, p := range positives {
		families[familyKind(p.T)] = true
	}
	if len(families) > 1 {
		return nil, false
	}

	switch first := positives[0].T.(type) {
	case *AtomType:
		return first, true
	case *ArrayType:
		elems := make([]Type, len(positives))
		for i, p := range positives {
			elems[i] = p.T.(*ArrayType).Elem
		}
		return &ArrayType{Elem: Intersect(elems...)}, true
	case *ReferenceType:
		elems := make([]Type, len(positives))
		lifetime := first.Lifetime
		for i, p := range positives {
			r := p.T.(*ReferenceType)
			elems[i] = r.Elem
			if r.Lifetime != "" {
				lifetime = r.Lifetime
			}
		}
		return &ReferenceType{Elem: Intersect(elems...), Lifetime: lifetime}, true
	case *RecordType:
		merged := first
		for _, p := range positives[1:] {
			next, empty := intersectRecords(merged, p.T.(*RecordType), emptinessCtx{registry: registry, strict: true, open: map[string]bool{}})
			if empty {
				return nil, false
			}
			merged = next
		}
		return merged, true
	case *CallableType:
		arity := len(first.Params)
		retArity := len(first.Returns)
		for _, p := range positives[1:] {
			c := p.T.(*CallableType)
			if len(c.Params) != arity || len(c.Returns) != retArity {
				return nil, false
			}
		}
		kind := first.CKind
		params := make([]Type, arity)
		for i := range params {
			ps := make([]Type, len(positives))
			for j, p := range positives {
				ps[j] = p.T.(*CallableType).Params[i]
			}
			params[i] = Union(ps...)
		}
		returns := make([]Type, retArity)
		for i := range returns {
			rs := make([]Type, len(positives))
			for j, p := range positives {
				c := p.T.(*CallableType)
				rs[j] = c.Returns[i]
				if c.CKind == MethodKind {
					kind = MethodKind
				}
			}
			returns[i] = Intersect(rs...)
		}
		return &CallableType{CKind: kind, Params: params, Returns: returns}, true
	default:
		return nil, false
	}
}

// SortedBranches returns the branches of t (a Union's children, or t
// itself) ordered by their rendered text, so the order is stable
// across runs.
func SortedBranches(t Type) []Type {
	var out []Type
	if u, ok := t.(*UnionType); ok {
		out = append(out, u.Children...)
	} else {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].String() < out[j].String() })
	return out
}
