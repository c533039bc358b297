package types

// Subtype Operator (§4.1): S <: T iff S ∧ ¬T is empty under the
// relaxed oracle. Subtyping is always checked in relaxed mode so a
// refinement-bearing nominal is only ever compared at its nominal
// boundary, never torn open and re-derived structurally.

// IsSubtype reports whether s is a subtype of t under within.
func IsSubtype(s, t Type, registry *Registry, within Lifetimes) bool {
	return IsVoidRelaxed(Intersect(s, Negate(t)), registry, within)
}

// IsEquivalent reports mutual subtyping.
func IsEquivalent(s, t Type, registry *Registry, within Lifetimes) bool {
	return IsSubtype(s, t, registry, within) && IsSubtype(t, s, registry, within)
}

// IsContractive checks that decl's body does not expand, through a
// chain of bare nominal references alone, back to a name already on
// the chain (§4.2). A nominal cycle that passes through at least one
// array, record, reference, or callable constructor is fine —
// recursion is guarded by that constructor. Union, intersection, and
// negation do not guard: the walk looks through them. A cycle of pure
// nominal aliasing (possibly combined by union, intersection, or
// negation) is not: it can never be unfolded to a normal form and
// must be rejected with EMPTY_TYPE.
func IsContractive(decl *Decl, registry *Registry) bool {
	visiting := map[string]bool{decl.Name: true}
	return walkContractive(decl.Body, registry, visiting)
}

func walkContractive(t Type, registry *Registry, visiting map[string]bool) bool {
	switch v := t.(type) {
	case *NominalType:
		if visiting[v.Name] {
			return false
		}
		d, ok := registry.Lookup(v.Name)
		if !ok {
			return true
		}
		next := make(map[string]bool, len(visiting)+1)
		for k := range visiting {
			next[k] = true
		}
		next[v.Name] = true
		return walkContractive(d.Body, registry, next)
	case *UnionType:
		for _, c := range v.Children {
			if !walkContractive(c, registry, visiting) {
				return false
			}
		}
		return true
	case *IntersectionType:
		for _, c := range v.Children {
			if !walkContractive(c, registry, visiting) {
				return false
			}
		}
		return true
	case *NegationType:
		return walkContractive(v.Child, registry, visiting)
	default:
		// Array, Reference, Record, Callable, and atoms all guard any
		// nominal reference nested beneath them — that reference starts
		// a fresh contractiveness check of its own when resolved.
		return true
	}
}
