package types

// Emptiness Oracle (§4.1): decides whether a type is uninhabited under
// a lifetime relation. isVoid is conservative — it must never report
// true for an inhabited type, so every rule below only fires on a
// provable contradiction; anything uncertain falls through to "not
// empty". Two modes share the same machinery: Strict always unfolds a
// nominal to its structural body; Relaxed only unfolds nominals with
// no refinement invariant, leaving refinement-bearing nominals opaque
// (and therefore never provably empty through unfolding) so they do
// not spuriously collapse in user-facing subtyping.

// emptinessCtx threads the read-only inputs to a single isVoid call
// plus the mutable recursion guard (the set of nominal names already
// being unfolded on the current path, breaking cycles per §4.1).
type emptinessCtx struct {
	registry *Registry
	within   Lifetimes
	strict   bool
	open     map[string]bool
}

func (c emptinessCtx) withOpen(name string) emptinessCtx {
	next := make(map[string]bool, len(c.open)+1)
	for k := range c.open {
		next[k] = true
	}
	next[name] = true
	c.open = next
	return c
}

// IsVoidStrict decides ⊥(T) under the strict oracle.
func IsVoidStrict(t Type, registry *Registry, within Lifetimes) bool {
	return isVoid(t, emptinessCtx{registry: registry, within: within, strict: true, open: map[string]bool{}})
}

// IsVoidRelaxed decides ⊥(T) under the relaxed oracle.
func IsVoidRelaxed(t Type, registry *Registry, within Lifetimes) bool {
	return isVoid(t, emptinessCtx{registry: registry, within: within, strict: false, open: map[string]bool{}})
}

func isVoid(t Type, ctx emptinessCtx) bool {
	for _, d := range normalizeToDisjuncts(t, true) {
		if !conjunctionEmpty(d, ctx) {
			return false
		}
	}
	return true
}

// literal is one (possibly negated) atomic constructor in a
// conjunction of the disjunctive normal form ⋁ᵢ⋀ⱼ ±Lᵢⱼ.
type literal struct {
	T   Type
	Pos bool
}

// normalizeToDisjuncts rewrites t (under the given outer sign) into
// negation-normal, flattened disjunctive-normal form: a slice of
// conjunctions, each a slice of signed literals. Union/Intersection
// distribute via De Morgan; everything else (atoms, nominals, arrays,
// records, references, callables) is a single-literal conjunction.
func normalizeToDisjuncts(t Type, sign bool) [][]literal {
	switch v := t.(type) {
	case *NegationType:
		return normalizeToDisjuncts(v.Child, !sign)
	case *UnionType:
		if sign {
			var out [][]literal
			for _, c := range v.Children {
				out = append(out, normalizeToDisjuncts(c, true)...)
			}
			return out
		}
		return crossProduct(v.Children, false)
	case *IntersectionType:
		if sign {
			return crossProduct(v.Children, true)
		}
		var out [][]literal
		for _, c := range v.Children {
			out = append(out, normalizeToDisjuncts(c, false)...)
		}
		return out
	default:
		return [][]literal{{{T: t, Pos: sign}}}
	}
}

// crossProduct distributes AND over the disjunctive forms of each
// child (used for Intersection under sign=true and for
// ¬Union under De Morgan, both of which require a conjunction of
// per-child disjunctive formulas).
func crossProduct(children []Type, sign bool) [][]literal {
	acc := [][]literal{{}}
	for _, c := range children {
		childDisjuncts := normalizeToDisjuncts(c, sign)
		var next [][]literal
		for _, base := range acc {
			for _, d := range childDisjuncts {
				combined := make([]literal, 0, len(base)+len(d))
				combined = append(combined, base...)
				combined = append(combined, d...)
				next = append(next, combined)
			}
		}
		acc = next
	}
	return acc
}

func conjunctionEmpty(lits []literal, ctx emptinessCtx) bool {
	// Unfold the first nominal literal we find, then re-normalize the
	// whole conjunction with it substituted. This naturally handles
	// nominal bodies that are themselves unions/intersections.
	for i, l := range lits {
		nt, ok := l.T.(*NominalType)
		if !ok {
			continue
		}
		rest := withoutIndex(lits, i)
		if ctx.open[nt.Name] {
			// Cycle guard: contractive declarations (§4.2) never loop
			// through only-nominal constructors, so a repeat here means
			// we can learn nothing further from this literal; drop it.
			return conjunctionEmpty(rest, ctx)
		}
		decl, found := ctx.registry.Lookup(nt.Name)
		if !found {
			// Unknown nominal kinds are treated as Any (§4.1 failure modes).
			return conjunctionEmpty(rest, ctx)
		}
		if !ctx.strict && decl.HasInvariant {
			// Relaxed oracle: a refinement-bearing nominal stays opaque.
			return conjunctionEmpty(rest, ctx)
		}
		body := decl.Body
		if !l.Pos {
			body = Negate(body)
		}
		combined := Intersect(append(literalsToTypes(rest), body)...)
		return isVoid(combined, ctx.withOpen(nt.Name))
	}

	// No nominal literals remain: direct structural checks.
	for _, l := range lits {
		if l.Pos && l.T.Kind() == KindVoid {
			return true
		}
		if !l.Pos && l.T.Kind() == KindAny {
			return true
		}
	}

	posByKey := map[string]bool{}
	negByKey := map[string]bool{}
	for _, l := range lits {
		if l.Pos {
			posByKey[l.T.String()] = true
		} else {
			negByKey[l.T.String()] = true
		}
	}
	for k := range posByKey {
		if negByKey[k] {
			return true
		}
	}

	var positives, negatives []literal
	for _, l := range lits {
		if l.Pos {
			positives = append(positives, l)
		} else {
			negatives = append(negatives, l)
		}
	}

	families := map[string]bool{}
	for _, p := range positives {
		families[familyKind(p.T)] = true
	}
	if len(families) > 1 {
		return true
	}

	var posArrays, negArrays []*ArrayType
	var posRecords []*RecordType
	var posRefs, negRefs []*ReferenceType
	var posCallables, negCallables []*CallableType
	for _, p := range positives {
		switch x := p.T.(type) {
		case *ArrayType:
			posArrays = append(posArrays, x)
		case *RecordType:
			posRecords = append(posRecords, x)
		case *ReferenceType:
			posRefs = append(posRefs, x)
		case *CallableType:
			posCallables = append(posCallables, x)
		}
	}
	for _, n := range negatives {
		switch x := n.T.(type) {
		case *ArrayType:
			negArrays = append(negArrays, x)
		case *ReferenceType:
			negRefs = append(negRefs, x)
		case *CallableType:
			negCallables = append(negCallables, x)
		}
	}

	if arrayFamilyEmpty(posArrays, negArrays, ctx) {
		return true
	}
	if recordFamilyEmpty(posRecords, ctx) {
		return true
	}
	if referenceFamilyEmpty(posRefs, negRefs, ctx) {
		return true
	}
	if callableFamilyEmpty(posCallables, negCallables, ctx) {
		return true
	}

	return false
}

func withoutIndex(lits []literal, idx int) []literal {
	out := make([]literal, 0, len(lits)-1)
	for i, l := range lits {
		if i != idx {
			out = append(out, l)
		}
	}
	return out
}

func literalsToTypes(lits []literal) []Type {
	out := make([]Type, len(lits))
	for i, l := range lits {
		if l.Pos {
			out[i] = l.T
		} else {
			out[i] = Negate(l.T)
		}
	}
	return out
}

func familyKind(t Type) string {
	switch v := t.(type) {
	case *AtomType:
		return "atom:" + string(v.kind)
	case *ArrayType:
		return "array"
	case *RecordType:
		return "record"
	case *ReferenceType:
		return "reference"
	case *CallableType:
		return "callable"
	case *NominalType:
		return "nominal:" + v.Name
	default:
		return string(t.Kind())
	}
}

func arrayFamilyEmpty(positives, negatives []*ArrayType, ctx emptinessCtx) bool {
	if len(positives) == 0 {
		return false
	}
	elem := Type(Any)
	for _, p := range positives {
		elem = Intersect(elem, p.Elem)
	}
	for _, n := range negatives {
		if isSubtype(elem, n.Elem, ctx) {
			return true
		}
	}
	return false
}

// recordFamilyEmpty implements §4.1: two positive records intersect
// field-wise; a field present in one and absent in a closed other
// makes the intersection empty; a common field whose types intersect
// to an empty type also makes the record empty (no value could
// populate that field).
func recordFamilyEmpty(positives []*RecordType, ctx emptinessCtx) bool {
	if len(positives) < 2 {
		return false
	}
	merged := positives[0]
	for _, r := range positives[1:] {
		next, empty := intersectRecords(merged, r, ctx)
		if empty {
			return true
		}
		merged = next
	}
	return false
}

func intersectRecords(a, b *RecordType, ctx emptinessCtx) (*RecordType, bool) {
	names := map[string]bool{}
	for _, n := range a.FieldOrder {
		names[n] = true
	}
	for _, n := range b.FieldOrder {
		names[n] = true
	}
	fields := map[string]Type{}
	var order []string
	for n := range names {
		at, aok := a.Fields[n]
		bt, bok := b.Fields[n]
		switch {
		case aok && bok:
			ft := Intersect(at, bt)
			if isVoid(ft, ctx) {
				return nil, true
			}
			fields[n] = ft
		case aok && !bok:
			if !b.Open {
				return nil, true
			}
			fields[n] = at
		case !aok && bok:
			if !a.Open {
				return nil, true
			}
			fields[n] = bt
		}
		order = append(order, n)
	}
	return &RecordType{Open: a.Open && b.Open, Fields: fields, FieldOrder: order}, false
}

func referenceFamilyEmpty(positives, negatives []*ReferenceType, ctx emptinessCtx) bool {
	if len(positives) == 0 {
		return false
	}
	elem := Type(Any)
	var lifetimes []string
	for _, p := range positives {
		elem = Intersect(elem, p.Elem)
		if p.Lifetime != "" {
			lifetimes = append(lifetimes, p.Lifetime)
		}
	}
	for _, n := range negatives {
		if !isSubtype(elem, n.Elem, ctx) {
			continue
		}
		if n.Lifetime == "" {
			return true
		}
		for _, l := range lifetimes {
			if ctx.within.Within(l, n.Lifetime) {
				return true
			}
		}
	}
	return false
}

func callableFamilyEmpty(positives, negatives []*CallableType, ctx emptinessCtx) bool {
	if len(positives) == 0 {
		return false
	}
	arity := len(positives[0].Params)
	retArity := len(positives[0].Returns)
	for _, p := range positives[1:] {
		if len(p.Params) != arity || len(p.Returns) != retArity {
			return true // contradictory arities can never coexist
		}
	}
	params := make([]Type, arity)
	for i := range params {
		ps := make([]Type, len(positives))
		for j, p := range positives {
			ps[j] = p.Params[i]
		}
		params[i] = Union(ps...) // contravariant merge (§4.1)
	}
	returns := make([]Type, retArity)
	for i := range returns {
		rs := make([]Type, len(positives))
		for j, p := range positives {
			rs[j] = p.Returns[i]
		}
		returns[i] = Intersect(rs...) // covariant merge
	}
	for _, n := range negatives {
		if len(n.Params) != arity || len(n.Returns) != retArity {
			continue
		}
		ok := true
		for i := range returns {
			if !isSubtype(returns[i], n.Returns[i], ctx) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		for i := range params {
			if !isSubtype(n.Params[i], params[i], ctx) {
				ok = false
				break
			}
		}
		if ok {
			return true
		}
	}
	return false
}

// isSubtype is the internal (ctx-threading) counterpart of the public
// Subtype Operator in subtype.go, used by the structural family rules
// above so they share the oracle mode and lifetime relation of the
// enclosing isVoid call.
func isSubtype(s, t Type, ctx emptinessCtx) bool {
	return isVoid(Intersect(s, Negate(t)), ctx)
}
