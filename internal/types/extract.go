package types

// Read/Write Type Extractor (§4.3): projects a (possibly unioned,
// nominal-laden) type onto the shape a particular access needs —
// array element, record field, reference target, or callable
// signature — combining across union branches with the variance the
// access direction demands. Reading combines branches covariantly
// (Union: the value could be any branch, so a read sees their join);
// writing combines contravariantly (Intersect: a write must be valid
// under every branch the value could currently hold).
//
// Every extractor first unfolds nominals (strict oracle semantics: a
// nominal is transparent to these projections) and flattens unions
// before inspecting structure, so "Foo | Bar" where both are arrays
// still projects to an array.

// branches expands t into its union members after resolving every
// nominal to its declared body, so callers see only structural terms.
func branches(t Type, registry *Registry) []Type {
	switch v := t.(type) {
	case *UnionType:
		var out []Type
		for _, c := range v.Children {
			out = append(out, branches(c, registry)...)
		}
		return out
	case *NominalType:
		d, ok := registry.Lookup(v.Name)
		if !ok {
			return []Type{t}
		}
		return branches(d.Body, registry)
	default:
		return []Type{t}
	}
}

// IsArrayly reports whether every branch of t is an array, the
// distinction callers use to choose between EXPECTED_ARRAY (wrong
// shape entirely) and a more specific projection failure.
func IsArrayly(t Type, registry *Registry) bool {
	for _, b := range branches(t, registry) {
		if _, ok := b.(*ArrayType); !ok {
			return false
		}
	}
	return true
}

// IsRecordly reports whether every branch of t is a record.
func IsRecordly(t Type, registry *Registry) bool {
	for _, b := range branches(t, registry) {
		if _, ok := b.(*RecordType); !ok {
			return false
		}
	}
	return true
}

// IsReferencely reports whether every branch of t is a reference.
func IsReferencely(t Type, registry *Registry) bool {
	for _, b := range branches(t, registry) {
		if _, ok := b.(*ReferenceType); !ok {
			return false
		}
	}
	return true
}

// ExtractReadArray returns the element type readable from t, or false
// if some branch of t is not an array (the caller should report
// EXPECTED_ARRAY in that case).
func ExtractReadArray(t Type, registry *Registry) (Type, bool) {
	var elems []Type
	for _, b := range branches(t, registry) {
		a, ok := b.(*ArrayType)
		if !ok {
			return nil, false
		}
		elems = append(elems, a.Elem)
	}
	if len(elems) == 0 {
		return Void, true
	}
	return Union(elems...), true
}

// ExtractWriteArray returns the element type a write must conform to
// across every branch of t.
func ExtractWriteArray(t Type, registry *Registry) (Type, bool) {
	var elems []Type
	for _, b := range branches(t, registry) {
		a, ok := b.(*ArrayType)
		if !ok {
			return nil, false
		}
		elems = append(elems, a.Elem)
	}
	if len(elems) == 0 {
		return Any, true
	}
	return Intersect(elems...), true
}

// ExtractReadField returns the type readable from field name across
// every branch of t, or false if the field is absent from some closed
// branch.
func ExtractReadField(t Type, name string, registry *Registry) (Type, bool) {
	var fields []Type
	for _, b := range branches(t, registry) {
		r, ok := b.(*RecordType)
		if !ok {
			return nil, false
		}
		ft, present := r.Fields[name]
		if !present {
			if !r.Open {
				return nil, false
			}
			ft = Any
		}
		fields = append(fields, ft)
	}
	if len(fields) == 0 {
		return Void, true
	}
	return Union(fields...), true
}

// ExtractWriteField returns the type a write to field name must
// conform to across every branch of t.
func ExtractWriteField(t Type, name string, registry *Registry) (Type, bool) {
	var fields []Type
	for _, b := range branches(t, registry) {
		r, ok := b.(*RecordType)
		if !ok {
			return nil, false
		}
		ft, present := r.Fields[name]
		if !present {
			if !r.Open {
				return nil, false
			}
			ft = Any
		}
		fields = append(fields, ft)
	}
	if len(fields) == 0 {
		return Any, true
	}
	return Intersect(fields...), true
}

// ExtractDeref returns the type read through a dereference of t.
func ExtractDeref(t Type, registry *Registry) (Type, bool) {
	var elems []Type
	for _, b := range branches(t, registry) {
		r, ok := b.(*ReferenceType)
		if !ok {
			return nil, false
		}
		elems = append(elems, r.Elem)
	}
	if len(elems) == 0 {
		return Void, true
	}
	return Union(elems...), true
}

// ExtractCallable returns the unique arity this invocation's callee
// type presents, as the per-parameter union of readable parameter
// types and intersection of return types, along with false if any
// branch is not callable or arities disagree.
func ExtractCallable(t Type, registry *Registry) (*CallableType, bool) {
	var cs []*CallableType
	for _, b := range branches(t, registry) {
		c, ok := b.(*CallableType)
		if !ok {
			return nil, false
		}
		cs = append(cs, c)
	}
	if len(cs) == 0 {
		return nil, false
	}
	arity := len(cs[0].Params)
	retArity := len(cs[0].Returns)
	kind := cs[0].CKind
	for _, c := range cs[1:] {
		if len(c.Params) != arity || len(c.Returns) != retArity {
			return nil, false
		}
		if c.CKind == MethodKind {
			kind = MethodKind
		}
	}
	params := make([]Type, arity)
	for i := range params {
		ps := make([]Type, len(cs))
		for j, c := range cs {
			ps[j] = c.Params[i]
		}
		params[i] = Union(ps...)
	}
	returns := make([]Type, retArity)
	for i := range returns {
		rs := make([]Type, len(cs))
		for j, c := range cs {
			rs[j] = c.Returns[i]
		}
		returns[i] = Intersect(rs...)
	}
	return &CallableType{CKind: kind, Params: params, Returns: returns}, true
}
