package semantic

import (
	"github.com/quill-lang/quillc/internal/ast"
	"github.com/quill-lang/quillc/internal/types"
)

// candidate is one arity-and-subtype-checked callable signature still
// in the running, together with the declaration it came from; sig has
// the lifetime bindings that made it match already substituted.
type candidate struct {
	decl *ast.FunctionOrMethod
	sig  *types.CallableType
}

// Infer is the Type-Inference Oracle (§4.5): it binds candidates
// (a non-empty set from name resolution) against concrete argument
// types and returns the unique matching declaration and its bound
// signature. ok is false when zero or more than one candidate
// remains, the AMBIGUOUS_CALLABLE condition the caller reports.
func Infer(candidates []*ast.FunctionOrMethod, args []types.Type, registry *types.Registry, within types.Lifetimes) (*ast.FunctionOrMethod, *types.CallableType, bool) {
	var matched []candidate
	for _, c := range candidates {
		sig := ResolveSignature(c, registry)
		if len(sig.Params) != len(args) {
			continue
		}
		bindings := map[string]string{}
		for i, p := range sig.Params {
			unifyLifetimes(p, args[i], bindings)
		}
		bound := substituteLifetimes(sig, bindings)
		ok := true
		for i, p := range bound.Params {
			if !types.IsSubtype(args[i], p, registry, within) {
				ok = false
				break
			}
		}
		if ok {
			matched = append(matched, candidate{decl: c, sig: bound})
		}
	}

	if len(matched) == 0 {
		return nil, nil, false
	}
	if len(matched) == 1 {
		return matched[0].decl, matched[0].sig, true
	}

	// Most-specific-wins: a candidate survives only if its parameter
	// tuple is a subtype of every other remaining candidate's tuple.
	var winners []candidate
	for _, m := range matched {
		specific := true
		for _, other := range matched {
			if other.decl == m.decl {
				continue
			}
			if !tupleSubtype(m.sig.Params, other.sig.Params, registry, within) {
				specific = false
				break
			}
		}
		if specific {
			winners = append(winners, m)
		}
	}
	if len(winners) != 1 {
		return nil, nil, false
	}
	return winners[0].decl, winners[0].sig, true
}

func tupleSubtype(a, b []types.Type, registry *types.Registry, within types.Lifetimes) bool {
	for i := range a {
		if !types.IsSubtype(a[i], b[i], registry, within) {
			return false
		}
	}
	return true
}

// unifyLifetimes walks declared type param structurally alongside the
// concrete argument type arg, recording bindings from a declared
// lifetime variable name to the concrete lifetime name found at the
// corresponding structural position.
func unifyLifetimes(param, arg types.Type, bindings map[string]string) {
	switch p := param.(type) {
	case *types.ReferenceType:
		a, ok := arg.(*types.ReferenceType)
		if !ok {
			return
		}
		if p.Lifetime != "" && a.Lifetime != "" {
			if _, exists := bindings[p.Lifetime]; !exists {
				bindings[p.Lifetime] = a.Lifetime
			}
		}
		unifyLifetimes(p.Elem, a.Elem, bindings)
	case *types.ArrayType:
		if a, ok := arg.(*types.ArrayType); ok {
			unifyLifetimes(p.Elem, a.Elem, bindings)
		}
	case *types.RecordType:
		if a, ok := arg.(*types.RecordType); ok {
			for name, pf := range p.Fields {
				if af, ok := a.Fields[name]; ok {
					unifyLifetimes(pf, af, bindings)
				}
			}
		}
	}
}

// substituteLifetimes rewrites every declared lifetime variable in
// sig's params/returns with its bound concrete name, leaving unbound
// variables as written.
func substituteLifetimes(sig *types.CallableType, bindings map[string]string) *types.CallableType {
	if len(bindings) == 0 {
		return sig
	}
	params := make([]types.Type, len(sig.Params))
	for i, p := range sig.Params {
		params[i] = substType(p, bindings)
	}
	returns := make([]types.Type, len(sig.Returns))
	for i, r := range sig.Returns {
		returns[i] = substType(r, bindings)
	}
	return &types.CallableType{CKind: sig.CKind, Params: params, Returns: returns, Lifetimes: sig.Lifetimes}
}

func substType(t types.Type, bindings map[string]string) types.Type {
	switch v := t.(type) {
	case *types.ReferenceType:
		lifetime := v.Lifetime
		if bound, ok := bindings[lifetime]; ok {
			lifetime = bound
		}
		return &types.ReferenceType{Elem: substType(v.Elem, bindings), Lifetime: lifetime}
	case *types.ArrayType:
		return &types.ArrayType{Elem: substType(v.Elem, bindings)}
	case *types.RecordType:
		fieldTypes := make([]types.Type, len(v.FieldOrder))
		for i, name := range v.FieldOrder {
			fieldTypes[i] = substType(v.Fields[name], bindings)
		}
		return types.NewRecordType(v.Open, v.FieldOrder, fieldTypes)
	default:
		return t
	}
}
