package semantic

import (
	"github.com/quill-lang/quillc/internal/ast"
	"github.com/quill-lang/quillc/internal/types"
)

// ResolveTypeExpr lowers a syntactic type expression into a semantic
// Type, linking nominal references through registry. This is the one
// place syntax meets the type algebra; the flow checker never
// inspects ast.TypeExpr directly once a declaration's signature has
// been resolved.
func ResolveTypeExpr(te ast.TypeExpr, registry *types.Registry) types.Type {
	switch v := te.(type) {
	case *ast.AtomTypeExpr:
		return resolveAtomName(v.Name)
	case *ast.NamedTypeExpr:
		return &types.NominalType{Name: v.Name, Registry: registry}
	case *ast.UnionTypeExpr:
		children := make([]types.Type, len(v.Children))
		for i, c := range v.Children {
			children[i] = ResolveTypeExpr(c, registry)
		}
		return types.Union(children...)
	case *ast.ArrayTypeExpr:
		return &types.ArrayType{Elem: ResolveTypeExpr(v.Elem, registry)}
	case *ast.ReferenceTypeExpr:
		return &types.ReferenceType{Elem: ResolveTypeExpr(v.Elem, registry), Lifetime: v.Lifetime}
	case *ast.RecordTypeExpr:
		names := make([]string, len(v.Fields))
		fieldTypes := make([]types.Type, len(v.Fields))
		for i, f := range v.Fields {
			names[i] = f.Name
			fieldTypes[i] = ResolveTypeExpr(f.Type, registry)
		}
		return types.NewRecordType(v.Open, names, fieldTypes)
	case *ast.CallableTypeExpr:
		params := make([]types.Type, len(v.Params))
		for i, p := range v.Params {
			params[i] = ResolveTypeExpr(p, registry)
		}
		returns := make([]types.Type, len(v.Returns))
		for i, r := range v.Returns {
			returns[i] = ResolveTypeExpr(r, registry)
		}
		kind := types.FunctionKind
		if v.IsMethod {
			kind = types.MethodKind
		}
		return &types.CallableType{CKind: kind, Params: params, Returns: returns, Lifetimes: append([]string(nil), v.Lifetimes...)}
	default:
		return types.Any
	}
}

func resolveAtomName(name string) types.Type {
	switch name {
	case "void":
		return types.Void
	case "any":
		return types.Any
	case "null":
		return types.Null
	case "bool":
		return types.Bool
	case "byte":
		return types.Byte
	case "int":
		return types.Int
	default:
		return types.Any
	}
}

// ResolveSignature lowers a FunctionOrMethod's params/returns into a
// CallableType, used both to register it as a candidate and to type
// an IndirectInvoke callee via RWE.
func ResolveSignature(fn *ast.FunctionOrMethod, registry *types.Registry) *types.CallableType {
	params := make([]types.Type, len(fn.Params))
	for i, p := range fn.Params {
		params[i] = ResolveTypeExpr(p.Type, registry)
	}
	returns := make([]types.Type, len(fn.Returns))
	for i, r := range fn.Returns {
		returns[i] = ResolveTypeExpr(r, registry)
	}
	kind := types.FunctionKind
	if fn.IsMethod {
		kind = types.MethodKind
	}
	return &types.CallableType{CKind: kind, Params: params, Returns: returns, Lifetimes: append([]string(nil), fn.Lifetimes...)}
}
