package semantic

import (
	"github.com/quill-lang/quillc/internal/ast"
	"github.com/quill-lang/quillc/internal/errors"
	"github.com/quill-lang/quillc/internal/types"
)

func (c *Checker) checkInvoke(v *ast.Invoke, env *Environment, scope *Scope) types.Type {
	args := c.checkArgs(v.Args, env, scope)
	if args == nil {
		return nil
	}
	candidates := c.functionsByName[v.Name]
	decl, sig, ok := Infer(candidates, args, c.Registry, env.Within())
	if !ok {
		c.report(errors.AmbiguousCallable, v.Pos(), "no unique matching overload of %q for the given arguments", v.Name)
		return nil
	}
	v.Resolved = decl
	return resultOf(sig)
}

func (c *Checker) checkIndirectInvoke(v *ast.IndirectInvoke, env *Environment, scope *Scope) types.Type {
	calleeType := c.checkExpression(v.Callee, env, scope)
	args := c.checkArgs(v.Args, env, scope)
	if calleeType == nil || args == nil {
		return nil
	}
	sig, ok := types.ExtractCallable(calleeType, c.Registry)
	if !ok {
		c.report(errors.ExpectedLambda, v.Pos(), "cannot call non-callable type %s", calleeType.String())
		return nil
	}
	if len(args) != len(sig.Params) {
		c.report(errors.InsufficientArguments, v.Pos(), "expected %d arguments, got %d", len(sig.Params), len(args))
		return nil
	}
	for i, a := range args {
		if !types.IsSubtype(a, sig.Params[i], c.Registry, env.Within()) {
			c.report(errors.SubtypeError, v.Args[i].Pos(), "argument %s is not a subtype of %s", a.String(), sig.Params[i].String())
		}
	}
	return resultOf(sig)
}

// checkArgs evaluates each argument expression, returning nil (not an
// empty slice) if any argument failed to type, so callers can
// null-propagate the whole call rather than check a partial set.
func (c *Checker) checkArgs(args []ast.Expression, env *Environment, scope *Scope) []types.Type {
	out := make([]types.Type, len(args))
	for i, a := range args {
		t := c.checkExpression(a, env, scope)
		if t == nil {
			return nil
		}
		out[i] = t
	}
	return out
}

func resultOf(sig *types.CallableType) types.Type {
	switch len(sig.Returns) {
	case 0:
		return types.Void
	case 1:
		return sig.Returns[0]
	default:
		return types.Union(sig.Returns...)
	}
}
