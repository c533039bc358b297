package semantic

import (
	"github.com/quill-lang/quillc/internal/ast"
	"github.com/quill-lang/quillc/internal/errors"
	"github.com/quill-lang/quillc/internal/types"
)

// checkLValue returns the declared (not refined) type of lv's root
// variable, routed through whatever projection the l-value shape
// demands (§4.6: "this preserves the ability to widen on write").
// Returns nil (null-propagation, §7) on an unresolvable root or
// projection failure, after reporting the appropriate diagnostic.
func (c *Checker) checkLValue(lv ast.LValue, env *Environment, scope *Scope) types.Type {
	switch v := lv.(type) {
	case *ast.VarLValue:
		t, ok := env.DeclaredType(v.Name)
		if !ok {
			errors.Panic(v.Pos(), "undeclared variable %q", v.Name)
		}
		return t
	case *ast.FieldLValue:
		baseDeclared := c.checkLValue(v.Base, env, scope)
		if baseDeclared == nil {
			return nil
		}
		field, ok := types.ExtractWriteField(baseDeclared, v.Field, c.Registry)
		if !ok {
			c.report(errors.InvalidField, v.Pos(), "no writeable field %q on %s", v.Field, baseDeclared.String())
			return nil
		}
		return field
	case *ast.IndexLValue:
		baseDeclared := c.checkLValue(v.Base, env, scope)
		if baseDeclared == nil {
			return nil
		}
		c.checkExpression(v.Index, env, scope)
		elem, ok := types.ExtractWriteArray(baseDeclared, c.Registry)
		if !ok {
			c.report(errors.ExpectedArray, v.Pos(), "cannot index non-array type %s", baseDeclared.String())
			return nil
		}
		return elem
	case *ast.DerefLValue:
		baseDeclared := c.checkLValue(v.Base, env, scope)
		if baseDeclared == nil {
			return nil
		}
		elem, ok := types.ExtractDeref(baseDeclared, c.Registry)
		if !ok {
			c.report(errors.ExpectedReference, v.Pos(), "cannot dereference non-reference type %s", baseDeclared.String())
			return nil
		}
		return elem
	default:
		errors.Panic(lv.Pos(), "unknown l-value kind %T", lv)
		return nil
	}
}
