package semantic

import (
	"github.com/quill-lang/quillc/internal/ast"
	"github.com/quill-lang/quillc/internal/errors"
	"github.com/quill-lang/quillc/internal/token"
	"github.com/quill-lang/quillc/internal/types"
)

// checkIsDiagnostics evaluates a type test used as a plain boolean
// expression (not as a statement-level condition): it reports the
// same INCOMPARABLE_OPERANDS / BRANCH_ALWAYS_TAKEN dead-branch
// diagnostics the condition checker reports, but performs no
// refinement since the result here is only ever consumed as a bool.
func (c *Checker) checkIsDiagnostics(v *ast.Is, env *Environment, scope *Scope) {
	s := c.checkExpression(v.Value, env, scope)
	if s == nil {
		return
	}
	t := ResolveTypeExpr(v.Type, c.Registry)
	c.typeTestBounds(v.Pos(), s, t, env.Within(), true)
}

// typeTestBounds implements the dead-branch checks from §4.6's
// TypeTest rule (always under the strict oracle) and returns the
// refined types for the true and false branches respectively. report
// gates the diagnostic: callers that visit the same *ast.Is node once
// per sign pass false on the repeat visit so the dead-branch report
// doesn't double up, since intersect/difference never depend on sign.
func (c *Checker) typeTestBounds(pos token.Position, s, t types.Type, within types.Lifetimes, report bool) (trueType, falseType types.Type) {
	intersect := types.Intersect(s, t)
	difference := types.Difference(s, t)
	if report {
		if types.IsVoidStrict(intersect, c.Registry, within) {
			c.report(errors.IncomparableOperands, pos, "%s and %s share no common values", s.String(), t.String())
		} else if types.IsVoidStrict(difference, c.Registry, within) {
			c.report(errors.BranchAlwaysTaken, pos, "every value of %s is already %s", s.String(), t.String())
		}
	}
	return intersect, difference
}

func (c *Checker) checkQuantifier(v *ast.Quantifier, env *Environment, scope *Scope) types.Type {
	sourceType := c.checkExpression(v.Source, env, scope)
	bodyEnv := env
	if sourceType != nil {
		elem, ok := types.ExtractReadArray(sourceType, c.Registry)
		if !ok {
			c.report(errors.ExpectedArray, v.Source.Pos(), "quantifier source must be an array, got %s", sourceType.String())
		} else {
			bodyEnv = env.Declare(v.Var, elem)
		}
	}
	// Body is checked at sign + per §4.6; any refinement it produces is
	// local to the quantifier and does not escape.
	c.checkCondition(v.Body, true, bodyEnv, scope)
	return types.Bool
}

func (c *Checker) checkCompare(v *ast.Compare, env *Environment, scope *Scope) types.Type {
	lt := c.checkExpression(v.Left, env, scope)
	rt := c.checkExpression(v.Right, env, scope)
	if lt == nil || rt == nil {
		return types.Bool
	}
	switch v.Op {
	case ast.CmpEqual, ast.CmpNotEqual:
		if types.IsVoidRelaxed(types.Intersect(lt, rt), c.Registry, env.Within()) {
			c.report(errors.IncomparableOperands, v.Pos(), "%s and %s share no common values", lt.String(), rt.String())
		}
	default:
		c.requireNumeric(v.Left.Pos(), lt, env)
		c.requireNumeric(v.Right.Pos(), rt, env)
	}
	return types.Bool
}

func (c *Checker) checkRecordInitialiser(v *ast.RecordInitialiser, env *Environment, scope *Scope) types.Type {
	names := make([]string, len(v.Fields))
	fieldTypes := make([]types.Type, len(v.Fields))
	ok := true
	for i, f := range v.Fields {
		ft := c.checkExpression(f.Value, env, scope)
		if ft == nil {
			ok = false
			continue
		}
		names[i] = f.Name
		fieldTypes[i] = ft
	}
	if !ok {
		return nil
	}
	return types.NewRecordType(false, names, fieldTypes)
}

func (c *Checker) checkRecordAccess(v *ast.RecordAccess, env *Environment, scope *Scope) types.Type {
	bt := c.checkExpression(v.Base, env, scope)
	if bt == nil {
		return nil
	}
	if !types.IsRecordly(bt, c.Registry) {
		c.report(errors.ExpectedRecord, v.Pos(), "cannot access field on non-record type %s", bt.String())
		return nil
	}
	field, ok := types.ExtractReadField(bt, v.Field, c.Registry)
	if !ok {
		c.report(errors.InvalidField, v.Pos(), "no field %q on %s", v.Field, bt.String())
		return nil
	}
	return field
}

func (c *Checker) checkRecordBorrow(v *ast.RecordBorrow, env *Environment, scope *Scope) types.Type {
	bt := c.checkExpression(v.Base, env, scope)
	if bt == nil {
		return nil
	}
	if !types.IsRecordly(bt, c.Registry) {
		c.report(errors.ExpectedRecord, v.Pos(), "cannot borrow field on non-record type %s", bt.String())
		return nil
	}
	field, ok := types.ExtractReadField(bt, v.Field, c.Registry)
	if !ok {
		c.report(errors.InvalidField, v.Pos(), "no field %q on %s", v.Field, bt.String())
		return nil
	}
	return &types.ReferenceType{Elem: field, Lifetime: v.Lifetime}
}

func (c *Checker) checkRecordUpdate(v *ast.RecordUpdate, env *Environment, scope *Scope) types.Type {
	bt := c.checkExpression(v.Base, env, scope)
	valType := c.checkExpression(v.Value, env, scope)
	if bt == nil || valType == nil {
		return nil
	}
	if !types.IsRecordly(bt, c.Registry) {
		c.report(errors.ExpectedRecord, v.Pos(), "cannot update field on non-record type %s", bt.String())
		return nil
	}
	declared, ok := types.ExtractWriteField(bt, v.Field, c.Registry)
	if !ok {
		c.report(errors.InvalidField, v.Pos(), "no writeable field %q on %s", v.Field, bt.String())
		return nil
	}
	if !types.IsSubtype(valType, declared, c.Registry, env.Within()) {
		c.report(errors.SubtypeError, v.Value.Pos(), "cannot update field %q: %s is not a subtype of %s", v.Field, valType.String(), declared.String())
	}
	return bt
}

func (c *Checker) checkArrayInitialiser(v *ast.ArrayInitialiser, env *Environment, scope *Scope) types.Type {
	if len(v.Elements) == 0 {
		return &types.ArrayType{Elem: types.Void}
	}
	elems := make([]types.Type, 0, len(v.Elements))
	for _, el := range v.Elements {
		t := c.checkExpression(el, env, scope)
		if t == nil {
			return nil
		}
		elems = append(elems, t)
	}
	return &types.ArrayType{Elem: types.Union(elems...)}
}

func (c *Checker) checkArrayGenerator(v *ast.ArrayGenerator, env *Environment, scope *Scope) types.Type {
	sizeType := c.checkExpression(v.Size, env, scope)
	if sizeType != nil {
		c.requireNumeric(v.Size.Pos(), sizeType, env)
	}
	initType := c.checkExpression(v.Init, env, scope)
	if initType == nil {
		return nil
	}
	return &types.ArrayType{Elem: initType}
}

func (c *Checker) checkArrayAccess(v *ast.ArrayAccess, env *Environment, scope *Scope) types.Type {
	bt := c.checkExpression(v.Base, env, scope)
	idxType := c.checkExpression(v.Index, env, scope)
	if idxType != nil {
		c.requireNumeric(v.Index.Pos(), idxType, env)
	}
	if bt == nil {
		return nil
	}
	elem, ok := types.ExtractReadArray(bt, c.Registry)
	if !ok {
		c.report(errors.ExpectedArray, v.Pos(), "cannot index non-array type %s", bt.String())
		return nil
	}
	return elem
}

func (c *Checker) checkArrayBorrow(v *ast.ArrayBorrow, env *Environment, scope *Scope) types.Type {
	bt := c.checkExpression(v.Base, env, scope)
	idxType := c.checkExpression(v.Index, env, scope)
	if idxType != nil {
		c.requireNumeric(v.Index.Pos(), idxType, env)
	}
	if bt == nil {
		return nil
	}
	elem, ok := types.ExtractReadArray(bt, c.Registry)
	if !ok {
		c.report(errors.ExpectedArray, v.Pos(), "cannot borrow into non-array type %s", bt.String())
		return nil
	}
	return &types.ReferenceType{Elem: elem, Lifetime: v.Lifetime}
}

func (c *Checker) checkArrayRange(v *ast.ArrayRange, env *Environment, scope *Scope) types.Type {
	bt := c.checkExpression(v.Base, env, scope)
	if lo := c.checkExpression(v.Lo, env, scope); lo != nil {
		c.requireNumeric(v.Lo.Pos(), lo, env)
	}
	if hi := c.checkExpression(v.Hi, env, scope); hi != nil {
		c.requireNumeric(v.Hi.Pos(), hi, env)
	}
	if bt == nil {
		return nil
	}
	if !types.IsArrayly(bt, c.Registry) {
		c.report(errors.ExpectedArray, v.Pos(), "cannot range non-array type %s", bt.String())
		return nil
	}
	return bt
}

func (c *Checker) checkArrayUpdate(v *ast.ArrayUpdate, env *Environment, scope *Scope) types.Type {
	bt := c.checkExpression(v.Base, env, scope)
	idxType := c.checkExpression(v.Index, env, scope)
	if idxType != nil {
		c.requireNumeric(v.Index.Pos(), idxType, env)
	}
	valType := c.checkExpression(v.Value, env, scope)
	if bt == nil || valType == nil {
		return nil
	}
	declared, ok := types.ExtractWriteArray(bt, c.Registry)
	if !ok {
		c.report(errors.ExpectedArray, v.Pos(), "cannot update non-array type %s", bt.String())
		return nil
	}
	if !types.IsSubtype(valType, declared, c.Registry, env.Within()) {
		c.report(errors.SubtypeError, v.Value.Pos(), "cannot update element: %s is not a subtype of %s", valType.String(), declared.String())
	}
	return bt
}

func (c *Checker) checkLambdaDecl(v *ast.LambdaDecl, env *Environment, scope *Scope) types.Type {
	params := make([]types.Type, len(v.Params))
	bodyEnv := env
	for i, p := range v.Params {
		pt := ResolveTypeExpr(p.Type, c.Registry)
		params[i] = pt
		bodyEnv = bodyEnv.Declare(p.Name, pt)
	}
	returns := make([]types.Type, len(v.Returns))
	for i, r := range v.Returns {
		returns[i] = ResolveTypeExpr(r, c.Registry)
	}
	lambdaScope := PushFunction(scope, &ast.FunctionOrMethod{
		Name: "", Params: v.Params, Returns: v.Returns, Body: v.Body,
	})
	c.checkFunctionBody(v.Body, bodyEnv, lambdaScope, v.Returns, true)
	return &types.CallableType{CKind: types.FunctionKind, Params: params, Returns: returns}
}
