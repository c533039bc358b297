package semantic

import (
	"github.com/quill-lang/quillc/internal/ast"
	"github.com/quill-lang/quillc/internal/errors"
	"github.com/quill-lang/quillc/internal/token"
	"github.com/quill-lang/quillc/internal/types"
)

var numericType = types.Union(types.Int, types.Byte)

// checkExpression returns the inferred semantic type of expr and
// writes its concrete-type annotation back onto the AST node via the
// Concrete Type Extractor (§4.6). A nil result means the expression
// could not be typed (an error was already reported); callers must
// null-propagate rather than report a second error (§7).
func (c *Checker) checkExpression(expr ast.Expression, env *Environment, scope *Scope) types.Type {
	t := c.inferExpression(expr, env, scope)
	if t != nil {
		expr.SetAnnotation(types.ToConcrete(t, c.Registry))
	}
	return t
}

func (c *Checker) inferExpression(expr ast.Expression, env *Environment, scope *Scope) types.Type {
	switch v := expr.(type) {
	case *ast.Constant:
		switch v.Kind {
		case ast.ConstInt:
			return types.Int
		case ast.ConstChar:
			return types.Int
		case ast.ConstString:
			return &types.ArrayType{Elem: types.Int}
		case ast.ConstBool:
			return types.Bool
		case ast.ConstNull:
			return types.Null
		}
		errors.Panic(v.Pos(), "unknown constant kind")
		return nil

	case *ast.VariableAccess:
		// Disambiguating a local/parameter variable from a static
		// variable or a named lambda is a name-resolution concern
		// (out of scope, as with Invoke's candidate binding); the
		// parser always emits VariableAccess for a bare identifier, so
		// the checker falls back through static variables and lambda
		// signatures before treating the name as undeclared.
		if t, ok := env.Lookup(v.Name); ok {
			return t
		}
		if t, ok := c.staticVars[v.Name]; ok {
			return t
		}
		if sig, ok := c.lambdaSigs[v.Name]; ok {
			return sig
		}
		errors.Panic(v.Pos(), "undeclared variable %q", v.Name)
		return nil

	case *ast.StaticVariableAccess:
		t, ok := c.staticVars[v.Name]
		if !ok {
			errors.Panic(v.Pos(), "undeclared static variable %q", v.Name)
		}
		return t

	case *ast.Cast:
		c.checkExpression(v.Value, env, scope)
		return ResolveTypeExpr(v.Type, c.Registry)

	case *ast.Invoke:
		return c.checkInvoke(v, env, scope)

	case *ast.IndirectInvoke:
		return c.checkIndirectInvoke(v, env, scope)

	case *ast.LogicalNot:
		c.requireBool(v.Value, env, scope)
		return types.Bool

	case *ast.LogicalBinary:
		c.requireBool(v.Left, env, scope)
		c.requireBool(v.Right, env, scope)
		return types.Bool

	case *ast.Is:
		c.checkIsDiagnostics(v, env, scope)
		return types.Bool

	case *ast.Quantifier:
		return c.checkQuantifier(v, env, scope)

	case *ast.Compare:
		return c.checkCompare(v, env, scope)

	case *ast.Unary:
		vt := c.checkExpression(v.Value, env, scope)
		c.requireNumeric(v.Value.Pos(), vt, env)
		return arithResultType(vt, vt)

	case *ast.Arith:
		lt := c.checkExpression(v.Left, env, scope)
		rt := c.checkExpression(v.Right, env, scope)
		c.requireNumeric(v.Left.Pos(), lt, env)
		c.requireNumeric(v.Right.Pos(), rt, env)
		return arithResultType(lt, rt)

	case *ast.BitwiseNot:
		vt := c.checkExpression(v.Value, env, scope)
		c.requireNumeric(v.Value.Pos(), vt, env)
		return arithResultType(vt, vt)

	case *ast.Bitwise:
		lt := c.checkExpression(v.Left, env, scope)
		rt := c.checkExpression(v.Right, env, scope)
		c.requireNumeric(v.Left.Pos(), lt, env)
		c.requireNumeric(v.Right.Pos(), rt, env)
		return arithResultType(lt, rt)

	case *ast.RecordInitialiser:
		return c.checkRecordInitialiser(v, env, scope)

	case *ast.RecordAccess:
		return c.checkRecordAccess(v, env, scope)

	case *ast.RecordBorrow:
		return c.checkRecordBorrow(v, env, scope)

	case *ast.RecordUpdate:
		return c.checkRecordUpdate(v, env, scope)

	case *ast.ArrayLength:
		bt := c.checkExpression(v.Value, env, scope)
		if bt != nil && !types.IsArrayly(bt, c.Registry) {
			c.report(errors.ExpectedArray, v.Pos(), "cannot take length of non-array type %s", bt.String())
		}
		return types.Int

	case *ast.ArrayInitialiser:
		return c.checkArrayInitialiser(v, env, scope)

	case *ast.ArrayGenerator:
		return c.checkArrayGenerator(v, env, scope)

	case *ast.ArrayAccess:
		return c.checkArrayAccess(v, env, scope)

	case *ast.ArrayBorrow:
		return c.checkArrayBorrow(v, env, scope)

	case *ast.ArrayRange:
		return c.checkArrayRange(v, env, scope)

	case *ast.ArrayUpdate:
		return c.checkArrayUpdate(v, env, scope)

	case *ast.Dereference:
		bt := c.checkExpression(v.Value, env, scope)
		if bt == nil {
			return nil
		}
		elem, ok := types.ExtractDeref(bt, c.Registry)
		if !ok {
			c.report(errors.ExpectedReference, v.Pos(), "cannot dereference non-reference type %s", bt.String())
			return nil
		}
		return elem

	case *ast.New:
		return ResolveTypeExpr(v.Type, c.Registry)

	case *ast.LambdaAccess:
		sig, ok := c.lambdaSigs[v.Name]
		if !ok {
			errors.Panic(v.Pos(), "undeclared lambda %q", v.Name)
		}
		return sig

	case *ast.LambdaDecl:
		return c.checkLambdaDecl(v, env, scope)

	default:
		errors.Panic(expr.Pos(), "unknown expression kind %T", expr)
		return nil
	}
}

func (c *Checker) requireBool(expr ast.Expression, env *Environment, scope *Scope) {
	t := c.checkExpression(expr, env, scope)
	if t == nil {
		return
	}
	if !types.IsSubtype(t, types.Bool, c.Registry, env.Within()) {
		c.report(errors.SubtypeError, expr.Pos(), "expected bool, got %s", t.String())
	}
}

func (c *Checker) requireNumeric(pos token.Position, t types.Type, env *Environment) {
	if t == nil {
		return
	}
	if !types.IsSubtype(t, numericType, c.Registry, env.Within()) {
		c.report(errors.SubtypeError, pos, "expected int or byte, got %s", t.String())
	}
}

// arithResultType implements §4.6's fixed-result-type rule: if both
// operands are known to be Byte, the operation stays in Byte; any
// wider operand widens the result to Int.
func arithResultType(a, b types.Type) types.Type {
	if isByteLike(a) && isByteLike(b) {
		return types.Byte
	}
	return types.Int
}

func isByteLike(t types.Type) bool {
	at, ok := t.(*types.AtomType)
	return ok && at.Kind() == types.KindByte
}
