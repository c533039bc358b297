package semantic

import (
	"github.com/quill-lang/quillc/internal/ast"
	"github.com/quill-lang/quillc/internal/errors"
	"github.com/quill-lang/quillc/internal/types"
)

// checkBlock threads env statement by statement through body,
// returning the environment at the block's exit.
func (c *Checker) checkBlock(body *ast.BlockStatement, env *Environment, scope *Scope) *Environment {
	reportedUnreachable := false
	for _, stmt := range body.Stmts {
		if env.IsBottom() {
			if !reportedUnreachable {
				c.report(errors.UnreachableCode, stmt.Pos(), "unreachable statement")
				reportedUnreachable = true
			}
			continue
		}
		env = c.checkStatement(stmt, env, scope)
	}
	return env
}

// checkStatement checks one statement in env, returning the
// environment after it (§4.6).
func (c *Checker) checkStatement(stmt ast.Statement, env *Environment, scope *Scope) *Environment {
	switch v := stmt.(type) {
	case *ast.BlockStatement:
		return c.checkBlock(v, env, scope)
	case *ast.VariableDecl:
		return c.checkVariableDecl(v, env, scope)
	case *ast.Assign:
		return c.checkAssign(v, env, scope)
	case *ast.Return:
		return c.checkReturn(v, env, scope)
	case *ast.Fail:
		return Bottom
	case *ast.IfElse:
		return c.checkIfElse(v, env, scope)
	case *ast.NamedBlock:
		return c.checkNamedBlock(v, env, scope)
	case *ast.While:
		return c.checkWhile(v, env, scope)
	case *ast.DoWhile:
		return c.checkDoWhile(v, env, scope)
	case *ast.Switch:
		return c.checkSwitch(v, env, scope)
	case *ast.Break:
		return Bottom
	case *ast.Continue:
		return Bottom
	case *ast.Assert:
		return c.checkCondition(v.Cond, true, env, scope)
	case *ast.Assume:
		return c.checkCondition(v.Cond, true, env, scope)
	case *ast.Debug:
		t := c.checkExpression(v.Value, env, scope)
		if t != nil && !types.IsSubtype(t, &types.ArrayType{Elem: types.Int}, c.Registry, env.Within()) {
			c.report(errors.SubtypeError, v.Value.Pos(), "debug value must be a string")
		}
		return env
	case *ast.Skip:
		return env
	case *ast.ExpressionStatement:
		c.checkExpression(v.Expr, env, scope)
		return env
	default:
		errors.Panic(stmt.Pos(), "unknown statement kind %T", stmt)
		return env
	}
}

func (c *Checker) checkVariableDecl(v *ast.VariableDecl, env *Environment, scope *Scope) *Environment {
	declared := ResolveTypeExpr(v.Type, c.Registry)
	next := env.Declare(v.Name, declared)
	if v.Init == nil {
		return next
	}
	initType := c.checkExpression(v.Init, env, scope)
	if initType == nil {
		return next
	}
	if !types.IsSubtype(initType, declared, c.Registry, env.Within()) {
		c.report(errors.SubtypeError, v.Init.Pos(), "cannot initialise %q: %s is not a subtype of %s", v.Name, initType.String(), declared.String())
	}
	return next
}

// checkAssign checks each rhs component against its l-value's
// declared (not refined) type, then narrows the known type of any
// plain variable target to the declared type intersected with the
// assigned expression's type (§9: "Variable mutation after test").
func (c *Checker) checkAssign(v *ast.Assign, env *Environment, scope *Scope) *Environment {
	next := env
	for i, lhs := range v.LHS {
		if i >= len(v.RHS) {
			break
		}
		declared := c.checkLValue(lhs, env, scope)
		rhsType := c.checkExpression(v.RHS[i], env, scope)
		if declared == nil || rhsType == nil {
			continue
		}
		if !types.IsSubtype(rhsType, declared, c.Registry, env.Within()) {
			c.report(errors.SubtypeError, v.RHS[i].Pos(), "cannot assign: %s is not a subtype of %s", rhsType.String(), declared.String())
			continue
		}
		if vl, ok := lhs.(*ast.VarLValue); ok {
			next = next.Refine(vl.Name, types.Intersect(declared, rhsType))
		}
	}
	return next
}

func (c *Checker) checkReturn(v *ast.Return, env *Environment, scope *Scope) *Environment {
	fn := scope.EnclosingFunction()
	var expected []ast.TypeExpr
	if fn != nil {
		expected = fn.Returns
	}
	if len(v.Values) < len(expected) {
		c.report(errors.InsufficientReturns, v.Pos(), "not enough return values: expected %d, got %d", len(expected), len(v.Values))
	} else if len(v.Values) > len(expected) {
		c.report(errors.TooManyReturns, v.Pos(), "too many return values: expected %d, got %d", len(expected), len(v.Values))
	}
	n := len(v.Values)
	if len(expected) < n {
		n = len(expected)
	}
	for i := 0; i < n; i++ {
		vt := c.checkExpression(v.Values[i], env, scope)
		if vt == nil {
			continue
		}
		declared := ResolveTypeExpr(expected[i], c.Registry)
		if !types.IsSubtype(vt, declared, c.Registry, env.Within()) {
			c.report(errors.SubtypeError, v.Values[i].Pos(), "return value %s is not a subtype of %s", vt.String(), declared.String())
		}
	}
	return Bottom
}

func (c *Checker) checkIfElse(v *ast.IfElse, env *Environment, scope *Scope) *Environment {
	trueEnv := c.checkCondition(v.Cond, true, env, scope)
	falseEnv := c.checkCondition(v.Cond, false, env, scope)
	thenExit := c.checkStatement(v.Then, trueEnv, scope)
	var elseExit *Environment
	if v.Else != nil {
		elseExit = c.checkStatement(v.Else, falseEnv, scope)
	} else {
		elseExit = falseEnv
	}
	return Join(thenExit, elseExit)
}

func (c *Checker) checkNamedBlock(v *ast.NamedBlock, env *Environment, scope *Scope) *Environment {
	enclosing := scope.DeclaredLifetimes()
	nextWithin := env.Within().Extend(v.Name, enclosing)
	blockEnv := env.WithLifetimes(nextWithin)
	blockScope := PushNamedBlock(scope, v.Name)
	return c.checkStatement(v.Body, blockEnv, blockScope)
}

// checkWhile checks the invariants, then the body in the
// true-environment with its effects discarded, and exits with the
// false-environment (§4.6, §9: loops are not iterated to a fixed
// point).
func (c *Checker) checkWhile(v *ast.While, env *Environment, scope *Scope) *Environment {
	for _, inv := range v.Invariants {
		c.checkCondition(inv, true, env, scope)
	}
	trueEnv := c.checkCondition(v.Cond, true, env, scope)
	c.checkStatement(v.Body, trueEnv, scope)
	return c.checkCondition(v.Cond, false, env, scope)
}

// checkDoWhile checks the body once in env, then the invariants and
// condition, exiting with the false-environment of the condition.
func (c *Checker) checkDoWhile(v *ast.DoWhile, env *Environment, scope *Scope) *Environment {
	bodyExit := c.checkStatement(v.Body, env, scope)
	if bodyExit.IsBottom() {
		return Bottom
	}
	for _, inv := range v.Invariants {
		c.checkCondition(inv, true, bodyExit, scope)
	}
	return c.checkCondition(v.Cond, false, bodyExit, scope)
}

// checkSwitch checks each arm in env and unions all exits; if there is
// no default arm, the incoming env also joins in (falling through).
func (c *Checker) checkSwitch(v *ast.Switch, env *Environment, scope *Scope) *Environment {
	c.checkExpression(v.Subject, env, scope)
	exits := make([]*Environment, 0, len(v.Cases)+1)
	for _, arm := range v.Cases {
		for _, val := range arm.Values {
			c.checkExpression(val, env, scope)
		}
		exits = append(exits, c.checkStatement(arm.Body, env, scope))
	}
	if v.Default != nil {
		exits = append(exits, c.checkStatement(v.Default, env, scope))
	} else {
		exits = append(exits, env)
	}
	return JoinAll(exits...)
}
