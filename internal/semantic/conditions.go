package semantic

import (
	"github.com/quill-lang/quillc/internal/ast"
	"github.com/quill-lang/quillc/internal/errors"
)

// checkCondition is the sign-aware condition checker (§4.6): given an
// expression, a polarity (true=="known true", false=="known false"),
// and an incoming environment, it returns the refined environment for
// that polarity. This is where condition-driven refinement happens;
// checkExpression never refines (checkAssign separately narrows an
// assigned variable).
func (c *Checker) checkCondition(expr ast.Expression, sign bool, env *Environment, scope *Scope) *Environment {
	switch v := expr.(type) {
	case *ast.LogicalNot:
		return c.checkCondition(v.Value, !sign, env, scope)

	case *ast.LogicalBinary:
		switch v.Op {
		case ast.OpAnd:
			if sign {
				return c.threadAll([]ast.Expression{v.Left, v.Right}, true, env, scope)
			}
			return c.unionThreadDual([]ast.Expression{v.Left, v.Right}, false, env, scope)
		case ast.OpOr:
			if sign {
				return c.unionThreadDual([]ast.Expression{v.Left, v.Right}, true, env, scope)
			}
			return c.threadAll([]ast.Expression{v.Left, v.Right}, false, env, scope)
		case ast.OpImplies:
			if sign {
				leftEnv := c.checkCondition(v.Left, false, env, scope)
				afterLeftTrue := c.checkCondition(v.Left, true, env, scope)
				rightEnv := c.checkCondition(v.Right, true, afterLeftTrue, scope)
				return Join(leftEnv, rightEnv)
			}
			afterLeftTrue := c.checkCondition(v.Left, true, env, scope)
			return c.checkCondition(v.Right, false, afterLeftTrue, scope)
		case ast.OpIff:
			// Conservative approximation (§4.6): thread both operands
			// under the same sign rather than fully modelling iff.
			mid := c.checkCondition(v.Left, sign, env, scope)
			return c.checkCondition(v.Right, sign, mid, scope)
		}
		errors.Panic(v.Pos(), "unknown logical operator")
		return env

	case *ast.Is:
		return c.checkTypeTest(v, sign, env, scope)

	case *ast.Quantifier:
		c.checkExpression(v, env, scope)
		return env

	default:
		c.requireBool(expr, env, scope)
		if lit, ok := expr.(*ast.Constant); ok && lit.Kind == ast.ConstBool {
			if lit.Bool != sign {
				return Bottom
			}
		}
		return env
	}
}

// threadAll checks each operand in turn under sign, threading the
// refined environment left to right (§4.6: conjunction at sign +,
// disjunction at sign −).
func (c *Checker) threadAll(operands []ast.Expression, sign bool, env *Environment, scope *Scope) *Environment {
	cur := env
	for _, op := range operands {
		cur = c.checkCondition(op, sign, cur, scope)
	}
	return cur
}

// unionThreadDual computes, for each operand, its refinement at
// targetSign using the environment threaded with every prior operand
// at the opposite sign, then unions the per-operand results (§4.6:
// conjunction at sign −, disjunction at sign +, via De Morgan duality).
func (c *Checker) unionThreadDual(operands []ast.Expression, targetSign bool, env *Environment, scope *Scope) *Environment {
	cur := env
	results := make([]*Environment, 0, len(operands))
	for _, op := range operands {
		results = append(results, c.checkCondition(op, targetSign, cur, scope))
		cur = c.checkCondition(op, !targetSign, cur, scope)
	}
	return JoinAll(results...)
}

// checkTypeTest implements §4.6's TypeTest rule. Refinement only
// applies when the tested value is a bare variable access (§9:
// "Refinement scope").
func (c *Checker) checkTypeTest(v *ast.Is, sign bool, env *Environment, scope *Scope) *Environment {
	s := c.checkExpression(v.Value, env, scope)
	if s == nil {
		return env
	}
	t := ResolveTypeExpr(v.Type, c.Registry)
	report := !c.typeTestReported[v]
	c.typeTestReported[v] = true
	trueType, falseType := c.typeTestBounds(v.Pos(), s, t, env.Within(), report)

	va, ok := v.Value.(*ast.VariableAccess)
	if !ok {
		return env
	}
	if sign {
		return env.Refine(va.Name, trueType)
	}
	return env.Refine(va.Name, falseType)
}
