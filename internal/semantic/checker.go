package semantic

import (
	"fmt"

	"github.com/quill-lang/quillc/internal/ast"
	"github.com/quill-lang/quillc/internal/errors"
	"github.com/quill-lang/quillc/internal/token"
	"github.com/quill-lang/quillc/internal/types"
)

// Checker is the Flow Checker (§4.6): it walks declarations, threads
// an Environment through statement bodies, and accumulates
// diagnostics. A Checker is single-use per compilation unit (§5: "each
// declaration starts fresh with a full environment").
type Checker struct {
	Registry *types.Registry
	Source   string
	File     string

	Errors  []*errors.CompilerError
	ok      bool
	aborted bool // set once an internal error stops the unit

	staticVars      map[string]types.Type
	lambdaSigs      map[string]*types.CallableType
	functionsByName map[string][]*ast.FunctionOrMethod
	seedLifetimes   types.Lifetimes

	// typeTestReported dedups the dead-branch diagnostics typeTestBounds
	// emits: a statement-level condition visits the same *ast.Is node
	// once per sign (once for the then-branch, once for the else), but
	// the bounds and any dead-branch report are sign-independent, so
	// without this the same diagnostic would surface twice.
	typeTestReported map[*ast.Is]bool
}

// SeedLifetime predeclares name in the within-relation every
// declaration body starts with, so a unit may borrow against a
// lifetime an embedding host names ambient (quill.yaml's
// lifetimes.within) without locally introducing it via a "block"
// statement.
func (c *Checker) SeedLifetime(name string) {
	if c.seedLifetimes == nil {
		c.seedLifetimes = types.Lifetimes{}
	}
	c.seedLifetimes[name] = nil
}

func (c *Checker) startEnvironment() *Environment {
	env := NewEnvironment()
	if len(c.seedLifetimes) > 0 {
		env = env.WithLifetimes(c.seedLifetimes)
	}
	return env
}

// NewChecker creates a Checker for one compilation unit.
func NewChecker(source, file string) *Checker {
	return &Checker{
		Registry:         types.NewRegistry(),
		Source:           source,
		File:             file,
		ok:               true,
		staticVars:       map[string]types.Type{},
		lambdaSigs:       map[string]*types.CallableType{},
		functionsByName:  map[string][]*ast.FunctionOrMethod{},
		typeTestReported: map[*ast.Is]bool{},
	}
}

// OK reports whether checking the unit so far has seen no errors
// (§6: "the overall return value is a boolean 'no errors seen'").
func (c *Checker) OK() bool { return c.ok }

func (c *Checker) report(code errors.Code, pos token.Position, format string, args ...any) {
	c.ok = false
	c.Errors = append(c.Errors, errors.New(code, pos, fmt.Sprintf(format, args...), c.Source, c.File))
}

// recoverDeclaration turns an internal-error panic raised while
// checking one declaration into a single InternalError diagnostic and
// marks the unit aborted, so CheckUnit checks no further declarations
// (§7, class 2).
func (c *Checker) recoverDeclaration(name string) {
	if r := recover(); r != nil {
		if ie, ok := r.(*errors.InternalError); ok {
			c.ok = false
			c.aborted = true
			c.Errors = append(c.Errors, errors.New(errors.SyntaxError, ie.Pos, ie.Error(), c.Source, c.File))
			return
		}
		panic(r)
	}
}

// CheckUnit runs the full checker over unit: a declaration pass that
// registers every nominal type and checks contractiveness, followed
// by a per-declaration body check.
func (c *Checker) CheckUnit(unit *ast.Unit) bool {
	c.registerTypeDecls(unit)
	c.registerGlobals(unit)
	for _, d := range unit.Declarations {
		c.checkDeclaration(d)
		if c.aborted {
			break
		}
	}
	return c.ok
}

func (c *Checker) checkDeclaration(d ast.Declaration) {
	switch v := d.(type) {
	case *ast.TypeDecl:
		// Registration and contractiveness already handled in
		// registerTypeDecls; nothing further to check per-declaration.
		_ = v
	case *ast.StaticVariable:
		c.checkStaticVariable(v)
	case *ast.FunctionOrMethod:
		defer c.recoverDeclaration(v.Name)
		c.checkFunctionOrMethod(v, nil)
	case *ast.Property:
		c.checkProperty(v)
	case *ast.Lambda:
		defer c.recoverDeclaration(v.Name)
		c.checkTopLevelLambda(v)
	}
}

func (c *Checker) registerTypeDecls(unit *ast.Unit) {
	for _, d := range unit.Declarations {
		td, ok := d.(*ast.TypeDecl)
		if !ok {
			continue
		}
		body := ResolveTypeExpr(td.Body, c.Registry)
		c.Registry.Register(&types.Decl{
			Name:         td.Name,
			ParamName:    td.Param,
			Body:         body,
			HasInvariant: td.Where != nil,
		})
	}
	for _, d := range unit.Declarations {
		td, ok := d.(*ast.TypeDecl)
		if !ok {
			continue
		}
		decl, _ := c.Registry.Lookup(td.Name)
		if !types.IsContractive(decl, c.Registry) {
			c.report(errors.EmptyType, td.Pos(), "type %q is not contractive", td.Name)
		}
	}
}

// registerGlobals pre-binds every static variable's declared type,
// every top-level lambda's signature, and every function-or-method's
// name so forward references (a function invoked before its textual
// declaration, a lambda accessed before its declaration) resolve
// correctly. Candidate binding for Invoke happens here rather than in
// the parser: within one unit, overload sets are exactly "every
// FunctionOrMethod sharing this name", which the checker already has
// to enumerate.
func (c *Checker) registerGlobals(unit *ast.Unit) {
	for _, d := range unit.Declarations {
		switch v := d.(type) {
		case *ast.StaticVariable:
			c.staticVars[v.Name] = ResolveTypeExpr(v.Type, c.Registry)
		case *ast.Lambda:
			c.lambdaSigs[v.Name] = c.resolveLambdaSignature(v)
		case *ast.FunctionOrMethod:
			c.functionsByName[v.Name] = append(c.functionsByName[v.Name], v)
		}
	}
}

func (c *Checker) checkStaticVariable(sv *ast.StaticVariable) {
	declared := c.staticVars[sv.Name]
	if sv.Init == nil {
		return
	}
	env := c.startEnvironment()
	initType := c.checkExpression(sv.Init, env, nil)
	if initType == nil {
		return
	}
	if !types.IsSubtype(initType, declared, c.Registry, env.Within()) {
		c.report(errors.SubtypeError, sv.Init.Pos(), "cannot initialise %q: %s is not a subtype of %s", sv.Name, initType.String(), declared.String())
	}
}

func (c *Checker) checkProperty(p *ast.Property) {
	// A property declaration carries no body to flow-check; its type
	// and getter/setter names are not checked.
	_ = p
}

func (c *Checker) checkTopLevelLambda(lam *ast.Lambda) {
	sig := c.lambdaSigs[lam.Name]
	lam.SetAnnotation(sig)
	scope := PushFunction(nil, &ast.FunctionOrMethod{
		Name: lam.Name, Params: lam.Params, Returns: lam.Returns, Body: lam.Body,
	})
	env := c.startEnvironment()
	for _, p := range lam.Params {
		env = env.Declare(p.Name, ResolveTypeExpr(p.Type, c.Registry))
	}
	c.checkFunctionBody(lam.Body, env, scope, lam.Returns, true)
}

func (c *Checker) resolveLambdaSignature(lam *ast.Lambda) *types.CallableType {
	params := make([]types.Type, len(lam.Params))
	for i, p := range lam.Params {
		params[i] = ResolveTypeExpr(p.Type, c.Registry)
	}
	returns := make([]types.Type, len(lam.Returns))
	for i, r := range lam.Returns {
		returns[i] = ResolveTypeExpr(r, c.Registry)
	}
	return &types.CallableType{CKind: types.FunctionKind, Params: params, Returns: returns}
}

func (c *Checker) checkFunctionOrMethod(fn *ast.FunctionOrMethod, parent *Scope) {
	scope := PushFunction(parent, fn)
	env := c.startEnvironment()
	for _, p := range fn.Params {
		env = env.Declare(p.Name, ResolveTypeExpr(p.Type, c.Registry))
	}
	if fn.Native {
		return
	}
	c.checkFunctionBody(fn.Body, env, scope, fn.Returns, true)
}

// checkFunctionBody threads env through body and, unless exempt,
// checks for MISSING_RETURN_STATEMENT (§4.6: "if the final ENV is not
// BOTTOM and the declaration has non-empty returns").
func (c *Checker) checkFunctionBody(body *ast.BlockStatement, env *Environment, scope *Scope, returns []ast.TypeExpr, reportMissingReturn bool) {
	final := c.checkBlock(body, env, scope)
	if reportMissingReturn && !final.IsBottom() && len(returns) > 0 {
		c.report(errors.MissingReturnStatement, body.Pos(), "missing return statement")
	}
}
