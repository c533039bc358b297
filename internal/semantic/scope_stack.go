package semantic

import "github.com/quill-lang/quillc/internal/ast"

// Scope is one frame of the enclosing scope stack (§4.7): either a
// function/method body (which implicitly declares the lifetime
// "this") or a named block (which adds one lifetime name nested
// within every lifetime currently in scope).
type Scope struct {
	parent   *Scope
	function *ast.FunctionOrMethod // non-nil for FunctionOrMethodScope frames
	blockName string              // non-empty for NamedBlockScope frames
}

// PushFunction returns a new scope stack with a FunctionOrMethodScope
// frame for decl on top.
func PushFunction(parent *Scope, decl *ast.FunctionOrMethod) *Scope {
	return &Scope{parent: parent, function: decl}
}

// PushNamedBlock returns a new scope stack with a NamedBlockScope
// frame for name on top.
func PushNamedBlock(parent *Scope, name string) *Scope {
	return &Scope{parent: parent, blockName: name}
}

// EnclosingFunction walks outward to the nearest FunctionOrMethodScope
// frame, used when checking return statements against the declared
// return types.
func (s *Scope) EnclosingFunction() *ast.FunctionOrMethod {
	for f := s; f != nil; f = f.parent {
		if f.function != nil {
			return f.function
		}
	}
	return nil
}

// DeclaredLifetimes collects every lifetime name declared by an
// enclosing NamedBlockScope frame, from outermost to innermost,
// followed implicitly by "this" — the set a new NamedBlock statement
// must be declared as nested within (§4.6).
func (s *Scope) DeclaredLifetimes() []string {
	var names []string
	var frames []*Scope
	for f := s; f != nil; f = f.parent {
		frames = append(frames, f)
	}
	for i := len(frames) - 1; i >= 0; i-- {
		if frames[i].blockName != "" {
			names = append(names, frames[i].blockName)
		}
	}
	names = append(names, "this")
	return names
}
