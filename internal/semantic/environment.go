// Package semantic implements the flow-sensitive checker: the
// Environment (ENV), the enclosing scope stack, the type-inference
// oracle (TIO), and the flow checker (FC) that walks declarations,
// statements, expressions, l-values, and conditions, routing every
// structural decision through internal/types.
package semantic

import "github.com/quill-lang/quillc/internal/types"

// binding pairs a variable's fixed declared type with its current
// flow-refined known type (§3: "the current known type ... must
// always be a subtype of the declared type").
type binding struct {
	declared types.Type
	known    types.Type
}

// Environment is a per-variable refinement map plus the within-
// relation in force at this program point. Environments are
// value-like: every refining operation returns a new Environment
// rather than mutating the receiver, so branches can diverge from a
// shared starting point without aliasing.
type Environment struct {
	bottom bool
	vars   map[string]binding
	within types.Lifetimes
}

// NewEnvironment creates a fresh, non-bottom Environment with an empty
// within-relation — the starting point for a declaration body.
func NewEnvironment() *Environment {
	return &Environment{vars: map[string]binding{}, within: types.Lifetimes{}}
}

// Bottom is the distinguished unreachable-program-point sentinel.
var Bottom = &Environment{bottom: true}

// IsBottom reports whether e is the BOTTOM sentinel.
func (e *Environment) IsBottom() bool { return e.bottom }

// Lookup returns the current known type of name. Calling this against
// BOTTOM is a caller error (§3: "any lookup against BOTTOM is
// illegal"); callers must check IsBottom first.
func (e *Environment) Lookup(name string) (types.Type, bool) {
	b, ok := e.vars[name]
	if !ok {
		return nil, false
	}
	return b.known, true
}

// DeclaredType returns the fixed declared type of name, ignoring any
// refinement — the type l-value checking must use (§4.6).
func (e *Environment) DeclaredType(name string) (types.Type, bool) {
	b, ok := e.vars[name]
	if !ok {
		return nil, false
	}
	return b.declared, true
}

// Within returns the environment's lifetime within-relation.
func (e *Environment) Within() types.Lifetimes { return e.within }

// Declare returns a copy of e with name freshly bound to t as both
// its declared and known type.
func (e *Environment) Declare(name string, t types.Type) *Environment {
	next := e.clone()
	next.vars[name] = binding{declared: t, known: t}
	return next
}

// Refine returns a copy of e with name's known type narrowed to t,
// preserving its existing declared type. A no-op if name is unbound
// (e.g. a static variable, which never refines — §4.6).
func (e *Environment) Refine(name string, t types.Type) *Environment {
	if _, ok := e.vars[name]; !ok {
		return e
	}
	next := e.clone()
	b := next.vars[name]
	b.known = t
	next.vars[name] = b
	return next
}

// WithLifetimes returns a copy of e with its within-relation replaced.
func (e *Environment) WithLifetimes(l types.Lifetimes) *Environment {
	next := e.clone()
	next.within = l
	return next
}

func (e *Environment) clone() *Environment {
	vars := make(map[string]binding, len(e.vars))
	for k, v := range e.vars {
		vars[k] = v
	}
	return &Environment{vars: vars, within: e.within}
}

// Join combines two environments at a control-flow merge point (§4.6):
// for each variable present in both, the new known type is their
// union; BOTTOM is the identity (P4: BOTTOM ∪ E = E).
func Join(a, b *Environment) *Environment {
	if a.IsBottom() {
		return b
	}
	if b.IsBottom() {
		return a
	}
	vars := make(map[string]binding, len(a.vars))
	for name, ba := range a.vars {
		if bb, ok := b.vars[name]; ok {
			vars[name] = binding{declared: ba.declared, known: types.Union(ba.known, bb.known)}
		} else {
			vars[name] = ba
		}
	}
	for name, bb := range b.vars {
		if _, ok := a.vars[name]; !ok {
			vars[name] = bb
		}
	}
	return &Environment{vars: vars, within: a.within}
}

// JoinAll folds Join across envs left to right; an empty slice yields
// BOTTOM (no path reached this point).
func JoinAll(envs ...*Environment) *Environment {
	result := Bottom
	for _, e := range envs {
		result = Join(result, e)
	}
	return result
}
