package types

import "sync"

// Decl is a declared nominal type: "type Name is Body [where Where]".
// HasInvariant is true when a "where" clause is present — the
// distinction the dual-oracle policy (spec §9) keys off: the relaxed
// oracle treats such a nominal as potentially inhabited rather than
// unfolding it, while the strict oracle always unfolds.
type Decl struct {
	Name         string
	ParamName    string
	Body         Type
	HasInvariant bool
}

// Registry resolves nominal type names to their declarations. It is
// populated once by the declaration pass and read concurrently by the
// emptiness oracle thereafter; a RWMutex guards it so that independent
// compilation units sharing one Registry may be checked in parallel
// (spec §5).
type Registry struct {
	mu    sync.RWMutex
	decls map[string]*Decl
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{decls: make(map[string]*Decl)}
}

// Register records decl, keyed by its name.
func (r *Registry) Register(decl *Decl) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.decls[decl.Name] = decl
}

// Lookup returns the declaration for name, if any.
func (r *Registry) Lookup(name string) (*Decl, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.decls[name]
	return d, ok
}
