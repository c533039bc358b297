package types

// Lifetimes is the within-relation (§3): a mapping from a lifetime
// name to the set of lifetime names it is directly nested within. It
// is reflexive on "this" — every lifetime is considered within "this",
// the enclosing function/method's own receiver lifetime.
type Lifetimes map[string][]string

// Within reports whether lifetime a is nested within (or equal to)
// lifetime b, following the relation transitively.
func (l Lifetimes) Within(a, b string) bool {
	if a == b || b == "this" {
		return true
	}
	visited := map[string]bool{}
	var dfs func(x string) bool
	dfs = func(x string) bool {
		if x == b {
			return true
		}
		if visited[x] {
			return false
		}
		visited[x] = true
		for _, e := range l[x] {
			if dfs(e) {
				return true
			}
		}
		return false
	}
	return dfs(a)
}

// Extend returns a copy of l with name declared as nested within every
// lifetime currently in scope — the effect a NamedBlock statement has
// on the within-relation (§4.6: "extends the within-relation by the
// block name covering all currently declared lifetimes").
func (l Lifetimes) Extend(name string, enclosing []string) Lifetimes {
	out := make(Lifetimes, len(l)+1)
	for k, v := range l {
		out[k] = v
	}
	out[name] = append([]string(nil), enclosing...)
	return out
}
