// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 jsltcore Contributors

package jslt

// Scope is an immutable, layered variable binding. Binding a new variable
// produces a new Scope layered over the parent; lookups walk from the
// innermost layer outward, so a let shadows any outer binding of the same
// name without mutating it.
type Scope struct {
	name   string
	value  Value
	parent *Scope
}

// Bind returns a new Scope with name bound to value, layered over s.
func (s *Scope) Bind(name string, value Value) *Scope {
	return &Scope{name: name, value: value, parent: s}
}

// Lookup walks the scope chain for name, returning its value and whether it
// was found.
func (s *Scope) Lookup(name string) (Value, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if cur.name == name {
			return cur.value, true
		}
	}
	return Value{}, false
}

// globalScope is the per-invocation global binding slot: reset to empty at
// the start of every Transform/Validate call, shadowed by any local binding
// of the same name. It supports the same Bind/Lookup shape as Scope so the
// variable evaluator can treat "check local, then global" uniformly.
type globalScope struct {
	vars map[string]Value
}

func newGlobalScope() *globalScope {
	return &globalScope{vars: make(map[string]Value)}
}

func (g *globalScope) lookup(name string) (Value, bool) {
	v, ok := g.vars[name]
	return v, ok
}

func (g *globalScope) bind(name string, value Value) {
	g.vars[name] = value
}
