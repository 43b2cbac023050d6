// env.go — variable and procedure environments.
//
// Both environments are snapshots: Insert and Overlay return a fresh mapping
// and never touch the receiver. Evaluation and execution hand updated
// environments back to the caller instead of mutating shared state, so a
// callee's local bindings can never leak into the caller except through the
// returned mapping.
package imp

// Env maps variable names to values.
type Env map[string]Value

// NewEnv returns an empty variable environment.
func NewEnv() Env { return Env{} }

// Lookup retrieves the binding for name.
func (e Env) Lookup(name string) (Value, bool) {
	v, ok := e[name]
	return v, ok
}

// Insert returns a copy of e with name bound to v (overwriting any previous
// binding of name).
func (e Env) Insert(name string, v Value) Env {
	out := make(Env, len(e)+1)
	for k, val := range e {
		out[k] = val
	}
	out[name] = v
	return out
}

// Overlay returns a copy of e with every binding of over added on top;
// bindings in over win on name collision. Neither input is modified.
func (e Env) Overlay(over Env) Env {
	out := make(Env, len(e)+len(over))
	for k, v := range e {
		out[k] = v
	}
	for k, v := range over {
		out[k] = v
	}
	return out
}

// Equal compares two environments structurally (used by closure equality).
func (e Env) Equal(o Env) bool {
	if len(e) != len(o) {
		return false
	}
	for k, v := range e {
		ov, ok := o[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// PEnv maps procedure names to their declarations. Declaring is the only
// mutator; a redeclaration under the same name overwrites.
type PEnv map[string]*ProcStmt

// NewPEnv returns an empty procedure environment.
func NewPEnv() PEnv { return PEnv{} }

// Lookup retrieves the declaration for name.
func (p PEnv) Lookup(name string) (*ProcStmt, bool) {
	d, ok := p[name]
	return d, ok
}

// Insert returns a copy of p with the declaration added (or replaced).
func (p PEnv) Insert(name string, decl *ProcStmt) PEnv {
	out := make(PEnv, len(p)+1)
	for k, v := range p {
		out[k] = v
	}
	out[name] = decl
	return out
}
