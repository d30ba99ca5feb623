// Package object holds the runtime representations that close over the
// value package: lexical Environment frames, user/native Callables,
// Class and Instance. These need ast.Stmt/ast.Expr (function bodies,
// closures) and so cannot live in package value without an import
// cycle.
package object

import "github.com/ashbyglade/golox/value"

// Environment is a single lexical frame, per spec.md §4.5: a mapping
// from name to Value plus a link to the enclosing frame. Grounded on
// cmdneo-tree_lox/object/environment.go's shape, but name-keyed rather
// than slot-indexed — the resolver here produces a side-table of
// depths, not per-node slot indices baked into the AST, so lookups
// still need a name at the target frame.
type Environment struct {
	values    map[string]value.Value
	enclosing *Environment
}

// NewEnvironment returns a frame enclosing parent (nil for the global
// frame).
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{values: make(map[string]value.Value), enclosing: parent}
}

// Define inserts name unconditionally into this frame, shadowing any
// binding of the same name in an enclosing frame (spec.md §4.5).
func (e *Environment) Define(name string, v value.Value) {
	e.values[name] = v
}

// Get looks up name starting in this frame and walking outward. The
// interpreter uses it for global lookups (no resolver entry) and to
// read "this" from a bound method's closure; resolved variable lookups
// go through GetAt.
func (e *Environment) Get(name string) (value.Value, bool) {
	for f := e; f != nil; f = f.enclosing {
		if v, ok := f.values[name]; ok {
			return v, true
		}
	}
	return nil, false
}

// Assign finds the nearest frame (starting here, walking outward) that
// already binds name and overwrites it there. The interpreter uses it
// for assignment to globals and to store a class declaration's value
// under the name it just defined in the current frame; resolved
// variable assignment goes through AssignAt.
func (e *Environment) Assign(name string, v value.Value) bool {
	for f := e; f != nil; f = f.enclosing {
		if _, ok := f.values[name]; ok {
			f.values[name] = v
			return true
		}
	}
	return false
}

// GetAt walks exactly depth frames outward from e and looks up name
// directly in that frame. A miss there is a resolver bug, not a user
// error (spec.md §4.5) — callers may assume the map access always
// succeeds once the ancestor is found, but GetAt still reports ok so
// the interpreter can turn a violation into a clear panic message
// rather than a silent nil.
func (e *Environment) GetAt(depth int, name string) (value.Value, bool) {
	v, ok := e.ancestor(depth).values[name]
	return v, ok
}

// AssignAt walks exactly depth frames outward from e and assigns name
// directly in that frame.
func (e *Environment) AssignAt(depth int, name string, v value.Value) {
	e.ancestor(depth).values[name] = v
}

func (e *Environment) ancestor(depth int) *Environment {
	f := e
	for i := 0; i < depth; i++ {
		f = f.enclosing
	}
	return f
}
