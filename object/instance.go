package object

import (
	"fmt"

	"github.com/ashbyglade/golox/value"
)

// Instance is a runtime object: a reference to its Class plus a
// field_name -> Value mapping (spec.md §3, "Instances"). Methods are
// never stored here, only on the Class. Grounded on
// cmdneo-tree_lox/object/instance.go.
type Instance struct {
	Class  *Class
	Fields map[string]value.Value
}

func NewInstance(class *Class) *Instance {
	return &Instance{Class: class, Fields: make(map[string]value.Value)}
}

func (i *Instance) String() string {
	return fmt.Sprintf("<%s instance>", i.Class.Name)
}

// Get looks up name first as a field, then as a method on the class
// chain, binding a found method to i (spec.md §4.6, "Get on an
// Instance").
func (i *Instance) Get(name string) (value.Value, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if method := i.Class.FindMethod(name); method != nil {
		return method.Bind(i), true
	}
	return nil, false
}

// Set unconditionally inserts or updates a field (spec.md §4.6, "Set on
// an Instance").
func (i *Instance) Set(name string, v value.Value) {
	i.Fields[name] = v
}
