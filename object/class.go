package object

import "fmt"

// Class owns a name, an optional superclass and a method_name ->
// Function mapping (spec.md §3, "Classes"). Grounded on
// cmdneo-tree_lox/object/class.go, with Methods kept as a map (rather
// than the declaration-order slice the parser produces) since lookup by
// name is the only operation the runtime ever performs on it.
type Class struct {
	Name       string
	Superclass *Class // nil if the class has no superclass
	Methods    map[string]*Function
}

func NewClass(name string, superclass *Class, methods map[string]*Function) *Class {
	return &Class{Name: name, Superclass: superclass, Methods: methods}
}

func (c *Class) String() string {
	return fmt.Sprintf("<class %s>", c.Name)
}

// Arity is the arity of the class's "init" method (its own or the
// nearest one up the superclass chain), or 0 if it has none
// (spec.md §4.6, "Calling a Class constructs an Instance").
func (c *Class) Arity() int {
	if init := c.FindMethod("init"); init != nil {
		return init.Arity()
	}
	return 0
}

// FindMethod walks the superclass chain linearly looking for name
// (spec.md §3, "Finding a method walks up the superclass chain").
func (c *Class) FindMethod(name string) *Function {
	for class := c; class != nil; class = class.Superclass {
		if m, ok := class.Methods[name]; ok {
			return m
		}
	}
	return nil
}
