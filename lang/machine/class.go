package machine

import "fmt"

// Class is a Lox class value: a named bundle of methods with no
// inheritance, callable to construct a new Instance.
type Class struct {
	ClassName string
	Methods   map[string]*LoxFunction
	Getters   map[string]*LoxFunction

	// metaFields holds the class (static) methods, each bound with `this` set
	// to the class value itself (its metaclass receiver) rather than to an
	// instance; they are reachable as properties of the class value itself.
	metaFields map[string]Value
}

var (
	_ Value    = (*Class)(nil)
	_ Callable = (*Class)(nil)
	_ HasAttrs = (*Class)(nil)
)

// NewClass returns a class value. classMethods are exposed as attributes of
// the class value itself (e.g. Circle.zero()) with `this` bound to the class,
// never to an instance.
func NewClass(name string, methods, getters map[string]*LoxFunction, classMethods map[string]*LoxFunction) *Class {
	c := &Class{ClassName: name, Methods: methods, Getters: getters}
	meta := make(map[string]Value, len(classMethods))
	for n, fn := range classMethods {
		meta[n] = fn.bind(c)
	}
	c.metaFields = meta
	return c
}

func (c *Class) String() string { return fmt.Sprintf("<class %s>", c.ClassName) }
func (c *Class) Type() string   { return "class" }
func (c *Class) Name() string   { return c.ClassName }

func (c *Class) Arity() int {
	if init, ok := c.Methods["init"]; ok {
		return init.Arity()
	}
	return 0
}

// Call constructs a new instance, running its initializer (if any) with args.
func (c *Class) Call(i *Interp, args []Value) (Value, error) {
	inst := NewInstance(c)
	if init, ok := c.Methods["init"]; ok {
		if _, err := init.bind(inst).Call(i, args); err != nil {
			return nil, err
		}
	}
	return inst, nil
}

// GetAttr resolves a class (static) method as a property of the class value
// itself.
func (c *Class) GetAttr(i *Interp, name string) (Value, bool, error) {
	if v, ok := c.metaFields[name]; ok {
		return v, true, nil
	}
	return nil, false, nil
}

// findMethod looks up an instance method (not a getter, see findGetter) by
// name. A field set by the same name on the instance wins over a method of
// the same name (checked by the caller, Instance.GetAttr).
func (c *Class) findMethod(name string) (*LoxFunction, bool) {
	if fn, ok := c.Methods[name]; ok {
		return fn, true
	}
	return nil, false
}

func (c *Class) findGetter(name string) (*LoxFunction, bool) {
	fn, ok := c.Getters[name]
	return fn, ok
}

// Instance is an instance of a Lox class: a class pointer plus its own
// mutable field set.
type Instance struct {
	Class  *Class
	Fields map[string]Value
}

var (
	_ Value      = (*Instance)(nil)
	_ HasAttrs   = (*Instance)(nil)
	_ HasSetAttr = (*Instance)(nil)
)

// NewInstance returns a new, field-less instance of c.
func NewInstance(c *Class) *Instance {
	return &Instance{Class: c, Fields: make(map[string]Value)}
}

func (inst *Instance) String() string { return fmt.Sprintf("<instance %s>", inst.Class.ClassName) }
func (inst *Instance) Type() string   { return inst.Class.ClassName }

// GetAttr implements Lox property access: fields shadow methods, methods
// shadow getters, and a getter is invoked immediately (it is not a value
// itself, the way a method is).
func (inst *Instance) GetAttr(i *Interp, name string) (Value, bool, error) {
	if v, ok := inst.Fields[name]; ok {
		return v, true, nil
	}
	if fn, ok := inst.Class.findMethod(name); ok {
		return fn.bind(inst), true, nil
	}
	if fn, ok := inst.Class.findGetter(name); ok {
		v, err := fn.bind(inst).Call(i, nil)
		return v, true, err
	}
	return nil, false, nil
}

func (inst *Instance) SetAttr(name string, v Value) {
	inst.Fields[name] = v
}
