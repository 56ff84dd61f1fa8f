// Package evaluator is the tree-walking evaluator of spec §4.4: it
// executes statements and expressions against a chain of environments,
// implementing function calls with closures, method binding,
// constructors, and runtime type checking.
//
// The Object interface and per-kind value types are modeled on the
// teacher's internal/evaluator/object.go (an Object interface with
// Type()/Inspect(), one struct per runtime kind), cut down from the
// teacher's 40-odd kinds (lists, tuples, records, bitstrings, trait
// dictionaries, ...) to exactly the eight the language's value model
// names in spec §3.
package evaluator

import (
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/nightjar-lang/nightjar/internal/ast"
	"github.com/nightjar-lang/nightjar/internal/diagnostics"
)

// ObjectType names the runtime kind of a Value (spec §3).
type ObjectType string

const (
	NilType      ObjectType = "NIL"
	BoolType     ObjectType = "BOOL"
	NumberType   ObjectType = "NUMBER"
	StringType   ObjectType = "STRING"
	FunctionType ObjectType = "FUNCTION"
	ClassType    ObjectType = "CLASS"
	InstanceType ObjectType = "INSTANCE"
	NativeType   ObjectType = "NATIVE"
)

// Object is any runtime value: the tagged sum from spec §3.
type Object interface {
	Type() ObjectType
	Inspect() string
}

// Nil is the language's singular nil value. It is a pointer so that
// equality between two Nil-typed objects is always true by identity
// without needing a special case elsewhere.
type NilValue struct{}

func (*NilValue) Type() ObjectType { return NilType }
func (*NilValue) Inspect() string  { return "nil" }

// Nil is the single shared nil instance; every nil-producing
// expression returns this same pointer.
var Nil = &NilValue{}

// Bool wraps a boolean. Equality is structural (Go's == on the
// underlying bool).
type Bool bool

func (b Bool) Type() ObjectType { return BoolType }
func (b Bool) Inspect() string {
	if b {
		return "true"
	}
	return "false"
}

// Number wraps a 64-bit float, the language's only numeric kind.
type Number float64

func (n Number) Type() ObjectType { return NumberType }
func (n Number) Inspect() string {
	// strconv's shortest round-tripping representation prints "7"
	// rather than "7.0" for integer-valued floats, matching how Lox
	// family interpreters typically stringify numbers.
	return strconv.FormatFloat(float64(n), 'f', -1, 64)
}

// Str wraps a string.
type Str string

func (s Str) Type() ObjectType { return StringType }
func (s Str) Inspect() string  { return string(s) }

// Native is a built-in function implemented in Go, such as clock.
type Native struct {
	Name  string
	Arity int
	Fn    func(args []Object) (Object, *diagnostics.Error)
}

func (n *Native) Type() ObjectType { return NativeType }
func (n *Native) Inspect() string  { return "<native fn " + n.Name + ">" }

// Function is a user-defined function or method: its declaration plus
// the environment captured at the point it was declared (its
// closure), per spec §3.
type Function struct {
	Declaration   *ast.Function
	Closure       *Environment
	IsInitializer bool
}

func (f *Function) Type() ObjectType { return FunctionType }
func (f *Function) Inspect() string  { return "<fn " + f.Declaration.Name.Lexeme + ">" }
func (f *Function) Arity() int       { return len(f.Declaration.Params) }

// Bind returns a copy of f whose closure additionally binds `this` to
// instance, one scope outside the method's own closure — this is how
// `this`/`super` resolve inside a method body (spec §4.4 Get/Class
// semantics).
func (f *Function) Bind(instance *Instance) *Function {
	env := NewEnclosedEnvironment(f.Closure)
	env.Define("this", instance)
	return &Function{Declaration: f.Declaration, Closure: env, IsInitializer: f.IsInitializer}
}

// Class is a class object: a name, optional superclass, and its own
// (non-inherited) methods, per spec §3.
type Class struct {
	ID         uuid.UUID
	Name       string
	Superclass *Class
	Methods    map[string]*Function
}

func (c *Class) Type() ObjectType { return ClassType }
func (c *Class) Inspect() string  { return "<class " + c.Name + ">" }

// FindMethod searches c's own methods, then its superclass chain.
func (c *Class) FindMethod(name string) *Function {
	if m, ok := c.Methods[name]; ok {
		return m
	}
	if c.Superclass != nil {
		return c.Superclass.FindMethod(name)
	}
	return nil
}

// Arity is 0 unless the class declares an `init` method, in which case
// it is that method's arity.
func (c *Class) Arity() int {
	if m := c.FindMethod("init"); m != nil {
		return m.Arity()
	}
	return 0
}

// Instance is an instantiated object: a reference to its class and a
// mutable field map, per spec §3.
type Instance struct {
	ID     uuid.UUID
	Class  *Class
	Fields map[string]Object
}

func NewInstance(class *Class) *Instance {
	return &Instance{ID: uuid.New(), Class: class, Fields: make(map[string]Object)}
}

func (i *Instance) Type() ObjectType { return InstanceType }
func (i *Instance) Inspect() string  { return "<instance " + i.Class.Name + "#" + i.ID.String()[:8] + ">" }

// Get looks up a property: fields first, then a bound method, per
// spec §3's Instance property-lookup rule. ok is false if neither is
// found.
func (i *Instance) Get(name string) (Object, bool) {
	if v, ok := i.Fields[name]; ok {
		return v, true
	}
	if m := i.Class.FindMethod(name); m != nil {
		return m.Bind(i), true
	}
	return nil, false
}

// Truthy implements spec §3: false and nil are falsey, everything else
// (including 0 and "") is truthy.
func Truthy(o Object) bool {
	switch v := o.(type) {
	case *NilValue:
		return false
	case Bool:
		return bool(v)
	default:
		return true
	}
}

// Equal implements spec §3's equality rule: structural for primitives,
// identity for functions/classes/instances/natives. Nil equals only
// Nil; values of different kinds are never equal.
func Equal(a, b Object) bool {
	switch av := a.(type) {
	case *NilValue:
		_, ok := b.(*NilValue)
		return ok
	case Bool:
		bv, ok := b.(Bool)
		return ok && av == bv
	case Number:
		bv, ok := b.(Number)
		return ok && av == bv
	case Str:
		bv, ok := b.(Str)
		return ok && av == bv
	default:
		// Function/Class/Instance/Native are all represented as
		// pointers, so Go's == on the Object interface compares
		// identity, exactly as spec §3 requires.
		return a == b
	}
}

// Stringify renders a value's print/display form, used by the `print`
// statement and by `+`'s mixed Number/String concatenation extension
// (spec §4.4).
func Stringify(o Object) string {
	return o.Inspect()
}

// RepeatString implements the `Number * String` extension from spec
// §4.4/§9: repeat s, truncating n toward zero; a non-positive count
// yields the empty string rather than panicking.
func RepeatString(s string, n Number) Str {
	count := int(n) // Go's float->int conversion truncates toward zero.
	if count < 0 {
		count = 0
	}
	return Str(strings.Repeat(s, count))
}
