package container

import (
	"fmt"
	"reflect"
)

var errorType = reflect.TypeOf((*error)(nil)).Elem()

// Class is a constructible type: a named constructor whose parameters are
// satisfied positionally by the tokens recorded for it in a Metadata store.
//
// A *Class is also a Token. Resolving an unregistered class token builds it
// with Singleton scope.
type Class struct {
	name string
	ctor reflect.Value
}

// NewClass wraps constructor as a Class.
//
// constructor must be a func returning either a single value or a value
// and an error. When name is empty the constructor's result type is used.
//
//	loggerClass, err := container.NewClass("Logger", NewLogger)
func NewClass(name string, constructor any) (*Class, error) {
	if constructor == nil {
		return nil, invalidClassError(name, "constructor is nil")
	}
	v := reflect.ValueOf(constructor)
	t := v.Type()
	if t.Kind() != reflect.Func {
		return nil, invalidClassError(name, fmt.Sprintf("constructor is %s, not a func", t))
	}
	if v.IsNil() {
		return nil, invalidClassError(name, "constructor is nil")
	}
	switch {
	case t.NumOut() == 1:
	case t.NumOut() == 2 && t.Out(1) == errorType:
	default:
		return nil, invalidClassError(name, fmt.Sprintf("constructor %s must return T or (T, error)", t))
	}
	if name == "" {
		name = t.Out(0).String()
	}
	return &Class{name: name, ctor: v}, nil
}

// MustClass is like NewClass but panics on error. It is meant for
// package-level class declarations.
func MustClass(name string, constructor any) *Class {
	c, err := NewClass(name, constructor)
	if err != nil {
		panic(err)
	}
	return c
}

// Name returns the class name.
func (c *Class) Name() string { return c.name }

// Arity returns the number of constructor parameters. For variadic
// constructors the variadic slot is counted once.
func (c *Class) Arity() int { return c.ctor.Type().NumIn() }

func (c *Class) String() string {
	if c == nil {
		return "Class(<nil>)"
	}
	return "Class(" + c.name + ")"
}

func (*Class) isToken() {}

// construct calls the constructor with args as positional arguments.
func (c *Class) construct(args []any) (any, error) {
	t := c.ctor.Type()
	n := t.NumIn()

	if t.IsVariadic() {
		if len(args) < n-1 {
			return nil, arityError(c, n-1, len(args), true)
		}
	} else if len(args) != n {
		return nil, arityError(c, n, len(args), false)
	}

	in := make([]reflect.Value, len(args))
	for i, arg := range args {
		pt := paramType(t, i)
		if arg == nil {
			in[i] = reflect.Zero(pt)
			continue
		}
		av := reflect.ValueOf(arg)
		if !av.Type().AssignableTo(pt) {
			return nil, &Error{
				Kind:  ErrConstruction,
				Token: c,
				Msg:   fmt.Sprintf("class %s: argument %d is %s, constructor wants %s", c.name, i, av.Type(), pt),
			}
		}
		in[i] = av
	}

	out := c.ctor.Call(in)
	if len(out) == 2 && !out[1].IsNil() {
		cause := out[1].Interface().(error)
		return nil, &Error{
			Kind:  ErrConstruction,
			Token: c,
			Msg:   fmt.Sprintf("class %s: constructor failed: %v", c.name, cause),
			Err:   cause,
		}
	}
	return out[0].Interface(), nil
}

// paramType returns the type expected for positional argument i.
func paramType(t reflect.Type, i int) reflect.Type {
	if t.IsVariadic() && i >= t.NumIn()-1 {
		return t.In(t.NumIn() - 1).Elem()
	}
	return t.In(i)
}

func arityError(c *Class, want, got int, variadic bool) *Error {
	qualifier := ""
	if variadic {
		qualifier = "at least "
	}
	return &Error{
		Kind:  ErrConstruction,
		Token: c,
		Msg: fmt.Sprintf("class %s: constructor takes %s%d arguments, %d dependencies declared",
			c.name, qualifier, want, got),
	}
}
