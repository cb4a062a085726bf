// Package models defines the in-memory representation of a JSON document.
//
// A document is a finite tree of Value nodes. The variant set is closed:
// Null, Bool, Number, String, Array, and Object. Objects keep their members
// in insertion order, which is what makes merge and diff output
// deterministic. Values are never mutated after construction; every
// operation in this module builds new trees and may freely share unchanged
// subtrees between input and output.
package models

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Kind discriminates the variants of a Value.
type Kind int

const (
	KindNull Kind = iota
	KindBool
	KindNumber
	KindString
	KindArray
	KindObject
)

var kindNames = [...]string{
	KindNull:   "null",
	KindBool:   "boolean",
	KindNumber: "number",
	KindString: "string",
	KindArray:  "array",
	KindObject: "object",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "invalid"
}

// A Value is an arbitrary JSON value.
type Value interface{ Kind() Kind }

// Null represents the null constant.
type Null struct{}

// Kind satisfies the Value interface.
func (Null) Kind() Kind { return KindNull }

// Bool is a Boolean constant, true or false.
type Bool bool

// Kind satisfies the Value interface.
func (Bool) Kind() Kind { return KindBool }

// String is a string value.
type String string

// Kind satisfies the Value interface.
func (String) Kind() Kind { return KindString }

// A Number is a numeric value. It records the literal text of the number so
// that formatting can reproduce the source spelling exactly, along with
// whether the literal is integral. Integer and floating spellings of the
// same quantity compare equal, but render differently.
type Number struct {
	text  string
	isInt bool
}

// Kind satisfies the Value interface.
func (Number) Kind() Kind { return KindNumber }

// Int returns a Number holding the integer v.
func Int(v int64) Number {
	return Number{text: strconv.FormatInt(v, 10), isInt: true}
}

// Float returns a Number holding the floating-point quantity v. The stored
// literal is the shortest decimal spelling that parses back to v.
func Float(v float64) Number {
	return Number{text: strconv.FormatFloat(v, 'g', -1, 64)}
}

// NumberFromLiteral constructs a Number from a JSON numeric literal, such as
// produced by a json.Number. It reports an error if text is not a valid
// numeric literal.
func NumberFromLiteral(text string) (Number, error) {
	if _, err := strconv.ParseFloat(text, 64); err != nil {
		return Number{}, err
	}
	return Number{text: text, isInt: !strings.ContainsAny(text, ".eE")}, nil
}

// IsInt reports whether the number was written as an integer literal.
func (n Number) IsInt() bool { return n.isInt }

// Int64 returns the value of an integer literal. It panics if the literal
// does not fit in an int64; callers should check IsInt first.
func (n Number) Int64() int64 {
	v, err := strconv.ParseInt(n.text, 10, 64)
	if err != nil {
		panic(err)
	}
	return v
}

// Float64 returns the numeric value of the literal.
func (n Number) Float64() float64 {
	v, err := strconv.ParseFloat(n.text, 64)
	if err != nil {
		panic(err)
	}
	return v
}

// String returns the literal text of the number.
func (n Number) String() string { return n.text }

func (n Number) equal(m Number) bool {
	if n.text == m.text {
		return true
	}
	if n.isInt && m.isInt {
		a, aerr := strconv.ParseInt(n.text, 10, 64)
		b, berr := strconv.ParseInt(m.text, 10, 64)
		if aerr == nil && berr == nil {
			return a == b
		}
	}
	return n.Float64() == m.Float64()
}

// An Array is an ordered sequence of values.
type Array []Value

// Kind satisfies the Value interface.
func (Array) Kind() Kind { return KindArray }

// Len returns the number of elements in a.
func (a Array) Len() int { return len(a) }

// A Member is a single key-value pair belonging to an Object.
type Member struct {
	Key   string
	Value Value
}

// Field constructs an object member with the given key and value.
func Field(key string, v Value) Member { return Member{Key: key, Value: v} }

// An Object is an ordered collection of key-value members. Keys are unique
// within one object; construction through the parser and the merge
// operation maintains that invariant.
type Object []Member

// Kind satisfies the Value interface.
func (Object) Kind() Kind { return KindObject }

// Len returns the number of members in o.
func (o Object) Len() int { return len(o) }

// Find returns the value of the member of o with the given key, and reports
// whether the key was present.
func (o Object) Find(key string) (Value, bool) {
	for _, m := range o {
		if m.Key == key {
			return m.Value, true
		}
	}
	return nil, false
}

// Has reports whether o contains a member with the given key.
func (o Object) Has(key string) bool {
	_, ok := o.Find(key)
	return ok
}

// Keys returns the keys of o in stored order.
func (o Object) Keys() []string {
	keys := make([]string, len(o))
	for i, m := range o {
		keys[i] = m.Key
	}
	return keys
}

// Equal reports whether a and b are structurally equal: the same variant at
// every position, the same object keys in the same order, the same array
// lengths, and equal primitive values. Numbers compare by numeric value.
func Equal(a, b Value) bool {
	if a.Kind() != b.Kind() {
		return false
	}
	switch t := a.(type) {
	case Null:
		return true
	case Bool:
		return t == b.(Bool)
	case Number:
		return t.equal(b.(Number))
	case String:
		return t == b.(String)
	case Array:
		u := b.(Array)
		if len(t) != len(u) {
			return false
		}
		for i := range t {
			if !Equal(t[i], u[i]) {
				return false
			}
		}
		return true
	case Object:
		u := b.(Object)
		if len(t) != len(u) {
			return false
		}
		for i := range t {
			if t[i].Key != u[i].Key || !Equal(t[i].Value, u[i].Value) {
				return false
			}
		}
		return true
	}
	return false
}

// ToGo converts v into plain Go values: nil, bool, json.Number, string,
// []any, and map[string]any. Object member order is lost; use this only at
// boundaries with collaborators that expect decoded JSON, such as the
// schema validator.
func ToGo(v Value) any {
	switch t := v.(type) {
	case Null:
		return nil
	case Bool:
		return bool(t)
	case Number:
		return json.Number(t.text)
	case String:
		return string(t)
	case Array:
		out := make([]any, len(t))
		for i, elt := range t {
			out[i] = ToGo(elt)
		}
		return out
	case Object:
		out := make(map[string]any, len(t))
		for _, m := range t {
			out[m.Key] = ToGo(m.Value)
		}
		return out
	}
	return nil
}

// FromGo converts decoded JSON data (as produced by encoding/json with
// UseNumber) into a Value. Map iteration order is not deterministic, so
// trees built this way get arbitrary object member order; prefer the parser
// package when order matters.
func FromGo(v any) (Value, error) {
	switch t := v.(type) {
	case nil:
		return Null{}, nil
	case bool:
		return Bool(t), nil
	case string:
		return String(t), nil
	case json.Number:
		return NumberFromLiteral(string(t))
	case float64:
		return Float(t), nil
	case int:
		return Int(int64(t)), nil
	case int64:
		return Int(t), nil
	case []any:
		out := make(Array, len(t))
		for i, elt := range t {
			ev, err := FromGo(elt)
			if err != nil {
				return nil, err
			}
			out[i] = ev
		}
		return out, nil
	case map[string]any:
		out := make(Object, 0, len(t))
		for key, elt := range t {
			ev, err := FromGo(elt)
			if err != nil {
				return nil, err
			}
			out = append(out, Field(key, ev))
		}
		return out, nil
	}
	return nil, fmt.Errorf("unsupported value type %T", v)
}
