/*
Copyright 2026 The Gluten Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package types

import (
	"strconv"
	"strings"
)

// Value is a typed runtime datum. It backs literals in both expression
// trees, the reference evaluator, and the row format of the storage
// adapters. The zero Value is an untyped null.
//
// Integral kinds are stored as int64, floats as float64, regardless of
// width; the Type records the declared width.
type Value struct {
	typ Type
	v   any // nil | bool | int64 | float64 | string | []byte | []Value
}

// NullValue builds a null of the given type. The type is forced nullable:
// a null of a non-nullable type is not representable.
func NullValue(t Type) Value {
	return Value{typ: t.AsNullable()}
}

func NewBoolValue(b bool) Value {
	return Value{typ: New(Bool), v: b}
}

func NewIntValue(kind Kind, i int64) Value {
	return Value{typ: New(kind), v: i}
}

func NewInt32Value(i int32) Value {
	return NewIntValue(Int32, int64(i))
}

func NewInt64Value(i int64) Value {
	return NewIntValue(Int64, i)
}

func NewFloat64Value(f float64) Value {
	return Value{typ: New(Float64), v: f}
}

func NewStringValue(s string) Value {
	return Value{typ: New(String), v: s}
}

func NewBinaryValue(b []byte) Value {
	return Value{typ: New(Binary), v: b}
}

// NewListValue builds a list value; elem is the declared element type,
// which may differ in nullability from the individual entries.
func NewListValue(elem Type, vals []Value) Value {
	return Value{typ: NewList(elem), v: vals}
}

// EmptyListValue is a non-null list literal with zero entries.
func EmptyListValue(elem Type) Value {
	return NewListValue(elem, []Value{})
}

func (v Value) Type() Type {
	return v.typ
}

func (v Value) IsNull() bool {
	return v.v == nil
}

// WithType rebinds the value to another type descriptor without touching
// the payload. Used for nullability coercion and integer widening, where
// the stored representation is already wide enough.
func (v Value) WithType(t Type) Value {
	v.typ = t
	return v
}

// ToBool returns the boolean payload; false for null.
func (v Value) ToBool() bool {
	b, _ := v.v.(bool)
	return b
}

func (v Value) Int64() int64 {
	i, _ := v.v.(int64)
	return i
}

func (v Value) Float64() float64 {
	switch n := v.v.(type) {
	case float64:
		return n
	case int64:
		return float64(n)
	}
	return 0
}

func (v Value) Str() string {
	s, _ := v.v.(string)
	return s
}

func (v Value) Bytes() []byte {
	b, _ := v.v.([]byte)
	return b
}

func (v Value) List() []Value {
	l, _ := v.v.([]Value)
	return l
}

// Equal compares kind, null state and payload. Declared nullability is
// ignored so that a coerced value still compares equal to its source.
func (v Value) Equal(other Value) bool {
	if v.typ.Kind != other.typ.Kind {
		return false
	}
	if v.IsNull() || other.IsNull() {
		return v.IsNull() == other.IsNull()
	}
	switch v.typ.Kind {
	case List:
		a, b := v.List(), other.List()
		if len(a) != len(b) {
			return false
		}
		for i := range a {
			if !a[i].Equal(b[i]) {
				return false
			}
		}
		return true
	case Binary:
		return string(v.Bytes()) == string(other.Bytes())
	default:
		return v.v == other.v
	}
}

func (v Value) String() string {
	if v.IsNull() {
		return "null"
	}
	switch v.typ.Kind {
	case Bool:
		return strconv.FormatBool(v.ToBool())
	case Float32, Float64:
		return strconv.FormatFloat(v.Float64(), 'g', -1, 64)
	case String:
		return "'" + v.Str() + "'"
	case Binary:
		return "x'" + string(v.Bytes()) + "'"
	case List:
		var buf strings.Builder
		buf.WriteByte('[')
		for i, el := range v.List() {
			if i > 0 {
				buf.WriteString(", ")
			}
			buf.WriteString(el.String())
		}
		buf.WriteByte(']')
		return buf.String()
	default:
		return strconv.FormatInt(v.Int64(), 10)
	}
}
