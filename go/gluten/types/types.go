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

// Package types defines the semantic type descriptors shared by the host
// expression tree and the portable plan representation. A Type carries a
// kind, a nullability flag and, for lists, an element type. Types are
// immutable values; the derived constructors return copies.
package types

import (
	"strings"

	"github.com/WolverineJiang/gluten/go/glerrors"
)

// Kind is the semantic kind of a type.
type Kind uint8

const (
	Unknown Kind = iota
	Bool
	Int8
	Int16
	Int32
	Int64
	Float32
	Float64
	String
	Binary
	Date
	Timestamp
	List
)

// Type describes a value's semantic type and nullability.
type Type struct {
	Kind     Kind
	Nullable bool

	// Elem is the element type for List; nil otherwise.
	Elem *Type
}

func New(kind Kind) Type {
	return Type{Kind: kind}
}

func NewNullable(kind Kind) Type {
	return Type{Kind: kind, Nullable: true}
}

// NewList builds a non-nullable list type with the given element type.
func NewList(elem Type) Type {
	return Type{Kind: List, Elem: &elem}
}

// AsNullable returns a copy of t with the nullability flag set. The element
// type of a list is shared, never copied; types are immutable so sharing is
// safe.
func (t Type) AsNullable() Type {
	t.Nullable = true
	return t
}

// AsNonNullable returns a copy of t with the nullability flag cleared.
func (t Type) AsNonNullable() Type {
	t.Nullable = false
	return t
}

func (t Type) IsInteger() bool {
	switch t.Kind {
	case Int8, Int16, Int32, Int64:
		return true
	}
	return false
}

func (t Type) IsFloat() bool {
	return t.Kind == Float32 || t.Kind == Float64
}

func (t Type) IsNumeric() bool {
	return t.IsInteger() || t.IsFloat()
}

// ElemType returns the element type of a list. It panics if t is not a
// list; callers dispatch on Kind first.
func (t Type) ElemType() Type {
	if t.Kind != List || t.Elem == nil {
		panic("types: ElemType called on non-list type")
	}
	return *t.Elem
}

var shortNames = map[Kind]string{
	Bool:      "bool",
	Int8:      "i8",
	Int16:     "i16",
	Int32:     "i32",
	Int64:     "i64",
	Float32:   "fp32",
	Float64:   "fp64",
	String:    "str",
	Binary:    "vbin",
	Date:      "date",
	Timestamp: "ts",
}

// ShortName renders the type in the compact form used inside compound
// function signatures: i32, fp64, str, list<i64>. Nullability is not part
// of a signature.
func (t Type) ShortName() string {
	if t.Kind == List {
		return "list<" + t.ElemType().ShortName() + ">"
	}
	if name, ok := shortNames[t.Kind]; ok {
		return name
	}
	return "unknown"
}

// String renders the type for diagnostics, with a trailing '?' marking
// nullability.
func (t Type) String() string {
	if t.Nullable {
		return t.ShortName() + "?"
	}
	return t.ShortName()
}

var kindsByShortName = func() map[string]Kind {
	m := make(map[string]Kind, len(shortNames))
	for kind, name := range shortNames {
		m[name] = kind
	}
	return m
}()

// ParseShortName is the inverse of ShortName. List types nest:
// list<list<i32>>.
func ParseShortName(s string) (Type, error) {
	if inner, ok := strings.CutPrefix(s, "list<"); ok {
		inner, ok = strings.CutSuffix(inner, ">")
		if !ok {
			return Type{}, glerrors.Errorf(glerrors.InvalidArgument, "malformed list type name: '%s'", s)
		}
		elem, err := ParseShortName(inner)
		if err != nil {
			return Type{}, err
		}
		return NewList(elem), nil
	}
	kind, ok := kindsByShortName[s]
	if !ok {
		return Type{}, glerrors.Errorf(glerrors.InvalidArgument, "unknown type name: '%s'", s)
	}
	return New(kind), nil
}

// Equal compares kind, nullability and element types.
func (t Type) Equal(other Type) bool {
	if t.Kind != other.Kind || t.Nullable != other.Nullable {
		return false
	}
	if t.Kind == List {
		return t.ElemType().Equal(other.ElemType())
	}
	return true
}

var numericRank = map[Kind]int{
	Int8:    1,
	Int16:   2,
	Int32:   3,
	Int64:   4,
	Float32: 5,
	Float64: 6,
}

// Promote picks the output type for a binary arithmetic operation: the
// wider of two numeric operands, nullable when either operand is. For
// non-numeric operands of equal kind it returns that kind; any other mix
// has no defined promotion and yields Unknown.
func Promote(a, b Type) Type {
	out := a
	if numericRank[b.Kind] > numericRank[a.Kind] {
		out = b
	}
	if a.Kind != b.Kind && (numericRank[a.Kind] == 0 || numericRank[b.Kind] == 0) {
		out.Kind = Unknown
	}
	out.Nullable = a.Nullable || b.Nullable
	return out
}
