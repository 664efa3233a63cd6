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

// Package sparkexpr models the host engine's expression trees as the
// plugin receives them: already resolved and type-checked, with function
// calls identified by lowered name. The trees are immutable; the rewrite
// layer only reads them.
package sparkexpr

import (
	"fmt"
	"strings"

	"github.com/WolverineJiang/gluten/go/gluten/types"
)

type (
	// Expr is a node of the host expression tree.
	Expr interface {
		// Type is the host-declared semantic type of the node.
		Type() types.Type

		Format(buf *strings.Builder)
	}

	// Literal is a host constant.
	Literal struct {
		Val types.Value
	}

	// ColName is an input column already resolved to an ordinal.
	ColName struct {
		Name    string
		Ordinal int
		Typ     types.Type
	}

	// CallOptions are the call-site flags the host attaches to a function
	// occurrence.
	CallOptions struct {
		// FailOnError is the host's strict evaluation mode for indexing
		// operations. It is not forwarded to the backend.
		FailOnError bool
	}

	// FuncExpr is a function call with a lowered name, typed arguments and
	// a host-declared result type.
	FuncExpr struct {
		Name    string
		Args    []Expr
		Typ     types.Type
		Options CallOptions
	}

	// Lambda is a higher-order function argument with positionally bound
	// variables.
	Lambda struct {
		Params []*LambdaVar
		Body   Expr
	}

	// LambdaVar is a reference to a bound variable of the enclosing
	// Lambda.
	LambdaVar struct {
		Name    string
		Ordinal int
		Typ     types.Type
	}
)

func (l *Literal) Type() types.Type   { return l.Val.Type() }
func (c *ColName) Type() types.Type   { return c.Typ }
func (f *FuncExpr) Type() types.Type  { return f.Typ }
func (l *Lambda) Type() types.Type    { return l.Body.Type() }
func (v *LambdaVar) Type() types.Type { return v.Typ }

func (l *Literal) Format(buf *strings.Builder) {
	buf.WriteString(l.Val.String())
}

func (c *ColName) Format(buf *strings.Builder) {
	if c.Name != "" {
		buf.WriteString(c.Name)
		return
	}
	fmt.Fprintf(buf, "[COLUMN %d]", c.Ordinal)
}

func (f *FuncExpr) Format(buf *strings.Builder) {
	buf.WriteString(f.Name)
	buf.WriteByte('(')
	for i, arg := range f.Args {
		if i > 0 {
			buf.WriteString(", ")
		}
		arg.Format(buf)
	}
	buf.WriteByte(')')
}

func (l *Lambda) Format(buf *strings.Builder) {
	buf.WriteByte('(')
	for i, p := range l.Params {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(p.Name)
	}
	buf.WriteString(") -> ")
	l.Body.Format(buf)
}

func (v *LambdaVar) Format(buf *strings.Builder) {
	buf.WriteString(v.Name)
}

// String renders the expression for error messages and diagnostics.
func String(e Expr) string {
	var buf strings.Builder
	e.Format(&buf)
	return buf.String()
}
