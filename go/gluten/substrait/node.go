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

// Package substrait defines the portable intermediate representation the
// rewrite layer emits: typed expression nodes referencing functions by
// numeric anchor, a per-plan function registry, a text formatter, a binary
// wire codec, and a reference evaluator for the backend's scalar
// primitives.
//
// Nodes are immutable once constructed. Parents hold references to their
// children; nothing rewrites a node after it has been emitted.
package substrait

import (
	"github.com/WolverineJiang/gluten/go/gluten/types"
)

type (
	// Node is a node in the portable expression tree.
	Node interface {
		// ResultType is the declared output type of the node.
		ResultType() types.Type

		format(f *formatter, depth int)
	}

	// ScalarFunction invokes a backend function resolved through the
	// plan's FunctionMap.
	ScalarFunction struct {
		FunctionRef uint32
		Args        []Node
		Output      types.Type
	}

	// Literal is a typed constant, nulls included.
	Literal struct {
		Val types.Value
	}

	// FieldRef reads an input column by ordinal.
	FieldRef struct {
		Ordinal int
		Output  types.Type
	}

	// IfClause is one (condition, value) pair of an IfThen chain.
	IfClause struct {
		Cond Node
		Then Node
	}

	// IfThen is an ordered conditional chain: the first clause whose
	// condition evaluates to true selects the result, otherwise Else does.
	// The clause order is part of the node's meaning; translators rely on
	// it to make null short-circuiting observable.
	IfThen struct {
		Clauses []IfClause
		Else    Node
		Output  types.Type
	}

	// Cast coerces its input to the output type. Casting a null to a
	// non-nullable type is an evaluation-time error.
	Cast struct {
		Input  Node
		Output types.Type
	}

	// Lambda is a bound subexpression passed to fold-style primitives.
	// Its body refers to the bound values through LambdaArg nodes.
	Lambda struct {
		Params []types.Type
		Body   Node
	}

	// LambdaArg reads a bound value of the innermost enclosing Lambda.
	LambdaArg struct {
		Ordinal int
		Output  types.Type
	}
)

func (f *ScalarFunction) ResultType() types.Type { return f.Output }
func (l *Literal) ResultType() types.Type        { return l.Val.Type() }
func (f *FieldRef) ResultType() types.Type       { return f.Output }
func (c *IfThen) ResultType() types.Type         { return c.Output }
func (c *Cast) ResultType() types.Type           { return c.Output }
func (l *Lambda) ResultType() types.Type         { return l.Body.ResultType() }
func (a *LambdaArg) ResultType() types.Type      { return a.Output }

// NewLiteral wraps a value as a literal node.
func NewLiteral(v types.Value) *Literal {
	return &Literal{Val: v}
}

// NewNullLiteral builds a null literal of the given type.
func NewNullLiteral(t types.Type) *Literal {
	return &Literal{Val: types.NullValue(t)}
}
