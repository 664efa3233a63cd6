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

package substrait

import (
	"math"

	"github.com/WolverineJiang/gluten/go/glerrors"
	"github.com/WolverineJiang/gluten/go/gluten/types"
)

// EvalEnv is the evaluation context for a single row. It implements the
// backend's scalar primitive semantics for every function the rewrite
// layer emits: exclusive-end range with a non-zero-step precondition,
// 1-based element access, fold-style aggregate, and the usual arithmetic
// and comparison functions with null propagation.
type EvalEnv struct {
	Row       []types.Value
	Functions *FunctionMap

	lambda [][]types.Value
}

// Eval evaluates a node against the environment's row.
func (env *EvalEnv) Eval(n Node) (types.Value, error) {
	switch node := n.(type) {
	case *Literal:
		return node.Val, nil
	case *FieldRef:
		if node.Ordinal < 0 || node.Ordinal >= len(env.Row) {
			return types.Value{}, glerrors.Errorf(glerrors.InvalidArgument, "field ordinal %d out of range for a %d-column row", node.Ordinal, len(env.Row))
		}
		return env.Row[node.Ordinal], nil
	case *Cast:
		in, err := env.Eval(node.Input)
		if err != nil {
			return types.Value{}, err
		}
		return coerce(in, node.Output)
	case *IfThen:
		return env.evalIfThen(node)
	case *ScalarFunction:
		return env.evalFunction(node)
	case *LambdaArg:
		if len(env.lambda) == 0 {
			return types.Value{}, glerrors.New(glerrors.Internal, "lambda argument outside a fold")
		}
		frame := env.lambda[len(env.lambda)-1]
		if node.Ordinal < 0 || node.Ordinal >= len(frame) {
			return types.Value{}, glerrors.Errorf(glerrors.Internal, "lambda argument %d out of range", node.Ordinal)
		}
		return frame[node.Ordinal], nil
	case *Lambda:
		return types.Value{}, glerrors.New(glerrors.Internal, "lambda evaluated outside a fold argument position")
	default:
		return types.Value{}, glerrors.Errorf(glerrors.Unimplemented, "cannot evaluate node of type %T", n)
	}
}

// A null condition selects no clause, same as false.
func (env *EvalEnv) evalIfThen(node *IfThen) (types.Value, error) {
	for _, clause := range node.Clauses {
		cond, err := env.Eval(clause.Cond)
		if err != nil {
			return types.Value{}, err
		}
		if !cond.IsNull() && cond.ToBool() {
			v, err := env.Eval(clause.Then)
			if err != nil {
				return types.Value{}, err
			}
			return coerce(v, node.Output)
		}
	}
	v, err := env.Eval(node.Else)
	if err != nil {
		return types.Value{}, err
	}
	return coerce(v, node.Output)
}

func (env *EvalEnv) evalFunction(fn *ScalarFunction) (types.Value, error) {
	if env.Functions == nil {
		return types.Value{}, glerrors.New(glerrors.Internal, "no function map bound to the evaluation environment")
	}
	spec, err := env.Functions.FunctionSpec(fn.FunctionRef)
	if err != nil {
		return types.Value{}, err
	}
	name := BaseName(spec)

	// aggregate binds lambdas instead of evaluating them as arguments
	if name == "aggregate" {
		return env.evalAggregate(fn)
	}

	args := make([]types.Value, len(fn.Args))
	for i, arg := range fn.Args {
		if args[i], err = env.Eval(arg); err != nil {
			return types.Value{}, err
		}
	}

	switch name {
	case "is_null":
		return types.NewBoolValue(args[0].IsNull()), nil
	case "add", "subtract", "multiply", "modulus":
		return evalArithmetic(name, args[0], args[1], fn.Output)
	case "equal", "lt", "lte", "gt", "gte":
		return evalComparison(name, args[0], args[1], fn.Output)
	case "range":
		return evalRange(args[0], args[1], args[2], fn.Output)
	case "element_at":
		return evalElementAt(args[0], args[1], fn.Output)
	case "array":
		return evalArrayConstructor(args, fn.Output)
	case "array_distinct":
		return evalArrayDistinct(args[0], fn.Output)
	default:
		return types.Value{}, glerrors.Errorf(glerrors.Unimplemented, "no evaluator for function '%s'", name)
	}
}

func (env *EvalEnv) evalAggregate(fn *ScalarFunction) (types.Value, error) {
	if len(fn.Args) != 4 {
		return types.Value{}, glerrors.Errorf(glerrors.InvalidArgument, "aggregate requires four arguments, got %d", len(fn.Args))
	}
	merge, ok := fn.Args[2].(*Lambda)
	if !ok {
		return types.Value{}, glerrors.New(glerrors.Internal, "aggregate merge argument is not a lambda")
	}
	finish, ok := fn.Args[3].(*Lambda)
	if !ok {
		return types.Value{}, glerrors.New(glerrors.Internal, "aggregate finish argument is not a lambda")
	}

	arr, err := env.Eval(fn.Args[0])
	if err != nil {
		return types.Value{}, err
	}
	if arr.IsNull() {
		return types.NullValue(fn.Output), nil
	}
	acc, err := env.Eval(fn.Args[1])
	if err != nil {
		return types.Value{}, err
	}

	for _, el := range arr.List() {
		env.lambda = append(env.lambda, []types.Value{acc, el})
		acc, err = env.Eval(merge.Body)
		env.lambda = env.lambda[:len(env.lambda)-1]
		if err != nil {
			return types.Value{}, err
		}
	}

	env.lambda = append(env.lambda, []types.Value{acc})
	out, err := env.Eval(finish.Body)
	env.lambda = env.lambda[:len(env.lambda)-1]
	if err != nil {
		return types.Value{}, err
	}
	return coerce(out, fn.Output)
}

// coerce rebinds a value to a target type: nullability changes, integer
// widening and int-to-float conversion. A null cannot be coerced to a
// non-nullable type.
func coerce(v types.Value, t types.Type) (types.Value, error) {
	if v.IsNull() {
		if !t.Nullable {
			return types.Value{}, glerrors.Errorf(glerrors.FailedPrecondition, "cannot coerce null to non-nullable %s", t)
		}
		return types.NullValue(t), nil
	}
	if t.IsFloat() && v.Type().IsInteger() {
		return types.NewFloat64Value(v.Float64()).WithType(t), nil
	}
	return v.WithType(t), nil
}

func evalArithmetic(name string, left, right types.Value, out types.Type) (types.Value, error) {
	if left.IsNull() || right.IsNull() {
		return types.NullValue(out), nil
	}
	if left.Type().IsFloat() || right.Type().IsFloat() {
		a, b := left.Float64(), right.Float64()
		var r float64
		switch name {
		case "add":
			r = a + b
		case "subtract":
			r = a - b
		case "multiply":
			r = a * b
		case "modulus":
			r = math.Mod(a, b)
		}
		return coerce(types.NewFloat64Value(r), out)
	}
	a, b := left.Int64(), right.Int64()
	var r int64
	switch name {
	case "add":
		r = a + b
	case "subtract":
		r = a - b
	case "multiply":
		r = a * b
	case "modulus":
		if b == 0 {
			return types.Value{}, glerrors.New(glerrors.InvalidArgument, "modulo by zero")
		}
		r = a % b
	}
	return coerce(types.NewInt64Value(r), out)
}

func evalComparison(name string, left, right types.Value, out types.Type) (types.Value, error) {
	if left.IsNull() || right.IsNull() {
		return types.NullValue(out), nil
	}
	var cmp int
	switch {
	case left.Type().IsFloat() || right.Type().IsFloat():
		a, b := left.Float64(), right.Float64()
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	case left.Type().Kind == types.String:
		a, b := left.Str(), right.Str()
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	case left.Type().Kind == types.Bool:
		a, b := left.ToBool(), right.ToBool()
		switch {
		case !a && b:
			cmp = -1
		case a && !b:
			cmp = 1
		}
	default:
		a, b := left.Int64(), right.Int64()
		switch {
		case a < b:
			cmp = -1
		case a > b:
			cmp = 1
		}
	}
	var r bool
	switch name {
	case "equal":
		r = cmp == 0
	case "lt":
		r = cmp < 0
	case "lte":
		r = cmp <= 0
	case "gt":
		r = cmp > 0
	case "gte":
		r = cmp >= 0
	}
	return coerce(types.NewBoolValue(r), out)
}

// evalRange implements the backend's generator: end-exclusive, and the
// step must not be zero.
func evalRange(start, end, step types.Value, out types.Type) (types.Value, error) {
	if start.IsNull() || end.IsNull() || step.IsNull() {
		return types.NullValue(out), nil
	}
	s := step.Int64()
	if s == 0 {
		return types.Value{}, glerrors.New(glerrors.FailedPrecondition, "range: step must not be zero")
	}
	elem := out.ElemType()
	var vals []types.Value
	if s > 0 {
		for cur := start.Int64(); cur < end.Int64(); cur += s {
			vals = append(vals, types.NewIntValue(elem.Kind, cur))
		}
	} else {
		for cur := start.Int64(); cur > end.Int64(); cur += s {
			vals = append(vals, types.NewIntValue(elem.Kind, cur))
		}
	}
	return coerce(types.NewListValue(elem, vals), out)
}

// evalElementAt implements 1-based element access; an out-of-range index
// yields null.
func evalElementAt(arr, idx types.Value, out types.Type) (types.Value, error) {
	if arr.IsNull() || idx.IsNull() {
		return types.NullValue(out), nil
	}
	vals := arr.List()
	i := idx.Int64()
	if i < 1 || i > int64(len(vals)) {
		return types.NullValue(out), nil
	}
	return coerce(vals[i-1], out)
}

// evalArrayDistinct drops duplicate elements. The first occurrence of
// every value survives in input order, and the first null survives with
// it; null is one distinct value, not a discard.
func evalArrayDistinct(arr types.Value, out types.Type) (types.Value, error) {
	if arr.IsNull() {
		return types.NullValue(out), nil
	}
	elem := out.ElemType()
	in := arr.List()
	vals := make([]types.Value, 0, len(in))
elements:
	for _, el := range in {
		for _, kept := range vals {
			if kept.Equal(el) {
				continue elements
			}
		}
		keep, err := coerce(el, elem)
		if err != nil {
			return types.Value{}, err
		}
		vals = append(vals, keep)
	}
	return coerce(types.NewListValue(elem, vals), out)
}

func evalArrayConstructor(args []types.Value, out types.Type) (types.Value, error) {
	elem := out.ElemType()
	vals := make([]types.Value, len(args))
	for i, arg := range args {
		el, err := coerce(arg, elem)
		if err != nil {
			return types.Value{}, err
		}
		vals[i] = el
	}
	return coerce(types.NewListValue(elem, vals), out)
}
