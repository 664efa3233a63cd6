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
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/WolverineJiang/gluten/go/glerrors"
	"github.com/WolverineJiang/gluten/go/gluten/types"
)

type evalFixture struct {
	fm  *FunctionMap
	env *EvalEnv
}

func newEvalFixture() *evalFixture {
	fm := NewFunctionMap()
	return &evalFixture{fm: fm, env: &EvalEnv{Functions: fm}}
}

func (f *evalFixture) call(name string, out types.Type, args ...Node) *ScalarFunction {
	argTypes := make([]types.Type, len(args))
	for i, arg := range args {
		argTypes[i] = arg.ResultType()
	}
	return &ScalarFunction{
		FunctionRef: f.fm.Anchor(name, argTypes),
		Args:        args,
		Output:      out,
	}
}

func i64(v int64) *Literal { return NewLiteral(types.NewInt64Value(v)) }

func i64ListValue(vals ...int64) types.Value {
	elems := make([]types.Value, len(vals))
	for i, v := range vals {
		elems[i] = types.NewInt64Value(v)
	}
	return types.NewListValue(types.New(types.Int64), elems)
}

func TestEvalRange(t *testing.T) {
	f := newEvalFixture()
	listT := types.NewList(types.New(types.Int64))

	type testCase struct {
		name             string
		start, end, step int64
		want             types.Value
	}
	tests := []testCase{
		{name: "exclusive end", start: 1, end: 10, step: 2, want: i64ListValue(1, 3, 5, 7, 9)},
		{name: "end itself is excluded", start: 1, end: 9, step: 2, want: i64ListValue(1, 3, 5, 7)},
		{name: "descending", start: 5, end: 0, step: -1, want: i64ListValue(5, 4, 3, 2, 1)},
		{name: "empty when start beyond end", start: 5, end: 1, step: 1, want: i64ListValue()},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got, err := f.env.Eval(f.call("range", listT, i64(tc.start), i64(tc.end), i64(tc.step)))
			require.NoError(t, err)
			require.True(t, got.Equal(tc.want), "got %s, want %s", got, tc.want)
		})
	}
}

func TestEvalRangeZeroStep(t *testing.T) {
	f := newEvalFixture()
	listT := types.NewList(types.New(types.Int64))
	_, err := f.env.Eval(f.call("range", listT, i64(1), i64(10), i64(0)))
	require.ErrorContains(t, err, "step must not be zero")
	require.Equal(t, glerrors.FailedPrecondition, glerrors.CodeOf(err))
}

func TestEvalElementAt(t *testing.T) {
	f := newEvalFixture()
	arr := NewLiteral(i64ListValue(10, 20, 30))
	out := types.NewNullable(types.Int64)

	got, err := f.env.Eval(f.call("element_at", out, arr, i64(1)))
	require.NoError(t, err)
	require.True(t, got.Equal(types.NewInt64Value(10)))

	got, err = f.env.Eval(f.call("element_at", out, arr, i64(3)))
	require.NoError(t, err)
	require.True(t, got.Equal(types.NewInt64Value(30)))

	for _, idx := range []int64{0, 4, -1} {
		got, err = f.env.Eval(f.call("element_at", out, arr, i64(idx)))
		require.NoError(t, err)
		require.True(t, got.IsNull(), "index %d: got %s, want null", idx, got)
	}
}

func TestEvalArrayDistinct(t *testing.T) {
	f := newEvalFixture()
	elem := types.NewNullable(types.Int64)
	listT := types.NewList(elem)
	null := types.NullValue(types.New(types.Int64))

	in := NewLiteral(types.NewListValue(elem, []types.Value{
		types.NewInt64Value(1), null, types.NewInt64Value(2),
		null, types.NewInt64Value(3), types.NewInt64Value(3),
	}))
	got, err := f.env.Eval(f.call("array_distinct", listT, in))
	require.NoError(t, err)

	want := types.NewListValue(elem, []types.Value{
		types.NewInt64Value(1), null, types.NewInt64Value(2), types.NewInt64Value(3),
	})
	require.True(t, got.Equal(want), "got %s, want %s", got, want)

	// a null array stays null, an empty array stays empty
	got, err = f.env.Eval(f.call("array_distinct", listT.AsNullable(), NewNullLiteral(listT)))
	require.NoError(t, err)
	require.True(t, got.IsNull())

	got, err = f.env.Eval(f.call("array_distinct", listT, NewLiteral(types.EmptyListValue(elem))))
	require.NoError(t, err)
	require.True(t, got.Equal(types.EmptyListValue(elem)))
}

func TestEvalArithmeticNullPropagation(t *testing.T) {
	f := newEvalFixture()
	out := types.NewNullable(types.Int64)
	null := NewNullLiteral(types.New(types.Int64))

	got, err := f.env.Eval(f.call("add", out, i64(1), null))
	require.NoError(t, err)
	require.True(t, got.IsNull())

	_, err = f.env.Eval(f.call("modulus", types.New(types.Int64), i64(1), i64(0)))
	require.ErrorContains(t, err, "modulo by zero")
}

// A null condition selects no clause, exactly like false.
func TestEvalIfThenNullCondition(t *testing.T) {
	f := newEvalFixture()
	nullBool := NewNullLiteral(types.New(types.Bool))
	chain := &IfThen{
		Clauses: []IfClause{
			{Cond: nullBool, Then: i64(1)},
			{Cond: NewLiteral(types.NewBoolValue(false)), Then: i64(2)},
			{Cond: NewLiteral(types.NewBoolValue(true)), Then: i64(3)},
		},
		Else:   i64(4),
		Output: types.New(types.Int64),
	}
	got, err := f.env.Eval(chain)
	require.NoError(t, err)
	require.True(t, got.Equal(types.NewInt64Value(3)))
}

func TestEvalCastNullToNonNullable(t *testing.T) {
	f := newEvalFixture()
	cast := &Cast{
		Input:  NewNullLiteral(types.New(types.Int64)),
		Output: types.New(types.Int64),
	}
	_, err := f.env.Eval(cast)
	require.Equal(t, glerrors.FailedPrecondition, glerrors.CodeOf(err))
}

func TestEvalAggregateFold(t *testing.T) {
	f := newEvalFixture()
	i64T := types.New(types.Int64)

	merge := &Lambda{
		Params: []types.Type{i64T, i64T},
		Body: f.call("add", i64T,
			&LambdaArg{Ordinal: 0, Output: i64T},
			&LambdaArg{Ordinal: 1, Output: i64T}),
	}
	finish := &Lambda{
		Params: []types.Type{i64T},
		Body:   &LambdaArg{Ordinal: 0, Output: i64T},
	}

	sum := f.call("aggregate", i64T, NewLiteral(i64ListValue(1, 2, 3, 4)), i64(0), merge, finish)
	got, err := f.env.Eval(sum)
	require.NoError(t, err)
	require.True(t, got.Equal(types.NewInt64Value(10)))

	// a null array folds to null
	nullArr := NewNullLiteral(types.NewList(i64T))
	sumNull := f.call("aggregate", i64T.AsNullable(), nullArr, i64(0), merge, finish)
	got, err = f.env.Eval(sumNull)
	require.NoError(t, err)
	require.True(t, got.IsNull())
}

func TestEvalFieldRef(t *testing.T) {
	f := newEvalFixture()
	f.env.Row = []types.Value{types.NewInt64Value(7)}

	got, err := f.env.Eval(&FieldRef{Ordinal: 0, Output: types.New(types.Int64)})
	require.NoError(t, err)
	require.True(t, got.Equal(types.NewInt64Value(7)))

	_, err = f.env.Eval(&FieldRef{Ordinal: 5, Output: types.New(types.Int64)})
	require.Equal(t, glerrors.InvalidArgument, glerrors.CodeOf(err))
}
