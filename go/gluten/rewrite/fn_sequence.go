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

package rewrite

import (
	"github.com/WolverineJiang/gluten/go/glerrors"
	"github.com/WolverineJiang/gluten/go/gluten/sparkexpr"
	"github.com/WolverineJiang/gluten/go/gluten/substrait"
	"github.com/WolverineJiang/gluten/go/gluten/types"
)

// translateSequence lowers sequence(start, end, [step]) onto the backend's
// exclusive-end range primitive:
//
//	if (isNull(start))            null
//	else if (isNull(end))         null
//	else if (isNull(step))        null
//	else if ((end - start) % step == 0)
//	                              range(start, end + step, step)
//	else                          range(start, end, step)
//
// The host generator is end-inclusive exactly when (end - start) % step
// is zero. A missing step defaults to if(start <= end, 1, -1).
func translateSequence(call *sparkexpr.FuncExpr, args []substrait.Node, env *Env) (substrait.Node, error) {
	if len(args) < 2 || len(args) > 3 {
		return nil, glerrors.Errorf(glerrors.InvalidArgument,
			"function '%s' requires two or three arguments, got %d", call.Name, len(args))
	}

	start, end := args[0], args[1]
	var step substrait.Node
	if len(args) == 3 {
		step = args[2]
	}

	one := substrait.NewLiteral(types.NewInt32Value(1))

	if step == nil {
		minusOne := substrait.NewLiteral(types.NewInt32Value(-1))
		startLeEnd := env.call("lte", boolTypeFor(start, end), start, end)
		step = &substrait.IfThen{
			Clauses: []substrait.IfClause{{Cond: startLeEnd, Then: one}},
			Else:    minusOne,
			Output:  types.New(types.Int32),
		}
	}

	startNullable := start.ResultType().Nullable
	endNullable := end.ResultType().Nullable
	stepNullable := step.ResultType().Nullable

	elem := types.Promote(types.Promote(start.ResultType(), end.ResultType()), step.ResultType()).AsNonNullable()
	rangeType := types.NewList(elem)

	zero := substrait.NewLiteral(types.NewInt32Value(0))
	endMinusStart := env.call("subtract", types.Promote(end.ResultType(), start.ResultType()), end, start)
	moduloStep := env.call("modulus", types.Promote(endMinusStart.ResultType(), step.ResultType()), endMinusStart, step)
	moduloEqZero := env.call("equal", boolTypeFor(moduloStep), moduloStep, zero)

	// A null step fed into range would trip its non-zero-step
	// precondition, so substitute a dummy 1 under a null guard. The
	// step-null branch of the outer chain wins before the dummy's output
	// can ever be observed.
	rangeStep := assumeNotNull(step)
	if stepNullable {
		rangeStep = &substrait.IfThen{
			Clauses: []substrait.IfClause{{Cond: env.isNull(step), Then: one}},
			Else:    assumeNotNull(step),
			Output:  step.ResultType().AsNonNullable(),
		}
	}

	endPlusStep := env.call("add", elem, assumeNotNull(end), assumeNotNull(step))
	rangeInclusive := env.call("range", rangeType, assumeNotNull(start), endPlusStep, rangeStep)
	rangeExclusive := env.call("range", rangeType, assumeNotNull(start), assumeNotNull(end), rangeStep)

	if !startNullable && !endNullable && !stepNullable {
		return &substrait.IfThen{
			Clauses: []substrait.IfClause{{Cond: moduloEqZero, Then: rangeInclusive}},
			Else:    rangeExclusive,
			Output:  rangeType,
		}, nil
	}

	resultType := rangeType.AsNullable()
	nullResult := substrait.NewNullLiteral(resultType)

	// the null checks come first, in argument order; their relative order
	// is part of the contract
	return &substrait.IfThen{
		Clauses: []substrait.IfClause{
			{Cond: env.isNull(start), Then: nullResult},
			{Cond: env.isNull(end), Then: nullResult},
			{Cond: env.isNull(step), Then: nullResult},
			{Cond: moduloEqZero, Then: &substrait.Cast{Input: rangeInclusive, Output: resultType}},
		},
		Else:   &substrait.Cast{Input: rangeExclusive, Output: resultType},
		Output: resultType,
	}, nil
}
