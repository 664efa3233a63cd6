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

// translateCreateArray forwards the element expressions unchanged. An
// empty construction is only representable when the host declares the
// element type itself; the host convention of defaulting empty arrays to
// string elements has no backend equivalent and is rejected.
func translateCreateArray(call *sparkexpr.FuncExpr, args []substrait.Node, env *Env) (substrait.Node, error) {
	if call.Typ.Kind != types.List {
		return nil, glerrors.Errorf(glerrors.Internal,
			"function '%s' declared with non-list result type %s", call.Name, call.Typ)
	}
	if len(args) == 0 {
		if env.Options.UseStringTypeWhenEmpty {
			return nil, glerrors.Errorf(glerrors.Unimplemented,
				"function '%s': defaulting empty array elements to string is not supported", call.Name)
		}
		return substrait.NewLiteral(types.EmptyListValue(call.Typ.ElemType()).WithType(call.Typ)), nil
	}
	return env.call("array", call.Typ, args...), nil
}

// translateGetArrayItem compensates for the indexing gap: the host indexes
// from 0, the backend's element access from 1. The host's fail-on-error
// indexing mode (call.Options.FailOnError) is not forwarded to the
// backend; an out-of-range index yields null there.
func translateGetArrayItem(call *sparkexpr.FuncExpr, args []substrait.Node, env *Env) (substrait.Node, error) {
	if len(args) != 2 {
		return nil, glerrors.Errorf(glerrors.InvalidArgument,
			"function '%s' requires two arguments, got %d", call.Name, len(args))
	}
	arr, index := args[0], args[1]
	one := substrait.NewLiteral(types.NewInt32Value(1))
	shifted := env.call("add", types.Promote(index.ResultType(), one.ResultType()), index, one)
	return env.call("element_at", call.Typ, arr, shifted), nil
}

// translateArrayDistinct targets the backend kernel that keeps the first
// occurrence of every element, nulls included. The backend's native
// distinct drops nulls outright, so the anchor must never resolve there.
func translateArrayDistinct(call *sparkexpr.FuncExpr, args []substrait.Node, env *Env) (substrait.Node, error) {
	if len(args) != 1 {
		return nil, glerrors.Errorf(glerrors.InvalidArgument,
			"function '%s' requires one argument, got %d", call.Name, len(args))
	}
	if call.Typ.Kind != types.List {
		return nil, glerrors.Errorf(glerrors.Internal,
			"function '%s' declared with non-list result type %s", call.Name, call.Typ)
	}
	return env.call("array_distinct", call.Typ, args[0]), nil
}

// translateAggregate emits the fold's arguments in the backend's fixed
// order: array, zero, merge, finish.
func translateAggregate(call *sparkexpr.FuncExpr, args []substrait.Node, env *Env) (substrait.Node, error) {
	if len(args) != 4 {
		return nil, glerrors.Errorf(glerrors.InvalidArgument,
			"function '%s' requires four arguments, got %d", call.Name, len(args))
	}
	arr, zero, merge, finish := args[0], args[1], args[2], args[3]
	return env.call("aggregate", call.Typ, arr, zero, merge, finish), nil
}
