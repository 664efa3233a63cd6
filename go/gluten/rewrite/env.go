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
	"github.com/WolverineJiang/gluten/go/gluten/config"
	"github.com/WolverineJiang/gluten/go/gluten/substrait"
	"github.com/WolverineJiang/gluten/go/gluten/types"
)

// Env is the context of one translation pass: the function registry the
// emitted anchors resolve against and the host session options. It is
// passed explicitly through the pass; translators keep no other state.
// One Env must not be shared between concurrent translations.
type Env struct {
	Functions *substrait.FunctionMap
	Options   config.Options
}

func NewEnv(opts config.Options) *Env {
	return &Env{
		Functions: substrait.NewFunctionMap(),
		Options:   opts,
	}
}

// call emits a scalar function node, resolving the anchor for the
// name + argument-type signature through the per-plan registry.
func (env *Env) call(name string, out types.Type, args ...substrait.Node) *substrait.ScalarFunction {
	argTypes := make([]types.Type, len(args))
	for i, arg := range args {
		argTypes[i] = arg.ResultType()
	}
	return &substrait.ScalarFunction{
		FunctionRef: env.Functions.Anchor(name, argTypes),
		Args:        args,
		Output:      out,
	}
}

// isNull emits an is_null check; the check itself can never be null.
func (env *Env) isNull(arg substrait.Node) *substrait.ScalarFunction {
	return env.call("is_null", types.New(types.Bool), arg)
}

// assumeNotNull strips the nullability of a node's declared type, so it
// can feed a primitive whose arguments must be non-nullable. The caller
// guarantees a null can never reach the wrapped node at evaluation time.
func assumeNotNull(n substrait.Node) substrait.Node {
	t := n.ResultType()
	if !t.Nullable {
		return n
	}
	return &substrait.Cast{Input: n, Output: t.AsNonNullable()}
}

// boolTypeFor is the output type of a comparison over the given operands:
// boolean, nullable when any operand is.
func boolTypeFor(args ...substrait.Node) types.Type {
	t := types.New(types.Bool)
	for _, arg := range args {
		if arg.ResultType().Nullable {
			t.Nullable = true
		}
	}
	return t
}
