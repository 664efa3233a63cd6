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

// Package rewrite translates host expression trees into the portable
// representation, compensating for the semantic gaps between the host's
// operators and the backend's primitives: 0-based vs 1-based indexing,
// inclusive vs exclusive range bounds, and null propagation the backend
// does not perform on its own.
package rewrite

import (
	"github.com/WolverineJiang/gluten/go/glerrors"
	"github.com/WolverineJiang/gluten/go/gluten/config"
	"github.com/WolverineJiang/gluten/go/gluten/sparkexpr"
	"github.com/WolverineJiang/gluten/go/gluten/substrait"
	"github.com/WolverineJiang/gluten/go/gluten/types"
)

var ErrTranslateExprNotSupported = "expr cannot be translated, not supported"

// translator rewrites one host function call. The arguments are already
// translated; call carries the host-declared result type and the
// call-site flags.
type translator func(call *sparkexpr.FuncExpr, args []substrait.Node, env *Env) (substrait.Node, error)

// builtinTranslators maps host function names to their rewrite rules.
// Dispatch is a single lookup per call occurrence; names missing here fall
// through to the generic signature-resolved call.
var builtinTranslators = map[string]translator{
	"sequence":       translateSequence,
	"array":          translateCreateArray,
	"get_array_item": translateGetArrayItem,
	"array_distinct": translateArrayDistinct,
	"aggregate":      translateAggregate,
}

// Translate rewrites a host expression into a portable node, registering
// every referenced function in the environment's function map.
func Translate(e sparkexpr.Expr, env *Env) (substrait.Node, error) {
	switch node := e.(type) {
	case *sparkexpr.Literal:
		return substrait.NewLiteral(node.Val), nil
	case *sparkexpr.ColName:
		return &substrait.FieldRef{Ordinal: node.Ordinal, Output: node.Typ}, nil
	case *sparkexpr.LambdaVar:
		return &substrait.LambdaArg{Ordinal: node.Ordinal, Output: node.Typ}, nil
	case *sparkexpr.Lambda:
		return translateLambda(node, env)
	case *sparkexpr.FuncExpr:
		return translateFuncExpr(node, env)
	default:
		return nil, translateExprNotSupported(e)
	}
}

// TranslateFragment runs a full translation pass over a fresh environment
// and bundles the result with its function registry.
func TranslateFragment(e sparkexpr.Expr, opts config.Options) (*substrait.PlanFragment, error) {
	env := NewEnv(opts)
	root, err := Translate(e, env)
	if err != nil {
		return nil, err
	}
	return &substrait.PlanFragment{
		Functions: env.Functions,
		Root:      root,
	}, nil
}

func translateLambda(l *sparkexpr.Lambda, env *Env) (substrait.Node, error) {
	body, err := Translate(l.Body, env)
	if err != nil {
		return nil, err
	}
	params := make([]types.Type, len(l.Params))
	for i, p := range l.Params {
		params[i] = p.Typ
	}
	return &substrait.Lambda{Params: params, Body: body}, nil
}

func translateFuncExpr(fn *sparkexpr.FuncExpr, env *Env) (substrait.Node, error) {
	args := make([]substrait.Node, len(fn.Args))
	for i, arg := range fn.Args {
		translated, err := Translate(arg, env)
		if err != nil {
			return nil, err
		}
		args[i] = translated
	}

	if rewriteFn, ok := builtinTranslators[fn.Name]; ok {
		return rewriteFn(fn, args, env)
	}

	// no semantic gap known for this name: emit it as-is
	return env.call(fn.Name, fn.Typ, args...), nil
}

func translateExprNotSupported(e sparkexpr.Expr) error {
	return glerrors.Errorf(glerrors.Unimplemented, "%s: %s", ErrTranslateExprNotSupported, sparkexpr.String(e))
}
