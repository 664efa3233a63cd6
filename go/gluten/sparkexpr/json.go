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

package sparkexpr

import (
	"github.com/tidwall/gjson"

	"github.com/WolverineJiang/gluten/go/glerrors"
	"github.com/WolverineJiang/gluten/go/gluten/types"
)

// ParseJSON decodes a host expression tree from its JSON description.
//
// Every node object carries "kind" plus kind-specific fields:
//
//	{"kind": "lit",    "type": "i64", "nullable": true, "value": 1}
//	{"kind": "col",    "name": "a", "ordinal": 0, "type": "i64"}
//	{"kind": "call",   "fn": "sequence", "type": "list<i64>", "args": [...]}
//	{"kind": "lambda", "params": [{"name": "acc", "type": "i64"}], "body": {...}}
//	{"kind": "var",    "name": "acc", "ordinal": 0, "type": "i64"}
func ParseJSON(data []byte) (Expr, error) {
	if !gjson.ValidBytes(data) {
		return nil, glerrors.New(glerrors.InvalidArgument, "malformed expression JSON")
	}
	return parseNode(gjson.ParseBytes(data))
}

func parseType(node gjson.Result) (types.Type, error) {
	t, err := types.ParseShortName(node.Get("type").String())
	if err != nil {
		return types.Type{}, err
	}
	if node.Get("nullable").Bool() {
		t = t.AsNullable()
	}
	return t, nil
}

func parseNode(node gjson.Result) (Expr, error) {
	switch kind := node.Get("kind").String(); kind {
	case "lit":
		t, err := parseType(node)
		if err != nil {
			return nil, err
		}
		val, err := parseValue(t, node.Get("value"))
		if err != nil {
			return nil, err
		}
		return &Literal{Val: val}, nil

	case "col":
		t, err := parseType(node)
		if err != nil {
			return nil, err
		}
		return &ColName{
			Name:    node.Get("name").String(),
			Ordinal: int(node.Get("ordinal").Int()),
			Typ:     t,
		}, nil

	case "call":
		t, err := parseType(node)
		if err != nil {
			return nil, err
		}
		fn := &FuncExpr{
			Name:    node.Get("fn").String(),
			Typ:     t,
			Options: CallOptions{FailOnError: node.Get("failOnError").Bool()},
		}
		if fn.Name == "" {
			return nil, glerrors.New(glerrors.InvalidArgument, "call node without a function name")
		}
		for _, arg := range node.Get("args").Array() {
			child, err := parseNode(arg)
			if err != nil {
				return nil, err
			}
			fn.Args = append(fn.Args, child)
		}
		return fn, nil

	case "lambda":
		var params []*LambdaVar
		for i, p := range node.Get("params").Array() {
			t, err := parseType(p)
			if err != nil {
				return nil, err
			}
			params = append(params, &LambdaVar{
				Name:    p.Get("name").String(),
				Ordinal: i,
				Typ:     t,
			})
		}
		body, err := parseNode(node.Get("body"))
		if err != nil {
			return nil, err
		}
		return &Lambda{Params: params, Body: body}, nil

	case "var":
		t, err := parseType(node)
		if err != nil {
			return nil, err
		}
		return &LambdaVar{
			Name:    node.Get("name").String(),
			Ordinal: int(node.Get("ordinal").Int()),
			Typ:     t,
		}, nil

	default:
		return nil, glerrors.Errorf(glerrors.InvalidArgument, "unknown expression node kind '%s'", kind)
	}
}

func parseValue(t types.Type, raw gjson.Result) (types.Value, error) {
	if !raw.Exists() || raw.Type == gjson.Null {
		if !t.Nullable {
			return types.Value{}, glerrors.Errorf(glerrors.InvalidArgument, "null literal with non-nullable type %s", t)
		}
		return types.NullValue(t), nil
	}
	switch t.Kind {
	case types.Bool:
		return types.NewBoolValue(raw.Bool()).WithType(t), nil
	case types.Float32, types.Float64:
		return types.NewFloat64Value(raw.Float()).WithType(t), nil
	case types.String:
		return types.NewStringValue(raw.String()).WithType(t), nil
	case types.List:
		elem := t.ElemType()
		vals := []types.Value{}
		for _, entry := range raw.Array() {
			v, err := parseValue(elem, entry)
			if err != nil {
				return types.Value{}, err
			}
			vals = append(vals, v)
		}
		return types.NewListValue(elem, vals).WithType(t), nil
	case types.Int8, types.Int16, types.Int32, types.Int64, types.Date, types.Timestamp:
		return types.NewIntValue(t.Kind, raw.Int()).WithType(t), nil
	default:
		return types.Value{}, glerrors.Errorf(glerrors.InvalidArgument, "cannot build a literal of type %s", t)
	}
}
