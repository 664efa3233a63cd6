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

package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestShortNameRoundtrip(t *testing.T) {
	type testCase struct {
		typ  Type
		name string
	}
	tests := []testCase{
		{New(Bool), "bool"},
		{New(Int32), "i32"},
		{New(Int64), "i64"},
		{New(Float64), "fp64"},
		{New(String), "str"},
		{New(Binary), "vbin"},
		{New(Date), "date"},
		{New(Timestamp), "ts"},
		{NewList(New(Int64)), "list<i64>"},
		{NewList(NewList(New(Int32))), "list<list<i32>>"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.Equal(t, tc.name, tc.typ.ShortName())
			parsed, err := ParseShortName(tc.name)
			require.NoError(t, err)
			require.True(t, parsed.Equal(tc.typ))
		})
	}
}

func TestShortNameIgnoresNullability(t *testing.T) {
	require.Equal(t, "i64", NewNullable(Int64).ShortName())
	require.Equal(t, "i64?", NewNullable(Int64).String())
	require.Equal(t, "list<str>?", NewList(New(String)).AsNullable().String())
}

func TestParseShortNameErrors(t *testing.T) {
	for _, s := range []string{"", "int", "list<i64", "list<wat>"} {
		_, err := ParseShortName(s)
		require.Error(t, err, "input %q", s)
	}
}

func TestPromote(t *testing.T) {
	type testCase struct {
		name string
		a, b Type
		want Type
	}
	tests := []testCase{
		{"same kind", New(Int64), New(Int64), New(Int64)},
		{"widen int", New(Int32), New(Int64), New(Int64)},
		{"int and float", New(Int64), New(Float64), New(Float64)},
		{"order independent", New(Float64), New(Int32), New(Float64)},
		{"nullable left", NewNullable(Int32), New(Int64), NewNullable(Int64)},
		{"nullable right", New(Int64), NewNullable(Int32), NewNullable(Int64)},
		{"equal non-numeric kinds", New(String), New(String), New(String)},
		{"non-numeric with numeric", New(String), New(Int64), New(Unknown)},
		{"numeric with non-numeric", New(Int64), New(String), New(Unknown)},
		{"mixed non-numeric kinds", New(String), New(Bool), New(Unknown)},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			require.True(t, Promote(tc.a, tc.b).Equal(tc.want))
		})
	}
}

func TestNullabilityFlips(t *testing.T) {
	typ := NewNullable(Int32)
	require.False(t, typ.AsNonNullable().Nullable)
	require.True(t, typ.Nullable, "AsNonNullable must not mutate the receiver")
	require.True(t, New(Int32).AsNullable().Nullable)
}

func TestNamedStructOrdinal(t *testing.T) {
	ns := &NamedStruct{
		Names:            []string{"id", "tag", "day"},
		Types:            []Type{New(Int64), NewNullable(String), New(Date)},
		PartitionColumns: []bool{false, false, true},
	}
	require.NoError(t, ns.Validate())

	ord, err := ns.Ordinal("tag")
	require.NoError(t, err)
	require.Equal(t, 1, ord)

	_, err = ns.Ordinal("missing")
	require.Error(t, err)

	require.True(t, ns.IsPartitionColumn(2))
	require.False(t, ns.IsPartitionColumn(0))
}

func TestNamedStructValidate(t *testing.T) {
	ns := &NamedStruct{
		Names: []string{"a", "b"},
		Types: []Type{New(Int64)},
	}
	require.Error(t, ns.Validate())
}

func TestNamedStructAsNullable(t *testing.T) {
	ns := &NamedStruct{
		Names: []string{"a", "b"},
		Types: []Type{New(Int64), NewNullable(String)},
	}
	relaxed := ns.AsNullable()
	for i := range relaxed.Types {
		require.True(t, relaxed.Types[i].Nullable)
	}
	require.False(t, ns.Types[0].Nullable, "AsNullable must copy, not mutate")
}

func TestValueEqual(t *testing.T) {
	require.True(t, NewInt64Value(1).Equal(NewInt64Value(1)))
	require.False(t, NewInt64Value(1).Equal(NewInt64Value(2)))
	require.False(t, NewInt64Value(1).Equal(NewInt32Value(1)))
	require.True(t, NullValue(New(Int64)).Equal(NullValue(New(Int64))))
	require.False(t, NullValue(New(Int64)).Equal(NewInt64Value(0)))

	// declared nullability does not affect equality
	relaxed := NewInt64Value(7).WithType(NewNullable(Int64))
	require.True(t, relaxed.Equal(NewInt64Value(7)))
}

func TestValueString(t *testing.T) {
	require.Equal(t, "null", NullValue(New(Int64)).String())
	require.Equal(t, "'abc'", NewStringValue("abc").String())
	require.Equal(t, "true", NewBoolValue(true).String())
	list := NewListValue(New(Int64), []Value{NewInt64Value(1), NewInt64Value(2)})
	require.Equal(t, "[1, 2]", list.String())
}
