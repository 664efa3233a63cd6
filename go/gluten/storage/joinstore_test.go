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

package storage

import (
	"bytes"
	"testing"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/require"

	"github.com/WolverineJiang/gluten/go/glerrors"
	"github.com/WolverineJiang/gluten/go/gluten/config"
	"github.com/WolverineJiang/gluten/go/gluten/types"
)

func joinSchema() types.NamedStruct {
	return types.NamedStruct{
		Names: []string{"id", "name"},
		Types: []types.Type{types.New(types.Int64), types.New(types.String)},
	}
}

func joinRow(id int64, name string) []types.Value {
	return []types.Value{types.NewInt64Value(id), types.NewStringValue(name)}
}

func encodeRows(rows ...[]types.Value) []byte {
	var buf []byte
	for _, row := range rows {
		buf = AppendRow(buf, row)
	}
	return buf
}

func TestJoinStoreLookup(t *testing.T) {
	stream := encodeRows(
		joinRow(1, "alpha"),
		joinRow(2, "beta"),
		joinRow(1, "gamma"),
	)

	js, err := NewJoinStore(bytes.NewReader(stream), joinSchema(), []string{"id"}, JoinStoreOptions{})
	require.NoError(t, err)
	require.Equal(t, int64(3), js.NumRows())

	got := js.Lookup([]types.Value{types.NewInt64Value(1)})
	require.Len(t, got, 2)
	require.Equal(t, "alpha", got[0][1].Str())
	require.Equal(t, "gamma", got[1][1].Str())

	require.Empty(t, js.Lookup([]types.Value{types.NewInt64Value(9)}))
	require.Empty(t, js.Lookup(nil), "key arity mismatch yields no rows")
}

// A lookup key and a stored value that differ only in declared
// nullability compare Equal, so they must land in the same hash bucket.
func TestJoinStoreLookupIgnoresNullability(t *testing.T) {
	nullableID := types.NewInt64Value(1).WithType(types.NewNullable(types.Int64))
	stream := encodeRows(
		[]types.Value{nullableID, types.NewStringValue("a")},
		joinRow(2, "b"),
	)

	js, err := NewJoinStore(bytes.NewReader(stream), joinSchema(), []string{"id"}, JoinStoreOptions{})
	require.NoError(t, err)

	// non-nullable key against a nullable-typed stored value
	got := js.Lookup([]types.Value{types.NewInt64Value(1)})
	require.Len(t, got, 1)
	require.Equal(t, "a", got[0][1].Str())

	// and the other way around
	nullableKey := types.NewInt64Value(2).WithType(types.NewNullable(types.Int64))
	got = js.Lookup([]types.Value{nullableKey})
	require.Len(t, got, 1)
	require.Equal(t, "b", got[0][1].Str())
}

func TestJoinStoreNullKey(t *testing.T) {
	schema := types.NamedStruct{
		Names: []string{"id", "name"},
		Types: []types.Type{types.NewNullable(types.Int64), types.New(types.String)},
	}
	stream := encodeRows(
		[]types.Value{types.NullValue(types.New(types.Int64)), types.NewStringValue("orphan")},
		joinRow(1, "a"),
	)

	js, err := NewJoinStore(bytes.NewReader(stream), schema, []string{"id"}, JoinStoreOptions{})
	require.NoError(t, err)

	got := js.Lookup([]types.Value{types.NullValue(types.New(types.Int64))})
	require.Len(t, got, 1)
	require.Equal(t, "orphan", got[0][1].Str())
}

func TestJoinStoreSnappyStream(t *testing.T) {
	var compressed bytes.Buffer
	w := snappy.NewBufferedWriter(&compressed)
	_, err := w.Write(encodeRows(joinRow(7, "seven")))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	js, err := NewJoinStore(&compressed, joinSchema(), []string{"id"}, JoinStoreOptions{
		Codec: config.CodecSnappy,
	})
	require.NoError(t, err)
	require.Equal(t, int64(1), js.NumRows())
	require.Len(t, js.Lookup([]types.Value{types.NewInt64Value(7)}), 1)
}

func TestJoinStoreZstdStream(t *testing.T) {
	var compressed bytes.Buffer
	w, err := zstd.NewWriter(&compressed)
	require.NoError(t, err)
	_, err = w.Write(encodeRows(joinRow(7, "seven"), joinRow(8, "eight")))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	js, err := NewJoinStore(&compressed, joinSchema(), []string{"id"}, JoinStoreOptions{
		Codec: config.CodecZstd,
	})
	require.NoError(t, err)
	require.Equal(t, int64(2), js.NumRows())
}

func TestJoinStoreCompositeKey(t *testing.T) {
	stream := encodeRows(
		joinRow(1, "a"),
		joinRow(1, "b"),
	)
	js, err := NewJoinStore(bytes.NewReader(stream), joinSchema(), []string{"id", "name"}, JoinStoreOptions{})
	require.NoError(t, err)

	got := js.Lookup([]types.Value{types.NewInt64Value(1), types.NewStringValue("b")})
	require.Len(t, got, 1)
	require.Equal(t, "b", got[0][1].Str())
}

func TestJoinStoreSampleSchemaNullability(t *testing.T) {
	stream := encodeRows(joinRow(1, "a"))

	type testCase struct {
		name         string
		kind         JoinKind
		useNulls     bool
		wantNullable bool
	}
	tests := []testCase{
		{"inner", InnerJoin, true, false},
		{"left without nulls", LeftJoin, false, false},
		{"left with nulls", LeftJoin, true, true},
		{"full with nulls", FullJoin, true, true},
		{"right with nulls", RightJoin, true, false},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			js, err := NewJoinStore(bytes.NewReader(stream), joinSchema(), []string{"id"}, JoinStoreOptions{
				Kind:     tc.kind,
				UseNulls: tc.useNulls,
			})
			require.NoError(t, err)
			schema := js.SampleSchema()
			require.Equal(t, tc.wantNullable, schema.Types[0].Nullable)
		})
	}
}

func TestJoinStoreLimits(t *testing.T) {
	stream := encodeRows(joinRow(1, "a"), joinRow(2, "b"), joinRow(3, "c"))

	_, err := NewJoinStore(bytes.NewReader(stream), joinSchema(), []string{"id"}, JoinStoreOptions{
		MaxRows: 2,
	})
	require.ErrorContains(t, err, "2-row limit")
	require.Equal(t, glerrors.ResourceExhausted, glerrors.CodeOf(err))

	_, err = NewJoinStore(bytes.NewReader(stream), joinSchema(), []string{"id"}, JoinStoreOptions{
		MaxBytes: 4,
	})
	require.Equal(t, glerrors.ResourceExhausted, glerrors.CodeOf(err))
}

func TestJoinStoreBadInput(t *testing.T) {
	_, err := NewJoinStore(bytes.NewReader(nil), joinSchema(), nil, JoinStoreOptions{})
	require.ErrorContains(t, err, "at least one key column")

	_, err = NewJoinStore(bytes.NewReader(nil), joinSchema(), []string{"missing"}, JoinStoreOptions{})
	require.Equal(t, glerrors.NotFound, glerrors.CodeOf(err))

	_, err = NewJoinStore(bytes.NewReader(nil), joinSchema(), []string{"id"}, JoinStoreOptions{
		Codec: "lz4",
	})
	require.ErrorContains(t, err, "unknown stream codec")

	truncated := encodeRows(joinRow(1, "a"))[:3]
	_, err = NewJoinStore(bytes.NewReader(truncated), joinSchema(), []string{"id"}, JoinStoreOptions{})
	require.Equal(t, glerrors.DataLoss, glerrors.CodeOf(err))
}
