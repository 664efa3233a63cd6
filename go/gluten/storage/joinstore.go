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
	"encoding/binary"
	"io"
	"math"

	"github.com/cespare/xxhash/v2"
	"github.com/dustin/go-humanize"

	"github.com/WolverineJiang/gluten/go/glerrors"
	"github.com/WolverineJiang/gluten/go/gluten/types"
	"github.com/WolverineJiang/gluten/go/log"
)

// JoinKind is the join the restored table will serve.
type JoinKind int

const (
	InnerJoin JoinKind = iota
	LeftJoin
	RightJoin
	FullJoin
)

// JoinStoreOptions configure how a persisted join table is restored.
type JoinStoreOptions struct {
	Kind JoinKind

	// UseNulls makes the right side's sample schema nullable for left and
	// full joins, matching how unmatched rows surface there.
	UseNulls bool

	// Codec is the compression framing of the stream: raw, snappy, zstd.
	Codec string

	// MaxRows and MaxBytes bound the restored table; zero is unlimited.
	MaxRows  int64
	MaxBytes int64
}

// JoinStore is an in-memory hash table restored from a persisted join
// table stream. The whole stream is consumed at construction; afterwards
// the store is read-only.
type JoinStore struct {
	schema  types.NamedStruct
	keyCols []int
	opts    JoinStoreOptions

	rows     map[uint64][][]types.Value
	numRows  int64
	numBytes int64
}

// NewJoinStore restores a join table from an already-open stream.
func NewJoinStore(in io.Reader, schema types.NamedStruct, keyNames []string, opts JoinStoreOptions) (*JoinStore, error) {
	if err := schema.Validate(); err != nil {
		return nil, err
	}
	if len(keyNames) == 0 {
		return nil, glerrors.New(glerrors.InvalidArgument, "join table requires at least one key column")
	}
	keyCols := make([]int, len(keyNames))
	for i, name := range keyNames {
		ordinal, err := schema.Ordinal(name)
		if err != nil {
			return nil, glerrors.Wrapf(err, "resolving join key '%s'", name)
		}
		keyCols[i] = ordinal
	}

	r, err := decompressedReader(in, opts.Codec)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, glerrors.Wrap(err, "restoring join table")
	}

	js := &JoinStore{
		schema:   schema,
		keyCols:  keyCols,
		opts:     opts,
		rows:     make(map[uint64][][]types.Value),
		numBytes: int64(len(data)),
	}
	if opts.MaxBytes > 0 && js.numBytes > opts.MaxBytes {
		return nil, glerrors.Errorf(glerrors.ResourceExhausted,
			"join table stream is %s, limit is %s",
			humanize.IBytes(uint64(js.numBytes)), humanize.IBytes(uint64(opts.MaxBytes)))
	}

	for len(data) > 0 {
		row, rest, err := decodeRow(data, schema)
		if err != nil {
			return nil, glerrors.Wrap(err, "restoring join table")
		}
		data = rest
		js.numRows++
		if opts.MaxRows > 0 && js.numRows > opts.MaxRows {
			return nil, glerrors.Errorf(glerrors.ResourceExhausted,
				"join table exceeds the %d-row limit", opts.MaxRows)
		}
		h := js.hashRowKey(row)
		js.rows[h] = append(js.rows[h], row)
	}

	log.Infof("join table restored: %d rows, %s", js.numRows, humanize.IBytes(uint64(js.numBytes)))
	return js, nil
}

// appendHashKey encodes a value for key hashing. It covers exactly what
// Value.Equal compares: kind, null state and payload. Declared nullability
// is left out, so hash-equal follows from Equal.
func appendHashKey(buf []byte, v types.Value) []byte {
	buf = append(buf, byte(v.Type().Kind))
	if v.IsNull() {
		return append(buf, 0)
	}
	buf = append(buf, 1)
	switch v.Type().Kind {
	case types.Bool:
		if v.ToBool() {
			return append(buf, 1)
		}
		return append(buf, 0)
	case types.Float32, types.Float64:
		return binary.LittleEndian.AppendUint64(buf, math.Float64bits(v.Float64()))
	case types.String:
		buf = binary.AppendUvarint(buf, uint64(len(v.Str())))
		return append(buf, v.Str()...)
	case types.Binary:
		buf = binary.AppendUvarint(buf, uint64(len(v.Bytes())))
		return append(buf, v.Bytes()...)
	case types.List:
		vals := v.List()
		buf = binary.AppendUvarint(buf, uint64(len(vals)))
		for _, el := range vals {
			buf = appendHashKey(buf, el)
		}
		return buf
	default:
		return binary.AppendVarint(buf, v.Int64())
	}
}

func hashValues(vals []types.Value) uint64 {
	h := xxhash.New()
	var buf []byte
	for _, v := range vals {
		buf = appendHashKey(buf[:0], v)
		h.Write(buf)
	}
	return h.Sum64()
}

func (js *JoinStore) hashRowKey(row []types.Value) uint64 {
	keys := make([]types.Value, len(js.keyCols))
	for i, col := range js.keyCols {
		keys[i] = row[col]
	}
	return hashValues(keys)
}

// SampleSchema is the schema of the rows Lookup returns. With UseNulls
// set and a left or full join, every column reads as nullable.
func (js *JoinStore) SampleSchema() types.NamedStruct {
	if js.opts.UseNulls && (js.opts.Kind == LeftJoin || js.opts.Kind == FullJoin) {
		return js.schema.AsNullable()
	}
	return js.schema
}

// Lookup returns the rows whose key columns equal the given values, in
// insertion order. Hash collisions are filtered by value comparison.
func (js *JoinStore) Lookup(keys []types.Value) [][]types.Value {
	if len(keys) != len(js.keyCols) {
		return nil
	}
	var out [][]types.Value
candidates:
	for _, row := range js.rows[hashValues(keys)] {
		for i, col := range js.keyCols {
			if !row[col].Equal(keys[i]) {
				continue candidates
			}
		}
		out = append(out, row)
	}
	return out
}

// NumRows is the number of rows restored.
func (js *JoinStore) NumRows() int64 {
	return js.numRows
}
