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

// Package storage holds the adapters that feed host execution pipelines
// from prepared byte streams: a join table restored into memory and a
// row-oriented file source. Both read their entire input once at
// construction time; a failed read is a construction error, not a
// retryable condition. Neither adapter interacts with the rewrite layer.
package storage

import (
	"io"

	"github.com/golang/snappy"
	"github.com/klauspost/compress/zstd"

	"github.com/WolverineJiang/gluten/go/glerrors"
	"github.com/WolverineJiang/gluten/go/gluten/config"
	"github.com/WolverineJiang/gluten/go/gluten/substrait"
	"github.com/WolverineJiang/gluten/go/gluten/types"
)

// Rows cross the adapters in the portable value encoding, one encoded
// value per column, rows back to back.

// AppendRow encodes one row. Used by writers preparing streams for the
// adapters and by tests.
func AppendRow(buf []byte, row []types.Value) []byte {
	for _, v := range row {
		buf = substrait.EncodeValue(buf, v)
	}
	return buf
}

// decodeRow decodes one row of the given schema and returns the remaining
// bytes. Column kinds are checked against the schema.
func decodeRow(data []byte, schema types.NamedStruct) ([]types.Value, []byte, error) {
	row := make([]types.Value, schema.Len())
	for i := range row {
		v, rest, err := substrait.DecodeValue(data)
		if err != nil {
			return nil, nil, err
		}
		if v.Type().Kind != schema.Types[i].Kind {
			return nil, nil, glerrors.Errorf(glerrors.InvalidArgument,
				"column '%s': stream carries %s, schema declares %s",
				schema.Names[i], v.Type(), schema.Types[i])
		}
		row[i] = v
		data = rest
	}
	return row, data, nil
}

func decompressedReader(in io.Reader, codec string) (io.Reader, error) {
	switch codec {
	case config.CodecRaw, "":
		return in, nil
	case config.CodecSnappy:
		return snappy.NewReader(in), nil
	case config.CodecZstd:
		dec, err := zstd.NewReader(in)
		if err != nil {
			return nil, glerrors.Wrap(err, "opening zstd stream")
		}
		return dec.IOReadCloser(), nil
	default:
		return nil, glerrors.Errorf(glerrors.InvalidArgument, "unknown stream codec '%s'", codec)
	}
}
