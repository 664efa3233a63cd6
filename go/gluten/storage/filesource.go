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
	"io"

	"github.com/dustin/go-humanize"
	"github.com/google/uuid"
	"github.com/tidwall/gjson"

	"github.com/WolverineJiang/gluten/go/glerrors"
	"github.com/WolverineJiang/gluten/go/gluten/types"
	"github.com/WolverineJiang/gluten/go/log"
)

// ParseSchemaDescriptor decodes the JSON schema descriptor handed to a
// file source:
//
//	{
//	  "names":     ["id", "tag"],
//	  "types":     ["i64", "str"],
//	  "nullable":  [false, true],
//	  "partition": [false, false]
//	}
//
// The nullable and partition arrays are optional.
func ParseSchemaDescriptor(descriptor []byte) (types.NamedStruct, error) {
	if !gjson.ValidBytes(descriptor) {
		return types.NamedStruct{}, glerrors.New(glerrors.InvalidArgument, "malformed schema descriptor")
	}
	doc := gjson.ParseBytes(descriptor)

	var ns types.NamedStruct
	for _, name := range doc.Get("names").Array() {
		ns.Names = append(ns.Names, name.String())
	}
	for i, tn := range doc.Get("types").Array() {
		t, err := types.ParseShortName(tn.String())
		if err != nil {
			return types.NamedStruct{}, glerrors.Wrapf(err, "column %d", i)
		}
		ns.Types = append(ns.Types, t)
	}
	for i, nullable := range doc.Get("nullable").Array() {
		if nullable.Bool() && i < len(ns.Types) {
			ns.Types[i] = ns.Types[i].AsNullable()
		}
	}
	for _, part := range doc.Get("partition").Array() {
		ns.PartitionColumns = append(ns.PartitionColumns, part.Bool())
	}
	if err := ns.Validate(); err != nil {
		return types.NamedStruct{}, err
	}
	if ns.Len() == 0 {
		return types.NamedStruct{}, glerrors.New(glerrors.InvalidArgument, "schema descriptor declares no columns")
	}
	return ns, nil
}

// FileSource is a pipeline stage feeding rows from a prepared stream. The
// stream is buffered whole at construction; Next then decodes row by row.
type FileSource struct {
	id     uuid.UUID
	schema types.NamedStruct
	data   []byte
	rows   int64
}

// NewFileSource builds a source from an already-open stream and a JSON
// schema descriptor.
func NewFileSource(in io.Reader, descriptor []byte) (*FileSource, error) {
	schema, err := ParseSchemaDescriptor(descriptor)
	if err != nil {
		return nil, err
	}
	data, err := io.ReadAll(in)
	if err != nil {
		return nil, glerrors.Wrap(err, "buffering file source")
	}
	fs := &FileSource{
		id:     uuid.New(),
		schema: schema,
		data:   data,
	}
	log.Infof("file source %s: %d columns, %s buffered", fs.id, schema.Len(), humanize.IBytes(uint64(len(data))))
	return fs, nil
}

// StageID identifies this source in logs.
func (fs *FileSource) StageID() string {
	return fs.id.String()
}

// SampleSchema is the schema of the rows Next returns.
func (fs *FileSource) SampleSchema() types.NamedStruct {
	return fs.schema
}

// Next decodes the next row. It returns io.EOF once the stream is
// exhausted.
func (fs *FileSource) Next() ([]types.Value, error) {
	if len(fs.data) == 0 {
		return nil, io.EOF
	}
	row, rest, err := decodeRow(fs.data, fs.schema)
	if err != nil {
		return nil, glerrors.Wrapf(err, "file source %s: row %d", fs.id, fs.rows)
	}
	fs.data = rest
	fs.rows++
	return row, nil
}
