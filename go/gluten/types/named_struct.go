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
	"strings"

	"github.com/WolverineJiang/gluten/go/glerrors"
)

// NamedStruct is an ordered schema: column names, their types, and a flag
// per column marking it as a partition column. It mirrors the portable
// format's schema message and is what the storage adapters consume.
type NamedStruct struct {
	Names            []string
	Types            []Type
	PartitionColumns []bool
}

func (ns NamedStruct) Len() int {
	return len(ns.Names)
}

// Ordinal returns the position of a named column.
func (ns NamedStruct) Ordinal(name string) (int, error) {
	for i, n := range ns.Names {
		if n == name {
			return i, nil
		}
	}
	return 0, glerrors.Errorf(glerrors.NotFound, "column '%s' not found in schema", name)
}

// Validate checks internal consistency. PartitionColumns may be empty, in
// which case no column is a partition column.
func (ns NamedStruct) Validate() error {
	if len(ns.Names) != len(ns.Types) {
		return glerrors.Errorf(glerrors.InvalidArgument,
			"schema has %d names but %d types", len(ns.Names), len(ns.Types))
	}
	if len(ns.PartitionColumns) != 0 && len(ns.PartitionColumns) != len(ns.Names) {
		return glerrors.Errorf(glerrors.InvalidArgument,
			"schema has %d names but %d partition flags", len(ns.Names), len(ns.PartitionColumns))
	}
	return nil
}

// IsPartitionColumn reports whether column i is a partition column.
func (ns NamedStruct) IsPartitionColumn(i int) bool {
	return i < len(ns.PartitionColumns) && ns.PartitionColumns[i]
}

// AsNullable returns a copy of the schema with every column type marked
// nullable. Column slices are copied; the receiver is not modified.
func (ns NamedStruct) AsNullable() NamedStruct {
	out := NamedStruct{
		Names:            append([]string(nil), ns.Names...),
		Types:            make([]Type, len(ns.Types)),
		PartitionColumns: append([]bool(nil), ns.PartitionColumns...),
	}
	for i, t := range ns.Types {
		out.Types[i] = t.AsNullable()
	}
	return out
}

func (ns NamedStruct) String() string {
	var buf strings.Builder
	buf.WriteByte('(')
	for i := range ns.Names {
		if i > 0 {
			buf.WriteString(", ")
		}
		buf.WriteString(ns.Names[i])
		buf.WriteByte(' ')
		buf.WriteString(ns.Types[i].String())
	}
	buf.WriteByte(')')
	return buf.String()
}
