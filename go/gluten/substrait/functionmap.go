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

package substrait

import (
	"strings"

	"github.com/WolverineJiang/gluten/go/glerrors"
	"github.com/WolverineJiang/gluten/go/gluten/types"
)

// FunctionMap is the per-plan registry of function signatures. Anchors are
// assigned in registration order starting at 1, and identical signatures
// share an anchor.
//
// The map is append-only and owned by a single translation pass; it is not
// safe for concurrent writers.
type FunctionMap struct {
	anchors map[string]uint32
	specs   []string
}

func NewFunctionMap() *FunctionMap {
	return &FunctionMap{
		anchors: make(map[string]uint32),
	}
}

// Signature renders the compound signature for a function over the given
// argument types: name:t0_t1_...tN, or the bare name for a zero-argument
// function. Nullability is not part of a signature.
func Signature(name string, argTypes []types.Type) string {
	if len(argTypes) == 0 {
		return name
	}
	var buf strings.Builder
	buf.WriteString(name)
	buf.WriteByte(':')
	for i, t := range argTypes {
		if i > 0 {
			buf.WriteByte('_')
		}
		buf.WriteString(t.ShortName())
	}
	return buf.String()
}

// BaseName extracts the function name from a compound signature. A simple
// name is returned unchanged.
func BaseName(spec string) string {
	name, _, _ := strings.Cut(spec, ":")
	return name
}

// SignatureTypes returns the short type names encoded in a compound
// signature, nil for a simple name.
func SignatureTypes(spec string) []string {
	_, sig, ok := strings.Cut(spec, ":")
	if !ok || sig == "" {
		return nil
	}
	return strings.Split(sig, "_")
}

// Anchor resolves or registers the anchor for a function signature.
func (fm *FunctionMap) Anchor(name string, argTypes []types.Type) uint32 {
	spec := Signature(name, argTypes)
	if anchor, ok := fm.anchors[spec]; ok {
		return anchor
	}
	fm.specs = append(fm.specs, spec)
	anchor := uint32(len(fm.specs))
	fm.anchors[spec] = anchor
	return anchor
}

// FunctionSpec returns the compound signature registered under an anchor.
func (fm *FunctionMap) FunctionSpec(anchor uint32) (string, error) {
	if anchor == 0 || int(anchor) > len(fm.specs) {
		return "", glerrors.Errorf(glerrors.NotFound, "function anchor %d not registered", anchor)
	}
	return fm.specs[anchor-1], nil
}

// Len is the number of registered signatures.
func (fm *FunctionMap) Len() int {
	return len(fm.specs)
}

// Specs returns the registered signatures in anchor order.
func (fm *FunctionMap) Specs() []string {
	return append([]string(nil), fm.specs...)
}
