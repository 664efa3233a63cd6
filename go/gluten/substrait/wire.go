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
	"encoding/binary"
	"math"

	"github.com/WolverineJiang/gluten/go/glerrors"
	"github.com/WolverineJiang/gluten/go/gluten/types"
)

// Binary wire format for plan fragments.
//
// The framing is hand-written: varint lengths, one tag byte per node, and
// little-endian float payloads. Strings and lists are length-prefixed.
// Integral literal payloads use zig-zag varints.

const (
	wireMagic   = "GLPF"
	wireVersion = 1
)

const (
	tagScalarFunction = 0x01
	tagLiteral        = 0x02
	tagFieldRef       = 0x03
	tagIfThen         = 0x04
	tagCast           = 0x05
	tagLambda         = 0x06
	tagLambdaArg      = 0x07
)

// PlanFragment bundles a translated expression with the function registry
// its anchors resolve against.
type PlanFragment struct {
	Functions   *FunctionMap
	Root        Node
	OutputNames []string
}

// MarshalBinary serializes the fragment.
func (p *PlanFragment) MarshalBinary() ([]byte, error) {
	buf := append([]byte(nil), wireMagic...)
	buf = append(buf, wireVersion)

	specs := p.Functions.Specs()
	buf = binary.AppendUvarint(buf, uint64(len(specs)))
	for _, spec := range specs {
		buf = appendString(buf, spec)
	}

	buf = binary.AppendUvarint(buf, uint64(len(p.OutputNames)))
	for _, name := range p.OutputNames {
		buf = appendString(buf, name)
	}

	return appendNode(buf, p.Root)
}

// UnmarshalPlanFragment decodes a fragment serialized by MarshalBinary.
func UnmarshalPlanFragment(data []byte) (*PlanFragment, error) {
	d := &decoder{buf: data}
	if err := d.expect(wireMagic); err != nil {
		return nil, err
	}
	version, err := d.byte()
	if err != nil {
		return nil, err
	}
	if version != wireVersion {
		return nil, glerrors.Errorf(glerrors.Unimplemented, "unsupported plan fragment version %d", version)
	}

	p := &PlanFragment{Functions: NewFunctionMap()}

	nspecs, err := d.uvarint()
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < nspecs; i++ {
		spec, err := d.string()
		if err != nil {
			return nil, err
		}
		p.Functions.specs = append(p.Functions.specs, spec)
		p.Functions.anchors[spec] = uint32(len(p.Functions.specs))
	}

	nnames, err := d.uvarint()
	if err != nil {
		return nil, err
	}
	for i := uint64(0); i < nnames; i++ {
		name, err := d.string()
		if err != nil {
			return nil, err
		}
		p.OutputNames = append(p.OutputNames, name)
	}

	root, err := d.node()
	if err != nil {
		return nil, err
	}
	if len(d.buf) != 0 {
		return nil, glerrors.Errorf(glerrors.DataLoss, "%d trailing bytes after plan fragment", len(d.buf))
	}
	p.Root = root
	return p, nil
}

func appendString(buf []byte, s string) []byte {
	buf = binary.AppendUvarint(buf, uint64(len(s)))
	return append(buf, s...)
}

func appendType(buf []byte, t types.Type) []byte {
	buf = append(buf, byte(t.Kind))
	if t.Nullable {
		buf = append(buf, 1)
	} else {
		buf = append(buf, 0)
	}
	if t.Kind == types.List {
		buf = appendType(buf, t.ElemType())
	}
	return buf
}

// EncodeValue appends a self-describing encoding of v. The storage
// adapters use the same encoding for their row streams.
func EncodeValue(buf []byte, v types.Value) []byte {
	buf = appendType(buf, v.Type())
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
		return appendString(buf, v.Str())
	case types.Binary:
		buf = binary.AppendUvarint(buf, uint64(len(v.Bytes())))
		return append(buf, v.Bytes()...)
	case types.List:
		vals := v.List()
		buf = binary.AppendUvarint(buf, uint64(len(vals)))
		for _, el := range vals {
			buf = EncodeValue(buf, el)
		}
		return buf
	default:
		return binary.AppendVarint(buf, v.Int64())
	}
}

// DecodeValue decodes one value and returns the remaining bytes.
func DecodeValue(data []byte) (types.Value, []byte, error) {
	d := &decoder{buf: data}
	v, err := d.value()
	return v, d.buf, err
}

func appendNode(buf []byte, n Node) ([]byte, error) {
	switch node := n.(type) {
	case *ScalarFunction:
		buf = append(buf, tagScalarFunction)
		buf = binary.AppendUvarint(buf, uint64(node.FunctionRef))
		buf = appendType(buf, node.Output)
		buf = binary.AppendUvarint(buf, uint64(len(node.Args)))
		for _, arg := range node.Args {
			var err error
			buf, err = appendNode(buf, arg)
			if err != nil {
				return nil, err
			}
		}
		return buf, nil
	case *Literal:
		buf = append(buf, tagLiteral)
		return EncodeValue(buf, node.Val), nil
	case *FieldRef:
		buf = append(buf, tagFieldRef)
		buf = binary.AppendUvarint(buf, uint64(node.Ordinal))
		return appendType(buf, node.Output), nil
	case *IfThen:
		buf = append(buf, tagIfThen)
		buf = appendType(buf, node.Output)
		buf = binary.AppendUvarint(buf, uint64(len(node.Clauses)))
		for _, clause := range node.Clauses {
			var err error
			if buf, err = appendNode(buf, clause.Cond); err != nil {
				return nil, err
			}
			if buf, err = appendNode(buf, clause.Then); err != nil {
				return nil, err
			}
		}
		return appendNode(buf, node.Else)
	case *Cast:
		buf = append(buf, tagCast)
		buf = appendType(buf, node.Output)
		return appendNode(buf, node.Input)
	case *Lambda:
		buf = append(buf, tagLambda)
		buf = binary.AppendUvarint(buf, uint64(len(node.Params)))
		for _, param := range node.Params {
			buf = appendType(buf, param)
		}
		return appendNode(buf, node.Body)
	case *LambdaArg:
		buf = append(buf, tagLambdaArg)
		buf = binary.AppendUvarint(buf, uint64(node.Ordinal))
		return appendType(buf, node.Output), nil
	default:
		return nil, glerrors.Errorf(glerrors.Internal, "cannot serialize node of type %T", n)
	}
}

type decoder struct {
	buf []byte
}

func (d *decoder) truncated() error {
	return glerrors.New(glerrors.DataLoss, "truncated plan fragment")
}

func (d *decoder) expect(magic string) error {
	if len(d.buf) < len(magic) || string(d.buf[:len(magic)]) != magic {
		return glerrors.New(glerrors.DataLoss, "bad plan fragment header")
	}
	d.buf = d.buf[len(magic):]
	return nil
}

func (d *decoder) byte() (byte, error) {
	if len(d.buf) == 0 {
		return 0, d.truncated()
	}
	b := d.buf[0]
	d.buf = d.buf[1:]
	return b, nil
}

func (d *decoder) uvarint() (uint64, error) {
	v, n := binary.Uvarint(d.buf)
	if n <= 0 {
		return 0, d.truncated()
	}
	d.buf = d.buf[n:]
	return v, nil
}

func (d *decoder) varint() (int64, error) {
	v, n := binary.Varint(d.buf)
	if n <= 0 {
		return 0, d.truncated()
	}
	d.buf = d.buf[n:]
	return v, nil
}

func (d *decoder) string() (string, error) {
	n, err := d.uvarint()
	if err != nil {
		return "", err
	}
	if uint64(len(d.buf)) < n {
		return "", d.truncated()
	}
	s := string(d.buf[:n])
	d.buf = d.buf[n:]
	return s, nil
}

func (d *decoder) typ() (types.Type, error) {
	kind, err := d.byte()
	if err != nil {
		return types.Type{}, err
	}
	nullable, err := d.byte()
	if err != nil {
		return types.Type{}, err
	}
	t := types.Type{Kind: types.Kind(kind), Nullable: nullable != 0}
	if t.Kind == types.List {
		elem, err := d.typ()
		if err != nil {
			return types.Type{}, err
		}
		t.Elem = &elem
	}
	return t, nil
}

func (d *decoder) value() (types.Value, error) {
	t, err := d.typ()
	if err != nil {
		return types.Value{}, err
	}
	present, err := d.byte()
	if err != nil {
		return types.Value{}, err
	}
	if present == 0 {
		return types.NullValue(t), nil
	}
	switch t.Kind {
	case types.Bool:
		b, err := d.byte()
		if err != nil {
			return types.Value{}, err
		}
		return types.NewBoolValue(b != 0).WithType(t), nil
	case types.Float32, types.Float64:
		if len(d.buf) < 8 {
			return types.Value{}, d.truncated()
		}
		bits := binary.LittleEndian.Uint64(d.buf)
		d.buf = d.buf[8:]
		return types.NewFloat64Value(math.Float64frombits(bits)).WithType(t), nil
	case types.String:
		s, err := d.string()
		if err != nil {
			return types.Value{}, err
		}
		return types.NewStringValue(s).WithType(t), nil
	case types.Binary:
		n, err := d.uvarint()
		if err != nil {
			return types.Value{}, err
		}
		if uint64(len(d.buf)) < n {
			return types.Value{}, d.truncated()
		}
		b := append([]byte(nil), d.buf[:n]...)
		d.buf = d.buf[n:]
		return types.NewBinaryValue(b).WithType(t), nil
	case types.List:
		n, err := d.uvarint()
		if err != nil {
			return types.Value{}, err
		}
		vals := make([]types.Value, 0, n)
		for i := uint64(0); i < n; i++ {
			el, err := d.value()
			if err != nil {
				return types.Value{}, err
			}
			vals = append(vals, el)
		}
		return types.NewListValue(t.ElemType(), vals).WithType(t), nil
	default:
		i, err := d.varint()
		if err != nil {
			return types.Value{}, err
		}
		return types.NewIntValue(t.Kind, i).WithType(t), nil
	}
}

func (d *decoder) node() (Node, error) {
	tag, err := d.byte()
	if err != nil {
		return nil, err
	}
	switch tag {
	case tagScalarFunction:
		ref, err := d.uvarint()
		if err != nil {
			return nil, err
		}
		out, err := d.typ()
		if err != nil {
			return nil, err
		}
		nargs, err := d.uvarint()
		if err != nil {
			return nil, err
		}
		args := make([]Node, 0, nargs)
		for i := uint64(0); i < nargs; i++ {
			arg, err := d.node()
			if err != nil {
				return nil, err
			}
			args = append(args, arg)
		}
		return &ScalarFunction{FunctionRef: uint32(ref), Args: args, Output: out}, nil
	case tagLiteral:
		v, err := d.value()
		if err != nil {
			return nil, err
		}
		return &Literal{Val: v}, nil
	case tagFieldRef:
		ordinal, err := d.uvarint()
		if err != nil {
			return nil, err
		}
		out, err := d.typ()
		if err != nil {
			return nil, err
		}
		return &FieldRef{Ordinal: int(ordinal), Output: out}, nil
	case tagIfThen:
		out, err := d.typ()
		if err != nil {
			return nil, err
		}
		nclauses, err := d.uvarint()
		if err != nil {
			return nil, err
		}
		clauses := make([]IfClause, 0, nclauses)
		for i := uint64(0); i < nclauses; i++ {
			cond, err := d.node()
			if err != nil {
				return nil, err
			}
			then, err := d.node()
			if err != nil {
				return nil, err
			}
			clauses = append(clauses, IfClause{Cond: cond, Then: then})
		}
		elseNode, err := d.node()
		if err != nil {
			return nil, err
		}
		return &IfThen{Clauses: clauses, Else: elseNode, Output: out}, nil
	case tagCast:
		out, err := d.typ()
		if err != nil {
			return nil, err
		}
		input, err := d.node()
		if err != nil {
			return nil, err
		}
		return &Cast{Input: input, Output: out}, nil
	case tagLambda:
		nparams, err := d.uvarint()
		if err != nil {
			return nil, err
		}
		params := make([]types.Type, 0, nparams)
		for i := uint64(0); i < nparams; i++ {
			param, err := d.typ()
			if err != nil {
				return nil, err
			}
			params = append(params, param)
		}
		body, err := d.node()
		if err != nil {
			return nil, err
		}
		return &Lambda{Params: params, Body: body}, nil
	case tagLambdaArg:
		ordinal, err := d.uvarint()
		if err != nil {
			return nil, err
		}
		out, err := d.typ()
		if err != nil {
			return nil, err
		}
		return &LambdaArg{Ordinal: int(ordinal), Output: out}, nil
	default:
		return nil, glerrors.Errorf(glerrors.DataLoss, "unknown node tag 0x%02x", tag)
	}
}
