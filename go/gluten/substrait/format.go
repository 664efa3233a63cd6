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
	"fmt"
	"strings"
)

// FormatNode renders a node on a single line. The function map resolves
// anchors back to names; with a nil map anchors print as fn#N.
func FormatNode(n Node, fm *FunctionMap) string {
	f := formatter{functions: fm}
	n.format(&f, 0)
	return f.String()
}

// PrettyPrint renders a node indented, one conditional clause per line.
func PrettyPrint(n Node, fm *FunctionMap) string {
	f := formatter{functions: fm, indent: "    "}
	n.format(&f, 0)
	return f.String()
}

type formatter struct {
	strings.Builder
	functions *FunctionMap
	indent    string
}

func (f *formatter) Indent(depth int) {
	if depth > 0 && f.indent != "" {
		f.WriteByte('\n')
		for i := 0; i < depth; i++ {
			f.WriteString(f.indent)
		}
	}
}

func (f *formatter) functionName(anchor uint32) string {
	if f.functions != nil {
		if spec, err := f.functions.FunctionSpec(anchor); err == nil {
			return BaseName(spec)
		}
	}
	return fmt.Sprintf("fn#%d", anchor)
}

func (fn *ScalarFunction) format(f *formatter, depth int) {
	f.WriteString(f.functionName(fn.FunctionRef))
	f.WriteByte('(')
	for i, arg := range fn.Args {
		if i > 0 {
			f.WriteString(", ")
		}
		arg.format(f, depth)
	}
	f.WriteByte(')')
}

func (l *Literal) format(f *formatter, _ int) {
	f.WriteString(l.Val.String())
}

func (fr *FieldRef) format(f *formatter, _ int) {
	fmt.Fprintf(f, "[FIELD %d]", fr.Ordinal)
}

func (c *IfThen) format(f *formatter, depth int) {
	f.WriteString("CASE")
	for _, clause := range c.Clauses {
		f.Indent(depth + 1)
		f.WriteString(" WHEN ")
		clause.Cond.format(f, depth+1)
		f.WriteString(" THEN ")
		clause.Then.format(f, depth+1)
	}
	f.Indent(depth + 1)
	f.WriteString(" ELSE ")
	c.Else.format(f, depth+1)
	f.Indent(depth)
	f.WriteString(" END")
}

func (c *Cast) format(f *formatter, depth int) {
	f.WriteString("CAST(")
	c.Input.format(f, depth)
	f.WriteString(" AS ")
	f.WriteString(c.Output.String())
	f.WriteByte(')')
}

func (l *Lambda) format(f *formatter, depth int) {
	f.WriteByte('(')
	for i := range l.Params {
		if i > 0 {
			f.WriteString(", ")
		}
		fmt.Fprintf(f, "$%d", i)
	}
	f.WriteString(") -> ")
	l.Body.format(f, depth)
}

func (a *LambdaArg) format(f *formatter, _ int) {
	fmt.Fprintf(f, "$%d", a.Ordinal)
}
