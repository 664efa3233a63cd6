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

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/WolverineJiang/gluten/go/gluten/substrait"
)

var inspectCmd = &cobra.Command{
	Use:   "inspect [fragment.bin]",
	Short: "Decode a serialized plan fragment",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runInspect,
}

func runInspect(cmd *cobra.Command, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}
	fragment, err := substrait.UnmarshalPlanFragment(data)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "functions:")
	for i, spec := range fragment.Functions.Specs() {
		fmt.Fprintf(out, "  #%d %s\n", i+1, spec)
	}
	fmt.Fprintln(out, "expression:")
	fmt.Fprintln(out, substrait.PrettyPrint(fragment.Root, fragment.Functions))
	return nil
}
