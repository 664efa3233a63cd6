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
	"os"

	"github.com/spf13/cobra"

	"github.com/WolverineJiang/gluten/go/gluten/rewrite"
	"github.com/WolverineJiang/gluten/go/gluten/sparkexpr"
	"github.com/WolverineJiang/gluten/go/gluten/substrait"
)

var translateOut string

var translateCmd = &cobra.Command{
	Use:   "translate [expression.json]",
	Short: "Translate a host expression description",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runTranslate,
}

func init() {
	translateCmd.Flags().StringVar(&translateOut, "out", "",
		"write the binary plan fragment to this file instead of printing it")
}

func runTranslate(cmd *cobra.Command, args []string) error {
	data, err := readInput(args)
	if err != nil {
		return err
	}
	expr, err := sparkexpr.ParseJSON(data)
	if err != nil {
		return err
	}
	fragment, err := rewrite.TranslateFragment(expr, opts)
	if err != nil {
		return err
	}
	if translateOut != "" {
		encoded, err := fragment.MarshalBinary()
		if err != nil {
			return err
		}
		return os.WriteFile(translateOut, encoded, 0o644)
	}
	fmt.Fprintln(cmd.OutOrStdout(), substrait.PrettyPrint(fragment.Root, fragment.Functions))
	return nil
}
