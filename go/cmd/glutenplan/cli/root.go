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

// Package cli implements the glutenplan command: a developer tool for
// translating host expression descriptions into portable plan fragments
// and inspecting serialized fragments.
package cli

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/WolverineJiang/gluten/go/gluten/config"
	"github.com/WolverineJiang/gluten/go/log"
)

var opts = config.DefaultOptions()

// Main is the root command.
var Main = &cobra.Command{
	Use:   "glutenplan",
	Short: "Translate host expression trees into portable plan fragments",
	Long: "glutenplan translates JSON descriptions of host expression trees into\n" +
		"the portable plan representation the native backend executes, and\n" +
		"decodes serialized fragments back into readable form.",
	SilenceUsage: true,
}

func init() {
	log.RegisterFlags(Main.PersistentFlags())
	opts.RegisterFlags(Main.PersistentFlags())
	Main.AddCommand(translateCmd)
	Main.AddCommand(inspectCmd)
}

// readInput reads the single file argument, or stdin when absent.
func readInput(args []string) ([]byte, error) {
	if len(args) == 0 {
		return io.ReadAll(os.Stdin)
	}
	return os.ReadFile(args[0])
}
