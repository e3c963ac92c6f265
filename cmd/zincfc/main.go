// zincfc compiles a source tree to bytecode.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:           "zincfc",
		Short:         "Compile arithmetic-circuit sources to bytecode",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newBuildCommand())
	root.AddCommand(newCheckCommand())
	root.AddCommand(newVersionCommand())
	return root
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the compiler version",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Fprintln(cmd.OutOrStdout(), version)
			return nil
		},
	}
}

// version is the compiler's self-reported build version. There is no
// release process yet to stamp this from, so it is a constant.
const version = "0.1.0"
