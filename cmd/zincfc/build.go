package main

import (
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ingzkp/zinc/bytecode"
	"github.com/ingzkp/zinc/compiler"
	"github.com/ingzkp/zinc/source"
)

func newBuildCommand() *cobra.Command {
	var (
		output  string
		verbose bool
		halt    bool
	)

	cmd := &cobra.Command{
		Use:   "build <source-dir>",
		Short: "Compile a source tree and write its linked bytecode",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			log := logrus.New()
			if verbose {
				log.SetLevel(logrus.DebugLevel)
			} else {
				log.SetLevel(logrus.WarnLevel)
			}

			tree, err := source.Load(args[0])
			if err != nil {
				return err
			}

			result, err := compiler.Compile(tree, compiler.Options{
				HaltOnFirstError: halt,
				Log:              log,
			})
			if err != nil {
				reportDiagnostics(cmd, result)
				return err
			}

			data, err := bytecode.Encode(result.Program)
			if err != nil {
				return err
			}

			if output == "" {
				output = "out.znbc"
			}
			return os.WriteFile(output, data, 0o644)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "output path for the linked bytecode (default out.znbc)")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every compile stage")
	cmd.Flags().BoolVar(&halt, "halt-on-first-error", false, "stop parsing at the first malformed module")

	return cmd
}

func reportDiagnostics(cmd *cobra.Command, result *compiler.Result) {
	if result == nil || result.Diags == nil {
		return
	}
	for _, d := range result.Diags.Items() {
		cmd.PrintErrln(d.Error())
	}
}
