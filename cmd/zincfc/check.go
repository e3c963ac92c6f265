package main

import (
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/ingzkp/zinc/compiler"
	"github.com/ingzkp/zinc/source"
)

func newCheckCommand() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "check <source-dir>",
		Short: "Compile a source tree and report diagnostics without writing bytecode",
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

			result, err := compiler.Compile(tree, compiler.Options{Log: log})
			if err != nil {
				reportDiagnostics(cmd, result)
				return err
			}

			cmd.Println("ok")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "log every compile stage")

	return cmd
}
