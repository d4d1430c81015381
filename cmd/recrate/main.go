// Command recrate repackages a .crate file under a different crate name.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cratekit/recrate"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "recrate: %v\n", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	var (
		oldName string
		output  string
		workers int
	)

	cmd := &cobra.Command{
		Use:   "recrate <crate-file> <new-name>",
		Short: "Repackage a .crate file under a different crate name",
		Long: `Repackage a .crate file so it exports the same crate under a different
name. The manifest name field is replaced, references to the old name in
source files outside src/ are rewritten, and the renamed archive is written
next to the input (foo-0.1.0.crate becomes bar-0.1.0.crate).

The old name is inferred from the filename unless --old-name is given.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := []recrate.RenameOption{}
			if oldName != "" {
				opts = append(opts, recrate.RenameWithOldName(oldName))
			}
			if output != "" {
				opts = append(opts, recrate.RenameWithOutput(output))
			}
			if workers > 1 {
				opts = append(opts, recrate.RenameWithTransformOptions(
					recrate.TransformWithWorkers(workers),
				))
			}

			out, err := recrate.Rename(args[0], args[1], opts...)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), out)
			return nil
		},
	}

	cmd.Flags().StringVar(&oldName, "old-name", "", "current crate name (default: inferred from the filename)")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output path (default: next to the input file)")
	cmd.Flags().IntVar(&workers, "workers", 1, "goroutines used to rewrite source files")

	return cmd
}
