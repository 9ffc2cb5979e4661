package main

import (
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/zlang-io/zlang"
)

func newCheckCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "check FILE...",
		Short: "Compile files and report every failure",
		Long: `Compile each file independently and report all files that fail.
The exit status is non-zero if any file fails.`,
		Args: cobra.MinimumNArgs(1),
		RunE: checkHandler,
	}
}

func checkHandler(cmd *cobra.Command, args []string) error {
	opts, err := getZlangOptions()
	if err != nil {
		return err
	}
	var result *multierror.Error
	for _, path := range args {
		lib, err := zlang.CompileFile(path, opts...)
		if err != nil {
			result = multierror.Append(result, err)
			continue
		}
		fmt.Fprintf(cmd.OutOrStdout(), "ok  %s (%d functions)\n", path, len(lib.Functions()))
	}
	return result.ErrorOrNil()
}
