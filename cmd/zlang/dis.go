package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/zlang-io/zlang"
	"github.com/zlang-io/zlang/bytecode"
	"github.com/zlang-io/zlang/dis"
)

func newDisCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "dis [FILE]",
		Short: "Disassemble compiled functions",
		Args:  cobra.MaximumNArgs(1),
		RunE:  disHandler,
	}
	addSourceFlags(cmd)
	cmd.Flags().String("func", "", "Function to disassemble")
	return cmd
}

func disHandler(cmd *cobra.Command, args []string) error {
	opts, err := getZlangOptions()
	if err != nil {
		return err
	}
	code, filename, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	lib, err := zlang.Compile(code, append(opts, zlang.WithFilename(filename))...)
	if err != nil {
		return err
	}

	functions := lib.Functions()

	// If a function name was provided, disassemble every arity of it only
	if funcName, _ := cmd.Flags().GetString("func"); funcName != "" {
		var selected []*bytecode.Function
		for _, fn := range functions {
			if fn.Name() == funcName {
				selected = append(selected, fn)
			}
		}
		if len(selected) == 0 {
			return fmt.Errorf("function %q not found", funcName)
		}
		functions = selected
	}

	out := cmd.OutOrStdout()
	for i, fn := range functions {
		if i > 0 {
			fmt.Fprintln(out)
		}
		if err := dis.PrintFunction(fn, out); err != nil {
			return err
		}
	}
	return nil
}
