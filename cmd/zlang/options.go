package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/zlang-io/zlang"
	"github.com/zlang-io/zlang/library"
)

// Returns the compile options selected by global flags and configuration.
func getZlangOptions() ([]zlang.Option, error) {
	opts := []zlang.Option{zlang.WithLogger(log.Logger)}
	if !viper.GetBool("no-builtins") {
		opts = append(opts, zlang.WithBuiltins())
	}
	natives, err := parseNatives(viper.GetStringSlice("native"))
	if err != nil {
		return nil, err
	}
	if len(natives) > 0 {
		opts = append(opts, zlang.WithNatives(natives...))
	}
	if viper.GetBool("partial-commit") {
		opts = append(opts, zlang.WithPartialCommit())
	}
	return opts, nil
}

// parseNatives reads declarations of the form name/arity or name/... and
// returns placeholders for them.
func parseNatives(specs []string) ([]library.NativeFunction, error) {
	var natives []library.NativeFunction
	for _, spec := range specs {
		name, arity, ok := strings.Cut(spec, "/")
		if !ok || name == "" {
			return nil, fmt.Errorf("invalid native %q: expected name/arity or name/...", spec)
		}
		unbound := func(args []any) (any, error) {
			return nil, fmt.Errorf("native function %s is not bound", spec)
		}
		if arity == "..." {
			natives = append(natives, library.NewVarArgsNative(name, unbound))
			continue
		}
		n, err := strconv.Atoi(arity)
		if err != nil || n < 0 {
			return nil, fmt.Errorf("invalid native %q: bad arity %q", spec, arity)
		}
		natives = append(natives, library.NewNative(name, n, unbound))
	}
	return natives, nil
}

// getSource determines the program text and its filename. There are three
// possibilities:
// 1. --code <code>
// 2. --stdin (read code from stdin)
// 3. path as args[0]
func getSource(cmd *cobra.Command, args []string) (string, string, error) {
	var codeFlagSet bool
	if f := cmd.Flags().Lookup("code"); f != nil && f.Changed {
		codeFlagSet = true
	}
	var stdinFlagSet bool
	if f := cmd.Flags().Lookup("stdin"); f != nil && f.Changed {
		stdinFlagSet = true
	}
	pathSupplied := len(args) > 0
	count := 0
	for _, set := range []bool{codeFlagSet, stdinFlagSet, pathSupplied} {
		if set {
			count++
		}
	}
	if count > 1 {
		return "", "", errors.New("multiple input sources specified")
	}
	if count == 0 {
		return "", "", errors.New("no input provided")
	}
	if stdinFlagSet {
		data, err := io.ReadAll(cmd.InOrStdin())
		if err != nil {
			return "", "", err
		}
		return string(data), "<stdin>", nil
	}
	if pathSupplied {
		data, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", err
		}
		return string(data), args[0], nil
	}
	code, _ := cmd.Flags().GetString("code")
	return code, "<code>", nil
}

func addSourceFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("code", "c", "", "Code to compile")
	cmd.Flags().Bool("stdin", false, "Read code from stdin")
}
