package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/zlang-io/zlang/errors"
	"github.com/zlang-io/zlang/internal/lexer"
	"github.com/zlang-io/zlang/internal/token"
)

type tokenOutput struct {
	Type   string `json:"type"`
	Value  any    `json:"value,omitempty"`
	Line   int    `json:"line"`
	Column int    `json:"column"`
}

func newTokensCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tokens [FILE]",
		Short: "Print the token stream of a program",
		Args:  cobra.MaximumNArgs(1),
		RunE:  tokensHandler,
	}
	addSourceFlags(cmd)
	cmd.Flags().StringP("output", "o", "text", "Output format (text or json)")
	return cmd
}

func tokensHandler(cmd *cobra.Command, args []string) error {
	code, filename, err := getSource(cmd, args)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("output")
	tokens, lexErr := lexer.Tokenize(code)

	out := cmd.OutOrStdout()
	switch strings.ToLower(format) {
	case "json":
		rows := make([]tokenOutput, 0, len(tokens))
		for _, tok := range tokens {
			rows = append(rows, toOutput(tok))
		}
		data, err := getOutputJSON(rows)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
	case "text":
		for _, tok := range tokens {
			fmt.Fprintf(out, "%-8s %-10s %s\n", tok.Pos, tok.Type, tok)
		}
	default:
		return fmt.Errorf("unknown output format: %s", format)
	}
	if ce, ok := lexErr.(*errors.CompileError); ok {
		return ce.WithSource(filename, code)
	}
	return lexErr
}

func toOutput(tok token.Token) tokenOutput {
	row := tokenOutput{
		Type:   string(tok.Type),
		Line:   tok.Pos.Line,
		Column: tok.Pos.Column,
	}
	switch v := tok.Value.(type) {
	case rune:
		row.Value = string(v)
	default:
		row.Value = v
	}
	return row
}
