package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"
	"github.com/hokaccha/go-prettyjson"
	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"
	"github.com/zlang-io/zlang/errors"
)

var red = color.New(color.FgRed).SprintFunc()

func fatal(msg interface{}) {
	var s string
	switch msg := msg.(type) {
	case string:
		s = msg
	case error:
		s = msg.Error()
	default:
		s = fmt.Sprintf("%v", msg)
	}
	fmt.Fprintf(os.Stderr, "%s\n", red(s))
	os.Exit(1)
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func useColor(w io.Writer) bool {
	return !viper.GetBool("no-color") && !color.NoColor && isTerminal(w)
}

// formatError renders compile errors in the friendly layout and anything
// else as plain text.
func formatError(w io.Writer, err error) string {
	formatter := errors.NewFormatter(useColor(w))
	if merr, ok := err.(*multierror.Error); ok {
		var formatted []*errors.FormattedError
		var other []error
		for _, e := range merr.Errors {
			if ce, ok := e.(*errors.CompileError); ok {
				formatted = append(formatted, ce.ToFormatted())
			} else {
				other = append(other, e)
			}
		}
		out := formatter.FormatMultiple(formatted)
		for _, e := range other {
			out += e.Error() + "\n"
		}
		return out
	}
	if ce, ok := err.(*errors.CompileError); ok {
		return formatter.Format(ce.ToFormatted())
	}
	if useColor(w) {
		return red(err.Error()) + "\n"
	}
	return err.Error() + "\n"
}

func printError(w io.Writer, err error) {
	fmt.Fprint(w, formatError(w, err))
}

func getOutputJSON(v any) ([]byte, error) {
	if viper.GetBool("no-color") || color.NoColor {
		return json.MarshalIndent(v, "", "  ")
	}
	return prettyjson.Marshal(v)
}

// Reads global flags from Viper and adjusts the environment accordingly.
func processGlobalFlags() {
	if viper.GetBool("no-color") {
		color.NoColor = true
	}
}
