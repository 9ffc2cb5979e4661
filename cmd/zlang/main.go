package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	version = "dev"
	commit  = "unknown"
	date    = "unknown"
)

var cfgFile string

func newRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:           "zlang",
		Short:         "Compile and inspect zlang programs",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			processGlobalFlags()
			return setupLogging(cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&cfgFile, "config", "", "config file (default is $HOME/.zlang.yaml)")
	flags.Bool("no-color", false, "Disable colored output")
	flags.Bool("no-builtins", false, "Do not make the builtin natives callable")
	flags.StringSlice("native", nil, "Declare a host native as name/arity or name/...")
	flags.String("log-level", "warn", "Log level (debug, info, warn, error)")
	flags.Bool("partial-commit", false, "Keep functions compiled before an error")
	viper.BindPFlag("no-color", flags.Lookup("no-color"))
	viper.BindPFlag("no-builtins", flags.Lookup("no-builtins"))
	viper.BindPFlag("native", flags.Lookup("native"))
	viper.BindPFlag("log-level", flags.Lookup("log-level"))
	viper.BindPFlag("partial-commit", flags.Lookup("partial-commit"))

	rootCmd.AddCommand(
		newCheckCommand(),
		newDisCommand(),
		newBuildCommand(),
		newTokensCommand(),
		newVersionCommand(),
	)
	return rootCmd
}

func initConfig() {
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			fatal(err)
		}
		viper.AddConfigPath(home)
		viper.SetConfigName(".zlang")
		viper.SetConfigType("yaml")
	}
	viper.SetEnvPrefix("zlang")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	// Only a config file that exists but cannot be read is an error.
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && cfgFile != "" {
			fatal(fmt.Errorf("reading config: %w", err))
		}
	}
}

func setupLogging(cmd *cobra.Command) error {
	level, err := zerolog.ParseLevel(viper.GetString("log-level"))
	if err != nil {
		return fmt.Errorf("invalid log level %q", viper.GetString("log-level"))
	}
	log.Logger = zerolog.New(zerolog.ConsoleWriter{
		Out:        cmd.ErrOrStderr(),
		NoColor:    viper.GetBool("no-color"),
		TimeFormat: time.Kitchen,
	}).Level(level).With().Timestamp().Logger()
	return nil
}

func main() {
	cobra.OnInitialize(initConfig)
	if err := newRootCommand().Execute(); err != nil {
		printError(os.Stderr, err)
		os.Exit(1)
	}
}
