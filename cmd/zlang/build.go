package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/gofrs/uuid"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/zlang-io/zlang"
	"github.com/zlang-io/zlang/bytecode"
	"github.com/zlang-io/zlang/project"
)

func newBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [DIR]",
		Short: "Compile a project into an image",
		Long: `Compile the project described by the zlang.toml found in DIR or
one of its parents, and write the compiled functions as an image.`,
		Args: cobra.MaximumNArgs(1),
		RunE: buildHandler,
	}
	cmd.Flags().StringP("output", "o", "", "Image path (overrides zlang.toml)")
	cmd.Flags().String("format", "", "Image format: cbor or json (overrides zlang.toml)")
	return cmd
}

func buildHandler(cmd *cobra.Command, args []string) error {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	m, err := project.FindAndLoad(dir)
	if err != nil {
		return err
	}
	if m == nil {
		return fmt.Errorf("no %s found in %s or its parents", project.FileName, dir)
	}
	if output, _ := cmd.Flags().GetString("output"); output != "" {
		m.Image.Output = output
	}
	if format, _ := cmd.Flags().GetString("format"); format != "" {
		m.Image.Format = format
	}
	if err := m.Validate(); err != nil {
		return err
	}
	if m.Image.Output == "" {
		return fmt.Errorf("%s: no image output path", project.FileName)
	}

	opts, err := getZlangOptions()
	if err != nil {
		return err
	}
	lib, err := zlang.CompileProject(m, opts...)
	if err != nil {
		return err
	}

	buildID, err := uuid.NewV4()
	if err != nil {
		return err
	}
	img := lib.Image()
	img.BuildID = buildID.String()
	img.Source = m.Project.Name
	img.Compiler = "zlang " + version

	var data []byte
	switch m.Image.Format {
	case project.FormatJSON:
		data, err = bytecode.Marshal(img)
	default:
		data, err = bytecode.MarshalCBOR(img)
	}
	if err != nil {
		return err
	}

	path := m.OutputPath()
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return err
	}
	log.Info().
		Str("path", path).
		Str("build_id", img.BuildID).
		Msg("wrote image")
	fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d functions, %s)\n",
		path, len(img.Functions), m.Image.Format)
	return nil
}
