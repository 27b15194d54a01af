package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/vango-dev/tagkit/internal/config"
	"github.com/vango-dev/tagkit/internal/errors"
)

func configCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Manage the tagkit configuration",
	}
	cmd.AddCommand(configInitCmd(), configShowCmd(a))
	return cmd
}

func configInitCmd() *cobra.Command {
	var (
		format string
		force  bool
		global bool
	)

	cmd := &cobra.Command{
		Use:   "init [path]",
		Short: "Write a default configuration file",
		Long: `Write a configuration file holding the defaults.

Without a path the file is written to ./tagkit.toml (or ./tagkit.yaml with
--format=yaml). With --global it goes to the XDG config directory.

Examples:
  tagkit config init
  tagkit config init --format=yaml
  tagkit config init --global`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path, err := initPath(args, format, global)
			if err != nil {
				return err
			}
			if _, err := os.Stat(path); err == nil && !force {
				return errors.Newf(errors.CategoryCLI, "%s already exists", path).
					WithSuggestion("Pass --force to overwrite it")
			}
			if err := config.New().SaveTo(path); err != nil {
				return err
			}
			success(cmd.OutOrStdout(), "Wrote %s", path)
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "toml", "File format: toml or yaml")
	cmd.Flags().BoolVar(&force, "force", false, "Overwrite an existing file")
	cmd.Flags().BoolVar(&global, "global", false, "Write to the XDG config directory")

	return cmd
}

func initPath(args []string, format string, global bool) (string, error) {
	if len(args) == 1 {
		return args[0], nil
	}
	var ext string
	switch format {
	case "toml":
		ext = ".toml"
	case "yaml", "yml":
		ext = ".yaml"
	default:
		return "", errors.New("E102").WithDetailf("unknown format %q", format)
	}
	if global {
		path, err := config.DefaultPath()
		if err != nil {
			return "", errors.New("E101").Wrap(err)
		}
		return filepath.Join(filepath.Dir(path), "tagkit"+ext), nil
	}
	return "tagkit" + ext, nil
}

func configShowCmd(a *app) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print the effective configuration",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := a.loadConfig()
			if err != nil {
				return err
			}
			data, err := cfg.Marshal("." + format)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			source := cfg.Path()
			if source == "" {
				source = "defaults"
			}
			fmt.Fprintf(out, "# source: %s\n", source)
			_, err = out.Write(data)
			return err
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "toml", "Output format: toml or yaml")

	return cmd
}
